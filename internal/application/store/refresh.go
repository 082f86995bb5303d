package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fruteria-olga/panel/internal/domain/entity"
)

// RefreshCloudData trae las siete tablas en paralelo y reemplaza las listas en memoria.
// Si alguna lectura falla la conexión queda como desconectada y, si existe, se vuelve a la última
// instantánea del caché; el error se devuelve envuelto para que el llamador lo registre.
func (s *Store) RefreshCloudData(ctx context.Context) error {
	var ds entity.Dataset
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return fetch(gctx, "products", s.gw.Products.List, &ds.Products) })
	g.Go(func() error { return fetch(gctx, "clients", s.gw.Clients.List, &ds.Clients) })
	g.Go(func() error { return fetch(gctx, "suppliers", s.gw.Suppliers.List, &ds.Suppliers) })
	g.Go(func() error { return fetch(gctx, "sales", s.gw.Sales.List, &ds.Sales) })
	g.Go(func() error { return fetch(gctx, "purchases", s.gw.Purchases.List, &ds.Purchases) })
	g.Go(func() error { return fetch(gctx, "users", s.gw.Users.List, &ds.Users) })
	g.Go(func() error { return fetch(gctx, "tasks", s.gw.Tasks.List, &ds.Tasks) })

	if err := g.Wait(); err != nil {
		s.fallbackToCache(ctx)
		return fmt.Errorf("refrescar datos remotos: %w", err)
	}

	s.mu.Lock()
	// Sin usuarios remotos se conservan los locales (al menos la cuenta maestra).
	if len(ds.Users) == 0 {
		ds.Users = s.state.Users
	}
	s.state.Dataset = ds
	if s.state.User != nil {
		if i := indexOf(ds.Users, s.state.User.ID, userID); i >= 0 {
			u := ds.Users[i]
			s.state.User = &u
			s.cache.SaveSession(ctx, u)
		}
	}
	s.persistLocked(ctx)
	s.connected = true
	s.mu.Unlock()

	s.log.Info().
		Int("products", len(ds.Products)).
		Int("clients", len(ds.Clients)).
		Int("sales", len(ds.Sales)).
		Int("tasks", len(ds.Tasks)).
		Msg("datos remotos sincronizados")
	return nil
}

// fallbackToCache sólo reemplaza la memoria con una instantánea legible y en sincronía.
// La lectura va bajo el lock para que ninguna mutación quede entre la lectura y el reemplazo.
func (s *Store) fallbackToCache(ctx context.Context) {
	s.mu.Lock()
	cached, ok := s.cache.LastSnapshot(ctx)
	s.connected = false
	if ok {
		s.state.Dataset = cached
	}
	s.mu.Unlock()

	if !ok {
		s.log.Warn().Msg("sin instantánea confiable en caché; se conserva la memoria")
	}
}

// KeepConnected reintenta el refresco cada interval mientras la conexión esté caída y haya sesión
// abierta. Termina al cancelar ctx.
func (s *Store) KeepConnected(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if s.IsCloudConnected() {
			continue
		}
		if _, ok := s.CurrentUser(); !ok {
			continue
		}
		if err := s.RefreshCloudData(ctx); err != nil {
			s.log.Debug().Err(err).Msg("reintento de conexión fallido")
			continue
		}
		s.log.Info().Msg("conexión remota restablecida")
	}
}

// fetch lista una tabla y deja el resultado en dst (nunca nil).
func fetch[T any](ctx context.Context, table string, list func(context.Context) ([]T, error), dst *[]T) error {
	rows, err := list(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", table, err)
	}
	if rows == nil {
		rows = []T{}
	}
	*dst = rows
	return nil
}

// Health hace ping a cada tabla remota y devuelve el estado por nombre.
func (s *Store) Health(ctx context.Context) map[string]bool {
	pingers := s.gw.Pingers()
	out := make(map[string]bool, len(pingers))
	var mu sync.Mutex
	var g errgroup.Group
	for name, p := range pingers {
		g.Go(func() error {
			err := p.Ping(ctx)
			mu.Lock()
			out[name] = err == nil
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}
