// Package store contiene el estado único del panel y todas sus mutaciones.
//
// Cada mutación sigue el mismo orden: actualización optimista en memoria, escritura del caché
// local y, ya fuera del lock, una llamada al gateway remoto que no se espera. El estado local
// manda durante la sesión: una falla remota se registra y marca la conexión como degradada,
// pero nunca revierte la actualización.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/fruteria-olga/panel/internal/domain/entity"
	"github.com/fruteria-olga/panel/internal/domain/repository"
	"github.com/fruteria-olga/panel/pkg/logger"
)

// LocalCache puerto del respaldo local (implementado por cache.Cache).
type LocalCache interface {
	SaveDataset(ctx context.Context, ds entity.Dataset)
	LoadDataset(ctx context.Context) entity.Dataset
	LastSnapshot(ctx context.Context) (entity.Dataset, bool)
	SaveSession(ctx context.Context, user entity.SystemUser)
	LoadSession(ctx context.Context) (*entity.SystemUser, bool)
	ClearSession(ctx context.Context)
	LoadPreferences(ctx context.Context, defaults entity.Preferences) entity.Preferences
	SaveTheme(ctx context.Context, theme string)
	SaveCurrency(ctx context.Context, currency string)
	SaveExchangeRate(ctx context.Context, rate decimal.Decimal)
	SaveIdentityConfig(ctx context.Context, cfg entity.IdentityConfig)
}

// Deps dependencias del store.
type Deps struct {
	Gateway       repository.Gateway
	Cache         LocalCache
	Logger        *logger.Logger
	Defaults      entity.Preferences
	RemoteTimeout time.Duration // por llamada remota lanzada por una mutación
	MaxInFlight   int           // llamadas remotas simultáneas
	BcryptCost    int
}

// Store contenedor del estado de la aplicación. Se construye una vez al arrancar y se pasa por referencia.
type Store struct {
	mu        sync.RWMutex
	state     entity.State
	connected bool
	loading   bool

	gw         repository.Gateway
	cache      LocalCache
	defaults   entity.Preferences
	bcryptCost int
	log        *logger.Logger
	remote     *remoteWriter
}

// New construye el store con el estado inicial: preferencias por defecto, usuario semilla y listas vacías.
// Bootstrap carga después el caché y la sesión.
func New(deps Deps) *Store {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("store")
	if deps.BcryptCost == 0 {
		deps.BcryptCost = bcrypt.DefaultCost
	}
	s := &Store{
		state: entity.State{
			Preferences: deps.Defaults,
			Dataset: entity.Dataset{
				Products:  []entity.Product{},
				Clients:   []entity.Client{},
				Suppliers: []entity.Supplier{},
				Sales:     []entity.Sale{},
				Purchases: []entity.Purchase{},
				Users:     []entity.SystemUser{entity.SeedUser()},
				Tasks:     []entity.OperationalTask{},
			},
		},
		loading:    true,
		gw:         deps.Gateway,
		cache:      deps.Cache,
		defaults:   deps.Defaults,
		bcryptCost: deps.BcryptCost,
		log:        log,
	}
	s.remote = newRemoteWriter(deps.RemoteTimeout, deps.MaxInFlight, log, s.markDisconnected)
	return s
}

// Bootstrap restaura preferencias, dataset en caché y sesión; si había sesión espera un refresco completo.
func (s *Store) Bootstrap(ctx context.Context) {
	prefs := s.cache.LoadPreferences(ctx, s.defaults)
	ds := s.cache.LoadDataset(ctx)
	user, hasSession := s.cache.LoadSession(ctx)

	s.mu.Lock()
	s.loading = true
	s.state.Preferences = prefs
	s.state.Dataset = ds
	if hasSession {
		s.state.User = user
	}
	s.mu.Unlock()

	s.log.Info().
		Int("products", len(ds.Products)).
		Int("sales", len(ds.Sales)).
		Bool("session", hasSession).
		Msg("caché local restaurado")

	if hasSession {
		if err := s.RefreshCloudData(ctx); err != nil {
			s.log.Warn().Err(err).Msg("arranque sin conexión remota; se trabaja con el caché")
		}
	}

	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

// Wait espera a que terminen las llamadas remotas en curso (apagado y tests).
func (s *Store) Wait() {
	s.remote.Wait()
}

// Loading indica si el arranque sigue en curso.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// IsCloudConnected indica si el último contacto con el gateway remoto fue exitoso.
func (s *Store) IsCloudConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

func (s *Store) markDisconnected() {
	s.mu.Lock()
	s.connected = false
	s.mu.Unlock()
}

// Snapshot copia del estado completo.
func (s *Store) Snapshot() entity.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := entity.State{
		Preferences: s.state.Preferences,
		Dataset:     s.state.Dataset.Clone(),
	}
	if s.state.User != nil {
		u := *s.state.User
		st.User = &u
	}
	return st
}

// Products copia de la lista de productos.
func (s *Store) Products() []entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Product{}, s.state.Products...)
}

// Clients copia de la lista de clientes.
func (s *Store) Clients() []entity.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Client{}, s.state.Clients...)
}

// Suppliers copia de la lista de proveedores.
func (s *Store) Suppliers() []entity.Supplier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Supplier{}, s.state.Suppliers...)
}

// Sales copia de la lista de ventas (más recientes primero).
func (s *Store) Sales() []entity.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Sale{}, s.state.Sales...)
}

// Purchases copia de la lista de compras.
func (s *Store) Purchases() []entity.Purchase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Purchase{}, s.state.Purchases...)
}

// Users copia de la lista de usuarios.
func (s *Store) Users() []entity.SystemUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.SystemUser{}, s.state.Users...)
}

// Tasks copia de la lista de tareas operativas.
func (s *Store) Tasks() []entity.OperationalTask {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.OperationalTask{}, s.state.Tasks...)
}

// persistLocked escribe la instantánea en el caché. Se llama con el lock de escritura tomado,
// así el caché queda en el mismo orden de eventos que la memoria.
func (s *Store) persistLocked(ctx context.Context) {
	s.cache.SaveDataset(ctx, s.state.Dataset)
}

func newID(id entity.ID) entity.ID {
	if id.IsZero() {
		return entity.ID(uuid.NewString())
	}
	return entity.IDFrom(id)
}

// indexOf posición del registro con id (comparación normalizada) o -1.
func indexOf[T any](list []T, id entity.ID, idOf func(T) entity.ID) int {
	for i := range list {
		if idOf(list[i]).Equal(id) {
			return i
		}
	}
	return -1
}

func prepend[T any](list []T, rec T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, rec)
	return append(out, list...)
}

func removeAt[T any](list []T, i int) []T {
	out := make([]T, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}
