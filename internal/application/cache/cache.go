// Package cache es el respaldo local del panel: el dataset completo, el marcador de sesión y
// las preferencias, sobre un repository.KVStore.
//
// El caché es una conveniencia, no la fuente de verdad: ninguna falla de escritura o lectura
// llega al llamador. Una escritura que no cabe se omite (caché viejo antes que caída) y una
// lectura corrupta degrada a dataset vacío con el usuario semilla.
package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"

	"github.com/fruteria-olga/panel/internal/domain"
	"github.com/fruteria-olga/panel/internal/domain/entity"
	"github.com/fruteria-olga/panel/internal/domain/repository"
	"github.com/fruteria-olga/panel/pkg/logger"
)

// Claves del almacén local.
const (
	KeyDataset      = "olga_backup_data"
	KeySession      = "olga_logged_user"
	KeyTheme        = "theme"
	KeyCurrency     = "currency"
	KeyExchangeRate = "exchange_rate"
	KeyIdentityAPI  = "identity_api"
)

// DefaultMaxFieldBytes umbral por defecto para vaciar campos de texto grandes (fotos base64).
const DefaultMaxFieldBytes = 20000

// Cache respaldo local sobre un KVStore.
type Cache struct {
	kv            repository.KVStore
	maxFieldBytes int
	log           *logger.Logger

	// datasetSynced es falso mientras la última instantánea no se pudo escribir íntegra.
	datasetSynced atomic.Bool
}

// New construye el caché. maxFieldBytes <= 0 usa DefaultMaxFieldBytes.
func New(kv repository.KVStore, maxFieldBytes int, log *logger.Logger) *Cache {
	if maxFieldBytes <= 0 {
		maxFieldBytes = DefaultMaxFieldBytes
	}
	if log == nil {
		log = logger.Nop()
	}
	c := &Cache{kv: kv, maxFieldBytes: maxFieldBytes, log: log.Component("cache")}
	c.datasetSynced.Store(true)
	return c
}

// SaveDataset escribe la instantánea completa. Nunca falla: cuota agotada u otro error se registra y se omite.
// Una escritura omitida o con campos vaciados deja el caché fuera de sincronía hasta la próxima íntegra.
func (c *Cache) SaveDataset(ctx context.Context, ds entity.Dataset) {
	c.datasetSynced.Store(c.write(ctx, KeyDataset, ds))
}

// InSync indica si la instantánea guardada refleja la última llamada a SaveDataset.
func (c *Cache) InSync() bool {
	return c.datasetSynced.Load()
}

// LoadDataset lee la instantánea. Clave ausente, JSON malformado u objetos parciales degradan a
// listas vacías; una lista de usuarios vacía se reemplaza por el usuario semilla.
func (c *Cache) LoadDataset(ctx context.Context) entity.Dataset {
	var ds entity.Dataset
	raw, ok := c.read(ctx, KeyDataset)
	if ok {
		if err := json.Unmarshal([]byte(raw), &ds); err != nil {
			c.log.Warn().Err(err).Msg("dataset en caché corrupto; se usa dataset vacío")
			ds = entity.Dataset{}
		}
	}
	return withDefaults(ds)
}

// LastSnapshot devuelve la instantánea guardada sólo si existe, se decodifica completa y el caché
// está en sincronía. Sirve para reemplazar memoria sin perder cambios; LoadDataset es la variante tolerante.
func (c *Cache) LastSnapshot(ctx context.Context) (entity.Dataset, bool) {
	if !c.InSync() {
		return entity.Dataset{}, false
	}
	raw, ok := c.read(ctx, KeyDataset)
	if !ok {
		return entity.Dataset{}, false
	}
	var ds entity.Dataset
	if err := json.Unmarshal([]byte(raw), &ds); err != nil {
		c.log.Warn().Err(err).Msg("instantánea del caché ilegible; se conserva la memoria")
		return entity.Dataset{}, false
	}
	return withDefaults(ds), true
}

func withDefaults(ds entity.Dataset) entity.Dataset {
	if ds.Products == nil {
		ds.Products = []entity.Product{}
	}
	if ds.Clients == nil {
		ds.Clients = []entity.Client{}
	}
	if ds.Suppliers == nil {
		ds.Suppliers = []entity.Supplier{}
	}
	if ds.Sales == nil {
		ds.Sales = []entity.Sale{}
	}
	if ds.Purchases == nil {
		ds.Purchases = []entity.Purchase{}
	}
	if ds.Tasks == nil {
		ds.Tasks = []entity.OperationalTask{}
	}
	if len(ds.Users) == 0 {
		ds.Users = []entity.SystemUser{entity.SeedUser()}
	}
	return ds
}

// SaveSession persiste el marcador de sesión (instantánea del usuario logueado).
func (c *Cache) SaveSession(ctx context.Context, user entity.SystemUser) {
	c.write(ctx, KeySession, user)
}

// LoadSession devuelve el usuario del marcador, si existe y es legible.
func (c *Cache) LoadSession(ctx context.Context) (*entity.SystemUser, bool) {
	raw, ok := c.read(ctx, KeySession)
	if !ok {
		return nil, false
	}
	var u entity.SystemUser
	if err := json.Unmarshal([]byte(raw), &u); err != nil || u.ID.IsZero() {
		c.log.Warn().Err(err).Msg("marcador de sesión ilegible; se ignora")
		return nil, false
	}
	return &u, true
}

// ClearSession elimina el marcador de sesión.
func (c *Cache) ClearSession(ctx context.Context) {
	if err := c.kv.Delete(ctx, KeySession); err != nil {
		c.log.Warn().Err(err).Msg("no se pudo borrar el marcador de sesión")
	}
}

func (c *Cache) read(ctx context.Context, key string) (string, bool) {
	raw, err := c.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			c.log.Warn().Err(err).Str("key", key).Msg("lectura de caché fallida")
		}
		return "", false
	}
	return raw, true
}

// write devuelve true sólo si el valor quedó guardado sin vaciar ningún campo.
func (c *Cache) write(ctx context.Context, key string, v any) bool {
	data, err := json.Marshal(v)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("no se pudo serializar para el caché")
		return false
	}
	data, stripped, err := stripLargeStrings(data, c.maxFieldBytes)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("no se pudo depurar el blob del caché")
		return false
	}
	if err := c.kv.Set(ctx, key, string(data)); err != nil {
		if errors.Is(err, repository.ErrQuotaExceeded) {
			c.log.Warn().Str("key", key).Int("bytes", len(data)).Msg("cuota del caché agotada; escritura omitida")
			return false
		}
		c.log.Warn().Err(err).Str("key", key).Msg("escritura de caché fallida; omitida")
		return false
	}
	return !stripped
}

// stripLargeStrings vacía cualquier valor de texto cuya longitud supere max e informa si vació alguno.
// Los números se conservan tal cual (UseNumber) para no alterar decimales.
func stripLargeStrings(data []byte, max int) ([]byte, bool, error) {
	if len(data) <= max {
		return data, false, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false, err
	}
	stripped := false
	out, err := json.Marshal(blank(v, max, &stripped))
	return out, stripped, err
}

func blank(v any, max int, stripped *bool) any {
	switch t := v.(type) {
	case string:
		if len(t) > max {
			*stripped = true
			return ""
		}
		return t
	case map[string]any:
		for k, e := range t {
			t[k] = blank(e, max, stripped)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = blank(e, max, stripped)
		}
		return t
	default:
		return v
	}
}
