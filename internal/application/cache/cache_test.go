package cache_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fruteria-olga/panel/internal/application/cache"
	"github.com/fruteria-olga/panel/internal/domain/entity"
	"github.com/fruteria-olga/panel/internal/infrastructure/memkv"
	"github.com/fruteria-olga/panel/pkg/logger"
)

func newCache(quota, maxField int) (*cache.Cache, *memkv.Store) {
	kv := memkv.New(quota)
	return cache.New(kv, maxField, logger.Nop()), kv
}

func TestLoadDataset_SinClave(t *testing.T) {
	c, _ := newCache(0, 0)
	ds := c.LoadDataset(context.Background())

	assert.NotNil(t, ds.Products)
	assert.Empty(t, ds.Products)
	assert.Empty(t, ds.Sales)
	require.Len(t, ds.Users, 1)
	assert.Equal(t, entity.MasterUserID, ds.Users[0].ID)
}

func TestLoadDataset_JSONMalformado(t *testing.T) {
	ctx := context.Background()
	c, kv := newCache(0, 0)
	require.NoError(t, kv.Set(ctx, cache.KeyDataset, `{"products": [ {"id": "p1", `))

	var ds entity.Dataset
	assert.NotPanics(t, func() { ds = c.LoadDataset(ctx) })
	assert.Empty(t, ds.Products)
	require.Len(t, ds.Users, 1)
	assert.Equal(t, "FO-ALEJANDRO", ds.Users[0].Username)
	_, ok := c.LastSnapshot(ctx)
	assert.False(t, ok)
}

func TestLoadDataset_ObjetoParcial(t *testing.T) {
	ctx := context.Background()
	c, kv := newCache(0, 0)
	require.NoError(t, kv.Set(ctx, cache.KeyDataset, `{"products":[{"id":42,"name":"Mango","price":4.5,"stock":3}],"users":[]}`))

	ds := c.LoadDataset(ctx)
	require.Len(t, ds.Products, 1)
	assert.Equal(t, entity.ID("42"), ds.Products[0].ID, "ids numéricos se normalizan a texto")
	assert.True(t, ds.Products[0].Price.Equal(decimal.RequireFromString("4.5")))
	assert.NotNil(t, ds.Clients)
	assert.NotNil(t, ds.Tasks)
	require.Len(t, ds.Users, 1, "lista de usuarios vacía → usuario semilla")
}

func TestSaveDataset_VaciaCamposGrandes(t *testing.T) {
	ctx := context.Background()
	c, kv := newCache(0, 100)
	photo := "data:image/png;base64," + strings.Repeat("A", 500)
	ds := entity.Dataset{
		Users: []entity.SystemUser{{ID: "u1", Username: "ana", Photo: photo, Active: true}},
		Products: []entity.Product{{
			ID: "p1", Name: "Palta", Price: decimal.RequireFromString("12.35"), Stock: 4,
		}},
	}
	c.SaveDataset(ctx, ds)

	raw, err := kv.Get(ctx, cache.KeyDataset)
	require.NoError(t, err)
	assert.NotContains(t, raw, "base64")

	back := c.LoadDataset(ctx)
	require.Len(t, back.Users, 1)
	assert.Empty(t, back.Users[0].Photo)
	assert.Equal(t, "ana", back.Users[0].Username)
	assert.True(t, back.Products[0].Price.Equal(decimal.RequireFromString("12.35")), "los decimales no se alteran")
	assert.False(t, c.InSync(), "un blob con campos vaciados no reemplaza la memoria")
}

func TestSaveDataset_CuotaAgotadaNoFalla(t *testing.T) {
	ctx := context.Background()
	c, kv := newCache(64, 0)
	ds := entity.Dataset{Clients: []entity.Client{{ID: "c1", Name: strings.Repeat("x", 200)}}}

	assert.NotPanics(t, func() { c.SaveDataset(ctx, ds) })
	_, ok := c.LastSnapshot(ctx)
	assert.False(t, ok, "la escritura se omite")
	assert.False(t, c.InSync())
	assert.Zero(t, kv.Used())
}

func TestSaveDataset_Sobrescribe(t *testing.T) {
	ctx := context.Background()
	c, _ := newCache(0, 0)
	c.SaveDataset(ctx, entity.Dataset{Sales: []entity.Sale{{ID: "s1"}}})
	c.SaveDataset(ctx, entity.Dataset{Sales: []entity.Sale{{ID: "s2"}, {ID: "s1"}}})

	ds := c.LoadDataset(ctx)
	require.Len(t, ds.Sales, 2)
	assert.Equal(t, entity.ID("s2"), ds.Sales[0].ID)
}

func TestSession(t *testing.T) {
	ctx := context.Background()
	c, kv := newCache(0, 50)

	_, ok := c.LoadSession(ctx)
	assert.False(t, ok)

	u := entity.SeedUser()
	u.Photo = strings.Repeat("B", 80)
	c.SaveSession(ctx, u)

	got, ok := c.LoadSession(ctx)
	require.True(t, ok)
	assert.Equal(t, u.Username, got.Username)
	assert.Empty(t, got.Photo, "el marcador también se depura")

	c.ClearSession(ctx)
	_, ok = c.LoadSession(ctx)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, cache.KeySession, "{no json"))
	_, ok = c.LoadSession(ctx)
	assert.False(t, ok)
}

func TestPreferences(t *testing.T) {
	ctx := context.Background()
	c, kv := newCache(0, 0)
	defaults := entity.Preferences{
		Theme:        entity.ThemeLight,
		Currency:     entity.CurrencyPEN,
		ExchangeRate: decimal.RequireFromString("3.75"),
	}

	assert.Equal(t, defaults, c.LoadPreferences(ctx, defaults))

	c.SaveTheme(ctx, entity.ThemeDark)
	c.SaveCurrency(ctx, entity.CurrencyUSD)
	c.SaveExchangeRate(ctx, decimal.RequireFromString("3.8"))
	c.SaveIdentityConfig(ctx, entity.IdentityConfig{DNIURL: "https://api/dni", Token: "tok"})

	prefs := c.LoadPreferences(ctx, defaults)
	assert.Equal(t, entity.ThemeDark, prefs.Theme)
	assert.Equal(t, entity.CurrencyUSD, prefs.Currency)
	assert.Equal(t, "3.8", prefs.ExchangeRate.String())
	assert.Equal(t, "tok", prefs.Identity.Token)

	_, err := kv.Get(ctx, cache.KeyDataset)
	assert.Error(t, err, "las preferencias no viajan en el blob del dataset")

	require.NoError(t, kv.Set(ctx, cache.KeyTheme, "morado"))
	require.NoError(t, kv.Set(ctx, cache.KeyExchangeRate, "-1"))
	prefs = c.LoadPreferences(ctx, defaults)
	assert.Equal(t, entity.ThemeLight, prefs.Theme, "valores inválidos se ignoran")
	assert.Equal(t, "3.75", prefs.ExchangeRate.String())
}

func TestDatasetJSON_ClavesCompatibles(t *testing.T) {
	ctx := context.Background()
	c, kv := newCache(0, 0)
	c.SaveDataset(ctx, entity.Dataset{Tasks: []entity.OperationalTask{{ID: "t1", Date: "2025-01-10", CompletedDates: []string{"2025-02-10"}}}})

	raw, err := kv.Get(ctx, cache.KeyDataset)
	require.NoError(t, err)
	var generic map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &generic))
	for _, k := range []string{"products", "clients", "suppliers", "sales", "purchases", "users", "tasks"} {
		assert.Contains(t, generic, k)
	}
	assert.Contains(t, raw, `"completedDates":["2025-02-10"]`)
}

func TestLastSnapshot_JSONValidoPeroIlegible(t *testing.T) {
	ctx := context.Background()
	c, kv := newCache(0, 0)
	require.NoError(t, kv.Set(ctx, cache.KeyDataset, `{"products":[{"id":"p1","price":"abc"}]}`))

	_, ok := c.LastSnapshot(ctx)
	assert.False(t, ok, "un blob que no decodifica no es instantánea válida")

	ds := c.LoadDataset(ctx)
	assert.Empty(t, ds.Products, "la carga tolerante degrada a vacío")
}

func TestLastSnapshot_VuelveASincronizar(t *testing.T) {
	ctx := context.Background()
	c, _ := newCache(300, 0)

	c.SaveDataset(ctx, entity.Dataset{Clients: []entity.Client{{ID: "c1", Name: "Ana"}}})
	require.True(t, c.InSync())

	c.SaveDataset(ctx, entity.Dataset{Clients: []entity.Client{{ID: "c1", Name: strings.Repeat("x", 400)}}})
	assert.False(t, c.InSync())
	_, ok := c.LastSnapshot(ctx)
	assert.False(t, ok, "el blob guardado es anterior a la memoria")

	c.SaveDataset(ctx, entity.Dataset{Clients: []entity.Client{{ID: "c2", Name: "Beto"}}})
	ds, ok := c.LastSnapshot(ctx)
	require.True(t, ok)
	require.Len(t, ds.Clients, 1)
	assert.Equal(t, entity.ID("c2"), ds.Clients[0].ID)
}
