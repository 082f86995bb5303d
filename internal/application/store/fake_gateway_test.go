package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/fruteria-olga/panel/internal/application/cache"
	"github.com/fruteria-olga/panel/internal/application/store"
	"github.com/fruteria-olga/panel/internal/domain/entity"
	"github.com/fruteria-olga/panel/internal/domain/repository"
	"github.com/fruteria-olga/panel/internal/infrastructure/memkv"
	"github.com/fruteria-olga/panel/pkg/logger"
)

var errOffline = errors.New("sin conexión")

// fakeTable tabla remota en memoria con falla inyectable.
type fakeTable[T any] struct {
	mu    sync.Mutex
	rows  []T
	err   error
	calls []string
}

func (f *fakeTable[T]) List(context.Context) ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "list")
	if f.err != nil {
		return nil, f.err
	}
	return append([]T(nil), f.rows...), nil
}

func (f *fakeTable[T]) Insert(_ context.Context, record T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "insert")
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, record)
	return nil
}

func (f *fakeTable[T]) Update(_ context.Context, id entity.ID, _ T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "update:"+id.String())
	return f.err
}

func (f *fakeTable[T]) Delete(_ context.Context, id entity.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "delete:"+id.String())
	return f.err
}

func (f *fakeTable[T]) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *fakeTable[T]) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeTable[T]) Fail(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func (f *fakeTable[T]) Seed(rows ...T) {
	f.mu.Lock()
	f.rows = rows
	f.mu.Unlock()
}

type fakeGateway struct {
	products  *fakeTable[entity.Product]
	clients   *fakeTable[entity.Client]
	suppliers *fakeTable[entity.Supplier]
	sales     *fakeTable[entity.Sale]
	purchases *fakeTable[entity.Purchase]
	users     *fakeTable[entity.SystemUser]
	tasks     *fakeTable[entity.OperationalTask]
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		products:  &fakeTable[entity.Product]{},
		clients:   &fakeTable[entity.Client]{},
		suppliers: &fakeTable[entity.Supplier]{},
		sales:     &fakeTable[entity.Sale]{},
		purchases: &fakeTable[entity.Purchase]{},
		users:     &fakeTable[entity.SystemUser]{},
		tasks:     &fakeTable[entity.OperationalTask]{},
	}
}

func (g *fakeGateway) Gateway() repository.Gateway {
	return repository.Gateway{
		Products:  g.products,
		Clients:   g.clients,
		Suppliers: g.suppliers,
		Sales:     g.sales,
		Purchases: g.purchases,
		Users:     g.users,
		Tasks:     g.tasks,
	}
}

// FailAll simula el remoto caído.
func (g *fakeGateway) FailAll(err error) {
	g.products.Fail(err)
	g.clients.Fail(err)
	g.suppliers.Fail(err)
	g.sales.Fail(err)
	g.purchases.Fail(err)
	g.users.Fail(err)
	g.tasks.Fail(err)
}

type harness struct {
	store *store.Store
	gw    *fakeGateway
	cache *cache.Cache
	kv    *memkv.Store
}

func defaultPreferences() entity.Preferences {
	return entity.Preferences{
		Theme:        entity.ThemeLight,
		Currency:     entity.CurrencyPEN,
		ExchangeRate: decimal.RequireFromString("3.75"),
	}
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	kv := memkv.New(0)
	c := cache.New(kv, 0, logger.Nop())
	gw := newFakeGateway()
	s := store.New(store.Deps{
		Gateway:    gw.Gateway(),
		Cache:      c,
		Logger:     logger.Nop(),
		Defaults:   defaultPreferences(),
		BcryptCost: bcrypt.MinCost,
	})
	t.Cleanup(s.Wait)
	return &harness{store: s, gw: gw, cache: c, kv: kv}
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }
