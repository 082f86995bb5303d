package repository

import (
	"context"

	"github.com/fruteria-olga/panel/internal/domain"
	"github.com/fruteria-olga/panel/internal/domain/entity"
)

// Table define el puerto de persistencia remota de una tabla (DIP).
// List devuelve todos los registros ordenados por su clave natural.
type Table[T any] interface {
	List(ctx context.Context) ([]T, error)
	Insert(ctx context.Context, record T) error
	Update(ctx context.Context, id entity.ID, record T) error
	Delete(ctx context.Context, id entity.ID) error
	Ping(ctx context.Context) error
}

// Gateway agrupa una tabla remota por entidad.
type Gateway struct {
	Products  Table[entity.Product]
	Clients   Table[entity.Client]
	Suppliers Table[entity.Supplier]
	Sales     Table[entity.Sale]
	Purchases Table[entity.Purchase]
	Users     Table[entity.SystemUser]
	Tasks     Table[entity.OperationalTask]
}

// Pingers devuelve las tablas indexadas por nombre remoto (para el chequeo de salud).
func (g Gateway) Pingers() map[string]interface{ Ping(context.Context) error } {
	return map[string]interface{ Ping(context.Context) error }{
		"products":  g.Products,
		"clients":   g.Clients,
		"suppliers": g.Suppliers,
		"sales":     g.Sales,
		"purchases": g.Purchases,
		"users":     g.Users,
		"tasks":     g.Tasks,
	}
}

// UnavailableGateway gateway cuyas llamadas fallan con domain.ErrRemoteUnavailable.
// Se usa cuando la base remota no responde al arrancar: el panel trabaja con el caché.
func UnavailableGateway() Gateway {
	return Gateway{
		Products:  unavailable[entity.Product]{},
		Clients:   unavailable[entity.Client]{},
		Suppliers: unavailable[entity.Supplier]{},
		Sales:     unavailable[entity.Sale]{},
		Purchases: unavailable[entity.Purchase]{},
		Users:     unavailable[entity.SystemUser]{},
		Tasks:     unavailable[entity.OperationalTask]{},
	}
}

type unavailable[T any] struct{}

func (unavailable[T]) List(context.Context) ([]T, error) { return nil, domain.ErrRemoteUnavailable }
func (unavailable[T]) Insert(context.Context, T) error { return domain.ErrRemoteUnavailable }
func (unavailable[T]) Update(context.Context, entity.ID, T) error { return domain.ErrRemoteUnavailable }
func (unavailable[T]) Delete(context.Context, entity.ID) error { return domain.ErrRemoteUnavailable }
func (unavailable[T]) Ping(context.Context) error { return domain.ErrRemoteUnavailable }
