package repository

import (
	"context"
	"errors"
)

// ErrQuotaExceeded el almacén clave-valor no tiene espacio para la escritura.
var ErrQuotaExceeded = errors.New("cuota de almacenamiento excedida")

// KVStore almacén clave-valor durable del caché local (equivalente a localStorage).
// Get devuelve domain.ErrNotFound si la clave no existe.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
