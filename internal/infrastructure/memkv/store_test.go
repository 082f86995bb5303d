package memkv_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fruteria-olga/panel/internal/domain"
	"github.com/fruteria-olga/panel/internal/domain/repository"
	"github.com/fruteria-olga/panel/internal/infrastructure/memkv"
)

func TestStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	s := memkv.New(0)

	_, err := s.Get(ctx, "theme")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.Set(ctx, "theme", "dark"))
	v, err := s.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", v)

	require.NoError(t, s.Delete(ctx, "theme"))
	require.NoError(t, s.Delete(ctx, "theme"))
	assert.Zero(t, s.Used())
}

func TestStore_Cuota(t *testing.T) {
	ctx := context.Background()
	s := memkv.New(10)

	require.NoError(t, s.Set(ctx, "k", "12345"))
	err := s.Set(ctx, "k2", "123456789")
	assert.ErrorIs(t, err, repository.ErrQuotaExceeded)

	_, err = s.Get(ctx, "k2")
	assert.ErrorIs(t, err, domain.ErrNotFound, "una escritura rechazada no deja rastro")

	// Reemplazar una clave libera su tamaño anterior.
	require.NoError(t, s.Set(ctx, "k", "123456789"))
	assert.Equal(t, 10, s.Used())
}
