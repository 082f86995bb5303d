// Package memkv implementa repository.KVStore en memoria con una cuota de bytes,
// como el localStorage de un navegador. Se usa sin Redis configurado y en tests.
package memkv

import (
	"context"
	"sync"

	"github.com/fruteria-olga/panel/internal/domain"
	"github.com/fruteria-olga/panel/internal/domain/repository"
)

var _ repository.KVStore = (*Store)(nil)

// Store almacén en memoria. Quota 0 = sin límite; la cuota cuenta len(key)+len(value) de todas las claves.
type Store struct {
	mu    sync.RWMutex
	data  map[string]string
	used  int
	quota int
}

// New construye el almacén con la cuota indicada.
func New(quota int) *Store {
	return &Store{data: make(map[string]string), quota: quota}
}

// Get devuelve domain.ErrNotFound si la clave no existe.
func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return v, nil
}

// Set escribe la clave o devuelve repository.ErrQuotaExceeded sin modificar nada.
func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	used := s.used
	if old, ok := s.data[key]; ok {
		used -= len(key) + len(old)
	}
	used += len(key) + len(value)
	if s.quota > 0 && used > s.quota {
		return repository.ErrQuotaExceeded
	}
	s.data[key] = value
	s.used = used
	return nil
}

// Delete elimina la clave (no falla si no existe).
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.data[key]; ok {
		s.used -= len(key) + len(old)
		delete(s.data, key)
	}
	return nil
}

// Used bytes ocupados.
func (s *Store) Used() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.used
}
