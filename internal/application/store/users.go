package store

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/fruteria-olga/panel/internal/domain"
	"github.com/fruteria-olga/panel/internal/domain/entity"
)

func userID(u entity.SystemUser) entity.ID { return u.ID }

// AddUser agrega el usuario al final de la lista. Una contraseña en texto plano se guarda como hash bcrypt.
func (s *Store) AddUser(ctx context.Context, u entity.SystemUser) (entity.SystemUser, error) {
	u.ID = newID(u.ID)
	pw, err := s.hashPassword(u.Password)
	if err != nil {
		return entity.SystemUser{}, err
	}
	u.Password = pw

	s.mu.Lock()
	s.state.Users = append(s.state.Users, u)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.remote.Go("users.insert", u.ID, func(ctx context.Context) error {
		return s.gw.Users.Insert(ctx, u)
	})
	return u, nil
}

// UpdateUser reemplaza el usuario; contraseña vacía conserva la anterior.
// Si es el usuario de la sesión, la sesión y su marca en caché se actualizan.
func (s *Store) UpdateUser(ctx context.Context, u entity.SystemUser) (entity.SystemUser, error) {
	pw, err := s.hashPassword(u.Password)
	if err != nil {
		return entity.SystemUser{}, err
	}
	u.Password = pw

	s.mu.Lock()
	i := indexOf(s.state.Users, u.ID, userID)
	if i < 0 {
		s.mu.Unlock()
		return entity.SystemUser{}, fmt.Errorf("usuario %s: %w", u.ID, domain.ErrNotFound)
	}
	u.ID = s.state.Users[i].ID
	if u.Password == "" {
		u.Password = s.state.Users[i].Password
	}
	s.state.Users[i] = u
	if s.state.User != nil && s.state.User.ID.Equal(u.ID) {
		current := u
		s.state.User = &current
		s.cache.SaveSession(ctx, u)
	}
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.remote.Go("users.update", u.ID, func(ctx context.Context) error {
		return s.gw.Users.Update(ctx, u.ID, u)
	})
	return u, nil
}

// UpdateUserPassword cambia sólo la contraseña del usuario.
func (s *Store) UpdateUserPassword(ctx context.Context, id entity.ID, password string) error {
	if password == "" {
		return fmt.Errorf("contraseña vacía: %w", domain.ErrInvalidInput)
	}
	s.mu.RLock()
	i := indexOf(s.state.Users, id, userID)
	var u entity.SystemUser
	if i >= 0 {
		u = s.state.Users[i]
	}
	s.mu.RUnlock()
	if i < 0 {
		return fmt.Errorf("usuario %s: %w", id, domain.ErrNotFound)
	}
	u.Password = password
	_, err := s.UpdateUser(ctx, u)
	return err
}

// DeleteUser elimina el usuario. La cuenta maestra nunca se elimina.
func (s *Store) DeleteUser(ctx context.Context, id entity.ID) error {
	if id.Equal(entity.MasterUserID) {
		return domain.ErrProtectedUser
	}

	s.mu.Lock()
	i := indexOf(s.state.Users, id, userID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("usuario %s: %w", id, domain.ErrNotFound)
	}
	id = s.state.Users[i].ID
	s.state.Users = removeAt(s.state.Users, i)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.remote.Go("users.delete", id, func(ctx context.Context) error {
		return s.gw.Users.Delete(ctx, id)
	})
	return nil
}

// UsernameAvailable indica si el nombre de usuario está libre (exceptID permite editar el propio registro).
func (s *Store) UsernameAvailable(username string, exceptID entity.ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.state.Users {
		if u.Username == username && !u.ID.Equal(exceptID) {
			return false
		}
	}
	return true
}

func (s *Store) hashPassword(pw string) (string, error) {
	if pw == "" || isBcryptHash(pw) {
		return pw, nil
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash de contraseña: %w", err)
	}
	return string(h), nil
}
