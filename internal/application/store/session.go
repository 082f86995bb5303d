package store

import (
	"context"
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/fruteria-olga/panel/internal/domain"
	"github.com/fruteria-olga/panel/internal/domain/entity"
)

// Login busca un usuario activo con esas credenciales. Cualquier falla devuelve el mismo
// ErrInvalidCredentials, sin indicar qué campo no coincide. Con éxito fija la sesión,
// la persiste y espera un refresco completo desde el remoto (un fallo de red no invalida el login).
func (s *Store) Login(ctx context.Context, username, password string) (entity.SystemUser, error) {
	s.mu.RLock()
	candidates := make([]entity.SystemUser, 0, 1)
	for _, u := range s.state.Users {
		if u.Username == username {
			candidates = append(candidates, u)
		}
	}
	s.mu.RUnlock()

	var (
		match entity.SystemUser
		found bool
	)
	for _, u := range candidates {
		if u.Active && credentialMatches(u.Password, password) {
			match, found = u, true
			break
		}
	}
	if !found {
		s.log.Info().Str("username", username).Msg("login rechazado")
		return entity.SystemUser{}, domain.ErrInvalidCredentials
	}

	s.mu.Lock()
	s.state.User = &match
	s.cache.SaveSession(ctx, match)
	s.mu.Unlock()
	s.log.Info().Str("user_id", match.ID.String()).Str("role", match.Role).Msg("sesión iniciada")

	if err := s.RefreshCloudData(ctx); err != nil {
		s.log.Warn().Err(err).Msg("sesión iniciada sin datos remotos")
	}

	// el refresco pudo traer una versión más nueva del usuario
	if u, ok := s.ActiveUser(match.ID); ok {
		return u, nil
	}
	return match, nil
}

// Logout cierra la sesión: borra la marca del caché y marca la conexión como desconectada.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.state.User = nil
	s.connected = false
	s.cache.ClearSession(ctx)
	s.mu.Unlock()
	s.log.Info().Msg("sesión cerrada")
}

// CurrentUser usuario de la sesión, si la hay.
func (s *Store) CurrentUser() (entity.SystemUser, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return entity.SystemUser{}, false
	}
	return *s.state.User, true
}

// ActiveUser busca un usuario activo por id; lo usa la autenticación por token en cada petición.
func (s *Store) ActiveUser(id entity.ID) (entity.SystemUser, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOf(s.state.Users, id, userID)
	if i < 0 || !s.state.Users[i].Active {
		return entity.SystemUser{}, false
	}
	return s.state.Users[i], true
}

// credentialMatches compara contra un hash bcrypt o, para registros heredados, contra texto plano en tiempo constante.
func credentialMatches(stored, given string) bool {
	if stored == "" {
		return false
	}
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}

func isBcryptHash(s string) bool {
	if len(s) != 60 {
		return false
	}
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
