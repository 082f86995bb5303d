package dto

import (
	"fmt"
	"strings"

	"github.com/fruteria-olga/panel/internal/domain"
	"github.com/fruteria-olga/panel/internal/domain/entity"
)

// UserRequest entrada para crear o editar un usuario. Password vacío al editar conserva la actual.
type UserRequest struct {
	Name      string `json:"name"`
	DNI       string `json:"dni"`
	Phone     string `json:"phone"`
	Functions string `json:"functions"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	Photo     string `json:"photo"`
	Active    bool   `json:"active"`
}

// Validate revisa campos obligatorios y el rol.
func (r UserRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Username) == "" {
		return fmt.Errorf("nombre y usuario son obligatorios: %w", domain.ErrInvalidInput)
	}
	switch r.Role {
	case entity.RoleAdministrador, entity.RoleGerente, entity.RoleVendedor:
		return nil
	default:
		return fmt.Errorf("rol %q: %w", r.Role, domain.ErrInvalidInput)
	}
}

// ToEntity construye el usuario con el id indicado.
func (r UserRequest) ToEntity(id entity.ID) entity.SystemUser {
	return entity.SystemUser{
		ID:        id,
		Name:      strings.TrimSpace(r.Name),
		DNI:       r.DNI,
		Phone:     r.Phone,
		Functions: r.Functions,
		Username:  strings.TrimSpace(r.Username),
		Password:  r.Password,
		Role:      r.Role,
		Photo:     r.Photo,
		Active:    r.Active,
	}
}

// PasswordRequest entrada para PUT /api/users/:id/password.
type PasswordRequest struct {
	Password string `json:"password"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        entity.ID `json:"id"`
	Name      string    `json:"name"`
	DNI       string    `json:"dni"`
	Phone     string    `json:"phone"`
	Functions string    `json:"functions"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Photo     string    `json:"photo,omitempty"`
	Active    bool      `json:"active"`
}

// NewUserResponse copia el usuario sin la contraseña.
func NewUserResponse(u entity.SystemUser) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		DNI:       u.DNI,
		Phone:     u.Phone,
		Functions: u.Functions,
		Username:  u.Username,
		Role:      u.Role,
		Photo:     u.Photo,
		Active:    u.Active,
	}
}

// NewUserList copia la lista sin contraseñas.
func NewUserList(users []entity.SystemUser) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

// LoginRequest entrada para POST /api/session/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionResponse usuario de la sesión y estado de la conexión remota.
// Token sólo viaja en la respuesta del login; las peticiones siguientes lo envían como Bearer.
type SessionResponse struct {
	Token     string       `json:"token,omitempty"`
	User      UserResponse `json:"user"`
	Connected bool         `json:"isCloudConnected"`
}
