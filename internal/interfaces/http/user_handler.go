package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/fruteria-olga/panel/internal/application/dto"
	"github.com/fruteria-olga/panel/internal/application/store"
	"github.com/fruteria-olga/panel/internal/domain"
)

// UserHandler administración de usuarios (sólo Administrador).
type UserHandler struct {
	store *store.Store
}

// NewUserHandler construye el handler.
func NewUserHandler(s *store.Store) *UserHandler {
	return &UserHandler{store: s}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	return c.JSON(dto.NewUserList(h.store.Users()))
}

// Create alta de usuario; la contraseña se guarda hasheada.
//
// @Summary      Crear usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UserRequest  true  "Datos del usuario"
// @Success      201  {object}  dto.UserResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.UserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := in.Validate(); err != nil {
		return respondError(c, err)
	}
	if in.Password == "" {
		return validation(c, "password es requerido")
	}
	if !h.store.UsernameAvailable(in.Username, "") {
		return respondError(c, errUsernameTaken)
	}
	out, err := h.store.AddUser(c.UserContext(), in.ToEntity(""))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewUserResponse(out))
}

// Update edita un usuario. Password vacío conserva la contraseña actual.
//
// @Summary      Actualizar usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "ID del registro"
// @Param        body  body  dto.UserRequest  true  "Datos del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := in.Validate(); err != nil {
		return respondError(c, err)
	}
	id := pathID(c)
	if !h.store.UsernameAvailable(in.Username, id) {
		return respondError(c, errUsernameTaken)
	}
	out, err := h.store.UpdateUser(c.UserContext(), in.ToEntity(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewUserResponse(out))
}

// SetPassword godoc
// @Summary      Cambiar contraseña
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "ID del registro"
// @Param        body  body  dto.PasswordRequest  true  "Nueva contraseña"
// @Success      204  "sin contenido"
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/password [put]
func (h *UserHandler) SetPassword(c *fiber.Ctx) error {
	var in dto.PasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.store.UpdateUserPassword(c.UserContext(), pathID(c), in.Password); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete baja de usuario. La cuenta maestra no se puede eliminar.
//
// @Summary      Eliminar usuario
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del registro"
// @Success      204  "sin contenido"
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.store.DeleteUser(c.UserContext(), pathID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

var errUsernameTaken = fmt.Errorf("el nombre de usuario ya está en uso: %w", domain.ErrDuplicate)
