package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fruteria-olga/panel/internal/application/dto"
	"github.com/fruteria-olga/panel/internal/application/store"
)

// SessionHandler sesión, estado global y preferencias.
type SessionHandler struct {
	store  *store.Store
	tokens *SessionTokens
}

// NewSessionHandler construye el handler.
func NewSessionHandler(s *store.Store, tokens *SessionTokens) *SessionHandler {
	return &SessionHandler{store: s, tokens: tokens}
}

// Login valida credenciales, abre la sesión y devuelve el token Bearer. El mensaje de error es
// el mismo para usuario inexistente, contraseña incorrecta o usuario inactivo.
// El usuario se compara tal cual llega, sin recortar espacios.
//
// @Summary      Iniciar sesión
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200  {object}  dto.SessionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/session/login [post]
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Username == "" || in.Password == "" {
		return validation(c, "usuario y contraseña son requeridos")
	}
	user, err := h.store.Login(c.UserContext(), in.Username, in.Password)
	if err != nil {
		return respondError(c, err)
	}
	token, err := h.tokens.Issue(user)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SessionResponse{Token: token, User: dto.NewUserResponse(user), Connected: h.store.IsCloudConnected()})
}

// Current usuario de la sesión activa.
//
// @Summary      Usuario de la sesión
// @Tags         session
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/session [get]
func (h *SessionHandler) Current(c *fiber.Ctx) error {
	user, _ := GetUser(c)
	return c.JSON(dto.SessionResponse{User: dto.NewUserResponse(user), Connected: h.store.IsCloudConnected()})
}

// Logout revoca el token de la petición. El marcador de sesión persistido se borra sólo si
// pertenece al mismo usuario.
//
// @Summary      Cerrar sesión
// @Tags         session
// @Security     Bearer
// @Produce      json
// @Success      204  "sin contenido"
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/session [delete]
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	h.tokens.Revoke(GetClaims(c))
	user, _ := GetUser(c)
	if current, ok := h.store.CurrentUser(); ok && current.ID.Equal(user.ID) {
		h.store.Logout(c.UserContext())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Status estado de carga, conexión y salud de cada tabla remota (público).
//
// @Summary      Estado de carga y conexión
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.StatusResponse
// @Router       /api/status [get]
func (h *SessionHandler) Status(c *fiber.Ctx) error {
	return c.JSON(dto.StatusResponse{
		Loading:   h.store.Loading(),
		Connected: h.store.IsCloudConnected(),
		Tables:    h.store.Health(c.UserContext()),
	})
}

// State instantánea completa del panel.
//
// @Summary      Instantánea completa del panel
// @Tags         session
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StateResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/state [get]
func (h *SessionHandler) State(c *fiber.Ctx) error {
	return c.JSON(dto.NewStateResponse(h.store.Snapshot(), h.store.IsCloudConnected(), h.store.Loading()))
}

// Refresh vuelve a leer todas las tablas remotas. Si falla, el panel sigue con los datos locales.
//
// @Summary      Refrescar datos remotos
// @Tags         session
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StateResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/refresh [post]
func (h *SessionHandler) Refresh(c *fiber.Ctx) error {
	if err := h.store.RefreshCloudData(c.UserContext()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "REMOTE_UNAVAILABLE", Message: err.Error()})
	}
	return c.JSON(dto.NewStateResponse(h.store.Snapshot(), h.store.IsCloudConnected(), h.store.Loading()))
}

// SetTheme fija el tema; un cuerpo vacío alterna entre claro y oscuro.
//
// @Summary      Fijar o alternar el tema
// @Tags         preferences
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ThemeRequest  false  "Tema; vacío alterna"
// @Success      200  {object}  entity.Preferences
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/preferences/theme [put]
func (h *SessionHandler) SetTheme(c *fiber.Ctx) error {
	var in dto.ThemeRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	if in.Theme == "" {
		h.store.ToggleTheme(c.UserContext())
	} else if err := h.store.SetTheme(c.UserContext(), in.Theme); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.store.Preferences())
}

// SetCurrency godoc
// @Summary      Fijar moneda
// @Tags         preferences
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CurrencyRequest  true  "PEN o USD"
// @Success      200  {object}  entity.Preferences
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/preferences/currency [put]
func (h *SessionHandler) SetCurrency(c *fiber.Ctx) error {
	var in dto.CurrencyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.store.SetCurrency(c.UserContext(), strings.ToUpper(strings.TrimSpace(in.Currency))); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.store.Preferences())
}

// SetExchangeRate godoc
// @Summary      Fijar tipo de cambio
// @Tags         preferences
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExchangeRateRequest  true  "Tipo de cambio positivo"
// @Success      200  {object}  entity.Preferences
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/preferences/exchange-rate [put]
func (h *SessionHandler) SetExchangeRate(c *fiber.Ctx) error {
	var in dto.ExchangeRateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.store.SetExchangeRate(c.UserContext(), in.Rate); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.store.Preferences())
}

// SetIdentity guarda la configuración de la API de consulta DNI/RUC.
//
// @Summary      Configurar API de DNI/RUC
// @Tags         preferences
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IdentityRequest  true  "URLs y token"
// @Success      200  {object}  entity.Preferences
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/preferences/identity [put]
func (h *SessionHandler) SetIdentity(c *fiber.Ctx) error {
	var in dto.IdentityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	h.store.SetIdentityConfig(c.UserContext(), in.ToEntity())
	return c.JSON(h.store.Preferences())
}
