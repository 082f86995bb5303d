package http

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fruteria-olga/panel/internal/application/dto"
	"github.com/fruteria-olga/panel/internal/domain/entity"
	"github.com/fruteria-olga/panel/pkg/jwt"
)

// Locals keys con el usuario y los claims del token de la petición.
const (
	LocalUser   = "session_user"
	LocalClaims = "session_claims"
)

// UserDirectory resuelve el usuario vigente de un token (implementado por store.Store).
type UserDirectory interface {
	ActiveUser(id entity.ID) (entity.SystemUser, bool)
}

// TokenConfig parámetros de firma de los tokens de sesión.
type TokenConfig struct {
	Secret            string
	Issuer            string
	ExpirationMinutes int
}

// SessionTokens emite y valida los tokens de sesión. Un token revocado en el logout
// se rechaza hasta su expiración.
type SessionTokens struct {
	cfg   TokenConfig
	users UserDirectory

	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewSessionTokens construye el emisor de tokens.
func NewSessionTokens(users UserDirectory, cfg TokenConfig) *SessionTokens {
	return &SessionTokens{cfg: cfg, users: users, revoked: make(map[string]time.Time)}
}

// Issue firma un token para el usuario.
func (t *SessionTokens) Issue(u entity.SystemUser) (string, error) {
	return jwt.Generate(t.cfg.Secret, u.ID.String(), u.Role, t.cfg.Issuer, t.cfg.ExpirationMinutes)
}

// Revoke invalida el token hasta que expire.
func (t *SessionTokens) Revoke(claims *jwt.Claims) {
	if claims == nil || claims.ID == "" {
		return
	}
	exp := time.Now().Add(time.Duration(t.cfg.ExpirationMinutes) * time.Minute)
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}
	t.mu.Lock()
	t.revoked[claims.ID] = exp
	t.mu.Unlock()
}

func (t *SessionTokens) isRevoked(id string) bool {
	now := time.Now()
	t.mu.Lock()
	defer t.mu.Unlock()
	for k, exp := range t.revoked {
		if now.After(exp) {
			delete(t.revoked, k)
		}
	}
	_, ok := t.revoked[id]
	return ok
}

func (t *SessionTokens) authenticate(header string) (entity.SystemUser, *jwt.Claims, string) {
	if header == "" {
		return entity.SystemUser{}, nil, "inicie sesión para continuar"
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return entity.SystemUser{}, nil, "formato: Bearer <token>"
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return entity.SystemUser{}, nil, "token vacío"
	}
	claims, err := jwt.Parse(t.cfg.Secret, t.cfg.Issuer, tokenString)
	if err != nil || t.isRevoked(claims.ID) {
		return entity.SystemUser{}, nil, "token inválido o expirado"
	}
	// el rol vigente sale del usuario guardado, no del token
	user, ok := t.users.ActiveUser(entity.ID(claims.UserID))
	if !ok {
		return entity.SystemUser{}, nil, "el usuario ya no está activo"
	}
	return user, claims, ""
}

// RequireSession valida el Bearer token y deja en c.Locals el usuario activo que lo emitió.
func RequireSession(tokens *SessionTokens) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, claims, reason := tokens.authenticate(c.Get(fiber.HeaderAuthorization))
		if reason != "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_SESSION", Message: reason})
		}
		c.Locals(LocalUser, user)
		c.Locals(LocalClaims, claims)
		return c.Next()
	}
}

// RequireRole autoriza sólo a los roles indicados. Debe ir después de RequireSession.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		user, ok := GetUser(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_SESSION", Message: "inicie sesión para continuar"})
		}
		if _, ok := allowed[user.Role]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "su rol no tiene acceso a esta sección"})
		}
		return c.Next()
	}
}

// GetUser devuelve el usuario de la sesión guardado por RequireSession.
func GetUser(c *fiber.Ctx) (entity.SystemUser, bool) {
	u, ok := c.Locals(LocalUser).(entity.SystemUser)
	return u, ok
}

// GetClaims devuelve los claims del token de la petición.
func GetClaims(c *fiber.Ctx) *jwt.Claims {
	claims, _ := c.Locals(LocalClaims).(*jwt.Claims)
	return claims
}
