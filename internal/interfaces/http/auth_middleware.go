package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/commodities-cms/internal/application/dto"
	"github.com/jhoicas/commodities-cms/internal/domain/entity"
	"github.com/jhoicas/commodities-cms/pkg/jwt"
)

// Locals keys de la identidad autenticada en Fiber.
const (
	LocalUserID    = "user_id"
	LocalRole      = "role"
	LocalSessionID = "session_id"
	LocalIdentity  = "identity"
	LocalError     = "error"
)

// SessionResolver restaura la identidad guardada para un id de sesión.
// Lo implementa *auth.AuthUseCase.
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (entity.Identity, bool, error)
}

// AuthMiddleware valida el Bearer Token JWT y exige que la sesión que lleva siga abierta.
// La identidad que queda en c.Locals es la del store, no la del token.
func AuthMiddleware(jwtSecret string, sessions SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := strings.TrimSpace(c.Get("Authorization"))
		if authHeader == "" || strings.EqualFold(authHeader, "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		return authenticate(c, jwtSecret, sessions, strings.TrimSpace(parts[1]))
	}
}

// QueryTokenMiddleware igual que AuthMiddleware pero lee el token de ?token=.
// Lo usa /ws: el navegador no puede enviar headers en el handshake.
func QueryTokenMiddleware(jwtSecret string, sessions SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authenticate(c, jwtSecret, sessions, strings.TrimSpace(c.Query("token")))
	}
}

func authenticate(c *fiber.Ctx, jwtSecret string, sessions SessionResolver, tokenString string) error {
	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
	}
	claims, err := jwt.Parse(jwtSecret, tokenString)
	if err != nil || claims.SessionID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
	}
	id, ok, err := sessions.Resolve(c.UserContext(), claims.SessionID)
	if err != nil {
		c.Locals(LocalError, err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo leer la sesión"})
	}
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "SESSION_EXPIRED", Message: "la sesión fue cerrada o expiró"})
	}
	if id.ID != claims.UserID {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "el token no corresponde a la sesión"})
	}
	c.Locals(LocalUserID, id.ID)
	c.Locals(LocalRole, string(id.Role))
	c.Locals(LocalSessionID, claims.SessionID)
	c.Locals(LocalIdentity, id)
	return c.Next()
}

// RequireRole deja pasar solo a los roles indicados. Debe ir después de AuthMiddleware.
//   - 401 MISSING_ROLE si la identidad no trae rol.
//   - 403 FORBIDDEN si el rol no está en la lista.
func RequireRole(allowed ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "la sesión no tiene rol asignado"})
		}
		for _, r := range allowed {
			if string(r) == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el rol '" + role + "' no tiene acceso a este recurso"})
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) int64 {
	v, _ := c.Locals(LocalUserID).(int64)
	return v
}

// GetRole devuelve el rol del contexto.
func GetRole(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalRole).(string)
	return v
}

// GetSessionID devuelve el id de sesión del token.
func GetSessionID(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalSessionID).(string)
	return v
}

// GetIdentity devuelve la identidad restaurada de la sesión.
func GetIdentity(c *fiber.Ctx) entity.Identity {
	v, _ := c.Locals(LocalIdentity).(entity.Identity)
	return v
}
