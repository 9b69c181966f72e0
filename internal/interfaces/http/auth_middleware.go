package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autopartes-api/internal/application/dto"
	"github.com/jhoicas/autopartes-api/pkg/jwt"
	"github.com/jhoicas/autopartes-api/pkg/permission"
)

// Locals keys en Fiber.
const (
	LocalIdentity = "identity"
	LocalLogger   = "logger"
)

// AccessTokenCookie cookie alternativa al header Authorization.
const AccessTokenCookie = "access_token"

// AuthMiddleware valida el JWT (Bearer o cookie access_token) y deja la identidad en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, code, msg := extractToken(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalIdentity, identityFromClaims(claims))
		return c.Next()
	}
}

func extractToken(c *fiber.Ctx) (token, code, msg string) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		if cookie := strings.TrimSpace(c.Cookies(AccessTokenCookie)); cookie != "" {
			return cookie, "", ""
		}
		return "", "MISSING_TOKEN", "Authorization header requerido"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", "INVALID_TOKEN", "formato: Bearer <token>"
	}
	token = strings.TrimSpace(parts[1])
	if token == "" {
		return "", "MISSING_TOKEN", "token vacío"
	}
	return token, "", ""
}

// identityFromClaims reconstruye la identidad; los slugs desconocidos se descartan.
func identityFromClaims(claims *jwt.Claims) *permission.Identity {
	modules := make([]permission.Module, 0, len(claims.Modules))
	for _, s := range claims.Modules {
		slug, err := permission.ParseSlug(s)
		if err != nil {
			continue
		}
		modules = append(modules, permission.Module{Name: permission.DisplayName(slug), Slug: slug})
	}
	return &permission.Identity{
		ID:       claims.UserID,
		Username: claims.Username,
		IsAdmin:  claims.IsAdmin,
		WorkerID: claims.WorkerID,
		Modules:  modules,
	}
}

// GetIdentity devuelve la identidad del contexto (después del middleware de auth).
func GetIdentity(c *fiber.Ctx) *permission.Identity {
	id, _ := c.Locals(LocalIdentity).(*permission.Identity)
	return id
}

// GetUserID devuelve el ID del usuario autenticado (0 si no hay identidad).
func GetUserID(c *fiber.Ctx) int64 {
	if id := GetIdentity(c); id != nil {
		return id.ID
	}
	return 0
}

// userRef ID del usuario como referencia opcional para auditoría.
func userRef(c *fiber.Ctx) *int64 {
	id := GetUserID(c)
	if id == 0 {
		return nil
	}
	return &id
}
