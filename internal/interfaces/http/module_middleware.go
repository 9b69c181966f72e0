package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autopartes-api/internal/application/dto"
	"github.com/jhoicas/autopartes-api/pkg/permission"
)

// RequireModule autoriza con permission.Decide sobre la identidad del token.
// Debe usarse DESPUÉS de AuthMiddleware. No consulta la DB: los módulos viajan en los claims.
//
// Comportamiento:
//   - 401 Unauthorized → sin identidad en el contexto.
//   - 403 Forbidden    → el usuario no es admin ni tiene el módulo asignado.
func RequireModule(slug permission.Slug) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d := permission.Decide(GetIdentity(c), slug, c.OriginalURL())
		switch d.Outcome {
		case permission.Allow:
			return c.Next()
		case permission.RedirectToLogin:
			c.Set(fiber.HeaderLocation, d.Location())
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "inicie sesión para continuar",
			})
		default:
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "no tiene acceso al módulo '" + permission.DisplayName(slug) + "'",
			})
		}
	}
}

// RequireAdmin restringe la ruta a administradores.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := GetIdentity(c)
		if id == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "inicie sesión para continuar"})
		}
		if !id.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo administradores"})
		}
		return c.Next()
	}
}
