package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ariasbenraq/gastometro-backend/pkg/jwt"
)

// AuthMiddleware validates the bearer token and stores the caller's identity
// in Locals for downstream handlers.
func AuthMiddleware(tokenService *jwt.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing authorization header",
			})
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid authorization header format",
			})
		}

		claims, err := tokenService.Verify(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid token",
			})
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("usuario", claims.Usuario)
		c.Locals("rol", claims.Rol)

		return c.Next()
	}
}
