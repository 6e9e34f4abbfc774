package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireRoles verifies that the authenticated user holds one of the allowed
// roles. Must run after AuthMiddleware.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rol, ok := c.Locals("rol").(string)
		if !ok || rol == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		for _, allowed := range roles {
			if rol == allowed {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":          "Forbidden: insufficient permissions",
			"required_roles": roles,
		})
	}
}
