package middleware

import (
	"github.com/gofiber/fiber/v2"

	"jobnexus/internal/domain"
)

func RequireRole(roles ...domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := GetIdentity(c)
		if identity == nil {
			return Unauthorized("Authentication required")
		}

		for _, role := range roles {
			if identity.Role == role {
				return c.Next()
			}
		}
		return Forbidden("Insufficient permissions for this operation")
	}
}
