package middleware

import (
	"context"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"jobnexus/internal/domain"
)

const IdentityContextKey = "identity"

// IdentityResolver turns a session cookie value into an identity.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, token string) (*domain.Identity, error)
}

// LoadIdentity resolves the session cookie when present and never rejects.
// Routes decide for themselves what an anonymous request means.
func LoadIdentity(resolver IdentityResolver, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(cookieName)
		if token == "" {
			return c.Next()
		}

		identity, err := resolver.ResolveIdentity(c.UserContext(), token)
		if err == nil && identity != nil {
			c.Locals(IdentityContextKey, identity)
		}
		return c.Next()
	}
}

// AuthRequired rejects anonymous JSON requests with 401.
func AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetIdentity(c) == nil {
			return Unauthorized("Authentication required")
		}
		return c.Next()
	}
}

// PageAuthRequired sends anonymous browsers to the login page and back.
func PageAuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetIdentity(c) == nil {
			return c.Redirect(LoginURL(string(c.Request().URI().RequestURI())), fiber.StatusFound)
		}
		return c.Next()
	}
}

func GetIdentity(c *fiber.Ctx) *domain.Identity {
	identity, ok := c.Locals(IdentityContextKey).(*domain.Identity)
	if !ok {
		return nil
	}
	return identity
}

func LoginURL(returnTo string) string {
	return "/auth/login?redirect=" + url.QueryEscape(returnTo)
}
