package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"jobnexus/internal/domain"
	"jobnexus/internal/middleware"
)

// newTestApp builds an app whose requests carry identity, or none when nil.
func newTestApp(identity *domain.Identity) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		if identity != nil {
			c.Locals(middleware.IdentityContextKey, identity)
		}
		return c.Next()
	})
	return app
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, v), string(body))
}
