package middleware

import (
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const flashCookie = "flash"

type Flash struct {
	Kind    string
	Message string
}

func SetFlash(c *fiber.Ctx, kind, message string) {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(kind + "|" + message),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(time.Minute),
	})
}

// PopFlash returns the pending flash message and clears it.
func PopFlash(c *fiber.Ctx) *Flash {
	raw := c.Cookies(flashCookie)
	if raw == "" {
		return nil
	}
	c.ClearCookie(flashCookie)

	value, err := url.QueryUnescape(raw)
	if err != nil {
		return nil
	}
	kind, message, ok := strings.Cut(value, "|")
	if !ok {
		return nil
	}
	return &Flash{Kind: kind, Message: message}
}

// RedirectBack goes to the referring page or the fallback.
func RedirectBack(c *fiber.Ctx, fallback string) error {
	target := c.Get(fiber.HeaderReferer)
	if target == "" {
		target = fallback
	}
	return c.Redirect(target, fiber.StatusSeeOther)
}
