package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"jobnexus/internal/config"
	"jobnexus/internal/domain"
	"jobnexus/internal/middleware"
	"jobnexus/internal/service/auth"
)

type AuthHandler struct {
	authService auth.Service
	cfg         *config.Config
}

func NewAuthHandler(authService auth.Service, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

type loginPage struct {
	pageData
	Redirect string
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, fiber.StatusOK, "login", loginPage{
		pageData: newPageData(c, "Sign in"),
		Redirect: safeRedirect(c.Query("redirect")),
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input domain.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	redirect := safeRedirect(c.FormValue("redirect"))

	session, err := h.authService.Login(c.UserContext(), input, auth.ClientInfo{
		UserAgent: c.Get(fiber.HeaderUserAgent),
		IPAddress: c.IP(),
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, domain.ErrValidation):
			middleware.SetFlash(c, "error", "Invalid email or password")
		case errors.Is(err, auth.ErrAccountDisabled):
			middleware.SetFlash(c, "error", "Your account has been disabled")
		default:
			return err
		}
		return c.Redirect(middleware.LoginURL(redirect), fiber.StatusSeeOther)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect(redirect, fiber.StatusSeeOther)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.UserContext(), c.Cookies(h.cfg.SessionCookie)); err != nil {
		return err
	}
	c.ClearCookie(h.cfg.SessionCookie)
	return c.Redirect("/auth/login", fiber.StatusSeeOther)
}

// safeRedirect keeps post-login redirects on this site.
func safeRedirect(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return "/"
	}
	return target
}
