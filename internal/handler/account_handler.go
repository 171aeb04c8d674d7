package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"jobnexus/internal/config"
	"jobnexus/internal/domain"
	"jobnexus/internal/middleware"
	"jobnexus/internal/service/account"
)

type AccountHandler struct {
	accountService account.Service
	cfg            *config.Config
}

func NewAccountHandler(accountService account.Service, cfg *config.Config) *AccountHandler {
	return &AccountHandler{accountService: accountService, cfg: cfg}
}

func (h *AccountHandler) Delete(c *fiber.Ctx) error {
	var input domain.DeleteAccountInput
	if err := c.BodyParser(&input); err != nil {
		middleware.SetFlash(c, "error", "Invalid request")
		return middleware.RedirectBack(c, "/")
	}

	err := h.accountService.Delete(c.UserContext(), middleware.GetIdentity(c), input)
	switch {
	case err == nil:
		c.ClearCookie(h.cfg.SessionCookie)
		middleware.SetFlash(c, "success", "Your account has been deleted")
		return c.Redirect("/", fiber.StatusSeeOther)
	case errors.Is(err, domain.ErrInvalidPassword):
		middleware.SetFlash(c, "error", "Password is incorrect")
	case errors.Is(err, domain.ErrConfirmationMismatch):
		middleware.SetFlash(c, "error", "Please type DELETE to confirm account deletion")
	case errors.Is(err, domain.ErrValidation):
		middleware.SetFlash(c, "error", "Please fill in all required fields")
	default:
		return err
	}
	return middleware.RedirectBack(c, "/")
}
