package handler

import (
	"github.com/gofiber/fiber/v2"

	"jobnexus/internal/domain"
	"jobnexus/internal/middleware"
	"jobnexus/internal/service/application"
)

type ApplicationHandler struct {
	appService application.Service
}

func NewApplicationHandler(appService application.Service) *ApplicationHandler {
	return &ApplicationHandler{appService: appService}
}

func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	jobID, err := paramID(c, "id")
	if err != nil {
		return middleware.BadRequest("Invalid job ID")
	}

	app, err := h.appService.Apply(c.UserContext(), middleware.GetIdentity(c), jobID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(app)
}

func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return middleware.BadRequest("Invalid application ID")
	}

	var input domain.UpdateApplicationStatusInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	app, err := h.appService.UpdateStatus(c.UserContext(), middleware.GetIdentity(c), id, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(app)
}

func (h *ApplicationHandler) UpdateRating(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return middleware.BadRequest("Invalid application ID")
	}

	var input domain.UpdateRatingInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.appService.UpdateRating(c.UserContext(), middleware.GetIdentity(c), id, input); err != nil {
		return err
	}
	return c.Status(fiber.StatusNoContent).SendString("")
}
