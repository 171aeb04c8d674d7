package handler

import (
	"github.com/gofiber/fiber/v2"

	"jobnexus/internal/domain"
	"jobnexus/internal/middleware"
	"jobnexus/internal/service/interview"
)

type InterviewHandler struct {
	interviewService interview.Service
}

func NewInterviewHandler(interviewService interview.Service) *InterviewHandler {
	return &InterviewHandler{interviewService: interviewService}
}

func (h *InterviewHandler) Schedule(c *fiber.Ctx) error {
	var input domain.ScheduleInterviewInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	event, err := h.interviewService.Schedule(c.UserContext(), middleware.GetIdentity(c), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

func (h *InterviewHandler) Cancel(c *fiber.Ctx) error {
	if err := h.interviewService.Cancel(c.UserContext(), middleware.GetIdentity(c), c.Params("token")); err != nil {
		return err
	}
	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *InterviewHandler) Reschedule(c *fiber.Ctx) error {
	var input domain.RescheduleInterviewInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.interviewService.Reschedule(c.UserContext(), middleware.GetIdentity(c), c.Params("token"), input); err != nil {
		return err
	}
	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *InterviewHandler) Complete(c *fiber.Ctx) error {
	if err := h.interviewService.Complete(c.UserContext(), middleware.GetIdentity(c), c.Params("token")); err != nil {
		return err
	}
	return c.Status(fiber.StatusNoContent).SendString("")
}
