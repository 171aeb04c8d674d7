package handler

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"

	"jobnexus/internal/middleware"
	"jobnexus/internal/service/meeting"
)

type MeetingHandler struct {
	meetingService meeting.Service
}

func NewMeetingHandler(meetingService meeting.Service) *MeetingHandler {
	return &MeetingHandler{meetingService: meetingService}
}

type meetingPage struct {
	pageData
	View *meeting.View
}

func (h *MeetingHandler) Show(c *fiber.Ctx) error {
	token := c.Query("id")
	if token == "" {
		middleware.SetFlash(c, "error", "Invalid meeting link")
		return c.Redirect("/", fiber.StatusFound)
	}

	view, err := h.meetingService.Check(c.UserContext(), token, middleware.GetIdentity(c))
	if err != nil {
		return err
	}
	if view.Outcome == meeting.OutcomeNotFound {
		middleware.SetFlash(c, "error", "Meeting not found")
		return c.Redirect("/", fiber.StatusFound)
	}

	status := fiber.StatusOK
	if view.Outcome == meeting.OutcomeAccessDenied {
		status = fiber.StatusForbidden
	}
	return render(c, status, "meeting", meetingPage{
		pageData: newPageData(c, "Interview Meeting"),
		View:     view,
	})
}

// Room takes one step reported by the meeting page script. The body is JSON
// and may arrive as a beacon while the page unloads.
func (h *MeetingHandler) Room(c *fiber.Ctx) error {
	token := c.Query("id")
	if token == "" {
		return middleware.BadRequest("Meeting ID required")
	}

	action := meeting.RoomAction{Action: meeting.ActionState}
	if body := bytes.TrimSpace(c.Body()); len(body) > 0 {
		if err := c.App().Config().JSONDecoder(body, &action); err != nil {
			return middleware.BadRequest("Invalid request body")
		}
	}

	snap, err := h.meetingService.Room(c.UserContext(), token, middleware.GetIdentity(c), action)
	switch {
	case err == nil:
		return c.JSON(snap)
	case errors.Is(err, meeting.ErrInvalidTransition):
		return middleware.Conflict("Action not available in the current room state")
	case errors.Is(err, meeting.ErrLeaveNotConfirmed):
		return middleware.BadRequest("Leaving the meeting requires confirmation")
	case errors.Is(err, meeting.ErrEmptyMessage):
		return middleware.BadRequest("Message is empty")
	case errors.Is(err, meeting.ErrUnknownAction):
		return middleware.BadRequest("Unknown action")
	}
	return err
}
