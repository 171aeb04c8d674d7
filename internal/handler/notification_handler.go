package handler

import (
	"bytes"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"jobnexus/internal/domain"
	"jobnexus/internal/middleware"
	"jobnexus/internal/service/notification"
)

// apiResponse is the envelope of the polling endpoint. It never uses the
// global error handler so every status carries the same shape.
type apiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type apiRequest struct {
	Action string  `json:"action"`
	ID     looseID `json:"id"`
}

// looseID reads a JSON number or a numeric string. Anything else reads as 0.
type looseID int64

func (l *looseID) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*l = looseID(v)
		return nil
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		*l = looseID(int64(v))
		return nil
	}
	*l = 0
	return nil
}

// ptr returns nil for ids that cannot name a notification.
func (l looseID) ptr() *int64 {
	if l <= 0 {
		return nil
	}
	id := int64(l)
	return &id
}

type NotificationHandler struct {
	notifService notification.Service
	logger       *zap.Logger
}

func NewNotificationHandler(notifService notification.Service, logger *zap.Logger) *NotificationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationHandler{notifService: notifService, logger: logger}
}

// API serves /api/notifications for every method.
func (h *NotificationHandler) API(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "no-cache, must-revalidate")

	identity := middleware.GetIdentity(c)
	if identity == nil {
		return apiFail(c, fiber.StatusUnauthorized, "Authentication required")
	}

	switch c.Method() {
	case fiber.MethodGet:
		return h.apiGet(c, identity)
	case fiber.MethodPost:
		return h.apiPost(c, identity)
	}
	return apiFail(c, fiber.StatusMethodNotAllowed, "Method not allowed")
}

func (h *NotificationHandler) apiGet(c *fiber.Ctx, identity *domain.Identity) error {
	switch c.Query("action", "list") {
	case "list":
		limit := domain.DefaultListLimit
		if raw := c.Query("limit"); raw != "" {
			limit, _ = strconv.Atoi(raw)
		}
		items, err := h.notifService.List(c.UserContext(), identity, domain.ListOptions{
			Limit:      limit,
			UnreadOnly: c.Query("unread_only") == "true",
		})
		if err != nil {
			return h.apiError(c, err)
		}
		return c.JSON(apiResponse{Success: true, Data: items})

	case "count":
		count, err := h.notifService.CountUnread(c.UserContext(), identity)
		if err != nil {
			return h.apiError(c, err)
		}
		return c.JSON(apiResponse{Success: true, Data: fiber.Map{"unread_count": count}})
	}
	return apiFail(c, fiber.StatusBadRequest, "Unknown action")
}

func (h *NotificationHandler) apiPost(c *fiber.Ctx, identity *domain.Identity) error {
	// The body is JSON whatever the Content-Type header says.
	var req apiRequest
	if body := bytes.TrimSpace(c.Body()); len(body) > 0 {
		if err := c.App().Config().JSONDecoder(body, &req); err != nil {
			return apiFail(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}

	switch req.Action {
	case "mark_read":
		if err := h.notifService.MarkRead(c.UserContext(), identity, req.ID.ptr()); err != nil {
			return h.apiError(c, err)
		}
		return c.JSON(apiResponse{Success: true, Message: "Notifications marked as read"})

	case "delete":
		if err := h.notifService.Delete(c.UserContext(), identity, req.ID.ptr()); err != nil {
			return h.apiError(c, err)
		}
		return c.JSON(apiResponse{Success: true, Message: "Notification deleted"})
	}
	return apiFail(c, fiber.StatusBadRequest, "Unknown action")
}

func (h *NotificationHandler) apiError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return apiFail(c, fiber.StatusUnauthorized, "Authentication required")
	case errors.Is(err, domain.ErrMissingNotificationID):
		return apiFail(c, fiber.StatusBadRequest, "Notification ID required")
	case errors.Is(err, domain.ErrStorage):
		h.logger.Error("notification api storage error", zap.Error(err))
		return apiFail(c, fiber.StatusInternalServerError, "Database error")
	}
	h.logger.Error("notification api error", zap.Error(err))
	return apiFail(c, fiber.StatusInternalServerError, "Server error")
}

func apiFail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(apiResponse{Success: false, Message: message})
}

type notificationsPage struct {
	pageData
	Page *domain.NotificationPage
}

// Page renders /notifications. A ?read=<id> marks that notification read and
// follows its link when it has one.
func (h *NotificationHandler) Page(c *fiber.Ctx) error {
	identity := middleware.GetIdentity(c)

	if raw := c.Query("read"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			link, err := h.notifService.MarkReadAndResolveLink(c.UserContext(), identity, id)
			if err != nil {
				return err
			}
			if link != "" {
				return c.Redirect(link, fiber.StatusFound)
			}
		}
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	filter := domain.ParseNotificationFilter(c.Query("filter"))

	result, err := h.notifService.Page(c.UserContext(), identity, page, filter)
	if err != nil {
		return err
	}

	return render(c, fiber.StatusOK, "notifications", notificationsPage{
		pageData: newPageData(c, "Notifications"),
		Page:     result,
	})
}

// PageAction handles the bulk and single-item forms of /notifications.
func (h *NotificationHandler) PageAction(c *fiber.Ctx) error {
	identity := middleware.GetIdentity(c)
	ctx := c.UserContext()

	var (
		err     error
		success string
	)
	switch c.FormValue("action") {
	case "mark_all_read":
		err = h.notifService.MarkRead(ctx, identity, nil)
		success = "All notifications marked as read"
	case "delete_all":
		err = h.notifService.DeleteAll(ctx, identity)
		success = "All notifications deleted"
	case "delete":
		var id *int64
		if v, perr := strconv.ParseInt(c.FormValue("id"), 10, 64); perr == nil {
			id = &v
		}
		err = h.notifService.Delete(ctx, identity, id)
		success = "Notification deleted"
	default:
		return c.Redirect("/notifications", fiber.StatusSeeOther)
	}

	if err != nil {
		h.logger.Warn("notification page action failed", zap.String("action", c.FormValue("action")), zap.Error(err))
		middleware.SetFlash(c, "error", "Something went wrong. Please try again.")
	} else {
		middleware.SetFlash(c, "success", success)
	}
	return c.Redirect("/notifications", fiber.StatusSeeOther)
}
