package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/websiters/gastroreview/internal/core/domain"
	"github.com/websiters/gastroreview/internal/core/ports"
)

// NotificationHandler serves the caller's own notifications.
type NotificationHandler struct {
	service ports.NotificationService
}

func NewNotificationHandler(service ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

type listNotificationsResponse struct {
	Data       []domain.Notification `json:"data"`
	Pagination paginationResponse    `json:"pagination"`
}

// List handles GET /api/notifications.
//
// @Summary      List my notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        unread  query     bool  false  "Only unread"
// @Param        page    query     int   false  "Page (1-based)"
// @Param        limit   query     int   false  "Page size (max 100)"
// @Success      200     {object}  listNotificationsResponse
// @Failure      401     {object}  errorResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	page := ctxPage(c)
	unreadOnly := c.QueryParam("unread") == "true"
	notifications, total, err := h.service.ListForUser(c.Request().Context(), principal.Email, unreadOnly, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listNotificationsResponse{
		Data:       notifications,
		Pagination: toPagination(total, page),
	})
}

// MarkRead handles POST /api/notifications/:id/read.
//
// @Summary      Mark a notification as read
// @Tags         notifications
// @Security     BearerAuth
// @Param        id  path  string  true  "Notification ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.service.MarkRead(c.Request().Context(), principal.Email, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
