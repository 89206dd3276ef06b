package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/websiters/gastroreview/internal/core/domain"
	"github.com/websiters/gastroreview/internal/core/ports"
)

// AlertHandler handles HTTP requests for moderation alerts.
type AlertHandler struct {
	service ports.AlertService
}

func NewAlertHandler(service ports.AlertService) *AlertHandler {
	return &AlertHandler{service: service}
}

type createAlertRequest struct {
	Type         string `json:"type" validate:"required"`
	RestaurantID string `json:"restaurant_id,omitempty"`
	ReviewID     string `json:"review_id,omitempty"`
	Detail       string `json:"detail,omitempty"`
}

type listAlertsResponse struct {
	Data       []domain.Alert     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// Create handles POST /api/alerts.
//
// @Summary      Raise a moderation alert
// @Tags         alerts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAlertRequest  true  "Alert details"
// @Success      201   {object}  domain.Alert
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/alerts [post]
func (h *AlertHandler) Create(c echo.Context) error {
	var req createAlertRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	alert, err := h.service.Create(c.Request().Context(), ports.CreateAlertInput{
		Type:         req.Type,
		RestaurantID: req.RestaurantID,
		ReviewID:     req.ReviewID,
		Detail:       req.Detail,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, alert)
}

// Get handles GET /api/alerts/:id.
//
// @Summary      Get an alert
// @Tags         alerts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Alert ID"
// @Success      200  {object}  domain.Alert
// @Failure      404  {object}  errorResponse
// @Router       /api/alerts/{id} [get]
func (h *AlertHandler) Get(c echo.Context) error {
	alert, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, alert)
}

// List handles GET /api/alerts with optional restaurant_id/review_id filters.
//
// @Summary      List alerts
// @Tags         alerts
// @Produce      json
// @Security     BearerAuth
// @Param        restaurant_id  query     string  false  "Filter by restaurant"
// @Param        review_id      query     string  false  "Filter by review"
// @Param        page           query     int     false  "Page (1-based)"
// @Param        limit          query     int     false  "Page size (max 100)"
// @Success      200            {object}  listAlertsResponse
// @Failure      404            {object}  errorResponse
// @Router       /api/alerts [get]
func (h *AlertHandler) List(c echo.Context) error {
	page := ctxPage(c)
	filter := ports.AlertFilter{
		RestaurantID: c.QueryParam("restaurant_id"),
		ReviewID:     c.QueryParam("review_id"),
	}

	alerts, total, err := h.service.List(c.Request().Context(), filter, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listAlertsResponse{
		Data:       alerts,
		Pagination: toPagination(total, page),
	})
}

// Delete handles DELETE /api/alerts/:id.
//
// @Summary      Delete an alert
// @Tags         alerts
// @Security     BearerAuth
// @Param        id  path  string  true  "Alert ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/alerts/{id} [delete]
func (h *AlertHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
