package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/websiters/gastroreview/internal/core/domain"
	"github.com/websiters/gastroreview/internal/core/ports"
)

// DishHandler handles HTTP requests for dish operations. Reads are public;
// writes require restaurant ownership, enforced by the service.
type DishHandler struct {
	service ports.DishService
}

func NewDishHandler(service ports.DishService) *DishHandler {
	return &DishHandler{service: service}
}

type createDishRequest struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description"`
	PriceCents  int    `json:"price_cents" validate:"required,gt=0"`
	Available   bool   `json:"available"`
}

type updateDishRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	PriceCents  *int    `json:"price_cents,omitempty"`
	Available   *bool   `json:"available,omitempty"`
}

type listDishesResponse struct {
	Data       []domain.Dish      `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// Create handles POST /api/restaurants/:id/dishes.
//
// Menu writes live under the protected restaurant tree; the public /api/dishes
// prefix is read-only by construction.
//
// @Summary      Add a dish to a restaurant menu
// @Tags         dishes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Restaurant ID"
// @Param        body  body      createDishRequest  true  "Dish details"
// @Success      201   {object}  domain.Dish
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/restaurants/{id}/dishes [post]
func (h *DishHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createDishRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	dish, err := h.service.Create(c.Request().Context(), principal, ports.CreateDishInput{
		RestaurantID: c.Param("id"),
		Name:         req.Name,
		Description:  req.Description,
		PriceCents:   req.PriceCents,
		Available:    req.Available,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dish)
}

// Get handles GET /api/dishes/:id.
//
// @Summary      Get a dish
// @Tags         dishes
// @Produce      json
// @Param        id   path      string  true  "Dish ID"
// @Success      200  {object}  domain.Dish
// @Failure      404  {object}  errorResponse
// @Router       /api/dishes/{id} [get]
func (h *DishHandler) Get(c echo.Context) error {
	dish, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dish)
}

// List handles GET /api/dishes?restaurant_id=...
//
// @Summary      List dishes of a restaurant
// @Tags         dishes
// @Produce      json
// @Param        restaurant_id  query     string  true   "Restaurant ID"
// @Param        page           query     int     false  "Page (1-based)"
// @Param        limit          query     int     false  "Page size (max 100)"
// @Success      200            {object}  listDishesResponse
// @Router       /api/dishes [get]
func (h *DishHandler) List(c echo.Context) error {
	restaurantID := c.QueryParam("restaurant_id")
	if restaurantID == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "restaurant_id is required"})
	}

	page := ctxPage(c)
	dishes, total, err := h.service.ListByRestaurant(c.Request().Context(), restaurantID, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listDishesResponse{
		Data:       dishes,
		Pagination: toPagination(total, page),
	})
}

// Update handles PATCH /api/restaurants/:id/dishes/:dishId.
//
// @Summary      Update a dish
// @Tags         dishes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string             true  "Restaurant ID"
// @Param        dishId  path      string             true  "Dish ID"
// @Param        body    body      updateDishRequest  true  "Fields to change"
// @Success      200     {object}  domain.Dish
// @Failure      400     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /api/restaurants/{id}/dishes/{dishId} [patch]
func (h *DishHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateDishRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	dish, err := h.service.Update(c.Request().Context(), principal, c.Param("dishId"), ports.UpdateDishInput{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Available:   req.Available,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dish)
}

// Delete handles DELETE /api/restaurants/:id/dishes/:dishId.
//
// @Summary      Remove a dish
// @Tags         dishes
// @Security     BearerAuth
// @Param        id      path  string  true  "Restaurant ID"
// @Param        dishId  path  string  true  "Dish ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/restaurants/{id}/dishes/{dishId} [delete]
func (h *DishHandler) Delete(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), principal, c.Param("dishId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
