package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/websiters/gastroreview/internal/core/domain"
	"github.com/websiters/gastroreview/internal/core/ports"
)

// RestaurantHandler handles HTTP requests for restaurant operations.
type RestaurantHandler struct {
	service ports.RestaurantService
}

func NewRestaurantHandler(service ports.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{service: service}
}

type createRestaurantRequest struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description"`
	City        string `json:"city"        validate:"required"`
	Address     string `json:"address"     validate:"required"`
}

type updateRestaurantRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	City        *string `json:"city,omitempty"`
	Address     *string `json:"address,omitempty"`
}

type listRestaurantsResponse struct {
	Data       []domain.Restaurant `json:"data"`
	Pagination paginationResponse  `json:"pagination"`
}

// Create handles POST /api/restaurants.
//
// @Summary      Register a restaurant
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRestaurantRequest  true  "Restaurant details"
// @Success      201   {object}  domain.Restaurant
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/restaurants [post]
func (h *RestaurantHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createRestaurantRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	restaurant, err := h.service.Create(c.Request().Context(), ports.CreateRestaurantInput{
		OwnerEmail:  principal.Email,
		Name:        req.Name,
		Description: req.Description,
		City:        req.City,
		Address:     req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, restaurant)
}

// Get handles GET /api/restaurants/:id.
//
// @Summary      Get a restaurant
// @Tags         restaurants
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Restaurant ID"
// @Success      200  {object}  domain.Restaurant
// @Failure      404  {object}  errorResponse
// @Router       /api/restaurants/{id} [get]
func (h *RestaurantHandler) Get(c echo.Context) error {
	restaurant, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, restaurant)
}

// List handles GET /api/restaurants.
//
// @Summary      List restaurants
// @Tags         restaurants
// @Produce      json
// @Security     BearerAuth
// @Param        city   query     string  false  "Filter by city"
// @Param        page   query     int     false  "Page (1-based)"
// @Param        limit  query     int     false  "Page size (max 100)"
// @Success      200    {object}  listRestaurantsResponse
// @Router       /api/restaurants [get]
func (h *RestaurantHandler) List(c echo.Context) error {
	page := ctxPage(c)
	restaurants, total, err := h.service.List(c.Request().Context(), c.QueryParam("city"), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listRestaurantsResponse{
		Data:       restaurants,
		Pagination: toPagination(total, page),
	})
}

// Update handles PATCH /api/restaurants/:id.
//
// @Summary      Update a restaurant
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Restaurant ID"
// @Param        body  body      updateRestaurantRequest  true  "Fields to change"
// @Success      200   {object}  domain.Restaurant
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/restaurants/{id} [patch]
func (h *RestaurantHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateRestaurantRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	restaurant, err := h.service.Update(c.Request().Context(), c.Param("id"), principal, ports.UpdateRestaurantInput{
		Name:        req.Name,
		Description: req.Description,
		City:        req.City,
		Address:     req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, restaurant)
}
