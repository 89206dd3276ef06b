package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/websiters/gastroreview/internal/core/domain"
	"github.com/websiters/gastroreview/internal/core/ports"
)

// FavoriteHandler serves the caller's favorite restaurants and reviews.
type FavoriteHandler struct {
	service ports.FavoriteService
}

func NewFavoriteHandler(service ports.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

type markFavoriteRestaurantRequest struct {
	RestaurantID string `json:"restaurant_id" validate:"required"`
}

type markFavoriteReviewRequest struct {
	ReviewID string `json:"review_id" validate:"required"`
}

type listFavoriteRestaurantsResponse struct {
	Data       []domain.FavoriteRestaurant `json:"data"`
	Pagination paginationResponse          `json:"pagination"`
}

type listFavoriteReviewsResponse struct {
	Data       []domain.FavoriteReview `json:"data"`
	Pagination paginationResponse      `json:"pagination"`
}

// MarkRestaurant handles POST /api/favorite-restaurants.
//
// @Summary      Mark a restaurant as favorite
// @Tags         favorites
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      markFavoriteRestaurantRequest  true  "Restaurant to mark"
// @Success      201   {object}  domain.FavoriteRestaurant
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/favorite-restaurants [post]
func (h *FavoriteHandler) MarkRestaurant(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req markFavoriteRestaurantRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	favorite, err := h.service.MarkRestaurant(c.Request().Context(), principal.Email, req.RestaurantID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, favorite)
}

// ListRestaurants handles GET /api/favorite-restaurants.
//
// @Summary      List my favorite restaurants
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page (1-based)"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  listFavoriteRestaurantsResponse
// @Router       /api/favorite-restaurants [get]
func (h *FavoriteHandler) ListRestaurants(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	page := ctxPage(c)
	favorites, total, err := h.service.ListRestaurants(c.Request().Context(), principal.Email, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listFavoriteRestaurantsResponse{
		Data:       favorites,
		Pagination: toPagination(total, page),
	})
}

// UnmarkRestaurant handles DELETE /api/favorite-restaurants/:restaurantId.
//
// @Summary      Unmark a favorite restaurant
// @Tags         favorites
// @Security     BearerAuth
// @Param        restaurantId  path  string  true  "Restaurant ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/favorite-restaurants/{restaurantId} [delete]
func (h *FavoriteHandler) UnmarkRestaurant(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.service.UnmarkRestaurant(c.Request().Context(), principal.Email, c.Param("restaurantId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkReview handles POST /api/favorite-reviews.
//
// @Summary      Mark a review as favorite
// @Tags         favorites
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      markFavoriteReviewRequest  true  "Review to mark"
// @Success      201   {object}  domain.FavoriteReview
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/favorite-reviews [post]
func (h *FavoriteHandler) MarkReview(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req markFavoriteReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	favorite, err := h.service.MarkReview(c.Request().Context(), principal.Email, req.ReviewID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, favorite)
}

// ListReviews handles GET /api/favorite-reviews.
//
// @Summary      List my favorite reviews
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page (1-based)"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  listFavoriteReviewsResponse
// @Router       /api/favorite-reviews [get]
func (h *FavoriteHandler) ListReviews(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	page := ctxPage(c)
	favorites, total, err := h.service.ListReviews(c.Request().Context(), principal.Email, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listFavoriteReviewsResponse{
		Data:       favorites,
		Pagination: toPagination(total, page),
	})
}

// UnmarkReview handles DELETE /api/favorite-reviews/:reviewId.
//
// @Summary      Unmark a favorite review
// @Tags         favorites
// @Security     BearerAuth
// @Param        reviewId  path  string  true  "Review ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/favorite-reviews/{reviewId} [delete]
func (h *FavoriteHandler) UnmarkReview(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.service.UnmarkReview(c.Request().Context(), principal.Email, c.Param("reviewId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
