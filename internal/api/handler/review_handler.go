package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/websiters/gastroreview/internal/core/domain"
	"github.com/websiters/gastroreview/internal/core/ports"
)

// ReviewHandler handles HTTP requests for reviews, ratings, comments and
// comment sentiment analyses.
type ReviewHandler struct {
	service ports.ReviewService
}

func NewReviewHandler(service ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

type createReviewRequest struct {
	RestaurantID string `json:"restaurant_id" validate:"required"`
	DishID       string `json:"dish_id,omitempty"`
	Title        string `json:"title"`
	Content      string `json:"content" validate:"required"`
}

type updateReviewRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
	DishID  *string `json:"dish_id,omitempty"`
}

type rateReviewRequest struct {
	Stars int `json:"stars" validate:"required,min=1,max=5"`
}

type commentReviewRequest struct {
	Content string `json:"content" validate:"required"`
}

type listReviewsResponse struct {
	Data       []domain.Review    `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// Create handles POST /api/reviews.
//
// @Summary      Publish a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createReviewRequest  true  "Review details"
// @Success      201   {object}  domain.Review
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	review, err := h.service.Create(c.Request().Context(), ports.CreateReviewInput{
		AuthorEmail:  principal.Email,
		RestaurantID: req.RestaurantID,
		DishID:       req.DishID,
		Title:        req.Title,
		Content:      req.Content,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, review)
}

// Get handles GET /api/reviews/:id.
//
// @Summary      Get a review
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Review ID"
// @Success      200  {object}  domain.Review
// @Failure      404  {object}  errorResponse
// @Router       /api/reviews/{id} [get]
func (h *ReviewHandler) Get(c echo.Context) error {
	review, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, review)
}

// List handles GET /api/reviews?restaurant_id=...
//
// @Summary      List reviews of a restaurant
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        restaurant_id  query     string  true   "Restaurant ID"
// @Param        page           query     int     false  "Page (1-based)"
// @Param        limit          query     int     false  "Page size (max 100)"
// @Success      200            {object}  listReviewsResponse
// @Router       /api/reviews [get]
func (h *ReviewHandler) List(c echo.Context) error {
	restaurantID := c.QueryParam("restaurant_id")
	if restaurantID == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "restaurant_id is required"})
	}

	page := ctxPage(c)
	reviews, total, err := h.service.ListByRestaurant(c.Request().Context(), restaurantID, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listReviewsResponse{
		Data:       reviews,
		Pagination: toPagination(total, page),
	})
}

// Update handles PATCH /api/reviews/:id.
//
// @Summary      Update a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Review ID"
// @Param        body  body      updateReviewRequest  true  "Fields to change"
// @Success      200   {object}  domain.Review
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/reviews/{id} [patch]
func (h *ReviewHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	review, err := h.service.Update(c.Request().Context(), principal, c.Param("id"), ports.UpdateReviewInput{
		Title:   req.Title,
		Content: req.Content,
		DishID:  req.DishID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, review)
}

// Delete handles DELETE /api/reviews/:id.
//
// @Summary      Delete a review
// @Tags         reviews
// @Security     BearerAuth
// @Param        id  path  string  true  "Review ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/reviews/{id} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), principal, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Rate handles POST /api/reviews/:id/ratings.
//
// @Summary      Rate a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Review ID"
// @Param        body  body      rateReviewRequest  true  "Stars (1-5)"
// @Success      201   {object}  domain.Rating
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/reviews/{id}/ratings [post]
func (h *ReviewHandler) Rate(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req rateReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	rating, err := h.service.Rate(c.Request().Context(), c.Param("id"), principal.Email, req.Stars)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, rating)
}

// Comment handles POST /api/reviews/:id/comments.
//
// @Summary      Comment on a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Review ID"
// @Param        body  body      commentReviewRequest  true  "Comment content"
// @Success      201   {object}  domain.ReviewComment
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/reviews/{id}/comments [post]
func (h *ReviewHandler) Comment(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req commentReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	comment, err := h.service.Comment(c.Request().Context(), c.Param("id"), principal.Email, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}

// Analysis handles GET /api/reviewCommentAnalysis/:commentId.
//
// @Summary      Get the sentiment analysis of a review comment
// @Tags         reviews
// @Produce      json
// @Param        commentId  path      string  true  "Comment ID"
// @Success      200        {object}  domain.CommentAnalysis
// @Failure      404        {object}  errorResponse
// @Router       /api/reviewCommentAnalysis/{commentId} [get]
func (h *ReviewHandler) Analysis(c echo.Context) error {
	analysis, err := h.service.Analysis(c.Request().Context(), c.Param("commentId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, analysis)
}
