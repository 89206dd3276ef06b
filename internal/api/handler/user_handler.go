package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/websiters/gastroreview/internal/core/domain"
	"github.com/websiters/gastroreview/internal/core/ports"
)

// UserHandler serves identity lookups.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type meResponse struct {
	Email       string   `json:"email"`
	Roles       []string `json:"roles"`
	Authorities []string `json:"authorities"`
}

type listUsersResponse struct {
	Data       []domain.User      `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// Me handles GET /api/users/me. It reflects the request principal back to
// the caller without touching the store.
//
// @Summary      Who am I
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	roles := make([]string, 0, len(principal.Roles))
	for _, r := range principal.Roles {
		roles = append(roles, string(r))
	}
	return c.JSON(http.StatusOK, meResponse{
		Email:       principal.Email,
		Roles:       roles,
		Authorities: principal.Authorities(),
	})
}

// List handles GET /api/users. Admin-only at the policy layer.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page (1-based)"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  listUsersResponse
// @Failure      403    {object}  errorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	page := ctxPage(c)
	users, total, err := h.service.List(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listUsersResponse{
		Data:       users,
		Pagination: toPagination(total, page),
	})
}
