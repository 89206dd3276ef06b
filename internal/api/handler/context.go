package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/websiters/gastroreview/internal/api/middleware"
	"github.com/websiters/gastroreview/internal/core/domain"
	"github.com/websiters/gastroreview/internal/core/ports"
)

// ctxPrincipal extracts the principal attached by the auth middleware.
// Handlers that reach this on a protected route should always find one; a
// missing principal means the route policy was bypassed, so fail closed.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return p, nil
}

// ctxPage reads ?page= and ?limit= query params with sane fallbacks.
func ctxPage(c echo.Context) ports.Page {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return ports.Page{Page: page, Limit: limit}.Normalize()
}
