package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/websiters/gastroreview/internal/api/metrics"
	"github.com/websiters/gastroreview/internal/core/domain"
)

// RuleKind classifies what a route rule demands of the caller.
type RuleKind int

const (
	// RulePublic lets any request through without a principal.
	RulePublic RuleKind = iota
	// RuleAnyAuthenticated requires a principal, any role.
	RuleAnyAuthenticated
	// RuleRequireAnyOf requires a principal whose role set intersects Roles.
	RuleRequireAnyOf
)

// RouteRule binds a path prefix to an access requirement.
type RouteRule struct {
	Prefix string
	Kind   RuleKind
	Roles  []domain.Role
}

// Public allows everyone under prefix.
func Public(prefix string) RouteRule {
	return RouteRule{Prefix: prefix, Kind: RulePublic}
}

// Authenticated requires any valid principal under prefix.
func Authenticated(prefix string) RouteRule {
	return RouteRule{Prefix: prefix, Kind: RuleAnyAuthenticated}
}

// AnyRole requires a principal holding at least one of roles under prefix.
func AnyRole(prefix string, roles ...domain.Role) RouteRule {
	return RouteRule{Prefix: prefix, Kind: RuleRequireAnyOf, Roles: roles}
}

// Policy is a static ordered route-authorization table, evaluated
// first-match-wins after the Authenticator middleware has had its chance to
// attach a principal. Paths matching no rule default to RuleAnyAuthenticated.
type Policy struct {
	rules []RouteRule
}

func NewPolicy(rules ...RouteRule) *Policy {
	return &Policy{rules: rules}
}

// Middleware returns the echo middleware enforcing the table.
//
// A missing principal on a protected route yields 401 (re-authenticate); a
// principal without a required role yields 403 (stop retrying). Clients rely
// on that distinction.
func (p *Policy) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rule := p.match(c.Request().URL.Path)
			if rule.Kind == RulePublic {
				return next(c)
			}

			principal, ok := PrincipalFrom(c)
			if !ok {
				metrics.AuthzDenialsTotal.WithLabelValues("unauthenticated").Inc()
				return RespondUnauthorized(c, domain.ErrTokenInvalid)
			}

			if rule.Kind == RuleRequireAnyOf && !principal.HasAnyRole(rule.Roles...) {
				metrics.AuthzDenialsTotal.WithLabelValues("forbidden").Inc()
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}

			return next(c)
		}
	}
}

// match returns the first rule whose prefix matches path, or the implicit
// any-authenticated default.
func (p *Policy) match(path string) RouteRule {
	for _, rule := range p.rules {
		if strings.HasPrefix(path, rule.Prefix) {
			return rule
		}
	}
	return RouteRule{Kind: RuleAnyAuthenticated}
}
