package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/websiters/gastroreview/internal/api/metrics"
	"github.com/websiters/gastroreview/internal/core/domain"
	"github.com/websiters/gastroreview/internal/core/ports"
)

const bearerPrefix = "Bearer "

// principalKey is the echo context key holding the request's Principal.
// Once set by the auth middleware it is never mutated again for that request.
const principalKey = "auth.principal"

// DefaultPublicPrefixes is the built-in allow-list of path prefixes that skip
// authentication entirely: login/signup, docs-adjacent endpoints, health and
// metrics probes, and the read-heavy public sub-resources. Every entry must
// match at least one registered route; notification and comment endpoints
// resolve the caller from the principal and stay off this list.
var DefaultPublicPrefixes = []string{
	"/auth",
	"/api/users/signup",
	"/api/users/signin",
	"/graphql",
	"/graphiql",
	"/api/dishes",
	"/api/reviewCommentAnalysis",
	"/health",
	"/metrics",
}

// Authenticator is the per-request authentication middleware. It extracts and
// verifies the bearer token, resolves the caller's identity and attaches an
// immutable Principal to the request context. It never authorizes anything:
// route-level decisions belong to the Policy middleware, which runs after it.
type Authenticator struct {
	tokens ports.TokenService
	users  ports.UserRepository
	public []string
	log    zerolog.Logger
}

// NewAuthenticator builds the middleware. An empty publicPrefixes falls back
// to DefaultPublicPrefixes.
func NewAuthenticator(tokens ports.TokenService, users ports.UserRepository, publicPrefixes []string, log zerolog.Logger) *Authenticator {
	if len(publicPrefixes) == 0 {
		publicPrefixes = DefaultPublicPrefixes
	}
	return &Authenticator{tokens: tokens, users: users, public: publicPrefixes, log: log}
}

// Middleware returns the echo middleware function.
//
// Per request: public paths pass through untouched; a missing or non-Bearer
// Authorization header passes through anonymously (the policy layer may still
// reject); a present-but-invalid token short-circuits with 401 before any
// downstream handler runs.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if a.isPublic(c.Request().URL.Path) {
				return next(c)
			}

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" || !strings.HasPrefix(header, bearerPrefix) {
				return next(c)
			}

			subject, err := a.tokens.Verify(strings.TrimPrefix(header, bearerPrefix))
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues(verifyResult(err)).Inc()
				return RespondUnauthorized(c, err)
			}
			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()

			user, err := a.users.FindByEmail(c.Request().Context(), domain.NormalizeEmail(subject))
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					// Subject no longer exists: indistinguishable from a bad
					// token as far as the caller is concerned.
					a.log.Debug().Str("subject", subject).Msg("token subject not found")
					return RespondUnauthorized(c, domain.ErrTokenInvalid)
				}
				return err
			}

			c.Set(principalKey, domain.Principal{
				Email: user.Email,
				Roles: append([]domain.Role(nil), user.Roles...),
			})
			return next(c)
		}
	}
}

func (a *Authenticator) isPublic(path string) bool {
	for _, prefix := range a.public {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func verifyResult(err error) string {
	if errors.Is(err, domain.ErrTokenExpired) {
		return "expired"
	}
	return "invalid"
}

// PrincipalFrom returns the authenticated principal attached to the request,
// if any. This is the only accessor downstream handlers should use.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	return p, ok
}

// SetPrincipal attaches a principal to the request context under the same key
// the Authenticator uses. Intended for use in tests only.
func SetPrincipal(c echo.Context, p domain.Principal) {
	c.Set(principalKey, p)
}

// unauthorizedBody is the structured 401 envelope, shared by the auth
// middleware and the policy layer so every unauthenticated access looks the
// same to clients.
type unauthorizedBody struct {
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
}

// RespondUnauthorized writes the uniform 401 response. Swagger UI paths get a
// basic-auth challenge header instead of the JSON hint, mirroring the
// documented fallback scheme for the docs UI. The message distinguishes
// expired from invalid/missing tokens so clients know whether to re-login,
// without exposing signature internals. No-op if the response was already
// committed.
func RespondUnauthorized(c echo.Context, cause error) error {
	if c.Response().Committed {
		return nil
	}

	path := c.Request().URL.Path
	if strings.HasPrefix(path, "/swagger") {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, `Basic realm="Swagger Realm"`)
		return c.JSON(http.StatusUnauthorized, unauthorizedBody{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Status:    http.StatusUnauthorized,
			Error:     "Unauthorized",
			Message:   "Authentication required for API docs",
		})
	}

	msg := "Invalid or missing token. Please sign in again."
	if errors.Is(cause, domain.ErrTokenExpired) {
		msg = "The token has expired. Please sign in again."
	}
	return c.JSON(http.StatusUnauthorized, unauthorizedBody{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Status:    http.StatusUnauthorized,
		Error:     "Unauthorized",
		Message:   msg,
	})
}
