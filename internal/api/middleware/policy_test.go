package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/websiters/gastroreview/internal/core/domain"
)

func runPolicy(t *testing.T, p *Policy, path string, principal *domain.Principal) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if principal != nil {
		c.Set(principalKey, *principal)
	}

	called := false
	handler := p.Middleware()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func testPolicy() *Policy {
	return NewPolicy(
		Public("/api/dishes"),
		AnyRole("/api/restaurants", domain.RoleOwner, domain.RoleAdmin),
		Authenticated("/api/users/me"),
		AnyRole("/api/users", domain.RoleAdmin),
	)
}

func TestPolicy_OwnerAllowedOnRestaurants(t *testing.T) {
	p := testPolicy()
	owner := &domain.Principal{Email: "owner@example.com", Roles: []domain.Role{domain.RoleOwner}}

	rec, called := runPolicy(t, p, "/api/restaurants", owner)
	if !called {
		t.Fatal("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestPolicy_UserForbiddenOnRestaurants(t *testing.T) {
	p := testPolicy()
	user := &domain.Principal{Email: "user@example.com", Roles: []domain.Role{domain.RoleUser}}

	rec, called := runPolicy(t, p, "/api/restaurants", user)
	if called {
		t.Fatal("next should not run without a required role")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestPolicy_AnonymousUnauthorizedOnRestaurants(t *testing.T) {
	p := testPolicy()

	rec, called := runPolicy(t, p, "/api/restaurants", nil)
	if called {
		t.Fatal("next should not run without a principal")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestPolicy_PublicPathNeedsNoPrincipal(t *testing.T) {
	p := testPolicy()

	rec, called := runPolicy(t, p, "/api/dishes", nil)
	if !called {
		t.Fatal("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestPolicy_FirstMatchWins(t *testing.T) {
	// /api/users/me matches the Authenticated rule before the admin-only
	// /api/users rule, so a plain USER may read their own profile.
	p := testPolicy()
	user := &domain.Principal{Email: "user@example.com", Roles: []domain.Role{domain.RoleUser}}

	rec, called := runPolicy(t, p, "/api/users/me", user)
	if !called {
		t.Fatal("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec, called = runPolicy(t, p, "/api/users", user)
	if called {
		t.Fatal("next should not run for USER on the admin list")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestPolicy_UnmatchedPathRequiresAuthentication(t *testing.T) {
	p := testPolicy()

	rec, called := runPolicy(t, p, "/api/something-else", nil)
	if called {
		t.Fatal("next should not run anonymously on an unmatched path")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	user := &domain.Principal{Email: "user@example.com", Roles: []domain.Role{domain.RoleUser}}
	rec, called = runPolicy(t, p, "/api/something-else", user)
	if !called {
		t.Fatal("next not called for an authenticated caller")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestPolicy_AdminPassesEverywhere(t *testing.T) {
	p := testPolicy()
	admin := &domain.Principal{Email: "admin@example.com", Roles: []domain.Role{domain.RoleAdmin}}

	for _, path := range []string{"/api/restaurants", "/api/users", "/api/users/me"} {
		rec, called := runPolicy(t, p, path, admin)
		if !called {
			t.Fatalf("next not called for admin on %s", path)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for admin on %s, got %d", path, rec.Code)
		}
	}
}
