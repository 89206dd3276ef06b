package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/websiters/gastroreview/internal/core/domain"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, email, password, role string) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, string, error)
}

func (s *stubAuthService) Register(ctx context.Context, email, password, role string) (*domain.User, error) {
	return s.registerFn(ctx, email, password, role)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, string, error) {
	return s.loginFn(ctx, email, password)
}

func newAuthContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (string, string, error) {
			if email != "Alice@Example.com" || password != "s3cret!" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "signed-token", "alice@example.com", nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthContext(t, http.MethodPost, "/auth/login",
		`{"email":"Alice@Example.com","password":"s3cret!"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "signed-token" {
		t.Fatalf("unexpected token %q", resp["token"])
	}
	if resp["email"] != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", resp["email"])
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, _, _ string) (string, string, error) {
			return "", "", domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"wrong"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(_ context.Context, _, _ string) (string, string, error) {
			t.Fatal("service should not be called on a validation failure")
			return "", "", nil
		},
	})

	c, rec := newAuthContext(t, http.MethodPost, "/auth/login", `{"email":"alice@example.com"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, email, password, role string) (*domain.User, error) {
			if role != "OWNER" {
				t.Fatalf("unexpected role %q", role)
			}
			return &domain.User{
				ID:    "u1",
				Email: "bob@example.com",
				Roles: []domain.Role{domain.RoleOwner},
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthContext(t, http.MethodPost, "/auth/signup",
		`{"email":"Bob@Example.com","password":"s3cret!","role":"OWNER"}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["email"] != "bob@example.com" {
		t.Fatalf("unexpected email %v", resp["email"])
	}
	if _, ok := resp["password_hash"]; ok {
		t.Fatal("password hash leaked in response")
	}
}

func TestAuthHandler_Signup_DuplicateEmailPropagates(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, _, _, _ string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newAuthContext(t, http.MethodPost, "/auth/signup",
		`{"email":"bob@example.com","password":"s3cret!"}`)
	err := h.Signup(c)
	if err == nil {
		t.Fatal("expected the conflict to propagate to the error handler")
	}
	if err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Signup_ShortPassword(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		registerFn: func(_ context.Context, _, _, _ string) (*domain.User, error) {
			t.Fatal("service should not be called on a validation failure")
			return nil, nil
		},
	})

	c, rec := newAuthContext(t, http.MethodPost, "/auth/signup",
		`{"email":"bob@example.com","password":"abc"}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
