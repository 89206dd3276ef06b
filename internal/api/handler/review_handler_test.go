package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/websiters/gastroreview/internal/api/middleware"
	"github.com/websiters/gastroreview/internal/core/domain"
	"github.com/websiters/gastroreview/internal/core/ports"
)

type stubReviewService struct {
	createFn  func(ctx context.Context, in ports.CreateReviewInput) (*domain.Review, error)
	rateFn    func(ctx context.Context, reviewID, raterEmail string, stars int) (*domain.Rating, error)
	commentFn func(ctx context.Context, reviewID, authorEmail, content string) (*domain.ReviewComment, error)
	listFn    func(ctx context.Context, restaurantID string, page ports.Page) ([]domain.Review, int64, error)
}

func (s *stubReviewService) Create(ctx context.Context, in ports.CreateReviewInput) (*domain.Review, error) {
	return s.createFn(ctx, in)
}

func (s *stubReviewService) Get(_ context.Context, id string) (*domain.Review, error) {
	return &domain.Review{ID: id}, nil
}

func (s *stubReviewService) ListByRestaurant(ctx context.Context, restaurantID string, page ports.Page) ([]domain.Review, int64, error) {
	return s.listFn(ctx, restaurantID, page)
}

func (s *stubReviewService) Update(_ context.Context, _ domain.Principal, id string, _ ports.UpdateReviewInput) (*domain.Review, error) {
	return &domain.Review{ID: id}, nil
}

func (s *stubReviewService) Delete(_ context.Context, _ domain.Principal, _ string) error { return nil }

func (s *stubReviewService) Rate(ctx context.Context, reviewID, raterEmail string, stars int) (*domain.Rating, error) {
	return s.rateFn(ctx, reviewID, raterEmail, stars)
}

func (s *stubReviewService) Comment(ctx context.Context, reviewID, authorEmail, content string) (*domain.ReviewComment, error) {
	return s.commentFn(ctx, reviewID, authorEmail, content)
}

func (s *stubReviewService) Analysis(_ context.Context, commentID string) (*domain.CommentAnalysis, error) {
	return &domain.CommentAnalysis{CommentID: commentID}, nil
}

// authedContext builds a context carrying a principal, the way the auth
// middleware would leave it for a protected route.
func authedContext(t *testing.T, method, path, body string, principal domain.Principal) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	middleware.SetPrincipal(c, principal)
	return c, rec
}

func TestReviewHandler_CreateUsesPrincipalAsAuthor(t *testing.T) {
	stub := &stubReviewService{
		createFn: func(_ context.Context, in ports.CreateReviewInput) (*domain.Review, error) {
			if in.AuthorEmail != "alice@example.com" {
				t.Fatalf("author must come from the principal, got %q", in.AuthorEmail)
			}
			return &domain.Review{ID: "r1", AuthorEmail: in.AuthorEmail, RestaurantID: in.RestaurantID}, nil
		},
	}
	h := NewReviewHandler(stub)

	principal := domain.Principal{Email: "alice@example.com", Roles: []domain.Role{domain.RoleUser}}
	c, rec := authedContext(t, http.MethodPost, "/api/reviews",
		`{"restaurant_id":"rest1","content":"loved it","author_email":"evil@example.com"}`, principal)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestReviewHandler_CreateWithoutPrincipalFailsClosed(t *testing.T) {
	h := NewReviewHandler(&stubReviewService{
		createFn: func(_ context.Context, _ ports.CreateReviewInput) (*domain.Review, error) {
			t.Fatal("service should not be called without a principal")
			return nil, nil
		},
	})

	c, _ := newAuthContext(t, http.MethodPost, "/api/reviews", `{"restaurant_id":"rest1","content":"x"}`)
	err := h.Create(c)
	if err == nil {
		t.Fatal("expected an error without a principal")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected a 401 HTTPError, got %v", err)
	}
}

func TestReviewHandler_RateValidatesStars(t *testing.T) {
	h := NewReviewHandler(&stubReviewService{
		rateFn: func(_ context.Context, _, _ string, _ int) (*domain.Rating, error) {
			t.Fatal("service should not be called for invalid stars")
			return nil, nil
		},
	})

	principal := domain.Principal{Email: "bob@example.com", Roles: []domain.Role{domain.RoleUser}}
	c, rec := authedContext(t, http.MethodPost, "/api/reviews/r1/ratings", `{"stars":7}`, principal)
	c.SetParamNames("id")
	c.SetParamValues("r1")

	if err := h.Rate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestReviewHandler_RateDuplicatePropagates(t *testing.T) {
	h := NewReviewHandler(&stubReviewService{
		rateFn: func(_ context.Context, reviewID, raterEmail string, stars int) (*domain.Rating, error) {
			if reviewID != "r1" || raterEmail != "bob@example.com" || stars != 5 {
				t.Fatalf("unexpected args: %s %s %d", reviewID, raterEmail, stars)
			}
			return nil, domain.ErrRatingExists
		},
	})

	principal := domain.Principal{Email: "bob@example.com", Roles: []domain.Role{domain.RoleUser}}
	c, _ := authedContext(t, http.MethodPost, "/api/reviews/r1/ratings", `{"stars":5}`, principal)
	c.SetParamNames("id")
	c.SetParamValues("r1")

	if err := h.Rate(c); err != domain.ErrRatingExists {
		t.Fatalf("expected ErrRatingExists to propagate, got %v", err)
	}
}

func TestReviewHandler_ListRequiresRestaurantID(t *testing.T) {
	h := NewReviewHandler(&stubReviewService{
		listFn: func(_ context.Context, _ string, _ ports.Page) ([]domain.Review, int64, error) {
			t.Fatal("service should not be called without restaurant_id")
			return nil, 0, nil
		},
	})

	c, rec := newAuthContext(t, http.MethodGet, "/api/reviews", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestReviewHandler_ListPaginates(t *testing.T) {
	h := NewReviewHandler(&stubReviewService{
		listFn: func(_ context.Context, restaurantID string, page ports.Page) ([]domain.Review, int64, error) {
			if restaurantID != "rest1" {
				t.Fatalf("unexpected restaurant id %q", restaurantID)
			}
			if page.Page != 2 || page.Limit != 10 {
				t.Fatalf("unexpected page %+v", page)
			}
			return []domain.Review{{ID: "r1"}}, 25, nil
		},
	})

	c, rec := newAuthContext(t, http.MethodGet, "/api/reviews?restaurant_id=rest1&page=2&limit=10", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	pagination, ok := resp["pagination"].(map[string]any)
	if !ok {
		t.Fatal("pagination missing")
	}
	if pagination["total"] != float64(25) {
		t.Fatalf("unexpected total %v", pagination["total"])
	}
}
