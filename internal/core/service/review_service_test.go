package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/websiters/gastroreview/internal/core/domain"
	"github.com/websiters/gastroreview/internal/core/ports"
)

type stubReviewRepo struct {
	reviews  map[string]*domain.Review
	comments map[string]*domain.ReviewComment
	ratings  []*domain.Rating
	// ratingErr forces InsertRating to fail, e.g. with ErrRatingExists.
	ratingErr error
	deleted   []string
}

func newStubReviewRepo() *stubReviewRepo {
	return &stubReviewRepo{
		reviews:  map[string]*domain.Review{},
		comments: map[string]*domain.ReviewComment{},
	}
}

func (r *stubReviewRepo) Create(_ context.Context, rev *domain.Review) (*domain.Review, error) {
	stored := *rev
	stored.ID = "r1"
	r.reviews[stored.ID] = &stored
	return &stored, nil
}

func (r *stubReviewRepo) FindByID(_ context.Context, id string) (*domain.Review, error) {
	rev, ok := r.reviews[id]
	if !ok {
		return nil, domain.ErrReviewNotFound
	}
	return rev, nil
}

func (r *stubReviewRepo) ListByRestaurant(_ context.Context, _ string, _ ports.Page) ([]domain.Review, int64, error) {
	return nil, 0, nil
}

func (r *stubReviewRepo) Update(_ context.Context, rev *domain.Review) error {
	if _, ok := r.reviews[rev.ID]; !ok {
		return domain.ErrReviewNotFound
	}
	stored := *rev
	r.reviews[stored.ID] = &stored
	return nil
}

func (r *stubReviewRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.reviews[id]; !ok {
		return domain.ErrReviewNotFound
	}
	delete(r.reviews, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *stubReviewRepo) InsertRating(_ context.Context, rating *domain.Rating) (*domain.Rating, error) {
	if r.ratingErr != nil {
		return nil, r.ratingErr
	}
	stored := *rating
	stored.ID = "rt1"
	r.ratings = append(r.ratings, &stored)
	return &stored, nil
}

func (r *stubReviewRepo) InsertComment(_ context.Context, c *domain.ReviewComment) (*domain.ReviewComment, error) {
	stored := *c
	stored.ID = "c1"
	r.comments[stored.ID] = &stored
	return &stored, nil
}

func (r *stubReviewRepo) FindCommentByID(_ context.Context, id string) (*domain.ReviewComment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	return c, nil
}

type stubRestaurantRepo struct {
	restaurants map[string]*domain.Restaurant
}

func (r *stubRestaurantRepo) Create(_ context.Context, rest *domain.Restaurant) (*domain.Restaurant, error) {
	return rest, nil
}

func (r *stubRestaurantRepo) FindByID(_ context.Context, id string) (*domain.Restaurant, error) {
	rest, ok := r.restaurants[id]
	if !ok {
		return nil, domain.ErrRestaurantNotFound
	}
	return rest, nil
}

func (r *stubRestaurantRepo) List(_ context.Context, _ string, _ ports.Page) ([]domain.Restaurant, int64, error) {
	return nil, 0, nil
}

func (r *stubRestaurantRepo) Update(_ context.Context, _ *domain.Restaurant) error { return nil }

type stubAnalysisRepo struct {
	analyses map[string]*domain.CommentAnalysis
}

func (r *stubAnalysisRepo) Upsert(_ context.Context, a *domain.CommentAnalysis) error {
	if r.analyses == nil {
		r.analyses = map[string]*domain.CommentAnalysis{}
	}
	r.analyses[a.CommentID] = a
	return nil
}

func (r *stubAnalysisRepo) FindByCommentID(_ context.Context, commentID string) (*domain.CommentAnalysis, error) {
	a, ok := r.analyses[commentID]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	return a, nil
}

type recordingSink struct {
	events []domain.ReviewEvent
}

func (s *recordingSink) Enqueue(ev domain.ReviewEvent) { s.events = append(s.events, ev) }

func newTestReviewService(reviews *stubReviewRepo, sink *recordingSink) ports.ReviewService {
	restaurants := &stubRestaurantRepo{restaurants: map[string]*domain.Restaurant{
		"rest1": {ID: "rest1", OwnerEmail: "owner@example.com"},
	}}
	return NewReviewService(reviews, restaurants, &stubAnalysisRepo{}, sink, zerolog.Nop())
}

func TestReviewService_CreateRequiresExistingRestaurant(t *testing.T) {
	svc := newTestReviewService(newStubReviewRepo(), &recordingSink{})

	_, err := svc.Create(context.Background(), ports.CreateReviewInput{
		AuthorEmail:  "alice@example.com",
		RestaurantID: "missing",
		Content:      "great food",
	})
	if !errors.Is(err, domain.ErrRestaurantNotFound) {
		t.Fatalf("expected ErrRestaurantNotFound, got %v", err)
	}
}

func TestReviewService_CreateRejectsEmptyContent(t *testing.T) {
	svc := newTestReviewService(newStubReviewRepo(), &recordingSink{})

	_, err := svc.Create(context.Background(), ports.CreateReviewInput{
		AuthorEmail:  "alice@example.com",
		RestaurantID: "rest1",
		Content:      "   ",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestReviewService_RateEmitsEvent(t *testing.T) {
	repo := newStubReviewRepo()
	repo.reviews["r1"] = &domain.Review{ID: "r1", AuthorEmail: "alice@example.com"}
	sink := &recordingSink{}
	svc := newTestReviewService(repo, sink)

	rating, err := svc.Rate(context.Background(), "r1", "Bob@Example.com", 4)
	if err != nil {
		t.Fatalf("rate: %v", err)
	}
	if rating.RaterEmail != "bob@example.com" {
		t.Fatalf("expected normalized rater email, got %q", rating.RaterEmail)
	}

	if len(sink.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(sink.events))
	}
	ev := sink.events[0]
	if ev.Kind != domain.ReviewRated {
		t.Fatalf("unexpected event kind %q", ev.Kind)
	}
	if ev.AuthorEmail != "alice@example.com" || ev.ActorEmail != "bob@example.com" {
		t.Fatalf("unexpected event parties: %s %s", ev.AuthorEmail, ev.ActorEmail)
	}
	if ev.Stars != 4 {
		t.Fatalf("unexpected stars %d", ev.Stars)
	}
}

func TestReviewService_RateRejectsOutOfRangeStars(t *testing.T) {
	repo := newStubReviewRepo()
	repo.reviews["r1"] = &domain.Review{ID: "r1", AuthorEmail: "alice@example.com"}
	sink := &recordingSink{}
	svc := newTestReviewService(repo, sink)

	for _, stars := range []int{0, 6, -1} {
		if _, err := svc.Rate(context.Background(), "r1", "bob@example.com", stars); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("stars=%d: expected ErrValidation, got %v", stars, err)
		}
	}
	if len(sink.events) != 0 {
		t.Fatalf("no events expected, got %d", len(sink.events))
	}
}

func TestReviewService_RateDuplicateEmitsNoEvent(t *testing.T) {
	repo := newStubReviewRepo()
	repo.reviews["r1"] = &domain.Review{ID: "r1", AuthorEmail: "alice@example.com"}
	repo.ratingErr = domain.ErrRatingExists
	sink := &recordingSink{}
	svc := newTestReviewService(repo, sink)

	if _, err := svc.Rate(context.Background(), "r1", "bob@example.com", 5); !errors.Is(err, domain.ErrRatingExists) {
		t.Fatalf("expected ErrRatingExists, got %v", err)
	}
	if len(sink.events) != 0 {
		t.Fatalf("no events expected on a duplicate rating, got %d", len(sink.events))
	}
}

func TestReviewService_CommentEmitsEventWithCommentID(t *testing.T) {
	repo := newStubReviewRepo()
	repo.reviews["r1"] = &domain.Review{ID: "r1", AuthorEmail: "alice@example.com"}
	sink := &recordingSink{}
	svc := newTestReviewService(repo, sink)

	comment, err := svc.Comment(context.Background(), "r1", "bob@example.com", "totally agree")
	if err != nil {
		t.Fatalf("comment: %v", err)
	}

	if len(sink.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(sink.events))
	}
	ev := sink.events[0]
	if ev.Kind != domain.ReviewCommented {
		t.Fatalf("unexpected event kind %q", ev.Kind)
	}
	if ev.CommentID != comment.ID {
		t.Fatalf("event comment id %q does not match stored comment %q", ev.CommentID, comment.ID)
	}
}

func TestReviewService_UpdateOwnership(t *testing.T) {
	repo := newStubReviewRepo()
	repo.reviews["r1"] = &domain.Review{ID: "r1", AuthorEmail: "alice@example.com", Title: "Great", Content: "Loved it"}
	svc := newTestReviewService(repo, &recordingSink{})
	ctx := context.Background()
	newTitle := "Still great"

	stranger := domain.Principal{Email: "bob@example.com", Roles: []domain.Role{domain.RoleUser}}
	if _, err := svc.Update(ctx, stranger, "r1", ports.UpdateReviewInput{Title: &newTitle}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for a non-author, got %v", err)
	}

	author := domain.Principal{Email: "alice@example.com", Roles: []domain.Role{domain.RoleUser}}
	updated, err := svc.Update(ctx, author, "r1", ports.UpdateReviewInput{Title: &newTitle})
	if err != nil {
		t.Fatalf("author update: %v", err)
	}
	if updated.Title != newTitle {
		t.Fatalf("title not applied, got %q", updated.Title)
	}
	if updated.Content != "Loved it" {
		t.Fatalf("untouched field changed, content=%q", updated.Content)
	}

	admin := domain.Principal{Email: "root@example.com", Roles: []domain.Role{domain.RoleAdmin}}
	if _, err := svc.Update(ctx, admin, "r1", ports.UpdateReviewInput{Title: &newTitle}); err != nil {
		t.Fatalf("admin update: %v", err)
	}
}

func TestReviewService_UpdateRejectsEmptiedContent(t *testing.T) {
	repo := newStubReviewRepo()
	repo.reviews["r1"] = &domain.Review{ID: "r1", AuthorEmail: "alice@example.com", Content: "Loved it"}
	svc := newTestReviewService(repo, &recordingSink{})

	author := domain.Principal{Email: "alice@example.com", Roles: []domain.Role{domain.RoleUser}}
	blank := "   "
	if _, err := svc.Update(context.Background(), author, "r1", ports.UpdateReviewInput{Content: &blank}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if repo.reviews["r1"].Content != "Loved it" {
		t.Fatalf("content mutated on rejected update: %q", repo.reviews["r1"].Content)
	}
}

func TestReviewService_UpdateMissingReview(t *testing.T) {
	svc := newTestReviewService(newStubReviewRepo(), &recordingSink{})
	author := domain.Principal{Email: "alice@example.com", Roles: []domain.Role{domain.RoleUser}}

	if _, err := svc.Update(context.Background(), author, "nope", ports.UpdateReviewInput{}); !errors.Is(err, domain.ErrReviewNotFound) {
		t.Fatalf("expected ErrReviewNotFound, got %v", err)
	}
}

func TestReviewService_DeleteOwnership(t *testing.T) {
	repo := newStubReviewRepo()
	repo.reviews["r1"] = &domain.Review{ID: "r1", AuthorEmail: "alice@example.com"}
	svc := newTestReviewService(repo, &recordingSink{})
	ctx := context.Background()

	stranger := domain.Principal{Email: "bob@example.com", Roles: []domain.Role{domain.RoleUser}}
	if err := svc.Delete(ctx, stranger, "r1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for a non-author, got %v", err)
	}

	admin := domain.Principal{Email: "root@example.com", Roles: []domain.Role{domain.RoleAdmin}}
	if err := svc.Delete(ctx, admin, "r1"); err != nil {
		t.Fatalf("admin delete: %v", err)
	}

	repo.reviews["r2"] = &domain.Review{ID: "r2", AuthorEmail: "alice@example.com"}
	author := domain.Principal{Email: "alice@example.com", Roles: []domain.Role{domain.RoleUser}}
	if err := svc.Delete(ctx, author, "r2"); err != nil {
		t.Fatalf("author delete: %v", err)
	}
}
