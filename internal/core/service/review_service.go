package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/websiters/gastroreview/internal/core/domain"
	"github.com/websiters/gastroreview/internal/core/ports"
)

type reviewService struct {
	reviews     ports.ReviewRepository
	restaurants ports.RestaurantRepository
	analyses    ports.AnalysisRepository
	events      ports.ReviewEventSink
	log         zerolog.Logger
}

// NewReviewService returns a ReviewService implementation. Ratings and
// comments emit events to the async dispatcher; the request does not wait
// for notification or sentiment work.
func NewReviewService(
	reviews ports.ReviewRepository,
	restaurants ports.RestaurantRepository,
	analyses ports.AnalysisRepository,
	events ports.ReviewEventSink,
	log zerolog.Logger,
) ports.ReviewService {
	return &reviewService{
		reviews:     reviews,
		restaurants: restaurants,
		analyses:    analyses,
		events:      events,
		log:         log,
	}
}

func (s *reviewService) Create(ctx context.Context, in ports.CreateReviewInput) (*domain.Review, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, fmt.Errorf("review content is required: %w", domain.ErrValidation)
	}
	if _, err := s.restaurants.FindByID(ctx, in.RestaurantID); err != nil {
		return nil, err
	}

	review := &domain.Review{
		AuthorEmail:  domain.NormalizeEmail(in.AuthorEmail),
		RestaurantID: in.RestaurantID,
		DishID:       in.DishID,
		Title:        strings.TrimSpace(in.Title),
		Content:      in.Content,
		PublishedAt:  time.Now().UTC(),
	}

	created, err := s.reviews.Create(ctx, review)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info().Str("review_id", created.ID).Str("restaurant_id", in.RestaurantID).Msg("review published")
	return created, nil
}

func (s *reviewService) Get(ctx context.Context, id string) (*domain.Review, error) {
	return s.reviews.FindByID(ctx, id)
}

func (s *reviewService) ListByRestaurant(ctx context.Context, restaurantID string, page ports.Page) ([]domain.Review, int64, error) {
	return s.reviews.ListByRestaurant(ctx, restaurantID, page.Normalize())
}

// Update applies partial changes. Only the author or an admin may update.
func (s *reviewService) Update(ctx context.Context, caller domain.Principal, id string, in ports.UpdateReviewInput) (*domain.Review, error) {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if review.AuthorEmail != caller.Email && !caller.HasAnyRole(domain.RoleAdmin) {
		return nil, domain.ErrForbidden
	}

	if in.Title != nil {
		review.Title = strings.TrimSpace(*in.Title)
	}
	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			return nil, fmt.Errorf("review content cannot be emptied: %w", domain.ErrValidation)
		}
		review.Content = *in.Content
	}
	if in.DishID != nil {
		review.DishID = *in.DishID
	}

	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, caller domain.Principal, id string) error {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if review.AuthorEmail != caller.Email && !caller.HasAnyRole(domain.RoleAdmin) {
		return domain.ErrForbidden
	}
	return s.reviews.Delete(ctx, id)
}

func (s *reviewService) Rate(ctx context.Context, reviewID, raterEmail string, stars int) (*domain.Rating, error) {
	if stars < 1 || stars > 5 {
		return nil, fmt.Errorf("stars must be between 1 and 5: %w", domain.ErrValidation)
	}

	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	rating := &domain.Rating{
		ReviewID:   review.ID,
		RaterEmail: domain.NormalizeEmail(raterEmail),
		Stars:      stars,
		CreatedAt:  time.Now().UTC(),
	}

	created, err := s.reviews.InsertRating(ctx, rating)
	if err != nil {
		return nil, err
	}

	s.events.Enqueue(domain.ReviewEvent{
		Kind:        domain.ReviewRated,
		ReviewID:    review.ID,
		AuthorEmail: review.AuthorEmail,
		ActorEmail:  created.RaterEmail,
		Stars:       created.Stars,
		OccurredAt:  created.CreatedAt,
	})

	return created, nil
}

func (s *reviewService) Comment(ctx context.Context, reviewID, authorEmail, content string) (*domain.ReviewComment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("comment content is required: %w", domain.ErrValidation)
	}

	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	comment := &domain.ReviewComment{
		ReviewID:    review.ID,
		AuthorEmail: domain.NormalizeEmail(authorEmail),
		Content:     content,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.reviews.InsertComment(ctx, comment)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	s.events.Enqueue(domain.ReviewEvent{
		Kind:        domain.ReviewCommented,
		ReviewID:    review.ID,
		AuthorEmail: review.AuthorEmail,
		ActorEmail:  created.AuthorEmail,
		CommentID:   created.ID,
		OccurredAt:  created.CreatedAt,
	})

	return created, nil
}

func (s *reviewService) Analysis(ctx context.Context, commentID string) (*domain.CommentAnalysis, error) {
	if _, err := s.reviews.FindCommentByID(ctx, commentID); err != nil {
		return nil, err
	}
	return s.analyses.FindByCommentID(ctx, commentID)
}
