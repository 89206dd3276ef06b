package ports

import (
	"context"

	"github.com/websiters/gastroreview/internal/core/domain"
)

// FavoriteService exposes the caller's favorite restaurants and reviews.
// Marking twice fails with domain.ErrFavoriteExists; unmarking something never
// marked fails with domain.ErrFavoriteNotFound.
type FavoriteService interface {
	MarkRestaurant(ctx context.Context, userEmail, restaurantID string) (*domain.FavoriteRestaurant, error)
	UnmarkRestaurant(ctx context.Context, userEmail, restaurantID string) error
	ListRestaurants(ctx context.Context, userEmail string, page Page) ([]domain.FavoriteRestaurant, int64, error)

	MarkReview(ctx context.Context, userEmail, reviewID string) (*domain.FavoriteReview, error)
	UnmarkReview(ctx context.Context, userEmail, reviewID string) error
	ListReviews(ctx context.Context, userEmail string, page Page) ([]domain.FavoriteReview, int64, error)
}

// FavoriteRepository defines persistence for favorites. Uniqueness of the
// (user, target) pair is enforced by the store.
type FavoriteRepository interface {
	InsertRestaurant(ctx context.Context, f *domain.FavoriteRestaurant) (*domain.FavoriteRestaurant, error)
	DeleteRestaurant(ctx context.Context, userEmail, restaurantID string) error
	ListRestaurantsByUser(ctx context.Context, userEmail string, page Page) ([]domain.FavoriteRestaurant, int64, error)

	InsertReview(ctx context.Context, f *domain.FavoriteReview) (*domain.FavoriteReview, error)
	DeleteReview(ctx context.Context, userEmail, reviewID string) error
	ListReviewsByUser(ctx context.Context, userEmail string, page Page) ([]domain.FavoriteReview, int64, error)
}
