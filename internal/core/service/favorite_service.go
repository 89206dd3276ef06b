package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/websiters/gastroreview/internal/core/domain"
	"github.com/websiters/gastroreview/internal/core/ports"
)

type favoriteService struct {
	favorites   ports.FavoriteRepository
	restaurants ports.RestaurantRepository
	reviews     ports.ReviewRepository
	log         zerolog.Logger
}

// NewFavoriteService returns a FavoriteService implementation. The target is
// checked for existence before a favorite is recorded; the unique (user,
// target) index in the store rejects a second mark.
func NewFavoriteService(
	favorites ports.FavoriteRepository,
	restaurants ports.RestaurantRepository,
	reviews ports.ReviewRepository,
	log zerolog.Logger,
) ports.FavoriteService {
	return &favoriteService{
		favorites:   favorites,
		restaurants: restaurants,
		reviews:     reviews,
		log:         log,
	}
}

func (s *favoriteService) MarkRestaurant(ctx context.Context, userEmail, restaurantID string) (*domain.FavoriteRestaurant, error) {
	restaurant, err := s.restaurants.FindByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	favorite := &domain.FavoriteRestaurant{
		UserEmail:    domain.NormalizeEmail(userEmail),
		RestaurantID: restaurant.ID,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.favorites.InsertRestaurant(ctx, favorite)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user", created.UserEmail).Str("restaurant_id", created.RestaurantID).Msg("restaurant marked as favorite")
	return created, nil
}

func (s *favoriteService) UnmarkRestaurant(ctx context.Context, userEmail, restaurantID string) error {
	return s.favorites.DeleteRestaurant(ctx, domain.NormalizeEmail(userEmail), restaurantID)
}

func (s *favoriteService) ListRestaurants(ctx context.Context, userEmail string, page ports.Page) ([]domain.FavoriteRestaurant, int64, error) {
	return s.favorites.ListRestaurantsByUser(ctx, domain.NormalizeEmail(userEmail), page.Normalize())
}

func (s *favoriteService) MarkReview(ctx context.Context, userEmail, reviewID string) (*domain.FavoriteReview, error) {
	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	favorite := &domain.FavoriteReview{
		UserEmail: domain.NormalizeEmail(userEmail),
		ReviewID:  review.ID,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.favorites.InsertReview(ctx, favorite)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user", created.UserEmail).Str("review_id", created.ReviewID).Msg("review marked as favorite")
	return created, nil
}

func (s *favoriteService) UnmarkReview(ctx context.Context, userEmail, reviewID string) error {
	return s.favorites.DeleteReview(ctx, domain.NormalizeEmail(userEmail), reviewID)
}

func (s *favoriteService) ListReviews(ctx context.Context, userEmail string, page ports.Page) ([]domain.FavoriteReview, int64, error) {
	return s.favorites.ListReviewsByUser(ctx, domain.NormalizeEmail(userEmail), page.Normalize())
}
