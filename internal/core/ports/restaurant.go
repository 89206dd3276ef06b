package ports

import (
	"context"

	"github.com/websiters/gastroreview/internal/core/domain"
)

// CreateRestaurantInput carries the fields needed to register a restaurant.
type CreateRestaurantInput struct {
	OwnerEmail  string
	Name        string
	Description string
	City        string
	Address     string
}

// UpdateRestaurantInput carries optional fields; nil means "leave unchanged".
type UpdateRestaurantInput struct {
	Name        *string
	Description *string
	City        *string
	Address     *string
}

// RestaurantService exposes restaurant operations to the HTTP layer.
type RestaurantService interface {
	Create(ctx context.Context, in CreateRestaurantInput) (*domain.Restaurant, error)
	Get(ctx context.Context, id string) (*domain.Restaurant, error)
	// List returns a page of restaurants, optionally filtered by city.
	List(ctx context.Context, city string, page Page) ([]domain.Restaurant, int64, error)
	// Update applies changes when the caller owns the restaurant or is an admin.
	Update(ctx context.Context, id string, caller domain.Principal, in UpdateRestaurantInput) (*domain.Restaurant, error)
}

// RestaurantRepository defines persistence for restaurants.
type RestaurantRepository interface {
	Create(ctx context.Context, r *domain.Restaurant) (*domain.Restaurant, error)
	FindByID(ctx context.Context, id string) (*domain.Restaurant, error)
	List(ctx context.Context, city string, page Page) ([]domain.Restaurant, int64, error)
	Update(ctx context.Context, r *domain.Restaurant) error
}

// CreateDishInput carries the fields for adding a dish to a restaurant menu.
type CreateDishInput struct {
	RestaurantID string
	Name         string
	Description  string
	PriceCents   int
	Available    bool
}

// UpdateDishInput carries optional fields; nil means "leave unchanged".
type UpdateDishInput struct {
	Name        *string
	Description *string
	PriceCents  *int
	Available   *bool
}

// DishService exposes dish operations. Reads are public; writes are gated on
// restaurant ownership by the service.
type DishService interface {
	Create(ctx context.Context, caller domain.Principal, in CreateDishInput) (*domain.Dish, error)
	Get(ctx context.Context, id string) (*domain.Dish, error)
	ListByRestaurant(ctx context.Context, restaurantID string, page Page) ([]domain.Dish, int64, error)
	Update(ctx context.Context, caller domain.Principal, id string, in UpdateDishInput) (*domain.Dish, error)
	Delete(ctx context.Context, caller domain.Principal, id string) error
}

// DishRepository defines persistence for dishes.
type DishRepository interface {
	Create(ctx context.Context, d *domain.Dish) (*domain.Dish, error)
	FindByID(ctx context.Context, id string) (*domain.Dish, error)
	ListByRestaurant(ctx context.Context, restaurantID string, page Page) ([]domain.Dish, int64, error)
	Update(ctx context.Context, d *domain.Dish) error
	Delete(ctx context.Context, id string) error
}
