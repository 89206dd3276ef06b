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

type dishService struct {
	dishes      ports.DishRepository
	restaurants ports.RestaurantRepository
	log         zerolog.Logger
}

// NewDishService returns a DishService implementation. Menu writes are gated
// on owning the parent restaurant (or being an admin); reads are open.
func NewDishService(dishes ports.DishRepository, restaurants ports.RestaurantRepository, log zerolog.Logger) ports.DishService {
	return &dishService{dishes: dishes, restaurants: restaurants, log: log}
}

func (s *dishService) Create(ctx context.Context, caller domain.Principal, in ports.CreateDishInput) (*domain.Dish, error) {
	if strings.TrimSpace(in.Name) == "" || in.PriceCents <= 0 {
		return nil, fmt.Errorf("dish name and a positive price are required: %w", domain.ErrValidation)
	}

	restaurant, err := s.restaurants.FindByID(ctx, in.RestaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant.OwnerEmail != caller.Email && !caller.HasAnyRole(domain.RoleAdmin) {
		return nil, domain.ErrForbidden
	}

	dish := &domain.Dish{
		RestaurantID: restaurant.ID,
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		PriceCents:   in.PriceCents,
		Available:    in.Available,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.dishes.Create(ctx, dish)
	if err != nil {
		return nil, fmt.Errorf("create dish: %w", err)
	}

	s.log.Info().Str("dish_id", created.ID).Str("restaurant_id", restaurant.ID).Msg("dish created")
	return created, nil
}

func (s *dishService) Get(ctx context.Context, id string) (*domain.Dish, error) {
	return s.dishes.FindByID(ctx, id)
}

func (s *dishService) ListByRestaurant(ctx context.Context, restaurantID string, page ports.Page) ([]domain.Dish, int64, error) {
	return s.dishes.ListByRestaurant(ctx, restaurantID, page.Normalize())
}

// Update applies partial changes, gated on owning the parent restaurant.
func (s *dishService) Update(ctx context.Context, caller domain.Principal, id string, in ports.UpdateDishInput) (*domain.Dish, error) {
	dish, err := s.dishes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	restaurant, err := s.restaurants.FindByID(ctx, dish.RestaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant.OwnerEmail != caller.Email && !caller.HasAnyRole(domain.RoleAdmin) {
		return nil, domain.ErrForbidden
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, fmt.Errorf("dish name cannot be emptied: %w", domain.ErrValidation)
		}
		dish.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		dish.Description = *in.Description
	}
	if in.PriceCents != nil {
		if *in.PriceCents <= 0 {
			return nil, fmt.Errorf("dish price must be positive: %w", domain.ErrValidation)
		}
		dish.PriceCents = *in.PriceCents
	}
	if in.Available != nil {
		dish.Available = *in.Available
	}

	if err := s.dishes.Update(ctx, dish); err != nil {
		return nil, fmt.Errorf("update dish: %w", err)
	}
	return dish, nil
}

func (s *dishService) Delete(ctx context.Context, caller domain.Principal, id string) error {
	dish, err := s.dishes.FindByID(ctx, id)
	if err != nil {
		return err
	}

	restaurant, err := s.restaurants.FindByID(ctx, dish.RestaurantID)
	if err != nil {
		return err
	}
	if restaurant.OwnerEmail != caller.Email && !caller.HasAnyRole(domain.RoleAdmin) {
		return domain.ErrForbidden
	}

	return s.dishes.Delete(ctx, id)
}
