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

type restaurantService struct {
	repo ports.RestaurantRepository
	log  zerolog.Logger
}

// NewRestaurantService returns a RestaurantService implementation.
func NewRestaurantService(repo ports.RestaurantRepository, log zerolog.Logger) ports.RestaurantService {
	return &restaurantService{repo: repo, log: log}
}

func (s *restaurantService) Create(ctx context.Context, in ports.CreateRestaurantInput) (*domain.Restaurant, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.City) == "" {
		return nil, fmt.Errorf("name and city are required: %w", domain.ErrValidation)
	}

	now := time.Now().UTC()
	restaurant := &domain.Restaurant{
		OwnerEmail:  domain.NormalizeEmail(in.OwnerEmail),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		City:        strings.TrimSpace(in.City),
		Address:     in.Address,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, restaurant)
	if err != nil {
		return nil, fmt.Errorf("create restaurant: %w", err)
	}

	s.log.Info().Str("restaurant_id", created.ID).Str("owner", created.OwnerEmail).Msg("restaurant created")
	return created, nil
}

func (s *restaurantService) Get(ctx context.Context, id string) (*domain.Restaurant, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *restaurantService) List(ctx context.Context, city string, page ports.Page) ([]domain.Restaurant, int64, error) {
	return s.repo.List(ctx, strings.TrimSpace(city), page.Normalize())
}

// Update applies partial changes. Only the owning user or an admin may update.
func (s *restaurantService) Update(ctx context.Context, id string, caller domain.Principal, in ports.UpdateRestaurantInput) (*domain.Restaurant, error) {
	restaurant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if restaurant.OwnerEmail != caller.Email && !caller.HasAnyRole(domain.RoleAdmin) {
		return nil, domain.ErrForbidden
	}

	if in.Name != nil {
		restaurant.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		restaurant.Description = *in.Description
	}
	if in.City != nil {
		restaurant.City = strings.TrimSpace(*in.City)
	}
	if in.Address != nil {
		restaurant.Address = *in.Address
	}
	restaurant.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, restaurant); err != nil {
		return nil, fmt.Errorf("update restaurant: %w", err)
	}
	return restaurant, nil
}
