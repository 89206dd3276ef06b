package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/websiters/gastroreview/internal/core/domain"
	"github.com/websiters/gastroreview/internal/core/ports"
)

type alertService struct {
	alerts      ports.AlertRepository
	restaurants ports.RestaurantRepository
	reviews     ports.ReviewRepository
	log         zerolog.Logger
}

// NewAlertService returns an AlertService implementation. Alert references to
// a restaurant or review are optional but must resolve when given.
func NewAlertService(
	alerts ports.AlertRepository,
	restaurants ports.RestaurantRepository,
	reviews ports.ReviewRepository,
	log zerolog.Logger,
) ports.AlertService {
	return &alertService{
		alerts:      alerts,
		restaurants: restaurants,
		reviews:     reviews,
		log:         log,
	}
}

func (s *alertService) Create(ctx context.Context, in ports.CreateAlertInput) (*domain.Alert, error) {
	alertType := domain.AlertType(in.Type)
	if !alertType.Valid() {
		return nil, fmt.Errorf("unknown alert type %q: %w", in.Type, domain.ErrValidation)
	}

	if in.RestaurantID != "" {
		if _, err := s.restaurants.FindByID(ctx, in.RestaurantID); err != nil {
			return nil, err
		}
	}
	if in.ReviewID != "" {
		if _, err := s.reviews.FindByID(ctx, in.ReviewID); err != nil {
			return nil, err
		}
	}

	alert := &domain.Alert{
		Type:         alertType,
		RestaurantID: in.RestaurantID,
		ReviewID:     in.ReviewID,
		Detail:       in.Detail,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.alerts.Create(ctx, alert)
	if err != nil {
		return nil, fmt.Errorf("create alert: %w", err)
	}

	s.log.Info().Str("alert_id", created.ID).Str("type", string(created.Type)).Msg("alert raised")
	return created, nil
}

func (s *alertService) Get(ctx context.Context, id string) (*domain.Alert, error) {
	return s.alerts.FindByID(ctx, id)
}

func (s *alertService) List(ctx context.Context, filter ports.AlertFilter, page ports.Page) ([]domain.Alert, int64, error) {
	if filter.RestaurantID != "" {
		if _, err := s.restaurants.FindByID(ctx, filter.RestaurantID); err != nil {
			return nil, 0, err
		}
	}
	if filter.ReviewID != "" {
		if _, err := s.reviews.FindByID(ctx, filter.ReviewID); err != nil {
			return nil, 0, err
		}
	}
	return s.alerts.List(ctx, filter, page.Normalize())
}

func (s *alertService) Delete(ctx context.Context, id string) error {
	return s.alerts.Delete(ctx, id)
}
