package ports

import (
	"context"

	"github.com/websiters/gastroreview/internal/core/domain"
)

// CreateAlertInput carries the fields for raising a moderation alert. The
// restaurant and review references are both optional.
type CreateAlertInput struct {
	Type         string
	RestaurantID string
	ReviewID     string
	Detail       string
}

// AlertFilter narrows an alert listing to one restaurant or one review.
type AlertFilter struct {
	RestaurantID string
	ReviewID     string
}

// AlertService exposes moderation alerts.
type AlertService interface {
	Create(ctx context.Context, in CreateAlertInput) (*domain.Alert, error)
	Get(ctx context.Context, id string) (*domain.Alert, error)
	List(ctx context.Context, filter AlertFilter, page Page) ([]domain.Alert, int64, error)
	Delete(ctx context.Context, id string) error
}

// AlertRepository defines persistence for alerts.
type AlertRepository interface {
	Create(ctx context.Context, a *domain.Alert) (*domain.Alert, error)
	FindByID(ctx context.Context, id string) (*domain.Alert, error)
	List(ctx context.Context, filter AlertFilter, page Page) ([]domain.Alert, int64, error)
	Delete(ctx context.Context, id string) error
}
