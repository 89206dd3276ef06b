package ports

import (
	"context"

	"github.com/websiters/gastroreview/internal/core/domain"
)

// UserService exposes read operations on identities.
type UserService interface {
	// GetByEmail returns the stored identity for a normalized email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns a page of users and the total count. Admin-only at the
	// policy layer.
	List(ctx context.Context, page Page) ([]domain.User, int64, error)
}
