package ports

import (
	"context"

	"github.com/websiters/gastroreview/internal/core/domain"
)

// UserRepository defines persistence operations for identities.
//
// Implementations must enforce email uniqueness with a store-level constraint
// (not an application lock): concurrent registrations of the same email must
// surface domain.ErrUserExists on the losing insert.
type UserRepository interface {
	// Create persists a new user and returns the stored copy (with ID).
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail looks up a user by normalized email.
	// Returns domain.ErrUserNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns a page of users and the total count.
	List(ctx context.Context, page Page) ([]domain.User, int64, error)
}

// Page carries 1-based pagination parameters. Services cap Limit.
type Page struct {
	Page  int
	Limit int
}

// Normalize applies defaults and caps so repositories can trust the values.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	return p
}

// Offset returns the number of documents to skip.
func (p Page) Offset() int64 {
	return int64((p.Page - 1) * p.Limit)
}
