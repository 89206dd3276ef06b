package service

import (
	"context"

	"github.com/websiters/gastroreview/internal/core/domain"
	"github.com/websiters/gastroreview/internal/core/ports"
)

type userService struct {
	users ports.UserRepository
}

// NewUserService returns a read-only UserService over the user store.
func NewUserService(users ports.UserRepository) ports.UserService {
	return &userService{users: users}
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.FindByEmail(ctx, domain.NormalizeEmail(email))
}

func (s *userService) List(ctx context.Context, page ports.Page) ([]domain.User, int64, error) {
	return s.users.List(ctx, page.Normalize())
}
