package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/websiters/gastroreview/internal/core/domain"
	"github.com/websiters/gastroreview/internal/core/ports"
)

// AuthService implements registration and login on top of the user store,
// the password hasher and the token codec.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, log: log}
}

// Login verifies credentials and issues a bearer token. Unknown email and
// wrong password return the same error so callers cannot enumerate users.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, string, error) {
	normalized := domain.NormalizeEmail(email)
	if normalized == "" || password == "" {
		return "", "", domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", "", domain.ErrInvalidCredentials
		}
		return "", "", fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return "", "", fmt.Errorf("login: %w", err)
	}

	s.log.Info().Str("email", user.Email).Msg("user logged in")
	return token, user.Email, nil
}

// Register creates a new identity with a hashed password and a single role
// (USER when none requested). The duplicate check runs twice: an early lookup
// for the common case, and conversion of the store's uniqueness violation for
// the concurrent one, so racing registrations still surface ErrUserExists.
func (s *AuthService) Register(ctx context.Context, email, password, role string) (*domain.User, error) {
	normalized := domain.NormalizeEmail(email)
	if normalized == "" || password == "" {
		return nil, fmt.Errorf("email and password are required: %w", domain.ErrValidation)
	}

	parsedRole, err := domain.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("role %q not found: %w", role, domain.ErrValidation)
	}

	if _, err := s.users.FindByEmail(ctx, normalized); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        normalized,
		PasswordHash: hash,
		Roles:        []domain.Role{parsedRole},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("email", created.Email).Str("role", string(parsedRole)).Msg("user registered")
	return created, nil
}
