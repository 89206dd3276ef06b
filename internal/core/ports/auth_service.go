package ports

import (
	"context"

	"github.com/websiters/gastroreview/internal/core/domain"
)

// AuthService is the authenticator exposed to the login/signup handlers.
type AuthService interface {
	// Login verifies credentials and returns a signed bearer token together
	// with the normalized email. Unknown user and wrong password collapse
	// into the same domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (token string, normalizedEmail string, err error)
	// Register creates a new identity. The requested role defaults to USER
	// when empty; unknown roles fail with domain.ErrValidation and duplicate
	// emails with domain.ErrUserExists, including uniqueness races at the
	// store.
	Register(ctx context.Context, email, password, role string) (*domain.User, error)
}

// TokenService signs and verifies compact bearer tokens. Implementations are
// stateless and safe for unlimited concurrent use.
type TokenService interface {
	// Issue builds a signed token for subject expiring after the configured TTL.
	Issue(subject string) (string, error)
	// Verify checks signature then expiry and returns the embedded subject.
	// Fails with domain.ErrTokenExpired or domain.ErrTokenInvalid.
	Verify(token string) (subject string, err error)
}

// PasswordHasher produces and verifies one-way salted password digests.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches the stored hash. The cost and
	// salt are re-derived from the hash itself.
	Verify(plaintext, hash string) bool
}
