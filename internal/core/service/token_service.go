package service

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/websiters/gastroreview/internal/core/domain"
)

// TokenService signs and verifies compact HS256 bearer tokens carrying the
// subject email, issued-at and expiry. One shared symmetric secret: there is
// a single issuer and a single verifier inside this monolith.
type TokenService struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewTokenService decodes the base64-encoded signing secret and fixes the
// token TTL. A missing or undecodable secret fails with domain.ErrSigningKey;
// callers treat that as fatal at startup, not per request.
func NewTokenService(base64Secret string, ttl time.Duration) (*TokenService, error) {
	if base64Secret == "" {
		return nil, fmt.Errorf("token service: signing secret not configured: %w", domain.ErrSigningKey)
	}
	key, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return nil, fmt.Errorf("token service: signing secret is not valid base64: %w", domain.ErrSigningKey)
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("token service: signing secret decodes to empty key: %w", domain.ErrSigningKey)
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{key: key, ttl: ttl, now: time.Now}, nil
}

// Issue builds a signed token for subject expiring at now + TTL.
func (s *TokenService) Issue(subject string) (string, error) {
	now := s.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature before any claim, then expiry, and returns the
// embedded subject. Malformed tokens and signature mismatches collapse into
// domain.ErrTokenInvalid; only a well-signed stale token is ErrTokenExpired.
func (s *TokenService) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.key, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenMalformed):
			return "", domain.ErrTokenInvalid
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenInvalid
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", domain.ErrTokenInvalid
	}
	return claims.Subject, nil
}
