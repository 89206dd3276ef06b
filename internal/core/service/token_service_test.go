package service

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/websiters/gastroreview/internal/core/domain"
)

func testSecret() string {
	return base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
}

func TestNewTokenService_RejectsBadSecrets(t *testing.T) {
	cases := []struct {
		name   string
		secret string
	}{
		{"empty", ""},
		{"not base64", "%%%not-base64%%%"},
		{"decodes to empty", base64.StdEncoding.EncodeToString(nil)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTokenService(tc.secret, time.Hour)
			if !errors.Is(err, domain.ErrSigningKey) {
				t.Fatalf("expected ErrSigningKey, got %v", err)
			}
		})
	}
}

func TestTokenService_IssueVerifyRoundTrip(t *testing.T) {
	svc, err := NewTokenService(testSecret(), time.Hour)
	if err != nil {
		t.Fatalf("new token service: %v", err)
	}

	token, err := svc.Issue("alice@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	subject, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if subject != "alice@example.com" {
		t.Fatalf("expected subject alice@example.com, got %q", subject)
	}
}

func TestTokenService_ExpiredToken(t *testing.T) {
	svc, err := NewTokenService(testSecret(), time.Minute)
	if err != nil {
		t.Fatalf("new token service: %v", err)
	}

	issuedAt := time.Now()
	svc.now = func() time.Time { return issuedAt }
	token, err := svc.Issue("alice@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	svc.now = func() time.Time { return issuedAt.Add(2 * time.Minute) }
	if _, err := svc.Verify(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenService_TamperedSignature(t *testing.T) {
	svc, err := NewTokenService(testSecret(), time.Hour)
	if err != nil {
		t.Fatalf("new token service: %v", err)
	}

	token, err := svc.Issue("alice@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Flip the last character of the signature.
	tampered := []byte(token)
	if tampered[len(tampered)-1] == 'A' {
		tampered[len(tampered)-1] = 'B'
	} else {
		tampered[len(tampered)-1] = 'A'
	}

	if _, err := svc.Verify(string(tampered)); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenService_ExpiredTokenWithBadSignatureIsInvalid(t *testing.T) {
	// Signature must be checked before expiry: an expired token signed with
	// the wrong key is reported as invalid, not expired.
	issuer, err := NewTokenService(base64.StdEncoding.EncodeToString([]byte("another-secret-key-entirely!")), time.Minute)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	verifier, err := NewTokenService(testSecret(), time.Minute)
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}

	issuedAt := time.Now().Add(-time.Hour)
	issuer.now = func() time.Time { return issuedAt }
	token, err := issuer.Issue("alice@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenService_MalformedToken(t *testing.T) {
	svc, err := NewTokenService(testSecret(), time.Hour)
	if err != nil {
		t.Fatalf("new token service: %v", err)
	}
	if _, err := svc.Verify("not-a-token"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
