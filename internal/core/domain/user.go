package domain

import (
	"errors"
	"strings"
	"time"
)

// Role is a closed set of coarse-grained permission groups. Authorization is
// a set-membership test, never a rank comparison.
type Role string

const (
	RoleUser  Role = "USER"
	RoleOwner Role = "OWNER"
	RoleAdmin Role = "ADMIN"
)

var ErrUnknownRole = errors.New("unknown role")

// ParseRole maps a free-form role string onto the closed Role set.
// Matching is case-insensitive; an empty input resolves to RoleUser.
func ParseRole(s string) (Role, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return RoleUser, nil
	case string(RoleUser):
		return RoleUser, nil
	case string(RoleOwner):
		return RoleOwner, nil
	case string(RoleAdmin):
		return RoleAdmin, nil
	}
	return "", ErrUnknownRole
}

// Authority renders the prefixed authority form used in logs and payloads,
// e.g. "ROLE_ADMIN". Authorization checks compare Role values, not strings.
func (r Role) Authority() string {
	return "ROLE_" + string(r)
}

// NormalizeEmail canonicalizes an email for storage and lookup. Every email
// comparison in the system goes through this first.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// User models a registered identity. Roles is non-empty after creation.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Roles        []Role    `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal is the request-scoped authenticated caller, built fresh from a
// verified token on every request and never shared across requests.
type Principal struct {
	Email string
	Roles []Role
}

// HasAnyRole reports whether the principal holds at least one of the given roles.
func (p Principal) HasAnyRole(roles ...Role) bool {
	for _, want := range roles {
		for _, have := range p.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Authorities returns the prefixed authority names, e.g. ["ROLE_OWNER"].
func (p Principal) Authorities() []string {
	out := make([]string, 0, len(p.Roles))
	for _, r := range p.Roles {
		out = append(out, r.Authority())
	}
	return out
}
