package domain

import "errors"

// Authentication and token errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrValidation         = errors.New("invalid input")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	// ErrSigningKey means the configured signing secret is absent or not
	// valid key material. Fatal at startup, never surfaced per request.
	ErrSigningKey = errors.New("invalid signing key material")
)

// Resource errors.
var (
	ErrForbidden           = errors.New("access forbidden")
	ErrRestaurantNotFound  = errors.New("restaurant not found")
	ErrDishNotFound        = errors.New("dish not found")
	ErrReviewNotFound      = errors.New("review not found")
	ErrCommentNotFound     = errors.New("review comment not found")
	ErrRatingExists        = errors.New("review already rated by this user")
	ErrNotificationMissing = errors.New("notification not found")
	ErrFavoriteExists      = errors.New("already marked as favorite")
	ErrFavoriteNotFound    = errors.New("favorite not found")
	ErrAlertNotFound       = errors.New("alert not found")
)
