package ports

import (
	"context"

	"github.com/websiters/gastroreview/internal/core/domain"
)

// NotificationService exposes per-user notification operations.
type NotificationService interface {
	ListForUser(ctx context.Context, userEmail string, unreadOnly bool, page Page) ([]domain.Notification, int64, error)
	// MarkRead flips a notification to read. Only the recipient may do so.
	MarkRead(ctx context.Context, userEmail, id string) error
}

// NotificationRepository defines persistence for notifications.
type NotificationRepository interface {
	Insert(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	ListForUser(ctx context.Context, userEmail string, unreadOnly bool, page Page) ([]domain.Notification, int64, error)
	MarkRead(ctx context.Context, userEmail, id string) error
}
