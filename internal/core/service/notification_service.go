package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/websiters/gastroreview/internal/core/domain"
	"github.com/websiters/gastroreview/internal/core/ports"
)

type notificationService struct {
	repo ports.NotificationRepository
	log  zerolog.Logger
}

// NewNotificationService returns a NotificationService implementation.
func NewNotificationService(repo ports.NotificationRepository, log zerolog.Logger) ports.NotificationService {
	return &notificationService{repo: repo, log: log}
}

func (s *notificationService) ListForUser(ctx context.Context, userEmail string, unreadOnly bool, page ports.Page) ([]domain.Notification, int64, error) {
	return s.repo.ListForUser(ctx, domain.NormalizeEmail(userEmail), unreadOnly, page.Normalize())
}

func (s *notificationService) MarkRead(ctx context.Context, userEmail, id string) error {
	return s.repo.MarkRead(ctx, domain.NormalizeEmail(userEmail), id)
}
