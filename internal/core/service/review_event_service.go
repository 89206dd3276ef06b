package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/websiters/gastroreview/internal/core/domain"
	"github.com/websiters/gastroreview/internal/core/ports"
)

// AnalysisCache abstracts the Redis-backed sentiment result cache.
// Get returns (nil, nil) on a cache miss.
type AnalysisCache interface {
	Get(ctx context.Context, commentID string) (*domain.CommentAnalysis, error)
	Set(ctx context.Context, a *domain.CommentAnalysis) error
}

type reviewEventService struct {
	reviews       ports.ReviewRepository
	notifications ports.NotificationRepository
	analyses      ports.AnalysisRepository
	analyzer      ports.SentimentAnalyzer
	cache         AnalysisCache
	log           zerolog.Logger
}

// NewReviewEventService returns the processor behind the async dispatcher:
// it turns review events into notifications and, for comments, runs and
// stores sentiment analysis.
func NewReviewEventService(
	reviews ports.ReviewRepository,
	notifications ports.NotificationRepository,
	analyses ports.AnalysisRepository,
	analyzer ports.SentimentAnalyzer,
	cache AnalysisCache,
	log zerolog.Logger,
) ports.ReviewEventProcessor {
	return &reviewEventService{
		reviews:       reviews,
		notifications: notifications,
		analyses:      analyses,
		analyzer:      analyzer,
		cache:         cache,
		log:           log,
	}
}

// Process handles a single review event. Notification insertion failures are
// fatal for the event; analysis failures are logged and retried on the next
// comment lookup, never crash the worker.
func (s *reviewEventService) Process(ctx context.Context, ev domain.ReviewEvent) error {
	// Actors are not notified about their own activity.
	if ev.AuthorEmail != ev.ActorEmail {
		notification := s.buildNotification(ev)
		if _, err := s.notifications.Insert(ctx, notification); err != nil {
			return fmt.Errorf("process review event: insert notification: %w", err)
		}
	}

	if ev.Kind == domain.ReviewCommented && ev.CommentID != "" {
		if err := s.analyzeComment(ctx, ev.CommentID); err != nil {
			s.log.Warn().Err(err).Str("comment_id", ev.CommentID).Msg("sentiment analysis failed")
		}
	}

	s.log.Info().
		Str("review_id", ev.ReviewID).
		Str("kind", string(ev.Kind)).
		Msg("review event processed")
	return nil
}

func (s *reviewEventService) buildNotification(ev domain.ReviewEvent) *domain.Notification {
	n := &domain.Notification{
		UserEmail:   ev.AuthorEmail,
		ReferenceID: ev.ReviewID,
		CreatedAt:   time.Now().UTC(),
		Metadata:    map[string]string{"actor": ev.ActorEmail},
	}
	switch ev.Kind {
	case domain.ReviewRated:
		n.Type = domain.NotificationReviewRated
		n.Message = fmt.Sprintf("%s rated your review %d stars", ev.ActorEmail, ev.Stars)
		n.Metadata["stars"] = fmt.Sprintf("%d", ev.Stars)
	case domain.ReviewCommented:
		n.Type = domain.NotificationReviewCommented
		n.Message = fmt.Sprintf("%s commented on your review", ev.ActorEmail)
		n.Metadata["comment_id"] = ev.CommentID
	}
	return n
}

func (s *reviewEventService) analyzeComment(ctx context.Context, commentID string) error {
	// Cheap path first: a previously computed result may still be cached.
	if cached, err := s.cache.Get(ctx, commentID); err != nil {
		s.log.Warn().Err(err).Str("comment_id", commentID).Msg("analysis cache read failed, analyzing anyway")
	} else if cached != nil {
		return nil
	}

	comment, err := s.reviews.FindCommentByID(ctx, commentID)
	if err != nil {
		return err
	}

	analysis, err := s.analyzer.Analyze(ctx, comment.Content)
	if err != nil {
		return fmt.Errorf("analyze comment: %w", err)
	}
	analysis.CommentID = commentID
	analysis.AnalyzedAt = time.Now().UTC()

	if err := s.analyses.Upsert(ctx, analysis); err != nil {
		return fmt.Errorf("store analysis: %w", err)
	}
	if err := s.cache.Set(ctx, analysis); err != nil {
		s.log.Warn().Err(err).Str("comment_id", commentID).Msg("analysis cache write failed")
	}
	return nil
}
