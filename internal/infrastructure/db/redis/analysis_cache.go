package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/websiters/gastroreview/internal/core/domain"
)

const analysisTTL = 24 * time.Hour

// AnalysisCache keeps recent sentiment results in Redis so the event workers
// skip re-analyzing a comment they have already scored.
// Key format: analysis:<comment_id>
type AnalysisCache struct {
	client *redis.Client
}

// NewAnalysisCache creates an AnalysisCache wrapping the given Redis client.
func NewAnalysisCache(client *redis.Client) *AnalysisCache {
	return &AnalysisCache{client: client}
}

// Get returns the cached analysis for a comment, or (nil, nil) on a miss.
func (c *AnalysisCache) Get(ctx context.Context, commentID string) (*domain.CommentAnalysis, error) {
	raw, err := c.client.Get(ctx, c.key(commentID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("analysis cache get: %w", err)
	}

	var analysis domain.CommentAnalysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		return nil, fmt.Errorf("analysis cache decode: %w", err)
	}
	return &analysis, nil
}

// Set stores an analysis result (expires after analysisTTL).
func (c *AnalysisCache) Set(ctx context.Context, a *domain.CommentAnalysis) error {
	raw, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("analysis cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(a.CommentID), raw, analysisTTL).Err()
}

func (c *AnalysisCache) key(commentID string) string {
	return "analysis:" + commentID
}
