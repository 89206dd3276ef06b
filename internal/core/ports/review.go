package ports

import (
	"context"

	"github.com/websiters/gastroreview/internal/core/domain"
)

// CreateReviewInput carries the fields for publishing a review.
type CreateReviewInput struct {
	AuthorEmail  string
	RestaurantID string
	DishID       string
	Title        string
	Content      string
}

// UpdateReviewInput carries optional fields; nil means "leave unchanged".
type UpdateReviewInput struct {
	Title   *string
	Content *string
	DishID  *string
}

// ReviewService exposes review, rating and comment operations.
type ReviewService interface {
	Create(ctx context.Context, in CreateReviewInput) (*domain.Review, error)
	Get(ctx context.Context, id string) (*domain.Review, error)
	ListByRestaurant(ctx context.Context, restaurantID string, page Page) ([]domain.Review, int64, error)
	// Update applies partial changes when the caller authored the review or
	// is an admin.
	Update(ctx context.Context, caller domain.Principal, id string, in UpdateReviewInput) (*domain.Review, error)
	// Delete removes a review when the caller authored it or is an admin.
	Delete(ctx context.Context, caller domain.Principal, id string) error

	// Rate records a 1-5 star rating and emits a review event. A second
	// rating by the same user fails with domain.ErrRatingExists.
	Rate(ctx context.Context, reviewID, raterEmail string, stars int) (*domain.Rating, error)
	// Comment attaches a comment and emits a review event that triggers
	// async sentiment analysis.
	Comment(ctx context.Context, reviewID, authorEmail, content string) (*domain.ReviewComment, error)
	// Analysis returns the stored sentiment analysis for a comment.
	Analysis(ctx context.Context, commentID string) (*domain.CommentAnalysis, error)
}

// ReviewRepository defines persistence for reviews, ratings and comments.
type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) (*domain.Review, error)
	FindByID(ctx context.Context, id string) (*domain.Review, error)
	ListByRestaurant(ctx context.Context, restaurantID string, page Page) ([]domain.Review, int64, error)
	Update(ctx context.Context, r *domain.Review) error
	Delete(ctx context.Context, id string) error

	InsertRating(ctx context.Context, r *domain.Rating) (*domain.Rating, error)
	InsertComment(ctx context.Context, c *domain.ReviewComment) (*domain.ReviewComment, error)
	FindCommentByID(ctx context.Context, id string) (*domain.ReviewComment, error)
}

// AnalysisRepository stores sentiment results for review comments.
type AnalysisRepository interface {
	Upsert(ctx context.Context, a *domain.CommentAnalysis) error
	FindByCommentID(ctx context.Context, commentID string) (*domain.CommentAnalysis, error)
}

// SentimentAnalyzer scores a piece of text. Implemented by the outbound
// text-analytics client.
type SentimentAnalyzer interface {
	Analyze(ctx context.Context, text string) (*domain.CommentAnalysis, error)
}

// ReviewEventSink receives review events for asynchronous processing.
// Implemented by the queue dispatcher.
type ReviewEventSink interface {
	Enqueue(event domain.ReviewEvent)
}

// ReviewEventProcessor handles a single dequeued review event.
type ReviewEventProcessor interface {
	Process(ctx context.Context, event domain.ReviewEvent) error
}
