package domain

import "time"

// Review is authored by a user against a restaurant, optionally a specific dish.
type Review struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	AuthorEmail  string    `json:"author_email" bson:"author_email"`
	RestaurantID string    `json:"restaurant_id" bson:"restaurant_id"`
	DishID       string    `json:"dish_id,omitempty" bson:"dish_id,omitempty"`
	Title        string    `json:"title" bson:"title"`
	Content      string    `json:"content" bson:"content"`
	PublishedAt  time.Time `json:"published_at" bson:"published_at"`
}

// Rating is a 1-5 star score on a review. At most one per (user, review).
type Rating struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	ReviewID   string    `json:"review_id" bson:"review_id"`
	RaterEmail string    `json:"rater_email" bson:"rater_email"`
	Stars      int       `json:"stars" bson:"stars"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// ReviewComment is a follow-up comment on a review. Comments feed the
// asynchronous sentiment analysis pipeline.
type ReviewComment struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	ReviewID    string    `json:"review_id" bson:"review_id"`
	AuthorEmail string    `json:"author_email" bson:"author_email"`
	Content     string    `json:"content" bson:"content"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// CommentAnalysis holds the sentiment scoring produced for a review comment.
type CommentAnalysis struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	CommentID     string    `json:"comment_id" bson:"comment_id"`
	Sentiment     string    `json:"sentiment" bson:"sentiment"`
	PositiveScore float64   `json:"positive_score" bson:"positive_score"`
	NeutralScore  float64   `json:"neutral_score" bson:"neutral_score"`
	NegativeScore float64   `json:"negative_score" bson:"negative_score"`
	KeyPhrases    []string  `json:"key_phrases,omitempty" bson:"key_phrases,omitempty"`
	AnalyzedAt    time.Time `json:"analyzed_at" bson:"analyzed_at"`
}

// ReviewEventKind distinguishes what happened to a review.
type ReviewEventKind string

const (
	ReviewRated     ReviewEventKind = "rated"
	ReviewCommented ReviewEventKind = "commented"
)

// ReviewEvent is the unit of work handed to the async dispatcher when a
// review receives a rating or a comment.
type ReviewEvent struct {
	Kind        ReviewEventKind
	ReviewID    string
	AuthorEmail string // owner of the review, recipient of the notification
	ActorEmail  string // who rated/commented
	CommentID   string // set when Kind == ReviewCommented
	Stars       int    // set when Kind == ReviewRated
	OccurredAt  time.Time
}
