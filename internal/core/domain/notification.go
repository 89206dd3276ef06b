package domain

import "time"

// NotificationType categorizes what a notification is about.
type NotificationType string

const (
	NotificationReviewRated     NotificationType = "review_rated"
	NotificationReviewCommented NotificationType = "review_commented"
)

// Notification is delivered to a user when someone interacts with their review.
type Notification struct {
	ID          string            `json:"id" bson:"_id,omitempty"`
	UserEmail   string            `json:"user_email" bson:"user_email"`
	Type        NotificationType  `json:"type" bson:"type"`
	Message     string            `json:"message" bson:"message"`
	Read        bool              `json:"read" bson:"read"`
	ReferenceID string            `json:"reference_id,omitempty" bson:"reference_id,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" bson:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"created_at" bson:"created_at"`
}
