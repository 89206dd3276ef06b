package domain

import "time"

// AlertType classifies a moderation alert.
type AlertType string

const (
	AlertNegativeReview AlertType = "negative_review"
	AlertSpam           AlertType = "spam"
	AlertTrending       AlertType = "trending"
	AlertFraud          AlertType = "fraud"
	AlertOther          AlertType = "other"
)

// Valid reports whether t is a known alert type.
func (t AlertType) Valid() bool {
	switch t {
	case AlertNegativeReview, AlertSpam, AlertTrending, AlertFraud, AlertOther:
		return true
	}
	return false
}

// Alert is a moderation signal, optionally tied to a restaurant or a review.
type Alert struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Type         AlertType `json:"type" bson:"type"`
	RestaurantID string    `json:"restaurant_id,omitempty" bson:"restaurant_id,omitempty"`
	ReviewID     string    `json:"review_id,omitempty" bson:"review_id,omitempty"`
	Detail       string    `json:"detail,omitempty" bson:"detail,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
