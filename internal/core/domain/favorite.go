package domain

import "time"

// FavoriteRestaurant marks a restaurant as a favorite of a user. Identity is
// the (user, restaurant) pair; at most one favorite per pair.
type FavoriteRestaurant struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	UserEmail    string    `json:"user_email" bson:"user_email"`
	RestaurantID string    `json:"restaurant_id" bson:"restaurant_id"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// FavoriteReview marks a review as a favorite of a user.
type FavoriteReview struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserEmail string    `json:"user_email" bson:"user_email"`
	ReviewID  string    `json:"review_id" bson:"review_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
