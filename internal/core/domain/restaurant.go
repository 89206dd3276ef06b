package domain

import "time"

// Restaurant is owned by the user that created it. Ownership gates updates.
type Restaurant struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	OwnerEmail  string    `json:"owner_email" bson:"owner_email"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	City        string    `json:"city" bson:"city"`
	Address     string    `json:"address" bson:"address"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// Dish is a menu item belonging to a restaurant. Price is stored in cents to
// avoid floating point drift.
type Dish struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	RestaurantID string    `json:"restaurant_id" bson:"restaurant_id"`
	Name         string    `json:"name" bson:"name"`
	Description  string    `json:"description,omitempty" bson:"description,omitempty"`
	PriceCents   int       `json:"price_cents" bson:"price_cents"`
	Available    bool      `json:"available" bson:"available"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
