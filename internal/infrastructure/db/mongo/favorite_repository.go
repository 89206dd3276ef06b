package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/websiters/gastroreview/internal/core/domain"
	"github.com/websiters/gastroreview/internal/core/ports"
)

const (
	favoriteRestaurantsCollection = "favorite_restaurants"
	favoriteReviewsCollection     = "favorite_reviews"
)

// FavoriteRepository persists favorite restaurants and favorite reviews.
type FavoriteRepository struct {
	restaurants *mongo.Collection
	reviews     *mongo.Collection
}

func NewFavoriteRepository(db *mongo.Database) *FavoriteRepository {
	return &FavoriteRepository{
		restaurants: db.Collection(favoriteRestaurantsCollection),
		reviews:     db.Collection(favoriteReviewsCollection),
	}
}

type mongoFavoriteRestaurant struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserEmail    string             `bson:"user_email"`
	RestaurantID string             `bson:"restaurant_id"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (m mongoFavoriteRestaurant) toDomain() domain.FavoriteRestaurant {
	return domain.FavoriteRestaurant{
		ID:           m.ID.Hex(),
		UserEmail:    m.UserEmail,
		RestaurantID: m.RestaurantID,
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

type mongoFavoriteReview struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserEmail string             `bson:"user_email"`
	ReviewID  string             `bson:"review_id"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (m mongoFavoriteReview) toDomain() domain.FavoriteReview {
	return domain.FavoriteReview{
		ID:        m.ID.Hex(),
		UserEmail: m.UserEmail,
		ReviewID:  m.ReviewID,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

// InsertRestaurant relies on the unique (user_email, restaurant_id) index to
// reject a second mark of the same restaurant.
func (r *FavoriteRepository) InsertRestaurant(ctx context.Context, f *domain.FavoriteRestaurant) (*domain.FavoriteRestaurant, error) {
	doc := mongoFavoriteRestaurant{
		UserEmail:    f.UserEmail,
		RestaurantID: f.RestaurantID,
		CreatedAt:    f.CreatedAt,
	}

	res, err := r.restaurants.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrFavoriteExists
		}
		return nil, fmt.Errorf("insert favorite restaurant: %w", err)
	}

	stored := *f
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		stored.ID = oid.Hex()
	}
	return &stored, nil
}

func (r *FavoriteRepository) DeleteRestaurant(ctx context.Context, userEmail, restaurantID string) error {
	res, err := r.restaurants.DeleteOne(ctx, bson.M{"user_email": userEmail, "restaurant_id": restaurantID})
	if err != nil {
		return fmt.Errorf("delete favorite restaurant: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}

func (r *FavoriteRepository) ListRestaurantsByUser(ctx context.Context, userEmail string, page ports.Page) ([]domain.FavoriteRestaurant, int64, error) {
	filter := bson.M{"user_email": userEmail}

	total, err := r.restaurants.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count favorite restaurants: %w", err)
	}

	cur, err := r.restaurants.Find(ctx, filter, favoriteFindOptions(page))
	if err != nil {
		return nil, 0, fmt.Errorf("list favorite restaurants: %w", err)
	}
	defer cur.Close(ctx)

	var favorites []domain.FavoriteRestaurant
	for cur.Next(ctx) {
		var doc mongoFavoriteRestaurant
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode favorite restaurant: %w", err)
		}
		favorites = append(favorites, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate favorite restaurants: %w", err)
	}
	return favorites, total, nil
}

// InsertReview relies on the unique (user_email, review_id) index to reject a
// second mark of the same review.
func (r *FavoriteRepository) InsertReview(ctx context.Context, f *domain.FavoriteReview) (*domain.FavoriteReview, error) {
	doc := mongoFavoriteReview{
		UserEmail: f.UserEmail,
		ReviewID:  f.ReviewID,
		CreatedAt: f.CreatedAt,
	}

	res, err := r.reviews.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrFavoriteExists
		}
		return nil, fmt.Errorf("insert favorite review: %w", err)
	}

	stored := *f
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		stored.ID = oid.Hex()
	}
	return &stored, nil
}

func (r *FavoriteRepository) DeleteReview(ctx context.Context, userEmail, reviewID string) error {
	res, err := r.reviews.DeleteOne(ctx, bson.M{"user_email": userEmail, "review_id": reviewID})
	if err != nil {
		return fmt.Errorf("delete favorite review: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}

func (r *FavoriteRepository) ListReviewsByUser(ctx context.Context, userEmail string, page ports.Page) ([]domain.FavoriteReview, int64, error) {
	filter := bson.M{"user_email": userEmail}

	total, err := r.reviews.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count favorite reviews: %w", err)
	}

	cur, err := r.reviews.Find(ctx, filter, favoriteFindOptions(page))
	if err != nil {
		return nil, 0, fmt.Errorf("list favorite reviews: %w", err)
	}
	defer cur.Close(ctx)

	var favorites []domain.FavoriteReview
	for cur.Next(ctx) {
		var doc mongoFavoriteReview
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode favorite review: %w", err)
		}
		favorites = append(favorites, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate favorite reviews: %w", err)
	}
	return favorites, total, nil
}

func favoriteFindOptions(page ports.Page) *options.FindOptions {
	return options.Find().
		SetSkip(page.Offset()).
		SetLimit(int64(page.Limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})
}
