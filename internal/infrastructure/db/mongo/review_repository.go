package mongo

import (
	"context"
	"errors"
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
	reviewsCollection  = "reviews"
	ratingsCollection  = "ratings"
	commentsCollection = "review_comments"
)

// ReviewRepository persists reviews together with their ratings and comments.
type ReviewRepository struct {
	reviews  *mongo.Collection
	ratings  *mongo.Collection
	comments *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{
		reviews:  db.Collection(reviewsCollection),
		ratings:  db.Collection(ratingsCollection),
		comments: db.Collection(commentsCollection),
	}
}

type mongoReview struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	AuthorEmail  string             `bson:"author_email"`
	RestaurantID string             `bson:"restaurant_id"`
	DishID       string             `bson:"dish_id,omitempty"`
	Title        string             `bson:"title,omitempty"`
	Content      string             `bson:"content"`
	PublishedAt  time.Time          `bson:"published_at"`
}

func (m mongoReview) toDomain() domain.Review {
	return domain.Review{
		ID:           m.ID.Hex(),
		AuthorEmail:  m.AuthorEmail,
		RestaurantID: m.RestaurantID,
		DishID:       m.DishID,
		Title:        m.Title,
		Content:      m.Content,
		PublishedAt:  m.PublishedAt.UTC(),
	}
}

type mongoRating struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ReviewID   string             `bson:"review_id"`
	RaterEmail string             `bson:"rater_email"`
	Stars      int                `bson:"stars"`
	CreatedAt  time.Time          `bson:"created_at"`
}

type mongoComment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	ReviewID    string             `bson:"review_id"`
	AuthorEmail string             `bson:"author_email"`
	Content     string             `bson:"content"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	doc := mongoReview{
		AuthorEmail:  review.AuthorEmail,
		RestaurantID: review.RestaurantID,
		DishID:       review.DishID,
		Title:        review.Title,
		Content:      review.Content,
		PublishedAt:  review.PublishedAt,
	}

	res, err := r.reviews.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert review: %w", err)
	}

	stored := *review
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		stored.ID = oid.Hex()
	}
	return &stored, nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id string) (*domain.Review, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReviewNotFound
	}

	var doc mongoReview
	if err := r.reviews.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("find review: %w", err)
	}

	review := doc.toDomain()
	return &review, nil
}

func (r *ReviewRepository) ListByRestaurant(ctx context.Context, restaurantID string, page ports.Page) ([]domain.Review, int64, error) {
	filter := bson.M{"restaurant_id": restaurantID}

	total, err := r.reviews.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	opts := options.Find().
		SetSkip(page.Offset()).
		SetLimit(int64(page.Limit)).
		SetSort(bson.D{{Key: "published_at", Value: -1}})

	cur, err := r.reviews.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	defer cur.Close(ctx)

	var reviews []domain.Review
	for cur.Next(ctx) {
		var doc mongoReview
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode review: %w", err)
		}
		reviews = append(reviews, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate reviews: %w", err)
	}
	return reviews, total, nil
}

func (r *ReviewRepository) Update(ctx context.Context, review *domain.Review) error {
	oid, err := primitive.ObjectIDFromHex(review.ID)
	if err != nil {
		return domain.ErrReviewNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":   review.Title,
		"content": review.Content,
		"dish_id": review.DishID,
	}}

	res, err := r.reviews.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrReviewNotFound
	}

	res, err := r.reviews.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

// InsertRating relies on the unique (review_id, rater_email) index to reject
// a second rating from the same user.
func (r *ReviewRepository) InsertRating(ctx context.Context, rating *domain.Rating) (*domain.Rating, error) {
	doc := mongoRating{
		ReviewID:   rating.ReviewID,
		RaterEmail: rating.RaterEmail,
		Stars:      rating.Stars,
		CreatedAt:  rating.CreatedAt,
	}

	res, err := r.ratings.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrRatingExists
		}
		return nil, fmt.Errorf("insert rating: %w", err)
	}

	stored := *rating
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		stored.ID = oid.Hex()
	}
	return &stored, nil
}

func (r *ReviewRepository) InsertComment(ctx context.Context, comment *domain.ReviewComment) (*domain.ReviewComment, error) {
	doc := mongoComment{
		ReviewID:    comment.ReviewID,
		AuthorEmail: comment.AuthorEmail,
		Content:     comment.Content,
		CreatedAt:   comment.CreatedAt,
	}

	res, err := r.comments.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	stored := *comment
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		stored.ID = oid.Hex()
	}
	return &stored, nil
}

func (r *ReviewRepository) FindCommentByID(ctx context.Context, id string) (*domain.ReviewComment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCommentNotFound
	}

	var doc mongoComment
	if err := r.comments.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}

	return &domain.ReviewComment{
		ID:          doc.ID.Hex(),
		ReviewID:    doc.ReviewID,
		AuthorEmail: doc.AuthorEmail,
		Content:     doc.Content,
		CreatedAt:   doc.CreatedAt.UTC(),
	}, nil
}
