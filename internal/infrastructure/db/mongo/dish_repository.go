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

// DishRepository persists menu items.
type DishRepository struct {
	coll *mongo.Collection
}

func NewDishRepository(db *mongo.Database) *DishRepository {
	return &DishRepository{coll: db.Collection(dishesCollection)}
}

type mongoDish struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	RestaurantID string             `bson:"restaurant_id"`
	Name         string             `bson:"name"`
	Description  string             `bson:"description,omitempty"`
	PriceCents   int                `bson:"price_cents"`
	Available    bool               `bson:"available"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (m mongoDish) toDomain() domain.Dish {
	return domain.Dish{
		ID:           m.ID.Hex(),
		RestaurantID: m.RestaurantID,
		Name:         m.Name,
		Description:  m.Description,
		PriceCents:   m.PriceCents,
		Available:    m.Available,
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

func (r *DishRepository) Create(ctx context.Context, dish *domain.Dish) (*domain.Dish, error) {
	doc := mongoDish{
		RestaurantID: dish.RestaurantID,
		Name:         dish.Name,
		Description:  dish.Description,
		PriceCents:   dish.PriceCents,
		Available:    dish.Available,
		CreatedAt:    dish.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert dish: %w", err)
	}

	stored := *dish
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		stored.ID = oid.Hex()
	}
	return &stored, nil
}

func (r *DishRepository) FindByID(ctx context.Context, id string) (*domain.Dish, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrDishNotFound
	}

	var doc mongoDish
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDishNotFound
		}
		return nil, fmt.Errorf("find dish: %w", err)
	}

	dish := doc.toDomain()
	return &dish, nil
}

func (r *DishRepository) ListByRestaurant(ctx context.Context, restaurantID string, page ports.Page) ([]domain.Dish, int64, error) {
	filter := bson.M{"restaurant_id": restaurantID}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count dishes: %w", err)
	}

	opts := options.Find().
		SetSkip(page.Offset()).
		SetLimit(int64(page.Limit)).
		SetSort(bson.D{{Key: "name", Value: 1}})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list dishes: %w", err)
	}
	defer cur.Close(ctx)

	var dishes []domain.Dish
	for cur.Next(ctx) {
		var doc mongoDish
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode dish: %w", err)
		}
		dishes = append(dishes, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate dishes: %w", err)
	}
	return dishes, total, nil
}

func (r *DishRepository) Update(ctx context.Context, dish *domain.Dish) error {
	oid, err := primitive.ObjectIDFromHex(dish.ID)
	if err != nil {
		return domain.ErrDishNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":        dish.Name,
		"description": dish.Description,
		"price_cents": dish.PriceCents,
		"available":   dish.Available,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update dish: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrDishNotFound
	}
	return nil
}

func (r *DishRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrDishNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete dish: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrDishNotFound
	}
	return nil
}
