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
	restaurantsCollection = "restaurants"
	dishesCollection      = "dishes"
)

// RestaurantRepository persists restaurants.
type RestaurantRepository struct {
	coll *mongo.Collection
}

func NewRestaurantRepository(db *mongo.Database) *RestaurantRepository {
	return &RestaurantRepository{coll: db.Collection(restaurantsCollection)}
}

type mongoRestaurant struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	OwnerEmail  string             `bson:"owner_email"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	City        string             `bson:"city"`
	Address     string             `bson:"address"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (m mongoRestaurant) toDomain() domain.Restaurant {
	return domain.Restaurant{
		ID:          m.ID.Hex(),
		OwnerEmail:  m.OwnerEmail,
		Name:        m.Name,
		Description: m.Description,
		City:        m.City,
		Address:     m.Address,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func (r *RestaurantRepository) Create(ctx context.Context, restaurant *domain.Restaurant) (*domain.Restaurant, error) {
	doc := mongoRestaurant{
		OwnerEmail:  restaurant.OwnerEmail,
		Name:        restaurant.Name,
		Description: restaurant.Description,
		City:        restaurant.City,
		Address:     restaurant.Address,
		CreatedAt:   restaurant.CreatedAt,
		UpdatedAt:   restaurant.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert restaurant: %w", err)
	}

	stored := *restaurant
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		stored.ID = oid.Hex()
	}
	return &stored, nil
}

func (r *RestaurantRepository) FindByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRestaurantNotFound
	}

	var doc mongoRestaurant
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("find restaurant: %w", err)
	}

	restaurant := doc.toDomain()
	return &restaurant, nil
}

func (r *RestaurantRepository) List(ctx context.Context, city string, page ports.Page) ([]domain.Restaurant, int64, error) {
	filter := bson.M{}
	if city != "" {
		filter["city"] = bson.M{"$regex": "^" + city + "$", "$options": "i"}
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count restaurants: %w", err)
	}

	opts := options.Find().
		SetSkip(page.Offset()).
		SetLimit(int64(page.Limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list restaurants: %w", err)
	}
	defer cur.Close(ctx)

	var restaurants []domain.Restaurant
	for cur.Next(ctx) {
		var doc mongoRestaurant
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode restaurant: %w", err)
		}
		restaurants = append(restaurants, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate restaurants: %w", err)
	}
	return restaurants, total, nil
}

func (r *RestaurantRepository) Update(ctx context.Context, restaurant *domain.Restaurant) error {
	oid, err := primitive.ObjectIDFromHex(restaurant.ID)
	if err != nil {
		return domain.ErrRestaurantNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":        restaurant.Name,
		"description": restaurant.Description,
		"city":        restaurant.City,
		"address":     restaurant.Address,
		"updated_at":  restaurant.UpdatedAt,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update restaurant: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRestaurantNotFound
	}
	return nil
}
