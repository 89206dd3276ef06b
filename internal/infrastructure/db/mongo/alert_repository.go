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

const alertsCollection = "alerts"

// AlertRepository persists moderation alerts.
type AlertRepository struct {
	coll *mongo.Collection
}

func NewAlertRepository(db *mongo.Database) *AlertRepository {
	return &AlertRepository{coll: db.Collection(alertsCollection)}
}

type mongoAlert struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Type         string             `bson:"type"`
	RestaurantID string             `bson:"restaurant_id,omitempty"`
	ReviewID     string             `bson:"review_id,omitempty"`
	Detail       string             `bson:"detail,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (m mongoAlert) toDomain() domain.Alert {
	return domain.Alert{
		ID:           m.ID.Hex(),
		Type:         domain.AlertType(m.Type),
		RestaurantID: m.RestaurantID,
		ReviewID:     m.ReviewID,
		Detail:       m.Detail,
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

func (r *AlertRepository) Create(ctx context.Context, alert *domain.Alert) (*domain.Alert, error) {
	doc := mongoAlert{
		Type:         string(alert.Type),
		RestaurantID: alert.RestaurantID,
		ReviewID:     alert.ReviewID,
		Detail:       alert.Detail,
		CreatedAt:    alert.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert alert: %w", err)
	}

	stored := *alert
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		stored.ID = oid.Hex()
	}
	return &stored, nil
}

func (r *AlertRepository) FindByID(ctx context.Context, id string) (*domain.Alert, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAlertNotFound
	}

	var doc mongoAlert
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAlertNotFound
		}
		return nil, fmt.Errorf("find alert: %w", err)
	}

	alert := doc.toDomain()
	return &alert, nil
}

func (r *AlertRepository) List(ctx context.Context, filter ports.AlertFilter, page ports.Page) ([]domain.Alert, int64, error) {
	query := bson.M{}
	if filter.RestaurantID != "" {
		query["restaurant_id"] = filter.RestaurantID
	}
	if filter.ReviewID != "" {
		query["review_id"] = filter.ReviewID
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count alerts: %w", err)
	}

	opts := options.Find().
		SetSkip(page.Offset()).
		SetLimit(int64(page.Limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list alerts: %w", err)
	}
	defer cur.Close(ctx)

	var alerts []domain.Alert
	for cur.Next(ctx) {
		var doc mongoAlert
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode alert: %w", err)
		}
		alerts = append(alerts, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate alerts: %w", err)
	}
	return alerts, total, nil
}

func (r *AlertRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAlertNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete alert: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAlertNotFound
	}
	return nil
}
