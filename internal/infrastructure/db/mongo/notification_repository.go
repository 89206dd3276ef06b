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

const notificationsCollection = "notifications"

// NotificationRepository persists per-user notifications.
type NotificationRepository struct {
	coll *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{coll: db.Collection(notificationsCollection)}
}

type mongoNotification struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserEmail   string             `bson:"user_email"`
	Type        string             `bson:"type"`
	Message     string             `bson:"message"`
	Read        bool               `bson:"read"`
	ReferenceID string             `bson:"reference_id,omitempty"`
	Metadata    map[string]string  `bson:"metadata,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (m mongoNotification) toDomain() domain.Notification {
	return domain.Notification{
		ID:          m.ID.Hex(),
		UserEmail:   m.UserEmail,
		Type:        domain.NotificationType(m.Type),
		Message:     m.Message,
		Read:        m.Read,
		ReferenceID: m.ReferenceID,
		Metadata:    m.Metadata,
		CreatedAt:   m.CreatedAt.UTC(),
	}
}

func (r *NotificationRepository) Insert(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	doc := mongoNotification{
		UserEmail:   n.UserEmail,
		Type:        string(n.Type),
		Message:     n.Message,
		Read:        n.Read,
		ReferenceID: n.ReferenceID,
		Metadata:    n.Metadata,
		CreatedAt:   n.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert notification: %w", err)
	}

	stored := *n
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		stored.ID = oid.Hex()
	}
	return &stored, nil
}

func (r *NotificationRepository) ListForUser(ctx context.Context, userEmail string, unreadOnly bool, page ports.Page) ([]domain.Notification, int64, error) {
	filter := bson.M{"user_email": userEmail}
	if unreadOnly {
		filter["read"] = false
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	opts := options.Find().
		SetSkip(page.Offset()).
		SetLimit(int64(page.Limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	defer cur.Close(ctx)

	var notifications []domain.Notification
	for cur.Next(ctx) {
		var doc mongoNotification
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode notification: %w", err)
		}
		notifications = append(notifications, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate notifications: %w", err)
	}
	return notifications, total, nil
}

// MarkRead filters on both id and user_email so a user cannot flip someone
// else's notification.
func (r *NotificationRepository) MarkRead(ctx context.Context, userEmail, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotificationMissing
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "user_email": userEmail},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotificationMissing
	}
	return nil
}
