// internal/interface/repository/notification_repo.go
package repository

import (
	"context"

	"flightstatus-service/internal/domain/entity"
	"flightstatus-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoNotificationRepository implements NotificationRepository
type MongoNotificationRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationRepository creates a new MongoDB notification repository
func NewMongoNotificationRepository(db *mongo.Database) repository.NotificationRepository {
	collection := db.Collection("notifications")

	// Index on flight_id for audit queries
	ctx := context.Background()
	flightIDIndex := mongo.IndexModel{
		Keys: bson.M{"flight_id": 1},
	}
	collection.Indexes().CreateOne(ctx, flightIDIndex)

	return &MongoNotificationRepository{
		collection: collection,
	}
}

// Insert writes an audit record. Notifications are write-once: they are
// never updated or deleted.
func (r *MongoNotificationRepository) Insert(ctx context.Context, notification *entity.Notification) (string, error) {
	if notification.ID == "" {
		notification.ID = primitive.NewObjectID().Hex()
	}

	if _, err := r.collection.InsertOne(ctx, notification); err != nil {
		return "", err
	}
	return notification.ID, nil
}
