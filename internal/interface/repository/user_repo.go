// internal/interface/repository/user_repo.go
package repository

import (
	"context"
	"time"

	"flightstatus-service/internal/domain/entity"
	"flightstatus-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserRepository implements UserRepository
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoDB user repository
func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	collection := db.Collection("users")

	ctx := context.Background()

	usernameIndex := mongo.IndexModel{
		Keys:    bson.M{"username": 1},
		Options: options.Index().SetUnique(true),
	}

	// Index on assigned_flights for fan-out lookups
	assignedIndex := mongo.IndexModel{
		Keys: bson.M{"assigned_flights": 1},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		usernameIndex,
		assignedIndex,
	})

	return &MongoUserRepository{
		collection: collection,
	}
}

// Insert inserts a user and returns the generated identifier
func (r *MongoUserRepository) Insert(ctx context.Context, user *entity.User) (string, error) {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.ID == "" {
		user.ID = primitive.NewObjectID().Hex()
	}
	if user.AssignedFlights == nil {
		user.AssignedFlights = []string{}
	}

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		return "", err
	}
	return user.ID, nil
}

// FindByID finds a user by document identifier
func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var user entity.User
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindAll returns every user document
func (r *MongoUserRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []*entity.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// AddAssignedFlight adds flightID to the user's assignment list ($addToSet)
func (r *MongoUserRepository) AddAssignedFlight(ctx context.Context, userID, flightID string) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": userID},
		bson.M{
			"$addToSet": bson.M{"assigned_flights": flightID},
			"$set":      bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// FindByAssignedFlight returns users whose assignment list contains flightID
func (r *MongoUserRepository) FindByAssignedFlight(ctx context.Context, flightID string) ([]*entity.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"assigned_flights": flightID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []*entity.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
