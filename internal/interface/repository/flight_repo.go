// internal/interface/repository/flight_repo.go
package repository

import (
	"context"
	"time"

	"flightstatus-service/internal/domain/entity"
	"flightstatus-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoFlightRepository implements FlightRepository
type MongoFlightRepository struct {
	collection *mongo.Collection
}

// NewMongoFlightRepository creates a new MongoDB flight repository
func NewMongoFlightRepository(db *mongo.Database) repository.FlightRepository {
	collection := db.Collection("flights")

	// Index on flight_id for assignment lookups
	ctx := context.Background()
	flightIDIndex := mongo.IndexModel{
		Keys: bson.M{"flight_id": 1},
	}
	collection.Indexes().CreateOne(ctx, flightIDIndex)

	return &MongoFlightRepository{
		collection: collection,
	}
}

// Insert inserts a flight document and returns the generated identifier
func (r *MongoFlightRepository) Insert(ctx context.Context, flight *entity.Flight) (string, error) {
	now := time.Now().UTC()
	flight.CreatedAt = now
	flight.UpdatedAt = now
	if flight.ID == "" {
		flight.ID = primitive.NewObjectID().Hex()
	}

	if _, err := r.collection.InsertOne(ctx, flight); err != nil {
		return "", err
	}
	return flight.ID, nil
}

// FindByID finds a flight by its document identifier
func (r *MongoFlightRepository) FindByID(ctx context.Context, id string) (*entity.Flight, error) {
	var flight entity.Flight
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&flight)
	if err != nil {
		return nil, err
	}
	return &flight, nil
}

// FindByFlightID finds a flight by its flight_id field
func (r *MongoFlightRepository) FindByFlightID(ctx context.Context, flightID string) (*entity.Flight, error) {
	var flight entity.Flight
	err := r.collection.FindOne(ctx, bson.M{"flight_id": flightID}).Decode(&flight)
	if err != nil {
		return nil, err
	}
	return &flight, nil
}

// FindAll returns every flight document
func (r *MongoFlightRepository) FindAll(ctx context.Context) ([]*entity.Flight, error) {
	return r.find(ctx, bson.M{})
}

// FindByFlightIDs returns flights whose flight_id is in the given list
func (r *MongoFlightRepository) FindByFlightIDs(ctx context.Context, flightIDs []string) ([]*entity.Flight, error) {
	if len(flightIDs) == 0 {
		return []*entity.Flight{}, nil
	}
	return r.find(ctx, bson.M{"flight_id": bson.M{"$in": flightIDs}})
}

func (r *MongoFlightRepository) find(ctx context.Context, filter bson.M) ([]*entity.Flight, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	flights := []*entity.Flight{}
	if err := cursor.All(ctx, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

// Update applies a $set merge and reports whether any field changed
func (r *MongoFlightRepository) Update(ctx context.Context, id string, patch map[string]interface{}) (bool, error) {
	if len(patch) == 0 {
		return false, nil
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": patch})
	if err != nil {
		return false, err
	}
	if result.MatchedCount == 0 {
		return false, mongo.ErrNoDocuments
	}
	if result.ModifiedCount == 0 {
		// Every patched field already held the same value. The timestamp
		// is only bumped on a real change so an identical patch stays a
		// no-op.
		return false, nil
	}

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"updated_at": time.Now().UTC()}})
	return true, err
}

// Delete removes a flight and reports whether it existed
func (r *MongoFlightRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}
