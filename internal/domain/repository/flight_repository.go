package repository

import (
	"context"

	"flightstatus-service/internal/domain/entity"
)

// FlightRepository defines the interface for flight document operations
type FlightRepository interface {
	Insert(ctx context.Context, flight *entity.Flight) (string, error)
	FindByID(ctx context.Context, id string) (*entity.Flight, error)
	FindByFlightID(ctx context.Context, flightID string) (*entity.Flight, error)
	FindAll(ctx context.Context) ([]*entity.Flight, error)
	FindByFlightIDs(ctx context.Context, flightIDs []string) ([]*entity.Flight, error)
	// Update applies a field-level merge and reports whether any field
	// actually changed.
	Update(ctx context.Context, id string, patch map[string]interface{}) (bool, error)
	// Delete reports whether a document existed to remove.
	Delete(ctx context.Context, id string) (bool, error)
}
