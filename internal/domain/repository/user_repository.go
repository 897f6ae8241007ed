package repository

import (
	"context"

	"flightstatus-service/internal/domain/entity"
)

// UserRepository defines the interface for user document operations
type UserRepository interface {
	Insert(ctx context.Context, user *entity.User) (string, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindAll(ctx context.Context) ([]*entity.User, error)
	// AddAssignedFlight adds flightID to the user's assignment list with
	// set semantics: adding an already present identifier is a no-op.
	AddAssignedFlight(ctx context.Context, userID, flightID string) error
	// FindByAssignedFlight returns every user whose assignment list
	// contains flightID.
	FindByAssignedFlight(ctx context.Context, flightID string) ([]*entity.User, error)
}
