package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flightstatus-service/internal/domain/entity"
	"flightstatus-service/internal/domain/repository"
	"flightstatus-service/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
)

// FanoutEnqueuer accepts fan-out jobs for asynchronous delivery.
type FanoutEnqueuer interface {
	Enqueue(job *entity.FanoutJob) bool
}

// FlightService handles flight CRUD and triggers notification fan-out when
// an update changes at least one field.
type FlightService struct {
	flightRepo repository.FlightRepository
	userRepo   repository.UserRepository
	enqueuer   FanoutEnqueuer
	logger     logger.Logger
}

// NewFlightService creates a new flight service
func NewFlightService(flightRepo repository.FlightRepository, userRepo repository.UserRepository, enqueuer FanoutEnqueuer, logger logger.Logger) *FlightService {
	return &FlightService{
		flightRepo: flightRepo,
		userRepo:   userRepo,
		enqueuer:   enqueuer,
		logger:     logger,
	}
}

// Create inserts the given fields verbatim and returns the generated
// identifier. No required-field validation.
func (s *FlightService) Create(ctx context.Context, fields map[string]interface{}) (string, error) {
	return s.flightRepo.Insert(ctx, entity.FlightFromFields(fields))
}

// ListAll returns every flight.
func (s *FlightService) ListAll(ctx context.Context) ([]*entity.Flight, error) {
	return s.flightRepo.FindAll(ctx)
}

// ListForUser returns only the flights whose identifier appears in the
// user's assignment list.
func (s *FlightService) ListForUser(ctx context.Context, username string) ([]*entity.Flight, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user %s: %w", username, ErrNotFound)
		}
		return nil, err
	}
	return s.flightRepo.FindByFlightIDs(ctx, user.AssignedFlights)
}

// Update strips identifier fields from the patch, applies a field-level
// merge and reports whether anything changed. A change enqueues a fan-out
// job with a snapshot of the updated document; the caller does not wait
// for delivery.
func (s *FlightService) Update(ctx context.Context, id string, patch map[string]interface{}) (bool, error) {
	delete(patch, "_id")
	delete(patch, "id")
	delete(patch, "flight_id")

	changed, err := s.flightRepo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, fmt.Errorf("flight %s: %w", id, ErrNotFound)
		}
		return false, err
	}
	if !changed {
		return false, nil
	}

	flight, err := s.flightRepo.FindByID(ctx, id)
	if err != nil {
		// The update is already applied; losing the fan-out is logged,
		// not surfaced.
		s.logger.Error("Failed to load updated flight for fan-out", "id", id, "error", err)
		return true, nil
	}

	s.enqueuer.Enqueue(&entity.FanoutJob{
		Flight:     flight,
		EnqueuedAt: time.Now().UTC(),
	})
	return true, nil
}

// Delete removes a flight and reports whether it existed.
func (s *FlightService) Delete(ctx context.Context, id string) (bool, error) {
	return s.flightRepo.Delete(ctx, id)
}
