package usecase

import (
	"context"
	"errors"
	"fmt"

	"flightstatus-service/internal/domain/entity"
	"flightstatus-service/internal/domain/repository"
	"flightstatus-service/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles registration, the user listing and the assignment
// relation.
type UserService struct {
	userRepo   repository.UserRepository
	flightRepo repository.FlightRepository
	logger     logger.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, flightRepo repository.FlightRepository, logger logger.Logger) *UserService {
	return &UserService{
		userRepo:   userRepo,
		flightRepo: flightRepo,
		logger:     logger,
	}
}

// Register creates a user with a bcrypt password hash and an empty
// assignment list. Returns ErrConflict if the username is taken.
func (s *UserService) Register(ctx context.Context, username, email, phone, password string) (*entity.User, error) {
	_, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil {
		return nil, ErrConflict
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Username:        username,
		Email:           email,
		Phone:           phone,
		PasswordHash:    string(hash),
		AssignedFlights: []string{},
	}

	if _, err := s.userRepo.Insert(ctx, user); err != nil {
		// The unique index closes the race between the pre-check and
		// the insert.
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrConflict
		}
		return nil, err
	}

	s.logger.Info("User registered", "username", username)
	return user, nil
}

// Assign adds flightID to the user's assignment list. It is idempotent and
// fails with ErrNotFound if either the user or the referenced flight does
// not exist.
func (s *UserService) Assign(ctx context.Context, userID, flightID string) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return err
	}

	if _, err := s.flightRepo.FindByFlightID(ctx, flightID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("flight %s: %w", flightID, ErrNotFound)
		}
		return err
	}

	if err := s.userRepo.AddAssignedFlight(ctx, userID, flightID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return err
	}

	s.logger.Info("Flight assigned", "userId", userID, "flightId", flightID)
	return nil
}

// ListAll returns every user record. Password hashes never serialize.
func (s *UserService) ListAll(ctx context.Context) ([]*entity.User, error) {
	return s.userRepo.FindAll(ctx)
}
