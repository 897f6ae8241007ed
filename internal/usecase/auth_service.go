package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"flightstatus-service/internal/auth"
	"flightstatus-service/internal/domain/repository"
	"flightstatus-service/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// AuthService issues bearer tokens for the two login entry points. Admin
// credentials come from configuration; the admin password is hashed at
// construction so both logins go through the same bcrypt comparison.
type AuthService struct {
	issuer        *auth.TokenIssuer
	userRepo      repository.UserRepository
	adminUsername string
	adminHash     []byte
	logger        logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(issuer *auth.TokenIssuer, userRepo repository.UserRepository, adminUsername, adminPassword string, logger logger.Logger) (*AuthService, error) {
	adminHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	return &AuthService{
		issuer:        issuer,
		userRepo:      userRepo,
		adminUsername: adminUsername,
		adminHash:     adminHash,
		logger:        logger,
	}, nil
}

// AdminLogin checks the configured admin credentials and issues an admin
// token.
func (s *AuthService) AdminLogin(username, password string) (string, error) {
	usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(s.adminUsername)) == 1
	passwordErr := bcrypt.CompareHashAndPassword(s.adminHash, []byte(password))
	if !usernameMatch || passwordErr != nil {
		return "", ErrUnauthorized
	}

	return s.issuer.Issue(username, auth.RoleAdmin)
}

// UserLogin checks a registered account's credentials and issues a user
// token.
func (s *AuthService) UserLogin(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrUnauthorized
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrUnauthorized
	}

	return s.issuer.Issue(user.Username, auth.RoleUser)
}
