package usecase

import (
	"context"
	"testing"
	"time"

	"flightstatus-service/internal/auth"
	"flightstatus-service/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T, users *MockUserRepository) *AuthService {
	t.Helper()
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	s, err := NewAuthService(issuer, users, "admin", "admin-password", nopLogger{})
	require.NoError(t, err)
	return s
}

func TestAdminLogin(t *testing.T) {
	s := newTestAuthService(t, &MockUserRepository{})

	token, err := s.AdminLogin("admin", "admin-password")
	require.NoError(t, err)

	claims, err := auth.NewTokenIssuer("test-secret", time.Hour).Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, auth.RoleAdmin, claims.Role)
}

func TestAdminLogin_RejectsBadCredentials(t *testing.T) {
	s := newTestAuthService(t, &MockUserRepository{})

	_, err := s.AdminLogin("admin", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = s.AdminLogin("root", "admin-password")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestUserLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	mockUsers := &MockUserRepository{}
	mockUsers.On("FindByUsername", mock.Anything, "alice").
		Return(&entity.User{Username: "alice", PasswordHash: string(hash)}, nil)

	s := newTestAuthService(t, mockUsers)

	token, err := s.UserLogin(context.Background(), "alice", "secret123")
	require.NoError(t, err)

	claims, err := auth.NewTokenIssuer("test-secret", time.Hour).Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, auth.RoleUser, claims.Role)

	_, err = s.UserLogin(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestUserLogin_UnknownUser(t *testing.T) {
	mockUsers := &MockUserRepository{}
	mockUsers.On("FindByUsername", mock.Anything, "nobody").Return(nil, mongo.ErrNoDocuments)

	s := newTestAuthService(t, mockUsers)

	_, err := s.UserLogin(context.Background(), "nobody", "secret123")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
