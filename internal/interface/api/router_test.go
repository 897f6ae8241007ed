package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"flightstatus-service/internal/auth"
	"flightstatus-service/internal/domain/entity"
	"flightstatus-service/internal/usecase"
	"flightstatus-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}
func (l nopLogger) With(...interface{}) logger.Logger {
	return l
}

// memFlightRepo is an in-memory FlightRepository with the same merge and
// not-found semantics as the MongoDB implementation.
type memFlightRepo struct {
	mu      sync.Mutex
	nextID  int
	flights map[string]*entity.Flight
}

func newMemFlightRepo() *memFlightRepo {
	return &memFlightRepo{flights: make(map[string]*entity.Flight)}
}

func (r *memFlightRepo) Insert(_ context.Context, flight *entity.Flight) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	flight.ID = "flight-" + strconv.Itoa(r.nextID)
	flight.CreatedAt = time.Now().UTC()
	flight.UpdatedAt = flight.CreatedAt
	r.flights[flight.ID] = flight
	return flight.ID, nil
}

func (r *memFlightRepo) FindByID(_ context.Context, id string) (*entity.Flight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	flight, ok := r.flights[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return flight, nil
}

func (r *memFlightRepo) FindByFlightID(_ context.Context, flightID string) (*entity.Flight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, flight := range r.flights {
		if flight.FlightID == flightID {
			return flight, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memFlightRepo) FindAll(_ context.Context) ([]*entity.Flight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Flight, 0, len(r.flights))
	for _, flight := range r.flights {
		out = append(out, flight)
	}
	return out, nil
}

func (r *memFlightRepo) FindByFlightIDs(_ context.Context, flightIDs []string) ([]*entity.Flight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Flight, 0)
	for _, flight := range r.flights {
		for _, id := range flightIDs {
			if flight.FlightID == id {
				out = append(out, flight)
			}
		}
	}
	return out, nil
}

func (r *memFlightRepo) Update(_ context.Context, id string, patch map[string]interface{}) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	flight, ok := r.flights[id]
	if !ok {
		return false, mongo.ErrNoDocuments
	}

	changed := false
	for key, value := range patch {
		text := fmt.Sprint(value)
		switch key {
		case "status":
			if flight.Status != text {
				flight.Status = text
				changed = true
			}
		case "departure_gate":
			if flight.DepartureGate != text {
				flight.DepartureGate = text
				changed = true
			}
		default:
			if flight.Extra == nil {
				flight.Extra = make(map[string]interface{})
			}
			if fmt.Sprint(flight.Extra[key]) != text {
				flight.Extra[key] = value
				changed = true
			}
		}
	}
	if changed {
		flight.UpdatedAt = time.Now().UTC()
	}
	return changed, nil
}

func (r *memFlightRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.flights[id]
	delete(r.flights, id)
	return ok, nil
}

// memUserRepo is an in-memory UserRepository.
type memUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entity.User)}
}

func (r *memUserRepo) Insert(_ context.Context, user *entity.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user.ID = "user-" + strconv.Itoa(r.nextID)
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = user
	return user.ID, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return user, nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memUserRepo) FindAll(_ context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, user)
	}
	return out, nil
}

func (r *memUserRepo) AddAssignedFlight(_ context.Context, userID, flightID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	for _, id := range user.AssignedFlights {
		if id == flightID {
			return nil
		}
	}
	user.AssignedFlights = append(user.AssignedFlights, flightID)
	return nil
}

func (r *memUserRepo) FindByAssignedFlight(_ context.Context, flightID string) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0)
	for _, user := range r.users {
		for _, id := range user.AssignedFlights {
			if id == flightID {
				out = append(out, user)
			}
		}
	}
	return out, nil
}

type nopEnqueuer struct{}

func (nopEnqueuer) Enqueue(*entity.FanoutJob) bool { return true }

type testServer struct {
	router  *gin.Engine
	flights *memFlightRepo
	users   *memUserRepo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	flights := newMemFlightRepo()
	users := newMemUserRepo()
	log := nopLogger{}

	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	authService, err := usecase.NewAuthService(issuer, users, "admin", "admin-password", log)
	require.NoError(t, err)
	userService := usecase.NewUserService(users, flights, log)
	flightService := usecase.NewFlightService(flights, users, nopEnqueuer{}, log)

	router := NewRouter(issuer,
		NewAuthHandler(authService, userService, log),
		NewFlightHandler(flightService, log),
		NewUserHandler(userService, log))

	return &testServer{router: router, flights: flights, users: users}
}

func (s *testServer) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) adminToken(t *testing.T) string {
	t.Helper()
	w := s.request(t, http.MethodPost, "/admin/login", "", gin.H{"username": "admin", "password": "admin-password"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["access_token"])
	return resp["access_token"]
}

func (s *testServer) registerAndLogin(t *testing.T, username string) string {
	t.Helper()
	w := s.request(t, http.MethodPost, "/user/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"phone":    "+15550100",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.request(t, http.MethodPost, "/user/login", "", gin.H{"username": username, "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp["access_token"]
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)
	w := s.request(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminLogin_InvalidCredentials(t *testing.T) {
	s := newTestServer(t)
	w := s.request(t, http.MethodPost, "/admin/login", "", gin.H{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}

func TestUserLogin_InvalidCredentials(t *testing.T) {
	s := newTestServer(t)
	s.registerAndLogin(t, "alice")

	w := s.request(t, http.MethodPost, "/user/login", "", gin.H{"username": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.request(t, http.MethodPost, "/user/login", "", gin.H{"username": "nobody", "password": "secret123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	s := newTestServer(t)
	s.registerAndLogin(t, "alice")

	w := s.request(t, http.MethodPost, "/user/register", "", gin.H{
		"username": "alice",
		"email":    "other@example.com",
		"phone":    "+15550199",
		"password": "secret456",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Username already exists")
}

func TestRegister_PasswordNotExposed(t *testing.T) {
	s := newTestServer(t)
	w := s.request(t, http.MethodPost, "/user/register", "", gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"phone":    "+15550100",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "secret123")
	assert.NotContains(t, w.Body.String(), "password")
}

func TestProtectedEndpoints_RequireToken(t *testing.T) {
	s := newTestServer(t)

	w := s.request(t, http.MethodGet, "/flights", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.request(t, http.MethodPost, "/flights", "", gin.H{"flight_id": "AA100"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, s.flights.flights, "rejected request must not create a flight")

	w = s.request(t, http.MethodGet, "/flights", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminEndpoints_RejectUserRole(t *testing.T) {
	s := newTestServer(t)
	userToken := s.registerAndLogin(t, "alice")

	w := s.request(t, http.MethodPost, "/flights", userToken, gin.H{"flight_id": "AA100"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, s.flights.flights)

	w = s.request(t, http.MethodGet, "/admin/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.request(t, http.MethodPost, "/admin/assign-flight", userToken, gin.H{"userId": "u", "flightId": "f"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestFlightLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := s.adminToken(t)

	w := s.request(t, http.MethodPost, "/flights", token, gin.H{
		"flight_id":      "AA100",
		"status":         "on time",
		"departure_gate": "A3",
		"aircraft":       "B738",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var created map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created["id"]
	require.NotEmpty(t, id)

	w = s.request(t, http.MethodGet, "/admin/flights", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "AA100", listed[0]["flight_id"])
	assert.Equal(t, "B738", listed[0]["aircraft"])

	w = s.request(t, http.MethodPut, "/flights/"+id, token, gin.H{"status": "delayed"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"updated": true}`, w.Body.String())

	// Re-applying the same value changes nothing.
	w = s.request(t, http.MethodPut, "/flights/"+id, token, gin.H{"status": "delayed"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"updated": false}`, w.Body.String())

	w = s.request(t, http.MethodPut, "/flights/missing", token, gin.H{"status": "delayed"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.request(t, http.MethodDelete, "/flights/"+id, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted": true}`, w.Body.String())

	w = s.request(t, http.MethodDelete, "/flights/"+id, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted": false}`, w.Body.String())
}

func TestAssignFlightAndUserListing(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.adminToken(t)
	userToken := s.registerAndLogin(t, "alice")

	w := s.request(t, http.MethodPost, "/flights", adminToken, gin.H{
		"flight_id":      "AA100",
		"status":         "on time",
		"departure_gate": "A3",
	})
	require.Equal(t, http.StatusOK, w.Code)
	w = s.request(t, http.MethodPost, "/flights", adminToken, gin.H{
		"flight_id":      "BB200",
		"status":         "on time",
		"departure_gate": "B1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	user, err := s.users.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)

	w = s.request(t, http.MethodPost, "/admin/assign-flight", adminToken, gin.H{"userId": user.ID, "flightId": "AA100"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Flight assigned successfully")

	// A user sees only assigned flights; the admin sees everything.
	w = s.request(t, http.MethodGet, "/flights", userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, "AA100", mine[0]["flight_id"])

	w = s.request(t, http.MethodGet, "/flights", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 2)
}

func TestAssignFlight_MissingReferences(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.adminToken(t)
	s.registerAndLogin(t, "alice")

	user, err := s.users.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)

	w := s.request(t, http.MethodPost, "/admin/assign-flight", adminToken, gin.H{"userId": user.ID, "flightId": "ZZ999"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.request(t, http.MethodPost, "/admin/assign-flight", adminToken, gin.H{"userId": "missing", "flightId": "ZZ999"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.request(t, http.MethodPost, "/admin/assign-flight", adminToken, gin.H{"userId": user.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListUsers_AdminOnly(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.adminToken(t)
	s.registerAndLogin(t, "alice")

	w := s.request(t, http.MethodGet, "/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var users []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0]["username"])
	assert.NotContains(t, w.Body.String(), "password_hash")
}
