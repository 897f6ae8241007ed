// internal/interface/api/user_handler.go
package api

import (
	"errors"
	"net/http"

	"flightstatus-service/internal/usecase"
	"flightstatus-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the user listing and assignment endpoints
type UserHandler struct {
	userService *usecase.UserService
	logger      logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *usecase.UserService, logger logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

type assignFlightRequest struct {
	UserID   string `json:"userId" binding:"required"`
	FlightID string `json:"flightId" binding:"required"`
}

// ListAll handles GET /admin/users and GET /users
func (h *UserHandler) ListAll(c *gin.Context) {
	users, err := h.userService.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list users", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, users)
}

// AssignFlight handles POST /admin/assign-flight
func (h *UserHandler) AssignFlight(c *gin.Context) {
	var req assignFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.userService.Assign(c.Request.Context(), req.UserID, req.FlightID); err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to assign flight", "userId", req.UserID, "flightId", req.FlightID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Flight assigned successfully"})
}
