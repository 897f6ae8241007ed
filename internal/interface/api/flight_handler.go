// internal/interface/api/flight_handler.go
package api

import (
	"errors"
	"net/http"

	"flightstatus-service/internal/auth"
	"flightstatus-service/internal/usecase"
	"flightstatus-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// FlightHandler serves the flight CRUD endpoints
type FlightHandler struct {
	flightService *usecase.FlightService
	logger        logger.Logger
}

// NewFlightHandler creates a new flight handler
func NewFlightHandler(flightService *usecase.FlightService, logger logger.Logger) *FlightHandler {
	return &FlightHandler{
		flightService: flightService,
		logger:        logger,
	}
}

// Create handles POST /flights. Any JSON object is accepted verbatim.
func (h *FlightHandler) Create(c *gin.Context) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	id, err := h.flightService.Create(c.Request.Context(), fields)
	if err != nil {
		h.logger.Error("Failed to create flight", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

// List handles GET /flights: all flights for an admin, the assigned subset
// for a user.
func (h *FlightHandler) List(c *gin.Context) {
	if c.GetString(ContextRoleKey) == auth.RoleAdmin {
		h.ListAll(c)
		return
	}

	flights, err := h.flightService.ListForUser(c.Request.Context(), c.GetString(ContextUsernameKey))
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.logger.Error("Failed to list flights", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, flights)
}

// ListAll handles GET /admin/flights
func (h *FlightHandler) ListAll(c *gin.Context) {
	flights, err := h.flightService.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list flights", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, flights)
}

// Update handles PUT /flights/:id
func (h *FlightHandler) Update(c *gin.Context) {
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	changed, err := h.flightService.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Flight not found"})
			return
		}
		h.logger.Error("Failed to update flight", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": changed})
}

// Delete handles DELETE /flights/:id
func (h *FlightHandler) Delete(c *gin.Context) {
	existed, err := h.flightService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("Failed to delete flight", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": existed})
}
