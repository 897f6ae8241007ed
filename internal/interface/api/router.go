// internal/interface/api/router.go
package api

import (
	"net/http"

	"flightstatus-service/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires all endpoints. Admin endpoints require the admin role
// claim; bearer-token verification applies to everything else except the
// login, registration, health and metrics endpoints.
func NewRouter(issuer *auth.TokenIssuer, authHandler *AuthHandler, flightHandler *FlightHandler, userHandler *UserHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "Healthy")
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/admin/login", authHandler.AdminLogin)
	router.POST("/user/register", authHandler.Register)
	router.POST("/user/login", authHandler.UserLogin)

	authenticated := router.Group("/", AuthMiddleware(issuer))
	authenticated.GET("/flights", flightHandler.List)

	admin := authenticated.Group("/", RequireAdmin())
	admin.POST("/flights", flightHandler.Create)
	admin.PUT("/flights/:id", flightHandler.Update)
	admin.DELETE("/flights/:id", flightHandler.Delete)
	admin.GET("/admin/flights", flightHandler.ListAll)
	admin.GET("/admin/users", userHandler.ListAll)
	admin.GET("/users", userHandler.ListAll)
	admin.POST("/admin/assign-flight", userHandler.AssignFlight)

	return router
}
