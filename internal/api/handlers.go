package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/pageza/macro-tracker/backend/internal/database"
	"github.com/pageza/macro-tracker/backend/internal/middleware"
	"github.com/pageza/macro-tracker/backend/internal/service"
)

// Services bundles everything the HTTP layer depends on
type Services struct {
	Auth       service.IAuthService
	Profiles   service.IProfileService
	Meals      service.IMealService
	Summaries  service.ISummaryService
	Estimation service.IEstimationService
	// Export is nil when no export bucket is configured
	Export service.IExportService
	Events *service.AuthEvents
	// EstimateLimiter may be nil to disable estimation rate limiting
	EstimateLimiter *middleware.RateLimiter
	AllowedOrigins  []string
	Logger          *logrus.Logger
}

// HealthCheck returns the health status of the API and its database
func HealthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if db != nil {
			if err := database.HealthCheck(ctx, db); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":   "unhealthy",
					"database": err.Error(),
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Macro Tracker API is running",
			"version": "v1.0.0",
		})
	}
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, db *gorm.DB, svc Services) {
	// Health check endpoint (no auth required)
	router.GET("/health", HealthCheck(db))

	v1 := router.Group("/api/v1")
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(svc.Auth))

	NewAuthHandler(svc.Auth, svc.Events, svc.AllowedOrigins, svc.Logger).RegisterRoutes(v1, protected)
	NewProfileHandler(svc.Profiles).RegisterRoutes(protected)
	NewEstimateHandler(svc.Estimation, svc.EstimateLimiter).RegisterRoutes(protected)
	NewMealHandler(svc.Meals, svc.Estimation, svc.Export, svc.Logger).RegisterRoutes(protected)
	NewSummaryHandler(svc.Summaries).RegisterRoutes(protected)
}
