package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/recipeshare/backend/config"
	"github.com/recipeshare/backend/internal/database"
	"github.com/recipeshare/backend/internal/middleware"
	"github.com/recipeshare/backend/internal/service"
	"github.com/recipeshare/backend/internal/types"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck reports liveness including database reachability, so a
// lost connection surfaces as a 503 instead of a healthy-looking API
// that fails every query.
func HealthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		if err := database.HealthCheck(ctx, db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "degraded",
				"message": "database is unreachable",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "RecipeShare API is running",
		})
	}
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, db *gorm.DB, authService *service.AuthService, imageService *service.ImageService, cfg *config.Config) {
	router.GET("/health", HealthCheck(db))
	router.GET("/api/health", HealthCheck(db))

	// Redis is only needed for rate limiting; the API runs without it.
	var creationLimiter, modificationLimiter *middleware.RateLimiter
	if redisClient, err := database.NewRedisClient(cfg); err != nil {
		logrus.WithError(err).Warn("Redis unavailable, rate limiting disabled")
	} else {
		creationLimiter = middleware.NewRecipeCreationRateLimiter(redisClient)
		modificationLimiter = middleware.NewRecipeModificationRateLimiter(redisClient)
	}

	recipeService := service.NewRecipeService(db)
	userService := service.NewUserService(db)

	authHandler := NewAuthHandler(authService)
	recipeHandler := NewRecipeHandler(recipeService, userService, imageService, authService, creationLimiter, modificationLimiter)
	userHandler := NewUserHandler(userService, recipeService, authService)

	api := router.Group("/api")
	authHandler.RegisterRoutes(api)
	recipeHandler.RegisterRoutes(api)
	userHandler.RegisterRoutes(api)
}

// respondValidationErrors writes the complete field-level violation
// list as a 400.
func respondValidationErrors(c *gin.Context, errs types.ValidationErrors) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "Validation errors",
		"errors":  errs,
	})
}

// respondServiceError maps service errors onto the HTTP taxonomy.
// Unclassified errors are logged in full and reduced to a generic 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
	case errors.Is(err, service.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"message": "Service is temporarily unavailable. Please try again in a moment.",
		})
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrCommentTooLong),
		errors.Is(err, service.ErrSelfFollow):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	default:
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("unhandled service error")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
	}
}
