package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kennywood/park-api/internal/config"
	"github.com/kennywood/park-api/internal/database"
	"github.com/kennywood/park-api/internal/handlers"
	"github.com/kennywood/park-api/internal/middleware"
	"github.com/kennywood/park-api/internal/services"
	"github.com/kennywood/park-api/pkg/jwt"
	"github.com/kennywood/park-api/pkg/validator"
	"github.com/sirupsen/logrus"
)

// newRouter wires repositories, handlers and middleware onto a gin engine
func newRouter(cfg *config.Config, db database.DB, auditService *services.AuditService, logger *logrus.Logger) *gin.Engine {
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	userRepository := database.NewUserRepository(db)
	customerRepository := database.NewCustomerRepository(db)

	authHandler := handlers.NewAuthHandler(
		jwtService,
		validator.NewCredentialsValidator(),
		auditService,
		userRepository,
		customerRepository,
		cfg.Security.BcryptCost,
	)
	itineraryHandler := handlers.NewItineraryHandler(
		database.NewItineraryRepository(db),
		database.NewAttractionRepository(db),
		database.NewParkAreaRepository(db),
		customerRepository,
		auditService,
		cfg.API.PublicBaseURL,
	)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: !containsWildcard(cfg.CORS.AllowedOrigins),
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", healthCheckHandler(db))

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthMiddleware(jwtService), authHandler.GetProfile)
		}

		itineraryHandler.RegisterRoutes(v1.Group("/itineraryitems", middleware.AuthMiddleware(jwtService)))
	}

	return router
}

// browsers refuse credentialed responses that carry a "*" origin
func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      c.Request.URL.RawQuery,
			"ip":         c.ClientIP(),
			"latency_ms": time.Since(start).Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}
		if userCtx, ok := middleware.GetUserContext(c); ok {
			fields["user_id"] = userCtx.UserID
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		entry := logger.WithFields(fields)
		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.Error("Request completed with server error")
		case status >= 400:
			entry.Warn("Request completed with client error")
		default:
			entry.Info("Request completed successfully")
		}
	}
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
