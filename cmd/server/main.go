package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kennywood/park-api/internal/config"
	"github.com/kennywood/park-api/internal/database"
	"github.com/kennywood/park-api/internal/services"
	"github.com/sirupsen/logrus"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Handlers log through the standard logger, so configure that one
	logger := logrus.StandardLogger()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting Kennywood park API")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	logger.WithField("driver", cfg.Database.Driver).Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	if cfg.Database.AutoMigrate {
		if err := database.EnsureSchema(db); err != nil {
			logger.Fatalf("Failed to apply schema: %v", err)
		}
		logger.Info("Database schema is up to date")
	}

	auditService := services.NewAuditService(db, cfg.Security.EnableAuditLog)
	if cfg.Security.EnableAuditLog && cfg.Security.AuditRetentionDays > 0 {
		retention := time.Duration(cfg.Security.AuditRetentionDays) * 24 * time.Hour
		cronService := services.NewCronService(auditService, retention, logger)
		if err := cronService.Start(cfg.Security.AuditCleanupSchedule); err != nil {
			logger.Fatalf("Failed to start cron service: %v", err)
		}
		defer cronService.Stop()
	}

	router := newRouter(cfg, db, auditService, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("Server listening on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}
