package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kennywood/park-api/internal/config"
	"github.com/kennywood/park-api/internal/database"
	"github.com/kennywood/park-api/internal/services"
	"github.com/sirupsen/logrus"
)

func main() {
	var (
		dbURLFlag     string
		driverFlag    string
		auditOlderFor time.Duration
	)
	flag.StringVar(&dbURLFlag, "database-url", "", "PostgreSQL connection string (overrides DATABASE_URL)")
	flag.StringVar(&driverFlag, "driver", "", "database/sql driver: postgres or pgx (overrides DATABASE_DRIVER)")
	flag.DurationVar(&auditOlderFor, "audit-older-than", 0, "only delete audit_logs rows older than this (e.g. 720h); other tables are left alone")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// .env is optional; it keeps secrets off the command line
	_ = godotenv.Load()

	dbURL := dbURLFlag
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set and -database-url was not provided")
	}

	driver := driverFlag
	if driver == "" {
		driver = os.Getenv("DATABASE_DRIVER")
	}

	db, err := database.NewConnection(config.DatabaseConfig{
		URL:                dbURL,
		Driver:             driver,
		MaxConnections:     5,
		MaxIdleConnections: 2,
	})
	if err != nil {
		logger.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if auditOlderFor > 0 {
		removed, err := services.NewAuditService(db, true).CleanupOldAuditLogs(auditOlderFor)
		if err != nil {
			logger.Fatalf("failed to clean audit logs: %v", err)
		}
		logger.WithField("removed", removed).Info("Old audit log rows deleted")
		return
	}

	logger.Info("Connected to database. Truncating tables...")

	truncateSQL := fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", strings.Join(database.Tables, ", "))
	if _, err := db.Exec(truncateSQL); err != nil {
		logger.Fatalf("failed to truncate tables: %v", err)
	}

	logger.Info("All data cleared (tables truncated, identities reset)")

	for _, t := range database.Tables {
		var count int
		if err := db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", t)).Scan(&count); err != nil {
			logger.WithError(err).WithField("table", t).Warn("Row count failed")
			continue
		}
		logger.WithFields(logrus.Fields{"table": t, "rows": count}).Info("Post-clear row count")
	}
}
