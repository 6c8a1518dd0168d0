package main

import (
	"flag"
	"os"

	"github.com/kennywood/park-api/internal/config"
	"github.com/kennywood/park-api/internal/database"
	"github.com/sirupsen/logrus"
)

func main() {
	seed := flag.Bool("seed", false, "insert the sample park areas and attractions when the catalog is empty")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil {
		logger.Fatalf("Failed to apply schema: %v", err)
	}
	logger.WithField("tables", database.Tables).Info("Schema applied")

	if !*seed {
		return
	}

	inserted, err := database.SeedCatalog(db)
	if err != nil {
		logger.Fatalf("Failed to seed catalog: %v", err)
	}
	logger.WithField("attractions", inserted).Info("Catalog seeded")
}
