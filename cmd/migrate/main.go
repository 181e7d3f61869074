package main

import (
	"context" // Context for seeding

	"catalog_shop/internal/config" // Custom import path (Config)
	"catalog_shop/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Logging library
)

// Main entry point for migration
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	gdb, err := db.Open(cfg.DB)
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("%v", err) // Log fatal error if migration fails
	}
	if err := db.Seed(context.Background(), gdb, cfg.Admin); err != nil {
		logrus.Fatalf("seed failed: %v", err)
	}
	logrus.Info("Seed completed.")
}
