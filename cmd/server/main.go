package main

import (
	"context"   // context package is needed for Redis operations
	"errors"    // Server close detection
	"net/http"  // HTTP server
	"os/signal" // Graceful shutdown on SIGINT/SIGTERM
	"syscall"   // Signal numbers
	"time"      // Shutdown timeout

	"catalog_shop/internal/api"     // Custom package for API handlers
	"catalog_shop/internal/config"  // Custom package for configuration
	"catalog_shop/internal/db"      // Custom package for the database
	"catalog_shop/internal/session" // Custom package for sessions
	"catalog_shop/internal/store"   // Custom package for catalog storage

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	// Setup logger
	setupLogger(cfg)

	// Connect to the database, create missing tables and seed defaults
	gdb, err := db.Open(cfg.DB)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("failed to migrate DB: %v", err)
	}
	ctx := context.Background()
	if err := db.Seed(ctx, gdb, cfg.Admin); err != nil {
		logrus.Fatalf("failed to seed DB: %v", err) // Unusable without an admin
	}
	catalog := store.New(gdb)

	checks := map[string]api.Pinger{"database": catalog.Ping}

	// Setup the session store: Redis when configured, process memory otherwise
	var sessionStore session.Store
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr, // Redis server address
			Password: cfg.Redis.Pass, // Redis password
			DB:       cfg.Redis.DB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(ctx).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		sessionStore = session.NewRedisStore(redisClient)
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	} else {
		logrus.Warn("REDIS_ADDR not set, sessions are kept in memory")
		sessionStore = session.NewMemoryStore()
	}
	sessions := session.NewManager(sessionStore, cfg.Session.Secret, cfg.Session.TTL)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r, err := api.NewRouter(api.Deps{
		Catalog:        catalog,
		Users:          catalog,
		Sessions:       sessions,
		Checks:         checks,
		Site:           cfg.Site,
		UploadDir:      cfg.UploadDir,
		SecureCookies:  cfg.IsProd,
		TrustedProxies: []string{"127.0.0.1"},
	})
	if err != nil {
		logrus.Fatalf("failed to build router: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Stop on SIGINT/SIGTERM
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Error("server shutdown failed")
		}
	}()

	logrus.WithFields(logrus.Fields{"port": cfg.AppPort, "driver": cfg.DB.Driver}).Infof("%s en ligne", cfg.Site.Name)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.Fatalf("server failed: %v", err)
	}
	logrus.Info("server stopped")
}

// setupLogger configures the logrus formatter and level
func setupLogger(cfg *config.Config) {
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Warnf("unknown LOG_LEVEL %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
