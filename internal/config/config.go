package config

import (
	"context" // Context for envconfig processing
	"fmt"     // Error wrapping
	"time"    // Session TTL

	"github.com/joho/godotenv"          // For loading .env files
	"github.com/sethvargo/go-envconfig" // Typed environment decoding
)

// Config holds the application configuration
type Config struct {
	AppPort  string `env:"APP_PORT, default=3000"`  // Application port
	IsProd   bool   `env:"IS_PROD, default=false"`  // Is production environment
	LogLevel string `env:"LOG_LEVEL, default=info"` // Logrus level name

	DB      DBConfig      // Database settings
	Redis   RedisConfig   // Redis settings (sessions)
	Session SessionConfig // Session cookie settings
	Admin   AdminConfig   // Default admin credential pair
	Site    SiteConfig    // Branding strings rendered in every page

	UploadDir string `env:"UPLOAD_DIR, default=public/uploads"` // Where uploaded images are written
}

// DBConfig selects and configures the relational store
type DBConfig struct {
	Driver       string `env:"DB_DRIVER, default=sqlite"`                                   // sqlite, mysql or postgres
	Path         string `env:"DB_PATH, default=data.db?_foreign_keys=on&_journal_mode=WAL"` // SQLite file DSN
	User         string `env:"DB_USER"`                                                     // Database user
	Password     string `env:"DB_PASSWORD"`                                                 // Database password
	Host         string `env:"DB_HOST, default=localhost"`                                  // Database host
	Port         string `env:"DB_PORT"`                                                     // Database port
	Name         string `env:"DB_NAME, default=catalog"`                                    // Database name
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS, default=10"`                               // Connection pool size
}

// RedisConfig holds the session backend address; an empty Addr keeps sessions in memory
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`          // Redis server address
	Pass string `env:"REDIS_PASS"`          // Redis password
	DB   int    `env:"REDIS_DB, default=0"` // Redis database number
}

// SessionConfig holds cookie signing settings
type SessionConfig struct {
	Secret string        `env:"SESSION_SECRET, default=catalog_session_secret_please_change"` // HMAC key for session tokens
	TTL    time.Duration `env:"SESSION_TTL, default=6h"`                                      // Session lifetime
}

// AdminConfig is the credential pair seeded at startup
type AdminConfig struct {
	Username string `env:"ADMIN_USERNAME, default=admin"`    // Seeded admin username
	Password string `env:"ADMIN_PASSWORD, default=admin123"` // Seeded admin password
}

// SiteConfig holds branding strings
type SiteConfig struct {
	Name             string `env:"SITE_NAME, default=Parfaite Shop"`               // Site name
	Tagline          string `env:"BRAND_TAGLINE, default=Votre boutique en ligne"` // Tagline
	Signature        string `env:"COMPANY_SIGNATURE, default=Parfaite Shop"`       // Footer signature
	WhatsAppNumber   string `env:"WHATSAPP_NUMBER, default=22500000000"`           // Target number for product links
	WhatsAppGroupURL string `env:"WHATSAPP_GROUP_URL"`                             // Optional community link
	PriceDecimals    int32  `env:"PRICE_DECIMALS, default=0"`                      // Currency exponent of stored prices
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // Load .env file if present
	return Process(context.Background(), envconfig.OsLookuper())
}

// Process decodes the configuration from the given lookuper
func Process(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err) // Wrap decoding errors
	}
	if cfg.Session.TTL <= 0 {
		return nil, fmt.Errorf("config: SESSION_TTL must be positive") // Sessions must expire
	}
	if cfg.Site.PriceDecimals < 0 {
		return nil, fmt.Errorf("config: PRICE_DECIMALS must not be negative")
	}
	return &cfg, nil
}
