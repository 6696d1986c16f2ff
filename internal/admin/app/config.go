package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the console backend's environment configuration.
type Config struct {
	// Realm is the provider tenant the console administers
	Realm string `env:"KEYCLOAK_REALM" envDefault:"learning-realm"`

	// AuthServerURL is the provider's base URL
	AuthServerURL string `env:"KEYCLOAK_AUTH_SERVER_URL" envDefault:"http://localhost:8080"`

	// BackendClientID/ClientSecret identify the confidential service client
	// used for admin API calls
	BackendClientID string `env:"KEYCLOAK_BACKEND_CLIENT_ID"`
	ClientSecret    string `env:"KEYCLOAK_CLIENT_SECRET"`

	// PublicClientID is the public client used for the proof-of-possession
	// password check
	PublicClientID string `env:"KEYCLOAK_PUBLIC_CLIENT_ID" envDefault:"learning-client"`

	// JWKSRefreshInterval controls how often the provider's key set is
	// re-fetched in the background
	JWKSRefreshInterval time.Duration `env:"JWKS_REFRESH_INTERVAL" envDefault:"1h"`

	// AuditDatabaseFile is the SQLite file backing the audit trail
	AuditDatabaseFile string `env:"AUDIT_DATABASE_FILE" envDefault:"audit.db"`

	Env       string `env:"ENV" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	Port                int           `env:"PORT" envDefault:"3000"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
}

// LoadConfig reads configuration from the environment, layering a local
// .env file underneath when one exists.
func LoadConfig() (Config, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.BackendClientID == "" {
		return Config{}, fmt.Errorf("KEYCLOAK_BACKEND_CLIENT_ID is required")
	}
	if cfg.ClientSecret == "" {
		return Config{}, fmt.Errorf("KEYCLOAK_CLIENT_SECRET is required")
	}

	return cfg, nil
}
