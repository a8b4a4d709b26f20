package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Database drivers understood by the store factory
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost      string
	ServerPort      string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string

	// Store selection
	DBDriver string

	// Mongo configuration
	MongoURI        string
	MongoDatabase   string
	MongoCollection string

	// SQL database configuration
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	SQLitePath    string
	MigrationsDir string
}

// Addr returns the host:port the HTTP server listens on
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// PostgresDSN builds the key/value connection string for the postgres driver
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	// .env files are a local convenience only
	if env == Development || env == Test {
		_ = godotenv.Load()
	}

	cfg := &Config{
		Environment:     env,
		ServerHost:      setting("SERVER_HOST", "server_host", ""),
		ServerPort:      setting("SERVER_PORT", "server_port", "8080"),
		DBDriver:        strings.ToLower(setting("DB_DRIVER", "db_driver", DriverMongo)),
		MongoURI:        setting("MONGO_URI", "mongo_uri", "mongodb://localhost:27017"),
		MongoDatabase:   setting("MONGO_DATABASE", "mongo_database", "recipes"),
		MongoCollection: setting("MONGO_COLLECTION", "mongo_collection", "recipes"),
		DBHost:          setting("DB_HOST", "db_host", "localhost"),
		DBPort:          setting("DB_PORT", "db_port", "5432"),
		DBUser:          setting("DB_USER", "db_user", "postgres"),
		DBPassword:      setting("DB_PASSWORD", "db_password", ""),
		DBName:          setting("DB_NAME", "db_name", "recipes"),
		DBSSLMode:       setting("DB_SSL_MODE", "db_ssl_mode", "disable"),
		SQLitePath:      setting("SQLITE_PATH", "sqlite_path", "recipes.db"),
		MigrationsDir:   setting("MIGRATIONS_DIR", "migrations_dir", "migrations"),
	}

	var err error
	if cfg.RequestTimeout, err = durationSetting("REQUEST_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = durationSetting("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	origins := setting("CORS_ALLOWED_ORIGINS", "cors_allowed_origins", "http://localhost:5173")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// setting reads an environment variable, then the Docker secret of the same purpose, then the default
func setting(envVar, secret, def string) string {
	if v := strings.TrimSpace(os.Getenv(envVar)); v != "" {
		return v
	}
	if v := readSecret(secret); v != "" {
		return v
	}
	return def
}

func durationSetting(envVar string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(envVar)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, ValidationError{Field: envVar, Message: fmt.Sprintf("invalid duration %q", raw)}
	}
	return d, nil
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
