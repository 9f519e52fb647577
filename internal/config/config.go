package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds application configuration
type Config struct {
	// Server
	Port        string
	Env         string
	CORSOrigins []string

	// Record store
	StoreDriver string
	SQLitePath  string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	// Auth. Disabled when AuthPasswordHash is empty.
	AuthPasswordHash string
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Change events. Disabled when AMQPURL is empty.
	AMQPURL      string
	AMQPExchange string

	// Bulk import over HTTP. Disabled when empty.
	ImportAPIKey string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),

		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", DriverSQLite)),
		SQLitePath:  getEnv("SQLITE_PATH", "data/finance.db"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "finance"),
		DBPassword:  getEnv("DB_PASSWORD", "finance"),
		DBName:      getEnv("DB_NAME", "finance"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),

		AuthPasswordHash: getEnv("AUTH_PASSWORD_HASH", ""),
		JWTSecret:        getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "finance.events"),

		ImportAPIKey: getEnv("IMPORT_API_KEY", ""),
	}

	expStr := getEnv("JWT_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	switch config.StoreDriver {
	case DriverSQLite, DriverPostgres, DriverMemory:
	default:
		log.Printf("Warning: unknown STORE_DRIVER '%s', falling back to %s\n", config.StoreDriver, DriverSQLite)
		config.StoreDriver = DriverSQLite
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// AuthEnabled reports whether the API requires a bearer token.
func (c *Config) AuthEnabled() bool {
	return c.AuthPasswordHash != ""
}

// EventsEnabled reports whether change events are published to AMQP.
func (c *Config) EventsEnabled() bool {
	return c.AMQPURL != ""
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
