package database

import (
	"fmt"
	"net/url"

	"github.com/Kola-Kola/personal-finance/internal/config"
)

// Config holds database configuration
type Config struct {
	Driver     string
	SQLitePath string

	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// NewConfig derives the database configuration from the application config.
func NewConfig(cfg *config.Config) *Config {
	return &Config{
		Driver:     cfg.StoreDriver,
		SQLitePath: cfg.SQLitePath,
		Host:       cfg.DBHost,
		Port:       cfg.DBPort,
		User:       cfg.DBUser,
		Password:   cfg.DBPassword,
		DBName:     cfg.DBName,
		SSLMode:    cfg.DBSSLMode,
	}
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.Driver == config.DriverPostgres {
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
	}
	return c.SQLitePath + "?_foreign_keys=1&_busy_timeout=5000"
}

// MigrateURL returns the database URL understood by golang-migrate.
func (c *Config) MigrateURL() string {
	if c.Driver == config.DriverPostgres {
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.User, c.Password),
			Host:     c.Host + ":" + c.Port,
			Path:     "/" + c.DBName,
			RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
		}
		return u.String()
	}
	return "sqlite3://" + c.SQLitePath
}

// MigrationsDir is the directory of the embedded migrations for the driver.
func (c *Config) MigrationsDir() string {
	if c.Driver == config.DriverPostgres {
		return "postgres"
	}
	return "sqlite"
}
