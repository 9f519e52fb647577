// Package logger provides structured logging using Zap.
package logger

import (
	"sync"

	"go.uber.org/zap"
)

// DefaultService names entries logged before Init.
const DefaultService = "personal-finance"

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init initializes the global logger. In production entries are JSON,
// otherwise they use the console encoder. Every entry carries service so
// the API and the CLI tools can be told apart in a shared log.
func Init(env, service string) {
	once.Do(func() {
		base, err := newConfig(env, service).Build()
		if err != nil {
			base = zap.NewNop()
		}
		sugar = base.Sugar()
	})
}

func newConfig(env, service string) zap.Config {
	cfg := zap.NewDevelopmentConfig()
	if env == "production" {
		cfg = zap.NewProductionConfig()
	}
	if service == "" {
		service = DefaultService
	}
	cfg.InitialFields = map[string]interface{}{"service": service}
	return cfg
}

// Get returns the global sugared logger, initializing a development logger
// on first use.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development", DefaultService)
	}
	return sugar
}

// Named returns a child logger tagged with the given component name.
func Named(component string) *zap.SugaredLogger {
	return Get().Named(component)
}

// Sync flushes any buffered log entries. Call this before application exit.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
