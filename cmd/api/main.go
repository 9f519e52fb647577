package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/Kola-Kola/personal-finance/internal/config"
	"github.com/Kola-Kola/personal-finance/internal/database"
	"github.com/Kola-Kola/personal-finance/internal/events"
	"github.com/Kola-Kola/personal-finance/internal/live"
	"github.com/Kola-Kola/personal-finance/internal/logger"
	"github.com/Kola-Kola/personal-finance/internal/routes"
	"github.com/Kola-Kola/personal-finance/internal/services"
	"github.com/Kola-Kola/personal-finance/internal/store"
	"github.com/Kola-Kola/personal-finance/internal/validator"
)

// @title           Personal Finance API
// @version         1.0
// @description     Single-owner income and expense tracker with recurring amounts that change over time.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description Shared key for bulk import.

const shutdownTimeout = 15 * time.Second

func main() {
	logger.Init(os.Getenv("ENV"), "api")
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	validator.Register()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, db, closeStore, err := openStore(appConfig)
	if err != nil {
		return err
	}
	defer closeStore()

	view, stopView, err := startView(s)
	if err != nil {
		return err
	}
	defer stopView()

	router := routes.Register(routes.Deps{
		Config:       appConfig,
		Auth:         services.NewAuthService(appConfig.AuthPasswordHash),
		Categories:   services.NewCategoryService(),
		Transactions: services.NewTransactionService(s, view),
		Reports:      services.NewReportService(view),
		Imports:      services.NewImportService(s, view),
		Audit:        services.NewAuditService(db),
		State:        view,
	})

	server := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	if appConfig.EventsEnabled() {
		publisher, err := events.Dial(appConfig.AMQPURL, appConfig.AMQPExchange)
		if err != nil {
			return fmt.Errorf("failed to connect to AMQP: %w", err)
		}
		defer publisher.Close()

		unsubscribe := s.Subscribe(publisher.Enqueue)
		defer unsubscribe()

		g.Go(func() error { return publisher.Run(gctx) })
		log.Infow("Publishing change events", "exchange", appConfig.AMQPExchange)
	}

	g.Go(func() error {
		log.Infow("Starting server", "port", appConfig.Port, "store", appConfig.StoreDriver, "auth", appConfig.AuthEnabled())
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// startView loads the live view on a context of its own, so refreshes
// triggered by requests drained during shutdown still succeed. stop must run
// after the server has shut down.
func startView(s store.Store) (*live.View, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	view := live.NewView(s)
	if err := view.Start(ctx); err != nil {
		cancel()
		return nil, nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	stop := func() {
		view.Close()
		cancel()
	}
	return view, stop, nil
}

// openStore builds the record store for the configured driver. The returned
// *gorm.DB is nil for the memory store.
func openStore(cfg *config.Config) (store.Store, *gorm.DB, func(), error) {
	if cfg.StoreDriver == config.DriverMemory {
		logger.Get().Warn("Using the in-memory store; data is lost on restart")
		return store.NewMemoryStore(), nil, func() {}, nil
	}

	dbManager, err := database.NewManager(database.NewConfig(cfg))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := dbManager.RunMigrations(); err != nil {
		_ = dbManager.Close()
		return nil, nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	closeDB := func() {
		if err := dbManager.Close(); err != nil {
			logger.Get().Warnf("database close error: %v", err)
		}
	}
	return store.NewGormStore(dbManager.DB()), dbManager.DB(), closeDB, nil
}
