package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rewear-marketplace-api/internal/api"
	"github.com/rewear-marketplace-api/internal/config"
	"github.com/rewear-marketplace-api/internal/database"
	"github.com/rewear-marketplace-api/internal/service"
	"github.com/rewear-marketplace-api/internal/storage"
	"github.com/rewear-marketplace-api/pkg/logger"
	"github.com/rs/zerolog"
)

func main() {
	// Initialize logger
	log := logger.New()
	log.Info().Msg("Starting ReWear marketplace API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize the backing store
	store, cleanup, err := newStore(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize backing store")
	}
	defer cleanup()

	// Initialize and hydrate the stores
	services, err := service.NewServices(context.Background(), store, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hydrate stores")
	}

	// Initialize router
	router := api.NewRouter(services, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}

// newStore builds the configured backing store. The returned cleanup
// closes any held resources.
func newStore(cfg *config.Config, log zerolog.Logger) (storage.Store, func(), error) {
	noop := func() {}

	switch cfg.Storage.Backend {
	case config.BackendMemory:
		log.Info().Msg("Using in-memory backing store")
		return storage.NewMemoryStore(), noop, nil

	case config.BackendFile:
		log.Info().Str("dir", cfg.Storage.DataDir).Msg("Using file backing store")
		store, err := storage.NewFileStore(cfg.Storage.DataDir)
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil

	case config.BackendPostgres:
		db, err := database.New(&cfg.Database, log)
		if err != nil {
			return nil, noop, err
		}

		migrationsPath := os.Getenv("MIGRATIONS_PATH")
		if migrationsPath == "" {
			migrationsPath = "./migrations"
		}
		if err := db.RunMigrations(migrationsPath); err != nil {
			db.Close()
			return nil, noop, err
		}

		log.Info().Msg("Using postgres backing store")
		return storage.NewPostgresStore(db), func() { db.Close() }, nil
	}

	// Unreachable: config.Validate rejects unknown backends
	return storage.NewMemoryStore(), noop, nil
}
