// Package bootstrap handles application initialization and lifecycle
// management for the content-manager service.
package bootstrap

import (
	"fmt"

	"github.com/jonesrussell/content-manager/internal/logger"
	"github.com/jonesrussell/content-manager/internal/store"
)

const version = "dev"

// Start initializes and starts the content-manager application.
func Start() error {
	// Phase 1: Load config and create logger
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := CreateLogger(cfg, version)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Phase 2: Open the local cache; without it fallback has nowhere to go
	cache, err := store.OpenCache(cfg.Cache.Path)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer func() {
		if closeErr := cache.Close(); closeErr != nil {
			log.Error("Failed to close cache", logger.Error(closeErr))
		}
	}()

	// Phase 3: Connect to the database; an unreachable database is not fatal
	db, err := SetupDatabase(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}
	if db != nil {
		defer func() {
			if closeErr := db.Close(); closeErr != nil {
				log.Error("Failed to close database", logger.Error(closeErr))
			}
		}()
	}

	// Phase 4: Setup event publisher (optional)
	publisher := SetupEventPublisher(cfg, log)

	// Phase 5: Setup and run HTTP server
	server := SetupHTTPServer(cfg, db, cache, publisher, log)

	log.Info("Starting HTTP server",
		logger.String("host", cfg.Server.Host),
		logger.Int("port", cfg.Server.Port),
	)

	if runErr := RunServer(server, log); runErr != nil {
		log.Error("Server error", logger.Error(runErr))
		return fmt.Errorf("server error: %w", runErr)
	}

	log.Info("Server exited")
	return nil
}
