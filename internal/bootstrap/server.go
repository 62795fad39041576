package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonesrussell/content-manager/internal/api"
	"github.com/jonesrussell/content-manager/internal/config"
	"github.com/jonesrussell/content-manager/internal/events"
	"github.com/jonesrussell/content-manager/internal/handlers"
	"github.com/jonesrussell/content-manager/internal/logger"
	"github.com/jonesrussell/content-manager/internal/metadata"
	"github.com/jonesrussell/content-manager/internal/models"
	"github.com/jonesrussell/content-manager/internal/repository"
	"github.com/jonesrussell/content-manager/internal/store"
	"github.com/jonesrussell/content-manager/internal/store/seed"
)

const shutdownTimeout = 10 * time.Second

// newRepository wires one collection end to end: remote store when the
// database is up, local cache fallback, seed data, repository invariants.
func newRepository[T any, PT models.RecordOf[T]](
	db *sql.DB,
	cache *store.Cache,
	desc *models.Descriptor[T],
	log logger.Logger,
) *repository.Repository[T, PT] {
	var remote store.Remote[T]
	if db != nil {
		remote = store.NewPostgres[T, PT](db, desc, log)
	}
	resolver := store.NewResolver[T, PT](remote, cache, desc, seed.Data(desc.Collection), log)
	return repository.New[T, PT](resolver, desc, log)
}

// SetupHTTPServer wires repositories and handlers into the router and wraps
// it in an http.Server with the configured timeouts.
func SetupHTTPServer(
	cfg *config.Config,
	db *sql.DB,
	cache *store.Cache,
	publisher *events.Publisher,
	log logger.Logger,
) *http.Server {
	articles := newRepository[models.Article, *models.Article](db, cache, models.ArticleDescriptor, log)
	portfolio := newRepository[models.PortfolioEntry, *models.PortfolioEntry](db, cache, models.PortfolioDescriptor, log)
	credentials := newRepository[models.Credential, *models.Credential](db, cache, models.CredentialDescriptor, log)
	services := newRepository[models.ServiceListing, *models.ServiceListing](db, cache, models.ServiceDescriptor, log)

	var profileRemote store.Remote[models.Profile]
	if db != nil {
		profileRemote = store.NewPostgres[models.Profile, *models.Profile](db, models.ProfileDescriptor, log)
	}
	profileResolver := store.NewResolver[models.Profile, *models.Profile](
		profileRemote, cache, models.ProfileDescriptor,
		seed.Data(models.ProfileDescriptor.Collection), log,
	)
	profile := repository.NewProfile(profileResolver, log)

	router := api.NewRouter(cfg, api.Handlers{
		Articles:    handlers.NewArticleHandler(articles, publisher, log),
		Portfolio:   handlers.NewPortfolioHandler(portfolio, publisher, log),
		Credentials: handlers.NewCredentialHandler(credentials, publisher, log),
		Services:    handlers.NewServiceHandler(services, publisher, log),
		Profile:     handlers.NewProfileHandler(profile, publisher, log),
		Metadata:    handlers.NewMetadataHandler(metadata.NewExtractor(log), log),
	}, log)

	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}

// RunServer serves until SIGINT/SIGTERM, then drains in-flight requests.
func RunServer(server *http.Server, log logger.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		log.Info("Shutting down", logger.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
