package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jonesrussell/content-manager/internal/apperrors"
	"github.com/jonesrussell/content-manager/internal/logger"
	"github.com/jonesrussell/content-manager/internal/models"
	"github.com/jonesrussell/content-manager/internal/store"
)

// ProfileRepository manages the singleton profile record: fixed id, no
// collection semantics, Get and Update only.
type ProfileRepository struct {
	resolver *store.Resolver[models.Profile, *models.Profile]
	logger   logger.Logger
}

// NewProfile builds the singleton profile repository.
func NewProfile(resolver *store.Resolver[models.Profile, *models.Profile], log logger.Logger) *ProfileRepository {
	return &ProfileRepository{
		resolver: resolver,
		logger:   log.With(logger.String("collection", models.ProfileDescriptor.Collection)),
	}
}

// Get returns the singleton profile. The fallback seed guarantees a record
// exists locally; an empty remote collection surfaces as not found.
func (r *ProfileRepository) Get(ctx context.Context) (*models.Profile, store.Backend, error) {
	records, backend, err := r.resolver.FetchAll(ctx)
	if err != nil {
		return nil, backend, err
	}
	for i := range records {
		if records[i].ID == models.ProfileID {
			return &records[i], backend, nil
		}
	}
	return nil, backend, fmt.Errorf("profile: %w", apperrors.ErrNotFound)
}

// Update applies mutate to the profile and persists it. The fixed id and
// created_at are preserved; updated_at is refreshed.
func (r *ProfileRepository) Update(ctx context.Context, mutate func(*models.Profile) error) (*models.Profile, store.Backend, error) {
	profile, _, err := r.Get(ctx)
	if err != nil {
		return nil, store.BackendLocal, err
	}

	updated := *profile
	if mutate != nil {
		if mutateErr := mutate(&updated); mutateErr != nil {
			return nil, store.BackendLocal, mutateErr
		}
	}
	updated.ID = models.ProfileID
	updated.Slug = ""
	updated.CreatedAt = profile.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	backend, err := r.resolver.Update(ctx, &updated)
	if err != nil {
		return nil, backend, err
	}

	r.logger.Info("Profile updated", logger.String("backend", string(backend)))
	return &updated, backend, nil
}
