// Package repository enforces the identity, slug, and timestamp invariants
// shared by every collection. One generic implementation is instantiated per
// entity type; persistence goes through the dual-backend resolver.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/content-manager/internal/apperrors"
	"github.com/jonesrussell/content-manager/internal/logger"
	"github.com/jonesrussell/content-manager/internal/models"
	"github.com/jonesrussell/content-manager/internal/slug"
	"github.com/jonesrussell/content-manager/internal/store"
)

// Repository is the CRUD surface for one collection.
type Repository[T any, PT models.RecordOf[T]] struct {
	resolver *store.Resolver[T, PT]
	desc     *models.Descriptor[T]
	logger   logger.Logger
}

// New builds a repository over a resolver and its collection descriptor.
func New[T any, PT models.RecordOf[T]](
	resolver *store.Resolver[T, PT],
	desc *models.Descriptor[T],
	log logger.Logger,
) *Repository[T, PT] {
	return &Repository[T, PT]{
		resolver: resolver,
		desc:     desc,
		logger:   log.With(logger.String("collection", desc.Collection)),
	}
}

// Descriptor returns the collection descriptor, used by listing surfaces to
// build queries.
func (r *Repository[T, PT]) Descriptor() *models.Descriptor[T] {
	return r.desc
}

// Create assigns a fresh id, derives the slug when the collection is
// slug-bearing, stamps both timestamps, and persists via the active backend.
// Business-field validation is the caller's responsibility.
func (r *Repository[T, PT]) Create(ctx context.Context, record *T) (store.Backend, error) {
	meta := PT(record).RecordMeta()
	meta.ID = uuid.New().String()
	if r.desc.HasSlug {
		meta.Slug = slug.Derive(meta.Title)
	}
	now := time.Now().UTC()
	meta.CreatedAt = now
	meta.UpdatedAt = now

	backend, err := r.resolver.Insert(ctx, record)
	if err != nil {
		return backend, err
	}

	r.logger.Info("Record created",
		logger.String("id", meta.ID),
		logger.String("slug", meta.Slug),
		logger.String("backend", string(backend)),
	)
	return backend, nil
}

// Update fetches the record, applies mutate to a copy, and persists it. A
// mutation error aborts the update with the stored record untouched. The id
// and created_at of the stored record always win over anything the mutation
// wrote; the slug is re-derived only when the title changed; and updated_at
// is refreshed unconditionally, so an empty mutation still bumps it.
// Concurrent updates are last-write-wins.
func (r *Repository[T, PT]) Update(ctx context.Context, id string, mutate func(*T) error) (*T, store.Backend, error) {
	records, _, err := r.resolver.FetchAll(ctx)
	if err != nil {
		return nil, store.BackendLocal, err
	}

	index := -1
	for i := range records {
		if PT(&records[i]).RecordMeta().ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, store.BackendRemote, fmt.Errorf("%s id %q: %w", r.desc.Collection, id, apperrors.ErrNotFound)
	}

	updated := records[index]
	prior := *PT(&updated).RecordMeta()

	if mutate != nil {
		if mutateErr := mutate(&updated); mutateErr != nil {
			return nil, store.BackendRemote, mutateErr
		}
	}

	meta := PT(&updated).RecordMeta()
	meta.ID = prior.ID
	meta.CreatedAt = prior.CreatedAt
	if r.desc.HasSlug {
		if meta.Title != prior.Title {
			meta.Slug = slug.Derive(meta.Title)
		} else {
			meta.Slug = prior.Slug
		}
	}
	meta.UpdatedAt = time.Now().UTC()

	backend, err := r.resolver.Update(ctx, &updated)
	if err != nil {
		return nil, backend, err
	}

	r.logger.Info("Record updated",
		logger.String("id", meta.ID),
		logger.String("backend", string(backend)),
	)
	return &updated, backend, nil
}

// Delete removes the record. Deleting an absent id is a no-op, not an
// error; the repository absorbs the store's not-found.
func (r *Repository[T, PT]) Delete(ctx context.Context, id string) (store.Backend, error) {
	backend, err := r.resolver.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			r.logger.Debug("Delete of absent id ignored", logger.String("id", id))
			return backend, nil
		}
		return backend, err
	}

	r.logger.Info("Record deleted",
		logger.String("id", id),
		logger.String("backend", string(backend)),
	)
	return backend, nil
}

// GetBySlug returns the first record in collection order with the slug.
func (r *Repository[T, PT]) GetBySlug(ctx context.Context, s string) (*T, store.Backend, error) {
	return r.resolver.FetchBySlug(ctx, s)
}

// GetAll returns the collection in backend-defined order.
func (r *Repository[T, PT]) GetAll(ctx context.Context) ([]T, store.Backend, error) {
	return r.resolver.FetchAll(ctx)
}
