package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jonesrussell/content-manager/internal/apperrors"
	"github.com/jonesrussell/content-manager/internal/logger"
	"github.com/jonesrussell/content-manager/internal/models"
)

// Resolver arbitrates between the remote store and the local cache for one
// collection. Every call tries the remote first; there is no stickiness, so
// a transient failure does not strand the session on the fallback. On remote
// failure the call is served from the cache, seeding it once from the
// bundled sample data if it has never been populated. Fallback writes go to
// the cache only and are never replayed toward the remote; the fallback
// exists for offline/demo continuity, not for reconciliation.
type Resolver[T any, PT models.RecordOf[T]] struct {
	remote     Remote[T]
	cache      *Cache
	collection string
	seed       []byte
	logger     logger.Logger

	// mu serializes cache read-modify-write cycles for this collection.
	mu sync.Mutex
}

// NewResolver builds the resolver for a collection. remote may be nil when
// the service starts without database connectivity; every call then goes
// straight to the cache.
func NewResolver[T any, PT models.RecordOf[T]](
	remote Remote[T],
	cache *Cache,
	desc *models.Descriptor[T],
	seed []byte,
	log logger.Logger,
) *Resolver[T, PT] {
	return &Resolver[T, PT]{
		remote:     remote,
		cache:      cache,
		collection: desc.Collection,
		seed:       seed,
		logger:     log.With(logger.String("collection", desc.Collection)),
	}
}

// Collection returns the collection key this resolver serves.
func (r *Resolver[T, PT]) Collection() string {
	return r.collection
}

func (r *Resolver[T, PT]) FetchAll(ctx context.Context) ([]T, Backend, error) {
	if r.remote != nil {
		records, err := r.remote.FetchAll(ctx)
		if err == nil {
			return records, BackendRemote, nil
		}
		r.logFallback("fetch_all", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.loadLocked()
	if err != nil {
		return nil, BackendLocal, apperrors.Storage("fetch_all", r.collection, err)
	}
	return records, BackendLocal, nil
}

func (r *Resolver[T, PT]) FetchBySlug(ctx context.Context, slug string) (*T, Backend, error) {
	if r.remote != nil {
		record, err := r.remote.FetchBySlug(ctx, slug)
		if err == nil {
			return record, BackendRemote, nil
		}
		// A remote miss is an answer, not an outage.
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, BackendRemote, err
		}
		r.logFallback("fetch_by_slug", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.loadLocked()
	if err != nil {
		return nil, BackendLocal, apperrors.Storage("fetch_by_slug", r.collection, err)
	}
	for i := range records {
		if PT(&records[i]).RecordMeta().Slug == slug {
			return &records[i], BackendLocal, nil
		}
	}
	return nil, BackendLocal, fmt.Errorf("%s slug %q: %w", r.collection, slug, apperrors.ErrNotFound)
}

func (r *Resolver[T, PT]) Insert(ctx context.Context, record *T) (Backend, error) {
	if r.remote != nil {
		err := r.remote.Insert(ctx, record)
		if err == nil {
			return BackendRemote, nil
		}
		r.logFallback("insert", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.loadLocked()
	if err != nil {
		return BackendLocal, apperrors.Storage("insert", r.collection, err)
	}
	records = append(records, *record)
	if err := r.saveLocked(records); err != nil {
		return BackendLocal, apperrors.Storage("insert", r.collection, err)
	}
	return BackendLocal, nil
}

func (r *Resolver[T, PT]) Update(ctx context.Context, record *T) (Backend, error) {
	if r.remote != nil {
		err := r.remote.Update(ctx, record)
		if err == nil {
			return BackendRemote, nil
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			return BackendRemote, err
		}
		r.logFallback("update", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.loadLocked()
	if err != nil {
		return BackendLocal, apperrors.Storage("update", r.collection, err)
	}

	id := PT(record).RecordMeta().ID
	for i := range records {
		if PT(&records[i]).RecordMeta().ID == id {
			records[i] = *record
			if err := r.saveLocked(records); err != nil {
				return BackendLocal, apperrors.Storage("update", r.collection, err)
			}
			return BackendLocal, nil
		}
	}
	return BackendLocal, fmt.Errorf("%s id %q: %w", r.collection, id, apperrors.ErrNotFound)
}

func (r *Resolver[T, PT]) Delete(ctx context.Context, id string) (Backend, error) {
	if r.remote != nil {
		err := r.remote.Delete(ctx, id)
		if err == nil {
			return BackendRemote, nil
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			return BackendRemote, err
		}
		r.logFallback("delete", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.loadLocked()
	if err != nil {
		return BackendLocal, apperrors.Storage("delete", r.collection, err)
	}

	kept := records[:0]
	found := false
	for i := range records {
		if PT(&records[i]).RecordMeta().ID == id {
			found = true
			continue
		}
		kept = append(kept, records[i])
	}
	if !found {
		return BackendLocal, fmt.Errorf("%s id %q: %w", r.collection, id, apperrors.ErrNotFound)
	}
	if err := r.saveLocked(kept); err != nil {
		return BackendLocal, apperrors.Storage("delete", r.collection, err)
	}
	return BackendLocal, nil
}

// loadLocked reads the collection from the cache, seeding it from the
// bundled sample data on first use. Callers must hold mu.
func (r *Resolver[T, PT]) loadLocked() ([]T, error) {
	data, ok, err := r.cache.Read(r.collection)
	if err != nil {
		return nil, err
	}
	if !ok {
		data = r.seed
		if data == nil {
			data = []byte("[]")
		}
		if writeErr := r.cache.Write(r.collection, data); writeErr != nil {
			return nil, writeErr
		}
		r.logger.Info("Seeded local cache from bundled sample data")
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode cached %s: %w", r.collection, err)
	}
	return records, nil
}

// saveLocked persists the collection to the cache. Callers must hold mu.
func (r *Resolver[T, PT]) saveLocked(records []T) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.collection, err)
	}
	return r.cache.Write(r.collection, data)
}

func (r *Resolver[T, PT]) logFallback(op string, err error) {
	if errors.Is(err, apperrors.ErrCollectionMissing) {
		r.logger.Warn("Remote collection missing, serving from local cache; run cmd/seed to initialize the database",
			logger.String("op", op),
			logger.Error(err),
		)
		return
	}
	r.logger.Warn("Remote store unavailable, serving from local cache",
		logger.String("op", op),
		logger.Error(err),
	)
}
