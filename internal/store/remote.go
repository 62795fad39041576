// Package store implements the two persistence backends and the resolver
// that arbitrates between them: a remote Postgres store tried first on every
// call, and a locally persisted bbolt cache used when the remote is
// unavailable.
package store

import "context"

// Backend identifies which backend served an operation. It is returned
// alongside data so callers can surface degraded mode explicitly instead of
// polling hidden state.
type Backend string

const (
	BackendRemote Backend = "remote"
	BackendLocal  Backend = "local"
)

// Remote is the boundary contract with the remote store. Implementations
// return apperrors.ErrNotFound for absent records and wrap
// apperrors.ErrCollectionMissing when the backing table does not exist;
// anything else is treated as a transport failure by the resolver.
type Remote[T any] interface {
	FetchAll(ctx context.Context) ([]T, error)
	FetchBySlug(ctx context.Context, slug string) (*T, error)
	Insert(ctx context.Context, record *T) error
	Update(ctx context.Context, record *T) error
	Delete(ctx context.Context, id string) error
}
