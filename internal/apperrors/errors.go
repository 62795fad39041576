// Package apperrors defines the error taxonomy shared by the storage,
// repository, and HTTP layers.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an entity cannot be located by id or slug.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized is returned when an administrative operation is
	// attempted without a valid credential.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrCollectionMissing is returned by the remote store when the backing
	// table for a collection does not exist. It is kept distinct from
	// transport failures because it is the signal that the database needs
	// one-time initialization (cmd/seed), not that the network is down.
	ErrCollectionMissing = errors.New("collection missing")
)

// ValidationError reports a malformed payload, such as a content block with
// fields that do not belong to its type. It is always raised locally and
// never crosses the storage boundary.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Validation builds a ValidationError for a field.
func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StorageError is a terminal storage failure: the remote store failed and the
// local fallback could not serve the operation either.
type StorageError struct {
	Op         string
	Collection string
	Err        error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s on %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Storage wraps err as a terminal StorageError.
func Storage(op, collection string, err error) error {
	return &StorageError{Op: op, Collection: collection, Err: err}
}

// IsStorage reports whether err is a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
