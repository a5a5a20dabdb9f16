// Package store provides the durable key-value store that backs response
// caching, TTL state, and bookmark sets. Records live in named buckets and
// are keyed by a single id; values are stored as JSON.
package store

import (
	"context"
	"errors"
	"fmt"
)

// Bucket names. Every caller-owned namespace is listed here so key
// collisions between subsystems cannot happen.
const (
	BucketProfiles          = "profiles"
	BucketAnswers           = "answers"
	BucketAnsweredQuestions = "answered_questions"
	BucketQuestions         = "questions"
	BucketTTLItems          = "ttl_items"
	BucketBookmarks         = "bookmarks"
)

// Store is a durable key-value store with independent buckets.
// Implementations must survive process restarts (the memory backend is the
// deliberate exception, used for tests).
type Store interface {
	// Put serializes value as JSON and writes it under (bucket, id),
	// replacing any previous record. Last write wins.
	Put(ctx context.Context, bucket, id string, value any) error

	// Get looks up (bucket, id) and unmarshals the stored value into dest.
	// The boolean reports whether a record was found.
	Get(ctx context.Context, bucket, id string, dest any) (bool, error)

	// Delete removes (bucket, id). Deleting an absent record is a no-op.
	Delete(ctx context.Context, bucket, id string) error
}

// StorageError reports that the backing store is unavailable or rejected an
// operation. Readers treat it as a cache miss; writers log it and keep the
// in-flight request alive.
type StorageError struct {
	Op     string
	Bucket string
	ID     string
	Err    error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("store: %s %s/%s: %v", e.Op, e.Bucket, e.ID, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsStorageError checks if an error originated in the store layer.
func IsStorageError(err error) bool {
	_, ok := AsStorageError(err)
	return ok
}

// AsStorageError extracts a StorageError from err if possible.
func AsStorageError(err error) (*StorageError, bool) {
	var se *StorageError
	ok := errors.As(err, &se)
	return se, ok
}
