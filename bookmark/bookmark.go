// Package bookmark persists user-curated id sets: profiles to track and
// questions to star.
package bookmark

import (
	"context"

	"github.com/matchboard/matchboard/store"
)

// Storage keys. Each set owns one record in the bookmarks bucket.
const (
	userBookmarksKey = "bookmark_user_ids"
	questionStarsKey = "bookmark_question_ids"
)

// Set is an ordered, duplicate-free id set persisted as a flat list,
// most recently added first.
type Set[T comparable] struct {
	store store.Store
	key   string
}

// NewUserBookmarks returns the set of bookmarked profile ids.
func NewUserBookmarks(st store.Store) *Set[string] {
	return &Set[string]{store: st, key: userBookmarksKey}
}

// NewQuestionStars returns the set of starred question ids.
func NewQuestionStars(st store.Store) *Set[int64] {
	return &Set[int64]{store: st, key: questionStarsKey}
}

// Add prepends id to the set. Adding an id that is already present is a
// no-op.
func (s *Set[T]) Add(ctx context.Context, id T) error {
	ids, err := s.All(ctx)
	if err != nil {
		return err
	}
	for _, existing := range ids {
		if existing == id {
			return nil
		}
	}
	return s.store.Put(ctx, store.BucketBookmarks, s.key, append([]T{id}, ids...))
}

// Remove deletes id from the set. Removing an absent id is a no-op.
func (s *Set[T]) Remove(ctx context.Context, id T) error {
	ids, err := s.All(ctx)
	if err != nil {
		return err
	}
	kept := make([]T, 0, len(ids))
	for _, existing := range ids {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	return s.store.Put(ctx, store.BucketBookmarks, s.key, kept)
}

// All returns the set in most-recent-first order.
func (s *Set[T]) All(ctx context.Context) ([]T, error) {
	var ids []T
	ok, err := s.store.Get(ctx, store.BucketBookmarks, s.key, &ids)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []T{}, nil
	}
	return ids, nil
}
