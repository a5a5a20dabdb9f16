package store

import (
	"context"
	"encoding/json"
	"sync"
)

func init() {
	Register("memory", Factory(func(string) (Store, error) {
		return NewMemoryStore(), nil
	}))
}

// MemoryStore is an in-process Store. It does not survive restarts; it
// exists as a test double and for throwaway runs.
type MemoryStore struct {
	mu      sync.RWMutex
	buckets map[string]map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{buckets: make(map[string]map[string][]byte)}
}

func (s *MemoryStore) Put(_ context.Context, bucket, id string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return &StorageError{Op: "put", Bucket: bucket, ID: id, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.buckets[bucket]
	if !ok {
		b = make(map[string][]byte)
		s.buckets[bucket] = b
	}
	b[id] = raw
	return nil
}

func (s *MemoryStore) Get(_ context.Context, bucket, id string, dest any) (bool, error) {
	s.mu.RLock()
	raw, ok := s.buckets[bucket][id]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, &StorageError{Op: "get", Bucket: bucket, ID: id, Err: err}
	}
	return true, nil
}

func (s *MemoryStore) Delete(_ context.Context, bucket, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buckets[bucket], id)
	return nil
}
