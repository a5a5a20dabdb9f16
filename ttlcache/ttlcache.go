// Package ttlcache is an expiry-aware key-value layer over the persistent
// store, used for short-lived state such as the platform session and cached
// question-filter statistics.
package ttlcache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matchboard/matchboard/store"
)

type item struct {
	Value     json.RawMessage `json:"value"`
	ExpiresAt int64           `json:"expires_at"` // epoch millis
}

// Cache stores values with an absolute expiry instant. Expired entries are
// invisible to readers and deleted lazily on the access that finds them
// expired; there is no background sweep.
type Cache struct {
	store store.Store

	// Now is the clock used for expiry checks. Overridable in tests.
	Now func() time.Time
}

func New(st store.Store) *Cache {
	return &Cache{store: st, Now: time.Now}
}

// Set stores value under key with expiry = now + ttl.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	it := item{
		Value:     raw,
		ExpiresAt: c.Now().Add(ttl).UnixMilli(),
	}
	return c.store.Put(ctx, store.BucketTTLItems, key, it)
}

// Get unmarshals the live value under key into dest. It reports false when
// the key is absent or expired; an expired entry is deleted as a side
// effect, so a repeat call behaves identically.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	it, ok, err := c.lookup(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(it.Value, dest); err != nil {
		return false, err
	}
	return true, nil
}

// IsValid reports freshness without deserializing the value.
func (c *Cache) IsValid(ctx context.Context, key string) bool {
	_, ok, _ := c.lookup(ctx, key)
	return ok
}

func (c *Cache) lookup(ctx context.Context, key string) (item, bool, error) {
	var it item
	found, err := c.store.Get(ctx, store.BucketTTLItems, key, &it)
	if err != nil || !found {
		return item{}, false, err
	}
	if c.Now().UnixMilli() >= it.ExpiresAt {
		// Lazy eviction. Failure to delete is harmless; the entry stays
		// invisible either way.
		_ = c.store.Delete(ctx, store.BucketTTLItems, key)
		return item{}, false, nil
	}
	return it, true, nil
}
