package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

func init() {
	Register("redis", Factory(func(dsn string) (Store, error) {
		opts, err := redis.ParseURL(dsn)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(redis.NewClient(opts), ""), nil
	}))
}

// RedisStore implements Store on Redis for deployments where the dashboard
// runs as a shared service rather than on a single desktop.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "matchboard:"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(bucket, id string) string {
	return s.prefix + bucket + ":" + id
}

func (s *RedisStore) Put(ctx context.Context, bucket, id string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return &StorageError{Op: "put", Bucket: bucket, ID: id, Err: err}
	}
	if err := s.client.Set(ctx, s.key(bucket, id), raw, 0).Err(); err != nil {
		return &StorageError{Op: "put", Bucket: bucket, ID: id, Err: err}
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, bucket, id string, dest any) (bool, error) {
	raw, err := s.client.Get(ctx, s.key(bucket, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, &StorageError{Op: "get", Bucket: bucket, ID: id, Err: err}
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, &StorageError{Op: "get", Bucket: bucket, ID: id, Err: err}
	}
	return true, nil
}

func (s *RedisStore) Delete(ctx context.Context, bucket, id string) error {
	if err := s.client.Del(ctx, s.key(bucket, id)).Err(); err != nil {
		return &StorageError{Op: "delete", Bucket: bucket, ID: id, Err: err}
	}
	return nil
}
