package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

// IdempotencyStore maps an Idempotency-Key to the task it created, backed by
// Redis. Key format: task:idem:<key>
type IdempotencyStore struct {
	client *redis.Client
}

// NewIdempotencyStore creates an IdempotencyStore wrapping the given client.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Lookup returns the task id previously stored under key, or an empty string
// when the key has not been seen.
func (s *IdempotencyStore) Lookup(ctx context.Context, key string) (string, error) {
	taskID, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("idempotency lookup: %w", err)
	}
	return taskID, nil
}

// Remember records that key produced taskID (expires after idempotencyTTL).
func (s *IdempotencyStore) Remember(ctx context.Context, key, taskID string) error {
	return s.client.Set(ctx, s.key(key), taskID, idempotencyTTL).Err()
}

func (s *IdempotencyStore) key(key string) string {
	return "task:idem:" + key
}
