package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists sessions in Redis so they survive process restarts.
// Key format: session:<token>, value is the JSON-encoded claim map, expiry
// is delegated to the Redis TTL.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a RedisStore wrapping the given Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Load(ctx context.Context, token string) (map[string]string, bool, error) {
	raw, err := s.client.Get(ctx, s.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("session load: %w", err)
	}

	var values map[string]string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, false, fmt.Errorf("session decode: %w", err)
	}
	return values, true, nil
}

func (s *RedisStore) Save(ctx context.Context, token string, values map[string]string, ttl time.Duration) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	if err := s.client.Set(ctx, s.key(token), raw, ttl).Err(); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

func (s *RedisStore) key(token string) string {
	return "session:" + token
}
