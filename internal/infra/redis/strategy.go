// Package redis provides a Redis-backed storage strategy. The key TTL is the
// session scope: cached quiz data expires with the session instead of
// persisting indefinitely.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Strategy implements storage.Strategy on a Redis client. Every write
// refreshes the session TTL.
type Strategy struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStrategy(client *redis.Client, ttl time.Duration) *Strategy {
	return &Strategy{client: client, ttl: ttl}
}

func (s *Strategy) Get(ctx context.Context, key string) ([]byte, error) {
	payload, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *Strategy) Set(ctx context.Context, key string, payload []byte) error {
	return s.client.Set(ctx, key, payload, s.ttl).Err()
}

func (s *Strategy) Remove(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
