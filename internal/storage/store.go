// Package storage provides session-scoped key/value slots for the quiz cache.
// Every operation is best-effort: the store assumes an unreliable backend and
// degrades to a cache miss instead of surfacing storage faults.
package storage

import (
	"context"
	"encoding/json"
	"log"
	"time"
)

// Cache slot keys. One slot holds the question list, the other the config
// that produced it.
const (
	KeyQuizQuestions = "quizzical_question"
	KeyQuizConfig    = "quizzical_config"
)

// Version tags saved envelopes so a future schema change can invalidate them.
const Version = 1

// Strategy is the backend a Store writes through. Get returns (nil, nil) when
// the key is absent.
type Strategy interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, payload []byte) error
	Remove(ctx context.Context, key string) error
}

// Entry wraps a stored value with its save timestamp (epoch millis) and
// schema version.
type Entry[T any] struct {
	Data    T     `json:"data"`
	SavedAt int64 `json:"savedAt"`
	Version int   `json:"version"`
}

// Store binds one typed value to one key of a Strategy.
type Store[T any] struct {
	key      string
	strategy Strategy
	now      func() time.Time
}

func New[T any](key string, strategy Strategy) *Store[T] {
	return &Store[T]{key: key, strategy: strategy, now: time.Now}
}

// Get returns the stored value. A missing key, malformed payload, or
// strategy fault all read as a miss; faults are logged, never raised.
func (s *Store[T]) Get(ctx context.Context) (T, bool) {
	var zero T
	payload, err := s.strategy.Get(ctx, s.key)
	if err != nil {
		log.Printf("storage: failed to get %s: %v", s.key, err)
		return zero, false
	}
	if payload == nil {
		return zero, false
	}

	var entry Entry[T]
	if err := json.Unmarshal(payload, &entry); err != nil {
		log.Printf("storage: malformed payload at %s: %v", s.key, err)
		return zero, false
	}
	return entry.Data, true
}

// Save wraps value in an envelope and writes it. Faults are swallowed.
func (s *Store[T]) Save(ctx context.Context, value T) {
	entry := Entry[T]{
		Data:    value,
		SavedAt: s.now().UnixMilli(),
		Version: Version,
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		log.Printf("storage: failed to encode %s: %v", s.key, err)
		return
	}
	if err := s.strategy.Set(ctx, s.key, payload); err != nil {
		log.Printf("storage: failed to set %s: %v", s.key, err)
	}
}

// Remove deletes the slot. Faults are swallowed.
func (s *Store[T]) Remove(ctx context.Context) {
	if err := s.strategy.Remove(ctx, s.key); err != nil {
		log.Printf("storage: failed to remove %s: %v", s.key, err)
	}
}

// HasData reports whether the slot currently holds a readable value.
func (s *Store[T]) HasData(ctx context.Context) bool {
	_, ok := s.Get(ctx)
	return ok
}
