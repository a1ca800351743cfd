package storage

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"quizzical-service/internal/domain"
	"quizzical-service/internal/infra/memory"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := New[domain.QuizConfig](KeyQuizConfig, memory.NewStrategy())

	if store.HasData(ctx) {
		t.Fatalf("fresh store must be empty")
	}

	cfg := domain.QuizConfig{Amount: 10, Category: 11, Difficulty: domain.DifficultyEasy}
	store.Save(ctx, cfg)

	got, ok := store.Get(ctx)
	if !ok {
		t.Fatalf("expected saved value")
	}
	if !got.Equal(cfg) {
		t.Fatalf("got %+v, want %+v", got, cfg)
	}

	store.Remove(ctx)
	if store.HasData(ctx) {
		t.Fatalf("expected slot removed")
	}
}

func TestStoreWrapsValueInEnvelope(t *testing.T) {
	ctx := context.Background()
	strategy := memory.NewStrategy()
	store := New[[]string](KeyQuizQuestions, strategy)
	store.now = func() time.Time { return time.UnixMilli(1700000000000) }

	store.Save(ctx, []string{"a", "b"})

	payload, err := strategy.Get(ctx, KeyQuizQuestions)
	if err != nil || payload == nil {
		t.Fatalf("expected raw payload, err=%v", err)
	}
	var entry Entry[[]string]
	if err := json.Unmarshal(payload, &entry); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if entry.SavedAt != 1700000000000 {
		t.Errorf("SavedAt = %d", entry.SavedAt)
	}
	if entry.Version != Version {
		t.Errorf("Version = %d", entry.Version)
	}
	if len(entry.Data) != 2 {
		t.Errorf("Data = %v", entry.Data)
	}
}

func TestStoreMalformedPayloadReadsAsMiss(t *testing.T) {
	ctx := context.Background()
	strategy := memory.NewStrategy()
	if err := strategy.Set(ctx, KeyQuizConfig, []byte("{not json")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	store := New[domain.QuizConfig](KeyQuizConfig, strategy)
	if _, ok := store.Get(ctx); ok {
		t.Fatalf("malformed payload must read as a miss")
	}
}

type faultyStrategy struct{}

func (faultyStrategy) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("backend down")
}
func (faultyStrategy) Set(context.Context, string, []byte) error {
	return errors.New("quota exceeded")
}
func (faultyStrategy) Remove(context.Context, string) error {
	return errors.New("backend down")
}

func TestStoreSwallowsStrategyFaults(t *testing.T) {
	ctx := context.Background()
	store := New[[]string](KeyQuizQuestions, faultyStrategy{})

	// None of these may panic or surface an error.
	store.Save(ctx, []string{"a"})
	if _, ok := store.Get(ctx); ok {
		t.Fatalf("faulting backend must read as a miss")
	}
	store.Remove(ctx)
	if store.HasData(ctx) {
		t.Fatalf("faulting backend must report no data")
	}
}
