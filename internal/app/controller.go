package app

import (
	"context"
	"log"
	"sync"
	"sync/atomic"

	"quizzical-service/internal/domain"
	"quizzical-service/internal/storage"
)

// QuizService loads and transforms a question batch.
type QuizService interface {
	GetQuiz(ctx context.Context, cfg domain.QuizConfig) ([]domain.Question, error)
}

// DefaultConfig is used when a load request carries no config of its own.
var DefaultConfig = domain.QuizConfig{Amount: 10, Category: 11}

// Controller owns the quiz state machine. It decides cache-hit versus
// network fetch, guards against duplicate in-flight loads, and translates
// every failure into a user-facing error state. All reads go through
// Snapshot or a subscription; all writes go through the six actions.
type Controller struct {
	service   QuizService
	questions *storage.Store[[]domain.Question]
	configs   *storage.Store[domain.QuizConfig]

	// loading is the in-flight guard. Only the network branch of LoadQuiz
	// sets it; a cache hit never does.
	loading atomic.Bool

	mu          sync.RWMutex
	state       State
	subscribers map[chan State]struct{}
}

// NewController seeds state from whatever the cache holds: a present quiz
// populates questions and hasCachedQuiz, a stored config becomes lastConfig.
// Status stays idle until a load is dispatched.
func NewController(service QuizService, questions *storage.Store[[]domain.Question], configs *storage.Store[domain.QuizConfig]) *Controller {
	state := State{
		Status:        StatusIdle,
		Questions:     []domain.Question{},
		UserAnswers:   map[string]string{},
		LastConfig:    DefaultConfig,
		CurrentScreen: ScreenHome,
	}

	ctx := context.Background()
	if cached, ok := questions.Get(ctx); ok {
		state.Questions = cached
		state.HasCachedQuiz = true
	}
	if cfg, ok := configs.Get(ctx); ok {
		state.LastConfig = cfg
	}

	return &Controller{
		service:     service,
		questions:   questions,
		configs:     configs,
		state:       state,
		subscribers: make(map[chan State]struct{}),
	}
}

// LoadQuiz loads a quiz for cfg. Served from cache without a network call
// when both slots are present and the stored config matches; otherwise it
// fetches, persists, and transitions to success or error. A call observed
// while another load's network branch is in flight is a no-op.
func (c *Controller) LoadQuiz(ctx context.Context, cfg domain.QuizConfig) {
	if c.loading.Load() {
		return
	}

	if cached, ok := c.questions.Get(ctx); ok {
		if storedCfg, cfgOK := c.configs.Get(ctx); cfgOK && storedCfg.Equal(cfg) {
			c.dispatch(action{kind: actionLoadSuccess, questions: cached})
			return
		}
	}

	if !c.loading.CompareAndSwap(false, true) {
		return
	}
	defer c.loading.Store(false)

	c.dispatch(action{kind: actionLoadStart, config: cfg})
	c.configs.Save(ctx, cfg)

	data, err := c.service.GetQuiz(ctx, cfg)
	if err != nil {
		log.Printf("quiz loading failed: %v", err)
		c.dispatch(action{kind: actionLoadError, message: FriendlyMessage(err)})
		return
	}

	c.questions.Save(ctx, data)
	c.dispatch(action{kind: actionLoadSuccess, questions: data})
}

// Refetch clears the cache and reloads the last config. The cleared cache
// guarantees the network branch runs even when the old data matched.
func (c *Controller) Refetch(ctx context.Context) {
	c.mu.RLock()
	last := c.state.LastConfig
	c.mu.RUnlock()

	c.questions.Remove(ctx)
	c.configs.Remove(ctx)
	c.dispatch(action{kind: actionClearCache})
	c.LoadQuiz(ctx, last)
}

// ClearError drops the error; status falls back to success when questions
// remain, idle otherwise.
func (c *Controller) ClearError() {
	c.dispatch(action{kind: actionClearError})
}

// ClearCache empties both cache slots and resets quiz progress.
func (c *Controller) ClearCache(ctx context.Context) {
	c.questions.Remove(ctx)
	c.configs.Remove(ctx)
	c.dispatch(action{kind: actionClearCache})
}

// ChangeScreen navigates; nothing else changes.
func (c *Controller) ChangeScreen(screen Screen) {
	c.dispatch(action{kind: actionChangeScreen, screen: screen})
}

// SelectAnswer upserts the user's choice for a question; last write wins.
// The answer is not validated against the question's option set.
func (c *Controller) SelectAnswer(questionID, answerID string) {
	c.dispatch(action{kind: actionSelectAnswer, questionID: questionID, answerID: answerID})
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.clone()
}

// Subscribe returns a channel receiving state snapshots, starting with the
// current one. The caller must invoke the cancel function to avoid leaks.
func (c *Controller) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 8)

	c.mu.Lock()
	c.subscribers[ch] = struct{}{}
	initial := c.state.clone()
	c.mu.Unlock()

	ch <- initial

	cancel := func() {
		c.mu.Lock()
		if _, ok := c.subscribers[ch]; ok {
			delete(c.subscribers, ch)
			close(ch)
		}
		c.mu.Unlock()
	}
	return ch, cancel
}

// dispatch runs the reducer under the lock and broadcasts the new state.
// Slow subscribers lose stale snapshots rather than blocking the dispatch.
func (c *Controller) dispatch(a action) {
	c.mu.Lock()
	c.state = reduce(c.state, a)
	next := c.state.clone()
	for ch := range c.subscribers {
		select {
		case ch <- next:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- next
		}
	}
	c.mu.Unlock()
}
