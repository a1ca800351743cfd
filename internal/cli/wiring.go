package cli

import (
	"time"

	goredis "github.com/redis/go-redis/v9"

	"quizzical-service/internal/api"
	"quizzical-service/internal/app"
	"quizzical-service/internal/config"
	"quizzical-service/internal/domain"
	"quizzical-service/internal/infra/memory"
	redisinfra "quizzical-service/internal/infra/redis"
	"quizzical-service/internal/quiz"
	"quizzical-service/internal/storage"
)

// components is everything a command needs after wiring.
type components struct {
	controller *app.Controller
	service    *quiz.Service
	defaults   domain.QuizConfig
	cleanup    func()
}

// buildComponents wires the full pipeline from config: HTTP client →
// transformation service → cache stores (redis when configured, in-memory
// otherwise) → controller.
func buildComponents(cfg config.Config) components {
	timeout := config.TTLDuration(cfg.API.Timeout, api.DefaultTimeout)
	client := api.NewClient(nil, timeout, cfg.API.MaxRetries)
	service := quiz.NewService(client, cfg.API.BaseURL)

	var strategy storage.Strategy = memory.NewStrategy()
	cleanup := func() {}
	if cfg.Redis.Addr != "" {
		redisClient := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		sessionTTL := config.TTLDuration(cfg.Redis.TTL, 30*time.Minute)
		strategy = redisinfra.NewStrategy(redisClient, sessionTTL)
		cleanup = func() { _ = redisClient.Close() }
	}

	questions := storage.New[[]domain.Question](storage.KeyQuizQuestions, strategy)
	configs := storage.New[domain.QuizConfig](storage.KeyQuizConfig, strategy)
	controller := app.NewController(service, questions, configs)

	return components{
		controller: controller,
		service:    service,
		defaults:   defaultQuizConfig(cfg),
		cleanup:    cleanup,
	}
}

func defaultQuizConfig(cfg config.Config) domain.QuizConfig {
	out := app.DefaultConfig
	if cfg.Quiz.Amount > 0 {
		out.Amount = cfg.Quiz.Amount
	}
	if cfg.Quiz.Category > 0 {
		out.Category = cfg.Quiz.Category
	}
	out.Difficulty = domain.Difficulty(cfg.Quiz.Difficulty)
	out.Type = domain.QuestionType(cfg.Quiz.Type)
	return out
}
