package quiz

import (
	"context"
	"fmt"
	"html"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"quizzical-service/internal/api"
	"quizzical-service/internal/domain"
)

// Open Trivia DB application-level result codes.
const (
	codeSuccess          = 0
	codeNoResults        = 1
	codeInvalidParameter = 2
	codeTokenNotFound    = 3
	codeTokenEmpty       = 4
	codeRateLimit        = 5
)

type rawQuestion struct {
	Category         string   `json:"category"`
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

type quizResponse struct {
	ResponseCode int           `json:"response_code"`
	Results      []rawQuestion `json:"results"`
}

type categoriesResponse struct {
	TriviaCategories []domain.Category `json:"trivia_categories"`
}

// HTTPGetter is the slice of the HTTP client the service needs.
type HTTPGetter interface {
	GetJSON(ctx context.Context, url string, headers map[string]string, out any) error
}

// Service fetches question batches from the trivia provider and transforms
// them: entity decoding, option shuffling, and id assignment all happen here,
// once, so a question's option order is fixed for its lifetime.
type Service struct {
	client  HTTPGetter
	baseURL string

	// decode and newID are injectable so tests can pin them down.
	decode func(string) string
	newID  func() string

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewService(client HTTPGetter, baseURL string) *Service {
	if baseURL == "" {
		baseURL = api.DefaultBaseURL
	}
	return &Service{
		client:  client,
		baseURL: baseURL,
		decode:  html.UnescapeString,
		newID:   uuid.NewString,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// GetQuiz fetches and transforms one batch of questions. HTTP-layer errors
// propagate unchanged; provider-level failures become semantic errors.
// Question order is preserved, only each question's own options are shuffled.
func (s *Service) GetQuiz(ctx context.Context, cfg domain.QuizConfig) ([]domain.Question, error) {
	var payload quizResponse
	if err := s.client.GetJSON(ctx, api.QuizURL(s.baseURL, cfg), nil, &payload); err != nil {
		return nil, err
	}
	if err := validateResponse(payload); err != nil {
		return nil, err
	}

	questions := make([]domain.Question, 0, len(payload.Results))
	for _, raw := range payload.Results {
		questions = append(questions, s.transform(raw))
	}
	return questions, nil
}

// GetCategories fetches the provider's category catalog.
func (s *Service) GetCategories(ctx context.Context) ([]domain.Category, error) {
	var payload categoriesResponse
	if err := s.client.GetJSON(ctx, api.CategoriesURL(s.baseURL), nil, &payload); err != nil {
		return nil, err
	}
	return payload.TriviaCategories, nil
}

func validateResponse(payload quizResponse) error {
	if payload.ResponseCode != codeSuccess {
		switch payload.ResponseCode {
		case codeNoResults:
			return domain.NewSemanticError("No questions found with these criteria")
		case codeInvalidParameter:
			return domain.NewSemanticError("Invalid parameters")
		case codeTokenNotFound:
			return domain.NewSemanticError("Session expired")
		case codeTokenEmpty:
			return domain.NewSemanticError("No more questions available")
		case codeRateLimit:
			return domain.NewSemanticError("Too many requests, please wait")
		default:
			return domain.NewSemanticError(fmt.Sprintf("API error: code %d", payload.ResponseCode))
		}
	}
	if len(payload.Results) == 0 {
		return domain.NewSemanticError("No questions returned by the API")
	}
	return nil
}

func (s *Service) transform(raw rawQuestion) domain.Question {
	correct := s.decode(raw.CorrectAnswer)

	options := make([]string, 0, len(raw.IncorrectAnswers)+1)
	options = append(options, correct)
	for _, answer := range raw.IncorrectAnswers {
		options = append(options, s.decode(answer))
	}
	s.shuffle(options)

	return domain.Question{
		ID:            s.newID(),
		Category:      s.decode(raw.Category),
		Type:          domain.QuestionType(raw.Type),
		Difficulty:    domain.Difficulty(raw.Difficulty),
		Prompt:        s.decode(raw.Question),
		CorrectAnswer: correct,
		Options:       options,
	}
}

// shuffle is a uniform Fisher-Yates permutation. rand.Rand is not safe for
// concurrent use, so the source is guarded.
func (s *Service) shuffle(options []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
}
