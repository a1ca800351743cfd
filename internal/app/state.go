package app

import "quizzical-service/internal/domain"

// Status is the load phase of the quiz state machine.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusError   Status = "error"
	StatusSuccess Status = "success"
)

// Screen is the orthogonal navigation dimension.
type Screen string

const (
	ScreenHome      Screen = "home"
	ScreenConfig    Screen = "config"
	ScreenQuestions Screen = "questions"
	ScreenAnswers   Screen = "answers"
)

// State is the entire surface the presentation layer reads. It is only
// mutated through the controller's action dispatch.
type State struct {
	Status        Status            `json:"status"`
	Questions     []domain.Question `json:"questions"`
	UserAnswers   map[string]string `json:"userAnswers"`
	Error         string            `json:"error,omitempty"`
	HasCachedQuiz bool              `json:"hasCachedQuiz"`
	LastConfig    domain.QuizConfig `json:"lastConfig"`
	CurrentScreen Screen            `json:"currentScreen"`
}

// IsLoading is the derived flag the UI polls instead of comparing Status.
func (s State) IsLoading() bool {
	return s.Status == StatusLoading
}

// clone copies the mutable collections so snapshots and reducer inputs never
// alias controller-owned memory.
func (s State) clone() State {
	out := s
	out.Questions = append([]domain.Question(nil), s.Questions...)
	out.UserAnswers = make(map[string]string, len(s.UserAnswers))
	for id, answer := range s.UserAnswers {
		out.UserAnswers[id] = answer
	}
	return out
}
