package app

import "quizzical-service/internal/domain"

type actionKind int

const (
	actionLoadStart actionKind = iota
	actionLoadSuccess
	actionLoadError
	actionClearError
	actionClearCache
	actionChangeScreen
	actionSelectAnswer
)

// action is the tagged input of the transition function. Only the fields
// relevant to the kind are set.
type action struct {
	kind       actionKind
	config     domain.QuizConfig
	questions  []domain.Question
	message    string
	screen     Screen
	questionID string
	answerID   string
}

// reduce is the pure transition function of the quiz state machine. It never
// mutates its input; every branch returns a fresh State.
func reduce(state State, a action) State {
	next := state.clone()

	switch a.kind {
	case actionLoadStart:
		next.Status = StatusLoading
		next.Error = ""
		next.LastConfig = a.config

	case actionLoadSuccess:
		next.Status = StatusSuccess
		next.Questions = append([]domain.Question(nil), a.questions...)
		next.HasCachedQuiz = true
		next.Error = ""

	case actionLoadError:
		next.Status = StatusError
		next.Questions = []domain.Question{}
		next.Error = a.message

	case actionClearError:
		next.Error = ""
		if len(next.Questions) > 0 {
			next.Status = StatusSuccess
		} else {
			next.Status = StatusIdle
		}

	case actionClearCache:
		next.Questions = []domain.Question{}
		next.UserAnswers = map[string]string{}
		next.HasCachedQuiz = false
		next.Status = StatusIdle
		next.Error = ""

	case actionChangeScreen:
		next.CurrentScreen = a.screen

	case actionSelectAnswer:
		next.UserAnswers[a.questionID] = a.answerID
	}

	return next
}
