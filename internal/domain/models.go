package domain

import "encoding/json"

// Difficulty restricts a quiz request to one provider difficulty tier.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// QuestionType selects between multiple-choice and true/false questions.
type QuestionType string

const (
	TypeMultiple QuestionType = "multiple"
	TypeBoolean  QuestionType = "boolean"
)

// QuizConfig identifies one quiz request. Difficulty and Type are optional;
// when empty they are left out of the request entirely.
type QuizConfig struct {
	Amount     int          `json:"amount"`
	Category   int          `json:"category"`
	Difficulty Difficulty   `json:"difficulty,omitempty"`
	Type       QuestionType `json:"type,omitempty"`
}

// Canonical returns the stable serialized form used for cache matching.
// Field order is fixed by the struct, so equal configs always serialize alike.
func (c QuizConfig) Canonical() string {
	b, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return string(b)
}

// Equal reports whether two configs identify the same request.
func (c QuizConfig) Equal(other QuizConfig) bool {
	return c.Canonical() == other.Canonical()
}

// Question is one transformed quiz question. Options holds the correct answer
// plus all incorrect answers in an order fixed at transformation time.
type Question struct {
	ID            string       `json:"id"`
	Category      string       `json:"category"`
	Type          QuestionType `json:"type"`
	Difficulty    Difficulty   `json:"difficulty"`
	Prompt        string       `json:"question"`
	CorrectAnswer string       `json:"correctAnswer"`
	Options       []string     `json:"options"`
}

// Category is one entry of the provider's category catalog.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
