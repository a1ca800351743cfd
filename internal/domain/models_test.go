package domain

import "testing"

func TestQuizConfigEqual(t *testing.T) {
	base := QuizConfig{Amount: 10, Category: 11}

	if !base.Equal(QuizConfig{Amount: 10, Category: 11}) {
		t.Fatalf("identical configs must be equal")
	}
	if base.Equal(QuizConfig{Amount: 10, Category: 12}) {
		t.Fatalf("different category must not be equal")
	}
	if base.Equal(QuizConfig{Amount: 10, Category: 11, Difficulty: DifficultyEasy}) {
		t.Fatalf("added difficulty must not be equal")
	}

	full := QuizConfig{Amount: 5, Category: 9, Difficulty: DifficultyHard, Type: TypeBoolean}
	if !full.Equal(QuizConfig{Amount: 5, Category: 9, Difficulty: DifficultyHard, Type: TypeBoolean}) {
		t.Fatalf("fully populated configs must be equal")
	}
}

func TestQuizConfigCanonicalOmitsUnsetFields(t *testing.T) {
	got := QuizConfig{Amount: 10, Category: 11}.Canonical()
	want := `{"amount":10,"category":11}`
	if got != want {
		t.Fatalf("Canonical() = %q, want %q", got, want)
	}
}
