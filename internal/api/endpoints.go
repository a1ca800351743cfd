package api

import (
	"net/url"
	"strconv"

	"quizzical-service/internal/domain"
)

// DefaultBaseURL points at the public Open Trivia DB instance.
const DefaultBaseURL = "https://opentdb.com"

// QuizURL builds the question-batch endpoint. Difficulty and type are only
// appended when set; an unset optional never appears in the query string.
func QuizURL(base string, cfg domain.QuizConfig) string {
	params := url.Values{}
	params.Set("amount", strconv.Itoa(cfg.Amount))
	params.Set("category", strconv.Itoa(cfg.Category))
	if cfg.Difficulty != "" {
		params.Set("difficulty", string(cfg.Difficulty))
	}
	if cfg.Type != "" {
		params.Set("type", string(cfg.Type))
	}
	return base + "/api.php?" + params.Encode()
}

// CategoriesURL builds the category-catalog endpoint.
func CategoriesURL(base string) string {
	return base + "/api_category.php"
}
