// Package quizgen produces reading-comprehension quizzes from a story
// text, via an LLM provider with a fixed built-in fallback.
package quizgen

import (
	"context"

	"github.com/yclai/readquest/internal/quiz"
)

// Generator produces one quiz per attempt.
type Generator interface {
	// Generate builds a quiz for the given level from the story text.
	// The returned quiz satisfies the level's structural rule.
	Generate(ctx context.Context, level quiz.Level, story string) (*quiz.Quiz, error)
}
