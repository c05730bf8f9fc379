package quizgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yclai/readquest/internal/quiz"
)

// ValidationError describes why a generated quiz was rejected. A
// rejected quiz is replaced by the fallback, never shown to a student.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "invalid quiz: " + e.Message
}

// ValidateQuiz checks a generated quiz against the level's structural
// rule and the per-question invariants.
func ValidateQuiz(q *quiz.Quiz) error {
	rule := quiz.RuleFor(q.Level)

	if len(q.Open) != rule.OpenCount {
		return &ValidationError{
			Message: fmt.Sprintf("level %s needs %d open questions, got %d", q.Level, rule.OpenCount, len(q.Open)),
		}
	}
	if len(q.Choice) != rule.ChoiceCount {
		return &ValidationError{
			Message: fmt.Sprintf("level %s needs %d choice questions, got %d", q.Level, rule.ChoiceCount, len(q.Choice)),
		}
	}

	for i, oq := range q.Open {
		if strings.TrimSpace(oq.Prompt) == "" {
			return &ValidationError{Message: fmt.Sprintf("open question %d has empty prompt", i+1)}
		}
		if oq.MaxScore <= 0 {
			return &ValidationError{Message: fmt.Sprintf("open question %d has non-positive max score", i+1)}
		}
	}

	for i, cq := range q.Choice {
		if strings.TrimSpace(cq.Prompt) == "" {
			return &ValidationError{Message: fmt.Sprintf("choice question %d has empty prompt", i+1)}
		}
		if len(cq.Options) != quiz.ChoicesPerQuestion {
			return &ValidationError{
				Message: fmt.Sprintf("choice question %d has %d options, want %d", i+1, len(cq.Options), quiz.ChoicesPerQuestion),
			}
		}
		for j, opt := range cq.Options {
			if strings.TrimSpace(opt) == "" {
				return &ValidationError{Message: fmt.Sprintf("choice question %d option %d is empty", i+1, j+1)}
			}
		}
		// The correct label must address one of the listed options.
		// A label outside [1, n] fails closed at grading time, but a
		// generated quiz should never carry one in the first place.
		n, err := strconv.Atoi(strings.TrimSpace(cq.Answer))
		if err != nil || n < 1 || n > len(cq.Options) {
			return &ValidationError{
				Message: fmt.Sprintf("choice question %d answer label %q matches no option", i+1, cq.Answer),
			}
		}
	}

	return nil
}
