// Package grading scores a completed answer sequence and produces the
// attempt total, subtotals and closing comment.
package grading

import (
	"context"
	"errors"

	"github.com/yclai/readquest/internal/quiz"
)

// Grader is the delegated-judgment side of scoring. Implementations may
// fail; the engine catches every error at the call site and substitutes
// a safe default, so a grader outage can lower a score to zero but can
// never abort an attempt.
type Grader interface {
	// GradeOpen judges a free-text answer against the story and returns
	// (score, feedback). The engine clamps the score into
	// [0, question.MaxScore].
	GradeOpen(ctx context.Context, question, answer, story string) (int, string, error)

	// Hint produces a short guiding remark for a wrong multiple-choice
	// answer. It must not reveal the text of the correct option.
	Hint(ctx context.Context, q quiz.Question, wrongAnswer, story string) (string, error)

	// FinalComment produces one closing remark for the whole attempt.
	FinalComment(ctx context.Context, total int, level quiz.Level) (string, error)
}

// errGraderUnavailable signals that no model provider is configured.
var errGraderUnavailable = errors.New("grader unavailable: no model provider configured")

// UnavailableGrader is the Grader used when no provider is configured.
// Every call fails, so the engine's in-band defaults take over: choice
// questions still score by label match, open responses score zero.
type UnavailableGrader struct{}

func (UnavailableGrader) GradeOpen(context.Context, string, string, string) (int, string, error) {
	return 0, "", errGraderUnavailable
}

func (UnavailableGrader) Hint(context.Context, quiz.Question, string, string) (string, error) {
	return "", errGraderUnavailable
}

func (UnavailableGrader) FinalComment(context.Context, int, quiz.Level) (string, error) {
	return "", errGraderUnavailable
}
