// Package record persists one row per completed quiz attempt.
package record

import (
	"time"

	"github.com/yclai/readquest/internal/quiz"
)

// Attempt is the scoring summary of one completed attempt. Created
// exactly once when grading finishes and never mutated afterwards.
type Attempt struct {
	// Identity fields, free text, recorded verbatim.
	Class string
	Seat  string
	Name  string

	// Timestamp is when grading completed.
	Timestamp time.Time

	// Level is the difficulty the student selected.
	Level quiz.Level

	// ChoiceScore is the multiple-choice subtotal.
	ChoiceScore int

	// OpenScore is the open-response subtotal.
	OpenScore int

	// Total is the attempt total. Always ChoiceScore + OpenScore.
	Total int

	// Comment is the closing remark shown on the result view.
	Comment string
}

// PassThreshold is the minimum total for a passing attempt.
const PassThreshold = 60

// Passed reports whether the attempt met the certification threshold.
func (a Attempt) Passed() bool {
	return a.Total >= PassThreshold
}

// Sink appends completed attempts to a persistent store.
type Sink interface {
	Append(a Attempt) error
}
