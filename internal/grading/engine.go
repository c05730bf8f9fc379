package grading

import (
	"context"
	"strings"

	"github.com/yclai/readquest/internal/quiz"
)

// Outcome is the result of grading one full answer sequence.
type Outcome struct {
	// Scored parallels the input answers, in the same order.
	Scored []quiz.ScoredAnswer

	// ChoiceScore is the multiple-choice subtotal.
	ChoiceScore int

	// OpenScore is the open-response subtotal.
	OpenScore int

	// Total is always ChoiceScore + OpenScore.
	Total int

	// Comment is the closing remark for the attempt.
	Comment string
}

// Engine walks an answer sequence once, in original order, and produces
// the scored sequence and aggregate totals. Grader failures degrade to
// zero-score defaults at the call site; grading never aborts an attempt.
type Engine struct {
	grader Grader
}

// NewEngine creates an Engine delegating judgment to grader.
func NewEngine(grader Grader) *Engine {
	return &Engine{grader: grader}
}

// Grade scores every answer and requests one closing comment.
func (e *Engine) Grade(ctx context.Context, level quiz.Level, answers []quiz.Answer, story string) Outcome {
	rule := quiz.RuleFor(level)

	var out Outcome
	out.Scored = make([]quiz.ScoredAnswer, 0, len(answers))

	for _, ans := range answers {
		var scored quiz.ScoredAnswer
		switch ans.Kind {
		case quiz.KindChoice:
			scored = e.gradeChoice(ctx, ans, rule.ChoicePoints, story)
			out.ChoiceScore += scored.Points
		default:
			scored = e.gradeOpen(ctx, ans, story)
			out.OpenScore += scored.Points
		}
		out.Scored = append(out.Scored, scored)
	}

	out.Total = out.ChoiceScore + out.OpenScore

	comment, err := e.grader.FinalComment(ctx, out.Total, level)
	if err != nil || strings.TrimSpace(comment) == "" {
		comment = DefaultComment(out.Total)
	}
	out.Comment = comment

	return out
}

// gradeChoice compares normalized labels. Any parse failure on either
// side resolves to "not equal"; a wrong answer earns a non-revealing
// hint as feedback.
func (e *Engine) gradeChoice(ctx context.Context, ans quiz.Answer, points int, story string) quiz.ScoredAnswer {
	scored := quiz.ScoredAnswer{Answer: ans}

	if LabelsMatch(ans.Response, ans.Question.Answer) {
		scored.Points = points
		scored.Feedback = FeedbackCorrectChoice
		return scored
	}

	hint, err := e.grader.Hint(ctx, ans.Question, ans.Response, story)
	if err != nil || strings.TrimSpace(hint) == "" {
		hint = DefaultHint
	}
	// A hint that quotes the correct option defeats its purpose;
	// replace it rather than leak the answer.
	if text := correctOptionText(ans.Question); text != "" && strings.Contains(hint, text) {
		hint = DefaultHint
	}
	scored.Feedback = hint
	return scored
}

// gradeOpen delegates to the grader and clamps the returned score into
// [0, MaxScore]. An unreachable grader awards zero with an explanation.
func (e *Engine) gradeOpen(ctx context.Context, ans quiz.Answer, story string) quiz.ScoredAnswer {
	scored := quiz.ScoredAnswer{Answer: ans}

	score, feedback, err := e.grader.GradeOpen(ctx, ans.Question.Prompt, ans.Response, story)
	if err != nil {
		scored.Feedback = FeedbackUnavailable
		return scored
	}

	if score < 0 {
		score = 0
	}
	if score > ans.Question.MaxScore {
		score = ans.Question.MaxScore
	}
	scored.Points = score
	scored.Feedback = feedback
	return scored
}

// correctOptionText returns the body of the correct option, without its
// label prefix, or "" when the label matches no option.
func correctOptionText(q quiz.Question) string {
	want := NormalizeLabel(q.Answer)
	if want == "" {
		return ""
	}
	for _, opt := range q.Options {
		if NormalizeLabel(opt) != want {
			continue
		}
		text := opt
		// Strip the "N." or "N、" label prefix.
		if i := strings.IndexAny(text, ".、)"); i >= 0 && i <= 3 {
			text = text[i+1:]
		}
		return strings.TrimSpace(text)
	}
	return ""
}
