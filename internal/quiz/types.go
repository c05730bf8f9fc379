package quiz

// Kind distinguishes the two question types in a quiz.
type Kind string

const (
	// KindOpen is a free-text question graded by delegated judgment.
	KindOpen Kind = "open"

	// KindChoice is a closed-option question graded by exact label match.
	KindChoice Kind = "choice"
)

// ChoicesPerQuestion is the fixed option count for every choice question.
const ChoicesPerQuestion = 4

// Question represents a single quiz question ready for display.
// Open and choice questions share this shape; fields that do not apply
// to a kind are left at their zero value.
type Question struct {
	// Kind is the question type.
	Kind Kind

	// ID is the 1-based position within the question's own group.
	ID int

	// Category tags choice questions with the comprehension skill they
	// probe, e.g. "提取訊息" or "推論訊息". Empty for open questions.
	Category string

	// Prompt is the question text displayed to the student.
	Prompt string

	// MaxScore is the maximum awardable score for an open question.
	// Zero for choice questions (their value comes from the level).
	MaxScore int

	// Options holds the choice texts, each carrying its own 1-based
	// label prefix, e.g. "2. 昭和42年的10元". Empty for open questions.
	Options []string

	// Answer is the correct option label for a choice question,
	// e.g. "2". Empty for open questions.
	Answer string
}

// Quiz is one generated question set for a single attempt.
type Quiz struct {
	Level  Level
	Open   []Question
	Choice []Question
}

// Ordered returns the canonical presentation order: open questions first,
// then choice questions, preserving provider order within each group.
// This order also fixes the index used to correlate answers back to
// their questions.
func (q *Quiz) Ordered() []Question {
	out := make([]Question, 0, len(q.Open)+len(q.Choice))
	out = append(out, q.Open...)
	out = append(out, q.Choice...)
	return out
}

// Len returns the total question count.
func (q *Quiz) Len() int {
	return len(q.Open) + len(q.Choice)
}

// Answer records one submitted response, created the instant the student
// submits and immutable thereafter.
type Answer struct {
	// Kind is the source question type.
	Kind Kind

	// Prompt is the verbatim question text at submission time.
	Prompt string

	// Response is the student's raw input.
	Response string

	// Question is the originating question.
	Question Question
}

// ScoredAnswer augments an Answer with grading output.
type ScoredAnswer struct {
	Answer

	// Points is the awarded score.
	Points int

	// Feedback is the grading remark shown to the student.
	Feedback string
}
