// Package session drives one student attempt through its phases, from
// login to the recorded result.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yclai/readquest/internal/grading"
	"github.com/yclai/readquest/internal/quiz"
	"github.com/yclai/readquest/internal/quizgen"
	"github.com/yclai/readquest/internal/record"
	"github.com/yclai/readquest/internal/store"
)

// Phase is the current phase of an attempt.
type Phase int

const (
	PhaseLogin         Phase = iota // Collecting identity
	PhaseLevelSelected              // Level chosen, quiz not yet generated
	PhaseQuizGenerated              // Quiz ready, no answer submitted yet
	PhaseAnswering                  // At least one answer in, more expected
	PhaseGrading                    // All answers in, result not yet recorded
	PhaseFinished                   // Result graded and recorded
)

// String returns the phase name for logs and API payloads.
func (p Phase) String() string {
	switch p {
	case PhaseLogin:
		return "login"
	case PhaseLevelSelected:
		return "level-selected"
	case PhaseQuizGenerated:
		return "quiz-generated"
	case PhaseAnswering:
		return "answering"
	case PhaseGrading:
		return "grading"
	case PhaseFinished:
		return "finished"
	}
	return "unknown"
}

var (
	// ErrWrongPhase is returned when an operation arrives in a phase
	// that does not allow it. The session is left unchanged.
	ErrWrongPhase = errors.New("operation not allowed in current phase")

	// ErrIncompleteIdentity is returned by SelectLevel before all three
	// identity fields are present.
	ErrIncompleteIdentity = errors.New("class, seat and name are all required")

	// ErrBlankAnswer is returned by SubmitAnswer for whitespace-only
	// input. The question stays current and nothing is recorded.
	ErrBlankAnswer = errors.New("answer must not be blank")

	// ErrEmptyQuiz is returned when generation yields no questions.
	ErrEmptyQuiz = errors.New("generated quiz has no questions")

	// ErrNoQuestion is returned by CurrentQuestion outside the
	// answering phases.
	ErrNoQuestion = errors.New("no current question")
)

// Identity is the student self-identification collected at login.
// Free text, recorded verbatim.
type Identity struct {
	Class string `json:"class"`
	Seat  string `json:"seat"`
	Name  string `json:"name"`
}

// Complete reports whether all three fields are non-blank.
func (id Identity) Complete() bool {
	return strings.TrimSpace(id.Class) != "" &&
		strings.TrimSpace(id.Seat) != "" &&
		strings.TrimSpace(id.Name) != ""
}

// Speaker identifies who produced a transcript turn.
type Speaker string

const (
	SpeakerQuiz    Speaker = "quiz"
	SpeakerStudent Speaker = "student"
	SpeakerGrader  Speaker = "grader"
)

// Turn is one entry of the attempt transcript.
type Turn struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// Session is the runtime state of one attempt. Not safe for concurrent
// use; callers serialize access (the API registry holds a lock per
// session, the TUI is single-threaded).
type Session struct {
	// ID is the UUID for this session.
	ID string

	// CreatedAt is when the session was opened.
	CreatedAt time.Time

	// Phase is the current attempt phase.
	Phase Phase

	// Identity is the student identity, set during login.
	Identity Identity

	// Level is the selected difficulty.
	Level quiz.Level

	// Quiz is the generated question set, nil before generation.
	Quiz *quiz.Quiz

	// Questions is the fixed presentation order, open questions first.
	Questions []quiz.Question

	// Index is the position of the current question in Questions.
	// Monotonically increasing; answered questions are never revisited.
	Index int

	// Answers holds one entry per answered question, in order.
	Answers []quiz.Answer

	// Transcript is the turn log of the attempt.
	Transcript []Turn

	// Outcome is the grading result, set exactly once.
	Outcome *grading.Outcome

	// Attempt is the recorded summary, set when grading finishes.
	Attempt *record.Attempt

	// Recorded is true once the attempt row has been persisted.
	Recorded bool
}

// New opens a fresh session in the login phase.
func New() *Session {
	return &Session{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		Phase:     PhaseLogin,
	}
}

// SetIdentity stores the student identity. Allowed only during login.
func (s *Session) SetIdentity(class, seat, name string) error {
	if s.Phase != PhaseLogin {
		return ErrWrongPhase
	}
	s.Identity = Identity{
		Class: strings.TrimSpace(class),
		Seat:  strings.TrimSpace(seat),
		Name:  strings.TrimSpace(name),
	}
	return nil
}

// SelectLevel fixes the difficulty for this attempt. Requires a
// complete identity; may be called again before generation to change
// the choice.
func (s *Session) SelectLevel(level quiz.Level) error {
	if s.Phase != PhaseLogin && s.Phase != PhaseLevelSelected {
		return ErrWrongPhase
	}
	if !s.Identity.Complete() {
		return ErrIncompleteIdentity
	}
	if _, err := quiz.ParseLevel(string(level)); err != nil {
		return err
	}
	s.Level = level
	s.Phase = PhaseLevelSelected
	return nil
}

// GenerateQuiz builds the question set for the selected level. On any
// failure the session stays in the level-selected phase so generation
// can be retried.
func (s *Session) GenerateQuiz(ctx context.Context, gen quizgen.Generator, story string) error {
	if s.Phase != PhaseLevelSelected {
		return ErrWrongPhase
	}

	q, err := gen.Generate(ctx, s.Level, story)
	if err != nil {
		return fmt.Errorf("generate quiz: %w", err)
	}
	if q == nil || q.Len() == 0 {
		return ErrEmptyQuiz
	}

	s.Quiz = q
	s.Questions = q.Ordered()
	s.Index = 0
	s.Answers = s.Answers[:0]
	s.Phase = PhaseQuizGenerated
	return nil
}

// CurrentQuestion returns the question awaiting an answer.
func (s *Session) CurrentQuestion() (quiz.Question, error) {
	if s.Phase != PhaseQuizGenerated && s.Phase != PhaseAnswering {
		return quiz.Question{}, ErrNoQuestion
	}
	if s.Index >= len(s.Questions) {
		return quiz.Question{}, ErrNoQuestion
	}
	return s.Questions[s.Index], nil
}

// Remaining returns the count of unanswered questions.
func (s *Session) Remaining() int {
	if s.Questions == nil {
		return 0
	}
	return len(s.Questions) - s.Index
}

// SubmitAnswer records one response for the current question and
// advances to the next. Blank input is rejected without side effects.
// After the last answer the session moves to the grading phase.
func (s *Session) SubmitAnswer(response string) error {
	if s.Phase != PhaseQuizGenerated && s.Phase != PhaseAnswering {
		return ErrWrongPhase
	}
	if strings.TrimSpace(response) == "" {
		return ErrBlankAnswer
	}

	q := s.Questions[s.Index]
	s.Answers = append(s.Answers, quiz.Answer{
		Kind:     q.Kind,
		Prompt:   q.Prompt,
		Response: response,
		Question: q,
	})
	s.Transcript = append(s.Transcript,
		Turn{Speaker: SpeakerQuiz, Text: q.Prompt},
		Turn{Speaker: SpeakerStudent, Text: response},
	)
	s.Index++

	if s.Index >= len(s.Questions) {
		s.Phase = PhaseGrading
	} else {
		s.Phase = PhaseAnswering
	}
	return nil
}

// RunGrading grades the completed answer sequence and records the
// attempt. Grading runs exactly once; if persisting fails the outcome
// is kept and RunGrading can be called again to retry the write without
// regrading. The sqlite summary is best effort and never blocks the
// result.
func (s *Session) RunGrading(ctx context.Context, engine *grading.Engine, story string, sink record.Sink, events store.EventRepo) (*record.Attempt, error) {
	if s.Phase != PhaseGrading {
		return nil, ErrWrongPhase
	}

	if s.Outcome == nil {
		out := engine.Grade(ctx, s.Level, s.Answers, story)
		s.Outcome = &out
		for _, sa := range out.Scored {
			s.Transcript = append(s.Transcript, Turn{Speaker: SpeakerGrader, Text: sa.Feedback})
		}
		s.Transcript = append(s.Transcript, Turn{Speaker: SpeakerGrader, Text: out.Comment})
	}

	attempt := record.Attempt{
		Class:       s.Identity.Class,
		Seat:        s.Identity.Seat,
		Name:        s.Identity.Name,
		Timestamp:   time.Now(),
		Level:       s.Level,
		ChoiceScore: s.Outcome.ChoiceScore,
		OpenScore:   s.Outcome.OpenScore,
		Total:       s.Outcome.Total,
		Comment:     s.Outcome.Comment,
	}

	if sink != nil {
		if err := sink.Append(attempt); err != nil {
			return nil, fmt.Errorf("record attempt: %w", err)
		}
	}

	if events != nil {
		_ = events.AppendAttempt(ctx, store.AttemptEventData{
			Class:       attempt.Class,
			Seat:        attempt.Seat,
			Name:        attempt.Name,
			Level:       string(attempt.Level),
			ChoiceScore: attempt.ChoiceScore,
			OpenScore:   attempt.OpenScore,
			Total:       attempt.Total,
			Comment:     attempt.Comment,
		})
	}

	s.Attempt = &attempt
	s.Recorded = true
	s.Phase = PhaseFinished
	return s.Attempt, nil
}

// Reset discards the whole attempt, identity included, and returns the
// session to the login phase. The session ID is kept so existing
// references stay valid.
func (s *Session) Reset() {
	s.Phase = PhaseLogin
	s.Identity = Identity{}
	s.Level = ""
	s.Quiz = nil
	s.Questions = nil
	s.Index = 0
	s.Answers = nil
	s.Transcript = nil
	s.Outcome = nil
	s.Attempt = nil
	s.Recorded = false
}
