package session

import (
	"context"
	"errors"
	"testing"

	"github.com/yclai/readquest/internal/grading"
	"github.com/yclai/readquest/internal/quiz"
	"github.com/yclai/readquest/internal/quizgen"
	"github.com/yclai/readquest/internal/record"
)

// staticGenerator always returns the same quiz (or error).
type staticGenerator struct {
	quiz *quiz.Quiz
	err  error
}

func (g *staticGenerator) Generate(_ context.Context, _ quiz.Level, _ string) (*quiz.Quiz, error) {
	return g.quiz, g.err
}

// staticGrader awards a fixed open score and judges choices by label.
type staticGrader struct {
	openScore int
}

func (g *staticGrader) GradeOpen(_ context.Context, _, _, _ string) (int, string, error) {
	return g.openScore, "評語", nil
}

func (g *staticGrader) Hint(_ context.Context, _ quiz.Question, _, _ string) (string, error) {
	return "提示", nil
}

func (g *staticGrader) FinalComment(_ context.Context, _ int, _ quiz.Level) (string, error) {
	return "總評", nil
}

// memorySink collects appended attempts, optionally failing first.
type memorySink struct {
	attempts []record.Attempt
	failNext bool
}

func (s *memorySink) Append(a record.Attempt) error {
	if s.failNext {
		s.failNext = false
		return errors.New("disk full")
	}
	s.attempts = append(s.attempts, a)
	return nil
}

func loginAndSelect(t *testing.T, s *Session, level quiz.Level) {
	t.Helper()
	if err := s.SetIdentity("五年三班", "12", "王小明"); err != nil {
		t.Fatalf("SetIdentity: %v", err)
	}
	if err := s.SelectLevel(level); err != nil {
		t.Fatalf("SelectLevel: %v", err)
	}
}

func generateFallback(t *testing.T, s *Session) {
	t.Helper()
	gen := &staticGenerator{quiz: quizgen.FallbackQuiz(s.Level)}
	if err := s.GenerateQuiz(context.Background(), gen, "故事"); err != nil {
		t.Fatalf("GenerateQuiz: %v", err)
	}
}

func answerAll(t *testing.T, s *Session, choiceResponse string) {
	t.Helper()
	for s.Phase == PhaseQuizGenerated || s.Phase == PhaseAnswering {
		q, err := s.CurrentQuestion()
		if err != nil {
			t.Fatalf("CurrentQuestion: %v", err)
		}
		response := "我的回答"
		if q.Kind == quiz.KindChoice {
			response = choiceResponse
		}
		if err := s.SubmitAnswer(response); err != nil {
			t.Fatalf("SubmitAnswer: %v", err)
		}
	}
}

func TestNewSessionStartsAtLogin(t *testing.T) {
	s := New()
	if s.Phase != PhaseLogin {
		t.Errorf("Phase = %v, want PhaseLogin", s.Phase)
	}
	if s.ID == "" {
		t.Error("ID should be set")
	}
}

func TestSelectLevelRequiresCompleteIdentity(t *testing.T) {
	s := New()
	if err := s.SelectLevel(quiz.LevelA); !errors.Is(err, ErrIncompleteIdentity) {
		t.Errorf("SelectLevel before identity = %v, want ErrIncompleteIdentity", err)
	}

	if err := s.SetIdentity("五年三班", "  ", "王小明"); err != nil {
		t.Fatalf("SetIdentity: %v", err)
	}
	if err := s.SelectLevel(quiz.LevelA); !errors.Is(err, ErrIncompleteIdentity) {
		t.Errorf("SelectLevel with blank seat = %v, want ErrIncompleteIdentity", err)
	}
	if s.Phase != PhaseLogin {
		t.Errorf("Phase = %v, want PhaseLogin after rejected select", s.Phase)
	}
}

func TestSelectLevelRejectsUnknownLevel(t *testing.T) {
	s := New()
	if err := s.SetIdentity("五年三班", "12", "王小明"); err != nil {
		t.Fatalf("SetIdentity: %v", err)
	}
	if err := s.SelectLevel(quiz.Level("D")); err == nil {
		t.Error("SelectLevel(D) should fail")
	}
	if s.Phase != PhaseLogin {
		t.Errorf("Phase = %v, want PhaseLogin", s.Phase)
	}
}

func TestSelectLevelCanBeChangedBeforeGeneration(t *testing.T) {
	s := New()
	loginAndSelect(t, s, quiz.LevelA)
	if err := s.SelectLevel(quiz.LevelC); err != nil {
		t.Fatalf("re-select: %v", err)
	}
	if s.Level != quiz.LevelC {
		t.Errorf("Level = %v, want C", s.Level)
	}
}

func TestGenerateQuizFailureKeepsPhase(t *testing.T) {
	s := New()
	loginAndSelect(t, s, quiz.LevelA)

	gen := &staticGenerator{err: errors.New("provider down")}
	if err := s.GenerateQuiz(context.Background(), gen, "故事"); err == nil {
		t.Fatal("GenerateQuiz should fail")
	}
	if s.Phase != PhaseLevelSelected {
		t.Errorf("Phase = %v, want PhaseLevelSelected", s.Phase)
	}

	// Retry with a working generator succeeds.
	generateFallback(t, s)
	if s.Phase != PhaseQuizGenerated {
		t.Errorf("Phase = %v, want PhaseQuizGenerated", s.Phase)
	}
}

func TestGenerateQuizRejectsEmptyQuiz(t *testing.T) {
	s := New()
	loginAndSelect(t, s, quiz.LevelB)

	gen := &staticGenerator{quiz: &quiz.Quiz{Level: quiz.LevelB}}
	if err := s.GenerateQuiz(context.Background(), gen, "故事"); !errors.Is(err, ErrEmptyQuiz) {
		t.Errorf("GenerateQuiz = %v, want ErrEmptyQuiz", err)
	}
	if s.Phase != PhaseLevelSelected {
		t.Errorf("Phase = %v, want PhaseLevelSelected", s.Phase)
	}
}

func TestQuestionsPresentedOpenFirst(t *testing.T) {
	s := New()
	loginAndSelect(t, s, quiz.LevelB)
	generateFallback(t, s)

	q, err := s.CurrentQuestion()
	if err != nil {
		t.Fatalf("CurrentQuestion: %v", err)
	}
	if q.Kind != quiz.KindOpen {
		t.Errorf("first question kind = %v, want open", q.Kind)
	}
	if s.Remaining() != 6 { // level B: 2 open + 4 choice
		t.Errorf("Remaining = %d, want 6", s.Remaining())
	}
}

func TestSubmitBlankAnswerRejectedWithoutSideEffects(t *testing.T) {
	s := New()
	loginAndSelect(t, s, quiz.LevelA)
	generateFallback(t, s)

	before := s.Index
	if err := s.SubmitAnswer("   "); !errors.Is(err, ErrBlankAnswer) {
		t.Errorf("SubmitAnswer blank = %v, want ErrBlankAnswer", err)
	}
	if s.Index != before {
		t.Errorf("Index advanced on blank answer")
	}
	if len(s.Answers) != 0 {
		t.Errorf("blank answer was recorded")
	}
}

func TestAnswerSequenceReachesGrading(t *testing.T) {
	s := New()
	loginAndSelect(t, s, quiz.LevelA)
	generateFallback(t, s)
	answerAll(t, s, "2")

	if s.Phase != PhaseGrading {
		t.Errorf("Phase = %v, want PhaseGrading", s.Phase)
	}
	if len(s.Answers) != 5 { // level A: 1 open + 4 choice
		t.Errorf("len(Answers) = %d, want 5", len(s.Answers))
	}
	if _, err := s.CurrentQuestion(); !errors.Is(err, ErrNoQuestion) {
		t.Errorf("CurrentQuestion after last answer = %v, want ErrNoQuestion", err)
	}
}

func TestRunGradingRecordsAttempt(t *testing.T) {
	s := New()
	loginAndSelect(t, s, quiz.LevelA)
	generateFallback(t, s)
	answerAll(t, s, "2") // all four fallback answers are "2"

	engine := grading.NewEngine(&staticGrader{openScore: 15})
	sink := &memorySink{}

	attempt, err := s.RunGrading(context.Background(), engine, "故事", sink, nil)
	if err != nil {
		t.Fatalf("RunGrading: %v", err)
	}
	if s.Phase != PhaseFinished {
		t.Errorf("Phase = %v, want PhaseFinished", s.Phase)
	}

	// Level A: 4 correct choices at 8 points + 15 open points.
	if attempt.ChoiceScore != 32 {
		t.Errorf("ChoiceScore = %d, want 32", attempt.ChoiceScore)
	}
	if attempt.OpenScore != 15 {
		t.Errorf("OpenScore = %d, want 15", attempt.OpenScore)
	}
	if attempt.Total != 47 {
		t.Errorf("Total = %d, want 47", attempt.Total)
	}
	if attempt.Passed() {
		t.Error("47 should not pass")
	}
	if len(sink.attempts) != 1 {
		t.Fatalf("len(sink.attempts) = %d, want 1", len(sink.attempts))
	}
	if sink.attempts[0].Name != "王小明" {
		t.Errorf("recorded name = %q", sink.attempts[0].Name)
	}
	if sink.attempts[0].Level != quiz.LevelA {
		t.Errorf("recorded level = %v", sink.attempts[0].Level)
	}
}

func TestRunGradingPersistRetryDoesNotRegrade(t *testing.T) {
	s := New()
	loginAndSelect(t, s, quiz.LevelA)
	generateFallback(t, s)
	answerAll(t, s, "2")

	engine := grading.NewEngine(&staticGrader{openScore: 10})
	sink := &memorySink{failNext: true}

	if _, err := s.RunGrading(context.Background(), engine, "故事", sink, nil); err == nil {
		t.Fatal("first RunGrading should fail on persist")
	}
	if s.Phase != PhaseGrading {
		t.Errorf("Phase = %v, want PhaseGrading kept for retry", s.Phase)
	}
	if s.Outcome == nil {
		t.Fatal("Outcome should be kept after persist failure")
	}
	firstTotal := s.Outcome.Total

	attempt, err := s.RunGrading(context.Background(), engine, "故事", sink, nil)
	if err != nil {
		t.Fatalf("retry RunGrading: %v", err)
	}
	if attempt.Total != firstTotal {
		t.Errorf("retry regraded: total %d != %d", attempt.Total, firstTotal)
	}
	if len(sink.attempts) != 1 {
		t.Errorf("len(sink.attempts) = %d, want 1", len(sink.attempts))
	}
}

func TestRunGradingWrongPhase(t *testing.T) {
	s := New()
	loginAndSelect(t, s, quiz.LevelA)
	generateFallback(t, s)

	engine := grading.NewEngine(&staticGrader{})
	if _, err := s.RunGrading(context.Background(), engine, "故事", &memorySink{}, nil); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("RunGrading mid-quiz = %v, want ErrWrongPhase", err)
	}
}

func TestTranscriptCoversWholeAttempt(t *testing.T) {
	s := New()
	loginAndSelect(t, s, quiz.LevelA)
	generateFallback(t, s)
	answerAll(t, s, "2")

	engine := grading.NewEngine(&staticGrader{openScore: 15})
	if _, err := s.RunGrading(context.Background(), engine, "故事", &memorySink{}, nil); err != nil {
		t.Fatalf("RunGrading: %v", err)
	}

	// 5 questions, 5 answers, 5 feedback turns, 1 comment.
	if len(s.Transcript) != 16 {
		t.Errorf("len(Transcript) = %d, want 16", len(s.Transcript))
	}
	if s.Transcript[0].Speaker != SpeakerQuiz {
		t.Errorf("first turn speaker = %v, want quiz", s.Transcript[0].Speaker)
	}
	last := s.Transcript[len(s.Transcript)-1]
	if last.Speaker != SpeakerGrader || last.Text != "總評" {
		t.Errorf("last turn = %+v, want grader comment", last)
	}
}

func TestResetDiscardsEverything(t *testing.T) {
	s := New()
	loginAndSelect(t, s, quiz.LevelA)
	generateFallback(t, s)
	answerAll(t, s, "2")

	id := s.ID
	s.Reset()

	if s.Phase != PhaseLogin {
		t.Errorf("Phase = %v, want PhaseLogin", s.Phase)
	}
	if s.Identity.Complete() {
		t.Error("identity should be discarded")
	}
	if s.Quiz != nil || len(s.Answers) != 0 || s.Outcome != nil {
		t.Error("attempt state should be discarded")
	}
	if s.ID != id {
		t.Error("ID should survive reset")
	}
}
