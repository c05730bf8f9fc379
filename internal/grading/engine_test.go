package grading

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yclai/readquest/internal/quiz"
)

// stubGrader lets each test control the delegated-judgment side.
type stubGrader struct {
	gradeOpen    func(question, answer string) (int, string, error)
	hint         func(q quiz.Question, wrongAnswer string) (string, error)
	finalComment func(total int) (string, error)
}

func (s *stubGrader) GradeOpen(_ context.Context, question, answer, _ string) (int, string, error) {
	if s.gradeOpen == nil {
		return 0, "", errors.New("unexpected GradeOpen call")
	}
	return s.gradeOpen(question, answer)
}

func (s *stubGrader) Hint(_ context.Context, q quiz.Question, wrongAnswer, _ string) (string, error) {
	if s.hint == nil {
		return "", errors.New("unexpected Hint call")
	}
	return s.hint(q, wrongAnswer)
}

func (s *stubGrader) FinalComment(_ context.Context, total int, _ quiz.Level) (string, error) {
	if s.finalComment == nil {
		return "", errors.New("unexpected FinalComment call")
	}
	return s.finalComment(total)
}

func choiceAnswer(response string) quiz.Answer {
	q := quiz.Question{
		Kind:     quiz.KindChoice,
		ID:       1,
		Category: "提取訊息",
		Prompt:   "小喬最想要哪一個10元？",
		Options: []string{
			"1. 新的10元",
			"2. 昭和42年的10元",
			"3. 平成3年的10元",
			"4. 外國的10元",
		},
		Answer: "2",
	}
	return quiz.Answer{Kind: quiz.KindChoice, Prompt: q.Prompt, Response: response, Question: q}
}

func openAnswer(response string) quiz.Answer {
	q := quiz.Question{
		Kind:     quiz.KindOpen,
		ID:       1,
		Prompt:   "你覺得小喬為什麼捨不得花掉那枚硬幣？",
		MaxScore: quiz.OpenMaxScore,
	}
	return quiz.Answer{Kind: quiz.KindOpen, Prompt: q.Prompt, Response: response, Question: q}
}

func TestGradeMixedAnswers(t *testing.T) {
	grader := &stubGrader{
		gradeOpen: func(_, _ string) (int, string, error) {
			return 15, "答得很有條理！", nil
		},
		finalComment: func(total int) (string, error) {
			if total != 23 {
				t.Errorf("FinalComment total = %d, want 23", total)
			}
			return "表現不錯，繼續加油。", nil
		},
	}
	engine := NewEngine(grader)

	answers := []quiz.Answer{
		openAnswer("因為那是叔叔送的紀念品"),
		choiceAnswer("2"),
	}
	out := engine.Grade(context.Background(), quiz.LevelA, answers, "故事全文")

	if len(out.Scored) != 2 {
		t.Fatalf("len(Scored) = %d, want 2", len(out.Scored))
	}
	if out.OpenScore != 15 {
		t.Errorf("OpenScore = %d, want 15", out.OpenScore)
	}
	if out.ChoiceScore != 8 {
		t.Errorf("ChoiceScore = %d, want 8", out.ChoiceScore)
	}
	if out.Total != 23 {
		t.Errorf("Total = %d, want 23", out.Total)
	}
	if out.ChoiceScore+out.OpenScore != out.Total {
		t.Errorf("subtotals %d+%d do not sum to Total %d", out.ChoiceScore, out.OpenScore, out.Total)
	}
	if out.Scored[1].Feedback != FeedbackCorrectChoice {
		t.Errorf("correct choice feedback = %q, want %q", out.Scored[1].Feedback, FeedbackCorrectChoice)
	}
	if out.Comment != "表現不錯，繼續加油。" {
		t.Errorf("Comment = %q", out.Comment)
	}
}

func TestGradeChoiceLabelVariants(t *testing.T) {
	grader := &stubGrader{
		finalComment: func(int) (string, error) { return "好。", nil },
	}
	engine := NewEngine(grader)

	for _, response := range []string{"2", " 2 ", "2.", "2. 昭和42年的10元", "２"} {
		out := engine.Grade(context.Background(), quiz.LevelA,
			[]quiz.Answer{choiceAnswer(response)}, "故事")
		if out.ChoiceScore != 8 {
			t.Errorf("response %q: ChoiceScore = %d, want 8", response, out.ChoiceScore)
		}
	}
}

func TestGradeWrongChoiceGetsHint(t *testing.T) {
	grader := &stubGrader{
		hint: func(q quiz.Question, wrongAnswer string) (string, error) {
			if wrongAnswer != "3" {
				t.Errorf("hint got wrong answer %q, want %q", wrongAnswer, "3")
			}
			return "再想想小喬收到硬幣時說了什麼。", nil
		},
		finalComment: func(int) (string, error) { return "加油。", nil },
	}
	engine := NewEngine(grader)

	out := engine.Grade(context.Background(), quiz.LevelC,
		[]quiz.Answer{choiceAnswer("3")}, "故事")

	if out.ChoiceScore != 0 {
		t.Errorf("ChoiceScore = %d, want 0", out.ChoiceScore)
	}
	if out.Scored[0].Feedback != "再想想小喬收到硬幣時說了什麼。" {
		t.Errorf("Feedback = %q", out.Scored[0].Feedback)
	}
}

func TestGradeHintNeverRevealsCorrectOption(t *testing.T) {
	grader := &stubGrader{
		hint: func(quiz.Question, string) (string, error) {
			return "正確答案其實是昭和42年的10元喔。", nil
		},
		finalComment: func(int) (string, error) { return "加油。", nil },
	}
	engine := NewEngine(grader)

	out := engine.Grade(context.Background(), quiz.LevelC,
		[]quiz.Answer{choiceAnswer("1")}, "故事")

	if strings.Contains(out.Scored[0].Feedback, "昭和42年的10元") {
		t.Errorf("hint leaked the correct option: %q", out.Scored[0].Feedback)
	}
	if out.Scored[0].Feedback != DefaultHint {
		t.Errorf("Feedback = %q, want DefaultHint", out.Scored[0].Feedback)
	}
}

func TestGradeHintFailureFallsBack(t *testing.T) {
	grader := &stubGrader{
		hint: func(quiz.Question, string) (string, error) {
			return "", errors.New("provider unavailable")
		},
		finalComment: func(int) (string, error) { return "加油。", nil },
	}
	engine := NewEngine(grader)

	out := engine.Grade(context.Background(), quiz.LevelB,
		[]quiz.Answer{choiceAnswer("4")}, "故事")

	if out.Scored[0].Points != 0 {
		t.Errorf("Points = %d, want 0", out.Scored[0].Points)
	}
	if out.Scored[0].Feedback != DefaultHint {
		t.Errorf("Feedback = %q, want DefaultHint", out.Scored[0].Feedback)
	}
}

func TestGradeOpenFailureScoresZero(t *testing.T) {
	grader := &stubGrader{
		gradeOpen: func(_, _ string) (int, string, error) {
			return 0, "", errors.New("provider unavailable")
		},
		finalComment: func(int) (string, error) { return "加油。", nil },
	}
	engine := NewEngine(grader)

	out := engine.Grade(context.Background(), quiz.LevelA,
		[]quiz.Answer{openAnswer("我的回答")}, "故事")

	if out.OpenScore != 0 {
		t.Errorf("OpenScore = %d, want 0", out.OpenScore)
	}
	if out.Scored[0].Feedback != FeedbackUnavailable {
		t.Errorf("Feedback = %q, want FeedbackUnavailable", out.Scored[0].Feedback)
	}
	if out.Total != 0 {
		t.Errorf("Total = %d, want 0", out.Total)
	}
}

func TestGradeOpenScoreClamped(t *testing.T) {
	tests := []struct {
		name  string
		score int
		want  int
	}{
		{"above max", 35, quiz.OpenMaxScore},
		{"below zero", -5, 0},
		{"within range", 12, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grader := &stubGrader{
				gradeOpen: func(_, _ string) (int, string, error) {
					return tt.score, "評語", nil
				},
				finalComment: func(int) (string, error) { return "好。", nil },
			}
			engine := NewEngine(grader)

			out := engine.Grade(context.Background(), quiz.LevelA,
				[]quiz.Answer{openAnswer("回答")}, "故事")
			if out.OpenScore != tt.want {
				t.Errorf("OpenScore = %d, want %d", out.OpenScore, tt.want)
			}
		})
	}
}

func TestGradeCommentFailureFallsBack(t *testing.T) {
	grader := &stubGrader{
		finalComment: func(int) (string, error) {
			return "", errors.New("provider unavailable")
		},
	}
	engine := NewEngine(grader)

	out := engine.Grade(context.Background(), quiz.LevelA,
		[]quiz.Answer{choiceAnswer("2")}, "故事")

	if out.Comment != DefaultComment(out.Total) {
		t.Errorf("Comment = %q, want default for total %d", out.Comment, out.Total)
	}
}

func TestGradeIsDeterministicForSameInput(t *testing.T) {
	grader := &stubGrader{
		gradeOpen: func(_, answer string) (int, string, error) {
			return len([]rune(answer)) % quiz.OpenMaxScore, "評語", nil
		},
		finalComment: func(int) (string, error) { return "好。", nil },
	}
	engine := NewEngine(grader)

	answers := []quiz.Answer{openAnswer("一樣的回答"), choiceAnswer("2")}
	first := engine.Grade(context.Background(), quiz.LevelA, answers, "故事")
	second := engine.Grade(context.Background(), quiz.LevelA, answers, "故事")

	if first.Total != second.Total {
		t.Errorf("totals differ across runs: %d vs %d", first.Total, second.Total)
	}
	if first.ChoiceScore != second.ChoiceScore || first.OpenScore != second.OpenScore {
		t.Errorf("subtotals differ across runs")
	}
}

func TestDefaultCommentThresholds(t *testing.T) {
	if DefaultComment(80) == DefaultComment(79) {
		t.Error("80 and 79 should produce different comments")
	}
	if DefaultComment(60) == DefaultComment(59) {
		t.Error("60 and 59 should produce different comments")
	}
	if DefaultComment(100) != DefaultComment(80) {
		t.Error("100 and 80 should share the top-band comment")
	}
}
