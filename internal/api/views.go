package api

import (
	"github.com/yclai/readquest/internal/quiz"
	"github.com/yclai/readquest/internal/record"
	"github.com/yclai/readquest/internal/session"
)

// sessionView is the API shape of a session. The correct answer label
// never appears here; grading stays server side.
type sessionView struct {
	ID       string           `json:"id"`
	Phase    string           `json:"phase"`
	Identity session.Identity `json:"identity"`
	Level    string           `json:"level,omitempty"`
	Question *questionView    `json:"question,omitempty"`
	Progress *progressView    `json:"progress,omitempty"`
	Result   *resultView      `json:"result,omitempty"`
}

type questionView struct {
	Index    int      `json:"index"` // 1-based position in the attempt
	Total    int      `json:"total"`
	Kind     string   `json:"kind"`
	Category string   `json:"category,omitempty"`
	Prompt   string   `json:"prompt"`
	Options  []string `json:"options,omitempty"`
	MaxScore int      `json:"max_score,omitempty"`
}

type progressView struct {
	Answered int `json:"answered"`
	Total    int `json:"total"`
}

type resultView struct {
	ChoiceScore int            `json:"choice_score"`
	OpenScore   int            `json:"open_score"`
	Total       int            `json:"total"`
	Passed      bool           `json:"passed"`
	Comment     string         `json:"comment"`
	Feedback    []feedbackView `json:"feedback"`
}

type feedbackView struct {
	Prompt   string `json:"prompt"`
	Response string `json:"response"`
	Points   int    `json:"points"`
	Feedback string `json:"feedback"`
}

// viewOf projects a session into its API shape.
func viewOf(s *session.Session) sessionView {
	v := sessionView{
		ID:       s.ID,
		Phase:    s.Phase.String(),
		Identity: s.Identity,
		Level:    string(s.Level),
	}

	if q, err := s.CurrentQuestion(); err == nil {
		v.Question = &questionView{
			Index:    s.Index + 1,
			Total:    len(s.Questions),
			Kind:     string(q.Kind),
			Category: q.Category,
			Prompt:   q.Prompt,
			Options:  q.Options,
			MaxScore: q.MaxScore,
		}
	}
	if len(s.Questions) > 0 {
		v.Progress = &progressView{Answered: len(s.Answers), Total: len(s.Questions)}
	}
	if s.Phase == session.PhaseFinished && s.Outcome != nil {
		v.Result = resultOf(s.Outcome.Scored, s.Attempt)
	}
	return v
}

func resultOf(scored []quiz.ScoredAnswer, attempt *record.Attempt) *resultView {
	r := &resultView{
		ChoiceScore: attempt.ChoiceScore,
		OpenScore:   attempt.OpenScore,
		Total:       attempt.Total,
		Passed:      attempt.Passed(),
		Comment:     attempt.Comment,
	}
	for _, sa := range scored {
		r.Feedback = append(r.Feedback, feedbackView{
			Prompt:   sa.Prompt,
			Response: sa.Response,
			Points:   sa.Points,
			Feedback: sa.Feedback,
		})
	}
	return r
}
