// Package tui is the terminal frontend for running an attempt locally.
package tui

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/yclai/readquest/internal/grading"
	"github.com/yclai/readquest/internal/quiz"
	"github.com/yclai/readquest/internal/quizgen"
	"github.com/yclai/readquest/internal/record"
	"github.com/yclai/readquest/internal/session"
	"github.com/yclai/readquest/internal/store"
)

// step is the view state layered over the session phases.
type step int

const (
	stepLogin step = iota
	stepLevel
	stepGenerating
	stepQuestion
	stepGradingWait
	stepResult
	stepError
)

type quizReadyMsg struct {
	err error
}

type gradedMsg struct {
	attempt *record.Attempt
	err     error
}

// loginFields are prompted one at a time, in order.
var loginFields = []string{"班級", "座號", "姓名"}

// levelDescriptions mirror the level constants, in Levels() order.
var levelDescriptions = []string{"一般程度", "精熟程度", "深刻體會"}

// Options carries the TUI dependencies.
type Options struct {
	Generator quizgen.Generator
	Engine    *grading.Engine
	Story     string
	Sink      record.Sink
	Events    store.EventRepo
}

// Model is the root Bubble Tea model driving one session.
type Model struct {
	opts Options
	sess *session.Session

	step        step
	input       textinput.Model
	loginField  int
	loginValues []string
	levelCursor int

	errMsg string
	notice string

	width  int
	height int
}

// New creates the root model with a fresh session.
func New(opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = loginFields[0]
	ti.CharLimit = 200
	ti.Focus()

	return Model{
		opts:        opts,
		sess:        session.New(),
		step:        stepLogin,
		input:       ti,
		loginValues: make([]string, len(loginFields)),
	}
}

func (m Model) Init() tea.Cmd {
	return m.input.Focus()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case quizReadyMsg:
		if msg.err != nil {
			m.step = stepError
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.step = stepQuestion
		m.resetInput("請輸入你的回答")
		return m, nil

	case gradedMsg:
		if msg.err != nil {
			m.step = stepError
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.step = stepResult
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.step {
	case stepLogin:
		return m.handleLoginKey(msg)
	case stepLevel:
		return m.handleLevelKey(msg)
	case stepQuestion:
		return m.handleQuestionKey(msg)
	case stepResult:
		switch msg.String() {
		case "r":
			fresh := New(m.opts)
			fresh.width, fresh.height = m.width, m.height
			return fresh, fresh.Init()
		case "q", "esc":
			return m, tea.Quit
		}
		return m, nil
	case stepError:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() != "enter" {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		m.notice = loginFields[m.loginField] + "不能空白"
		return m, nil
	}
	m.notice = ""
	m.loginValues[m.loginField] = value
	m.loginField++

	if m.loginField < len(loginFields) {
		m.resetInput(loginFields[m.loginField])
		return m, nil
	}

	if err := m.sess.SetIdentity(m.loginValues[0], m.loginValues[1], m.loginValues[2]); err != nil {
		m.notice = err.Error()
		m.loginField = 0
		m.resetInput(loginFields[0])
		return m, nil
	}
	m.step = stepLevel
	return m, nil
}

func (m Model) handleLevelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	levels := quiz.Levels()
	switch msg.String() {
	case "up", "k":
		if m.levelCursor > 0 {
			m.levelCursor--
		}
		return m, nil
	case "down", "j":
		if m.levelCursor < len(levels)-1 {
			m.levelCursor++
		}
		return m, nil
	case "1", "2", "3":
		m.levelCursor = int(msg.String()[0] - '1')
		return m.startQuiz(levels[m.levelCursor])
	case "enter":
		return m.startQuiz(levels[m.levelCursor])
	}
	return m, nil
}

func (m Model) startQuiz(level quiz.Level) (tea.Model, tea.Cmd) {
	if err := m.sess.SelectLevel(level); err != nil {
		m.notice = err.Error()
		return m, nil
	}
	m.notice = ""
	m.step = stepGenerating

	sess := m.sess
	gen := m.opts.Generator
	story := m.opts.Story
	return m, func() tea.Msg {
		return quizReadyMsg{err: sess.GenerateQuiz(context.Background(), gen, story)}
	}
}

func (m Model) handleQuestionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	q, err := m.sess.CurrentQuestion()
	if err != nil {
		return m, nil
	}

	if q.Kind == quiz.KindChoice {
		key := msg.String()
		if len(key) == 1 && key[0] >= '1' && key[0] <= '0'+byte(len(q.Options)) {
			return m.submit(key)
		}
		return m, nil
	}

	if msg.String() == "enter" {
		return m.submit(m.input.Value())
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit(response string) (tea.Model, tea.Cmd) {
	if err := m.sess.SubmitAnswer(response); err != nil {
		m.notice = "回答不能空白喔"
		return m, nil
	}
	m.notice = ""

	if m.sess.Phase == session.PhaseGrading {
		m.step = stepGradingWait

		sess := m.sess
		opts := m.opts
		return m, func() tea.Msg {
			attempt, err := sess.RunGrading(context.Background(), opts.Engine, opts.Story, opts.Sink, opts.Events)
			return gradedMsg{attempt: attempt, err: err}
		}
	}

	m.resetInput("請輸入你的回答")
	return m, nil
}

func (m *Model) resetInput(placeholder string) {
	m.input.Reset()
	m.input.Placeholder = placeholder
	m.input.Focus()
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	var content string
	switch m.step {
	case stepLogin:
		content = m.viewLogin()
	case stepLevel:
		content = m.viewLevel()
	case stepGenerating:
		content = m.viewWaiting("出題中，請稍候⋯")
	case stepQuestion:
		content = m.viewQuestion()
	case stepGradingWait:
		content = m.viewWaiting("批改中，請稍候⋯")
	case stepResult:
		content = m.viewResult()
	case stepError:
		content = errorStyle.Render("發生錯誤："+m.errMsg) + "\n\n" +
			hintStyle.Render("按任意鍵離開")
	}

	if m.width > 0 && m.height > 0 {
		content = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	v.SetContent(content)
	return v
}

func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("閱讀闖關測驗"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("請先登入"))
	b.WriteString("\n\n")

	for i, field := range loginFields {
		switch {
		case i < m.loginField:
			b.WriteString(bodyStyle.Render(fmt.Sprintf("%s：%s", field, m.loginValues[i])))
			b.WriteString("\n")
		case i == m.loginField:
			b.WriteString(bodyStyle.Render(field+"：") + m.input.View())
			b.WriteString("\n")
		}
	}

	if m.notice != "" {
		b.WriteString("\n" + errorStyle.Render(m.notice))
	}
	b.WriteString("\n" + hintStyle.Render("Enter 確認 · Ctrl+C 離開"))
	return cardStyle.Render(b.String())
}

func (m Model) viewLevel() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("選擇難度"))
	b.WriteString("\n\n")

	for i, level := range quiz.Levels() {
		line := fmt.Sprintf("%d. %s 級（%s）", i+1, level, levelDescriptions[i])
		if i == m.levelCursor {
			b.WriteString(selectedStyle.Render("▶ " + line))
		} else {
			b.WriteString(bodyStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString("\n" + errorStyle.Render(m.notice))
	}
	b.WriteString("\n" + hintStyle.Render("↑↓ 移動 · Enter 開始"))
	return cardStyle.Render(b.String())
}

func (m Model) viewWaiting(text string) string {
	return cardStyle.Render(subtitleStyle.Render(text))
}

func (m Model) viewQuestion() string {
	q, err := m.sess.CurrentQuestion()
	if err != nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("第 %d / %d 題", m.sess.Index+1, len(m.sess.Questions))))
	if q.Category != "" {
		b.WriteString("  " + categoryStyle.Render("【"+q.Category+"】"))
	}
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render(q.Prompt))
	b.WriteString("\n\n")

	if q.Kind == quiz.KindChoice {
		for _, opt := range q.Options {
			b.WriteString(bodyStyle.Render(opt))
			b.WriteString("\n")
		}
		b.WriteString("\n" + hintStyle.Render("按 1-4 作答"))
	} else {
		b.WriteString(m.input.View())
		b.WriteString("\n\n" + hintStyle.Render("Enter 送出"))
	}

	if m.notice != "" {
		b.WriteString("\n" + errorStyle.Render(m.notice))
	}
	return cardStyle.Render(b.String())
}

func (m Model) viewResult() string {
	attempt := m.sess.Attempt
	outcome := m.sess.Outcome
	if attempt == nil || outcome == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("測驗結果"))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render(fmt.Sprintf("選擇題 %d 分 ＋ 問答題 %d 分", attempt.ChoiceScore, attempt.OpenScore)))
	b.WriteString("\n")
	if attempt.Passed() {
		b.WriteString(passStyle.Render(fmt.Sprintf("總分 %d 分，通過！", attempt.Total)))
	} else {
		b.WriteString(failStyle.Render(fmt.Sprintf("總分 %d 分，未通過", attempt.Total)))
	}
	b.WriteString("\n\n")

	for i, sa := range outcome.Scored {
		b.WriteString(bodyStyle.Render(fmt.Sprintf("%d. %s（%d 分）", i+1, sa.Prompt, sa.Points)))
		b.WriteString("\n")
		b.WriteString(feedbackStyle.Render("   " + sa.Feedback))
		b.WriteString("\n")
	}

	b.WriteString("\n" + bodyStyle.Render("老師的話："+attempt.Comment))
	b.WriteString("\n\n" + hintStyle.Render("r 再測一次 · q 離開"))
	return cardStyle.Render(b.String())
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts))
	_, err := p.Run()
	return err
}
