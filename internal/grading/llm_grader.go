package grading

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yclai/readquest/internal/llm"
	"github.com/yclai/readquest/internal/quiz"
)

// Config holds tuning knobs for LLM-backed grading.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns grading defaults. Grading wants shorter, more
// deterministic output than quiz generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   512,
		Temperature: 0.3,
	}
}

// LLMGrader implements Grader by delegating judgment to the provider.
type LLMGrader struct {
	provider llm.Provider
	config   Config
}

// NewLLMGrader creates an LLMGrader with the given provider and config.
func NewLLMGrader(provider llm.Provider, cfg Config) *LLMGrader {
	return &LLMGrader{provider: provider, config: cfg}
}

var gradeSchema = &llm.Schema{
	Name:        "open-response-grade",
	Description: "Score and feedback for one open-response answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{
				"type":        "integer",
				"description": "Awarded points, 0 to the stated maximum",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "One or two encouraging sentences in Traditional Chinese",
			},
		},
		"required":             []any{"score", "feedback"},
		"additionalProperties": false,
	},
}

var hintSchema = &llm.Schema{
	Name:        "choice-hint",
	Description: "A guiding hint for a wrong multiple-choice answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"hint": map[string]any{
				"type":        "string",
				"description": "One short sentence in Traditional Chinese pointing back at the story, never naming the correct option",
			},
		},
		"required":             []any{"hint"},
		"additionalProperties": false,
	},
}

var commentSchema = &llm.Schema{
	Name:        "final-comment",
	Description: "A closing remark for a finished quiz attempt",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"comment": map[string]any{
				"type":        "string",
				"description": "Two or three sentences in Traditional Chinese with a concrete reading suggestion",
			},
		},
		"required":             []any{"comment"},
		"additionalProperties": false,
	},
}

const gradeSystemPrompt = `你是一位溫和的國小閱讀老師，正在批改學生的閱讀測驗問答題。
根據故事內容評分：答案需有根據、表達完整。對部分正確的答案給部分分數。
評語用繁體中文，一到兩句，先肯定再建議。只輸出 JSON。`

const hintSystemPrompt = `你是一位溫和的國小閱讀老師。學生選錯了選擇題的答案。
給一句繁體中文提示，引導學生回到故事中找線索。
絕對不能說出正確選項的內容或編號。只輸出 JSON。`

const commentSystemPrompt = `你是一位溫和的國小閱讀老師，要為學生這次的閱讀測驗寫總評。
滿分 100 分，60 分及格。用繁體中文寫兩到三句話，包含一個具體的閱讀建議。只輸出 JSON。`

// GradeOpen asks the model to score a free-text answer against the story.
func (g *LLMGrader) GradeOpen(ctx context.Context, question, answer, story string) (int, string, error) {
	ctx = llm.WithPurpose(ctx, "grade-open")

	var sb strings.Builder
	sb.WriteString("故事內容：\n")
	sb.WriteString(story)
	sb.WriteString("\n\n題目：")
	sb.WriteString(question)
	fmt.Fprintf(&sb, "\n滿分：%d 分\n\n學生的回答：\n", quiz.OpenMaxScore)
	sb.WriteString(answer)

	var out struct {
		Score    int    `json:"score"`
		Feedback string `json:"feedback"`
	}
	if err := g.call(ctx, gradeSystemPrompt, sb.String(), gradeSchema, &out); err != nil {
		return 0, "", err
	}
	return out.Score, out.Feedback, nil
}

// Hint asks the model for a guiding remark that does not reveal the
// correct option.
func (g *LLMGrader) Hint(ctx context.Context, q quiz.Question, wrongAnswer, story string) (string, error) {
	ctx = llm.WithPurpose(ctx, "hint")

	var sb strings.Builder
	sb.WriteString("故事內容：\n")
	sb.WriteString(story)
	sb.WriteString("\n\n題目：")
	sb.WriteString(q.Prompt)
	sb.WriteString("\n選項：\n")
	for _, opt := range q.Options {
		sb.WriteString(opt)
		sb.WriteString("\n")
	}
	sb.WriteString("\n學生選了：")
	sb.WriteString(wrongAnswer)

	var out struct {
		Hint string `json:"hint"`
	}
	if err := g.call(ctx, hintSystemPrompt, sb.String(), hintSchema, &out); err != nil {
		return "", err
	}
	return out.Hint, nil
}

// FinalComment asks the model for one closing remark for the attempt.
func (g *LLMGrader) FinalComment(ctx context.Context, total int, level quiz.Level) (string, error) {
	ctx = llm.WithPurpose(ctx, "final-comment")

	rule := quiz.RuleFor(level)
	user := fmt.Sprintf("學生選擇的難度：%s 級（%s）\n這次的總分：%d 分", level, rule.Focus, total)

	var out struct {
		Comment string `json:"comment"`
	}
	if err := g.call(ctx, commentSystemPrompt, user, commentSchema, &out); err != nil {
		return "", err
	}
	return out.Comment, nil
}

// call sends one structured request and unmarshals the JSON reply into v.
func (g *LLMGrader) call(ctx context.Context, system, user string, schema *llm.Schema, v any) error {
	req := llm.Request{
		System: system,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: user},
		},
		Schema:      schema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("%s failed: %w", schema.Name, err)
	}

	cleaned, err := llm.ExtractJSON(string(resp.Content))
	if err != nil {
		return fmt.Errorf("parse %s response: %w", schema.Name, err)
	}
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return fmt.Errorf("parse %s response: %w", schema.Name, err)
	}
	return nil
}
