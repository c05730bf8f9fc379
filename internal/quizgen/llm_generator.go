package quizgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yclai/readquest/internal/llm"
	"github.com/yclai/readquest/internal/quiz"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates an LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// quizOutput is the raw model response before validation.
type quizOutput struct {
	OpenQuestions []struct {
		Question string `json:"question"`
		Score    int    `json:"score"`
	} `json:"open_questions"`
	ChoiceQuestions []struct {
		Category string   `json:"category"`
		Question string   `json:"question"`
		Options  []string `json:"options"`
		Answer   string   `json:"answer"`
	} `json:"choice_questions"`
}

// Generate builds a quiz for the given level from the story text.
func (g *LLMGenerator) Generate(ctx context.Context, level quiz.Level, story string) (*quiz.Quiz, error) {
	ctx = llm.WithPurpose(ctx, "quiz-gen")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(level, story)},
		},
		Schema:      QuizSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("quiz generation failed: %w", err)
	}

	cleaned, err := llm.ExtractJSON(string(resp.Content))
	if err != nil {
		return nil, fmt.Errorf("parse quiz response: %w", err)
	}

	var raw quizOutput
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, fmt.Errorf("parse quiz response: %w", err)
	}

	q := &quiz.Quiz{Level: level}
	for i, oq := range raw.OpenQuestions {
		maxScore := oq.Score
		if maxScore <= 0 {
			maxScore = quiz.OpenMaxScore
		}
		q.Open = append(q.Open, quiz.Question{
			Kind:     quiz.KindOpen,
			ID:       i + 1,
			Prompt:   oq.Question,
			MaxScore: maxScore,
		})
	}
	for i, cq := range raw.ChoiceQuestions {
		q.Choice = append(q.Choice, quiz.Question{
			Kind:     quiz.KindChoice,
			ID:       i + 1,
			Category: cq.Category,
			Prompt:   cq.Question,
			Options:  cq.Options,
			Answer:   cq.Answer,
		})
	}

	if err := ValidateQuiz(q); err != nil {
		return nil, err
	}

	return q, nil
}
