package quizgen

import "github.com/yclai/readquest/internal/llm"

// QuizSchema defines the JSON schema for quiz generation responses.
var QuizSchema = &llm.Schema{
	Name:        "reading-quiz",
	Description: "A reading-comprehension quiz with open and multiple-choice questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"open_questions": map[string]any{
				"type":        "array",
				"description": "Open-response questions, graded by judgment",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question text, in Traditional Chinese",
						},
						"score": map[string]any{
							"type":        "integer",
							"description": "Maximum score for this question",
						},
					},
					"required":             []any{"question", "score"},
					"additionalProperties": false,
				},
			},
			"choice_questions": map[string]any{
				"type":        "array",
				"description": "Multiple-choice questions with exactly 4 labeled options",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"category": map[string]any{
							"type":        "string",
							"description": "Comprehension skill tag, e.g. 提取訊息, 推論訊息, 詮釋整合",
						},
						"question": map[string]any{
							"type":        "string",
							"description": "The question text, in Traditional Chinese",
						},
						"options": map[string]any{
							"type":        "array",
							"description": "Exactly 4 options, each prefixed with its 1-based label, e.g. \"2. 昭和42年的10元\"",
							"items": map[string]any{
								"type": "string",
							},
						},
						"answer": map[string]any{
							"type":        "string",
							"description": "The correct option label only, e.g. \"2\"",
						},
					},
					"required":             []any{"category", "question", "options", "answer"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"open_questions", "choice_questions"},
		"additionalProperties": false,
	},
}
