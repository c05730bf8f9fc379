package quizgen

import (
	"fmt"
	"strings"

	"github.com/yclai/readquest/internal/quiz"
)

const systemPrompt = `You are a reading teacher creating a comprehension quiz for elementary school students who just finished a story.

Rules:
- All question text, options and categories must be in Traditional Chinese.
- Every question must be answerable from the story alone.
- Open-response questions should invite the student to explain or reflect, not recall a single word.
- Each multiple-choice question has exactly 4 options. Prefix every option with its 1-based label, e.g. "2. 昭和42年的10元".
- The "answer" field of a multiple-choice question is the correct option label only, e.g. "2".
- Distractors should reflect plausible misreadings of the story, not random values.
- Tag each multiple-choice question with its comprehension category: 提取訊息, 推論訊息, 詮釋整合 or 比較評估.`

// buildUserMessage constructs the generation request for a level.
func buildUserMessage(level quiz.Level, story string) string {
	rule := quiz.RuleFor(level)

	var b strings.Builder

	fmt.Fprintf(&b, "Difficulty level: %s\n", level)
	fmt.Fprintf(&b, "Open-response questions: exactly %d, each worth up to %d points\n", rule.OpenCount, quiz.OpenMaxScore)
	fmt.Fprintf(&b, "Multiple-choice questions: exactly %d\n", rule.ChoiceCount)
	fmt.Fprintf(&b, "Category mix: %s\n", rule.Focus)

	b.WriteString("\nStory:\n")
	b.WriteString(story)

	return b.String()
}
