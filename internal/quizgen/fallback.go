package quizgen

import (
	"context"

	"github.com/yclai/readquest/internal/quiz"
)

// WithFallback wraps a Generator so that any generation failure or an
// empty result substitutes the fixed built-in quiz for the level. The
// session can then still run end to end with no provider available.
func WithFallback(inner Generator) Generator {
	return &fallbackGenerator{inner: inner}
}

type fallbackGenerator struct {
	inner Generator
}

func (g *fallbackGenerator) Generate(ctx context.Context, level quiz.Level, story string) (*quiz.Quiz, error) {
	q, err := g.inner.Generate(ctx, level, story)
	if err != nil || q == nil || q.Len() == 0 {
		return FallbackQuiz(level), nil
	}
	return q, nil
}

// fallbackOpen holds the built-in open questions, deepest last. A level
// takes the first RuleFor(level).OpenCount of them.
var fallbackOpen = []string{
	"為什麼真由美會長出魚鱗？請根據故事內容回答。",
	"你認為美人魚軟糖的副作用對真由美來說是好是壞？",
	"這則故事想傳達的核心寓意是什麼？",
}

// FallbackQuiz returns the fixed quiz for a level. The content is
// hand-written against the bundled story so grading stays meaningful;
// counts follow the level rule exactly.
func FallbackQuiz(level quiz.Level) *quiz.Quiz {
	rule := quiz.RuleFor(level)

	q := &quiz.Quiz{Level: level}

	for i := 0; i < rule.OpenCount && i < len(fallbackOpen); i++ {
		q.Open = append(q.Open, quiz.Question{
			Kind:     quiz.KindOpen,
			ID:       i + 1,
			Prompt:   fallbackOpen[i],
			MaxScore: quiz.OpenMaxScore,
		})
	}

	q.Choice = []quiz.Question{
		{
			Kind:     quiz.KindChoice,
			ID:       1,
			Category: "提取訊息",
			Prompt:   "真由美用什麼換到了美人魚軟糖？",
			Options:  []string{"1. 100元", "2. 昭和42年的10元", "3. 一顆釦子", "4. 玩具寶石"},
			Answer:   "2",
		},
		{
			Kind:     quiz.KindChoice,
			ID:       2,
			Category: "推論訊息",
			Prompt:   "為什麼錢天堂的老闆娘說那枚硬幣是「寶物」？",
			Options:  []string{"1. 因為很亮", "2. 因為那是稀有的舊硬幣", "3. 因為老闆娘喜歡蒐集", "4. 因為那是真由美的運氣"},
			Answer:   "2",
		},
		{
			Kind:     quiz.KindChoice,
			ID:       3,
			Category: "推論訊息",
			Prompt:   "故事中提到的「錢天堂」有什麼特徵？",
			Options:  []string{"1. 在大馬路旁", "2. 只有幸運的人能找到", "3. 賣很多文具", "4. 老闆是個年輕男生"},
			Answer:   "2",
		},
		{
			Kind:     quiz.KindChoice,
			ID:       4,
			Category: "詮釋整合",
			Prompt:   "真由美最後對游泳的看法有什麼轉變？",
			Options:  []string{"1. 還是很討厭", "2. 變得喜歡且擅長", "3. 覺得無所謂", "4. 決定以後都不游了"},
			Answer:   "2",
		},
	}

	return q
}
