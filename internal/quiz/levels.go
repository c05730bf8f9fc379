package quiz

import "fmt"

// Level is one of the three fixed difficulty tiers.
type Level string

const (
	LevelA Level = "A" // 一般程度
	LevelB Level = "B" // 精熟程度
	LevelC Level = "C" // 深刻體會
)

// Levels lists all valid levels in ascending difficulty.
func Levels() []Level {
	return []Level{LevelA, LevelB, LevelC}
}

// ParseLevel validates a level string against the closed set.
func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case LevelA, LevelB, LevelC:
		return Level(s), nil
	}
	return "", fmt.Errorf("unknown level %q", s)
}

// OpenMaxScore is the maximum score of a single open question.
// Held fixed across levels; difficulty scales through question count
// and question depth instead.
const OpenMaxScore = 20

// Rule describes the structural requirements a quiz must satisfy for
// a level.
type Rule struct {
	// OpenCount is the required number of open questions.
	OpenCount int

	// ChoicePoints is the fixed per-question value of a correct
	// choice answer at this level.
	ChoicePoints int

	// ChoiceCount is the required number of choice questions.
	ChoiceCount int

	// Focus describes the dominant choice-question category mix,
	// used to steer generation.
	Focus string
}

var rules = map[Level]Rule{
	LevelA: {OpenCount: 1, ChoicePoints: 8, ChoiceCount: 4, Focus: "extraction-heavy: mostly 提取訊息, some 推論訊息"},
	LevelB: {OpenCount: 2, ChoicePoints: 6, ChoiceCount: 4, Focus: "inference-heavy: mostly 推論訊息, some 詮釋整合"},
	LevelC: {OpenCount: 3, ChoicePoints: 4, ChoiceCount: 4, Focus: "interpretation-heavy: mostly 詮釋整合 and 比較評估"},
}

// RuleFor returns the structural rule for a level. Unknown levels fall
// back to the LevelA rule so callers never divide by a zero point value.
func RuleFor(level Level) Rule {
	if r, ok := rules[level]; ok {
		return r
	}
	return rules[LevelA]
}
