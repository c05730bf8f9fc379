package grading

// Fixed in-band substitutes for grader failures. An ungraded answer must
// never silently earn credit, so every default awards nothing.
const (
	// FeedbackCorrectChoice is shown for a correct multiple-choice answer.
	FeedbackCorrectChoice = "答對了！"

	// FeedbackUnavailable replaces open-response feedback when the
	// grader cannot be reached; the answer scores zero.
	FeedbackUnavailable = "自動評分暫時無法使用，此題以 0 分計，之後可請老師人工批改。"

	// DefaultHint replaces a missing or unusable hint for a wrong
	// multiple-choice answer.
	DefaultHint = "再回到故事裡找找相關的段落，想想哪個選項最符合故事的描述喔！"
)

// DefaultComment is the fixed closing remark used when the grader
// cannot produce one, keyed off the aggregate total alone.
func DefaultComment(total int) string {
	switch {
	case total >= 80:
		return "表現優秀！你對故事細節掌握得很好，建議可以挑戰更難的書籍。"
	case total >= 60:
		return "恭喜通過！你已經理解了故事大意，建議下次閱讀時多注意角色的心理變化。"
	default:
		return "很可惜這次未通過。建議重新閱讀故事的關鍵段落，再挑戰一次，加油！"
	}
}
