// Package story loads the fixed story text quizzes are generated from.
package story

import (
	"os"
	"strings"
)

// Placeholder is returned when no story file exists, so the rest of the
// flow can still be exercised end to end.
const Placeholder = "（測試模式：未找到故事內容）"

// DefaultMaxChars caps the story length sent to the model. Counted in
// runes so multi-byte text is not cut mid-character.
const DefaultMaxChars = 6000

// Loader reads the story text from a file.
type Loader struct {
	// Path is the story file, e.g. "story.txt".
	Path string

	// MaxChars caps the loaded text; zero means DefaultMaxChars.
	MaxChars int
}

// Load returns the story text, truncated to the configured cap.
// A missing or unreadable file yields the placeholder, never an error:
// quiz generation must stay possible in test mode.
func (l Loader) Load() string {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return Placeholder
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return Placeholder
	}

	max := l.MaxChars
	if max <= 0 {
		max = DefaultMaxChars
	}
	return Truncate(text, max)
}

// Truncate cuts s to at most max runes.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
