package llm

import (
	"fmt"
	"strings"
)

// ExtractJSON pulls the first JSON object out of a free-text model
// reply. Providers with native structured output return clean JSON, but
// some models still wrap the object in markdown fences or prose; every
// consumer of model output parses through this.
func ExtractJSON(raw string) (string, error) {
	s := strings.TrimSpace(raw)

	// Strip a markdown code fence if present.
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return "", fmt.Errorf("no JSON object in reply")
	}

	return s[start : end+1], nil
}
