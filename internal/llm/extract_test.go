package llm

import "testing"

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"clean", `{"a":1}`, `{"a":1}`, false},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`, false},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`, false},
		{"leading prose", "Here is the quiz:\n{\"a\":1}", `{"a":1}`, false},
		{"trailing prose", "{\"a\":1}\nHope this helps!", `{"a":1}`, false},
		{"nested braces", `{"a":{"b":2}}`, `{"a":{"b":2}}`, false},
		{"no object", "sorry, I cannot do that", "", true},
		{"empty", "", "", true},
		{"only close brace", "}", "", true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ExtractJSON(c.in)
			if c.wantErr {
				if err == nil {
					t.Fatalf("ExtractJSON(%q) expected error, got %q", c.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractJSON(%q) error: %v", c.in, err)
			}
			if got != c.want {
				t.Errorf("ExtractJSON(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}
