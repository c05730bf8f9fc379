package grading

import "testing"

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare digit", "2", "2"},
		{"padded digit", "  2  ", "2"},
		{"digit with dot", "2.", "2"},
		{"full option text", "2. 昭和42年的10元", "2"},
		{"full-width digit", "２", "2"},
		{"lowercase letter", "b", "B"},
		{"uppercase letter", "B", "B"},
		{"full-width letter", "ｂ", "B"},
		{"empty", "", ""},
		{"spaces only", "   ", ""},
		{"no leading label", "我覺得是昭和的硬幣", ""},
		{"punctuation first", "(2)", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeLabel(tt.input); got != tt.want {
				t.Errorf("NormalizeLabel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLabelsMatch(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"same digit", "2", "2", true},
		{"padded vs bare", " 2 ", "2", true},
		{"full option vs label", "2. 昭和42年的10元", "2", true},
		{"full-width vs ascii", "２", "2", true},
		{"case-insensitive letters", "b", "B", true},
		{"different digits", "1", "2", false},
		{"sentinel never matches", "", "", false},
		{"garbage vs label", "不知道", "2", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LabelsMatch(tt.a, tt.b); got != tt.want {
				t.Errorf("LabelsMatch(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
