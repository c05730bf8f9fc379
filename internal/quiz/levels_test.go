package quiz

import "testing"

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"A", "B", "C"} {
		l, err := ParseLevel(s)
		if err != nil {
			t.Errorf("ParseLevel(%q) error: %v", s, err)
		}
		if string(l) != s {
			t.Errorf("ParseLevel(%q) = %q", s, l)
		}
	}

	for _, s := range []string{"", "a", "D", "AB"} {
		if _, err := ParseLevel(s); err == nil {
			t.Errorf("ParseLevel(%q) expected error", s)
		}
	}
}

func TestRuleTable(t *testing.T) {
	cases := []struct {
		level        Level
		openCount    int
		choicePoints int
	}{
		{LevelA, 1, 8},
		{LevelB, 2, 6},
		{LevelC, 3, 4},
	}

	for _, c := range cases {
		r := RuleFor(c.level)
		if r.OpenCount != c.openCount {
			t.Errorf("level %s: OpenCount = %d, want %d", c.level, r.OpenCount, c.openCount)
		}
		if r.ChoicePoints != c.choicePoints {
			t.Errorf("level %s: ChoicePoints = %d, want %d", c.level, r.ChoicePoints, c.choicePoints)
		}
		if r.ChoiceCount != ChoicesPerQuestion {
			t.Errorf("level %s: ChoiceCount = %d, want %d", c.level, r.ChoiceCount, ChoicesPerQuestion)
		}
	}
}

func TestRuleFor_UnknownFallsBackToA(t *testing.T) {
	r := RuleFor(Level("Z"))
	if r.ChoicePoints == 0 {
		t.Fatal("unknown level must not yield a zero point value")
	}
	if r != RuleFor(LevelA) {
		t.Errorf("unknown level rule = %+v, want LevelA rule", r)
	}
}

func TestOrdered_OpenFirstThenChoice(t *testing.T) {
	q := &Quiz{
		Level:  LevelB,
		Open:   []Question{{Kind: KindOpen, ID: 1}, {Kind: KindOpen, ID: 2}},
		Choice: []Question{{Kind: KindChoice, ID: 1}, {Kind: KindChoice, ID: 2}},
	}

	ordered := q.Ordered()
	if len(ordered) != 4 {
		t.Fatalf("len = %d, want 4", len(ordered))
	}
	for i, want := range []Kind{KindOpen, KindOpen, KindChoice, KindChoice} {
		if ordered[i].Kind != want {
			t.Errorf("position %d: kind = %s, want %s", i, ordered[i].Kind, want)
		}
	}
	if ordered[0].ID != 1 || ordered[1].ID != 2 {
		t.Error("open questions not in provider order")
	}
}
