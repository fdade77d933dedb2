package category

import "testing"

func TestAll(t *testing.T) {
	all := All()
	if len(all) != 5 {
		t.Fatalf("expected 5 categories, got %d", len(all))
	}
	seen := map[Category]bool{}
	for _, c := range all {
		if seen[c] {
			t.Errorf("duplicate category %q", c)
		}
		seen[c] = true
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{"security", Security, false},
		{"  Bug-Fix ", BugFix, false},
		{"LOGIC", Logic, false},
		{"networking", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDifficultyValue(t *testing.T) {
	tests := []struct {
		d    Difficulty
		want float64
	}{
		{Easy, 1},
		{Medium, 2},
		{Hard, 3},
	}
	for _, tt := range tests {
		if got := tt.d.Value(); got != tt.want {
			t.Errorf("%s.Value() = %v, want %v", tt.d, got, tt.want)
		}
	}
}

func TestDifficultyStepsClamp(t *testing.T) {
	if Easy.Harder() != Medium || Medium.Harder() != Hard || Hard.Harder() != Hard {
		t.Error("Harder does not escalate and clamp at hard")
	}
	if Hard.Easier() != Medium || Medium.Easier() != Easy || Easy.Easier() != Easy {
		t.Error("Easier does not de-escalate and clamp at easy")
	}
}

func TestBaselineDifficulty(t *testing.T) {
	tests := []struct {
		l    Level
		want Difficulty
	}{
		{Junior, Easy},
		{Mid, Medium},
		{Senior, Hard},
		{"principal", Medium},
	}
	for _, tt := range tests {
		if got := tt.l.BaselineDifficulty(); got != tt.want {
			t.Errorf("Level(%q).BaselineDifficulty() = %q, want %q", tt.l, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	if l, err := ParseLevel("Senior"); err != nil || l != Senior {
		t.Errorf("ParseLevel(Senior) = %q, %v", l, err)
	}
	if _, err := ParseLevel("staff"); err == nil {
		t.Error("expected error for unknown level")
	}
}
