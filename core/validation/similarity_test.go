package validation

import "testing"

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "both empty", a: "", b: "", want: 1},
		{name: "identical", a: "Computer Science", b: "Computer Science", want: 1},
		{name: "identical modulo case", a: "computer science", b: "Computer Science", want: 1},
		{name: "completely different", a: "abc", b: "xyz", want: 0},
		{name: "one empty", a: "abcd", b: "", want: 0},
		{name: "one deletion", a: "Computer Scienc", b: "Computer Science", want: 15.0 / 16},
		{name: "one substitution", a: "Mathematics", b: "Mathematacs", want: 10.0 / 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Similarity(tt.a, tt.b); !almostEqual(got, tt.want) {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	pairs := [][2]string{
		{"Computer Science", "Computer Scienc"},
		{"Physics", "physic"},
		{"Electrical Engineering", "Electronics Engineering"},
	}
	for _, p := range pairs {
		if ab, ba := Similarity(p[0], p[1]), Similarity(p[1], p[0]); !almostEqual(ab, ba) {
			t.Errorf("Similarity(%q, %q) = %v but reversed = %v", p[0], p[1], ab, ba)
		}
	}
}

func TestSimilarityAboveSuggestionThreshold(t *testing.T) {
	// the canonical misspelling must survive the default threshold
	if got := Similarity("Computer Science", "Computer Scienc"); got <= 0.6 {
		t.Errorf("Similarity() = %v, want > 0.6", got)
	}
}

func almostEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-9
}
