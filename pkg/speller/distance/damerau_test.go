package distance

import "testing"

func TestDamerauLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"same", "same", 0},
		{"ab", "ba", 1},
		{"sut", "sat", 1},
		{"kitten", "sitting", 3},
		{"ca", "abc", 2},
		{"teh", "the", 1},
		{"psychology", "pyschology", 1},
		{"acheive", "achieve", 1},
		{"café", "cafe", 1},
		{"abcdef", "badcfe", 3},
	}

	for _, tt := range tests {
		if got := DamerauLevenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("DamerauLevenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDamerauLevenshteinSymmetric(t *testing.T) {
	words := []string{"", "a", "ab", "ba", "abc", "ca", "kitten", "sitting", "mind", "mnid", "therapy", "theory"}
	for _, a := range words {
		for _, b := range words {
			if ab, ba := DamerauLevenshtein(a, b), DamerauLevenshtein(b, a); ab != ba {
				t.Errorf("dl(%q,%q)=%d but dl(%q,%q)=%d", a, b, ab, b, a, ba)
			}
		}
		if d := DamerauLevenshtein(a, a); d != 0 {
			t.Errorf("dl(%q,%q) = %d, want 0", a, a, d)
		}
	}
}

func TestWithin(t *testing.T) {
	if d, ok := Within("cat", "cats", 3); !ok || d != 1 {
		t.Errorf("Within(cat, cats) = %d, %v", d, ok)
	}
	if _, ok := Within("a", "abcde", 3); ok {
		t.Error("length difference 4 should be rejected")
	}
	if d, ok := Within("abcd", "wxyz", 3); ok || d != 4 {
		t.Errorf("Within(abcd, wxyz) = %d, %v; want 4, false", d, ok)
	}
}
