package entity

import "testing"

func TestParseDifficulty(t *testing.T) {
	cases := map[string]Difficulty{
		"beginner":      DifficultyBeginner,
		" Intermediate": DifficultyIntermediate,
		"ADVANCED":      DifficultyAdvanced,
		"expert":        DifficultyUnspecified,
		"":              DifficultyUnspecified,
	}
	for in, want := range cases {
		if got := ParseDifficulty(in); got != want {
			t.Fatalf("ParseDifficulty(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeDifficulty_DefaultsToBeginner(t *testing.T) {
	if got := NormalizeDifficulty(DifficultyUnspecified); got != DifficultyBeginner {
		t.Fatalf("got %q", got)
	}
	if got := NormalizeDifficulty(DifficultyAdvanced); got != DifficultyAdvanced {
		t.Fatalf("got %q", got)
	}
}
