package entity

import "testing"

func TestBandForScore_Boundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  Band
	}{
		{10, BandSuccess},
		{8.0, BandSuccess},
		{7.9999, BandWarning},
		{6.0, BandWarning},
		{5.9999, BandDanger},
		{0, BandDanger},
		{-1, BandDanger},
	}
	for _, tc := range cases {
		if got := BandForScore(tc.score); got != tc.want {
			t.Fatalf("BandForScore(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestRoundState_Phase(t *testing.T) {
	w := &Word{ID: 1, Text: "candid"}

	if got := (RoundState{Loading: true}).Phase(); got != PhaseLoading {
		t.Fatalf("loading state: got %v", got)
	}
	if got := (RoundState{Err: "boom"}).Phase(); got != PhaseErrored {
		t.Fatalf("errored state: got %v", got)
	}
	if got := (RoundState{Word: w, Submitting: true}).Phase(); got != PhaseSubmitting {
		t.Fatalf("submitting state: got %v", got)
	}
	if got := (RoundState{Word: w, Submitted: true}).Phase(); got != PhaseSubmitted {
		t.Fatalf("submitted state: got %v", got)
	}
	if got := (RoundState{Word: w, Err: "scoring failed"}).Phase(); got != PhaseReady {
		t.Fatalf("submit error keeps round open: got %v", got)
	}
}
