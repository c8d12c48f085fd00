package filterexpr

import (
	"testing"
	"time"
)

func sample() Entry {
	return Entry{
		Word:        "ephemeral",
		Sentence:    "Fame is ephemeral.",
		Score:       8.5,
		Difficulty:  "advanced",
		SubmittedAt: time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC),
	}
}

func TestCompile_BlankMatchesAll(t *testing.T) {
	pred, err := Compile("   ")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ok, err := pred(sample())
	if err != nil || !ok {
		t.Fatalf("blank filter must match: ok=%v err=%v", ok, err)
	}
}

func TestCompile_EvaluatesFields(t *testing.T) {
	cases := []struct {
		filter string
		want   bool
	}{
		{`score >= 8.0`, true},
		{`score >= 9.0`, false},
		{`difficulty == "advanced"`, true},
		{`word.startsWith("eph")`, true},
		{`sentence.contains("Fame") && score >= 6.0`, true},
		{`submitted_at > timestamp("2026-01-01T00:00:00Z")`, true},
	}
	for _, tc := range cases {
		pred, err := Compile(tc.filter)
		if err != nil {
			t.Fatalf("%s: compile: %v", tc.filter, err)
		}
		got, err := pred(sample())
		if err != nil {
			t.Fatalf("%s: eval: %v", tc.filter, err)
		}
		if got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.filter, got, tc.want)
		}
	}
}

func TestCompile_RejectsInvalidExpressions(t *testing.T) {
	if _, err := Compile(`score >=`); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := Compile(`unknown_field == 1`); err == nil {
		t.Fatal("expected unknown variable error")
	}
	if _, err := Compile(`score + 1.0`); err == nil {
		t.Fatal("expected non-boolean filter error")
	}
}

func TestParseOrderBy(t *testing.T) {
	order, err := ParseOrderBy("")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if order != DefaultOrder {
		t.Fatalf("blank order_by = %+v, want default", order)
	}

	order, err = ParseOrderBy("score desc")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if order.Key != "score" || !order.Desc {
		t.Fatalf("unexpected order: %+v", order)
	}

	order, err = ParseOrderBy("Word ASC")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if order.Key != "word" || order.Desc {
		t.Fatalf("unexpected order: %+v", order)
	}

	if _, err := ParseOrderBy("rank desc"); err == nil {
		t.Fatal("expected unknown key error")
	}
	if _, err := ParseOrderBy("score sideways"); err == nil {
		t.Fatal("expected invalid direction error")
	}
}
