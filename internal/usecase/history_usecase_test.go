package usecase

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/eslsoft/sentnet/internal/entity"
)

func seedHistory() *mockHistoryRepo {
	base := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	return &mockHistoryRepo{entries: []entity.HistoryEntry{
		{Word: "candid", Sentence: "A candid reply.", Score: 5.0, Difficulty: entity.DifficultyBeginner, Timestamp: base},
		{Word: "ephemeral", Sentence: "Fame is ephemeral.", Score: 9.0, Difficulty: entity.DifficultyAdvanced, Timestamp: base.Add(time.Hour)},
		{Word: "pragmatic", Sentence: "Stay pragmatic.", Score: 7.0, Difficulty: entity.DifficultyIntermediate, Timestamp: base.Add(2 * time.Hour)},
	}}
}

func TestHistoryList_DefaultsToNewestFirst(t *testing.T) {
	u := NewHistoryUsecase(seedHistory())

	entries, err := u.List(context.Background(), ListHistoryQuery{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Word != "pragmatic" || entries[2].Word != "candid" {
		t.Fatalf("unexpected order: %v %v %v", entries[0].Word, entries[1].Word, entries[2].Word)
	}
}

func TestHistoryList_FilterAndOrder(t *testing.T) {
	u := NewHistoryUsecase(seedHistory())

	entries, err := u.List(context.Background(), ListHistoryQuery{
		Filter:  `score >= 6.0`,
		OrderBy: "score desc",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Word != "ephemeral" || entries[1].Word != "pragmatic" {
		t.Fatalf("unexpected order: %+v", entries)
	}
}

func TestHistoryList_Limit(t *testing.T) {
	u := NewHistoryUsecase(seedHistory())

	entries, err := u.List(context.Background(), ListHistoryQuery{Limit: 1})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(entries) != 1 || entries[0].Word != "pragmatic" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestHistoryList_InvalidFilterIsUserError(t *testing.T) {
	u := NewHistoryUsecase(seedHistory())

	if _, err := u.List(context.Background(), ListHistoryQuery{Filter: `score @@`}); err == nil {
		t.Fatal("expected filter error")
	}
}

func TestHistoryExportImport_RoundTrip(t *testing.T) {
	source := NewHistoryUsecase(seedHistory())

	var buf bytes.Buffer
	count, err := source.Export(context.Background(), &buf)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 exported entries, got %d", count)
	}
	if lines := strings.Count(buf.String(), "\n"); lines != 3 {
		t.Fatalf("expected 3 JSON lines, got %d", lines)
	}

	destRepo := &mockHistoryRepo{}
	dest := NewHistoryUsecase(destRepo)
	count, err = dest.Import(context.Background(), &buf, false)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if count != 3 || len(destRepo.entries) != 3 {
		t.Fatalf("import mismatch: count=%d stored=%d", count, len(destRepo.entries))
	}
	if destRepo.entries[1].Word != "ephemeral" {
		t.Fatalf("unexpected entry: %+v", destRepo.entries[1])
	}
}

func TestHistoryImport_Replace(t *testing.T) {
	repo := seedHistory()
	u := NewHistoryUsecase(repo)

	input := strings.NewReader(`{"word":"fresh","sentence":"A fresh start.","score":8,"difficulty":"beginner","timestamp":"2026-08-24T12:00:00Z"}` + "\n")
	count, err := u.Import(context.Background(), input, true)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if count != 1 || len(repo.entries) != 1 || repo.entries[0].Word != "fresh" {
		t.Fatalf("replace failed: count=%d entries=%+v", count, repo.entries)
	}
}

func TestHistoryImport_RejectsMalformedLine(t *testing.T) {
	u := NewHistoryUsecase(&mockHistoryRepo{})

	input := strings.NewReader("{not json}\n")
	if _, err := u.Import(context.Background(), input, false); err == nil {
		t.Fatal("expected error for malformed line")
	}
}
