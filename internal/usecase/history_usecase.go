package usecase

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/samber/lo"

	"github.com/eslsoft/sentnet/internal/entity"
	"github.com/eslsoft/sentnet/internal/repository"
	"github.com/eslsoft/sentnet/pkg/filterexpr"
)

// ListHistoryQuery narrows and orders a history listing.
type ListHistoryQuery struct {
	// Filter is a CEL expression over word, sentence, score, difficulty,
	// submitted_at. Blank matches everything.
	Filter  string
	OrderBy string
	Limit   int
}

// HistoryUsecase exposes read and backup operations over the attempt log.
type HistoryUsecase interface {
	List(ctx context.Context, query ListHistoryQuery) ([]entity.HistoryEntry, error)
	// Export writes the log as JSON lines.
	Export(ctx context.Context, w io.Writer) (int, error)
	// Import reads JSON lines and appends them to the log, or replaces the
	// log entirely when replace is set.
	Import(ctx context.Context, r io.Reader, replace bool) (int, error)
}

type historyUsecase struct {
	repo repository.HistoryRepository
}

func NewHistoryUsecase(repo repository.HistoryRepository) HistoryUsecase {
	return &historyUsecase{repo: repo}
}

func (u *historyUsecase) List(ctx context.Context, query ListHistoryQuery) ([]entity.HistoryEntry, error) {
	pred, err := filterexpr.Compile(query.Filter)
	if err != nil {
		return nil, err
	}
	order, err := filterexpr.ParseOrderBy(query.OrderBy)
	if err != nil {
		return nil, err
	}

	entries, err := u.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	var evalErr error
	entries = lo.Filter(entries, func(e entity.HistoryEntry, _ int) bool {
		if evalErr != nil {
			return false
		}
		matched, err := pred(filterexpr.Entry{
			Word:        e.Word,
			Sentence:    e.Sentence,
			Score:       e.Score,
			Difficulty:  e.Difficulty.Code(),
			SubmittedAt: e.Timestamp,
		})
		if err != nil {
			evalErr = err
			return false
		}
		return matched
	})
	if evalErr != nil {
		return nil, evalErr
	}

	sortEntries(entries, order)

	if query.Limit > 0 && len(entries) > query.Limit {
		entries = entries[:query.Limit]
	}
	return entries, nil
}

func sortEntries(entries []entity.HistoryEntry, order filterexpr.Order) {
	less := func(a, b entity.HistoryEntry) bool {
		switch order.Key {
		case "score":
			return a.Score < b.Score
		case "word":
			return a.Word < b.Word
		case "difficulty":
			return difficultyRank(a.Difficulty) < difficultyRank(b.Difficulty)
		default:
			return a.Timestamp.Before(b.Timestamp)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if order.Desc {
			return less(entries[j], entries[i])
		}
		return less(entries[i], entries[j])
	})
}

// difficultyRank orders tiers semantically rather than lexically.
func difficultyRank(d entity.Difficulty) int {
	switch d {
	case entity.DifficultyBeginner:
		return 1
	case entity.DifficultyIntermediate:
		return 2
	case entity.DifficultyAdvanced:
		return 3
	default:
		return 0
	}
}

func (u *historyUsecase) Export(ctx context.Context, w io.Writer) (int, error) {
	entries, err := u.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("export history: %w", err)
	}

	enc := json.NewEncoder(w)
	for i, entry := range entries {
		if err := enc.Encode(entry); err != nil {
			return i, fmt.Errorf("export history: encode entry %d: %w", i, err)
		}
	}
	return len(entries), nil
}

func (u *historyUsecase) Import(ctx context.Context, r io.Reader, replace bool) (int, error) {
	var incoming []entity.HistoryEntry

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var entry entity.HistoryEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			return 0, fmt.Errorf("import history: line %d: %w", line, err)
		}
		incoming = append(incoming, entry)
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("import history: read: %w", err)
	}

	if replace {
		if err := u.repo.Replace(ctx, incoming); err != nil {
			return 0, err
		}
		return len(incoming), nil
	}

	existing, err := u.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("import history: %w", err)
	}
	if err := u.repo.Replace(ctx, append(existing, incoming...)); err != nil {
		return 0, err
	}
	return len(incoming), nil
}
