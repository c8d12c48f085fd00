package repository

import (
	"context"

	"github.com/eslsoft/sentnet/internal/entity"
)

// HistoryRepository persists the append-only attempt log.
type HistoryRepository interface {
	// Append adds one entry to the end of the log.
	Append(ctx context.Context, entry entity.HistoryEntry) error
	// List returns the full log in insertion order. A missing or corrupted
	// log reads as empty.
	List(ctx context.Context) ([]entity.HistoryEntry, error)
	// Replace overwrites the whole log. Used by backup restore only.
	Replace(ctx context.Context, entries []entity.HistoryEntry) error
}
