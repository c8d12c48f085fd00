// Package repository implements the local persistence adapters.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	_ "github.com/lib/pq"           // ensure postgres driver available
	_ "github.com/mattn/go-sqlite3" // ensure sqlite driver available
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/sentnet/internal/entity"
	repo "github.com/eslsoft/sentnet/internal/repository"
)

const schemaDDL = `CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// HistoryRepository keeps the attempt log as one JSON-encoded list under a
// fixed key in a kv table. Every append is a read-modify-write of the whole
// list inside a single transaction; cross-process writers are last-wins.
type HistoryRepository struct {
	db     *sql.DB
	driver string
	logger *logrus.Logger
}

var _ repo.HistoryRepository = (*HistoryRepository)(nil)

// Open connects to the backing store and ensures the kv table exists.
// Supported drivers: sqlite3 (DSN is a file path) and postgres.
func Open(driver, dsn string, logger *logrus.Logger) (*HistoryRepository, error) {
	driver = strings.TrimSpace(strings.ToLower(driver))
	switch driver {
	case "sqlite3", "postgres":
	case "":
		return nil, errors.New("history: driver is required")
	default:
		return nil, fmt.Errorf("history: unsupported driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("history: open %s store: %w", driver, err)
	}
	if _, err := db.Exec(schemaDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: ensure schema: %w", err)
	}

	return &HistoryRepository{db: db, driver: driver, logger: logger}, nil
}

// NewHistoryRepository wraps an existing connection (tests, embedded use).
func NewHistoryRepository(db *sql.DB, driver string, logger *logrus.Logger) *HistoryRepository {
	return &HistoryRepository{db: db, driver: driver, logger: logger}
}

// Close releases the underlying connection.
func (r *HistoryRepository) Close() error {
	return r.db.Close()
}

// rebind rewrites ? placeholders for the postgres driver.
func (r *HistoryRepository) rebind(query string) string {
	if r.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}

// Append adds one entry to the end of the persisted log.
func (r *HistoryRepository) Append(ctx context.Context, entry entity.HistoryEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("history: begin append: %w", err)
	}
	defer tx.Rollback()

	entries := r.readLog(ctx, tx)
	entries = append(entries, entry)

	if err := r.writeLog(ctx, tx, entries); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("history: commit append: %w", err)
	}
	return nil
}

// List returns the full log in insertion order.
func (r *HistoryRepository) List(ctx context.Context) ([]entity.HistoryEntry, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: r.driver == "postgres"})
	if err != nil {
		return nil, fmt.Errorf("history: begin list: %w", err)
	}
	defer tx.Rollback()

	return r.readLog(ctx, tx), nil
}

// Replace overwrites the whole log.
func (r *HistoryRepository) Replace(ctx context.Context, entries []entity.HistoryEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("history: begin replace: %w", err)
	}
	defer tx.Rollback()

	if err := r.writeLog(ctx, tx, entries); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("history: commit replace: %w", err)
	}
	return nil
}

// readLog loads and decodes the stored list. A missing or corrupted value
// reads as an empty log.
func (r *HistoryRepository) readLog(ctx context.Context, tx *sql.Tx) []entity.HistoryEntry {
	var raw string
	err := tx.QueryRowContext(ctx, r.rebind(`SELECT value FROM kv WHERE key = ?`), entity.HistoryKey).Scan(&raw)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			r.logger.Warnf("history: read log: %v", err)
		}
		return nil
	}

	var entries []entity.HistoryEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		r.logger.Warnf("history: corrupted log value, treating as empty: %v", err)
		return nil
	}
	return entries
}

func (r *HistoryRepository) writeLog(ctx context.Context, tx *sql.Tx, entries []entity.HistoryEntry) error {
	if entries == nil {
		entries = []entity.HistoryEntry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("history: encode log: %w", err)
	}

	_, err = tx.ExecContext(ctx, r.rebind(
		`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT (key) DO UPDATE SET value = excluded.value`),
		entity.HistoryKey, string(raw))
	if err != nil {
		return fmt.Errorf("history: write log: %w", err)
	}
	return nil
}
