package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"csweep/internal/domain"
)

// HistoryEntry is one recorded sweep run
type HistoryEntry struct {
	RunID          string
	Timestamp      time.Time
	TotalProjects  int
	PassedProjects int
	FailedProjects int
	Duration       float64 // seconds
	Toolchain      string
	FailedProject  string // dir of the first failing project, "" when passed
}

// HistoryStore records sweep runs in a SQL database. The default backend is
// an embedded sqlite file next to the JSON output; a mysql DSN can point at
// a shared server instead.
type HistoryStore struct {
	db     *sql.DB
	driver string
}

// OpenHistory opens the history database and ensures its schema
func OpenHistory(driver, dsn string) (*HistoryStore, error) {
	if driver == "sqlite" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	store := &HistoryStore{db: db, driver: driver}
	if err := store.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database
func (h *HistoryStore) Close() error {
	return h.db.Close()
}

func (h *HistoryStore) ensureSchema() error {
	idCol := "id INTEGER PRIMARY KEY AUTOINCREMENT"
	if h.driver == "mysql" {
		idCol = "id BIGINT PRIMARY KEY AUTO_INCREMENT"
	}
	_, err := h.db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS sweep_runs (
			%s,
			run_id VARCHAR(64) NOT NULL,
			timestamp VARCHAR(40) NOT NULL,
			total_projects INTEGER NOT NULL,
			passed_projects INTEGER NOT NULL,
			failed_projects INTEGER NOT NULL,
			duration_seconds DOUBLE PRECISION NOT NULL,
			toolchain VARCHAR(64) NOT NULL,
			failed_project TEXT NOT NULL
		)
	`, idCol))
	if err != nil {
		return fmt.Errorf("ensure history schema: %w", err)
	}
	return nil
}

// Record stores one sweep run
func (h *HistoryStore) Record(ctx context.Context, meta domain.SweepMeta, failedProject string) error {
	_, err := h.db.ExecContext(ctx, `
		INSERT INTO sweep_runs (
			run_id, timestamp, total_projects, passed_projects,
			failed_projects, duration_seconds, toolchain, failed_project
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		meta.RunID,
		meta.Timestamp,
		meta.TotalProjects,
		meta.PassedProjects,
		meta.FailedProjects,
		meta.DurationSeconds,
		meta.Toolchain,
		failedProject,
	)
	if err != nil {
		return fmt.Errorf("record sweep run: %w", err)
	}
	return nil
}

// List returns the most recent sweep runs, newest first
func (h *HistoryStore) List(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := h.db.QueryContext(ctx, `
		SELECT run_id, timestamp, total_projects, passed_projects,
			failed_projects, duration_seconds, toolchain, failed_project
		FROM sweep_runs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sweep runs: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var ts string
		if err := rows.Scan(&e.RunID, &ts, &e.TotalProjects, &e.PassedProjects,
			&e.FailedProjects, &e.Duration, &e.Toolchain, &e.FailedProject); err != nil {
			return nil, fmt.Errorf("scan sweep run: %w", err)
		}
		if parsed, perr := time.Parse(time.RFC3339, ts); perr == nil {
			e.Timestamp = parsed
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
