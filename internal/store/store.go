package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/teniciavanaalten/simlog/internal/records"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store owns the SQLite database holding the SimLog collections and the
// LLM request log.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for seed data and write timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and runs auto-migration.
func Open(dsn string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	s := &Store{
		db:  db,
		drv: entsql.OpenDB(dialect.SQLite, db),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := migrate(context.Background(), s.drv); err != nil {
		s.drv.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return s, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// Sessions returns the session log collection.
func (s *Store) Sessions() *Collection[records.Session] {
	return newSessions(s.drv, s.now)
}

// Issues returns the issue report collection.
func (s *Store) Issues() *Collection[records.Issue] {
	return newIssues(s.drv, s.now)
}

// Maintenance returns the maintenance log collection.
func (s *Store) Maintenance() *Collection[records.Maintenance] {
	return newMaintenance(s.drv, s.now)
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{drv: s.drv, now: s.now}
}

// Reset removes every stored collection so the next reads return seed data.
// The LLM request log is kept.
func (s *Store) Reset(ctx context.Context) error {
	query, args := entsql.Dialect(dialect.SQLite).Delete(collectionsTable).Query()
	if err := s.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("reset collections: %w", err)
	}
	return nil
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. SIMLOG_DB environment variable
// 2. $XDG_DATA_HOME/simlog/simlog.db
// 3. ~/.local/share/simlog/simlog.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("SIMLOG_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "simlog", "simlog.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
