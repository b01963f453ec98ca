// Package store persists children and their care-event records in a local
// SQLite database. Reads go through a short-lived in-memory cache; any
// write for a child drops that child's cached records so the next read
// sees fresh data.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/nestlog/nestlog/pkg/events"
)

// ErrNotFound is returned when a child or record id does not exist.
var ErrNotFound = errors.New("record not found")

// Store wraps the SQLite database and the record cache.
type Store struct {
	db     *sql.DB
	cache  *recordCache
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*options)

type options struct {
	noCache  bool
	cacheTTL time.Duration
}

// WithoutCache disables the read-through record cache.
func WithoutCache() Option {
	return func(o *options) { o.noCache = true }
}

// WithCacheTTL overrides the default five-minute record cache TTL.
func WithCacheTTL(d time.Duration) Option {
	return func(o *options) { o.cacheTTL = d }
}

// DefaultPath returns the default database location.
func DefaultPath() string {
	if env := os.Getenv("NESTLOG_DB"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".nestlog", "nestlog.db")
}

// Open opens (creating if needed) the database at path and runs migrations.
func Open(path string, logger *slog.Logger, opts ...Option) (*Store, error) {
	o := options{cacheTTL: 5 * time.Minute}
	for _, opt := range opts {
		opt(&o)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{db: db, logger: logger}
	if !o.noCache {
		s.cache = newRecordCache(o.cacheTTL)
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	logger.Debug("store opened", "path", path, "cache", !o.noCache)
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS children (
		id           TEXT PRIMARY KEY,
		first_name   TEXT NOT NULL,
		last_name    TEXT NOT NULL,
		dob_ms       INTEGER NOT NULL,
		sex          TEXT NOT NULL,
		birth_pounds INTEGER,
		birth_ounces INTEGER
	);

	CREATE TABLE IF NOT EXISTS sleep (
		doc_id   TEXT PRIMARY KEY,
		child_id TEXT NOT NULL REFERENCES children(id),
		start_ms INTEGER NOT NULL,
		end_ms   INTEGER NOT NULL,
		quality  INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS feed (
		doc_id       TEXT PRIMARY KEY,
		child_id     TEXT NOT NULL REFERENCES children(id),
		date_time_ms INTEGER NOT NULL,
		type         TEXT NOT NULL,
		amount       REAL NOT NULL DEFAULT 0,
		duration     INTEGER NOT NULL DEFAULT 0,
		side         TEXT NOT NULL DEFAULT '',
		description  TEXT NOT NULL DEFAULT '',
		notes        TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS diaper (
		doc_id          TEXT PRIMARY KEY,
		child_id        TEXT NOT NULL REFERENCES children(id),
		date_time_ms    INTEGER NOT NULL,
		type            TEXT NOT NULL,
		pee_amount      TEXT NOT NULL DEFAULT '',
		poo_amount      TEXT NOT NULL DEFAULT '',
		poo_color       TEXT NOT NULL DEFAULT '',
		poo_consistency TEXT NOT NULL DEFAULT '',
		has_rash        INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS activity (
		doc_id       TEXT PRIMARY KEY,
		child_id     TEXT NOT NULL REFERENCES children(id),
		date_time_ms INTEGER NOT NULL,
		type         TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS milestone (
		doc_id       TEXT PRIMARY KEY,
		child_id     TEXT NOT NULL REFERENCES children(id),
		date_time_ms INTEGER NOT NULL,
		type         TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS weight (
		doc_id       TEXT PRIMARY KEY,
		child_id     TEXT NOT NULL REFERENCES children(id),
		date_time_ms INTEGER NOT NULL,
		pounds       INTEGER NOT NULL,
		ounces       INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sleep_child ON sleep(child_id);
	CREATE INDEX IF NOT EXISTS idx_feed_child ON feed(child_id);
	CREATE INDEX IF NOT EXISTS idx_diaper_child ON diaper(child_id);
	CREATE INDEX IF NOT EXISTS idx_activity_child ON activity(child_id);
	CREATE INDEX IF NOT EXISTS idx_milestone_child ON milestone(child_id);
	CREATE INDEX IF NOT EXISTS idx_weight_child ON weight(child_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Timestamps are stored as Unix milliseconds so values round-trip
// identically regardless of the machine's timezone or the driver's
// datetime formatting.
func timeToMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func timeFromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

func (s *Store) invalidate(childID string) {
	if s.cache != nil {
		s.cache.invalidateChild(childID)
	}
}

// AddChild creates a child profile. When a birth weight is present, the
// first weight record is inserted alongside, dated to the birth date.
func (s *Store) AddChild(ctx context.Context, c events.Child) (events.Child, error) {
	c.ID = uuid.NewString()

	var bp, bo sql.NullInt64
	if c.Birth != nil {
		bp = sql.NullInt64{Int64: int64(c.Birth.Pounds), Valid: true}
		bo = sql.NullInt64{Int64: int64(c.Birth.Ounces), Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO children (id, first_name, last_name, dob_ms, sex, birth_pounds, birth_ounces)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.FirstName, c.LastName, timeToMillis(c.DOB), string(c.Sex), bp, bo)
	if err != nil {
		return events.Child{}, fmt.Errorf("insert child: %w", err)
	}

	if c.Birth != nil {
		if _, err := s.AddWeight(ctx, events.Weight{
			ChildID:  c.ID,
			DateTime: c.DOB,
			Pounds:   c.Birth.Pounds,
			Ounces:   c.Birth.Ounces,
		}); err != nil {
			return events.Child{}, fmt.Errorf("insert birth weight: %w", err)
		}
	}

	s.logger.Info("child added", "child", c.ID, "name", c.FirstName)
	return c, nil
}

// Children lists all child profiles.
func (s *Store) Children(ctx context.Context) ([]events.Child, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, first_name, last_name, dob_ms, sex, birth_pounds, birth_ounces
		 FROM children ORDER BY first_name, last_name`)
	if err != nil {
		return nil, fmt.Errorf("query children: %w", err)
	}
	defer rows.Close()

	var out []events.Child
	for rows.Next() {
		c, err := scanChild(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Child fetches one profile by id.
func (s *Store) Child(ctx context.Context, id string) (events.Child, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, dob_ms, sex, birth_pounds, birth_ounces
		 FROM children WHERE id = ?`, id)
	c, err := scanChild(row)
	if errors.Is(err, sql.ErrNoRows) {
		return events.Child{}, ErrNotFound
	}
	return c, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanChild(row scanner) (events.Child, error) {
	var c events.Child
	var dobMS int64
	var sex string
	var bp, bo sql.NullInt64
	if err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &dobMS, &sex, &bp, &bo); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return events.Child{}, err
		}
		return events.Child{}, fmt.Errorf("scan child: %w", err)
	}
	c.DOB = timeFromMillis(dobMS)
	c.Sex = events.Sex(sex)
	if bp.Valid {
		c.Birth = &events.WeightValue{Pounds: int(bp.Int64), Ounces: int(bo.Int64)}
	}
	return c, nil
}

// DeleteChild removes a profile and every record logged for it.
func (s *Store) DeleteChild(ctx context.Context, id string) error {
	for _, table := range []string{"sleep", "feed", "diaper", "activity", "milestone", "weight"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE child_id = ?", id); err != nil {
			return fmt.Errorf("delete %s records: %w", table, err)
		}
	}
	res, err := s.db.ExecContext(ctx, "DELETE FROM children WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete child: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	s.invalidate(id)
	s.logger.Info("child removed", "child", id)
	return nil
}

// exec runs a write statement and reports ErrNotFound when nothing matched.
func (s *Store) exec(ctx context.Context, childID, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	s.invalidate(childID)
	return nil
}

// buildUpdate assembles a partial UPDATE from the non-empty set clauses.
func buildUpdate(table string, set []string, args []any, childID, docID string) (string, []any) {
	query := "UPDATE " + table + " SET " + strings.Join(set, ", ") +
		" WHERE child_id = ? AND doc_id = ?"
	return query, append(args, childID, docID)
}
