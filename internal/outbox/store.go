package outbox

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// dbFile is the database file name inside Config.DataDir.
const dbFile = "decisions.db"

// timeLayout is the SQLite-friendly timestamp layout used for created_at.
const timeLayout = "2006-01-02 15:04:05"

// Config holds store configuration.
type Config struct {
	DataDir       string
	MaxRecentRows int
}

// DefaultConfig returns the store configuration rooted at dataDir.
func DefaultConfig(dataDir string) Config {
	return Config{
		DataDir:       dataDir,
		MaxRecentRows: 20,
	}
}

// Stats holds aggregate classification counts.
type Stats struct {
	Total     int            `json:"total"`
	ByBand    map[string]int `json:"by_band"`
	ByPattern map[string]int `json:"by_primary_pattern"`
	ByLocale  map[string]int `json:"by_locale"`
	Last      string         `json:"last_classified_at,omitempty"`
}

// Store is a Writer backed by SQLite.
type Store struct {
	db  *sql.DB
	cfg Config
}

// New opens (or creates) the database under cfg.DataDir and migrates it.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("outbox: create data dir: %w", err)
	}
	if cfg.MaxRecentRows <= 0 {
		cfg.MaxRecentRows = DefaultConfig(cfg.DataDir).MaxRecentRows
	}

	db, err := openDB("sqlite", filepath.Join(cfg.DataDir, dbFile))
	if err != nil {
		return nil, fmt.Errorf("outbox: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("outbox: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, cfg: cfg}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("outbox: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS classifications (
			id              TEXT PRIMARY KEY,
			user_id         TEXT,
			locale          TEXT NOT NULL,
			hint_band       TEXT NOT NULL,
			hint_intensity  REAL NOT NULL,
			primary_pattern TEXT,
			artifact        TEXT NOT NULL,
			result          TEXT NOT NULL,
			created_at      TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_cls_created ON classifications(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_cls_band    ON classifications(hint_band);
		CREATE INDEX IF NOT EXISTS idx_cls_user    ON classifications(user_id);
	`)
	return err
}

// Save inserts r. A missing ID or CreatedAt is filled in.
func (s *Store) Save(ctx context.Context, r Record) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt == "" {
		r.CreatedAt = timeNow().UTC().Format(timeLayout)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO classifications
			(id, user_id, locale, hint_band, hint_intensity, primary_pattern, artifact, result, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, nullable(r.UserID), r.Locale, r.HintBand, r.HintIntensity,
		nullable(r.PrimaryPattern), string(r.Artifact), string(r.Result), r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("outbox: insert classification %s: %w", r.ID, err)
	}
	return nil
}

// Recent returns the newest records first. A non-empty band filters by
// hint band; limit <= 0 uses the configured maximum.
func (s *Store) Recent(ctx context.Context, band string, limit int) ([]Record, error) {
	if limit <= 0 || limit > s.cfg.MaxRecentRows {
		limit = s.cfg.MaxRecentRows
	}

	query := `
		SELECT id, COALESCE(user_id, ''), locale, hint_band, hint_intensity,
		       COALESCE(primary_pattern, ''), artifact, result, created_at
		FROM classifications`
	args := []any{}
	if band != "" {
		query += " WHERE hint_band = ?"
		args = append(args, band)
	}
	query += " ORDER BY created_at DESC, rowid DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("outbox: query recent: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Record
	for rows.Next() {
		var (
			r                Record
			artifact, result string
		)
		if err := rows.Scan(
			&r.ID, &r.UserID, &r.Locale, &r.HintBand, &r.HintIntensity,
			&r.PrimaryPattern, &artifact, &result, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("outbox: scan record: %w", err)
		}
		r.Artifact = []byte(artifact)
		r.Result = []byte(result)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Stats aggregates counts per band, primary pattern and locale.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		ByBand:    map[string]int{},
		ByPattern: map[string]int{},
		ByLocale:  map[string]int{},
	}

	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(MAX(created_at), '') FROM classifications",
	).Scan(&stats.Total, &stats.Last); err != nil {
		return nil, fmt.Errorf("outbox: count classifications: %w", err)
	}

	groups := []struct {
		column string
		into   map[string]int
	}{
		{"hint_band", stats.ByBand},
		{"COALESCE(primary_pattern, 'none')", stats.ByPattern},
		{"locale", stats.ByLocale},
	}
	for _, g := range groups {
		if err := s.countBy(ctx, g.column, g.into); err != nil {
			return nil, err
		}
	}
	return stats, nil
}

func (s *Store) countBy(ctx context.Context, column string, into map[string]int) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+column+" AS k, COUNT(*) FROM classifications GROUP BY k")
	if err != nil {
		return fmt.Errorf("outbox: group by %s: %w", column, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			k string
			n int
		)
		if err := rows.Scan(&k, &n); err != nil {
			return fmt.Errorf("outbox: scan %s count: %w", column, err)
		}
		into[k] = n
	}
	return rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
