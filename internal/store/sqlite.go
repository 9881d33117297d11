package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dxforce-site/abTestHeroBanner/internal/abtest"
)

var ErrNotFound = errors.New("not found")

type SQLiteStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS tests (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT UNIQUE NOT NULL,
    state TEXT NOT NULL DEFAULT 'running',
    winner TEXT,
    created_at INTEGER NOT NULL DEFAULT (unixepoch()),
    updated_at INTEGER NOT NULL DEFAULT (unixepoch())
);

CREATE INDEX IF NOT EXISTS idx_tests_state ON tests(state);

CREATE TABLE IF NOT EXISTS events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    test_name TEXT NOT NULL,
    variant TEXT NOT NULL,
    event_type TEXT NOT NULL,
    visitor_id TEXT NOT NULL,
    created_at INTEGER NOT NULL DEFAULT (unixepoch()),
    FOREIGN KEY (test_name) REFERENCES tests(name)
);

CREATE INDEX IF NOT EXISTS idx_events_test ON events(test_name);
CREATE INDEX IF NOT EXISTS idx_events_test_event ON events(test_name, event_type);
CREATE UNIQUE INDEX IF NOT EXISTS idx_events_dedup ON events(test_name, visitor_id, event_type);

CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at INTEGER NOT NULL DEFAULT (unixepoch())
);
`

func Open(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateTest(ctx context.Context, name string) (*Test, error) {
	now := time.Now().Unix()
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO tests (name, state, created_at, updated_at) VALUES (?, 'running', ?, ?)`,
		name, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert test: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return &Test{
		ID:        id,
		Name:      name,
		State:     StateRunning,
		CreatedAt: time.Unix(now, 0),
		UpdatedAt: time.Unix(now, 0),
	}, nil
}

func (s *SQLiteStore) GetTest(ctx context.Context, name string) (*Test, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, state, winner, created_at, updated_at FROM tests WHERE name = ?`, name)

	test, err := scanTest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get test: %w", err)
	}
	return test, nil
}

// GetOrCreateTest registers unknown tests on first contact, so beacons can
// arrive before anyone ran the create command.
func (s *SQLiteStore) GetOrCreateTest(ctx context.Context, name string) (*Test, error) {
	test, err := s.GetTest(ctx, name)
	if err == nil {
		return test, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	now := time.Now().Unix()
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO tests (name, state, created_at, updated_at) VALUES (?, 'running', ?, ?)`,
		name, now, now,
	); err != nil {
		return nil, fmt.Errorf("failed to create test: %w", err)
	}

	return s.GetTest(ctx, name)
}

func (s *SQLiteStore) ListTests(ctx context.Context) ([]*Test, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, state, winner, created_at, updated_at
		 FROM tests ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tests: %w", err)
	}
	defer rows.Close()

	var tests []*Test
	for rows.Next() {
		test, err := scanTest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan test: %w", err)
		}
		tests = append(tests, test)
	}
	return tests, rows.Err()
}

func (s *SQLiteStore) UpdateTestState(ctx context.Context, name string, state TestState, winner *abtest.Variant) error {
	now := time.Now().Unix()

	var result sql.Result
	var err error

	if winner != nil {
		result, err = s.db.ExecContext(ctx,
			`UPDATE tests SET state = ?, winner = ?, updated_at = ? WHERE name = ?`,
			string(state), string(*winner), now, name,
		)
	} else {
		result, err = s.db.ExecContext(ctx,
			`UPDATE tests SET state = ?, updated_at = ? WHERE name = ?`,
			string(state), now, name,
		)
	}
	if err != nil {
		return fmt.Errorf("failed to update test state: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) DeleteTest(ctx context.Context, name string) error {
	// Events first, they reference the test by name.
	if _, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE test_name = ?`, name); err != nil {
		return fmt.Errorf("failed to delete events: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM tests WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete test: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) RecordEvent(ctx context.Context, testName string, variant abtest.Variant, action abtest.Action, visitorID string) (bool, error) {
	now := time.Now().Unix()

	// The unique index on (test_name, visitor_id, event_type) makes repeat
	// events no-ops.
	result, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO events (test_name, variant, event_type, visitor_id, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		testName, string(variant), string(action), visitorID, now,
	)
	if err != nil {
		return false, fmt.Errorf("failed to record event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func (s *SQLiteStore) GetVariantStats(ctx context.Context, testName string) ([]VariantStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			variant,
			COUNT(DISTINCT CASE WHEN event_type = 'View' THEN visitor_id END) AS views,
			COUNT(DISTINCT CASE WHEN event_type = 'Click' THEN visitor_id END) AS clicks
		FROM events
		WHERE test_name = ?
		GROUP BY variant
	`, testName)
	if err != nil {
		return nil, fmt.Errorf("failed to get variant stats: %w", err)
	}
	defer rows.Close()

	byVariant := map[abtest.Variant]VariantStats{}
	for rows.Next() {
		var vs VariantStats
		var variant string
		if err := rows.Scan(&variant, &vs.Views, &vs.Clicks); err != nil {
			return nil, fmt.Errorf("failed to scan stats: %w", err)
		}
		vs.Variant = abtest.Variant(variant)
		byVariant[vs.Variant] = vs
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Always both variants, zero-filled, A first.
	stats := make([]VariantStats, 0, 2)
	for _, v := range []abtest.Variant{abtest.VariantA, abtest.VariantB} {
		vs := byVariant[v]
		vs.Variant = v
		stats = append(stats, vs)
	}
	return stats, nil
}

func (s *SQLiteStore) GetEvents(ctx context.Context, testName string) ([]*Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, test_name, variant, event_type, visitor_id, created_at
		 FROM events WHERE test_name = ? ORDER BY created_at DESC, id DESC`,
		testName,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		var e Event
		var variant, action string
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.TestName, &variant, &action, &e.VisitorID, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		e.Variant = abtest.Variant(variant)
		e.Action = abtest.Action(action)
		e.CreatedAt = time.Unix(createdAt, 0)
		events = append(events, &e)
	}
	return events, rows.Err()
}

func (s *SQLiteStore) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get setting: %w", err)
	}
	return value, nil
}

func (s *SQLiteStore) SetSetting(ctx context.Context, key, value string) error {
	now := time.Now().Unix()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now,
	)
	if err != nil {
		return fmt.Errorf("failed to set setting: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTest(row rowScanner) (*Test, error) {
	var test Test
	var winner sql.NullString
	var createdAt, updatedAt int64

	if err := row.Scan(&test.ID, &test.Name, &test.State, &winner, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	if winner.Valid {
		v := abtest.Variant(winner.String)
		test.Winner = &v
	}
	test.CreatedAt = time.Unix(createdAt, 0)
	test.UpdatedAt = time.Unix(updatedAt, 0)
	return &test, nil
}
