// Package store persists project state. SQLite (.cutline/project.sqlite)
// is the source of truth; a legacy project.json is imported once when the
// SQLite state is empty. Loaded snapshots always pass through sanitization,
// so a corrupted or hand-edited project file is coerced into a valid
// configuration rather than rejected.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"

	"cutline/internal/model"
	"cutline/internal/validate"
)

const (
	projectFileName = "project.json"
	sqliteFileName  = "project.sqlite"

	stateVersion = 1
)

type Store struct {
	Dir string
}

// DiscoverDir walks up from start looking for a .cutline directory.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".cutline")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir returns the discovered project dir, or .cutline under the
// working directory when none exists yet.
func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, ".cutline"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) projectPath() string {
	return filepath.Join(s.Dir, projectFileName)
}

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

// Exists reports whether a persisted project is present (either backend).
func (s Store) Exists() bool {
	if _, err := os.Stat(s.sqlitePath()); err == nil {
		return true
	}
	if _, err := os.Stat(s.projectPath()); err == nil {
		return true
	}
	return false
}

// Load returns the sanitized project snapshot. If the SQLite state is empty
// but a legacy project.json exists, it is imported once and then loaded
// from SQLite.
func (s Store) Load(ctx context.Context) (model.Snapshot, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.Snapshot{}, err
	}
	defer db.Close()

	hasState, err := sqliteHasAnyTracks(ctx, db)
	if err != nil {
		return model.Snapshot{}, err
	}
	if !hasState {
		if b, err := os.ReadFile(s.projectPath()); err == nil && len(b) > 0 {
			var legacy model.Snapshot
			if err := json.Unmarshal(b, &legacy); err != nil {
				return model.Snapshot{}, fmt.Errorf("parse %s: %w", projectFileName, err)
			}
			if err := s.saveTo(ctx, db, validate.SanitizeSnapshot(legacy)); err != nil {
				return model.Snapshot{}, err
			}
		}
	}

	snap, err := loadFromSQLite(ctx, db)
	if err != nil {
		return model.Snapshot{}, err
	}
	return validate.SanitizeSnapshot(snap), nil
}

// Save writes the snapshot transactionally, replace-all. Playhead and
// selection are never part of a snapshot, so they are never persisted.
func (s Store) Save(ctx context.Context, snap model.Snapshot) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	return s.saveTo(ctx, db, snap)
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS state_meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS tracks (
			id TEXT PRIMARY KEY,
			ord INTEGER NOT NULL,
			kind TEXT NOT NULL,
			json TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS items (
			id TEXT PRIMARY KEY,
			track_id TEXT NOT NULL,
			start_time REAL NOT NULL,
			json TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_items_track ON items(track_id);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func sqliteHasAnyTracks(ctx context.Context, db *sql.DB) (bool, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(1) FROM tracks`).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s Store) saveTo(ctx context.Context, db *sql.DB, snap model.Snapshot) error {
	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	meta := map[string]string{
		"version":  strconv.Itoa(stateVersion),
		"duration": strconv.FormatFloat(snap.Duration, 'f', -1, 64),
		"zoom":     strconv.FormatFloat(snap.Zoom, 'f', -1, 64),
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES(?, ?)`, k, v); err != nil {
			return err
		}
	}

	// Replace-all strategy: simple and safe at project scale.
	for _, table := range []string{"tracks", "items"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return err
		}
	}
	for _, tr := range snap.Tracks {
		b, err := json.Marshal(tr)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tracks(id, ord, kind, json) VALUES(?, ?, ?, ?)`,
			tr.ID, tr.Order, string(tr.Kind), string(b)); err != nil {
			return err
		}
	}
	for _, it := range snap.Items {
		b, err := json.Marshal(it)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO items(id, track_id, start_time, json) VALUES(?, ?, ?, ?)`,
			it.ID, it.TrackID, it.StartTime, string(b)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func loadFromSQLite(ctx context.Context, db *sql.DB) (model.Snapshot, error) {
	var snap model.Snapshot

	rows, err := db.QueryContext(ctx, `SELECT json FROM tracks ORDER BY ord ASC`)
	if err != nil {
		return snap, err
	}
	defer rows.Close()
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return snap, err
		}
		var tr model.Track
		if err := json.Unmarshal([]byte(raw), &tr); err != nil {
			return snap, err
		}
		snap.Tracks = append(snap.Tracks, tr)
	}
	if err := rows.Err(); err != nil {
		return snap, err
	}

	itemRows, err := db.QueryContext(ctx, `SELECT json FROM items ORDER BY start_time ASC, id ASC`)
	if err != nil {
		return snap, err
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var raw string
		if err := itemRows.Scan(&raw); err != nil {
			return snap, err
		}
		var it model.TimelineItem
		if err := json.Unmarshal([]byte(raw), &it); err != nil {
			return snap, err
		}
		snap.Items = append(snap.Items, it)
	}
	if err := itemRows.Err(); err != nil {
		return snap, err
	}

	snap.Duration = metaFloat(ctx, db, "duration", model.MinTimelineDuration)
	snap.Zoom = metaFloat(ctx, db, "zoom", model.DefaultZoom)
	return snap, nil
}

func metaFloat(ctx context.Context, db *sql.DB, key string, fallback float64) float64 {
	var raw string
	if err := db.QueryRowContext(ctx, `SELECT v FROM state_meta WHERE k = ?`, key).Scan(&raw); err != nil {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}
