package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"nickandperla.net/regcalc/internal/expr"
)

// Current schema version
const SchemaVersion = "1"

// SQLite is a SQLite-backed definition journal. Every Record call appends
// a row; nothing is ever read back into the register table.
type SQLite struct {
	mu      sync.Mutex
	db      *sql.DB
	session string
	now     func() time.Time
}

// NewSQLite opens or creates a journal at path. Rows written through the
// returned journal are stamped with session, or with a fresh UUID if
// session is empty.
func NewSQLite(path, session string) (*SQLite, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS definitions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session TEXT NOT NULL,
			name TEXT NOT NULL,
			version INTEGER NOT NULL,
			value TEXT NOT NULL,
			ts TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS definitions_name_version
			ON definitions (name, version);
		CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, err
	}

	if session == "" {
		session = uuid.NewString()
	}
	s := &SQLite{db: db, session: session, now: time.Now}

	version, err := s.getMetadataUnlocked("schema_version")
	if err != nil {
		db.Close()
		return nil, err
	}
	switch version {
	case "":
		if err := s.setMetadataUnlocked("schema_version", SchemaVersion); err != nil {
			db.Close()
			return nil, err
		}
	case SchemaVersion:
	default:
		db.Close()
		return nil, fmt.Errorf("unsupported schema version: %s (expected %s)", version, SchemaVersion)
	}

	return s, nil
}

// Session returns the session id stamped on rows written by this journal.
func (s *SQLite) Session() string {
	return s.session
}

// Record appends the next version of name.
func (s *SQLite) Record(name string, v *expr.Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO definitions (session, name, version, value, ts)
		SELECT ?, ?, COALESCE(MAX(version), 0) + 1, ?, ?
		FROM definitions WHERE name = ?
	`, s.session, name, v.String(), s.now().UTC().Format(time.RFC3339Nano), name)
	if err != nil {
		return fmt.Errorf("journal %s: %w", name, err)
	}
	return nil
}

// GetHistory returns recorded versions of name across all sessions,
// newest first. A limit of 0 returns all of them.
func (s *SQLite) GetHistory(name string, limit int) ([]VersionEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := "SELECT version, value, session, ts FROM definitions WHERE name = ? ORDER BY version DESC"
	args := []any{name}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []VersionEntry
	for rows.Next() {
		var e VersionEntry
		var ts string
		if err := rows.Scan(&e.Version, &e.Value, &e.Session, &ts); err != nil {
			return nil, err
		}
		e.Ts, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("bad timestamp for %s v%d: %w", name, e.Version, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// GetMetadata retrieves a metadata value by key.
func (s *SQLite) GetMetadata(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getMetadataUnlocked(key)
}

// getMetadataUnlocked retrieves metadata without locking (caller must hold lock).
func (s *SQLite) getMetadataUnlocked(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// setMetadataUnlocked stores metadata without locking (caller must hold lock).
func (s *SQLite) setMetadataUnlocked(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}
