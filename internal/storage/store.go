package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Registers the sqlite driver
)

const tokenSlot = "token"

// Store persists the bearer credential across runs, the way the browser
// client kept it in localStorage. It is written only by login/logout and
// read once at startup.
type Store struct {
	conn *sql.DB
}

// Open creates the store at the given path and ensures the schema is up
// to date.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open credential store: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to credential store: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply credential store schema: %w", err)
	}

	return &Store{conn: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Token returns the persisted bearer token, or "" when no credential is
// stored. An empty slot is not an error.
func (s *Store) Token() (string, error) {
	var value string
	row := s.conn.QueryRow(`SELECT value FROM slots WHERE key = ?`, tokenSlot)
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to read token slot: %w", err)
	}
	return value, nil
}

// SetToken replaces the persisted bearer token.
func (s *Store) SetToken(token string) error {
	_, err := s.conn.Exec(`
		INSERT INTO slots (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, tokenSlot, token, time.Now())
	if err != nil {
		return fmt.Errorf("failed to write token slot: %w", err)
	}
	return nil
}

// Clear removes the persisted bearer token. Clearing an empty slot is a
// no-op.
func (s *Store) Clear() error {
	if _, err := s.conn.Exec(`DELETE FROM slots WHERE key = ?`, tokenSlot); err != nil {
		return fmt.Errorf("failed to clear token slot: %w", err)
	}
	return nil
}
