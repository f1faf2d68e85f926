// Package prefs persists the interface language and theme in a local
// SQLite database.
package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Registers the "sqlite" driver.
	_ "modernc.org/sqlite"

	"github.com/spiffcs/folio/internal/calendar"
	"github.com/spiffcs/folio/internal/locale"
)

// Key names a stored preference.
type Key string

const (
	KeyLanguage Key = "language"
	KeyTheme    Key = "theme"
)

// Keys returns every supported key.
func Keys() []Key {
	return []Key{KeyLanguage, KeyTheme}
}

// ErrUnknownKey is returned for keys outside Keys().
var ErrUnknownKey = errors.New("unknown preference")

const schema = `
CREATE TABLE IF NOT EXISTS preferences (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at DATETIME NOT NULL
)`

// Preferences is a snapshot of every preference.
type Preferences struct {
	Language locale.Language `json:"language"`
	Theme    calendar.Theme  `json:"theme"`
}

// Defaults returns the preferences used when nothing is stored.
func Defaults() Preferences {
	return Preferences{Language: locale.Default, Theme: calendar.ThemeDark}
}

// Store is a key-value preference store.
type Store struct {
	db       *sql.DB
	defaults Preferences
	now      func() time.Time
}

// DefaultPath returns the preferences database under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(dir, "folio", "prefs.db"), nil
}

// Open opens (creating if needed) the database at path. Use ":memory:"
// for a throwaway store. defaults supplies values for unset keys.
func Open(ctx context.Context, path string, defaults Preferences) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("failed to create preferences directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open preferences: %w", err)
	}
	// One connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create preferences table: %w", err)
	}
	return &Store{db: db, defaults: defaults, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Validate normalizes value for key.
func Validate(key Key, value string) (string, error) {
	switch key {
	case KeyLanguage:
		l, err := locale.Parse(value)
		return string(l), err
	case KeyTheme:
		t, err := calendar.ParseTheme(value)
		return string(t), err
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownKey, key)
	}
}

func (s *Store) defaultFor(key Key) string {
	if key == KeyLanguage {
		return string(s.defaults.Language)
	}
	return string(s.defaults.Theme)
}

// Get returns the stored value for key, or its default when unset.
func (s *Store) Get(ctx context.Context, key Key) (string, error) {
	if key != KeyLanguage && key != KeyTheme {
		return "", fmt.Errorf("%w %q", ErrUnknownKey, key)
	}
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, string(key)).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return s.defaultFor(key), nil
	case err != nil:
		return "", fmt.Errorf("failed to read preference %s: %w", key, err)
	}
	return value, nil
}

// Set validates and stores value for key.
func (s *Store) Set(ctx context.Context, key Key, value string) (string, error) {
	normalized, err := Validate(key, value)
	if err != nil {
		return "", err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		string(key), normalized, s.now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to save preference %s: %w", key, err)
	}
	return normalized, nil
}

// Reset removes every stored preference.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM preferences`); err != nil {
		return fmt.Errorf("failed to reset preferences: %w", err)
	}
	return nil
}

// Load reads every preference. Stored values that no longer validate fall
// back to their defaults.
func (s *Store) Load(ctx context.Context) (Preferences, error) {
	p := s.defaults
	for _, key := range Keys() {
		v, err := s.Get(ctx, key)
		if err != nil {
			return Preferences{}, err
		}
		v, err = Validate(key, v)
		if err != nil {
			continue
		}
		switch key {
		case KeyLanguage:
			p.Language = locale.Language(v)
		case KeyTheme:
			p.Theme = calendar.Theme(v)
		}
	}
	return p, nil
}

// All returns the raw stored rows keyed by name, for display.
func (s *Store) All(ctx context.Context) (map[Key]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM preferences`)
	if err != nil {
		return nil, fmt.Errorf("failed to list preferences: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[Key]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[Key(k)] = v
	}
	return out, rows.Err()
}
