package persist

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/djb242/inkwell/internal/store"
)

const currentVersion = 1

const bundleKey = "bundle"

// Cache is the on-device mirror: a SQLite database holding the serialized
// bundle document under a single fixed key. It is written on every state
// change and read once at startup to seed initial state.
type Cache struct {
	db *sql.DB
}

// Open opens (or creates) the cache database at path and runs migrations.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	c := &Cache{db: db}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return c, nil
}

// OpenMemory creates an in-memory cache for testing.
func OpenMemory() (*Cache, error) {
	return Open(":memory:")
}

func (c *Cache) Close() error {
	return c.db.Close()
}

func (c *Cache) migrate() error {
	var version int
	if err := c.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}
	if version >= currentVersion {
		return nil
	}

	const ddl = `
	CREATE TABLE IF NOT EXISTS cache (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`
	if _, err := c.db.Exec(ddl); err != nil {
		return err
	}

	_, err := c.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

// Load reads the mirrored bundle. The second return reports whether a
// bundle had been saved before.
func (c *Cache) Load() (store.Bundle, bool, error) {
	var value string
	err := c.db.QueryRow(`SELECT value FROM cache WHERE key = ?`, bundleKey).Scan(&value)
	if err == sql.ErrNoRows {
		return store.Bundle{}, false, nil
	}
	if err != nil {
		return store.Bundle{}, false, fmt.Errorf("load bundle: %w", err)
	}

	b, err := store.DecodeDocument([]byte(value))
	if err != nil {
		return store.Bundle{}, false, err
	}
	return b, true, nil
}

// Save mirrors the full bundle under the fixed key.
func (c *Cache) Save(b store.Bundle) error {
	data, err := store.EncodeDocument(b)
	if err != nil {
		return err
	}
	_, err = c.db.Exec(
		`INSERT INTO cache (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		bundleKey, string(data),
	)
	if err != nil {
		return fmt.Errorf("save bundle: %w", err)
	}
	return nil
}

// DefaultPath returns ~/.config/inkwell/inkwell.db
func DefaultPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "inkwell", "inkwell.db"), nil
}
