package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Config selects and configures a backend.
type Config struct {
	// URL is a postgres:// connection string. Empty means local SQLite.
	URL string
	// SQLitePath overrides the SQLite file location.
	SQLitePath string
	// MaxConns caps the PostgreSQL pool.
	MaxConns int
}

// Opener creates a connection for one driver.
type Opener func(ctx context.Context, cfg Config) (Connection, error)

var openers = map[Driver]Opener{}

// Register installs the opener for a driver. Driver packages call it from
// init, so importing them for side effects is enough to enable them.
func Register(driver Driver, opener Opener) {
	openers[driver] = opener
}

// Open connects to the backend selected by cfg.URL.
func Open(ctx context.Context, cfg Config) (Connection, error) {
	driver := DetectDriver(cfg.URL)
	opener, ok := openers[driver]
	if !ok {
		return nil, fmt.Errorf("database driver %q is not registered", driver)
	}
	if driver == DriverSQLite && cfg.SQLitePath == "" {
		cfg.SQLitePath = SQLitePathFromURL(cfg.URL)
	}
	return opener(ctx, cfg)
}

// DefaultSQLitePath returns ~/.tempo/data.db.
func DefaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".tempo", "data.db")
}

// EnsureDirectory creates the parent directory of path.
func EnsureDirectory(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
