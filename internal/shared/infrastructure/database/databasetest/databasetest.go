// Package databasetest opens migrated SQLite databases for repository tests.
package databasetest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/migrations"
	"github.com/stretchr/testify/require"
)

// OpenSQLite creates a fresh database file under t.TempDir with the schema
// applied. It is closed when the test ends.
func OpenSQLite(t *testing.T) database.Connection {
	t.Helper()

	ctx := context.Background()
	conn, err := sqlite.Open(ctx, database.Config{SQLitePath: filepath.Join(t.TempDir(), "tempo.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, migrations.Run(ctx, conn))
	return conn
}
