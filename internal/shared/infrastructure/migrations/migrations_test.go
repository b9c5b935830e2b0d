package migrations_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersions_SameForBothDrivers(t *testing.T) {
	lite, err := migrations.Versions(database.DriverSQLite)
	require.NoError(t, err)
	pg, err := migrations.Versions(database.DriverPostgres)
	require.NoError(t, err)

	assert.NotEmpty(t, lite)
	assert.Equal(t, lite, pg)
}

func TestStatements(t *testing.T) {
	stmts := migrations.Statements("CREATE TABLE a (x TEXT);\n\n  CREATE INDEX i ON a(x) ;\n")
	assert.Equal(t, []string{"CREATE TABLE a (x TEXT)", "CREATE INDEX i ON a(x)"}, stmts)
}

func TestRun_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	conn, err := sqlite.Open(ctx, database.Config{SQLitePath: filepath.Join(t.TempDir(), "tempo.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, migrations.Run(ctx, conn))
	require.NoError(t, migrations.Run(ctx, conn))

	var count int
	require.NoError(t, conn.QueryRow(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	versions, err := migrations.Versions(database.DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, len(versions), count)

	for _, table := range []string{"tasks", "subtasks", "energy_observations", "study_sessions", "recurring_events", "sleep_schedule", "scheduled_assignments", "outbox"} {
		var n int
		err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n)
		assert.NoError(t, err, table)
	}
}
