package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "test.db")

	database, err := Open("sqlite", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	statuses, err := Status(ctx, database.DB, "sqlite")
	require.NoError(t, err)
	require.NotEmpty(t, statuses)
	for _, s := range statuses {
		assert.True(t, s.Applied, s.Name)
	}
	assert.Equal(t, "00001_create_users.sql", statuses[0].Name)

	latest := statuses[len(statuses)-1].Version
	version, err := Version(ctx, database.DB, "sqlite")
	require.NoError(t, err)
	assert.Equal(t, latest, version)

	require.NoError(t, MigrateDown(ctx, database.DB, "sqlite"))
	version, err = Version(ctx, database.DB, "sqlite")
	require.NoError(t, err)
	assert.Less(t, version, latest)

	require.NoError(t, RunMigrations(ctx, database.DB, "sqlite"))
	version, err = Version(ctx, database.DB, "sqlite")
	require.NoError(t, err)
	assert.Equal(t, latest, version)
}

func TestUnknownDriver(t *testing.T) {
	_, err := provider(nil, "mysql")
	assert.ErrorContains(t, err, "mysql")
}
