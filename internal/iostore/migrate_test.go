package iostore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/hangarlog/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateStore_NoneBackend(t *testing.T) {
	err := MigrateStore(schema.NoneBackend, "", -1)
	assert.Error(t, err)
}

func TestMigrateStore_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")

	// Migrate to latest
	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, -1))

	// Running again is a no-op
	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, -1))

	// Roll back to version 1, then all the way down, then up again
	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, 1))
	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, 0))
	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, 2))

	store, err := NewEntryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, uint(2), status.SchemaVersion)
}

func TestMigrateStore_AfterBootstrap(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "bootstrap.db")

	store, err := NewEntryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Insert(context.Background(), sampleEntry("G-XLEA", time.Now())))
	require.NoError(t, store.Close())

	// Tables created on open are compatible with the migration history
	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, -1))

	store, err = NewEntryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 1, status.TotalEntries)
}

func TestUpMigrations(t *testing.T) {
	for _, backend := range []schema.DatabaseBackend{schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend} {
		queries, err := upMigrations(backend)
		require.NoError(t, err, backend)
		require.Len(t, queries, 2, backend)
		assert.Equal(t, "000001_create_entries.up.sql", queries[0].name)
		assert.Contains(t, queries[0].query, entriesTable)
		assert.Contains(t, queries[1].query, photosTable)
	}

	_, err := upMigrations(schema.NoneBackend)
	assert.Error(t, err)
}

func TestClearStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "clear.db")
	store, err := NewEntryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	require.NoError(t, ClearStore(schema.SQLiteBackend, dbPath, ""))
	_, err = os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err))

	// Clearing twice is fine
	assert.NoError(t, ClearStore(schema.SQLiteBackend, dbPath, ""))
	assert.Error(t, ClearStore(schema.SQLiteBackend, "", ""))
	assert.NoError(t, ClearStore(schema.NoneBackend, "", ""))
	assert.Error(t, ClearStore("oracle", "", ""))
}
