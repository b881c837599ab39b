package iostore

import (
	"database/sql"
	"fmt"
	"os"
	"regexp"
	"sync"

	"github.com/huangsam/hangarlog/internal/contract"
	"github.com/huangsam/hangarlog/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &StoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// GetDBFilePath returns the path to the SQLite DB file for entry storage.
func GetDBFilePath() string {
	return contract.GetStoreDBFilePath()
}

// InitStores initializes the global manager with the entry store and the given blob store.
func InitStores(backend schema.DatabaseBackend, connStr string, blobs contract.BlobStore) error {
	var initErr error

	initOnce.Do(func() {
		entries, err := NewEntryStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize entry store: %w", err)
			return
		}

		Manager.Lock()
		defer Manager.Unlock()
		Manager.entries = entries
		Manager.blobs = blobs
	})

	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.entries != nil {
			_ = Manager.entries.Close()
		}
	})
}

// ClearStore removes all stored entries for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the entry tables.
// For NoneBackend, it does nothing.
func ClearStore(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		// Photos reference entries, so they go first
		for _, table := range []string{photosTable, entriesTable} {
			if err := clearSQLTable(backend, connStr, table); err != nil {
				return err
			}
		}
		return nil

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported store backend for clearing: %s", backend)
	}
}

// clearSQLTable connects to the SQL database and drops the table if it exists.
func clearSQLTable(backend schema.DatabaseBackend, connStr, tableName string) error {
	driverName := "mysql"
	if backend == schema.PostgreSQLBackend {
		driverName = "pgx"
	}

	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	query := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteTableName(tableName, backend))
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}

	return nil
}

var tableNameRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// quoteTableName quotes a known table name for the backend.
// It panics on names that did not come from this package.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	if !tableNameRe.MatchString(name) {
		panic(fmt.Sprintf("invalid table name %q", name))
	}
	if backend == schema.MySQLBackend {
		return "`" + name + "`"
	}
	return `"` + name + `"`
}
