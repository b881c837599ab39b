package iostore

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/huangsam/hangarlog/schema"
)

//go:embed migrations
var migrationsFS embed.FS

// migrationQuery is one bundled up migration.
type migrationQuery struct {
	name  string
	query string
}

// migrationDir returns the embedded directory holding the backend's migrations.
func migrationDir(backend schema.DatabaseBackend) (fs.FS, error) {
	switch backend {
	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend:
	default:
		return nil, fmt.Errorf("no migrations for backend: %s", backend)
	}
	dir, err := fs.Sub(migrationsFS, path.Join("migrations", string(backend)))
	if err != nil {
		return nil, fmt.Errorf("failed to access migrations directory: %w", err)
	}
	return dir, nil
}

// upMigrations returns the up migrations of the backend in version order.
func upMigrations(backend schema.DatabaseBackend) ([]migrationQuery, error) {
	dir, err := migrationDir(backend)
	if err != nil {
		return nil, err
	}
	names, err := fs.Glob(dir, "*.up.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(names)

	queries := make([]migrationQuery, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(dir, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		queries = append(queries, migrationQuery{name: name, query: strings.TrimSpace(string(data))})
	}
	return queries, nil
}

// MigrateStore runs database migrations for the entry store.
// - If targetVersion < 0, it migrates to the latest version.
// - If targetVersion == 0, it rolls back all migrations (to initial state).
// - If targetVersion > 0, it migrates to the specified version.
func MigrateStore(backend schema.DatabaseBackend, connStr string, targetVersion int) error {
	if backend == schema.NoneBackend {
		return fmt.Errorf("migrations are not supported for NoneBackend")
	}

	db, err := openDB(backend, connStr)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	driver, err := migrationDriver(db, backend)
	if err != nil {
		return err
	}

	dir, err := migrationDir(backend)
	if err != nil {
		return err
	}

	// Create source driver from embedded FS
	sourceDriver, err := iofs.New(dir, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "hangarlog", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	currentVersion, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}
	if dirty {
		return fmt.Errorf("database is in a dirty state at version %d. Please fix manually or force version", currentVersion)
	}

	switch {
	case targetVersion < 0:
		err = m.Up()
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to migrate to latest version: %w", err)
		}
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("No migration needed. Database is already at the latest version.")
		} else {
			newVersion, _, _ := m.Version()
			fmt.Printf("Successfully migrated from version %d to version %d\n", currentVersion, newVersion)
		}

	case targetVersion == 0:
		err = m.Down()
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to roll back to version 0: %w", err)
		}
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("No migration needed. Database is already at version 0")
		} else {
			fmt.Printf("Successfully rolled back from version %d to version 0\n", currentVersion)
		}

	default:
		err = m.Migrate(uint(targetVersion))
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to migrate to version %d: %w", targetVersion, err)
		}
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Printf("No migration needed. Database is already at version %d\n", targetVersion)
		} else {
			fmt.Printf("Successfully migrated from version %d to version %d\n", currentVersion, targetVersion)
		}
	}

	return nil
}

// migrationDriver wraps an open connection in the golang-migrate driver for the backend.
func migrationDriver(db *sql.DB, backend schema.DatabaseBackend) (database.Driver, error) {
	switch backend {
	case schema.SQLiteBackend:
		driver, err := sqlite.WithInstance(db, &sqlite.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite migrate driver: %w", err)
		}
		return driver, nil

	case schema.MySQLBackend:
		driver, err := mysql.WithInstance(db, &mysql.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to create MySQL migrate driver: %w", err)
		}
		return driver, nil

	case schema.PostgreSQLBackend:
		driver, err := postgres.WithInstance(db, &postgres.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL migrate driver: %w", err)
		}
		return driver, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}
}
