package iostore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/google/uuid"
	"github.com/huangsam/hangarlog/internal/contract"
	"github.com/huangsam/hangarlog/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// Table names for entry storage.
const (
	entriesTable = "hangarlog_entries"
	photosTable  = "hangarlog_entry_photos"
)

// entryColumns is the column order used by every entry query.
const entryColumns = "id, entry_mode, registration, aircraft_type, operator_name, date_time, location_name, " +
	"latitude, longitude, flight_number, origin, destination, notes, is_first_for_registration, created_at"

// sqliteTimeLayout is fixed-width so that text comparison orders instants.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

// EntryStoreImpl handles durable entry storage using various database backends.
type EntryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
	connStr string
}

var _ contract.EntryStore = &EntryStoreImpl{} // Compile-time check

// NewEntryStore initializes and returns a new EntryStore based on the backend type.
func NewEntryStore(backend schema.DatabaseBackend, connStr string) (contract.EntryStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled persistence
		return &EntryStoreImpl{backend: backend, connStr: connStr}, nil
	}

	db, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}

	if err := createTables(db, backend); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &EntryStoreImpl{db: db, backend: backend, connStr: connStr}, nil
}

// openDB opens and pings the database for the backend.
func openDB(backend schema.DatabaseBackend, connStr string) (*sql.DB, error) {
	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetDBFilePath()
		}
		db, err = sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=secret dbname=hangarlog
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	default:
		return nil, fmt.Errorf("unsupported store backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}
	return db, nil
}

// createTables applies the bundled up migrations. Each one is idempotent.
func createTables(db *sql.DB, backend schema.DatabaseBackend) error {
	queries, err := upMigrations(backend)
	if err != nil {
		return err
	}
	for _, q := range queries {
		if _, err := db.Exec(q.query); err != nil {
			return fmt.Errorf("failed to apply %s: %w", q.name, err)
		}
	}
	return nil
}

// disabled reports whether the store is the no-op store.
func (s *EntryStoreImpl) disabled() bool {
	return s.backend == schema.NoneBackend || s.db == nil
}

// rebind rewrites ? placeholders for the backend.
func (s *EntryStoreImpl) rebind(query string) string {
	if s.backend != schema.PostgreSQLBackend {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func (s *EntryStoreImpl) table(name string) string {
	return quoteTableName(name, s.backend)
}

// withTx runs fn in a transaction and commits when it returns nil.
func (s *EntryStoreImpl) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Insert stores a new entry together with its photo keys.
func (s *EntryStoreImpl) Insert(ctx context.Context, entry schema.Entry) error {
	return s.InsertBatch(ctx, []schema.Entry{entry})
}

// InsertBatch stores all entries in one transaction.
func (s *EntryStoreImpl) InsertBatch(ctx context.Context, entries []schema.Entry) error {
	if s.disabled() || len(entries) == 0 {
		return nil
	}
	now := time.Now()
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, e := range entries {
			if e.CreatedAt.IsZero() {
				e.CreatedAt = now
			}
			if err := s.insertEntry(ctx, tx, e); err != nil {
				return fmt.Errorf("failed to insert entry %s: %w", e.ID, err)
			}
		}
		return nil
	})
}

func (s *EntryStoreImpl) insertEntry(ctx context.Context, tx *sql.Tx, e schema.Entry) error {
	query := s.rebind(fmt.Sprintf(`INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.table(entriesTable), entryColumns))
	if _, err := tx.ExecContext(ctx, query, s.entryArgs(e)...); err != nil {
		return err
	}
	return s.insertPhotos(ctx, tx, e.ID, e.Photos)
}

func (s *EntryStoreImpl) entryArgs(e schema.Entry) []any {
	return []any{
		e.ID.String(),
		string(e.Mode),
		e.Registration,
		e.AircraftType,
		e.Operator,
		formatTime(e.DateTime, s.backend),
		e.LocationName,
		nullFloat(e.Latitude),
		nullFloat(e.Longitude),
		e.FlightNumber,
		e.Origin,
		e.Destination,
		e.Notes,
		e.IsFirstForRegistration,
		formatTime(e.CreatedAt, s.backend),
	}
}

func (s *EntryStoreImpl) insertPhotos(ctx context.Context, tx *sql.Tx, id uuid.UUID, photos []string) error {
	if len(photos) == 0 {
		return nil
	}
	query := s.rebind(fmt.Sprintf(`INSERT INTO %s (entry_id, photo_index, photo_key) VALUES (?, ?, ?)`, s.table(photosTable)))
	for i, key := range photos {
		if _, err := tx.ExecContext(ctx, query, id.String(), i, key); err != nil {
			return fmt.Errorf("failed to insert photo %q: %w", key, err)
		}
	}
	return nil
}

func (s *EntryStoreImpl) deletePhotos(ctx context.Context, tx *sql.Tx, id uuid.UUID) error {
	query := s.rebind(fmt.Sprintf(`DELETE FROM %s WHERE entry_id = ?`, s.table(photosTable)))
	_, err := tx.ExecContext(ctx, query, id.String())
	return err
}

func (s *EntryStoreImpl) exists(ctx context.Context, tx *sql.Tx, id uuid.UUID) (bool, error) {
	query := s.rebind(fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE id = ?`, s.table(entriesTable)))
	var n int
	if err := tx.QueryRowContext(ctx, query, id.String()).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Update overwrites an existing entry in place, keeping its creation time.
func (s *EntryStoreImpl) Update(ctx context.Context, entry schema.Entry) error {
	if s.disabled() {
		return schema.ErrEntryNotFound
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		ok, err := s.exists(ctx, tx, entry.ID)
		if err != nil {
			return fmt.Errorf("failed to look up entry %s: %w", entry.ID, err)
		}
		if !ok {
			return schema.ErrEntryNotFound
		}

		query := s.rebind(fmt.Sprintf(`UPDATE %s SET entry_mode = ?, registration = ?, aircraft_type = ?, operator_name = ?,
			date_time = ?, location_name = ?, latitude = ?, longitude = ?, flight_number = ?, origin = ?,
			destination = ?, notes = ?, is_first_for_registration = ? WHERE id = ?`, s.table(entriesTable)))
		args := s.entryArgs(entry)
		args = append(args[1:len(args)-1], entry.ID.String())
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to update entry %s: %w", entry.ID, err)
		}

		if err := s.deletePhotos(ctx, tx, entry.ID); err != nil {
			return fmt.Errorf("failed to replace photos of %s: %w", entry.ID, err)
		}
		return s.insertPhotos(ctx, tx, entry.ID, entry.Photos)
	})
}

// Delete removes one entry and its photo keys.
func (s *EntryStoreImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if s.disabled() {
		return schema.ErrEntryNotFound
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		ok, err := s.exists(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("failed to look up entry %s: %w", id, err)
		}
		if !ok {
			return schema.ErrEntryNotFound
		}
		if err := s.deletePhotos(ctx, tx, id); err != nil {
			return fmt.Errorf("failed to delete photos of %s: %w", id, err)
		}
		query := s.rebind(fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, s.table(entriesTable)))
		if _, err := tx.ExecContext(ctx, query, id.String()); err != nil {
			return fmt.Errorf("failed to delete entry %s: %w", id, err)
		}
		return nil
	})
}

// DeleteAll removes every entry and returns how many were removed.
func (s *EntryStoreImpl) DeleteAll(ctx context.Context) (int64, error) {
	if s.disabled() {
		return 0, nil
	}
	var removed int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, s.table(photosTable))); err != nil {
			return fmt.Errorf("failed to delete photos: %w", err)
		}
		res, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, s.table(entriesTable)))
		if err != nil {
			return fmt.Errorf("failed to delete entries: %w", err)
		}
		removed, err = res.RowsAffected()
		return err
	})
	return removed, err
}

// Get returns one entry or schema.ErrEntryNotFound.
func (s *EntryStoreImpl) Get(ctx context.Context, id uuid.UUID) (schema.Entry, error) {
	if s.disabled() {
		return schema.Entry{}, schema.ErrEntryNotFound
	}

	query := s.rebind(fmt.Sprintf(`SELECT %s FROM %s WHERE id = ?`, entryColumns, s.table(entriesTable)))
	entry, err := scanEntry(s.db.QueryRowContext(ctx, query, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return schema.Entry{}, schema.ErrEntryNotFound
	}
	if err != nil {
		return schema.Entry{}, fmt.Errorf("failed to read entry %s: %w", id, err)
	}

	photos, err := s.loadPhotos(ctx, &id)
	if err != nil {
		return schema.Entry{}, err
	}
	entry.Photos = photos[entry.ID]
	return entry, nil
}

// QueryAll returns every entry ordered by timestamp. Entries sharing a
// timestamp are ordered by ID.
func (s *EntryStoreImpl) QueryAll(ctx context.Context, order schema.SortOrder) ([]schema.Entry, error) {
	if s.disabled() {
		return []schema.Entry{}, nil
	}

	direction := "DESC"
	if order == schema.OldestFirst {
		direction = "ASC"
	}
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY date_time %s, id ASC`, entryColumns, s.table(entriesTable), direction)

	entries, err := s.queryEntries(ctx, query)
	if err != nil {
		return nil, err
	}

	photos, err := s.loadPhotos(ctx, nil)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Photos = photos[entries[i].ID]
	}
	return entries, nil
}

// queryEntries reads all rows before returning so the connection is free
// for the next query.
func (s *EntryStoreImpl) queryEntries(ctx context.Context, query string, args ...any) ([]schema.Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := []schema.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}
	return entries, nil
}

// loadPhotos returns photo keys grouped by entry, in stored order.
// A nil id loads the photos of every entry.
func (s *EntryStoreImpl) loadPhotos(ctx context.Context, id *uuid.UUID) (map[uuid.UUID][]string, error) {
	query := fmt.Sprintf(`SELECT entry_id, photo_key FROM %s`, s.table(photosTable))
	var args []any
	if id != nil {
		query += ` WHERE entry_id = ?`
		args = append(args, id.String())
	}
	query = s.rebind(query + ` ORDER BY entry_id, photo_index`)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query photos: %w", err)
	}
	defer func() { _ = rows.Close() }()

	photos := make(map[uuid.UUID][]string)
	for rows.Next() {
		var rawID, key string
		if err := rows.Scan(&rawID, &key); err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		entryID, err := uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("invalid entry id %q in photos: %w", rawID, err)
		}
		photos[entryID] = append(photos[entryID], key)
	}
	return photos, rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (schema.Entry, error) {
	var (
		e                   schema.Entry
		rawID, mode         string
		dateTime, createdAt any
		lat, lon            sql.NullFloat64
	)
	err := row.Scan(&rawID, &mode, &e.Registration, &e.AircraftType, &e.Operator, &dateTime, &e.LocationName,
		&lat, &lon, &e.FlightNumber, &e.Origin, &e.Destination, &e.Notes, &e.IsFirstForRegistration, &createdAt)
	if err != nil {
		return schema.Entry{}, err
	}

	if e.ID, err = uuid.Parse(rawID); err != nil {
		return schema.Entry{}, fmt.Errorf("invalid entry id %q: %w", rawID, err)
	}
	e.Mode = schema.EntryMode(mode)
	if e.DateTime, err = parseDBTime(dateTime); err != nil {
		return schema.Entry{}, err
	}
	if e.CreatedAt, err = parseDBTime(createdAt); err != nil {
		return schema.Entry{}, err
	}
	if lat.Valid {
		e.Latitude = &lat.Float64
	}
	if lon.Valid {
		e.Longitude = &lon.Float64
	}
	return e, nil
}

// Close closes the underlying DB connection.
func (s *EntryStoreImpl) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetStatus returns status information about the entry store.
func (s *EntryStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:   string(s.backend),
		Connected: s.db != nil,
	}
	if s.disabled() {
		return status, nil
	}

	status.SchemaVersion = s.schemaVersion()

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", s.table(entriesTable))
	if err := s.db.QueryRow(countQuery).Scan(&status.TotalEntries); err != nil {
		return status, fmt.Errorf("failed to get total entries: %w", err)
	}
	photoQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", s.table(photosTable))
	if err := s.db.QueryRow(photoQuery).Scan(&status.TotalPhotos); err != nil {
		return status, fmt.Errorf("failed to get total photos: %w", err)
	}

	if status.TotalEntries > 0 {
		var newest, oldest any
		rangeQuery := fmt.Sprintf("SELECT MAX(date_time), MIN(date_time) FROM %s", s.table(entriesTable))
		if err := s.db.QueryRow(rangeQuery).Scan(&newest, &oldest); err != nil {
			return status, fmt.Errorf("failed to get entry time range: %w", err)
		}
		var err error
		if status.NewestEntryTime, err = parseDBTime(newest); err != nil {
			return status, err
		}
		if status.OldestEntryTime, err = parseDBTime(oldest); err != nil {
			return status, err
		}
	}

	status.TableSizeBytes = s.tableSize(status.TotalEntries)
	return status, nil
}

// schemaVersion reads the golang-migrate version table. It is 0 when the
// store was created without running migrations.
func (s *EntryStoreImpl) schemaVersion() uint {
	var version int64
	if err := s.db.QueryRow("SELECT version FROM schema_migrations LIMIT 1").Scan(&version); err != nil || version < 0 {
		return 0
	}
	return uint(version)
}

// tableSize estimates the storage used by the entry tables.
func (s *EntryStoreImpl) tableSize(totalEntries int) int64 {
	estimate := int64(totalEntries) * 1000 // Rough estimate
	var size int64

	switch s.backend {
	case schema.SQLiteBackend:
		// For SQLite, use page_count * page_size
		sizeQuery := "SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()"
		if err := s.db.QueryRow(sizeQuery).Scan(&size); err != nil {
			return 0
		}
		return size

	case schema.MySQLBackend:
		cfg, err := mysql.ParseDSN(s.connStr)
		if err != nil || cfg.DBName == "" {
			return estimate
		}
		sizeQuery := `SELECT COALESCE(SUM(data_length + index_length), 0) FROM information_schema.tables
			WHERE table_schema = ? AND table_name IN (?, ?)`
		if err := s.db.QueryRow(sizeQuery, cfg.DBName, entriesTable, photosTable).Scan(&size); err != nil {
			return estimate
		}
		return size

	case schema.PostgreSQLBackend:
		sizeQuery := "SELECT pg_total_relation_size($1) + pg_total_relation_size($2)"
		if err := s.db.QueryRow(sizeQuery, entriesTable, photosTable).Scan(&size); err != nil {
			return estimate
		}
		return size

	default:
		return estimate
	}
}

// formatTime converts a time to the representation stored by the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.UTC().Format(sqliteTimeLayout)
	default:
		return t.UTC()
	}
}

// parseDBTime converts a scanned time column into a UTC time.
func parseDBTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return t.UTC(), nil
	case []byte:
		return parseTimeText(string(t))
	case string:
		return parseTimeText(t)
	default:
		return time.Time{}, fmt.Errorf("unsupported time value of type %T", v)
	}
}

func parseTimeText(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid stored time %q", s)
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
