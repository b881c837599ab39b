// Package parquet exports logbook entries to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/hangarlog/schema"
	"github.com/parquet-go/parquet-go"
)

// EntryRow is the columnar form of one logbook entry.
// It mirrors the hangarlog_entries table plus the ordered photo keys.
type EntryRow struct {
	// ID is the entry UUID in its canonical string form
	ID string `parquet:"id,snappy"`

	// Mode is "spotted" or "flown"
	Mode string `parquet:"mode,snappy,dict"`

	Registration string `parquet:"registration,snappy,dict"`
	AircraftType string `parquet:"aircraft_type,snappy,dict"`
	Operator     string `parquet:"operator,snappy,dict"`

	// DateTime is the instant of the sighting or flight (stored as TIMESTAMP with nanosecond precision)
	DateTime time.Time `parquet:"date_time,snappy"`

	LocationName string `parquet:"location_name,snappy"`

	// Latitude and Longitude are null when the entry has no coordinates
	Latitude  *float64 `parquet:"latitude,optional,snappy"`
	Longitude *float64 `parquet:"longitude,optional,snappy"`

	FlightNumber string `parquet:"flight_number,snappy"`
	Origin       string `parquet:"origin,snappy"`
	Destination  string `parquet:"destination,snappy"`
	Notes        string `parquet:"notes,snappy"`

	IsFirstForRegistration bool `parquet:"is_first_for_registration,snappy"`

	// Photos are the blob keys in display order
	Photos []string `parquet:"photos,list"`

	// CreatedAt is when the entry was first stored
	CreatedAt time.Time `parquet:"created_at,snappy"`
}

// RowOf converts an entry into its columnar form.
func RowOf(e schema.Entry) EntryRow {
	c := e.Clone()
	return EntryRow{
		ID:                     c.ID.String(),
		Mode:                   string(c.Mode),
		Registration:           c.Registration,
		AircraftType:           c.AircraftType,
		Operator:               c.Operator,
		DateTime:               c.DateTime.UTC(),
		LocationName:           c.LocationName,
		Latitude:               c.Latitude,
		Longitude:              c.Longitude,
		FlightNumber:           c.FlightNumber,
		Origin:                 c.Origin,
		Destination:            c.Destination,
		Notes:                  c.Notes,
		IsFirstForRegistration: c.IsFirstForRegistration,
		Photos:                 c.Photos,
		CreatedAt:              c.CreatedAt.UTC(),
	}
}

// Entry converts a row back into an entry.
func (r EntryRow) Entry() (schema.Entry, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return schema.Entry{}, fmt.Errorf("invalid entry id %q: %w", r.ID, err)
	}
	e := schema.Entry{
		ID:                     id,
		Mode:                   schema.EntryMode(r.Mode),
		Registration:           r.Registration,
		AircraftType:           r.AircraftType,
		Operator:               r.Operator,
		DateTime:               r.DateTime,
		LocationName:           r.LocationName,
		Latitude:               r.Latitude,
		Longitude:              r.Longitude,
		FlightNumber:           r.FlightNumber,
		Origin:                 r.Origin,
		Destination:            r.Destination,
		Notes:                  r.Notes,
		IsFirstForRegistration: r.IsFirstForRegistration,
		Photos:                 r.Photos,
		CreatedAt:              r.CreatedAt,
	}
	return e.Clone(), nil
}

// WriteEntriesParquet writes the entries to a Parquet file at outputPath.
func WriteEntriesParquet(entries []schema.Entry, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the EntryRow struct tags
	writer := parquet.NewGenericWriter[EntryRow](file)

	rows := make([]EntryRow, len(entries))
	for i, e := range entries {
		rows[i] = RowOf(e)
	}
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	// Close flushes the row group and writes the footer
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return file.Close()
}

// ReadEntriesParquet reads entries written by WriteEntriesParquet.
func ReadEntriesParquet(path string) ([]schema.Entry, error) {
	rows, err := parquet.ReadFile[EntryRow](path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet file: %w", err)
	}
	entries := make([]schema.Entry, 0, len(rows))
	for _, r := range rows {
		e, err := r.Entry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
