// Package codec reads and writes the logbook CSV exchange format.
package codec

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/hangarlog/schema"
)

// Column names of the exchange format, in file order.
const (
	ColID                     = "id"
	ColMode                   = "mode"
	ColRegistration           = "registration"
	ColAircraftType           = "aircraftType"
	ColOperator               = "operator"
	ColDateTime               = "dateTime"
	ColLocationName           = "locationName"
	ColLatitude               = "latitude"
	ColLongitude              = "longitude"
	ColFlightNumber           = "flightNumber"
	ColOrigin                 = "origin"
	ColDestination            = "destination"
	ColNotes                  = "notes"
	ColIsFirstForRegistration = "isFirstForRegistration"
	ColPhotoFilenames         = "photoFilenames"
)

// Header is the fixed column order of an export.
var Header = []string{
	ColID, ColMode, ColRegistration, ColAircraftType, ColOperator, ColDateTime,
	ColLocationName, ColLatitude, ColLongitude, ColFlightNumber, ColOrigin,
	ColDestination, ColNotes, ColIsFirstForRegistration, ColPhotoFilenames,
}

// PhotoSeparator joins photo keys inside the photoFilenames column.
const PhotoSeparator = "|"

// TimeLayout is the timestamp format of the dateTime column.
const TimeLayout = time.RFC3339Nano

// EncodeEntries writes the header and one row per entry, in the given order.
// Every field is quoted.
func EncodeEntries(w io.Writer, entries []schema.Entry) error {
	if _, err := io.WriteString(w, strings.Join(Header, ",")+"\n"); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i, e := range entries {
		if _, err := io.WriteString(w, encodeRow(EntryFields(e))); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i+1, err)
		}
	}
	return nil
}

// EntryFields returns the unquoted field values of an entry in Header order.
func EntryFields(e schema.Entry) []string {
	return []string{
		e.ID.String(),
		string(e.Mode),
		e.Registration,
		e.AircraftType,
		e.Operator,
		e.DateTime.UTC().Format(TimeLayout),
		e.LocationName,
		formatCoordinate(e.Latitude),
		formatCoordinate(e.Longitude),
		e.FlightNumber,
		e.Origin,
		e.Destination,
		e.Notes,
		strconv.FormatBool(e.IsFirstForRegistration),
		strings.Join(e.Photos, PhotoSeparator),
	}
}

func encodeRow(fields []string) string {
	var sb strings.Builder
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(quote(f))
	}
	sb.WriteByte('\n')
	return sb.String()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func formatCoordinate(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
