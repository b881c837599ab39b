package codec

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/hangarlog/core/algo"
	"github.com/huangsam/hangarlog/schema"
)

// Import turns parsed records into new entries.
//
// A record is skipped when its mode is unknown, its registration is missing,
// its timestamp or coordinates do not parse, or when an existing or earlier
// imported entry has the same import signature. Skipped records are listed in
// Issues and never abort the batch. A photo key already owned by an existing
// or earlier imported entry is dropped from the row and noted in Issues.
// The caller decides what to do with the returned entries; nothing is stored here.
func Import(records []map[string]string, existing []schema.Entry) schema.ImportResult {
	result := schema.ImportResult{Entries: []schema.Entry{}}

	usedIDs := make(map[uuid.UUID]struct{}, len(existing)+len(records))
	usedPhotos := make(map[string]struct{})
	for _, e := range existing {
		usedIDs[e.ID] = struct{}{}
		for _, key := range e.Photos {
			usedPhotos[key] = struct{}{}
		}
	}

	for i, rec := range records {
		entry, err := entryFromRecord(rec)
		if err == nil && algo.SignatureOf(entry).MatchesAny(existing, result.Entries) {
			err = fmt.Errorf("already in logbook: %s at %q on %s",
				entry.Registration, entry.LocationName, entry.DateTime.UTC().Format(time.RFC3339))
		}
		if err != nil {
			result.Skipped++
			result.Issues = append(result.Issues, schema.ImportIssue{Row: i + 1, Reason: err.Error()})
			continue
		}

		if _, taken := usedIDs[entry.ID]; taken || entry.ID == uuid.Nil {
			entry.ID = uuid.New()
		}
		usedIDs[entry.ID] = struct{}{}

		var dropped []string
		entry.Photos, dropped = claimPhotos(entry.Photos, usedPhotos)
		for _, key := range dropped {
			result.Issues = append(result.Issues, schema.ImportIssue{
				Row:    i + 1,
				Reason: fmt.Sprintf("photo %s already belongs to another entry, reference dropped", key),
			})
		}

		result.Entries = append(result.Entries, entry)
		result.Imported++
	}
	return result
}

// ImportText parses CSV text and imports it. See Import.
func ImportText(text string, existing []schema.Entry) schema.ImportResult {
	return Import(Records(ParseRows(text)), existing)
}

// entryFromRecord builds an entry from one record. The ID is taken from the
// record when it parses and is uuid.Nil otherwise.
func entryFromRecord(rec map[string]string) (schema.Entry, error) {
	mode := schema.EntryMode(rec[ColMode])
	if !mode.IsValid() {
		return schema.Entry{}, fmt.Errorf("unknown mode %q", rec[ColMode])
	}

	reg := algo.NormalizeRegistration(rec[ColRegistration])
	if reg == "" {
		return schema.Entry{}, algo.ErrEmptyRegistration
	}

	when, err := parseTime(rec[ColDateTime])
	if err != nil {
		return schema.Entry{}, fmt.Errorf("invalid dateTime %q", rec[ColDateTime])
	}

	lat, err := parseCoordinate(rec[ColLatitude], algo.ValidLatitude)
	if err != nil {
		return schema.Entry{}, fmt.Errorf("%w: %q", algo.ErrLatitudeRange, rec[ColLatitude])
	}
	lon, err := parseCoordinate(rec[ColLongitude], algo.ValidLongitude)
	if err != nil {
		return schema.Entry{}, fmt.Errorf("%w: %q", algo.ErrLongitudeRange, rec[ColLongitude])
	}

	id, err := uuid.Parse(strings.TrimSpace(rec[ColID]))
	if err != nil {
		id = uuid.Nil
	}

	return schema.Entry{
		ID:                     id,
		Mode:                   mode,
		Registration:           reg,
		AircraftType:           rec[ColAircraftType],
		Operator:               rec[ColOperator],
		DateTime:               when,
		LocationName:           rec[ColLocationName],
		Latitude:               lat,
		Longitude:              lon,
		FlightNumber:           rec[ColFlightNumber],
		Origin:                 rec[ColOrigin],
		Destination:            rec[ColDestination],
		Notes:                  rec[ColNotes],
		IsFirstForRegistration: rec[ColIsFirstForRegistration] == "true",
		Photos:                 splitPhotos(rec[ColPhotoFilenames]),
	}, nil
}

// parseTime accepts RFC 3339 timestamps with or without fractional seconds.
func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
}

func parseCoordinate(s string, valid func(float64) bool) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	if !valid(v) {
		return nil, fmt.Errorf("out of range: %v", v)
	}
	return &v, nil
}

// claimPhotos keeps the keys not yet in used and marks them used.
func claimPhotos(keys []string, used map[string]struct{}) (kept, dropped []string) {
	for _, key := range keys {
		if _, taken := used[key]; taken {
			dropped = append(dropped, key)
			continue
		}
		used[key] = struct{}{}
		kept = append(kept, key)
	}
	return kept, dropped
}

func splitPhotos(s string) []string {
	var photos []string
	for _, p := range strings.Split(s, PhotoSeparator) {
		if p = strings.TrimSpace(p); p != "" {
			photos = append(photos, p)
		}
	}
	return photos
}
