// Package schema holds the logbook data model shared by every layer.
package schema

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Entry is one logged aircraft sighting or flight.
type Entry struct {
	ID                     uuid.UUID `json:"id"`
	Mode                   EntryMode `json:"mode"`
	Registration           string    `json:"registration"`
	AircraftType           string    `json:"aircraft_type"`
	Operator               string    `json:"operator"`
	DateTime               time.Time `json:"date_time"`
	LocationName           string    `json:"location_name"`
	Latitude               *float64  `json:"latitude,omitempty"`
	Longitude              *float64  `json:"longitude,omitempty"`
	FlightNumber           string    `json:"flight_number"`
	Origin                 string    `json:"origin"`
	Destination            string    `json:"destination"`
	Notes                  string    `json:"notes"`
	IsFirstForRegistration bool      `json:"is_first_for_registration"`
	Photos                 []string  `json:"photos"`    // Ordered blob keys owned by this entry
	CreatedAt              time.Time `json:"created_at"` // Assigned by the store on insert
}

// Clone returns a deep copy of the entry.
func (e Entry) Clone() Entry {
	clone := e
	clone.Latitude = cloneFloat(e.Latitude)
	clone.Longitude = cloneFloat(e.Longitude)
	if e.Photos != nil {
		clone.Photos = slices.Clone(e.Photos)
	}
	return clone
}

// HasCoordinate reports whether both coordinates are set.
func (e Entry) HasCoordinate() bool {
	return e.Latitude != nil && e.Longitude != nil
}

// EntryDraft is the user-editable part of an entry, as captured by a form or flags.
type EntryDraft struct {
	Mode         EntryMode
	Registration string
	AircraftType string
	Operator     string
	DateTime     time.Time
	LocationName string
	Latitude     *float64
	Longitude    *float64
	FlightNumber string
	Origin       string
	Destination  string
	Notes        string
	Photos       []string
}

// DraftOf returns the editable fields of an existing entry.
func DraftOf(e Entry) EntryDraft {
	c := e.Clone()
	return EntryDraft{
		Mode:         c.Mode,
		Registration: c.Registration,
		AircraftType: c.AircraftType,
		Operator:     c.Operator,
		DateTime:     c.DateTime,
		LocationName: c.LocationName,
		Latitude:     c.Latitude,
		Longitude:    c.Longitude,
		FlightNumber: c.FlightNumber,
		Origin:       c.Origin,
		Destination:  c.Destination,
		Notes:        c.Notes,
		Photos:       c.Photos,
	}
}

// Coordinate is a resolved device position.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RegistrationInsight summarizes the history of one registration.
type RegistrationInsight struct {
	Count            int        `json:"count"`
	LastSeenDate     *time.Time `json:"last_seen_date,omitempty"`
	LastSeenLocation *string    `json:"last_seen_location,omitempty"`
}

// IsEmpty reports whether the registration has never been seen.
func (ri RegistrationInsight) IsEmpty() bool {
	return ri.Count == 0
}

// EntryDetail is an entry shown together with the history of its registration.
// Insight excludes the entry itself, so TimesSeen is Insight.Count + 1.
type EntryDetail struct {
	Entry     Entry               `json:"entry"`
	Insight   RegistrationInsight `json:"insight"`
	TimesSeen int                 `json:"times_seen"`
}

// EntryFilter narrows a logbook listing.
type EntryFilter struct {
	Mode   ModeFilter
	Period Period
	Search string
}

// ExportFileName returns the conventional name of a CSV export created at now.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("HangarLog-Export-%d.csv", now.Unix())
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
