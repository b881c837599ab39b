package algo

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/hangarlog/schema"
)

// Matching windows. Both bounds are inclusive.
const (
	// DuplicateWindow is how far apart two sightings of the same aircraft at
	// the same place may be and still look like one event entered twice.
	DuplicateWindow = 2 * time.Hour

	// ImportMatchWindow is the timestamp tolerance of the import signature.
	ImportMatchWindow = time.Second
)

// ErrPossibleDuplicate marks a save that looks like a repeat of an existing entry.
// It is a warning: the caller may override it.
var ErrPossibleDuplicate = errors.New("possible duplicate entry")

// DuplicateError carries the existing entry that triggered the warning.
type DuplicateError struct {
	Match schema.Entry
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s: %s already logged at %s on %s (id %s)",
		ErrPossibleDuplicate, e.Match.Registration, e.Match.LocationName,
		e.Match.DateTime.Format(time.RFC3339), e.Match.ID)
}

// Unwrap allows errors.Is(err, ErrPossibleDuplicate).
func (e *DuplicateError) Unwrap() error {
	return ErrPossibleDuplicate
}

// Candidate is the part of a pending entry used for duplicate detection.
type Candidate struct {
	Registration string
	DateTime     time.Time
	LocationName string
}

// CandidateOf builds the duplicate candidate for a draft.
func CandidateOf(d schema.EntryDraft) Candidate {
	return Candidate{Registration: d.Registration, DateTime: d.DateTime, LocationName: d.LocationName}
}

// IsDuplicate reports whether c probably repeats an entry in existing.
// A match needs the same normalized registration, the same trimmed location
// compared case-insensitively, and timestamps at most DuplicateWindow apart.
// With an empty registration or location there is nothing to compare and the
// result is false. Pass uuid.Nil as excludeID to exclude nothing.
func IsDuplicate(c Candidate, existing []schema.Entry, excludeID uuid.UUID) bool {
	_, ok := FindDuplicate(c, existing, excludeID)
	return ok
}

// FindDuplicate is IsDuplicate that also returns the first matching entry.
func FindDuplicate(c Candidate, existing []schema.Entry, excludeID uuid.UUID) (schema.Entry, bool) {
	reg := NormalizeRegistration(c.Registration)
	loc := strings.TrimSpace(c.LocationName)
	if reg == "" || loc == "" {
		return schema.Entry{}, false
	}

	for _, e := range existing {
		if excludeID != uuid.Nil && e.ID == excludeID {
			continue
		}
		if !SameRegistration(e.Registration, reg) {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(e.LocationName), loc) {
			continue
		}
		if within(e.DateTime, c.DateTime, DuplicateWindow) {
			return e, true
		}
	}
	return schema.Entry{}, false
}

// ImportSignature identifies an entry for import deduplication. It is
// stricter than the duplicate heuristic: the mode must match and the location
// string must be byte-equal.
type ImportSignature struct {
	Registration string
	Mode         schema.EntryMode
	LocationName string
	DateTime     time.Time
}

// SignatureOf returns the import signature of an entry.
func SignatureOf(e schema.Entry) ImportSignature {
	return ImportSignature{
		Registration: NormalizeRegistration(e.Registration),
		Mode:         e.Mode,
		LocationName: e.LocationName,
		DateTime:     e.DateTime,
	}
}

// Matches reports whether e has the same signature, with timestamps at most
// ImportMatchWindow apart.
func (s ImportSignature) Matches(e schema.Entry) bool {
	return e.Mode == s.Mode &&
		e.LocationName == s.LocationName &&
		SameRegistration(e.Registration, s.Registration) &&
		within(e.DateTime, s.DateTime, ImportMatchWindow)
}

// MatchesAny reports whether any entry in the given sets has this signature.
func (s ImportSignature) MatchesAny(sets ...[]schema.Entry) bool {
	for _, set := range sets {
		for _, e := range set {
			if s.Matches(e) {
				return true
			}
		}
	}
	return false
}

// within reports whether |a - b| <= window.
func within(a, b time.Time, window time.Duration) bool {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d <= window
}
