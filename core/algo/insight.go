package algo

import (
	"github.com/google/uuid"
	"github.com/huangsam/hangarlog/schema"
)

// InsightFor summarizes how often a registration was logged and where it was
// seen last. Entries with excludeID are ignored, so an entry being edited does
// not count itself. When two matches share the latest timestamp the one with
// the smaller ID string wins.
func InsightFor(registration string, existing []schema.Entry, excludeID uuid.UUID) schema.RegistrationInsight {
	reg := NormalizeRegistration(registration)
	if reg == "" {
		return schema.RegistrationInsight{}
	}

	var (
		count  int
		latest *schema.Entry
	)
	for i := range existing {
		e := &existing[i]
		if excludeID != uuid.Nil && e.ID == excludeID {
			continue
		}
		if !SameRegistration(e.Registration, reg) {
			continue
		}
		count++
		if latest == nil || newerThan(e, latest) {
			latest = e
		}
	}

	insight := schema.RegistrationInsight{Count: count}
	if latest != nil {
		when := latest.DateTime
		insight.LastSeenDate = &when
		if latest.LocationName != "" {
			loc := latest.LocationName
			insight.LastSeenLocation = &loc
		}
	}
	return insight
}

// newerThan orders entries by timestamp, then by ID for equal timestamps.
func newerThan(a, b *schema.Entry) bool {
	if !a.DateTime.Equal(b.DateTime) {
		return a.DateTime.After(b.DateTime)
	}
	return a.ID.String() < b.ID.String()
}
