package algo

import (
	"slices"
	"strings"
	"time"

	"github.com/huangsam/hangarlog/schema"
)

// NoDetailsSummary is shown for entries without operator, type or location.
const NoDetailsSummary = "No extra details"

// FilterEntries returns the entries admitted by the filter, in input order.
// Search is a case-insensitive substring match over registration, operator,
// aircraft type and location name.
func FilterEntries(entries []schema.Entry, filter schema.EntryFilter, now time.Time) []schema.Entry {
	scoped := EntriesInPeriod(entries, filter.Period, now)
	term := strings.ToLower(strings.TrimSpace(filter.Search))

	out := scoped[:0]
	for _, e := range scoped {
		if !filter.Mode.Matches(e.Mode) {
			continue
		}
		if term != "" && !strings.Contains(searchText(e), term) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func searchText(e schema.Entry) string {
	return strings.ToLower(strings.Join([]string{e.Registration, e.Operator, e.AircraftType, e.LocationName}, " "))
}

// SummaryLine joins the non-empty operator, aircraft type and location of an entry.
func SummaryLine(e schema.Entry) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{e.Operator, e.AircraftType, e.LocationName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return NoDetailsSummary
	}
	return strings.Join(parts, " • ")
}

// SortNewestFirst orders entries by timestamp descending, then by ID, in place.
func SortNewestFirst(entries []schema.Entry) {
	slices.SortStableFunc(entries, func(a, b schema.Entry) int {
		switch {
		case newerThan(&a, &b):
			return -1
		case newerThan(&b, &a):
			return 1
		default:
			return 0
		}
	})
}
