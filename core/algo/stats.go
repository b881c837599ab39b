package algo

import (
	"time"

	"github.com/huangsam/hangarlog/schema"
)

// RecentFirstsLimit caps the first-sighting list of the overview.
const RecentFirstsLimit = 10

// civilDay is a calendar date in some location.
type civilDay struct {
	year  int
	month time.Month
	day   int
}

func dayOf(t time.Time, loc *time.Location) civilDay {
	y, m, d := t.In(loc).Date()
	return civilDay{y, m, d}
}

// EntryStreakDays counts consecutive calendar days, ending today, on which
// at least one entry was logged. Days are taken in now's location. If today
// has no entry the streak is 0, whatever happened before.
func EntryStreakDays(entries []schema.Entry, now time.Time) int {
	loc := now.Location()
	days := make(map[civilDay]struct{}, len(entries))
	for _, e := range entries {
		days[dayOf(e.DateTime, loc)] = struct{}{}
	}

	y, m, d := now.Date()
	cursor := time.Date(y, m, d, 12, 0, 0, 0, loc) // noon never falls in a DST gap
	streak := 0
	for {
		if _, ok := days[dayOf(cursor, loc)]; !ok {
			return streak
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
}

// EntriesInPeriod returns the entries whose timestamp falls in the same
// calendar month or year as ref, in ref's location. AllTime keeps everything.
// The result is a new slice.
func EntriesInPeriod(entries []schema.Entry, period schema.Period, ref time.Time) []schema.Entry {
	loc := ref.Location()
	refYear, refMonth, _ := ref.Date()

	out := make([]schema.Entry, 0, len(entries))
	for _, e := range entries {
		y, m, _ := e.DateTime.In(loc).Date()
		switch period {
		case schema.ThisMonth:
			if y != refYear || m != refMonth {
				continue
			}
		case schema.ThisYear:
			if y != refYear {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

// Highlights computes the statistics report as of now.
func Highlights(entries []schema.Entry, now time.Time, limit int) schema.StatsReport {
	year := EntriesInPeriod(entries, schema.ThisYear, now)
	month := EntriesInPeriod(entries, schema.ThisMonth, now)

	types := make([]string, 0, len(entries))
	operators := make([]string, 0, len(entries))
	for _, e := range entries {
		types = append(types, e.AircraftType)
		operators = append(operators, e.Operator)
	}

	report := schema.StatsReport{
		EntriesThisYear:             len(year),
		EntriesThisMonth:            len(month),
		UniqueRegistrationsThisYear: UniqueRegistrations(year),
		StreakDays:                  EntryStreakDays(entries, now),
		TopAircraftTypes:            TopCounts(types, limit),
		TopOperators:                TopCounts(operators, limit),
	}
	if top, ok := TopRegistration(entries); ok {
		report.TopRegistration = &top
	}
	return report
}

// BuildOverview computes the logbook headline numbers as of now.
func BuildOverview(entries []schema.Entry, now time.Time) schema.Overview {
	ov := schema.Overview{
		UniqueRegistrations: UniqueRegistrations(entries),
		EntriesThisMonth:    len(EntriesInPeriod(entries, schema.ThisMonth, now)),
		RecentFirsts:        []schema.Entry{},
	}
	var firsts []schema.Entry
	for _, e := range entries {
		switch e.Mode {
		case schema.SpottedMode:
			ov.TotalSpotted++
		case schema.FlownMode:
			ov.TotalFlown++
		}
		if e.IsFirstForRegistration {
			firsts = append(firsts, e)
		}
	}
	SortNewestFirst(firsts)
	if len(firsts) > RecentFirstsLimit {
		firsts = firsts[:RecentFirstsLimit]
	}
	if len(firsts) > 0 {
		ov.RecentFirsts = firsts
	}
	return ov
}
