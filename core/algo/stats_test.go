package algo

import (
	"testing"
	"time"

	"github.com/huangsam/hangarlog/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func daysAgo(now time.Time, n int) time.Time {
	return now.AddDate(0, 0, -n)
}

func TestEntryStreakDays(t *testing.T) {
	now := time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		dates []time.Time
		want  int
	}{
		{"no entries", nil, 0},
		{"today only", []time.Time{now}, 1},
		{"three consecutive days", []time.Time{now, daysAgo(now, 1), daysAgo(now, 2)}, 3},
		{"gap stops the streak", []time.Time{now, daysAgo(now, 1), daysAgo(now, 3)}, 2},
		{"multiple entries one day", []time.Time{now, now.Add(-time.Hour), daysAgo(now, 1)}, 2},
		{"nothing today", []time.Time{daysAgo(now, 1), daysAgo(now, 2), daysAgo(now, 3)}, 0},
		{"late last night counts as yesterday", []time.Time{now, time.Date(2025, time.March, 13, 23, 59, 0, 0, time.UTC)}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var entries []schema.Entry
			for _, d := range tt.dates {
				entries = append(entries, newEntry("N1", "", d))
			}
			assert.Equal(t, tt.want, EntryStreakDays(entries, now))
		})
	}
}

func TestEntryStreakDaysUsesLocalCalendar(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	now := time.Date(2025, time.March, 14, 10, 0, 0, 0, tokyo)
	// 2025-03-13 16:00 UTC is 2025-03-14 01:00 in Tokyo.
	entries := []schema.Entry{newEntry("N1", "", time.Date(2025, time.March, 13, 16, 0, 0, 0, time.UTC))}

	assert.Equal(t, 1, EntryStreakDays(entries, now))
	assert.Equal(t, 0, EntryStreakDays(entries, now.In(time.UTC)))
}

func TestEntriesInPeriod(t *testing.T) {
	ref := time.Date(2025, time.March, 14, 12, 0, 0, 0, time.UTC)
	entries := []schema.Entry{
		newEntry("A", "", time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)),
		newEntry("B", "", time.Date(2025, time.February, 28, 23, 59, 59, 0, time.UTC)),
		newEntry("C", "", time.Date(2024, time.March, 14, 12, 0, 0, 0, time.UTC)),
		newEntry("D", "", time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)),
	}

	regs := func(es []schema.Entry) []string {
		out := []string{}
		for _, e := range es {
			out = append(out, e.Registration)
		}
		return out
	}

	assert.Equal(t, []string{"A"}, regs(EntriesInPeriod(entries, schema.ThisMonth, ref)))
	assert.Equal(t, []string{"A", "B", "D"}, regs(EntriesInPeriod(entries, schema.ThisYear, ref)))
	assert.Equal(t, []string{"A", "B", "C", "D"}, regs(EntriesInPeriod(entries, schema.AllTime, ref)))
}

func TestEntriesInPeriodReturnsNewSlice(t *testing.T) {
	entries := []schema.Entry{newEntry("A", "", base)}
	got := EntriesInPeriod(entries, schema.AllTime, base)
	got[0].Registration = "changed"
	assert.Equal(t, "A", entries[0].Registration)
}

func TestHighlights(t *testing.T) {
	now := time.Date(2025, time.March, 14, 18, 0, 0, 0, time.UTC)
	mk := func(reg, typ, op string, when time.Time) schema.Entry {
		e := newEntry(reg, "", when)
		e.AircraftType = typ
		e.Operator = op
		return e
	}
	entries := []schema.Entry{
		mk("N12AB", "B738", "United", now),
		mk("N12AB", "B738", "United", daysAgo(now, 1)),
		mk("G-EUPT", "A319", "British Airways", daysAgo(now, 20)),
		mk("D-AIZZ", "A320", "", time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)),
	}

	report := Highlights(entries, now, DefaultTopLimit)
	assert.Equal(t, 3, report.EntriesThisYear)
	assert.Equal(t, 2, report.EntriesThisMonth)
	assert.Equal(t, 2, report.UniqueRegistrationsThisYear)
	assert.Equal(t, 2, report.StreakDays)
	require.NotNil(t, report.TopRegistration)
	assert.Equal(t, schema.CountItem{Value: "N12AB", Count: 2}, *report.TopRegistration)
	assert.Equal(t, schema.CountItem{Value: "B738", Count: 2}, report.TopAircraftTypes[0])
	assert.Len(t, report.TopAircraftTypes, 3)
	assert.Len(t, report.TopOperators, 2)
}

func TestHighlightsEmpty(t *testing.T) {
	report := Highlights(nil, base, DefaultTopLimit)
	assert.Nil(t, report.TopRegistration)
	assert.Empty(t, report.TopAircraftTypes)
	assert.Zero(t, report.StreakDays)
}

func TestBuildOverview(t *testing.T) {
	now := time.Date(2025, time.March, 14, 18, 0, 0, 0, time.UTC)
	first := newEntry("N12AB", "", daysAgo(now, 2))
	first.IsFirstForRegistration = true
	newer := newEntry("C-FABC", "", daysAgo(now, 1))
	newer.IsFirstForRegistration = true
	newer.Mode = schema.FlownMode
	repeat := newEntry("N12AB", "", now)
	old := newEntry("D-AIZZ", "", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))

	ov := BuildOverview([]schema.Entry{first, repeat, newer, old}, now)
	assert.Equal(t, 3, ov.TotalSpotted)
	assert.Equal(t, 1, ov.TotalFlown)
	assert.Equal(t, 3, ov.UniqueRegistrations)
	assert.Equal(t, 3, ov.EntriesThisMonth)
	require.Len(t, ov.RecentFirsts, 2)
	assert.Equal(t, newer.ID, ov.RecentFirsts[0].ID)
	assert.Equal(t, first.ID, ov.RecentFirsts[1].ID)
}

func TestBuildOverviewCapsRecentFirsts(t *testing.T) {
	var entries []schema.Entry
	for i := range RecentFirstsLimit + 5 {
		e := newEntry("N1", "", base.Add(time.Duration(i)*time.Minute))
		e.IsFirstForRegistration = true
		entries = append(entries, e)
	}
	ov := BuildOverview(entries, base)
	assert.Len(t, ov.RecentFirsts, RecentFirstsLimit)
	assert.Equal(t, entries[len(entries)-1].ID, ov.RecentFirsts[0].ID)
}
