package algo

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/hangarlog/schema"
	"github.com/stretchr/testify/assert"
)

func TestFilterEntries(t *testing.T) {
	now := time.Date(2025, time.March, 14, 12, 0, 0, 0, time.UTC)
	spotted := newEntry("N12AB", "San Francisco", now)
	spotted.Operator = "United"
	spotted.AircraftType = "B738"
	flown := newEntry("G-EUPT", "Heathrow", now.AddDate(0, -1, 0))
	flown.Mode = schema.FlownMode
	flown.Operator = "British Airways"
	old := newEntry("D-AIZZ", "Frankfurt", now.AddDate(-1, 0, 0))
	entries := []schema.Entry{spotted, flown, old}

	ids := func(es []schema.Entry) []uuid.UUID {
		out := []uuid.UUID{}
		for _, e := range es {
			out = append(out, e.ID)
		}
		return out
	}

	tests := []struct {
		name   string
		filter schema.EntryFilter
		want   []uuid.UUID
	}{
		{"no filter", schema.EntryFilter{}, []uuid.UUID{spotted.ID, flown.ID, old.ID}},
		{"spotted only", schema.EntryFilter{Mode: schema.OnlySpotted}, []uuid.UUID{spotted.ID, old.ID}},
		{"flown only", schema.EntryFilter{Mode: schema.OnlyFlown}, []uuid.UUID{flown.ID}},
		{"this month", schema.EntryFilter{Period: schema.ThisMonth}, []uuid.UUID{spotted.ID}},
		{"this year", schema.EntryFilter{Period: schema.ThisYear}, []uuid.UUID{spotted.ID, flown.ID}},
		{"search operator", schema.EntryFilter{Search: "british"}, []uuid.UUID{flown.ID}},
		{"search type", schema.EntryFilter{Search: "b73"}, []uuid.UUID{spotted.ID}},
		{"search registration", schema.EntryFilter{Search: "d-ai"}, []uuid.UUID{old.ID}},
		{"search location", schema.EntryFilter{Search: " FRANK "}, []uuid.UUID{old.ID}},
		{"combined", schema.EntryFilter{Mode: schema.OnlySpotted, Period: schema.ThisYear, Search: "frank"}, []uuid.UUID{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterEntries(entries, tt.filter, now)))
		})
	}
}

func TestSummaryLine(t *testing.T) {
	e := schema.Entry{Operator: "United", AircraftType: "B738", LocationName: "KSFO"}
	assert.Equal(t, "United • B738 • KSFO", SummaryLine(e))
	assert.Equal(t, "B738", SummaryLine(schema.Entry{AircraftType: " B738 "}))
	assert.Equal(t, NoDetailsSummary, SummaryLine(schema.Entry{}))
}

func TestSortNewestFirst(t *testing.T) {
	a := newEntry("A", "", base.Add(-time.Hour))
	b := newEntry("B", "", base)
	c := newEntry("C", "", base.Add(-2*time.Hour))
	entries := []schema.Entry{a, b, c}

	SortNewestFirst(entries)
	assert.Equal(t, []string{"B", "A", "C"}, []string{entries[0].Registration, entries[1].Registration, entries[2].Registration})
}
