package algo

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/hangarlog/schema"
)

// syntheticLogbook builds n entries spread over about three years, newest first.
func syntheticLogbook(n int) []schema.Entry {
	locations := []string{"Heathrow", "Gatwick", "Changi", "SFO", "Dubai"}
	entries := make([]schema.Entry, n)
	for i := range entries {
		entries[i] = newEntry(fmt.Sprintf("G-T%03d", i%500), locations[i%len(locations)], base.Add(-time.Duration(i)*2*time.Hour))
		entries[i].AircraftType = fmt.Sprintf("A3%02d", i%20)
		entries[i].Operator = fmt.Sprintf("Operator %d", i%40)
	}
	return entries
}

func BenchmarkIsDuplicate(b *testing.B) {
	entries := syntheticLogbook(10000)
	c := Candidate{Registration: "g-t999", LocationName: "Nowhere", DateTime: base}
	for b.Loop() {
		IsDuplicate(c, entries, uuid.Nil)
	}
}

func BenchmarkInsightFor(b *testing.B) {
	entries := syntheticLogbook(10000)
	for b.Loop() {
		InsightFor("G-T042", entries, uuid.Nil)
	}
}

func BenchmarkHighlights(b *testing.B) {
	entries := syntheticLogbook(10000)
	for b.Loop() {
		Highlights(entries, base, DefaultTopLimit)
	}
}

func BenchmarkFilterEntries(b *testing.B) {
	entries := syntheticLogbook(10000)
	filter := schema.EntryFilter{Mode: schema.OnlySpotted, Period: schema.ThisYear, Search: "changi"}
	for b.Loop() {
		FilterEntries(entries, filter, base)
	}
}
