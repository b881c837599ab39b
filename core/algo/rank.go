package algo

import (
	"cmp"
	"slices"
	"strings"

	"github.com/huangsam/hangarlog/schema"
)

// DefaultTopLimit is the leaderboard length used by the stats view.
const DefaultTopLimit = 10

// TopCounts counts values by their trimmed text and returns the most frequent
// first. Empty values are dropped and comparison is case-sensitive. Ties are
// ordered by ascending byte-wise value. A limit <= 0 keeps every row.
func TopCounts(values []string, limit int) []schema.CountItem {
	counts := make(map[string]int)
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		counts[v]++
	}
	return rankCounts(counts, limit)
}

// TopRegistration returns the most logged normalized registration.
// Ties go to the lexicographically smallest registration.
func TopRegistration(entries []schema.Entry) (schema.CountItem, bool) {
	counts := registrationCounts(entries)
	ranked := rankCounts(counts, 1)
	if len(ranked) == 0 {
		return schema.CountItem{}, false
	}
	return ranked[0], true
}

// UniqueRegistrations counts distinct non-empty normalized registrations.
func UniqueRegistrations(entries []schema.Entry) int {
	return len(registrationCounts(entries))
}

func registrationCounts(entries []schema.Entry) map[string]int {
	counts := make(map[string]int)
	for _, e := range entries {
		reg := NormalizeRegistration(e.Registration)
		if reg == "" {
			continue
		}
		counts[reg]++
	}
	return counts
}

// rankCounts sorts counts by count descending, then value ascending, and
// truncates to limit when limit > 0.
func rankCounts(counts map[string]int, limit int) []schema.CountItem {
	items := make([]schema.CountItem, 0, len(counts))
	for value, count := range counts {
		items = append(items, schema.CountItem{Value: value, Count: count})
	}
	slices.SortFunc(items, func(a, b schema.CountItem) int {
		if a.Count != b.Count {
			return cmp.Compare(b.Count, a.Count)
		}
		return strings.Compare(a.Value, b.Value)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
