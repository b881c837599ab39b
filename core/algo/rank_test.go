package algo

import (
	"testing"

	"github.com/huangsam/hangarlog/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopCounts(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		limit  int
		want   []schema.CountItem
	}{
		{
			name:   "trim only, case kept, ties in byte order",
			values: []string{"A", "a ", "B", "A"},
			limit:  DefaultTopLimit,
			want:   []schema.CountItem{{Value: "A", Count: 2}, {Value: "B", Count: 1}, {Value: "a", Count: 1}},
		},
		{
			name:   "empties dropped",
			values: []string{"", "  ", "A320", " A320"},
			limit:  DefaultTopLimit,
			want:   []schema.CountItem{{Value: "A320", Count: 2}},
		},
		{
			name:   "truncated",
			values: []string{"c", "b", "a", "c"},
			limit:  2,
			want:   []schema.CountItem{{Value: "c", Count: 2}, {Value: "a", Count: 1}},
		},
		{
			name:   "no limit",
			values: []string{"z", "y", "x"},
			limit:  0,
			want:   []schema.CountItem{{Value: "x", Count: 1}, {Value: "y", Count: 1}, {Value: "z", Count: 1}},
		},
		{
			name:   "nothing",
			values: nil,
			limit:  DefaultTopLimit,
			want:   []schema.CountItem{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TopCounts(tt.values, tt.limit))
		})
	}
}

func TestTopCountsDefaultLimit(t *testing.T) {
	values := make([]string, 0, 26)
	for r := 'a'; r <= 'z'; r++ {
		values = append(values, string(r))
	}
	assert.Len(t, TopCounts(values, DefaultTopLimit), DefaultTopLimit)
}

func TestTopRegistration(t *testing.T) {
	entries := []schema.Entry{
		newEntry("n12ab", "", base),
		newEntry("N12AB", "", base),
		newEntry("C-FABC", "", base),
		newEntry(" ", "", base),
	}
	got, ok := TopRegistration(entries)
	require.True(t, ok)
	assert.Equal(t, schema.CountItem{Value: "N12AB", Count: 2}, got)
}

func TestTopRegistrationTieIsLexicographic(t *testing.T) {
	entries := []schema.Entry{
		newEntry("ZS-SNA", "", base),
		newEntry("D-AIZZ", "", base),
		newEntry("G-EUPT", "", base),
	}
	got, ok := TopRegistration(entries)
	require.True(t, ok)
	assert.Equal(t, "D-AIZZ", got.Value)
}

func TestTopRegistrationEmpty(t *testing.T) {
	_, ok := TopRegistration([]schema.Entry{newEntry("", "", base)})
	assert.False(t, ok)
}

func TestUniqueRegistrations(t *testing.T) {
	entries := []schema.Entry{
		newEntry("n12ab", "", base),
		newEntry("N1 2AB", "", base),
		newEntry("C-FABC", "", base),
		newEntry("", "", base),
	}
	assert.Equal(t, 2, UniqueRegistrations(entries))
}
