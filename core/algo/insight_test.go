package algo

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/hangarlog/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsightForEmpty(t *testing.T) {
	got := InsightFor("N12AB", nil, uuid.Nil)
	assert.Equal(t, 0, got.Count)
	assert.Nil(t, got.LastSeenDate)
	assert.Nil(t, got.LastSeenLocation)
}

func TestInsightForBlankRegistration(t *testing.T) {
	entries := []schema.Entry{newEntry("", "KSFO", base)}
	assert.Equal(t, schema.RegistrationInsight{}, InsightFor("  ", entries, uuid.Nil))
}

func TestInsightForMostRecent(t *testing.T) {
	entries := []schema.Entry{
		newEntry("N12AB", "KSFO", base.Add(-48*time.Hour)),
		newEntry("n12ab", "KOAK", base),
		newEntry("N12AB", "KSJC", base.Add(-time.Hour)),
		newEntry("C-FABC", "CYVR", base.Add(time.Hour)),
	}

	got := InsightFor(" n1 2ab", entries, uuid.Nil)
	assert.Equal(t, 3, got.Count)
	require.NotNil(t, got.LastSeenDate)
	assert.True(t, base.Equal(*got.LastSeenDate))
	require.NotNil(t, got.LastSeenLocation)
	assert.Equal(t, "KOAK", *got.LastSeenLocation)
}

func TestInsightForExcludesEntry(t *testing.T) {
	older := newEntry("N12AB", "KSFO", base.Add(-time.Hour))
	newest := newEntry("N12AB", "KOAK", base)

	got := InsightFor("N12AB", []schema.Entry{older, newest}, newest.ID)
	assert.Equal(t, 1, got.Count)
	require.NotNil(t, got.LastSeenLocation)
	assert.Equal(t, "KSFO", *got.LastSeenLocation)
}

func TestInsightForEmptyLocation(t *testing.T) {
	got := InsightFor("N12AB", []schema.Entry{newEntry("N12AB", "", base)}, uuid.Nil)
	assert.Equal(t, 1, got.Count)
	assert.NotNil(t, got.LastSeenDate)
	assert.Nil(t, got.LastSeenLocation)
}

func TestInsightForTieBreakByID(t *testing.T) {
	a := newEntry("N12AB", "First", base)
	b := newEntry("N12AB", "Second", base)
	a.ID = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	b.ID = uuid.MustParse("00000000-0000-0000-0000-000000000002")

	for _, entries := range [][]schema.Entry{{a, b}, {b, a}} {
		got := InsightFor("N12AB", entries, uuid.Nil)
		require.NotNil(t, got.LastSeenLocation)
		assert.Equal(t, "First", *got.LastSeenLocation)
	}
}

func TestInsightForDoesNotMutateInput(t *testing.T) {
	entries := []schema.Entry{
		newEntry("N12AB", "A", base.Add(-time.Hour)),
		newEntry("N12AB", "B", base),
	}
	before := []uuid.UUID{entries[0].ID, entries[1].ID}

	got := InsightFor("N12AB", entries, uuid.Nil)
	*got.LastSeenLocation = "changed"

	assert.Equal(t, before, []uuid.UUID{entries[0].ID, entries[1].ID})
	assert.Equal(t, "B", entries[1].LocationName)
}
