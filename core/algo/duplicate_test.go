package algo

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/hangarlog/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDuplicate(t *testing.T) {
	existing := []schema.Entry{newEntry("G-EUPT", "London Heathrow", base)}

	tests := []struct {
		name string
		c    Candidate
		want bool
	}{
		{"same everything", Candidate{"G-EUPT", base, "London Heathrow"}, true},
		{"normalized registration", Candidate{" g-eu pt", base, "London Heathrow"}, true},
		{"location case and spaces", Candidate{"G-EUPT", base, "  london HEATHROW "}, true},
		{"exactly two hours later", Candidate{"G-EUPT", base.Add(7200 * time.Second), "London Heathrow"}, true},
		{"exactly two hours earlier", Candidate{"G-EUPT", base.Add(-7200 * time.Second), "London Heathrow"}, true},
		{"one second past window", Candidate{"G-EUPT", base.Add(7201 * time.Second), "London Heathrow"}, false},
		{"other registration", Candidate{"G-EUPU", base, "London Heathrow"}, false},
		{"other location", Candidate{"G-EUPT", base, "Gatwick"}, false},
		{"empty location", Candidate{"G-EUPT", base, ""}, false},
		{"blank location", Candidate{"G-EUPT", base, "   "}, false},
		{"empty registration", Candidate{"  ", base, "London Heathrow"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDuplicate(tt.c, existing, uuid.Nil))
		})
	}
}

func TestIsDuplicateExcludesEditedEntry(t *testing.T) {
	self := newEntry("N12AB", "KSFO", base)
	c := Candidate{"N12AB", base.Add(time.Minute), "KSFO"}

	assert.True(t, IsDuplicate(c, []schema.Entry{self}, uuid.Nil))
	assert.False(t, IsDuplicate(c, []schema.Entry{self}, self.ID))
}

func TestIsDuplicateOrderIndependent(t *testing.T) {
	entries := []schema.Entry{
		newEntry("A1", "X", base.Add(-5*time.Hour)),
		newEntry("N12AB", "KSFO", base.Add(90*time.Minute)),
		newEntry("B2", "Y", base),
	}
	c := Candidate{"N12AB", base, "KSFO"}
	reversed := slices.Clone(entries)
	slices.Reverse(reversed)

	assert.True(t, IsDuplicate(c, entries, uuid.Nil))
	assert.Equal(t, IsDuplicate(c, entries, uuid.Nil), IsDuplicate(c, reversed, uuid.Nil))
}

func TestFindDuplicateReturnsMatch(t *testing.T) {
	match := newEntry("N12AB", "KSFO", base)
	got, ok := FindDuplicate(Candidate{"n12ab", base.Add(time.Hour), "ksfo"}, []schema.Entry{newEntry("Z", "KSFO", base), match}, uuid.Nil)
	require.True(t, ok)
	assert.Equal(t, match.ID, got.ID)
}

func TestDuplicateErrorIs(t *testing.T) {
	var err error = &DuplicateError{Match: newEntry("N12AB", "KSFO", base)}
	assert.True(t, errors.Is(err, ErrPossibleDuplicate))
	assert.Contains(t, err.Error(), "N12AB")
	assert.Contains(t, err.Error(), "KSFO")
}

func TestImportSignatureMatches(t *testing.T) {
	e := newEntry("N12AB", "KSFO", base)
	sig := ImportSignature{Registration: "n12 ab", Mode: schema.SpottedMode, LocationName: "KSFO", DateTime: base}

	tests := []struct {
		name string
		mut  func(s ImportSignature) ImportSignature
		want bool
	}{
		{"identical", func(s ImportSignature) ImportSignature { return s }, true},
		{"one second later", func(s ImportSignature) ImportSignature { s.DateTime = base.Add(time.Second); return s }, true},
		{"two seconds later", func(s ImportSignature) ImportSignature { s.DateTime = base.Add(2 * time.Second); return s }, false},
		{"other mode", func(s ImportSignature) ImportSignature { s.Mode = schema.FlownMode; return s }, false},
		{"other registration", func(s ImportSignature) ImportSignature { s.Registration = "N12AC"; return s }, false},
		{"location case differs", func(s ImportSignature) ImportSignature { s.LocationName = "ksfo"; return s }, false},
		{"location padded", func(s ImportSignature) ImportSignature { s.LocationName = "KSFO "; return s }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mut(sig).Matches(e))
		})
	}
}

func TestImportSignatureStricterThanHeuristic(t *testing.T) {
	e := newEntry("N12AB", "KSFO", base)
	later := base.Add(30 * time.Minute)

	assert.True(t, IsDuplicate(Candidate{"N12AB", later, "KSFO"}, []schema.Entry{e}, uuid.Nil))
	assert.False(t, SignatureOf(schema.Entry{Registration: "N12AB", Mode: schema.SpottedMode, LocationName: "KSFO", DateTime: later}).Matches(e))
}

func TestImportSignatureMatchesAny(t *testing.T) {
	e := newEntry("N12AB", "KSFO", base)
	sig := SignatureOf(e)
	assert.True(t, sig.MatchesAny(nil, []schema.Entry{e}))
	assert.False(t, sig.MatchesAny())
}
