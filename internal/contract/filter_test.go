package contract

import (
	"testing"

	"github.com/huangsam/hangarlog/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEntryMode(t *testing.T) {
	mode, err := ParseEntryMode(" Flown ")
	require.NoError(t, err)
	assert.Equal(t, schema.FlownMode, mode)

	_, err = ParseEntryMode("glided")
	assert.ErrorContains(t, err, "invalid mode")
}

func TestParseEntryFilter(t *testing.T) {
	tests := []struct {
		name         string
		mode, period string
		search       string
		expected     schema.EntryFilter
		expectErr    string
	}{
		{"defaults", "", "", "", schema.EntryFilter{Mode: schema.AnyMode, Period: schema.AllTime}, ""},
		{"explicit", "SPOTTED", "month", " heathrow ", schema.EntryFilter{Mode: schema.OnlySpotted, Period: schema.ThisMonth, Search: "heathrow"}, ""},
		{"bad mode", "driven", "", "", schema.EntryFilter{}, "invalid mode filter"},
		{"bad period", "", "week", "", schema.EntryFilter{}, "invalid period"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := ParseEntryFilter(tt.mode, tt.period, tt.search)
			if tt.expectErr != "" {
				assert.ErrorContains(t, err, tt.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, filter)
		})
	}
}
