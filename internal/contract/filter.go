package contract

import (
	"fmt"
	"strings"

	"github.com/huangsam/hangarlog/schema"
)

// ParseEntryMode parses an entry mode given by a user, ignoring case.
func ParseEntryMode(s string) (schema.EntryMode, error) {
	mode := schema.EntryMode(strings.ToLower(strings.TrimSpace(s)))
	if !mode.IsValid() {
		return "", fmt.Errorf("invalid mode '%s'. Must be one of: spotted, flown", s)
	}
	return mode, nil
}

// ParseEntryFilter builds a listing filter. Empty mode and period select everything.
func ParseEntryFilter(mode, period, search string) (schema.EntryFilter, error) {
	filter := schema.EntryFilter{
		Mode:   schema.AnyMode,
		Period: schema.AllTime,
		Search: strings.TrimSpace(search),
	}
	if m := strings.ToLower(strings.TrimSpace(mode)); m != "" {
		filter.Mode = schema.ModeFilter(m)
		if _, ok := schema.ValidModeFilters[filter.Mode]; !ok {
			return schema.EntryFilter{}, fmt.Errorf("invalid mode filter '%s'. Must be one of: all, spotted, flown", mode)
		}
	}
	if p := strings.ToLower(strings.TrimSpace(period)); p != "" {
		filter.Period = schema.Period(p)
		if _, ok := schema.ValidPeriods[filter.Period]; !ok {
			return schema.EntryFilter{}, fmt.Errorf("invalid period '%s'. Must be one of: all, month, year", period)
		}
	}
	return filter, nil
}
