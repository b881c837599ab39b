package schema

// CountItem is one row of a leaderboard.
type CountItem struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Overview holds the headline numbers of the logbook.
type Overview struct {
	TotalSpotted        int     `json:"total_spotted"`
	TotalFlown          int     `json:"total_flown"`
	UniqueRegistrations int     `json:"unique_registrations"`
	EntriesThisMonth    int     `json:"entries_this_month"`
	RecentFirsts        []Entry `json:"recent_firsts"`
}

// StatsReport holds the statistics highlights.
type StatsReport struct {
	EntriesThisYear             int         `json:"entries_this_year"`
	EntriesThisMonth            int         `json:"entries_this_month"`
	UniqueRegistrationsThisYear int         `json:"unique_registrations_this_year"`
	StreakDays                  int         `json:"streak_days"`
	TopRegistration             *CountItem  `json:"top_registration,omitempty"`
	TopAircraftTypes            []CountItem `json:"top_aircraft_types"`
	TopOperators                []CountItem `json:"top_operators"`
}

// ImportIssue explains why a CSV row was skipped or a photo reference dropped from it.
// Row is the 1-based data row number, not counting the header.
type ImportIssue struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportResult is the outcome of importing a CSV document.
type ImportResult struct {
	Entries  []Entry       `json:"-"`
	Imported int           `json:"imported"`
	Skipped  int           `json:"skipped"`
	Issues   []ImportIssue `json:"issues,omitempty"`
}

// DuplicateCheck is the outcome of checking a prospective entry against the logbook.
type DuplicateCheck struct {
	Registration string              `json:"registration"`
	IsDuplicate  bool                `json:"is_duplicate"`
	Match        *Entry              `json:"match,omitempty"`
	Insight      RegistrationInsight `json:"insight"`
}
