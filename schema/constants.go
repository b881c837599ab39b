package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the entry store.
	DatabaseBackend string

	// BlobBackend represents the storage backend for photo blobs.
	BlobBackend string

	// EntryMode tells whether an aircraft was seen from the ground or flown on.
	EntryMode string

	// Period bounds entries to a calendar window around a reference instant.
	Period string

	// ModeFilter restricts listings to one entry mode.
	ModeFilter string

	// SortOrder is the timestamp ordering used when querying the store.
	SortOrder string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All blob backends supported.
const (
	FSBlobBackend   BlobBackend = "fs" // default
	S3BlobBackend   BlobBackend = "s3"
	NoneBlobBackend BlobBackend = "none"
)

// Entry modes. The string values are part of the CSV format.
const (
	SpottedMode EntryMode = "spotted"
	FlownMode   EntryMode = "flown"
)

// Calendar periods.
const (
	AllTime   Period = "all" // default
	ThisMonth Period = "month"
	ThisYear  Period = "year"
)

// Mode filters for listing.
const (
	AnyMode     ModeFilter = "all" // default
	OnlySpotted ModeFilter = "spotted"
	OnlyFlown   ModeFilter = "flown"
)

// Sort orders for store queries.
const (
	NewestFirst SortOrder = "desc" // default
	OldestFirst SortOrder = "asc"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidBlobBackends lists all valid blob backends.
var ValidBlobBackends = map[BlobBackend]struct{}{
	FSBlobBackend:   {},
	S3BlobBackend:   {},
	NoneBlobBackend: {},
}

// ValidEntryModes lists all valid entry modes.
var ValidEntryModes = map[EntryMode]struct{}{
	SpottedMode: {},
	FlownMode:   {},
}

// ValidPeriods lists all valid periods.
var ValidPeriods = map[Period]struct{}{
	AllTime:   {},
	ThisMonth: {},
	ThisYear:  {},
}

// ValidModeFilters lists all valid mode filters.
var ValidModeFilters = map[ModeFilter]struct{}{
	AnyMode:     {},
	OnlySpotted: {},
	OnlyFlown:   {},
}

// IsValid reports whether m is one of the known entry modes.
// The comparison is exact; "Spotted" is not a valid mode.
func (m EntryMode) IsValid() bool {
	_, ok := ValidEntryModes[m]
	return ok
}

// Label returns the display label of the mode.
func (m EntryMode) Label() string {
	switch m {
	case SpottedMode:
		return "Spotted"
	case FlownMode:
		return "Flown"
	default:
		return string(m)
	}
}

// Matches reports whether the filter admits the given mode.
func (f ModeFilter) Matches(m EntryMode) bool {
	switch f {
	case OnlySpotted:
		return m == SpottedMode
	case OnlyFlown:
		return m == FlownMode
	default:
		return true
	}
}
