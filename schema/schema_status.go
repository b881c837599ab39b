package schema

import (
	"errors"
	"time"
)

// Sentinel errors shared by stores.
var (
	ErrEntryNotFound = errors.New("entry not found")
	ErrBlobNotFound  = errors.New("blob not found")
)

// StoreStatus represents the status of the entry store.
type StoreStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	SchemaVersion   uint      `json:"schema_version"`
	TotalEntries    int       `json:"total_entries"`
	TotalPhotos     int       `json:"total_photos"`
	NewestEntryTime time.Time `json:"newest_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}
