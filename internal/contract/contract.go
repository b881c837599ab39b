// Package contract provides interfaces and shared utilities for the HangarLog CLI's internal architecture.
package contract

import (
	"context"

	"github.com/google/uuid"
	"github.com/huangsam/hangarlog/schema"
)

// EntryStore defines the persistence operations for logbook entries.
// This allows the core layer to be tested without a real database.
type EntryStore interface {
	// --- Writes ---

	// Insert stores a new entry together with its photo keys.
	Insert(ctx context.Context, entry schema.Entry) error

	// InsertBatch stores all entries in one transaction. Either every entry
	// is written or none is.
	InsertBatch(ctx context.Context, entries []schema.Entry) error

	// Update overwrites an existing entry in place, keeping its ID and
	// creation time. It returns schema.ErrEntryNotFound if the ID is unknown.
	Update(ctx context.Context, entry schema.Entry) error

	// Delete removes one entry and its photo keys.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteAll removes every entry and returns how many were removed.
	DeleteAll(ctx context.Context) (int64, error)

	// --- Reads ---

	// Get returns one entry or schema.ErrEntryNotFound.
	Get(ctx context.Context, id uuid.UUID) (schema.Entry, error)

	// QueryAll returns every entry ordered by timestamp.
	QueryAll(ctx context.Context, order schema.SortOrder) ([]schema.Entry, error)

	// GetStatus returns status information about the store.
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// BlobStore is an opaque key-addressed store for photo data.
// Keys are generated by the store on Save.
type BlobStore interface {
	Save(ctx context.Context, data []byte) (string, error)
	Load(ctx context.Context, key string) ([]byte, error) // schema.ErrBlobNotFound when absent
	Delete(ctx context.Context, key string) error
}

// StoreManager defines the interface for managing the configured stores.
// This allows the storage layer to be mocked for testing.
type StoreManager interface {
	GetEntryStore() EntryStore
	GetBlobStore() BlobStore
}

// Locator resolves the current position of the device.
type Locator interface {
	RequestLocation(ctx context.Context) (schema.Coordinate, error)
}
