// Package iostore persists logbook entries and wires the configured photo store.
package iostore

import (
	"sync"

	"github.com/huangsam/hangarlog/internal/contract"
)

// StoreManager holds the entry store and the blob store of the process.
type StoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	entries      contract.EntryStore
	blobs        contract.BlobStore
}

var _ contract.StoreManager = &StoreManager{} // Compile-time check

// NewStoreManager returns a manager over the given stores.
func NewStoreManager(entries contract.EntryStore, blobs contract.BlobStore) *StoreManager {
	return &StoreManager{entries: entries, blobs: blobs}
}

// GetEntryStore returns the entry store.
func (mgr *StoreManager) GetEntryStore() contract.EntryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.entries
}

// GetBlobStore returns the photo blob store.
func (mgr *StoreManager) GetBlobStore() contract.BlobStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.blobs
}
