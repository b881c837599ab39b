// Package core runs logbook operations against the configured stores.
//
// The pure rules live in core/algo and core/codec; this package loads the
// snapshot they work on, persists their results and releases photo blobs.
package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/huangsam/hangarlog/internal/blobstore"
	"github.com/huangsam/hangarlog/internal/contract"
	"github.com/huangsam/hangarlog/internal/logging"
	"github.com/huangsam/hangarlog/schema"
)

// ErrAmbiguousRef is returned when an ID prefix matches more than one entry.
var ErrAmbiguousRef = errors.New("ambiguous entry id prefix")

// ExecutorFunc defines the function signature for commands that only need the stores.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error

// loadEntries returns a fresh snapshot of the logbook, newest first.
func loadEntries(ctx context.Context, mgr contract.StoreManager) ([]schema.Entry, error) {
	entries, err := mgr.GetEntryStore().QueryAll(ctx, schema.NewestFirst)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	return entries, nil
}

// blobsOf returns the configured blob store, or a store that holds nothing.
func blobsOf(mgr contract.StoreManager) contract.BlobStore {
	if blobs := mgr.GetBlobStore(); blobs != nil {
		return blobs
	}
	return blobstore.NoneStore{}
}

// ResolveEntry finds the entry identified by ref.
// A ref is a full UUID or a unique prefix of one, compared case-insensitively.
func ResolveEntry(entries []schema.Entry, ref string) (schema.Entry, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return schema.Entry{}, fmt.Errorf("%w: empty id", schema.ErrEntryNotFound)
	}
	if id, err := uuid.Parse(ref); err == nil {
		for _, e := range entries {
			if e.ID == id {
				return e.Clone(), nil
			}
		}
		return schema.Entry{}, fmt.Errorf("%w: %s", schema.ErrEntryNotFound, ref)
	}

	var found []schema.Entry
	for _, e := range entries {
		if strings.HasPrefix(e.ID.String(), ref) {
			found = append(found, e)
		}
	}
	switch len(found) {
	case 0:
		return schema.Entry{}, fmt.Errorf("%w: %s", schema.ErrEntryNotFound, ref)
	case 1:
		return found[0].Clone(), nil
	default:
		return schema.Entry{}, fmt.Errorf("%w: %s matches %d entries", ErrAmbiguousRef, ref, len(found))
	}
}

// resolveStored loads the logbook and resolves ref against it.
func resolveStored(ctx context.Context, mgr contract.StoreManager, ref string) (schema.Entry, []schema.Entry, error) {
	entries, err := loadEntries(ctx, mgr)
	if err != nil {
		return schema.Entry{}, nil, err
	}
	entry, err := ResolveEntry(entries, ref)
	if err != nil {
		return schema.Entry{}, nil, err
	}
	return entry, entries, nil
}

// readPhotoFiles reads every photo before anything is stored so a bad path
// fails the operation without side effects.
func readPhotoFiles(paths []string) ([][]byte, error) {
	photos := make([][]byte, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read photo %s: %w", p, err)
		}
		photos = append(photos, data)
	}
	return photos, nil
}

// storePhotos saves the photos and returns their keys in order.
// On failure the photos saved so far are released again.
func storePhotos(ctx context.Context, blobs contract.BlobStore, photos [][]byte) ([]string, error) {
	keys := make([]string, 0, len(photos))
	for _, data := range photos {
		key, err := blobs.Save(ctx, data)
		if err != nil {
			releasePhotos(ctx, blobs, keys)
			return nil, fmt.Errorf("failed to store photo: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// releasePhotos deletes photo blobs. Failures are logged and never returned:
// the entry change they follow has already been committed.
func releasePhotos(ctx context.Context, blobs contract.BlobStore, keys []string) {
	for _, key := range keys {
		if err := blobs.Delete(ctx, key); err != nil {
			logging.Warn("failed to release photo", "key", key, "error", err)
		}
	}
}
