package core

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/huangsam/hangarlog/core/algo"
	"github.com/huangsam/hangarlog/internal/contract"
	"github.com/huangsam/hangarlog/internal/logging"
	"github.com/huangsam/hangarlog/schema"
)

// AddRequest describes a new logbook entry.
type AddRequest struct {
	Draft       schema.EntryDraft
	PhotoFiles  []string // paths of photos to attach, in order
	UseLocation bool     // fill coordinates from the locator
	Force       bool     // save even if it looks like a duplicate
}

// AddEntry validates and stores a new entry.
// A *algo.ValidationError or *algo.DuplicateError is returned unwrapped so
// the caller can tell the two apart.
func AddEntry(ctx context.Context, mgr contract.StoreManager, locator contract.Locator, req AddRequest) (schema.Entry, error) {
	existing, err := loadEntries(ctx, mgr)
	if err != nil {
		return schema.Entry{}, err
	}

	draft := req.Draft
	if req.UseLocation {
		coord, err := locator.RequestLocation(ctx)
		if err != nil {
			return schema.Entry{}, fmt.Errorf("failed to resolve location: %w", err)
		}
		draft.Latitude = &coord.Latitude
		draft.Longitude = &coord.Longitude
	}

	photos, err := readPhotoFiles(req.PhotoFiles)
	if err != nil {
		return schema.Entry{}, err
	}

	entry, err := algo.PlanSave(draft, existing, nil, req.Force)
	if err != nil {
		return schema.Entry{}, err
	}

	blobs := blobsOf(mgr)
	keys, err := storePhotos(ctx, blobs, photos)
	if err != nil {
		return schema.Entry{}, err
	}
	entry.Photos = append(entry.Photos, keys...)
	entry.CreatedAt = time.Now()

	if err := mgr.GetEntryStore().Insert(ctx, entry); err != nil {
		releasePhotos(ctx, blobs, keys)
		return schema.Entry{}, fmt.Errorf("failed to save entry: %w", err)
	}
	logging.Debug("entry added", "id", entry.ID, "registration", entry.Registration, "first", entry.IsFirstForRegistration)
	return entry, nil
}

// EntryPatch lists the fields to change on an existing entry. Nil fields are kept.
type EntryPatch struct {
	Mode         *schema.EntryMode
	Registration *string
	AircraftType *string
	Operator     *string
	DateTime     *time.Time
	LocationName *string
	Latitude     *float64
	Longitude    *float64
	FlightNumber *string
	Origin       *string
	Destination  *string
	Notes        *string

	ClearCoordinates bool     // unset both coordinates before applying Latitude and Longitude
	AddPhotos        []string // paths of photos to append
	RemovePhotos     []string // keys of photos to detach and release
	Force            bool
}

// apply returns the draft with the patch applied.
func (p EntryPatch) apply(d schema.EntryDraft) schema.EntryDraft {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	if p.Mode != nil {
		d.Mode = *p.Mode
	}
	setString(&d.Registration, p.Registration)
	setString(&d.AircraftType, p.AircraftType)
	setString(&d.Operator, p.Operator)
	setString(&d.LocationName, p.LocationName)
	setString(&d.FlightNumber, p.FlightNumber)
	setString(&d.Origin, p.Origin)
	setString(&d.Destination, p.Destination)
	setString(&d.Notes, p.Notes)
	if p.DateTime != nil {
		d.DateTime = *p.DateTime
	}
	if p.ClearCoordinates {
		d.Latitude, d.Longitude = nil, nil
	}
	if p.Latitude != nil {
		lat := *p.Latitude
		d.Latitude = &lat
	}
	if p.Longitude != nil {
		lon := *p.Longitude
		d.Longitude = &lon
	}
	if len(p.RemovePhotos) > 0 {
		d.Photos = slices.DeleteFunc(slices.Clone(d.Photos), func(key string) bool {
			return slices.Contains(p.RemovePhotos, key)
		})
	}
	return d
}

// EditEntry applies the patch to the entry identified by ref.
// The first-sighting flag is recomputed against the rest of the logbook.
func EditEntry(ctx context.Context, mgr contract.StoreManager, ref string, patch EntryPatch) (schema.Entry, error) {
	current, existing, err := resolveStored(ctx, mgr, ref)
	if err != nil {
		return schema.Entry{}, err
	}
	for _, key := range patch.RemovePhotos {
		if !slices.Contains(current.Photos, key) {
			return schema.Entry{}, fmt.Errorf("%w: %s is not attached to %s", schema.ErrBlobNotFound, key, current.ID)
		}
	}

	photos, err := readPhotoFiles(patch.AddPhotos)
	if err != nil {
		return schema.Entry{}, err
	}

	entry, err := algo.PlanSave(patch.apply(schema.DraftOf(current)), existing, &current, patch.Force)
	if err != nil {
		return schema.Entry{}, err
	}

	blobs := blobsOf(mgr)
	keys, err := storePhotos(ctx, blobs, photos)
	if err != nil {
		return schema.Entry{}, err
	}
	entry.Photos = append(entry.Photos, keys...)

	if err := mgr.GetEntryStore().Update(ctx, entry); err != nil {
		releasePhotos(ctx, blobs, keys)
		return schema.Entry{}, fmt.Errorf("failed to update entry: %w", err)
	}
	releasePhotos(ctx, blobs, patch.RemovePhotos)
	logging.Debug("entry updated", "id", entry.ID, "registration", entry.Registration)
	return entry, nil
}

// DeleteEntry removes the entry identified by ref and releases its photos.
func DeleteEntry(ctx context.Context, mgr contract.StoreManager, ref string) (schema.Entry, error) {
	entry, _, err := resolveStored(ctx, mgr, ref)
	if err != nil {
		return schema.Entry{}, err
	}
	if err := mgr.GetEntryStore().Delete(ctx, entry.ID); err != nil {
		return schema.Entry{}, fmt.Errorf("failed to delete entry: %w", err)
	}
	releasePhotos(ctx, blobsOf(mgr), entry.Photos)
	logging.Debug("entry deleted", "id", entry.ID)
	return entry, nil
}

// PurgeEntries removes every entry and releases every photo.
func PurgeEntries(ctx context.Context, mgr contract.StoreManager) (int64, error) {
	entries, err := loadEntries(ctx, mgr)
	if err != nil {
		return 0, err
	}
	removed, err := mgr.GetEntryStore().DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete entries: %w", err)
	}
	blobs := blobsOf(mgr)
	for _, e := range entries {
		releasePhotos(ctx, blobs, e.Photos)
	}
	logging.Info("logbook purged", "removed", removed)
	return removed, nil
}
