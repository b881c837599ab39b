package algo

import (
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/huangsam/hangarlog/schema"
)

// PlanSave turns a draft into the entry to persist.
//
// The steps run in order and stop at the first failure: tidy the text fields,
// validate, run the duplicate check unless force is set, then derive
// IsFirstForRegistration from the remaining history. When editing is non-nil
// the edited entry is excluded from both checks and keeps its ID and
// CreatedAt; otherwise a new ID is assigned.
func PlanSave(draft schema.EntryDraft, existing []schema.Entry, editing *schema.Entry, force bool) (schema.Entry, error) {
	d := TidyDraft(draft)
	if err := ValidateDraft(d); err != nil {
		return schema.Entry{}, err
	}

	excludeID := uuid.Nil
	if editing != nil {
		excludeID = editing.ID
	}

	if !force {
		if match, ok := FindDuplicate(CandidateOf(d), existing, excludeID); ok {
			return schema.Entry{}, &DuplicateError{Match: match.Clone()}
		}
	}

	entry := schema.Entry{
		Mode:                   d.Mode,
		Registration:           d.Registration,
		AircraftType:           d.AircraftType,
		Operator:               d.Operator,
		DateTime:               d.DateTime,
		LocationName:           d.LocationName,
		Latitude:               d.Latitude,
		Longitude:              d.Longitude,
		FlightNumber:           d.FlightNumber,
		Origin:                 d.Origin,
		Destination:            d.Destination,
		Notes:                  d.Notes,
		Photos:                 d.Photos,
		IsFirstForRegistration: InsightFor(d.Registration, existing, excludeID).Count == 0,
	}
	if editing != nil {
		entry.ID = editing.ID
		entry.CreatedAt = editing.CreatedAt
	} else {
		entry.ID = uuid.New()
	}
	return entry, nil
}

// TidyDraft normalizes the registration and trims every other text field.
// The returned draft shares no memory with the input.
func TidyDraft(d schema.EntryDraft) schema.EntryDraft {
	out := d
	out.Registration = NormalizeRegistration(d.Registration)
	out.AircraftType = strings.TrimSpace(d.AircraftType)
	out.Operator = strings.TrimSpace(d.Operator)
	out.LocationName = strings.TrimSpace(d.LocationName)
	out.FlightNumber = strings.TrimSpace(d.FlightNumber)
	out.Origin = strings.TrimSpace(d.Origin)
	out.Destination = strings.TrimSpace(d.Destination)
	out.Notes = strings.TrimSpace(d.Notes)
	if d.Latitude != nil {
		lat := *d.Latitude
		out.Latitude = &lat
	}
	if d.Longitude != nil {
		lon := *d.Longitude
		out.Longitude = &lon
	}
	if d.Photos != nil {
		out.Photos = slices.Clone(d.Photos)
	}
	return out
}
