package algo

import (
	"errors"
	"math"

	"github.com/huangsam/hangarlog/schema"
)

// Validation sentinels. Use errors.Is to test for a specific failure.
var (
	ErrInvalidMode       = errors.New("mode must be spotted or flown")
	ErrEmptyRegistration = errors.New("registration is required")
	ErrLatitudeRange     = errors.New("latitude must be between -90 and 90")
	ErrLongitudeRange    = errors.New("longitude must be between -180 and 180")
)

// ValidationError ties a validation failure to the offending field.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

// Unwrap returns the underlying sentinel.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidateDraft checks the user-supplied fields of an entry. All failures are
// reported together; nil means the draft can be saved.
func ValidateDraft(d schema.EntryDraft) error {
	var errs []error
	if !d.Mode.IsValid() {
		errs = append(errs, &ValidationError{Field: "mode", Err: ErrInvalidMode})
	}
	if NormalizeRegistration(d.Registration) == "" {
		errs = append(errs, &ValidationError{Field: "registration", Err: ErrEmptyRegistration})
	}
	if d.Latitude != nil && !ValidLatitude(*d.Latitude) {
		errs = append(errs, &ValidationError{Field: "latitude", Err: ErrLatitudeRange})
	}
	if d.Longitude != nil && !ValidLongitude(*d.Longitude) {
		errs = append(errs, &ValidationError{Field: "longitude", Err: ErrLongitudeRange})
	}
	return errors.Join(errs...)
}

// ValidLatitude reports whether v is within [-90, 90].
func ValidLatitude(v float64) bool {
	return !math.IsNaN(v) && v >= -90 && v <= 90
}

// ValidLongitude reports whether v is within [-180, 180].
func ValidLongitude(v float64) bool {
	return !math.IsNaN(v) && v >= -180 && v <= 180
}
