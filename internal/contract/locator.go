package contract

import (
	"context"
	"errors"

	"github.com/huangsam/hangarlog/schema"
)

// ErrLocationUnavailable is returned when no position can be determined.
var ErrLocationUnavailable = errors.New("location unavailable: set home-lat and home-lon")

// ConfigLocator reports the fixed home coordinates from the configuration.
type ConfigLocator struct {
	home *schema.Coordinate
}

var _ Locator = &ConfigLocator{}

// NewConfigLocator creates a locator for the configured home position.
func NewConfigLocator(cfg *Config) *ConfigLocator {
	var home *schema.Coordinate
	if cfg != nil && cfg.Home != nil {
		h := *cfg.Home
		home = &h
	}
	return &ConfigLocator{home: home}
}

// RequestLocation returns the configured position.
func (l *ConfigLocator) RequestLocation(ctx context.Context) (schema.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return schema.Coordinate{}, err
	}
	if l.home == nil {
		return schema.Coordinate{}, ErrLocationUnavailable
	}
	return *l.home, nil
}
