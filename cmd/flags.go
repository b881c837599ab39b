package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/huangsam/hangarlog/core"
	"github.com/huangsam/hangarlog/internal/contract"
	"github.com/huangsam/hangarlog/schema"
	"github.com/spf13/pflag"
)

// addEntryFlags registers the entry field flags shared by add and edit.
func addEntryFlags(fs *pflag.FlagSet) {
	fs.String("mode", string(schema.SpottedMode), "Entry mode: spotted or flown")
	fs.StringP("reg", "r", "", "Aircraft registration, e.g. G-XLEA")
	fs.String("type", "", "Aircraft type, e.g. A388")
	fs.String("operator", "", "Airline or operator")
	fs.String("when", "", "When it was seen: RFC3339, 'YYYY-MM-DD HH:MM' or 'N hours ago' (default now)")
	fs.String("location", "", "Where it was seen")
	fs.Float64("lat", 0, "Latitude in degrees")
	fs.Float64("lon", 0, "Longitude in degrees")
	fs.String("flight", "", "Flight number")
	fs.String("origin", "", "Origin airport")
	fs.String("destination", "", "Destination airport")
	fs.String("notes", "", "Free-form notes")
	fs.Bool("force", false, "Save even if the entry looks like a duplicate")
}

// parseWhen parses the --when flag in the configured time zone.
func parseWhen(fs *pflag.FlagSet, c *contract.Config) (time.Time, error) {
	when, _ := fs.GetString("when")
	return contract.ParseEntryTime(when, c.Now(), c.Location)
}

// draftFromFlags builds the draft of a new entry.
func draftFromFlags(fs *pflag.FlagSet, c *contract.Config) (schema.EntryDraft, error) {
	modeStr, _ := fs.GetString("mode")
	mode, err := contract.ParseEntryMode(modeStr)
	if err != nil {
		return schema.EntryDraft{}, err
	}
	when, err := parseWhen(fs, c)
	if err != nil {
		return schema.EntryDraft{}, err
	}

	d := schema.EntryDraft{Mode: mode, DateTime: when}
	d.Registration, _ = fs.GetString("reg")
	d.AircraftType, _ = fs.GetString("type")
	d.Operator, _ = fs.GetString("operator")
	d.LocationName, _ = fs.GetString("location")
	d.FlightNumber, _ = fs.GetString("flight")
	d.Origin, _ = fs.GetString("origin")
	d.Destination, _ = fs.GetString("destination")
	d.Notes, _ = fs.GetString("notes")
	if fs.Changed("lat") {
		lat, _ := fs.GetFloat64("lat")
		d.Latitude = &lat
	}
	if fs.Changed("lon") {
		lon, _ := fs.GetFloat64("lon")
		d.Longitude = &lon
	}
	return d, nil
}

// addRequestFromFlags builds the request of the add command.
func addRequestFromFlags(fs *pflag.FlagSet, c *contract.Config) (core.AddRequest, error) {
	d, err := draftFromFlags(fs, c)
	if err != nil {
		return core.AddRequest{}, err
	}
	here, _ := fs.GetBool("here")
	if here && (d.Latitude != nil || d.Longitude != nil) {
		return core.AddRequest{}, fmt.Errorf("--here cannot be combined with --lat or --lon")
	}
	photos, _ := fs.GetStringArray("photo")
	force, _ := fs.GetBool("force")
	return core.AddRequest{Draft: d, PhotoFiles: photos, UseLocation: here, Force: force}, nil
}

// patchFromFlags builds an edit patch from the flags the user actually set.
func patchFromFlags(fs *pflag.FlagSet, c *contract.Config) (core.EntryPatch, error) {
	var p core.EntryPatch
	changedString := func(name string) *string {
		if !fs.Changed(name) {
			return nil
		}
		v, _ := fs.GetString(name)
		return &v
	}

	if fs.Changed("mode") {
		modeStr, _ := fs.GetString("mode")
		mode, err := contract.ParseEntryMode(modeStr)
		if err != nil {
			return core.EntryPatch{}, err
		}
		p.Mode = &mode
	}
	if fs.Changed("when") {
		when, err := parseWhen(fs, c)
		if err != nil {
			return core.EntryPatch{}, err
		}
		p.DateTime = &when
	}
	p.Registration = changedString("reg")
	p.AircraftType = changedString("type")
	p.Operator = changedString("operator")
	p.LocationName = changedString("location")
	p.FlightNumber = changedString("flight")
	p.Origin = changedString("origin")
	p.Destination = changedString("destination")
	p.Notes = changedString("notes")
	if fs.Changed("lat") {
		lat, _ := fs.GetFloat64("lat")
		p.Latitude = &lat
	}
	if fs.Changed("lon") {
		lon, _ := fs.GetFloat64("lon")
		p.Longitude = &lon
	}

	p.ClearCoordinates, _ = fs.GetBool("clear-coords")
	p.AddPhotos, _ = fs.GetStringArray("add-photo")
	p.RemovePhotos, _ = fs.GetStringArray("remove-photo")
	p.Force, _ = fs.GetBool("force")
	return p, nil
}

// parsePhotoIndex parses a 1-based photo index.
func parsePhotoIndex(s string) (int, error) {
	index, err := strconv.Atoi(s)
	if err != nil || index < 1 {
		return 0, fmt.Errorf("'%s' is not a positive number", s)
	}
	return index, nil
}
