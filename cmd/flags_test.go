package cmd

import (
	"testing"
	"time"

	"github.com/huangsam/hangarlog/internal/contract"
	"github.com/huangsam/hangarlog/schema"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("add", pflag.ContinueOnError)
	addEntryFlags(fs)
	fs.StringArray("photo", nil, "")
	fs.Bool("here", false, "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func editFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("edit", pflag.ContinueOnError)
	addEntryFlags(fs)
	fs.Bool("clear-coords", false, "")
	fs.StringArray("add-photo", nil, "")
	fs.StringArray("remove-photo", nil, "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestDraftFromFlags(t *testing.T) {
	c := &contract.Config{Location: time.UTC}
	fs := addFlagSet(t,
		"--mode", "Flown", "-r", "n12ab", "--type", "B738", "--operator", "United",
		"--when", "2025-03-14 15:30", "--location", "SFO", "--lat", "37.6", "--flight", "UA1",
		"--origin", "SFO", "--destination", "EWR", "--notes", "window seat",
	)

	d, err := draftFromFlags(fs, c)
	require.NoError(t, err)
	assert.Equal(t, schema.FlownMode, d.Mode)
	assert.Equal(t, "n12ab", d.Registration)
	assert.Equal(t, "B738", d.AircraftType)
	assert.Equal(t, "United", d.Operator)
	assert.True(t, time.Date(2025, 3, 14, 15, 30, 0, 0, time.UTC).Equal(d.DateTime))
	assert.Equal(t, "SFO", d.LocationName)
	require.NotNil(t, d.Latitude)
	assert.InDelta(t, 37.6, *d.Latitude, 1e-9)
	assert.Nil(t, d.Longitude)
	assert.Equal(t, "UA1", d.FlightNumber)
	assert.Equal(t, "EWR", d.Destination)
	assert.Equal(t, "window seat", d.Notes)
}

func TestDraftFromFlagsDefaults(t *testing.T) {
	c := &contract.Config{Location: time.UTC}
	before := time.Now()

	d, err := draftFromFlags(addFlagSet(t, "--reg", "G-XLEA"), c)
	require.NoError(t, err)
	assert.Equal(t, schema.SpottedMode, d.Mode)
	assert.False(t, d.DateTime.Before(before))
	assert.Nil(t, d.Latitude)
}

func TestDraftFromFlagsErrors(t *testing.T) {
	c := &contract.Config{Location: time.UTC}

	_, err := draftFromFlags(addFlagSet(t, "--mode", "glided"), c)
	assert.ErrorContains(t, err, "invalid mode")

	_, err = draftFromFlags(addFlagSet(t, "--when", "last tuesday"), c)
	assert.ErrorContains(t, err, "invalid time")
}

func TestAddRequestFromFlags(t *testing.T) {
	c := &contract.Config{Location: time.UTC}

	req, err := addRequestFromFlags(addFlagSet(t, "--reg", "G-XLEA", "--photo", "a.jpg", "--photo", "b.png", "--here", "--force"), c)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.png"}, req.PhotoFiles)
	assert.True(t, req.UseLocation)
	assert.True(t, req.Force)

	_, err = addRequestFromFlags(addFlagSet(t, "--reg", "G-XLEA", "--here", "--lat", "51.47"), c)
	assert.ErrorContains(t, err, "--here")
}

func TestPatchFromFlags(t *testing.T) {
	c := &contract.Config{Location: time.UTC}

	p, err := patchFromFlags(editFlagSet(t, "--location", "Gatwick", "--notes", "", "--clear-coords", "--remove-photo", "k1.jpg"), c)
	require.NoError(t, err)
	require.NotNil(t, p.LocationName)
	assert.Equal(t, "Gatwick", *p.LocationName)
	require.NotNil(t, p.Notes)
	assert.Empty(t, *p.Notes)
	assert.Nil(t, p.Registration)
	assert.Nil(t, p.Mode)
	assert.Nil(t, p.DateTime)
	assert.Nil(t, p.Latitude)
	assert.True(t, p.ClearCoordinates)
	assert.Equal(t, []string{"k1.jpg"}, p.RemovePhotos)
	assert.Empty(t, p.AddPhotos)
	assert.False(t, p.Force)

	p, err = patchFromFlags(editFlagSet(t, "--mode", "flown", "--when", "2025-03-14T15:30:00Z", "--lon", "-0.45"), c)
	require.NoError(t, err)
	require.NotNil(t, p.Mode)
	assert.Equal(t, schema.FlownMode, *p.Mode)
	require.NotNil(t, p.DateTime)
	assert.True(t, time.Date(2025, 3, 14, 15, 30, 0, 0, time.UTC).Equal(*p.DateTime))
	require.NotNil(t, p.Longitude)
	assert.InDelta(t, -0.45, *p.Longitude, 1e-9)

	_, err = patchFromFlags(editFlagSet(t, "--mode", "walked"), c)
	assert.Error(t, err)
}

func TestParsePhotoIndex(t *testing.T) {
	index, err := parsePhotoIndex("2")
	require.NoError(t, err)
	assert.Equal(t, 2, index)

	for _, bad := range []string{"0", "-1", "two", ""} {
		_, err := parsePhotoIndex(bad)
		assert.Error(t, err, bad)
	}
}

func TestRootCommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{
		"add", "edit", "delete", "purge", "show", "list", "insight", "check",
		"stats", "overview", "export", "import", "photo", "store", "mcp", "version",
	} {
		assert.True(t, names[want], want)
	}

	sub, _, err := rootCmd.Find([]string{"store", "migrate"})
	require.NoError(t, err)
	assert.Equal(t, "migrate", sub.Name())
	assert.NotNil(t, sub.Flags().Lookup("target-version"))
}
