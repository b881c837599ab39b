package contract

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/huangsam/hangarlog/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainLabel(t *testing.T) {
	assert.Equal(t, "Spotted", GetPlainLabel(schema.SpottedMode))
	assert.Equal(t, "Flown", GetPlainLabel(schema.FlownMode))
	assert.Equal(t, "other", GetPlainLabel("other"))
}

func TestGetColorLabel(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = prev }()

	spotted := GetColorLabel(schema.SpottedMode)
	assert.Contains(t, spotted, "Spotted")
	assert.True(t, strings.HasPrefix(spotted, "\x1b["), "expected ANSI escape, got %q", spotted)
	assert.Contains(t, GetColorLabel(schema.FlownMode), "Flown")
	assert.Equal(t, "other", GetColorLabel("other"))
}

func TestGetFirstLabel(t *testing.T) {
	assert.Equal(t, "", GetFirstLabel(false, true))
	assert.Equal(t, FirstSightingValue, GetFirstLabel(true, false))
	assert.Contains(t, GetFirstLabel(true, true), FirstSightingValue)
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "test_output.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestGetStoreDBFilePath(t *testing.T) {
	path := GetStoreDBFilePath()
	assert.Equal(t, ".hangarlog.db", filepath.Base(path))
	assert.Equal(t, ".hangarlog_photos", filepath.Base(GetBlobDir()))
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", TruncateText("short", 10))
	assert.Equal(t, "Britis...", TruncateText("British Airways", 9))
	assert.Equal(t, "Zürich ...", TruncateText("Zürich Kloten", 10))
	assert.Equal(t, "abcdef", TruncateText("abcdef", 3))
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, v, s)
	}
	for _, s := range []string{"No", "false", "0"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, v, s)
	}
	_, err := ParseBoolString("sometimes")
	assert.Error(t, err)
}

func TestConfigLocator(t *testing.T) {
	ctx := context.Background()

	_, err := NewConfigLocator(&Config{}).RequestLocation(ctx)
	assert.ErrorIs(t, err, ErrLocationUnavailable)

	_, err = NewConfigLocator(nil).RequestLocation(ctx)
	assert.ErrorIs(t, err, ErrLocationUnavailable)

	cfg := &Config{Home: &schema.Coordinate{Latitude: 51.47, Longitude: -0.4543}}
	loc := NewConfigLocator(cfg)
	cfg.Home.Latitude = 0

	got, err := loc.RequestLocation(ctx)
	require.NoError(t, err)
	assert.Equal(t, schema.Coordinate{Latitude: 51.47, Longitude: -0.4543}, got)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = loc.RequestLocation(canceled)
	assert.ErrorIs(t, err, context.Canceled)
}
