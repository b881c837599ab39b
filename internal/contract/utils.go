package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/hangarlog/schema"
)

// FirstSightingValue marks entries that logged a registration for the first time.
const FirstSightingValue = "First"

// Color variables for console output.
var (
	SpottedColor = color.New(color.FgCyan)              // SpottedColor marks ground sightings.
	FlownColor   = color.New(color.FgMagenta)           // FlownColor marks flights taken.
	FirstColor   = color.New(color.FgGreen, color.Bold) // FirstColor highlights first sightings.
	WarnColor    = color.New(color.FgYellow)            // WarnColor marks duplicate warnings.
)

// GetPlainLabel returns the plain text label of an entry mode.
// This is the label used for CSV, JSON, and table printing.
func GetPlainLabel(mode schema.EntryMode) string {
	return mode.Label()
}

// GetColorLabel returns a colored mode label for console output (table).
func GetColorLabel(mode schema.EntryMode) string {
	text := GetPlainLabel(mode)
	switch mode {
	case schema.SpottedMode:
		return SpottedColor.Sprint(text)
	case schema.FlownMode:
		return FlownColor.Sprint(text)
	default:
		return text
	}
}

// GetFirstLabel returns the first-sighting marker, or an empty string.
func GetFirstLabel(first bool, useColors bool) string {
	if !first {
		return ""
	}
	if useColors {
		return FirstColor.Sprint(FirstSightingValue)
	}
	return FirstSightingValue
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// GetStoreDBFilePath returns the path to the SQLite DB file for entry storage.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".hangarlog.db"
	}
	return filepath.Join(homeDir, ".hangarlog.db")
}

// GetBlobDir returns the default directory for photo blobs.
func GetBlobDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".hangarlog_photos"
	}
	return filepath.Join(homeDir, ".hangarlog_photos")
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and some content.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
