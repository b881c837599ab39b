package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/hangarlog/internal/contract"
	"github.com/huangsam/hangarlog/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/term"
)

// displayTimeFormat is how timestamps appear in tables.
const displayTimeFormat = "2006-01-02 15:04"

// emptyValue stands in for unset fields in tables.
const emptyValue = "-"

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		_, _ = fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	return nil
}

// renderTable writes rows under the given headers.
func renderTable(w io.Writer, headers []string, rows [][]string, align tw.Align) error {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = align
	})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// sectionTitle returns a section heading, with an emoji prefix when enabled.
func sectionTitle(cfg *contract.Config, emoji, title string) string {
	if cfg.UseEmojis {
		return emoji + " " + title
	}
	return title
}

// formatWhen renders an instant in the configured time zone.
func formatWhen(t time.Time, cfg *contract.Config) string {
	if t.IsZero() {
		return emptyValue
	}
	if cfg.Location != nil {
		t = t.In(cfg.Location)
	}
	return t.Format(displayTimeFormat)
}

// valueOrDash returns s, or a dash when s is empty.
func valueOrDash(s string) string {
	if s == "" {
		return emptyValue
	}
	return s
}

// modeLabel returns the mode label, colored when enabled.
func modeLabel(cfg *contract.Config, mode schema.EntryMode) string {
	if cfg.UseColors {
		return contract.GetColorLabel(mode)
	}
	return contract.GetPlainLabel(mode)
}

// terminalWidth returns the configured width, the detected terminal width, or 80.
func terminalWidth(cfg *contract.Config) int {
	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		// Fallback to conservative default if terminal size can't be detected
		return 80
	}
	return detectedWidth
}

// GetMaxTableTextWidth calculates the maximum width of free-text columns
// (operator, location) in the entry table, based on terminal width.
func GetMaxTableTextWidth(cfg *contract.Config) int {
	// Reserve space for the fixed columns: #, When, Mode, Registration, Type, First
	baseWidth := 60

	// Two free-text columns share what is left
	available := (terminalWidth(cfg) - baseWidth) / 2
	if available < 10 {
		// Minimum reasonable text width
		return 10
	}
	if available > 40 {
		// Maximum text width to prevent overly wide tables
		return 40
	}
	return available
}
