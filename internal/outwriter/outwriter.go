// Package outwriter renders logbook data as tables, CSV, or JSON.
package outwriter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/hangarlog/core/algo"
	"github.com/huangsam/hangarlog/core/codec"
	"github.com/huangsam/hangarlog/internal/contract"
	"github.com/huangsam/hangarlog/schema"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteEntries outputs a logbook listing, dispatching based on the output format configured.
// CSV output uses the logbook exchange format, so it can be imported again.
func WriteEntries(entries []schema.Entry, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, entries)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return codec.EncodeEntries(w, entries)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeEntryTable(w, entries, cfg)
		}, "Wrote table")
	}
	return nil
}

// writeEntryTable generates and writes the human-readable logbook table.
func writeEntryTable(w io.Writer, entries []schema.Entry, cfg *contract.Config) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No entries yet.")
		return err
	}

	textWidth := GetMaxTableTextWidth(cfg)
	headers := []string{"#", "When", "Mode", "Registration", "Type", "Operator", "Location", "First"}
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			formatWhen(e.DateTime, cfg),
			modeLabel(cfg, e.Mode),
			e.Registration,
			valueOrDash(e.AircraftType),
			valueOrDash(contract.TruncateText(e.Operator, textWidth)),
			valueOrDash(contract.TruncateText(e.LocationName, textWidth)),
			contract.GetFirstLabel(e.IsFirstForRegistration, cfg.UseColors),
		})
	}
	if err := renderTable(w, headers, rows, tw.AlignLeft); err != nil {
		return err
	}

	spotted, flown := 0, 0
	for _, e := range entries {
		if e.Mode == schema.FlownMode {
			flown++
		} else {
			spotted++
		}
	}
	_, err := fmt.Fprintf(w, "Showing %d entries (spotted: %d, flown: %d)\n", len(entries), spotted, flown)
	return err
}

// WriteEntryDetail outputs one entry with the history of its registration.
func WriteEntryDetail(detail schema.EntryDetail, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, detail)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return codec.EncodeEntries(w, []schema.Entry{detail.Entry})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeEntryDetailTable(w, detail, cfg)
		}, "Wrote table")
	}
}

func writeEntryDetailTable(w io.Writer, detail schema.EntryDetail, cfg *contract.Config) error {
	e := detail.Entry
	if _, err := fmt.Fprintf(w, "%s\n", sectionTitle(cfg, "✈️", e.Registration)); err != nil {
		return err
	}

	rows := [][]string{
		{"ID", e.ID.String()},
		{"Mode", modeLabel(cfg, e.Mode)},
		{"Registration", e.Registration},
		{"Date", formatWhen(e.DateTime, cfg)},
		{"Location", valueOrDash(e.LocationName)},
		{"Seen", fmt.Sprintf("%d times", detail.TimesSeen)},
	}
	if detail.Insight.LastSeenDate != nil {
		rows = append(rows, []string{"Last Seen", formatWhen(*detail.Insight.LastSeenDate, cfg)})
	}
	if detail.Insight.LastSeenLocation != nil {
		rows = append(rows, []string{"Last Seen Location", *detail.Insight.LastSeenLocation})
	}
	rows = append(rows,
		[]string{"Type", valueOrDash(e.AircraftType)},
		[]string{"Operator", valueOrDash(e.Operator)},
	)
	if e.Mode == schema.FlownMode {
		rows = append(rows,
			[]string{"Flight Number", valueOrDash(e.FlightNumber)},
			[]string{"Origin", valueOrDash(e.Origin)},
			[]string{"Destination", valueOrDash(e.Destination)},
		)
	}
	rows = append(rows,
		[]string{"Latitude", formatCoordinate(e.Latitude)},
		[]string{"Longitude", formatCoordinate(e.Longitude)},
		[]string{"First", valueOrDash(contract.GetFirstLabel(e.IsFirstForRegistration, cfg.UseColors))},
		[]string{"Photos", strconv.Itoa(len(e.Photos))},
		[]string{"Notes", valueOrDash(e.Notes)},
	)
	return renderTable(w, []string{"Field", "Value"}, rows, tw.AlignLeft)
}

// WriteInsight outputs the history of a registration.
func WriteInsight(registration string, insight schema.RegistrationInsight, cfg *contract.Config) error {
	registration = algo.NormalizeRegistration(registration)
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, struct {
				Registration string `json:"registration"`
				schema.RegistrationInsight
			}{registration, insight})
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeInsightText(w, registration, insight, cfg)
	}, "Wrote insight")
}

func writeInsightText(w io.Writer, registration string, insight schema.RegistrationInsight, cfg *contract.Config) error {
	if _, err := fmt.Fprintf(w, "%s\n", sectionTitle(cfg, "🔎", registration)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Seen before: %d times\n", insight.Count); err != nil {
		return err
	}
	if insight.LastSeenDate != nil {
		location := "Unknown location"
		if insight.LastSeenLocation != nil {
			location = *insight.LastSeenLocation
		}
		if _, err := fmt.Fprintf(w, "Last seen: %s • %s\n", formatWhen(*insight.LastSeenDate, cfg), location); err != nil {
			return err
		}
	}
	return nil
}

// WriteDuplicateCheck outputs the result of a duplicate check.
func WriteDuplicateCheck(check schema.DuplicateCheck, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, check)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		if check.IsDuplicate && check.Match != nil {
			msg := fmt.Sprintf("Possible duplicate: %s was logged at %s on %s (id %s)",
				check.Match.Registration, valueOrDash(check.Match.LocationName),
				formatWhen(check.Match.DateTime, cfg), check.Match.ID)
			if cfg.UseColors {
				msg = contract.WarnColor.Sprint(msg)
			}
			if _, err := fmt.Fprintln(w, msg); err != nil {
				return err
			}
		} else if _, err := fmt.Fprintln(w, "No duplicate found."); err != nil {
			return err
		}
		return writeInsightText(w, check.Registration, check.Insight, cfg)
	}, "Wrote check")
}

func formatCoordinate(v *float64) string {
	if v == nil {
		return emptyValue
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
