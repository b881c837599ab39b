package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/huangsam/hangarlog/internal/contract"
	"github.com/huangsam/hangarlog/schema"
	"github.com/olekukonko/tablewriter/tw"
)

// Leaderboard names used in CSV output.
const (
	aircraftTypeBoard = "aircraft_type"
	operatorBoard     = "operator"
	registrationBoard = "registration"
)

// WriteStats outputs the statistics highlights, dispatching based on the output format configured.
func WriteStats(report schema.StatsReport, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStatsCSV(w, report)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStatsTable(w, report, cfg)
		}, "Wrote table")
	}
}

func writeStatsTable(w io.Writer, report schema.StatsReport, cfg *contract.Config) error {
	if _, err := fmt.Fprintln(w, sectionTitle(cfg, "📊", "Highlights")); err != nil {
		return err
	}
	highlights := [][]string{
		{"Entries This Year", strconv.Itoa(report.EntriesThisYear)},
		{"Entries This Month", strconv.Itoa(report.EntriesThisMonth)},
		{"Unique Regs This Year", strconv.Itoa(report.UniqueRegistrationsThisYear)},
		{"Current Streak", fmt.Sprintf("%d days", report.StreakDays)},
	}
	if report.TopRegistration != nil {
		highlights = append(highlights, []string{
			"Most Spotted Registration",
			fmt.Sprintf("%s (%d)", report.TopRegistration.Value, report.TopRegistration.Count),
		})
	}
	if err := renderTable(w, []string{"Metric", "Value"}, highlights, tw.AlignLeft); err != nil {
		return err
	}

	if err := writeLeaderboard(w, sectionTitle(cfg, "🛩️", "Top Aircraft Types"), "No aircraft type data yet.", report.TopAircraftTypes); err != nil {
		return err
	}
	return writeLeaderboard(w, sectionTitle(cfg, "🏢", "Top Operators"), "No operator data yet.", report.TopOperators)
}

// writeLeaderboard writes a ranked list, or the empty message when there is nothing to rank.
func writeLeaderboard(w io.Writer, title, emptyMsg string, items []schema.CountItem) error {
	if _, err := fmt.Fprintf(w, "\n%s\n", title); err != nil {
		return err
	}
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, emptyMsg)
		return err
	}
	rows := make([][]string, len(items))
	for i, item := range items {
		rows[i] = []string{"#" + strconv.Itoa(i+1), item.Value, strconv.Itoa(item.Count)}
	}
	return renderTable(w, []string{"Rank", "Name", "Count"}, rows, tw.AlignLeft)
}

// writeStatsCSV writes every leaderboard as board,rank,value,count rows.
func writeStatsCSV(w io.Writer, report schema.StatsReport) error {
	return writeCSVWithHeader(w, []string{"board", "rank", "value", "count"}, func(cw *csv.Writer) error {
		if report.TopRegistration != nil {
			if err := cw.Write([]string{registrationBoard, "1", report.TopRegistration.Value, strconv.Itoa(report.TopRegistration.Count)}); err != nil {
				return err
			}
		}
		for _, board := range []struct {
			name  string
			items []schema.CountItem
		}{
			{aircraftTypeBoard, report.TopAircraftTypes},
			{operatorBoard, report.TopOperators},
		} {
			for i, item := range board.items {
				if err := cw.Write([]string{board.name, strconv.Itoa(i + 1), item.Value, strconv.Itoa(item.Count)}); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// WriteOverview outputs the headline numbers and recent first sightings.
func WriteOverview(overview schema.Overview, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, overview)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"metric", "value"}, func(cw *csv.Writer) error {
				for _, row := range overviewMetrics(overview) {
					if err := cw.Write(row); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeOverviewTable(w, overview, cfg)
		}, "Wrote table")
	}
}

func overviewMetrics(o schema.Overview) [][]string {
	return [][]string{
		{"total_spotted", strconv.Itoa(o.TotalSpotted)},
		{"total_flown", strconv.Itoa(o.TotalFlown)},
		{"unique_registrations", strconv.Itoa(o.UniqueRegistrations)},
		{"entries_this_month", strconv.Itoa(o.EntriesThisMonth)},
	}
}

func writeOverviewTable(w io.Writer, o schema.Overview, cfg *contract.Config) error {
	if _, err := fmt.Fprintln(w, sectionTitle(cfg, "🛫", "Overview")); err != nil {
		return err
	}
	metrics := [][]string{
		{"Total Spotted", humanize.Comma(int64(o.TotalSpotted))},
		{"Total Flown", humanize.Comma(int64(o.TotalFlown))},
		{"Unique Registrations", humanize.Comma(int64(o.UniqueRegistrations))},
		{"Entries This Month", humanize.Comma(int64(o.EntriesThisMonth))},
	}
	if err := renderTable(w, []string{"Metric", "Value"}, metrics, tw.AlignLeft); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\n%s\n", sectionTitle(cfg, "⭐", "Recent Firsts")); err != nil {
		return err
	}
	if len(o.RecentFirsts) == 0 {
		_, err := fmt.Fprintln(w, "No first sightings yet.")
		return err
	}
	rows := make([][]string, len(o.RecentFirsts))
	for i, e := range o.RecentFirsts {
		rows[i] = []string{e.Registration, modeLabel(cfg, e.Mode), formatWhen(e.DateTime, cfg), valueOrDash(e.LocationName)}
	}
	return renderTable(w, []string{"Registration", "Mode", "When", "Location"}, rows, tw.AlignLeft)
}

// WriteImportResult outputs the outcome of a CSV import.
func WriteImportResult(result schema.ImportResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"row", "reason"}, func(cw *csv.Writer) error {
				for _, issue := range result.Issues {
					if err := cw.Write([]string{strconv.Itoa(issue.Row), issue.Reason}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if _, err := fmt.Fprintf(w, "Imported %d entries. Skipped %d.\n", result.Imported, result.Skipped); err != nil {
				return err
			}
			if len(result.Issues) == 0 {
				return nil
			}
			rows := make([][]string, len(result.Issues))
			for i, issue := range result.Issues {
				rows[i] = []string{strconv.Itoa(issue.Row), issue.Reason}
			}
			return renderTable(w, []string{"Row", "Reason"}, rows, tw.AlignLeft)
		}, "Wrote import summary")
	}
}
