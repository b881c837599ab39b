package cmd

import (
	"strings"

	"github.com/huangsam/hangarlog/core"
	"github.com/huangsam/hangarlog/core/algo"
	"github.com/huangsam/hangarlog/internal/contract"
	"github.com/huangsam/hangarlog/internal/iostore"
	"github.com/spf13/cobra"
)

// listCmd prints the logbook.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List logbook entries, newest first.",
	Long: `List entries newest first, optionally narrowed by mode, calendar period and search text.

The search is case-insensitive and matches registration, operator, aircraft type and location.

Examples:
  # Everything flown this year
  hangarlog list --mode flown --period year

  # Emirates sightings as JSON
  hangarlog list --search emirates --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		mode, _ := cmd.Flags().GetString("mode")
		period, _ := cmd.Flags().GetString("period")
		search, _ := cmd.Flags().GetString("search")
		filter, err := contract.ParseEntryFilter(mode, period, search)
		if err != nil {
			contract.LogFatal("Invalid filter", err)
		}
		if err := core.ExecuteList(rootCtx, cfg, iostore.Manager, filter); err != nil {
			contract.LogFatal("Cannot list entries", err)
		}
	},
}

// insightCmd prints the history of one registration.
var insightCmd = &cobra.Command{
	Use:     "insight <registration>",
	Short:   "Show how often a registration was logged and where it was seen last.",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		registration := algo.NormalizeRegistration(args[0])
		if registration == "" {
			contract.LogFatal("Invalid registration", algo.ErrEmptyRegistration)
		}
		if err := core.ExecuteInsight(rootCtx, cfg, iostore.Manager, registration); err != nil {
			contract.LogFatal("Cannot compute insight", err)
		}
	},
}

// checkCmd runs the duplicate check without saving anything.
var checkCmd = &cobra.Command{
	Use:   "check <registration>",
	Short: "Check whether a pending entry repeats one already logged.",
	Long: `Report whether an entry with this registration, location and time would be
treated as a duplicate: same registration (ignoring case) and same location
(ignoring case) within two hours of an existing entry.

Examples:
  hangarlog check G-XLEA --location Heathrow --when "2025-03-14 15:30"`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, args []string) {
		if algo.NormalizeRegistration(args[0]) == "" {
			contract.LogFatal("Invalid registration", algo.ErrEmptyRegistration)
		}
		when, err := parseWhen(cmd.Flags(), cfg)
		if err != nil {
			contract.LogFatal("Invalid time", err)
		}
		location, _ := cmd.Flags().GetString("location")
		candidate := algo.Candidate{
			Registration: args[0],
			DateTime:     when,
			LocationName: strings.TrimSpace(location),
		}
		if err := core.ExecuteCheck(rootCtx, cfg, iostore.Manager, candidate); err != nil {
			contract.LogFatal("Cannot check entry", err)
		}
	},
}

// statsCmd prints highlights and leaderboards.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show highlights and leaderboards.",
	Long: `Show entries this year and month, unique registrations this year, the current
daily streak and the most frequent types, operators, registrations and locations.
The --limit flag caps each leaderboard.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteStats(rootCtx, cfg, iostore.Manager); err != nil {
			contract.LogFatal("Cannot compute stats", err)
		}
	},
}

// overviewCmd prints the headline numbers.
var overviewCmd = &cobra.Command{
	Use:     "overview",
	Short:   "Show totals, this month's activity and recent first sightings.",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteOverview(rootCtx, cfg, iostore.Manager); err != nil {
			contract.LogFatal("Cannot compute overview", err)
		}
	},
}

// exportCmd writes the logbook to a file.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the whole logbook to a file.",
	Long: `Write every entry, newest first, to --output-file or to HangarLog-Export-<unix time>.<ext>.

The format follows --output: csv (default for text), json or parquet.

Examples:
  hangarlog export
  hangarlog export --output parquet --output-file logbook.parquet`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteExport(rootCtx, cfg, iostore.Manager); err != nil {
			contract.LogFatal("Cannot export logbook", err)
		}
	},
}

// importCmd reads an export file into the logbook.
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import entries from a CSV or Parquet export.",
	Long: `Import entries from a file written by "export".

Rows that fail to parse are reported and skipped. Rows that repeat an entry
already in the logbook, or an earlier row of the same file, are skipped.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteImport(rootCtx, cfg, iostore.Manager, args[0]); err != nil {
			contract.LogFatal("Cannot import file", err)
		}
	},
}
