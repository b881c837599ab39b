// Package cmd defines the command-line interface for hangarlog.
package cmd

import (
	"github.com/huangsam/hangarlog/internal/contract"
	"github.com/huangsam/hangarlog/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(purgeCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(insightCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(overviewCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(photoCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	photoCmd.AddCommand(photoGetCmd)

	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("timezone", "", "IANA time zone for calendar periods and local times (default: system)")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Diagnostic log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("blob-backend", string(schema.FSBlobBackend), "Photo backend: fs or s3 or none")
	rootCmd.PersistentFlags().String("blob-dir", "", "Directory for the fs photo backend (default: ~/.hangarlog_photos)")
	rootCmd.PersistentFlags().String("s3-bucket", "", "Bucket for the s3 photo backend")
	rootCmd.PersistentFlags().String("s3-region", contract.DefaultS3Region, "Region for the s3 photo backend")
	rootCmd.PersistentFlags().String("s3-endpoint", "", "Custom endpoint for S3-compatible services")
	rootCmd.PersistentFlags().String("s3-access-key", "", "Access key for the s3 photo backend")
	rootCmd.PersistentFlags().String("s3-secret-key", "", "Secret key for the s3 photo backend")
	rootCmd.PersistentFlags().String("home-lat", "", "Latitude reported by add --here")
	rootCmd.PersistentFlags().String("home-lon", "", "Longitude reported by add --here")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Local flags below are read from the command, not Viper. Names overlap across commands.
	addEntryFlags(addCmd.Flags())
	addCmd.Flags().StringArray("photo", nil, "Path of a photo to attach (repeatable)")
	addCmd.Flags().Bool("here", false, "Use the configured home coordinates")

	addEntryFlags(editCmd.Flags())
	editCmd.Flags().Bool("clear-coords", false, "Remove the coordinates")
	editCmd.Flags().StringArray("add-photo", nil, "Path of a photo to attach (repeatable)")
	editCmd.Flags().StringArray("remove-photo", nil, "Key of a photo to detach and delete (repeatable)")

	purgeCmd.Flags().Bool("yes", false, "Confirm deleting every entry")

	listCmd.Flags().String("mode", string(schema.AnyMode), "Entry mode: all or spotted or flown")
	listCmd.Flags().String("period", string(schema.AllTime), "Calendar period: all or month or year")
	listCmd.Flags().StringP("search", "s", "", "Case-insensitive text to match")

	checkCmd.Flags().String("location", "", "Where the aircraft was seen")
	checkCmd.Flags().String("when", "", "When it was seen (default now)")

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
