package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/hangarlog/internal/contract"
	"github.com/huangsam/hangarlog/internal/iostore"
	"github.com/huangsam/hangarlog/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeSetup loads the minimal configuration needed for store maintenance.
// It does not open the store, so clear and migrate work on a broken or fresh database.
func storeSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, err := contract.ValidateStoreBackend(viper.GetString("store-backend"), viper.GetString("store-db-connect"))
	if err != nil {
		return err
	}
	if err := logging.Init(viper.GetString("log-level")); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = viper.GetString("store-db-connect")
	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeCmd focused on logbook database management.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by logbook commands.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the logbook database",
	Long: `Inspect, reset and migrate the database that holds logbook entries.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (in-memory)

Subcommands:
  status  - Show entry counts and connection info
  clear   - Remove all stored entries
  migrate - Upgrade or roll back the database schema

Examples:
  # Check store status
  hangarlog store status

  # Use PostgreSQL through the environment
  HANGARLOG_STORE_BACKEND=postgresql HANGARLOG_STORE_DB_CONNECT="..." hangarlog store status`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display entry counts and connection details",
	Long: `Show the backend, connection state, schema version, entry count
and the timestamps of the oldest and newest entries.`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iostore.Manager.GetEntryStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		iostore.PrintStoreStatus(os.Stdout, status)
	},
}

// storeClearCmd drops the logbook tables.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored entries",
	Long: `Delete the logbook database for the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the logbook tables

Photos are left in the photo store. Use "purge" to delete entries together with their photos.`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iostore.ClearStore(cfg.StoreBackend, iostore.GetDBFilePath(), cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		fmt.Println("Store cleared successfully.")
	},
}

// storeMigrateCmd runs database migrations for the entry store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the logbook store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  hangarlog store migrate

  # Rollback to initial state
  hangarlog store migrate --target-version 0`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iostore.MigrateStore(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to migrate store", err)
		}
		fmt.Println("Store migrated successfully.")
	},
}
