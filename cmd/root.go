package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/huangsam/hangarlog/internal/blobstore"
	"github.com/huangsam/hangarlog/internal/contract"
	"github.com/huangsam/hangarlog/internal/iostore"
	"github.com/huangsam/hangarlog/internal/logging"
	"github.com/huangsam/hangarlog/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "hangarlog",
	Short:              "Keep a logbook of the aircraft you spot and fly on.",
	Long:               `HangarLog records aircraft sightings and flights, flags first sightings and repeats, and summarizes your logbook.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setConfigSource points Viper at the config file, either explicit or discovered.
func setConfigSource() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		return
	}
	viper.SetConfigName(".hangarlog") // Name of config file (without extension)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	setConfigSource()

	// Set environment variable prefix
	viper.SetEnvPrefix("HANGARLOG")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("limit", contract.DefaultResultLimit)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("store-backend", schema.SQLiteBackend)
	viper.SetDefault("store-db-connect", "")
	viper.SetDefault("blob-backend", schema.FSBlobBackend)
	viper.SetDefault("s3-region", contract.DefaultS3Region)
	viper.SetDefault("color", "yes")
	viper.SetDefault("emoji", "yes")
	viper.SetDefault("log-level", contract.DefaultLogLevel)
}

// loadConfigFile reads the config file if present. A missing file is not an error.
func loadConfigFile() error {
	setConfigSource()
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// sharedSetup unmarshals config, runs validation and opens the stores.
func sharedSetup(ctx context.Context, _ *cobra.Command, _ []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	if err := logging.Init(cfg.LogLevel); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	// 4. Initialize persistence layer with validated config
	blobs, err := blobstore.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize photo storage: %w", err)
	}
	if err := iostore.InitStores(cfg.StoreBackend, cfg.StoreDBConnect, blobs); err != nil {
		return fmt.Errorf("failed to initialize persistence: %w", err)
	}

	logging.Debug("stores ready", "store", cfg.StoreBackend, "blobs", cfg.BlobBackend)
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
