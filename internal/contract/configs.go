package contract

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/hangarlog/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 50
	MaxResultLimit     = 10000
	DefaultLogLevel    = "warn"
	DefaultS3Region    = "us-east-1"
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ValidLogLevels lists the accepted log-level values.
var ValidLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// S3Config holds the settings of the S3 blob backend.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string // Custom endpoint for S3-compatible services (empty = AWS)
	AccessKey string
	SecretKey string // Please use env var as this is plaintext
}

// Config holds the runtime configuration of the CLI.
// This struct is the "final, validated" config.
type Config struct {
	ResultLimit int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	// Location is the time zone used for calendar periods and for parsing
	// timestamps given without an offset.
	Location *time.Location

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	BlobBackend schema.BlobBackend
	BlobDir     string
	S3          S3Config

	// Home is the fixed position reported for "add --here". Nil if unset.
	Home *schema.Coordinate

	LogLevel string

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Limit          int    `mapstructure:"limit"`
	Width          int    `mapstructure:"width"`
	Emoji          string `mapstructure:"emoji"`
	Color          string `mapstructure:"color"`
	Timezone       string `mapstructure:"timezone"`
	LogLevel       string `mapstructure:"log-level"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`

	// --- Photo storage ---
	BlobBackend string `mapstructure:"blob-backend"`
	BlobDir     string `mapstructure:"blob-dir"`
	S3Bucket    string `mapstructure:"s3-bucket"`
	S3Region    string `mapstructure:"s3-region"`
	S3Endpoint  string `mapstructure:"s3-endpoint"`
	S3AccessKey string `mapstructure:"s3-access-key"`
	S3SecretKey string `mapstructure:"s3-secret-key"`

	// --- Fixed location for "add --here" ---
	HomeLat string `mapstructure:"home-lat"`
	HomeLon string `mapstructure:"home-lon"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Home != nil {
		home := *c.Home
		clone.Home = &home
	}
	return &clone
}

// Now returns the current time in the configured location.
func (c *Config) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateStoreConfig(cfg, input); err != nil {
		return err
	}
	if err := validateBlobConfig(cfg, input); err != nil {
		return err
	}
	if err := processHomeLocation(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ValidateStoreBackend parses and validates a store backend name with its connection string.
func ValidateStoreBackend(name, connStr string) (schema.DatabaseBackend, error) {
	backend := schema.DatabaseBackend(strings.ToLower(name))
	if backend == "" {
		backend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", name)
	}
	if err := ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", err
	}
	return backend, nil
}

// validateSimpleInputs processes and validates the output and display fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	loc, err := LoadTimezone(input.Timezone)
	if err != nil {
		return err
	}
	cfg.Location = loc

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(input.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if _, ok := ValidLogLevels[cfg.LogLevel]; !ok {
		return fmt.Errorf("invalid log level '%s'. must be debug, info, warn, error", input.LogLevel)
	}
	return nil
}

// validateStoreConfig validates the entry store backend configuration.
func validateStoreConfig(cfg *Config, input *ConfigRawInput) error {
	backend, err := ValidateStoreBackend(input.StoreBackend, input.StoreDBConnect)
	if err != nil {
		return err
	}
	cfg.StoreBackend = backend
	cfg.StoreDBConnect = input.StoreDBConnect
	return nil
}

// validateBlobConfig validates the photo storage configuration.
func validateBlobConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.BlobBackend = schema.BlobBackend(strings.ToLower(input.BlobBackend))
	if cfg.BlobBackend == "" {
		cfg.BlobBackend = schema.FSBlobBackend
	}
	if _, ok := schema.ValidBlobBackends[cfg.BlobBackend]; !ok {
		return fmt.Errorf("invalid blob backend '%s'. must be fs, s3, none", input.BlobBackend)
	}

	cfg.BlobDir = strings.TrimSpace(input.BlobDir)
	if cfg.BlobDir == "" {
		cfg.BlobDir = GetBlobDir()
	}

	cfg.S3 = S3Config{
		Bucket:    strings.TrimSpace(input.S3Bucket),
		Region:    strings.TrimSpace(input.S3Region),
		Endpoint:  strings.TrimSpace(input.S3Endpoint),
		AccessKey: input.S3AccessKey,
		SecretKey: input.S3SecretKey,
	}
	if cfg.S3.Region == "" {
		cfg.S3.Region = DefaultS3Region
	}
	if cfg.BlobBackend == schema.S3BlobBackend {
		if cfg.S3.Bucket == "" {
			return fmt.Errorf("s3-bucket is required when using %s blob backend", cfg.BlobBackend)
		}
		if (cfg.S3.AccessKey == "") != (cfg.S3.SecretKey == "") {
			return fmt.Errorf("s3-access-key and s3-secret-key must be set together")
		}
	}
	return nil
}

// processHomeLocation parses the optional fixed coordinates used by "add --here".
func processHomeLocation(cfg *Config, input *ConfigRawInput) error {
	latStr := strings.TrimSpace(input.HomeLat)
	lonStr := strings.TrimSpace(input.HomeLon)
	if latStr == "" && lonStr == "" {
		cfg.Home = nil
		return nil
	}
	if latStr == "" || lonStr == "" {
		return fmt.Errorf("home-lat and home-lon must be set together")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || lat < -90 || lat > 90 {
		return fmt.Errorf("invalid home-lat '%s'. must be a number between -90 and 90", input.HomeLat)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil || lon < -180 || lon > 180 {
		return fmt.Errorf("invalid home-lon '%s'. must be a number between -180 and 180", input.HomeLon)
	}
	cfg.Home = &schema.Coordinate{Latitude: lat, Longitude: lon}
	return nil
}

// LoadTimezone resolves a time zone name. An empty name or "local" selects
// the system zone.
func LoadTimezone(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone '%s': %w", name, err)
	}
	return loc, nil
}
