// Package config loads, validates and persists energylabel settings.
//
// Settings come from ~/.energylabel/config.yaml (ENERGYLABEL_HOME moves the
// directory), are overlaid by an optional --config file and finally by
// ENERGYLABEL_* environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/rshade/energylabel/internal/logging"
	"github.com/rshade/energylabel/internal/rating"
)

// CurrentVersion is written to new configuration files.
const CurrentVersion = "1.0.0"

// SupportedVersions is the semver constraint a config file version must meet.
const SupportedVersions = ">= 1.0.0, < 2.0.0"

// Output format names.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
	FormatYAML   = "yaml"
)

// Report format names.
const (
	ReportPDF  = "pdf"
	ReportText = "text"
)

// Defaults for a fresh configuration.
const (
	defaultPrecision       = rating.DefaultPrecision
	defaultReportFile      = "energy_report.pdf"
	defaultBatchSize       = 100
	defaultBatchConcurrent = 4
	maxPrecision           = 6
	maxConcurrency         = 256
	maxBatchSize           = 1000
)

// OutputConfig controls command output.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Precision     int    `yaml:"precision"`
}

// LoggingConfig controls logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// ReportConfig controls exported reports.
type ReportConfig struct {
	// Directory is where reports without an explicit path are written.
	// Empty means the current working directory.
	Directory string `yaml:"directory,omitempty"`
	FileName  string `yaml:"file_name"`
	Format    string `yaml:"format"`
	Author    string `yaml:"author,omitempty"`
}

// BatchConfig controls batch assessment.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency"`
	BatchSize   int `yaml:"batch_size"`
}

// Config is the full energylabel configuration.
type Config struct {
	Version string        `yaml:"version"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Report  ReportConfig  `yaml:"report"`
	Batch   BatchConfig   `yaml:"batch"`

	configPath string
}

// envOverrides lists the string ENERGYLABEL_* variables read by envconfig.
type envOverrides struct {
	OutputFormat    string `envconfig:"OUTPUT_FORMAT"`
	LogLevel        string `envconfig:"LOG_LEVEL"`
	LogFormat       string `envconfig:"LOG_FORMAT"`
	LogFile         string `envconfig:"LOG_FILE"`
	ReportDirectory string `envconfig:"REPORT_DIR"`
	ReportFormat    string `envconfig:"REPORT_FORMAT"`
	ReportAuthor    string `envconfig:"REPORT_AUTHOR"`
}

// Numeric overrides are processed one per struct so a malformed value
// only drops its own field.
type envPrecision struct {
	OutputPrecision *int `envconfig:"OUTPUT_PRECISION"`
}

type envConcurrency struct {
	BatchConcurrency *int `envconfig:"BATCH_CONCURRENCY"`
}

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "ENERGYLABEL"

// Default returns a configuration with built-in defaults and no file path.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Output: OutputConfig{
			DefaultFormat: FormatTable,
			Precision:     defaultPrecision,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Report: ReportConfig{
			FileName: defaultReportFile,
			Format:   ReportPDF,
		},
		Batch: BatchConfig{
			Concurrency: defaultBatchConcurrent,
			BatchSize:   defaultBatchSize,
		},
	}
}

// New loads the configuration from the default path, falling back to
// defaults when the file is absent or unreadable, then applies environment
// overrides.
func New() *Config {
	cfg := Default()

	if dir, err := GetConfigDir(); err == nil {
		cfg.configPath = filepath.Join(dir, "config.yaml")
	}
	if cfg.configPath != "" {
		// A broken config file must not make the tool unusable; `config
		// validate` reports it.
		_ = cfg.Load()
	}

	applyEnvOrWarn(context.Background(), cfg)
	return cfg
}

// ConfigPath returns the file this configuration is loaded from and saved to.
func (c *Config) ConfigPath() string { return c.configPath }

// SetConfigPath changes the file used by Load and Save.
func (c *Config) SetConfigPath(path string) { c.configPath = path }

// Load reads the configuration file over the current values.
func (c *Config) Load() error {
	data, err := os.ReadFile(c.configPath)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", c.configPath, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", c.configPath, err)
	}
	return nil
}

// Save writes the configuration file, creating its directory.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("config path is not set")
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", c.configPath, err)
	}
	return nil
}

// ApplyEnv overlays ENERGYLABEL_* environment variables. Malformed numeric
// variables are reported in the returned error; every valid variable is
// still applied.
func (c *Config) ApplyEnv() error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("reading %s_* environment: %w", EnvPrefix, err)
	}

	setIfNotEmpty(&c.Output.DefaultFormat, env.OutputFormat)
	setIfNotEmpty(&c.Logging.Level, env.LogLevel)
	setIfNotEmpty(&c.Logging.Format, env.LogFormat)
	setIfNotEmpty(&c.Logging.File, env.LogFile)
	setIfNotEmpty(&c.Report.Directory, env.ReportDirectory)
	setIfNotEmpty(&c.Report.Format, env.ReportFormat)
	setIfNotEmpty(&c.Report.Author, env.ReportAuthor)

	var errs []error
	var precision envPrecision
	if err := envconfig.Process(EnvPrefix, &precision); err != nil {
		errs = append(errs, err)
	} else if precision.OutputPrecision != nil {
		c.Output.Precision = *precision.OutputPrecision
	}
	var concurrency envConcurrency
	if err := envconfig.Process(EnvPrefix, &concurrency); err != nil {
		errs = append(errs, err)
	} else if concurrency.BatchConcurrency != nil {
		c.Batch.Concurrency = *concurrency.BatchConcurrency
	}

	if len(errs) > 0 {
		return fmt.Errorf("reading %s_* environment: %w", EnvPrefix, errors.Join(errs...))
	}
	return nil
}

// applyEnvOrWarn applies environment overrides and logs any malformed
// variable instead of failing.
func applyEnvOrWarn(ctx context.Context, c *Config) {
	if err := c.ApplyEnv(); err != nil {
		logging.FromContext(ctx).Warn().
			Str("component", "config").
			Str("operation", "apply_env").
			Err(err).
			Msg("ignoring malformed environment override")
	}
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Validate checks the configuration for semantic errors.
func (c *Config) Validate() error {
	var errs []error

	if err := checkVersion(c.Version); err != nil {
		errs = append(errs, err)
	}

	switch c.Output.DefaultFormat {
	case FormatTable, FormatJSON, FormatNDJSON, FormatYAML:
	default:
		errs = append(errs, fmt.Errorf("output.default_format %q must be one of: table, json, ndjson, yaml",
			c.Output.DefaultFormat))
	}
	if c.Output.Precision < 0 || c.Output.Precision > maxPrecision {
		errs = append(errs, fmt.Errorf("output.precision %d must be between 0 and %d", c.Output.Precision, maxPrecision))
	}

	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		errs = append(errs, fmt.Errorf("logging.level %q is not a valid level", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q must be json or console", c.Logging.Format))
	}

	switch c.Report.Format {
	case ReportPDF, ReportText, FormatJSON, FormatNDJSON, FormatYAML:
	default:
		errs = append(errs, fmt.Errorf("report.format %q must be one of: pdf, text, json, ndjson, yaml",
			c.Report.Format))
	}
	if c.Report.FileName == "" {
		errs = append(errs, errors.New("report.file_name must not be empty"))
	}

	if c.Batch.Concurrency < 1 || c.Batch.Concurrency > maxConcurrency {
		errs = append(errs, fmt.Errorf("batch.concurrency %d must be between 1 and %d", c.Batch.Concurrency, maxConcurrency))
	}
	if c.Batch.BatchSize < 1 || c.Batch.BatchSize > maxBatchSize {
		errs = append(errs, fmt.Errorf("batch.batch_size %d must be between 1 and %d", c.Batch.BatchSize, maxBatchSize))
	}

	return errors.Join(errs...)
}

// checkVersion verifies the config file version against SupportedVersions.
func checkVersion(version string) error {
	if version == "" {
		return errors.New("version is required")
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("version %q is not a semantic version: %w", version, err)
	}
	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return fmt.Errorf("parsing supported version constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("config version %s is not supported (want %s)", v, SupportedVersions)
	}
	return nil
}

// ReportPath resolves the path of a report written without an explicit path.
func (c *Config) ReportPath() string {
	if c.Report.Directory == "" {
		return c.Report.FileName
	}
	return filepath.Join(c.Report.Directory, c.Report.FileName)
}

// Keys returns every settable key in dotted form.
func Keys() []string {
	return []string{
		"version",
		"output.default_format", "output.precision",
		"logging.level", "logging.format", "logging.file",
		"report.directory", "report.file_name", "report.format", "report.author",
		"batch.concurrency", "batch.batch_size",
	}
}

// Get returns the value of a dotted key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "version":
		return c.Version, nil
	case "output.default_format":
		return c.Output.DefaultFormat, nil
	case "output.precision":
		return strconv.Itoa(c.Output.Precision), nil
	case "logging.level":
		return c.Logging.Level, nil
	case "logging.format":
		return c.Logging.Format, nil
	case "logging.file":
		return c.Logging.File, nil
	case "report.directory":
		return c.Report.Directory, nil
	case "report.file_name":
		return c.Report.FileName, nil
	case "report.format":
		return c.Report.Format, nil
	case "report.author":
		return c.Report.Author, nil
	case "batch.concurrency":
		return strconv.Itoa(c.Batch.Concurrency), nil
	case "batch.batch_size":
		return strconv.Itoa(c.Batch.BatchSize), nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

// Set assigns a dotted key from its string form. It does not validate the
// resulting configuration; call Validate afterwards.
func (c *Config) Set(key, value string) error {
	var err error
	switch key {
	case "version":
		c.Version = value
	case "output.default_format":
		c.Output.DefaultFormat = value
	case "output.precision":
		c.Output.Precision, err = strconv.Atoi(value)
	case "logging.level":
		c.Logging.Level = value
	case "logging.format":
		c.Logging.Format = value
	case "logging.file":
		c.Logging.File = value
	case "report.directory":
		c.Report.Directory = value
	case "report.file_name":
		c.Report.FileName = value
	case "report.format":
		c.Report.Format = value
	case "report.author":
		c.Report.Author = value
	case "batch.concurrency":
		c.Batch.Concurrency, err = strconv.Atoi(value)
	case "batch.batch_size":
		c.Batch.BatchSize, err = strconv.Atoi(value)
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	if err != nil {
		return fmt.Errorf("invalid value %q for %s: %w", value, key, err)
	}
	return nil
}
