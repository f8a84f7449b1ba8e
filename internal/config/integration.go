package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rshade/energylabel/internal/logging"
)

// GlobalConfig holds the global configuration instance.
var GlobalConfig *Config        //nolint:gochecknoglobals // Singleton pattern for configuration
var globalConfigMu sync.RWMutex //nolint:gochecknoglobals // Protects GlobalConfig and overlayPath
var overlayPath string          //nolint:gochecknoglobals // Set once from --config before first use

// SetOverlayPath registers a config file merged over the default one when
// the global configuration is first built. It resets any cached config.
func SetOverlayPath(path string) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	overlayPath = path
	GlobalConfig = nil
}

// InitGlobalConfig initializes the global configuration.
func InitGlobalConfig() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()

	if GlobalConfig != nil {
		return
	}
	GlobalConfig = NewWithOverlay(context.Background(), overlayPath)
}

// ResetGlobalConfigForTest resets the global config for testing purposes.
func ResetGlobalConfigForTest() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()

	GlobalConfig = nil
	overlayPath = ""
}

// GetGlobalConfig returns the global configuration, initializing it if needed.
func GetGlobalConfig() *Config {
	InitGlobalConfig()
	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return GlobalConfig
}

// GetDefaultOutputFormat returns the configured default output format.
func GetDefaultOutputFormat() string {
	return GetGlobalConfig().Output.DefaultFormat
}

// GetOutputPrecision returns the configured output precision.
func GetOutputPrecision() int {
	return GetGlobalConfig().Output.Precision
}

// NewWithOverlay builds a Config like New, then shallow-merges the file at
// path on top and re-applies environment overrides. An empty path behaves
// like New. An overlay that cannot be read or that yields an invalid
// configuration is logged and ignored.
func NewWithOverlay(ctx context.Context, path string) *Config {
	cfg := New()
	if path == "" {
		return cfg
	}

	logger := logging.FromContext(ctx)
	merged := *cfg
	if err := ShallowMergeYAML(&merged, path); err != nil {
		logger.Warn().
			Str("component", "config").
			Str("operation", "merge_overlay").
			Err(err).
			Str("overlay_path", path).
			Msg("failed to merge config overlay, using defaults")
		return cfg
	}

	applyEnvOrWarn(ctx, &merged)
	// Only an overlay that breaks a valid base configuration is rejected.
	if err := merged.Validate(); err != nil && cfg.Validate() == nil {
		logger.Warn().
			Str("component", "config").
			Str("operation", "merge_overlay").
			Err(err).
			Str("overlay_path", path).
			Msg("config overlay is invalid, using defaults")
		return cfg
	}
	return &merged
}

// GetConfigDir returns the path to the energylabel configuration directory.
func GetConfigDir() (string, error) {
	if home := os.Getenv("ENERGYLABEL_HOME"); home != "" {
		return home, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".energylabel"), nil
}

// EnsureConfigDir ensures the configuration directory exists.
func EnsureConfigDir() error {
	dir, err := GetConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o700)
}
