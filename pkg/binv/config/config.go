// Package config provides configuration loading for binv.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// Defaults applied when no config file or environment override is present.
const (
	// DefaultEgetBinary is the command invoked for update/reinstall.
	DefaultEgetBinary = "eget"

	// DefaultRetentionDays is how long prune history entries are kept.
	DefaultRetentionDays = 90

	// DefaultLogLevel is the default logging level.
	DefaultLogLevel = "info"
)

// EgetConfig configures the external eget invocation.
type EgetConfig struct {
	Binary string `mapstructure:"binary"`
}

// HistoryConfig configures prune history recording.
type HistoryConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	Dir           string `mapstructure:"dir"`
	RetentionDays int    `mapstructure:"retention_days"`
}

// LoggingConfig configures application logging.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

// Config represents the application configuration.
type Config struct {
	// LogFile is the eget install log to browse. Empty means eget's
	// default location.
	LogFile string `mapstructure:"log_file"`

	Eget    EgetConfig    `mapstructure:"eget"`
	History HistoryConfig `mapstructure:"history"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// Load loads configuration from file and environment variables.
// Config file locations (in order of precedence):
//   - $XDG_CONFIG_HOME/binv/config.yaml
//   - $HOME/.config/binv/config.yaml
//
// Environment variables are prefixed with BINV_ (e.g. BINV_LOG_FILE).
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		v.AddConfigPath(filepath.Join(xdgConfigHome, "binv"))
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	v.AddConfigPath(filepath.Join(homeDir, ".config", "binv"))

	v.SetEnvPrefix("BINV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log_file", "")
	v.SetDefault("eget.binary", DefaultEgetBinary)
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.dir", "")
	v.SetDefault("history.retention_days", DefaultRetentionDays)
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.path", "")

	// Read config file (ignore if not found).
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ConfigDir returns the binv configuration directory.
func ConfigDir() (string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, "binv"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "binv"), nil
}

// StateDir returns $XDG_STATE_HOME/binv/ for log and history files.
func StateDir() string {
	return filepath.Join(xdg.StateHome, "binv")
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return nil
}

// WriteDefault writes a default config file if none exists.
// Returns nil if a config file already exists.
func WriteDefault() error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}

	configDir, err := ConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	defaultConfig := fmt.Sprintf(`# binv configuration

# eget install log to browse (empty means eget's default:
# ~/.local/share/eget/install.log)
log_file: ""

# External eget invocation
eget:
  binary: %s

# Prune history settings
history:
  enabled: true
  # History directory (empty means default: $XDG_STATE_HOME/binv/history)
  dir: ""
  retention_days: %d

# Logging configuration
logging:
  # Log level: debug, info, warn, error
  level: %s
  # Log file path (empty means default: $XDG_STATE_HOME/binv/binv.log)
  path: ""
`, DefaultEgetBinary, DefaultRetentionDays, DefaultLogLevel)

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write default config: %w", err)
	}

	return nil
}
