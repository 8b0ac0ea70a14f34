package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/Tiliavir/schedule-planner/internal/export"
	"github.com/Tiliavir/schedule-planner/internal/timecalc"
)

// Config is the root configuration for planner, stored in
// ~/.planner/config.yaml. Every key can be overridden from the environment
// with the PLANNER_ prefix, e.g. PLANNER_OUTPUT_DIR.
type Config struct {
	TypicalHours    TypicalHoursConfig `mapstructure:"typical_hours"`
	IncludeWeekends bool               `mapstructure:"include_weekends"`
	Output          OutputConfig       `mapstructure:"output"`
	Log             LogConfig          `mapstructure:"log"`
	Outlook         OutlookConfig      `mapstructure:"outlook"`
}

// TypicalHoursConfig is the default in/out pair for weekdays without entries.
type TypicalHoursConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	TimeIn  string `mapstructure:"time_in"`
	TimeOut string `mapstructure:"time_out"`
}

// OutputConfig controls where and in which formats exports are written.
type OutputConfig struct {
	Dir     string   `mapstructure:"dir"`
	Formats []string `mapstructure:"formats"`
}

// LogConfig selects the slog level and handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OutlookConfig holds Microsoft Graph / Outlook calendar import settings.
type OutlookConfig struct {
	// TenantID is the Azure AD tenant. Use "common" for personal/multi-tenant accounts.
	TenantID string `mapstructure:"tenant_id"`
	// ClientID is the Azure app (client) ID for the OAuth2 device code flow.
	ClientID string `mapstructure:"client_id"`
	// Timezone is the IANA timezone for event times (e.g. "Europe/Berlin"). Empty = UTC.
	Timezone string `mapstructure:"timezone"`
}

const (
	// DefaultTenantID is the Microsoft "common" tenant.
	DefaultTenantID = "common"
	// DefaultClientID is the well-known public Azure CLI app ID. It supports
	// the device code flow without a client secret or app registration.
	DefaultClientID = "04b07795-8542-4c4a-95af-30b2c573d5ab"

	envPrefix = "PLANNER"
)

// DefaultFormats lists every export format in output order.
var DefaultFormats = []string{"pdf", "xlsx", "csv", "json"}

func setDefaults(v *viper.Viper) {
	v.SetDefault("typical_hours.enabled", false)
	v.SetDefault("typical_hours.time_in", "9:00AM")
	v.SetDefault("typical_hours.time_out", "5:00PM")
	v.SetDefault("include_weekends", false)
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.formats", DefaultFormats)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("outlook.tenant_id", DefaultTenantID)
	v.SetDefault("outlook.client_id", DefaultClientID)
	v.SetDefault("outlook.timezone", "")
}

// configTemplate is the annotated config written on first run.
const configTemplate = `# planner configuration – ~/.planner/config.yaml
#
# All settings are optional; the values below are the built-in defaults.
# Any key can be overridden from the environment, e.g.
#   PLANNER_OUTPUT_DIR=/tmp/reports PLANNER_LOG_LEVEL=debug planner generate ...

# Default in/out pair applied to weekdays that have no entries of their own.
typical_hours:
  enabled: false
  time_in: "9:00AM"
  time_out: "5:00PM"

# Aggregate Saturdays and Sundays too.
include_weekends: false

output:
  # Directory the generated files are written to.
  dir: "."
  # Any of: pdf, xlsx, csv, json.
  formats: [pdf, xlsx, csv, json]

log:
  # debug, info, warn or error.
  level: info
  # text or json.
  format: text

# ── Microsoft Graph / Outlook calendar import ─────────────────────────────
outlook:
  # "common" works for personal Microsoft accounts and most organisations.
  tenant_id: "common"
  # The built-in value is the public Azure CLI app – no app registration needed.
  client_id: "04b07795-8542-4c4a-95af-30b2c573d5ab"
  # IANA timezone for calendar event times, e.g. "Europe/Berlin". Empty = UTC.
  timezone: ""
`

// FilePath returns the path to ~/.planner/config.yaml.
func FilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".planner", "config.yaml"), nil
}

// Load reads ~/.planner/config.yaml, creating it with annotated defaults on
// first run.
func Load() (Config, error) {
	path, err := FilePath()
	if err != nil {
		return Default(), err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
			return LoadFrom("")
		}
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path and applies environment overrides. An
// empty path loads defaults and environment only.
func LoadFrom(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Default(), errors.Wrapf(err, "reading config file %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Default(), errors.Wrapf(err, "parsing config file %s\nTip: delete the file to regenerate defaults", path)
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TypicalHours: TypicalHoursConfig{TimeIn: "9:00AM", TimeOut: "5:00PM"},
		Output:       OutputConfig{Dir: ".", Formats: append([]string(nil), DefaultFormats...)},
		Log:          LogConfig{Level: "info", Format: "text"},
		Outlook:      OutlookConfig{TenantID: DefaultTenantID, ClientID: DefaultClientID},
	}
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s - %s", e.Field, e.Message)
}

// Validate checks the configuration for values the commands cannot use.
func (c Config) Validate() error {
	if c.TypicalHours.Enabled {
		if _, ok := timecalc.ParseTime(c.TypicalHours.TimeIn); !ok {
			return &ValidationError{Field: "typical_hours.time_in", Message: fmt.Sprintf("%q is not a valid time", c.TypicalHours.TimeIn)}
		}
		if _, ok := timecalc.ParseTime(c.TypicalHours.TimeOut); !ok {
			return &ValidationError{Field: "typical_hours.time_out", Message: fmt.Sprintf("%q is not a valid time", c.TypicalHours.TimeOut)}
		}
	}
	if c.Output.Dir == "" {
		return &ValidationError{Field: "output.dir", Message: "output directory is required"}
	}
	if len(c.Output.Formats) == 0 {
		return &ValidationError{Field: "output.formats", Message: "at least one format is required"}
	}
	if _, err := export.ParseFormats(c.Output.Formats); err != nil {
		return &ValidationError{Field: "output.formats", Message: err.Error()}
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Field: "log.level", Message: fmt.Sprintf("unknown level %q", c.Log.Level)}
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return &ValidationError{Field: "log.format", Message: fmt.Sprintf("unknown format %q", c.Log.Format)}
	}
	return nil
}
