// Package config provides configuration types and defaults for tsconv.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// MaxHistoryLimit is the largest history.limit accepted.
const MaxHistoryLimit = 50

// Config holds all configuration options for tsconv.
type Config struct {
	History             HistoryConfig   `mapstructure:"history"`
	Toast               ToastConfig     `mapstructure:"toast"`
	Button              ButtonConfig    `mapstructure:"button"`
	AutoRefresh         bool            `mapstructure:"auto_refresh"`
	AutoRefreshDebounce time.Duration   `mapstructure:"auto_refresh_debounce"`
	Cache               CacheConfig     `mapstructure:"cache"`
	Tracing             TracingConfig   `mapstructure:"tracing"`
	Flags               map[string]bool `mapstructure:"flags"`
}

// HistoryConfig controls the persisted conversion history.
type HistoryConfig struct {
	// Path is the SQLite database file. Empty keeps history in memory only.
	// Default: ~/.local/share/tsconv/history.db
	Path string `mapstructure:"path"`
	// Limit is the maximum number of records kept, 1 to 50 (default 50).
	Limit int `mapstructure:"limit"`
	// Recent is how many records the history panel shows (default 3).
	Recent int `mapstructure:"recent"`
}

// ToastConfig controls notification timing.
type ToastConfig struct {
	Duration       time.Duration `mapstructure:"duration"`        // errors and plain notices
	ResultDuration time.Duration `mapstructure:"result_duration"` // successful conversions
	Fade           time.Duration `mapstructure:"fade"`            // hide-to-detach delay
}

// ButtonConfig controls the on-screen convert button.
type ButtonConfig struct {
	Label    string        `mapstructure:"label"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// CacheConfig controls the extraction cache.
type CacheConfig struct {
	// TTL is how long extraction results are memoised per text.
	// Zero disables the cache.
	TTL time.Duration `mapstructure:"ttl"`
}

// TracingConfig holds OpenTelemetry configuration for conversion pipelines.
type TracingConfig struct {
	// Enabled controls whether tracing is active. Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the backend: "none", "file", "stdout" or "otlp".
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for the "file" exporter.
	// Default: ~/.config/tsconv/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp". Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0). Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// DefaultHistoryPath returns ~/.local/share/tsconv/history.db, or an empty
// string (memory-only history) when the home directory is unknown.
func DefaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "tsconv", "history.db")
}

// DefaultTracesFilePath returns ~/.config/tsconv/traces/traces.jsonl or
// empty string if the home directory is unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "tsconv", "traces", "traces.jsonl")
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		History: HistoryConfig{
			Path:   DefaultHistoryPath(),
			Limit:  50,
			Recent: 3,
		},
		Toast: ToastConfig{
			Duration:       3 * time.Second,
			ResultDuration: 8 * time.Second,
			Fade:           300 * time.Millisecond,
		},
		Button: ButtonConfig{
			Label:    "Convert Copied _ts",
			Debounce: 300 * time.Millisecond,
		},
		AutoRefresh:         true,
		AutoRefreshDebounce: 100 * time.Millisecond,
		Cache: CacheConfig{
			TTL: 10 * time.Minute,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     DefaultTracesFilePath(),
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
		Flags: map[string]bool{},
	}
}

// Validate reports the first invalid setting.
func Validate(c Config) error {
	if c.History.Limit < 1 || c.History.Limit > MaxHistoryLimit {
		return fmt.Errorf("history.limit must be between 1 and %d, got %d", MaxHistoryLimit, c.History.Limit)
	}
	if c.History.Recent < 1 {
		return fmt.Errorf("history.recent must be at least 1, got %d", c.History.Recent)
	}
	if c.Toast.Duration <= 0 || c.Toast.ResultDuration <= 0 {
		return fmt.Errorf("toast durations must be positive")
	}
	if c.Toast.Fade < 0 {
		return fmt.Errorf("toast.fade must not be negative, got %s", c.Toast.Fade)
	}
	if c.Button.Debounce < 0 {
		return fmt.Errorf("button.debounce must not be negative, got %s", c.Button.Debounce)
	}
	return ValidateTracing(c.Tracing)
}

// ValidateTracing checks tracing settings.
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}
