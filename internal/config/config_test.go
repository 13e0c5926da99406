package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaults_Valid(t *testing.T) {
	cfg := Defaults()

	require.NoError(t, Validate(cfg))
	require.Equal(t, 50, cfg.History.Limit)
	require.Equal(t, 3, cfg.History.Recent)
	require.Equal(t, 3*time.Second, cfg.Toast.Duration)
	require.Equal(t, 8*time.Second, cfg.Toast.ResultDuration)
	require.Equal(t, 300*time.Millisecond, cfg.Toast.Fade)
	require.Equal(t, 300*time.Millisecond, cfg.Button.Debounce)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"limit", func(c *Config) { c.History.Limit = 0 }, "history.limit"},
		{"limit above cap", func(c *Config) { c.History.Limit = 100 }, "between 1 and 50"},
		{"recent", func(c *Config) { c.History.Recent = 0 }, "history.recent"},
		{"toast", func(c *Config) { c.Toast.Duration = 0 }, "toast durations"},
		{"fade", func(c *Config) { c.Toast.Fade = -time.Second }, "toast.fade"},
		{"debounce", func(c *Config) { c.Button.Debounce = -time.Second }, "button.debounce"},
		{"sample rate", func(c *Config) { c.Tracing.SampleRate = 2 }, "sample_rate"},
		{"exporter", func(c *Config) { c.Tracing.Exporter = "zipkin" }, "tracing.exporter"},
		{"file path", func(c *Config) {
			c.Tracing.Enabled = true
			c.Tracing.FilePath = ""
		}, "file_path"},
		{"otlp endpoint", func(c *Config) {
			c.Tracing.Enabled = true
			c.Tracing.Exporter = "otlp"
			c.Tracing.OTLPEndpoint = ""
		}, "otlp_endpoint"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := Validate(cfg)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "# tsconv configuration")

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))

	toast, ok := doc["toast"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "3s", toast["duration"])
	require.Equal(t, "300ms", toast["fade"])

	hist, ok := doc["history"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, 50, hist["limit"])
}

func TestValidate_HistoryLimitBounds(t *testing.T) {
	for _, limit := range []int{1, 10, MaxHistoryLimit} {
		cfg := Defaults()
		cfg.History.Limit = limit
		require.NoError(t, Validate(cfg), "limit %d", limit)
	}

	cfg := Defaults()
	cfg.History.Limit = MaxHistoryLimit + 1
	require.Error(t, Validate(cfg))
}
