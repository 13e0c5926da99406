package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/tsconv/internal/log"
)

const header = `# tsconv configuration
# Durations accept Go syntax: 300ms, 3s, 10m.
`

// defaultDocument mirrors Defaults with durations rendered as strings so
// the written file reads the way users would type it.
func defaultDocument(c Config) map[string]any {
	return map[string]any{
		"history": map[string]any{
			"path":   c.History.Path,
			"limit":  c.History.Limit,
			"recent": c.History.Recent,
		},
		"toast": map[string]any{
			"duration":        c.Toast.Duration.String(),
			"result_duration": c.Toast.ResultDuration.String(),
			"fade":            c.Toast.Fade.String(),
		},
		"button": map[string]any{
			"label":    c.Button.Label,
			"debounce": c.Button.Debounce.String(),
		},
		"auto_refresh":          c.AutoRefresh,
		"auto_refresh_debounce": c.AutoRefreshDebounce.String(),
		"cache": map[string]any{
			"ttl": c.Cache.TTL.String(),
		},
		"tracing": map[string]any{
			"enabled":       c.Tracing.Enabled,
			"exporter":      c.Tracing.Exporter,
			"file_path":     c.Tracing.FilePath,
			"otlp_endpoint": c.Tracing.OTLPEndpoint,
			"sample_rate":   c.Tracing.SampleRate,
		},
		"flags": c.Flags,
	}
}

// DefaultConfigYAML renders Defaults as a YAML document.
func DefaultConfigYAML() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(header)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(defaultDocument(Defaults())); err != nil {
		return nil, fmt.Errorf("encoding default config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding default config: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteDefaultConfig creates a config file with default values at the
// given path, creating parent directories as needed.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := DefaultConfigYAML()
	if err != nil {
		return err
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
