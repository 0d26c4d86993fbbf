package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Run from an empty directory so no similitude.yaml is picked up.
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "similitude.db", cfg.Database.Path)
	assert.Equal(t, 8, cfg.Scan.InlineThresholdMB)
	assert.Equal(t, 1, cfg.Scan.PreHashWindowMB)
	assert.Empty(t, cfg.Scan.Enable)
	assert.Equal(t, "json", cfg.Report.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "similitude.yaml")
	content := `
database:
  path: /var/lib/similitude/index.db
scan:
  ignore:
    - "*.tmp"
    - ".git"
  inline_threshold_mb: 16
  enable:
    - phash
    - ssdeep
report:
  format: csv
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/similitude/index.db", cfg.Database.Path)
	assert.Equal(t, []string{"*.tmp", ".git"}, cfg.Scan.Ignore)
	assert.Equal(t, 16, cfg.Scan.InlineThresholdMB)
	assert.True(t, cfg.Scan.Enabled("phash"))
	assert.True(t, cfg.Scan.Enabled("ssdeep"))
	assert.False(t, cfg.Scan.Enabled("other"))
	assert.Equal(t, "csv", cfg.Report.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Database: DatabaseConfig{Path: "similitude.db"},
			Report:   ReportConfig{Format: "json"},
			Logging:  LoggingConfig{Level: "info", Format: "console"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing db path", func(c *Config) { c.Database.Path = "" }, "database.path"},
		{"negative threshold", func(c *Config) { c.Scan.InlineThresholdMB = -1 }, "inline_threshold_mb"},
		{"negative window", func(c *Config) { c.Scan.PreHashWindowMB = -1 }, "prehash_window_mb"},
		{"unknown feature", func(c *Config) { c.Scan.Enable = []string{"magic"} }, "scan.enable"},
		{"bad report format", func(c *Config) { c.Report.Format = "xml" }, "report.format"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad log format", func(c *Config) { c.Logging.Format = "plain" }, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestByteHelpers(t *testing.T) {
	c := &ScanConfig{InlineThresholdMB: 4, PreHashWindowMB: 2}
	assert.Equal(t, int64(4<<20), c.InlineThreshold())
	assert.Equal(t, int64(2<<20), c.PreHashWindow())

	// Zero falls back to the defaults.
	zero := &ScanConfig{}
	assert.Equal(t, int64(8<<20), zero.InlineThreshold())
	assert.Equal(t, int64(1<<20), zero.PreHashWindow())
}
