package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "data/rainfall_data.csv", cfg.Data.Path)
	assert.Equal(t, 1500*time.Millisecond, cfg.Animation.Interval)
	assert.Equal(t, 1.0, cfg.Animation.Speed)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.True(t, cfg.HTTP.OpenBrowser)
	assert.Equal(t, 512, cfg.Render.CacheSize)
	assert.Equal(t, "info", cfg.Logging.Level)

	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	content := `
data:
  path: "testdata/hk_rainfall.csv"
  sample_years: "2018-2022"

animation:
  interval: 500ms
  speed: 2

http:
  addr: ":9090"
  open_browser: false

logging:
  level: "debug"
  format: "json"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "testdata/hk_rainfall.csv", cfg.Data.Path)
	assert.Equal(t, 500*time.Millisecond, cfg.Animation.Interval)
	assert.Equal(t, 2.0, cfg.Animation.Speed)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.False(t, cfg.HTTP.OpenBrowser)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("RAINVIZ_HTTP_ADDR", ":7070")
	t.Setenv("RAINVIZ_LOGGING_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.HTTP.Addr)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestValidateRejectsBadValues(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "empty data path",
			mutate:  func(c *Config) { c.Data.Path = "" },
			wantErr: "data.path",
		},
		{
			name:    "malformed sample years",
			mutate:  func(c *Config) { c.Data.SampleYears = "lately" },
			wantErr: "sample_years",
		},
		{
			name:    "reversed sample years",
			mutate:  func(c *Config) { c.Data.SampleYears = "2023-2020" },
			wantErr: "precedes",
		},
		{
			name:    "interval too small",
			mutate:  func(c *Config) { c.Animation.Interval = 10 * time.Millisecond },
			wantErr: "animation.interval",
		},
		{
			name:    "unsupported speed",
			mutate:  func(c *Config) { c.Animation.Speed = 5 },
			wantErr: "animation.speed",
		},
		{
			name:    "zero cache size",
			mutate:  func(c *Config) { c.Render.CacheSize = 0 },
			wantErr: "render.cache_size",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "logging.level",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSampleYearRange(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	start, end, err := cfg.SampleYearRange()
	require.NoError(t, err)
	assert.Equal(t, 2020, start)
	assert.Equal(t, 2023, end)
}
