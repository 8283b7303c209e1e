// Package config loads application configuration from an optional YAML file
// and RAINVIZ_-prefixed environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Data      DataConfig      `mapstructure:"data"`
	Animation AnimationConfig `mapstructure:"animation"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Render    RenderConfig    `mapstructure:"render"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// DataConfig describes where the rainfall CSV lives.
type DataConfig struct {
	Path string `mapstructure:"path"`
	// SampleYears controls the generated fallback dataset used when Path
	// does not exist: "2020-2023" covers four years.
	SampleYears string `mapstructure:"sample_years"`
	SampleSeed  int64  `mapstructure:"sample_seed"`
}

// AnimationConfig holds playback behavior.
type AnimationConfig struct {
	Interval time.Duration `mapstructure:"interval"`
	Speed    float64       `mapstructure:"speed"`
}

// HTTPConfig holds the server and viewer settings.
type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	OpenBrowser     bool          `mapstructure:"open_browser"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// RenderConfig holds rendering settings.
type RenderConfig struct {
	CacheSize int `mapstructure:"cache_size"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from an optional file and environment variables.
// An empty path means env vars and defaults only.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("RAINVIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.path", "data/rainfall_data.csv")
	v.SetDefault("data.sample_years", "2020-2023")
	v.SetDefault("data.sample_seed", 42)

	v.SetDefault("animation.interval", "1500ms")
	v.SetDefault("animation.speed", 1.0)

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.open_browser", true)
	v.SetDefault("http.shutdown_timeout", "10s")

	v.SetDefault("render.cache_size", 512)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Validate checks that all configuration values are valid.
func (c *Config) Validate() error {
	if c.Data.Path == "" {
		return fmt.Errorf("data.path is required")
	}
	if _, _, err := c.SampleYearRange(); err != nil {
		return err
	}

	if c.Animation.Interval < 100*time.Millisecond {
		return fmt.Errorf("animation.interval must be at least 100ms")
	}
	switch c.Animation.Speed {
	case 1, 2, 3:
	default:
		return fmt.Errorf("animation.speed must be 1, 2, or 3")
	}

	if c.HTTP.Addr == "" {
		return fmt.Errorf("http.addr is required")
	}
	if c.HTTP.ShutdownTimeout < time.Second {
		return fmt.Errorf("http.shutdown_timeout must be at least 1s")
	}

	if c.Render.CacheSize < 1 {
		return fmt.Errorf("render.cache_size must be at least 1")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}

// SampleYearRange parses data.sample_years ("2020-2023") into start and end.
func (c *Config) SampleYearRange() (int, int, error) {
	var start, end int
	if _, err := fmt.Sscanf(c.Data.SampleYears, "%d-%d", &start, &end); err != nil {
		return 0, 0, fmt.Errorf("data.sample_years must look like 2020-2023: %w", err)
	}
	if end < start {
		return 0, 0, fmt.Errorf("data.sample_years end %d precedes start %d", end, start)
	}
	return start, end, nil
}
