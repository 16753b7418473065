package config

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/viper"
)

// Load reads configuration from an optional file.
// Environment > config file > defaults precedence.
func Load(configPath string) (*Config, error) {
	def := Default()
	v := viper.New()

	v.SetDefault("cache.capacity", def.CacheCapacity)
	v.SetDefault("log.level", def.LogLevel)
	v.SetDefault("log.json", def.JSONLog)
	v.SetDefault("playback.step", def.Step.String())
	v.SetDefault("playback.until", def.Until.String())

	// Bind environment variables with FFAB_ prefix
	v.SetEnvPrefix("FFAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		CacheCapacity: v.GetInt("cache.capacity"),
		LogLevel:      v.GetString("log.level"),
		JSONLog:       v.GetBool("log.json"),
		Step:          v.GetDuration("playback.step"),
		Until:         v.GetDuration("playback.until"),
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks cache capacity, log level and simulation bounds.
func validate(cfg *Config) error {
	if cfg.CacheCapacity <= 0 {
		return fmt.Errorf("cache.capacity must be positive, got %d", cfg.CacheCapacity)
	}
	if hclog.LevelFromString(cfg.LogLevel) == hclog.NoLevel {
		return fmt.Errorf("log.level %q is not a valid level", cfg.LogLevel)
	}
	if cfg.Step <= 0 {
		return fmt.Errorf("playback.step must be positive, got %v", cfg.Step)
	}
	if cfg.Until < 0 {
		return fmt.Errorf("playback.until must not be negative, got %v", cfg.Until)
	}
	return nil
}
