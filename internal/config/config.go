// Package config provides configuration for the ffab tools.
package config

import (
	"time"

	"github.com/provide-io/ffab/go/ffab/pkg/ffab/cache"
	"github.com/provide-io/ffab/go/ffab/pkg/logging"
)

// Config holds settings shared by the ffab commands.
type Config struct {
	CacheCapacity int
	LogLevel      string
	JSONLog       bool

	// Timeline simulation
	Step  time.Duration
	Until time.Duration
}

// Default returns configuration with default values.
func Default() *Config {
	return &Config{
		CacheCapacity: cache.DefaultCapacity,
		LogLevel:      logging.GetLogLevel(),
		JSONLog:       false,
		Step:          100 * time.Millisecond,
		Until:         2 * time.Second,
	}
}
