// Package logging builds the hclog loggers used by the ffab packages and
// commands.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mattn/go-isatty"
)

// Prefix marks every text log line.
const Prefix = "🎞️ "

// NewLogger creates a logger, choosing JSON output when FFAB_JSON_LOG=1.
func NewLogger(name string, level string, output io.Writer) hclog.Logger {
	return NewLoggerWithFormat(name, level, os.Getenv("FFAB_JSON_LOG") == "1", output)
}

// NewLoggerWithFormat creates a logger with an explicit output format. Text
// output is prefixed, and its level header is colored when it goes straight
// to a terminal.
func NewLoggerWithFormat(name string, level string, jsonFormat bool, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}

	opts := &hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(level),
		JSONFormat: jsonFormat,
		TimeFormat: "2006-01-02T15:04:05Z",
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	}

	if !jsonFormat {
		if isTerminal(output) && os.Getenv("NO_COLOR") == "" {
			opts.Color = hclog.ForceColor
			opts.ColorHeaderOnly = true
		}
		output = NewPrefixWriter(Prefix, output)
	}
	opts.Output = output

	return hclog.New(opts)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// GetLogLevel returns FFAB_LOG_LEVEL, defaulting to warn.
func GetLogLevel() string {
	level := os.Getenv("FFAB_LOG_LEVEL")
	if level == "" {
		level = "warn"
	}
	return level
}
