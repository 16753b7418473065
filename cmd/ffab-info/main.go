package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/provide-io/ffab/go/ffab/internal/config"
	"github.com/provide-io/ffab/go/ffab/pkg/logging"
)

const version = "0.1.0"

var (
	configPath  string
	logLevel    string
	versionFlag bool
	rootCmd     *cobra.Command

	cfg    *config.Config
	logger hclog.Logger
)

// vcsStamp reports the commit and commit time recorded by the go tool, or
// "unknown" for builds without VCS stamping.
func vcsStamp(info *debug.BuildInfo) string {
	var rev, at string
	if info != nil {
		for _, kv := range info.Settings {
			switch kv.Key {
			case "vcs.revision":
				rev = kv.Value
			case "vcs.time":
				at = kv.Value
			}
		}
	}
	if rev == "" {
		return "unknown"
	}
	if len(rev) > 12 {
		rev = rev[:12]
	}
	if at == "" {
		return rev
	}
	return rev + " (" + at + ")"
}

func init() {
	rootCmd = &cobra.Command{
		Use:               "ffab-info",
		Short:             "Inspect FFAB animation bundles",
		Long:              `Inspect FFAB animation bundles: print metadata, export frames and simulate playback.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			if versionFlag {
				printVersion(cmd.OutOrStdout())
				return nil
			}
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file (yaml, json or toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&color.NoColor, "no-color", color.NoColor, "Disable colored output")
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "V", false, "Show version information")

	rootCmd.AddCommand(newInfoCmd(), newExtractCmd(), newTimelineCmd())
}

// setup loads configuration and builds the logger before any subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logger = logging.NewLoggerWithFormat("ffab-info", cfg.LogLevel, cfg.JSONLog, cmd.ErrOrStderr())
	logger.Debug("🔧 Configuration loaded", "config", configPath, "cache_capacity", cfg.CacheCapacity)
	return nil
}

func printVersion(w io.Writer) {
	info, _ := debug.ReadBuildInfo()
	fmt.Fprintf(w, "ffab-info %s\ncommit: %s\n", version, vcsStamp(info))
}

func main() {
	// Handle --version or -V before cobra parses other flags
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-V") {
		printVersion(os.Stdout)
		os.Exit(0)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
