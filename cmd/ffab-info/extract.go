package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/provide-io/ffab/go/ffab/pkg/ffab/format_v1"
)

var extractMode string

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <file> <dir>",
		Short: "Write every frame as a standalone .astc file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, closeFn, err := openBundle(args[0])
			if err != nil {
				return err
			}
			defer closeFn()

			mode, err := parseMode(extractMode)
			if err != nil {
				return err
			}

			n, err := extractFrames(b, args[1], mode)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Extracted %d frames to %s\n", n, args[1])
			return nil
		},
	}
	cmd.Flags().StringVar(&extractMode, "mode", "0644", "Permissions for written frames (octal)")
	return cmd
}

// parseMode accepts "644", "0644" and "0o644".
func parseMode(s string) (os.FileMode, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0o"), "0")
	if s == "" {
		return 0o644, nil
	}
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil || v > 0o777 {
		return 0, fmt.Errorf("invalid mode %q", s)
	}
	return os.FileMode(v), nil
}

// extractFrames writes frame_0000.astc, frame_0001.astc, ... under dir.
func extractFrames(b *format_v1.Bundle, dir string, mode os.FileMode) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}

	for i := 0; i < int(b.FrameCount); i++ {
		file, err := b.ASTCFile(i)
		if err != nil {
			return i, err
		}
		path := filepath.Join(dir, fmt.Sprintf("frame_%04d.astc", i))
		if err := os.WriteFile(path, file, mode); err != nil {
			return i, fmt.Errorf("writing %s: %w", path, err)
		}
		logger.Debug("💾 Wrote frame", "frame", i, "path", path, "size", len(file))
	}
	return int(b.FrameCount), nil
}
