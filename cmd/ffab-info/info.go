package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/provide-io/ffab/go/ffab/pkg/ffab/format_v1"
	"github.com/provide-io/ffab/go/ffab/pkg/ffab/source"
)

var (
	infoVerbose bool
	infoOutput  string
)

// report is the machine-readable form of the info command.
type report struct {
	Path    string                 `json:"path" yaml:"path"`
	Version uint16                 `json:"version" yaml:"version"`
	Stats   format_v1.Stats        `json:"stats" yaml:"stats"`
	Index   []format_v1.IndexEntry `json:"index,omitempty" yaml:"index,omitempty"`
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Print bundle metadata and size statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, closeFn, err := openBundle(args[0])
			if err != nil {
				return err
			}
			defer closeFn()
			return writeInfo(cmd.OutOrStdout(), args[0], b, infoOutput, infoVerbose)
		},
	}
	cmd.Flags().BoolVarP(&infoVerbose, "verbose", "v", false, "Include the full index table")
	cmd.Flags().StringVarP(&infoOutput, "output", "o", "text", "Output format (text, json, yaml)")
	return cmd
}

// openBundle maps and decodes path. The returned func releases the mapping.
func openBundle(path string) (*format_v1.Bundle, func(), error) {
	src, err := source.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	b, err := format_v1.DecodeWithLogger(src.Bytes(), logger.Named("decode"))
	if err != nil {
		src.Close()
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, func() { src.Close() }, nil
}

func writeInfo(w io.Writer, path string, b *format_v1.Bundle, output string, verbose bool) error {
	r := report{Path: path, Version: b.Version, Stats: b.Stats()}
	if verbose {
		r.Index = b.Index
	}

	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		out, err := yaml.Marshal(r)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	case "text", "":
		return writeInfoText(w, r)
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}

func writeInfoText(w io.Writer, r report) error {
	s := r.Stats
	rule := strings.Repeat("=", 60)

	var sb strings.Builder
	fmt.Fprintln(&sb, rule)
	fmt.Fprintf(&sb, "FFAB bundle: %s\n", color.New(color.Bold, color.FgCyan).Sprint(r.Path))
	fmt.Fprintln(&sb, rule)
	fmt.Fprintf(&sb, "File size:        %d bytes (%.2f KB)\n", s.FileSize, float64(s.FileSize)/1024)
	fmt.Fprintf(&sb, "Version:          0x%04X\n", r.Version)
	fmt.Fprintf(&sb, "Frames:           %d\n", s.Frames)
	fmt.Fprintf(&sb, "Resolution:       %dx%d\n", s.Width, s.Height)
	fmt.Fprintf(&sb, "ASTC format:      %s (0x%04X)\n", s.Format, s.FormatCode)
	fmt.Fprintf(&sb, "Index offset:     %d\n", s.IndexOffset)
	fmt.Fprintf(&sb, "Data offset:      %d\n", s.DataStart)
	fmt.Fprintf(&sb, "Compressed size:  %d bytes\n", s.CompressedSize)
	fmt.Fprintf(&sb, "Compression:      %.2f:1\n", s.CompressionRatio)
	fmt.Fprintf(&sb, "Frame size:       avg %.2f, min %d, max %d bytes\n", s.AvgFrameSize, s.MinFrameSize, s.MaxFrameSize)

	if len(r.Index) > 0 {
		fmt.Fprintln(&sb, strings.Repeat("-", 60))
		fmt.Fprintf(&sb, "%-8s %-12s %-12s\n", "Frame", "Offset", "Length")
		for i, e := range r.Index {
			fmt.Fprintf(&sb, "%-8d %-12d %-12d\n", i, e.Offset, e.Length)
		}
	}
	fmt.Fprintln(&sb, rule)

	_, err := io.WriteString(w, sb.String())
	return err
}
