// Package ffabtest builds FFAB bundles and tar archives for tests.
package ffabtest

import (
	"archive/tar"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/provide-io/ffab/go/ffab/pkg/ffab/format_v1"
	"github.com/provide-io/ffab/go/ffab/pkg/ffab/source"
)

// BuildOptions describes a bundle to build.
type BuildOptions struct {
	Width  uint16
	Height uint16
	Format format_v1.Format
	Frames [][]byte
}

// Build lays out a valid bundle: preamble, index table, then payloads
// back to back starting at the data region.
func Build(opts BuildOptions) []byte {
	header := format_v1.Header{
		Magic:      format_v1.Magic,
		Version:    format_v1.Version,
		FrameCount: uint16(len(opts.Frames)),
		Width:      opts.Width,
		Height:     opts.Height,
		FormatCode: opts.Format.Code(),
	}

	var buf bytes.Buffer
	buf.Write(header.Pack())

	offset := uint64(format_v1.DataStart(len(opts.Frames)))
	for _, f := range opts.Frames {
		buf.Write(format_v1.IndexEntry{Offset: offset, Length: uint32(len(f))}.Pack())
		offset += uint64(len(f))
	}
	for _, f := range opts.Frames {
		buf.Write(f)
	}
	return buf.Bytes()
}

// Frames returns n payloads of the given sizes, filled with their index so
// tests can tell them apart.
func Frames(sizes ...int) [][]byte {
	frames := make([][]byte, len(sizes))
	for i, n := range sizes {
		frames[i] = bytes.Repeat([]byte{byte(i + 1)}, n)
	}
	return frames
}

// Simple is a three-frame 64x32 6x6 bundle.
func Simple() []byte {
	return Build(BuildOptions{
		Width:  64,
		Height: 32,
		Format: format_v1.ASTC6x6,
		Frames: Frames(100, 150, 50),
	})
}

// WriteFile writes data under t.TempDir and returns the path.
func WriteFile(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// WriteArchive writes a tar archive with the given members in order.
func WriteArchive(t testing.TB, name string, members []Member) string {
	t.Helper()
	return WriteCompressedArchive(t, name, source.CompressionNone, members)
}

// WriteCompressedArchive writes a tar archive wrapped with c.
func WriteCompressedArchive(t testing.TB, name string, c source.Compression, members []Member) string {
	t.Helper()

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, m := range members {
		hdr := &tar.Header{
			Name:    m.Name,
			Mode:    0o600,
			Size:    int64(len(m.Data)),
			ModTime: time.Unix(0, 0),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("writing tar header %s: %v", m.Name, err)
		}
		if _, err := tw.Write(m.Data); err != nil {
			t.Fatalf("writing tar data %s: %v", m.Name, err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("closing tar writer: %v", err)
	}
	data, err := source.Compress(c, buf.Bytes())
	if err != nil {
		t.Fatalf("compressing %s: %v", name, err)
	}
	return WriteFile(t, name, data)
}

// Member is one tar archive entry.
type Member struct {
	Name string
	Data []byte
}

// SetUint16 overwrites a big-endian field in a copy of data.
func SetUint16(data []byte, off int, v uint16) []byte {
	out := append([]byte(nil), data...)
	out[off] = byte(v >> 8)
	out[off+1] = byte(v)
	return out
}

// SetEntry overwrites index entry i in a copy of data.
func SetEntry(data []byte, i int, e format_v1.IndexEntry) []byte {
	out := append([]byte(nil), data...)
	off := format_v1.PreambleSize + i*format_v1.IndexEntrySize
	if off+format_v1.IndexEntrySize > len(out) {
		panic(fmt.Sprintf("entry %d outside %d-byte bundle", i, len(out)))
	}
	copy(out[off:], e.Pack())
	return out
}
