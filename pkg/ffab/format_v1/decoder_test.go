package format_v1_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/ffab/go/ffab/internal/ffabtest"
	ffaberrors "github.com/provide-io/ffab/go/ffab/pkg/ffab/errors"
	"github.com/provide-io/ffab/go/ffab/pkg/ffab/format_v1"
)

func testLogger() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:  "decoder_test",
		Level: hclog.Trace,
	})
}

// TestDecodeValid decodes a fixture and checks every field
func TestDecodeValid(t *testing.T) {
	data := ffabtest.Simple()

	b, err := format_v1.DecodeWithLogger(data, testLogger())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if b.Version != 1 {
		t.Errorf("Version = %d, want 1", b.Version)
	}
	if b.FrameCount != 3 {
		t.Errorf("FrameCount = %d, want 3", b.FrameCount)
	}
	if b.Width != 64 || b.Height != 32 {
		t.Errorf("size = %dx%d, want 64x32", b.Width, b.Height)
	}
	if b.Format != format_v1.ASTC6x6 {
		t.Errorf("Format = %s, want 6x6", b.Format)
	}
	if b.DataStart() != 48 {
		t.Errorf("DataStart = %d, want 48", b.DataStart())
	}

	wantEntries := []format_v1.IndexEntry{
		{Offset: 48, Length: 100},
		{Offset: 148, Length: 150},
		{Offset: 298, Length: 50},
	}
	for i, want := range wantEntries {
		if b.Index[i] != want {
			t.Errorf("Index[%d] = %+v, want %+v", i, b.Index[i], want)
		}
	}
	if len(b.DataRegion()) != 300 {
		t.Errorf("DataRegion length = %d, want 300", len(b.DataRegion()))
	}
}

// TestFrameDataZeroCopy checks frame slices alias the source
func TestFrameDataZeroCopy(t *testing.T) {
	data := ffabtest.Simple()
	b, err := format_v1.Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	for i := 0; i < int(b.FrameCount); i++ {
		frame, err := b.FrameData(i)
		if err != nil {
			t.Fatalf("FrameData(%d) failed: %v", i, err)
		}
		e := b.Index[i]
		if !bytes.Equal(frame, data[e.Offset:e.End()]) {
			t.Errorf("FrameData(%d) does not match index range", i)
		}
		if len(frame) > 0 && &frame[0] != &data[e.Offset] {
			t.Errorf("FrameData(%d) was copied", i)
		}
		if frame[0] != byte(i+1) {
			t.Errorf("FrameData(%d)[0] = %d, want %d", i, frame[0], i+1)
		}
	}
}

// TestFrameDataOutOfRange checks IndexError for bad indices
func TestFrameDataOutOfRange(t *testing.T) {
	b, err := format_v1.Decode(ffabtest.Simple())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	for _, i := range []int{-1, 3, 1000} {
		if _, err := b.FrameData(i); !errors.Is(err, ffaberrors.ErrIndex) {
			t.Errorf("FrameData(%d) error = %v, want ErrIndex", i, err)
		}
	}
}

// TestDecodeMalformed checks every rejection path reports a format error
func TestDecodeMalformed(t *testing.T) {
	valid := ffabtest.Simple()

	testCases := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{
			name:    "empty",
			data:    nil,
			wantErr: ffaberrors.ErrTooShort,
		},
		{
			name:    "eleven bytes",
			data:    valid[:11],
			wantErr: ffaberrors.ErrTooShort,
		},
		{
			name:    "bad magic",
			data:    ffabtest.SetUint16(valid, 0, 0xABFF),
			wantErr: ffaberrors.ErrInvalidMagic,
		},
		{
			name:    "version 2",
			data:    ffabtest.SetUint16(valid, 2, 0x0002),
			wantErr: ffaberrors.ErrInvalidVersion,
		},
		{
			name:    "version 0",
			data:    ffabtest.SetUint16(valid, 2, 0x0000),
			wantErr: ffaberrors.ErrInvalidVersion,
		},
		{
			name:    "format code 0",
			data:    ffabtest.SetUint16(valid, 10, 0x0000),
			wantErr: ffaberrors.ErrUnknownFormat,
		},
		{
			name:    "format code 0x000F",
			data:    ffabtest.SetUint16(valid, 10, 0x000F),
			wantErr: ffaberrors.ErrUnknownFormat,
		},
		{
			name:    "truncated index",
			data:    valid[:format_v1.PreambleSize+20],
			wantErr: ffaberrors.ErrIndexTruncated,
		},
		{
			name:    "frame count larger than table",
			data:    ffabtest.SetUint16(valid[:format_v1.PreambleSize], 4, 2),
			wantErr: ffaberrors.ErrIndexTruncated,
		},
		{
			name:    "last frame past end",
			data:    valid[:len(valid)-1],
			wantErr: ffaberrors.ErrFrameOutOfBounds,
		},
		{
			name:    "offset overflow",
			data:    ffabtest.SetEntry(valid, 1, format_v1.IndexEntry{Offset: ^uint64(0) - 10, Length: 100}),
			wantErr: ffaberrors.ErrFrameOutOfBounds,
		},
		{
			name:    "frame inside index table",
			data:    ffabtest.SetEntry(valid, 0, format_v1.IndexEntry{Offset: 4, Length: 8}),
			wantErr: ffaberrors.ErrFrameOutOfBounds,
		},
		{
			name:    "overlapping frames",
			data:    ffabtest.SetEntry(valid, 1, format_v1.IndexEntry{Offset: 100, Length: 150}),
			wantErr: ffaberrors.ErrFrameOverlap,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := format_v1.DecodeWithLogger(tc.data, testLogger())
			if err == nil {
				t.Fatalf("Decode succeeded, want %v", tc.wantErr)
			}
			if b != nil {
				t.Errorf("Decode returned metadata alongside error")
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("error = %v, want %v", err, tc.wantErr)
			}
			if !errors.Is(err, ffaberrors.ErrFormat) {
				t.Errorf("error = %v is not a format error", err)
			}
		})
	}
}

// TestDecodeEmptyBundle accepts a bundle with no frames
func TestDecodeEmptyBundle(t *testing.T) {
	data := ffabtest.Build(ffabtest.BuildOptions{Width: 8, Height: 8, Format: format_v1.ASTC4x4})

	b, err := format_v1.Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if b.FrameCount != 0 || len(b.Index) != 0 {
		t.Errorf("FrameCount = %d, want 0", b.FrameCount)
	}
	if _, err := b.FrameData(0); !errors.Is(err, ffaberrors.ErrInvalidFrameIndex) {
		t.Errorf("FrameData(0) error = %v, want ErrInvalidFrameIndex", err)
	}
}

// TestDecodeTrailingBytes tolerates padding after the last frame
func TestDecodeTrailingBytes(t *testing.T) {
	data := append(ffabtest.Simple(), 0, 0, 0, 0)

	b, err := format_v1.Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if b.Size() != len(data) {
		t.Errorf("Size = %d, want %d", b.Size(), len(data))
	}
}

// TestHeaderPacking round-trips a header through its byte layout
func TestHeaderPacking(t *testing.T) {
	h := format_v1.Header{
		Magic:      format_v1.Magic,
		Version:    format_v1.Version,
		FrameCount: 0x0102,
		Width:      0x0304,
		Height:     0x0506,
		FormatCode: 0x000E,
	}

	packed := h.Pack()
	want := []byte{0xFF, 0xAB, 0x00, 0x01, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x00, 0x0E}
	if !bytes.Equal(packed, want) {
		t.Fatalf("Pack = % x, want % x", packed, want)
	}

	var got format_v1.Header
	if err := got.Unpack(packed); err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	if got != h {
		t.Errorf("Unpack = %+v, want %+v", got, h)
	}
}

// TestIndexEntryPacking checks the big-endian entry layout
func TestIndexEntryPacking(t *testing.T) {
	e := format_v1.IndexEntry{Offset: 0x0102030405060708, Length: 0x090A0B0C}

	packed := e.Pack()
	want := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	if !bytes.Equal(packed, want) {
		t.Fatalf("Pack = % x, want % x", packed, want)
	}

	got, err := format_v1.UnpackIndexEntry(packed)
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	if got != e {
		t.Errorf("Unpack = %+v, want %+v", got, e)
	}

	if _, err := format_v1.UnpackIndexEntry(packed[:11]); err == nil {
		t.Error("Unpack of 11 bytes succeeded")
	}
}

// TestStats checks the inspection summary
func TestStats(t *testing.T) {
	b, err := format_v1.Decode(ffabtest.Simple())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	s := b.Stats()
	if s.CompressedSize != 300 {
		t.Errorf("CompressedSize = %d, want 300", s.CompressedSize)
	}
	if s.MinFrameSize != 50 || s.MaxFrameSize != 150 {
		t.Errorf("min/max = %d/%d, want 50/150", s.MinFrameSize, s.MaxFrameSize)
	}
	if s.AvgFrameSize != 100 {
		t.Errorf("AvgFrameSize = %f, want 100", s.AvgFrameSize)
	}
	if s.UncompressedSize != 64*32*4*3 {
		t.Errorf("UncompressedSize = %d, want %d", s.UncompressedSize, 64*32*4*3)
	}
	if s.CompressionRatio != float64(64*32*4*3)/300 {
		t.Errorf("CompressionRatio = %f", s.CompressionRatio)
	}
	if s.DataStart != 48 || s.IndexOffset != 12 {
		t.Errorf("offsets = %d/%d, want 12/48", s.IndexOffset, s.DataStart)
	}
}
