package format_v1

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	ffaberrors "github.com/provide-io/ffab/go/ffab/pkg/ffab/errors"
)

// Decode parses an FFAB bundle. The returned Bundle keeps a reference to data.
func Decode(data []byte) (*Bundle, error) {
	return DecodeWithLogger(data, hclog.NewNullLogger())
}

// DecodeWithLogger parses an FFAB bundle, tracing progress to logger
func DecodeWithLogger(data []byte, logger hclog.Logger) (*Bundle, error) {
	return DecodeRetained(data, nil, logger)
}

// DecodeRetained is DecodeWithLogger for data that lives outside the Go heap.
// The bundle holds keep, which must keep data valid while it is reachable.
func DecodeRetained(data []byte, keep any, logger hclog.Logger) (*Bundle, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	var h Header
	if err := h.Unpack(data); err != nil {
		return nil, err
	}
	format, err := h.Validate()
	if err != nil {
		logger.Debug("❌ Rejected bundle header", "magic", fmt.Sprintf("0x%04X", h.Magic), "version", h.Version, "error", err)
		return nil, err
	}

	logger.Trace("📦 Parsed bundle header",
		"frames", h.FrameCount,
		"width", h.Width,
		"height", h.Height,
		"format", format.String(),
	)

	count := int(h.FrameCount)
	dataStart := DataStart(count)
	if len(data) < dataStart {
		return nil, fmt.Errorf("%w: need %d bytes for %d entries, have %d",
			ffaberrors.ErrIndexTruncated, dataStart-PreambleSize, count, len(data)-PreambleSize)
	}

	index, err := readIndex(data, count, dataStart)
	if err != nil {
		logger.Debug("❌ Rejected bundle index", "error", err)
		return nil, err
	}

	logger.Debug("✅ Decoded bundle",
		"frames", count,
		"size", len(data),
		"data_start", dataStart,
	)

	return &Bundle{
		Version:    h.Version,
		FrameCount: h.FrameCount,
		Width:      h.Width,
		Height:     h.Height,
		Format:     format,
		Index:      index,
		data:       data,
		keep:       keep,
	}, nil
}

// readIndex unpacks and validates the index table. Entries must be ordered,
// must not overlap and must lie inside [dataStart, len(data)).
func readIndex(data []byte, count, dataStart int) ([]IndexEntry, error) {
	size := uint64(len(data))
	prevEnd := uint64(dataStart)
	index := make([]IndexEntry, count)

	for i := 0; i < count; i++ {
		off := PreambleSize + i*IndexEntrySize
		e, err := UnpackIndexEntry(data[off : off+IndexEntrySize])
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ffaberrors.ErrIndexTruncated, i, err)
		}

		if e.Offset > size || uint64(e.Length) > size-e.Offset {
			return nil, fmt.Errorf("%w: frame %d [%d, %d) exceeds source length %d",
				ffaberrors.ErrFrameOutOfBounds, i, e.Offset, e.Offset+uint64(e.Length), size)
		}
		if e.Offset < uint64(dataStart) {
			return nil, fmt.Errorf("%w: frame %d starts at %d, data region starts at %d",
				ffaberrors.ErrFrameOutOfBounds, i, e.Offset, dataStart)
		}
		if e.Offset < prevEnd {
			return nil, fmt.Errorf("%w: frame %d starts at %d before previous end %d",
				ffaberrors.ErrFrameOverlap, i, e.Offset, prevEnd)
		}

		prevEnd = e.End()
		index[i] = e
	}

	return index, nil
}
