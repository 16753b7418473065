package source

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"
)

// Compression identifies how an archive is wrapped.
type Compression uint8

const (
	CompressionNone  Compression = 0x00
	CompressionGzip  Compression = 0x10
	CompressionBzip2 Compression = 0x13
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionBzip2:
		return "bzip2"
	default:
		return fmt.Sprintf("unknown(0x%02X)", uint8(c))
	}
}

// DetectCompression sniffs the stream magic.
func DetectCompression(data []byte) Compression {
	switch {
	case bytes.HasPrefix(data, []byte{0x1F, 0x8B}):
		return CompressionGzip
	case bytes.HasPrefix(data, []byte("BZh")):
		return CompressionBzip2
	default:
		return CompressionNone
	}
}

// Compress wraps data with c. Used to produce fixtures and packed archives.
func Compress(c Compression, data []byte) ([]byte, error) {
	var buf bytes.Buffer

	var w io.WriteCloser
	switch c {
	case CompressionNone:
		return data, nil
	case CompressionGzip:
		w = gzip.NewWriter(&buf)
	case CompressionBzip2:
		bw, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{Level: 9})
		if err != nil {
			return nil, fmt.Errorf("creating bzip2 writer: %w", err)
		}
		w = bw
	default:
		return nil, fmt.Errorf("unsupported compression %s", c)
	}

	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, fmt.Errorf("writing %s data: %w", c, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing %s writer: %w", c, err)
	}
	return buf.Bytes(), nil
}

// Decompress reverses Compress.
func Decompress(c Compression, data []byte) ([]byte, error) {
	var r io.ReadCloser
	switch c {
	case CompressionNone:
		return data, nil
	case CompressionGzip:
		gr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("creating gzip reader: %w", err)
		}
		r = gr
	case CompressionBzip2:
		br, err := bzip2.NewReader(bytes.NewReader(data), &bzip2.ReaderConfig{})
		if err != nil {
			return nil, fmt.Errorf("creating bzip2 reader: %w", err)
		}
		r = br
	default:
		return nil, fmt.Errorf("unsupported compression %s", c)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s data: %w", c, err)
	}
	return out, nil
}
