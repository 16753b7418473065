package format_v1

// Stats summarises a bundle for inspection tools.
type Stats struct {
	Frames           int     `json:"frames" yaml:"frames"`
	Width            uint16  `json:"width" yaml:"width"`
	Height           uint16  `json:"height" yaml:"height"`
	Format           string  `json:"format" yaml:"format"`
	FormatCode       uint16  `json:"format_code" yaml:"format_code"`
	FileSize         int     `json:"file_size" yaml:"file_size"`
	IndexOffset      int     `json:"index_offset" yaml:"index_offset"`
	DataStart        int     `json:"data_start" yaml:"data_start"`
	CompressedSize   uint64  `json:"compressed_size" yaml:"compressed_size"`
	UncompressedSize uint64  `json:"uncompressed_size" yaml:"uncompressed_size"`
	MinFrameSize     uint32  `json:"min_frame_size" yaml:"min_frame_size"`
	MaxFrameSize     uint32  `json:"max_frame_size" yaml:"max_frame_size"`
	AvgFrameSize     float64 `json:"avg_frame_size" yaml:"avg_frame_size"`
	CompressionRatio float64 `json:"compression_ratio" yaml:"compression_ratio"`
}

// Stats computes size statistics. The uncompressed size assumes RGBA8 frames.
func (b *Bundle) Stats() Stats {
	s := Stats{
		Frames:      len(b.Index),
		Width:       b.Width,
		Height:      b.Height,
		Format:      b.Format.String(),
		FormatCode:  b.Format.Code(),
		FileSize:    b.Size(),
		IndexOffset: PreambleSize,
		DataStart:   b.DataStart(),
	}

	for i, e := range b.Index {
		s.CompressedSize += uint64(e.Length)
		if i == 0 || e.Length < s.MinFrameSize {
			s.MinFrameSize = e.Length
		}
		if e.Length > s.MaxFrameSize {
			s.MaxFrameSize = e.Length
		}
	}

	s.UncompressedSize = uint64(b.Width) * uint64(b.Height) * 4 * uint64(len(b.Index))
	if s.Frames > 0 {
		s.AvgFrameSize = float64(s.CompressedSize) / float64(s.Frames)
	}
	if s.CompressedSize > 0 {
		s.CompressionRatio = float64(s.UncompressedSize) / float64(s.CompressedSize)
	}
	return s
}
