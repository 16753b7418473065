package layer

import (
	"github.com/provide-io/ffab/go/ffab/pkg/ffab/format_v1"
	"github.com/provide-io/ffab/go/ffab/pkg/ffab/playback"
	"github.com/provide-io/ffab/go/ffab/pkg/ffab/source"
)

// Layer is one animated image in the host's scene. Layers that should play in
// step share a State.
type Layer struct {
	Name   string
	Source source.Source
	State  *playback.PlayState
	Timing playback.TimingConfig

	// Width and Height are the layer's visible extent; zero draws nothing.
	Width  float64
	Height float64

	library *Library
}

// New creates a layer drawing src through lib. Set Width and Height before
// drawing.
func New(lib *Library, name string, src source.Source, state *playback.PlayState, timing playback.TimingConfig) *Layer {
	return &Layer{
		Name:    name,
		Source:  src,
		State:   state,
		Timing:  timing,
		library: lib,
	}
}

// Frame is what the renderer needs to upload one compressed image.
type Frame struct {
	Index  int
	Data   []byte
	Width  uint16
	Height uint16
	Format format_v1.Format
}

// CurrentFrame selects the frame to draw now. It reports false when the layer
// should draw nothing, including when its bundle does not decode.
func (l *Layer) CurrentFrame() (Frame, bool) {
	if l.Width <= 0 || l.Height <= 0 || l.Source == nil {
		return Frame{}, false
	}

	b := l.library.Bundle(l.Source)
	if b == nil {
		return Frame{}, false
	}

	var elapsed *int64
	if l.State != nil {
		e := l.State.ElapsedRunningTime()
		elapsed = &e
	}

	i, ok := playback.SelectFrame(elapsed, l.Timing, int(b.FrameCount))
	if !ok {
		return Frame{}, false
	}

	data, err := b.FrameData(i)
	if err != nil {
		l.library.logger.Error("❌ Selected frame outside bundle", "layer", l.Name, "frame", i, "error", err)
		return Frame{}, false
	}

	return Frame{
		Index:  i,
		Data:   data,
		Width:  b.Width,
		Height: b.Height,
		Format: b.Format,
	}, true
}
