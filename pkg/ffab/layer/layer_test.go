package layer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"runtime"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provide-io/ffab/go/ffab/internal/ffabtest"
	"github.com/provide-io/ffab/go/ffab/pkg/ffab/cache"
	ffaberrors "github.com/provide-io/ffab/go/ffab/pkg/ffab/errors"
	"github.com/provide-io/ffab/go/ffab/pkg/ffab/format_v1"
	"github.com/provide-io/ffab/go/ffab/pkg/ffab/playback"
	"github.com/provide-io/ffab/go/ffab/pkg/ffab/source"
)

func testLibrary() *Library {
	logger := hclog.New(&hclog.LoggerOptions{Name: "layer_test", Level: hclog.Trace})
	return NewLibrary(cache.New[format_v1.Bundle](cache.WithCapacity(8), cache.WithLogger(logger)), logger)
}

func fiveFrames() []byte {
	return ffabtest.Build(ffabtest.BuildOptions{
		Width:  16,
		Height: 16,
		Format: format_v1.ASTC4x4,
		Frames: ffabtest.Frames(10, 20, 30, 40, 50),
	})
}

func newLayer(lib *Library, src source.Source, state *playback.PlayState, timing playback.TimingConfig) *Layer {
	l := New(lib, "test", src, state, timing)
	l.Width, l.Height = 100, 100
	return l
}

func TestCurrentFrameFollowsClock(t *testing.T) {
	lib := testLibrary()
	clock := playback.NewManualClock(1000)
	state := playback.NewPlayState(clock)
	l := newLayer(lib, source.Memory("five", fiveFrames()), state, playback.DefaultTiming(10))

	state.Start(true)
	clock.Advance(250)

	f, ok := l.CurrentFrame()
	require.True(t, ok)
	assert.Equal(t, 2, f.Index)
	assert.Len(t, f.Data, 30)
	assert.Equal(t, byte(3), f.Data[0])
	assert.Equal(t, format_v1.ASTC4x4, f.Format)
	assert.Equal(t, uint16(16), f.Width)

	state.Pause()
	clock.Advance(10_000)
	f, ok = l.CurrentFrame()
	require.True(t, ok)
	assert.Equal(t, 2, f.Index, "paused layer must hold its frame")
}

func TestCurrentFrameSharedState(t *testing.T) {
	lib := testLibrary()
	clock := playback.NewManualClock(0)
	state := playback.NewPlayState(clock)
	data := fiveFrames()

	a := newLayer(lib, source.Memory("shared", data), state, playback.DefaultTiming(10))
	b := newLayer(lib, source.Memory("shared", data), state, playback.DefaultTiming(20))

	state.Start(true)
	clock.Advance(120)

	fa, ok := a.CurrentFrame()
	require.True(t, ok)
	fb, ok := b.CurrentFrame()
	require.True(t, ok)
	assert.Equal(t, 1, fa.Index)
	assert.Equal(t, 2, fb.Index)
	assert.Equal(t, 1, lib.Cache().Len(), "one identity must decode once")
}

func TestCurrentFrameDrawsNothing(t *testing.T) {
	lib := testLibrary()
	clock := playback.NewManualClock(0)
	state := playback.NewPlayState(clock)
	state.Start(true)

	good := source.Memory("good", fiveFrames())
	bad := source.Memory("bad", []byte("garbage that is not a bundle"))

	testCases := []struct {
		name  string
		layer *Layer
	}{
		{"undecodable bundle", newLayer(lib, bad, state, playback.DefaultTiming(10))},
		{"no timeline", newLayer(lib, good, nil, playback.DefaultTiming(10))},
		{"zero extent", New(lib, "unsized", good, state, playback.DefaultTiming(10))},
		{"never visible", newLayer(lib, good, state, playback.TimingConfig{Rate: 10, DurationMs: -1, VisibleDurationMs: 0})},
		{"no source", newLayer(lib, nil, state, playback.DefaultTiming(10))},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := tc.layer.CurrentFrame()
			assert.False(t, ok)
		})
	}
}

func TestCurrentFrameFromArchive(t *testing.T) {
	data := fiveFrames()
	path := ffabtest.WriteArchive(t, "pack.tar", []ffabtest.Member{
		{Name: "a.ffab", Data: data},
		{Name: "b.ffab", Data: ffabtest.Simple()},
	})

	archive, err := source.OpenArchive(path, nil)
	require.NoError(t, err)
	defer archive.Close()

	lib := testLibrary()
	clock := playback.NewManualClock(0)
	state := playback.NewPlayState(clock)
	state.StartAt(true, 400)

	m1, err := archive.Member("a.ffab")
	require.NoError(t, err)
	m2, err := archive.Member("a.ffab")
	require.NoError(t, err)

	f1, ok := newLayer(lib, m1, state, playback.DefaultTiming(10)).CurrentFrame()
	require.True(t, ok)
	f2, ok := newLayer(lib, m2, state, playback.DefaultTiming(10)).CurrentFrame()
	require.True(t, ok)

	assert.Equal(t, 4, f1.Index)
	assert.True(t, bytes.Equal(f1.Data, f2.Data))
	assert.Same(t, &f1.Data[0], &f2.Data[0], "both handles must share one decoded bundle")
	assert.Same(t, lib.Bundle(m1), lib.Bundle(m2))
}

func TestCurrentFrameAfterReopen(t *testing.T) {
	lib := testLibrary()
	path := ffabtest.WriteFile(t, "five.ffab", fiveFrames())

	first, err := source.OpenFile(path)
	require.NoError(t, err)
	cached := lib.Bundle(first)
	require.NotNil(t, cached)
	require.NoError(t, first.Close())
	assert.Nil(t, first.Bytes())

	// Map zero-filled files after collections so a released region would be
	// handed out again.
	for i := range 8 {
		runtime.GC()
		filler, err := source.OpenFile(ffabtest.WriteFile(t, fmt.Sprintf("zero%d.bin", i), make([]byte, 4096)))
		require.NoError(t, err)
		defer filler.Close()
	}

	second, err := source.OpenFile(path)
	require.NoError(t, err)
	defer second.Close()

	clock := playback.NewManualClock(0)
	state := playback.NewPlayState(clock)
	state.Start(true)
	clock.Advance(150)

	f, ok := newLayer(lib, second, state, playback.DefaultTiming(10)).CurrentFrame()
	require.True(t, ok)
	assert.Same(t, cached, lib.Bundle(second))
	assert.Equal(t, 1, f.Index)
	assert.Equal(t, bytes.Repeat([]byte{2}, 20), f.Data)
}

func TestPreload(t *testing.T) {
	lib := testLibrary()
	srcs := []source.Source{
		source.Memory("one", fiveFrames()),
		source.Memory("two", ffabtest.Simple()),
	}

	require.NoError(t, lib.Preload(context.Background(), srcs...))
	assert.Equal(t, 2, lib.Cache().Len())
	assert.Equal(t, 2, lib.Cache().HotLen())
}

func TestPreloadFailure(t *testing.T) {
	lib := testLibrary()
	err := lib.Preload(context.Background(),
		source.Memory("one", fiveFrames()),
		source.Memory("broken", []byte{0xFF, 0xAB}),
	)
	assert.True(t, errors.Is(err, ffaberrors.ErrDecodeFailed), "error = %v", err)
}

func TestPreloadCancelled(t *testing.T) {
	lib := testLibrary()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := lib.Preload(ctx, source.Memory("one", fiveFrames()))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, lib.Cache().Len())
}
