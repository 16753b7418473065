package playback

import (
	"fmt"
	"sync"

	ffaberrors "github.com/provide-io/ffab/go/ffab/pkg/ffab/errors"
)

// PlayState is the running/paused state of one timeline. Layers that should
// stay in step share a PlayState. All methods serialize on one mutex.
type PlayState struct {
	mu    sync.Mutex
	clock Clock

	running   bool
	started   bool
	startTime int64
	// offset is the configured start offset; startOffset is the one in
	// effect, which Seek moves without touching offset.
	offset      int64
	startOffset int64

	accumulatedPause int64
	paused           bool
	pauseStart       int64
}

// NewPlayState creates a never-started timeline.
func NewPlayState(clock Clock) *PlayState {
	if clock == nil {
		clock = NewSystemClock()
	}
	return &PlayState{clock: clock}
}

// Start starts the timeline with the previously configured offset.
func (p *PlayState) Start(reset bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.start(reset, p.offset)
}

// StartAt starts the timeline with a new offset. A positive offset skips
// ahead; a negative one delays the first frame. Without reset on a started
// timeline this is a resume and the offset is ignored.
func (p *PlayState) StartAt(reset bool, offsetMs int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.start(reset, offsetMs)
}

// Resume is Start(false).
func (p *PlayState) Resume() { p.Start(false) }

// Pause is Stop(false).
func (p *PlayState) Pause() { p.Stop(false) }

func (p *PlayState) start(reset bool, offset int64) {
	now := p.clock.NowMs()

	if reset || !p.started {
		p.started = true
		p.startTime = now
		p.offset = offset
		p.startOffset = offset
		p.accumulatedPause = 0
		p.paused = false
		p.running = true
		return
	}

	if p.paused {
		p.accumulatedPause += now - p.pauseStart
		p.paused = false
	}
	p.running = true
}

// Stop stops the timeline. With reset, or on a never-started timeline, it
// returns to the initial state (the configured offset is kept). Otherwise it
// begins a pause.
func (p *PlayState) Stop(reset bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if reset || !p.started {
		p.started = false
		p.startTime = 0
		p.accumulatedPause = 0
		p.paused = false
		p.pauseStart = 0
		p.running = false
		return
	}

	if !p.paused {
		p.paused = true
		p.pauseStart = p.clock.NowMs()
	}
	p.running = false
}

// Seek moves the timeline so that ElapsedRunningTime reads ms, keeping the
// current running or paused state. A never-started timeline is left paused
// at ms. The configured offset is kept, so a later restart begins there and
// not at ms.
func (p *PlayState) Seek(ms int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.clock.NowMs()
	wasRunning := p.running

	p.started = true
	p.startTime = now
	p.startOffset = ms
	p.accumulatedPause = 0
	p.paused = !wasRunning
	p.pauseStart = now
}

// IsRunning reports whether the timeline is advancing.
func (p *PlayState) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// ElapsedRunningTime returns the milliseconds spent running, excluding
// pauses, plus the start offset. It never returns a negative value; a
// negative offset reads 0 until it has been run off.
func (p *PlayState) ElapsedRunningTime() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return 0
	}

	now := p.clock.NowMs()
	running := now - p.startTime - p.accumulatedPause
	if p.paused {
		running -= now - p.pauseStart
	}
	if running < 0 {
		panic(fmt.Errorf("%w: %d ms (start %d, paused %d, now %d)",
			ffaberrors.ErrClockInvariant, running, p.startTime, p.accumulatedPause, now))
	}

	elapsed := running + p.startOffset
	if elapsed < 0 {
		return 0
	}
	return elapsed
}
