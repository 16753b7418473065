// Package playback tracks timeline state and maps elapsed time to frames.
package playback

import (
	"sync"
	"time"
)

// Clock is a monotonic millisecond clock.
type Clock interface {
	NowMs() int64
}

// SystemClock reads the process monotonic clock. It is unaffected by
// wall-clock changes.
type SystemClock struct {
	base time.Time
}

// NewSystemClock creates a clock reading 0 at creation.
func NewSystemClock() *SystemClock {
	return &SystemClock{base: time.Now()}
}

func (c *SystemClock) NowMs() int64 {
	return time.Since(c.base).Milliseconds()
}

// ManualClock only moves when told to. Safe for concurrent use.
type ManualClock struct {
	mu  sync.Mutex
	now int64
}

// NewManualClock creates a clock reading start.
func NewManualClock(start int64) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) NowMs() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by ms.
func (c *ManualClock) Advance(ms int64) {
	c.mu.Lock()
	c.now += ms
	c.mu.Unlock()
}

// Set moves the clock to ms.
func (c *ManualClock) Set(ms int64) {
	c.mu.Lock()
	c.now = ms
	c.mu.Unlock()
}
