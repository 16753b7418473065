package playback

import "math"

// TimingConfig is a layer's playback timing.
type TimingConfig struct {
	// Rate is the playback rate in frames per second.
	Rate float32
	// FillStart shows frame 0 before the timeline reaches zero.
	FillStart bool
	// FillEnd holds the frame at DurationMs once it has passed.
	FillEnd bool
	// DurationMs bounds the animation; negative means unbounded.
	DurationMs int64
	// VisibleDurationMs bounds visibility; negative means always visible and
	// zero means never visible.
	VisibleDurationMs int64
}

// DefaultTiming loops forever at rate with no fills.
func DefaultTiming(rate float32) TimingConfig {
	return TimingConfig{
		Rate:              rate,
		DurationMs:        -1,
		VisibleDurationMs: -1,
	}
}

// SelectFrame picks the frame to draw for an elapsed time in milliseconds.
// A nil elapsed means the layer has no timeline. The second result is false
// when nothing should be drawn.
func SelectFrame(elapsed *int64, cfg TimingConfig, frameCount int) (int, bool) {
	rate := float64(cfg.Rate)
	if frameCount <= 0 || cfg.VisibleDurationMs == 0 || elapsed == nil ||
		!(rate > 0) || math.IsInf(rate, 1) {
		return 0, false
	}

	if *elapsed < 0 {
		return 0, cfg.FillStart
	}

	effective := float64(*elapsed)

	if cfg.VisibleDurationMs >= 0 && effective > float64(cfg.VisibleDurationMs) {
		return 0, false
	}

	if cfg.DurationMs >= 0 && effective > float64(cfg.DurationMs) {
		if !cfg.FillEnd {
			return 0, false
		}
		effective = float64(cfg.DurationMs)
	}

	// effective / (1000 / rate), arranged to keep whole-frame boundaries exact
	frame := math.Floor(effective * rate / 1000)
	return int(math.Mod(frame, float64(frameCount))), true
}
