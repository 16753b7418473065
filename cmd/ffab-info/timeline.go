package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/provide-io/ffab/go/ffab/pkg/ffab/cache"
	"github.com/provide-io/ffab/go/ffab/pkg/ffab/format_v1"
	"github.com/provide-io/ffab/go/ffab/pkg/ffab/layer"
	"github.com/provide-io/ffab/go/ffab/pkg/ffab/playback"
	"github.com/provide-io/ffab/go/ffab/pkg/ffab/source"
)

var (
	timing      = playback.DefaultTiming(30)
	startOffset int64
	pauseAt     time.Duration
	pauseFor    time.Duration
	step        time.Duration
	until       time.Duration
)

func newTimelineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline <file>",
		Short: "Simulate playback and print the frame selected at each step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("step") {
				step = cfg.Step
			}
			if !cmd.Flags().Changed("until") {
				until = cfg.Until
			}
			if step <= 0 {
				return fmt.Errorf("--step must be positive")
			}

			src, err := source.OpenFile(args[0])
			if err != nil {
				return err
			}
			defer src.Close()

			lib := layer.NewLibrary(
				cache.New[format_v1.Bundle](cache.WithCapacity(cfg.CacheCapacity), cache.WithLogger(logger.Named("cache"))),
				logger,
			)
			return simulate(cmd.OutOrStdout(), lib, src)
		},
	}

	f := cmd.Flags()
	f.Float32Var(&timing.Rate, "rate", timing.Rate, "Playback rate in frames per second")
	f.BoolVar(&timing.FillStart, "fill-start", false, "Show frame 0 for negative elapsed times")
	f.BoolVar(&timing.FillEnd, "fill-end", false, "Hold the last frame after the duration")
	f.Int64Var(&timing.DurationMs, "duration", -1, "Animation duration in ms (negative: unbounded)")
	f.Int64Var(&timing.VisibleDurationMs, "visible", -1, "Visible duration in ms (negative: always, 0: never)")
	f.Int64Var(&startOffset, "offset", 0, "Start offset in ms (negative delays the start)")
	f.DurationVar(&pauseAt, "pause-at", 0, "Pause the timeline at this time (0: never)")
	f.DurationVar(&pauseFor, "pause-for", 0, "How long to stay paused")
	f.DurationVar(&step, "step", 100*time.Millisecond, "Simulation step")
	f.DurationVar(&until, "until", 2*time.Second, "Simulation length")
	return cmd
}

// simulate drives a single layer with a manual clock and prints one line per step.
func simulate(w io.Writer, lib *layer.Library, src source.Source) error {
	if lib.Bundle(src) == nil {
		return fmt.Errorf("bundle does not decode; run with --log-level=debug for details")
	}

	clock := playback.NewManualClock(0)
	state := playback.NewPlayState(clock)
	l := layer.New(lib, "timeline", src, state, timing)
	l.Width, l.Height = 1, 1

	state.StartAt(true, startOffset)
	resumeAt := pauseAt + pauseFor

	paused := color.New(color.FgYellow).SprintFunc()

	fmt.Fprintf(w, "%-10s %-10s %-8s %s\n", "wall_ms", "elapsed", "state", "frame")
	for t := time.Duration(0); t <= until; t += step {
		clock.Set(t.Milliseconds())
		if pauseAt > 0 && t >= pauseAt && t < resumeAt && state.IsRunning() {
			state.Pause()
		} else if pauseAt > 0 && t >= resumeAt && !state.IsRunning() {
			state.Resume()
		}

		status := "running"
		if !state.IsRunning() {
			status = paused("paused")
		}

		frame := "-"
		if f, ok := l.CurrentFrame(); ok {
			frame = fmt.Sprintf("%d", f.Index)
		}
		fmt.Fprintf(w, "%-10d %-10d %-8s %s\n", t.Milliseconds(), state.ElapsedRunningTime(), status, frame)
	}
	return nil
}
