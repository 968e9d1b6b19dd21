// Package sink contains the frame consumers of a replay
package sink

import (
	"context"
	"errors"
	"math"

	"github.com/ohler55/ojg/oj"

	"github.com/mpapenbr/f1-race-tracer/log"
	"github.com/mpapenbr/f1-race-tracer/pkg/playback"
)

type multi []playback.Sink

// Multi publishes each frame to all sinks. Errors are joined, a failing
// sink does not prevent the others from receiving the frame.
func Multi(sinks ...playback.Sink) playback.Sink {
	return multi(sinks)
}

func (m multi) Publish(ctx context.Context, f *playback.Frame) error {
	var errs []error
	for _, s := range m {
		if err := s.Publish(ctx, f); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Log writes a debug entry per frame
func Log(l *log.Logger) playback.Sink {
	return playback.SinkFunc(func(_ context.Context, f *playback.Frame) error {
		if !l.Enabled(log.DebugLevel) {
			return nil
		}
		l.Debug("frame",
			log.Int("step", f.Step),
			log.Float64("clock", f.Clock),
			log.Int("lap", f.LeaderLaps),
			log.Int("totalLaps", f.TotalLaps),
			log.Strings("order", Order(f)))
		return nil
	})
}

// Order returns the driver codes of the frame leaderboard
func Order(f *playback.Frame) []string {
	ret := make([]string, len(f.Leaderboard))
	for i := range f.Leaderboard {
		ret[i] = f.Leaderboard[i].Driver
	}
	return ret
}

// Encode produces the JSON representation of a frame.
// Drivers without a completed lap have a null lastReached.
func Encode(f *playback.Frame) ([]byte, error) {
	return oj.Marshal(toMap(f), &oj.Options{Sort: true})
}

func toMap(f *playback.Frame) map[string]any {
	positions := make([]any, len(f.Positions))
	for i := range f.Positions {
		p := &f.Positions[i]
		m := map[string]any{
			"driver":        p.Driver,
			"team":          p.Team,
			"x":             p.X,
			"y":             p.Y,
			"s":             p.S,
			"lapsCompleted": int64(p.LapsCompleted),
			"finished":      p.Finished,
		}
		if p.Color != "" {
			m["color"] = p.Color
		}
		positions[i] = m
	}
	board := make([]any, len(f.Leaderboard))
	for i := range f.Leaderboard {
		e := &f.Leaderboard[i]
		var last any
		if !math.IsInf(e.LastReached, 0) && !math.IsNaN(e.LastReached) {
			last = e.LastReached
		}
		board[i] = map[string]any{
			"pos":           int64(e.Pos),
			"driver":        e.Driver,
			"lastReached":   last,
			"lapsCompleted": int64(e.LapsCompleted),
		}
	}
	return map[string]any{
		"step":        int64(f.Step),
		"clock":       f.Clock,
		"paused":      f.Paused,
		"stopped":     f.Stopped,
		"complete":    f.Complete,
		"leaderLaps":  int64(f.LeaderLaps),
		"totalLaps":   int64(f.TotalLaps),
		"positions":   positions,
		"leaderboard": board,
	}
}
