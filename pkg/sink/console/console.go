// Package console renders frames as text: lap counter and leaderboard
package console

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mpapenbr/f1-race-tracer/pkg/playback"
)

type (
	Console struct {
		w     io.Writer
		every int
		top   int
	}
	Option func(c *Console)
)

// WithEvery only renders every n-th frame. Stopped frames are always rendered.
func WithEvery(n int) Option {
	return func(c *Console) {
		c.every = max(n, 1)
	}
}

// WithTop limits the leaderboard to the first n entries (0 = all)
func WithTop(n int) Option {
	return func(c *Console) {
		c.top = n
	}
}

func New(w io.Writer, opts ...Option) *Console {
	ret := &Console{w: w, every: 50}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

func (c *Console) Publish(_ context.Context, f *playback.Frame) error {
	if f.Step%c.every != 0 && !f.Stopped {
		return nil
	}
	_, err := io.WriteString(c.w, c.Render(f))
	return err
}

// Render formats a single frame, e.g.
//
//	Lap 12/57  t=1102.4s
//	 1 HAM  11
//	 2 VER  11
func (c *Console) Render(f *playback.Frame) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Lap %d/%d  t=%.1fs", f.LeaderLaps, f.TotalLaps, f.Clock)
	switch {
	case f.Complete:
		sb.WriteString("  finished")
	case f.Stopped:
		sb.WriteString("  stopped")
	case f.Paused:
		sb.WriteString("  paused")
	}
	sb.WriteString("\n")
	entries := f.Leaderboard
	if c.top > 0 && c.top < len(entries) {
		entries = entries[:c.top]
	}
	for _, e := range entries {
		laps := "-"
		if e.Started() {
			laps = fmt.Sprintf("%d", e.LapsCompleted)
		}
		fmt.Fprintf(&sb, "%2d %-4s %3s\n", e.Pos, e.Driver, laps)
	}
	return sb.String()
}
