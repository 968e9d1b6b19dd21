// Package leaderboard ranks drivers by race progress
package leaderboard

import (
	"math"
	"slices"

	"github.com/mpapenbr/f1-race-tracer/pkg/timeline"
)

// Entry is a single line of the leaderboard
type Entry struct {
	Pos           int     `json:"pos"`
	Driver        string  `json:"driver"`
	LastReached   float64 `json:"lastReached"` // +Inf if no lap completed
	LapsCompleted int     `json:"lapsCompleted"`
}

// Started reports if the driver completed at least one lap
func (e Entry) Started() bool {
	return !math.IsInf(e.LastReached, 1)
}

// Compute ranks the drivers at race time t by the race time of their last
// completed lap, earliest first. Drivers without a completed lap are ranked
// last. Ties keep the order of drivers.
func Compute(drivers []*timeline.Timeline, t float64) []Entry {
	ret := make([]Entry, len(drivers))
	for i, tl := range drivers {
		last, _ := tl.LastReached(t)
		ret[i] = Entry{
			Driver:        tl.Driver(),
			LastReached:   last,
			LapsCompleted: tl.ProgressAt(t).LapsCompleted,
		}
	}
	slices.SortStableFunc(ret, func(a, b Entry) int {
		switch {
		case a.LastReached < b.LastReached:
			return -1
		case a.LastReached > b.LastReached:
			return 1
		default:
			return 0
		}
	})
	for i := range ret {
		ret[i].Pos = i + 1
	}
	return ret
}

// Rank returns the driver codes in leaderboard order
func Rank(drivers []*timeline.Timeline, t float64) []string {
	entries := Compute(drivers, t)
	ret := make([]string, len(entries))
	for i := range entries {
		ret[i] = entries[i].Driver
	}
	return ret
}
