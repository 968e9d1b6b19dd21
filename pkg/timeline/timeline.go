// Package timeline computes the race progress of a driver from lap times
package timeline

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mpapenbr/f1-race-tracer/pkg/model"
)

var (
	ErrInvalidLapTime  = errors.New("invalid lap time")
	ErrDuplicateLap    = errors.New("duplicate lap number")
	ErrDriverMismatch  = errors.New("lap belongs to other driver")
)

// Timeline is the immutable lap history of a single driver
type Timeline struct {
	driver     string
	team       string
	laps       []model.LapRecord // sorted by lap number
	cumulative []float64         // race time at the end of each lap
}

// Progress describes where a driver is at a given race time
type Progress struct {
	S             float64 // normalized position within the current lap [0,1]
	LapsCompleted int
	Finished      bool
}

// New creates the timeline for a driver. Laps are sorted by lap number.
// A nil or empty laps slice yields a timeline of a driver who never starts.
func New(driver, team string, laps []model.LapRecord) (*Timeline, error) {
	sorted := slices.Clone(laps)
	slices.SortStableFunc(sorted, func(a, b model.LapRecord) int {
		return a.LapNo - b.LapNo
	})
	ret := &Timeline{
		driver:     driver,
		team:       team,
		laps:       sorted,
		cumulative: make([]float64, len(sorted)),
	}
	sum := decimal.Zero
	for i, l := range sorted {
		if l.Driver != "" && l.Driver != driver {
			return nil, fmt.Errorf("%w: %s lap %d in timeline of %s",
				ErrDriverMismatch, l.Driver, l.LapNo, driver)
		}
		if l.LapTime < 0 || math.IsNaN(l.LapTime) || math.IsInf(l.LapTime, 0) {
			return nil, fmt.Errorf("%w: %s lap %d: %v",
				ErrInvalidLapTime, driver, l.LapNo, l.LapTime)
		}
		if i > 0 && sorted[i-1].LapNo == l.LapNo {
			return nil, fmt.Errorf("%w: %s lap %d", ErrDuplicateLap, driver, l.LapNo)
		}
		sum = sum.Add(decimal.NewFromFloat(l.LapTime))
		ret.cumulative[i] = sum.InexactFloat64()
	}
	return ret, nil
}

func (tl *Timeline) Driver() string { return tl.driver }
func (tl *Timeline) Team() string   { return tl.team }

// Len is the number of recorded laps
func (tl *Timeline) Len() int { return len(tl.laps) }

// Laps returns a copy of the sorted lap records
func (tl *Timeline) Laps() []model.LapRecord { return slices.Clone(tl.laps) }

// Cumulative returns a copy of the race time at the end of each lap
func (tl *Timeline) Cumulative() []float64 { return slices.Clone(tl.cumulative) }

// TotalTime is the race time at the end of the last recorded lap
func (tl *Timeline) TotalTime() float64 {
	if len(tl.cumulative) == 0 {
		return 0
	}
	return tl.cumulative[len(tl.cumulative)-1]
}

// MaxLapNo is the highest recorded lap number, 0 if there are no laps
func (tl *Timeline) MaxLapNo() int {
	if len(tl.laps) == 0 {
		return 0
	}
	return tl.laps[len(tl.laps)-1].LapNo
}

// Gaps returns lap numbers missing between lap 1 and the last recorded lap
func (tl *Timeline) Gaps() []int {
	ret := make([]int, 0)
	next := 1
	for _, l := range tl.laps {
		for ; next < l.LapNo; next++ {
			ret = append(ret, next)
		}
		next = l.LapNo + 1
	}
	return ret
}

// ZeroDurationLaps returns the lap numbers with a lap time of 0
func (tl *Timeline) ZeroDurationLaps() []int {
	ret := make([]int, 0)
	for _, l := range tl.laps {
		if l.LapTime == 0 {
			ret = append(ret, l.LapNo)
		}
	}
	return ret
}

// completed returns the number of laps finished at race time t
func (tl *Timeline) completed(t float64) int {
	if math.IsNaN(t) {
		return 0
	}
	return sort.Search(len(tl.cumulative), func(i int) bool {
		return tl.cumulative[i] > t
	})
}

// ProgressAt computes the position within the current lap at race time t.
// A driver who has not completed a lap is pinned to the start,
// a driver who has completed all recorded laps is pinned to the finish.
func (tl *Timeline) ProgressAt(t float64) Progress {
	total := len(tl.cumulative)
	completed := tl.completed(t)
	switch {
	case completed == 0:
		return Progress{S: 0, LapsCompleted: 0}
	case completed >= total:
		return Progress{S: 1.0, LapsCompleted: total, Finished: true}
	}
	t1 := tl.cumulative[completed-1]
	t2 := tl.cumulative[completed]
	frac := 0.0
	if t2 > t1 {
		frac = (t - t1) / (t2 - t1)
	}
	lapProgress := float64(completed) + frac
	return Progress{
		S:             math.Mod(lapProgress, 1.0),
		LapsCompleted: completed,
	}
}

// LastReached returns the race time of the last lap completed at or before t.
// The second value is false if no lap was completed yet.
func (tl *Timeline) LastReached(t float64) (float64, bool) {
	completed := tl.completed(t)
	if completed == 0 {
		return math.Inf(1), false
	}
	return tl.cumulative[completed-1], true
}
