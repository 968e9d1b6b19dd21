// Package playback drives the race clock and produces render frames
package playback

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/mpapenbr/f1-race-tracer/log"
	"github.com/mpapenbr/f1-race-tracer/pkg/leaderboard"
	"github.com/mpapenbr/f1-race-tracer/pkg/timeline"
	"github.com/mpapenbr/f1-race-tracer/pkg/track"
)

const DefaultSamples = 20000

var (
	ErrSamples = errors.New("need at least 2 samples")
	ErrNoLaps  = errors.New("no driver has lap records")
)

// ColorResolver provides the display color of a team
type ColorResolver interface {
	Color(team string) string
}

// Race holds the immutable data of a replay: track, driver timelines and
// the sample times of the race clock
type Race struct {
	track      *track.Parameterizer
	idx        *timeline.Index
	drivers    []*timeline.Timeline
	samples    []float64
	numSamples int
	maxTime    float64
	hasMaxTime bool
	colors     ColorResolver
	warnings   []string
	l          *log.Logger
}

type RaceOption func(r *Race)

// WithSamples sets the number of race clock values between 0 and the max time
func WithSamples(n int) RaceOption {
	return func(r *Race) {
		r.numSamples = n
	}
}

// WithMaxTime overrides the end of the sample range which defaults to the
// largest total race time of all drivers
func WithMaxTime(t float64) RaceOption {
	return func(r *Race) {
		r.maxTime = t
		r.hasMaxTime = true
	}
}

func WithTeamColors(c ColorResolver) RaceOption {
	return func(r *Race) {
		r.colors = c
	}
}

func WithLogger(l *log.Logger) RaceOption {
	return func(r *Race) {
		r.l = l
	}
}

func NewRace(tr *track.Parameterizer, idx *timeline.Index, opts ...RaceOption) (*Race, error) {
	r := &Race{
		track:      tr,
		idx:        idx,
		drivers:    idx.Timelines(),
		numSamples: DefaultSamples,
		maxTime:    idx.MaxCumulative(),
		l:          log.Default().Named("playback"),
	}
	for _, opt := range opts {
		opt(r)
	}
	// nobody could ever finish
	if lo.EveryBy(r.drivers, func(tl *timeline.Timeline) bool { return tl.Len() == 0 }) {
		return nil, ErrNoLaps
	}
	if r.numSamples < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrSamples, r.numSamples)
	}
	if r.maxTime < 0 {
		return nil, fmt.Errorf("invalid max time %v", r.maxTime)
	}
	r.samples = make([]float64, r.numSamples)
	for i := range r.samples {
		r.samples[i] = r.maxTime * float64(i) / float64(r.numSamples-1)
	}
	r.samples[len(r.samples)-1] = r.maxTime
	r.checkConsistency()
	r.l.Debug("race created",
		log.Int("drivers", len(r.drivers)),
		log.Int("samples", r.numSamples),
		log.Float64("maxTime", r.maxTime),
		log.Int("totalLaps", idx.MaxLapNo()))
	return r, nil
}

func (r *Race) checkConsistency() {
	for _, tl := range r.drivers {
		if tl.Len() == 0 {
			r.warn(fmt.Sprintf("driver %s has no laps", tl.Driver()))
			continue
		}
		if r.hasMaxTime && tl.TotalTime() > r.maxTime {
			r.warn(fmt.Sprintf("driver %s total time %.3f exceeds max time %.3f",
				tl.Driver(), tl.TotalTime(), r.maxTime))
		}
		if gaps := tl.Gaps(); len(gaps) > 0 {
			r.warn(fmt.Sprintf("driver %s misses laps %v", tl.Driver(), gaps))
		}
		if zero := tl.ZeroDurationLaps(); len(zero) > 0 {
			r.warn(fmt.Sprintf("driver %s has zero duration laps %v", tl.Driver(), zero))
		}
	}
}

func (r *Race) warn(msg string) {
	r.warnings = append(r.warnings, msg)
	r.l.Warn("data consistency", log.String("issue", msg))
}

// Warnings lists data consistency issues found while creating the race
func (r *Race) Warnings() []string {
	return append([]string(nil), r.warnings...)
}

// Samples returns a copy of the race clock values
func (r *Race) Samples() []float64 {
	return append([]float64(nil), r.samples...)
}

func (r *Race) MaxTime() float64 { return r.maxTime }

func (r *Race) TotalLaps() int { return r.idx.MaxLapNo() }

// Initial is the state before the first tick
func (r *Race) Initial() State {
	return State{Step: 0, Clock: r.samples[0], Status: Running}
}

// Advance moves the clock to the next sample unless the state is paused or
// stopped. The race stops once all drivers with recorded laps are finished or
// the last sample is reached.
func (r *Race) Advance(st State) (State, Frame) {
	if st.Status == Stopped || st.Paused {
		return st, r.Frame(st)
	}
	next := st
	next.Step++
	if next.Step >= len(r.samples) {
		next.Step = len(r.samples) - 1
	}
	next.Clock = r.samples[next.Step]
	if r.allFinished(next.Clock) || next.Step == len(r.samples)-1 {
		next.Status = Stopped
		r.l.Debug("race stopped",
			log.Int("step", next.Step),
			log.Float64("clock", next.Clock))
	}
	return next, r.Frame(next)
}

// allFinished ignores drivers without laps since they never finish
func (r *Race) allFinished(t float64) bool {
	return lo.EveryBy(r.drivers, func(tl *timeline.Timeline) bool {
		return tl.Len() == 0 || tl.ProgressAt(t).Finished
	})
}

// Frame computes the render snapshot for the clock of the state
func (r *Race) Frame(st State) Frame {
	f := Frame{
		Step:      st.Step,
		Clock:     st.Clock,
		Paused:    st.Paused,
		Stopped:   st.Status == Stopped,
		TotalLaps: r.idx.MaxLapNo(),
		Positions: make([]DriverPosition, len(r.drivers)),
	}
	complete := true
	for i, tl := range r.drivers {
		p := tl.ProgressAt(st.Clock)
		pt := r.track.PositionAt(p.S)
		f.Positions[i] = DriverPosition{
			Driver:        tl.Driver(),
			Team:          tl.Team(),
			X:             pt.X,
			Y:             pt.Y,
			S:             p.S,
			LapsCompleted: p.LapsCompleted,
			Finished:      p.Finished,
		}
		if r.colors != nil {
			f.Positions[i].Color = r.colors.Color(tl.Team())
		}
		f.LeaderLaps = max(f.LeaderLaps, p.LapsCompleted)
		if tl.Len() > 0 && !p.Finished {
			complete = false
		}
	}
	f.Complete = complete
	f.Leaderboard = leaderboard.Compute(r.drivers, st.Clock)
	return f
}
