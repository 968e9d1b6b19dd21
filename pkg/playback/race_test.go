//nolint:funlen // ok for tests
package playback

import (
	"io"
	"strings"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/f1-race-tracer/log"
	"github.com/mpapenbr/f1-race-tracer/pkg/dataset"
	"github.com/mpapenbr/f1-race-tracer/pkg/leaderboard"
	"github.com/mpapenbr/f1-race-tracer/pkg/model"
	"github.com/mpapenbr/f1-race-tracer/pkg/timeline"
	"github.com/mpapenbr/f1-race-tracer/pkg/track"
)

var square = []model.TrackPoint{
	{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0},
}

// HAM: cumulative 10, 25, 42
// VER: cumulative 12, 24
// NOL: entrant without laps
func sampleIndex(t *testing.T) *timeline.Index {
	t.Helper()
	records := []model.LapRecord{
		{Driver: "HAM", LapNo: 1, LapTime: 10, Team: "Mercedes"},
		{Driver: "VER", LapNo: 1, LapTime: 12, Team: "Red Bull Racing"},
		{Driver: "HAM", LapNo: 2, LapTime: 15, Team: "Mercedes"},
		{Driver: "VER", LapNo: 2, LapTime: 12, Team: "Red Bull Racing"},
		{Driver: "HAM", LapNo: 3, LapTime: 17, Team: "Mercedes"},
	}
	idx, err := timeline.BuildIndex(records, timeline.WithEntrants([]model.Entrant{
		{Driver: "HAM", Team: "Mercedes"},
		{Driver: "VER", Team: "Red Bull Racing"},
		{Driver: "NOL", Team: "Williams"},
	}))
	require.NoError(t, err)
	return idx
}

func newTestRace(t *testing.T, opts ...RaceOption) *Race {
	t.Helper()
	trk, err := track.New(square)
	require.NoError(t, err)
	opts = append([]RaceOption{WithLogger(log.New(io.Discard, log.DebugLevel))}, opts...)
	r, err := NewRace(trk, sampleIndex(t), opts...)
	require.NoError(t, err)
	return r
}

func TestNewRace(t *testing.T) {
	r := newTestRace(t, WithSamples(43))
	assert.Equal(t, 42.0, r.MaxTime())
	assert.Equal(t, 3, r.TotalLaps())
	samples := r.Samples()
	assert.Len(t, samples, 43)
	assert.Equal(t, 0.0, samples[0])
	assert.Equal(t, 42.0, samples[42])
	for i := 1; i < len(samples); i++ {
		assert.Greater(t, samples[i], samples[i-1])
	}
}

func TestNewRace_Samples(t *testing.T) {
	trk, err := track.New(square)
	require.NoError(t, err)
	for _, n := range []int{-1, 0, 1} {
		_, err := NewRace(trk, sampleIndex(t), WithSamples(n))
		assert.ErrorIs(t, err, ErrSamples, "n=%d", n)
	}
}

func TestNewRace_EntrantsOnly(t *testing.T) {
	trk, err := track.New(square)
	require.NoError(t, err)
	idx, err := timeline.BuildIndex(nil, timeline.WithEntrants([]model.Entrant{
		{Driver: "NOL", Team: "Williams"},
		{Driver: "SAR", Team: "Williams"},
	}))
	require.NoError(t, err)
	_, err = NewRace(trk, idx)
	assert.ErrorIs(t, err, ErrNoLaps)
}

func TestNewRace_DefaultSamples(t *testing.T) {
	r := newTestRace(t)
	assert.Len(t, r.Samples(), DefaultSamples)
}

func TestInitial(t *testing.T) {
	r := newTestRace(t)
	assert.Equal(t, State{Step: 0, Clock: 0, Paused: false, Status: Running}, r.Initial())
}

func TestFrame(t *testing.T) {
	r := newTestRace(t, WithTeamColors(dataset.DefaultTeamColors()))
	f := r.Frame(State{Step: 7, Clock: 18, Status: Running})

	assert.Equal(t, 7, f.Step)
	assert.Equal(t, 18.0, f.Clock)
	assert.False(t, f.Paused)
	assert.False(t, f.Stopped)
	assert.False(t, f.Complete)
	assert.Equal(t, 1, f.LeaderLaps)
	assert.Equal(t, 3, f.TotalLaps)
	require.Len(t, f.Positions, 3)

	ham := f.Positions[0]
	assert.Equal(t, "HAM", ham.Driver)
	assert.Equal(t, "Mercedes", ham.Team)
	assert.Equal(t, "#00D2BE", ham.Color)
	assert.InDelta(t, 8.0/15.0, ham.S, 1e-12)
	assert.Equal(t, 1, ham.LapsCompleted)

	ver := f.Positions[1]
	assert.InDelta(t, 0.5, ver.S, 1e-12)
	assert.InDelta(t, 10.0, ver.X, 1e-9)
	assert.InDelta(t, 10.0, ver.Y, 1e-9)

	nol := f.Positions[2]
	assert.Equal(t, 0.0, nol.S)
	assert.Equal(t, 0, nol.LapsCompleted)
	assert.False(t, nol.Finished)
	assert.Equal(t, 0.0, nol.X)
	assert.Equal(t, 0.0, nol.Y)
	assert.Equal(t, "#005AFF", nol.Color)

	drivers := lo.Map(f.Leaderboard, func(e leaderboard.Entry, _ int) string { return e.Driver })
	assert.Equal(t, []string{"HAM", "VER", "NOL"}, drivers)
}

func TestFrame_Finished(t *testing.T) {
	r := newTestRace(t)
	f := r.Frame(State{Clock: 30, Status: Running})
	ver := f.Positions[1]
	assert.True(t, ver.Finished)
	assert.Equal(t, 1.0, ver.S)
	assert.Equal(t, 2, ver.LapsCompleted)
	// pinned at the finish point
	assert.InDelta(t, 0.0, ver.X, 1e-9)
	assert.InDelta(t, 0.0, ver.Y, 1e-9)
	assert.Equal(t, 2, f.LeaderLaps)
	assert.False(t, f.Complete)
	assert.Empty(t, ver.Color)
}

func TestAdvance_StopsWhenAllFinished(t *testing.T) {
	tests := []struct {
		name     string
		opts     []RaceOption
		wantStep int
		wantTime float64
	}{
		{"max time sampled", []RaceOption{WithSamples(43)}, 42, 42},
		{"coarse samples", []RaceOption{WithSamples(8)}, 7, 42},
		{"first sample past finish", []RaceOption{WithSamples(11), WithMaxTime(50)}, 9, 45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRace(t, tt.opts...)
			st := r.Initial()
			var f Frame
			for st.Status == Running {
				prev := st
				st, f = r.Advance(st)
				require.Equal(t, prev.Step+1, st.Step)
				require.GreaterOrEqual(t, st.Clock, prev.Clock)
				if st.Step < tt.wantStep {
					require.Equal(t, Running, st.Status, "step %d", st.Step)
				}
			}
			assert.Equal(t, tt.wantStep, st.Step)
			assert.Equal(t, tt.wantTime, st.Clock)
			assert.True(t, f.Stopped)
			assert.True(t, f.Complete)
			assert.Equal(t, 3, f.LeaderLaps)
		})
	}
}

func TestAdvance_Stopped(t *testing.T) {
	r := newTestRace(t, WithSamples(8))
	stopped := State{Step: 7, Clock: 42, Status: Stopped}
	st, f := r.Advance(stopped)
	assert.Equal(t, stopped, st)
	assert.Equal(t, 7, f.Step)
	assert.True(t, f.Stopped)
}

func TestAdvance_Pause(t *testing.T) {
	r := newTestRace(t, WithSamples(43))
	st := r.Initial()
	st, _ = r.Advance(st)
	st, _ = r.Advance(st)
	require.Equal(t, 2.0, st.Clock)

	paused := TogglePause(st)
	assert.True(t, paused.Paused)
	for i := 0; i < 5; i++ {
		next, f := r.Advance(paused)
		assert.Equal(t, paused, next)
		assert.True(t, f.Paused)
		assert.Equal(t, 2.0, f.Clock)
	}

	resumed := TogglePause(paused)
	assert.Equal(t, st, resumed)
	next, _ := r.Advance(resumed)
	assert.Equal(t, 3, next.Step)
	assert.Equal(t, 3.0, next.Clock)
}

func TestAdvance_SamplesExhausted(t *testing.T) {
	r := newTestRace(t, WithSamples(4), WithMaxTime(30))
	st := r.Initial()
	var f Frame
	for st.Status == Running {
		st, f = r.Advance(st)
	}
	assert.Equal(t, 3, st.Step)
	assert.Equal(t, 30.0, st.Clock)
	assert.True(t, f.Stopped)
	assert.False(t, f.Complete)
	assert.Equal(t, 2, f.LeaderLaps)
}

func TestWarnings(t *testing.T) {
	r := newTestRace(t, WithMaxTime(30))
	w := r.Warnings()
	assert.True(t, lo.ContainsBy(w, func(s string) bool {
		return strings.Contains(s, "HAM") && strings.Contains(s, "exceeds max time")
	}), "got %v", w)
	assert.True(t, lo.ContainsBy(w, func(s string) bool {
		return strings.Contains(s, "NOL") && strings.Contains(s, "no laps")
	}), "got %v", w)
	assert.False(t, lo.ContainsBy(w, func(s string) bool {
		return strings.Contains(s, "VER")
	}), "got %v", w)
}

func TestZeroLapDriversDoNotBlock(t *testing.T) {
	r := newTestRace(t, WithSamples(43))
	st := State{Step: 41, Clock: 41, Status: Running}
	st, f := r.Advance(st)
	assert.Equal(t, Stopped, st.Status)
	assert.True(t, f.Complete)
	assert.False(t, f.Positions[2].Finished)
}

func TestTogglePause(t *testing.T) {
	st := State{Step: 3, Clock: 1.5, Status: Running}
	assert.Equal(t, st, TogglePause(TogglePause(st)))
	assert.True(t, TogglePause(st).Paused)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "stopped", Stopped.String())
	assert.Equal(t, "unknown", Status(9).String())
}
