package check

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/f1-race-tracer/pkg/config"
	"github.com/mpapenbr/f1-race-tracer/pkg/model"
	"github.com/mpapenbr/f1-race-tracer/pkg/playback"
	"github.com/mpapenbr/f1-race-tracer/pkg/racedata"
	"github.com/mpapenbr/f1-race-tracer/testsupport/sampledata"
)

func TestBuildReport(t *testing.T) {
	laps := append(sampledata.Laps(),
		model.LapRecord{Driver: "VER", LapNo: 4, LapTime: 0, Team: "Red Bull Racing"})
	data := &racedata.Data{
		Name:     "test",
		Track:    sampledata.Track(),
		Records:  laps,
		Entrants: sampledata.Entrants(),
		Dropped:  1,
	}
	r, idx, err := data.Build(playback.WithSamples(2))
	require.NoError(t, err)
	rep, err := buildReport(data, r, idx)
	require.NoError(t, err)

	want := []driverReport{
		{Driver: "HAM", Team: "Mercedes", Laps: 3, MaxLapNo: 3, TotalTime: 42},
		{Driver: "VER", Team: "Red Bull Racing", Laps: 3, MaxLapNo: 4, TotalTime: 24,
			Gaps: []int{3}, ZeroLaps: []int{4}},
		{Driver: "NOL", Team: "Williams"},
	}
	if diff := cmp.Diff(want, rep.Drivers, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 40.0, rep.TrackLength)
	assert.Equal(t, 4, rep.TotalLaps)
	assert.Equal(t, 6, rep.Laps)
	assert.Len(t, rep.Warnings, 3)

	out := rep.String()
	assert.Contains(t, out, "gaps [3]")
	assert.Contains(t, out, "zero [4]")
	assert.Contains(t, out, "Warnings:")
}

func TestRunCheck(t *testing.T) {
	dir := t.TempDir()
	dataFile := filepath.Join(dir, "laps.csv")
	require.NoError(t, os.WriteFile(dataFile, []byte(sampledata.DatasetCSV), 0o600))
	config.Source = config.SourceFile
	config.DataFile = dataFile
	config.TrackFile = ""
	config.CircleRadius = 0
	config.MaxTime = 30

	var buf bytes.Buffer
	require.NoError(t, runCheck(context.Background(), &buf))
	out := buf.String()
	assert.Contains(t, out, "1 dropped rows")
	assert.Contains(t, out, "exceeds max time")
	assert.Contains(t, out, "NOL has no laps")
}
