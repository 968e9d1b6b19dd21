package racedata

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/f1-race-tracer/pkg/playback"
	"github.com/mpapenbr/f1-race-tracer/pkg/track"
	"github.com/mpapenbr/f1-race-tracer/testsupport/sampledata"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFileLoader(t *testing.T) {
	dataFile := writeFile(t, "laps.csv", sampledata.DatasetCSV)
	trackFile := writeFile(t, "track.csv", sampledata.TrackCSV)

	tests := []struct {
		name       string
		loader     *FileLoader
		wantPoints int
	}{
		{"track file", &FileLoader{TrackFile: trackFile, DataFile: dataFile}, 5},
		{"circle", &FileLoader{DataFile: dataFile, CircleRadius: 100, CirclePoints: 50}, 50},
		{"demo track", &FileLoader{DataFile: dataFile}, len(track.DemoTrack())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := tt.loader.Load(context.Background())
			require.NoError(t, err)
			assert.Len(t, d.Track, tt.wantPoints)
			assert.Equal(t, sampledata.Laps(), d.Records)
			assert.Equal(t, sampledata.Entrants(), d.Entrants)
			assert.Equal(t, 1, d.Dropped)
		})
	}
}

func TestFileLoader_Errors(t *testing.T) {
	_, err := (&FileLoader{}).Load(context.Background())
	assert.ErrorIs(t, err, ErrNoDataFile)

	_, err = (&FileLoader{DataFile: filepath.Join(t.TempDir(), "missing.csv")}).
		Load(context.Background())
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	d := &Data{
		Track:    sampledata.Track(),
		Records:  sampledata.Laps(),
		Entrants: sampledata.Entrants(),
	}
	r, idx, err := d.Build(playback.WithSamples(43))
	require.NoError(t, err)
	assert.Equal(t, []string{"HAM", "VER", "NOL"}, idx.Drivers())
	assert.Equal(t, 42.0, r.MaxTime())
}

func TestBuild_Errors(t *testing.T) {
	_, _, err := (&Data{Track: sampledata.Track()}).Build()
	assert.Error(t, err, "no drivers")

	_, _, err = (&Data{Records: sampledata.Laps()}).Build()
	assert.ErrorIs(t, err, track.ErrTooFewPoints)
}
