//nolint:funlen,lll // ok for tests
package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/f1-race-tracer/pkg/model"
)

const sampleCSV = `driver,lap_number,lap_time,position,team,aggressiveness,weather
Lewis Hamilton,1,90.5,1,Mercedes,0.8,Sunny
Max Verstappen,1.0,91.0,2,Red Bull Racing,0.9,Sunny
Lewis Hamilton,2,88.25,1,Mercedes,0.8,Sunny
,2,89.0,3,Ferrari,0.5,Sunny
Max Verstappen,2,,2,Red Bull Racing,0.9,Sunny
Max Verstappen,3,87.0,,Red Bull Racing,0.9,Sunny
Sebastian Vettel,1,,10,Ferrari,0.4,Sunny
`

func TestLoad(t *testing.T) {
	ds, err := Load(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	want := []model.LapRecord{
		{Driver: "HAM", LapNo: 1, LapTime: 90.5, Position: 1, Team: "Mercedes"},
		{Driver: "VER", LapNo: 1, LapTime: 91.0, Position: 2, Team: "Red Bull Racing"},
		{Driver: "HAM", LapNo: 2, LapTime: 88.25, Position: 1, Team: "Mercedes"},
		{Driver: "VER", LapNo: 3, LapTime: 87.0, Position: 0, Team: "Red Bull Racing"},
	}
	if diff := cmp.Diff(want, ds.Records); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, ds.Dropped)
	assert.Equal(t, []string{"HAM", "VER", "VET"}, ds.Drivers())
	assert.Equal(t, map[string]string{
		"HAM": "Mercedes", "VER": "Red Bull Racing", "VET": "Ferrari",
	}, ds.Teams())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantErr  error
		contains string
	}{
		{name: "missing lap_time", data: "driver,lap_number\nA B,1\n", wantErr: ErrMissingColumn},
		{name: "missing driver", data: "lap_number,lap_time\n1,2\n", wantErr: ErrMissingColumn},
		{name: "bad lap number", data: "driver,lap_number,lap_time\nA B,x,90\n"},
		{
			name:     "fractional lap number",
			data:     "driver,lap_number,lap_time\nA B,1,90\nA B,1.7,91\n",
			contains: "line 3: invalid lap number \"1.7\"",
		},
		{name: "empty input", data: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.data))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.contains != "" {
				assert.ErrorContains(t, err, tt.contains)
			}
		})
	}
}

func TestLoad_OptionalColumns(t *testing.T) {
	ds, err := Load(strings.NewReader("driver,lap_number,lap_time\nCarlos Sainz,1,95\n"))
	require.NoError(t, err)
	assert.Equal(t, []model.LapRecord{{Driver: "SAI", LapNo: 1, LapTime: 95}}, ds.Records)
	assert.Equal(t, []model.Entrant{{Driver: "SAI"}}, ds.Entrants)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "final_f1_dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))
	ds, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, ds.Records, 4)
}

func TestDriverCode(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Lewis Hamilton", "HAM"},
		{"Max Verstappen", "VER"},
		{"  Kimi   Räikkönen ", "RÄI"},
		{"Zhou", "ZHO"},
		{"Nyck de Vries", "VRI"},
		{"Ho", "HO"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DriverCode(tt.name))
		})
	}
}
