// Package sampledata provides a small race used by tests
package sampledata

import "github.com/mpapenbr/f1-race-tracer/pkg/model"

const (
	RaceKey  = "sample-race"
	RaceName = "Sample Grand Prix"
)

// Track is a 10x10 square, starting and ending at the origin
func Track() []model.TrackPoint {
	return []model.TrackPoint{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0},
	}
}

// Entrants contains a driver without laps (NOL)
func Entrants() []model.Entrant {
	return []model.Entrant{
		{Driver: "HAM", Team: "Mercedes"},
		{Driver: "VER", Team: "Red Bull Racing"},
		{Driver: "NOL", Team: "Williams"},
	}
}

// Laps: HAM finishes after 42s (3 laps), VER after 24s (2 laps)
func Laps() []model.LapRecord {
	return []model.LapRecord{
		{Driver: "HAM", LapNo: 1, LapTime: 10, Position: 1, Team: "Mercedes"},
		{Driver: "VER", LapNo: 1, LapTime: 12, Position: 2, Team: "Red Bull Racing"},
		{Driver: "HAM", LapNo: 2, LapTime: 15, Position: 2, Team: "Mercedes"},
		{Driver: "VER", LapNo: 2, LapTime: 12, Position: 1, Team: "Red Bull Racing"},
		{Driver: "HAM", LapNo: 3, LapTime: 17, Position: 1, Team: "Mercedes"},
	}
}

// DatasetCSV is the lap dataset above in csv form, including a dropped row for NOL
const DatasetCSV = `driver,lap_number,lap_time,position,team
Lewis Hamilton,1,10,1,Mercedes
Max Verstappen,1,12,2,Red Bull Racing
Max Nolan,1,,3,Williams
Lewis Hamilton,2,15,2,Mercedes
Max Verstappen,2,12,1,Red Bull Racing
Lewis Hamilton,3,17,1,Mercedes
`

// TrackCSV is the track above in csv form
const TrackCSV = `# x_m,y_m,w_tr_right_m,w_tr_left_m
0,0,5,5
10,0,5,5
10,10,5,5
0,10,5,5
0,0,5,5
`
