package playback

import "github.com/mpapenbr/f1-race-tracer/pkg/leaderboard"

// DriverPosition is the position of a driver on the track at the frame time
type DriverPosition struct {
	Driver        string  `json:"driver"`
	Team          string  `json:"team"`
	Color         string  `json:"color,omitempty"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	S             float64 `json:"s"`
	LapsCompleted int     `json:"lapsCompleted"`
	Finished      bool    `json:"finished"`
}

// Frame is the render snapshot of a single tick
type Frame struct {
	Step        int                 `json:"step"`
	Clock       float64             `json:"clock"`
	Paused      bool                `json:"paused"`
	Stopped     bool                `json:"stopped"`
	Complete    bool                `json:"complete"`   // all drivers finished
	LeaderLaps  int                 `json:"leaderLaps"` // laps completed by the leading driver
	TotalLaps   int                 `json:"totalLaps"`
	Positions   []DriverPosition    `json:"positions"`
	Leaderboard []leaderboard.Entry `json:"leaderboard"`
}
