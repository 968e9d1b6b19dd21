package model

// Entrant is a driver taking part in a race, regardless of recorded laps
type Entrant struct {
	Driver string `json:"driver"`
	Team   string `json:"team"`
}
