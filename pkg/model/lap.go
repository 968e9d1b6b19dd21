package model

// LapRecord holds the data of a single completed lap of a driver.
// LapTime is given in seconds.
type LapRecord struct {
	Driver   string  `json:"driver"` // three letter driver code
	LapNo    int     `json:"lapNo"`
	LapTime  float64 `json:"lapTime"`
	Position int     `json:"position"`
	Team     string  `json:"team"`
}
