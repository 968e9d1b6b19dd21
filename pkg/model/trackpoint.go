package model

// TrackPoint is a point of the track centerline in track coordinates (meters)
type TrackPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
