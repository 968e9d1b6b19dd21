package track

import (
	"math"

	"github.com/mpapenbr/f1-race-tracer/pkg/model"
)

var demoX = []float64{0, 2, 4, 6, 7, 6, 4, 2, 0, -2, -4, -5, -4, -2, 0}
var demoY = []float64{0, 1, 2, 3, 5, 6, 7, 6, 5, 4, 3, 1, -1, -1, 0}

// DemoTrack is a small closed circuit used when no track file is configured
func DemoTrack() []model.TrackPoint {
	ret := make([]model.TrackPoint, len(demoX))
	for i := range demoX {
		ret[i] = model.TrackPoint{X: demoX[i], Y: demoY[i]}
	}
	return ret
}

// Circle returns n points on a circle around the origin.
// The first and last point coincide.
func Circle(radius float64, n int) []model.TrackPoint {
	if n < 2 {
		n = 2
	}
	ret := make([]model.TrackPoint, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n-1)
		ret[i] = model.TrackPoint{X: radius * math.Cos(theta), Y: radius * math.Sin(theta)}
	}
	return ret
}
