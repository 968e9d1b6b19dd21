// Package track maps normalized race progress onto a track polyline
package track

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/mpapenbr/f1-race-tracer/pkg/model"
)

var (
	ErrTooFewPoints    = errors.New("track needs at least 2 points")
	ErrDegenerateTrack = errors.New("track has zero length")
)

// Parameterizer maps normalized arclength s in [0,1] to a point of the polyline.
// It is read-only after construction and may be shared between goroutines.
type Parameterizer struct {
	points []model.TrackPoint
	sVals  []float64 // normalized cumulative arclength per point
	length float64
	first  int // index of first segment with positive length
	last   int // index of last segment with positive length
}

func New(points []model.TrackPoint) (*Parameterizer, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(points))
	}
	cum := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		dx := points[i].X - points[i-1].X
		dy := points[i].Y - points[i-1].Y
		cum[i] = cum[i-1] + math.Hypot(dx, dy)
	}
	total := cum[len(cum)-1]
	if total == 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, fmt.Errorf("%w (%d points)", ErrDegenerateTrack, len(points))
	}

	p := &Parameterizer{
		points: make([]model.TrackPoint, len(points)),
		sVals:  make([]float64, len(points)),
		length: total,
		first:  -1,
	}
	copy(p.points, points)
	for i := range cum {
		p.sVals[i] = cum[i] / total
	}
	for i := 0; i < len(p.sVals)-1; i++ {
		if p.sVals[i+1] > p.sVals[i] {
			if p.first == -1 {
				p.first = i
			}
			p.last = i
		}
	}
	return p, nil
}

// PositionAt interpolates linearly between the knots enclosing s.
// Values outside [0,1] are extrapolated from the first or last segment
// with positive length. Callers wanting wrap-around reduce s modulo 1.
func (p *Parameterizer) PositionAt(s float64) model.TrackPoint {
	idx := sort.SearchFloat64s(p.sVals, s)
	switch {
	case idx < len(p.sVals) && p.sVals[idx] == s:
		return p.points[idx]
	case idx == 0:
		return p.interpolate(p.first, s)
	case idx == len(p.sVals):
		return p.interpolate(p.last, s)
	default:
		return p.interpolate(idx-1, s)
	}
}

// interpolate on the line through points seg and seg+1
func (p *Parameterizer) interpolate(seg int, s float64) model.TrackPoint {
	s0, s1 := p.sVals[seg], p.sVals[seg+1]
	a, b := p.points[seg], p.points[seg+1]
	frac := (s - s0) / (s1 - s0)
	return model.TrackPoint{
		X: a.X + frac*(b.X-a.X),
		Y: a.Y + frac*(b.Y-a.Y),
	}
}

// SVals returns a copy of the normalized cumulative arclength of each point
func (p *Parameterizer) SVals() []float64 {
	ret := make([]float64, len(p.sVals))
	copy(ret, p.sVals)
	return ret
}

// Points returns a copy of the polyline
func (p *Parameterizer) Points() []model.TrackPoint {
	ret := make([]model.TrackPoint, len(p.points))
	copy(ret, p.points)
	return ret
}

// Length is the total arclength in track units
func (p *Parameterizer) Length() float64 {
	return p.length
}
