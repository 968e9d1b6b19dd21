package check

import (
	"github.com/mpapenbr/f1-race-tracer/pkg/racedata"
	"github.com/mpapenbr/f1-race-tracer/pkg/track"
)

func trackLength(data *racedata.Data) (float64, error) {
	p, err := track.New(data.Track)
	if err != nil {
		return 0, err
	}
	return p.Length(), nil
}
