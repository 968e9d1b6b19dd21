package timeline

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/mpapenbr/f1-race-tracer/pkg/model"
)

var ErrNoDrivers = errors.New("no drivers")

// Index maps driver codes to their timelines.
// It is built once and read-only afterwards.
type Index struct {
	order     []*Timeline
	byDriver  map[string]*Timeline
	maxCum    float64
	maxLapNo  int
	totalLaps int
}

type IndexOption func(*indexConfig)

type indexConfig struct {
	entrants []model.Entrant
}

// WithEntrants puts these drivers first in the index order and creates
// empty timelines for entrants without laps
func WithEntrants(entrants []model.Entrant) IndexOption {
	return func(c *indexConfig) {
		c.entrants = entrants
	}
}

// BuildIndex groups the records by driver. The driver order is the order of
// the entrants (if given) followed by the order of first appearance in records.
func BuildIndex(records []model.LapRecord, opts ...IndexOption) (*Index, error) {
	cfg := &indexConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	teams := make(map[string]string)
	order := make([]string, 0)
	for _, e := range cfg.entrants {
		if _, ok := teams[e.Driver]; !ok {
			teams[e.Driver] = e.Team
			order = append(order, e.Driver)
		}
	}
	for _, r := range records {
		if _, ok := teams[r.Driver]; !ok {
			teams[r.Driver] = r.Team
			order = append(order, r.Driver)
		}
	}
	if len(order) == 0 {
		return nil, ErrNoDrivers
	}

	grouped := lo.GroupBy(records, func(r model.LapRecord) string { return r.Driver })
	idx := &Index{
		order:    make([]*Timeline, 0, len(order)),
		byDriver: make(map[string]*Timeline, len(order)),
	}
	for _, code := range order {
		tl, err := New(code, teams[code], grouped[code])
		if err != nil {
			return nil, fmt.Errorf("build timeline: %w", err)
		}
		idx.order = append(idx.order, tl)
		idx.byDriver[code] = tl
		idx.maxCum = max(idx.maxCum, tl.TotalTime())
		idx.maxLapNo = max(idx.maxLapNo, tl.MaxLapNo())
		idx.totalLaps += tl.Len()
	}
	return idx, nil
}

// Timelines returns the timelines in index order
func (idx *Index) Timelines() []*Timeline {
	return append([]*Timeline(nil), idx.order...)
}

// Drivers returns the driver codes in index order
func (idx *Index) Drivers() []string {
	return lo.Map(idx.order, func(tl *Timeline, _ int) string { return tl.Driver() })
}

func (idx *Index) Get(driver string) (*Timeline, bool) {
	tl, ok := idx.byDriver[driver]
	return tl, ok
}

func (idx *Index) Len() int { return len(idx.order) }

// MaxCumulative is the largest total race time over all drivers
func (idx *Index) MaxCumulative() float64 { return idx.maxCum }

// MaxLapNo is the highest lap number in the dataset
func (idx *Index) MaxLapNo() int { return idx.maxLapNo }

// NumLaps is the number of lap records over all drivers
func (idx *Index) NumLaps() int { return idx.totalLaps }
