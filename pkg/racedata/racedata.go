// Package racedata loads and stores everything needed for a replay
package racedata

import (
	"context"
	"errors"
	"fmt"

	"github.com/mpapenbr/f1-race-tracer/log"
	"github.com/mpapenbr/f1-race-tracer/pkg/dataset"
	"github.com/mpapenbr/f1-race-tracer/pkg/model"
	"github.com/mpapenbr/f1-race-tracer/pkg/playback"
	"github.com/mpapenbr/f1-race-tracer/pkg/repository"
	"github.com/mpapenbr/f1-race-tracer/pkg/repository/entrant"
	"github.com/mpapenbr/f1-race-tracer/pkg/repository/lap"
	"github.com/mpapenbr/f1-race-tracer/pkg/repository/race"
	"github.com/mpapenbr/f1-race-tracer/pkg/repository/trackpoint"
	"github.com/mpapenbr/f1-race-tracer/pkg/timeline"
	"github.com/mpapenbr/f1-race-tracer/pkg/track"
)

var ErrNoDataFile = errors.New("no lap data file given")

type (
	Data struct {
		Name     string
		Track    []model.TrackPoint
		Records  []model.LapRecord
		Entrants []model.Entrant
		Dropped  int // rows dropped while reading the dataset
	}

	Loader interface {
		Load(ctx context.Context) (*Data, error)
	}
)

// Build creates the parameterized track, the driver index and the race
//
//nolint:whitespace // editor/linter issue
func (d *Data) Build(opts ...playback.RaceOption) (
	*playback.Race, *timeline.Index, error,
) {
	trk, err := track.New(d.Track)
	if err != nil {
		return nil, nil, fmt.Errorf("track: %w", err)
	}
	idx, err := timeline.BuildIndex(d.Records, timeline.WithEntrants(d.Entrants))
	if err != nil {
		return nil, nil, fmt.Errorf("laps: %w", err)
	}
	r, err := playback.NewRace(trk, idx, opts...)
	if err != nil {
		return nil, nil, err
	}
	return r, idx, nil
}

// FileLoader reads the lap dataset from csv. The track is read from
// TrackFile, generated as circle if CircleRadius > 0 or the demo track.
type FileLoader struct {
	TrackFile    string
	DataFile     string
	CircleRadius float64
	CirclePoints int
}

func (f *FileLoader) Load(ctx context.Context) (*Data, error) {
	logger := log.GetFromContext(ctx).Named("racedata")
	if f.DataFile == "" {
		return nil, ErrNoDataFile
	}
	ret := &Data{Name: f.DataFile}
	var err error
	switch {
	case f.TrackFile != "":
		if ret.Track, err = track.LoadFile(f.TrackFile); err != nil {
			return nil, err
		}
	case f.CircleRadius > 0:
		ret.Track = track.Circle(f.CircleRadius, f.CirclePoints)
	default:
		ret.Track = track.DemoTrack()
	}
	ds, err := dataset.LoadFile(f.DataFile)
	if err != nil {
		return nil, err
	}
	ret.Records = ds.Records
	ret.Entrants = ds.Entrants
	ret.Dropped = ds.Dropped
	logger.Debug("race data loaded",
		log.Int("trackPoints", len(ret.Track)),
		log.Int("laps", len(ret.Records)),
		log.Int("dropped", ret.Dropped))
	return ret, nil
}

// DBLoader reads a race stored by Store
type DBLoader struct {
	conn repository.Querier
	key  string
}

func NewDBLoader(conn repository.Querier, key string) *DBLoader {
	return &DBLoader{conn: conn, key: key}
}

func (l *DBLoader) Load(ctx context.Context) (*Data, error) {
	r, err := race.LoadByKey(ctx, l.conn, l.key)
	if err != nil {
		return nil, fmt.Errorf("race %s: %w", l.key, err)
	}
	ret := &Data{Name: r.Name}
	if ret.Track, err = trackpoint.LoadByRaceId(ctx, l.conn, r.ID); err != nil {
		return nil, err
	}
	if ret.Entrants, err = entrant.LoadByRaceId(ctx, l.conn, r.ID); err != nil {
		return nil, err
	}
	if ret.Records, err = lap.LoadByRaceId(ctx, l.conn, r.ID); err != nil {
		return nil, err
	}
	log.GetFromContext(ctx).Named("racedata").Debug("race data loaded",
		log.String("key", l.key),
		log.Int("trackPoints", len(ret.Track)),
		log.Int("laps", len(ret.Records)))
	return ret, nil
}

// Store saves the race data under key. Use a transaction as conn.
//
//nolint:whitespace // editor/linter issue
func Store(
	ctx context.Context,
	conn repository.Querier,
	key string,
	d *Data,
) (*model.DbRace, error) {
	r, err := race.Create(ctx, conn, &model.DbRace{Key: key, Name: d.Name})
	if err != nil {
		return nil, fmt.Errorf("create race: %w", err)
	}
	if _, err = trackpoint.Create(ctx, conn, r.ID, d.Track); err != nil {
		return nil, fmt.Errorf("store track: %w", err)
	}
	if _, err = entrant.Create(ctx, conn, r.ID, d.Entrants); err != nil {
		return nil, fmt.Errorf("store entrants: %w", err)
	}
	if _, err = lap.Create(ctx, conn, r.ID, d.Records); err != nil {
		return nil, fmt.Errorf("store laps: %w", err)
	}
	return r, nil
}
