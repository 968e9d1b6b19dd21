package lap

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/mpapenbr/f1-race-tracer/pkg/model"
	"github.com/mpapenbr/f1-race-tracer/pkg/repository"
)

// Create stores the lap records of a race. The record order is kept so that
// the driver order of the dataset survives a round trip.
//
//nolint:whitespace // editor/linter issue
func Create(
	ctx context.Context,
	conn repository.Querier,
	raceID int,
	laps []model.LapRecord,
) (int64, error) {
	return conn.CopyFrom(ctx,
		pgx.Identifier{"lap"},
		[]string{"race_id", "seq", "driver", "lap_no", "lap_time", "position", "team"},
		pgx.CopyFromSlice(len(laps), func(i int) ([]any, error) {
			l := &laps[i]
			return []any{raceID, i, l.Driver, l.LapNo, l.LapTime, l.Position, l.Team}, nil
		}))
}

func LoadByRaceId(ctx context.Context, conn repository.Querier, raceID int) (
	[]model.LapRecord, error,
) {
	rows, err := conn.Query(ctx, `
	select driver, lap_no, lap_time, position, team from lap
	where race_id=$1 order by seq`, raceID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[model.LapRecord])
}
