package trackpoint

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/mpapenbr/f1-race-tracer/pkg/model"
	"github.com/mpapenbr/f1-race-tracer/pkg/repository"
)

// Create stores the polyline of a race, the point order is kept in column seq
//
//nolint:whitespace // editor/linter issue
func Create(
	ctx context.Context,
	conn repository.Querier,
	raceID int,
	points []model.TrackPoint,
) (int64, error) {
	return conn.CopyFrom(ctx,
		pgx.Identifier{"track_point"},
		[]string{"race_id", "seq", "x", "y"},
		pgx.CopyFromSlice(len(points), func(i int) ([]any, error) {
			return []any{raceID, i, points[i].X, points[i].Y}, nil
		}))
}

func LoadByRaceId(ctx context.Context, conn repository.Querier, raceID int) (
	[]model.TrackPoint, error,
) {
	rows, err := conn.Query(ctx,
		"select x, y from track_point where race_id=$1 order by seq", raceID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[model.TrackPoint])
}

func DeleteByRaceId(ctx context.Context, conn repository.Querier, raceID int) (int, error) {
	cmdTag, err := conn.Exec(ctx, "delete from track_point where race_id=$1", raceID)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}
