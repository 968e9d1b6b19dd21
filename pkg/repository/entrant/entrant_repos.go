package entrant

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/mpapenbr/f1-race-tracer/pkg/model"
	"github.com/mpapenbr/f1-race-tracer/pkg/repository"
)

// Create stores the entrants of a race in the given order
//
//nolint:whitespace // editor/linter issue
func Create(
	ctx context.Context,
	conn repository.Querier,
	raceID int,
	entrants []model.Entrant,
) (int64, error) {
	return conn.CopyFrom(ctx,
		pgx.Identifier{"entrant"},
		[]string{"race_id", "seq", "driver", "team"},
		pgx.CopyFromSlice(len(entrants), func(i int) ([]any, error) {
			return []any{raceID, i, entrants[i].Driver, entrants[i].Team}, nil
		}))
}

func LoadByRaceId(ctx context.Context, conn repository.Querier, raceID int) (
	[]model.Entrant, error,
) {
	rows, err := conn.Query(ctx,
		"select driver, team from entrant where race_id=$1 order by seq", raceID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[model.Entrant])
}
