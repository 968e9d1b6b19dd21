package race

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mpapenbr/f1-race-tracer/pkg/model"
	"github.com/mpapenbr/f1-race-tracer/pkg/repository"
)

// Create inserts the race. ID and Created are set from the database.
func Create(ctx context.Context, conn repository.Querier, race *model.DbRace) (*model.DbRace, error) {
	row := conn.QueryRow(ctx, `
	insert into race (race_key, name) values ($1,$2)
	returning id, created
	`, race.Key, race.Name)

	if err := row.Scan(&race.ID, &race.Created); err != nil {
		return nil, err
	}
	return race, nil
}

func LoadByKey(ctx context.Context, conn repository.Querier, key string) (*model.DbRace, error) {
	row := conn.QueryRow(ctx, fmt.Sprintf("%s where race_key=$1", selector), key)
	var item model.DbRace
	if err := scan(&item, row); err != nil {
		return nil, err
	}
	return &item, nil
}

func LoadById(ctx context.Context, conn repository.Querier, id int) (*model.DbRace, error) {
	row := conn.QueryRow(ctx, fmt.Sprintf("%s where id=$1", selector), id)
	var item model.DbRace
	if err := scan(&item, row); err != nil {
		return nil, err
	}
	return &item, nil
}

// LoadAll returns all races, newest first
func LoadAll(ctx context.Context, conn repository.Querier) (ret []*model.DbRace, err error) {
	var rows pgx.Rows
	if rows, err = conn.Query(ctx,
		fmt.Sprintf("%s order by created desc, id desc", selector)); err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*model.DbRace, error) {
		return pgx.RowToAddrOfStructByPos[model.DbRace](row)
	})
}

// deletes a race including its track points, entrants and laps.
// returns number of races deleted.
func DeleteByKey(ctx context.Context, conn repository.Querier, key string) (int, error) {
	cmdTag, err := conn.Exec(ctx, "delete from race where race_key=$1", key)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

// little helper
const selector = `select id, race_key, name, created from race`

func scan(e *model.DbRace, row pgx.Row) error {
	return row.Scan(&e.ID, &e.Key, &e.Name, &e.Created)
}
