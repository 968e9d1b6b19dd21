package racedata

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"gotest.tools/v3/assert"

	"github.com/mpapenbr/f1-race-tracer/testsupport/sampledata"
	"github.com/mpapenbr/f1-race-tracer/testsupport/testdb"
)

func TestStoreAndLoad(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()
	d := &Data{
		Name:     sampledata.RaceName,
		Track:    sampledata.Track(),
		Records:  sampledata.Laps(),
		Entrants: sampledata.Entrants(),
	}
	err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		_, err := Store(ctx, tx, sampledata.RaceKey, d)
		return err
	})
	assert.NilError(t, err)

	got, err := NewDBLoader(pool, sampledata.RaceKey).Load(ctx)
	assert.NilError(t, err)
	assert.DeepEqual(t, got, d)

	_, err = NewDBLoader(pool, "unknown").Load(ctx)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestStoreDuplicateKey(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()
	d := &Data{Name: "x", Track: sampledata.Track()}
	_, err := Store(ctx, pool, "dup", d)
	assert.NilError(t, err)
	_, err = Store(ctx, pool, "dup", d)
	assert.Assert(t, err != nil)
}
