package entrant

import (
	"context"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/mpapenbr/f1-race-tracer/pkg/model"
	"github.com/mpapenbr/f1-race-tracer/pkg/repository/race"
	"github.com/mpapenbr/f1-race-tracer/testsupport/sampledata"
	"github.com/mpapenbr/f1-race-tracer/testsupport/testdb"
)

func TestCreateAndLoad(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()
	r, err := race.Create(ctx, pool, &model.DbRace{Key: sampledata.RaceKey, Name: sampledata.RaceName})
	assert.NilError(t, err)

	_, err = Create(ctx, pool, r.ID, sampledata.Entrants())
	assert.NilError(t, err)

	got, err := LoadByRaceId(ctx, pool, r.ID)
	assert.NilError(t, err)
	assert.DeepEqual(t, got, sampledata.Entrants())
}

func TestDuplicateDriver(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()
	r, err := race.Create(ctx, pool, &model.DbRace{Key: sampledata.RaceKey, Name: sampledata.RaceName})
	assert.NilError(t, err)

	_, err = Create(ctx, pool, r.ID, []model.Entrant{{Driver: "HAM"}, {Driver: "HAM"}})
	assert.Assert(t, err != nil)
}
