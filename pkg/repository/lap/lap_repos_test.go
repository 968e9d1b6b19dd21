package lap

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

	n, err := Create(ctx, pool, r.ID, sampledata.Laps())
	assert.NilError(t, err)
	assert.Equal(t, n, int64(len(sampledata.Laps())))

	got, err := LoadByRaceId(ctx, pool, r.ID)
	assert.NilError(t, err)
	// record order is kept
	assert.DeepEqual(t, got, sampledata.Laps())

}
