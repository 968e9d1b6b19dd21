package testdb

import (
	"context"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mpapenbr/f1-race-tracer/log"
	tcpg "github.com/mpapenbr/f1-race-tracer/testsupport/tcpostgres"
)

// InitTestDb is called at the start of each repository test.
// It runs against TESTDB_URL if set, otherwise against a postgres container
// shared by all test packages. All races of earlier tests are removed.
func InitTestDb() *pgxpool.Pool {
	setup := tcpg.SetupTestDb
	if os.Getenv("TESTDB_URL") != "" {
		setup = tcpg.SetupExternalTestDb
	}
	pool := setup()
	ctx := context.Background()
	err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		return tcpg.ClearAllTables(ctx, tx)
	})
	if err != nil {
		log.Fatal("could not clear test database", log.ErrorField(err))
	}
	return pool
}
