package tcpostgres

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/mpapenbr/f1-race-tracer/log"
	"github.com/mpapenbr/f1-race-tracer/pkg/db/migrate"
	database "github.com/mpapenbr/f1-race-tracer/pkg/db/postgres"
	"github.com/mpapenbr/f1-race-tracer/pkg/repository"
)

// create a pg connection pool for the test database running in a container
func SetupTestDb() *pgxpool.Pool {
	ctx := context.Background()
	port, err := nat.NewPort("tcp", "5432")
	if err != nil {
		log.Fatal("invalid port", log.ErrorField(err))
	}
	container, err := SetupPostgres(ctx,
		WithPort(port.Port()),
		WithInitialDatabase("postgres", "password", "postgres"),
		WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
		WithName("f1-race-tracer-test"),
		WithServerParam("synchronous_commit", "off"),
	)
	if err != nil {
		log.Fatal("could not start postgres container", log.ErrorField(err))
	}
	containerPort, _ := container.MappedPort(ctx, port)
	host, _ := container.Host(ctx)
	dbUrl := fmt.Sprintf("postgresql://postgres:password@%s:%s/postgres",
		host, containerPort.Port())

	return setupWithUrl(dbUrl)
}

// SetupExternalTestDb uses the database given by env TESTDB_URL
func SetupExternalTestDb() *pgxpool.Pool {
	return setupWithUrl(os.Getenv("TESTDB_URL"))
}

func setupWithUrl(dbUrl string) *pgxpool.Pool {
	if err := migrate.MigrateDb(dbUrl); err != nil {
		log.Fatal("could not migrate test database", log.ErrorField(err))
	}
	return database.InitWithUrl(dbUrl)
}

// ClearAllTables removes all races. Track points, entrants and laps are
// deleted by cascade.
func ClearAllTables(ctx context.Context, conn repository.Querier) error {
	_, err := conn.Exec(ctx, "truncate race restart identity cascade")
	return err
}
