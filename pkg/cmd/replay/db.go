package replay

import (
	"context"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mpapenbr/f1-race-tracer/log"
	"github.com/mpapenbr/f1-race-tracer/pkg/config"
	"github.com/mpapenbr/f1-race-tracer/pkg/db/postgres"
	"github.com/mpapenbr/f1-race-tracer/pkg/utils"
)

// ConnectDB waits for the database and creates a pool.
// SQL statements are logged if --sql-log-level is debug.
func ConnectDB(ctx context.Context) (*pgxpool.Pool, error) {
	logger := log.GetFromContext(ctx)
	timeout, err := time.ParseDuration(config.WaitForServices)
	if err != nil {
		logger.Warn("Invalid duration value. Setting default 60s", log.ErrorField(err))
		timeout = 60 * time.Second
	}
	postgresAddr := utils.ExtractFromDBURL(config.DB)
	if err = utils.WaitForTCP(postgresAddr, timeout); err != nil {
		return nil, err
	}
	sqlLevel, err := log.ParseLevel(config.SQLLogLevel)
	if err != nil {
		sqlLevel = log.InfoLevel
	}
	var sqlLogger *log.Logger
	if config.LogFormat == "json" {
		sqlLogger = log.New(os.Stderr, sqlLevel)
	} else {
		sqlLogger = log.DevLogger(os.Stderr, sqlLevel)
	}
	return postgres.Connect(ctx, config.DB, postgres.WithTracer(sqlLogger.Named("sql")))
}
