package migrate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/f1-race-tracer/log"
	"github.com/mpapenbr/f1-race-tracer/pkg/config"
	dbMigrate "github.com/mpapenbr/f1-race-tracer/pkg/db/migrate"
	"github.com/mpapenbr/f1-race-tracer/pkg/utils"
)

var statusOnly bool

func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "performs database migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startMigration(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&statusOnly, "status", false,
		"only print the current schema version")
	return cmd
}

func startMigration(ctx context.Context) error {
	logger := log.GetFromContext(ctx).Named("migrate")
	// wait for database
	timeout, err := time.ParseDuration(config.WaitForServices)
	if err != nil {
		logger.Warn("Invalid duration value. Setting default 60s", log.ErrorField(err))
		timeout = 60 * time.Second
	}
	postgresAddr := utils.ExtractFromDBURL(config.DB)
	if err = utils.WaitForTCP(postgresAddr, timeout); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}
	dbURL := prepareURLForDB(config.DB)

	if !statusOnly {
		if err := dbMigrate.MigrateDb(dbURL); err != nil {
			return err
		}
	}
	version, dirty, err := dbMigrate.Version(dbURL)
	if err != nil {
		return err
	}
	logger.Info("Schema version", log.Uint("version", version), log.Bool("dirty", dirty))
	return nil
}

func prepareURLForDB(url string) string {
	options := "sslmode=disable"
	if strings.Contains(url, "sslmode=") {
		return url
	}
	if strings.Contains(url, "?") {
		return fmt.Sprintf("%s&%s", url, options)
	}
	return fmt.Sprintf("%s?%s", url, options)
}
