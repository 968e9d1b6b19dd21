package dataimport

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"github.com/mpapenbr/f1-race-tracer/log"
	"github.com/mpapenbr/f1-race-tracer/pkg/cmd/replay"
	"github.com/mpapenbr/f1-race-tracer/pkg/config"
	"github.com/mpapenbr/f1-race-tracer/pkg/racedata"
	"github.com/mpapenbr/f1-race-tracer/pkg/repository"
	"github.com/mpapenbr/f1-race-tracer/pkg/repository/race"
)

func NewImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "imports track and lap data into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&config.DataFile,
		"data", "d", "", "csv file with lap data")
	cmd.Flags().StringVarP(&config.TrackFile,
		"track", "t", "", "csv file with track outline (default: builtin demo track)")
	cmd.Flags().Float64Var(&config.CircleRadius,
		"circle-radius", 0, "use a circle track with this radius")
	cmd.Flags().IntVar(&config.CirclePoints,
		"circle-points", 100, "number of points of the circle track")
	cmd.Flags().StringVar(&config.RaceKey,
		"race", "", "key of the race (default: generated)")
	cmd.Flags().StringVar(&config.RaceName,
		"name", "", "name of the race (default: data file name)")
	cmd.Flags().BoolVar(&config.Replace,
		"replace", false, "replace an existing race with the same key")
	return cmd
}

func runImport(ctx context.Context) error {
	loader := &racedata.FileLoader{
		TrackFile:    config.TrackFile,
		DataFile:     config.DataFile,
		CircleRadius: config.CircleRadius,
		CirclePoints: config.CirclePoints,
	}
	data, err := loader.Load(ctx)
	if err != nil {
		return err
	}
	pool, err := replay.ConnectDB(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		return importData(ctx, tx, data)
	})
}

// importData checks the data can be replayed and stores it
func importData(ctx context.Context, conn repository.Querier, data *racedata.Data) error {
	logger := log.GetFromContext(ctx).Named("import")
	if _, _, err := data.Build(); err != nil {
		return err
	}
	key := config.RaceKey
	if key == "" {
		key = uuid.NewString()
	}
	if config.RaceName != "" {
		data.Name = config.RaceName
	}
	if config.Replace {
		n, err := race.DeleteByKey(ctx, conn, key)
		if err != nil {
			return err
		}
		if n > 0 {
			logger.Info("Existing race deleted", log.String("key", key))
		}
	}
	r, err := racedata.Store(ctx, conn, key, data)
	if err != nil {
		return err
	}
	logger.Info("Race imported",
		log.String("key", r.Key),
		log.Int("id", r.ID),
		log.String("name", r.Name),
		log.Int("trackPoints", len(data.Track)),
		log.Int("laps", len(data.Records)),
		log.Int("dropped", data.Dropped))
	return nil
}
