package replay

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/f1-race-tracer/log"
	"github.com/mpapenbr/f1-race-tracer/pkg/config"
	"github.com/mpapenbr/f1-race-tracer/pkg/dataset"
	"github.com/mpapenbr/f1-race-tracer/pkg/playback"
	"github.com/mpapenbr/f1-race-tracer/pkg/racedata"
)

//nolint:funlen // flag definitions
func NewReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "replays a race from lap data",
		Long: `Replays a race from lap data.

Every driver moves along the track according to the recorded lap times.
Frames are sent to the configured outputs, press enter to pause/resume.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd.Context())
		},
	}
	AddSourceFlags(cmd)
	cmd.Flags().StringVar(&config.TeamColorsFile,
		"team-colors", "",
		"yaml file with team colors (merged over the defaults, reloaded on change)")
	cmd.Flags().IntVar(&config.Samples,
		"samples", playback.DefaultSamples, "number of race clock values")
	cmd.Flags().BoolVar(&config.Fast,
		"fast", false, fmt.Sprintf("use %d samples", config.FastSamples))
	cmd.Flags().StringVar(&config.Interval,
		"interval", playback.DefaultInterval.String(),
		"time between two frames (0 means: as fast as possible)")
	cmd.Flags().Float64Var(&config.MaxTime,
		"max-time", 0, "end of the race clock in seconds (0 means: max race time)")
	cmd.Flags().BoolVar(&config.Interactive,
		"interactive", true, "toggle pause by pressing enter")
	cmd.Flags().StringSliceVarP(&config.Output,
		"output", "o", []string{outputConsole}, "frame outputs (console, jsonl, nats, log)")
	cmd.Flags().StringVar(&config.OutputFile,
		"output-file", "-", "target file of the jsonl output (- is stdout)")
	cmd.Flags().IntVar(&config.OutputEvery,
		"output-every", 50, "send only every n-th frame to console, jsonl and nats outputs")
	cmd.Flags().IntVar(&config.LeaderboardTop,
		"leaderboard-top", 10, "number of leaderboard lines on the console (0 means: all)")
	cmd.Flags().StringVar(&config.NatsURL,
		"nats-url", "nats://localhost:4222", "NATS server url")
	cmd.Flags().StringVar(&config.NatsPrefix,
		"nats-prefix", "frt.replay", "subject prefix for frames")
	cmd.Flags().StringVar(&config.NatsBucket,
		"nats-bucket", "", "jetstream key value bucket for the final frame")
	return cmd
}

// AddSourceFlags registers the flags selecting the race data
func AddSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&config.Source,
		"source", config.SourceFile, "where to read the race from (file, db)")
	cmd.Flags().StringVarP(&config.DataFile,
		"data", "d", "", "csv file with lap data")
	cmd.Flags().StringVarP(&config.TrackFile,
		"track", "t", "", "csv file with track outline (default: builtin demo track)")
	cmd.Flags().Float64Var(&config.CircleRadius,
		"circle-radius", 0, "use a circle track with this radius")
	cmd.Flags().IntVar(&config.CirclePoints,
		"circle-points", 100, "number of points of the circle track")
	cmd.Flags().StringVar(&config.RaceKey,
		"race", "", "key of the race (source db)")
}

//nolint:funlen,cyclop // by design
func runReplay(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger := log.GetFromContext(ctx).Named("replay")

	interval, err := time.ParseDuration(config.Interval)
	if err != nil {
		return fmt.Errorf("invalid interval %q: %w", config.Interval, err)
	}
	loader, cleanup, err := NewLoader(ctx)
	if err != nil {
		return err
	}
	defer cleanup()
	data, err := loader.Load(ctx)
	if err != nil {
		return err
	}

	var colors playback.ColorResolver = dataset.DefaultTeamColors()
	if config.TeamColorsFile != "" {
		if colors, err = dataset.NewColorWatcher(ctx, config.TeamColorsFile); err != nil {
			return err
		}
	}
	samples := config.Samples
	if config.Fast {
		samples = config.FastSamples
	}
	opts := []playback.RaceOption{
		playback.WithSamples(samples),
		playback.WithTeamColors(colors),
		playback.WithLogger(logger),
	}
	if config.MaxTime > 0 {
		opts = append(opts, playback.WithMaxTime(config.MaxTime))
	}
	race, idx, err := data.Build(opts...)
	if err != nil {
		return err
	}
	logger.Info("Replaying race",
		log.String("race", data.Name),
		log.Int("drivers", idx.Len()),
		log.Int("laps", idx.NumLaps()),
		log.Int("dropped", data.Dropped),
		log.Float64("maxTime", race.MaxTime()))

	sinks, closeSinks, err := newSinks(ctx, data)
	if err != nil {
		return err
	}
	defer closeSinks()

	runnerOpts := []playback.RunnerOption{
		playback.WithInterval(interval),
		playback.WithSink(sinks),
		playback.WithRunnerLogger(logger),
	}
	if config.Interactive {
		runnerOpts = append(runnerOpts, playback.WithPauseToggle(pauseToggle(ctx, os.Stdin)))
	}
	st, err := playback.NewRunner(race, runnerOpts...).Run(ctx)
	logger.Info("Replay done",
		log.Int("step", st.Step),
		log.Float64("clock", st.Clock),
		log.String("status", st.Status.String()))
	if err != nil && ctx.Err() != nil && parent.Err() == nil {
		// stopped by signal
		return nil
	}
	return err
}

// NewLoader selects the race data loader according to the config.
// The cleanup function releases the database pool if one was opened.
func NewLoader(ctx context.Context) (racedata.Loader, func(), error) {
	switch config.Source {
	case config.SourceFile:
		return &racedata.FileLoader{
			TrackFile:    config.TrackFile,
			DataFile:     config.DataFile,
			CircleRadius: config.CircleRadius,
			CirclePoints: config.CirclePoints,
		}, func() {}, nil
	case config.SourceDB:
		if config.RaceKey == "" {
			return nil, nil, fmt.Errorf("source db requires --race")
		}
		pool, err := ConnectDB(ctx)
		if err != nil {
			return nil, nil, err
		}
		return racedata.NewDBLoader(pool, config.RaceKey), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown source %q", config.Source)
	}
}
