package replay

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/mpapenbr/f1-race-tracer/log"
	"github.com/mpapenbr/f1-race-tracer/pkg/config"
	"github.com/mpapenbr/f1-race-tracer/pkg/playback"
	"github.com/mpapenbr/f1-race-tracer/pkg/racedata"
	"github.com/mpapenbr/f1-race-tracer/pkg/sink"
	"github.com/mpapenbr/f1-race-tracer/pkg/sink/console"
	"github.com/mpapenbr/f1-race-tracer/pkg/sink/jsonl"
	"github.com/mpapenbr/f1-race-tracer/pkg/sink/natssink"
)

const (
	outputConsole = "console"
	outputJSONL   = "jsonl"
	outputNats    = "nats"
	outputLog     = "log"
)

// newSinks creates the configured outputs. The returned func closes files
// and connections opened for them.
//
//nolint:funlen,cyclop // by design
func newSinks(ctx context.Context, data *racedata.Data) (playback.Sink, func(), error) {
	logger := log.GetFromContext(ctx)
	sinks := make([]playback.Sink, 0, len(config.Output))
	closers := make([]func(), 0)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	for _, out := range config.Output {
		switch out {
		case outputConsole:
			sinks = append(sinks, console.New(os.Stdout,
				console.WithEvery(config.OutputEvery),
				console.WithTop(config.LeaderboardTop)))
		case outputJSONL:
			var w io.Writer = os.Stdout
			if config.OutputFile != "-" && config.OutputFile != "" {
				f, err := os.Create(config.OutputFile)
				if err != nil {
					closeAll()
					return nil, nil, err
				}
				closers = append(closers, func() { f.Close() })
				w = f
			}
			sinks = append(sinks, jsonl.New(w, jsonl.WithEvery(config.OutputEvery)))
		case outputNats:
			conn, err := natssink.Connect(config.NatsURL)
			if err != nil {
				closeAll()
				return nil, nil, fmt.Errorf("connect nats: %w", err)
			}
			closers = append(closers, func() {
				if err := conn.Drain(); err != nil {
					logger.Warn("nats drain", log.ErrorField(err))
				}
			})
			key := raceKey(data)
			opts := []natssink.Option{
				natssink.WithPrefix(config.NatsPrefix),
				natssink.WithEvery(config.OutputEvery),
				natssink.WithLogger(logger.Named("nats")),
			}
			if config.NatsBucket != "" {
				kv, err := natssink.ResultBucket(ctx, conn, config.NatsBucket)
				if err != nil {
					closeAll()
					return nil, nil, fmt.Errorf("nats bucket: %w", err)
				}
				opts = append(opts, natssink.WithResultStore(kv))
			}
			ns := natssink.New(conn, key, opts...)
			logger.Info("Publishing frames", log.String("subject", ns.Subject()))
			sinks = append(sinks, ns)
		case outputLog:
			sinks = append(sinks, sink.Log(logger.Named("frame")))
		default:
			closeAll()
			return nil, nil, fmt.Errorf("unknown output %q", out)
		}
	}
	return sink.Multi(sinks...), closeAll, nil
}

// raceKey identifies the replay on the NATS subject. Files have no key,
// a random one is used then.
func raceKey(data *racedata.Data) string {
	if config.RaceKey != "" {
		return config.RaceKey
	}
	key := uuid.NewString()
	log.Debug("generated race key", log.String("key", key), log.String("race", data.Name))
	return key
}
