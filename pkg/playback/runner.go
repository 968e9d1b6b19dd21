package playback

import (
	"context"
	"time"

	"github.com/mpapenbr/f1-race-tracer/log"
)

const DefaultInterval = 20 * time.Millisecond

// Sink receives the frames produced by a Runner.
// Publish is called from the tick goroutine, one frame at a time.
type Sink interface {
	Publish(ctx context.Context, f *Frame) error
}

// SinkFunc adapts a function to the Sink interface
type SinkFunc func(ctx context.Context, f *Frame) error

func (fn SinkFunc) Publish(ctx context.Context, f *Frame) error {
	return fn(ctx, f)
}

// Runner drives a Race in real time.
// All state changes happen on the goroutine calling Run.
type Runner struct {
	race     *Race
	sink     Sink
	interval time.Duration
	toggle   <-chan struct{}
	l        *log.Logger
	wake     func() // called on every pass of the run loop
}

type RunnerOption func(r *Runner)

// WithInterval sets the time between two ticks. A value <= 0 runs as fast as possible.
func WithInterval(d time.Duration) RunnerOption {
	return func(r *Runner) {
		r.interval = d
	}
}

func WithSink(s Sink) RunnerOption {
	return func(r *Runner) {
		r.sink = s
	}
}

// WithPauseToggle registers a channel. Each received value flips the pause flag.
func WithPauseToggle(ch <-chan struct{}) RunnerOption {
	return func(r *Runner) {
		r.toggle = ch
	}
}

func WithRunnerLogger(l *log.Logger) RunnerOption {
	return func(r *Runner) {
		r.l = l
	}
}

func NewRunner(race *Race, opts ...RunnerOption) *Runner {
	ret := &Runner{
		race:     race,
		interval: DefaultInterval,
		sink:     SinkFunc(func(context.Context, *Frame) error { return nil }),
		l:        log.Default().Named("runner"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Run publishes the initial frame and then one frame per tick until the
// race stops or ctx is done. The last state is returned in both cases.
//
//nolint:gocognit // select loop
func (r *Runner) Run(ctx context.Context) (State, error) {
	st := r.race.Initial()
	first := r.race.Frame(st)
	r.publish(ctx, &first)

	var ticks <-chan time.Time
	if r.interval > 0 {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		ticks = ticker.C
	} else {
		always := make(chan time.Time)
		close(always)
		ticks = always
	}
	// tick is nil while paused so the select only wakes on ctx or toggle
	tick := ticks
	toggle := r.toggle
	started := time.Now()
	for {
		if r.wake != nil {
			r.wake()
		}
		select {
		case <-ctx.Done():
			r.l.Info("replay cancelled",
				log.Int("step", st.Step),
				log.Float64("clock", st.Clock))
			return st, ctx.Err()
		case _, ok := <-toggle:
			if !ok {
				toggle = nil
				continue
			}
			st = TogglePause(st)
			if st.Paused {
				tick = nil
			} else {
				tick = ticks
			}
			r.l.Info("pause toggled",
				log.Bool("paused", st.Paused),
				log.Float64("clock", st.Clock))
		case <-tick:
			var f Frame
			st, f = r.race.Advance(st)
			r.publish(ctx, &f)
			if st.Status == Stopped {
				r.l.Info("replay finished",
					log.Int("steps", st.Step),
					log.Float64("clock", st.Clock),
					log.Bool("complete", f.Complete),
					log.Duration("duration", time.Since(started)))
				return st, nil
			}
		}
	}
}

func (r *Runner) publish(ctx context.Context, f *Frame) {
	if err := r.sink.Publish(ctx, f); err != nil {
		r.l.Error("error publishing frame",
			log.Int("step", f.Step),
			log.ErrorField(err))
	}
}
