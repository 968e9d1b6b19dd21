// Package natssink publishes frames to a NATS subject
package natssink

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/mpapenbr/f1-race-tracer/log"
	"github.com/mpapenbr/f1-race-tracer/pkg/playback"
	"github.com/mpapenbr/f1-race-tracer/pkg/sink"
)

const DefaultPrefix = "frt.replay"

type (
	// Publisher is satisfied by *nats.Conn
	Publisher interface {
		Publish(subj string, data []byte) error
	}
	// ResultStore is satisfied by jetstream.KeyValue
	ResultStore interface {
		Put(ctx context.Context, key string, value []byte) (uint64, error)
	}

	Sink struct {
		pub     Publisher
		prefix  string
		raceKey string
		every   int
		store   ResultStore
		l       *log.Logger
	}
	Option func(s *Sink)
)

var _ playback.Sink = (*Sink)(nil)

func WithPrefix(prefix string) Option {
	return func(s *Sink) {
		s.prefix = prefix
	}
}

// WithEvery only publishes every n-th frame. Stopped frames are always published.
func WithEvery(n int) Option {
	return func(s *Sink) {
		s.every = max(n, 1)
	}
}

// WithResultStore stores the final frame under the race key
func WithResultStore(store ResultStore) Option {
	return func(s *Sink) {
		s.store = store
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *Sink) {
		s.l = l
	}
}

func New(pub Publisher, raceKey string, opts ...Option) *Sink {
	ret := &Sink{
		pub:     pub,
		prefix:  DefaultPrefix,
		raceKey: raceKey,
		every:   1,
		l:       log.Default().Named("nats"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Subject is the subject frames are published to
func (s *Sink) Subject() string {
	return fmt.Sprintf("%s.%s.frame", s.prefix, s.raceKey)
}

func (s *Sink) Publish(ctx context.Context, f *playback.Frame) error {
	if f.Step%s.every != 0 && !f.Stopped {
		return nil
	}
	data, err := sink.Encode(f)
	if err != nil {
		return err
	}
	if err := s.pub.Publish(s.Subject(), data); err != nil {
		return fmt.Errorf("publish frame %d: %w", f.Step, err)
	}
	if f.Stopped && s.store != nil {
		if _, err := s.store.Put(ctx, s.raceKey, data); err != nil {
			return fmt.Errorf("store result: %w", err)
		}
		s.l.Debug("result stored", log.String("key", s.raceKey))
	}
	return nil
}

// Connect opens a NATS connection
func Connect(url string) (*nats.Conn, error) {
	return nats.Connect(url, nats.Name("frt"))
}

// ResultBucket creates (or opens) the key value bucket for final frames
func ResultBucket(ctx context.Context, conn *nats.Conn, bucket string) (jetstream.KeyValue, error) {
	js, err := jetstream.New(conn)
	if err != nil {
		return nil, err
	}
	return js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket: bucket,
	})
}
