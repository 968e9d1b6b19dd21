// Package jsonl writes frames as JSON lines
package jsonl

import (
	"context"
	"io"

	"github.com/mpapenbr/f1-race-tracer/pkg/playback"
	"github.com/mpapenbr/f1-race-tracer/pkg/sink"
)

type (
	Writer struct {
		w     io.Writer
		every int
	}
	Option func(w *Writer)
)

// WithEvery only writes every n-th frame. Stopped frames are always written.
func WithEvery(n int) Option {
	return func(w *Writer) {
		w.every = max(n, 1)
	}
}

func New(w io.Writer, opts ...Option) *Writer {
	ret := &Writer{w: w, every: 1}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

func (w *Writer) Publish(_ context.Context, f *playback.Frame) error {
	if f.Step%w.every != 0 && !f.Stopped {
		return nil
	}
	data, err := sink.Encode(f)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.w.Write(data)
	return err
}
