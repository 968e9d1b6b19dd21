package replay

import (
	"bufio"
	"context"
	"io"
)

// pauseToggle emits a value for each line read from r.
// The channel is closed when r is exhausted.
func pauseToggle(ctx context.Context, r io.Reader) <-chan struct{} {
	ch := make(chan struct{})
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case ch <- struct{}{}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}
