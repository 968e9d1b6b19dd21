package replay

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPauseToggle(t *testing.T) {
	ch := pauseToggle(context.Background(), strings.NewReader("\n\nx\n"))
	count := 0
	for range ch {
		count++
	}
	assert.Equal(t, 3, count)
}

func TestPauseToggle_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ch := pauseToggle(ctx, strings.NewReader("\n\n"))
	count := 0
	for range ch {
		count++
	}
	assert.LessOrEqual(t, count, 2)
}
