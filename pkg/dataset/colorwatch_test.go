package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// replaceFile swaps the content in one step like most editors do
func replaceFile(t *testing.T, path, content string) {
	t.Helper()
	tmp := filepath.Join(t.TempDir(), "colors.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte(content), 0o600))
	require.NoError(t, os.Rename(tmp, path))
}

func TestColorWatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "colors.yml")
	require.NoError(t, os.WriteFile(path, []byte("Ferrari: \"#FF0000\"\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w, err := NewColorWatcher(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "#FF0000", w.Color("Ferrari"))
	assert.Equal(t, "#00D2BE", w.Color("Mercedes"))

	// unrelated files in the directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yml"),
		[]byte("Ferrari: \"#000000\"\n"), 0o600))

	replaceFile(t, path, "Ferrari: \"#AA0000\"\nWilliams: \"#FFFFFF\"\n")
	require.Eventually(t, func() bool {
		return w.Color("Williams") == "#FFFFFF"
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "#AA0000", w.Color("Ferrari"))

	// broken content keeps the last good colors
	replaceFile(t, path, "- a\n- b\n")
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, "#AA0000", w.Color("Ferrari"))
	assert.Equal(t, "#FFFFFF", w.Color("Williams"))
}

func TestColorWatcher_MissingFile(t *testing.T) {
	_, err := NewColorWatcher(context.Background(),
		filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
