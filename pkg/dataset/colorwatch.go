package dataset

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/mpapenbr/f1-race-tracer/log"
)

// ColorWatcher serves the team colors of a yaml file and reloads them
// whenever the file changes. A file that fails to load keeps the previous
// colors.
type ColorWatcher struct {
	path   string
	log    *log.Logger
	mu     sync.RWMutex
	colors TeamColors
}

// NewColorWatcher loads path and watches it until ctx is done
func NewColorWatcher(ctx context.Context, path string) (*ColorWatcher, error) {
	colors, err := LoadTeamColors(path)
	if err != nil {
		return nil, err
	}
	c := &ColorWatcher{
		path:   filepath.Clean(path),
		log:    log.GetFromContext(ctx).Named("teamcolors"),
		colors: colors,
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// the directory is watched since editors often replace the file
	if err := watcher.Add(filepath.Dir(c.path)); err != nil {
		watcher.Close()
		return nil, err
	}
	go c.watch(ctx, watcher)
	return c, nil
}

func (c *ColorWatcher) Color(team string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.colors.Color(team)
}

func (c *ColorWatcher) watch(ctx context.Context, watcher *fsnotify.Watcher) {
	defer watcher.Close()
	for {
		select {
		case <-ctx.Done():
			c.log.Debug("context done, stopping team color reload")
			return
		case event, ok := <-watcher.Events:
			if !ok {
				c.log.Info("watcher events channel closed, stopping team color reload")
				return
			}
			if filepath.Clean(event.Name) != c.path {
				continue
			}
			c.log.Debug("change detected",
				log.String("file", event.Name), log.Any("event", event))
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				c.reload()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				c.log.Info("watcher errors channel closed, stopping team color reload")
				return
			}
			c.log.Error("watcher error", log.ErrorField(err))
		}
	}
}

func (c *ColorWatcher) reload() {
	colors, err := LoadTeamColors(c.path)
	if err != nil {
		c.log.Error("could not reload team colors", log.ErrorField(err))
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.colors = colors
	c.log.Info("team colors reloaded", log.String("file", c.path))
}
