package app

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vk/scenebus/internal/ctxlog"
	"github.com/vk/scenebus/internal/fsutil"
)

// watchDebounce coalesces the burst of events an editor save produces.
const watchDebounce = 200 * time.Millisecond

// Watch reloads the current scene whenever a scene file under ScenePath is
// created, written, removed or renamed. A failed reload is logged and the
// previous graph stays live. Watch returns when ctx is done.
func (a *App) Watch(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	dirs, err := fsutil.Dirs(a.config.ScenePath)
	if err != nil {
		return fmt.Errorf("watch %s: %w", a.config.ScenePath, err)
	}
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	logger.Info("👀 Watching scene files.", "path", a.config.ScenePath, "dirs", len(dirs))

	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !fsutil.HasExtension(ev.Name, ".hcl") || ev.Op == fsnotify.Chmod {
				continue
			}
			logger.Debug("Scene file changed.", "file", ev.Name, "op", ev.Op.String())
			timer.Reset(watchDebounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("File watcher error.", "error", err)
		case <-timer.C:
			if _, err := a.Reload(ctx); err != nil {
				logger.Error("Reload failed, keeping the current scene.", "error", err)
			}
		}
	}
}
