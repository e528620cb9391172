package artifact

import (
	"context"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadQuiet is how long the watcher waits after the last filesystem
// event before reloading, so a build run writing several artifact files
// triggers a single reload.
const reloadQuiet = 500 * time.Millisecond

// Watch reloads the artifact directory into the provider whenever its
// contents change, until the context is canceled. Stores are replaced
// wholesale; request-time behavior is unaffected beyond which store a new
// request picks up.
func Watch(ctx context.Context, dir string, provider *Provider, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(dir); err != nil {
		return err
	}

	logger.Info("watching artifact directory", "dir", dir)

	var pending *time.Timer
	var reload <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if pending == nil {
				pending = time.NewTimer(reloadQuiet)
				reload = pending.C
			} else {
				pending.Reset(reloadQuiet)
			}

		case <-reload:
			pending = nil
			reload = nil
			logger.Info("artifact directory changed, reloading")
			provider.Swap(Load(dir, logger))

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("artifact watcher error", "error", watchErr)
		}
	}
}
