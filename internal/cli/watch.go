package cli

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce delays re-rendering until editors finish writing.
const watchDebounce = 100 * time.Millisecond

// Watch renders opts.Input and renders it again on every change until ctx is done.
// Render errors are reported and do not stop the watcher.
func Watch(ctx context.Context, w io.Writer, opts RenderOptions, logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	path, err := filepath.Abs(opts.Input)
	if err != nil {
		return err
	}
	// Editors replace files on save, so the directory is watched instead of the file.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	rerender := func() {
		if err := RenderFile(w, nil, opts, logger); err != nil {
			logger.Error("Render failed", "err", err)
			printSystemMessage(w, "Render failed: %v", err)
			return
		}
		printSystemMessage(w, "Waiting for changes...")
	}

	logger.Info("Starting Watcher", "path", path)
	rerender()

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping watcher")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			logger.Debug("Change detected", "event", event.String())
			debounce = time.After(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", "err", err)
		case <-debounce:
			debounce = nil
			printSystemMessage(w, "Change detected in '%s'.", filepath.Base(path))
			rerender()
		}
	}
}
