package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// watchDebounce coalesces the burst of write events editors emit when
// saving a file.
const watchDebounce = 500 * time.Millisecond

// Watch reloads the store whenever its config file changes on disk.
// onApplied is invoked after every successful reload; it runs on the
// watcher goroutine, so it must only hand off work (e.g. poke the
// orchestrator's refresh channel), never mutate engine state.
//
// Watch blocks until ctx is cancelled. A missing file or an unavailable
// watcher is non-fatal: SIGHUP remains the reload path of last resort.
func Watch(ctx context.Context, store *Store, onApplied func()) {
	path := store.Path()
	if path == "" {
		return
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Warn().Err(err).Msg("config watcher unavailable")
		return
	}
	defer watcher.Close()

	// Watch the directory: editors replace the file on save, which would
	// otherwise drop the watch on the old inode.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("cannot watch config directory")
		return
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("config watcher error")
		case <-pending:
			pending = nil
			if err := store.Reload(); err == nil && onApplied != nil {
				onApplied()
			}
		}
	}
}
