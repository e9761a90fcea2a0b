package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a configuration file whenever it changes on disk.
// Invalid revisions are logged and skipped; the callback only ever sees valid configs.
type Watcher struct {
	path     string
	onChange func(Config)
	watcher  *fsnotify.Watcher
}

// NewWatcher starts watching path. The parent directory is watched so that editors
// replacing the file through a rename are still observed.
//
// Parameters:
//   - path: the configuration file
//   - onChange: called from Run's goroutine with every valid reload
//
// Returns:
//   - *Watcher: the watcher, ready for Run
//   - error: error if the file system watch cannot be established
func NewWatcher(path string, onChange func(Config)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	path = filepath.Clean(path)
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}
	return &Watcher{path: path, onChange: onChange, watcher: fw}, nil
}

// Run delivers reloads until ctx is cancelled, then releases the watch.
//
// Parameters:
//   - ctx: cancellation
//
// Returns:
//   - error: always nil; the signature fits an errgroup
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.reload()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("config watcher error", "path", w.path, "error", err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		slog.Warn("ignoring config revision", "path", w.path, "error", err)
		return
	}
	slog.Info("config reloaded", "path", w.path)
	if w.onChange != nil {
		w.onChange(cfg)
	}
}
