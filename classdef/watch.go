package classdef

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the manifests of a directory whenever one of them
// changes.
type Watcher struct {
	dir  string
	opts []Option
	cfg  *config
	fsw  *fsnotify.Watcher
}

// NewWatcher starts watching dir. The options apply to every reload.
func NewWatcher(dir string, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("classdef: watch: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("classdef: watch %s: %w", dir, err)
	}
	return &Watcher{dir: dir, opts: opts, cfg: newConfig(opts), fsw: fsw}, nil
}

// Run blocks until ctx is done or the watcher is closed. After every change
// to a manifest it loads all manifests of the directory and passes them to
// reload, on the goroutine that called Run. Reloads that fail to parse are
// logged and skipped, so a half-written file never reaches reload.
func (w *Watcher) Run(ctx context.Context, reload func([]*File) error) error {
	const changed = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !isManifest(ev.Name) || ev.Op&changed == 0 {
				continue
			}
			files, err := LoadDir(ctx, w.dir, w.opts...)
			if err != nil {
				w.cfg.log.Warn("manifest reload failed", "dir", w.dir, "trigger", ev.Name, "error", err)
				continue
			}
			if err := reload(files); err != nil {
				w.cfg.log.Error("manifest apply failed", "dir", w.dir, "trigger", ev.Name, "error", err)
				continue
			}
			w.cfg.log.Debug("manifests reloaded", "dir", w.dir, "trigger", ev.Name, "files", len(files))
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.cfg.log.Warn("manifest watch error", "dir", w.dir, "error", err)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
