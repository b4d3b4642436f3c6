package expand

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"spreadgen/internal/logger"
)

// skipDirs are never watched.
var skipDirs = map[string]bool{"target": true, "node_modules": true}

// Watch re-expands inputs under the config directory whenever they are
// written, until ctx is done. Each result is passed to report after it is
// written.
func (r *Runner) Watch(ctx context.Context, report func(*Result)) error {
	log := logger.FromContext(ctx)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	if err := watchTree(w, r.cfg.Dir); err != nil {
		return err
	}

	log.Info("Watching for changes", "dir", r.cfg.Dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			log.Warn("Watcher error", "error", err)
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if err := r.handleEvent(ctx, w, ev, report); err != nil {
				log.Error("Re-expansion failed", "file", ev.Name, "error", err)
			}
		}
	}
}

func (r *Runner) handleEvent(ctx context.Context, w *fsnotify.Watcher, ev fsnotify.Event, report func(*Result)) error {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return nil
	}

	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			return watchTree(w, ev.Name)
		}
	}

	rel, err := filepath.Rel(r.cfg.Dir, ev.Name)
	if err != nil || !r.cfg.Matches(rel) {
		return nil
	}

	res, err := r.File(ctx, filepath.ToSlash(rel))
	if err != nil {
		return err
	}

	if err := r.Write([]*Result{res}); err != nil {
		return err
	}

	report(res)

	return nil
}

// watchTree adds root and every directory below it, skipping hidden and
// build directories.
func watchTree(w *fsnotify.Watcher, root string) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() {
			return nil
		}

		if path != root && (strings.HasPrefix(d.Name(), ".") || skipDirs[d.Name()]) {
			return filepath.SkipDir
		}

		return w.Add(path)
	})
	if err != nil {
		return fmt.Errorf("watching %s: %w", root, err)
	}

	return nil
}
