// Package watch reports edits to a fixed set of files, for reloading
// shaders while the demo runs.
package watch

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher collects changed paths in the background; the render loop
// drains them with Changed.
//
// Directories are watched rather than files because most editors save by
// replacing the file, which drops a per-file watch.
type Watcher struct {
	fs    *fsnotify.Watcher
	files map[string]struct{}
	log   *slog.Logger

	mu      sync.Mutex
	pending map[string]struct{}
	order   []string

	done chan struct{}
}

// New starts watching paths.
func New(paths []string, log *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fs:      fw,
		files:   map[string]struct{}{},
		log:     log,
		pending: map[string]struct{}{},
		done:    make(chan struct{}),
	}

	dirs := map[string]struct{}{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, err
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, err
		}
	}

	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil {
				continue
			}
			if _, ok := w.files[abs]; !ok {
				continue
			}
			w.mu.Lock()
			if _, seen := w.pending[abs]; !seen {
				w.pending[abs] = struct{}{}
				w.order = append(w.order, abs)
			}
			w.mu.Unlock()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("file watch error", "err", err)
		}
	}
}

// Changed returns the files modified since the last call, once each, in
// the order they were first seen. It never blocks.
func (w *Watcher) Changed() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.order) == 0 {
		return nil
	}
	out := w.order
	w.order = nil
	w.pending = map[string]struct{}{}
	return out
}

// Close stops watching and waits for the background goroutine.
func (w *Watcher) Close() error {
	err := w.fs.Close()
	<-w.done
	return err
}
