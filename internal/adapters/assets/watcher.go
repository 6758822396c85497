package assets

import (
	"context"
	"io/fs"
	"iter"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/mazerepair/internal/core/domain"
	"go.trai.ch/mazerepair/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Lifecycle = (*Watcher)(nil)

// Watcher invalidates cached assets when files under the static directory change.
type Watcher struct {
	root  string
	store *Store
	log   ports.Logger

	mu        sync.Mutex
	fsWatcher *fsnotify.Watcher
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewWatcher creates a watcher for root. Nothing is acquired until Start.
func NewWatcher(root string, store *Store, log ports.Logger) *Watcher {
	return &Watcher{root: root, store: store, log: log}
}

// Name identifies the watcher in logs.
func (w *Watcher) Name() string {
	return "asset-watcher"
}

// Start begins watching the static directory recursively.
func (w *Watcher) Start(_ context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsWatcher != nil {
		return zerr.With(domain.ErrAlreadyStarted, "component", w.Name())
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWatcherFailed.Error()), "dir", w.root)
	}

	for dir := range watchRecursively(w.root) {
		if err := fsWatcher.Add(dir); err != nil {
			_ = fsWatcher.Close()
			return zerr.With(zerr.Wrap(err, domain.ErrWatcherFailed.Error()), "dir", dir)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.fsWatcher = fsWatcher
	w.cancel = cancel
	w.done = make(chan struct{})

	go w.processEvents(ctx, fsWatcher, w.done)
	return nil
}

// Stop closes the underlying watcher and waits for the event loop to exit.
func (w *Watcher) Stop(_ context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsWatcher == nil {
		return nil
	}

	w.cancel()
	err := w.fsWatcher.Close()
	<-w.done

	w.fsWatcher = nil
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrShutdownFailed.Error()), "component", w.Name())
	}
	return nil
}

func (w *Watcher) processEvents(ctx context.Context, fsWatcher *fsnotify.Watcher, done chan<- struct{}) {
	defer close(done)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return
			}
			w.handle(fsWatcher, event)
		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("static directory watch error", "error", err.Error())
		}
	}
}

func (w *Watcher) handle(fsWatcher *fsnotify.Watcher, event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		return
	}
	w.store.Invalidate(filepath.ToSlash(rel))
	w.log.Debug("static asset changed", "path", filepath.ToSlash(rel), "op", event.Op.String())

	if event.Has(fsnotify.Create) {
		for dir := range watchRecursively(event.Name) {
			_ = fsWatcher.Add(dir)
		}
	}
}

// watchRecursively yields root and every directory below it.
func watchRecursively(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // unreadable directories are skipped
			}
			if d.IsDir() && !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}
