package tui

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// BoardWatcher reports edits to a board file. It watches the parent
// directory, since editors often replace a file instead of writing it in
// place, and coalesces bursts of events into one change.
type BoardWatcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	changes   chan struct{}
	done      chan struct{}
	mu        sync.Mutex
	timer     *time.Timer
	running   bool
	stopOnce  sync.Once
}

// NewBoardWatcher creates a watcher for the board at path. A debounce of
// zero or less uses 200ms.
func NewBoardWatcher(path string, debounce time.Duration) (*BoardWatcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fsWatcher.Close()
		return nil, err
	}
	return &BoardWatcher{
		fsWatcher: fsWatcher,
		path:      abs,
		debounce:  debounce,
		changes:   make(chan struct{}, 1),
		done:      make(chan struct{}),
	}, nil
}

// Path returns the absolute board path.
func (w *BoardWatcher) Path() string {
	return w.path
}

// Changes delivers one value per debounced burst of edits. It is closed
// by Stop.
func (w *BoardWatcher) Changes() <-chan struct{} {
	return w.changes
}

// Start begins watching.
func (w *BoardWatcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.fsWatcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	go w.processEvents()
	return nil
}

// Stop stops watching and closes Changes.
func (w *BoardWatcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()

		w.mu.Lock()
		w.running = false
		if w.timer != nil {
			w.timer.Stop()
		}
		close(w.changes)
		w.mu.Unlock()
	})
	return err
}

func (w *BoardWatcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			slog.Warn("board watcher", "path", w.path, "error", err)
		}
	}
}

func (w *BoardWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

func (w *BoardWatcher) fire() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	select {
	case w.changes <- struct{}{}:
	default:
		// a change is already pending
	}
}
