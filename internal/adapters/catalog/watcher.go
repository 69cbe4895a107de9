package catalog

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses editor save bursts into one reload
const DefaultDebounce = 100 * time.Millisecond

// ErrWatcherStopped is returned by Start once the watcher has been stopped
var ErrWatcherStopped = errors.New("catalog watcher stopped")

// Watcher calls OnChange after the catalog file settles following a write, create or rename.
// The parent directory is watched so that editors which replace the file atomically are seen.
type Watcher struct {
	Path     string
	Debounce time.Duration
	OnChange func()

	done    chan struct{}
	watcher *fsnotify.Watcher
	mu      sync.Mutex
	started bool
	stopped bool
}

// NewWatcher creates a watcher for one catalog file
func NewWatcher(path string, onChange func()) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		Path:     abs,
		Debounce: DefaultDebounce,
		OnChange: onChange,
		done:     make(chan struct{}),
		watcher:  fw,
	}, nil
}

// Start begins watching. A failed start releases the fsnotify watcher; Stop is still safe to call.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return ErrWatcherStopped
	}
	if w.started {
		return nil
	}
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		w.stopped = true
		_ = w.watcher.Close()
		close(w.done)
		return err
	}
	w.started = true
	go w.loop()
	return nil
}

// Stop closes the watcher and waits for the loop to exit. It never blocks when the loop was
// never started, and later calls do nothing.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	started := w.started
	w.mu.Unlock()

	_ = w.watcher.Close()
	if started {
		<-w.done
		return
	}
	close(w.done)
}

func (w *Watcher) loop() {
	defer close(w.done)

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	var pending time.Time
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.Path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= debounce {
				pending = time.Time{}
				if w.OnChange != nil {
					w.OnChange()
				}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal; the last good snapshot stays live.
		}
	}
}
