package scene

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/taigrr/scanline/pkg/logging"
)

// DefaultDebounce is how long a Watcher waits for writes to settle.
const DefaultDebounce = 150 * time.Millisecond

// Watcher reports edits to a set of files. Their directories are watched so
// editors that save by renaming a temporary file are still seen. A burst of
// events within the debounce window yields a single change.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration

	mu    sync.Mutex
	files map[string]struct{}
	dirs  map[string]struct{}

	changes chan string
	errors  chan error
	done    chan struct{}
	closed  bool
	wg      sync.WaitGroup
}

// NewWatcher starts watching paths.
func NewWatcher(paths []string, debounce time.Duration) (*Watcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{
		fs:       fsWatch,
		debounce: debounce,
		files:    make(map[string]struct{}),
		dirs:     make(map[string]struct{}),
		changes:  make(chan string, 1),
		errors:   make(chan error, 1),
		done:     make(chan struct{}),
	}
	if err := w.Watch(paths); err != nil {
		fsWatch.Close()
		return nil, err
	}
	w.wg.Add(1)
	go w.start()
	return w, nil
}

// Watch replaces the watched file set, for example after a scene reload
// pulled in different assets.
func (w *Watcher) Watch(paths []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return errors.New("watcher already closed")
	}

	files := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		files[abs] = struct{}{}
		dir := filepath.Dir(abs)
		if _, ok := w.dirs[dir]; ok {
			continue
		}
		if err := w.fs.Add(dir); err != nil {
			return err
		}
		w.dirs[dir] = struct{}{}
	}
	w.files = files
	return nil
}

// Changes delivers the path of the last file edited in each burst.
func (w *Watcher) Changes() <-chan string { return w.changes }

// Errors delivers watch errors. Errors arriving while one is pending are
// logged and dropped.
func (w *Watcher) Errors() <-chan error { return w.errors }

// Close stops the watcher and closes both channels.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.done)
	w.wg.Wait()
	return w.fs.Close()
}

func (w *Watcher) tracked(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.files[abs]
	return ok
}

func (w *Watcher) start() {
	defer w.wg.Done()
	defer close(w.changes)
	defer close(w.errors)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	var pending string

	for {
		select {
		case e, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 || !w.tracked(e.Name) {
				continue
			}
			pending = e.Name
			timer.Reset(w.debounce)

		case <-timer.C:
			logging.Logger().Info("scene file changed", "path", pending)
			select {
			case w.changes <- pending:
			default:
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logging.Logger().Warn("watch error", "err", err)
			select {
			case w.errors <- err:
			default:
			}

		case <-w.done:
			timer.Stop()
			return
		}
	}
}
