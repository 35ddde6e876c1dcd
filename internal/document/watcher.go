package document

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultSettle = 80 * time.Millisecond

// Watcher reports settled content changes for one document file or for
// the markdown files directly inside one directory (non-recursive).
// Editors commonly save by writing a temp file and renaming it into
// place, so for a file target the parent directory is watched and
// events are filtered by name. Event runs within one settle period
// collapse into a single callback carrying every path that changed.
type Watcher struct {
	path     string
	dir      bool
	settle   time.Duration
	onChange func(paths []string)
	log      *zap.Logger

	fw     *fsnotify.Watcher
	stopCh chan struct{}
	doneCh chan struct{}

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer
	started bool
	stopped bool
}

// NewWatcher prepares a watcher for path, which may name a file or a
// directory. The callback runs off the watcher's timer goroutine once
// events settle. settle <= 0 selects a short default.
func NewWatcher(path string, settle time.Duration, onChange func(paths []string), logger *zap.Logger) (*Watcher, error) {
	if settle <= 0 {
		settle = defaultSettle
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve document path: %w", err)
	}
	dir := false
	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		dir = true
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fs watcher: %w", err)
	}
	return &Watcher{
		path:     abs,
		dir:      dir,
		settle:   settle,
		onChange: onChange,
		log:      logger,
		fw:       fw,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		pending:  map[string]struct{}{},
	}, nil
}

// Path returns the absolute path under watch.
func (w *Watcher) Path() string {
	return w.path
}

// Dir reports whether the watch target is a directory.
func (w *Watcher) Dir() bool {
	return w.dir
}

// Start begins delivering callbacks.
func (w *Watcher) Start() error {
	target := w.path
	if !w.dir {
		target = filepath.Dir(w.path)
	}
	if err := w.fw.Add(target); err != nil {
		return fmt.Errorf("watch %s: %w", target, err)
	}
	w.mu.Lock()
	w.started = true
	w.mu.Unlock()
	go w.run()
	return nil
}

// Stop tears the watcher down and waits for the event loop to exit. No
// new callbacks start after Stop returns; one already in flight may
// still complete.
func (w *Watcher) Stop() {
	w.mu.Lock()
	w.stopped = true
	started := w.started
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()

	close(w.stopCh)
	if started {
		<-w.doneCh
	}

	if err := w.fw.Close(); err != nil {
		w.log.Warn("close fs watcher", zap.Error(err))
	}
}

func (w *Watcher) run() {
	defer close(w.doneCh)

	for {
		select {
		case <-w.stopCh:
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !w.wants(ev.Name) {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.log.Debug("document event",
				zap.String("op", ev.Op.String()),
				zap.String("name", ev.Name))
			w.bump(ev.Name)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.log.Warn("fs watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) wants(name string) bool {
	if w.dir {
		return strings.EqualFold(filepath.Ext(name), ".md")
	}
	return filepath.Base(name) == filepath.Base(w.path)
}

// bump records the changed path and resets the settle timer.
func (w *Watcher) bump(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	w.pending[name] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.settle, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.timer = nil
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = map[string]struct{}{}
	w.mu.Unlock()

	if len(paths) == 0 || w.onChange == nil {
		return
	}
	sort.Strings(paths)
	w.onChange(paths)
}
