package plugin

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
)

// DefaultDebounce coalesces bursts of writes from editors.
const DefaultDebounce = 150 * time.Millisecond

// Watcher reports which extensions changed on disk. It never loads
// anything itself; the owner of the Lua states drains Changes and calls
// Manager.Reload.
type Watcher struct {
	mu      sync.Mutex
	root    string
	fsw     *fsnotify.Watcher
	delay   time.Duration
	pending map[string]*time.Timer
	changes chan string
	logger  hclog.Logger

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// NewWatcher watches root and each plugin directory directly beneath it.
// Changes are reported at most once per name per delay window.
func NewWatcher(root string, delay time.Duration, logger hclog.Logger) (*Watcher, error) {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(absRoot); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		root:    absRoot,
		fsw:     fsw,
		delay:   delay,
		pending: make(map[string]*time.Timer),
		changes: make(chan string, 64),
		logger:  logger,
		closeCh: make(chan struct{}),
	}

	entries, err := os.ReadDir(absRoot)
	if err != nil {
		_ = fsw.Close()
		return nil, err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			w.watchDir(filepath.Join(absRoot, entry.Name()))
		}
	}

	w.closedWg.Add(1)
	go w.processLoop()
	return w, nil
}

// Changes delivers the names of extensions whose files changed.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Drain returns every change reported so far without blocking.
func (w *Watcher) Drain() []string {
	var names []string
	seen := make(map[string]bool)
	for {
		select {
		case name, ok := <-w.changes:
			if !ok {
				return names
			}
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		default:
			return names
		}
	}
}

// Close stops the watcher and closes the Changes channel.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	for _, t := range w.pending {
		t.Stop()
	}
	w.pending = nil
	w.mu.Unlock()

	err := w.fsw.Close()
	w.closedWg.Wait()
	close(w.changes)
	return err
}

func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("plugin watcher error", "error", err)
		}
	}
}

// handle maps a filesystem event to the plugin directory it belongs to.
func (w *Watcher) handle(ev fsnotify.Event) {
	if ev.Op == fsnotify.Chmod {
		return
	}

	rel, err := filepath.Rel(w.root, ev.Name)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return
	}
	name := strings.Split(rel, string(filepath.Separator))[0]
	if strings.HasPrefix(name, ".") {
		return
	}

	// A new plugin directory needs its own watch.
	if ev.Op.Has(fsnotify.Create) && filepath.Dir(ev.Name) == w.root {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			w.watchDir(ev.Name)
		}
	}

	w.schedule(name)
}

func (w *Watcher) watchDir(dir string) {
	if err := w.fsw.Add(dir); err != nil {
		w.logger.Warn("cannot watch plugin directory", "dir", dir, "error", err)
	}
}

// schedule reports name after the debounce delay, restarting the delay
// on every new event.
func (w *Watcher) schedule(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if t, ok := w.pending[name]; ok {
		t.Reset(w.delay)
		return
	}
	w.pending[name] = time.AfterFunc(w.delay, func() { w.fire(name) })
}

func (w *Watcher) fire(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	delete(w.pending, name)

	select {
	case w.changes <- name:
		w.logger.Debug("plugin changed", "plugin", name)
	default:
		w.logger.Warn("plugin change dropped, queue full", "plugin", name)
	}
}
