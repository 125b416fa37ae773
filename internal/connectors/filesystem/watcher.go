// Package filesystem watches local documents for changes.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/voxrag/internal/logger"
)

// Debounce defaults. Events are coalesced until Debounce passes without a new
// one, but never held longer than MaxWait after the first.
const (
	DefaultDebounce = 200 * time.Millisecond
	DefaultMaxWait  = time.Second
)

// ErrClosed is returned when Watch is called after Close.
var ErrClosed = errors.New("watcher closed")

// ChangeType describes what happened to a watched file.
type ChangeType string

// Change types.
const (
	ChangeCreated ChangeType = "created"
	ChangeUpdated ChangeType = "updated"
	ChangeDeleted ChangeType = "deleted"
)

// Change is a single file event.
type Change struct {
	Type ChangeType
	Path string
}

// Watcher reports changes to one file, or to every visible file in a directory.
// Watching the parent directory keeps the watch alive when editors replace
// the file by rename.
type Watcher struct {
	path     string
	dir      string
	single   bool
	Debounce time.Duration
	MaxWait  time.Duration

	mu     sync.Mutex
	closed bool
	fsw    *fsnotify.Watcher
}

// New creates a watcher for path.
func New(path string) *Watcher {
	return &Watcher{path: filepath.Clean(path), Debounce: DefaultDebounce, MaxWait: DefaultMaxWait}
}

// Watch starts watching. The channel closes when ctx is cancelled or the
// watcher is closed.
func (w *Watcher) Watch(ctx context.Context) (<-chan Change, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, ErrClosed
	}

	info, err := os.Stat(w.path)
	if err != nil {
		return nil, fmt.Errorf("watch path error: %w", err)
	}
	w.single = !info.IsDir()
	w.dir = w.path
	if w.single {
		w.dir = filepath.Dir(w.path)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(w.dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.fsw = fsw

	out := make(chan Change)
	go w.loop(ctx, fsw, out)
	return out, nil
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, out chan<- Change) {
	defer close(out)

	pending := make(map[string]Change)
	var deadline time.Time
	timer := time.NewTimer(w.Debounce)
	timer.Stop()

	flush := func() bool {
		for path, change := range pending {
			delete(pending, path)
			select {
			case out <- change:
			case <-ctx.Done():
				return false
			}
		}
		return true
	}

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				flush()
				return
			}
			change := w.handleFsEvent(event)
			if change == nil {
				continue
			}
			if len(pending) == 0 {
				deadline = time.Now().Add(max(w.MaxWait, w.Debounce))
			}
			pending[change.Path] = *change
			timer.Reset(min(w.Debounce, time.Until(deadline)))
		case err, ok := <-fsw.Errors:
			if !ok {
				flush()
				return
			}
			logger.Warn("watch %s: %v", w.dir, err)
		case <-timer.C:
			if !flush() {
				return
			}
		}
	}
}

// handleFsEvent maps a raw event onto a Change, or nil when it is not relevant.
func (w *Watcher) handleFsEvent(event fsnotify.Event) *Change {
	path := filepath.Clean(event.Name)
	if w.single && path != w.path {
		return nil
	}
	if isHidden(filepath.Base(path)) {
		return nil
	}

	switch {
	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		return &Change{Type: ChangeDeleted, Path: path}
	case event.Op.Has(fsnotify.Create), event.Op.Has(fsnotify.Write):
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			return nil
		}
		if event.Op.Has(fsnotify.Create) {
			return &Change{Type: ChangeCreated, Path: path}
		}
		return &Change{Type: ChangeUpdated, Path: path}
	default:
		return nil
	}
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	if w.fsw != nil {
		return w.fsw.Close()
	}
	return nil
}

// isHidden reports whether a file name is a dotfile or an editor swap file.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~")
}
