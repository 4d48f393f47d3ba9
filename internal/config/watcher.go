package config

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce is how long a config file must stay quiet before it
// is reloaded.
const DefaultWatchDebounce = 500 * time.Millisecond

// WatchOptions configures a Watcher.
type WatchOptions struct {
	// Debounce is the quiet period after the last change event.
	// Zero means DefaultWatchDebounce.
	Debounce time.Duration
	// OnReload receives every configuration that loads and validates.
	OnReload func(*Config)
	// OnError receives load, validation and watch errors. The previous
	// configuration stays in effect.
	OnError func(error)
}

// Watcher reloads a configuration file when its content changes.
type Watcher struct {
	fsw  *fsnotify.Watcher
	path string
	abs  string
	opts WatchOptions

	// last is the file content behind the configuration in effect.
	last []byte

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewWatcher watches the configuration file at path. The containing
// directory is watched rather than the file so that editors which save by
// renaming a temporary file are noticed.
func NewWatcher(path string, opts WatchOptions) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultWatchDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	last, _ := os.ReadFile(abs)
	return &Watcher{fsw: fsw, path: path, abs: abs, opts: opts, last: last}, nil
}

// Start runs the watch loop in a goroutine until ctx is done or Stop is
// called. Calling Start on a running watcher does nothing.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done != nil {
		return
	}
	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})
	go func() {
		defer close(w.done)
		w.run(ctx)
	}()
}

// Stop ends the watch loop, waits for it to exit and releases the
// underlying watcher. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.mu.Unlock()
	if cancel == nil {
		w.fsw.Close()
		return
	}
	cancel()
	<-done
}

func (w *Watcher) run(ctx context.Context) {
	defer w.fsw.Close()

	debounce := time.NewTimer(w.opts.Debounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.concerns(ev) {
				continue
			}
			debounce.Reset(w.opts.Debounce)

		case <-debounce.C:
			w.reload()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.fail(fmt.Errorf("watch %s: %w", w.path, err))
		}
	}
}

// concerns reports whether ev may have changed the watched file.
func (w *Watcher) concerns(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	name, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	return name == w.abs
}

// reload loads the file unless its content matches the configuration
// already in effect.
func (w *Watcher) reload() {
	data, err := os.ReadFile(w.abs)
	if err != nil {
		w.fail(fmt.Errorf("failed to read config file: %w", err))
		return
	}
	if w.last != nil && bytes.Equal(data, w.last) {
		return
	}
	cfg, err := Parse(data)
	if err != nil {
		w.fail(fmt.Errorf("%s: %w", w.path, err))
		return
	}
	w.last = data
	if w.opts.OnReload != nil {
		w.opts.OnReload(cfg)
	}
}

func (w *Watcher) fail(err error) {
	if w.opts.OnError != nil {
		w.opts.OnError(err)
	}
}
