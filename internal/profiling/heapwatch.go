package profiling

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/opd-ai/go-plotkit/pkg/toolkit"
)

// Byte sizes used by FormatBytes.
const (
	KB = 1024
	MB = KB * 1024
	GB = MB * 1024
)

// Snapshot is the memory state at one moment.
type Snapshot struct {
	Time        time.Time
	HeapAlloc   uint64
	HeapObjects uint64
	Goroutines  int
	NumGC       uint32
}

// TakeSnapshot reads the current memory state.
func TakeSnapshot() Snapshot {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return Snapshot{
		Time:        time.Now(),
		HeapAlloc:   ms.HeapAlloc,
		HeapObjects: ms.HeapObjects,
		Goroutines:  runtime.NumGoroutine(),
		NumGC:       ms.NumGC,
	}
}

// Growth is the change between two snapshots.
type Growth struct {
	Duration       time.Duration
	HeapDelta      int64
	ObjectsDelta   int64
	GoroutineDelta int
	BytesPerSec    float64
}

// Compare returns the growth from first to last. The rate is zero when
// the snapshots were taken at the same time.
func Compare(first, last Snapshot) Growth {
	g := Growth{
		Duration:       last.Time.Sub(first.Time),
		HeapDelta:      int64(last.HeapAlloc) - int64(first.HeapAlloc),
		ObjectsDelta:   int64(last.HeapObjects) - int64(first.HeapObjects),
		GoroutineDelta: last.Goroutines - first.Goroutines,
	}
	if g.Duration > 0 {
		g.BytesPerSec = float64(g.HeapDelta) / g.Duration.Seconds()
	}
	return g
}

// String implements fmt.Stringer.
func (g Growth) String() string {
	sign := "+"
	delta := g.HeapDelta
	if delta < 0 {
		sign, delta = "-", -delta
	}
	return fmt.Sprintf("heap %s%s over %s (%.2f KB/s), objects %+d, goroutines %+d",
		sign, FormatBytes(uint64(delta)), g.Duration.Round(time.Second),
		g.BytesPerSec/KB, g.ObjectsDelta, g.GoroutineDelta)
}

// WatchConfig configures a heap Watch.
type WatchConfig struct {
	// Interval is the time between snapshots.
	Interval time.Duration
	// Window is the number of snapshots compared, oldest against newest.
	Window int
	// LeakBytesPerSec is the sustained heap growth reported as a leak.
	LeakBytesPerSec float64
	// LeakGoroutines is the goroutine increase reported as a leak.
	LeakGoroutines int
}

// DefaultWatchConfig returns the settings plotdemo uses with -debug.
func DefaultWatchConfig() WatchConfig {
	return WatchConfig{
		Interval:        10 * time.Second,
		Window:          30,
		LeakBytesPerSec: MB,
		LeakGoroutines:  10,
	}
}

// Watch samples memory periodically and logs a warning when the heap or the
// goroutine count keeps growing across its window. Hot reloads that leak
// runtimes or sample buffers show up this way.
type Watch struct {
	config WatchConfig
	logger toolkit.Logger

	mu        sync.Mutex
	snapshots []Snapshot
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewWatch creates a watch. Zero config fields take their defaults.
func NewWatch(config WatchConfig, logger toolkit.Logger) *Watch {
	def := DefaultWatchConfig()
	if config.Interval <= 0 {
		config.Interval = def.Interval
	}
	if config.Window < 2 {
		config.Window = def.Window
	}
	if config.LeakBytesPerSec <= 0 {
		config.LeakBytesPerSec = def.LeakBytesPerSec
	}
	if config.LeakGoroutines <= 0 {
		config.LeakGoroutines = def.LeakGoroutines
	}
	if logger == nil {
		logger = toolkit.NopLogger()
	}
	return &Watch{config: config, logger: logger}
}

// Start samples in a goroutine until ctx is done or Stop is called.
// Starting a running watch does nothing.
func (w *Watch) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		return
	}
	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})
	go w.loop(ctx, w.done)
}

// Stop ends sampling and waits for the goroutine to exit.
func (w *Watch) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel, w.done = nil, nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (w *Watch) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	w.Record(TakeSnapshot())
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Record(TakeSnapshot())
		}
	}
}

// Record adds a snapshot, dropping the oldest beyond the window, and checks
// the window for growth. It returns the growth across the window and
// whether it was reported.
func (w *Watch) Record(s Snapshot) (Growth, bool) {
	w.mu.Lock()
	w.snapshots = append(w.snapshots, s)
	if len(w.snapshots) > w.config.Window {
		w.snapshots = w.snapshots[len(w.snapshots)-w.config.Window:]
	}
	if len(w.snapshots) < 2 {
		w.mu.Unlock()
		return Growth{}, false
	}
	g := Compare(w.snapshots[0], w.snapshots[len(w.snapshots)-1])
	w.mu.Unlock()

	w.logger.Debug("memory", "heap", FormatBytes(s.HeapAlloc), "goroutines", s.Goroutines)

	switch {
	case g.BytesPerSec > w.config.LeakBytesPerSec:
		w.logger.Warn("sustained heap growth", "growth", g.String())
	case g.GoroutineDelta > w.config.LeakGoroutines:
		w.logger.Warn("goroutine count keeps rising", "growth", g.String())
	default:
		return g, false
	}
	return g, true
}

// Snapshots returns a copy of the snapshots in the window.
func (w *Watch) Snapshots() []Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]Snapshot(nil), w.snapshots...)
}

// FormatBytes formats a byte count for humans.
func FormatBytes(bytes uint64) string {
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
