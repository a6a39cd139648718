package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a data directory and reports changed data files.
// Bursts of events are debounced into a single callback.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	config   *Config
	debounce *Debouncer

	// runMu keeps callbacks sequential.
	runMu sync.Mutex

	// State
	mu        sync.Mutex
	running   bool
	stopCh    chan struct{}
	doneCh    chan struct{}
	closeOnce sync.Once
}

// Config contains configuration for the watcher.
type Config struct {
	// Dir is the directory holding the data files.
	Dir string

	// Pattern is the glob data file base names must match (default: "*.csv").
	Pattern string

	// Exclude lists base names that never trigger a callback.
	Exclude []string

	// DebounceInterval is the quiet period after the last event before the
	// callback runs (default: 200ms).
	DebounceInterval time.Duration

	// SkipHidden ignores files whose name starts with a dot, such as editor
	// swap files.
	SkipHidden bool
}

// DefaultConfig returns the default watcher configuration.
func DefaultConfig() *Config {
	return &Config{
		Dir:              ".",
		Pattern:          "*.csv",
		DebounceInterval: 200 * time.Millisecond,
		SkipHidden:       true,
	}
}

// New creates a watcher. Nothing is watched until Watch is called.
func New(config *Config, logger *slog.Logger) (*Watcher, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Pattern == "" {
		config.Pattern = "*.csv"
	}
	if _, err := filepath.Match(config.Pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", config.Pattern, err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		watcher:  watcher,
		logger:   logger,
		config:   config,
		debounce: NewDebouncer(config.DebounceInterval),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Watch blocks until ctx is cancelled or Stop is called, calling onChange with
// the sorted paths of the data files changed since the previous call. Errors
// from onChange are logged and watching continues.
func (w *Watcher) Watch(ctx context.Context, onChange func(ctx context.Context, paths []string) error) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.doneCh)
	}()

	info, err := os.Stat(w.config.Dir)
	if err != nil {
		return fmt.Errorf("failed to watch directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("failed to watch directory: %s is not a directory", w.config.Dir)
	}
	if err := w.watcher.Add(w.config.Dir); err != nil {
		return fmt.Errorf("failed to watch directory %q: %w", w.config.Dir, err)
	}

	w.logger.Info("Watching data files",
		"dir", w.config.Dir,
		"pattern", w.config.Pattern,
		"debounce_ms", w.config.DebounceInterval.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Watcher stopped (context cancelled)")
			return nil

		case <-w.stopCh:
			w.logger.Info("Watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.shouldProcessEvent(event) {
				continue
			}

			w.logger.Debug("File event detected",
				"path", event.Name,
				"op", event.Op.String(),
			)

			w.debounce.Trigger(event.Name, func(paths []string) {
				if ctx.Err() != nil {
					return
				}
				w.runMu.Lock()
				defer w.runMu.Unlock()

				w.logger.Info("Data files changed", "files", len(paths))
				if err := onChange(ctx, paths); err != nil {
					w.logger.Error("Change handler failed", "error", err)
				}
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("Watcher error", "error", err)
		}
	}
}

// Stop stops watching, cancels any pending callback and releases the
// underlying watcher. It is safe to call more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	running := w.running
	w.mu.Unlock()

	var err error
	w.closeOnce.Do(func() {
		close(w.stopCh)
		if running {
			<-w.doneCh
		}
		w.debounce.Stop()
		if cerr := w.watcher.Close(); cerr != nil {
			err = fmt.Errorf("failed to close watcher: %w", cerr)
		}
	})
	return err
}

// shouldProcessEvent reports whether event concerns a data file.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}

	base := filepath.Base(event.Name)
	if w.config.SkipHidden && strings.HasPrefix(base, ".") {
		return false
	}
	if slices.Contains(w.config.Exclude, base) {
		return false
	}
	matched, err := filepath.Match(w.config.Pattern, base)
	return err == nil && matched
}

// Debouncer collects paths from rapid events and runs the callback once, with
// every collected path, after a quiet period.
type Debouncer struct {
	interval time.Duration
	timer    *time.Timer
	mu       sync.Mutex
	pending  map[string]struct{}
	callback func([]string)
	stopped  bool
}

// NewDebouncer creates a new debouncer.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{
		interval: interval,
		pending:  make(map[string]struct{}),
	}
}

// Trigger records path and restarts the quiet period. The most recent callback
// wins.
func (d *Debouncer) Trigger(path string, callback func([]string)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.pending[path] = struct{}{}
	d.callback = callback

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.stopped || len(d.pending) == 0 {
		d.mu.Unlock()
		return
	}
	paths := make([]string, 0, len(d.pending))
	for p := range d.pending {
		paths = append(paths, p)
	}
	clear(d.pending)
	cb := d.callback
	d.mu.Unlock()

	slices.Sort(paths)
	if cb != nil {
		cb(paths)
	}
}

// Stop cancels any pending callback. Later triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	clear(d.pending)
	d.callback = nil
}
