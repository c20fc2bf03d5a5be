// Package watch rebuilds the index when content changes or on a schedule.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/devlog/internal/content"
	"git.home.luguber.info/inful/devlog/internal/logfields"
)

// Reasons passed to RebuildFunc.
const (
	ReasonChange   = "change"
	ReasonSchedule = "schedule"
)

// RebuildFunc performs one full rebuild.
type RebuildFunc func(ctx context.Context, reason string) error

// Watcher turns filesystem events and ticks into serialized rebuilds.
type Watcher struct {
	root     string
	debounce time.Duration
	interval time.Duration
	rebuild  RebuildFunc

	requests chan string

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a watcher for root. interval 0 disables periodic rebuilds.
func New(root string, debounce, interval time.Duration, rebuild RebuildFunc) *Watcher {
	return &Watcher{
		root:     root,
		debounce: debounce,
		interval: interval,
		rebuild:  rebuild,
		requests: make(chan string, 1),
	}
}

// Run watches until ctx is done. Rebuilds never overlap; requests arriving
// during a rebuild collapse into one follow-up rebuild.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = fsw.Close() }()
	if err := addDirsRecursive(fsw, w.root); err != nil {
		return err
	}

	if w.interval > 0 {
		sched, err := w.startScheduler()
		if err != nil {
			return err
		}
		defer func() {
			if err := sched.Shutdown(); err != nil {
				slog.Warn("Scheduler shutdown failed", logfields.Error(err))
			}
		}()
	}

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.worker(ctx)
	}()
	defer wg.Wait()
	defer cancel()
	defer w.stopTimer()

	slog.Info("Watching content", logfields.Path(w.root), slog.Duration("debounce", w.debounce))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fsw, ev)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) startScheduler() (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	_, err = s.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(func() { w.request(ReasonSchedule) }),
		gocron.WithName("periodic-rebuild"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to create periodic rebuild job: %w", err)
	}
	s.Start()
	slog.Info("Periodic rebuild scheduled", slog.Duration("interval", w.interval))
	return s, nil
}

func (w *Watcher) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case reason := <-w.requests:
			slog.Info("Rebuilding", slog.String("reason", reason))
			if err := w.rebuild(ctx, reason); err != nil {
				slog.Warn("rebuild failed", logfields.Error(err))
			}
		}
	}
}

// Trigger schedules a debounced rebuild.
func (w *Watcher) Trigger() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() { w.request(ReasonChange) })
}

func (w *Watcher) request(reason string) {
	select {
	case w.requests <- reason:
	default:
	}
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

func (w *Watcher) handleEvent(fsw *fsnotify.Watcher, ev fsnotify.Event) {
	if shouldIgnoreEvent(ev.Name) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(fsw, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	w.Trigger()
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("watch %s: %w", root, err)
			}
			return nil
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				slog.Warn("watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// shouldIgnoreEvent reports editor temp files and hidden entries.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	if content.IsHidden(base) {
		return true
	}
	return strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".tmp")
}
