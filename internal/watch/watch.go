// Package watch re-runs deduplication whenever an input file changes.
//
// It wraps an fsnotify watcher with write-event debouncing and survives
// editors that replace the file on save (remove/rename followed by create).
package watch

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/link-foundation/deduplino/internal/lino"
)

// DefaultDebounce coalesces bursts of write events from a single save.
const DefaultDebounce = 200 * time.Millisecond

// Options configures the watcher behavior.
type Options struct {
	FilePath string                  // Path to the watched input file
	Debounce time.Duration           // Quiet period before re-running
	Initial  bool                    // Run once before waiting for changes
	Process  func(text string) error // Called with file contents on each run
}

// Watcher re-runs a processing function on file changes.
type Watcher struct {
	opts    Options
	watcher *fsnotify.Watcher
}

// New creates a new Watcher with the given options.
func New(opts Options) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	return &Watcher{opts: opts}
}

// Run starts watching. It blocks until the context is cancelled or an error
// occurs.
func (w *Watcher) Run(ctx context.Context) error {
	if _, err := os.Stat(w.opts.FilePath); err != nil {
		return fmt.Errorf("cannot watch file: %w", err)
	}

	if w.opts.Initial {
		if err := w.process(); err != nil {
			return err
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to setup watcher: %w", err)
	}
	w.watcher = watcher
	defer w.watcher.Close()

	if err := w.watcher.Add(w.opts.FilePath); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.opts.FilePath, err)
	}

	return w.watch(ctx)
}

// watch runs the event loop with write debouncing.
func (w *Watcher) watch(ctx context.Context) error {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-fire:
			fire = nil
			if err := w.process(); err != nil {
				return err
			}

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher closed unexpectedly")
			}
			rerun, err := w.handleEvent(ctx, event)
			if err != nil {
				return err
			}
			if rerun {
				if timer == nil {
					timer = time.NewTimer(w.opts.Debounce)
				} else {
					timer.Reset(w.opts.Debounce)
				}
				fire = timer.C
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

// handleEvent classifies a file system event, reporting whether a re-run
// should be scheduled.
func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) (bool, error) {
	switch {
	case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
		return true, nil

	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		// Atomic-save editors replace the file; wait for it to reappear.
		if err := w.reattach(ctx); err != nil {
			return false, err
		}
		return true, nil
	}

	return false, nil
}

// reattach waits for a replaced file to reappear and re-adds it to the
// watcher.
func (w *Watcher) reattach(ctx context.Context) error {
	timeout := time.After(10 * time.Second)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timeout:
			return fmt.Errorf("timeout waiting for %s to reappear", w.opts.FilePath)
		case <-ticker.C:
			if _, err := os.Stat(w.opts.FilePath); err != nil {
				continue
			}
			if err := w.watcher.Add(w.opts.FilePath); err != nil {
				return fmt.Errorf("failed to re-watch file: %w", err)
			}
			return nil
		}
	}
}

// process reads the current file contents and hands them to the callback.
func (w *Watcher) process() error {
	text, err := lino.ReadFile(w.opts.FilePath)
	if err != nil {
		return err
	}
	return w.opts.Process(text)
}
