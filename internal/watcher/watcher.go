// Package watcher reports modifications of the open file made by other
// processes.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors a single file and sends a debounced notification when
// it is written or recreated.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debounce  time.Duration
	quiet     time.Duration
	events    chan struct{}
	done      chan struct{}

	mu      sync.Mutex
	path    string
	savedAt time.Time
}

type Option func(*Watcher)

// WithDebounce sets how long events must settle before a notification.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithQuietPeriod sets how long after Saved changes are attributed to the
// editor itself and not reported.
func WithQuietPeriod(d time.Duration) Option {
	return func(w *Watcher) { w.quiet = d }
}

// New starts watching path. The directory is watched, so the file may be
// replaced by a rename or not exist yet.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	dir := filepath.Dir(abs)
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}

	w := &Watcher{
		fsWatcher: fsw,
		path:      abs,
		debounce:  100 * time.Millisecond,
		quiet:     time.Second,
		events:    make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	go w.loop()

	return w, nil
}

// Events receives one value per settled burst of external changes.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Saved marks the file as being written by the editor. Call it before the
// write so the resulting events are never reported.
func (w *Watcher) Saved() {
	w.mu.Lock()
	w.savedAt = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) recentlySaved() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return time.Since(w.savedAt) < w.quiet
}

// Watch moves the watcher to path, as after saving under a new name.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if abs == w.path {
		return nil
	}

	oldDir, newDir := filepath.Dir(w.path), filepath.Dir(abs)
	if newDir != oldDir {
		if err := w.fsWatcher.Add(newDir); err != nil {
			return fmt.Errorf("watching directory %s: %w", newDir, err)
		}
		_ = w.fsWatcher.Remove(oldDir)
	}
	w.path = abs
	return nil
}

// Close terminates the watcher and releases resources.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsWatcher.Close()
}

// loop processes file system events with debouncing.
func (w *Watcher) loop() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) || w.recentlySaved() {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if w.recentlySaved() {
				continue
			}
			select {
			case w.events <- struct{}{}:
			default:
			}

		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return filepath.Clean(event.Name) == w.path
}
