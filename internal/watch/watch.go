// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package watch follows a single file and reloads it when it changes.
package watch

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

// DefaultInterval is the minimum time between two reloads.
const DefaultInterval = 100 * time.Millisecond

// LoadFunc reads the watched file.
type LoadFunc[T any] func(path string) (T, error)

// UpdatedMsg carries a freshly loaded value.
type UpdatedMsg[T any] struct {
	Path  string
	Value T
}

// =============================================================================
// WATCHER
// =============================================================================

// Watcher reloads a file whenever it changes. Bursts of writes are
// coalesced: at most one reload happens per interval and only the newest
// result is kept for the consumer.
type Watcher[T any] struct {
	name    string
	path    string
	load    LoadFunc[T]
	watcher *fsnotify.Watcher
	limiter *rate.Limiter
	updates chan T
	ctx     context.Context
	cancel  context.CancelFunc
	once    sync.Once
}

// New creates a watcher for path. name prefixes log lines. A non-positive
// interval uses DefaultInterval.
func New[T any](name, path string, interval time.Duration, load LoadFunc[T]) (*Watcher[T], error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s path: %w", name, err)
	}
	if interval <= 0 {
		interval = DefaultInterval
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher[T]{
		name:    name,
		path:    abs,
		load:    load,
		watcher: fw,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		updates: make(chan T, 1),
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

// Path returns the absolute path being followed.
func (w *Watcher[T]) Path() string {
	return w.path
}

// Watch starts following the file. The parent directory is watched so that
// editors which replace the file by renaming are still seen.
func (w *Watcher[T]) Watch() error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	go w.processEvents()
	return nil
}

// Close stops watching and releases resources. It is safe to call more than
// once.
func (w *Watcher[T]) Close() error {
	var err error
	w.once.Do(func() {
		w.cancel()
		err = w.watcher.Close()
	})
	return err
}

// Updates delivers reloaded values.
func (w *Watcher[T]) Updates() <-chan T {
	return w.updates
}

// Next returns a command that waits for the next reload. The receiver of
// UpdatedMsg must call Next again to keep following. The command yields nil
// once the watcher is closed.
func (w *Watcher[T]) Next() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-w.ctx.Done():
			return nil
		case v := <-w.updates:
			return UpdatedMsg[T]{Path: w.path, Value: v}
		}
	}
}

func (w *Watcher[T]) processEvents() {
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if err := w.limiter.Wait(w.ctx); err != nil {
				return
			}
			w.drain()
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("%s: watch error: %v", w.name, err)
		}
	}
}

func (w *Watcher[T]) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// drain discards events queued while waiting on the limiter. The reload that
// follows reads the file after all of them.
func (w *Watcher[T]) drain() {
	for {
		select {
		case _, ok := <-w.watcher.Events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

func (w *Watcher[T]) reload() {
	v, err := w.load(w.path)
	if err != nil {
		// Writers often truncate before writing; the next event retries.
		log.Printf("%s: reload: %v", w.name, err)
		return
	}
	w.publish(v)
}

// publish replaces any unread value with v.
func (w *Watcher[T]) publish(v T) {
	for {
		select {
		case w.updates <- v:
			return
		default:
		}
		select {
		case <-w.updates:
		default:
		}
	}
}
