// Package watch turns file-system activity on a database file into
// coalesced change notifications for the console's live reload.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/fleetdesk/internal/logger"
)

// DefaultInterval is the minimum spacing between two notifications.
const DefaultInterval = 500 * time.Millisecond

// Watcher observes a database file and its journal siblings
// (fleet.db-wal, fleet.db-shm, fleet.db-journal).
type Watcher struct {
	fs      *fsnotify.Watcher
	base    string
	limiter *rate.Limiter
	changes chan struct{}
}

// New creates a watcher for dbPath. Bursts of writes closer together than
// interval produce a single notification.
func New(dbPath string, interval time.Duration) (*Watcher, error) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	// The directory is watched because SQLite replaces and recreates the
	// journal files.
	if err := fsw.Add(filepath.Dir(dbPath)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(dbPath), err)
	}
	return &Watcher{
		fs:      fsw,
		base:    filepath.Base(dbPath),
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		changes: make(chan struct{}, 1),
	}, nil
}

// Changes delivers one value per coalesced burst of writes. A notification
// that is not consumed absorbs later ones.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Run processes file-system events until ctx is done or the watcher is
// closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			if err := w.limiter.Wait(ctx); err != nil {
				return err
			}
			w.drain()
			logger.Debug("database changed: %s %s", ev.Op, filepath.Base(ev.Name))
			w.notify()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// relevant reports whether ev touches the database or its journals.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod || ev.Op == 0 {
		return false
	}
	return strings.HasPrefix(filepath.Base(ev.Name), w.base)
}

// drain discards events that queued up while the limiter was waiting.
func (w *Watcher) drain() {
	for {
		select {
		case _, ok := <-w.fs.Events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

func (w *Watcher) notify() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}
