// Package watch delivers debounced change notifications for a single
// document file. It watches the file's parent directory so the document
// survives the rename-then-replace save pattern editors use.
package watch

import (
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed is returned when operating on a closed watcher.
var ErrWatcherClosed = errors.New("watcher closed")

// DefaultDebounce coalesces the event bursts a single save produces.
const DefaultDebounce = 50 * time.Millisecond

// Event reports that the watched document changed.
type Event struct {
	Path      string
	Timestamp time.Time
}

// Stats is a snapshot of watcher counters.
type Stats struct {
	RawEvents int64
	Delivered int64
	Errors    int64
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet interval required before an event is
// delivered. Non-positive values keep the default.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// Watcher watches one document file and coalesces change bursts into
// single events.
type Watcher struct {
	path     string
	base     string
	debounce time.Duration

	fsw    *fsnotify.Watcher
	events chan Event
	errs   chan error

	rawEvents int64
	delivered int64
	errCount  int64

	mu      sync.Mutex
	closed  bool
	closeCh chan struct{}
	done    sync.WaitGroup
}

// New starts watching the document at path.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		base:     filepath.Base(abs),
		debounce: DefaultDebounce,
		fsw:      fsw,
		events:   make(chan Event, 16),
		errs:     make(chan error, 16),
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	// Watching the directory instead of the file keeps notifications
	// flowing after a save replaces the inode.
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w.done.Add(1)
	go w.loop()

	return w, nil
}

// Path returns the watched document path.
func (w *Watcher) Path() string {
	return w.path
}

// Events returns the debounced event channel.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the error channel.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Stats returns a snapshot of the watcher's counters.
func (w *Watcher) Stats() Stats {
	return Stats{
		RawEvents: atomic.LoadInt64(&w.rawEvents),
		Delivered: atomic.LoadInt64(&w.delivered),
		Errors:    atomic.LoadInt64(&w.errCount),
	}
}

// Close stops the watcher and closes its channels.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	err := w.fsw.Close()
	w.done.Wait()
	close(w.events)
	close(w.errs)
	return err
}

// loop filters directory events down to the watched file and debounces
// them: a timer restarts on every relevant event and delivery happens
// only after a quiet interval.
func (w *Watcher) loop() {
	defer w.done.Done()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.closeCh:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			atomic.AddInt64(&w.rawEvents, 1)
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
			atomic.AddInt64(&w.delivered, 1)
			select {
			case w.events <- Event{Path: w.path, Timestamp: time.Now()}:
			default:
				// Consumer is behind; the next change will retry.
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			atomic.AddInt64(&w.errCount, 1)
			select {
			case w.errs <- err:
			default:
			}
		}
	}
}

// relevant reports whether a directory event concerns the watched file
// and a content-affecting operation.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Base(ev.Name) != w.base {
		return false
	}
	return ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename)
}
