package prefabs

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// Watcher reports changed prefab and script files. Events are delivered on a
// buffered channel so the game loop can drain them between frames.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		watcher: fw,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 4),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Drain returns the base names of files changed since the last call, without
// blocking. Duplicates are collapsed.
func (w *Watcher) Drain() []string {
	if w == nil {
		return nil
	}
	var names []string
	seen := map[string]bool{}
	for {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return names
			}
			name := filepath.Base(path)
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		default:
			return names
		}
	}
}

// DrainErrors returns the watcher errors reported since the last call,
// without blocking.
func (w *Watcher) DrainErrors() []error {
	if w == nil {
		return nil
	}
	var errs []error
	for {
		select {
		case err, ok := <-w.Errors:
			if !ok || err == nil {
				return errs
			}
			errs = append(errs, err)
		default:
			return errs
		}
	}
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	pending := newDebounce(watchDebounce)
	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	arm := func(now time.Time) {
		if wait, ok := pending.next(now); ok {
			timer.Reset(wait)
		}
	}

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isSpecFile(event.Name) && !isScriptFile(event.Name) {
				continue
			}
			now := time.Now()
			pending.touch(event.Name, now)
			arm(now)
		case <-timer.C:
			now := time.Now()
			for _, name := range pending.ready(now) {
				select {
				case w.Events <- name:
				case <-w.closeCh:
					return
				default:
					// full; the reader will still see the earlier events
				}
			}
			arm(now)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// debounce holds a file back until it has been quiet for a full period, so an
// editor's truncate-then-write burst is reported once, after the last write.
type debounce struct {
	quiet   time.Duration
	pending map[string]time.Time
}

func newDebounce(quiet time.Duration) *debounce {
	return &debounce{quiet: quiet, pending: make(map[string]time.Time)}
}

func (d *debounce) touch(name string, now time.Time) {
	d.pending[name] = now
}

// ready removes and returns, sorted, the files quiet since now-quiet.
func (d *debounce) ready(now time.Time) []string {
	var names []string
	for name, last := range d.pending {
		if now.Sub(last) >= d.quiet {
			names = append(names, name)
			delete(d.pending, name)
		}
	}
	sort.Strings(names)
	return names
}

// next reports how long until the earliest pending file is ready.
func (d *debounce) next(now time.Time) (time.Duration, bool) {
	if len(d.pending) == 0 {
		return 0, false
	}
	var earliest time.Time
	for _, last := range d.pending {
		if earliest.IsZero() || last.Before(earliest) {
			earliest = last
		}
	}
	return max(earliest.Add(d.quiet).Sub(now), 0), true
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".tengo")
}
