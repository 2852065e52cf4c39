package store

import (
	"strings"
	"sync"
)

// Commit describes one published mutation.
type Commit struct {
	Version int64
	Paths   []string // positional paths of the nodes the mutation touched
}

// Watcher receives the commits touching paths below Prefix.
// If the watcher can't keep up (Events is full), the watch is failed
// and the Failed channel is closed.
type Watcher struct {
	Prefix string
	Events chan *Commit
	Failed chan struct{}

	failOnce sync.Once
}

// NewWatcher creates a watcher with a buffered Events channel.
func NewWatcher(prefix string, buffer int) *Watcher {
	if buffer < 1 {
		buffer = 1
	}
	return &Watcher{
		Prefix: prefix,
		Events: make(chan *Commit, buffer),
		Failed: make(chan struct{}),
	}
}

func (w *Watcher) fail() {
	w.failOnce.Do(func() { close(w.Failed) })
}

func (w *Watcher) wants(c *Commit) bool {
	if w.Prefix == "" {
		return true
	}
	for _, p := range c.Paths {
		// a commit above the prefix may have changed what is below it
		if strings.HasPrefix(p, w.Prefix) || strings.HasPrefix(w.Prefix, p) {
			return true
		}
	}
	return false
}

// WatchHub fans commits out to watchers.
// It is safe for concurrent use.
type WatchHub struct {
	mu       sync.RWMutex
	watchers map[*Watcher]struct{}
}

func NewWatchHub() *WatchHub {
	return &WatchHub{watchers: make(map[*Watcher]struct{})}
}

func (h *WatchHub) Watch(w *Watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.watchers[w] = struct{}{}
}

// Unwatch removes a watcher. The caller is responsible for draining
// Events.
func (h *WatchHub) Unwatch(w *Watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.watchers, w)
}

// Broadcast sends c to every interested watcher without blocking.
func (h *WatchHub) Broadcast(c *Commit) {
	var failed []*Watcher
	h.mu.RLock()
	for w := range h.watchers {
		if !w.wants(c) {
			continue
		}
		select {
		case w.Events <- c:
		default:
			failed = append(failed, w)
		}
	}
	h.mu.RUnlock()
	if len(failed) == 0 {
		return
	}
	h.mu.Lock()
	for _, w := range failed {
		delete(h.watchers, w)
		w.fail()
	}
	h.mu.Unlock()
}
