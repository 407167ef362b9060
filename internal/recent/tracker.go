// Package recent tracks the most recently resolved lookups.
package recent

import (
	"slices"
	"strings"
	"sync"
)

// DefaultCapacity is the number of words kept when none is configured.
const DefaultCapacity = 5

// Tracker is a bounded, de-duplicated, most-recent-first list of words.
// It is safe for concurrent use.
type Tracker struct {
	mu       sync.Mutex
	capacity int
	words    []string
	subs     map[int]chan []string
	nextSub  int
}

// NewTracker creates a Tracker holding up to capacity words. A non-positive
// capacity falls back to DefaultCapacity.
func NewTracker(capacity int) *Tracker {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Tracker{
		capacity: capacity,
		words:    make([]string, 0, capacity),
		subs:     make(map[int]chan []string),
	}
}

// Push moves word to the front, dropping any earlier case-insensitive
// duplicate and truncating to capacity.
func (t *Tracker) Push(word string) {
	word = strings.TrimSpace(word)
	if word == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if i := t.indexLocked(word); i >= 0 {
		t.words = slices.Delete(t.words, i, i+1)
	}
	t.words = slices.Insert(t.words, 0, word)
	if len(t.words) > t.capacity {
		t.words = t.words[:t.capacity]
	}
	t.publishLocked()
}

// Remove deletes word (case-insensitively). It reports whether it was present.
func (t *Tracker) Remove(word string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexLocked(strings.TrimSpace(word))
	if i < 0 {
		return false
	}
	t.words = slices.Delete(t.words, i, i+1)
	t.publishLocked()
	return true
}

// List returns a copy of the words, most recent first.
func (t *Tracker) List() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.words)
}

// Subscribe returns a channel that receives a snapshot of the list after
// every change, starting with the current one. Slow subscribers only see the
// latest snapshot. cancel closes the channel.
func (t *Tracker) Subscribe() (<-chan []string, func()) {
	ch := make(chan []string, 1)

	t.mu.Lock()
	id := t.nextSub
	t.nextSub++
	t.subs[id] = ch
	ch <- slices.Clone(t.words)
	t.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.subs, id)
			close(ch)
			t.mu.Unlock()
		})
	}
	return ch, cancel
}

func (t *Tracker) indexLocked(word string) int {
	return slices.IndexFunc(t.words, func(w string) bool {
		return strings.EqualFold(w, word)
	})
}

func (t *Tracker) publishLocked() {
	for _, ch := range t.subs {
		snapshot := slices.Clone(t.words)
		select {
		case ch <- snapshot:
		default:
			// Replace the stale snapshot nobody has read yet.
			select {
			case <-ch:
			default:
			}
			ch <- snapshot
		}
	}
}
