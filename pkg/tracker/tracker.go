// Package tracker records which routine tasks are done on the current day.
package tracker

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"tableflip.dev/routine/pkg/day"
	"tableflip.dev/routine/pkg/schedule"
	"tableflip.dev/routine/pkg/store"
)

var (
	// ErrUnknownTask is returned when toggling an id the schedule does not have.
	ErrUnknownTask = errors.New("tracker: unknown task")
	// ErrNoPersistence is returned when the tracker has no store.
	ErrNoPersistence = errors.New("tracker: no persistence configured")
)

// CompletionSet is the set of task ids completed on one day, in the order
// they were completed.
type CompletionSet struct {
	Day day.Key
	ids []string
}

// NewCompletionSet builds a set from ids, dropping duplicates.
func NewCompletionSet(d day.Key, ids []string) CompletionSet {
	cs := CompletionSet{Day: d, ids: make([]string, 0, len(ids))}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup || id == "" {
			continue
		}
		seen[id] = struct{}{}
		cs.ids = append(cs.ids, id)
	}
	return cs
}

// Has reports membership.
func (c CompletionSet) Has(id string) bool {
	for _, v := range c.ids {
		if v == id {
			return true
		}
	}
	return false
}

// IDs returns a copy of the members in completion order.
func (c CompletionSet) IDs() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

// Len is the number of members, including ids the schedule no longer has.
func (c CompletionSet) Len() int { return len(c.ids) }

// CountIn counts members that are tasks of s. Ids left over from an older
// schedule are never counted.
func (c CompletionSet) CountIn(s *schedule.Schedule) int {
	n := 0
	for _, id := range c.ids {
		if s.Has(id) {
			n++
		}
	}
	return n
}

// Tracker owns the completion set for the current day. Every mutation is
// written through to the store before it returns.
type Tracker struct {
	Persistence store.Persistence
	Schedule    *schedule.Schedule
	Clock       day.Clock
	Logger      *log.Logger

	mu      sync.Mutex
	current CompletionSet
	loaded  bool
}

// DayKey returns today's key. It is recomputed on every call.
func (t *Tracker) DayKey() day.Key {
	return day.Today(t.Clock)
}

// Load reads the persisted set for d. A missing or unreadable record yields
// an empty set; Load never fails.
func (t *Tracker) Load(d day.Key) CompletionSet {
	if t.Persistence == nil {
		return NewCompletionSet(d, nil)
	}
	ids, err := t.Persistence.Completions(d)
	if err != nil {
		t.logger().Warn("completion record unreadable, starting empty", "day", d, "err", err)
		return NewCompletionSet(d, nil)
	}
	return NewCompletionSet(d, ids)
}

// Completed returns today's set, loading it on first use or after the day
// key changed.
func (t *Tracker) Completed() CompletionSet {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.currentLocked()
}

func (t *Tracker) currentLocked() CompletionSet {
	today := t.DayKey()
	if !t.loaded || t.current.Day != today {
		t.current = t.Load(today)
		t.loaded = true
	}
	return t.current
}

// Toggle flips id in today's set, persists the new set, and returns whether
// id is now complete.
func (t *Tracker) Toggle(id string) (bool, error) {
	if t.Persistence == nil {
		return false, ErrNoPersistence
	}
	if t.Schedule != nil && !t.Schedule.Has(id) {
		return false, fmt.Errorf("%w: %s", ErrUnknownTask, id)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	cur := t.currentLocked()
	ids := cur.IDs()
	done := !cur.Has(id)
	if done {
		ids = append(ids, id)
	} else {
		ids = remove(ids, id)
	}

	if err := t.Persistence.StoreCompletions(cur.Day, ids); err != nil {
		return !done, fmt.Errorf("tracker: persist %s: %w", cur.Day, err)
	}
	t.current = NewCompletionSet(cur.Day, ids)
	return done, nil
}

// Reset clears today's set and removes its record.
func (t *Tracker) Reset() error {
	if t.Persistence == nil {
		return ErrNoPersistence
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	today := t.DayKey()
	if err := t.Persistence.DeleteCompletions(today); err != nil {
		return fmt.Errorf("tracker: reset %s: %w", today, err)
	}
	t.current = NewCompletionSet(today, nil)
	t.loaded = true
	return nil
}

// Forget drops the in-memory set so the next read reloads from the store.
func (t *Tracker) Forget() {
	t.mu.Lock()
	t.loaded = false
	t.current = CompletionSet{}
	t.mu.Unlock()
}

func (t *Tracker) logger() *log.Logger {
	if t.Logger == nil {
		return log.Default()
	}
	return t.Logger
}

func remove(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
