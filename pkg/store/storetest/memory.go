// Package storetest provides an in-memory store.Persistence for tests.
package storetest

import (
	"context"
	"sort"
	"sync"

	"tableflip.dev/routine/pkg/day"
	"tableflip.dev/routine/pkg/geo"
	"tableflip.dev/routine/pkg/store"
)

// Memory is an in-memory implementation of store.Persistence.
type Memory struct {
	mu          sync.Mutex
	completions map[day.Key][]string
	locations   map[day.Key]geo.Coordinate
	events      chan store.Event

	// Error injection for testing
	CompletionsErr      error
	StoreCompletionsErr error
	LocationErr         error
	StoreLocationErr    error

	// Writes counts successful StoreCompletions calls.
	Writes int
}

// NewMemory returns an empty Memory.
func NewMemory() *Memory {
	return &Memory{
		completions: make(map[day.Key][]string),
		locations:   make(map[day.Key]geo.Coordinate),
	}
}

// Completions implements store.Persistence.
func (m *Memory) Completions(d day.Key) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CompletionsErr != nil {
		return []string{}, m.CompletionsErr
	}
	ids, ok := m.completions[d]
	if !ok {
		return []string{}, nil
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out, nil
}

// HasCompletions reports whether a record exists for d.
func (m *Memory) HasCompletions(d day.Key) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.completions[d]
	return ok
}

// StoreCompletions implements store.Persistence.
func (m *Memory) StoreCompletions(d day.Key, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StoreCompletionsErr != nil {
		return m.StoreCompletionsErr
	}
	cp := make([]string, len(ids))
	copy(cp, ids)
	m.completions[d] = cp
	m.Writes++
	m.notify(store.Event{Type: store.EventCompletionsChanged, Day: d})
	return nil
}

// DeleteCompletions implements store.Persistence.
func (m *Memory) DeleteCompletions(d day.Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.completions, d)
	m.notify(store.Event{Type: store.EventCompletionsChanged, Day: d})
	return nil
}

// Location implements store.Persistence.
func (m *Memory) Location(d day.Key) (geo.Coordinate, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LocationErr != nil {
		return geo.Coordinate{}, false, m.LocationErr
	}
	c, ok := m.locations[d]
	return c, ok, nil
}

// StoreLocation implements store.Persistence.
func (m *Memory) StoreLocation(d day.Key, c geo.Coordinate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StoreLocationErr != nil {
		return m.StoreLocationErr
	}
	m.locations[d] = c
	m.notify(store.Event{Type: store.EventLocationChanged, Day: d})
	return nil
}

// DeleteLocation implements store.Persistence.
func (m *Memory) DeleteLocation(d day.Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locations, d)
	m.notify(store.Event{Type: store.EventLocationChanged, Day: d})
	return nil
}

// LocationDays implements store.Persistence.
func (m *Memory) LocationDays(_ context.Context) []day.Key {
	m.mu.Lock()
	defer m.mu.Unlock()
	days := make([]day.Key, 0, len(m.locations))
	for d := range m.locations {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}

// Watch implements store.Persistence. Only one watcher is supported.
func (m *Memory) Watch(ctx context.Context) (<-chan store.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan store.Event, 64)
	m.events = ch
	go func() {
		<-ctx.Done()
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.events == ch {
			m.events = nil
		}
		close(ch)
	}()
	return ch, nil
}

func (m *Memory) notify(ev store.Event) {
	if m.events == nil {
		return
	}
	select {
	case m.events <- ev:
	default:
	}
}

var _ store.Persistence = (*Memory)(nil)
