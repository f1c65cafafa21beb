// Package rollover detects when the local calendar day changes while the
// process is running.
package rollover

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"tableflip.dev/routine/pkg/day"
)

// DefaultInterval is how often the day key is re-checked between midnights.
// It catches clock changes and sleeps the midnight timer misses.
const DefaultInterval = time.Minute

// midnightSlack is added to the midnight timer so it never fires early.
const midnightSlack = 100 * time.Millisecond

// Monitor calls OnRollover once for every change of the day key.
type Monitor struct {
	Clock      day.Clock
	Interval   time.Duration
	OnRollover func(old, new day.Key)
	Logger     *log.Logger

	mu      sync.Mutex
	current day.Key
}

// Current returns the day key the monitor last observed.
func (m *Monitor) Current() day.Key {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Check compares the day key of now to the last one observed and fires
// OnRollover when it changed. The first call only records the key. Calling
// Check again with the same day is a no-op.
func (m *Monitor) Check(now time.Time) bool {
	next := day.Of(now)

	m.mu.Lock()
	if m.current == "" {
		m.current = next
		m.mu.Unlock()
		return false
	}
	if m.current == next {
		m.mu.Unlock()
		return false
	}
	old := m.current
	m.current = next
	m.mu.Unlock()

	m.logger().Info("day rolled over", "from", old, "to", next)
	if m.OnRollover != nil {
		m.OnRollover(old, next)
	}
	return true
}

// Run blocks until ctx is done, checking at local midnight and every
// Interval.
func (m *Monitor) Run(ctx context.Context) error {
	clock := m.Clock
	if clock == nil {
		clock = day.SystemClock{}
	}
	interval := m.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	m.Check(clock.Now())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	midnight := time.NewTimer(day.UntilMidnight(clock.Now()) + midnightSlack)
	defer midnight.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.Check(clock.Now())
		case <-midnight.C:
			m.Check(clock.Now())
			midnight.Reset(day.UntilMidnight(clock.Now()) + midnightSlack)
		}
	}
}

func (m *Monitor) logger() *log.Logger {
	if m.Logger == nil {
		return log.Default()
	}
	return m.Logger
}
