// Package day provides the calendar-day key used to scope persisted state.
package day

import (
	"fmt"
	"time"
)

// Layout is the format of a day key, in local time.
const Layout = "2006-01-02"

// Key is a local calendar date formatted as YYYY-MM-DD.
type Key string

// Clock supplies the current time. Tests substitute a fixed or stepping clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// Of returns the day key for t in t's location.
func Of(t time.Time) Key {
	return Key(t.Format(Layout))
}

// Today recomputes the day key from clock on every call.
func Today(clock Clock) Key {
	if clock == nil {
		clock = SystemClock{}
	}
	return Of(clock.Now())
}

// Parse validates s as a day key.
func Parse(s string) (Key, error) {
	t, err := time.ParseInLocation(Layout, s, time.Local)
	if err != nil {
		return "", fmt.Errorf("day: invalid key %q: %w", s, err)
	}
	return Of(t), nil
}

// String returns the key as a plain string.
func (k Key) String() string { return string(k) }

// Time returns local midnight at the start of k.
func (k Key) Time() (time.Time, error) {
	return time.ParseInLocation(Layout, string(k), time.Local)
}

// NextMidnight returns the start of the day following t, in t's location.
func NextMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
}

// UntilMidnight is the delay from t to the next local midnight.
func UntilMidnight(t time.Time) time.Duration {
	return NextMidnight(t).Sub(t)
}
