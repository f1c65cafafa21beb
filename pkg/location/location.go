// Package location keeps the coordinate chosen for the current day.
package location

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"tableflip.dev/routine/pkg/day"
	"tableflip.dev/routine/pkg/geo"
	"tableflip.dev/routine/pkg/store"
)

// Preferences maps a day to its chosen coordinate, falling back to Default.
type Preferences struct {
	Persistence store.Persistence
	Default     geo.Place
	Logger      *log.Logger
}

// Current returns the coordinate for d, or the default when none is stored
// or the stored value is unreadable.
func (p *Preferences) Current(d day.Key) geo.Coordinate {
	if p.Persistence == nil {
		return p.Default.Coordinate
	}
	c, found, err := p.Persistence.Location(d)
	if err != nil {
		p.logger().Warn("location record unreadable, using default", "day", d, "err", err)
		return p.Default.Coordinate
	}
	if !found {
		return p.Default.Coordinate
	}
	return c
}

// IsDefault reports whether c is within tolerance of the default location.
func (p *Preferences) IsDefault(c geo.Coordinate) bool {
	return c.Near(p.Default.Coordinate, geo.DefaultTolerance)
}

// Set stores c as the coordinate for d.
func (p *Preferences) Set(d day.Key, c geo.Coordinate) error {
	if p.Persistence == nil {
		return fmt.Errorf("location: no persistence configured")
	}
	if !c.Valid() {
		return fmt.Errorf("location: invalid coordinate %s", c)
	}
	return p.Persistence.StoreLocation(d, c)
}

// ResetTo stores the default for d and deletes the records of every other
// day.
func (p *Preferences) ResetTo(ctx context.Context, d day.Key) error {
	if p.Persistence == nil {
		return fmt.Errorf("location: no persistence configured")
	}
	for _, old := range p.Persistence.LocationDays(ctx) {
		if old == d {
			continue
		}
		if err := p.Persistence.DeleteLocation(old); err != nil {
			return fmt.Errorf("location: purge %s: %w", old, err)
		}
	}
	return p.Persistence.StoreLocation(d, p.Default.Coordinate)
}

func (p *Preferences) logger() *log.Logger {
	if p.Logger == nil {
		return log.Default()
	}
	return p.Logger
}
