package weather

import (
	"context"
	"sync"
	"time"

	"tableflip.dev/routine/pkg/geo"
)

// Fetcher is the part of Widget a Panel depends on.
type Fetcher interface {
	Snapshot(ctx context.Context, c geo.Coordinate) Outcome
}

// DefaultMaxAge is how long a live Outcome stays fresh.
const DefaultMaxAge = 15 * time.Minute

// Panel holds the latest Outcome for the current target coordinate. Results
// that arrive for a coordinate that is no longer the target are discarded,
// so an earlier slow response cannot overwrite a later location change.
type Panel struct {
	Fetcher Fetcher
	// MaxAge defaults to DefaultMaxAge.
	MaxAge time.Duration
	Now    func() time.Time

	mu      sync.Mutex
	target  geo.Coordinate
	latest  Outcome
	has     bool
	pending map[geo.Coordinate]bool
}

// NewPanel returns a Panel targeting c.
func NewPanel(f Fetcher, c geo.Coordinate) *Panel {
	return &Panel{Fetcher: f, target: c}
}

// Target returns the coordinate the panel is showing.
func (p *Panel) Target() geo.Coordinate {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.target
}

// SetTarget changes the coordinate. It reports whether it changed.
func (p *Panel) SetTarget(c geo.Coordinate) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.target == c {
		return false
	}
	p.target = c
	return true
}

// Latest returns the last accepted Outcome and whether it is fresh: live,
// for the current target and younger than MaxAge. Generated and unavailable
// outcomes are never fresh so the live provider is retried.
func (p *Panel) Latest() (Outcome, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.has {
		return Outcome{}, false
	}
	out := p.latest
	return out, out.Coordinate == p.target && out.Source == SourceLive && !p.expired(out)
}

// expired reports whether out is older than MaxAge. Outcomes without a
// fetch time never age.
func (p *Panel) expired(out Outcome) bool {
	if out.FetchedAt.IsZero() {
		return false
	}
	maxAge := p.MaxAge
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	now := time.Now()
	if p.Now != nil {
		now = p.Now()
	}
	return now.Sub(out.FetchedAt) >= maxAge
}

// Refresh fetches the current target synchronously and returns the Outcome.
// The panel only keeps it if the target is unchanged when it arrives.
func (p *Panel) Refresh(ctx context.Context) (Outcome, bool) {
	c := p.Target()
	out := p.Fetcher.Snapshot(ctx, c)
	return out, p.accept(out)
}

// RefreshAsync starts a background refresh of the current target unless one
// is already running for it. done, if not nil, is called with whether the
// result was kept.
func (p *Panel) RefreshAsync(ctx context.Context, done func(Outcome, bool)) {
	p.mu.Lock()
	c := p.target
	if p.pending == nil {
		p.pending = map[geo.Coordinate]bool{}
	}
	if p.pending[c] {
		p.mu.Unlock()
		return
	}
	p.pending[c] = true
	p.mu.Unlock()

	go func() {
		out := p.Fetcher.Snapshot(ctx, c)
		p.mu.Lock()
		delete(p.pending, c)
		p.mu.Unlock()
		kept := p.accept(out)
		if done != nil {
			done(out, kept)
		}
	}()
}

func (p *Panel) accept(out Outcome) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if out.Coordinate != p.target {
		return false
	}
	p.latest = out
	p.has = true
	return true
}
