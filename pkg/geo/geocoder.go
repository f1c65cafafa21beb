package geo

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyQuery is returned for blank place names. Callers treat it as
	// "nothing to do" rather than a failure.
	ErrEmptyQuery = errors.New("geo: empty query")
	// ErrNotFound is returned when a provider has no match.
	ErrNotFound = errors.New("geo: no match")
)

// Forwarder resolves a free-text place name to a coordinate.
type Forwarder interface {
	Name() string
	Forward(ctx context.Context, query string) (Place, error)
}

// Reverser resolves a coordinate to a place label.
type Reverser interface {
	Name() string
	Reverse(ctx context.Context, c Coordinate) (string, error)
}

// ForwardChain tries each Forwarder in order and returns the first success.
type ForwardChain []Forwarder

// Forward implements Forwarder.
func (fc ForwardChain) Forward(ctx context.Context, query string) (Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Place{}, ErrEmptyQuery
	}
	var errs []error
	for _, f := range fc {
		p, err := f.Forward(ctx, query)
		if err == nil {
			return p, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", f.Name(), err))
	}
	if len(errs) == 0 {
		return Place{}, fmt.Errorf("geo: no forward geocoders configured")
	}
	return Place{}, errors.Join(errs...)
}

// Name implements Forwarder.
func (fc ForwardChain) Name() string { return "forward-chain" }

// ReverseChain tries each Reverser in order and returns the first success.
type ReverseChain []Reverser

// Reverse implements Reverser.
func (rc ReverseChain) Reverse(ctx context.Context, c Coordinate) (string, error) {
	var errs []error
	for _, r := range rc {
		label, err := r.Reverse(ctx, c)
		if err == nil && strings.TrimSpace(label) != "" {
			return label, nil
		}
		if err == nil {
			err = ErrNotFound
		}
		errs = append(errs, fmt.Errorf("%s: %w", r.Name(), err))
	}
	if len(errs) == 0 {
		return "", fmt.Errorf("geo: no reverse geocoders configured")
	}
	return "", errors.Join(errs...)
}

// Name implements Reverser.
func (rc ReverseChain) Name() string { return "reverse-chain" }

// Labeler produces the label shown for a coordinate: the reverse-geocoded
// name, else the default label when near the default, else the raw
// coordinate.
type Labeler struct {
	Reverser Reverser
	Default  Place
}

// Label never fails.
func (l Labeler) Label(ctx context.Context, c Coordinate) string {
	if l.Reverser != nil {
		if label, err := l.Reverser.Reverse(ctx, c); err == nil && label != "" {
			return label
		}
	}
	if l.Default.Label != "" && c.Near(l.Default.Coordinate, DefaultTolerance) {
		return l.Default.Label
	}
	return c.String()
}

func joinLabel(parts ...string) string {
	out := make([]string, 0, len(parts))
	seen := map[string]bool{}
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return strings.Join(out, ", ")
}
