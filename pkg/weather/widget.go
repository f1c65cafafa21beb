package weather

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"tableflip.dev/routine/pkg/geo"
)

// Source records which path produced an Outcome.
type Source string

const (
	SourceLive        Source = "live"
	SourceMock        Source = "mock"
	SourceUnavailable Source = "unavailable"
)

// Unavailable is the message shown when neither path produced a snapshot.
const Unavailable = "Weather unavailable"

// Outcome is the result of one widget refresh. Snapshot is nil only when
// Source is SourceUnavailable.
type Outcome struct {
	Coordinate geo.Coordinate `json:"coordinate"`
	Source     Source         `json:"source"`
	Snapshot   *Snapshot      `json:"snapshot,omitempty"`
	Message    string         `json:"message,omitempty"`
	FetchedAt  time.Time      `json:"fetchedAt"`
}

// Widget resolves a coordinate to an Outcome, degrading from the live
// provider to the Generator and finally to the unavailable message.
type Widget struct {
	Provider  Provider
	Generator Generator
	Labeler   geo.Labeler
	Logger    *log.Logger

	now func() time.Time
}

// Snapshot never returns an error; failures are folded into the Outcome.
func (w *Widget) Snapshot(ctx context.Context, c geo.Coordinate) Outcome {
	out := Outcome{Coordinate: c, FetchedAt: w.clock()}

	if w.Provider != nil {
		reading, err := w.Provider.Fetch(ctx, c)
		if err == nil {
			snap := reading.Snapshot(w.Labeler.Label(ctx, c))
			out.Source = SourceLive
			out.Snapshot = &snap
			return out
		}
		w.logger().Warn("weather fetch failed, using generated conditions",
			"provider", w.Provider.Name(), "coordinate", c, "err", err)
	}

	if w.Generator != nil {
		snap, err := w.Generator.Generate(w.Labeler.Label(ctx, c))
		if err == nil {
			out.Source = SourceMock
			out.Snapshot = &snap
			return out
		}
		w.logger().Error("weather generator failed", "err", err)
	}

	out.Source = SourceUnavailable
	out.Message = Unavailable
	return out
}

func (w *Widget) clock() time.Time {
	if w.now != nil {
		return w.now()
	}
	return time.Now()
}

func (w *Widget) logger() *log.Logger {
	if w.Logger == nil {
		return log.Default()
	}
	return w.Logger
}
