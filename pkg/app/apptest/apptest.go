// Package apptest builds app.Sessions over in-memory fakes for tests.
package apptest

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"tableflip.dev/routine/pkg/app"
	"tableflip.dev/routine/pkg/geo"
	"tableflip.dev/routine/pkg/schedule"
	"tableflip.dev/routine/pkg/store/storetest"
	"tableflip.dev/routine/pkg/weather"
)

// Today is the day every Session built here starts on.
const Today = "2026-10-19"

// Home is the default place.
var Home = geo.Place{Label: "New York, NY", Coordinate: geo.Coordinate{Latitude: 40.7128, Longitude: -74.0060}}

// Paris is the only place the fake geocoder knows.
var Paris = geo.Place{Label: "Paris", Coordinate: geo.Coordinate{Latitude: 48.8566, Longitude: 2.3522}}

// Clock is a settable day.Clock.
type Clock struct{ T time.Time }

func (c *Clock) Now() time.Time { return c.T }

// Geocoder resolves "Paris" and nothing else.
type Geocoder struct{}

func (Geocoder) Name() string { return "fake" }

func (Geocoder) Forward(_ context.Context, q string) (geo.Place, error) {
	if q == "Paris" {
		return Paris, nil
	}
	return geo.Place{}, geo.ErrNotFound
}

// Weather always reports the same sunny snapshot.
type Weather struct{}

func (Weather) Snapshot(_ context.Context, c geo.Coordinate) weather.Outcome {
	return weather.Outcome{
		Coordinate: c,
		Source:     weather.SourceLive,
		Snapshot: &weather.Snapshot{
			TemperatureC: 20, TemperatureF: 68, HighC: 24, LowC: 12, HighF: 75, LowF: 54,
			UVIndex: 4, Humidity: 55,
			Description: "Clear sky", Condition: weather.Clear, LocationLabel: "Testville",
		},
	}
}

// Schedule has three tasks over two sections.
func Schedule(t testing.TB) *schedule.Schedule {
	t.Helper()
	s, err := schedule.New(
		schedule.Section{Key: "morning", Title: "Morning", Tasks: []schedule.Task{
			{ID: "water", Text: "Drink water"},
			{ID: "stretch", Text: "Stretch"},
		}},
		schedule.Section{Key: "evening", Title: "Evening", Tasks: []schedule.Task{
			{ID: "read", Text: "Read"},
		}},
	)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	return s
}

// NewSession returns a Session over mem starting at 09:00 on Today.
func NewSession(t testing.TB, mem *storetest.Memory) (*app.Session, *Clock) {
	t.Helper()
	clock := &Clock{T: time.Date(2026, 10, 19, 9, 0, 0, 0, time.Local)}
	return &app.Session{
		Persistence: mem,
		Schedule:    Schedule(t),
		Clock:       clock,
		Default:     Home,
		Geocoder:    Geocoder{},
		Forecast:    Weather{},
		Logger:      log.New(io.Discard),
	}, clock
}
