package teaui

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"tableflip.dev/routine/pkg/app"
	"tableflip.dev/routine/pkg/geo"
	"tableflip.dev/routine/pkg/progress"
	"tableflip.dev/routine/pkg/schedule"
	"tableflip.dev/routine/pkg/store/storetest"
	"tableflip.dev/routine/pkg/weather"
)

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

type forwarder map[string]geo.Place

func (f forwarder) Name() string { return "fake" }

func (f forwarder) Forward(_ context.Context, q string) (geo.Place, error) {
	if p, ok := f[q]; ok {
		return p, nil
	}
	return geo.Place{}, geo.ErrNotFound
}

type staticWeather struct{}

func (staticWeather) Snapshot(_ context.Context, c geo.Coordinate) weather.Outcome {
	return weather.Outcome{Coordinate: c, Source: weather.SourceLive, Snapshot: &weather.Snapshot{
		TemperatureC: 21, TemperatureF: 70, HighC: 25, LowC: 15, Description: "Clear sky", LocationLabel: "Here",
	}}
}

func newTestModel(t *testing.T) (Model, *storetest.Memory) {
	t.Helper()
	sched, err := schedule.New(
		schedule.Section{Key: "morning", Title: "Morning", Tasks: []schedule.Task{
			{ID: "water", Text: "Drink water"},
			{ID: "stretch", Text: "Stretch"},
		}},
		schedule.Section{Key: "evening", Title: "Evening", Tasks: []schedule.Task{
			{ID: "read", Text: "Read"},
			{ID: "tidy", Text: "Tidy up"},
		}},
	)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	mem := storetest.NewMemory()
	svc := &app.Session{
		Persistence: mem,
		Schedule:    sched,
		Clock:       fixedClock(time.Date(2026, 10, 19, 7, 30, 0, 0, time.Local)),
		Default:     geo.Place{Label: "New York, NY", Coordinate: geo.Coordinate{Latitude: 40.7128, Longitude: -74.0060}},
		Geocoder:    forwarder{"Paris": {Label: "Paris", Coordinate: geo.Coordinate{Latitude: 48.8566, Longitude: 2.3522}}},
		Forecast:    staticWeather{},
		Logger:      log.New(io.Discard),
	}
	m := New(svc)
	m = drain(t, m, m.loadDashboard())
	return m, mem
}

// drain runs cmd and feeds every resulting message back into the model,
// skipping the poll tick.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, tickMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			next, more := m.Update(msg)
			m = next.(Model)
			queue = append(queue, more)
		}
	}
	return m
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, cmd := m.Update(k)
		m = drain(t, next.(Model), cmd)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
)

func TestViewBeforeLoad(t *testing.T) {
	m := New(nil)
	if got := m.View(); !strings.Contains(got, "Loading") {
		t.Fatalf("expected loading view, got %q", got)
	}
}

func TestNavigationAcrossSections(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, runes("j"), runes("j"))
	if task, _ := m.currentTask(); task.ID != "read" {
		t.Fatalf("expected cursor on read, got %q", task.ID)
	}
	m = press(t, m, runes("G"))
	if m.cursor != 3 {
		t.Fatalf("expected cursor at end, got %d", m.cursor)
	}
	m = press(t, m, runes("j"))
	if m.cursor != 3 {
		t.Fatalf("cursor moved past the end: %d", m.cursor)
	}
	m = press(t, m, runes("g"), runes("k"))
	if m.cursor != 0 {
		t.Fatalf("cursor moved before the start: %d", m.cursor)
	}
}

func TestToggleShowsCelebration(t *testing.T) {
	m, mem := newTestModel(t)

	m = press(t, m, space, runes("j"), space)
	if ids, _ := mem.Completions("2026-10-19"); len(ids) != 2 {
		t.Fatalf("expected two completions, got %v", ids)
	}
	if m.celebration == nil || m.celebration.Milestone != progress.MilestoneHalf {
		t.Fatalf("expected halfway milestone, got %+v", m.celebration)
	}
	view := m.View()
	for _, want := range []string{"☑", "2/4 (50%)", "Halfway there!"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m = press(t, m, space)
	if m.celebration != nil {
		t.Fatal("unchecking must clear the celebration")
	}
}

func TestResetNeedsConfirmation(t *testing.T) {
	m, mem := newTestModel(t)
	m = press(t, m, space)

	m = press(t, m, runes("r"), runes("n"))
	if !mem.HasCompletions("2026-10-19") {
		t.Fatal("declined reset must keep progress")
	}
	if m.status != "Reset cancelled" {
		t.Fatalf("unexpected status %q", m.status)
	}

	m = press(t, m, runes("r"), runes("y"))
	if mem.HasCompletions("2026-10-19") {
		t.Fatal("expected progress to be cleared")
	}
	if m.dash.Summary.Completed != 0 {
		t.Fatalf("expected refreshed dashboard, got %+v", m.dash.Summary)
	}
}

func TestLocationPrompt(t *testing.T) {
	m, mem := newTestModel(t)

	m = press(t, m, runes("l"))
	if m.mode != modeLocation {
		t.Fatal("expected location prompt")
	}
	m = press(t, m, runes("Atlantis"), enter)
	if m.alert == "" {
		t.Fatal("expected an alert for an unknown place")
	}
	if _, found, _ := mem.Location("2026-10-19"); found {
		t.Fatal("failed lookup must not store a coordinate")
	}

	m = press(t, m, runes("l"), runes("Paris"), enter)
	if c, found, _ := mem.Location("2026-10-19"); !found || c.Latitude != 48.8566 {
		t.Fatalf("expected Paris stored, got %s", c)
	}
	if !strings.Contains(m.status, "Paris") {
		t.Fatalf("unexpected status %q", m.status)
	}
}
