package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"tableflip.dev/routine/pkg/day"
	"tableflip.dev/routine/pkg/geo"
	"tableflip.dev/routine/pkg/location"
	"tableflip.dev/routine/pkg/progress"
	"tableflip.dev/routine/pkg/quote"
	"tableflip.dev/routine/pkg/rollover"
	"tableflip.dev/routine/pkg/schedule"
	"tableflip.dev/routine/pkg/store"
	"tableflip.dev/routine/pkg/tracker"
	"tableflip.dev/routine/pkg/weather"
)

var (
	ErrNoPersistence = errors.New("app: no persistence configured")
	ErrNoGeocoder    = errors.New("app: no geocoder configured")
)

// Session composes the day-scoped components behind one active day key.
// UIs and CLIs share it. A rollover replaces every day-scoped component and
// issues a new session id, which is what a page reload amounts to here.
type Session struct {
	Persistence store.Persistence
	Schedule    *schedule.Schedule
	Clock       day.Clock
	Default     geo.Place
	Geocoder    geo.Forwarder
	Forecast    weather.Fetcher
	Catalog     []quote.Quote
	Logger      *log.Logger

	once    sync.Once
	mu      sync.Mutex
	id      string
	day     day.Key
	started time.Time
	tracker *tracker.Tracker
	prefs   *location.Preferences
	panel   *weather.Panel
}

// Info identifies the active session.
type Info struct {
	ID      string    `json:"id"`
	Day     day.Key   `json:"day"`
	Started time.Time `json:"started"`
}

// TaskView is a task with its completion state for the session day.
type TaskView struct {
	ID   string `json:"id"`
	Icon string `json:"icon"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// SectionView is a schedule section ready to render.
type SectionView struct {
	Key   string     `json:"key"`
	Title string     `json:"title"`
	Icon  string     `json:"icon"`
	Tasks []TaskView `json:"tasks"`
}

// LocationView is the coordinate in effect for the session day.
type LocationView struct {
	Coordinate geo.Coordinate `json:"coordinate"`
	IsDefault  bool           `json:"isDefault"`
}

// Dashboard is everything a checklist page shows. Weather is whatever the
// panel last accepted and may be nil while the first fetch is in flight.
type Dashboard struct {
	Session      Info             `json:"session"`
	Sections     []SectionView    `json:"sections"`
	Summary      progress.Summary `json:"summary"`
	Location     LocationView     `json:"location"`
	Weather      *weather.Outcome `json:"weather,omitempty"`
	WeatherFresh bool             `json:"weatherFresh"`
	Quote        quote.Quote      `json:"quote"`
}

// ToggleResult reports the outcome of one toggle. Celebration is set only
// when the task went from incomplete to complete.
type ToggleResult struct {
	ID          string                `json:"id"`
	Done        bool                  `json:"done"`
	Summary     progress.Summary      `json:"summary"`
	Celebration *progress.Celebration `json:"celebration,omitempty"`
}

func (s *Session) init() {
	s.once.Do(func() {
		if s.Schedule == nil {
			s.Schedule, _ = schedule.New()
		}
		s.mu.Lock()
		s.reloadLocked(day.Today(s.Clock))
		s.mu.Unlock()
	})
}

func (s *Session) reloadLocked(d day.Key) {
	s.id = uuid.NewString()
	s.day = d
	s.started = s.now()
	s.tracker = &tracker.Tracker{
		Persistence: s.Persistence,
		Schedule:    s.Schedule,
		Clock:       s.Clock,
		Logger:      s.logger(),
	}
	s.prefs = &location.Preferences{
		Persistence: s.Persistence,
		Default:     s.Default,
		Logger:      s.logger(),
	}
	if s.Forecast != nil {
		s.panel = weather.NewPanel(s.Forecast, s.prefs.Current(d))
		s.panel.Now = s.now
	} else {
		s.panel = nil
	}
}

func (s *Session) parts() (*tracker.Tracker, *location.Preferences, *weather.Panel, day.Key) {
	s.init()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker, s.prefs, s.panel, s.day
}

// Info returns the active session id and day.
func (s *Session) Info() Info {
	s.init()
	s.mu.Lock()
	defer s.mu.Unlock()
	return Info{ID: s.id, Day: s.day, Started: s.started}
}

// Day returns the day key the session was started for.
func (s *Session) Day() day.Key {
	return s.Info().Day
}

// Dashboard renders from local state immediately. A background refresh is
// started whenever the panel's weather is not fresh.
func (s *Session) Dashboard(ctx context.Context) Dashboard {
	t, prefs, panel, d := s.parts()

	done := t.Completed()
	sections := make([]SectionView, 0, len(s.Schedule.Keys()))
	for _, sec := range s.Schedule.Sections() {
		view := SectionView{Key: sec.Key, Title: sec.Title, Icon: sec.Icon}
		for _, task := range sec.Tasks {
			view.Tasks = append(view.Tasks, TaskView{
				ID:   task.ID,
				Icon: task.Icon,
				Text: task.Text,
				Done: done.Has(task.ID),
			})
		}
		sections = append(sections, view)
	}

	summary := progress.Summarize(done.CountIn(s.Schedule), s.Schedule.TotalTasks())
	coord := prefs.Current(d)
	dash := Dashboard{
		Session:  s.Info(),
		Sections: sections,
		Summary:  summary,
		Location: LocationView{Coordinate: coord, IsDefault: prefs.IsDefault(coord)},
		Quote:    s.Quote(),
	}

	if panel != nil {
		panel.SetTarget(coord)
		if out, fresh := panel.Latest(); out.Source != "" {
			dash.Weather = &out
			dash.WeatherFresh = fresh
		}
		if !dash.WeatherFresh {
			panel.RefreshAsync(context.WithoutCancel(ctx), nil)
		}
	}
	return dash
}

// Sections returns the schedule the session checks tasks against.
func (s *Session) Sections() []schedule.Section {
	s.init()
	return s.Schedule.Sections()
}

// Summary returns today's progress without building the full dashboard.
func (s *Session) Summary() progress.Summary {
	t, _, _, _ := s.parts()
	return progress.Summarize(t.Completed().CountIn(s.Schedule), s.Schedule.TotalTasks())
}

// Toggle flips a task and reports the resulting progress.
func (s *Session) Toggle(_ context.Context, id string) (ToggleResult, error) {
	if s.Persistence == nil {
		return ToggleResult{}, ErrNoPersistence
	}
	t, _, _, _ := s.parts()

	done, err := t.Toggle(id)
	res := ToggleResult{ID: id, Done: done}
	if err != nil {
		return res, err
	}
	res.Summary = progress.Summarize(t.Completed().CountIn(s.Schedule), s.Schedule.TotalTasks())
	if done {
		c := progress.Celebrate(res.Summary.Percentage)
		res.Celebration = &c
		s.logger().Debug("task completed", "id", id, "tier", c.Tier, "percentage", c.Percentage)
	}
	return res, nil
}

// Reset clears today's completions.
func (s *Session) Reset(_ context.Context) error {
	if s.Persistence == nil {
		return ErrNoPersistence
	}
	t, _, _, _ := s.parts()
	return t.Reset()
}

// Location returns the coordinate in effect for the session day.
func (s *Session) Location() geo.Coordinate {
	_, prefs, _, d := s.parts()
	return prefs.Current(d)
}

// SetLocation geocodes query and stores the result for the session day.
// A blank query returns geo.ErrEmptyQuery and changes nothing. When every
// geocoder fails the previous coordinate stays in effect.
func (s *Session) SetLocation(ctx context.Context, query string) (geo.Place, error) {
	if strings.TrimSpace(query) == "" {
		return geo.Place{}, geo.ErrEmptyQuery
	}
	if s.Geocoder == nil {
		return geo.Place{}, ErrNoGeocoder
	}
	_, prefs, panel, d := s.parts()

	place, err := s.Geocoder.Forward(ctx, query)
	if err != nil {
		if !errors.Is(err, geo.ErrEmptyQuery) {
			s.logger().Warn("geocoding failed", "query", query, "err", err)
		}
		return geo.Place{}, err
	}
	if err := prefs.Set(d, place.Coordinate); err != nil {
		return geo.Place{}, fmt.Errorf("app: store location: %w", err)
	}
	if panel != nil && panel.SetTarget(place.Coordinate) {
		panel.RefreshAsync(context.WithoutCancel(ctx), nil)
	}
	return place, nil
}

// Weather fetches the current coordinate's weather and waits for it.
func (s *Session) Weather(ctx context.Context) weather.Outcome {
	_, prefs, panel, d := s.parts()
	coord := prefs.Current(d)
	if panel == nil {
		return weather.Outcome{Coordinate: coord, Source: weather.SourceUnavailable, Message: weather.Unavailable}
	}
	panel.SetTarget(coord)
	out, kept := panel.Refresh(ctx)
	if !kept {
		if latest, fresh := panel.Latest(); fresh {
			return latest
		}
	}
	return out
}

// Quote returns the quote of the session day.
func (s *Session) Quote() quote.Quote {
	catalog := s.Catalog
	if catalog == nil {
		catalog = quote.Catalog
	}
	return quote.Pick(s.Day(), catalog)
}

// Rollover resets day-scoped state for next: the location reverts to the
// default and every other day's location record is purged. Completion
// records of earlier days stay in storage. A new session id is issued.
func (s *Session) Rollover(ctx context.Context, next day.Key) error {
	s.init()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.day == next {
		return nil
	}
	old := s.day
	var err error
	if s.Persistence != nil {
		err = s.prefs.ResetTo(ctx, next)
	}
	s.reloadLocked(next)
	s.logger().Info("session reloaded", "from", old, "to", next, "session", s.id)
	return err
}

// Monitor returns a rollover monitor wired to this session.
func (s *Session) Monitor() *rollover.Monitor {
	return &rollover.Monitor{
		Clock:  s.Clock,
		Logger: s.logger(),
		OnRollover: func(_, next day.Key) {
			if err := s.Rollover(context.Background(), next); err != nil {
				s.logger().Error("rollover cleanup failed", "day", next, "err", err)
			}
		},
	}
}

// Watch subscribes to persistence change events.
func (s *Session) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// Run keeps the session current until ctx is done: it checks for rollover
// and drops cached state when another process writes the store.
func (s *Session) Run(ctx context.Context) error {
	s.init()
	monitor := s.Monitor()
	monitor.Check(s.now())
	if d := s.Day(); monitor.Current() != d {
		// The session was started on an earlier day.
		if err := s.Rollover(ctx, monitor.Current()); err != nil {
			s.logger().Error("rollover cleanup failed", "err", err)
		}
	}

	if s.Persistence != nil {
		events, err := s.Persistence.Watch(ctx)
		if err != nil {
			s.logger().Warn("store watch unavailable", "err", err)
		} else {
			go s.follow(events)
		}
	}
	return monitor.Run(ctx)
}

func (s *Session) follow(events <-chan store.Event) {
	for ev := range events {
		s.Invalidate(ev)
	}
}

// Invalidate drops cached completions after a store change made outside
// this session.
func (s *Session) Invalidate(ev store.Event) {
	if ev.Type == store.EventLocationChanged {
		// Location is read through on every call.
		return
	}
	t, _, _, _ := s.parts()
	t.Forget()
}

func (s *Session) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock.Now()
}

func (s *Session) logger() *log.Logger {
	if s.Logger == nil {
		return log.Default()
	}
	return s.Logger
}
