package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"tableflip.dev/routine/pkg/app"
	"tableflip.dev/routine/pkg/geo"
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
	return weather.Outcome{
		Coordinate: c,
		Source:     weather.SourceMock,
		Snapshot: &weather.Snapshot{
			TemperatureC: 20, TemperatureF: 68, HighC: 30, LowC: 10,
			Description: "Sunny", Condition: weather.Clear, LocationLabel: "Testville",
		},
	}
}

var home = geo.Place{Label: "New York, NY", Coordinate: geo.Coordinate{Latitude: 40.7128, Longitude: -74.0060}}

func newTestServer(t *testing.T) (*httptest.Server, *storetest.Memory, *app.Session) {
	t.Helper()
	sched, err := schedule.New(
		schedule.Section{Key: "morning", Title: "Morning", Icon: "🌅", Tasks: []schedule.Task{
			{ID: "water", Icon: "💧", Text: "Drink water"},
			{ID: "stretch", Icon: "🧘", Text: "Stretch"},
		}},
	)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	mem := storetest.NewMemory()
	sess := &app.Session{
		Persistence: mem,
		Schedule:    sched,
		Clock:       fixedClock(time.Date(2026, 10, 19, 9, 0, 0, 0, time.Local)),
		Default:     home,
		Geocoder:    forwarder{"Paris": {Label: "Paris", Coordinate: geo.Coordinate{Latitude: 48.8566, Longitude: 2.3522}}},
		Forecast:    staticWeather{},
		Logger:      log.New(io.Discard),
	}
	srv := httptest.NewServer(New(sess, "", log.New(io.Discard)).Handler())
	t.Cleanup(srv.Close)
	return srv, mem, sess
}

// noRedirect stops the client at the 303 so tests can inspect Location.
func noRedirect(srv *httptest.Server) *http.Client {
	c := srv.Client()
	c.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }
	return c
}

func TestHealth(t *testing.T) {
	srv, _, _ := newTestServer(t)
	resp, err := srv.Client().Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
}

func TestIndexRenders(t *testing.T) {
	srv, _, sess := newTestServer(t)
	resp, err := srv.Client().Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	page := string(body)

	for _, want := range []string{
		"Drink water",
		`content="60"`,
		"0 of 2 tasks",
		sess.Quote().Author,
		sess.Info().ID,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestToggleFormRedirectsWithCelebration(t *testing.T) {
	srv, mem, _ := newTestServer(t)
	resp, err := noRedirect(srv).PostForm(srv.URL+"/tasks/water/toggle", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/?celebrate=50" {
		t.Fatalf("unexpected redirect %q", loc)
	}
	if ids, _ := mem.Completions("2026-10-19"); len(ids) != 1 || ids[0] != "water" {
		t.Fatalf("unexpected persisted ids %v", ids)
	}

	page, err := srv.Client().Get(srv.URL + "/?celebrate=50")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer page.Body.Close()
	body, _ := io.ReadAll(page.Body)
	if !strings.Contains(string(body), "Halfway there!") {
		t.Fatal("expected milestone message on page")
	}
}

func TestToggleAPI(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := srv.Client().Post(srv.URL+"/api/tasks/stretch/toggle", "application/json", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	var res app.ToggleResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !res.Done || res.Celebration == nil || res.Summary.Completed != 1 {
		t.Fatalf("unexpected result %+v", res)
	}

	missing, err := srv.Client().Post(srv.URL+"/api/tasks/nope/toggle", "application/json", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", missing.StatusCode)
	}
}

func TestResetRequiresConfirmation(t *testing.T) {
	srv, mem, _ := newTestServer(t)
	_ = mem.StoreCompletions("2026-10-19", []string{"water"})
	client := noRedirect(srv)

	resp, err := client.PostForm(srv.URL+"/reset", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if !mem.HasCompletions("2026-10-19") {
		t.Fatal("unconfirmed reset must not clear progress")
	}

	resp, err = client.PostForm(srv.URL+"/reset", url.Values{"confirm": {"yes"}})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if mem.HasCompletions("2026-10-19") {
		t.Fatal("expected progress to be cleared")
	}
}

func TestLocationForm(t *testing.T) {
	srv, mem, sess := newTestServer(t)
	client := noRedirect(srv)

	resp, err := client.PostForm(srv.URL+"/location", url.Values{"place": {"  "}})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if loc := resp.Header.Get("Location"); loc != "/" {
		t.Fatalf("blank place should be ignored silently, got %q", loc)
	}

	resp, err = client.PostForm(srv.URL+"/location", url.Values{"place": {"Atlantis"}})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if loc := resp.Header.Get("Location"); !strings.Contains(loc, "alert=") {
		t.Fatalf("expected alert redirect, got %q", loc)
	}
	if sess.Location() != home.Coordinate {
		t.Fatal("failed lookup must keep the previous coordinate")
	}

	resp, err = client.PostForm(srv.URL+"/location", url.Values{"place": {"Paris"}})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if c, found, _ := mem.Location("2026-10-19"); !found || c.Latitude != 48.8566 {
		t.Fatalf("expected Paris to be stored, got %s", c)
	}
}

func TestWeatherAndQuoteAPI(t *testing.T) {
	srv, _, sess := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + "/api/weather")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	var out weather.Outcome
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Source != weather.SourceMock || out.Snapshot == nil || out.Snapshot.LocationLabel != "Testville" {
		t.Fatalf("unexpected outcome %+v", out)
	}

	qr, err := srv.Client().Get(srv.URL + "/api/quote")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer qr.Body.Close()
	var q struct{ Text, Author string }
	if err := json.NewDecoder(qr.Body).Decode(&q); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if q.Author != sess.Quote().Author {
		t.Fatalf("unexpected quote %+v", q)
	}
}

func TestHistoryValidatesDays(t *testing.T) {
	srv, _, _ := newTestServer(t)
	resp, err := srv.Client().Get(srv.URL + "/api/history?days=0")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	resp, err = srv.Client().Get(srv.URL + "/api/history?days=3")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	var res app.ReportResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Days) != 3 || res.Until != "2026-10-19" || res.Since != "2026-10-17" {
		t.Fatalf("unexpected report %+v", res)
	}
}
