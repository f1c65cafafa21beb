package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

var newYork = Place{Label: "New York, NY", Coordinate: Coordinate{Latitude: 40.7128, Longitude: -74.0060}}

func TestCoordinateString(t *testing.T) {
	c := Coordinate{Latitude: 51.50735, Longitude: -0.12776}
	if got := c.String(); got != "51.51°, -0.13°" {
		t.Fatalf("unexpected format %q", got)
	}
}

func TestCoordinateNear(t *testing.T) {
	base := newYork.Coordinate
	if !base.Near(Coordinate{Latitude: 40.72, Longitude: -74.0}, DefaultTolerance) {
		t.Fatal("expected coordinates within tolerance")
	}
	if base.Near(Coordinate{Latitude: 40.73, Longitude: -74.0060}, DefaultTolerance) {
		t.Fatal("expected coordinates outside tolerance")
	}
}

func TestNominatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Errorf("expected a User-Agent header")
		}
		switch r.URL.Path {
		case "/search":
			if r.URL.Query().Get("q") == "nowhere" {
				_, _ = w.Write([]byte(`[]`))
				return
			}
			_, _ = w.Write([]byte(`[{"lat": "48.8566", "lon": "2.3522", "display_name": "Paris, Ile-de-France, France", "address": {"city": "Paris", "state": "Ile-de-France"}}]`))
		case "/reverse":
			_, _ = w.Write([]byte(`{"display_name": "x", "address": {"town": "Hobart", "state": "Tasmania"}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	n := &Nominatim{BaseURL: srv.URL, Client: srv.Client()}
	p, err := n.Forward(context.Background(), "paris")
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	if p.Label != "Paris, Ile-de-France" || p.Coordinate.Latitude != 48.8566 || p.Coordinate.Longitude != 2.3522 {
		t.Fatalf("unexpected place %+v", p)
	}
	if _, err := n.Forward(context.Background(), "nowhere"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	label, err := n.Reverse(context.Background(), Coordinate{Latitude: -42.88, Longitude: 147.33})
	if err != nil {
		t.Fatalf("reverse: %v", err)
	}
	if label != "Hobart, Tasmania" {
		t.Fatalf("unexpected label %q", label)
	}
}

type failingForwarder struct{ calls int }

func (f *failingForwarder) Name() string { return "failing" }
func (f *failingForwarder) Forward(context.Context, string) (Place, error) {
	f.calls++
	return Place{}, errors.New("boom")
}

func TestForwardChainFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("name") != "Berlin" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"results": [{"name": "Berlin", "latitude": 52.52, "longitude": 13.41, "admin1": "Land Berlin", "country": "Germany"}]}`))
	}))
	defer srv.Close()

	primary := &failingForwarder{}
	chain := ForwardChain{primary, &OpenMeteoGeocoder{URL: srv.URL, Client: srv.Client()}}
	p, err := chain.Forward(context.Background(), "  Berlin ")
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	if primary.calls != 1 {
		t.Fatalf("expected primary to be tried once, got %d", primary.calls)
	}
	if p.Label != "Berlin, Land Berlin" || p.Coordinate.Latitude != 52.52 {
		t.Fatalf("unexpected place %+v", p)
	}
}

func TestForwardChainAllFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	chain := ForwardChain{&failingForwarder{}, &OpenMeteoGeocoder{URL: srv.URL, Client: srv.Client()}}
	_, err := chain.Forward(context.Background(), "Berlin")
	if err == nil {
		t.Fatal("expected error when all providers fail")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Fatalf("expected joined error to mention the status, got %v", err)
	}
}

func TestForwardChainEmptyQuery(t *testing.T) {
	primary := &failingForwarder{}
	_, err := ForwardChain{primary}.Forward(context.Background(), "   \t")
	if !errors.Is(err, ErrEmptyQuery) {
		t.Fatalf("expected ErrEmptyQuery, got %v", err)
	}
	if primary.calls != 0 {
		t.Fatal("expected no provider calls for a blank query")
	}
}

type staticReverser struct {
	label string
	err   error
}

func (s staticReverser) Name() string { return "static" }
func (s staticReverser) Reverse(context.Context, Coordinate) (string, error) {
	return s.label, s.err
}

func TestLabeler(t *testing.T) {
	ctx := context.Background()
	failing := ReverseChain{staticReverser{err: errors.New("down")}, staticReverser{err: errors.New("down")}}

	l := Labeler{Reverser: failing, Default: newYork}
	if got := l.Label(ctx, Coordinate{Latitude: 40.713, Longitude: -74.005}); got != "New York, NY" {
		t.Fatalf("expected default label near default, got %q", got)
	}
	if got := l.Label(ctx, Coordinate{Latitude: 35.6895, Longitude: 139.6917}); got != "35.69°, 139.69°" {
		t.Fatalf("expected raw coordinate label, got %q", got)
	}

	l.Reverser = ReverseChain{staticReverser{err: errors.New("down")}, staticReverser{label: "Tokyo"}}
	if got := l.Label(ctx, Coordinate{Latitude: 35.6895, Longitude: 139.6917}); got != "Tokyo" {
		t.Fatalf("expected fallback reverser label, got %q", got)
	}
}

func TestBigDataCloud(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"city": "", "locality": "Fremantle", "principalSubdivision": "Western Australia", "countryName": "Australia"}`))
	}))
	defer srv.Close()

	b := &BigDataCloud{URL: srv.URL, Client: srv.Client()}
	label, err := b.Reverse(context.Background(), Coordinate{Latitude: -32.05, Longitude: 115.74})
	if err != nil {
		t.Fatalf("reverse: %v", err)
	}
	if label != "Fremantle, Western Australia" {
		t.Fatalf("unexpected label %q", label)
	}
}
