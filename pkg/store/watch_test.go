package store

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"tableflip.dev/routine/pkg/day"
)

func TestPersistenceWatchEmitsCompletionChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(&FileConfig{Path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	// Create the tracker directory up front so the watcher subscribes to it.
	if err := p.StoreCompletions("2026-10-18", []string{"x"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	if err := p.StoreCompletions("2026-10-19", []string{"stretch"}); err != nil {
		t.Fatalf("store completions: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventInvalidated {
				return
			}
			if evt.Type == EventCompletionsChanged {
				if evt.Day != day.Key("2026-10-19") {
					continue
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for completion change event")
		}
	}
}

func TestEventForPath(t *testing.T) {
	p := &persistence{basePath: "/data"}
	cases := []struct {
		path string
		want Event
	}{
		{"/data/tracker/2026-10-19", Event{Type: EventCompletionsChanged, Day: "2026-10-19"}},
		{"/data/location/2026-10-19", Event{Type: EventLocationChanged, Day: "2026-10-19"}},
		{"/data/location/not-a-day", Event{Type: EventInvalidated}},
		{"/data/stray", Event{Type: EventInvalidated}},
		{"/data", Event{Type: EventInvalidated}},
	}
	for _, tc := range cases {
		if got := p.eventForPath(tc.path); got != tc.want {
			t.Errorf("%s: expected %+v, got %+v", tc.path, tc.want, got)
		}
	}
}

func TestWatchErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&buf)
	l.SetLevel(log.DebugLevel)

	p, err := Load(&FileConfig{Path: t.TempDir()}, WithLogger(l))
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	p.(*persistence).watchError(errors.New("event queue overflow"))
	if got := buf.String(); !strings.Contains(got, "event queue overflow") {
		t.Fatalf("expected watcher error in log, got %q", got)
	}
}
