package status

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"

	"tableflip.dev/routine/pkg/app"
	"tableflip.dev/routine/pkg/app/apptest"
	"tableflip.dev/routine/pkg/store/storetest"
)

func init() {
	color.NoColor = true
}

func TestStatusOnce(t *testing.T) {
	mem := storetest.NewMemory()
	s, _ := apptest.NewSession(t, mem)
	if _, err := s.Toggle(context.Background(), "stretch"); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	st := Status{Session: s, ShowID: true, Out: &buf}
	if err := st.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	got := buf.String()
	for _, want := range []string{"Daily Routine · 2026-10-19", "1/3 (33%)", "Morning - 1/2", "Evening - 0/1", "Clear sky", "Testville"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestStatusJSON(t *testing.T) {
	s, _ := apptest.NewSession(t, storetest.NewMemory())
	var buf bytes.Buffer
	st := Status{Session: s, JSON: true, Out: &buf}
	if err := st.Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	var dash app.Dashboard
	if err := json.Unmarshal(buf.Bytes(), &dash); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dash.Summary.Total != 3 || dash.Weather == nil || !dash.Location.IsDefault {
		t.Fatalf("unexpected dashboard %+v", dash)
	}
}

func TestStatusFollowPicksUpExternalWrites(t *testing.T) {
	mem := storetest.NewMemory()
	s, _ := apptest.NewSession(t, mem)
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	var buf bytes.Buffer
	st := Status{Session: s, Follow: true, Out: &buf, Interval: 10 * time.Millisecond, Logger: log.New(io.Discard)}
	done := make(chan error, 1)
	go func() { done <- st.Do(ctx) }()

	time.Sleep(50 * time.Millisecond)
	if err := mem.StoreCompletions(apptest.Today, []string{"water", "stretch", "read"}); err != nil {
		t.Fatal(err)
	}

	if err := <-done; err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !strings.Contains(buf.String(), "3/3 (100%)") {
		t.Fatalf("expected the external write to show up:\n%s", buf.String())
	}
}
