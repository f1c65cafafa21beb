package toggle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/routine/pkg/app"
	"tableflip.dev/routine/pkg/app/apptest"
	"tableflip.dev/routine/pkg/store/storetest"
	"tableflip.dev/routine/pkg/tracker"
)

func init() {
	color.NoColor = true
}

func TestTogglePrintsSection(t *testing.T) {
	mem := storetest.NewMemory()
	s, _ := apptest.NewSession(t, mem)
	var buf bytes.Buffer

	r := Toggle{ID: "water", Session: s, Out: &buf}
	if err := r.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	got := buf.String()
	for _, want := range []string{"Morning - 1/2", "water", "1/3 (33%)", "🎉"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Evening") {
		t.Errorf("only the toggled task's section should print:\n%s", got)
	}
	if !mem.HasCompletions(apptest.Today) {
		t.Fatal("expected the completion to be stored")
	}
}

func TestToggleJSON(t *testing.T) {
	s, _ := apptest.NewSession(t, storetest.NewMemory())
	var buf bytes.Buffer

	r := Toggle{ID: "read", Session: s, JSON: true, Out: &buf}
	if err := r.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	var res app.ToggleResult
	if err := json.Unmarshal(buf.Bytes(), &res); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if !res.Done || res.Summary.Completed != 1 || res.Celebration == nil {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestToggleUnknown(t *testing.T) {
	s, _ := apptest.NewSession(t, storetest.NewMemory())
	r := Toggle{ID: "fly", Session: s, Out: &bytes.Buffer{}}
	if err := r.Do(context.Background()); !errors.Is(err, tracker.ErrUnknownTask) {
		t.Fatalf("expected ErrUnknownTask, got %v", err)
	}
}
