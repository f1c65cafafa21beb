package tracker

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"tableflip.dev/routine/pkg/day"
	"tableflip.dev/routine/pkg/schedule"
	"tableflip.dev/routine/pkg/store/storetest"
)

type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

func testSchedule(t *testing.T) *schedule.Schedule {
	t.Helper()
	s, err := schedule.New(
		schedule.Section{Key: "morning", Title: "Morning", Tasks: []schedule.Task{{ID: "water"}, {ID: "stretch"}}},
		schedule.Section{Key: "evening", Title: "Evening", Tasks: []schedule.Task{{ID: "read"}, {ID: "tidy"}}},
	)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	return s
}

func newTracker(t *testing.T) (*Tracker, *storetest.Memory, *clock) {
	t.Helper()
	mem := storetest.NewMemory()
	c := &clock{t: time.Date(2026, 10, 19, 9, 0, 0, 0, time.Local)}
	return &Tracker{Persistence: mem, Schedule: testSchedule(t), Clock: c}, mem, c
}

func TestToggleWritesThrough(t *testing.T) {
	tr, mem, _ := newTracker(t)

	done, err := tr.Toggle("water")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !done {
		t.Fatal("expected water to be complete")
	}
	ids, _ := mem.Completions("2026-10-19")
	if !reflect.DeepEqual(ids, []string{"water"}) {
		t.Fatalf("expected persisted [water], got %v", ids)
	}
	if mem.Writes != 1 {
		t.Fatalf("expected one write, got %d", mem.Writes)
	}
}

func TestToggleTwiceRestoresPersistedValue(t *testing.T) {
	tr, mem, _ := newTracker(t)
	if _, err := tr.Toggle("read"); err != nil {
		t.Fatal(err)
	}
	before, _ := mem.Completions("2026-10-19")

	for i := 0; i < 2; i++ {
		if _, err := tr.Toggle("water"); err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
	}
	after, _ := mem.Completions("2026-10-19")
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("expected %v after double toggle, got %v", before, after)
	}
	if tr.Completed().Has("water") {
		t.Fatal("expected water to be incomplete again")
	}
}

func TestToggleUnknownTask(t *testing.T) {
	tr, mem, _ := newTracker(t)
	if _, err := tr.Toggle("nope"); !errors.Is(err, ErrUnknownTask) {
		t.Fatalf("expected ErrUnknownTask, got %v", err)
	}
	if mem.Writes != 0 {
		t.Fatal("expected no write for unknown task")
	}
}

func TestTogglePersistFailureKeepsState(t *testing.T) {
	tr, mem, _ := newTracker(t)
	mem.StoreCompletionsErr = errors.New("disk full")
	done, err := tr.Toggle("water")
	if err == nil {
		t.Fatal("expected error")
	}
	if done {
		t.Fatal("expected membership unchanged on failure")
	}
	if tr.Completed().Has("water") {
		t.Fatal("in-memory set must not run ahead of storage")
	}
}

func TestLoadFailsSoft(t *testing.T) {
	tr, mem, _ := newTracker(t)
	mem.CompletionsErr = errors.New("corrupt")
	cs := tr.Load("2026-10-19")
	if cs.Len() != 0 || cs.Day != "2026-10-19" {
		t.Fatalf("expected empty set, got %+v", cs)
	}
}

func TestReset(t *testing.T) {
	tr, mem, _ := newTracker(t)
	_, _ = tr.Toggle("water")
	_, _ = tr.Toggle("read")
	if err := tr.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if tr.Completed().Len() != 0 {
		t.Fatal("expected empty set after reset")
	}
	if mem.HasCompletions("2026-10-19") {
		t.Fatal("expected record removed after reset")
	}
}

func TestDayKeyTracksClock(t *testing.T) {
	tr, mem, c := newTracker(t)
	_, _ = tr.Toggle("water")

	c.t = c.t.Add(24 * time.Hour)
	if got := tr.DayKey(); got != day.Key("2026-10-20") {
		t.Fatalf("expected 2026-10-20, got %s", got)
	}
	if tr.Completed().Len() != 0 {
		t.Fatal("expected a fresh set on the new day")
	}
	if !mem.HasCompletions("2026-10-19") {
		t.Fatal("previous day's record must remain in storage")
	}
}

func TestCountInIgnoresStaleIDs(t *testing.T) {
	s := testSchedule(t)
	cs := NewCompletionSet("2026-10-19", []string{"water", "retired-task", "water", "read"})
	if cs.Len() != 3 {
		t.Fatalf("expected duplicates dropped, got %d", cs.Len())
	}
	if got := cs.CountIn(s); got != 2 {
		t.Fatalf("expected 2 known ids, got %d", got)
	}
}
