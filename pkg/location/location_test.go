package location

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"tableflip.dev/routine/pkg/day"
	"tableflip.dev/routine/pkg/geo"
	"tableflip.dev/routine/pkg/store/storetest"
)

var home = geo.Place{Label: "New York, NY", Coordinate: geo.Coordinate{Latitude: 40.7128, Longitude: -74.0060}}

func TestCurrentDefaultsWhenUnset(t *testing.T) {
	p := &Preferences{Persistence: storetest.NewMemory(), Default: home}
	if got := p.Current("2026-10-19"); got != home.Coordinate {
		t.Fatalf("expected default, got %v", got)
	}
}

func TestCurrentDefaultsOnReadError(t *testing.T) {
	mem := storetest.NewMemory()
	mem.LocationErr = errors.New("corrupt")
	p := &Preferences{Persistence: mem, Default: home}
	if got := p.Current("2026-10-19"); got != home.Coordinate {
		t.Fatalf("expected default, got %v", got)
	}
}

func TestSetAndCurrent(t *testing.T) {
	p := &Preferences{Persistence: storetest.NewMemory(), Default: home}
	tokyo := geo.Coordinate{Latitude: 35.6895, Longitude: 139.6917}
	if err := p.Set("2026-10-19", tokyo); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := p.Current("2026-10-19"); got != tokyo {
		t.Fatalf("expected tokyo, got %v", got)
	}
	if got := p.Current("2026-10-20"); got != home.Coordinate {
		t.Fatalf("expected default on another day, got %v", got)
	}
	if err := p.Set("2026-10-19", geo.Coordinate{Latitude: 120}); err == nil {
		t.Fatal("expected invalid coordinate to be rejected")
	}
}

func TestResetToPurgesOtherDays(t *testing.T) {
	mem := storetest.NewMemory()
	p := &Preferences{Persistence: mem, Default: home}
	tokyo := geo.Coordinate{Latitude: 35.6895, Longitude: 139.6917}
	for _, d := range []day.Key{"2026-10-17", "2026-10-18", "2026-10-19"} {
		if err := p.Set(d, tokyo); err != nil {
			t.Fatal(err)
		}
	}
	if err := mem.StoreCompletions("2026-10-18", []string{"water"}); err != nil {
		t.Fatal(err)
	}

	if err := p.ResetTo(context.Background(), "2026-10-20"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if days := mem.LocationDays(context.Background()); !reflect.DeepEqual(days, []day.Key{"2026-10-20"}) {
		t.Fatalf("expected only the new day to remain, got %v", days)
	}
	if got := p.Current("2026-10-20"); got != home.Coordinate {
		t.Fatalf("expected default coordinate, got %v", got)
	}
	if !mem.HasCompletions("2026-10-18") {
		t.Fatal("completion records must not be purged")
	}
}
