package options

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLoggerLevel(t *testing.T) {
	cases := []struct {
		flag, fallback string
		want           log.Level
	}{
		{"", "debug", log.DebugLevel},
		{"warn", "debug", log.WarnLevel},
		{"ERROR", "", log.ErrorLevel},
		{"", "bogus", log.InfoLevel},
	}
	for _, tc := range cases {
		o := &LogOptions{Level: tc.flag}
		if got := o.Logger(tc.fallback).GetLevel(); got != tc.want {
			t.Errorf("Logger(%q, %q) level = %v, want %v", tc.flag, tc.fallback, got, tc.want)
		}
	}
}

func TestConfirmYesSkipsPrompt(t *testing.T) {
	o := &ConfirmOptions{Yes: true}
	var out bytes.Buffer
	ok, err := o.Confirm(os.Stdin, &out, "Sure?")
	if err != nil || !ok {
		t.Fatalf("got %v %v", ok, err)
	}
	if out.Len() != 0 {
		t.Fatalf("unexpected prompt %q", out.String())
	}
}

func TestConfirmRefusesWithoutTerminal(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()
	_, _ = w.WriteString("y\n")

	o := &ConfirmOptions{}
	ok, err := o.Confirm(r, &bytes.Buffer{}, "Sure?")
	if ok || !errors.Is(err, ErrNotConfirmed) {
		t.Fatalf("got %v %v", ok, err)
	}
}

func TestHistoryValidate(t *testing.T) {
	o := &HistoryOptions{Last: "2w"}
	if err := o.Validate(366); err != nil || o.Days != 14 {
		t.Fatalf("got %d %v", o.Days, err)
	}
	o = &HistoryOptions{Last: "60w"}
	if err := o.Validate(366); err == nil {
		t.Fatal("expected window over the limit to fail")
	}
	o = &HistoryOptions{Last: "soon"}
	if err := o.Validate(366); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestHandleErrorJSON(t *testing.T) {
	o := &OutputOptions{JSON: true}
	if err := o.HandleError(errors.New("boom")); err != nil {
		t.Fatalf("json mode should swallow the error, got %v", err)
	}
	o.JSON = false
	if err := o.HandleError(errors.New("boom")); err == nil {
		t.Fatal("expected error passed through")
	}
}
