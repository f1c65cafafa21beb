// Package widgets prints the weather, the quote of the day and the schedule.
package widgets

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/routine/pkg/app"
	"tableflip.dev/routine/pkg/printers"
	"tableflip.dev/routine/pkg/schedule"
)

var errNoSession = errors.New("no session")

// Weather prints the weather for today's location.
type Weather struct {
	Session *app.Session
	JSON    bool
	Out     io.Writer
}

func (w *Weather) Do(ctx context.Context) error {
	if w.Session == nil {
		return errNoSession
	}
	out := w.Session.Weather(ctx)
	if w.JSON {
		return printers.JSON(w.Out, out)
	}
	pp := printers.PrettyPrint{Out: w.Out}
	pp.Weather(out)
	return nil
}

// Quote prints the quote of the day.
type Quote struct {
	Session *app.Session
	JSON    bool
	Out     io.Writer
	Width   int
}

func (q *Quote) Do(_ context.Context) error {
	if q.Session == nil {
		return errNoSession
	}
	quote := q.Session.Quote()
	if q.JSON {
		return printers.JSON(q.Out, quote)
	}
	pp := printers.PrettyPrint{Out: q.Out, Width: q.Width}
	pp.Quote(quote)
	return nil
}

// Schedule prints the loaded schedule with task ids.
type Schedule struct {
	Schedule *schedule.Schedule
	JSON     bool
	Out      io.Writer
}

func (s *Schedule) Do(_ context.Context) error {
	if s.Schedule == nil {
		return errors.New("no schedule loaded")
	}
	if s.JSON {
		return printers.JSON(s.Out, s.Schedule.Sections())
	}
	pp := printers.PrettyPrint{Out: s.Out}
	pp.Schedule(s.Schedule)
	return nil
}
