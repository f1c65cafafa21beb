// Package history prints completion history and the current streak.
package history

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/routine/pkg/app"
	"tableflip.dev/routine/pkg/day"
	"tableflip.dev/routine/pkg/printers"
)

// History reports the last Days days ending with the session day.
type History struct {
	Session  *app.Session
	Days     int
	Calendar bool
	JSON     bool
	Out      io.Writer
}

func (h *History) Do(ctx context.Context) error {
	if h.Session == nil {
		return errors.New("can not show history, no session")
	}
	until := h.Session.Day()
	end, err := until.Time()
	if err != nil {
		return err
	}

	since := day.Of(end.AddDate(0, 0, 1-h.Days))
	if h.Calendar {
		since = day.Of(end.AddDate(0, 0, 1-end.Day()))
	}

	res, err := h.Session.Report(ctx, since, until)
	if err != nil {
		return err
	}
	if h.JSON {
		return printers.JSON(h.Out, res)
	}

	pp := printers.PrettyPrint{Out: h.Out}
	pp.NewLine()
	if h.Calendar {
		pp.Calendar(end, res.Days)
		pp.NewLine()
		return nil
	}
	pp.History(res)
	return nil
}
