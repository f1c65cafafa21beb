// Package reset clears today's checklist.
package reset

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/routine/pkg/app"
	"tableflip.dev/routine/pkg/printers"
)

// Reset clears every completion for the session day. Confirmed must be set
// by the caller; an unconfirmed reset changes nothing.
type Reset struct {
	Session   *app.Session
	Confirmed bool
	JSON      bool
	Out       io.Writer
}

func (r *Reset) out() io.Writer {
	if r.Out == nil {
		return color.Output
	}
	return r.Out
}

func (r *Reset) Do(ctx context.Context) error {
	if r.Session == nil {
		return errors.New("can not reset, no session")
	}
	if !r.Confirmed {
		if r.JSON {
			return printers.JSON(r.Out, map[string]bool{"reset": false})
		}
		_, _ = fmt.Fprintln(r.out(), "Reset cancelled.")
		return nil
	}
	if err := r.Session.Reset(ctx); err != nil {
		return err
	}
	summary := r.Session.Summary()
	if r.JSON {
		return printers.JSON(r.Out, map[string]interface{}{"reset": true, "summary": summary})
	}
	_, _ = fmt.Fprintf(r.out(), "Cleared progress for %s.\n", r.Session.Day())
	pp := printers.PrettyPrint{Out: r.Out}
	pp.Summary(summary)
	return nil
}
