// Package location sets today's weather location from a place name.
package location

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/routine/pkg/app"
	"tableflip.dev/routine/pkg/printers"
)

// Location geocodes Query and stores it for the session day. An empty
// Query prints the location in effect instead.
type Location struct {
	Query   string
	Session *app.Session
	JSON    bool
	Out     io.Writer
}

func (l *Location) out() io.Writer {
	if l.Out == nil {
		return color.Output
	}
	return l.Out
}

func (l *Location) Do(ctx context.Context) error {
	if l.Session == nil {
		return errors.New("can not set location, no session")
	}

	if l.Query == "" {
		view := l.Session.Dashboard(ctx).Location
		if l.JSON {
			return printers.JSON(l.Out, view)
		}
		suffix := ""
		if view.IsDefault {
			suffix = " (default)"
		}
		_, _ = fmt.Fprintf(l.out(), "%s%s\n", view.Coordinate, suffix)
		return nil
	}

	place, err := l.Session.SetLocation(ctx, l.Query)
	if err != nil {
		return fmt.Errorf("could not find %q: %w", l.Query, err)
	}
	if l.JSON {
		return printers.JSON(l.Out, place)
	}
	_, _ = fmt.Fprintf(l.out(), "Location set to %s (%s)\n", place.Label, place.Coordinate)

	pp := printers.PrettyPrint{Out: l.Out}
	pp.Weather(l.Session.Weather(ctx))
	return nil
}
