// Package status prints today's checklist.
package status

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/muesli/termenv"

	"tableflip.dev/routine/pkg/app"
	"tableflip.dev/routine/pkg/printers"
	"tableflip.dev/routine/pkg/rollover"
)

// Status prints the dashboard once, or keeps redrawing it when Follow is
// set until ctx is done.
type Status struct {
	Session *app.Session
	ShowID  bool
	JSON    bool
	Follow  bool
	Out     io.Writer
	Logger  *log.Logger

	// Interval between redraws while following; rollover.DefaultInterval
	// when zero.
	Interval time.Duration
}

func (s *Status) out() io.Writer {
	if s.Out == nil {
		return color.Output
	}
	return s.Out
}

func (s *Status) logger() *log.Logger {
	if s.Logger == nil {
		return log.Default()
	}
	return s.Logger
}

func (s *Status) Do(ctx context.Context) error {
	if s.Session == nil {
		return errors.New("can not show status, no session")
	}
	// Fill the weather panel first so the dashboard carries it. Later
	// redraws pick up the background refresh the dashboard starts.
	s.Session.Weather(ctx)
	if !s.Follow {
		return s.print(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	monitor := s.Session.Monitor()
	go func() { _ = monitor.Run(ctx) }()

	events, err := s.Session.Watch(ctx)
	if err != nil {
		s.logger().Warn("store watch unavailable, polling only", "err", err)
	}

	interval := s.Interval
	if interval <= 0 {
		interval = rollover.DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	term := termenv.NewOutput(s.out())
	for {
		if !s.JSON {
			term.ClearScreen()
		}
		if err := s.print(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			s.Session.Invalidate(ev)
		case <-ticker.C:
		}
	}
}

func (s *Status) print(ctx context.Context) error {
	dash := s.Session.Dashboard(ctx)
	if s.JSON {
		return printers.JSON(s.Out, dash)
	}
	pp := printers.PrettyPrint{Out: s.Out, ShowID: s.ShowID}
	pp.Dashboard(dash)
	return nil
}
