// Package serve runs the checklist web page.
package serve

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"tableflip.dev/routine/pkg/app"
	"tableflip.dev/routine/pkg/web"
)

// Serve runs the web server and keeps the session current until ctx is
// done.
type Serve struct {
	Session *app.Session
	Addr    string
	Logger  *log.Logger
}

func (s *Serve) logger() *log.Logger {
	if s.Logger == nil {
		return log.Default()
	}
	return s.Logger
}

func (s *Serve) Do(ctx context.Context) error {
	if s.Session == nil {
		return errors.New("can not serve, no session")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		if err := s.Session.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			s.logger().Error("session monitor stopped", "err", err)
		}
	}()

	return web.New(s.Session, s.Addr, s.logger()).Run(ctx)
}
