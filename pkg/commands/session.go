package commands

import (
	"context"

	"github.com/charmbracelet/log"

	"tableflip.dev/routine/pkg/app"
	"tableflip.dev/routine/pkg/day"
	"tableflip.dev/routine/pkg/fetch"
	"tableflip.dev/routine/pkg/geo"
	"tableflip.dev/routine/pkg/schedule"
	"tableflip.dev/routine/pkg/store"
	"tableflip.dev/routine/pkg/weather"
)

// env is everything a command needs, built from config.
type env struct {
	Config      store.Config
	Persistence store.Persistence
	Schedule    *schedule.Schedule
	Session     *app.Session
	Logger      *log.Logger
}

func loadEnv(ctx context.Context) (*env, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger := logs.Logger(cfg.LogLevel())

	p, err := store.Load(cfg, store.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	client := fetch.Client(cfg.HTTPTimeout())
	sched, err := schedule.Load(ctx, cfg.SchedulePath(), client)
	if err != nil {
		logger.Warn("schedule unavailable, showing no tasks", "source", cfg.SchedulePath(), "err", err)
		sched = schedule.Empty()
	}

	nominatim := &geo.Nominatim{BaseURL: cfg.GeocodePrimaryURL(), Client: client}
	w := &weather.Widget{
		Provider:  &weather.OpenMeteo{URL: cfg.WeatherURL(), Client: client},
		Generator: weather.NewMock(),
		Labeler: geo.Labeler{
			Reverser: geo.ReverseChain{nominatim, &geo.BigDataCloud{URL: cfg.ReverseFallbackURL(), Client: client}},
			Default:  cfg.DefaultPlace(),
		},
		Logger: logger,
	}

	logger.Debug("config loaded", "path", cfg.BasePath(), "tasks", sched.TotalTasks())

	return &env{
		Config:      cfg,
		Persistence: p,
		Schedule:    sched,
		Logger:      logger,
		Session: &app.Session{
			Persistence: p,
			Schedule:    sched,
			Clock:       day.SystemClock{},
			Default:     cfg.DefaultPlace(),
			Geocoder:    geo.ForwardChain{nominatim, &geo.OpenMeteoGeocoder{URL: cfg.GeocodeFallbackURL(), Client: client}},
			Forecast:    w,
			Logger:      logger,
		},
	}, nil
}
