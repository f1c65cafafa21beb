// Package info prints where the routine keeps its data and what it talks to.
package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/routine/pkg/app"
	"tableflip.dev/routine/pkg/printers"
	"tableflip.dev/routine/pkg/store"
)

type Info struct {
	Config      store.Config
	Persistence store.Persistence
	Session     *app.Session
	JSON        bool
	Out         io.Writer
}

// Report is the JSON form of Info.
type Report struct {
	ConfigPath   string    `json:"configPath,omitempty"`
	Path         string    `json:"path"`
	Schedule     string    `json:"schedule"`
	Addr         string    `json:"addr"`
	Weather      string    `json:"weatherURL"`
	Geocoder     string    `json:"geocoderURL"`
	Session      *app.Info `json:"session,omitempty"`
	LocationDays []string  `json:"locationDays"`
}

func (n *Info) out() io.Writer {
	if n.Out == nil {
		return color.Output
	}
	return n.Out
}

func (n *Info) Do(ctx context.Context) error {
	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}
	if n.Persistence == nil {
		return fmt.Errorf("Failed to create persistence object.")
	}

	r := Report{
		ConfigPath:   os.Getenv("ROUTINE_CONFIG_PATH"),
		Path:         n.Config.BasePath(),
		Schedule:     n.Config.SchedulePath(),
		Addr:         n.Config.Addr(),
		Weather:      n.Config.WeatherURL(),
		Geocoder:     n.Config.GeocodePrimaryURL(),
		LocationDays: []string{},
	}
	if r.Schedule == "" {
		r.Schedule = "(bundled)"
	}
	if n.Session != nil {
		i := n.Session.Info()
		r.Session = &i
	}
	for _, d := range n.Persistence.LocationDays(ctx) {
		r.LocationDays = append(r.LocationDays, string(d))
	}

	if n.JSON {
		return printers.JSON(n.Out, r)
	}

	if r.ConfigPath != "" {
		_, _ = fmt.Fprintln(n.out(), "ROUTINE_CONFIG_PATH found on env, using", r.ConfigPath)
	} else {
		_, _ = fmt.Fprintln(n.out(), "ROUTINE_CONFIG_PATH env var not set")
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("path"), r.Path)
	tbl.AddRow(bold.Sprint("schedule"), r.Schedule)
	tbl.AddRow(bold.Sprint("addr"), r.Addr)
	tbl.AddRow(bold.Sprint("weather"), r.Weather)
	tbl.AddRow(bold.Sprint("geocoder"), r.Geocoder)
	if r.Session != nil {
		tbl.AddRow(bold.Sprint("session"), fmt.Sprintf("%s (%s)", r.Session.ID, r.Session.Day))
	}
	_, _ = fmt.Fprintln(n.out(), tbl)

	_, _ = fmt.Fprintln(n.out(), "Location overrides:")
	if len(r.LocationDays) == 0 {
		_, _ = fmt.Fprintf(n.out(), "  %s\n", "none")
	}
	for _, d := range r.LocationDays {
		_, _ = fmt.Fprintf(n.out(), "  %s\n", d)
	}
	return nil
}
