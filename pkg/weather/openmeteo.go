package weather

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"tableflip.dev/routine/pkg/fetch"
	"tableflip.dev/routine/pkg/geo"
)

// Reading is the raw forecast data a Provider returns, before rounding.
type Reading struct {
	TemperatureC float64
	HumidityPct  float64
	WeatherCode  int
	HighC        float64
	LowC         float64
	UVIndex      float64
}

// Provider abstracts a forecast service.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, c geo.Coordinate) (Reading, error)
}

// ErrMalformed is returned when the forecast body is missing fields.
var ErrMalformed = errors.New("weather: malformed forecast")

// OpenMeteo queries the Open-Meteo forecast API.
type OpenMeteo struct {
	URL    string
	Client *http.Client
}

// Name implements Provider.
func (o *OpenMeteo) Name() string { return "open-meteo" }

type openMeteoResponse struct {
	Current *struct {
		Temperature2m      *float64 `json:"temperature_2m"`
		RelativeHumidity2m *float64 `json:"relative_humidity_2m"`
		WeatherCode        *int     `json:"weather_code"`
	} `json:"current"`
	Daily *struct {
		Temperature2mMax []float64 `json:"temperature_2m_max"`
		Temperature2mMin []float64 `json:"temperature_2m_min"`
		UVIndexMax       []float64 `json:"uv_index_max"`
	} `json:"daily"`
}

// Fetch implements Provider.
func (o *OpenMeteo) Fetch(ctx context.Context, c geo.Coordinate) (Reading, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(c.Latitude, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(c.Longitude, 'f', 4, 64))
	q.Set("current", "temperature_2m,relative_humidity_2m,weather_code")
	q.Set("daily", "temperature_2m_max,temperature_2m_min,uv_index_max")
	q.Set("timezone", "auto")
	q.Set("forecast_days", "1")

	var resp openMeteoResponse
	if err := fetch.JSON(ctx, o.Client, o.URL+"?"+q.Encode(), &resp); err != nil {
		return Reading{}, err
	}

	cur, daily := resp.Current, resp.Daily
	if cur == nil || daily == nil ||
		cur.Temperature2m == nil || cur.WeatherCode == nil ||
		len(daily.Temperature2mMax) == 0 || len(daily.Temperature2mMin) == 0 {
		return Reading{}, ErrMalformed
	}

	r := Reading{
		TemperatureC: *cur.Temperature2m,
		WeatherCode:  *cur.WeatherCode,
		HighC:        daily.Temperature2mMax[0],
		LowC:         daily.Temperature2mMin[0],
	}
	if cur.RelativeHumidity2m != nil {
		r.HumidityPct = *cur.RelativeHumidity2m
	}
	if len(daily.UVIndexMax) > 0 {
		r.UVIndex = daily.UVIndexMax[0]
	}
	return r, nil
}

// Snapshot rounds r into a Snapshot labelled label.
func (r Reading) Snapshot(label string) Snapshot {
	return Snapshot{
		TemperatureC:  round(r.TemperatureC),
		TemperatureF:  Fahrenheit(r.TemperatureC),
		HighC:         round(r.HighC),
		HighF:         Fahrenheit(r.HighC),
		LowC:          round(r.LowC),
		LowF:          Fahrenheit(r.LowC),
		Description:   Describe(r.WeatherCode),
		Condition:     Categorize(r.WeatherCode),
		UVIndex:       round(r.UVIndex),
		Humidity:      round(r.HumidityPct),
		LocationLabel: label,
	}
}
