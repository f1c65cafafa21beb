package store

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/routine/pkg/geo"
)

// Config carries everything the routine needs to find its data and services.
type Config interface {
	BasePath() string
	SchedulePath() string
	Addr() string
	DefaultPlace() geo.Place
	WeatherURL() string
	GeocodePrimaryURL() string
	GeocodeFallbackURL() string
	ReverseFallbackURL() string
	HTTPTimeout() time.Duration
	LogLevel() string
}

// Defaults for every configuration key.
const (
	DefaultPath               = "~/.routine.db"
	DefaultAddr               = ":8080"
	DefaultWeatherURL         = "https://api.open-meteo.com/v1/forecast"
	DefaultGeocodePrimaryURL  = "https://nominatim.openstreetmap.org"
	DefaultGeocodeFallbackURL = "https://geocoding-api.open-meteo.com/v1/search"
	DefaultReverseFallbackURL = "https://api.bigdatacloud.net/data/reverse-geocode-client"
	DefaultLatitude           = 40.7128
	DefaultLongitude          = -74.0060
	DefaultLabel              = "New York, NY"
)

// LoadConfig reads .routine.yaml from $ROUTINE_CONFIG_PATH or the working
// directory. Every key can be overridden by a ROUTINE_ environment variable.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", DefaultPath)
	v.SetDefault("schedule", "")
	v.SetDefault("addr", DefaultAddr)
	v.SetDefault("location.latitude", DefaultLatitude)
	v.SetDefault("location.longitude", DefaultLongitude)
	v.SetDefault("location.label", DefaultLabel)
	v.SetDefault("weather.url", DefaultWeatherURL)
	v.SetDefault("geocode.primary", DefaultGeocodePrimaryURL)
	v.SetDefault("geocode.fallback", DefaultGeocodeFallbackURL)
	v.SetDefault("geocode.reverse_fallback", DefaultReverseFallbackURL)
	v.SetDefault("http.timeout", "10s")
	v.SetDefault("log.level", "info")

	v.SetConfigName(".routine") // .yaml is implicit
	v.SetEnvPrefix("ROUTINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("ROUTINE_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	return &FileConfig{
		Path:     path,
		Schedule: v.GetString("schedule"),
		Listen:   v.GetString("addr"),
		Place: geo.Place{
			Label: v.GetString("location.label"),
			Coordinate: geo.Coordinate{
				Latitude:  v.GetFloat64("location.latitude"),
				Longitude: v.GetFloat64("location.longitude"),
			},
		},
		Weather:         v.GetString("weather.url"),
		GeocodePrimary:  v.GetString("geocode.primary"),
		GeocodeFallback: v.GetString("geocode.fallback"),
		ReverseFallback: v.GetString("geocode.reverse_fallback"),
		Timeout:         v.GetDuration("http.timeout"),
		Level:           v.GetString("log.level"),
	}, nil
}

// FileConfig is the plain-struct Config. Tests build one directly.
type FileConfig struct {
	Path            string        `json:"path"`
	Schedule        string        `json:"schedule"`
	Listen          string        `json:"addr"`
	Place           geo.Place     `json:"location"`
	Weather         string        `json:"weatherURL"`
	GeocodePrimary  string        `json:"geocodePrimary"`
	GeocodeFallback string        `json:"geocodeFallback"`
	ReverseFallback string        `json:"reverseFallback"`
	Timeout         time.Duration `json:"timeout"`
	Level           string        `json:"logLevel"`
}

func (f *FileConfig) BasePath() string           { return f.Path }
func (f *FileConfig) SchedulePath() string       { return f.Schedule }
func (f *FileConfig) Addr() string               { return f.Listen }
func (f *FileConfig) DefaultPlace() geo.Place    { return f.Place }
func (f *FileConfig) WeatherURL() string         { return f.Weather }
func (f *FileConfig) GeocodePrimaryURL() string  { return f.GeocodePrimary }
func (f *FileConfig) GeocodeFallbackURL() string { return f.GeocodeFallback }
func (f *FileConfig) ReverseFallbackURL() string { return f.ReverseFallback }
func (f *FileConfig) HTTPTimeout() time.Duration { return f.Timeout }
func (f *FileConfig) LogLevel() string           { return f.Level }
