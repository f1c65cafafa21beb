// Package weather resolves a coordinate to current conditions and the day's
// forecast, falling back to generated conditions when the service is down.
package weather

import (
	"math"
)

// Condition is the coarse category used to pick an icon and colour.
type Condition string

const (
	Clear        Condition = "clear"
	Clouds       Condition = "clouds"
	Rain         Condition = "rain"
	Snow         Condition = "snow"
	Thunderstorm Condition = "thunderstorm"
)

// Snapshot is one rendering of the weather widget. It is never persisted.
type Snapshot struct {
	TemperatureC  int       `json:"temperatureC"`
	TemperatureF  int       `json:"temperatureF"`
	HighC         int       `json:"highC"`
	HighF         int       `json:"highF"`
	LowC          int       `json:"lowC"`
	LowF          int       `json:"lowF"`
	Description   string    `json:"description"`
	Condition     Condition `json:"condition"`
	UVIndex       int       `json:"uvIndex"`
	Humidity      int       `json:"humidity"`
	LocationLabel string    `json:"locationLabel"`
}

// Position is where the current temperature sits between the day's low and
// high, as a percentage of the gauge.
func (s Snapshot) Position() float64 {
	return Position(float64(s.TemperatureC), float64(s.LowC), float64(s.HighC))
}

// Position returns (current-low)/(high-low)*100 clamped to [5, 95], or 50
// when the range is empty or inverted.
func Position(current, low, high float64) float64 {
	if high <= low {
		return 50
	}
	p := (current - low) / (high - low) * 100
	return math.Min(95, math.Max(5, p))
}

// Categorize maps a WMO weather code to a Condition:
// 0-1 clear, 2-3 clouds, 51-65 rain, 71-75 snow, 95 thunderstorm, else clear.
func Categorize(code int) Condition {
	switch {
	case code >= 0 && code <= 1:
		return Clear
	case code >= 2 && code <= 3:
		return Clouds
	case code >= 51 && code <= 65:
		return Rain
	case code >= 71 && code <= 75:
		return Snow
	case code == 95:
		return Thunderstorm
	default:
		return Clear
	}
}

var descriptions = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	56: "Light freezing drizzle",
	57: "Dense freezing drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	66: "Light freezing rain",
	67: "Heavy freezing rain",
	71: "Slight snow fall",
	73: "Moderate snow fall",
	75: "Heavy snow fall",
	77: "Snow grains",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Slight snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

// Describe returns the human description of a WMO weather code.
func Describe(code int) string {
	if d, ok := descriptions[code]; ok {
		return d
	}
	return "Unknown"
}

// Fahrenheit converts c and rounds, so each value is derived from its own
// Celsius reading rather than a rounded one.
func Fahrenheit(c float64) int {
	return round(c*9/5 + 32)
}

// round rounds half toward positive infinity.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}
