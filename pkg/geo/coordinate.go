// Package geo holds coordinates and the geocoding services that turn place
// names into coordinates and back.
package geo

import (
	"fmt"
	"math"
)

// DefaultTolerance is how close, in degrees, a coordinate must be to the
// default location to reuse the default's label.
const DefaultTolerance = 0.01

// Coordinate is a latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Place is a coordinate with a human-readable label.
type Place struct {
	Label      string     `json:"label"`
	Coordinate Coordinate `json:"coordinate"`
}

// Near reports whether c and o differ by at most tol degrees on both axes.
func (c Coordinate) Near(o Coordinate, tol float64) bool {
	return math.Abs(c.Latitude-o.Latitude) <= tol && math.Abs(c.Longitude-o.Longitude) <= tol
}

// Valid reports whether c is a real point on the globe.
func (c Coordinate) Valid() bool {
	return !math.IsNaN(c.Latitude) && !math.IsNaN(c.Longitude) &&
		c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// String formats c as "{lat:.2f}°, {lon:.2f}°".
func (c Coordinate) String() string {
	return fmt.Sprintf("%.2f°, %.2f°", c.Latitude, c.Longitude)
}
