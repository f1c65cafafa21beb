package geo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"tableflip.dev/routine/pkg/fetch"
)

// Nominatim is the OpenStreetMap geocoder. It serves both directions and is
// tried first.
type Nominatim struct {
	BaseURL string
	Client  *http.Client
}

// Name implements Forwarder and Reverser.
func (n *Nominatim) Name() string { return "nominatim" }

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Address     struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		Suburb  string `json:"suburb"`
		State   string `json:"state"`
		Country string `json:"country"`
	} `json:"address"`
	Error string `json:"error"`
}

func (p nominatimPlace) label() string {
	a := p.Address
	locality := a.City
	if locality == "" {
		locality = a.Town
	}
	if locality == "" {
		locality = a.Village
	}
	if locality == "" {
		locality = a.Suburb
	}
	if l := joinLabel(locality, a.State); l != "" {
		return l
	}
	if l := joinLabel(a.Country); l != "" {
		return l
	}
	return firstParts(p.DisplayName, 2)
}

// Forward implements Forwarder.
func (n *Nominatim) Forward(ctx context.Context, query string) (Place, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "1")
	q.Set("addressdetails", "1")

	var results []nominatimPlace
	if err := fetch.JSON(ctx, n.Client, strings.TrimRight(n.BaseURL, "/")+"/search?"+q.Encode(), &results); err != nil {
		return Place{}, err
	}
	if len(results) == 0 {
		return Place{}, ErrNotFound
	}
	r := results[0]
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return Place{}, fmt.Errorf("parse latitude %q: %w", r.Lat, err)
	}
	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return Place{}, fmt.Errorf("parse longitude %q: %w", r.Lon, err)
	}
	label := r.label()
	if label == "" {
		label = query
	}
	return Place{Label: label, Coordinate: Coordinate{Latitude: lat, Longitude: lon}}, nil
}

// Reverse implements Reverser.
func (n *Nominatim) Reverse(ctx context.Context, c Coordinate) (string, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(c.Latitude, 'f', 6, 64))
	q.Set("lon", strconv.FormatFloat(c.Longitude, 'f', 6, 64))
	q.Set("format", "json")
	q.Set("zoom", "10")

	var r nominatimPlace
	if err := fetch.JSON(ctx, n.Client, strings.TrimRight(n.BaseURL, "/")+"/reverse?"+q.Encode(), &r); err != nil {
		return "", err
	}
	if r.Error != "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, r.Error)
	}
	if label := r.label(); label != "" {
		return label, nil
	}
	return "", ErrNotFound
}

// OpenMeteoGeocoder is the forward fallback.
type OpenMeteoGeocoder struct {
	URL    string
	Client *http.Client
}

// Name implements Forwarder.
func (o *OpenMeteoGeocoder) Name() string { return "open-meteo-geocoding" }

// Forward implements Forwarder.
func (o *OpenMeteoGeocoder) Forward(ctx context.Context, query string) (Place, error) {
	q := url.Values{}
	q.Set("name", query)
	q.Set("count", "1")
	q.Set("language", "en")
	q.Set("format", "json")

	var resp struct {
		Results []struct {
			Name      string  `json:"name"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Admin1    string  `json:"admin1"`
			Country   string  `json:"country"`
		} `json:"results"`
	}
	if err := fetch.JSON(ctx, o.Client, o.URL+"?"+q.Encode(), &resp); err != nil {
		return Place{}, err
	}
	if len(resp.Results) == 0 {
		return Place{}, ErrNotFound
	}
	r := resp.Results[0]
	label := joinLabel(r.Name, r.Admin1)
	if label == "" {
		label = query
	}
	return Place{Label: label, Coordinate: Coordinate{Latitude: r.Latitude, Longitude: r.Longitude}}, nil
}

// BigDataCloud is the reverse fallback.
type BigDataCloud struct {
	URL    string
	Client *http.Client
}

// Name implements Reverser.
func (b *BigDataCloud) Name() string { return "bigdatacloud" }

// Reverse implements Reverser.
func (b *BigDataCloud) Reverse(ctx context.Context, c Coordinate) (string, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(c.Latitude, 'f', 6, 64))
	q.Set("longitude", strconv.FormatFloat(c.Longitude, 'f', 6, 64))
	q.Set("localityLanguage", "en")

	var resp struct {
		City                 string `json:"city"`
		Locality             string `json:"locality"`
		PrincipalSubdivision string `json:"principalSubdivision"`
		CountryName          string `json:"countryName"`
	}
	if err := fetch.JSON(ctx, b.Client, b.URL+"?"+q.Encode(), &resp); err != nil {
		return "", err
	}
	locality := resp.City
	if locality == "" {
		locality = resp.Locality
	}
	label := joinLabel(locality, resp.PrincipalSubdivision)
	if label == "" {
		label = joinLabel(resp.CountryName)
	}
	if label == "" {
		return "", ErrNotFound
	}
	return label, nil
}

func firstParts(s string, n int) string {
	parts := strings.Split(s, ",")
	if len(parts) > n {
		parts = parts[:n]
	}
	return joinLabel(parts...)
}
