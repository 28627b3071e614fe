package geocoding

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/remote"
)

const (
	defaultBaseURL = "https://api.openweathermap.org"
	searchLimit    = 5
)

// GeoResult is one entry of the OpenWeatherMap geocoding response
type GeoResult struct {
	Name       string            `json:"name"`
	LocalNames map[string]string `json:"local_names,omitempty"`
	Lat        float64           `json:"lat"`
	Lon        float64           `json:"lon"`
	Country    string            `json:"country"`
	State      string            `json:"state,omitempty"`
}

// ToLocation maps a result onto a Location with coordinates rounded to 4
// decimal places.
func (g GeoResult) ToLocation() models.Location {
	return models.Location{
		City:    g.Name,
		State:   g.State,
		Country: g.Country,
		Lat:     models.RoundToFour(g.Lat),
		Long:    models.RoundToFour(g.Lon),
	}
}

// Client converts place names to coordinates and back
type Client struct {
	baseURL string
	apiKey  string
	http    *remote.Client
}

// NewClient creates a new geocoding client. An empty baseURL selects the
// public OpenWeatherMap endpoint.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		// The free geocoding tier allows 60 calls/minute
		http: remote.NewClient(remote.Options{
			Name:    "geocoding",
			Timeout: timeout,
			RPS:     1,
			Burst:   1,
		}),
	}
}

// Direct looks up places matching name. An empty slice means no match.
func (c *Client) Direct(ctx context.Context, name string) ([]GeoResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	params := url.Values{}
	params.Set("q", name)
	params.Set("limit", fmt.Sprint(searchLimit))
	params.Set("appid", c.apiKey)

	var results []GeoResult
	if err := c.http.GetJSON(ctx, c.baseURL+"/geo/1.0/direct?"+params.Encode(), &results); err != nil {
		return nil, fmt.Errorf("direct geocoding %q: %w", name, err)
	}
	return results, nil
}

// Reverse looks up the place names at a coordinate.
func (c *Client) Reverse(ctx context.Context, lat, lon string) ([]GeoResult, error) {
	params := url.Values{}
	params.Set("lat", lat)
	params.Set("lon", lon)
	params.Set("limit", "1")
	params.Set("appid", c.apiKey)

	var results []GeoResult
	if err := c.http.GetJSON(ctx, c.baseURL+"/geo/1.0/reverse?"+params.Encode(), &results); err != nil {
		return nil, fmt.Errorf("reverse geocoding %s,%s: %w", lat, lon, err)
	}
	return results, nil
}
