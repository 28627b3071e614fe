package openmeteo

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ngmaloney/weather-terminal/internal/remote"
)

const defaultBaseURL = "https://api.open-meteo.com"

var (
	hourlyFields = []string{
		"temperature_2m",
		"apparent_temperature",
		"relativehumidity_2m",
		"weathercode",
		"windspeed_10m",
		"winddirection_10m",
		"precipitation",
		"is_day",
	}
	dailyFields = []string{
		"weathercode",
		"temperature_2m_max",
		"temperature_2m_min",
		"sunrise",
		"sunset",
		"precipitation_sum",
		"windspeed_10m_max",
	}
)

// Units holds the optional unit parameters. Empty fields use the API
// defaults (Celsius, km/h).
type Units struct {
	Temperature string // "fahrenheit" or ""
	WindSpeed   string // "ms" or ""
}

// Client implements forecast lookups against the Open-Meteo API
type Client struct {
	baseURL string
	http    *remote.Client
}

// NewClient creates a new Open-Meteo client. An empty baseURL selects the
// public endpoint.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    remote.NewClient(remote.Options{Name: "open-meteo", Timeout: timeout}),
	}
}

// Hourly retrieves the hourly forecast (7 days, 24 entries per day).
func (c *Client) Hourly(ctx context.Context, lat, lon string, units Units) (*HourlyDTO, error) {
	params := c.params(lat, lon, units)
	params.Set("hourly", strings.Join(hourlyFields, ","))

	var dto HourlyDTO
	if err := c.http.GetJSON(ctx, c.baseURL+"/v1/forecast?"+params.Encode(), &dto); err != nil {
		return nil, fmt.Errorf("fetching hourly forecast: %w", err)
	}
	return &dto, nil
}

// Daily retrieves one aggregated record per day.
func (c *Client) Daily(ctx context.Context, lat, lon string, units Units) (*DailyDTO, error) {
	params := c.params(lat, lon, units)
	params.Set("daily", strings.Join(dailyFields, ","))

	var dto DailyDTO
	if err := c.http.GetJSON(ctx, c.baseURL+"/v1/forecast?"+params.Encode(), &dto); err != nil {
		return nil, fmt.Errorf("fetching daily forecast: %w", err)
	}
	return &dto, nil
}

func (c *Client) params(lat, lon string, units Units) url.Values {
	params := url.Values{}
	params.Set("latitude", lat)
	params.Set("longitude", lon)
	params.Set("timezone", "auto")
	if units.Temperature != "" {
		params.Set("temperature_unit", units.Temperature)
	}
	if units.WindSpeed != "" {
		params.Set("windspeed_unit", units.WindSpeed)
	}
	return params
}
