// Package devicelocation resolves where the user currently is. A terminal
// has no GPS, so the position is either pinned in configuration or
// approximated from the public IP address.
package devicelocation

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/remote"
	"github.com/ngmaloney/weather-terminal/internal/result"
)

// User facing messages
const (
	MsgNoLocation = "Couldn't retrieve location"
	MsgNoNetwork  = "Couldn't reach server check your internet connection"
)

// Coordinate is a device position
type Coordinate struct {
	Lat  float64
	Long float64
}

// ToLocation turns the position into an unnamed Location.
func (c Coordinate) ToLocation() models.Location {
	return models.Location{
		Lat:  models.RoundToFour(c.Lat),
		Long: models.RoundToFour(c.Long),
	}
}

// Client acquires the device position once per call: the sequence is
// Loading followed by exactly one Success or Error.
type Client interface {
	Location(ctx context.Context) <-chan result.Result[Coordinate]
}

// Static always reports the same coordinate
type Static struct {
	Coordinate Coordinate
}

// NewStatic creates a client pinned to lat/lon
func NewStatic(lat, lon float64) *Static {
	return &Static{Coordinate: Coordinate{Lat: lat, Long: lon}}
}

func (s *Static) Location(ctx context.Context) <-chan result.Result[Coordinate] {
	return result.Stream(ctx, func(ctx context.Context) result.Result[Coordinate] {
		return result.Success(s.Coordinate)
	})
}

// IPLookup approximates the position from an ip-api.com compatible endpoint
type IPLookup struct {
	url  string
	http *remote.Client
}

// NewIPLookup creates an IP based location client
func NewIPLookup(url string, timeout time.Duration) *IPLookup {
	return &IPLookup{
		url: url,
		// ip-api.com allows 45 requests per minute
		http: remote.NewClient(remote.Options{Name: "ip-location", Timeout: timeout, RPS: 0.5, Burst: 1}),
	}
}

type ipResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	City    string  `json:"city"`
}

func (c *IPLookup) Location(ctx context.Context) <-chan result.Result[Coordinate] {
	return result.Stream(ctx, func(ctx context.Context) result.Result[Coordinate] {
		var resp ipResponse
		if err := c.http.GetJSON(ctx, c.url, &resp); err != nil {
			log.Printf("device location lookup failed: %v", err)
			if remote.IsTransport(err) {
				return result.Error[Coordinate](MsgNoNetwork)
			}
			return result.Error[Coordinate](MsgNoLocation)
		}

		if resp.Status != "" && resp.Status != "success" {
			log.Printf("device location lookup rejected: %s", resp.Message)
			return result.Error[Coordinate](MsgNoLocation)
		}

		return result.Success(Coordinate{Lat: resp.Lat, Long: resp.Lon})
	})
}

// Describe names the source for the status line.
func Describe(c Client) string {
	switch v := c.(type) {
	case *Static:
		return fmt.Sprintf("pinned %.4f, %.4f", v.Coordinate.Lat, v.Coordinate.Long)
	case *IPLookup:
		return "approximate (IP)"
	}
	return "device"
}
