package models

import (
	"math"
	"strconv"
	"time"
)

// Location is a named place. It can be a transient geocoding result or a
// saved row in the local database.
type Location struct {
	City      string    `json:"city"`
	State     string    `json:"state"`
	Country   string    `json:"country"`
	Lat       float64   `json:"lat" validate:"latitude"`
	Long      float64   `json:"long" validate:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}

// LatKey is the persistence key of a location.
func (l Location) LatKey() string {
	return FormatCoord(l.Lat)
}

// DisplayName joins the non-empty name parts, e.g. "New York, New York, US"
func (l Location) DisplayName() string {
	name := ""
	for _, part := range []string{l.City, l.State, l.Country} {
		if part == "" {
			continue
		}
		if name != "" {
			name += ", "
		}
		name += part
	}
	return name
}

// Equal compares the user visible fields, ignoring CreatedAt.
func (l Location) Equal(o Location) bool {
	return l.City == o.City &&
		l.State == o.State &&
		l.Country == o.Country &&
		l.Lat == o.Lat &&
		l.Long == o.Long
}

// RoundToFour rounds a coordinate to 4 decimal places.
func RoundToFour(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// FormatCoord renders a coordinate the way it is sent to the APIs and stored.
func FormatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// HaversineDistance calculates distance in miles between two lat/lon points
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusMiles = 3959.0

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMiles * c
}
