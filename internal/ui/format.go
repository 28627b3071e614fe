package ui

import (
	"fmt"
	"math"
	"time"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

var compassPoints = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// formatTemp formats a temperature with its unit, e.g. "72°F"
func formatTemp(v float64, units models.Units) string {
	unit := units.Temperature
	if unit == "" {
		unit = "°C"
	}
	return fmt.Sprintf("%.0f%s", v, unit)
}

// formatWind formats a wind speed and direction, e.g. "NW 12 km/h"
func formatWind(speed, degrees float64, units models.Units) string {
	unit := units.WindSpeed
	if unit == "" {
		unit = "km/h"
	}
	return fmt.Sprintf("%s %.0f %s", compass(degrees), speed, unit)
}

// compass converts degrees to the nearest of eight compass points
func compass(degrees float64) string {
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	return compassPoints[int(math.Round(d/45))%len(compassPoints)]
}

// dayLabel names a forecast day relative to now
func dayLabel(date, now time.Time) string {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	today := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	day := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)

	switch int(day.Sub(today).Hours() / 24) {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	}
	return date.Format("Mon Jan 2")
}
