package models

import "time"

// Units describes the units a forecast was requested in.
type Units struct {
	Temperature string // "°C" or "°F"
	WindSpeed   string // "km/h" or "m/s"
}

// HourlyForecast is a single hour of forecast data
type HourlyForecast struct {
	Time                time.Time
	Hour                int // 0-23
	Temperature         float64
	ApparentTemperature float64
	Humidity            float64 // percent
	WeatherCode         int     // WMO code
	WindSpeed           float64
	WindDirection       float64 // degrees
	Precipitation       float64 // mm
	IsDay               bool
	Units               Units
}

// Conditions returns a short description of the weather code.
func (h HourlyForecast) Conditions() string {
	return Conditions(h.WeatherCode)
}

// HourlyForecasts groups hourly records by day index, 0 being the first day
// of the response. Each day holds up to 24 records ordered by hour.
type HourlyForecasts map[int][]HourlyForecast

// At returns the forecast for the given day and hour.
func (f HourlyForecasts) At(day, hour int) (HourlyForecast, bool) {
	hours, ok := f[day]
	if !ok || hour < 0 || hour >= len(hours) {
		return HourlyForecast{}, false
	}
	return hours[hour], true
}

// DayWiseForecast is the aggregated forecast for one calendar day
type DayWiseForecast struct {
	Date             time.Time
	WeatherCode      int
	TempMax          float64
	TempMin          float64
	Sunrise          time.Time
	Sunset           time.Time
	PrecipitationSum float64 // mm
	WindSpeedMax     float64
	Units            Units
}

// Conditions returns a short description of the weather code.
func (d DayWiseForecast) Conditions() string {
	return Conditions(d.WeatherCode)
}

// SavedLocationOverview pairs a saved place with its forecast for the
// current hour.
type SavedLocationOverview struct {
	Location Location
	Forecast HourlyForecast
	Distance float64 // miles from the device location, 0 when unknown
}

// Conditions maps a WMO weather interpretation code to a description.
func Conditions(code int) string {
	switch {
	case code == 0:
		return "Clear sky"
	case code == 1:
		return "Mainly clear"
	case code == 2:
		return "Partly cloudy"
	case code == 3:
		return "Overcast"
	case code == 45 || code == 48:
		return "Fog"
	case code >= 51 && code <= 57:
		return "Drizzle"
	case code >= 61 && code <= 67:
		return "Rain"
	case code >= 71 && code <= 77:
		return "Snow"
	case code >= 80 && code <= 82:
		return "Rain showers"
	case code == 85 || code == 86:
		return "Snow showers"
	case code >= 95:
		return "Thunderstorm"
	default:
		return "Unknown"
	}
}
