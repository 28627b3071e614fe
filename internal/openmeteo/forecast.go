package openmeteo

import (
	"time"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

const (
	hourLayout = "2006-01-02T15:04"
	dayLayout  = "2006-01-02"
)

// HourlyDTO is the raw hourly forecast response
type HourlyDTO struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Timezone         string  `json:"timezone"`
	UTCOffsetSeconds int     `json:"utc_offset_seconds"`
	HourlyUnits      struct {
		Temperature string `json:"temperature_2m"`
		WindSpeed   string `json:"windspeed_10m"`
	} `json:"hourly_units"`
	Hourly struct {
		Time                []string  `json:"time"`
		Temperature         []float64 `json:"temperature_2m"`
		ApparentTemperature []float64 `json:"apparent_temperature"`
		RelativeHumidity    []float64 `json:"relativehumidity_2m"`
		WeatherCode         []int     `json:"weathercode"`
		WindSpeed           []float64 `json:"windspeed_10m"`
		WindDirection       []float64 `json:"winddirection_10m"`
		Precipitation       []float64 `json:"precipitation"`
		IsDay               []int     `json:"is_day"`
	} `json:"hourly"`
}

// DailyDTO is the raw daily forecast response
type DailyDTO struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Timezone         string  `json:"timezone"`
	UTCOffsetSeconds int     `json:"utc_offset_seconds"`
	DailyUnits       struct {
		Temperature string `json:"temperature_2m_max"`
		WindSpeed   string `json:"windspeed_10m_max"`
	} `json:"daily_units"`
	Daily struct {
		Time             []string  `json:"time"`
		WeatherCode      []int     `json:"weathercode"`
		TempMax          []float64 `json:"temperature_2m_max"`
		TempMin          []float64 `json:"temperature_2m_min"`
		Sunrise          []string  `json:"sunrise"`
		Sunset           []string  `json:"sunset"`
		PrecipitationSum []float64 `json:"precipitation_sum"`
		WindSpeedMax     []float64 `json:"windspeed_10m_max"`
	} `json:"daily"`
}

// ToHourlyForecasts groups the hourly series into days: entry i belongs to
// day i/24 at hour i%24.
func (d *HourlyDTO) ToHourlyForecasts() models.HourlyForecasts {
	loc := zone(d.Timezone, d.UTCOffsetSeconds)
	units := models.Units{Temperature: d.HourlyUnits.Temperature, WindSpeed: d.HourlyUnits.WindSpeed}
	h := d.Hourly

	forecasts := make(models.HourlyForecasts)
	for i, raw := range h.Time {
		ts, _ := time.ParseInLocation(hourLayout, raw, loc)

		day := i / 24
		forecasts[day] = append(forecasts[day], models.HourlyForecast{
			Time:                ts,
			Hour:                i % 24,
			Temperature:         at(h.Temperature, i),
			ApparentTemperature: at(h.ApparentTemperature, i),
			Humidity:            at(h.RelativeHumidity, i),
			WeatherCode:         at(h.WeatherCode, i),
			WindSpeed:           at(h.WindSpeed, i),
			WindDirection:       at(h.WindDirection, i),
			Precipitation:       at(h.Precipitation, i),
			IsDay:               at(h.IsDay, i) == 1,
			Units:               units,
		})
	}
	return forecasts
}

// ToDailyForecasts maps the daily series to one record per day.
func (d *DailyDTO) ToDailyForecasts() []models.DayWiseForecast {
	loc := zone(d.Timezone, d.UTCOffsetSeconds)
	units := models.Units{Temperature: d.DailyUnits.Temperature, WindSpeed: d.DailyUnits.WindSpeed}
	dl := d.Daily

	forecasts := make([]models.DayWiseForecast, 0, len(dl.Time))
	for i, raw := range dl.Time {
		date, _ := time.ParseInLocation(dayLayout, raw, loc)
		sunrise, _ := time.ParseInLocation(hourLayout, at(dl.Sunrise, i), loc)
		sunset, _ := time.ParseInLocation(hourLayout, at(dl.Sunset, i), loc)

		forecasts = append(forecasts, models.DayWiseForecast{
			Date:             date,
			WeatherCode:      at(dl.WeatherCode, i),
			TempMax:          at(dl.TempMax, i),
			TempMin:          at(dl.TempMin, i),
			Sunrise:          sunrise,
			Sunset:           sunset,
			PrecipitationSum: at(dl.PrecipitationSum, i),
			WindSpeedMax:     at(dl.WindSpeedMax, i),
			Units:            units,
		})
	}
	return forecasts
}

// at tolerates series shorter than the time axis.
func at[T any](s []T, i int) T {
	var zero T
	if i < len(s) {
		return s[i]
	}
	return zero
}

func zone(name string, offset int) *time.Location {
	if name == "" {
		name = "UTC"
	}
	return time.FixedZone(name, offset)
}
