// Package viewmodel orchestrates the repositories into the state the UI
// renders. Every operation reports through state cells; nothing here
// returns a data source failure to the caller except the direct writes of
// saved places.
package viewmodel

import (
	"context"

	"github.com/ngmaloney/weather-terminal/internal/geocoding"
	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/result"
	"github.com/ngmaloney/weather-terminal/internal/state"
)

// WeatherSource is the forecast repository
type WeatherSource interface {
	HourlyForecast(ctx context.Context, lat, lon string) <-chan result.Result[models.HourlyForecasts]
	DailyForecast(ctx context.Context, lat, lon string) <-chan result.Result[[]models.DayWiseForecast]
	SavedPlacesWeather(ctx context.Context) <-chan result.Result[[]models.SavedLocationOverview]
}

// LocationSource is the geocoding repository
type LocationSource interface {
	NameFromCoordinates(ctx context.Context, lat, lon string) <-chan result.Result[geocoding.GeoResult]
	CoordinatesFromName(ctx context.Context, name string) <-chan result.Result[[]models.Location]
}

// PlaceStore is the saved places repository
type PlaceStore interface {
	InsertPlace(ctx context.Context, place models.Location) error
	DeletePlace(ctx context.Context, place models.Location) error
	PlaceByLat(ctx context.Context, lat string) (*models.Location, error)
}

// Origin reports the most recent device location, if any, and publishes
// location changes.
type Origin interface {
	DeviceLocation() (models.Location, bool)
	Location() *state.Cell[LocationState]
}
