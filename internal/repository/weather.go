package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/openmeteo"
	"github.com/ngmaloney/weather-terminal/internal/result"
)

// Forecaster is the forecast data source
type Forecaster interface {
	Hourly(ctx context.Context, lat, lon string, units openmeteo.Units) (*openmeteo.HourlyDTO, error)
	Daily(ctx context.Context, lat, lon string, units openmeteo.Units) (*openmeteo.DailyDTO, error)
}

// UnitsSource supplies the current unit preferences
type UnitsSource interface {
	Units() openmeteo.Units
}

// PlaceSource observes the saved locations table
type PlaceSource interface {
	AllPlaces(ctx context.Context) (<-chan []models.Location, error)
}

var errNoCurrentHour = errors.New("no forecast for the current hour")

// WeatherRepository fetches forecasts for a coordinate or for every saved
// place.
type WeatherRepository struct {
	forecaster Forecaster
	units      UnitsSource
	places     PlaceSource
	now        func() time.Time
}

func NewWeatherRepository(forecaster Forecaster, units UnitsSource, places PlaceSource) *WeatherRepository {
	return &WeatherRepository{
		forecaster: forecaster,
		units:      units,
		places:     places,
		now:        time.Now,
	}
}

func (r *WeatherRepository) currentUnits() openmeteo.Units {
	if r.units == nil {
		return openmeteo.Units{}
	}
	return r.units.Units()
}

// HourlyForecast returns the hourly forecast grouped by day.
func (r *WeatherRepository) HourlyForecast(ctx context.Context, lat, lon string) <-chan result.Result[models.HourlyForecasts] {
	return stream(ctx, "hourly forecast", func(ctx context.Context) result.Result[models.HourlyForecasts] {
		dto, err := r.forecaster.Hourly(ctx, lat, lon, r.currentUnits())
		if err != nil {
			return failure[models.HourlyForecasts](ctx, "hourly forecast", err)
		}
		var forecasts models.HourlyForecasts
		if dto != nil {
			forecasts = dto.ToHourlyForecasts()
		}
		if len(forecasts) == 0 {
			logf(ctx, "hourly forecast for %s,%s: empty series", lat, lon)
			return result.Error[models.HourlyForecasts](MsgNoForecast)
		}
		return result.Success(forecasts)
	})
}

// DailyForecast returns one record per day.
func (r *WeatherRepository) DailyForecast(ctx context.Context, lat, lon string) <-chan result.Result[[]models.DayWiseForecast] {
	return stream(ctx, "daily forecast", func(ctx context.Context) result.Result[[]models.DayWiseForecast] {
		dto, err := r.forecaster.Daily(ctx, lat, lon, r.currentUnits())
		if err != nil {
			return failure[[]models.DayWiseForecast](ctx, "daily forecast", err)
		}
		var forecasts []models.DayWiseForecast
		if dto != nil {
			forecasts = dto.ToDailyForecasts()
		}
		if len(forecasts) == 0 {
			logf(ctx, "daily forecast for %s,%s: empty series", lat, lon)
			return result.Error[[]models.DayWiseForecast](MsgNoForecast)
		}
		return result.Success(forecasts)
	})
}

// SavedPlacesWeather pairs every saved place with its forecast at the
// current hour. The table is read once. A single failed fetch fails the
// whole result.
func (r *WeatherRepository) SavedPlacesWeather(ctx context.Context) <-chan result.Result[[]models.SavedLocationOverview] {
	return stream(ctx, "saved places weather", func(ctx context.Context) result.Result[[]models.SavedLocationOverview] {
		places, err := r.firstTable(ctx)
		if err != nil {
			logf(ctx, "reading saved places: %v", err)
			return result.Error[[]models.SavedLocationOverview](MsgSomethingWrong)
		}
		if len(places) == 0 {
			return result.Success([]models.SavedLocationOverview{})
		}

		overviews, err := r.overviews(ctx, places)
		if err != nil {
			return failure[[]models.SavedLocationOverview](ctx, "saved places weather", err)
		}
		return result.Success(overviews)
	})
}

func (r *WeatherRepository) firstTable(ctx context.Context) ([]models.Location, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch, err := r.places.AllPlaces(ctx)
	if err != nil {
		return nil, err
	}
	select {
	case places, ok := <-ch:
		if !ok {
			return nil, errors.New("saved places stream closed")
		}
		return places, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (r *WeatherRepository) overviews(ctx context.Context, places []models.Location) ([]models.SavedLocationOverview, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hour := r.now().Hour()
	units := r.currentUnits()
	overviews := make([]models.SavedLocationOverview, len(places))

	// The first failure cancels the rest; their errors are not reported.
	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for i, place := range places {
		wg.Add(1)
		go func(i int, place models.Location) {
			defer wg.Done()

			dto, err := r.forecaster.Hourly(ctx, models.FormatCoord(place.Lat), models.FormatCoord(place.Long), units)
			if err != nil {
				fail(fmt.Errorf("%s: %w", place.DisplayName(), err))
				return
			}
			if dto == nil {
				fail(fmt.Errorf("%s: %w", place.DisplayName(), errNoCurrentHour))
				return
			}
			forecast, ok := dto.ToHourlyForecasts().At(0, hour)
			if !ok {
				fail(fmt.Errorf("%s: %w", place.DisplayName(), errNoCurrentHour))
				return
			}
			overviews[i] = models.SavedLocationOverview{Location: place, Forecast: forecast}
		}(i, place)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return overviews, nil
}
