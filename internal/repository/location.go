package repository

import (
	"context"

	"github.com/ngmaloney/weather-terminal/internal/geocoding"
	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/result"
)

// Geocoder is the geocoding data source
type Geocoder interface {
	Direct(ctx context.Context, name string) ([]geocoding.GeoResult, error)
	Reverse(ctx context.Context, lat, lon string) ([]geocoding.GeoResult, error)
}

// LocationRepository resolves names and coordinates
type LocationRepository struct {
	geocoder Geocoder
}

func NewLocationRepository(geocoder Geocoder) *LocationRepository {
	return &LocationRepository{geocoder: geocoder}
}

// NameFromCoordinates reverse geocodes a coordinate to its first match.
func (r *LocationRepository) NameFromCoordinates(ctx context.Context, lat, lon string) <-chan result.Result[geocoding.GeoResult] {
	return stream(ctx, "reverse geocoding", func(ctx context.Context) result.Result[geocoding.GeoResult] {
		results, err := r.geocoder.Reverse(ctx, lat, lon)
		if err != nil {
			return failure[geocoding.GeoResult](ctx, "reverse geocoding", err)
		}
		if len(results) == 0 {
			return result.Error[geocoding.GeoResult](MsgLocationNotFound)
		}
		return result.Success(results[0])
	})
}

// CoordinatesFromName searches places by name. Coordinates are rounded to
// 4 decimal places.
func (r *LocationRepository) CoordinatesFromName(ctx context.Context, name string) <-chan result.Result[[]models.Location] {
	return stream(ctx, "direct geocoding", func(ctx context.Context) result.Result[[]models.Location] {
		results, err := r.geocoder.Direct(ctx, name)
		if err != nil {
			return failure[[]models.Location](ctx, "direct geocoding", err)
		}

		locations := make([]models.Location, 0, len(results))
		for _, g := range results {
			locations = append(locations, g.ToLocation())
		}
		if len(locations) == 0 {
			return result.Error[[]models.Location](MsgNoSearchResult)
		}
		return result.Success(locations)
	})
}
