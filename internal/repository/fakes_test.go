package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/ngmaloney/weather-terminal/internal/geocoding"
	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/openmeteo"
	"github.com/ngmaloney/weather-terminal/internal/remote"
)

func loadFixture[T any](t *testing.T, name string) *T {
	t.Helper()
	data, err := os.ReadFile("../../testdata/" + name)
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("decoding fixture: %v", err)
	}
	return &v
}

type fakeGeocoder struct {
	direct  []geocoding.GeoResult
	reverse []geocoding.GeoResult
	err     error
}

func (f *fakeGeocoder) Direct(ctx context.Context, name string) ([]geocoding.GeoResult, error) {
	return f.direct, f.err
}

func (f *fakeGeocoder) Reverse(ctx context.Context, lat, lon string) ([]geocoding.GeoResult, error) {
	return f.reverse, f.err
}

type fakeForecaster struct {
	hourly *openmeteo.HourlyDTO
	daily  *openmeteo.DailyDTO
	// failFor fails hourly calls for the given latitude
	failFor map[string]error
	err     error

	mu    sync.Mutex
	units []openmeteo.Units
	calls int
}

func (f *fakeForecaster) record(units openmeteo.Units) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.units = append(f.units, units)
	f.calls++
}

func (f *fakeForecaster) Hourly(ctx context.Context, lat, lon string, units openmeteo.Units) (*openmeteo.HourlyDTO, error) {
	f.record(units)
	if err, ok := f.failFor[lat]; ok {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.hourly, nil
}

func (f *fakeForecaster) Daily(ctx context.Context, lat, lon string, units openmeteo.Units) (*openmeteo.DailyDTO, error) {
	f.record(units)
	if f.err != nil {
		return nil, f.err
	}
	return f.daily, nil
}

type fixedUnits openmeteo.Units

func (u fixedUnits) Units() openmeteo.Units { return openmeteo.Units(u) }

type fakePlaces struct {
	places []models.Location
	err    error
}

func (f *fakePlaces) AllPlaces(ctx context.Context) (<-chan []models.Location, error) {
	if f.err != nil {
		return nil, f.err
	}
	ch := make(chan []models.Location, 1)
	ch <- f.places
	return ch, nil
}

func transportErr() error {
	return fmt.Errorf("fetching: %w", remote.ErrTransport)
}

func remoteErr() error {
	return fmt.Errorf("fetching: %w", &remote.StatusError{Code: 500, Body: "boom"})
}
