package repository

import (
	"context"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

// PlaceStore is the saved locations table
type PlaceStore interface {
	Insert(ctx context.Context, loc models.Location) error
	Delete(ctx context.Context, loc models.Location) error
	GetByLat(ctx context.Context, lat string) (*models.Location, error)
	Watch(ctx context.Context) (<-chan []models.Location, error)
}

// LocalDatabaseRepository is the thin façade over the saved locations table
type LocalDatabaseRepository struct {
	store PlaceStore
}

func NewLocalDatabaseRepository(store PlaceStore) *LocalDatabaseRepository {
	return &LocalDatabaseRepository{store: store}
}

// AllPlaces observes the full table until ctx is done.
func (r *LocalDatabaseRepository) AllPlaces(ctx context.Context) (<-chan []models.Location, error) {
	return r.store.Watch(ctx)
}

func (r *LocalDatabaseRepository) InsertPlace(ctx context.Context, place models.Location) error {
	return r.store.Insert(ctx, place)
}

func (r *LocalDatabaseRepository) DeletePlace(ctx context.Context, place models.Location) error {
	return r.store.Delete(ctx, place)
}

// PlaceByLat returns nil when nothing is saved under lat.
func (r *LocalDatabaseRepository) PlaceByLat(ctx context.Context, lat string) (*models.Location, error) {
	return r.store.GetByLat(ctx, lat)
}
