// Package store persists the user's saved locations.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ngmaloney/weather-terminal/internal/models"
)

// Store handles persistence for saved locations
type Store struct {
	db       *sql.DB
	validate *validator.Validate

	mu       sync.Mutex
	watchers map[chan []models.Location]struct{}
}

// New creates a store on top of an opened database (see database.Open).
func New(db *sql.DB) *Store {
	return &Store{
		db:       db,
		validate: validator.New(),
		watchers: make(map[chan []models.Location]struct{}),
	}
}

// Insert saves a location, replacing any row with the same latitude key.
func (s *Store) Insert(ctx context.Context, loc models.Location) error {
	if err := s.validate.Struct(loc); err != nil {
		return fmt.Errorf("invalid location: %w", err)
	}

	if loc.CreatedAt.IsZero() {
		loc.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO saved_locations (lat, city, state, country, latitude, longitude, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(lat) DO UPDATE SET
			city = excluded.city,
			state = excluded.state,
			country = excluded.country,
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			created_at = excluded.created_at
	`,
		loc.LatKey(),
		loc.City,
		loc.State,
		loc.Country,
		loc.Lat,
		loc.Long,
		loc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving location: %w", err)
	}

	s.notify(ctx)
	return nil
}

// Delete removes a location by its latitude key
func (s *Store) Delete(ctx context.Context, loc models.Location) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM saved_locations WHERE lat = ?", loc.LatKey())
	if err != nil {
		return fmt.Errorf("deleting location: %w", err)
	}

	s.notify(ctx)
	return nil
}

// All retrieves every saved location in insertion order
func (s *Store) All(ctx context.Context) ([]models.Location, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT city, state, country, latitude, longitude, created_at
		FROM saved_locations
		ORDER BY created_at, rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("querying locations: %w", err)
	}
	defer rows.Close()

	locations := []models.Location{}
	for rows.Next() {
		var l models.Location
		var createdAt sql.NullTime
		if err := rows.Scan(&l.City, &l.State, &l.Country, &l.Lat, &l.Long, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning location: %w", err)
		}
		l.CreatedAt = createdAt.Time
		locations = append(locations, l)
	}

	return locations, rows.Err()
}

// GetByLat looks up a saved location by its latitude key. It returns
// nil, nil when nothing is stored under that key.
func (s *Store) GetByLat(ctx context.Context, lat string) (*models.Location, error) {
	var l models.Location
	var createdAt sql.NullTime

	err := s.db.QueryRowContext(ctx,
		"SELECT city, state, country, latitude, longitude, created_at FROM saved_locations WHERE lat = ?",
		lat,
	).Scan(&l.City, &l.State, &l.Country, &l.Lat, &l.Long, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying location %s: %w", lat, err)
	}

	l.CreatedAt = createdAt.Time
	return &l, nil
}

// Watch emits the full table right away and again after every Insert or
// Delete until ctx is done. A slow reader only sees the newest table.
func (s *Store) Watch(ctx context.Context) (<-chan []models.Location, error) {
	current, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	ch := make(chan []models.Location, 1)
	ch <- current

	s.mu.Lock()
	s.watchers[ch] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.watchers, ch)
		close(ch)
		s.mu.Unlock()
	}()

	return ch, nil
}

func (s *Store) notify(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.watchers) == 0 {
		return
	}

	locations, err := s.All(ctx)
	if err != nil {
		log.Printf("refreshing %d saved location watchers: %v", len(s.watchers), err)
		return
	}

	for ch := range s.watchers {
		// drop the stale table, if any, then publish the new one
		select {
		case <-ch:
		default:
		}
		ch <- locations
	}
}
