package viewmodel

import (
	"context"
	"fmt"

	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/result"
	"github.com/ngmaloney/weather-terminal/internal/state"
)

// SavedPlaceState is the saved places screen
type SavedPlaceState struct {
	SavedPlaces []models.SavedLocationOverview
	IsLoading   bool
	Error       string
	IsEmpty     bool
}

// SearchedLocationState holds the results of a place search
type SearchedLocationState struct {
	Data      []models.Location
	IsLoading bool
	Error     string
}

// SearchViewModel manages saved places and place search
type SearchViewModel struct {
	ctx     context.Context
	weather WeatherSource
	places  LocationSource
	store   PlaceStore
	origin  Origin

	saved    *state.Cell[SavedPlaceState]
	searched *state.Cell[SearchedLocationState]

	refreshes trigger
	searches  trigger
}

// NewSearchViewModel creates the view-model and starts loading the saved
// places. origin may be nil, in which case no distances are computed.
func NewSearchViewModel(ctx context.Context, weather WeatherSource, places LocationSource, store PlaceStore, origin Origin) *SearchViewModel {
	vm := &SearchViewModel{
		ctx:       ctx,
		weather:   weather,
		places:    places,
		store:     store,
		origin:    origin,
		saved:     state.NewCell(SavedPlaceState{IsLoading: true}),
		searched:  state.NewCell(SearchedLocationState{}),
		refreshes: trigger{name: "saved places refresh"},
		searches:  trigger{name: "place search"},
	}
	vm.RefreshSaved()
	if origin != nil {
		go vm.followOrigin()
	}
	return vm
}

// followOrigin recomputes the distances of the listed places whenever the
// device moves. The list itself is not refetched.
func (vm *SearchViewModel) followOrigin() {
	var last *models.Location
	for ls := range vm.origin.Location().Subscribe(vm.ctx) {
		if ls.Location == nil {
			continue
		}
		if last != nil && last.Lat == ls.Location.Lat && last.Long == ls.Location.Long {
			continue
		}
		here := *ls.Location
		last = &here

		vm.saved.Update(func(s SavedPlaceState) SavedPlaceState {
			s.SavedPlaces = vm.withDistance(s.SavedPlaces)
			return s
		})
	}
}

func (vm *SearchViewModel) Saved() *state.Cell[SavedPlaceState]          { return vm.saved }
func (vm *SearchViewModel) Searched() *state.Cell[SearchedLocationState] { return vm.searched }

// Wait blocks until the in-flight refresh and search have settled.
func (vm *SearchViewModel) Wait() {
	vm.refreshes.wait()
	vm.searches.wait()
}

// RefreshSaved reloads the weather of every saved place.
func (vm *SearchViewModel) RefreshSaved() {
	vm.refreshes.run(vm.ctx, func(ctx context.Context, gen uint64) {
		for r := range vm.weather.SavedPlacesWeather(ctx) {
			vm.refreshes.apply(gen, func() {
				vm.saved.Update(func(s SavedPlaceState) SavedPlaceState {
					return vm.savedState(s, r)
				})
			})
		}
	})
}

func (vm *SearchViewModel) savedState(prev SavedPlaceState, r result.Result[[]models.SavedLocationOverview]) SavedPlaceState {
	switch r.Status {
	case result.StatusLoading:
		prev.IsLoading = true
		prev.Error = ""
		return prev
	case result.StatusError:
		prev.IsLoading = false
		prev.Error = r.Message
		return prev
	}

	if r.Data == nil {
		prev.IsLoading = false
		prev.Error = ""
		return prev
	}

	overviews := vm.withDistance(*r.Data)
	return SavedPlaceState{
		SavedPlaces: overviews,
		IsEmpty:     len(overviews) == 0,
	}
}

func (vm *SearchViewModel) withDistance(overviews []models.SavedLocationOverview) []models.SavedLocationOverview {
	if vm.origin == nil || len(overviews) == 0 {
		return overviews
	}
	here, ok := vm.origin.DeviceLocation()
	if !ok {
		return overviews
	}

	out := make([]models.SavedLocationOverview, len(overviews))
	for i, o := range overviews {
		o.Distance = models.HaversineDistance(here.Lat, here.Long, o.Location.Lat, o.Location.Long)
		out[i] = o
	}
	return out
}

// SavePlace stores place and refreshes the saved list.
func (vm *SearchViewModel) SavePlace(ctx context.Context, place models.Location) error {
	if err := vm.store.InsertPlace(ctx, place); err != nil {
		return fmt.Errorf("saving %s: %w", place.DisplayName(), err)
	}
	vm.RefreshSaved()
	return nil
}

// RemovePlace deletes place and refreshes the saved list.
func (vm *SearchViewModel) RemovePlace(ctx context.Context, place models.Location) error {
	if err := vm.store.DeletePlace(ctx, place); err != nil {
		return fmt.Errorf("removing %s: %w", place.DisplayName(), err)
	}
	vm.RefreshSaved()
	return nil
}

// PlaceByLat returns the saved place keyed by lat, or nil.
func (vm *SearchViewModel) PlaceByLat(ctx context.Context, lat string) (*models.Location, error) {
	return vm.store.PlaceByLat(ctx, lat)
}

// SearchLocation looks places up by name. Results sharing a city and state
// are collapsed to the first one.
func (vm *SearchViewModel) SearchLocation(name string) {
	vm.searches.run(vm.ctx, func(ctx context.Context, gen uint64) {
		for r := range vm.places.CoordinatesFromName(ctx, name) {
			vm.searches.apply(gen, func() {
				vm.searched.Set(searchState(r))
			})
		}
	})
}

func searchState(r result.Result[[]models.Location]) SearchedLocationState {
	switch r.Status {
	case result.StatusLoading:
		return SearchedLocationState{IsLoading: true}
	case result.StatusError:
		return SearchedLocationState{Error: r.Message}
	}
	if r.Data == nil {
		return SearchedLocationState{}
	}
	return SearchedLocationState{Data: dedupe(*r.Data)}
}

func dedupe(locations []models.Location) []models.Location {
	type key struct{ city, state string }
	seen := make(map[key]bool, len(locations))
	out := make([]models.Location, 0, len(locations))
	for _, l := range locations {
		k := key{l.City, l.State}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, l)
	}
	return out
}
