package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/state"
	"github.com/ngmaloney/weather-terminal/internal/viewmodel"
)

const storeTimeout = 5 * time.Second

// HomeSource is the current location view-model
type HomeSource interface {
	LoadData()
	UserData() *state.Cell[viewmodel.UserDataState]
}

// PlacesSource is the saved places and search view-model
type PlacesSource interface {
	RefreshSaved()
	SavePlace(ctx context.Context, place models.Location) error
	RemovePlace(ctx context.Context, place models.Location) error
	PlaceByLat(ctx context.Context, lat string) (*models.Location, error)
	SearchLocation(name string)
	Saved() *state.Cell[viewmodel.SavedPlaceState]
	Searched() *state.Cell[viewmodel.SearchedLocationState]
}

// Settings is the persisted unit preferences
type Settings interface {
	Temp() int
	Wind() int
	SetTemp(choice int)
	SetWind(choice int)
	Save() error
}

// waitForState turns the next value of a cell subscription into a message.
// It must be re-issued after every message to keep listening.
func waitForState[T any](ch <-chan T, wrap func(T) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		v, ok := <-ch
		if !ok {
			return nil
		}
		return wrap(v)
	}
}

func waitForUserData(ch <-chan viewmodel.UserDataState) tea.Cmd {
	return waitForState(ch, func(s viewmodel.UserDataState) tea.Msg { return userDataMsg(s) })
}

func waitForSaved(ch <-chan viewmodel.SavedPlaceState) tea.Cmd {
	return waitForState(ch, func(s viewmodel.SavedPlaceState) tea.Msg { return savedPlacesMsg(s) })
}

func waitForSearch(ch <-chan viewmodel.SearchedLocationState) tea.Cmd {
	return waitForState(ch, func(s viewmodel.SearchedLocationState) tea.Msg { return searchResultsMsg(s) })
}

// loadHome starts resolving the current location
func loadHome(home HomeSource) tea.Cmd {
	return func() tea.Msg {
		home.LoadData()
		return nil
	}
}

// refreshSaved reloads the weather of every saved place
func refreshSaved(places PlacesSource) tea.Cmd {
	return func() tea.Msg {
		places.RefreshSaved()
		return nil
	}
}

// searchPlaces looks a place name up
func searchPlaces(places PlacesSource, query string) tea.Cmd {
	return func() tea.Msg {
		places.SearchLocation(query)
		return nil
	}
}

// savePlace writes a search result to the saved places
func savePlace(places PlacesSource, place models.Location) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		err := places.SavePlace(ctx, place)
		return placeSavedMsg{place: place, err: err}
	}
}

// removePlace deletes a saved place
func removePlace(places PlacesSource, place models.Location) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		err := places.RemovePlace(ctx, place)
		return placeRemovedMsg{place: place, err: err}
	}
}

// saveSettings persists the unit preferences
func saveSettings(settings Settings) tea.Cmd {
	return func() tea.Msg {
		return settingsSavedMsg{err: settings.Save()}
	}
}

// savedMarksMsg flags which search results are already saved, keyed by
// latitude
type savedMarksMsg map[string]bool

// markSaved looks every search result up in the saved places
func markSaved(places PlacesSource, results []models.Location) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		marks := make(savedMarksMsg, len(results))
		for _, r := range results {
			saved, err := places.PlaceByLat(ctx, r.LatKey())
			if err != nil {
				return errMsg{err: err}
			}
			marks[r.LatKey()] = saved != nil
		}
		return marks
	}
}
