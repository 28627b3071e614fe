package ui

import (
	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/viewmodel"
)

// Message types for async operations

// userDataMsg carries a new home screen snapshot
type userDataMsg viewmodel.UserDataState

// savedPlacesMsg carries a new saved places state
type savedPlacesMsg viewmodel.SavedPlaceState

// searchResultsMsg carries a new search state
type searchResultsMsg viewmodel.SearchedLocationState

// placeSavedMsg is sent when a search result has been written to the store
type placeSavedMsg struct {
	place models.Location
	err   error
}

// placeRemovedMsg is sent when a saved place has been deleted
type placeRemovedMsg struct {
	place models.Location
	err   error
}

// settingsSavedMsg is sent when unit preferences have been persisted
type settingsSavedMsg struct {
	err error
}

// errMsg is a message type for errors
type errMsg struct {
	err error
}
