package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/ngmaloney/weather-terminal/internal/models"
)

// savedItem wraps a SavedLocationOverview for use in a list
type savedItem struct {
	overview models.SavedLocationOverview
}

// FilterValue implements list.Item
func (s savedItem) FilterValue() string {
	return s.overview.Location.DisplayName()
}

// Title implements list.DefaultItem
func (s savedItem) Title() string {
	return s.overview.Location.DisplayName()
}

// Description implements list.DefaultItem
func (s savedItem) Description() string {
	f := s.overview.Forecast
	desc := fmt.Sprintf("%s • %s", formatTemp(f.Temperature, f.Units), f.Conditions())
	if s.overview.Distance > 0 {
		desc += fmt.Sprintf(" • %.0f mi away", s.overview.Distance)
	}
	return desc
}

// createSavedList creates a list.Model from saved place overviews
func createSavedList(overviews []models.SavedLocationOverview, width, height int) list.Model {
	items := make([]list.Item, len(overviews))
	for i, o := range overviews {
		items[i] = savedItem{overview: o}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Saved Places"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)

	return l
}
