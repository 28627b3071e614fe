package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/ngmaloney/weather-terminal/internal/models"
)

// resultItem wraps a search result for use in a list
type resultItem struct {
	location models.Location
	saved    bool
}

// FilterValue implements list.Item
func (r resultItem) FilterValue() string {
	return r.location.DisplayName()
}

// Title implements list.DefaultItem
func (r resultItem) Title() string {
	if r.saved {
		return "★ " + r.location.DisplayName()
	}
	return r.location.DisplayName()
}

// Description implements list.DefaultItem
func (r resultItem) Description() string {
	return fmt.Sprintf("%s, %s", models.FormatCoord(r.location.Lat), models.FormatCoord(r.location.Long))
}

// createResultList creates a list.Model from search results
func createResultList(results []models.Location, marks map[string]bool, width, height int) list.Model {
	items := make([]list.Item, len(results))
	for i, loc := range results {
		items[i] = resultItem{location: loc, saved: marks[loc.LatKey()]}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Results"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	return l
}
