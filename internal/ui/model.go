package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ngmaloney/weather-terminal/internal/viewmodel"
)

// Screen is the tab currently shown
type Screen int

const (
	ScreenHome     Screen = iota // Current location snapshot
	ScreenSaved                  // Saved places with their current weather
	ScreenSearch                 // Find a place to save
	ScreenSettings               // Unit preferences
)

var screenNames = []string{"Home", "Saved", "Search", "Settings"}

func (s Screen) String() string {
	if int(s) < len(screenNames) {
		return screenNames[s]
	}
	return "Unknown"
}

// Model represents the application's state
type Model struct {
	screen Screen
	width  int
	height int
	err    error
	status string

	// View-models
	home     HomeSource
	places   PlacesSource
	settings Settings
	source   string

	// Cell subscriptions
	userDataCh <-chan viewmodel.UserDataState
	savedCh    <-chan viewmodel.SavedPlaceState
	searchCh   <-chan viewmodel.SearchedLocationState

	// Latest states
	userData viewmodel.UserDataState
	saved    viewmodel.SavedPlaceState
	searched viewmodel.SearchedLocationState
	marks    map[string]bool

	// Components
	savedList      list.Model
	resultList     list.Model
	searchInput    textinput.Model
	spinner        spinner.Model
	settingsCursor int

	now func() time.Time
}

// NewModel creates the application model. The cell subscriptions live
// until ctx is done. source describes where the device location comes
// from.
func NewModel(ctx context.Context, home HomeSource, places PlacesSource, settings Settings, source string) Model {
	ti := textinput.New()
	ti.Placeholder = "City name (e.g. London or Portland, ME)..."
	ti.CharLimit = 100
	ti.Width = 46

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		screen:      ScreenHome,
		home:        home,
		places:      places,
		settings:    settings,
		source:      source,
		userDataCh:  home.UserData().Subscribe(ctx),
		savedCh:     places.Saved().Subscribe(ctx),
		searchCh:    places.Searched().Subscribe(ctx),
		userData:    home.UserData().Get(),
		saved:       places.Saved().Get(),
		searched:    places.Searched().Get(),
		savedList:   createSavedList(nil, 0, 0),
		resultList:  createResultList(nil, nil, 0, 0),
		searchInput: ti,
		spinner:     s,
		now:         time.Now,
	}
}

// Init starts the location load and begins listening to the view-models
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		loadHome(m.home),
		waitForUserData(m.userDataCh),
		waitForSaved(m.savedCh),
		waitForSearch(m.searchCh),
	)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.savedList.SetSize(msg.Width-4, msg.Height-10)
		m.resultList.SetSize(msg.Width-4, msg.Height-14)
		return m, nil

	case userDataMsg:
		m.userData = viewmodel.UserDataState(msg)
		return m, waitForUserData(m.userDataCh)

	case savedPlacesMsg:
		m.saved = viewmodel.SavedPlaceState(msg)
		idx := m.savedList.Index()
		m.savedList = createSavedList(m.saved.SavedPlaces, m.listWidth(), m.listHeight(10))
		if n := len(m.saved.SavedPlaces); n > 0 {
			m.savedList.Select(min(idx, n-1))
		}
		return m, waitForSaved(m.savedCh)

	case searchResultsMsg:
		m.searched = viewmodel.SearchedLocationState(msg)
		m.marks = nil
		m.resultList = createResultList(m.searched.Data, nil, m.listWidth(), m.listHeight(14))
		cmds := []tea.Cmd{waitForSearch(m.searchCh)}
		if len(m.searched.Data) > 0 {
			cmds = append(cmds, markSaved(m.places, m.searched.Data))
		}
		return m, tea.Batch(cmds...)

	case savedMarksMsg:
		m.marks = msg
		m.rebuildResults()
		return m, nil

	case placeSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.status = "Saved " + msg.place.DisplayName()
		if m.marks == nil {
			m.marks = make(map[string]bool)
		}
		m.marks[msg.place.LatKey()] = true
		m.rebuildResults()
		return m, nil

	case placeRemovedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.status = "Removed " + msg.place.DisplayName()
		if m.marks != nil {
			delete(m.marks, msg.place.LatKey())
			m.rebuildResults()
		}
		return m, nil

	case settingsSavedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("saving settings: %w", msg.err)
			return m, nil
		}
		m.status = "Settings saved"
		// units changed, every forecast on screen is stale
		return m, tea.Batch(loadHome(m.home), refreshSaved(m.places))

	case errMsg:
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey routes keyboard input to the active screen
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	m.status = ""

	switch msg.Type {
	case tea.KeyTab:
		return m.switchScreen((m.screen + 1) % Screen(len(screenNames)))
	case tea.KeyShiftTab:
		return m.switchScreen((m.screen + Screen(len(screenNames)) - 1) % Screen(len(screenNames)))
	}

	// The search box takes every other key while it is focused
	if m.screen == ScreenSearch && m.searchInput.Focused() {
		return m.handleSearchInput(msg)
	}

	if msg.String() == "q" {
		return m, tea.Quit
	}

	switch m.screen {
	case ScreenHome:
		if msg.String() == "r" {
			m.err = nil
			return m, loadHome(m.home)
		}
	case ScreenSaved:
		return m.handleSavedList(msg)
	case ScreenSearch:
		return m.handleResultList(msg)
	case ScreenSettings:
		return m.handleSettings(msg)
	}

	return m, nil
}

func (m Model) switchScreen(s Screen) (tea.Model, tea.Cmd) {
	m.screen = s
	m.err = nil
	if s == ScreenSearch {
		m.searchInput.Focus()
		return m, textinput.Blink
	}
	m.searchInput.Blur()
	return m, nil
}

// handleSearchInput handles keyboard input while typing a place name
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Clear error when typing
	if m.err != nil && msg.Type != tea.KeyEnter {
		m.err = nil
	}

	switch msg.Type {
	case tea.KeyEnter:
		query := strings.TrimSpace(m.searchInput.Value())
		if query == "" {
			return m, nil
		}
		m.err = nil
		m.searchInput.Blur()
		return m, searchPlaces(m.places, query)
	case tea.KeyEsc:
		m.searchInput.Blur()
		return m, nil
	}

	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleResultList handles keyboard input on the search results
func (m Model) handleResultList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case msg.Type == tea.KeyEnter:
		if item, ok := m.resultList.SelectedItem().(resultItem); ok {
			return m, savePlace(m.places, item.location)
		}
		return m, nil
	case msg.String() == "/" || msg.Type == tea.KeyEsc:
		m.searchInput.Focus()
		return m, textinput.Blink
	}

	m.resultList, cmd = m.resultList.Update(msg)
	return m, cmd
}

// handleSavedList handles keyboard input on the saved places
func (m Model) handleSavedList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.savedList.FilterState() != list.Filtering {
		switch msg.String() {
		case "r":
			m.err = nil
			return m, refreshSaved(m.places)
		case "d":
			if item, ok := m.savedList.SelectedItem().(savedItem); ok {
				return m, removePlace(m.places, item.overview.Location)
			}
			return m, nil
		}
	}

	m.savedList, cmd = m.savedList.Update(msg)
	return m, cmd
}

// handleSettings handles keyboard input on the settings screen
func (m Model) handleSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.settingsCursor > 0 {
			m.settingsCursor--
		}
	case "down", "j":
		if m.settingsCursor < len(settingRows)-1 {
			m.settingsCursor++
		}
	case "enter", " ":
		toggleSetting(m.settings, m.settingsCursor)
		return m, saveSettings(m.settings)
	}
	return m, nil
}

func (m *Model) rebuildResults() {
	idx := m.resultList.Index()
	m.resultList = createResultList(m.searched.Data, m.marks, m.listWidth(), m.listHeight(14))
	if n := len(m.searched.Data); n > 0 {
		m.resultList.Select(min(idx, n-1))
	}
}

func (m Model) listWidth() int {
	return max(m.width-4, 0)
}

func (m Model) listHeight(chrome int) int {
	return max(m.height-chrome, 0)
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var body, help string
	switch m.screen {
	case ScreenHome:
		body = renderHome(m.userData, m.spinner.View(), m.now())
		help = "Tab: Switch screens • R: Reload • Q: Quit"
	case ScreenSaved:
		body = m.viewSaved()
		help = "↑/↓: Navigate • D: Remove • R: Refresh • /: Filter • Tab: Switch screens • Q: Quit"
	case ScreenSearch:
		body = m.viewSearch()
		if m.searchInput.Focused() {
			help = "Enter: Search • Esc: Results • Tab: Switch screens • Ctrl+C: Quit"
		} else {
			help = "↑/↓: Navigate • Enter: Save • /: New search • Tab: Switch screens • Q: Quit"
		}
	case ScreenSettings:
		body = renderSettings(m.settings, m.settingsCursor)
		help = "↑/↓: Select • Enter: Toggle • Tab: Switch screens • Q: Quit"
	}

	sections := []string{m.viewHeader(), "", body}

	if m.err != nil {
		sections = append(sections, "", errorStyle.Render("✗ "+m.err.Error()))
	} else if m.status != "" {
		sections = append(sections, "", successStyle.Render("✓ "+m.status))
	}

	sections = append(sections, helpStyle.Render(help))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewHeader renders the title and the tab bar
func (m Model) viewHeader() string {
	tabs := make([]string, len(screenNames))
	for i, name := range screenNames {
		if Screen(i) == m.screen {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(name)
		}
	}

	title := titleStyle.Render("☀ Weather Terminal")
	if m.source != "" {
		title += " " + mutedStyle.Render("("+m.source+")")
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// viewSaved renders the saved places screen
func (m Model) viewSaved() string {
	var sections []string

	if m.saved.IsLoading {
		sections = append(sections, fmt.Sprintf("%s %s", m.spinner.View(), mutedStyle.Render("Loading saved places...")))
	}
	if m.saved.Error != "" {
		sections = append(sections, errorStyle.Render("✗ "+m.saved.Error))
	}

	switch {
	case m.saved.IsEmpty:
		sections = append(sections, mutedStyle.Render("No saved places yet. Use Search to add one."))
	case len(m.saved.SavedPlaces) > 0:
		sections = append(sections, m.savedList.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewSearch renders the search screen
func (m Model) viewSearch() string {
	sections := []string{searchBoxStyle.Render(m.searchInput.View())}

	switch {
	case m.searched.IsLoading:
		sections = append(sections, fmt.Sprintf("%s %s", m.spinner.View(), mutedStyle.Render("Searching...")))
	case m.searched.Error != "":
		sections = append(sections, errorStyle.Render("✗ "+m.searched.Error))
	case len(m.searched.Data) > 0:
		sections = append(sections, m.resultList.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
