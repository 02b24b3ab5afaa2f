package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"texmirror/internal/adapters/tui/views"
	"texmirror/internal/application/commands"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewSearch
	ViewConfirmSync
	ViewHelp
)

// App is the main TUI application model
type App struct {
	deps commands.Deps

	state   ViewState
	browser *views.BrowserModel
	search  *views.SearchModel
	confirm *views.ConfirmSyncModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(deps commands.Deps) *App {
	return &App{
		deps:    deps,
		state:   ViewBrowser,
		browser: views.NewBrowserModel(deps),
		search:  views.NewSearchModel(deps),
		confirm: views.NewConfirmSyncModel(),
		help:    views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.search.SetSize(msg.Width, msg.Height)
		a.confirm.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToSearchMsg:
		a.state = ViewSearch
		a.search.Reset()
		return a, a.search.Init()

	case views.SwitchToConfirmSyncMsg:
		a.state = ViewConfirmSync
		a.confirm.SetTarget(msg.Project, msg.Dirty)
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, a.browser.Reload()

	// Confirmation outcome: kick off the sync back in the browser so
	// its spinner and reload handling apply.
	case views.ConfirmSyncAcceptedMsg:
		a.state = ViewBrowser
		return a, a.browser.RunSync(msg.Project)
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewSearch:
		_, cmd = a.search.Update(msg)
	case ViewConfirmSync:
		_, cmd = a.confirm.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewSearch:
		return a.search.View()
	case ViewConfirmSync:
		return a.confirm.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.browser.View()
	}
}
