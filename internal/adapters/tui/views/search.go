package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"texmirror/internal/adapters/tui/styles"
	"texmirror/internal/application/commands"
	"texmirror/internal/domain"
)

// SearchState represents the state of the section search view
type SearchState int

const (
	SearchInput SearchState = iota
	SearchLoading
	SearchResults
	SearchError
)

// SearchKeyMap defines key bindings for the search view
type SearchKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	Cancel   key.Binding
	NextPage key.Binding
	PrevPage key.Binding
}

var SearchKeys = SearchKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "copy path"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("ctrl+f", "pgdown"),
		key.WithHelp("ctrl+f", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("ctrl+b", "pgup"),
		key.WithHelp("ctrl+b", "prev page"),
	),
}

// SearchModel is the model for the section search view. Queries run
// against the section index after the mirrors are refreshed, so the first
// search after startup may clone or pull.
type SearchModel struct {
	ViewState
	deps commands.Deps

	state       SearchState
	searchInput textinput.Model
	spinner     spinner.Model
	pager       *pager

	query   string
	hits    []domain.SectionHit
	keyByID map[string]string // remote id -> registry key, for display
	err     error
}

// NewSearchModel creates a new section search view model
func NewSearchModel(deps commands.Deps) *SearchModel {
	input := textinput.New()
	input.Placeholder = "Search sections..."
	input.Prompt = "Search: "
	input.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	return &SearchModel{
		deps:        deps,
		state:       SearchInput,
		searchInput: input,
		spinner:     s,
		pager:       newPager(10),
	}
}

// Init initializes the search view
func (m *SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

// Reset clears the previous query and results
func (m *SearchModel) Reset() {
	m.state = SearchInput
	m.searchInput.SetValue("")
	m.searchInput.Focus()
	m.query = ""
	m.hits = nil
	m.err = nil
	m.pager.Reset()
	m.ClearMessage()
}

// Update handles messages for the search view
func (m *SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.state == SearchLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case searchHitsMsg:
		m.hits = msg.hits
		m.pager.Resize(len(m.hits))
		m.state = SearchResults
		return m, nil

	case errMsg:
		m.err = msg.err
		m.state = SearchError
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case SearchInput:
			return m.updateInputMode(msg)
		case SearchResults:
			return m.updateResultsMode(msg)
		case SearchError:
			// Any key returns to browser
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}
		case SearchLoading:
			if key.Matches(msg, SearchKeys.Cancel) {
				return m, func() tea.Msg {
					return SwitchToBrowserMsg{}
				}
			}
		}
	}
	return m, nil
}

func (m *SearchModel) updateInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		query := strings.TrimSpace(m.searchInput.Value())
		if query == "" {
			return m, nil
		}
		m.query = query
		m.state = SearchLoading
		return m, tea.Batch(
			m.spinner.Tick,
			m.performSearch(),
		)
	case tea.KeyEsc:
		return m, func() tea.Msg {
			return SwitchToBrowserMsg{}
		}
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *SearchModel) updateResultsMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, SearchKeys.Cancel):
		return m, func() tea.Msg {
			return SwitchToBrowserMsg{}
		}
	case key.Matches(msg, SearchKeys.Up):
		m.pager.Up()
		return m, nil
	case key.Matches(msg, SearchKeys.Down):
		m.pager.Down()
		return m, nil
	case key.Matches(msg, SearchKeys.NextPage):
		m.pager.PageDown()
		return m, nil
	case key.Matches(msg, SearchKeys.PrevPage):
		m.pager.PageUp()
		return m, nil
	case key.Matches(msg, SearchKeys.Select):
		cursor := m.pager.Pos()
		if cursor < len(m.hits) {
			hit := m.hits[cursor]
			clipboard.WriteAll(hit.Path)
			m.SetMessage(fmt.Sprintf("Copied '%s'", hit.Path), false)
		}
		return m, nil
	}
	return m, nil
}

func (m *SearchModel) performSearch() tea.Cmd {
	return func() tea.Msg {
		result, err := commands.NewSearchSectionsCommand(m.deps, m.query, "", 0).Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return searchHitsMsg{hits: result.Hits}
	}
}

type searchHitsMsg struct {
	hits []domain.SectionHit
}

// projectKey maps a remote project id back to its registry key for display
func (m *SearchModel) projectKey(remoteID string) string {
	if m.keyByID == nil {
		m.keyByID = make(map[string]string)
		for _, p := range m.deps.Registry.List() {
			m.keyByID[p.RemoteID] = p.Key
		}
	}
	return m.keyByID[remoteID]
}

// visibleHits returns the hits for the current page
func (m *SearchModel) visibleHits() []domain.SectionHit {
	if len(m.hits) == 0 {
		return nil
	}
	start, end := m.pager.Window()
	return m.hits[start:end]
}

// View renders the search view
func (m *SearchModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Section Search"))
	b.WriteString("\n\n")

	switch m.state {
	case SearchInput:
		b.WriteString(styles.InputFocused.Render(m.searchInput.View()))
		b.WriteString("\n\n")
		b.WriteString(styles.MutedText.Render("Searches section titles and content across all configured projects"))
		b.WriteString("\n\n")
		b.WriteString(styles.HelpKey.Render("enter"))
		b.WriteString(styles.HelpDesc.Render(" search, "))
		b.WriteString(styles.HelpKey.Render("esc"))
		b.WriteString(styles.HelpDesc.Render(" cancel"))

	case SearchLoading:
		b.WriteString(m.spinner.View())
		b.WriteString(" Refreshing mirrors and searching...")
		b.WriteString("\n\n")
		b.WriteString(styles.MutedText.Render("Press "))
		b.WriteString(styles.HelpKey.Render("esc"))
		b.WriteString(styles.MutedText.Render(" to cancel"))

	case SearchResults:
		m.renderResults(&b)

	case SearchError:
		b.WriteString(styles.ErrorMsg.Render("Error: "))
		if m.err != nil {
			b.WriteString(m.err.Error())
		}
		b.WriteString("\n\n")
		b.WriteString(styles.MutedText.Render("Press any key to return"))
	}

	return styles.App.Render(b.String())
}

func (m *SearchModel) renderResults(b *strings.Builder) {
	if len(m.hits) == 0 {
		b.WriteString(styles.MutedText.Render("No sections found matching: "))
		b.WriteString(m.query)
		b.WriteString("\n\n")
		b.WriteString(styles.HelpKey.Render("esc"))
		b.WriteString(styles.HelpDesc.Render(" return"))
		return
	}

	fmt.Fprintf(b, "Found %d sections matching: %s\n\n", len(m.hits), m.query)

	visible := m.visibleHits()
	cursorInPage := m.pager.Line()
	for i, hit := range visible {
		location := hit.Path
		if key := m.projectKey(hit.ProjectID); key != "" {
			location = key + ":" + hit.Path
		}
		text := fmt.Sprintf("[%s] %s", hit.Kind, hit.Title)
		if i == cursorInPage {
			b.WriteString(styles.NodeSelected.Render(" > " + text + " "))
		} else {
			b.WriteString("   ")
			b.WriteString(text)
		}
		b.WriteString("  ")
		b.WriteString(styles.MutedText.Render(location))
		b.WriteString("\n")
	}

	if m.pager.Pages() > 1 {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("Page %d/%d", m.pager.Page(), m.pager.Pages())))
	}

	// Preview for the selected hit
	if cursor := m.pager.Pos(); cursor < len(m.hits) {
		hit := m.hits[cursor]
		if hit.Preview != "" {
			b.WriteString("\n")
			b.WriteString(styles.InputLabel.Render("Preview: "))
			b.WriteString(styles.MutedText.Render(hit.Preview))
			b.WriteString("\n")
		}
	}

	if m.Message != "" {
		b.WriteString("\n")
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
		b.WriteString("\n")
	}

	// Help
	b.WriteString("\n")
	b.WriteString(styles.HelpKey.Render("j/k"))
	b.WriteString(styles.HelpDesc.Render(" navigate, "))
	if m.pager.Pages() > 1 {
		b.WriteString(styles.HelpKey.Render("ctrl+f/b"))
		b.WriteString(styles.HelpDesc.Render(" page, "))
	}
	b.WriteString(styles.HelpKey.Render("enter"))
	b.WriteString(styles.HelpDesc.Render(" copy path, "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" cancel"))
}
