package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"texmirror/internal/adapters/tui/styles"
	"texmirror/internal/application/commands"
	"texmirror/internal/domain"
)

// browserLevel is the drill-down depth of the mirror browser
type browserLevel int

const (
	levelProjects browserLevel = iota
	levelFiles
	levelSections
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Back   key.Binding
	Open   key.Binding
	Sync   key.Binding
	Search key.Binding
	Help   key.Binding
	Quit   key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Back: key.NewBinding(
		key.WithKeys("h", "left", "esc"),
		key.WithHelp("h/←", "back"),
	),
	Open: key.NewBinding(
		key.WithKeys("l", "right", "enter"),
		key.WithHelp("l/→", "open"),
	),
	Sync: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sync"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// projectEntry pairs a configured project with its worktree status
type projectEntry struct {
	project domain.Project
	dirty   bool
}

// BrowserModel drills down from configured projects through their .tex
// files into the section structure of a single file. Browsing never
// mutates a mirror; sync is the one write and goes through confirmation.
type BrowserModel struct {
	ViewState
	deps commands.Deps

	level    browserLevel
	projects []projectEntry
	files    []string
	sections []domain.Section

	project domain.Project // selected at levelFiles and deeper
	file    string         // selected at levelSections

	cursors [3]int
	loading bool
	spinner spinner.Model
}

// NewBrowserModel creates a new browser model
func NewBrowserModel(deps commands.Deps) *BrowserModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	return &BrowserModel{
		deps:    deps,
		spinner: s,
	}
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return m.loadProjects
}

// Reload resets the browser to the project list and refreshes it
func (m *BrowserModel) Reload() tea.Cmd {
	m.level = levelProjects
	m.files = nil
	m.sections = nil
	m.cursors = [3]int{}
	return m.loadProjects
}

func (m *BrowserModel) loadProjects() tea.Msg {
	var entries []projectEntry
	for _, project := range m.deps.Registry.List() {
		dirty, err := m.deps.Mirrors.IsDirty(project.RemoteID)
		if err != nil {
			dirty = false // mirror not cloned yet
		}
		entries = append(entries, projectEntry{project: project, dirty: dirty})
	}
	return projectsLoadedMsg{entries: entries}
}

func (m *BrowserModel) loadFiles(project domain.Project) tea.Cmd {
	return func() tea.Msg {
		result, err := commands.NewListFilesCommand(m.deps, project.Key, ".tex").Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return filesLoadedMsg{project: project, files: result.Files}
	}
}

func (m *BrowserModel) loadSections(file string) tea.Cmd {
	return func() tea.Msg {
		result, err := commands.NewListSectionsCommand(m.deps, m.project.Key, file).Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return sectionsLoadedMsg{file: file, sections: result.Sections}
	}
}

// RunSync performs the confirmed sync for a project.
func (m *BrowserModel) RunSync(project domain.Project) tea.Cmd {
	m.loading = true
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		result, err := commands.NewSyncProjectCommand(m.deps, project.Key).Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return syncFinishedMsg{message: result.Message}
	})
}

type projectsLoadedMsg struct {
	entries []projectEntry
}

type filesLoadedMsg struct {
	project domain.Project
	files   []string
}

type sectionsLoadedMsg struct {
	file     string
	sections []domain.Section
}

type syncFinishedMsg struct {
	message string
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case projectsLoadedMsg:
		m.projects = msg.entries
		m.loading = false
		m.clampCursor()
		return m, nil

	case filesLoadedMsg:
		m.project = msg.project
		m.files = msg.files
		m.level = levelFiles
		m.cursors[levelFiles] = 0
		m.loading = false
		return m, nil

	case sectionsLoadedMsg:
		m.file = msg.file
		m.sections = msg.sections
		m.level = levelSections
		m.cursors[levelSections] = 0
		m.loading = false
		return m, nil

	case syncFinishedMsg:
		m.loading = false
		m.SetMessage(msg.message, false)
		return m, m.loadProjects

	case errMsg:
		m.loading = false
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		m.ClearMessage()

		switch {
		case key.Matches(msg, BrowserKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, BrowserKeys.Up):
			if m.cursors[m.level] > 0 {
				m.cursors[m.level]--
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Down):
			if m.cursors[m.level] < m.listLen()-1 {
				m.cursors[m.level]++
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Back):
			switch m.level {
			case levelSections:
				m.level = levelFiles
				m.sections = nil
			case levelFiles:
				m.level = levelProjects
				m.files = nil
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Open):
			return m.openSelected()

		case key.Matches(msg, BrowserKeys.Sync):
			if project, ok := m.syncTarget(); ok {
				dirty := false
				for _, entry := range m.projects {
					if entry.project.RemoteID == project.RemoteID {
						dirty = entry.dirty
					}
				}
				return m, func() tea.Msg {
					return SwitchToConfirmSyncMsg{Project: project, Dirty: dirty}
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Search):
			return m, func() tea.Msg {
				return SwitchToSearchMsg{}
			}

		case key.Matches(msg, BrowserKeys.Help):
			return m, func() tea.Msg {
				return SwitchToHelpMsg{}
			}
		}
	}

	return m, nil
}

func (m *BrowserModel) openSelected() (tea.Model, tea.Cmd) {
	cursor := m.cursors[m.level]
	switch m.level {
	case levelProjects:
		if cursor < len(m.projects) {
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.loadFiles(m.projects[cursor].project))
		}
	case levelFiles:
		if cursor < len(m.files) {
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.loadSections(m.files[cursor]))
		}
	}
	return m, nil
}

// syncTarget picks the project a sync applies to: the highlighted entry on
// the project list, the opened project everywhere deeper.
func (m *BrowserModel) syncTarget() (domain.Project, bool) {
	if m.level == levelProjects {
		cursor := m.cursors[levelProjects]
		if cursor < len(m.projects) {
			return m.projects[cursor].project, true
		}
		return domain.Project{}, false
	}
	return m.project, true
}

func (m *BrowserModel) listLen() int {
	switch m.level {
	case levelFiles:
		return len(m.files)
	case levelSections:
		return len(m.sections)
	default:
		return len(m.projects)
	}
}

func (m *BrowserModel) clampCursor() {
	if m.cursors[m.level] >= m.listLen() {
		m.cursors[m.level] = m.listLen() - 1
	}
	if m.cursors[m.level] < 0 {
		m.cursors[m.level] = 0
	}
}

// View renders the browser
func (m *BrowserModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("texmirror"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("Overleaf project mirrors"))
	b.WriteString("\n\n")

	if crumb := m.breadcrumb(); crumb != "" {
		b.WriteString(styles.MutedText.Render(crumb))
		b.WriteString("\n\n")
	}

	if m.loading {
		b.WriteString(m.spinner.View())
		b.WriteString(" Refreshing mirror...")
		b.WriteString("\n")
	} else {
		m.renderList(&b)
	}

	if m.Message != "" {
		b.WriteString("\n")
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelpLine())

	return styles.App.Render(b.String())
}

func (m *BrowserModel) breadcrumb() string {
	switch m.level {
	case levelFiles:
		return m.project.Name
	case levelSections:
		return m.project.Name + " / " + m.file
	default:
		return ""
	}
}

func (m *BrowserModel) renderList(b *strings.Builder) {
	cursor := m.cursors[m.level]

	switch m.level {
	case levelProjects:
		if len(m.projects) == 0 {
			b.WriteString(styles.MutedText.Render("No projects configured"))
			b.WriteString("\n")
			return
		}
		for i, entry := range m.projects {
			text := fmt.Sprintf("%s  %s", entry.project.Key, entry.project.Name)
			line := styles.NodeProject.Render(text)
			if i == cursor {
				line = styles.NodeSelected.Render(text)
			}
			b.WriteString("  ")
			b.WriteString(line)
			if entry.dirty {
				b.WriteString(" ")
				b.WriteString(styles.NodeDirty.Render("(local changes)"))
			}
			b.WriteString("\n")
		}

	case levelFiles:
		if len(m.files) == 0 {
			b.WriteString(styles.MutedText.Render("No .tex files in this project"))
			b.WriteString("\n")
			return
		}
		for i, file := range m.files {
			line := styles.NodeFile.Render(file)
			if i == cursor {
				line = styles.NodeSelected.Render(file)
			}
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}

	case levelSections:
		if len(m.sections) == 0 {
			b.WriteString(styles.MutedText.Render("No sections in this file"))
			b.WriteString("\n")
			return
		}
		for i, section := range m.sections {
			b.WriteString("  ")
			b.WriteString(renderSectionLine(section, i == cursor))
			b.WriteString("\n")
		}
	}
}

// sectionIndent returns the display depth for a sectioning level. Parts
// and chapters sit flush left, each finer level steps in once more.
func sectionIndent(kind domain.SectionKind) int {
	if kind <= domain.KindChapter {
		return 0
	}
	return int(kind) - int(domain.KindChapter)
}

func renderSectionLine(section domain.Section, selected bool) string {
	indent := strings.Repeat("  ", sectionIndent(section.Kind))
	marker := section.Kind.String()
	if section.Starred {
		marker += "*"
	}

	if selected {
		return indent + styles.NodeSelected.Render(fmt.Sprintf("[%s] %s", marker, section.Title))
	}

	kindStyle := styles.NodeSection.Foreground(styles.KindColor(section.Kind.String()))
	return fmt.Sprintf("%s%s %s",
		indent,
		kindStyle.Render("["+marker+"]"),
		styles.NodeSection.Render(section.Title),
	)
}

func (m *BrowserModel) renderHelpLine() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"j/k", "navigate"},
		{"l/enter", "open"},
		{"h", "back"},
		{"s", "sync"},
		{"/", "search"},
		{"?", "help"},
		{"q", "quit"},
	}

	var parts []string
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s",
			styles.HelpKey.Render(k.key),
			styles.HelpDesc.Render(k.desc),
		))
	}

	return strings.Join(parts, styles.HelpSeparator.String())
}

// SwitchToConfirmSyncMsg asks the app to confirm a sync for a project
type SwitchToConfirmSyncMsg struct {
	Project domain.Project
	Dirty   bool
}
