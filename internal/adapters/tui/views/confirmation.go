package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"texmirror/internal/adapters/tui/styles"
	"texmirror/internal/domain"
)

// ConfirmKeyMap defines key bindings for confirmation views
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// ConfirmationModel provides a base for confirmation-style views
type ConfirmationModel struct {
	ViewState
	Keys ConfirmKeyMap
}

// NewConfirmationModel creates a new confirmation model with default keys
func NewConfirmationModel() ConfirmationModel {
	return ConfirmationModel{
		Keys: DefaultConfirmKeys,
	}
}

// HandleKeyMsg processes key messages for confirmation views.
// Returns (handled, cmd) where handled is true if the key was processed.
func (m *ConfirmationModel) HandleKeyMsg(msg tea.KeyMsg, onConfirm, onCancel func() tea.Msg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Cancel):
		return true, func() tea.Msg { return onCancel() }
	case key.Matches(msg, m.Keys.Confirm):
		return true, func() tea.Msg { return onConfirm() }
	}
	return false, nil
}

// RenderConfirmPrompt renders the standard confirmation prompt
func RenderConfirmPrompt(question string) string {
	var b strings.Builder
	b.WriteString(question)
	b.WriteString(" ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to confirm, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))
	return b.String()
}

// ConfirmSyncAcceptedMsg is emitted when the user confirms a sync
type ConfirmSyncAcceptedMsg struct {
	Project domain.Project
}

// ConfirmSyncModel asks for confirmation before pulling a project's
// mirror, since a pull may move the working tree under the user.
type ConfirmSyncModel struct {
	ConfirmationModel
	project domain.Project
	dirty   bool
}

// NewConfirmSyncModel creates a new sync confirmation view model
func NewConfirmSyncModel() *ConfirmSyncModel {
	return &ConfirmSyncModel{
		ConfirmationModel: NewConfirmationModel(),
	}
}

// Init initializes the sync confirmation view
func (m *ConfirmSyncModel) Init() tea.Cmd {
	return nil
}

// SetTarget sets the project to confirm syncing
func (m *ConfirmSyncModel) SetTarget(project domain.Project, dirty bool) {
	m.project = project
	m.dirty = dirty
}

// Update handles messages for the sync confirmation view
func (m *ConfirmSyncModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg,
			func() tea.Msg { return ConfirmSyncAcceptedMsg{Project: m.project} },
			func() tea.Msg { return SwitchToBrowserMsg{} },
		)
		if handled {
			return m, cmd
		}
	}
	return m, nil
}

// View renders the sync confirmation view
func (m *ConfirmSyncModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Sync Project"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Pull latest changes for:"))
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(styles.NodeProject.Render(m.project.Name))
	b.WriteString(" ")
	b.WriteString(styles.MutedText.Render("(" + m.project.Key + ")"))
	b.WriteString("\n\n")

	if m.dirty {
		b.WriteString(styles.ErrorMsg.Render("This mirror has local changes."))
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("The pull will be skipped until they are committed or discarded."))
		b.WriteString("\n\n")
	}

	b.WriteString(RenderConfirmPrompt("Sync now?"))

	return styles.App.Render(b.String())
}
