package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"texmirror/internal/domain"
)

func TestConfirmSyncKeys(t *testing.T) {
	project := domain.Project{Key: "thesis", Name: "PhD Thesis", RemoteID: "abc123"}

	tests := []struct {
		name string
		key  tea.KeyMsg
		want tea.Msg
	}{
		{"y confirms", keyRunes("y"), ConfirmSyncAcceptedMsg{Project: project}},
		{"n cancels", keyRunes("n"), SwitchToBrowserMsg{}},
		{"esc cancels", tea.KeyMsg{Type: tea.KeyEsc}, SwitchToBrowserMsg{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewConfirmSyncModel()
			m.SetTarget(project, false)

			_, cmd := m.Update(tt.key)
			if cmd == nil {
				t.Fatal("expected a command")
			}
			if got := cmd(); got != tt.want {
				t.Fatalf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestConfirmSyncIgnoresUnboundKeys(t *testing.T) {
	m := NewConfirmSyncModel()
	m.SetTarget(domain.Project{Key: "thesis"}, false)

	if _, cmd := m.Update(keyRunes("x")); cmd != nil {
		t.Fatal("unexpected command for unbound key")
	}
}

func TestConfirmSyncViewWarnsAboutLocalChanges(t *testing.T) {
	m := NewConfirmSyncModel()

	m.SetTarget(domain.Project{Key: "thesis", Name: "PhD Thesis"}, true)
	if !strings.Contains(m.View(), "local changes") {
		t.Error("expected a dirty warning in the view")
	}

	m.SetTarget(domain.Project{Key: "thesis", Name: "PhD Thesis"}, false)
	if strings.Contains(m.View(), "local changes") {
		t.Error("unexpected dirty warning for a clean mirror")
	}
}
