package entrylist

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/worthit/internal/models"
)

func TestEmptyView(t *testing.T) {
	m := New(nil, 80, 20)
	if !strings.Contains(m.View(), "No entries yet") {
		t.Errorf("View() = %q", m.View())
	}
}

func TestKeysEmitMessages(t *testing.T) {
	e := models.Entry{ID: "e1", Action: "had coffee", CreatedAt: time.Now()}
	m := New([]models.Entry{e}, 80, 20)

	tests := []struct {
		key  string
		want tea.Msg
	}{
		{"a", AddEntryMsg{}},
		{"m", AddMemoMsg{EntryID: "e1"}},
		{"d", DeleteEntryMsg{ID: "e1"}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tt.key)})
			if cmd == nil {
				t.Fatal("expected a command")
			}
			if got := cmd(); got != tt.want {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got, ok := cmd().(OpenEntryMsg); !ok || got.ID != "e1" {
		t.Errorf("enter produced %#v", got)
	}
}

func TestItemTitle(t *testing.T) {
	item := Item{Entry: models.Entry{Action: "skipped dessert", EntryType: models.EntryResisted}}
	if got := item.Title(); got != "✓ skipped dessert" {
		t.Errorf("Title() = %q", got)
	}
}
