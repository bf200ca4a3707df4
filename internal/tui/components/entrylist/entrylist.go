package entrylist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/worthit/internal/cli"
	"github.com/julianstephens/worthit/internal/constants"
	"github.com/julianstephens/worthit/internal/models"
)

type AddEntryMsg struct{}

type AddMemoMsg struct {
	EntryID string
}

type DeleteEntryMsg struct {
	ID string
}

type OpenEntryMsg struct {
	ID string
}

type Item struct {
	Entry models.Entry
}

func (i Item) Title() string {
	return cli.EntryTypeIcon(i.Entry.EntryType) + " " + i.Entry.Action
}

func (i Item) Description() string {
	parts := []string{
		i.Entry.CreatedAt.Format(constants.DateTimeFormat),
		string(i.Entry.Category),
		"worth it: " + string(i.Entry.WorthIt),
	}
	if n := len(i.Entry.Memos); n > 0 {
		parts = append(parts, fmt.Sprintf("%d memo(s)", n))
	}
	return strings.Join(parts, " · ")
}

func (i Item) FilterValue() string { return i.Entry.Action + " " + i.Entry.Note }

type KeyMap struct {
	Add    key.Binding
	Memo   key.Binding
	Open   key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "log entry"),
		),
		Memo: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "add memo"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(entries []models.Entry, width, height int) Model {
	l := list.New(items(entries), list.NewDefaultDelegate(), width, height)
	l.Title = "Entries"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Memo, keys.Open, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Memo, keys.Open, keys.Delete}
	}

	return Model{
		list: l,
		keys: keys,
	}
}

func items(entries []models.Entry) []list.Item {
	out := make([]list.Item, len(entries))
	for i, e := range entries {
		out[i] = Item{Entry: e}
	}
	return out
}

func (m *Model) SetEntries(entries []models.Entry) {
	m.list.SetItems(items(entries))
}

// Selected returns the highlighted entry, if any.
func (m Model) Selected() (models.Entry, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Entry, true
	}
	return models.Entry{}, false
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddEntryMsg{} }
		case key.Matches(msg, m.keys.Memo):
			if e, ok := m.Selected(); ok {
				return m, func() tea.Msg { return AddMemoMsg{EntryID: e.ID} }
			}
		case key.Matches(msg, m.keys.Open):
			if e, ok := m.Selected(); ok {
				return m, func() tea.Msg { return OpenEntryMsg{ID: e.ID} }
			}
		case key.Matches(msg, m.keys.Delete):
			if e, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteEntryMsg{ID: e.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No entries yet.\n  Press 'a' to log one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Filtering reports whether the filter input has focus.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}
