package behaviorlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/worthit/internal/cli"
	"github.com/julianstephens/worthit/internal/models"
)

type OpenBehaviorMsg struct {
	ID string
}

type DeleteBehaviorMsg struct {
	ID string
}

type AutoGroupMsg struct{}

type Item struct {
	Behavior models.Behavior
	Stats    models.BehaviorStats
}

func (i Item) Title() string { return i.Behavior.Name }

func (i Item) Description() string {
	if i.Stats.TotalEntries == 0 {
		return fmt.Sprintf("%s · no entries yet", i.Behavior.Category)
	}
	return fmt.Sprintf("%s · %d entries · %d%% resisted · %s",
		i.Behavior.Category, i.Stats.TotalEntries, i.Stats.SuccessRate, cli.FormatTrend(i.Stats.Trend))
}

func (i Item) FilterValue() string { return i.Behavior.Name }

type KeyMap struct {
	Open      key.Binding
	Delete    key.Binding
	AutoGroup key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open thread"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		AutoGroup: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "auto-group"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(behaviors []models.BehaviorWithStats, width, height int) Model {
	l := list.New(items(behaviors), list.NewDefaultDelegate(), width, height)
	l.Title = "Behaviors"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Open, keys.Delete, keys.AutoGroup}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Open, keys.Delete, keys.AutoGroup}
	}

	return Model{
		list: l,
		keys: keys,
	}
}

func items(behaviors []models.BehaviorWithStats) []list.Item {
	out := make([]list.Item, len(behaviors))
	for i, bs := range behaviors {
		out[i] = Item{Behavior: bs.Behavior, Stats: bs.Stats}
	}
	return out
}

func (m *Model) SetBehaviors(behaviors []models.BehaviorWithStats) {
	m.list.SetItems(items(behaviors))
}

func (m Model) Selected() (models.Behavior, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Behavior, true
	}
	return models.Behavior{}, false
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
		case key.Matches(msg, m.keys.Open):
			if b, ok := m.Selected(); ok {
				return m, func() tea.Msg { return OpenBehaviorMsg{ID: b.ID} }
			}
		case key.Matches(msg, m.keys.Delete):
			if b, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteBehaviorMsg{ID: b.ID} }
			}
		case key.Matches(msg, m.keys.AutoGroup):
			return m, func() tea.Msg { return AutoGroupMsg{} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No behaviors yet.\n  Press 'g' to group similar entries into behaviors."
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
