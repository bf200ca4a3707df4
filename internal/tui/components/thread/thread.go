package thread

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/worthit/internal/cli"
	"github.com/julianstephens/worthit/internal/constants"
	"github.com/julianstephens/worthit/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	statsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type BackMsg struct{}

type AddMemoMsg struct {
	EntryID string
}

type ToggleStarMsg struct {
	EntryID string
	MemoID  string
}

type ToggleHiddenMsg struct {
	EntryID string
	MemoID  string
}

type DeleteMemoMsg struct {
	EntryID string
	MemoID  string
}

// Item is either an entry row or, when Memo is set, one of its memos.
type Item struct {
	Entry models.Entry
	Memo  *models.Memo
}

func (i Item) Title() string {
	if i.Memo == nil {
		return cli.EntryTypeIcon(i.Entry.EntryType) + " " + i.Entry.Action
	}
	marker := "   "
	if i.Memo.IsStarred {
		marker = " ★ "
	}
	note := i.Memo.Note
	if note == "" {
		note = string(i.Memo.Outcome)
	}
	return marker + note
}

func (i Item) Description() string {
	if i.Memo == nil {
		return fmt.Sprintf("%s · felt %s · worth it: %s",
			i.Entry.CreatedAt.Format(constants.DateTimeFormat), i.Entry.PhysicalRating, i.Entry.WorthIt)
	}
	desc := fmt.Sprintf("   %s · %s · felt %s",
		i.Memo.CreatedAt.Format(constants.DateTimeFormat), i.Memo.Outcome, i.Memo.Feeling)
	if i.Memo.IsHidden {
		desc += " · hidden"
	}
	return desc
}

func (i Item) FilterValue() string {
	if i.Memo != nil {
		return i.Memo.Note
	}
	return i.Entry.Action
}

type KeyMap struct {
	Memo       key.Binding
	Star       key.Binding
	Hide       key.Binding
	ShowHidden key.Binding
	Delete     key.Binding
	Back       key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Memo: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "add memo"),
		),
		Star: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "star"),
		),
		Hide: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "hide"),
		),
		ShowHidden: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "show hidden"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete memo"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}

// Model shows a set of entries with their memos interleaved: a behavior's
// history, or a single entry.
type Model struct {
	list       list.Model
	keys       KeyMap
	title      string
	stats      *models.BehaviorStats
	entries    []models.Entry
	showHidden bool
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Memo, keys.Star, keys.Hide, keys.Back}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Memo, keys.Star, keys.Hide, keys.ShowHidden, keys.Delete, keys.Back}
	}

	return Model{
		list: l,
		keys: keys,
	}
}

// SetThread replaces the displayed entries. stats is nil for a single entry.
func (m *Model) SetThread(title string, stats *models.BehaviorStats, entries []models.Entry) {
	m.title = title
	m.stats = stats
	m.entries = entries
	m.rebuild()
}

func (m *Model) rebuild() {
	var items []list.Item
	for _, e := range m.entries {
		items = append(items, Item{Entry: e})
		for _, memo := range cli.VisibleMemosFor(e, m.showHidden) {
			items = append(items, Item{Entry: e, Memo: &memo})
		}
	}
	m.list.SetItems(items)
}

func (m Model) ShowHidden() bool {
	return m.showHidden
}

func (m Model) Selected() (Item, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i, ok
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() != list.Unfiltered {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return BackMsg{} }
		case key.Matches(msg, m.keys.ShowHidden):
			m.showHidden = !m.showHidden
			m.rebuild()
			return m, nil
		case key.Matches(msg, m.keys.Memo):
			if i, ok := m.Selected(); ok {
				return m, func() tea.Msg { return AddMemoMsg{EntryID: i.Entry.ID} }
			}
		case key.Matches(msg, m.keys.Star):
			if i, ok := m.Selected(); ok && i.Memo != nil {
				return m, func() tea.Msg { return ToggleStarMsg{EntryID: i.Entry.ID, MemoID: i.Memo.ID} }
			}
		case key.Matches(msg, m.keys.Hide):
			if i, ok := m.Selected(); ok && i.Memo != nil {
				return m, func() tea.Msg { return ToggleHiddenMsg{EntryID: i.Entry.ID, MemoID: i.Memo.ID} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.Selected(); ok && i.Memo != nil {
				return m, func() tea.Msg { return DeleteMemoMsg{EntryID: i.Entry.ID, MemoID: i.Memo.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) header() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	if m.stats != nil {
		s := m.stats
		b.WriteString("\n")
		b.WriteString(statsStyle.Render(fmt.Sprintf("%d entries · %d resisted · %d did it · %d%% success · ",
			s.TotalEntries, s.ResistedCount, s.DidItCount, s.SuccessRate)))
		b.WriteString(cli.FormatTrend(s.Trend))
	}
	return b.String()
}

func (m Model) View() string {
	if len(m.entries) == 0 {
		return m.header() + "\n\n  No entries linked yet."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.header(), "", m.list.View())
}

func (m *Model) SetSize(width, height int) {
	// Leave room for the header.
	m.list.SetSize(width, height-3)
}

// Filtering reports whether the filter input has focus.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}
