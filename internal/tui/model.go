package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/worthit/internal/behaviors"
	"github.com/julianstephens/worthit/internal/constants"
	"github.com/julianstephens/worthit/internal/entries"
	"github.com/julianstephens/worthit/internal/models"
	"github.com/julianstephens/worthit/internal/tui/components/behaviorlist"
	"github.com/julianstephens/worthit/internal/tui/components/entrylist"
	"github.com/julianstephens/worthit/internal/tui/components/thread"
)

type EntryFormModel struct {
	Action   string
	Type     string
	Category string
	Context  []string
	Rating   string
	Tags     []string
	WorthIt  string
	Note     string
}

type MemoFormModel struct {
	EntryID string
	Outcome string
	Feeling string
	Note    string
}

type deleteKind int

const (
	deleteEntry deleteKind = iota
	deleteMemo
	deleteBehavior
)

// deleteTarget is what the confirmation screen will remove on "y".
type deleteTarget struct {
	kind       deleteKind
	entryID    string
	memoID     string
	behaviorID string
	label      string
}

type Model struct {
	entries          *entries.Store
	behaviors        *behaviors.Engine
	state            constants.SessionState
	previousState    constants.SessionState
	keys             KeyMap
	help             help.Model
	entryList        entrylist.Model
	behaviorList     behaviorlist.Model
	threadModel      thread.Model
	threadEntryID    string // set when the thread shows a single entry
	threadBehaviorID string // set when the thread shows a behavior
	threadReturn     constants.SessionState
	form             *huh.Form
	entryForm        *EntryFormModel
	memoForm         *MemoFormModel
	pendingDelete    *deleteTarget
	pendingGroups    []behaviors.Group
	quitting         bool
	width            int
	height           int
	formError        string // Error message to display for form operations
	status           string
}

func NewModel(entryStore *entries.Store, engine *behaviors.Engine) Model {
	return Model{
		entries:      entryStore,
		behaviors:    engine,
		state:        constants.StateEntries,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		entryList:    entrylist.New(entryStore.All(), 0, 0),
		behaviorList: behaviorlist.New(engine.WithStats(), 0, 0),
		threadModel:  thread.New(0, 0),
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateEntries:
		ek := entrylist.DefaultKeyMap()
		keys = append(keys, ek.Add, ek.Memo, ek.Open, ek.Delete)
	case constants.StateBehaviors:
		bk := behaviorlist.DefaultKeyMap()
		keys = append(keys, bk.Open, bk.AutoGroup, bk.Delete)
	case constants.StateThread:
		tk := thread.DefaultKeyMap()
		keys = []key.Binding{tk.Back, tk.Memo, tk.Star, tk.Hide, m.keys.Help}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.Back}

	var actions []key.Binding
	switch m.state {
	case constants.StateEntries:
		ek := entrylist.DefaultKeyMap()
		actions = []key.Binding{ek.Add, ek.Memo, ek.Open, ek.Delete}
	case constants.StateBehaviors:
		bk := behaviorlist.DefaultKeyMap()
		actions = []key.Binding{bk.Open, bk.AutoGroup, bk.Delete}
	case constants.StateThread:
		tk := thread.DefaultKeyMap()
		actions = []key.Binding{tk.Memo, tk.Star, tk.Hide, tk.ShowHidden, tk.Delete}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh reloads every view from the stores after a write.
func (m *Model) refresh() {
	m.entryList.SetEntries(m.entries.All())
	m.behaviorList.SetBehaviors(m.behaviors.WithStats())
	m.refreshThread()
}

func (m *Model) refreshThread() {
	switch {
	case m.threadBehaviorID != "":
		b, ok := m.behaviors.Get(m.threadBehaviorID)
		if !ok {
			m.threadBehaviorID = ""
			return
		}
		stats := m.behaviors.Stats(b.ID)
		m.threadModel.SetThread(b.Name, &stats, m.behaviors.EntriesFor(b.ID))
	case m.threadEntryID != "":
		e, ok := m.entries.Get(m.threadEntryID)
		if !ok {
			m.threadEntryID = ""
			m.threadModel.SetThread("", nil, nil)
			return
		}
		m.threadModel.SetThread(e.Action, nil, []models.Entry{e})
	}
}
