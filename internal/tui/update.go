package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/worthit/internal/constants"
	"github.com/julianstephens/worthit/internal/logger"
	"github.com/julianstephens/worthit/internal/models"
	"github.com/julianstephens/worthit/internal/tui/components/behaviorlist"
	"github.com/julianstephens/worthit/internal/tui/components/entrylist"
	"github.com/julianstephens/worthit/internal/tui/components/thread"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h := msg.Height - 4
		m.entryList.SetSize(msg.Width, h)
		m.behaviorList.SetSize(msg.Width, h)
		m.threadModel.SetSize(msg.Width, h)
		if m.form != nil {
			m.form = m.form.WithWidth(msg.Width).WithHeight(h)
		}
		return m, nil
	}

	switch m.state {
	case constants.StateAddEntry, constants.StateAddMemo:
		return m.updateForm(msg)
	case constants.StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	case constants.StateConfirmGroup:
		return m.updateConfirmGroup(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.handleGlobalKeys(msg); handled {
			return m, cmd
		}

	case entrylist.AddEntryMsg:
		m.startEntryForm()
		return m, m.form.Init()

	case entrylist.AddMemoMsg:
		m.startMemoForm(msg.EntryID)
		return m, m.form.Init()

	case thread.AddMemoMsg:
		m.startMemoForm(msg.EntryID)
		return m, m.form.Init()

	case entrylist.OpenEntryMsg:
		m.openThread(msg.ID, "")
		return m, nil

	case behaviorlist.OpenBehaviorMsg:
		m.openThread("", msg.ID)
		return m, nil

	case thread.BackMsg:
		m.state = m.threadReturn
		m.threadEntryID = ""
		m.threadBehaviorID = ""
		return m, nil

	case entrylist.DeleteEntryMsg:
		if e, ok := m.entries.Get(msg.ID); ok {
			m.confirmDelete(&deleteTarget{kind: deleteEntry, entryID: e.ID, label: e.Action})
		}
		return m, nil

	case behaviorlist.DeleteBehaviorMsg:
		if b, ok := m.behaviors.Get(msg.ID); ok {
			m.confirmDelete(&deleteTarget{kind: deleteBehavior, behaviorID: b.ID, label: b.Name})
		}
		return m, nil

	case thread.DeleteMemoMsg:
		m.confirmDelete(&deleteTarget{kind: deleteMemo, entryID: msg.EntryID, memoID: msg.MemoID, label: "this memo"})
		return m, nil

	case thread.ToggleStarMsg:
		m.report(m.entries.ToggleMemoStar(msg.EntryID, msg.MemoID), "")
		m.refresh()
		return m, nil

	case thread.ToggleHiddenMsg:
		m.report(m.entries.ToggleMemoHidden(msg.EntryID, msg.MemoID), "")
		m.refresh()
		return m, nil

	case behaviorlist.AutoGroupMsg:
		m.pendingGroups = m.behaviors.Worthwhile(m.behaviors.AutoGroup())
		if len(m.pendingGroups) == 0 {
			m.status = "No groups found among unlinked entries."
			return m, nil
		}
		m.previousState = m.state
		m.state = constants.StateConfirmGroup
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateEntries:
		m.entryList, cmd = m.entryList.Update(msg)
	case constants.StateBehaviors:
		m.behaviorList, cmd = m.behaviorList.Update(msg)
	case constants.StateThread:
		m.threadModel, cmd = m.threadModel.Update(msg)
	}
	return m, cmd
}

func (m *Model) filtering() bool {
	switch m.state {
	case constants.StateEntries:
		return m.entryList.Filtering()
	case constants.StateBehaviors:
		return m.behaviorList.Filtering()
	case constants.StateThread:
		return m.threadModel.Filtering()
	}
	return false
}

func (m *Model) handleGlobalKeys(msg tea.KeyMsg) (bool, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return true, tea.Quit
	}
	if m.filtering() {
		return false, nil
	}

	switch msg.String() {
	case "?":
		m.help.ShowAll = !m.help.ShowAll
		return true, nil
	case "tab", "shift+tab":
		// Only the two top-level views take part in the cycle.
		switch m.state {
		case constants.StateEntries:
			m.state = constants.StateBehaviors
		case constants.StateBehaviors:
			m.state = constants.StateEntries
		default:
			return false, nil
		}
		m.status = ""
		return true, nil
	}
	return false, nil
}

func (m *Model) openThread(entryID, behaviorID string) {
	m.threadEntryID = entryID
	m.threadBehaviorID = behaviorID
	m.refreshThread()
	m.threadReturn = m.state
	m.state = constants.StateThread
}

func (m *Model) confirmDelete(target *deleteTarget) {
	m.pendingDelete = target
	m.previousState = m.state
	m.state = constants.StateConfirmDelete
}

// report puts err, or the success message, in the status line.
func (m *Model) report(err error, success string) {
	if err != nil {
		logger.Error("TUI operation failed", "error", err)
		m.status = fmt.Sprintf("Error: %v", err)
		return
	}
	m.status = success
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "esc":
			m.closeForm()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		var saved bool
		if m.state == constants.StateAddEntry {
			saved = m.saveEntry()
		} else {
			saved = m.saveMemo()
		}
		if !saved {
			// Reopen the form with the values kept so the user can correct them.
			if m.state == constants.StateAddEntry {
				m.form = newEntryForm(m.entryForm)
			} else {
				m.form = newMemoForm(m.memoForm)
			}
			return m, m.form.Init()
		}
		m.closeForm()
		m.refresh()
		return m, nil
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}

	return m, cmd
}

func (m *Model) closeForm() {
	m.form = nil
	m.entryForm = nil
	m.memoForm = nil
	m.state = m.previousState
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "y", "Y":
		target := m.pendingDelete
		m.pendingDelete = nil
		m.state = m.previousState
		if target == nil {
			return m, nil
		}
		switch target.kind {
		case deleteEntry:
			m.report(m.entries.Remove(target.entryID), "✓ Entry deleted")
		case deleteMemo:
			m.report(m.entries.DeleteMemo(target.entryID, target.memoID), "✓ Memo deleted")
		case deleteBehavior:
			// Linked entries keep their reference.
			m.report(m.behaviors.Remove(target.behaviorID), "✓ Behavior deleted")
		}
		m.refresh()
		return m, nil
	case "n", "N", "esc":
		m.pendingDelete = nil
		m.state = m.previousState
		return m, nil
	}
	return m, nil
}

func (m Model) updateConfirmGroup(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "y", "Y":
		groups := m.pendingGroups
		m.pendingGroups = nil
		m.state = m.previousState
		n, err := m.behaviors.CommitGroups(groups, models.CategoryOther)
		m.report(err, fmt.Sprintf("✓ Linked %d entries across %d behaviors", n, len(groups)))
		m.refresh()
		return m, nil
	case "n", "N", "esc":
		m.pendingGroups = nil
		m.state = m.previousState
		return m, nil
	}
	return m, nil
}
