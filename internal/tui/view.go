package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/worthit/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateEntries:
		content = m.entryList.View()
	case constants.StateBehaviors:
		content = m.behaviorList.View()
	case constants.StateThread:
		content = docStyle.Render(m.threadModel.View())
	case constants.StateAddEntry, constants.StateAddMemo:
		content = m.viewForm()
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	case constants.StateConfirmGroup:
		content = m.viewConfirmGroup()
	}

	var banner string
	if m.status != "" {
		banner = statusStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		banner,
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	active := m.state
	if active == constants.StateThread {
		active = m.threadReturn
	}
	for i, title := range []string{"Entries", "Behaviors"} {
		if active == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewForm() string {
	if m.form == nil {
		return ""
	}
	view := m.form.View()
	if m.formError != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, dangerStyle.Render(m.formError), "", view)
	}
	return docStyle.Render(view)
}

func (m Model) viewConfirmDelete() string {
	if m.pendingDelete == nil {
		return ""
	}
	lines := []string{dangerStyle.Render(fmt.Sprintf("Are you sure you want to delete %q?", m.pendingDelete.label))}
	if m.pendingDelete.kind == deleteBehavior {
		lines = append(lines, warningStyle.Render("Linked entries keep their reference to it."))
	}
	lines = append(lines, "", "[y] Yes", "[n] No")
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...),
	)
}

func (m Model) viewConfirmGroup() string {
	lines := []string{warningStyle.Render(fmt.Sprintf("Create or extend %d behaviors?", len(m.pendingGroups))), ""}
	for _, g := range m.pendingGroups {
		label := "new"
		if _, ok := m.behaviors.GetByName(g.Key); ok {
			label = "existing"
		}
		lines = append(lines, fmt.Sprintf("%s (%s, %d entries)", g.Key, label, len(g.Entries)))
	}
	lines = append(lines, "", "[y] Yes", "[n] No")
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...),
	)
}
