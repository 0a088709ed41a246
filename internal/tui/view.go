package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateSettings:
		content = docStyle.Render(m.fields.View())
	case StateStatus:
		content = docStyle.Render(m.status.View())
	case StateEditing:
		content = m.viewEditing()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatusLine(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == SessionState(i) || (m.state == StateEditing && m.previousState == SessionState(i)) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewEditing() string {
	if m.editing == nil {
		return ""
	}
	lines := []string{m.editing.Key, statusStyle.Render(m.editing.Help)}
	if len(m.editing.Options) > 0 {
		lines = append(lines, statusStyle.Render("one of: "+strings.Join(m.editing.Options, ", ")))
	}
	lines = append(lines, "", m.input.View(), "", statusStyle.Render("enter to save, esc to cancel"))
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		promptStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)),
	)
}

func (m Model) viewStatusLine() string {
	switch {
	case m.err != nil:
		return errorStyle.Render("✗ " + m.err.Error())
	case m.ctx.Poisoned():
		return errorStyle.Render("an update failed, last good values are kept")
	case m.message != "":
		return statusStyle.Render(m.message)
	}
	return ""
}
