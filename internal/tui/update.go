package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/FrozenTear/Nirify-sub003/internal/tui/components/fieldlist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.fields.SetSize(msg.Width-4, msg.Height-6)
		m.status.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case ReloadedMsg:
		m.fields.Refresh(valueOf(m.ctx))
		m.message = fmt.Sprintf("reloaded %s from disk", msg.Category)
		m.err = nil
		return m, nil

	case savedMsg:
		m.fields.Refresh(valueOf(m.ctx))
		m.refreshStatus()
		if msg.err != nil {
			m.err = msg.err
			m.message = ""
		} else {
			m.err = nil
			m.message = "saved " + msg.key
		}
		return m, nil

	case fieldlist.EditFieldMsg:
		f := msg.Field
		m.editing = &f
		m.previousState = m.state
		m.state = StateEditing
		m.input.SetValue(msg.Value)
		m.input.CursorEnd()
		return m, m.input.Focus()

	case fieldlist.ToggleFieldMsg:
		return m, m.setCmd(msg.Field.Key, nextValue(msg.Field, msg.Value))

	case tea.KeyMsg:
		if m.state == StateEditing {
			return m.updateEditing(msg)
		}
		if m.state == StateSettings && m.fields.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + SessionState(len(tabTitles))) % SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Save):
			ctx := m.ctx
			return m, func() tea.Msg {
				return savedMsg{key: "all files", err: ctx.Regenerate()}
			}
		case m.state == StateStatus && key.Matches(msg, m.keys.Refresh):
			m.refreshStatus()
			return m, nil
		}
	}

	switch m.state {
	case StateSettings:
		m.fields, cmd = m.fields.Update(msg)
	case StateStatus:
		m.status, cmd = m.status.Update(msg)
	case StateEditing:
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.state = m.previousState
		m.editing = nil
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		f := m.editing
		value := m.input.Value()
		m.state = m.previousState
		m.editing = nil
		m.input.Blur()
		return m, m.setCmd(f.Key, value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}
