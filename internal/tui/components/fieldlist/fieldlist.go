package fieldlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/FrozenTear/Nirify-sub003/internal/app"
)

// EditFieldMsg asks for a text prompt for the field
type EditFieldMsg struct {
	Field app.Field
	Value string
}

// ToggleFieldMsg flips a bool or steps an enum to its next option
type ToggleFieldMsg struct {
	Field app.Field
	Value string
}

type Item struct {
	Field app.Field
	Value string
}

func (i Item) Title() string { return i.Field.Key }
func (i Item) Description() string {
	v := i.Value
	if v == "" {
		v = "(unset)"
	}
	return fmt.Sprintf("%s | %s", v, i.Field.Help)
}
func (i Item) FilterValue() string { return i.Field.Key }

type KeyMap struct {
	Edit   key.Binding
	Toggle key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(fields []app.Field, values func(key string) string, width, height int) Model {
	l := list.New(items(fields, values), list.NewDefaultDelegate(), width, height)
	l.Title = "Settings"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Edit, keys.Toggle}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Edit, keys.Toggle}
	}

	return Model{list: l, keys: keys}
}

func items(fields []app.Field, values func(string) string) []list.Item {
	out := make([]list.Item, len(fields))
	for i, f := range fields {
		out[i] = Item{Field: f, Value: values(f.Key)}
	}
	return out
}

// Refresh re-reads every value, keeping the selection
func (m *Model) Refresh(values func(key string) string) {
	for i, it := range m.list.Items() {
		item := it.(Item)
		item.Value = values(item.Field.Key)
		m.list.SetItem(i, item)
	}
}

func (m Model) Selected() (Item, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i, ok
}

// Filtering reports whether the filter prompt has the keyboard
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Edit):
			if i, ok := m.Selected(); ok {
				return m, func() tea.Msg { return EditFieldMsg(i) }
			}
		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.Selected(); ok && (i.Field.Kind == app.KindBool || i.Field.Kind == app.KindEnum) {
				return m, func() tea.Msg { return ToggleFieldMsg(i) }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No settings."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
