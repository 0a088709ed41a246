package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/FrozenTear/Nirify-sub003/internal/app"
	"github.com/FrozenTear/Nirify-sub003/internal/models"
	"github.com/FrozenTear/Nirify-sub003/internal/tui/components/fieldlist"
	"github.com/FrozenTear/Nirify-sub003/internal/tui/components/health"
)

type SessionState int

const (
	StateSettings SessionState = iota
	StateStatus
	StateEditing
)

var tabTitles = []string{"Settings", "Status"}

// ReloadedMsg is sent when a hand edit of a category was loaded
type ReloadedMsg struct {
	Category models.Category
}

type savedMsg struct {
	key string
	err error
}

type Model struct {
	ctx           *app.Context
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	fields        fieldlist.Model
	status        health.Model
	input         textinput.Model
	editing       *app.Field
	message       string
	err           error
	quitting      bool
	width         int
	height        int
}

func NewModel(ctx *app.Context) Model {
	ti := textinput.New()
	ti.CharLimit = 256

	m := Model{
		ctx:    ctx,
		state:  StateSettings,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		fields: fieldlist.New(app.Fields(), valueOf(ctx), 0, 0),
		status: health.New(0, 0),
		input:  ti,
	}
	m.refreshStatus()
	return m
}

func valueOf(ctx *app.Context) func(string) string {
	return func(key string) string {
		v, _ := ctx.Get(key)
		return v
	}
}

func (m *Model) refreshStatus() {
	backups, _ := m.ctx.Backups().List()
	m.status.Set(m.ctx.Health(), backups)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) ShortHelp() []key.Binding {
	return m.keys.ShortHelp()
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

// setCmd runs the write off the UI loop
func (m Model) setCmd(key, value string) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return savedMsg{key: key, err: ctx.Set(key, value)}
	}
}

// nextValue flips a bool or steps an enum, wrapping through unset
func nextValue(f app.Field, current string) string {
	if f.Kind == app.KindBool {
		if current == "true" {
			return "false"
		}
		return "true"
	}
	options := append([]string{""}, f.Options...)
	for i, o := range options {
		if o == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}
