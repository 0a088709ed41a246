package health

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/FrozenTear/Nirify-sub003/internal/backup"
	"github.com/FrozenTear/Nirify-sub003/internal/storage"
)

var (
	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Width(18)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42")).
		Width(12)

	badStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true).
			Width(12)

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// Model shows the generated file health and the backups
type Model struct {
	viewport viewport.Model
	Files    []storage.FileHealth
	Backups  []backup.Info
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) Set(files []storage.FileHealth, backups []backup.Info) {
	m.Files = files
	m.Backups = backups
	m.Render()
}

func (m *Model) Render() {
	var b strings.Builder
	b.WriteString("Generated files\n\n")
	for _, f := range m.Files {
		style := okStyle
		if f.Status != storage.StatusOk {
			style = badStyle
		}
		fmt.Fprintf(&b, "%s %s %s\n",
			nameStyle.Render(f.Name),
			style.Render(f.Status.String()),
			detailStyle.Render(f.Detail),
		)
	}

	b.WriteString("\nBackups\n\n")
	if len(m.Backups) == 0 {
		b.WriteString(detailStyle.Render("No backups yet.") + "\n")
	}
	for _, bk := range m.Backups {
		fmt.Fprintf(&b, "%s %s %s\n",
			nameStyle.Render(bk.Timestamp.Format("2006-01-02 15:04")),
			detailStyle.Render(string(bk.Reason)),
			bk.Name,
		)
	}
	m.viewport.SetContent(b.String())
}
