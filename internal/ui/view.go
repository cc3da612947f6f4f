package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/todolist-go/internal/controller"
)

const title = "todolist"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	rowStyle      = lipgloss.NewStyle().PaddingLeft(2)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)
	emptyStyle    = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("241")).Italic(true)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warningStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("203")).
			Foreground(lipgloss.Color("203")).
			Padding(0, 2)
)

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title) + "\n\n")

	if m.warning != "" {
		b.WriteString(warningStyle.Render(m.warning) + "\n")
		b.WriteString(footerStyle.Render("Press any key to continue") + "\n")
		return b.String()
	}

	if m.showHelp {
		writeHelp(&b)
		return b.String()
	}

	b.WriteString(m.input.View() + "\n\n")
	writeRows(&b, m.rows, m.cursor)
	writeFooter(&b, len(m.rows), m.status)
	return b.String()
}

func writeRows(b *strings.Builder, rows []controller.Row, cursor int) {
	if len(rows) == 0 {
		b.WriteString(emptyStyle.Render("No tasks yet.") + "\n\n")
		return
	}
	for i, row := range rows {
		if i == cursor {
			b.WriteString(selectedStyle.Render("› "+row.Text) + "\n")
			continue
		}
		b.WriteString(rowStyle.Render(row.Text) + "\n")
	}
	b.WriteString("\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  enter              Add the typed task\n")
	b.WriteString("  up/down, ctrl+p/n  Move selection\n")
	b.WriteString("  ctrl+x, delete     Remove selected task\n")
	b.WriteString("  ?                  Toggle this help (when input is empty)\n")
	b.WriteString("  esc, ctrl+c        Quit\n\n")
	b.WriteString(footerStyle.Render("Press ? to go back") + "\n")
}

func writeFooter(b *strings.Builder, count int, status string) {
	noun := "tasks"
	if count == 1 {
		noun = "task"
	}
	line := fmt.Sprintf("%d %s", count, noun)
	if status != "" {
		line += " | " + status
	}
	line += " | ? help | esc quit"
	b.WriteString(footerStyle.Render(line) + "\n")
}
