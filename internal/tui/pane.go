package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// pane frames content in a rounded border with the title set into the top
// edge. Content lines are truncated to fit, never wrapped.
type pane struct {
	Title   string
	Content string
	Focused bool
}

func (p pane) Render(width, height int) string {
	if width <= 0 {
		return ""
	}
	if width < 4 {
		width = 4
	}
	if height < 3 {
		height = 3
	}

	border := lipgloss.Color("#6c7086")
	if p.Focused {
		border = lipgloss.Color("#a6e3a1")
	}
	borderStyle := lipgloss.NewStyle().Foreground(border)
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4")).Bold(true)

	innerWidth := width - 2
	contentWidth := innerWidth - 2

	titleText := " " + strings.TrimSpace(p.Title) + " "
	if ansi.StringWidth(titleText) > innerWidth {
		titleText = " " + ansi.Truncate(strings.TrimSpace(p.Title), max(1, innerWidth-2), "") + " "
	}
	dashes := max(0, innerWidth-ansi.StringWidth(titleText))
	leftDash := min(1, dashes)

	v := borderStyle.Render("│")
	rows := make([]string, 0, height)
	rows = append(rows, borderStyle.Render("╭"+strings.Repeat("─", leftDash))+
		titleStyle.Render(titleText)+
		borderStyle.Render(strings.Repeat("─", dashes-leftDash)+"╮"))

	lines := strings.Split(p.Content, "\n")
	for i := 0; i < height-2; i++ {
		line := ""
		if i < len(lines) {
			line = ansi.Truncate(lines[i], contentWidth, "")
		}
		rows = append(rows, v+" "+padRight(line, contentWidth)+" "+v)
	}
	rows = append(rows, borderStyle.Render("╰"+strings.Repeat("─", innerWidth)+"╯"))
	return strings.Join(rows, "\n")
}

func padRight(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
