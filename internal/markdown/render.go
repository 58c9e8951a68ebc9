package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	activeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	inactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	unreadStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	readStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func RenderMarkdown(content string) (string, error) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

func RenderActive(active bool) string {
	if active {
		return activeStyle.Render("yes")
	}
	return inactiveStyle.Render("no")
}

func RenderRead(read bool) string {
	if read {
		return readStyle.Render("read")
	}
	return unreadStyle.Render("unread")
}

func RenderField(label, value string) string {
	return labelStyle.Render(label+":") + " " + value
}

func RenderEntityHeader(title string, fields []string) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render(title))
	sb.WriteString("\n")
	for _, f := range fields {
		sb.WriteString("  " + f + "\n")
	}
	return sb.String()
}
