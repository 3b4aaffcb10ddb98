package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// RenderWithTitleBorder renders content inside border with a title
// embedded in the top edge: ╭─ Title ─────╮
// width and height include the border.
func RenderWithTitleBorder(content, title string, width, height int, border lipgloss.Border, borderColor, titleColor lipgloss.TerminalColor) string {
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(titleColor)

	innerWidth := max(width-2, 1)
	contentHeight := max(height-2, 1)

	topBorder := buildTopBorder(title, innerWidth, border, borderStyle, titleStyle)
	bottomBorder := borderStyle.Render(border.BottomLeft + strings.Repeat(border.Bottom, innerWidth) + border.BottomRight)

	// Use lipgloss to constrain content width (handles wrapping/truncation properly)
	constrained := lipgloss.NewStyle().Width(innerWidth).Height(contentHeight).Render(content)
	contentLines := strings.Split(constrained, "\n")

	var result strings.Builder
	result.WriteString(topBorder)
	for i := 0; i < contentHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		if w := lipgloss.Width(line); w < innerWidth {
			line += strings.Repeat(" ", innerWidth-w)
		}
		result.WriteString("\n")
		result.WriteString(borderStyle.Render(border.Left) + line + borderStyle.Render(border.Right))
	}
	result.WriteString("\n")
	result.WriteString(bottomBorder)
	return result.String()
}

func buildTopBorder(title string, innerWidth int, border lipgloss.Border, borderStyle, titleStyle lipgloss.Style) string {
	plain := borderStyle.Render(border.TopLeft + strings.Repeat(border.Top, innerWidth) + border.TopRight)

	// "─ " before and " ─" after need at least four cells.
	if title == "" || innerWidth < 4 {
		return plain
	}

	displayTitle := ansi.Truncate(title, innerWidth-4, "…")
	remaining := max(innerWidth-3-lipgloss.Width(displayTitle), 0)

	return borderStyle.Render(border.TopLeft+border.Top+" ") +
		titleStyle.Render(displayTitle) +
		borderStyle.Render(" "+strings.Repeat(border.Top, remaining)+border.TopRight)
}
