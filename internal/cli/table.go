package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderTable formats rows as a plain aligned table with a styled header.
// Column widths follow the widest cell; numeric-looking right alignment is
// the caller's concern.
func RenderTable(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, style *lipgloss.Style) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			padded := cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
			if style != nil {
				padded = style.Render(padded)
			}
			parts[i] = padded
		}
		b.WriteString(strings.TrimRight(strings.Join(parts, "  "), " "))
		b.WriteString("\n")
	}

	writeRow(header, &HeaderStyle)
	for _, row := range rows {
		writeRow(row, nil)
	}
	return b.String()
}
