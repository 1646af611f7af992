package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const tableColGap = 2

// RenderTable renders an aligned table with a header separator line.
// Column widths are measured with lipgloss so styled cells align with
// plain ones.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	widths := columnWidths(headers, rows)
	gap := strings.Repeat(" ", tableColGap)

	var b strings.Builder
	for i, h := range headers {
		if i > 0 {
			b.WriteString(gap)
		}
		b.WriteString(StyleHeader.Render(h))
		b.WriteString(pad(widths[i] - lipgloss.Width(h)))
	}
	b.WriteString("\n")

	for i, w := range widths {
		if i > 0 {
			b.WriteString(gap)
		}
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i := range headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if i > 0 {
				b.WriteString(gap)
			}
			b.WriteString(cell)
			b.WriteString(pad(widths[i] - lipgloss.Width(cell)))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// columnWidths returns the visible width of the widest cell in each column,
// headers included.
func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(headers) && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func pad(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
