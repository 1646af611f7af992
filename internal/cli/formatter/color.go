// Package formatter renders styled terminal output shared by the TUI
// views and the plain CLI subcommands.
package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/avelichko/fabplan/internal/domain"
)

// Gruvbox colors that other packages need raw (the form theme builds
// its own styles from them).
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(lipgloss.Color("#fabd2f"))
	StyleRed    = lipgloss.NewStyle().Foreground(lipgloss.Color("#fb4934"))
	StyleBlue   = lipgloss.NewStyle().Foreground(lipgloss.Color("#83a598"))
	StylePurple = lipgloss.NewStyle().Foreground(lipgloss.Color("#d3869b"))
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// ProjectStatusStyle maps a project status to its badge color.
// Unknown statuses get purple so a new backend value stays visible
// instead of disappearing into the dim style.
func ProjectStatusStyle(st domain.ProjectStatus) lipgloss.Style {
	switch st {
	case domain.ProjectInProgress:
		return StyleGreen
	case domain.ProjectOnHold:
		return StyleYellow
	case domain.ProjectCompleted:
		return StyleBlue
	case domain.ProjectArchived:
		return StyleDim
	default:
		return StylePurple
	}
}

// ProductStatusStyle maps a product status to its badge color.
func ProductStatusStyle(st domain.ProductStatus) lipgloss.Style {
	switch st {
	case domain.ProductInProgress:
		return StyleGreen
	case domain.ProductOnHold:
		return StyleYellow
	case domain.ProductDone:
		return StyleBlue
	default:
		return StylePurple
	}
}

// StatusBadge renders a project status as a colored bracketed label,
// e.g. "[in progress]".
func StatusBadge(st domain.ProjectStatus) string {
	label := strings.ReplaceAll(string(st), "_", " ")
	return ProjectStatusStyle(st).Render("[" + label + "]")
}

// Header renders an upper-cased section heading with an underline rule.
func Header(text string) string {
	upper := strings.ToUpper(text)
	rule := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(rule))
}

func Dim(text string) string  { return StyleDim.Render(text) }
func Bold(text string) string { return StyleBold.Render(text) }
