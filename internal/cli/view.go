package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID tags each screen so the app model can route keys without
// type-switching on every view.
type ViewID int

const (
	ViewBoard ViewID = iota
	ViewNomenclature
	ViewSpecification
	ViewForm
)

// View is a tea.Model that can live on the navigation stack. Title
// feeds the breadcrumb header, ShortHelp the hint bar at the bottom.
type View interface {
	tea.Model
	ID() ViewID
	ShortHelp() []key.Binding
	Title() string
}
