package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avelichko/fabplan/internal/cli/formatter"
	"github.com/avelichko/fabplan/internal/domain"
)

// specLoadedMsg signals that a product specification has been loaded.
type specLoadedMsg struct {
	lines []*domain.SpecificationLine
	err   error
}

// specPickedMsg carries the catalog page fetched for the add-line wizard.
type specPickedMsg struct {
	items []*domain.NomenclatureItem
	err   error
}

// specificationView shows the bill of materials of the active product.
type specificationView struct {
	state   *SharedState
	lines   []*domain.SpecificationLine
	cursor  int
	loading bool
	err     error
}

func newSpecificationView(state *SharedState) *specificationView {
	return &specificationView{state: state, loading: true}
}

func (v *specificationView) ID() ViewID { return ViewSpecification }
func (v *specificationView) Title() string {
	if v.state.ActiveProductName != "" {
		return v.state.ActiveProductName
	}
	return "Specification"
}

func (v *specificationView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add line")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove line")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *specificationView) Init() tea.Cmd {
	return v.loadLines()
}

func (v *specificationView) loadLines() tea.Cmd {
	app := v.state.App
	productID := v.state.ActiveProductID
	return func() tea.Msg {
		lines, err := app.Client.GetSpecification(context.Background(), productID)
		return specLoadedMsg{lines: lines, err: err}
	}
}

func (v *specificationView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case specLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.lines = msg.lines
		if v.cursor >= len(v.lines) {
			v.cursor = 0
		}
		return v, nil

	case specPickedMsg:
		if msg.err != nil {
			return v, flash(formatter.StyleRed.Render(msg.err.Error()))
		}
		if len(msg.items) == 0 {
			return v, flash(formatter.Dim("The catalog is empty, add items first."))
		}
		return v, v.openAddLineForm(msg.items)

	case refreshViewMsg:
		v.loading = true
		return v, v.loadLines()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.lines)-1 {
				v.cursor++
			}
		case "a":
			return v, v.fetchCatalog()
		case "x":
			if v.cursor < len(v.lines) {
				return v, v.confirmRemove(v.lines[v.cursor])
			}
		case "r":
			v.loading = true
			return v, v.loadLines()
		}
	}
	return v, nil
}

// fetchCatalog loads the first catalog page so the add-line wizard has
// options to offer.
func (v *specificationView) fetchCatalog() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		items, _, err := app.Client.ListNomenclature(context.Background(), "", 0, 100)
		return specPickedMsg{items: items, err: err}
	}
}

func (v *specificationView) openAddLineForm(items []*domain.NomenclatureItem) tea.Cmd {
	app := v.state.App
	productID := v.state.ActiveProductID

	var itemID string
	quantity := "1"
	form := wizardSpecLineForm(items, &itemID, &quantity)
	done := func() tea.Cmd {
		return func() tea.Msg {
			qty, _ := strconv.ParseFloat(strings.TrimSpace(quantity), 64)
			line := &domain.SpecificationLine{
				ProductID:      productID,
				NomenclatureID: itemID,
				Quantity:       qty,
			}
			if _, err := app.Client.AddSpecificationLine(context.Background(), productID, line); err != nil {
				return flashMsg{text: formatter.StyleRed.Render(err.Error())}
			}
			return nil
		}
	}
	return startWizardCmd(v.state, "Add line", form, done)
}

func (v *specificationView) confirmRemove(line *domain.SpecificationLine) tea.Cmd {
	app := v.state.App
	productID := v.state.ActiveProductID

	confirmed := false
	form := wizardConfirm(fmt.Sprintf("Remove %q from the specification?", line.Name), &confirmed)
	lineID := line.ID
	done := func() tea.Cmd {
		if !confirmed {
			return nil
		}
		return func() tea.Msg {
			if err := app.Client.RemoveSpecificationLine(context.Background(), productID, lineID); err != nil {
				return flashMsg{text: formatter.StyleRed.Render(err.Error())}
			}
			return nil
		}
	}
	return startWizardCmd(v.state, "Remove", form, done)
}

func (v *specificationView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading specification...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}
	if len(v.lines) == 0 {
		return "\n  " + formatter.Dim("The specification is empty.")
	}

	rows := make([][]string, 0, len(v.lines))
	for i, line := range v.lines {
		name := line.Name
		if i == v.cursor {
			name = formatter.StyleGreen.Render("▸ ") + name
		} else {
			name = "  " + name
		}
		qty := strconv.FormatFloat(line.Quantity, 'f', -1, 64)
		if line.Unit != "" {
			qty += " " + line.Unit
		}
		rows = append(rows, []string{name, formatter.Dim(line.Designation), qty})
	}

	return "\n" + formatter.RenderTable([]string{"Item", "Designation", "Qty"}, rows)
}
