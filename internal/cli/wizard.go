package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/avelichko/fabplan/internal/cli/formatter"
	"github.com/avelichko/fabplan/internal/domain"
)

// fabplanHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func fabplanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// wizardProjectForm builds the create/edit form for a project.
// name and status are both read and written through the pointers, so
// prefilled values become the form defaults.
func wizardProjectForm(name, status, manager *string) *huh.Form {
	options := make([]huh.Option[string], 0, len(domain.AllProjectStatuses))
	for _, st := range domain.AllProjectStatuses {
		label := strings.ReplaceAll(string(st), "_", " ")
		options = append(options, huh.NewOption(label, string(st)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Validate(requireNonEmpty("name")).
				Value(name),
			huh.NewSelect[string]().
				Title("Status").
				Options(options...).
				Value(status),
			huh.NewInput().
				Title("Manager").
				Placeholder("optional").
				Value(manager),
		),
	).WithTheme(fabplanHuhTheme()).WithShowHelp(false)
}

// wizardProductForm builds the create/edit form for a product.
func wizardProductForm(name, status *string) *huh.Form {
	statuses := []domain.ProductStatus{
		domain.ProductPlanned,
		domain.ProductInProgress,
		domain.ProductOnHold,
		domain.ProductDone,
	}
	options := make([]huh.Option[string], 0, len(statuses))
	for _, st := range statuses {
		label := strings.ReplaceAll(string(st), "_", " ")
		options = append(options, huh.NewOption(label, string(st)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Product name").
				Validate(requireNonEmpty("name")).
				Value(name),
			huh.NewSelect[string]().
				Title("Status").
				Options(options...).
				Value(status),
		),
	).WithTheme(fabplanHuhTheme()).WithShowHelp(false)
}

// wizardStageForm builds the create form for a work stage.
func wizardStageForm(name, start, end *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Stage name").
				Validate(requireNonEmpty("name")).
				Value(name),
			huh.NewInput().
				Title("Start date").
				Placeholder("YYYY-MM-DD, empty = today").
				Validate(validDateOrEmpty).
				Value(start),
			huh.NewInput().
				Title("End date").
				Placeholder("YYYY-MM-DD, empty = today").
				Validate(validDateOrEmpty).
				Value(end),
		),
	).WithTheme(fabplanHuhTheme()).WithShowHelp(false)
}

// wizardStatusFilter builds the multi-select over the closed project
// status set. selected carries the current filter in and the new one out.
func wizardStatusFilter(selected *[]string) *huh.Form {
	options := make([]huh.Option[string], 0, len(domain.AllProjectStatuses))
	for _, st := range domain.AllProjectStatuses {
		label := strings.ReplaceAll(string(st), "_", " ")
		options = append(options, huh.NewOption(label, string(st)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Show projects with status").
				Options(options...).
				Value(selected),
		),
	).WithTheme(fabplanHuhTheme()).WithShowHelp(false)
}

// wizardSpecLineForm builds the form for adding a catalog item to a
// product specification. items come from a prior catalog search.
func wizardSpecLineForm(items []*domain.NomenclatureItem, itemID, quantity *string) *huh.Form {
	if len(items) == 0 {
		return nil
	}
	options := make([]huh.Option[string], 0, len(items))
	for _, it := range items {
		label := it.Name
		if it.Designation != "" {
			label = fmt.Sprintf("%s — %s", it.Designation, it.Name)
		}
		options = append(options, huh.NewOption(label, it.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Catalog item").
				Options(options...).
				Value(itemID),
			huh.NewInput().
				Title("Quantity").
				Validate(validPositiveNumber).
				Value(quantity),
		),
	).WithTheme(fabplanHuhTheme()).WithShowHelp(false)
}

// newNomItemForm builds the create form for a catalog item. Only the name
// is mandatory; designation, article and unit mirror what a spreadsheet
// import would carry.
func newNomItemForm(name, designation, article, unit *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Validate(requireNonEmpty("name")).
				Value(name),
			huh.NewInput().
				Title("Designation").
				Placeholder("optional drawing designation").
				Value(designation),
			huh.NewInput().
				Title("Article").
				Placeholder("optional").
				Value(article),
			huh.NewInput().
				Title("Unit").
				Placeholder("pcs, kg, m ...").
				Value(unit),
		),
	).WithTheme(fabplanHuhTheme()).WithShowHelp(false)
}

// wizardConfirm builds a yes/no confirmation form.
func wizardConfirm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(fabplanHuhTheme()).WithShowHelp(false)
}

func requireNonEmpty(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validDateOrEmpty(s string) error {
	if s == "" {
		return nil
	}
	if _, err := parseDate(s); err != nil {
		return fmt.Errorf("expected YYYY-MM-DD")
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func validPositiveNumber(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("expected a positive number")
	}
	return nil
}
