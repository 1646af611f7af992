package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avelichko/fabplan/internal/cli/formatter"
	"github.com/avelichko/fabplan/internal/domain"
)

const nomPageSize = 20

// nomLoadedMsg signals that one page of the catalog has been loaded.
type nomLoadedMsg struct {
	items []*domain.NomenclatureItem
	total int
	err   error
}

// nomenclatureView is a searchable, paginated browser over the parts
// catalog.
type nomenclatureView struct {
	state   *SharedState
	items   []*domain.NomenclatureItem
	total   int
	page    int
	cursor  int
	loading bool
	err     error

	search    textinput.Model
	searching bool
}

func newNomenclatureView(state *SharedState) *nomenclatureView {
	ti := textinput.New()
	ti.Placeholder = "name, designation or article"
	ti.CharLimit = 120
	return &nomenclatureView{
		state:   state,
		loading: true,
		search:  ti,
	}
}

func (v *nomenclatureView) ID() ViewID    { return ViewNomenclature }
func (v *nomenclatureView) Title() string { return "Catalog" }

// capturesInput reports whether the search box currently owns the keyboard.
func (v *nomenclatureView) capturesInput() bool { return v.searching }

func (v *nomenclatureView) ShortHelp() []key.Binding {
	if v.searching {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n/p", "page")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add item")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *nomenclatureView) Init() tea.Cmd {
	return v.loadPage()
}

func (v *nomenclatureView) loadPage() tea.Cmd {
	app := v.state.App
	query := v.search.Value()
	page := v.page
	return func() tea.Msg {
		items, total, err := app.Client.ListNomenclature(context.Background(), query, page, nomPageSize)
		return nomLoadedMsg{items: items, total: total, err: err}
	}
}

func (v *nomenclatureView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case nomLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.items = msg.items
		v.total = msg.total
		if v.cursor >= len(v.items) {
			v.cursor = 0
		}
		return v, nil

	case refreshViewMsg:
		v.loading = true
		return v, v.loadPage()

	case tea.KeyMsg:
		if v.searching {
			return v.handleSearchKey(msg)
		}
		return v.handleKey(msg)
	}

	if v.searching {
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *nomenclatureView) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		v.searching = false
		v.search.Blur()
		v.page = 0
		v.loading = true
		return v, v.loadPage()
	case tea.KeyEsc:
		v.searching = false
		v.search.Blur()
		v.search.SetValue("")
		return v, nil
	}
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	return v, cmd
}

func (v *nomenclatureView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.items)-1 {
			v.cursor++
		}
	case "/":
		v.searching = true
		return v, v.search.Focus()
	case "n":
		if (v.page+1)*nomPageSize < v.total {
			v.page++
			v.loading = true
			return v, v.loadPage()
		}
	case "p":
		if v.page > 0 {
			v.page--
			v.loading = true
			return v, v.loadPage()
		}
	case "a":
		return v, v.openItemForm()
	case "r":
		v.loading = true
		return v, v.loadPage()
	}
	return v, nil
}

// openItemForm pushes the create form for a new catalog item.
func (v *nomenclatureView) openItemForm() tea.Cmd {
	app := v.state.App

	var name, designation, article, unit string
	form := newNomItemForm(&name, &designation, &article, &unit)
	done := func() tea.Cmd {
		return func() tea.Msg {
			item := &domain.NomenclatureItem{
				Name:        name,
				Designation: designation,
				Article:     article,
				Unit:        unit,
			}
			if _, err := app.Client.CreateNomenclature(context.Background(), item); err != nil {
				return flashMsg{text: formatter.StyleRed.Render(err.Error())}
			}
			return nil
		}
	}
	return startWizardCmd(v.state, "New item", form, done)
}

func (v *nomenclatureView) View() string {
	var b strings.Builder
	b.WriteString("\n")

	if v.searching || v.search.Value() != "" {
		b.WriteString("  " + formatter.Dim("search:") + " " + v.search.View() + "\n\n")
	}

	switch {
	case v.loading:
		b.WriteString("  " + formatter.Dim("Loading catalog..."))
	case v.err != nil:
		b.WriteString("  " + formatter.StyleRed.Render("Error: "+v.err.Error()))
	case len(v.items) == 0:
		b.WriteString("  " + formatter.Dim("No catalog items found."))
	default:
		for i, item := range v.items {
			cursor := "  "
			if i == v.cursor {
				cursor = formatter.StyleGreen.Render("▸ ")
			}
			line := cursor + item.Name
			if item.Designation != "" {
				line += " " + formatter.Dim(item.Designation)
			}
			if item.Unit != "" {
				line += " " + formatter.Dim("["+item.Unit+"]")
			}
			b.WriteString(line + "\n")
		}
		pages := (v.total + nomPageSize - 1) / nomPageSize
		if pages > 1 {
			b.WriteString("\n  " + formatter.Dim(fmt.Sprintf("page %d/%d (%d items)", v.page+1, pages, v.total)))
		}
	}
	return b.String()
}
