package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avelichko/fabplan/internal/board"
	"github.com/avelichko/fabplan/internal/cli/formatter"
	"github.com/avelichko/fabplan/internal/contract"
	"github.com/avelichko/fabplan/internal/domain"
	"github.com/avelichko/fabplan/internal/prefs"
)

// boardRow is one visible line of the flattened project → product → stage
// tree. Every row carries its drag token so a grab and a drop address the
// same sibling list the coordinator sees.
type boardRow struct {
	kind  board.Kind
	id    string
	token string
	title string

	projectID string
	productID string

	projectStatus domain.ProjectStatus
	productStatus domain.ProductStatus
	manager       string
	dates         string
	version       int
	orderIndex    *int

	collapsed  bool
	childCount int
}

// boardLoadedMsg signals that the board and the stored preferences have
// been (re)loaded.
type boardLoadedMsg struct {
	collapsedProjects map[string]bool
	collapsedProducts map[string]bool
	filter            board.StatusFilter
	applyFilter       bool
	err               error
}

// persistResultMsg carries the outcome of one reorder persistence call.
type persistResultMsg struct {
	err error
}

// rollbackDoneMsg signals that the board was re-fetched after a failed
// persistence call.
type rollbackDoneMsg struct {
	err error
}

// boardView is the kanban-style home view: projects, their products, and
// each product's work stages, reorderable at every level with a grab and
// drop gesture.
type boardView struct {
	state   *SharedState
	rows    []boardRow
	cursor  int
	offset  int
	loading bool
	err     error

	// banner is the inline notice shown after a failed persistence call.
	banner string

	// grabbed is the drag token of the picked-up row, empty when idle.
	grabbed string

	// persisting blocks new gestures while a reorder request is in flight.
	persisting bool

	collapsedProjects map[string]bool
	collapsedProducts map[string]bool
}

func newBoardView(state *SharedState) *boardView {
	return &boardView{
		state:             state,
		loading:           true,
		collapsedProjects: make(map[string]bool),
		collapsedProducts: make(map[string]bool),
	}
}

func (v *boardView) ID() ViewID    { return ViewBoard }
func (v *boardView) Title() string { return "Board" }

func (v *boardView) ShortHelp() []key.Binding {
	if v.grabbed != "" {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "drop")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "grab")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "collapse")),
		key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "new project")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *boardView) Init() tea.Cmd {
	return v.loadBoard(true)
}

// loadBoard re-fetches the flat board and, on the first load, the stored
// collapse sets and status filter.
func (v *boardView) loadBoard(withPrefs bool) tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		ctx := context.Background()
		msg := boardLoadedMsg{err: app.Board.Refetch(ctx)}
		if withPrefs {
			msg.collapsedProjects = app.Prefs.LoadCollapsedProjects(ctx)
			msg.collapsedProducts = app.Prefs.LoadCollapsedProducts(ctx)
			msg.filter = app.Prefs.LoadStatusFilter(ctx)
			msg.applyFilter = true
		}
		return msg
	}
}

func (v *boardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case boardLoadedMsg:
		v.loading = false
		if msg.applyFilter {
			if msg.collapsedProjects != nil {
				v.collapsedProjects = msg.collapsedProjects
			}
			if msg.collapsedProducts != nil {
				v.collapsedProducts = msg.collapsedProducts
			}
			v.state.App.Board.SetFilter(msg.filter)
		}
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.rebuildRows()
		return v, nil

	case refreshViewMsg:
		v.loading = true
		return v, v.loadBoard(false)

	case persistResultMsg:
		if msg.err == nil {
			// Success needs no refetch; the optimistic state is now truth.
			_ = v.state.App.Board.OnPersistResult(context.Background(), nil)
			v.persisting = false
			v.rebuildRows()
			return v, nil
		}
		v.banner = "Could not save the new order, restoring the board."
		return v, v.rollback(msg.err)

	case rollbackDoneMsg:
		v.persisting = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.rebuildRows()
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *boardView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v.banner = ""

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.rows)-1 {
			v.cursor++
		}

	case " ", "space":
		if v.persisting || v.cursor >= len(v.rows) {
			return v, nil
		}
		row := v.rows[v.cursor]
		if v.grabbed != "" {
			v.state.App.Board.CancelDrag()
			v.grabbed = ""
			return v, nil
		}
		if row.kind == board.KindStage && row.id == "" {
			return v, nil // placeholder line, nothing to grab
		}
		v.grabbed = row.token
		v.state.App.Board.BeginDrag(row.token)

	case "enter":
		if v.cursor >= len(v.rows) {
			return v, nil
		}
		row := v.rows[v.cursor]
		if v.grabbed != "" {
			return v, v.drop(row)
		}
		if row.kind == board.KindProduct {
			v.state.SetActiveProduct(row.projectID, row.id, row.title)
			return v, pushView(newSpecificationView(v.state))
		}

	case "esc":
		if v.grabbed != "" {
			v.state.App.Board.CancelDrag()
			v.grabbed = ""
		}

	case "c":
		if v.cursor >= len(v.rows) {
			return v, nil
		}
		return v, v.toggleCollapse(v.rows[v.cursor])

	case "f":
		return v, v.openFilterForm()

	case "a":
		if v.cursor >= len(v.rows) {
			return v, nil
		}
		return v, v.openAddForm(v.rows[v.cursor])

	case "p":
		return v, v.openProjectForm(nil)

	case "e":
		if v.cursor >= len(v.rows) {
			return v, nil
		}
		return v, v.openEditForm(v.rows[v.cursor])

	case "x":
		if v.cursor >= len(v.rows) {
			return v, nil
		}
		return v, v.confirmDeleteStage(v.rows[v.cursor])

	case "r":
		v.loading = true
		return v, v.loadBoard(false)
	}
	return v, nil
}

// drop completes the grab gesture on the given target row.
func (v *boardView) drop(target boardRow) tea.Cmd {
	source := v.grabbed
	v.grabbed = ""

	persist, err := v.state.App.Board.Drop(board.Gesture{
		SourceToken: source,
		TargetToken: target.token,
	})
	if err != nil {
		v.banner = err.Error()
		return nil
	}
	if persist == nil {
		// No-op drop: same row, different sibling list, or mixed kinds.
		return nil
	}

	v.persisting = true
	v.rebuildRows()
	return func() tea.Msg {
		return persistResultMsg{err: persist(context.Background())}
	}
}

// rollback re-fetches ground truth after a failed persistence call.
func (v *boardView) rollback(persistErr error) tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		return rollbackDoneMsg{err: app.Board.OnPersistResult(context.Background(), persistErr)}
	}
}

func (v *boardView) toggleCollapse(row boardRow) tea.Cmd {
	app := v.state.App
	switch row.kind {
	case board.KindProject:
		v.collapsedProjects = prefs.Toggle(v.collapsedProjects, row.id)
		set := v.collapsedProjects
		v.rebuildRows()
		return func() tea.Msg {
			app.Prefs.SaveCollapsedProjects(context.Background(), set)
			return nil
		}
	case board.KindProduct:
		v.collapsedProducts = prefs.Toggle(v.collapsedProducts, row.id)
		set := v.collapsedProducts
		v.rebuildRows()
		return func() tea.Msg {
			app.Prefs.SaveCollapsedProducts(context.Background(), set)
			return nil
		}
	}
	return nil
}

func (v *boardView) openFilterForm() tea.Cmd {
	filter := v.state.App.Board.Filter()
	selected := make([]string, 0, len(domain.AllProjectStatuses))
	for _, st := range domain.AllProjectStatuses {
		if filter.Allows(st) {
			selected = append(selected, string(st))
		}
	}

	form := wizardStatusFilter(&selected)
	app := v.state.App
	done := func() tea.Cmd {
		next := make(board.StatusFilter, len(domain.AllProjectStatuses))
		for _, st := range domain.AllProjectStatuses {
			next[st] = false
		}
		for _, s := range selected {
			next[domain.ProjectStatus(s)] = true
		}
		app.Board.SetFilter(next)
		return func() tea.Msg {
			app.Prefs.SaveStatusFilter(context.Background(), next)
			return nil
		}
	}
	return startWizardCmd(v.state, "Filter", form, done)
}

// openAddForm adds a child under the cursor row: a product under a project,
// a stage under a product (or next to a stage).
func (v *boardView) openAddForm(row boardRow) tea.Cmd {
	switch row.kind {
	case board.KindProject:
		return v.openProductForm(row.id, nil)
	case board.KindProduct:
		return v.openStageForm(row.id)
	case board.KindStage:
		if row.productID != "" {
			return v.openStageForm(row.productID)
		}
	}
	return nil
}

func (v *boardView) openProjectForm(existing *boardRow) tea.Cmd {
	app := v.state.App

	name, manager := "", ""
	status := string(domain.ProjectNew)
	title := "New project"
	if existing != nil {
		name = existing.title
		status = string(existing.projectStatus)
		manager = existing.manager
		title = "Edit project"
	}

	form := wizardProjectForm(&name, &status, &manager)
	done := func() tea.Cmd {
		if existing != nil {
			id := existing.id
			return func() tea.Msg {
				upd := contractProjectUpdate(name, status)
				if err := app.Client.UpdateProject(context.Background(), id, upd); err != nil {
					return flashMsg{text: formatter.StyleRed.Render(err.Error())}
				}
				return nil
			}
		}
		return func() tea.Msg {
			p := &domain.Project{
				Name:    name,
				Status:  domain.ProjectStatus(status),
				Manager: manager,
			}
			if _, err := app.Client.CreateProject(context.Background(), p); err != nil {
				return flashMsg{text: formatter.StyleRed.Render(err.Error())}
			}
			return nil
		}
	}
	return startWizardCmd(v.state, title, form, done)
}

func (v *boardView) openProductForm(projectID string, existing *boardRow) tea.Cmd {
	app := v.state.App

	name := ""
	status := string(domain.ProductPlanned)
	title := "New product"
	if existing != nil {
		name = existing.title
		status = string(existing.productStatus)
		title = "Edit product"
	}

	form := wizardProductForm(&name, &status)
	done := func() tea.Cmd {
		if existing != nil {
			row := *existing
			return func() tea.Msg {
				upd := contractProductUpdate(name, status, row.version, row.orderIndex)
				if err := app.Client.UpdateProduct(context.Background(), row.projectID, row.id, upd); err != nil {
					return flashMsg{text: formatter.StyleRed.Render(err.Error())}
				}
				return nil
			}
		}
		return func() tea.Msg {
			p := &domain.Product{ProjectID: projectID, Name: name, Status: domain.ProductStatus(status)}
			if _, err := app.Client.CreateProduct(context.Background(), projectID, p); err != nil {
				return flashMsg{text: formatter.StyleRed.Render(err.Error())}
			}
			return nil
		}
	}
	return startWizardCmd(v.state, title, form, done)
}

func (v *boardView) openStageForm(productID string) tea.Cmd {
	app := v.state.App

	var name, start, end string
	form := wizardStageForm(&name, &start, &end)
	done := func() tea.Cmd {
		return func() tea.Msg {
			s := &domain.Stage{Name: name, ProductID: productID}
			if start != "" {
				s.StartDate, _ = parseDate(start)
			}
			if end != "" {
				s.EndDate, _ = parseDate(end)
			}
			if _, err := app.Client.CreateStage(context.Background(), productID, s); err != nil {
				return flashMsg{text: formatter.StyleRed.Render(err.Error())}
			}
			return nil
		}
	}
	return startWizardCmd(v.state, "New stage", form, done)
}

func (v *boardView) openEditForm(row boardRow) tea.Cmd {
	switch row.kind {
	case board.KindProject:
		return v.openProjectForm(&row)
	case board.KindProduct:
		return v.openProductForm(row.projectID, &row)
	}
	return nil
}

func (v *boardView) confirmDeleteStage(row boardRow) tea.Cmd {
	if row.kind != board.KindStage || row.id == "" {
		return nil
	}
	app := v.state.App

	confirmed := false
	form := wizardConfirm(fmt.Sprintf("Delete stage %q?", row.title), &confirmed)
	done := func() tea.Cmd {
		if !confirmed {
			return nil
		}
		productID, stageID := row.productID, row.id
		return func() tea.Msg {
			if err := app.Client.DeleteStage(context.Background(), productID, stageID); err != nil {
				return flashMsg{text: formatter.StyleRed.Render(err.Error())}
			}
			return nil
		}
	}
	return startWizardCmd(v.state, "Delete", form, done)
}

// rebuildRows flattens the coordinator snapshot into visible rows,
// honoring the collapse sets. The cursor is clamped afterwards.
func (v *boardView) rebuildRows() {
	snap := v.state.App.Board.Snapshot()
	v.rows = v.rows[:0]
	if snap == nil {
		v.cursor = 0
		return
	}

	for _, proj := range snap.Projects {
		v.rows = append(v.rows, boardRow{
			kind:          board.KindProject,
			id:            proj.ID,
			token:         board.EncodeToken(board.KindProject, proj.ID),
			title:         proj.Name,
			projectID:     proj.ID,
			projectStatus: proj.Status,
			manager:       proj.Manager,
			orderIndex:    proj.OrderIndex,
			collapsed:     v.collapsedProjects[proj.ID],
			childCount:    len(proj.Products),
		})
		if v.collapsedProjects[proj.ID] {
			continue
		}
		for _, prod := range proj.Products {
			v.rows = append(v.rows, boardRow{
				kind:          board.KindProduct,
				id:            prod.ID,
				token:         board.EncodeToken(board.KindProduct, prod.ID),
				title:         prod.Name,
				projectID:     proj.ID,
				productID:     prod.ID,
				productStatus: prod.Status,
				version:       prod.Version,
				orderIndex:    prod.OrderIndex,
				collapsed:     v.collapsedProducts[prod.ID],
				childCount:    len(prod.Stages),
			})
			if v.collapsedProducts[prod.ID] {
				continue
			}
			for _, st := range prod.Stages {
				v.rows = append(v.rows, boardRow{
					kind:       board.KindStage,
					id:         st.ID,
					token:      board.EncodeToken(board.KindStage, st.ID),
					title:      st.Name,
					projectID:  proj.ID,
					productID:  prod.ID,
					dates:      stageDates(st),
					orderIndex: st.OrderIndex,
				})
			}
		}
	}

	if v.cursor >= len(v.rows) {
		v.cursor = len(v.rows) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func stageDates(s *domain.Stage) string {
	if s.StartDate.IsZero() && s.EndDate.IsZero() {
		return ""
	}
	return s.StartDate.Format("02.01") + "–" + s.EndDate.Format("02.01")
}

func (v *boardView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading board...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}
	if len(v.rows) == 0 {
		return "\n  " + formatter.Dim("No projects match the current filter.")
	}

	var b strings.Builder
	b.WriteString("\n")
	if v.banner != "" {
		b.WriteString("  " + formatter.StyleYellow.Render(v.banner) + "\n")
	}

	start, end := v.window()
	for i := start; i < end; i++ {
		b.WriteString(v.renderRow(v.rows[i], i == v.cursor))
		b.WriteByte('\n')
	}
	return b.String()
}

// window returns the visible row range, keeping the cursor in view.
func (v *boardView) window() (int, int) {
	h := v.state.ContentHeight() - 1
	if v.banner != "" {
		h--
	}
	if h < 1 {
		h = 1
	}
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+h {
		v.offset = v.cursor - h + 1
	}
	end := v.offset + h
	if end > len(v.rows) {
		end = len(v.rows)
	}
	return v.offset, end
}

func (v *boardView) renderRow(row boardRow, isCursor bool) string {
	cursor := "  "
	if isCursor {
		cursor = formatter.StyleGreen.Render("▸ ")
	}

	grabbed := row.token == v.grabbed && v.grabbed != ""

	var line string
	switch row.kind {
	case board.KindProject:
		indicator := "▾ "
		if row.collapsed {
			indicator = fmt.Sprintf("▸ (%d) ", row.childCount)
		}
		line = cursor + formatter.Dim(indicator) +
			formatter.StyleBold.Render(row.title) + " " + formatter.StatusBadge(row.projectStatus)
		if row.manager != "" {
			line += " " + formatter.Dim(row.manager)
		}

	case board.KindProduct:
		indicator := ""
		if row.collapsed {
			indicator = fmt.Sprintf("▸ (%d) ", row.childCount)
		}
		badge := formatter.ProductStatusStyle(row.productStatus).
			Render("[" + strings.ReplaceAll(string(row.productStatus), "_", " ") + "]")
		line = cursor + "  " + formatter.Dim(indicator) + row.title + " " + badge

	default:
		name := row.title
		if name == "" {
			name = formatter.Dim("(empty)")
		}
		line = cursor + "      " + name
		if row.dates != "" {
			line += " " + formatter.Dim(row.dates)
		}
	}

	if grabbed {
		line += " " + formatter.StyleYellow.Render("◆ grabbed")
	}
	return line
}

func contractProjectUpdate(name, status string) contract.ProjectUpdate {
	return contract.ProjectUpdate{Name: name, Status: status}
}

func contractProductUpdate(name, status string, version int, order *int) contract.ProductUpdate {
	return contract.ProductUpdate{
		Name:       name,
		Status:     status,
		Version:    version,
		OrderIndex: domain.IntOr(order, 0),
	}
}
