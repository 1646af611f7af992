package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avelichko/fabplan/internal/cli/formatter"
)

// appModel is the bubbletea root: a stack of Views under a breadcrumb
// header, with a one-line hint/notice bar at the bottom. Views talk to
// it through the navigation messages in navigate.go.
type appModel struct {
	state    *SharedState
	stack    []View
	quitting bool
	notice   string
}

// newBoardApp starts the TUI on the kanban board.
func newBoardApp(app *App) appModel {
	state := &SharedState{App: app}
	return appModel{state: state, stack: []View{newBoardView(state)}}
}

// newNomApp starts the TUI on the parts catalog.
func newNomApp(app *App) appModel {
	state := &SharedState{App: app}
	return appModel{state: state, stack: []View{newNomenclatureView(state)}}
}

func (m *appModel) top() View {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

// forward hands msg to the top view and stores the updated model back.
func (m *appModel) forward(msg tea.Msg) tea.Cmd {
	v := m.top()
	if v == nil {
		return nil
	}
	updated, cmd := v.Update(msg)
	m.stack[len(m.stack)-1] = updated.(View)
	return cmd
}

func (m *appModel) pop() {
	if len(m.stack) > 1 {
		m.stack = m.stack[:len(m.stack)-1]
	}
}

func (m appModel) Init() tea.Cmd {
	if v := m.top(); v != nil {
		return v.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		return m, m.forward(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pushViewMsg:
		m.notice = ""
		m.stack = append(m.stack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		m.pop()
		return m, nil

	case refreshViewMsg:
		// Every stacked view reloads, not just the top one: a form can
		// mutate records that the board two levels down still shows.
		var cmds []tea.Cmd
		for i, v := range m.stack {
			updated, cmd := v.Update(msg)
			m.stack[i] = updated.(View)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case wizardCompleteMsg:
		m.pop()
		return m, tea.Batch(msg.nextCmd, func() tea.Msg { return refreshViewMsg{} })

	case flashMsg:
		m.notice = msg.text
		return m, nil
	}

	// Loaded-data messages, ticks, everything else.
	return m, m.forward(msg)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	m.notice = ""

	// Forms and focused text inputs own the keyboard entirely so their
	// fields can receive 'q', 'r' and the other global shortcut runes.
	if v := m.top(); v != nil {
		owns := v.ID() == ViewForm
		if c, ok := v.(interface{ capturesInput() bool }); ok && c.capturesInput() {
			owns = true
		}
		if owns {
			return m, m.forward(msg)
		}
	}

	switch {
	case msg.String() == "q":
		m.quitting = true
		return m, tea.Quit

	case msg.Type == tea.KeyEsc:
		// A grab in progress takes priority over navigating back.
		if bv, ok := m.top().(*boardView); ok && bv.grabbed != "" {
			return m, m.forward(msg)
		}
		m.pop()
		return m, nil
	}

	return m, m.forward(msg)
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	body := ""
	if v := m.top(); v != nil {
		body = v.View()
	}
	out := m.header() + "\n" + body + "\n" + m.statusBar()

	// The alt-screen line-diff renderer leaves stale lines behind when
	// a frame shrinks, so pad every frame to the terminal height.
	if m.state.Height > 0 {
		if n := strings.Count(out, "\n") + 1; n < m.state.Height {
			out += strings.Repeat("\n", m.state.Height-n)
		}
	}
	return out
}

func (m *appModel) rule() string {
	w := m.state.Width
	if w < 20 {
		w = 20
	}
	return formatter.Dim(strings.Repeat("─", w))
}

func (m *appModel) header() string {
	line := formatter.StylePurple.Render("fabplan")
	var crumbs []string
	for _, v := range m.stack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	if len(crumbs) > 0 {
		line += " " + formatter.Dim("› "+strings.Join(crumbs, " › "))
	}
	return line + "\n" + m.rule()
}

func (m *appModel) statusBar() string {
	if m.notice != "" {
		return m.rule() + "\n" + m.notice
	}
	var hints []string
	if v := m.top(); v != nil {
		for _, b := range v.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
	}
	if len(m.stack) > 1 {
		hints = append(hints, formatter.Dim("esc: back"))
	}
	return m.rule() + "\n" + strings.Join(hints, "  ")
}
