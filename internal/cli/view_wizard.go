package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/avelichko/fabplan/internal/cli/formatter"
)

// wizardView puts a huh.Form on the view stack. The form owns the
// keyboard until it completes or the user escapes out; either way the
// view pops itself with a wizardCompleteMsg carrying the follow-up Cmd.
type wizardView struct {
	state *SharedState
	form  *huh.Form
	title string
	// done builds the Cmd to run after a successful submit. It is
	// invoked exactly once, after the form reaches StateCompleted, so
	// it can read the form's bound values.
	done func() tea.Cmd
}

func newWizardView(state *SharedState, title string, form *huh.Form, done func() tea.Cmd) *wizardView {
	return &wizardView{state: state, form: form, title: title, done: done}
}

// startWizardCmd pushes a wizard for form, or short-circuits to done()
// when there is no form to show (e.g. nothing to pick from).
func startWizardCmd(state *SharedState, title string, form *huh.Form, done func() tea.Cmd) tea.Cmd {
	if form == nil {
		if done == nil {
			return nil
		}
		return done()
	}
	return pushView(newWizardView(state, title, form, done))
}

func (v *wizardView) Init() tea.Cmd { return v.form.Init() }

func (v *wizardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		cancelled := flash(formatter.Dim("Cancelled."))
		return v, func() tea.Msg { return wizardCompleteMsg{nextCmd: cancelled} }
	}

	next, cmd := v.form.Update(msg)
	if f, ok := next.(*huh.Form); ok {
		v.form = f
	}
	if v.form.State != huh.StateCompleted {
		return v, cmd
	}

	var after tea.Cmd
	if v.done != nil {
		after = v.done()
	}
	finish := tea.Batch(cmd, after)
	return v, func() tea.Msg { return wizardCompleteMsg{nextCmd: finish} }
}

func (v *wizardView) View() string  { return v.form.View() }
func (v *wizardView) ID() ViewID    { return ViewForm }
func (v *wizardView) Title() string { return v.title }

func (v *wizardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}
