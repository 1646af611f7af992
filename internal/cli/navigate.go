package cli

import tea "github.com/charmbracelet/bubbletea"

// Views never touch the stack directly; they emit one of these
// messages and the app model applies the transition.

// pushViewMsg opens view on top of the stack.
type pushViewMsg struct {
	view View
}

// popViewMsg closes the top view and returns to the one under it.
type popViewMsg struct{}

// refreshViewMsg asks every stacked view to reload. A form on top may
// have changed records that views below are still rendering.
type refreshViewMsg struct{}

// wizardCompleteMsg closes a finished (or cancelled) wizard. The pop
// and nextCmd run in the same Update pass so the wizard never renders
// in a half-finished state.
type wizardCompleteMsg struct {
	nextCmd tea.Cmd
}

// flashMsg puts a one-line transient notice in the status area.
type flashMsg struct {
	text string
}

func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

func flash(text string) tea.Cmd {
	return func() tea.Msg { return flashMsg{text: text} }
}
