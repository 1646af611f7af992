// Package teatest drives bubbletea models synchronously in tests.
//
// A Driver calls Update directly and works through the returned Cmds
// with a message queue, so a whole key-press/load/render cycle runs
// deterministically on the test goroutine. No tea.Program, no timing.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxQueuedMsgs bounds one drain pass so a Cmd loop cannot hang a test.
const maxQueuedMsgs = 100

// cmdWait is how long a Cmd may take before the driver gives up on it.
// Real Cmds here (fake API calls, sqlite reads) finish in microseconds;
// only cursor-blink timers block longer, and those are safe to drop.
const cmdWait = 10 * time.Millisecond

// Driver feeds messages to a tea.Model and records the resulting state.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting records that tea.Quit fired. The runtime normally eats
	// QuitMsg before the model sees it, so the driver tracks it itself.
	Quitting bool
}

// Option adjusts a Driver at construction time.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else runs.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.T.Helper()
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// New wraps model in a Driver. Call DrainInit to run the Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit runs Init and everything it triggers.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.pump(d.Model.Init())
}

// Send puts one message through Update and settles the model.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.pump(cmd)
}

// SendKey sends a raw key event.
func (d *Driver) SendKey(msg tea.KeyMsg) {
	d.T.Helper()
	d.Send(msg)
}

// PressKey sends a single printable character.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (d *Driver) PressEnter() {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyEnter})
}

func (d *Driver) PressSpace() {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
}

func (d *Driver) PressEsc() {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyEsc})
}

func (d *Driver) PressCtrlC() {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyCtrlC})
}

func (d *Driver) PressUp() {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyUp})
}

func (d *Driver) PressDown() {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyDown})
}

// Type sends s one rune at a time, as a user typing would.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

// View renders the model as it currently stands.
func (d *Driver) View() string {
	return d.Model.View()
}

// pump runs cmd and every follow-up Cmd until the model settles.
// Batches are flattened onto the same queue, oldest first.
func (d *Driver) pump(cmd tea.Cmd) {
	d.T.Helper()
	queue := []tea.Cmd{cmd}
	for n := 0; len(queue) > 0; n++ {
		if n >= maxQueuedMsgs {
			d.T.Logf("teatest: giving up after %d messages, model never settled", n)
			return
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		msg := runCmd(next)
		switch m := msg.(type) {
		case nil:
			continue
		case tea.BatchMsg:
			queue = append(queue, m...)
			continue
		case tea.QuitMsg:
			d.Quitting = true
		}
		if blinkMsg(msg) {
			continue
		}

		var follow tea.Cmd
		d.Model, follow = d.Model.Update(msg)
		if follow != nil {
			queue = append(queue, follow)
		}
	}
}

// runCmd executes cmd off-goroutine and abandons it after cmdWait.
func runCmd(cmd tea.Cmd) tea.Msg {
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		return msg
	case <-time.After(cmdWait):
		return nil
	}
}

// blinkMsg matches the unexported cursor blink messages from
// bubbles/cursor, which chain into timer Cmds if fed back in.
func blinkMsg(msg tea.Msg) bool {
	return strings.Contains(fmt.Sprintf("%T", msg), "link")
}
