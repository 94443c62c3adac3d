package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// inputModel is the new-task field. It holds at most one create request.
type inputModel struct {
	field    textinput.Model
	inFlight bool
}

func newInputModel() inputModel {
	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.Prompt = "› "
	ti.Width = 40
	ti.Focus()
	return inputModel{field: ti}
}

func (m inputModel) canSubmit() bool {
	return !m.inFlight && strings.TrimSpace(m.field.Value()) != ""
}

// submit marks the field in flight and returns the trimmed title, or false
// when there is nothing to send.
func (m *inputModel) submit() (string, bool) {
	if !m.canSubmit() {
		return "", false
	}
	m.inFlight = true
	return strings.TrimSpace(m.field.Value()), true
}

// resolve ends the in-flight state. The draft survives a failure.
func (m *inputModel) resolve(err error) {
	m.inFlight = false
	if err == nil {
		m.field.SetValue("")
	}
}

func (m *inputModel) focus() tea.Cmd { return m.field.Focus() }

func (m *inputModel) blur() { m.field.Blur() }

func (m *inputModel) setWidth(width int) {
	// border, padding, prompt and the button
	w := width - 24
	if w < 10 {
		w = 10
	}
	m.field.Width = w
}

func (m inputModel) Update(msg tea.Msg) (inputModel, tea.Cmd) {
	if m.inFlight {
		return m, nil
	}
	var cmd tea.Cmd
	m.field, cmd = m.field.Update(msg)
	return m, cmd
}

func (m inputModel) View(spin string) string {
	box := inputBoxStyle
	if m.field.Focused() {
		box = inputBoxFocusedStyle
	}

	var button string
	switch {
	case m.inFlight:
		button = buttonDisabledStyle.Render(spin + " Adding...")
	case strings.TrimSpace(m.field.Value()) == "":
		button = buttonDisabledStyle.Render("Add Task")
	default:
		button = buttonStyle.Render("Add Task")
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, box.Render(m.field.View()), " ", button)
}
