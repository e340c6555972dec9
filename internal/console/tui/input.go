package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// inputModel reads one line of text.
type inputModel struct {
	message string
	input   textinput.Model
	secret  bool
	done    bool
	aborted bool
}

func newInputModel(message, initial string, secret bool) inputModel {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.SetValue(initial)
	ti.CursorEnd()
	ti.Width = defaultWidth
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	ti.Focus()
	return inputModel{message: message, input: ti, secret: secret}
}

func (m inputModel) Init() tea.Cmd { return textinput.Blink }

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Value returns the entered text.
func (m inputModel) Value() string {
	return m.input.Value()
}

func (m inputModel) View() string {
	if m.done {
		answer := m.input.Value()
		if m.secret {
			answer = strings.Repeat("•", len([]rune(answer)))
		}
		return answered(m.message, answer)
	}
	if m.aborted {
		return ""
	}
	return titleStyle.Render("? "+m.message) + "\n" + m.input.View() + "\n"
}
