package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// confirmModel is a yes/no dialog that defaults to no.
type confirmModel struct {
	message     string
	yesSelected bool
	done        bool
	aborted     bool
}

func newConfirmModel(message string) confirmModel {
	return confirmModel{message: message}
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit
	case "left", "h":
		m.yesSelected = true
	case "right", "l":
		m.yesSelected = false
	case "tab":
		m.yesSelected = !m.yesSelected
	case "y", "j":
		m.yesSelected = true
		m.done = true
		return m, tea.Quit
	case "n":
		m.yesSelected = false
		m.done = true
		return m, tea.Quit
	case "enter":
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		if m.yesSelected {
			return answered(m.message, "Ja")
		}
		return answered(m.message, "Nein")
	}
	if m.aborted {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("? " + m.message))
	b.WriteString("\n\n")

	yesButton := inactiveButtonStyle.Render("Ja")
	noButton := inactiveButtonStyle.Render("Nein")
	if m.yesSelected {
		yesButton = activeButtonStyle.Render("Ja")
	} else {
		noButton = activeButtonStyle.Render("Nein")
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Left, yesButton, "  ", noButton))
	b.WriteString(helpStyle.Render(formatKey("←/→", "wechseln") + " • " + formatKey("enter", "bestätigen")))
	b.WriteString("\n")
	return b.String()
}
