package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xenking/ercm/internal/console"
)

// multiSelectModel toggles any number of choices with space.
type multiSelectModel struct {
	message  string
	choices  []console.Choice
	cursor   int
	selected map[int]bool
	done     bool
	aborted  bool
}

func newMultiSelectModel(message string, choices []console.Choice) multiSelectModel {
	return multiSelectModel{
		message:  message,
		choices:  choices,
		selected: make(map[int]bool),
	}
}

func (m multiSelectModel) Init() tea.Cmd { return nil }

func (m multiSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "esc", "q":
		m.aborted = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}
	case " ", "x":
		if len(m.choices) > 0 {
			m.selected[m.cursor] = !m.selected[m.cursor]
		}
	case "a":
		all := len(m.Values()) < len(m.choices)
		for i := range m.choices {
			m.selected[i] = all
		}
	case "enter":
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// Values returns the toggled choice values in list order.
func (m multiSelectModel) Values() []string {
	var out []string
	for i, c := range m.choices {
		if m.selected[i] {
			out = append(out, c.Value)
		}
	}
	return out
}

func (m multiSelectModel) View() string {
	if m.done {
		var titles []string
		for i, c := range m.choices {
			if m.selected[i] {
				titles = append(titles, c.Title)
			}
		}
		if len(titles) == 0 {
			return answered(m.message, "keine Auswahl")
		}
		return answered(m.message, strings.Join(titles, ", "))
	}
	if m.aborted {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.message))
	b.WriteString("\n\n")
	for i, c := range m.choices {
		box := "[ ] "
		if m.selected[i] {
			box = "[x] "
		}
		if i == m.cursor {
			b.WriteString(selectedItemStyle.Render("▸ " + box + c.Title))
		} else {
			b.WriteString(unselectedItemStyle.Render(box + c.Title))
		}
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(
		formatKey("space", "markieren") + " • " +
			formatKey("a", "alle") + " • " +
			formatKey("enter", "bestätigen") + " • " +
			formatKey("esc", "zurück"),
	))
	return b.String()
}
