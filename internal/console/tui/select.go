package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xenking/ercm/internal/console"
)

const (
	defaultWidth   = 72
	maxListHeight  = 20
	listChromeRows = 6
)

// choiceItem adapts a console.Choice to a list item.
type choiceItem struct {
	title string
	value string
}

func (i choiceItem) FilterValue() string { return i.title }

// choiceDelegate renders one choice per line.
type choiceDelegate struct{}

func (d choiceDelegate) Height() int                             { return 1 }
func (d choiceDelegate) Spacing() int                            { return 0 }
func (d choiceDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d choiceDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(choiceItem)
	if !ok {
		return
	}

	var s string
	if index == m.Index() {
		s = selectedItemStyle.Render("▸ " + i.title)
	} else {
		s = unselectedItemStyle.Render(i.title)
	}

	_, _ = fmt.Fprint(w, s)
}

// selectModel is a filterable single-choice list.
type selectModel struct {
	message string
	list    list.Model
	chosen  choiceItem
	done    bool
	aborted bool
}

func newSelectModel(message string, choices []console.Choice) selectModel {
	items := make([]list.Item, len(choices))
	for i, c := range choices {
		items[i] = choiceItem{title: c.Title, value: c.Value}
	}

	l := list.New(items, choiceDelegate{}, defaultWidth, min(len(items)+listChromeRows, maxListHeight))
	l.Title = message
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.KeyMap.Quit.SetEnabled(false)

	return selectModel{message: message, list: l}
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c":
			m.aborted = true
			return m, tea.Quit
		case "esc":
			if m.list.FilterState() == list.FilterApplied {
				break
			}
			m.aborted = true
			return m, tea.Quit
		case "enter":
			item, ok := m.list.SelectedItem().(choiceItem)
			if !ok {
				return m, nil
			}
			m.chosen = item
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectModel) View() string {
	if m.done {
		return answered(m.message, m.chosen.title)
	}
	if m.aborted {
		return ""
	}
	help := helpStyle.Render(
		formatKey("↑/↓", "navigieren") + " • " +
			formatKey("/", "filtern") + " • " +
			formatKey("enter", "auswählen") + " • " +
			formatKey("esc", "zurück"),
	)
	return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), help)
}
