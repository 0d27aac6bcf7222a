package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// SelectModel is a single-choice menu with arrow-key navigation.
type SelectModel struct {
	title    string
	choices  []string
	cursor   int
	selected int
	done     bool
}

// NewSelectModel creates a selection menu. The cursor starts on initial.
func NewSelectModel(title string, choices []string, initial int) SelectModel {
	if initial < 0 || initial >= len(choices) {
		initial = 0
	}
	return SelectModel{
		title:    title,
		choices:  choices,
		cursor:   initial,
		selected: -1,
	}
}

// Init initializes the model. Required by tea.Model interface.
func (m SelectModel) Init() tea.Cmd {
	return nil
}

// Update handles key presses.
func (m SelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}
		case "enter", " ":
			m.selected = m.cursor
			m.done = true
			return m, tea.Quit
		case "q", "esc", "ctrl+c":
			m.selected = -1
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the menu.
func (m SelectModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(m.title) + "\n\n")
	for i, choice := range m.choices {
		if m.cursor == i {
			b.WriteString(SelectedStyle.Render(fmt.Sprintf("%s %s", ListCursor, choice)) + "\n")
		} else {
			b.WriteString(fmt.Sprintf("  %s\n", choice))
		}
	}
	b.WriteString("\n" + RenderMuted("(up/down to move, enter to select, q to quit)") + "\n")

	return b.String()
}

// Selected returns the index of the selected choice, or -1 if cancelled.
func (m SelectModel) Selected() int {
	return m.selected
}

// RunSelect runs the menu and returns the selected index, or -1 if cancelled.
func RunSelect(title string, choices []string, initial int) (int, error) {
	if len(choices) == 0 {
		return -1, fmt.Errorf("no choices provided")
	}

	finalModel, err := tea.NewProgram(NewSelectModel(title, choices, initial)).Run()
	if err != nil {
		return -1, fmt.Errorf("failed to run select menu: %w", err)
	}

	m, ok := finalModel.(SelectModel)
	if !ok {
		return -1, fmt.Errorf("unexpected model type")
	}

	return m.Selected(), nil
}
