package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// DoneMsg signals that the spinner task has completed.
type DoneMsg struct {
	Err error
}

// SpinnerModel shows a spinner next to a message until a DoneMsg arrives.
type SpinnerModel struct {
	spinner   spinner.Model
	message   string
	done      bool
	cancelled bool
	err       error
}

// NewSpinnerModel creates a new spinner model with the given message.
func NewSpinnerModel(message string) SpinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return SpinnerModel{
		spinner: s,
		message: message,
	}
}

// Init starts the animation.
func (m SpinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages and updates the spinner state.
func (m SpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			m.cancelled = true
			return m, tea.Quit
		}

	case DoneMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit

	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the spinner, or the outcome once done.
func (m SpinnerModel) View() string {
	if !m.done {
		return m.spinner.View() + " " + m.message
	}
	switch {
	case m.cancelled:
		return RenderError("Cancelled") + "\n"
	case m.err != nil:
		return RenderError(m.err.Error()) + "\n"
	default:
		return RenderSuccess(m.message) + "\n"
	}
}

// Cancelled reports whether the user interrupted the spinner.
func (m SpinnerModel) Cancelled() bool {
	return m.cancelled
}

// RunWithSpinner runs task in the background while showing a spinner and
// returns the task's result.
func RunWithSpinner[T any](message string, task func() (T, error)) (T, error) {
	p := tea.NewProgram(NewSpinnerModel(message))

	var (
		result  T
		taskErr error
	)
	go func() {
		result, taskErr = task()
		p.Send(DoneMsg{Err: taskErr})
	}()

	final, err := p.Run()
	if err != nil {
		var zero T
		return zero, fmt.Errorf("spinner error: %w", err)
	}
	if m, ok := final.(SpinnerModel); ok && m.Cancelled() {
		var zero T
		return zero, fmt.Errorf("cancelled")
	}

	return result, taskErr
}
