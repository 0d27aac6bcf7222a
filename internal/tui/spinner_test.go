package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestSpinnerModel(t *testing.T) {
	tests := []struct {
		name          string
		msg           tea.Msg
		wantCancelled bool
		wantView      string
	}{
		{
			name:     "task succeeded",
			msg:      DoneMsg{},
			wantView: "Fetching price list",
		},
		{
			name:     "task failed",
			msg:      DoneMsg{Err: errors.New("404 Not Found")},
			wantView: "404 Not Found",
		},
		{
			name:          "ctrl+c cancels",
			msg:           tea.KeyMsg{Type: tea.KeyCtrlC},
			wantCancelled: true,
			wantView:      "Cancelled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewSpinnerModel("Fetching price list")
			next, cmd := m.Update(tt.msg)
			if cmd == nil {
				t.Fatal("expected quit command")
			}

			sm := next.(SpinnerModel)
			if sm.Cancelled() != tt.wantCancelled {
				t.Errorf("Cancelled() = %v, want %v", sm.Cancelled(), tt.wantCancelled)
			}
			if v := sm.View(); !strings.Contains(v, tt.wantView) {
				t.Errorf("View() = %q, want it to contain %q", v, tt.wantView)
			}
		})
	}
}

func TestSpinnerModel_ViewWhileRunning(t *testing.T) {
	m := NewSpinnerModel("Fetching price list")
	if v := m.View(); !strings.Contains(v, "Fetching price list") {
		t.Errorf("View() = %q", v)
	}
	if m.Init() == nil {
		t.Error("Init() should start the tick")
	}
}
