package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestSelectModel(t *testing.T) {
	choices := []string{"Plano 0.5", "Plano 1.0", "Plano 2.0"}

	tests := []struct {
		name    string
		initial int
		keys    []tea.KeyMsg
		want    int
	}{
		{
			name:    "enter on initial",
			initial: 1,
			keys:    []tea.KeyMsg{{Type: tea.KeyEnter}},
			want:    1,
		},
		{
			name:    "move down and select",
			initial: 0,
			keys:    []tea.KeyMsg{{Type: tea.KeyDown}, {Type: tea.KeyDown}, {Type: tea.KeyDown}, {Type: tea.KeyEnter}},
			want:    2,
		},
		{
			name:    "vim keys",
			initial: 2,
			keys:    []tea.KeyMsg{runes("k"), runes("k"), runes("j"), {Type: tea.KeySpace}},
			want:    1,
		},
		{
			name:    "out of range initial",
			initial: 7,
			keys:    []tea.KeyMsg{{Type: tea.KeyEnter}},
			want:    0,
		},
		{
			name:    "cancel",
			initial: 1,
			keys:    []tea.KeyMsg{runes("q")},
			want:    -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m tea.Model = NewSelectModel("Choose a plan", choices, tt.initial)
			for _, k := range tt.keys {
				m, _ = m.Update(k)
			}
			if got := m.(SelectModel).Selected(); got != tt.want {
				t.Errorf("Selected() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSelectModel_View(t *testing.T) {
	m := NewSelectModel("Choose a plan", []string{"a", "b"}, 0)
	if v := m.View(); v == "" {
		t.Error("View() is empty before a choice is made")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if v := next.View(); v != "" {
		t.Errorf("View() after selection = %q, want empty", v)
	}
}

func TestRunSelect_NoChoices(t *testing.T) {
	if _, err := RunSelect("empty", nil, 0); err == nil {
		t.Error("expected error for no choices")
	}
}
