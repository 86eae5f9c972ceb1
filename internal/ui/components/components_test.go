package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestProgressBarFraction(t *testing.T) {
	tests := []struct {
		done, total int
		want        float64
	}{
		{0, 0, 0},
		{1, 4, 0.25},
		{4, 4, 1},
		{5, 4, 1},
	}
	for _, tt := range tests {
		p := NewProgressBar("", tt.done, tt.total, 20)
		if got := p.Fraction(); got != tt.want {
			t.Errorf("Fraction(%d/%d) = %v, want %v", tt.done, tt.total, got, tt.want)
		}
	}
}

func TestProgressBarViewShowsCounts(t *testing.T) {
	view := NewProgressBar("Openings", 2, 5, 40).View()
	if !strings.Contains(view, "2/5") || !strings.Contains(view, "Openings") {
		t.Errorf("view = %q", view)
	}
}

func TestMenuSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "Chapter", Disabled: true},
		{Label: "Lesson 1"},
		{Label: "Lesson 2"},
	})
	if m.Selected != 1 {
		t.Fatalf("initial selection = %d, want 1", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("up onto a disabled item moved selection to %d", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 2 {
		t.Errorf("selection = %d, want 2", m.Selected)
	}
}

func TestMenuEnterRunsAction(t *testing.T) {
	ran := false
	m := NewMenu([]MenuItem{{Label: "Go", Action: func() tea.Cmd { ran = true; return nil }}})
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !ran {
		t.Error("expected action to run on enter")
	}
}

func TestPromptSubmitAndCancel(t *testing.T) {
	p := NewPrompt("Title", "  Sicilian  ", 40)
	p, res, _ := p.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if res != PromptSubmitted || p.Value() != "Sicilian" {
		t.Errorf("res = %v, value = %q", res, p.Value())
	}
	_, res, _ = p.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if res != PromptCancelled {
		t.Errorf("res = %v, want cancelled", res)
	}
}

func TestButtonView(t *testing.T) {
	if v := NewButton("Learn", "L", true).View(); !strings.Contains(v, "Learn (L)") {
		t.Errorf("view = %q", v)
	}
}
