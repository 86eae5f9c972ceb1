package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/grandmaster/internal/ui/theme"
)

// PromptResult is the outcome of a key handled by a Prompt.
type PromptResult int

const (
	PromptEditing PromptResult = iota
	PromptSubmitted
	PromptCancelled
)

// Prompt wraps bubbles/textinput as a labelled one-line editor that
// submits on enter and cancels on esc.
type Prompt struct {
	Model    textinput.Model
	Label    string
	MaxWidth int
}

// NewPrompt creates a focused prompt pre-filled with value.
func NewPrompt(label, value string, maxWidth int) Prompt {
	ti := textinput.New()
	ti.Placeholder = label
	ti.SetValue(value)
	ti.Focus()

	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}

	return Prompt{
		Model:    ti,
		Label:    label,
		MaxWidth: maxWidth,
	}
}

// Init returns the initial command.
func (p Prompt) Init() tea.Cmd {
	return p.Model.Focus()
}

// Update handles messages. Enter and esc end the edit.
func (p Prompt) Update(msg tea.Msg) (Prompt, PromptResult, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter":
			return p, PromptSubmitted, nil
		case "esc":
			return p, PromptCancelled, nil
		}
	}

	var cmd tea.Cmd
	p.Model, cmd = p.Model.Update(msg)
	return p, PromptEditing, cmd
}

// View renders the prompt.
func (p Prompt) View() string {
	label := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(p.Label + ":")
	return label + " " + p.Model.View()
}

// Value returns the trimmed input value.
func (p Prompt) Value() string {
	return strings.TrimSpace(p.Model.Value())
}
