package components

import "charm.land/lipgloss/v2"

// ModeBar renders the Learn/Editor switch with the active mode lit.
func ModeBar(editing bool) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		NewButton("Learn", "L", !editing).View(),
		" ",
		NewButton("Editor", "E", editing).View(),
	)
}
