package theme

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
)

// Color palette, walnut and slate
var (
	Primary   = lipgloss.Color("#D97706") // Amber
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Arrow amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Board
var (
	LightSquare    = lipgloss.Color("#E9D7B7")
	DarkSquare     = lipgloss.Color("#B08962")
	SelectedSquare = lipgloss.Color("#7FB3D5")
	TargetSquare   = lipgloss.Color("#A3C585")
	LastMoveSquare = lipgloss.Color("#D9C36A")
	WhitePiece     = lipgloss.Color("#FFFFFF")
	BlackPiece     = lipgloss.Color("#111111")
)

// namedColors maps the CSS names lessons use for highlights.
var namedColors = map[string]string{
	"red":    "#EF4444",
	"green":  "#22C55E",
	"blue":   "#3B82F6",
	"yellow": "#EAB308",
	"orange": "#F97316",
	"purple": "#A855F7",
}

// AnnotationColor resolves a lesson color (hex or CSS name) to a terminal
// color. Unknown names fall back to fallback.
func AnnotationColor(name string, fallback color.Color) color.Color {
	if strings.HasPrefix(name, "#") {
		return lipgloss.Color(name)
	}
	if hex, ok := namedColors[strings.ToLower(name)]; ok {
		return lipgloss.Color(hex)
	}
	return fallback
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Completed = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

// Components
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(BgDark).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(TextDim).
			Background(BgCard).
			Padding(0, 2)
)
