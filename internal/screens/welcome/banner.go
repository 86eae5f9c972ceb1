package welcome

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/grandmaster/internal/ui/theme"
)

const bannerWide = "G  R  A  N  D  M  A  S  T  E  R"

const bannerCompact = "GRANDMASTER"

// backRank is the piece row drawn above the banner, revealed one piece per
// tick.
var backRank = []string{"♜", "♞", "♝", "♛", "♚", "♝", "♞", "♜"}

// RenderBanner returns the title styled in the primary color. Uses a compact
// fallback for terminals narrower than 52 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 52 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerWide)
}

// renderBackRank draws the first n pieces of the back rank on alternating
// squares.
func renderBackRank(n int) string {
	if n > len(backRank) {
		n = len(backRank)
	}
	var b strings.Builder
	for i := range backRank {
		bg := theme.LightSquare
		if i%2 == 1 {
			bg = theme.DarkSquare
		}
		glyph := " "
		if i < n {
			glyph = backRank[i]
		}
		b.WriteString(lipgloss.NewStyle().
			Background(bg).
			Foreground(theme.BlackPiece).
			Render(" " + glyph + " "))
	}
	return b.String()
}
