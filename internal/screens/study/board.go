package study

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/grandmaster/internal/course"
	"github.com/abhisek/grandmaster/internal/position"
	"github.com/abhisek/grandmaster/internal/ui/theme"
)

// Board geometry in content cells. Rows start below the mode bar.
const (
	boardLeft = 3
	boardTop  = 2
	cellWidth = 3
)

var glyphs = map[position.PieceType]string{
	position.King:   "♚",
	position.Queen:  "♛",
	position.Rook:   "♜",
	position.Bishop: "♝",
	position.Knight: "♞",
	position.Pawn:   "♟",
}

// squareAt maps a content-relative cell to a square, or "" off the board.
func squareAt(x, y int) string {
	row := y - boardTop
	if x < boardLeft || row < 0 || row > 7 {
		return ""
	}
	col := (x - boardLeft) / cellWidth
	if col > 7 {
		return ""
	}
	return position.DisplaySquare(row, col)
}

// cursorSquare returns the square under the keyboard cursor.
func (s *StudyScreen) cursorSquare() string {
	return position.DisplaySquare(s.cursorRow, s.cursorCol)
}

func (s *StudyScreen) moveCursor(dRow, dCol int) {
	s.cursorRow = clamp(s.cursorRow+dRow, 0, 7)
	s.cursorCol = clamp(s.cursorCol+dCol, 0, 7)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// renderBoard draws the eight ranks followed by the file labels.
func (s *StudyScreen) renderBoard() string {
	grid := s.ws.Board.Grid()
	last, hasLast := s.ws.Board.LastMove()
	selected, _ := s.ws.Controller.Selected()
	dragFrom, _ := s.ws.Controller.DragOrigin()

	arrowEnds := make(map[string]bool)
	for _, a := range s.ws.Annotations.Arrows() {
		arrowEnds[a.From] = true
		arrowEnds[a.To] = true
	}

	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	var b strings.Builder
	for row := 0; row < 8; row++ {
		b.WriteString(label.Render(" " + string(rune('8'-row)) + " "))
		for col := 0; col < 8; col++ {
			sq := position.DisplaySquare(row, col)
			piece := grid[row][col]

			bg := theme.LightSquare
			if (row+col)%2 == 1 {
				bg = theme.DarkSquare
			}
			if hasLast && (sq == last.From || sq == last.To) {
				bg = theme.LastMoveSquare
			}
			if c, ok := s.ws.Annotations.HighlightAt(sq); ok {
				bg = theme.AnnotationColor(c, theme.AnnotationColor(course.DefaultHighlightColor, bg))
			}
			if s.ws.Controller.IsTarget(sq) {
				bg = theme.TargetSquare
			}
			if sq == selected {
				bg = theme.SelectedSquare
			}

			style := lipgloss.NewStyle().Background(bg).Bold(true)
			glyph := " "
			if !piece.IsZero() {
				glyph = glyphs[piece.Type]
				fg := theme.BlackPiece
				if piece.Color == position.White {
					fg = theme.WhitePiece
				}
				style = style.Foreground(fg)
			} else if s.ws.Controller.IsTarget(sq) {
				glyph = "•"
				style = style.Foreground(theme.BgDark)
			} else if arrowEnds[sq] {
				glyph = "·"
				style = style.Foreground(theme.Accent)
			}
			if arrowEnds[sq] {
				style = style.Underline(true)
			}

			left, right := " ", " "
			switch {
			case s.focus == focusBoard && row == s.cursorRow && col == s.cursorCol:
				left, right = "[", "]"
			case sq == dragFrom:
				left, right = "(", ")"
			}
			b.WriteString(style.Render(left + glyph + right))
		}
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat(" ", boardLeft))
	for col := 0; col < 8; col++ {
		b.WriteString(label.Render(" " + string(rune('a'+col)) + " "))
	}
	return b.String()
}

// formatMoves renders SAN history with move numbers.
func formatMoves(items []position.HistoryItem) string {
	if len(items) == 0 {
		return ""
	}
	var parts []string
	n := 1
	for i, it := range items {
		switch {
		case it.Color == position.White:
			parts = append(parts, strconv.Itoa(n)+". "+it.SAN)
		case i == 0:
			parts = append(parts, strconv.Itoa(n)+"... "+it.SAN)
			n++
		default:
			parts = append(parts, it.SAN)
			n++
		}
	}
	return strings.Join(parts, " ")
}
