package position

// Files and ranks in board order. Files map to columns left-to-right,
// ranks to rows bottom-to-top.
const (
	files = "abcdefgh"
	ranks = "12345678"
)

// IsSquare reports whether s names a board square such as "e4".
func IsSquare(s string) bool {
	if len(s) != 2 {
		return false
	}
	return s[0] >= 'a' && s[0] <= 'h' && s[1] >= '1' && s[1] <= '8'
}

// SquareAt returns the name of the square at file index f and rank index r,
// both zero-based (0,0 is a1).
func SquareAt(f, r int) string {
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return ""
	}
	return string([]byte{files[f], ranks[r]})
}

// Coords returns zero-based file and rank indexes for a square name.
func Coords(s string) (f, r int, ok bool) {
	if !IsSquare(s) {
		return 0, 0, false
	}
	return int(s[0] - 'a'), int(s[1] - '1'), true
}

// DisplaySquare returns the square shown at display row/column, where row 0
// is the top of the board (rank 8) and column 0 is the a-file.
func DisplaySquare(row, col int) string {
	return SquareAt(col, 7-row)
}

// AllSquares lists every square in rank-major display order (a8..h1).
func AllSquares() []string {
	out := make([]string, 0, 64)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			out = append(out, DisplaySquare(row, col))
		}
	}
	return out
}
