package position

import "errors"

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrInvalidFEN is returned when a FEN string cannot be parsed by the engine.
var ErrInvalidFEN = errors.New("invalid FEN")

// Color is the side a piece belongs to, encoded as in FEN ("w" / "b").
type Color string

const (
	White Color = "w"
	Black Color = "b"
)

// Opposite returns the other side.
func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

// PieceType is the lowercase FEN letter of a piece kind.
type PieceType string

const (
	NoPieceType PieceType = ""
	Pawn        PieceType = "p"
	Knight      PieceType = "n"
	Bishop      PieceType = "b"
	Rook        PieceType = "r"
	Queen       PieceType = "q"
	King        PieceType = "k"
)

// Piece is a colored piece. The zero value means an empty square.
type Piece struct {
	Type  PieceType
	Color Color
}

// IsZero reports whether p represents an empty square.
func (p Piece) IsZero() bool {
	return p.Type == NoPieceType
}

// Letter returns the FEN letter for the piece (uppercase for white).
func (p Piece) Letter() string {
	if p.IsZero() {
		return ""
	}
	if p.Color == White {
		return string(rune(p.Type[0] - 'a' + 'A'))
	}
	return string(p.Type)
}

// Move describes a move accepted by the engine.
type Move struct {
	From      string
	To        string
	SAN       string
	Color     Color
	Promotion PieceType
}

// HistoryItem is one entry of the session move list.
type HistoryItem struct {
	Move  string `json:"move"`
	SAN   string `json:"san"`
	Color Color  `json:"color"`
	FEN   string `json:"fen"`
}

// LastMove marks the squares of the most recent board change.
type LastMove struct {
	From string
	To   string
}

// GameStatus is derived from the current position on every read.
type GameStatus struct {
	IsCheck     bool
	IsCheckmate bool
	IsDraw      bool
	IsGameOver  bool
	Turn        Color
	FEN         string
}
