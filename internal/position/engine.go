package position

// Engine is the boundary to the external chess rules engine. The adapter and
// everything above it only talk to the engine through this interface.
type Engine interface {
	// FEN serializes the current position.
	FEN() string

	// Turn returns the side to move.
	Turn() Color

	// PieceAt returns the piece on square, if any.
	PieceAt(square string) (Piece, bool)

	// LegalDestinations lists the squares the piece on square may move to.
	LegalDestinations(square string) []string

	// Move applies a legal move. It reports false, leaving the position
	// untouched, when the move is illegal for the side to move.
	Move(from, to string, promotion PieceType) (Move, bool)

	// Remove takes the piece off square without legality checks.
	Remove(square string) (Piece, bool)

	// Put places p on square without legality checks.
	Put(p Piece, square string) bool

	InCheck() bool
	InCheckmate() bool
	InDraw() bool
	IsGameOver() bool

	// Board returns the 8x8 grid in rank-major display order: row 0 is
	// rank 8, column 0 is the a-file. Empty cells hold the zero Piece.
	Board() [8][8]Piece
}

// Factory constructs an Engine from a FEN string. An empty string means the
// standard starting position.
type Factory func(fen string) (Engine, error)
