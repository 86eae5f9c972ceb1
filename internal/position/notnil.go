package position

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

var pieceTypes = map[chess.PieceType]PieceType{
	chess.King:   King,
	chess.Queen:  Queen,
	chess.Rook:   Rook,
	chess.Bishop: Bishop,
	chess.Knight: Knight,
	chess.Pawn:   Pawn,
}

// NotnilEngine implements Engine on top of github.com/notnil/chess.
//
// Remove and Put edit a pending layout: FEN, PieceAt and Board reflect the
// edits immediately, while move generation and status keep describing the
// last parsed position until the composed FEN is parsed again.
type NotnilEngine struct {
	game  *chess.Game
	edits map[string]Piece
}

var _ Engine = (*NotnilEngine)(nil)

// NewNotnilEngine parses fen (or the start position when fen is empty or
// "start") into a new engine.
func NewNotnilEngine(fen string) (Engine, error) {
	if fen == "" || fen == "start" {
		fen = StartFEN
	}
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	return &NotnilEngine{game: chess.NewGame(opt)}, nil
}

func (e *NotnilEngine) FEN() string {
	if e.edits == nil {
		return e.game.Position().String()
	}
	fields := fenFields(e.game.Position().String())
	fields[0] = encodePlacement(e.edits)
	fields[2] = castlingFor(fields[2], e.edits)
	fields[3] = "-"
	return strings.Join(fields, " ")
}

func (e *NotnilEngine) Turn() Color {
	return toColor(e.game.Position().Turn())
}

func (e *NotnilEngine) PieceAt(square string) (Piece, bool) {
	if !IsSquare(square) {
		return Piece{}, false
	}
	p, ok := e.layout()[square]
	return p, ok
}

func (e *NotnilEngine) LegalDestinations(square string) []string {
	s1, ok := toSquare(square)
	if !ok {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, m := range e.game.ValidMoves() {
		if m.S1() != s1 {
			continue
		}
		to := fromSquare(m.S2())
		if seen[to] {
			continue
		}
		seen[to] = true
		out = append(out, to)
	}
	return out
}

func (e *NotnilEngine) Move(from, to string, promotion PieceType) (Move, bool) {
	s1, ok1 := toSquare(from)
	s2, ok2 := toSquare(to)
	if !ok1 || !ok2 || e.edits != nil {
		return Move{}, false
	}
	if promotion == NoPieceType {
		promotion = Queen
	}

	pos := e.game.Position()
	var match *chess.Move
	for _, m := range e.game.ValidMoves() {
		if m.S1() != s1 || m.S2() != s2 {
			continue
		}
		if m.Promo() != chess.NoPieceType && pieceTypes[m.Promo()] != promotion {
			continue
		}
		match = m
		break
	}
	if match == nil {
		return Move{}, false
	}

	san := chess.AlgebraicNotation{}.Encode(pos, match)
	mover := toColor(pos.Turn())
	if err := e.game.Move(match); err != nil {
		return Move{}, false
	}

	return Move{
		From:      from,
		To:        to,
		SAN:       san,
		Color:     mover,
		Promotion: pieceTypes[match.Promo()],
	}, true
}

func (e *NotnilEngine) Remove(square string) (Piece, bool) {
	layout := e.layout()
	p, ok := layout[square]
	if !ok {
		return Piece{}, false
	}
	delete(layout, square)
	e.edits = layout
	return p, true
}

func (e *NotnilEngine) Put(p Piece, square string) bool {
	if !IsSquare(square) || p.IsZero() {
		return false
	}
	layout := e.layout()
	layout[square] = p
	e.edits = layout
	return true
}

// InCheck reads the check tag notnil/chess sets on the last played move.
// The library does not export check detection for a bare position, so a
// position with no played move (freshly parsed or edited) is scanned for
// attacks on the king of the side to move.
func (e *NotnilEngine) InCheck() bool {
	if moves := e.game.Moves(); e.edits == nil && len(moves) > 0 {
		return moves[len(moves)-1].HasTag(chess.Check)
	}
	return e.scanCheck()
}

func (e *NotnilEngine) scanCheck() bool {
	layout := e.layout()
	turn := e.Turn()
	for sq, p := range layout {
		if p.Type == King && p.Color == turn {
			return attacked(layout, sq, turn.Opposite())
		}
	}
	return false
}

func (e *NotnilEngine) InCheckmate() bool {
	return e.game.Position().Status() == chess.Checkmate
}

func (e *NotnilEngine) InDraw() bool {
	if e.game.Position().Status() == chess.Stalemate {
		return true
	}
	if e.game.Outcome() == chess.Draw {
		return true
	}
	for _, m := range e.game.EligibleDraws() {
		if m == chess.ThreefoldRepetition || m == chess.FiftyMoveRule {
			return true
		}
	}
	return false
}

func (e *NotnilEngine) IsGameOver() bool {
	return e.InCheckmate() || e.InDraw()
}

func (e *NotnilEngine) Board() [8][8]Piece {
	var grid [8][8]Piece
	for sq, p := range e.layout() {
		f, r, _ := Coords(sq)
		grid[7-r][f] = p
	}
	return grid
}

// layout returns a fresh square->piece map for the current (possibly
// edited) placement.
func (e *NotnilEngine) layout() map[string]Piece {
	out := make(map[string]Piece, 32)
	if e.edits != nil {
		for sq, p := range e.edits {
			out[sq] = p
		}
		return out
	}
	for sq, p := range e.game.Position().Board().SquareMap() {
		if p == chess.NoPiece {
			continue
		}
		out[fromSquare(sq)] = toPiece(p)
	}
	return out
}

func toSquare(s string) (chess.Square, bool) {
	f, r, ok := Coords(s)
	if !ok {
		return chess.NoSquare, false
	}
	return chess.NewSquare(chess.File(f), chess.Rank(r)), true
}

func fromSquare(sq chess.Square) string {
	return SquareAt(int(sq.File()), int(sq.Rank()))
}

func toColor(c chess.Color) Color {
	if c == chess.Black {
		return Black
	}
	return White
}

func toPiece(p chess.Piece) Piece {
	return Piece{Type: pieceTypes[p.Type()], Color: toColor(p.Color())}
}

// fenFields splits a FEN into its six fields, filling defaults for any
// missing trailing fields.
func fenFields(fen string) []string {
	fields := strings.Fields(fen)
	defaults := []string{"8/8/8/8/8/8/8/8", "w", "-", "-", "0", "1"}
	for len(fields) < len(defaults) {
		fields = append(fields, defaults[len(fields)])
	}
	return fields[:6]
}

// encodePlacement writes the piece-placement field of a FEN.
func encodePlacement(layout map[string]Piece) string {
	var b strings.Builder
	for row := 0; row < 8; row++ {
		empty := 0
		for col := 0; col < 8; col++ {
			p, ok := layout[DisplaySquare(row, col)]
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteByte(byte('0' + empty))
				empty = 0
			}
			b.WriteString(p.Letter())
		}
		if empty > 0 {
			b.WriteByte(byte('0' + empty))
		}
		if row < 7 {
			b.WriteByte('/')
		}
	}
	return b.String()
}

// castlingFor keeps only the castling rights whose king and rook are still
// on their home squares.
func castlingFor(rights string, layout map[string]Piece) string {
	home := map[rune][2]string{
		'K': {"e1", "h1"},
		'Q': {"e1", "a1"},
		'k': {"e8", "h8"},
		'q': {"e8", "a8"},
	}
	var b strings.Builder
	for _, r := range rights {
		sq, ok := home[r]
		if !ok {
			continue
		}
		color := White
		if r == 'k' || r == 'q' {
			color = Black
		}
		if layout[sq[0]] == (Piece{Type: King, Color: color}) && layout[sq[1]] == (Piece{Type: Rook, Color: color}) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}

// attacked reports whether square is attacked by any piece of color by.
func attacked(layout map[string]Piece, square string, by Color) bool {
	f, r, ok := Coords(square)
	if !ok {
		return false
	}
	at := func(df, dr int) (Piece, bool) {
		p, ok := layout[SquareAt(f+df, r+dr)]
		return p, ok && p.Color == by
	}

	pawnDir := -1
	if by == Black {
		pawnDir = 1
	}
	for _, df := range []int{-1, 1} {
		if p, ok := at(df, pawnDir); ok && p.Type == Pawn {
			return true
		}
	}

	for _, d := range [][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}} {
		if p, ok := at(d[0], d[1]); ok && p.Type == Knight {
			return true
		}
	}

	for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}} {
		if p, ok := at(d[0], d[1]); ok && p.Type == King {
			return true
		}
		diagonal := d[0] != 0 && d[1] != 0
		for step := 1; step < 8; step++ {
			sq := SquareAt(f+d[0]*step, r+d[1]*step)
			if sq == "" {
				break
			}
			p, occupied := layout[sq]
			if !occupied {
				continue
			}
			if p.Color == by && (p.Type == Queen || (diagonal && p.Type == Bishop) || (!diagonal && p.Type == Rook)) {
				return true
			}
			break
		}
	}
	return false
}
