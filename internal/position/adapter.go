package position

import "fmt"

// Adapter owns the active position of one board session. It records the
// session history and last-move marker and derives GameStatus from the
// engine on every read.
type Adapter struct {
	newEngine Factory
	engine    Engine
	history   []HistoryItem
	lastMove  *LastMove
}

// NewAdapter creates an adapter at the standard starting position. A nil
// factory selects the notnil/chess engine.
func NewAdapter(factory Factory) *Adapter {
	if factory == nil {
		factory = NewNotnilEngine
	}
	a := &Adapter{newEngine: factory}
	a.Reset()
	return a
}

// Load replaces the position with fen and starts a new session. On a parse
// error the current position is kept.
func (a *Adapter) Load(fen string) error {
	eng, err := a.newEngine(fen)
	if err != nil {
		return fmt.Errorf("load position: %w", err)
	}
	a.engine = eng
	a.history = nil
	a.lastMove = nil
	return nil
}

// Reset starts a new standard game and clears the session.
func (a *Adapter) Reset() {
	eng, err := a.newEngine(StartFEN)
	if err != nil {
		// The start position always parses; keep whatever we had otherwise.
		return
	}
	a.engine = eng
	a.history = nil
	a.lastMove = nil
}

// ApplyMove plays a legal move for the side to move. Illegal requests return
// false and change nothing.
func (a *Adapter) ApplyMove(from, to string, promotion PieceType) (*Move, bool) {
	m, ok := a.engine.Move(from, to, promotion)
	if !ok {
		return nil, false
	}
	a.lastMove = &LastMove{From: m.From, To: m.To}
	a.history = append(a.history, HistoryItem{
		Move:  m.From + "-" + m.To,
		SAN:   m.SAN,
		Color: m.Color,
		FEN:   a.engine.FEN(),
	})
	return &m, true
}

// Relocate moves the piece on from to to without any legality check and
// re-parses the composed placement so turn, castling and en passant stay
// consistent. History is not touched. Capturing a king is refused since the
// result could not be parsed back.
func (a *Adapter) Relocate(from, to string) bool {
	if from == to || !IsSquare(to) {
		return false
	}
	if target, ok := a.engine.PieceAt(to); ok && target.Type == King {
		return false
	}
	prev := a.engine.FEN()

	p, ok := a.engine.Remove(from)
	if !ok {
		return false
	}
	if !a.engine.Put(p, to) {
		a.restore(prev)
		return false
	}

	eng, err := a.newEngine(a.engine.FEN())
	if err != nil {
		a.restore(prev)
		return false
	}
	a.engine = eng
	a.lastMove = &LastMove{From: from, To: to}
	return true
}

func (a *Adapter) restore(fen string) {
	if eng, err := a.newEngine(fen); err == nil {
		a.engine = eng
	}
}

// Status derives the game status from the current position.
func (a *Adapter) Status() GameStatus {
	draw := a.engine.InDraw()
	mate := a.engine.InCheckmate()
	return GameStatus{
		IsCheck:     a.engine.InCheck(),
		IsCheckmate: mate,
		IsDraw:      draw,
		IsGameOver:  mate || draw || a.engine.IsGameOver(),
		Turn:        a.engine.Turn(),
		FEN:         a.engine.FEN(),
	}
}

func (a *Adapter) FEN() string { return a.engine.FEN() }
func (a *Adapter) Turn() Color { return a.engine.Turn() }

// History returns a copy of the session move list.
func (a *Adapter) History() []HistoryItem {
	out := make([]HistoryItem, len(a.history))
	copy(out, a.history)
	return out
}

// SANHistory lists the session moves in standard notation.
func (a *Adapter) SANHistory() []string {
	out := make([]string, len(a.history))
	for i, h := range a.history {
		out[i] = h.SAN
	}
	return out
}

// LastMove returns the squares of the most recent move or relocation.
func (a *Adapter) LastMove() (LastMove, bool) {
	if a.lastMove == nil {
		return LastMove{}, false
	}
	return *a.lastMove, true
}

func (a *Adapter) PieceAt(square string) (Piece, bool) {
	return a.engine.PieceAt(square)
}

func (a *Adapter) LegalDestinations(square string) []string {
	return a.engine.LegalDestinations(square)
}

// Grid returns the board in rank-major display order.
func (a *Adapter) Grid() [8][8]Piece {
	return a.engine.Board()
}
