package position

import (
	"testing"

	"github.com/notnil/chess"
)

func TestApplyMove_E4(t *testing.T) {
	a := NewAdapter(nil)

	m, ok := a.ApplyMove("e2", "e4", NoPieceType)
	if !ok {
		t.Fatal("expected e2-e4 to be legal")
	}
	if m.SAN != "e4" {
		t.Errorf("SAN = %q, want e4", m.SAN)
	}
	if m.Color != White {
		t.Errorf("Color = %q, want w", m.Color)
	}

	st := a.Status()
	want := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
	if st.FEN != want {
		t.Errorf("FEN = %q, want %q", st.FEN, want)
	}
	if st.Turn != Black {
		t.Errorf("Turn = %q, want b", st.Turn)
	}

	hist := a.History()
	if len(hist) != 1 {
		t.Fatalf("history len = %d, want 1", len(hist))
	}
	if hist[0].Move != "e2-e4" || hist[0].SAN != "e4" || hist[0].FEN != want {
		t.Errorf("unexpected history item: %+v", hist[0])
	}
	lm, ok := a.LastMove()
	if !ok || lm.From != "e2" || lm.To != "e4" {
		t.Errorf("LastMove = %+v, %v", lm, ok)
	}
}

func TestApplyMove_RejectsWithoutMutation(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
	}{
		{"empty square", "e3", "e4"},
		{"wrong side", "e7", "e5"},
		{"illegal pawn jump", "e2", "e5"},
		{"off board", "e2", "e9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAdapter(nil)
			before := a.FEN()

			if m, ok := a.ApplyMove(tt.from, tt.to, NoPieceType); ok || m != nil {
				t.Fatalf("ApplyMove(%s,%s) succeeded", tt.from, tt.to)
			}
			if a.FEN() != before {
				t.Errorf("FEN changed: %q", a.FEN())
			}
			if len(a.History()) != 0 {
				t.Errorf("history should be empty")
			}
			if _, ok := a.LastMove(); ok {
				t.Errorf("last move should be unset")
			}
		})
	}
}

func TestApplyMove_MatchesEngineSequence(t *testing.T) {
	moves := [][2]string{
		{"e2", "e4"}, {"c7", "c5"}, {"g1", "f3"}, {"d7", "d6"},
		{"d2", "d4"}, {"c5", "d4"}, {"f3", "d4"}, {"g8", "f6"},
		{"b1", "c3"}, {"a7", "a6"}, {"f1", "e2"}, {"e7", "e5"},
		{"e1", "g1"},
	}

	a := NewAdapter(nil)
	ref := chess.NewGame()

	for _, mv := range moves {
		if _, ok := a.ApplyMove(mv[0], mv[1], NoPieceType); !ok {
			t.Fatalf("move %s-%s rejected", mv[0], mv[1])
		}
		refMove, err := chess.UCINotation{}.Decode(ref.Position(), mv[0]+mv[1])
		if err != nil {
			t.Fatalf("reference engine rejected %s%s: %v", mv[0], mv[1], err)
		}
		if err := ref.Move(refMove); err != nil {
			t.Fatalf("reference engine rejected %s%s: %v", mv[0], mv[1], err)
		}
		if got, want := a.Status().FEN, ref.Position().String(); got != want {
			t.Fatalf("after %s-%s FEN = %q, want %q", mv[0], mv[1], got, want)
		}
	}
	if got := len(a.History()); got != len(moves) {
		t.Errorf("history len = %d, want %d", got, len(moves))
	}
	if last := a.History()[len(moves)-1]; last.SAN != "O-O" {
		t.Errorf("castling SAN = %q, want O-O", last.SAN)
	}
}

func TestApplyMove_PromotionDefaultsToQueen(t *testing.T) {
	a := NewAdapter(nil)
	if err := a.Load("8/P7/8/8/8/8/8/k6K w - - 0 1"); err != nil {
		t.Fatal(err)
	}

	m, ok := a.ApplyMove("a7", "a8", NoPieceType)
	if !ok {
		t.Fatal("promotion rejected")
	}
	if m.Promotion != Queen {
		t.Errorf("Promotion = %q, want q", m.Promotion)
	}
	p, ok := a.PieceAt("a8")
	if !ok || p != (Piece{Type: Queen, Color: White}) {
		t.Errorf("a8 = %+v, %v", p, ok)
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		moves [][2]string
		want  GameStatus
	}{
		{
			name: "start",
			fen:  StartFEN,
			want: GameStatus{Turn: White},
		},
		{
			name: "check",
			fen:  "4k3/8/8/8/8/8/8/4R2K b - - 0 1",
			want: GameStatus{IsCheck: true, Turn: Black},
		},
		{
			name:  "fools mate",
			fen:   StartFEN,
			moves: [][2]string{{"f2", "f3"}, {"e7", "e5"}, {"g2", "g4"}, {"d8", "h4"}},
			want:  GameStatus{IsCheck: true, IsCheckmate: true, IsGameOver: true, Turn: White},
		},
		{
			name: "stalemate",
			fen:  "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",
			want: GameStatus{IsDraw: true, IsGameOver: true, Turn: Black},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAdapter(nil)
			if err := a.Load(tt.fen); err != nil {
				t.Fatal(err)
			}
			for _, mv := range tt.moves {
				if _, ok := a.ApplyMove(mv[0], mv[1], NoPieceType); !ok {
					t.Fatalf("move %s-%s rejected", mv[0], mv[1])
				}
			}
			got := a.Status()
			got.FEN = ""
			if got != tt.want {
				t.Errorf("Status() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestInCheck_MoveTagMatchesScan(t *testing.T) {
	tests := []struct {
		name  string
		moves [][2]string
		check []bool
	}{
		{
			name: "scholars mate",
			moves: [][2]string{
				{"e2", "e4"}, {"e7", "e5"}, {"f1", "c4"}, {"b8", "c6"},
				{"d1", "h5"}, {"g8", "f6"}, {"h5", "f7"},
			},
			check: []bool{false, false, false, false, false, false, true},
		},
		{
			name:  "queen check blocked",
			moves: [][2]string{{"e2", "e4"}, {"f7", "f5"}, {"d1", "h5"}, {"g7", "g6"}, {"h5", "g6"}},
			check: []bool{false, false, true, false, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, err := NewNotnilEngine(StartFEN)
			if err != nil {
				t.Fatal(err)
			}
			e := eng.(*NotnilEngine)
			for i, mv := range tt.moves {
				if _, ok := e.Move(mv[0], mv[1], NoPieceType); !ok {
					t.Fatalf("move %s-%s rejected", mv[0], mv[1])
				}
				if got := e.InCheck(); got != tt.check[i] {
					t.Errorf("after %s-%s: InCheck() = %v, want %v", mv[0], mv[1], got, tt.check[i])
				}
				if got := e.scanCheck(); got != tt.check[i] {
					t.Errorf("after %s-%s: scan = %v, want %v", mv[0], mv[1], got, tt.check[i])
				}
				fresh, err := NewNotnilEngine(e.FEN())
				if err != nil {
					t.Fatal(err)
				}
				if got := fresh.InCheck(); got != tt.check[i] {
					t.Errorf("reparsed after %s-%s: InCheck() = %v, want %v", mv[0], mv[1], got, tt.check[i])
				}
			}
		})
	}
}

func TestRelocate_KingAnywhere(t *testing.T) {
	a := NewAdapter(nil)

	if !a.Relocate("e1", "e4") {
		t.Fatal("relocation rejected")
	}

	want := "rnbqkbnr/pppppppp/8/8/4K3/8/PPPPPPPP/RNBQ1BNR w kq - 0 1"
	if got := a.FEN(); got != want {
		t.Errorf("FEN = %q, want %q", got, want)
	}
	if len(a.History()) != 0 {
		t.Errorf("relocation must not append history")
	}
	if lm, ok := a.LastMove(); !ok || lm != (LastMove{From: "e1", To: "e4"}) {
		t.Errorf("LastMove = %+v, %v", lm, ok)
	}
	// The re-parsed position generates moves from the new square.
	if dests := a.LegalDestinations("e4"); len(dests) == 0 {
		t.Errorf("expected legal king moves from e4")
	}
}

func TestRelocate_Refusals(t *testing.T) {
	a := NewAdapter(nil)
	before := a.FEN()

	if a.Relocate("e4", "e5") {
		t.Error("relocating from an empty square should fail")
	}
	if a.Relocate("d1", "e8") {
		t.Error("capturing a king should fail")
	}
	if a.Relocate("d1", "d1") {
		t.Error("relocating onto the same square should fail")
	}
	if a.FEN() != before {
		t.Errorf("FEN changed: %q", a.FEN())
	}
}

func TestRelocate_CastlingRights(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		want     string
	}{
		{
			name: "capture keeps rights",
			from: "d1", to: "a7",
			want: "rnbqkbnr/Qppppppp/8/8/8/8/PPPPPPPP/RNB1KBNR w KQkq - 0 1",
		},
		{
			name: "rook leaves home",
			from: "h1", to: "h4",
			want: "rnbqkbnr/pppppppp/8/8/7R/8/PPPPPPPP/RNBQKBN1 w Qkq - 0 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAdapter(nil)
			if !a.Relocate(tt.from, tt.to) {
				t.Fatal("relocation rejected")
			}
			if got := a.FEN(); got != tt.want {
				t.Errorf("FEN = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRelocate_ClearsEnPassant(t *testing.T) {
	a := NewAdapter(nil)
	a.ApplyMove("e2", "e4", NoPieceType)
	if !a.Relocate("b8", "c6") {
		t.Fatal("relocation rejected")
	}
	want := "r1bqkbnr/pppppppp/2n5/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1"
	if got := a.FEN(); got != want {
		t.Errorf("FEN = %q, want %q", got, want)
	}
	if len(a.History()) != 1 {
		t.Errorf("history len = %d, want 1", len(a.History()))
	}
}

func TestLoadAndReset(t *testing.T) {
	a := NewAdapter(nil)
	a.ApplyMove("e2", "e4", NoPieceType)

	if err := a.Load("not a fen"); err == nil {
		t.Fatal("expected error for invalid FEN")
	}
	if len(a.History()) != 1 {
		t.Errorf("failed load must keep the session")
	}

	if err := a.Load("8/8/8/8/8/8/8/K6k w - - 0 1"); err != nil {
		t.Fatal(err)
	}
	if len(a.History()) != 0 {
		t.Errorf("load must clear history")
	}
	if _, ok := a.LastMove(); ok {
		t.Errorf("load must clear last move")
	}

	a.Reset()
	if a.FEN() != StartFEN {
		t.Errorf("FEN after reset = %q", a.FEN())
	}
}

func TestLegalDestinations(t *testing.T) {
	a := NewAdapter(nil)

	got := map[string]bool{}
	for _, sq := range a.LegalDestinations("g1") {
		got[sq] = true
	}
	if len(got) != 2 || !got["f3"] || !got["h3"] {
		t.Errorf("g1 destinations = %v", got)
	}
	if d := a.LegalDestinations("e7"); len(d) != 0 {
		t.Errorf("black pawn has destinations on white's turn: %v", d)
	}
}

func TestGrid(t *testing.T) {
	a := NewAdapter(nil)
	grid := a.Grid()

	if grid[0][0] != (Piece{Type: Rook, Color: Black}) {
		t.Errorf("a8 = %+v", grid[0][0])
	}
	if grid[7][4] != (Piece{Type: King, Color: White}) {
		t.Errorf("e1 = %+v", grid[7][4])
	}
	if !grid[4][4].IsZero() {
		t.Errorf("e4 should be empty")
	}
}

func TestSquares(t *testing.T) {
	if DisplaySquare(0, 0) != "a8" || DisplaySquare(7, 7) != "h1" {
		t.Errorf("display mapping broken")
	}
	if f, r, ok := Coords("c5"); !ok || f != 2 || r != 4 {
		t.Errorf("Coords(c5) = %d,%d,%v", f, r, ok)
	}
	if IsSquare("i1") || IsSquare("a0") || IsSquare("a") {
		t.Errorf("IsSquare accepted an invalid name")
	}
	if len(AllSquares()) != 64 {
		t.Errorf("AllSquares len = %d", len(AllSquares()))
	}
}
