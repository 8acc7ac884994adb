package board

import "testing"

func TestParseStartingPosition(t *testing.T) {
	s := mustParse(t, StartFEN)

	if s.Pieces().Len() != 32 {
		t.Errorf("parsed %d pieces, want 32", s.Pieces().Len())
	}
	if s.ToMove() != White {
		t.Error("white should be to move")
	}
	if s.MoveCount() != 0 {
		t.Errorf("move count = %d, want 0", s.MoveCount())
	}
	b, ok := s.Extent()
	if !ok || b != ClassicalBounds() {
		t.Errorf("extent = %+v, %v, want the classical 8x8", b, ok)
	}
	if s.Previous() != nil || s.LastMove() != nil {
		t.Error("parsed state should be a root")
	}

	checks := []struct {
		pos   Point
		pt    PieceType
		color Color
	}{
		{Pt(1, 1), Rook, White},
		{Pt(5, 1), King, White},
		{Pt(4, 8), Queen, Black},
		{Pt(7, 8), Knight, Black},
		{Pt(5, 2), Pawn, White},
		{Pt(8, 7), Pawn, Black},
	}
	for _, c := range checks {
		p, ok := s.PieceAt(c.pos)
		if !ok || p.Type != c.pt || p.Color != c.color {
			t.Errorf("PieceAt(%v) = %v, want %v %v", c.pos, p, c.color, c.pt)
		}
	}
	if _, ok := s.PieceAt(Pt(5, 5)); ok {
		t.Error("e5 should be empty")
	}
}

func TestParseFENErrors(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"empty", ""},
		{"too few fields", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -"},
		{"too many fields", StartFEN + " extra"},
		{"seven ranks", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1"},
		{"nine ranks", "rnbqkbnr/pppppppp/8/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"bad piece letter", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1"},
		{"rank too wide", "rnbqkbnr/ppppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"rank too narrow", "rnbqkbnr/ppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"bad side", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1"},
		{"bad castling letter", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KZkq - 0 1"},
		{"bad en passant square", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e5 0 1"},
		{"en passant wrong side", "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e3 0 1"},
		{"en passant no pawn", "rnbqkbnr/pppppppp/8/8/8/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"},
		{"bad halfmove clock", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - x 1"},
		{"negative halfmove clock", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -3 1"},
		{"bad fullmove number", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 x"},
		{"no white king", "rnbq1bnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQ1BNR w - - 0 1"},
		{"two black kings", "rnbqkknr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if s, err := ParseFEN(tc.fen); err == nil {
				t.Errorf("accepted %q as %v", tc.fen, s)
			}
		})
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R b Qk - 4 3",
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 1 1",
		"8/P6k/8/8/8/8/8/K7 w - - 6 4",
	}
	for _, fen := range fens {
		s := mustParse(t, fen)
		if got := s.ToFEN(); got != fen {
			t.Errorf("round trip %q -> %q", fen, got)
		}
	}
}

func TestCastlingFieldMarksRooks(t *testing.T) {
	s := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R w Kq - 0 1")

	h1, _ := s.PieceAt(Pt(8, 1))
	a1, _ := s.PieceAt(Pt(1, 1))
	h8, _ := s.PieceAt(Pt(8, 8))
	a8, _ := s.PieceAt(Pt(1, 8))
	if h1.Moved || !a1.Moved {
		t.Error("white rook flags do not match the K right")
	}
	if !h8.Moved || a8.Moved {
		t.Error("black rook flags do not match the q right")
	}
	for _, c := range []Color{White, Black} {
		if s.Pieces().King(c).Moved {
			t.Errorf("%v king should stay unmoved", c)
		}
	}
}

func TestParseEnPassantSynthesis(t *testing.T) {
	s := mustParse(t, "rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 2")

	ep, ok := s.EnPassantSquare()
	if !ok || ep != Pt(5, 3) {
		t.Fatalf("EnPassantSquare = %v, %v, want e3", ep, ok)
	}
	lm := s.LastMove()
	if lm == nil || lm.String() != "e2e4" {
		t.Fatalf("synthesized last move = %v, want e2e4", lm)
	}

	capture := mustMove(t, s, "d4e3")
	if !capture.EnPassant || !capture.IsLegal(s) {
		t.Fatal("d4xe3 en passant should be legal straight out of the FEN")
	}
	next := s.MakeMove(capture)
	if _, ok := next.PieceAt(Pt(5, 4)); ok {
		t.Error("bypassed e4 pawn survived the capture")
	}
}

func TestPawnsOffHomeRankAreMoved(t *testing.T) {
	s := mustParse(t, "4k3/8/8/8/8/4P3/8/4K3 w - - 0 1")
	p, _ := s.PieceAt(Pt(5, 3))
	if !p.Moved {
		t.Error("pawn parsed away from its home rank should be moved")
	}
	home := mustParse(t, StartFEN)
	hp, _ := home.PieceAt(Pt(5, 2))
	if hp.Moved {
		t.Error("pawn on its home rank should be unmoved")
	}
}

func TestToFENCounters(t *testing.T) {
	s := DefaultState()
	for _, text := range []string{"e2e4", "e7e5", "g1f3"} {
		s = s.MakeMove(mustMove(t, s, text))
	}
	got := s.ToFEN()
	want := "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 3 2"
	if got != want {
		t.Errorf("ToFEN after three plies = %q, want %q", got, want)
	}
}

func TestDefaultState(t *testing.T) {
	if got := DefaultState().ToFEN(); got != StartFEN {
		t.Errorf("DefaultState renders %q, want StartFEN", got)
	}
}
