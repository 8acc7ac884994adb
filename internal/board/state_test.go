package board

import "testing"

func TestStartingPositionMoves(t *testing.T) {
	s := DefaultState()
	moves := s.LegalMoves()
	if len(moves) != 20 {
		t.Fatalf("starting position has %d moves, want 20", len(moves))
	}

	seen := make(map[string]bool, len(moves))
	for _, m := range moves {
		seen[m.String()] = true
	}
	for _, want := range []string{"a2a3", "a2a4", "e2e4", "h2h4", "b1a3", "b1c3", "g1f3", "g1h3"} {
		if !seen[want] {
			t.Errorf("missing %s from the starting moves", want)
		}
	}
	if seen["e1e2"] || seen["a1a2"] {
		t.Error("blocked back-rank piece generated a move")
	}
}

func TestMakeMoveBuildsSuccessor(t *testing.T) {
	s := DefaultState()
	m := mustMove(t, s, "e2e4")
	next := s.MakeMove(m)

	if next == s {
		t.Fatal("MakeMove returned the same state")
	}
	if next.ToMove() != Black {
		t.Error("side to move did not flip")
	}
	if next.MoveCount() != s.MoveCount()+1 {
		t.Error("move count did not advance by one")
	}
	if next.Previous() != s {
		t.Error("successor does not share its predecessor")
	}
	if lm := next.LastMove(); lm == nil || lm.String() != "e2e4" {
		t.Errorf("LastMove = %v", lm)
	}

	// The predecessor is untouched.
	if p, ok := s.PieceAt(Pt(5, 2)); !ok || p.Type != Pawn {
		t.Error("original state lost its e2 pawn")
	}
	if _, ok := s.PieceAt(Pt(5, 4)); ok {
		t.Error("original state gained a piece on e4")
	}
	if p, ok := next.PieceAt(Pt(5, 4)); !ok || p.Type != Pawn || !p.Moved {
		t.Error("successor pawn missing or unmoved on e4")
	}
}

func TestCaptureKeepsTombstone(t *testing.T) {
	s := DefaultState()
	s = s.MakeMove(mustMove(t, s, "e2e4"))
	s = s.MakeMove(mustMove(t, s, "d7d5"))

	capture := mustMove(t, s, "e4d5")
	if !capture.IsLegal(s) || !capture.IsCapture() {
		t.Fatal("e4xd5 should be a legal capture")
	}
	next := s.MakeMove(capture)

	if next.Pieces().Len() != 32 {
		t.Errorf("piece list shrank to %d slots", next.Pieces().Len())
	}
	victim, ok := capture.Captured()
	if !ok {
		t.Fatal("capture did not resolve a victim")
	}
	dead := next.Pieces().Get(victim)
	if dead.Alive || dead.Type != Pawn || dead.Color != Black {
		t.Errorf("victim slot holds %v alive=%v", dead.Type, dead.Alive)
	}
	if p, _ := next.PieceAt(Pt(4, 5)); p.Color != White {
		t.Error("d5 should now show the white pawn")
	}
	// The victim is still alive in the predecessor.
	if p, _ := s.PieceAt(Pt(4, 5)); p.Color != Black || !p.Alive {
		t.Error("capture leaked into the predecessor")
	}
}

func TestMakeMoveStalePanics(t *testing.T) {
	s := DefaultState()

	assertPanics := func(name string, st *State, m Move) {
		defer func() {
			if recover() == nil {
				t.Errorf("MakeMove with %s did not panic", name)
			}
		}()
		st.MakeMove(m)
	}

	assertPanics("an out-of-range handle", s, NewMove(Pt(5, 2), Pt(5, 4), 99))

	h, _ := s.HandleAt(Pt(5, 2))
	assertPanics("a handle away from its square", s, NewMove(Pt(5, 3), Pt(5, 4), h))

	// A move built against a position the piece has since left.
	next := s.MakeMove(mustMove(t, s, "e2e4"))
	next = next.MakeMove(mustMove(t, next, "e7e5"))
	assertPanics("a two-ply-old move", next, NewMove(Pt(5, 2), Pt(5, 3), h))
}

func TestCastlingTransition(t *testing.T) {
	s := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	ks := s.MakeMove(mustMove(t, s, "e1g1"))
	if king, _ := ks.PieceAt(Pt(7, 1)); king.Type != King {
		t.Error("king not on g1 after kingside castling")
	}
	if rook, _ := ks.PieceAt(Pt(6, 1)); rook.Type != Rook || !rook.Moved {
		t.Error("rook not on f1 after kingside castling")
	}
	if _, ok := ks.PieceAt(Pt(8, 1)); ok {
		t.Error("h1 still occupied after kingside castling")
	}

	qs := s.MakeMove(mustMove(t, s, "e1c1"))
	if king, _ := qs.PieceAt(Pt(3, 1)); king.Type != King {
		t.Error("king not on c1 after queenside castling")
	}
	if rook, _ := qs.PieceAt(Pt(4, 1)); rook.Type != Rook {
		t.Error("rook not on d1 after queenside castling")
	}
	if _, ok := qs.PieceAt(Pt(1, 1)); ok {
		t.Error("a1 still occupied after queenside castling")
	}
}

func TestPromotionTransition(t *testing.T) {
	s := mustParse(t, "8/P6k/8/8/8/8/8/K7 w - - 0 1")
	next := s.MakeMove(mustMove(t, s, "a7a8"))

	q, ok := next.PieceAt(Pt(1, 8))
	if !ok || q.Type != Queen || q.Color != White || !q.Sliding {
		t.Errorf("a8 holds %v after promotion", q)
	}
	if next.Pieces().Len() != s.Pieces().Len() {
		t.Error("promotion changed the number of slots")
	}

	// Underpromotion keeps the annotated shape.
	h, _ := s.HandleAt(Pt(1, 7))
	under := s.MakeMove(NewMove(Pt(1, 7), Pt(1, 8), h).WithPromotion(Knight))
	if n, _ := under.PieceAt(Pt(1, 8)); n.Type != Knight || n.Sliding {
		t.Errorf("a8 holds %v after underpromotion", n)
	}
}

func TestHistoryChain(t *testing.T) {
	root := DefaultState()
	s := root
	for _, text := range []string{"e2e4", "e7e5", "g1f3"} {
		s = s.MakeMove(mustMove(t, s, text))
	}

	hist := s.MoveHistory()
	if len(hist) != 3 {
		t.Fatalf("history has %d moves, want 3", len(hist))
	}
	for i, want := range []string{"e2e4", "e7e5", "g1f3"} {
		if hist[i].String() != want {
			t.Errorf("history[%d] = %s, want %s", i, hist[i], want)
		}
	}
	if s.Previous().Previous().Previous() != root {
		t.Error("predecessor chain does not reach the root")
	}
	if len(root.MoveHistory()) != 0 {
		t.Error("root has history")
	}

	// Two futures branch from one position without interfering.
	b1 := root.MakeMove(mustMove(t, root, "d2d4"))
	b2 := root.MakeMove(mustMove(t, root, "c2c4"))
	if b1.Previous() != root || b2.Previous() != root {
		t.Error("branches do not share the root")
	}
	if _, ok := b1.PieceAt(Pt(3, 4)); ok {
		t.Error("sibling branch leaked a pawn across")
	}
}

func TestIsKingInCheck(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		color Color
		check bool
	}{
		{"rook on the file", "4k3/8/8/8/8/8/8/3rK3 b - - 0 1", White, true},
		{"no contact", StartFEN, White, false},
		{"no contact black", StartFEN, Black, false},
		{"knight check", "4k3/8/8/8/8/3n4/8/4K3 w - - 0 1", White, true},
		{"pawn check", "4k3/8/8/8/8/8/3p4/4K3 w - - 0 1", White, true},
		{"pawn check mid-board", "4k3/8/8/3p4/4K3/8/8/8 w - - 0 1", White, true},
		{"pawn check against the back rank", "4k3/3P4/8/8/8/8/8/4K3 b - - 0 1", Black, true},
		{"pawn in front is no check", "4k3/8/8/8/8/8/4p3/4K3 w - - 0 1", White, false},
		{"blocked slider", "4k3/8/8/8/4r3/8/4P3/4K3 w - - 0 1", White, false},
		{"side to move in check", "4k3/8/8/8/8/8/8/3rK3 w - - 0 1", White, true},
		{"check seen for either side", "4k3/4R3/8/8/8/8/8/4K3 b - - 0 1", Black, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := mustParse(t, tc.fen)
			if got := s.IsKingInCheck(tc.color); got != tc.check {
				t.Errorf("IsKingInCheck(%v) = %v, want %v", tc.color, got, tc.check)
			}
		})
	}
}

func TestLegalMovesWithinWindow(t *testing.T) {
	s := mustParse(t, "k7/8/8/8/8/8/8/K6R w - - 0 1").WithExtent(nil)
	moves := s.LegalMovesWithin(Bounds{Min: Pt(1, 1), Max: Pt(12, 8)})

	seen := make(map[string]bool, len(moves))
	for _, m := range moves {
		seen[m.String()] = true
	}
	// The rook continues past h1 onto the open plane, up to the window.
	for _, want := range []string{"h1(9,1)", "h1(12,1)", "h1b1", "h1h8"} {
		if !seen[want] {
			t.Errorf("missing %s in windowed moves", want)
		}
	}
	if seen["h1(13,1)"] || seen["h1a1"] {
		t.Error("windowed enumeration leaked outside its bounds")
	}
	// 17 rook moves (4 east in the window, 6 west, 7 north) plus 3 king
	// steps.
	if len(moves) != 20 {
		t.Errorf("got %d moves in the window, want 20", len(moves))
	}
}

func TestLegalMovesUnboundedDefaultWindow(t *testing.T) {
	s := DefaultState().WithExtent(nil)
	moves := s.LegalMoves()

	seen := make(map[string]bool, len(moves))
	for _, m := range moves {
		seen[m.String()] = true
	}
	// The classical openings are all still there.
	for _, want := range []string{"e2e4", "d2d4", "b1c3", "g1f3"} {
		if !seen[want] {
			t.Errorf("missing %s from the unbounded start", want)
		}
	}
	// Without walls the back rank is no edge; the first-rank pieces
	// also reach south onto the open plane.
	for _, want := range []string{"b1(1,-1)", "a1(0,1)", "c1(2,0)", "d1(4,0)", "e1(5,0)"} {
		if !seen[want] {
			t.Errorf("missing %s from the unbounded start", want)
		}
	}
	// 16 pawn, 14 knight, 8 rook, 8 bishop, 6 queen and 3 king moves
	// fit inside the default window around the armies.
	if len(moves) != 55 {
		t.Errorf("unbounded start has %d default-window moves, want 55", len(moves))
	}
	if !s.HasLegalMoves() {
		t.Error("unbounded start reports no moves")
	}
}

func TestStateStringRendering(t *testing.T) {
	s := mustParse(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	got := s.String()
	want := "    ♚   \n" +
		"        \n" +
		"        \n" +
		"        \n" +
		"        \n" +
		"        \n" +
		"        \n" +
		"    ♔   \n"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	// Without an extent the window hugs the pieces: a single column
	// with one blank per empty square.
	tight := s.WithExtent(nil)
	if tight.String() != "♚\n \n \n \n \n \n \n♔\n" {
		t.Errorf("unbounded String() = %q", tight.String())
	}
}
