package board

import "testing"

func TestBackRankCheckmate(t *testing.T) {
	// White: Ka1, Ra8. Black: Kh8, pawns g7 h7 boxing their king in.
	// Black is already checkmated.
	s := mustParse(t, "R6k/6pp/8/8/8/8/8/K7 b - - 0 1")

	t.Log("Checkmate position:")
	t.Log("\n" + s.Describe())

	t.Log("IsKingInCheck(Black):", s.IsKingInCheck(Black))
	moves := s.LegalMoves()
	t.Log("Black legal moves:", len(moves))
	for _, m := range moves {
		t.Log("  Move:", m)
	}

	if !s.IsCheckmate(Black) {
		t.Error("Expected checkmate but got false")
	}
	if s.IsStalemate(Black) {
		t.Error("Checkmate misreported as stalemate")
	}
	if s.IsCheckmate(White) {
		t.Error("White is not the side being mated")
	}
}

func TestKingCanCaptureChecker(t *testing.T) {
	// The rook gives check from g8 but stands unguarded next to the
	// king, so Kxg8 refutes it.
	s := mustParse(t, "6Rk/8/8/8/8/8/8/K7 b - - 0 1")

	t.Log("Not checkmate position (king can capture the rook):")
	t.Log("\n" + s.Describe())
	t.Log("IsKingInCheck(Black):", s.IsKingInCheck(Black))

	if s.IsCheckmate(Black) {
		t.Error("Expected NOT checkmate but got true")
	}
	capture := mustMove(t, s, "h8g8")
	if !capture.IsLegal(s) {
		t.Error("Kxg8 should be the refutation")
	}
}

func TestPawnMatesOnTheBackRank(t *testing.T) {
	// Only the g2 pawn checks h1, from beside its promotion square.
	// The bishop seals the g1 escape while the black king guards both
	// h2 and the pawn.
	s := mustParse(t, "8/8/8/8/3b4/6k1/6p1/7K w - - 0 1")

	t.Log("Pawn mate position:")
	t.Log("\n" + s.Describe())
	t.Log("IsKingInCheck(White):", s.IsKingInCheck(White))

	if !s.IsKingInCheck(White) {
		t.Fatal("g2 pawn should check the king on h1")
	}
	if !s.IsCheckmate(White) {
		t.Error("pawn mate on the back rank not recognized")
	}
	if s.HasLegalMoves() {
		t.Error("White has moves in a mate position")
	}
}

func TestFoolsMate(t *testing.T) {
	// 1.f3 e5 2.g4 Qh4# played out from the start.
	s := DefaultState()
	for _, text := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		m := mustMove(t, s, text)
		if !m.IsLegal(s) {
			t.Fatalf("%s should be legal", text)
		}
		s = s.MakeMove(m)
	}

	t.Log("After 1.f3 e5 2.g4 Qh4#:")
	t.Log("\n" + s.Describe())

	if !s.IsKingInCheck(White) {
		t.Fatal("White king should be in check")
	}
	if !s.IsCheckmate(White) {
		t.Error("Fool's mate not recognized")
	}
	if s.HasLegalMoves() {
		t.Error("White has moves in a mate position")
	}
}

func TestScholarsMate(t *testing.T) {
	// The classic Qxf7# final position, Black to move.
	s := mustParse(t, "r1bqkb1r/pppp1Qpp/2n2n2/4p3/2B1P3/8/PPPP1PPP/RNB1K1NR b KQkq - 0 4")

	t.Log("Scholar's mate position:")
	t.Log("\n" + s.Describe())

	if !s.IsCheckmate(Black) {
		t.Error("Scholar's mate not recognized")
	}
	// The queen is guarded by the bishop on c4, so Kxf7 fails.
	kx := mustMove(t, s, "e8f7")
	if kx.IsLegal(s) {
		t.Error("Kxf7 should be illegal, the bishop guards f7")
	}
}

func TestStalemate(t *testing.T) {
	// Black king on h8 has no squares but is not in check.
	s := mustParse(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")

	t.Log("Stalemate position:")
	t.Log("\n" + s.Describe())
	t.Log("IsKingInCheck(Black):", s.IsKingInCheck(Black))
	t.Log("HasLegalMoves:", s.HasLegalMoves())

	if s.IsKingInCheck(Black) {
		t.Error("Stalemated king reported in check")
	}
	if !s.IsStalemate(Black) {
		t.Error("Expected stalemate but got false")
	}
	if s.IsCheckmate(Black) {
		t.Error("Stalemate misreported as checkmate")
	}
}

func TestCheckIsNotMate(t *testing.T) {
	// A bare check with plenty of answers.
	s := mustParse(t, "4k3/8/8/8/8/8/3r4/4K3 w - - 0 1")

	if s.IsKingInCheck(White) {
		t.Error("d2 rook does not check e1")
	}

	inCheck := mustParse(t, "4k3/8/8/8/8/8/8/3rK3 w - - 0 1")
	if !inCheck.IsKingInCheck(White) {
		t.Fatal("adjacent rook should give check")
	}
	if inCheck.IsCheckmate(White) {
		t.Error("king can escape or capture, not mate")
	}
	if !inCheck.HasLegalMoves() {
		t.Error("checked side should still have moves")
	}
}

func TestMateVerdictsFromEitherPerspective(t *testing.T) {
	// The mate verdict must not depend on whose turn the state says it
	// is: delivering mate flips the side to move to the loser, but the
	// winner's own state can be asked too.
	s := mustParse(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	if s.IsCheckmate(Black) {
		t.Fatal("no mate before the rook lifts")
	}

	mate := s.MakeMove(mustMove(t, s, "a1a8"))
	t.Log("After Ra8#:")
	t.Log("\n" + mate.Describe())

	if !mate.IsCheckmate(Black) {
		t.Error("back-rank mate not recognized with Black to move")
	}
	if mate.IsCheckmate(White) {
		t.Error("the mating side reported mated")
	}
	if mate.IsStalemate(Black) {
		t.Error("mate misreported as stalemate")
	}
}
