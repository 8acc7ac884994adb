package board

import "testing"

func twoKings() []Piece {
	return []Piece{
		NewPiece(King, White, Pt(5, 1)),
		NewPiece(King, Black, Pt(5, 8)),
	}
}

func TestPieceListPartition(t *testing.T) {
	pieces := []Piece{
		NewPiece(King, Black, Pt(5, 8)),
		NewPiece(Pawn, White, Pt(1, 2)),
		NewPiece(Rook, Black, Pt(8, 8)),
		NewPiece(King, White, Pt(5, 1)),
		NewPiece(Queen, White, Pt(4, 1)),
	}
	pl, err := NewPieceList(pieces)
	if err != nil {
		t.Fatal(err)
	}

	lo, hi := pl.ColorRange(White)
	if lo != 0 || hi != 3 {
		t.Errorf("white range = [%d,%d), want [0,3)", lo, hi)
	}
	lo, hi = pl.ColorRange(Black)
	if lo != 3 || hi != 5 {
		t.Errorf("black range = [%d,%d), want [3,5)", lo, hi)
	}
	for h := 0; h < pl.Len(); h++ {
		p := pl.Get(h)
		if h < 3 && p.Color != White {
			t.Errorf("handle %d is %v, want White", h, p.Color)
		}
		if h >= 3 && p.Color != Black {
			t.Errorf("handle %d is %v, want Black", h, p.Color)
		}
	}

	// Construction order survives within each color.
	if pl.Get(0).Type != Pawn || pl.Get(1).Type != King || pl.Get(2).Type != Queen {
		t.Error("white construction order not preserved")
	}

	if pl.King(White).Pos != Pt(5, 1) || pl.King(Black).Pos != Pt(5, 8) {
		t.Error("king lookup wrong")
	}
	if pl.Get(pl.KingHandle(Black)).Type != King {
		t.Error("KingHandle does not point at a king")
	}
}

func TestPieceListKingValidation(t *testing.T) {
	if _, err := NewPieceList([]Piece{NewPiece(King, White, Pt(5, 1))}); err == nil {
		t.Error("missing black king accepted")
	}
	dup := append(twoKings(), NewPiece(King, White, Pt(1, 1)))
	if _, err := NewPieceList(dup); err == nil {
		t.Error("two white kings accepted")
	}
	if _, err := NewPieceList(twoKings()); err != nil {
		t.Errorf("bare kings rejected: %v", err)
	}
}

func TestHandleAtSkipsTombstones(t *testing.T) {
	pieces := append(twoKings(), NewPiece(Pawn, White, Pt(4, 4)))
	pl, err := NewPieceList(pieces)
	if err != nil {
		t.Fatal(err)
	}
	h, ok := pl.HandleAt(Pt(4, 4))
	if !ok {
		t.Fatal("pawn not found")
	}

	pl.at(h).capture()
	if _, ok := pl.HandleAt(Pt(4, 4)); ok {
		t.Error("tombstone still found by HandleAt")
	}
	if pl.Occupied(Pt(4, 4)) {
		t.Error("tombstone square reads occupied")
	}
	if pl.Len() != 3 {
		t.Error("capture changed the list length")
	}
	if pl.Get(h).Alive {
		t.Error("handle no longer reaches the tombstone")
	}

	// A new occupant shadows nothing: the tombstone stays addressable
	// by handle while the square reports the alive piece.
	pl.at(pl.KingHandle(White)).Pos = Pt(4, 4)
	got, ok := pl.PieceAt(Pt(4, 4))
	if !ok || got.Type != King {
		t.Errorf("PieceAt after reoccupation = %v, %v", got, ok)
	}
}

func TestNearestOnRank(t *testing.T) {
	pieces := append(twoKings(),
		NewPiece(Knight, White, Pt(7, 1)),
		NewPiece(Rook, White, Pt(8, 1)),
		NewPiece(Rook, White, Pt(1, 1)),
	)
	pl, err := NewPieceList(pieces)
	if err != nil {
		t.Fatal(err)
	}

	h, ok := pl.nearestOnRank(Pt(5, 1), 1)
	if !ok || pl.Get(h).Type != Knight {
		t.Errorf("nearest east of e1 = %v", pl.Get(h))
	}
	h, ok = pl.nearestOnRank(Pt(5, 1), -1)
	if !ok || pl.Get(h).Pos != Pt(1, 1) {
		t.Error("nearest west of e1 should be the a1 rook")
	}

	// Tombstones are invisible to the scan.
	kh, _ := pl.HandleAt(Pt(7, 1))
	pl.at(kh).capture()
	h, ok = pl.nearestOnRank(Pt(5, 1), 1)
	if !ok || pl.Get(h).Pos != Pt(8, 1) {
		t.Error("nearest east should skip the captured knight")
	}

	if _, ok := pl.nearestOnRank(Pt(5, 8), 1); ok {
		t.Error("found a piece east of the lone black king")
	}
}

func TestAliveBounds(t *testing.T) {
	pieces := []Piece{
		NewPiece(King, White, Pt(-5, 2)),
		NewPiece(King, Black, Pt(3, 9)),
		NewPiece(Pawn, Black, Pt(0, -1)),
	}
	pl, err := NewPieceList(pieces)
	if err != nil {
		t.Fatal(err)
	}
	b, ok := pl.AliveBounds()
	if !ok || b.Min != Pt(-5, -1) || b.Max != Pt(3, 9) {
		t.Errorf("AliveBounds = %+v, %v", b, ok)
	}

	var empty PieceList
	if _, ok := empty.AliveBounds(); ok {
		t.Error("empty list has bounds")
	}
}

func TestCloneIndependence(t *testing.T) {
	pl, err := NewPieceList(append(twoKings(), NewPiece(Pawn, White, Pt(2, 2))))
	if err != nil {
		t.Fatal(err)
	}
	cl := pl.clone()
	h, _ := cl.HandleAt(Pt(2, 2))
	cl.at(h).capture()
	cl.at(cl.KingHandle(White)).Pos = Pt(6, 1)

	if !pl.Get(h).Alive {
		t.Error("capture in the clone reached the original")
	}
	if pl.King(White).Pos != Pt(5, 1) {
		t.Error("move in the clone reached the original")
	}
	if cl.KingHandle(White) != pl.KingHandle(White) {
		t.Error("handles differ between clone and original")
	}
}
