package board

import "testing"

func TestPieceTypeProperties(t *testing.T) {
	sliding := map[PieceType]bool{
		Pawn: false, Knight: false, Bishop: true, Rook: true, Queen: true, King: false,
	}
	for pt, want := range sliding {
		if pt.IsSliding() != want {
			t.Errorf("%v.IsSliding() = %v, want %v", pt, !want, want)
		}
	}

	if Pawn.Char(White) != 'P' || Pawn.Char(Black) != 'p' {
		t.Error("pawn FEN characters wrong")
	}
	if Queen.Char(White) != 'Q' || Knight.Char(Black) != 'n' {
		t.Error("FEN characters wrong")
	}
	for _, ch := range []byte{'p', 'N', 'b', 'R', 'q', 'K'} {
		pt := TypeFromChar(ch)
		if pt == NoType {
			t.Errorf("TypeFromChar(%c) = NoType", ch)
		}
	}
	if TypeFromChar('x') != NoType {
		t.Error("TypeFromChar('x') should be NoType")
	}

	if King.Glyph(White) != '♔' || King.Glyph(Black) != '♚' {
		t.Error("king glyphs wrong")
	}
	if Pawn.Glyph(White) != '♙' || Pawn.Glyph(Black) != '♟' {
		t.Error("pawn glyphs wrong")
	}
}

func TestColorOther(t *testing.T) {
	if White.Other() != Black || Black.Other() != White {
		t.Error("Other() does not flip")
	}
	if White.String() != "White" || Black.String() != "Black" {
		t.Error("color names wrong")
	}
}

func TestNewPieceOffsets(t *testing.T) {
	counts := map[PieceType]int{
		Pawn: 4, Knight: 8, Bishop: 4, Rook: 4, Queen: 8, King: 8,
	}
	for pt, want := range counts {
		p := NewPiece(pt, White, Pt(1, 1))
		if len(p.Offsets()) != want {
			t.Errorf("%v has %d offsets, want %d", pt, len(p.Offsets()), want)
		}
		if p.Sliding != pt.IsSliding() {
			t.Errorf("%v sliding flag = %v", pt, p.Sliding)
		}
		if !p.Alive || p.Moved {
			t.Errorf("%v should start alive and unmoved", pt)
		}
	}

	// Pawn offsets lead with the forward direction of their color.
	wp := NewPiece(Pawn, White, Pt(4, 2))
	if wp.Offsets()[0] != Pt(0, 1) || wp.Offsets()[1] != Pt(0, 2) {
		t.Errorf("white pawn offsets = %v", wp.Offsets())
	}
	bp := NewPiece(Pawn, Black, Pt(4, 7))
	if bp.Offsets()[0] != Pt(0, -1) || bp.Offsets()[1] != Pt(0, -2) {
		t.Errorf("black pawn offsets = %v", bp.Offsets())
	}
}

func TestMarkMoved(t *testing.T) {
	p := NewPiece(Pawn, White, Pt(4, 2))
	p.markMoved()
	if !p.Moved {
		t.Fatal("markMoved did not set Moved")
	}
	if len(p.Offsets()) != 3 {
		t.Errorf("moved pawn has %d offsets, want 3", len(p.Offsets()))
	}

	// Marking again must not touch the rebuilt table.
	before := p.Offsets()
	p.markMoved()
	if len(p.Offsets()) != 3 || &p.Offsets()[0] != &before[0] {
		t.Error("second markMoved rebuilt the offsets")
	}

	// Non-pawns keep their shared table.
	n := NewPiece(Knight, Black, Pt(2, 8))
	n.markMoved()
	if len(n.Offsets()) != 8 {
		t.Error("knight offsets changed on markMoved")
	}
}

func TestCaptureTombstones(t *testing.T) {
	p := NewPiece(Rook, Black, Pt(8, 8))
	p.capture()
	if p.Alive {
		t.Error("captured piece still alive")
	}
	if p.Pos != Pt(8, 8) {
		t.Error("capture moved the piece")
	}
}

func TestBecome(t *testing.T) {
	p := NewPiece(Pawn, White, Pt(1, 8))
	p.markMoved()
	p.become(Queen)
	if p.Type != Queen || !p.Sliding {
		t.Errorf("promoted piece is %v, sliding=%v", p.Type, p.Sliding)
	}
	if len(p.Offsets()) != 8 {
		t.Errorf("promoted queen has %d offsets", len(p.Offsets()))
	}
	if p.Color != White || !p.Moved {
		t.Error("promotion changed color or moved flag")
	}
}
