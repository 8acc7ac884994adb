package diagram

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tidegear/planechess/internal/board"
)

func render(t *testing.T, s *board.State, opts Options) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Write(&buf, s, opts); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	return buf.String()
}

func TestWriteStandardBoard(t *testing.T) {
	out := render(t, board.DefaultState(), Options{Coordinates: true})

	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatal("output is not an SVG document")
	}
	// 8 squares of 45px plus two 22px label margins.
	if !strings.Contains(out, `width="404"`) {
		t.Error("unexpected canvas width")
	}
	if !strings.Contains(out, string(board.King.Glyph(board.White))) {
		t.Error("white king glyph missing")
	}
	if !strings.Contains(out, ">a</text>") || !strings.Contains(out, ">8</text>") {
		t.Error("coordinate labels missing")
	}
	if strings.Count(out, "<rect") != 64 {
		t.Errorf("expected 64 squares, found %d rects", strings.Count(out, "<rect"))
	}
}

func TestWriteWithoutCoordinates(t *testing.T) {
	out := render(t, board.DefaultState(), Options{})
	if !strings.Contains(out, `width="360"`) {
		t.Error("expected a marginless 360px canvas")
	}
	if strings.Contains(out, ">a</text>") {
		t.Error("labels rendered despite Coordinates being off")
	}
}

func TestWriteHighlightsLastMove(t *testing.T) {
	s := board.DefaultState()
	m, err := board.ParseMove("e2e4", s)
	if err != nil {
		t.Fatalf("Error parsing move: %v", err)
	}
	if !m.IsLegal(s) {
		t.Fatal("e2e4 should be legal")
	}
	s = s.MakeMove(m)

	out := render(t, s, Options{LastMove: true})
	if got := strings.Count(out, "fill:rgb(205,210,106)"); got != 2 {
		t.Errorf("expected 2 highlighted squares, found %d", got)
	}
	// The doubled pawn advance leaves the e4 pawn capturable in
	// passing, which the diagram marks with a dashed ring.
	if !strings.Contains(out, "stroke-dasharray") {
		t.Error("en passant ring missing")
	}

	plain := render(t, s, Options{})
	if strings.Contains(plain, "fill:rgb(205,210,106)") {
		t.Error("highlight rendered despite LastMove being off")
	}
}

func TestWriteBoundlessWindow(t *testing.T) {
	pieces, err := board.NewPieceList([]board.Piece{
		board.NewPiece(board.King, board.White, board.Pt(-3, 5)),
		board.NewPiece(board.King, board.Black, board.Pt(3, 9)),
	})
	if err != nil {
		t.Fatalf("Failed to build piece list: %v", err)
	}
	s := board.NewState(pieces, 0, board.White)

	out := render(t, s, Options{Coordinates: true})
	// 7 files and 5 ranks of alive pieces, 45px each plus margins.
	if !strings.Contains(out, `width="359"`) || !strings.Contains(out, `height="269"`) {
		t.Error("window does not match the alive pieces' bounding box")
	}
	if !strings.Contains(out, ">-3</text>") {
		t.Error("files beyond the classical window should be labeled numerically")
	}
}

func TestWriteRefusesHugeWindow(t *testing.T) {
	pieces, err := board.NewPieceList([]board.Piece{
		board.NewPiece(board.King, board.White, board.Pt(0, 0)),
		board.NewPiece(board.King, board.Black, board.Pt(100000, 0)),
	})
	if err != nil {
		t.Fatalf("Failed to build piece list: %v", err)
	}
	s := board.NewState(pieces, 0, board.White)

	var buf bytes.Buffer
	if err := Write(&buf, s, Options{}); err == nil {
		t.Error("expected an error for a 100001-file window")
	}
}
