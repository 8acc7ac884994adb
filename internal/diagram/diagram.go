// Package diagram renders board positions as SVG documents.
package diagram

import (
	"fmt"
	"io"
	"strconv"

	svg "github.com/ajstarks/svgo"

	"github.com/tidegear/planechess/internal/board"
)

// Options controls a rendering.
type Options struct {
	SquareSize  int  // square edge in pixels, 45 when zero
	Coordinates bool // file and rank labels in a margin
	LastMove    bool // shade the from/to squares of the producing move
}

const defaultSquareSize = 45

// maxSquares caps the drawable window edge. A boundless game can stray
// far enough that a faithful diagram would be gigabytes of markup.
const maxSquares = 200

const (
	lightStyle    = "fill:rgb(240,217,181)"
	darkStyle     = "fill:rgb(181,136,99)"
	lastMoveStyle = "fill:rgb(205,210,106);fill-opacity:0.7"
	labelStyle    = "font-family:sans-serif;font-size:%dpx;fill:rgb(90,90,90);text-anchor:middle"
	glyphStyle    = "font-size:%dpx;text-anchor:middle"
	epRingStyle   = "fill:none;stroke:rgb(90,90,90);stroke-width:2;stroke-dasharray:4,3"
)

// Write renders the state into w as an SVG image of its extent or, on a
// state without one, of the alive pieces' bounding box. Windows wider or
// taller than 200 squares are refused.
func Write(w io.Writer, s *board.State, opts Options) error {
	window, ok := renderWindow(s)
	if !ok {
		return fmt.Errorf("diagram: nothing to draw")
	}
	files, ok := spanSquares(window.Min.X, window.Max.X)
	if !ok {
		return fmt.Errorf("diagram: window spans too many files")
	}
	ranks, ok := spanSquares(window.Min.Y, window.Max.Y)
	if !ok {
		return fmt.Errorf("diagram: window spans too many ranks")
	}

	size := opts.SquareSize
	if size <= 0 {
		size = defaultSquareSize
	}
	margin := 0
	if opts.Coordinates {
		margin = size / 2
	}

	canvas := svg.New(w)
	canvas.Start(files*size+2*margin, ranks*size+2*margin)

	// px/py map a board square to its top-left pixel corner.
	px := func(x int64) int { return margin + int(x-window.Min.X)*size }
	py := func(y int64) int { return margin + int(window.Max.Y-y)*size }

	for y := window.Max.Y; y >= window.Min.Y; y-- {
		for x := window.Min.X; x <= window.Max.X; x++ {
			// a1 is (1,1): even coordinate sums are the dark squares.
			style := lightStyle
			if (x+y)%2 == 0 {
				style = darkStyle
			}
			canvas.Rect(px(x), py(y), size, size, style)
		}
	}

	if opts.LastMove {
		if lm := s.LastMove(); lm != nil {
			for _, p := range [2]board.Point{lm.From, lm.To} {
				if window.Contains(p) {
					canvas.Rect(px(p.X), py(p.Y), size, size, lastMoveStyle)
				}
			}
		}
	}

	pieces := s.Pieces()
	for h := 0; h < pieces.Len(); h++ {
		p := pieces.Get(h)
		if !p.Alive || !window.Contains(p.Pos) {
			continue
		}
		if p.EnPassantTarget {
			canvas.Circle(px(p.Pos.X)+size/2, py(p.Pos.Y)+size/2, size*2/5, epRingStyle)
		}
		canvas.Text(px(p.Pos.X)+size/2, py(p.Pos.Y)+size*4/5,
			string(p.Glyph()), fmt.Sprintf(glyphStyle, size*4/5))
	}

	if opts.Coordinates {
		labels := fmt.Sprintf(labelStyle, size/3)
		for x := window.Min.X; x <= window.Max.X; x++ {
			canvas.Text(px(x)+size/2, margin+ranks*size+margin*3/4, fileLabel(x), labels)
		}
		for y := window.Min.Y; y <= window.Max.Y; y++ {
			canvas.Text(margin/2, py(y)+size/2+size/8, strconv.FormatInt(y, 10), labels)
		}
	}

	canvas.End()
	return nil
}

// spanSquares returns the inclusive square count of lo..hi, reporting
// false when it exceeds maxSquares (or overflows outright).
func spanSquares(lo, hi int64) (int, bool) {
	d := hi - lo
	if d < 0 || d >= maxSquares {
		return 0, false
	}
	return int(d) + 1, true
}

func renderWindow(s *board.State) (board.Bounds, bool) {
	if b, ok := s.Extent(); ok {
		return b, true
	}
	return s.Pieces().AliveBounds()
}

// fileLabel names a file the way algebraic notation does inside the
// classical window and by number outside it.
func fileLabel(x int64) string {
	if x >= 1 && x <= 8 {
		return string(rune('a' + x - 1))
	}
	return strconv.FormatInt(x, 10)
}
