package board

import (
	"fmt"
	"strings"
)

// String renders the board as a grid of Unicode figurines, highest rank
// first, covering the state's extent or, without one, the bounding box
// of the alive pieces. Empty squares are spaces; an empty board renders
// as an empty string.
func (s *State) String() string {
	window, ok := s.renderWindow()
	if !ok {
		return ""
	}
	var sb strings.Builder
	for y := window.Max.Y; y >= window.Min.Y; y-- {
		for x := window.Min.X; x <= window.Max.X; x++ {
			if p, ok := s.PieceAt(Pt(x, y)); ok {
				sb.WriteRune(p.Glyph())
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Describe renders the board the way the command line shows it: dotted
// empty squares, with file and rank labels when the window sits inside
// the classical 8x8 frame and a coordinate caption otherwise.
func (s *State) Describe() string {
	window, ok := s.renderWindow()
	if !ok {
		return "(empty board)\n"
	}
	labeled := window.Min.X >= 1 && window.Max.X <= 8 && window.Min.Y >= 1 && window.Max.Y <= 8

	var sb strings.Builder
	for y := window.Max.Y; y >= window.Min.Y; y-- {
		if labeled {
			fmt.Fprintf(&sb, "%d ", y)
		}
		for x := window.Min.X; x <= window.Max.X; x++ {
			if p, ok := s.PieceAt(Pt(x, y)); ok {
				sb.WriteRune(p.Glyph())
			} else {
				sb.WriteByte('.')
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	if labeled {
		sb.WriteString("  ")
		for x := window.Min.X; x <= window.Max.X; x++ {
			sb.WriteByte(byte('a' + x - 1))
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	} else {
		fmt.Fprintf(&sb, "x %d..%d, y %d..%d\n", window.Min.X, window.Max.X, window.Min.Y, window.Max.Y)
	}
	return sb.String()
}

func (s *State) renderWindow() (Bounds, bool) {
	if s.bounds != nil {
		return *s.bounds, true
	}
	return s.pieces.AliveBounds()
}
