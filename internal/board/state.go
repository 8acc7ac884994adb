package board

import "fmt"

// State is one immutable position in a game. Applying a move never
// modifies a state: MakeMove builds a successor that shares the
// predecessor by pointer, so the chain of Previous links is the game
// history and any number of futures can branch from one position.
//
// A state may carry an extent confining play to a rectangle, the way
// ParseFEN confines the classical game to 8x8. Without an extent the
// board is the whole plane and enumeration windows keep the lazy
// generators finite.
type State struct {
	pieces    *PieceList
	moveCount int
	toMove    Color
	bounds    *Bounds
	prev      *State
	lastMove  *Move
}

// NewState builds a root state over the given pieces with no extent.
func NewState(pieces *PieceList, moveCount int, toMove Color) *State {
	return &State{pieces: pieces, moveCount: moveCount, toMove: toMove}
}

// DefaultState returns the classical starting position on an 8x8 extent.
func DefaultState() *State {
	s, err := ParseFEN(StartFEN)
	if err != nil {
		panic("board: bad start position: " + err.Error())
	}
	return s
}

// WithExtent derives a sibling of s confined to b; nil removes the
// extent. The piece list and history are shared with the receiver.
func (s *State) WithExtent(b *Bounds) *State {
	v := *s
	if b != nil {
		bb := *b
		v.bounds = &bb
	} else {
		v.bounds = nil
	}
	return &v
}

// ToMove returns the color whose turn it is.
func (s *State) ToMove() Color { return s.toMove }

// MoveCount returns the number of plies played to reach this state.
func (s *State) MoveCount() int { return s.moveCount }

// Previous returns the predecessor state, nil at a root.
func (s *State) Previous() *State { return s.prev }

// LastMove returns the move that produced this state, nil at a root.
func (s *State) LastMove() *Move { return s.lastMove }

// Extent returns the board extent, if the state has one.
func (s *State) Extent() (Bounds, bool) {
	if s.bounds == nil {
		return Bounds{}, false
	}
	return *s.bounds, true
}

// Pieces exposes the state's piece list for iteration by handle.
func (s *State) Pieces() *PieceList { return s.pieces }

// PieceAt returns the alive piece standing on p.
func (s *State) PieceAt(p Point) (Piece, bool) { return s.pieces.PieceAt(p) }

// HandleAt returns the handle of the alive piece standing on p.
func (s *State) HandleAt(p Point) (int, bool) { return s.pieces.HandleAt(p) }

// MoveHistory returns the moves that led to this state, oldest first.
func (s *State) MoveHistory() []Move {
	var n int
	for st := s; st.lastMove != nil; st = st.prev {
		n++
	}
	out := make([]Move, n)
	for st := s; st.lastMove != nil; st = st.prev {
		n--
		out[n] = *st.lastMove
	}
	return out
}

// MakeMove applies the move and returns the successor state. The
// receiver is untouched and stays reachable as the successor's
// predecessor. The move must have been built against this state's piece
// list: if its handle does not match an alive piece of the side to move
// standing on m.From, MakeMove panics. Legality is the caller's
// assertion; applying an unvalidated move simply yields the position it
// describes.
func (s *State) MakeMove(m Move) *State {
	if _, ok := m.moverIn(s); !ok {
		panic(fmt.Sprintf("board: MakeMove %v: move does not belong to this state", m))
	}
	return s.apply(m)
}

// apply performs the transition. The caller has resolved the mover; the
// rook of a castling move and the victim of an en passant capture are
// re-derived here against the cloned list.
func (s *State) apply(m Move) *State {
	pieces := s.pieces.clone()
	mover := pieces.at(m.mover)
	from := mover.Pos
	wasPawn := mover.Type == Pawn
	dir := sign64(m.To.X - from.X)

	rookH := -1
	if m.Castling {
		if h, ok := pieces.nearestOnRank(from, dir); ok {
			rookH = h
		}
	}
	if h, ok := pieces.HandleAt(m.To); ok && pieces.Get(h).Color != mover.Color {
		pieces.at(h).capture()
		m.captured = h
	}
	if m.EnPassant {
		if h, ok := pieces.HandleAt(Pt(m.To.X, from.Y)); ok && pieces.Get(h).Color != mover.Color {
			pieces.at(h).capture()
			m.captured = h
		}
	}

	mover.Pos = m.To
	mover.markMoved()
	if m.Promotion != NoType {
		mover.become(m.Promotion)
	}
	if rookH >= 0 {
		rook := pieces.at(rookH)
		rook.Pos = Pt(from.X+dir, from.Y)
		rook.markMoved()
	}

	pieces.clearEnPassantTargets()
	if wasPawn && abs64(m.To.Y-from.Y) == 2 {
		mover.EnPassantTarget = true
	}

	return &State{
		pieces:    pieces,
		moveCount: s.moveCount + 1,
		toMove:    s.toMove.Other(),
		bounds:    s.bounds,
		prev:      s,
		lastMove:  &m,
	}
}

// LegalMoves enumerates every legal move for the side to move, in a
// deterministic order: pieces in handle order, each piece's candidates
// in its generator's emission order, promotions expanded
// queen-rook-bishop-knight in place, and a king's castling candidates
// appended kingside first. On a state without an extent, destinations
// are windowed to the pieces' bounding box grown by two squares; any
// square beyond that only continues a ray already represented inside
// the window (see LegalMovesWithin for explicit windows).
func (s *State) LegalMoves() []Move {
	return s.legalMovesIn(s.searchWindow())
}

// LegalMovesWithin enumerates the legal moves whose destinations lie
// inside the given window. The state's own extent still applies on top.
func (s *State) LegalMovesWithin(b Bounds) []Move {
	return s.legalMovesIn(&b)
}

// searchWindow is the default enumeration window: the extent when the
// state has one, otherwise the alive pieces' bounding box grown by two
// squares. Every reachable-square class that could decide the game
// (king steps, captures, checking and blocking squares, the first step
// of any open ray) lies inside that box, so move existence inside the
// window is move existence on the whole plane.
func (s *State) searchWindow() *Bounds {
	if s.bounds != nil {
		return s.bounds
	}
	if b, ok := s.pieces.AliveBounds(); ok {
		g := b.Grow(2)
		return &g
	}
	return nil
}

func (s *State) legalMovesIn(window *Bounds) []Move {
	var moves []Move
	lo, hi := s.pieces.ColorRange(s.toMove)
	for h := lo; h < hi; h++ {
		p := s.pieces.Get(h)
		if !p.Alive {
			continue
		}
		moves = s.appendPieceMoves(moves, h, &p, window)
	}
	return moves
}

// appendPieceMoves drives one piece's generator, pruning rays as they
// leave the window or hit an occupant, and validates each candidate.
// Pawn candidates that reach the far rank are expanded into the four
// promotions; a diagonal onto the en passant square is annotated as the
// capture it is. Castling candidates are appended after the king's
// stepped moves.
func (s *State) appendPieceMoves(moves []Move, h int, p *Piece, window *Bounds) []Move {
	epSquare, hasEP := s.EnPassantSquare()
	g := NewGenerator(p)
	for {
		to, ok := g.Next()
		if !ok {
			break
		}
		if window != nil && !window.Contains(to) {
			g.CloseDirection(g.Direction())
			continue
		}
		if s.pieces.Occupied(to) {
			g.CloseDirection(g.Direction())
		}
		if p.Type == Pawn && to.Y == s.promotionRank(p.Color) {
			for _, promo := range promotionTargets {
				m := NewMove(p.Pos, to, h).WithPromotion(promo)
				if m.IsLegal(s) {
					moves = append(moves, m)
				}
			}
			continue
		}
		m := NewMove(p.Pos, to, h)
		if hasEP && p.Type == Pawn && to == epSquare && to.X != p.Pos.X {
			m = m.AsEnPassant()
		}
		if m.IsLegal(s) {
			moves = append(moves, m)
		}
	}
	if p.Type == King {
		for _, d := range [2]int64{1, -1} {
			to, ok := p.Pos.CheckedAdd(Pt(2*d, 0))
			if !ok {
				continue
			}
			if window != nil && !window.Contains(to) {
				continue
			}
			m := NewMove(p.Pos, to, h).AsCastling()
			if m.IsLegal(s) {
				moves = append(moves, m)
			}
		}
	}
	return moves
}

// HasLegalMoves reports whether the side to move has any legal move. It
// walks the same candidates as LegalMoves but stops at the first hit,
// and collapses promotion candidates to one probe since legality does
// not depend on the promoted shape.
func (s *State) HasLegalMoves() bool {
	window := s.searchWindow()
	epSquare, hasEP := s.EnPassantSquare()
	lo, hi := s.pieces.ColorRange(s.toMove)
	for h := lo; h < hi; h++ {
		p := s.pieces.Get(h)
		if !p.Alive {
			continue
		}
		g := NewGenerator(&p)
		for {
			to, ok := g.Next()
			if !ok {
				break
			}
			if window != nil && !window.Contains(to) {
				g.CloseDirection(g.Direction())
				continue
			}
			if s.pieces.Occupied(to) {
				g.CloseDirection(g.Direction())
			}
			m := NewMove(p.Pos, to, h)
			if p.Type == Pawn {
				if to.Y == s.promotionRank(p.Color) {
					m = m.WithPromotion(Queen)
				} else if hasEP && to == epSquare && to.X != p.Pos.X {
					m = m.AsEnPassant()
				}
			}
			if m.IsLegal(s) {
				return true
			}
		}
		if p.Type == King {
			for _, d := range [2]int64{1, -1} {
				to, ok := p.Pos.CheckedAdd(Pt(2*d, 0))
				if !ok {
					continue
				}
				m := NewMove(p.Pos, to, h).AsCastling()
				if m.IsLegal(s) {
					return true
				}
			}
		}
	}
	return false
}

// IsSquareAttacked reports whether any alive piece of the given color
// has a movement-legal way to land on p. Pins are ignored: a piece
// shielding its own king still attacks.
func (s *State) IsSquareAttacked(p Point, by Color) bool {
	view := s.sideView(by)
	lo, hi := s.pieces.ColorRange(by)
	for h := lo; h < hi; h++ {
		att := s.pieces.Get(h)
		if !att.Alive {
			continue
		}
		m := NewMove(att.Pos, p, h)
		// A pawn landing on its far rank must promote for the probe
		// to hold up; the promoted shape does not matter here.
		if att.Type == Pawn && p.Y == s.promotionRank(by) {
			m = m.WithPromotion(Queen)
		}
		if m.legal(view, probeRules) {
			return true
		}
	}
	return false
}

// IsKingInCheck reports whether the given color's king is attacked.
func (s *State) IsKingInCheck(c Color) bool {
	return s.IsSquareAttacked(s.pieces.King(c).Pos, c.Other())
}

// IsCheckmate reports whether the given color is checkmated: its king
// is attacked and, with that color to move, no legal move exists.
func (s *State) IsCheckmate(c Color) bool {
	if !s.IsKingInCheck(c) {
		return false
	}
	return !s.sideView(c).HasLegalMoves()
}

// IsStalemate reports whether the given color is stalemated: its king
// is safe but, with that color to move, no legal move exists.
func (s *State) IsStalemate(c Color) bool {
	if s.IsKingInCheck(c) {
		return false
	}
	return !s.sideView(c).HasLegalMoves()
}

// sideView returns s as seen with c to move. The view shares the piece
// list and is only ever read, never published.
func (s *State) sideView(c Color) *State {
	if s.toMove == c {
		return s
	}
	v := *s
	v.toMove = c
	return &v
}

// EnPassantSquare returns the square a pawn skipped by double-advancing
// on the immediately preceding ply, which is where an en passant
// capture would land.
func (s *State) EnPassantSquare() (Point, bool) {
	lm := s.lastMove
	if lm == nil {
		return Point{}, false
	}
	if lm.mover < 0 || lm.mover >= s.pieces.Len() {
		return Point{}, false
	}
	p := s.pieces.Get(lm.mover)
	if p.Type != Pawn || p.Pos != lm.To || abs64(lm.To.Y-lm.From.Y) != 2 {
		return Point{}, false
	}
	return Pt(lm.To.X, lm.From.Y+(lm.To.Y-lm.From.Y)/2), true
}

// promotionRank is the far rank for the color: the extent edge its
// pawns advance toward, or the classical 8/1 when the state has no
// extent.
func (s *State) promotionRank(c Color) int64 {
	if s.bounds != nil {
		if c == White {
			return s.bounds.Max.Y
		}
		return s.bounds.Min.Y
	}
	if c == White {
		return 8
	}
	return 1
}

// pathClear reports whether every square strictly between from and to is
// empty. The two points must share a rank, file or diagonal.
func (s *State) pathClear(from, to Point) bool {
	step := Pt(sign64(to.X-from.X), sign64(to.Y-from.Y))
	for p := from.Add(step); p != to; p = p.Add(step) {
		if s.pieces.Occupied(p) {
			return false
		}
	}
	return true
}
