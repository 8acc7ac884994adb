package board

import "fmt"

// Move is a transition of one piece between two squares. The piece is
// identified by its PieceList handle, so a Move built against one State
// can be validated there and applied to produce the successor. A Move
// doubles as the record a State keeps of how it was reached.
//
// Legality is evaluated at most once per Move: the verdict is cached on
// the first IsLegal call and never changes, and validation never mutates
// the State it inspects.
type Move struct {
	From, To  Point
	Promotion PieceType // NoType unless the move promotes
	Castling  bool
	EnPassant bool

	mover    int
	captured int
	verdict  verdict
}

type verdict uint8

const (
	verdictUnknown verdict = iota
	verdictLegal
	verdictIllegal
)

// ruleSet relaxes parts of the legality predicate for the check probes.
// Attack probing evaluates an enemy move onto a king's square without
// the self-check rule (a pinned piece still gives check) and without
// castling, which is what bounds the legality/check recursion. The
// crossed-square probes inside castling drop castling only, so they
// still run the self-check simulation they exist for.
type ruleSet uint8

const (
	fullRules   ruleSet = 0
	noCastling  ruleSet = 1 << 0
	noSelfCheck ruleSet = 1 << 1
	probeRules  ruleSet = noCastling | noSelfCheck
)

// NewMove creates a plain move of the piece in the given PieceList slot.
func NewMove(from, to Point, mover int) Move {
	return Move{From: from, To: to, mover: mover, captured: -1}
}

// WithPromotion returns the move annotated as promoting to pt.
func (m Move) WithPromotion(pt PieceType) Move {
	m.Promotion = pt
	m.verdict = verdictUnknown
	return m
}

// AsCastling returns the move annotated as castling.
func (m Move) AsCastling() Move {
	m.Castling = true
	m.verdict = verdictUnknown
	return m
}

// AsEnPassant returns the move annotated as an en passant capture.
func (m Move) AsEnPassant() Move {
	m.EnPassant = true
	m.verdict = verdictUnknown
	return m
}

// Mover returns the handle of the moving piece.
func (m *Move) Mover() int { return m.mover }

// Captured returns the handle of the captured piece, if the move
// captures one. For en passant candidates the victim is resolved when
// the move is applied.
func (m *Move) Captured() (int, bool) { return m.captured, m.captured >= 0 }

// IsCapture reports whether the move takes a piece. The answer is
// meaningful once the move has been validated or applied.
func (m *Move) IsCapture() bool { return m.captured >= 0 || m.EnPassant }

// String returns the move in coordinate form (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != NoType {
		s += string(m.Promotion.Char(Black))
	}
	return s
}

// IsLegal reports whether the move is playable in s. The first call does
// the work; the cached verdict answers every later call.
func (m *Move) IsLegal(s *State) bool {
	if m.verdict == verdictUnknown {
		if m.legal(s, fullRules) {
			m.verdict = verdictLegal
		} else {
			m.verdict = verdictIllegal
		}
	}
	return m.verdict == verdictLegal
}

// legal is the legality predicate. The rules to apply are:
//
//  1. the move must actually go somewhere, by a piece that exists, is
//     alive, stands on From and belongs to the side to move
//  2. the destination must lie inside the state's extent, if it has one
//  3. an enemy on the destination becomes the resolved capture
//  4. the displacement must fit the piece type, with clear path for
//     sliding pieces
//  5. castling and en passant annotations must hold up
//  6. a friendly piece on the destination is a wall (castling aside,
//     where the destination is empty anyway)
//  7. a pawn reaching its far rank must promote, and only to knight,
//     bishop, rook or queen; nothing else may carry a promotion
//  8. the mover's own king must not be attacked in the resulting state
func (m *Move) legal(s *State, rules ruleSet) bool {
	if m.From == m.To {
		return false
	}
	mover, ok := m.moverIn(s)
	if !ok {
		return false
	}
	if b, bounded := s.Extent(); bounded && !b.Contains(m.To) {
		return false
	}

	m.captured = -1
	friendly := false
	if h, occupied := s.pieces.HandleAt(m.To); occupied {
		if s.pieces.Get(h).Color == mover.Color {
			friendly = true
		} else {
			m.captured = h
		}
	}

	if !m.shapeLegal(s, mover) {
		return false
	}
	if m.Castling {
		if rules&noCastling != 0 {
			return false
		}
		if !m.castlingLegal(s, mover) {
			return false
		}
	}
	if m.EnPassant && !m.enPassantLegal(s, mover) {
		return false
	}
	if friendly && !m.Castling {
		return false
	}
	if !m.promotionLegal(s, mover) {
		return false
	}
	if rules&noSelfCheck == 0 {
		if s.apply(*m).IsKingInCheck(mover.Color) {
			return false
		}
	}
	return true
}

// moverIn resolves the moving piece, rejecting out-of-range handles,
// tombstones, pieces that are not where the move claims and pieces of
// the side not to move.
func (m *Move) moverIn(s *State) (*Piece, bool) {
	if m.mover < 0 || m.mover >= s.pieces.Len() {
		return nil, false
	}
	p := s.pieces.at(m.mover)
	if !p.Alive || p.Pos != m.From || p.Color != s.toMove {
		return nil, false
	}
	return p, true
}

// shapeLegal checks the displacement against the mover's type. Sliding
// shapes also require a clear path; occupancy of the destination itself
// is someone else's rule.
func (m *Move) shapeLegal(s *State, mover *Piece) bool {
	d := m.To.Sub(m.From)
	switch mover.Type {
	case Pawn:
		return m.pawnLegal(s, mover, d)
	case Knight:
		return (abs64(d.X) == 1 && abs64(d.Y) == 2) || (abs64(d.X) == 2 && abs64(d.Y) == 1)
	case Bishop:
		return diagonal(d) && s.pathClear(m.From, m.To)
	case Rook:
		return straight(d) && s.pathClear(m.From, m.To)
	case Queen:
		return (diagonal(d) || straight(d)) && s.pathClear(m.From, m.To)
	case King:
		if m.Castling {
			return abs64(d.X) == 2 && d.Y == 0
		}
		return abs64(d.X) <= 1 && abs64(d.Y) <= 1
	}
	return false
}

func diagonal(d Point) bool { return d.X != 0 && abs64(d.X) == abs64(d.Y) }

func straight(d Point) bool { return (d.X == 0) != (d.Y == 0) }

// pawnLegal checks pawn displacements: a single advance onto an empty
// square, a double advance by an unmoved pawn across two empty squares,
// or a single diagonal step forward that captures. The diagonal requires
// an enemy on the destination unless the move is an en passant
// candidate, whose victim sits beside the destination instead.
func (m *Move) pawnLegal(s *State, mover *Piece, d Point) bool {
	dir := mover.Color.forward()
	switch {
	case d.X == 0 && d.Y == dir:
		return !s.pieces.Occupied(m.To)
	case d.X == 0 && d.Y == 2*dir:
		if mover.Moved {
			return false
		}
		return !s.pieces.Occupied(Pt(m.From.X, m.From.Y+dir)) && !s.pieces.Occupied(m.To)
	case abs64(d.X) == 1 && d.Y == dir:
		if m.EnPassant {
			return true
		}
		return m.captured >= 0
	}
	return false
}

// castlingLegal validates a castling candidate. The mover is a king
// moving exactly two files along its rank. The matching rook is the
// nearest alive piece outward from the king on that side; it must be an
// unmoved friendly rook at least three files away, which leaves the
// span between them empty and wide enough for both destination squares.
// The king must not currently be in check and may not cross an attacked
// square; the crossed square is probed as a one-step king move so that
// attacks through the king's own vacated square are seen.
func (m *Move) castlingLegal(s *State, mover *Piece) bool {
	if mover.Type != King || mover.Moved {
		return false
	}
	dir := sign64(m.To.X - m.From.X)
	rookH, ok := s.pieces.nearestOnRank(mover.Pos, dir)
	if !ok {
		return false
	}
	rook := s.pieces.Get(rookH)
	if rook.Type != Rook || rook.Color != mover.Color || rook.Moved {
		return false
	}
	if dir > 0 && rook.Pos.X < m.From.X+3 {
		return false
	}
	if dir < 0 && rook.Pos.X > m.From.X-3 {
		return false
	}
	if s.IsKingInCheck(mover.Color) {
		return false
	}
	probe := NewMove(m.From, Pt(m.From.X+dir, m.From.Y), m.mover)
	return probe.legal(s, noCastling)
}

// enPassantLegal checks that the destination is the square an enemy pawn
// skipped with a double advance on the immediately preceding ply.
func (m *Move) enPassantLegal(s *State, mover *Piece) bool {
	if mover.Type != Pawn {
		return false
	}
	target, ok := s.EnPassantSquare()
	if !ok || m.To != target {
		return false
	}
	return !s.pieces.Occupied(m.To)
}

// promotionLegal enforces that promotion happens exactly when a pawn
// reaches its far rank, and only into knight, bishop, rook or queen.
func (m *Move) promotionLegal(s *State, mover *Piece) bool {
	if m.Promotion != NoType {
		if mover.Type != Pawn || m.To.Y != s.promotionRank(mover.Color) {
			return false
		}
		switch m.Promotion {
		case Knight, Bishop, Rook, Queen:
			return true
		}
		return false
	}
	if mover.Type == Pawn && m.To.Y == s.promotionRank(mover.Color) {
		return false
	}
	return true
}

// ParseMove parses a move in coordinate form against the given state:
// two classical squares plus an optional promotion letter, e.g. "e2e4"
// or "e7e8q". Castling and en passant are inferred from the position the
// way a human writing coordinate moves expects.
func ParseMove(text string, s *State) (Move, error) {
	if len(text) != 4 && len(text) != 5 {
		return Move{}, fmt.Errorf("invalid move %q", text)
	}
	from, err := ParsePoint(text[0:2])
	if err != nil {
		return Move{}, err
	}
	to, err := ParsePoint(text[2:4])
	if err != nil {
		return Move{}, err
	}

	h, ok := s.pieces.HandleAt(from)
	if !ok {
		return Move{}, fmt.Errorf("no piece at %s", from)
	}
	m := NewMove(from, to, h)

	if len(text) == 5 {
		promo := TypeFromChar(text[4])
		switch promo {
		case Knight, Bishop, Rook, Queen:
			return m.WithPromotion(promo), nil
		}
		return Move{}, fmt.Errorf("invalid promotion piece %q", text[4])
	}

	p := s.pieces.Get(h)
	if p.Type == King && abs64(to.X-from.X) == 2 && to.Y == from.Y {
		return m.AsCastling(), nil
	}
	if p.Type == Pawn {
		if ep, ok := s.EnPassantSquare(); ok && to == ep && to.X != from.X {
			return m.AsEnPassant(), nil
		}
		if to.Y == s.promotionRank(p.Color) {
			return m.WithPromotion(Queen), nil
		}
	}
	return m, nil
}
