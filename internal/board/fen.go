package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string into a root State on the classical 8x8
// extent. Files a-h map to X 1-8 and ranks to Y 1-8, so a1 is (1,1) and
// White advances toward +Y. The half-move clock field becomes the
// state's move count; the full-move number is validated and otherwise
// unused. The castling field marks home rooks without a right as moved,
// and the en passant field is turned back into the double advance that
// implies it, so the capture is playable from the parsed state.
func ParseFEN(fen string) (*State, error) {
	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return nil, fmt.Errorf("invalid FEN: need 6 fields, got %d", len(parts))
	}

	placed, err := parsePieces(parts[0])
	if err != nil {
		return nil, err
	}

	var toMove Color
	switch parts[1] {
	case "w":
		toMove = White
	case "b":
		toMove = Black
	default:
		return nil, fmt.Errorf("invalid side to move: %s", parts[1])
	}

	if err := applyCastlingRights(placed, parts[2]); err != nil {
		return nil, err
	}

	moveCount, err := strconv.Atoi(parts[4])
	if err != nil || moveCount < 0 {
		return nil, fmt.Errorf("invalid half-move clock: %s", parts[4])
	}
	if _, err := strconv.Atoi(parts[5]); err != nil {
		return nil, fmt.Errorf("invalid full-move number: %s", parts[5])
	}

	pieces, err := NewPieceList(placed)
	if err != nil {
		return nil, fmt.Errorf("invalid FEN: %v", err)
	}

	bounds := ClassicalBounds()
	s := &State{
		pieces:    pieces,
		moveCount: moveCount,
		toMove:    toMove,
		bounds:    &bounds,
	}
	if err := applyEnPassant(s, parts[3]); err != nil {
		return nil, err
	}
	return s, nil
}

// parsePieces reads the placement field. Pawns found away from their
// home rank are marked moved, which is what removes their double step.
func parsePieces(placement string) ([]Piece, error) {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("invalid piece placement: need 8 ranks, got %d", len(ranks))
	}

	var pieces []Piece
	for i, rankStr := range ranks {
		y := int64(8 - i)
		x := int64(1)
		for _, c := range rankStr {
			if x > 8 {
				return nil, fmt.Errorf("too many squares in rank %d", y)
			}
			if c >= '1' && c <= '8' {
				x += int64(c - '0')
				continue
			}
			pt := TypeFromChar(byte(c))
			if pt == NoType {
				return nil, fmt.Errorf("invalid piece character: %c", c)
			}
			color := Black
			if c >= 'A' && c <= 'Z' {
				color = White
			}
			p := NewPiece(pt, color, Pt(x, y))
			if pt == Pawn && y != pawnHomeRank(color) {
				p.markMoved()
			}
			pieces = append(pieces, p)
			x++
		}
		if x != 9 {
			return nil, fmt.Errorf("invalid number of squares in rank %d: got %d", y, x-1)
		}
	}
	return pieces, nil
}

func pawnHomeRank(c Color) int64 {
	if c == White {
		return 2
	}
	return 7
}

// applyCastlingRights marks the home rooks without a right as moved,
// which is exactly what an absent letter means. A right whose rook or
// king is missing is vacuous and accepted.
func applyCastlingRights(pieces []Piece, field string) error {
	rights := make(map[rune]bool)
	if field != "-" {
		for _, c := range field {
			switch c {
			case 'K', 'Q', 'k', 'q':
				rights[c] = true
			default:
				return fmt.Errorf("invalid castling character: %c", c)
			}
		}
	}

	homes := [4]struct {
		letter rune
		pos    Point
		color  Color
	}{
		{'K', Pt(8, 1), White},
		{'Q', Pt(1, 1), White},
		{'k', Pt(8, 8), Black},
		{'q', Pt(1, 8), Black},
	}
	for _, home := range homes {
		if rights[home.letter] {
			continue
		}
		for i := range pieces {
			p := &pieces[i]
			if p.Type == Rook && p.Color == home.color && p.Pos == home.pos {
				p.markMoved()
			}
		}
	}
	return nil
}

// applyEnPassant rebuilds the double advance an en passant target
// implies, so the parsed state carries the last move the capture rule
// wants to see.
func applyEnPassant(s *State, field string) error {
	if field == "-" {
		return nil
	}
	target, err := ParsePoint(field)
	if err != nil {
		return fmt.Errorf("invalid en passant square: %s", field)
	}

	var from, to Point
	var mover Color
	switch target.Y {
	case 3:
		from, to, mover = Pt(target.X, 2), Pt(target.X, 4), White
	case 6:
		from, to, mover = Pt(target.X, 7), Pt(target.X, 5), Black
	default:
		return fmt.Errorf("invalid en passant square: %s", field)
	}
	if mover != s.toMove.Other() {
		return fmt.Errorf("en passant square %s does not belong to the side that just moved", field)
	}

	h, ok := s.pieces.HandleAt(to)
	if !ok || s.pieces.Get(h).Type != Pawn || s.pieces.Get(h).Color != mover {
		return fmt.Errorf("no pawn behind en passant square %s", field)
	}
	s.pieces.at(h).EnPassantTarget = true
	m := NewMove(from, to, h)
	s.lastMove = &m
	return nil
}

// ToFEN renders the state's classical window as a FEN string. The
// half-move clock field carries the state's move count and the
// full-move number is derived from it.
func (s *State) ToFEN() string {
	var sb strings.Builder

	for y := int64(8); y >= 1; y-- {
		empty := 0
		for x := int64(1); x <= 8; x++ {
			p, ok := s.PieceAt(Pt(x, y))
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(p.Char())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if y > 1 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if s.toMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(s.castlingField())

	sb.WriteByte(' ')
	if ep, ok := s.EnPassantSquare(); ok {
		sb.WriteString(ep.String())
	} else {
		sb.WriteByte('-')
	}

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(s.moveCount))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(s.moveCount/2 + 1))

	return sb.String()
}

// castlingField derives the castling letters from the unmoved kings and
// home rooks of the classical window.
func (s *State) castlingField() string {
	var sb strings.Builder
	appendRight := func(letter byte, kingPos, rookPos Point, c Color) {
		king, ok := s.PieceAt(kingPos)
		if !ok || king.Type != King || king.Color != c || king.Moved {
			return
		}
		rook, ok := s.PieceAt(rookPos)
		if !ok || rook.Type != Rook || rook.Color != c || rook.Moved {
			return
		}
		sb.WriteByte(letter)
	}
	appendRight('K', Pt(5, 1), Pt(8, 1), White)
	appendRight('Q', Pt(5, 1), Pt(1, 1), White)
	appendRight('k', Pt(5, 8), Pt(8, 8), Black)
	appendRight('q', Pt(5, 8), Pt(1, 8), Black)
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}
