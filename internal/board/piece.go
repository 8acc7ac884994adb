package board

import "fmt"

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// forward is the direction the color's pawns advance in: White pawns
// move toward +Y, Black pawns toward -Y.
func (c Color) forward() int64 {
	if c == White {
		return 1
	}
	return -1
}

// PieceType represents the type of a chess piece.
type PieceType uint8

const (
	NoType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// IsSliding reports whether the type moves along rays until blocked
// rather than stepping each offset once.
func (pt PieceType) IsSliding() bool {
	return pt == Bishop || pt == Rook || pt == Queen
}

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the FEN character for the piece type, uppercase for White.
func (pt PieceType) Char(c Color) byte {
	chars := []byte{' ', 'p', 'n', 'b', 'r', 'q', 'k'}
	if pt > King {
		return ' '
	}
	ch := chars[pt]
	if c == White && ch != ' ' {
		ch -= 'a' - 'A'
	}
	return ch
}

// TypeFromChar converts a FEN character in either case to a PieceType,
// returning NoType for anything unrecognized.
func TypeFromChar(ch byte) PieceType {
	switch ch {
	case 'p', 'P':
		return Pawn
	case 'n', 'N':
		return Knight
	case 'b', 'B':
		return Bishop
	case 'r', 'R':
		return Rook
	case 'q', 'Q':
		return Queen
	case 'k', 'K':
		return King
	default:
		return NoType
	}
}

// Glyph returns the Unicode figurine for the type: outline forms for
// White, filled forms for Black.
func (pt PieceType) Glyph(c Color) rune {
	white := [...]rune{' ', '♙', '♘', '♗', '♖', '♕', '♔'}
	black := [...]rune{' ', '♟', '♞', '♝', '♜', '♛', '♚'}
	if pt > King {
		pt = NoType
	}
	if c == White {
		return white[pt]
	}
	return black[pt]
}

// promotionTargets lists the shapes a pawn may promote to, in the order
// promotion candidates are emitted.
var promotionTargets = [...]PieceType{Queen, Rook, Bishop, Knight}

// Piece is one man on the board. Pieces live inside a PieceList and are
// addressed by stable integer handles; a capture tombstones the piece in
// place (Alive becomes false) rather than removing it from the list.
type Piece struct {
	Type            PieceType
	Color           Color
	Pos             Point
	Sliding         bool
	Alive           bool
	Moved           bool
	EnPassantTarget bool

	offsets []Point
}

// NewPiece creates an alive piece with the offset table its type and
// color imply.
func NewPiece(pt PieceType, c Color, pos Point) Piece {
	return Piece{
		Type:    pt,
		Color:   c,
		Pos:     pos,
		Sliding: pt.IsSliding(),
		Alive:   true,
		offsets: offsetsFor(pt, c, false),
	}
}

// Offsets returns the piece's direction-offset table. The slice is shared
// between pieces of the same kind and must not be modified.
func (p *Piece) Offsets() []Point { return p.offsets }

// Char returns the piece's FEN character.
func (p *Piece) Char() byte { return p.Type.Char(p.Color) }

// Glyph returns the piece's Unicode figurine.
func (p *Piece) Glyph() rune { return p.Type.Glyph(p.Color) }

// String describes the piece for logs, e.g. "White Knight at g1".
func (p *Piece) String() string {
	return fmt.Sprintf("%s %s at %s", p.Color, p.Type, p.Pos)
}

// capture tombstones the piece.
func (p *Piece) capture() { p.Alive = false }

// markMoved records that the piece has moved. The first time this happens
// to a pawn its offset table is rebuilt so the double-step entry
// disappears.
func (p *Piece) markMoved() {
	if p.Moved {
		return
	}
	p.Moved = true
	if p.Type == Pawn {
		p.offsets = offsetsFor(Pawn, p.Color, true)
	}
}

// become rewrites the piece's shape in place, used when a pawn promotes.
func (p *Piece) become(pt PieceType) {
	p.Type = pt
	p.Sliding = pt.IsSliding()
	p.offsets = offsetsFor(pt, p.Color, p.Moved)
}

var (
	knightOffsets = []Point{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	bishopOffsets = []Point{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
	rookOffsets   = []Point{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	royalOffsets  = []Point{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}}
)

// offsetsFor builds the offset table for a piece type. Pawn tables depend
// on color and on whether the double step is still available; every other
// table is shared between pieces.
func offsetsFor(pt PieceType, c Color, moved bool) []Point {
	switch pt {
	case Pawn:
		d := c.forward()
		if moved {
			return []Point{{0, d}, {-1, d}, {1, d}}
		}
		return []Point{{0, d}, {0, 2 * d}, {-1, d}, {1, d}}
	case Knight:
		return knightOffsets
	case Bishop:
		return bishopOffsets
	case Rook:
		return rookOffsets
	case Queen, King:
		return royalOffsets
	default:
		return nil
	}
}
