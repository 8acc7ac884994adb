package board

import "fmt"

// PieceList is the ordered piece arena for one State. All White pieces
// precede all Black pieces, construction order is preserved within each
// color, and the partition survives cloning. Pieces are addressed by
// integer handles that stay valid for the lifetime of a game: a captured
// piece keeps its slot as a tombstone instead of being removed.
type PieceList struct {
	pieces []Piece
	split  int    // pieces[:split] are White, pieces[split:] are Black
	kings  [2]int // handle of each color's king, indexed by Color
}

// NewPieceList partitions the given pieces by color and validates that
// each side has exactly one king.
func NewPieceList(pieces []Piece) (*PieceList, error) {
	ordered := make([]Piece, 0, len(pieces))
	for _, p := range pieces {
		if p.Color == White {
			ordered = append(ordered, p)
		}
	}
	split := len(ordered)
	for _, p := range pieces {
		if p.Color == Black {
			ordered = append(ordered, p)
		}
	}

	pl := &PieceList{pieces: ordered, split: split, kings: [2]int{-1, -1}}
	for i := range ordered {
		p := &ordered[i]
		if p.Type != King || !p.Alive {
			continue
		}
		if pl.kings[p.Color] != -1 {
			return nil, fmt.Errorf("%s has more than one king", p.Color)
		}
		pl.kings[p.Color] = i
	}
	for _, c := range [2]Color{White, Black} {
		if pl.kings[c] == -1 {
			return nil, fmt.Errorf("%s has no king", c)
		}
	}
	return pl, nil
}

// Len returns the number of slots in the list, tombstones included.
func (pl *PieceList) Len() int { return len(pl.pieces) }

// Get returns a copy of the piece in the given slot. It panics if the
// handle is out of range.
func (pl *PieceList) Get(handle int) Piece { return pl.pieces[handle] }

// at returns the addressable piece in the given slot.
func (pl *PieceList) at(handle int) *Piece { return &pl.pieces[handle] }

// ColorRange returns the half-open handle range [lo, hi) holding the
// given color's pieces.
func (pl *PieceList) ColorRange(c Color) (lo, hi int) {
	if c == White {
		return 0, pl.split
	}
	return pl.split, len(pl.pieces)
}

// KingHandle returns the handle of the given color's king.
func (pl *PieceList) KingHandle(c Color) int { return pl.kings[c] }

// King returns a copy of the given color's king.
func (pl *PieceList) King(c Color) Piece { return pl.pieces[pl.kings[c]] }

// HandleAt returns the handle of the alive piece on p. Tombstones never
// match, so a square vacated by a capture reads as the capturer once the
// move is applied.
func (pl *PieceList) HandleAt(p Point) (int, bool) {
	for i := range pl.pieces {
		if pl.pieces[i].Alive && pl.pieces[i].Pos == p {
			return i, true
		}
	}
	return 0, false
}

// PieceAt returns a copy of the alive piece on p.
func (pl *PieceList) PieceAt(p Point) (Piece, bool) {
	if h, ok := pl.HandleAt(p); ok {
		return pl.pieces[h], true
	}
	return Piece{}, false
}

// Occupied reports whether an alive piece stands on p.
func (pl *PieceList) Occupied(p Point) bool {
	_, ok := pl.HandleAt(p)
	return ok
}

// nearestOnRank returns the alive piece nearest to pos along its rank
// in x-direction dir (+1 or -1), excluding pos itself.
func (pl *PieceList) nearestOnRank(pos Point, dir int64) (int, bool) {
	best := -1
	var bestX int64
	for h := range pl.pieces {
		q := &pl.pieces[h]
		if !q.Alive || q.Pos.Y != pos.Y {
			continue
		}
		if dir > 0 {
			if q.Pos.X <= pos.X {
				continue
			}
			if best == -1 || q.Pos.X < bestX {
				best, bestX = h, q.Pos.X
			}
		} else {
			if q.Pos.X >= pos.X {
				continue
			}
			if best == -1 || q.Pos.X > bestX {
				best, bestX = h, q.Pos.X
			}
		}
	}
	return best, best != -1
}

// AliveBounds returns the bounding box of all alive pieces. ok is false
// when nothing is alive.
func (pl *PieceList) AliveBounds() (Bounds, bool) {
	var b Bounds
	found := false
	for i := range pl.pieces {
		p := &pl.pieces[i]
		if !p.Alive {
			continue
		}
		if !found {
			b = Bounds{Min: p.Pos, Max: p.Pos}
			found = true
			continue
		}
		if p.Pos.X < b.Min.X {
			b.Min.X = p.Pos.X
		}
		if p.Pos.Y < b.Min.Y {
			b.Min.Y = p.Pos.Y
		}
		if p.Pos.X > b.Max.X {
			b.Max.X = p.Pos.X
		}
		if p.Pos.Y > b.Max.Y {
			b.Max.Y = p.Pos.Y
		}
	}
	return b, found
}

// clone returns a deep copy sharing nothing mutable with the original.
// Offset slices are shared; they are replaced, never written through.
func (pl *PieceList) clone() *PieceList {
	out := &PieceList{
		pieces: make([]Piece, len(pl.pieces)),
		split:  pl.split,
		kings:  pl.kings,
	}
	copy(out.pieces, pl.pieces)
	return out
}

// clearEnPassantTargets drops the double-step marker from every piece.
// At most one piece carries it at a time.
func (pl *PieceList) clearEnPassantTargets() {
	for i := range pl.pieces {
		pl.pieces[i].EnPassantTarget = false
	}
}
