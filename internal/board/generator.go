package board

// Generator lazily enumerates the destinations a piece could reach on an
// empty, unbounded board. It is purely geometric: occupancy, capture
// rules and board extent are the consumer's concern.
//
// Stepping pieces walk their offset table once. Sliding pieces replay
// the table at multipliers 1, 2, 3, ... so destinations come out in
// rings of increasing distance, and the sequence ends on its own only
// when the checked coordinate arithmetic runs out of representable
// space. Consumers prune with CloseDirection once a direction is proven
// dead (blocked, or off the board) so enumeration over open rays
// terminates.
//
// A Generator is single-use and not safe for concurrent use.
type Generator struct {
	origin  Point
	offsets []Point
	sliding bool
	closed  []bool
	nclosed int
	index   int
	mult    int64
	lastDir int
	done    bool
}

// NewGenerator returns a fresh generator for the piece as it currently
// stands. The piece's position and offsets are captured at construction.
func NewGenerator(p *Piece) *Generator {
	offs := p.Offsets()
	return &Generator{
		origin:  p.Pos,
		offsets: offs,
		sliding: p.Sliding,
		closed:  make([]bool, len(offs)),
		mult:    1,
		lastDir: -1,
	}
}

// Next yields the next destination in emission order. ok is false once
// the sequence is exhausted, and stays false.
func (g *Generator) Next() (Point, bool) {
	for {
		if g.done || g.nclosed == len(g.offsets) {
			g.done = true
			return Point{}, false
		}
		if g.index >= len(g.offsets) {
			if !g.sliding {
				g.done = true
				return Point{}, false
			}
			g.index = 0
			g.mult++
		}
		i := g.index
		g.index++
		if g.closed[i] {
			continue
		}
		step, ok := g.offsets[i].CheckedMul(g.mult)
		if !ok {
			g.done = true
			return Point{}, false
		}
		dest, ok := g.origin.CheckedAdd(step)
		if !ok {
			g.done = true
			return Point{}, false
		}
		g.lastDir = i
		return dest, true
	}
}

// Direction returns the offset index that produced the last destination
// from Next, or -1 before the first yield. Together with CloseDirection
// it lets a consumer retire the ray a destination came from.
func (g *Generator) Direction() int { return g.lastDir }

// CloseDirection marks one offset direction dead; Next skips it from now
// on. Closing every direction exhausts the generator.
func (g *Generator) CloseDirection(i int) {
	if i < 0 || i >= len(g.closed) || g.closed[i] {
		return
	}
	g.closed[i] = true
	g.nclosed++
}

// Exhausted reports whether the generator has ended.
func (g *Generator) Exhausted() bool {
	return g.done || g.nclosed == len(g.offsets)
}
