package board

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Point is a location on the board plane. Coordinates are 1-based in the
// classical window: a1 is (1,1), h8 is (8,8). The plane itself extends
// across the whole int64 range; nothing at this layer knows about board
// extents or occupancy.
type Point struct {
	X, Y int64
}

// Pt is shorthand for constructing a Point.
func Pt(x, y int64) Point { return Point{x, y} }

// Add returns p+q component-wise.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q component-wise.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Mul returns p scaled by k.
func (p Point) Mul(k int64) Point { return Point{p.X * k, p.Y * k} }

// Div returns p divided by k using truncating integer division. Callers
// normalizing a direction to a unit step must pre-scale accordingly.
func (p Point) Div(k int64) Point { return Point{p.X / k, p.Y / k} }

// CheckedAdd returns p+q, reporting false if either component would leave
// the representable range. Failure is not an error condition: it means
// there is no further square in that direction.
func (p Point) CheckedAdd(q Point) (Point, bool) {
	x, ok := checkedAdd64(p.X, q.X)
	if !ok {
		return Point{}, false
	}
	y, ok := checkedAdd64(p.Y, q.Y)
	if !ok {
		return Point{}, false
	}
	return Point{x, y}, true
}

// CheckedMul returns p scaled by k, reporting false on overflow.
func (p Point) CheckedMul(k int64) (Point, bool) {
	x, ok := checkedMul64(p.X, k)
	if !ok {
		return Point{}, false
	}
	y, ok := checkedMul64(p.Y, k)
	if !ok {
		return Point{}, false
	}
	return Point{x, y}, true
}

// String formats the point as an algebraic square ("e4") inside the
// classical window and as "(x,y)" outside it.
func (p Point) String() string {
	if p.X >= 1 && p.X <= 8 && p.Y >= 1 && p.Y <= 8 {
		return fmt.Sprintf("%c%d", 'a'+byte(p.X-1), p.Y)
	}
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// ParsePoint reads a point in either of the forms String produces:
// an algebraic square ("e4") or a coordinate pair ("(12,-3)", parentheses
// optional).
func ParsePoint(s string) (Point, error) {
	s = strings.TrimSpace(s)
	if len(s) == 2 && s[0] >= 'a' && s[0] <= 'h' && s[1] >= '1' && s[1] <= '8' {
		return Point{int64(s[0]-'a') + 1, int64(s[1] - '0')}, nil
	}
	trimmed := strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	parts := strings.Split(trimmed, ",")
	if len(parts) != 2 {
		return Point{}, fmt.Errorf("invalid point %q", s)
	}
	x, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return Point{}, fmt.Errorf("invalid point %q: %v", s, err)
	}
	y, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return Point{}, fmt.Errorf("invalid point %q: %v", s, err)
	}
	return Point{x, y}, nil
}

func checkedAdd64(a, b int64) (int64, bool) {
	sum := a + b
	if (a > 0 && b > 0 && sum < 0) || (a < 0 && b < 0 && sum >= 0) {
		return 0, false
	}
	return sum, true
}

func checkedMul64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == math.MinInt64 && b == -1) || (b == math.MinInt64 && a == -1) {
		return 0, false
	}
	prod := a * b
	if prod/b != a {
		return 0, false
	}
	return prod, true
}

func sign64(v int64) int64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// Bounds is an inclusive rectangular board extent.
type Bounds struct {
	Min, Max Point
}

// ClassicalBounds returns the standard 8x8 extent, a1 through h8.
func ClassicalBounds() Bounds {
	return Bounds{Min: Point{1, 1}, Max: Point{8, 8}}
}

// Contains reports whether p lies inside b.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Width returns the number of files b spans.
func (b Bounds) Width() int64 { return b.Max.X - b.Min.X + 1 }

// Height returns the number of ranks b spans.
func (b Bounds) Height() int64 { return b.Max.Y - b.Min.Y + 1 }

// Grow expands b by n squares on every side, clamping at the edge of
// representable space.
func (b Bounds) Grow(n int64) Bounds {
	out := b
	if v, ok := checkedAdd64(b.Min.X, -n); ok {
		out.Min.X = v
	} else {
		out.Min.X = math.MinInt64
	}
	if v, ok := checkedAdd64(b.Min.Y, -n); ok {
		out.Min.Y = v
	} else {
		out.Min.Y = math.MinInt64
	}
	if v, ok := checkedAdd64(b.Max.X, n); ok {
		out.Max.X = v
	} else {
		out.Max.X = math.MaxInt64
	}
	if v, ok := checkedAdd64(b.Max.Y, n); ok {
		out.Max.Y = v
	} else {
		out.Max.Y = math.MaxInt64
	}
	return out
}
