package board

import (
	"math"
	"testing"
)

func TestPointArithmetic(t *testing.T) {
	p1 := Pt(1, 2)
	p2 := Pt(3, 4)

	if got := p1.Add(p2); got != Pt(4, 6) {
		t.Errorf("Add = %v, want (4,6)", got)
	}
	if got := p2.Sub(p1); got != Pt(2, 2) {
		t.Errorf("Sub = %v, want (2,2)", got)
	}
	if got := p2.Mul(3); got != Pt(9, 12) {
		t.Errorf("Mul = %v, want (9,12)", got)
	}
	if got := Pt(9, -12).Div(3); got != Pt(3, -4) {
		t.Errorf("Div = %v, want (3,-4)", got)
	}

	// Operations chain like plain value expressions.
	if got := p1.Add(p2).Mul(2).Sub(Pt(1, 1)); got != Pt(7, 11) {
		t.Errorf("chained ops = %v, want (7,11)", got)
	}
}

func TestCheckedAdd(t *testing.T) {
	tests := []struct {
		name string
		p, q Point
		want Point
		ok   bool
	}{
		{"plain", Pt(3, 4), Pt(1, -2), Pt(4, 2), true},
		{"to max", Pt(math.MaxInt64-1, 0), Pt(1, 0), Pt(math.MaxInt64, 0), true},
		{"past max x", Pt(math.MaxInt64, 0), Pt(1, 0), Point{}, false},
		{"past max y", Pt(0, math.MaxInt64), Pt(0, 1), Point{}, false},
		{"past min", Pt(math.MinInt64, 0), Pt(-1, 0), Point{}, false},
		{"opposing signs", Pt(math.MaxInt64, math.MinInt64), Pt(-1, 1), Pt(math.MaxInt64 - 1, math.MinInt64 + 1), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.p.CheckedAdd(tc.q)
			if ok != tc.ok || got != tc.want {
				t.Errorf("CheckedAdd(%v, %v) = %v, %v, want %v, %v", tc.p, tc.q, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestCheckedMul(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		k    int64
		want Point
		ok   bool
	}{
		{"plain", Pt(2, -3), 4, Pt(8, -12), true},
		{"zero", Pt(math.MaxInt64, math.MinInt64), 0, Pt(0, 0), true},
		{"overflow", Pt(math.MaxInt64/2 + 1, 0), 2, Point{}, false},
		{"min negated", Pt(math.MinInt64, 0), -1, Point{}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.p.CheckedMul(tc.k)
			if ok != tc.ok || got != tc.want {
				t.Errorf("CheckedMul(%v, %d) = %v, %v, want %v, %v", tc.p, tc.k, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestPointString(t *testing.T) {
	tests := []struct {
		p    Point
		want string
	}{
		{Pt(1, 1), "a1"},
		{Pt(5, 4), "e4"},
		{Pt(8, 8), "h8"},
		{Pt(0, 0), "(0,0)"},
		{Pt(9, 1), "(9,1)"},
		{Pt(-3, 12), "(-3,12)"},
	}
	for _, tc := range tests {
		if got := tc.p.String(); got != tc.want {
			t.Errorf("Point{%d, %d}.String() = %q, want %q", tc.p.X, tc.p.Y, got, tc.want)
		}
	}
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		in      string
		want    Point
		wantErr bool
	}{
		{"e4", Pt(5, 4), false},
		{"a1", Pt(1, 1), false},
		{"h8", Pt(8, 8), false},
		{"(9,12)", Pt(9, 12), false},
		{"-3, 40", Pt(-3, 40), false},
		{"e9", Point{}, true},
		{"i4", Point{}, true},
		{"", Point{}, true},
		{"(x,y)", Point{}, true},
	}
	for _, tc := range tests {
		got, err := ParsePoint(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParsePoint(%q) = %v, want error", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePoint(%q) failed: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParsePoint(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestBoundsContains(t *testing.T) {
	b := ClassicalBounds()
	inside := []Point{Pt(1, 1), Pt(8, 8), Pt(1, 8), Pt(8, 1), Pt(4, 5)}
	outside := []Point{Pt(0, 1), Pt(9, 1), Pt(1, 0), Pt(1, 9), Pt(-4, -4)}
	for _, p := range inside {
		if !b.Contains(p) {
			t.Errorf("Contains(%v) = false, want true", p)
		}
	}
	for _, p := range outside {
		if b.Contains(p) {
			t.Errorf("Contains(%v) = true, want false", p)
		}
	}
	if b.Width() != 8 || b.Height() != 8 {
		t.Errorf("classical bounds are %dx%d, want 8x8", b.Width(), b.Height())
	}
}

func TestBoundsGrow(t *testing.T) {
	b := Bounds{Min: Pt(2, 3), Max: Pt(5, 6)}.Grow(2)
	if b.Min != Pt(0, 1) || b.Max != Pt(7, 8) {
		t.Errorf("Grow(2) = %+v", b)
	}

	// Growing clamps instead of wrapping at the edge of the plane.
	edge := Bounds{Min: Pt(math.MinInt64+1, 0), Max: Pt(0, math.MaxInt64)}.Grow(5)
	if edge.Min.X != math.MinInt64 || edge.Max.Y != math.MaxInt64 {
		t.Errorf("Grow at edge = %+v, want clamped", edge)
	}
}
