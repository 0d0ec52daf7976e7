package geometry

import (
	"math"
	"testing"
)

const eps = 1e-9

// ============================================================================
// Matrix Tests
// ============================================================================

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		m      Matrix
		x, y   float64
		wx, wy float64
	}{
		{"identity", Identity(), 3, 4, 3, 4},
		{"translate", Translate(10, -5), 1, 1, 11, -4},
		{"scale", Scale(2, 3), 1, 1, 2, 3},
		{"rotate 90", Rotate(math.Pi / 2), 1, 0, 0, 1},
		{"full", Matrix{1, 2, 3, 4, 5, 6}, 1, 1, 9, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := Apply(tt.m, tt.x, tt.y)
			if math.Abs(x-tt.wx) > eps || math.Abs(y-tt.wy) > eps {
				t.Errorf("Apply() = (%v, %v), want (%v, %v)", x, y, tt.wx, tt.wy)
			}
		})
	}
}

func TestCombineAppliesChildFirst(t *testing.T) {
	parent := Translate(100, 0)
	child := Scale(2, 2)
	m := Combine(parent, child)

	x, y := Apply(m, 5, 5)
	if x != 110 || y != 10 {
		t.Errorf("Combine() point = (%v, %v), want (110, 10)", x, y)
	}

	// Equivalent to applying child then parent by hand.
	cx, cy := Apply(child, 5, 5)
	px, py := Apply(parent, cx, cy)
	if x != px || y != py {
		t.Errorf("Combine() = (%v, %v), sequential = (%v, %v)", x, y, px, py)
	}
}

func TestCombineIsAssociative(t *testing.T) {
	mats := []Matrix{
		Identity(),
		Translate(12.5, -3),
		Scale(0.5, 2),
		Rotate(0.3),
		{1, 0.2, -0.4, 1.1, 7, 9},
		{0, -1, 1, 0, -612, 396},
	}

	for i, a := range mats {
		for j, b := range mats {
			for k, c := range mats {
				left := Combine(Combine(a, b), c)
				right := Combine(a, Combine(b, c))
				if !left.ApproxEqual(right, 1e-9) {
					t.Errorf("Combine not associative for (%d,%d,%d): %v vs %v", i, j, k, left, right)
				}
			}
		}
	}
}

func TestExtractRotation(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want float64
	}{
		{"identity", Identity(), 0},
		{"90 degrees", Rotate(math.Pi / 2), 90},
		{"-45 degrees", Rotate(-math.Pi / 4), -45},
		{"scaled", Matrix{2, 0, 0, 2, 0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractRotation(tt.m)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("ExtractRotation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseMatrix(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Matrix
		wantErr bool
	}{
		{"identity", "1 0 0 1 0 0", Identity(), false},
		{"empty", "", Identity(), false},
		{"page", "1 0 0 1 -612 -396", Matrix{1, 0, 0, 1, -612, -396}, false},
		{"short", "1 0 0 1", Matrix{}, true},
		{"garbage", "1 0 x 1 0 0", Matrix{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMatrix(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMatrix() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseMatrix() = %v, want %v", got, tt.want)
			}
		})
	}
}

// ============================================================================
// Bounds Tests
// ============================================================================

func TestParseBounds(t *testing.T) {
	b, err := ParseBounds("0 0 792 612")
	if err != nil {
		t.Fatalf("ParseBounds() error = %v", err)
	}
	if b.Width() != 612 || b.Height() != 792 {
		t.Errorf("ParseBounds() size = %vx%v, want 612x792", b.Width(), b.Height())
	}

	if _, err := ParseBounds("0 0 1"); err == nil {
		t.Error("ParseBounds() expected error for 3 components")
	}
}

func TestRectIntersection(t *testing.T) {
	a := NewRect(0, 0, 100, 50)
	b := NewRect(50, 0, 100, 50)
	c := NewRect(200, 200, 10, 10)

	if !a.Intersects(b) {
		t.Error("expected a and b to intersect")
	}
	if a.Intersects(c) {
		t.Error("expected a and c not to intersect")
	}
	got := a.Intersection(b)
	if got != NewRect(50, 0, 50, 50) {
		t.Errorf("Intersection() = %+v", got)
	}
	if !a.Intersection(c).IsEmpty() {
		t.Error("expected empty intersection")
	}
}

// ============================================================================
// Unit Conversion Tests
// ============================================================================

func TestPointsToHwpunits(t *testing.T) {
	tests := []struct {
		pt   float64
		want int64
	}{
		{0, 0},
		{1, 100},
		{612, 61200},
		{0.005, 1},
		{0.004, 0},
		{-0.005, -1},
		{12.5, 1250},
	}

	for _, tt := range tests {
		if got := PointsToHwpunits(tt.pt); got != tt.want {
			t.Errorf("PointsToHwpunits(%v) = %d, want %d", tt.pt, got, tt.want)
		}
	}
}

func TestUnitRoundTrip(t *testing.T) {
	for _, p := range []float64{0, 0.3, 1, 12.345, 72, 612, 792, 1234.5678} {
		back := HwpunitsToPoints(PointsToHwpunits(p))
		if math.Abs(back-p) > 0.005+eps {
			t.Errorf("round trip %v -> %v exceeds rounding error", p, back)
		}
	}
}

func TestMmToHwpunits(t *testing.T) {
	if got := MmToHwpunits(25.4); got != 7200 {
		t.Errorf("MmToHwpunits(25.4) = %d, want 7200", got)
	}
	if got := MmToHwpunits(210); got != 59528 {
		t.Errorf("MmToHwpunits(210) = %d, want 59528", got)
	}
}

func TestPointsToPixels(t *testing.T) {
	if got := PointsToPixels(72, 300); got != 300 {
		t.Errorf("PointsToPixels(72, 300) = %d, want 300", got)
	}
	if got := PointsToPixels(36, 72); got != 36 {
		t.Errorf("PointsToPixels(36, 72) = %d, want 36", got)
	}
}

// ============================================================================
// Page Placement Tests
// ============================================================================

func TestPageRelativePositionLetterPage(t *testing.T) {
	page := NewBounds(0, 0, 792, 612)
	frame := NewBounds(0, 0, 50, 100)

	x, y := PageRelativePosition(frame, Identity(), page, Identity())
	if x != 0 || y != 0 {
		t.Errorf("position = (%v, %v), want (0, 0)", x, y)
	}
	w, h := TransformedSize(frame, Identity())
	if w != 100 || h != 50 {
		t.Errorf("size = %vx%v, want 100x50", w, h)
	}
	if PointsToHwpunits(w) != 10000 || PointsToHwpunits(h) != 5000 {
		t.Errorf("hwpunit size = %dx%d, want 10000x5000", PointsToHwpunits(w), PointsToHwpunits(h))
	}
}

func TestPageRelativePositionSpreadTransform(t *testing.T) {
	// Right-hand page of a facing spread: page origin sits at spread x=0.
	page := NewBounds(0, 0, 792, 612)
	pageTransform := Matrix{1, 0, 0, 1, 0, -396}
	frame := NewBounds(-360, 36, -300, 236)

	x, y := PageRelativePosition(frame, Identity(), page, pageTransform)
	if x != 36 || y != 36 {
		t.Errorf("position = (%v, %v), want (36, 36)", x, y)
	}
}

func TestTransformedSizeRotated(t *testing.T) {
	b := NewBounds(0, 0, 50, 100)
	w, h := TransformedSize(b, Rotate(math.Pi/2))
	if math.Abs(w-50) > 1e-9 || math.Abs(h-100) > 1e-9 {
		t.Errorf("TransformedSize() = %vx%v, want 50x100", w, h)
	}
}

func TestUnrotatedRect(t *testing.T) {
	b := NewBounds(0, 0, 100, 200)
	m := Combine(Translate(300, 300), Rotate(math.Pi/2))

	r := UnrotatedRect(b, m)
	want := Rect{X: 150, Y: 350, Width: 200, Height: 100}
	if math.Abs(r.X-want.X) > eps || math.Abs(r.Y-want.Y) > eps ||
		math.Abs(r.Width-want.Width) > eps || math.Abs(r.Height-want.Height) > eps {
		t.Errorf("UnrotatedRect = %+v, want %+v", r, want)
	}

	if r := UnrotatedRect(b, Identity()); r != (Rect{Width: 200, Height: 100}) {
		t.Errorf("UnrotatedRect(identity) = %+v", r)
	}
}

func TestIsFrameOnPage(t *testing.T) {
	page := NewBounds(0, 0, 792, 612)
	left := Matrix{1, 0, 0, 1, -612, -396}
	right := Matrix{1, 0, 0, 1, 0, -396}
	frame := NewBounds(-300, 100, -200, 200) // centre (150, -250) in spread space

	if IsFrameOnPage(frame, Identity(), page, left) {
		t.Error("frame should not be on the left page")
	}
	if !IsFrameOnPage(frame, Identity(), page, right) {
		t.Error("frame should be on the right page")
	}
}
