package geometry

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Bounds is an IDML GeometricBounds rectangle in the owning item's local
// coordinate space. IDML lists the edges as top, left, bottom, right.
type Bounds struct {
	Top    float64
	Left   float64
	Bottom float64
	Right  float64
}

// NewBounds creates bounds from IDML edge order.
func NewBounds(top, left, bottom, right float64) Bounds {
	return Bounds{Top: top, Left: left, Bottom: bottom, Right: right}
}

// Width returns Right - Left
func (b Bounds) Width() float64 {
	return b.Right - b.Left
}

// Height returns Bottom - Top
func (b Bounds) Height() float64 {
	return b.Bottom - b.Top
}

// TopLeft returns the (left, top) corner.
func (b Bounds) TopLeft() Point {
	return Point{X: b.Left, Y: b.Top}
}

// Center returns the center point
func (b Bounds) Center() Point {
	return Point{X: (b.Left + b.Right) / 2, Y: (b.Top + b.Bottom) / 2}
}

// Corners returns the four corners clockwise from top-left.
func (b Bounds) Corners() [4]Point {
	return [4]Point{
		{X: b.Left, Y: b.Top},
		{X: b.Right, Y: b.Top},
		{X: b.Right, Y: b.Bottom},
		{X: b.Left, Y: b.Bottom},
	}
}

// IsEmpty returns true if the bounds have no area
func (b Bounds) IsEmpty() bool {
	return b.Width() <= 0 || b.Height() <= 0
}

// ParseBounds parses an IDML GeometricBounds attribute ("top left bottom right").
func ParseBounds(s string) (Bounds, error) {
	fields := strings.Fields(s)
	if len(fields) != 4 {
		return Bounds{}, fmt.Errorf("bounds %q: want 4 components, got %d", s, len(fields))
	}
	var v [4]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Bounds{}, fmt.Errorf("bounds %q: %w", s, err)
		}
		v[i] = n
	}
	return Bounds{Top: v[0], Left: v[1], Bottom: v[2], Right: v[3]}, nil
}

// BoundsOfPoints returns the smallest bounds containing every point.
func BoundsOfPoints(pts []Point) Bounds {
	if len(pts) == 0 {
		return Bounds{}
	}
	b := Bounds{Top: pts[0].Y, Left: pts[0].X, Bottom: pts[0].Y, Right: pts[0].X}
	for _, p := range pts[1:] {
		b.Left = math.Min(b.Left, p.X)
		b.Right = math.Max(b.Right, p.X)
		b.Top = math.Min(b.Top, p.Y)
		b.Bottom = math.Max(b.Bottom, p.Y)
	}
	return b
}

// Rect is an axis-aligned rectangle in page space with a top-left origin.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// NewRect creates a rectangle from its top-left corner and size.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Right returns the right edge X coordinate
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the bottom edge Y coordinate
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Area returns the area of the rectangle
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// IsEmpty returns true if the rectangle has zero area
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersects checks if two rectangles overlap with positive area.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.Right() && other.X < r.Right() &&
		r.Y < other.Bottom() && other.Y < r.Bottom()
}

// Intersection returns the overlap of two rectangles
func (r Rect) Intersection(other Rect) Rect {
	if !r.Intersects(other) {
		return Rect{}
	}
	x := math.Max(r.X, other.X)
	y := math.Max(r.Y, other.Y)
	return Rect{
		X:      x,
		Y:      y,
		Width:  math.Min(r.Right(), other.Right()) - x,
		Height: math.Min(r.Bottom(), other.Bottom()) - y,
	}
}
