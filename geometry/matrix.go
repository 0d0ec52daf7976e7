// Package geometry implements the affine transform algebra, bounds handling
// and unit conversion shared by every stage of the IDML to HWPX pipeline.
//
// IDML positions every page item by a local rectangle (GeometricBounds) and a
// local ItemTransform. Nested items (groups, anchored frames) stack their
// transforms, and pages carry their own transform inside the spread. The
// helpers here reduce all of that to page-relative top-left coordinates and
// sizes, which are then scaled to HWPUNIT.
package geometry

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Point represents a 2D point
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Matrix represents a 2D affine transformation [a b c d tx ty].
//
//	x' = a*x + c*y + tx
//	y' = b*x + d*y + ty
type Matrix [6]float64

// Identity returns an identity matrix
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Transform applies the matrix transformation to a point
func (m Matrix) Transform(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Apply applies m to (x, y).
func Apply(m Matrix, x, y float64) (float64, float64) {
	p := m.Transform(Point{X: x, Y: y})
	return p.X, p.Y
}

// Multiply returns the matrix that applies m first and then other.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[1]*other[2],
		m[0]*other[1] + m[1]*other[3],
		m[2]*other[0] + m[3]*other[2],
		m[2]*other[1] + m[3]*other[3],
		m[4]*other[0] + m[5]*other[2] + other[4],
		m[4]*other[1] + m[5]*other[3] + other[5],
	}
}

// Combine returns the transform equivalent to applying child and then
// parent. Nested page items are resolved as Combine(spread, Combine(group, item)).
func Combine(parent, child Matrix) Matrix {
	return child.Multiply(parent)
}

// Translate creates a translation matrix
func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Scale creates a scaling matrix
func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Rotate creates a rotation matrix (angle in radians)
func Rotate(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

// IsIdentity reports whether m is the identity transform.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// Translation returns the (tx, ty) components.
func (m Matrix) Translation() (float64, float64) {
	return m[4], m[5]
}

// ExtractRotation returns the rotation angle of m in degrees, derived from
// the first column (atan2(b, a)). Scale and shear are ignored.
func ExtractRotation(m Matrix) float64 {
	return math.Atan2(m[1], m[0]) * 180 / math.Pi
}

// ApproxEqual compares two matrices component-wise within eps.
func (m Matrix) ApproxEqual(other Matrix, eps float64) bool {
	for i := range m {
		if math.Abs(m[i]-other[i]) > eps {
			return false
		}
	}
	return true
}

// ParseMatrix parses an IDML ItemTransform attribute ("a b c d tx ty").
// An empty string yields the identity transform.
func ParseMatrix(s string) (Matrix, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Identity(), nil
	}
	if len(fields) != 6 {
		return Matrix{}, fmt.Errorf("transform %q: want 6 components, got %d", s, len(fields))
	}
	var m Matrix
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Matrix{}, fmt.Errorf("transform %q: %w", s, err)
		}
		m[i] = v
	}
	return m, nil
}

// String formats the matrix the way IDML writes ItemTransform.
func (m Matrix) String() string {
	parts := make([]string, len(m))
	for i, v := range m {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, " ")
}
