package render

import (
	"github.com/gogpu/gg"

	"github.com/tsawler/idmlhwpx/geometry"
	"github.com/tsawler/idmlhwpx/idml"
)

// straight reports whether a point has no curve handles.
func straight(p idml.PathPoint) bool {
	return p.Left == p.Anchor && p.Right == p.Anchor
}

// segment adds the edge from a to b, as a line or a cubic curve.
func segment(dc *gg.Context, a, b idml.PathPoint) {
	if straight(a) && straight(b) {
		dc.LineTo(b.Anchor.X, b.Anchor.Y)
		return
	}
	dc.CubicTo(a.Right.X, a.Right.Y, b.Left.X, b.Left.Y, b.Anchor.X, b.Anchor.Y)
}

// tracePath adds the shape outline to the context path in local
// coordinates. It reports whether any closed sub-path was traced. Shapes
// without path data are traced from their bounds.
func tracePath(dc *gg.Context, shape *idml.VectorShape) bool {
	if len(shape.Paths) == 0 {
		b := shape.Bounds
		if b.Width() < 0.1 && b.Height() < 0.1 {
			return false
		}
		if shape.CornerRadius > 0 {
			dc.DrawRoundedRectangle(b.Left, b.Top, b.Width(), b.Height(), shape.CornerRadius)
		} else if shape.Kind == idml.ShapeOval {
			dc.DrawEllipse(b.Left+b.Width()/2, b.Top+b.Height()/2, b.Width()/2, b.Height()/2)
		} else {
			dc.DrawRectangle(b.Left, b.Top, b.Width(), b.Height())
		}
		return true
	}

	if shape.Kind == idml.ShapeRectangle && shape.CornerRadius > 0 && isPlainRect(shape.Paths) {
		b := shape.Bounds
		dc.DrawRoundedRectangle(b.Left, b.Top, b.Width(), b.Height(), shape.CornerRadius)
		return true
	}

	closed := false
	for _, p := range shape.Paths {
		pts := p.Points
		if len(pts) < 2 {
			continue
		}
		dc.MoveTo(pts[0].Anchor.X, pts[0].Anchor.Y)
		for i := 1; i < len(pts); i++ {
			segment(dc, pts[i-1], pts[i])
		}
		if !p.Open && len(pts) > 2 {
			segment(dc, pts[len(pts)-1], pts[0])
			dc.ClosePath()
			closed = true
		}
	}
	return closed
}

// isPlainRect reports whether paths form a single four-corner straight outline.
func isPlainRect(paths []idml.Path) bool {
	if len(paths) != 1 || len(paths[0].Points) != 4 || paths[0].Open {
		return false
	}
	for _, p := range paths[0].Points {
		if !straight(p) {
			return false
		}
	}
	return true
}

// extentPoints returns the anchors and curve handles of a shape in spread
// space. Handles bound the curve, so their box contains it.
func extentPoints(shape *idml.VectorShape) []geometry.Point {
	var out []geometry.Point
	m := shape.Transform
	for _, p := range shape.Paths {
		for _, pt := range p.Points {
			out = append(out, m.Transform(pt.Anchor))
			if !straight(pt) {
				out = append(out, m.Transform(pt.Left), m.Transform(pt.Right))
			}
		}
	}
	if len(out) == 0 {
		for _, c := range shape.Bounds.Corners() {
			out = append(out, m.Transform(c))
		}
	}
	return out
}
