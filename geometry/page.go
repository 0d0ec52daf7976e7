package geometry

import "math"

// pageTolerance absorbs float noise when testing frame centres against page edges.
const pageTolerance = 0.1

// PageRelativePosition returns the top-left corner of an element in the
// local space of its page. Both the element's and the page's top-left
// corners are taken into spread space by their transforms and subtracted.
func PageRelativePosition(elem Bounds, elemTransform Matrix, page Bounds, pageTransform Matrix) (float64, float64) {
	ex, ey := Apply(elemTransform, elem.Left, elem.Top)
	px, py := Apply(pageTransform, page.Left, page.Top)
	return ex - px, ey - py
}

// TransformedRect returns the axis-aligned box of the four transformed corners.
func TransformedRect(b Bounds, m Matrix) Rect {
	corners := b.Corners()
	pts := make([]Point, 0, len(corners))
	for _, c := range corners {
		pts = append(pts, m.Transform(c))
	}
	bb := BoundsOfPoints(pts)
	return Rect{X: bb.Left, Y: bb.Top, Width: bb.Width(), Height: bb.Height()}
}

// TransformedSize returns the width and height of the transformed bounds.
// Rotated items report the size of their axis-aligned envelope.
func TransformedSize(b Bounds, m Matrix) (float64, float64) {
	r := TransformedRect(b, m)
	return r.Width, r.Height
}

// UnrotatedRect returns the box of b before m's rotation is applied,
// centred on the transformed centre of b. Scale and translation are kept.
func UnrotatedRect(b Bounds, m Matrix) Rect {
	rad := ExtractRotation(m) * math.Pi / 180
	w, h := TransformedSize(b, m.Multiply(Rotate(-rad)))
	c := m.Transform(b.Center())
	return Rect{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h}
}

// IsFrameOnPage reports whether the transformed centre of a frame lies on
// the transformed page rectangle.
func IsFrameOnPage(frame Bounds, frameTransform Matrix, page Bounds, pageTransform Matrix) bool {
	c := frameTransform.Transform(frame.Center())
	pr := TransformedRect(page, pageTransform)
	return c.X >= pr.X-pageTolerance && c.X <= pr.Right()+pageTolerance &&
		c.Y >= pr.Y-pageTolerance && c.Y <= pr.Bottom()+pageTolerance
}

// RectToHwpunits converts a point-space rectangle to HWPUNIT components.
func RectToHwpunits(r Rect) (x, y, w, h int64) {
	return PointsToHwpunits(r.X), PointsToHwpunits(r.Y),
		PointsToHwpunits(math.Abs(r.Width)), PointsToHwpunits(math.Abs(r.Height))
}
