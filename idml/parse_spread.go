package idml

import (
	"fmt"
	"path"
	"strings"

	"github.com/tsawler/idmlhwpx/geometry"
)

func (r *Reader) parseSpread(src string, pageNumber *int) (*Spread, error) {
	root, err := r.parseXML(src)
	if err != nil {
		return nil, err
	}
	sn := root.child("Spread")
	if sn == nil {
		sn = root.child("MasterSpread")
	}
	if sn == nil && root.attr("Self") != "" {
		sn = root
	}
	if sn == nil {
		return nil, fmt.Errorf("no <Spread> element")
	}

	s := &Spread{ID: sn.attr("Self"), Transform: sn.transform()}
	w := &spreadWalker{spread: s, pageNumber: pageNumber}
	w.items(sn, geometry.Identity(), "")
	return s, nil
}

// spreadWalker collects page items in document order. The running counter
// gives each item its z-order: later siblings paint over earlier ones.
type spreadWalker struct {
	spread     *Spread
	pageNumber *int
	z          int
}

func (w *spreadWalker) next() int {
	w.z++
	return w.z
}

// items walks the children of a spread or group. parent maps the
// children's coordinates into spread space.
func (w *spreadWalker) items(n *node, parent geometry.Matrix, group string) (shapes, frames []string, pts []geometry.Point) {
	for _, c := range n.Children {
		switch c.name() {
		case "Page":
			*w.pageNumber++
			w.spread.Pages = append(w.spread.Pages, parsePage(c, *w.pageNumber))

		case "TextFrame":
			tf := parseTextFrame(c, parent, w.next(), group)
			w.spread.TextFrames = append(w.spread.TextFrames, tf)
			frames = append(frames, tf.ID)
			pts = append(pts, cornersOf(tf.Item)...)

		case "Rectangle", "Polygon", "Oval", "GraphicLine":
			z := w.next()
			if img := parseImageFrame(c, parent, z, group); img != nil {
				w.spread.ImageFrames = append(w.spread.ImageFrames, img)
				frames = append(frames, img.ID)
				pts = append(pts, cornersOf(img.Item)...)
				continue
			}
			v := parseVectorShape(c, parent, z, group)
			w.spread.Shapes = append(w.spread.Shapes, v)
			shapes = append(shapes, v.ID)
			pts = append(pts, cornersOf(v.Item)...)

		case "Group":
			gm := geometry.Combine(parent, c.transform())
			g := &Group{Item: Item{
				ID:          c.attr("Self"),
				Transform:   geometry.Identity(),
				ZOrder:      w.next(),
				LayerRef:    c.attr("ItemLayer"),
				ParentGroup: group,
			}}
			var childPts []geometry.Point
			g.ShapeIDs, g.FrameIDs, childPts = w.items(c, gm, g.ID)
			g.Bounds = geometry.BoundsOfPoints(childPts)
			w.spread.Groups = append(w.spread.Groups, g)
			shapes = append(shapes, g.ShapeIDs...)
			frames = append(frames, g.FrameIDs...)
			pts = append(pts, childPts...)
		}
	}
	return shapes, frames, pts
}

// cornersOf returns the item's corners in spread space.
func cornersOf(it Item) []geometry.Point {
	corners := it.Bounds.Corners()
	out := make([]geometry.Point, 0, len(corners))
	for _, c := range corners {
		out = append(out, it.Transform.Transform(c))
	}
	return out
}

func parsePage(n *node, number int) *Page {
	p := &Page{
		ID:           n.attr("Self"),
		Name:         n.attr("Name"),
		Number:       number,
		Transform:    n.transform(),
		MasterRef:    n.attr("AppliedMaster"),
		ColumnCount:  1,
		ColumnGutter: 12,
	}
	if b, err := geometry.ParseBounds(n.attr("GeometricBounds")); err == nil {
		p.Bounds = b
	}
	if mp := n.child("MarginPreference"); mp != nil {
		p.Margins = Margins{
			Top:    mp.floatAttr("Top", 0),
			Bottom: mp.floatAttr("Bottom", 0),
			Left:   mp.floatAttr("Left", 0),
			Right:  mp.floatAttr("Right", 0),
		}
		p.ColumnCount = mp.intAttr("ColumnCount", 1)
		p.ColumnGutter = mp.floatAttr("ColumnGutter", 12)
	}
	return p
}

func parseItem(n *node, parent geometry.Matrix, z int, group string) Item {
	return Item{
		ID:          n.attr("Self"),
		Bounds:      itemBounds(n),
		Transform:   geometry.Combine(parent, n.transform()),
		ZOrder:      z,
		LayerRef:    n.attr("ItemLayer"),
		ParentGroup: group,
	}
}

// itemBounds derives local bounds from the path anchors, falling back to
// a GeometricBounds attribute.
func itemBounds(n *node) geometry.Bounds {
	var pts []geometry.Point
	for _, p := range parsePaths(n) {
		for _, pp := range p.Points {
			pts = append(pts, pp.Anchor)
		}
	}
	if len(pts) > 0 {
		return geometry.BoundsOfPoints(pts)
	}
	if b, err := geometry.ParseBounds(n.attr("GeometricBounds")); err == nil {
		return b
	}
	return geometry.Bounds{}
}

func parsePaths(n *node) []Path {
	props := n.child("Properties")
	if props == nil {
		return nil
	}
	geom := props.child("PathGeometry")
	if geom == nil {
		return nil
	}
	var paths []Path
	for _, gp := range geom.Children {
		if gp.name() != "GeometryPathType" {
			continue
		}
		p := Path{Open: gp.attr("PathOpen") == "true"}
		if arr := gp.child("PathPointArray"); arr != nil {
			for _, pt := range arr.Children {
				anchor := parsePoint(pt.attr("Anchor"))
				pp := PathPoint{Anchor: anchor, Left: anchor, Right: anchor}
				if pt.hasAttr("LeftDirection") {
					pp.Left = parsePoint(pt.attr("LeftDirection"))
				}
				if pt.hasAttr("RightDirection") {
					pp.Right = parsePoint(pt.attr("RightDirection"))
				}
				p.Points = append(p.Points, pp)
			}
		}
		paths = append(paths, p)
	}
	return paths
}

func parseTextFrame(n *node, parent geometry.Matrix, z int, group string) *TextFrame {
	tf := &TextFrame{
		Item:         parseItem(n, parent, z, group),
		StoryID:      n.attr("ParentStory"),
		PrevFrame:    n.attr("PreviousTextFrame"),
		NextFrame:    n.attr("NextTextFrame"),
		ObjectStyle:  n.attr("AppliedObjectStyle"),
		ColumnCount:  1,
		ColumnGutter: 12,
		FillColor:    n.attr("FillColor"),
		StrokeColor:  n.attr("StrokeColor"),
		StrokeWeight: n.floatAttr("StrokeWeight", 0),
		StrokeType:   n.attr("StrokeType"),
		FillTint:     n.floatAttr("FillTint", Unset),
		StrokeTint:   n.floatAttr("StrokeTint", Unset),
		CornerRadius: cornerRadius(n),
	}
	if tfp := n.child("TextFramePreference"); tfp != nil {
		tf.ColumnCount = tfp.intAttr("TextColumnCount", 1)
		tf.ColumnGutter = tfp.floatAttr("TextColumnGutter", 12)
		tf.VerticalJustification = tfp.attr("VerticalJustification")
		if inset := tfp.listValues("InsetSpacing"); len(inset) == 4 {
			copy(tf.Inset[:], inset)
		} else if len(inset) == 1 {
			tf.Inset = [4]float64{inset[0], inset[0], inset[0], inset[0]}
		}
	}
	if aos := n.child("AnchoredObjectSetting"); aos != nil {
		tf.AnchoredPosition = aos.attr("AnchoredPosition")
	}
	return tf
}

func cornerRadius(n *node) float64 {
	opt := n.attr("TopLeftCornerOption")
	if opt == "" || opt == "None" {
		return 0
	}
	return n.floatAttr("TopLeftCornerRadius", 0)
}

var placedContent = []string{"Image", "PDF", "EPS", "ImportedPage", "WMF", "PICT"}

// parseImageFrame returns nil when the frame holds no placed graphic.
func parseImageFrame(n *node, parent geometry.Matrix, z int, group string) *ImageFrame {
	var content *node
	for _, name := range placedContent {
		if content = n.child(name); content != nil {
			break
		}
	}
	if content == nil {
		return nil
	}

	img := &ImageFrame{
		Item:           parseItem(n, parent, z, group),
		ImageTransform: content.transform(),
		FillColor:      n.attr("FillColor"),
		StrokeColor:    n.attr("StrokeColor"),
		StrokeWeight:   n.floatAttr("StrokeWeight", 0),
	}
	if link := content.child("Link"); link != nil {
		img.LinkURI = link.attr("LinkResourceURI")
		img.ImageFormat = strings.TrimPrefix(link.attr("LinkResourceFormat"), "$ID/")
	}
	if img.ImageFormat == "" && img.LinkURI != "" {
		img.ImageFormat = strings.ToUpper(strings.TrimPrefix(path.Ext(img.LinkURI), "."))
	}
	if props := content.child("Properties"); props != nil {
		if gb := props.child("GraphicBounds"); gb != nil {
			img.GraphicBounds = geometry.NewBounds(
				gb.floatAttr("Top", 0), gb.floatAttr("Left", 0),
				gb.floatAttr("Bottom", 0), gb.floatAttr("Right", 0))
		}
	}
	return img
}

func parseVectorShape(n *node, parent geometry.Matrix, z int, group string) *VectorShape {
	v := &VectorShape{
		Item:         parseItem(n, parent, z, group),
		Paths:        parsePaths(n),
		FillColor:    n.attr("FillColor"),
		StrokeColor:  n.attr("StrokeColor"),
		StrokeWeight: n.floatAttr("StrokeWeight", 0),
		FillTint:     n.floatAttr("FillTint", Unset),
		StrokeTint:   n.floatAttr("StrokeTint", Unset),
		CornerRadius: cornerRadius(n),
		EndCap:       n.attr("EndCap"),
		EndJoin:      n.attr("EndJoin"),
		MiterLimit:   n.floatAttr("MiterLimit", 4),
		Dash:         n.listValues("StrokeDashAndGap"),
	}
	switch n.name() {
	case "Oval":
		v.Kind = ShapeOval
	case "Polygon":
		v.Kind = ShapePolygon
	case "GraphicLine":
		v.Kind = ShapeGraphicLine
	default:
		v.Kind = ShapeRectangle
	}
	return v
}
