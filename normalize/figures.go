package normalize

import (
	"errors"
	"math"

	"github.com/tsawler/idmlhwpx/ast"
	"github.com/tsawler/idmlhwpx/geometry"
	"github.com/tsawler/idmlhwpx/idml"
	"github.com/tsawler/idmlhwpx/imaging"
	"github.com/tsawler/idmlhwpx/render"
)

// backgroundCoverage is the share of the canvas an image must cover to be
// treated as the page background.
const backgroundCoverage = 0.8

func (n *Normalizer) imageFigures(c *canvas, sec *ast.Section) {
	canvasArea := c.width * c.height
	for _, f := range c.spread.ImageFrames {
		if n.doc.IsLayerHidden(f.LayerRef) || !c.contains(&f.Item) {
			continue
		}
		rotation := geometry.ExtractRotation(f.Transform)
		frame := c.rect(f.Bounds, f.Transform)
		w, h := geometry.TransformedSize(f.Bounds, f.Transform)
		if math.Round(rotation) != 0 {
			// Placed at its own size; the picture carries the rotation.
			frame = c.unrotatedRect(f.Bounds, f.Transform)
			r := geometry.UnrotatedRect(f.Bounds, f.Transform)
			w, h = r.Width, r.Height
		}
		img, ok := n.loadImage(f, w, h)
		if !ok {
			continue
		}

		layer := ast.CategoryRasterImage
		if imaging.IsDesignFormat(imaging.StripFileURI(f.LinkURI)) {
			layer = ast.CategoryDesignImage
		}
		if canvasArea > 0 && w*h >= canvasArea*backgroundCoverage {
			layer = ast.CategoryBackground
		}

		sec.AddBlock(&ast.Figure{
			SourceID:    f.ID,
			Kind:        ast.FigureImage,
			Frame:       frame,
			ZOrder:      f.ZOrder,
			Rotation:    rotation,
			Layer:       layer,
			ImageFormat: img.Format,
			ImageData:   img.Data,
			ImagePath:   imaging.StripFileURI(f.LinkURI),
			PixelWidth:  img.PixelWidth,
			PixelHeight: img.PixelHeight,
			Placeholder: img.Placeholder,
		})
	}
}

// loadImage fetches the pixels of an image frame. A failed load still
// yields the source's stand-in image; ok is false only when there is
// nothing to place.
func (n *Normalizer) loadImage(f *idml.ImageFrame, w, h float64) (imaging.Image, bool) {
	var (
		img imaging.Image
		err error
	)
	switch src := n.cfg.Images.(type) {
	case nil:
		img, err = imaging.Placeholder(w, h)
		if err == nil {
			err = errors.New("no image source configured")
		}
	case requestLoader:
		img, err = src.LoadRequest(imaging.Request{
			Link:           f.LinkURI,
			Width:          w,
			Height:         h,
			ImageTransform: f.ImageTransform,
			FrameBounds:    f.Bounds,
			GraphicBounds:  f.GraphicBounds,
		})
	default:
		img, err = src.Load(f.LinkURI, w, h)
	}
	if err != nil {
		n.warn(PhaseImage, f.ID, "%v", err)
	}
	return img, len(img.Data) > 0
}

// visibleShapes returns the canvas's vector shapes outside hidden layers.
func (n *Normalizer) visibleShapes(c *canvas) []*idml.VectorShape {
	var out []*idml.VectorShape
	for _, s := range c.spread.Shapes {
		if n.doc.IsLayerHidden(s.LayerRef) || !c.contains(&s.Item) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// shapeFigures rasterizes vector artwork. Shapes of one group are drawn
// into a single picture. With RenderBackground every shape goes into one
// page background instead.
func (n *Normalizer) shapeFigures(c *canvas, sec *ast.Section, out *ast.Document) {
	if n.cfg.Shapes == nil {
		return
	}
	shapes := n.visibleShapes(c)
	if len(shapes) == 0 {
		return
	}

	if n.cfg.RenderBackground {
		res, err := n.cfg.Shapes.RenderBackground(shapes, c.viewport)
		if err != nil {
			n.renderFailed(sec, err)
			return
		}
		out.Backgrounds = append(out.Backgrounds, &ast.PageBackground{
			PageNumber:  c.number,
			Width:       c.layout.Width,
			Height:      c.layout.Height,
			PNG:         res.PNG,
			PixelWidth:  res.PixelWidth,
			PixelHeight: res.PixelHeight,
		})
		return
	}

	var order []string
	groups := make(map[string][]*idml.VectorShape)
	for _, s := range shapes {
		if s.ParentGroup == "" {
			n.addShape(sec, s.ID, ast.FigureRenderedShape, []*idml.VectorShape{s}, s.ZOrder, c.viewport)
			continue
		}
		if _, ok := groups[s.ParentGroup]; !ok {
			order = append(order, s.ParentGroup)
		}
		groups[s.ParentGroup] = append(groups[s.ParentGroup], s)
	}
	for _, id := range order {
		members := groups[id]
		z := members[0].ZOrder
		for _, m := range members[1:] {
			z = min(z, m.ZOrder)
		}
		n.addShape(sec, id, ast.FigureRenderedGroup, members, z, c.viewport)
	}
}

func (n *Normalizer) addShape(sec *ast.Section, id string, kind ast.FigureKind, shapes []*idml.VectorShape, z int, vp render.Viewport) {
	res, err := n.cfg.Shapes.RenderShapes(shapes, vp)
	if err != nil {
		if !errors.Is(err, render.ErrNothingToDraw) {
			n.warn(PhaseImage, id, "render shape: %v", err)
		}
		return
	}
	sec.AddBlock(&ast.Figure{
		SourceID:    id,
		Kind:        kind,
		Frame:       pointsRect(res.Area),
		ZOrder:      z,
		Layer:       ast.CategoryVector,
		ImageFormat: "png",
		ImageData:   res.PNG,
		PixelWidth:  res.PixelWidth,
		PixelHeight: res.PixelHeight,
	})
}

func (n *Normalizer) renderFailed(sec *ast.Section, err error) {
	if errors.Is(err, render.ErrNothingToDraw) {
		return
	}
	n.warn(PhaseImage, "", "render page %d background: %v", sec.PageNumber, err)
}
