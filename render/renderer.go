// Package render rasterizes IDML vector shapes to transparent PNG images.
//
// HWPX has no equivalent of InDesign's free-form bezier artwork, so each
// shape (or group of shapes) is drawn with gg at the configured DPI and
// placed in the output as a picture covering the shape's page area.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/gogpu/gg"

	"github.com/tsawler/idmlhwpx/colors"
	"github.com/tsawler/idmlhwpx/geometry"
	"github.com/tsawler/idmlhwpx/idml"
)

// ErrNothingToDraw is returned when the shapes cover no visible area.
var ErrNothingToDraw = errors.New("shape has no visible area")

// Viewport is the page (or spread) shapes are positioned against.
type Viewport struct {
	Bounds    geometry.Bounds
	Transform geometry.Matrix
}

// Origin returns the viewport's top-left corner in spread space.
func (v Viewport) Origin() geometry.Point {
	return v.Transform.Transform(geometry.Point{X: v.Bounds.Left, Y: v.Bounds.Top})
}

// Result is a rendered image and the page area it covers, in points.
type Result struct {
	PNG         []byte
	Area        geometry.Rect
	PixelWidth  int
	PixelHeight int
}

// Renderer draws vector shapes.
type Renderer struct {
	DPI    int
	Colors *colors.Resolver
	Logger *log.Logger
}

// NewRenderer creates a renderer at dpi using resolver for swatches.
func NewRenderer(dpi int, resolver *colors.Resolver) *Renderer {
	return &Renderer{DPI: dpi, Colors: resolver, Logger: log.New(io.Discard)}
}

func (r *Renderer) scale() float64 {
	if r.DPI <= 0 {
		return 1
	}
	return float64(r.DPI) / 72
}

// RenderShapes draws shapes, in order, into one image sized to their
// combined extent plus a stroke margin, clipped to the viewport.
func (r *Renderer) RenderShapes(shapes []*idml.VectorShape, vp Viewport) (*Result, error) {
	if len(shapes) == 0 {
		return nil, ErrNothingToDraw
	}

	origin := vp.Origin()
	var pts []geometry.Point
	maxStroke := 0.0
	for _, s := range shapes {
		for _, p := range extentPoints(s) {
			pts = append(pts, geometry.Point{X: p.X - origin.X, Y: p.Y - origin.Y})
		}
		if s.HasStroke() {
			maxStroke = math.Max(maxStroke, s.StrokeWeight)
		}
	}
	ext := geometry.BoundsOfPoints(pts)
	if ext.Width() < 0.1 && ext.Height() < 0.1 {
		return nil, ErrNothingToDraw
	}

	margin := math.Max(maxStroke*2, 2)
	area := geometry.Rect{
		X:      ext.Left - margin,
		Y:      ext.Top - margin,
		Width:  math.Max(ext.Width(), 1) + margin*2,
		Height: math.Max(ext.Height(), 1) + margin*2,
	}
	page := geometry.Rect{Width: vp.Bounds.Width(), Height: vp.Bounds.Height()}
	area = area.Intersection(page)
	if area.IsEmpty() {
		return nil, ErrNothingToDraw
	}
	return r.draw(shapes, origin, area)
}

// RenderBackground draws shapes onto a canvas covering the whole viewport.
func (r *Renderer) RenderBackground(shapes []*idml.VectorShape, vp Viewport) (*Result, error) {
	area := geometry.Rect{Width: vp.Bounds.Width(), Height: vp.Bounds.Height()}
	if area.IsEmpty() {
		return nil, ErrNothingToDraw
	}
	return r.draw(shapes, vp.Origin(), area)
}

// draw renders shapes into area, given in points relative to origin.
func (r *Renderer) draw(shapes []*idml.VectorShape, origin geometry.Point, area geometry.Rect) (*Result, error) {
	s := r.scale()
	pw := int(math.Ceil(area.Width * s))
	ph := int(math.Ceil(area.Height * s))
	if pw < 1 || ph < 1 {
		return nil, ErrNothingToDraw
	}

	dc := gg.NewContext(pw, ph)
	defer dc.Close()

	view := geometry.Combine(geometry.Scale(s, s),
		geometry.Translate(-origin.X-area.X, -origin.Y-area.Y))

	for _, shape := range shapes {
		if err := r.drawShape(dc, shape, geometry.Combine(view, shape.Transform)); err != nil {
			return nil, fmt.Errorf("render %s: %w", shape.ID, err)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	r.logger().Debug("rendered shapes", "count", len(shapes), "pixels", fmt.Sprintf("%dx%d", pw, ph))
	return &Result{PNG: buf.Bytes(), Area: area, PixelWidth: pw, PixelHeight: ph}, nil
}

func (r *Renderer) logger() *log.Logger {
	if r.Logger == nil {
		return log.New(io.Discard)
	}
	return r.Logger
}

func toGG(m geometry.Matrix) gg.Matrix {
	return gg.Matrix{A: m[0], B: m[2], C: m[4], D: m[1], E: m[3], F: m[5]}
}

// drawShape fills and strokes one shape; m maps its local space to pixels.
func (r *Renderer) drawShape(dc *gg.Context, shape *idml.VectorShape, m geometry.Matrix) error {
	fill, hasFill := r.paint(shape.FillColor, shape.FillTint, shape.HasFill())
	stroke, hasStroke := r.paint(shape.StrokeColor, shape.StrokeTint, shape.HasStroke())
	if !hasFill && !hasStroke {
		return nil
	}

	dc.Push()
	defer dc.Pop()
	dc.SetTransform(toGG(m))

	closed := tracePath(dc, shape)
	if !closed && len(shape.Paths) == 0 {
		return nil
	}

	if hasFill && closed {
		dc.SetFillRule(gg.FillRuleEvenOdd)
		dc.SetHexColor(fill)
		if hasStroke {
			if err := dc.FillPreserve(); err != nil {
				return err
			}
		} else if err := dc.Fill(); err != nil {
			return err
		}
	}
	if hasStroke {
		r.setStroke(dc, shape, m)
		dc.SetHexColor(stroke)
		if err := dc.Stroke(); err != nil {
			return err
		}
	}
	dc.ClearPath()
	return nil
}

// paint resolves a swatch and applies its tint.
func (r *Renderer) paint(ref string, tint float64, enabled bool) (string, bool) {
	if !enabled || r.Colors == nil {
		return "", false
	}
	hex, ok := r.Colors.ResolveExact(ref)
	if !ok {
		return "", false
	}
	return colors.ApplyTint(hex, tint), true
}

// setStroke configures width, caps, joins and dashes. Widths are given in
// points and scaled by the view's average scale factor.
func (r *Renderer) setStroke(dc *gg.Context, shape *idml.VectorShape, m geometry.Matrix) {
	k := math.Sqrt(math.Abs(m[0]*m[3] - m[1]*m[2]))
	dc.SetLineWidth(shape.StrokeWeight * k)

	switch shape.EndCap {
	case "RoundEndCap":
		dc.SetLineCap(gg.LineCapRound)
	case "ProjectingEndCap":
		dc.SetLineCap(gg.LineCapSquare)
	default:
		dc.SetLineCap(gg.LineCapButt)
	}
	switch shape.EndJoin {
	case "RoundEndJoin":
		dc.SetLineJoin(gg.LineJoinRound)
	case "BevelEndJoin":
		dc.SetLineJoin(gg.LineJoinBevel)
	default:
		dc.SetLineJoin(gg.LineJoinMiter)
	}
	if shape.MiterLimit > 0 {
		dc.SetMiterLimit(shape.MiterLimit)
	}

	if len(shape.Dash) > 0 {
		dash := make([]float64, len(shape.Dash))
		for i, d := range shape.Dash {
			dash[i] = d * k
		}
		dc.SetDash(dash...)
	} else {
		dc.ClearDash()
	}
}
