package normalize

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/tsawler/idmlhwpx/ast"
	"github.com/tsawler/idmlhwpx/colors"
	"github.com/tsawler/idmlhwpx/geometry"
	"github.com/tsawler/idmlhwpx/idml"
	"github.com/tsawler/idmlhwpx/render"
)

// ErrNoDocument is returned when Normalize is called without a document.
var ErrNoDocument = errors.New("normalize: no document")

// Normalizer converts one idml.Document. It is not safe for concurrent use.
type Normalizer struct {
	doc    *idml.Document
	cfg    Config
	colors *colors.Resolver

	paraStyles *idml.StyleResolver
	charStyles *idml.StyleResolver

	warnings []Warning
	warned   map[string]bool
}

// New creates a normalizer for doc.
func New(doc *idml.Document, cfg Config) *Normalizer {
	n := &Normalizer{doc: doc, cfg: cfg, warned: make(map[string]bool)}
	if n.cfg.Tolerances == (Tolerances{}) {
		n.cfg.Tolerances = DefaultTolerances()
	}
	if doc != nil {
		n.colors = cfg.Colors
		if n.colors == nil {
			n.colors = colors.NewResolver(doc.Colors)
		}
		n.paraStyles = idml.NewParagraphStyleResolver(doc)
		n.charStyles = idml.NewCharacterStyleResolver(doc)
	}
	return n
}

// Warnings returns the warnings recorded so far.
func (n *Normalizer) Warnings() []Warning {
	return n.warnings
}

func (n *Normalizer) logger() *log.Logger {
	if n.cfg.Logger == nil {
		return log.New(io.Discard)
	}
	return n.cfg.Logger
}

func (n *Normalizer) warn(phase, element, format string, args ...any) {
	w := Warning{Phase: phase, Element: element, Message: fmt.Sprintf(format, args...)}
	n.warnings = append(n.warnings, w)
	n.logger().Warn(w.Message, "phase", phase, "element", element)
}

// warnOnce records a warning the first time key is seen.
func (n *Normalizer) warnOnce(key, phase, element, format string, args ...any) {
	if n.warned[key] {
		return
	}
	n.warned[key] = true
	n.warn(phase, element, format, args...)
}

// Normalize builds the ast document. The context is checked between
// sections.
func (n *Normalizer) Normalize(ctx context.Context) (*ast.Document, error) {
	if n.doc == nil {
		return nil, ErrNoDocument
	}

	out := ast.NewDocument()
	out.SpreadMode = n.cfg.SpreadMode
	out.Fonts = n.fonts()
	if n.cfg.IncludeStyles {
		out.ParagraphStyles = n.styles(n.doc.SortedParagraphStyles(), n.paraStyles)
		out.CharacterStyles = n.styles(n.doc.SortedCharacterStyles(), n.charStyles)
	}

	for _, spread := range n.doc.Spreads {
		for _, c := range n.canvases(spread) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			sec := n.section(c, out)
			out.AddSection(sec)
			n.logger().Debug("normalized section", "page", sec.PageNumber, "blocks", len(sec.Blocks))
		}
	}
	return out, nil
}

// canvas is the area one section is laid out on: a page, or the envelope
// of a spread's selected pages.
type canvas struct {
	spread   *idml.Spread
	pages    []*idml.Page
	number   int
	origin   geometry.Point
	width    float64
	height   float64
	viewport render.Viewport
	layout   ast.PageLayout
}

func (n *Normalizer) canvases(spread *idml.Spread) []*canvas {
	var pages []*idml.Page
	for _, p := range spread.Pages {
		if n.cfg.includes(p.Number) {
			pages = append(pages, p)
		}
	}
	if len(pages) == 0 {
		return nil
	}

	if !n.cfg.SpreadMode {
		out := make([]*canvas, 0, len(pages))
		for _, p := range pages {
			out = append(out, pageCanvas(spread, p))
		}
		return out
	}
	return []*canvas{spreadCanvas(spread, pages)}
}

func pageCanvas(spread *idml.Spread, p *idml.Page) *canvas {
	vp := render.Viewport{Bounds: p.Bounds, Transform: p.Transform}
	c := &canvas{
		spread:   spread,
		pages:    []*idml.Page{p},
		number:   p.Number,
		origin:   vp.Origin(),
		width:    p.Width(),
		height:   p.Height(),
		viewport: vp,
	}
	cols := p.ColumnCount
	if cols < 1 {
		cols = 1
	}
	c.layout = ast.PageLayout{
		Width:        geometry.PointsToHwpunits(c.width),
		Height:       geometry.PointsToHwpunits(c.height),
		MarginTop:    geometry.PointsToHwpunits(p.Margins.Top),
		MarginBottom: geometry.PointsToHwpunits(p.Margins.Bottom),
		MarginLeft:   geometry.PointsToHwpunits(p.Margins.Left),
		MarginRight:  geometry.PointsToHwpunits(p.Margins.Right),
		ColumnCount:  cols,
		ColumnGutter: geometry.PointsToHwpunits(p.ColumnGutter),
	}
	return c
}

// spreadCanvas covers every selected page of the spread. Margins are zero
// so that items can sit anywhere on the combined area.
func spreadCanvas(spread *idml.Spread, pages []*idml.Page) *canvas {
	left, top := math.Inf(1), math.Inf(1)
	right, bottom := math.Inf(-1), math.Inf(-1)
	for _, p := range pages {
		r := geometry.TransformedRect(p.Bounds, p.Transform)
		left, top = math.Min(left, r.X), math.Min(top, r.Y)
		right, bottom = math.Max(right, r.Right()), math.Max(bottom, r.Bottom())
	}
	c := &canvas{
		spread: spread,
		pages:  pages,
		number: pages[0].Number,
		origin: geometry.Point{X: left, Y: top},
		width:  right - left,
		height: bottom - top,
		viewport: render.Viewport{
			Bounds:    geometry.NewBounds(top, left, bottom, right),
			Transform: geometry.Identity(),
		},
	}
	c.layout = ast.PageLayout{
		Width:       geometry.PointsToHwpunits(c.width),
		Height:      geometry.PointsToHwpunits(c.height),
		ColumnCount: 1,
	}
	return c
}

// contains reports whether an item's centre lies on one of the canvas pages.
func (c *canvas) contains(it *idml.Item) bool {
	for _, p := range c.pages {
		if geometry.IsFrameOnPage(it.Bounds, it.Transform, p.Bounds, p.Transform) {
			return true
		}
	}
	return false
}

// rect converts an item's envelope to canvas-relative HWPUNIT.
func (c *canvas) rect(b geometry.Bounds, m geometry.Matrix) ast.Rect {
	r := geometry.TransformedRect(b, m)
	r.X -= c.origin.X
	r.Y -= c.origin.Y
	x, y, w, h := geometry.RectToHwpunits(r)
	return ast.Rect{X: x, Y: y, Width: w, Height: h}
}

// unrotatedRect is rect for items whose rotation is written separately.
func (c *canvas) unrotatedRect(b geometry.Bounds, m geometry.Matrix) ast.Rect {
	r := geometry.UnrotatedRect(b, m)
	r.X -= c.origin.X
	r.Y -= c.origin.Y
	return pointsRect(r)
}

// pointsRect converts a canvas-relative point rectangle.
func pointsRect(r geometry.Rect) ast.Rect {
	x, y, w, h := geometry.RectToHwpunits(r)
	return ast.Rect{X: x, Y: y, Width: w, Height: h}
}

func (n *Normalizer) section(c *canvas, out *ast.Document) *ast.Section {
	sec := &ast.Section{PageNumber: c.number, Layout: c.layout}

	n.textBlocks(c, sec)
	if n.cfg.IncludeImages {
		n.imageFigures(c, sec)
		n.shapeFigures(c, sec, out)
	}

	ast.SortBlocks(sec.Blocks)
	return sec
}
