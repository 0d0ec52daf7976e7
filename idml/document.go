// Package idml provides a read-only model of an InDesign Markup Language
// package and a reader that builds it from the ZIP container.
//
// Only the parts needed for layout conversion are modelled: spreads and
// pages, text/image/vector frames, stories, paragraph and character styles,
// fonts and colour swatches.
package idml

import (
	"sort"
	"strings"

	"github.com/tsawler/idmlhwpx/geometry"
)

// Document is a parsed IDML package.
type Document struct {
	Spreads       []*Spread
	MasterSpreads []*Spread

	// Stories keyed by story id ("u1e").
	Stories map[string]*Story

	// Styles keyed by self reference ("ParagraphStyle/Body").
	ParagraphStyles map[string]*StyleDef
	CharacterStyles map[string]*StyleDef

	// Fonts keyed by family name.
	Fonts map[string]*FontDef

	// Colors maps swatch references to colour values understood by
	// colors.Parse ("cmyk 0 0 0 100", "rgb 255 0 0").
	Colors map[string]string

	// HiddenLayers holds the ids of layers with Visible="false".
	HiddenLayers map[string]bool
}

// NewDocument creates an empty document with initialized maps.
func NewDocument() *Document {
	return &Document{
		Stories:         make(map[string]*Story),
		ParagraphStyles: make(map[string]*StyleDef),
		CharacterStyles: make(map[string]*StyleDef),
		Fonts:           make(map[string]*FontDef),
		Colors:          make(map[string]string),
		HiddenLayers:    make(map[string]bool),
	}
}

// Story returns the story with the given id.
func (d *Document) Story(id string) (*Story, bool) {
	s, ok := d.Stories[id]
	return s, ok
}

// Pages returns every page of every spread in document order.
func (d *Document) Pages() []*Page {
	var pages []*Page
	for _, s := range d.Spreads {
		pages = append(pages, s.Pages...)
	}
	return pages
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	n := 0
	for _, s := range d.Spreads {
		n += len(s.Pages)
	}
	return n
}

// ParagraphStyle finds a paragraph style by reference. Bare names are
// retried with the "ParagraphStyle/" prefix.
func (d *Document) ParagraphStyle(ref string) (*StyleDef, bool) {
	return findStyle(d.ParagraphStyles, ref, "ParagraphStyle/")
}

// CharacterStyle finds a character style by reference. Bare names are
// retried with the "CharacterStyle/" prefix.
func (d *Document) CharacterStyle(ref string) (*StyleDef, bool) {
	return findStyle(d.CharacterStyles, ref, "CharacterStyle/")
}

func findStyle(styles map[string]*StyleDef, ref, prefix string) (*StyleDef, bool) {
	if ref == "" {
		return nil, false
	}
	if s, ok := styles[ref]; ok {
		return s, true
	}
	if !strings.HasPrefix(ref, prefix) {
		if s, ok := styles[prefix+ref]; ok {
			return s, true
		}
	}
	return nil, false
}

// SortedParagraphStyles returns paragraph styles ordered by reference so
// that callers registering them get deterministic ids.
func (d *Document) SortedParagraphStyles() []*StyleDef {
	return sortedStyles(d.ParagraphStyles)
}

// SortedCharacterStyles returns character styles ordered by reference.
func (d *Document) SortedCharacterStyles() []*StyleDef {
	return sortedStyles(d.CharacterStyles)
}

func sortedStyles(m map[string]*StyleDef) []*StyleDef {
	out := make([]*StyleDef, 0, len(m))
	for _, s := range m {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ref < out[j].Ref })
	return out
}

// IsLayerHidden reports whether items on layer ref are invisible.
func (d *Document) IsLayerHidden(ref string) bool {
	return ref != "" && d.HiddenLayers[ref]
}

// Spread is one IDML spread: a set of pages sharing a pasteboard, plus every
// page item placed on it. Item coordinates are in spread space.
type Spread struct {
	ID        string
	Transform geometry.Matrix
	Pages     []*Page

	TextFrames  []*TextFrame
	ImageFrames []*ImageFrame
	Shapes      []*VectorShape
	Groups      []*Group
}

// TextFramesOnPage returns the text frames whose centre lies on page.
func (s *Spread) TextFramesOnPage(p *Page) []*TextFrame {
	var out []*TextFrame
	for _, f := range s.TextFrames {
		if geometry.IsFrameOnPage(f.Bounds, f.Transform, p.Bounds, p.Transform) {
			out = append(out, f)
		}
	}
	return out
}

// ImageFramesOnPage returns the image frames whose centre lies on page.
func (s *Spread) ImageFramesOnPage(p *Page) []*ImageFrame {
	var out []*ImageFrame
	for _, f := range s.ImageFrames {
		if geometry.IsFrameOnPage(f.Bounds, f.Transform, p.Bounds, p.Transform) {
			out = append(out, f)
		}
	}
	return out
}

// ShapesOnPage returns the vector shapes whose centre lies on page.
func (s *Spread) ShapesOnPage(p *Page) []*VectorShape {
	var out []*VectorShape
	for _, v := range s.Shapes {
		if geometry.IsFrameOnPage(v.Bounds, v.Transform, p.Bounds, p.Transform) {
			out = append(out, v)
		}
	}
	return out
}

// Group returns the group with the given id.
func (s *Spread) Group(id string) (*Group, bool) {
	for _, g := range s.Groups {
		if g.ID == id {
			return g, true
		}
	}
	return nil, false
}

// Margins holds page margins in points.
type Margins struct {
	Top    float64
	Bottom float64
	Left   float64
	Right  float64
}

// Page is one page within a spread.
type Page struct {
	ID           string
	Name         string
	Number       int // 1-based position in the document
	Bounds       geometry.Bounds
	Transform    geometry.Matrix
	MasterRef    string
	Margins      Margins
	ColumnCount  int
	ColumnGutter float64
}

// Width returns the page width in points.
func (p *Page) Width() float64 { return p.Bounds.Width() }

// Height returns the page height in points.
func (p *Page) Height() float64 { return p.Bounds.Height() }

// Item holds what every page item has in common. Transform is already
// combined with all enclosing group transforms, so it maps local
// coordinates straight into spread space.
type Item struct {
	ID          string
	Bounds      geometry.Bounds
	Transform   geometry.Matrix
	ZOrder      int
	LayerRef    string
	ParentGroup string
}

// Unset marks an optional numeric attribute (tint) that was not present.
const Unset = -1.0

// TextFrame is a text container linked to a story.
type TextFrame struct {
	Item

	StoryID     string
	PrevFrame   string
	NextFrame   string
	ObjectStyle string

	ColumnCount  int
	ColumnGutter float64
	Inset        [4]float64 // top, left, bottom, right

	FillColor    string
	StrokeColor  string
	StrokeWeight float64
	StrokeType   string
	FillTint     float64
	StrokeTint   float64
	CornerRadius float64

	VerticalJustification string
	AnchoredPosition      string
}

// IsChainHead reports whether the frame starts its threaded story.
// Continuation frames repeat the story and are skipped.
func (f *TextFrame) IsChainHead() bool {
	switch f.PrevFrame {
	case "", "n", "null":
		return true
	}
	return false
}

// ImageFrame is a graphic frame holding a placed (linked) image.
type ImageFrame struct {
	Item

	LinkURI     string
	ImageFormat string

	// ImageTransform and GraphicBounds place the image inside the frame.
	ImageTransform geometry.Matrix
	GraphicBounds  geometry.Bounds

	FillColor    string
	StrokeColor  string
	StrokeWeight float64
}

// ShapeKind identifies the IDML element a vector shape came from.
type ShapeKind int

const (
	ShapeRectangle ShapeKind = iota
	ShapeOval
	ShapePolygon
	ShapeGraphicLine
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeRectangle:
		return "Rectangle"
	case ShapeOval:
		return "Oval"
	case ShapePolygon:
		return "Polygon"
	case ShapeGraphicLine:
		return "GraphicLine"
	default:
		return "Unknown"
	}
}

// PathPoint is one bezier anchor with its two direction handles, in local coordinates.
type PathPoint struct {
	Anchor geometry.Point
	Left   geometry.Point
	Right  geometry.Point
}

// Path is one sub-path of a shape.
type Path struct {
	Points []PathPoint
	Open   bool
}

// VectorShape is a drawn shape (rectangle, oval, polygon, line) without
// placed content.
type VectorShape struct {
	Item

	Kind  ShapeKind
	Paths []Path

	FillColor    string
	StrokeColor  string
	StrokeWeight float64
	FillTint     float64
	StrokeTint   float64
	CornerRadius float64
	EndCap       string
	EndJoin      string
	MiterLimit   float64
	Dash         []float64
}

// HasFill reports whether the shape paints its interior.
func (v *VectorShape) HasFill() bool {
	return v.FillColor != "" && !strings.Contains(v.FillColor, "None")
}

// HasStroke reports whether the shape paints its outline.
func (v *VectorShape) HasStroke() bool {
	return v.StrokeColor != "" && !strings.Contains(v.StrokeColor, "None") && v.StrokeWeight > 0
}

// Group is a set of page items transformed together.
type Group struct {
	Item
	ShapeIDs []string
	FrameIDs []string
}
