package ast

import (
	"sort"
	"strings"
)

// BlockType identifies the concrete type of a Block
type BlockType int

const (
	BlockTypeTextFrame BlockType = iota
	BlockTypeTable
	BlockTypeFigure
)

func (bt BlockType) String() string {
	switch bt {
	case BlockTypeTextFrame:
		return "TextFrame"
	case BlockTypeTable:
		return "Table"
	case BlockTypeFigure:
		return "Figure"
	default:
		return "Unknown"
	}
}

// Category orders blocks for emission. Lower categories are placed first
// and therefore paint underneath higher ones.
type Category int

const (
	CategoryBackground Category = iota
	CategoryDesignImage
	CategoryVector
	CategoryRasterImage
	CategoryText
)

func (c Category) String() string {
	switch c {
	case CategoryBackground:
		return "background"
	case CategoryDesignImage:
		return "design-image"
	case CategoryVector:
		return "vector"
	case CategoryRasterImage:
		return "raster-image"
	case CategoryText:
		return "text"
	default:
		return "unknown"
	}
}

// Block is a positioned element of a section. Implemented only by
// *TextFrameBlock, *Table and *Figure.
type Block interface {
	Type() BlockType
	Bounds() Rect
	ZIndex() int
	Category() Category
	isBlock()
}

// SortBlocks orders blocks by category, then by ascending z-order. The sort
// is stable so equal keys keep source order.
func SortBlocks(blocks []Block) {
	sort.SliceStable(blocks, func(i, j int) bool {
		ci, cj := blocks[i].Category(), blocks[j].Category()
		if ci != cj {
			return ci < cj
		}
		return blocks[i].ZIndex() < blocks[j].ZIndex()
	})
}

// VerticalAlign is the vertical placement of text inside a frame or cell.
type VerticalAlign int

const (
	VAlignTop VerticalAlign = iota
	VAlignCenter
	VAlignBottom
	VAlignJustify
)

func (v VerticalAlign) String() string {
	switch v {
	case VAlignCenter:
		return "CENTER"
	case VAlignBottom:
		return "BOTTOM"
	case VAlignJustify:
		return "JUSTIFY"
	default:
		return "TOP"
	}
}

// ParseVerticalAlign maps IDML VerticalJustification values. Unknown
// values map to top.
func ParseVerticalAlign(s string) VerticalAlign {
	switch strings.ToLower(s) {
	case "centeralign", "center":
		return VAlignCenter
	case "bottomalign", "bottom":
		return VAlignBottom
	case "justifyalign", "justify":
		return VAlignJustify
	default:
		return VAlignTop
	}
}

// TextFrameBlock is a standalone positioned text container.
type TextFrameBlock struct {
	SourceID string
	Frame    Rect
	ZOrder   int

	ColumnCount   int
	ColumnGutter  int64
	VerticalText  bool
	VerticalAlign VerticalAlign
	Inset         Insets

	FillColor    string
	StrokeColor  string
	StrokeWeight int64
	StrokeType   string
	FillTint     float64
	StrokeTint   float64
	CornerRadius int64
	FromGroup    bool

	Paragraphs []*Paragraph
}

func (b *TextFrameBlock) Type() BlockType    { return BlockTypeTextFrame }
func (b *TextFrameBlock) Bounds() Rect       { return b.Frame }
func (b *TextFrameBlock) ZIndex() int        { return b.ZOrder }
func (b *TextFrameBlock) Category() Category { return CategoryText }
func (b *TextFrameBlock) isBlock()           {}

// PlainText returns the block text, one line per paragraph.
func (b *TextFrameBlock) PlainText() string {
	return paragraphsText(b.Paragraphs)
}

// FigureKind distinguishes placed images from rasterized vector art.
type FigureKind int

const (
	FigureImage FigureKind = iota
	FigureRenderedShape
	FigureRenderedGroup
)

func (k FigureKind) String() string {
	switch k {
	case FigureImage:
		return "IMAGE"
	case FigureRenderedShape:
		return "RENDERED_SHAPE"
	case FigureRenderedGroup:
		return "RENDERED_GROUP"
	default:
		return "UNKNOWN"
	}
}

// Figure is a positioned picture: a linked image or a rendered shape.
type Figure struct {
	SourceID string
	Kind     FigureKind
	Frame    Rect
	ZOrder   int
	Rotation float64
	Layer    Category

	ImageFormat string // png, jpg, gif, bmp
	ImageData   []byte
	ImagePath   string
	PixelWidth  int
	PixelHeight int
	Placeholder bool
}

func (f *Figure) Type() BlockType    { return BlockTypeFigure }
func (f *Figure) Bounds() Rect       { return f.Frame }
func (f *Figure) ZIndex() int        { return f.ZOrder }
func (f *Figure) Category() Category { return f.Layer }
func (f *Figure) isBlock()           {}
