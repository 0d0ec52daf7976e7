package generate

import (
	"math"
	"strings"

	"github.com/tsawler/idmlhwpx/ast"
	"github.com/tsawler/idmlhwpx/hwpx"
	"github.com/tsawler/idmlhwpx/registry"
)

// Box and table limits.
const (
	minStrokeWidth  = 14   // thinnest outline Hancom draws, ~0.05mm
	maxCornerRatio  = 50   // a ratio of 50 makes the short side a semicircle
	smallCellHeight = 1600 // rows below this keep a fixed line height
	tableCellMargin = 141
)

// box describes a text box independently of how it is anchored.
type box struct {
	name        string
	width       int64
	height      int64
	inset       ast.Insets
	align       ast.VerticalAlign
	vertical    bool
	fill        string
	stroke      string
	strokeWidth int64
	strokeType  string
	radius      int64
	paragraphs  []*ast.Paragraph
}

// ============================================================================
// Text frames
// ============================================================================

func (g *Generator) textFrame(b *ast.TextFrameBlock, z int) *hwpx.Rect {
	return g.textBox(box{
		name:        b.SourceID,
		width:       size(b.Frame.Width),
		height:      size(b.Frame.Height),
		inset:       b.Inset,
		align:       b.VerticalAlign,
		vertical:    b.VerticalText,
		fill:        b.FillColor,
		stroke:      b.StrokeColor,
		strokeWidth: b.StrokeWeight,
		strokeType:  b.StrokeType,
		radius:      b.CornerRadius,
		paragraphs:  b.Paragraphs,
	}, z, paperPlacement(b.Frame))
}

// textBox builds an hp:rect holding the box paragraphs in a drawText
// sub-list. An outline is drawn only for a resolved colour with a positive
// weight.
func (g *Generator) textBox(bx box, z int, placement hwpx.Placement) *hwpx.Rect {
	rect := hwpx.NewRect(g.doc.NextShapeID(), g.doc.NextShapeID(), z, bx.width, bx.height, placement)
	if strings.HasPrefix(bx.stroke, "#") && bx.strokeWidth > 0 {
		rect.LineShape = hwpx.NewLineShape(bx.stroke, max(bx.strokeWidth, minStrokeWidth), registry.StrokeType(bx.strokeType), 0)
	}
	if bx.fill != "" {
		rect.FillBrush = &hwpx.FillBrush{WinBrush: hwpx.WinBrush{FaceColor: bx.fill, HatchColor: "#000000"}}
	}
	rect.Ratio = cornerRatio(bx.radius, bx.width, bx.height)

	sub := hwpx.NewSubList(vertAlign(bx.align))
	if bx.vertical {
		sub.TextDirection = "VERTICAL"
	}
	sub.TextWidth = max(bx.width-bx.inset.Left-bx.inset.Right, 0)
	sub.TextHeight = max(bx.height-bx.inset.Top-bx.inset.Bottom, 0)
	sub.Paragraphs = g.paragraphs(bx.paragraphs, 0)

	rect.DrawText = &hwpx.DrawText{
		LastWidth: bx.width,
		Name:      bx.name,
		SubList:   sub,
		TextMargin: hwpx.Margin{
			Left:   bx.inset.Left,
			Right:  bx.inset.Right,
			Top:    bx.inset.Top,
			Bottom: bx.inset.Bottom,
		},
	}
	return rect
}

// cornerRatio converts a corner radius into the percentage of the shorter
// side that Hancom uses for rounded rectangles.
func cornerRatio(radius, w, h int64) int {
	short := min(w, h)
	if radius <= 0 || short <= 0 {
		return 0
	}
	ratio := int(math.Round(float64(radius) * 100 / float64(short)))
	return min(ratio, maxCornerRatio)
}

func vertAlign(v ast.VerticalAlign) string {
	switch v {
	case ast.VAlignCenter:
		return "CENTER"
	case ast.VAlignBottom:
		return "BOTTOM"
	default:
		return "TOP"
	}
}

// ============================================================================
// Tables
// ============================================================================

// table builds an hp:tbl. Cells are written in the row where they start,
// each with its own border fill.
func (g *Generator) table(t *ast.Table, z int, placement hwpx.Placement) *hwpx.Table {
	if t == nil {
		return nil
	}
	if t.RowCount() == 0 || t.ColCount() == 0 {
		g.warn(PhaseTarget, t.SourceID, "table has no rows or columns; skipped")
		return nil
	}
	tbl := hwpx.NewTable(g.doc.NextShapeID(), z, t.RowCount(), t.ColCount(), placement)
	tbl.InMargin = hwpx.Margin{Left: tableCellMargin, Right: tableCellMargin, Top: tableCellMargin, Bottom: tableCellMargin}

	for _, row := range t.Rows {
		tr := &hwpx.TableRow{}
		for _, c := range row.Cells {
			tr.Cells = append(tr.Cells, g.cell(c))
		}
		tbl.Rows = append(tbl.Rows, tr)
	}
	return tbl
}

func (g *Generator) cell(c *ast.TableCell) *hwpx.TableCell {
	sub := hwpx.NewSubList(vertAlign(c.VerticalAlign))
	sub.TextWidth = max(c.Width-c.Margins.Left-c.Margins.Right, 0)
	sub.TextHeight = max(c.Height-c.Margins.Top-c.Margins.Bottom, 0)

	var fixed int64
	if c.Height > 0 && c.Height < smallCellHeight {
		fixed = c.Height
	}
	sub.Paragraphs = g.paragraphs(c.Paragraphs, fixed)

	return &hwpx.TableCell{
		Name:            c.SourceID,
		HasMargin:       true,
		BorderFillIDRef: g.styles.CellBorderFill(c),
		SubList:         sub,
		CellAddr:        hwpx.CellAddr{ColAddr: c.Col, RowAddr: c.Row},
		CellSpan:        hwpx.CellSpan{ColSpan: max(c.ColSpan, 1), RowSpan: max(c.RowSpan, 1)},
		CellSz:          hwpx.WH{Width: c.Width, Height: c.Height},
		CellMargin: hwpx.Margin{
			Left:   c.Margins.Left,
			Right:  c.Margins.Right,
			Top:    c.Margins.Top,
			Bottom: c.Margins.Bottom,
		},
	}
}

// ============================================================================
// Pictures
// ============================================================================

// figure embeds the figure image and places it behind the text. A figure
// without pixels is skipped with a warning.
func (g *Generator) figure(f *ast.Figure, z int) *hwpx.Picture {
	if len(f.ImageData) == 0 {
		g.warn(PhaseImage, f.SourceID, "figure has no image data; skipped")
		return nil
	}
	w, h := size(f.Frame.Width), size(f.Frame.Height)
	pic := g.picture(f.ImageData, f.ImageFormat, f.PixelWidth, f.PixelHeight, w, h, z, paperPlacement(f.Frame))
	if angle := int(math.Round(f.Rotation)); angle != 0 {
		pic.RotationInfo.Angle = angle
	}
	return pic
}

// background places a page background at the paper origin, under every
// other object of the page.
func (g *Generator) background(bg *ast.PageBackground, z int) *hwpx.Picture {
	if len(bg.PNG) == 0 {
		return nil
	}
	w, h := size(bg.Width), size(bg.Height)
	return g.picture(bg.PNG, "png", bg.PixelWidth, bg.PixelHeight, w, h, z, hwpx.PaperPlacement(0, 0, w, h))
}

func (g *Generator) picture(data []byte, format string, pixelW, pixelH int, w, h int64, z int, placement hwpx.Placement) *hwpx.Picture {
	bin := g.doc.AddBinData(data, format)
	g.stats.Images++
	return hwpx.NewPicture(g.doc.NextShapeID(), g.doc.NextShapeID(), z, w, h, pixelW, pixelH, bin, placement)
}
