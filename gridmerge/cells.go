package gridmerge

import (
	"sort"
	"strings"

	"github.com/tsawler/idmlhwpx/ast"
)

type placedFrame struct {
	frame *ast.TextFrameBlock
	ext   Extent
}

// table lays out the frame cells and the empty filler cells row by row.
func (g *Grid) table(placed []placedFrame, covered [][]bool) *ast.Table {
	t := &ast.Table{
		Frame: ast.Rect{
			X:      g.XLines[0],
			Y:      g.YLines[0],
			Width:  g.XLines[len(g.XLines)-1] - g.XLines[0],
			Height: g.YLines[len(g.YLines)-1] - g.YLines[0],
		},
		ColumnWidths: make([]int64, g.Cols()),
		FromFrames:   true,
	}
	for c := range t.ColumnWidths {
		t.ColumnWidths[c] = g.XLines[c+1] - g.XLines[c]
	}

	ids := make([]string, 0, len(g.Frames))
	for i, f := range g.Frames {
		if i == 0 || f.ZOrder > t.ZOrder {
			t.ZOrder = f.ZOrder
		}
		if f.SourceID != "" {
			ids = append(ids, f.SourceID)
		}
	}
	t.SourceID = strings.Join(ids, "+")

	rows := make([]*ast.TableRow, g.Rows())
	for r := range rows {
		rows[r] = &ast.TableRow{Height: g.YLines[r+1] - g.YLines[r]}
	}

	for _, p := range placed {
		rows[p.ext.Row].Cells = append(rows[p.ext.Row].Cells, g.frameCell(p.frame, p.ext))
	}

	for r := range rows {
		for c := 0; c < g.Cols(); {
			if covered[r][c] {
				c++
				continue
			}
			start := c
			for c < g.Cols() && !covered[r][c] {
				c++
			}
			rows[r].Cells = append(rows[r].Cells, g.emptyCell(Extent{Row: r, Col: start, RowSpan: 1, ColSpan: c - start}))
		}
		sort.SliceStable(rows[r].Cells, func(i, j int) bool {
			return rows[r].Cells[i].Col < rows[r].Cells[j].Col
		})
	}

	t.Rows = rows
	return t
}

func (g *Grid) size(e Extent) (w, h int64) {
	return g.XLines[e.Col+e.ColSpan] - g.XLines[e.Col], g.YLines[e.Row+e.RowSpan] - g.YLines[e.Row]
}

func (g *Grid) emptyCell(e Extent) *ast.TableCell {
	w, h := g.size(e)
	return &ast.TableCell{
		Row: e.Row, Col: e.Col, RowSpan: e.RowSpan, ColSpan: e.ColSpan,
		Width: w, Height: h,
	}
}

// frameCell carries a frame's content and decoration into its cell.
func (g *Grid) frameCell(f *ast.TextFrameBlock, e Extent) *ast.TableCell {
	cell := g.emptyCell(e)
	cell.SourceID = f.SourceID
	cell.Paragraphs = f.Paragraphs
	cell.FillColor = f.FillColor
	cell.Margins = f.Inset
	cell.VerticalAlign = f.VerticalAlign
	if cell.VerticalAlign == ast.VAlignJustify {
		cell.VerticalAlign = ast.VAlignTop
	}
	if f.StrokeColor != "" && f.StrokeWeight > 0 {
		b := ast.CellBorder{Color: f.StrokeColor, Weight: f.StrokeWeight, Type: f.StrokeType}
		if b.Type == "" {
			b.Type = "Solid"
		}
		cell.Top, cell.Left, cell.Bottom, cell.Right = b, b, b, b
	}
	return cell
}
