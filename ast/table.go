package ast

import "strings"

// Table is a positioned grid of cells, either a source table or the result
// of merging overlapping text frames.
type Table struct {
	SourceID     string
	Frame        Rect
	ZOrder       int
	ColumnWidths []int64
	Rows         []*TableRow

	// FromFrames marks tables synthesized from a text-frame grid.
	FromFrames bool
}

// TableRow is one row of a table.
type TableRow struct {
	Height int64
	Cells  []*TableCell
}

// CellBorder describes one edge of a cell. A zero weight means no border.
type CellBorder struct {
	Color  string
	Weight int64
	Type   string
}

// Visible reports whether the border would be drawn.
func (b CellBorder) Visible() bool {
	return b.Weight > 0 && b.Color != "" && b.Type != "None"
}

// TableCell is one cell. Row and Col address the top-left grid slot the
// cell occupies; RowSpan and ColSpan are at least 1.
type TableCell struct {
	Row     int
	Col     int
	RowSpan int
	ColSpan int
	Width   int64
	Height  int64

	FillColor     string
	Top           CellBorder
	Left          CellBorder
	Bottom        CellBorder
	Right         CellBorder
	Margins       Insets
	VerticalAlign VerticalAlign

	// SourceID names the text frame a merged cell came from, if any.
	SourceID   string
	Paragraphs []*Paragraph
}

// IsEmpty reports whether the cell holds no paragraphs with content.
func (c *TableCell) IsEmpty() bool {
	for _, p := range c.Paragraphs {
		if len(p.Items) > 0 {
			return false
		}
	}
	return true
}

// PlainText returns the cell text
func (c *TableCell) PlainText() string {
	return paragraphsText(c.Paragraphs)
}

func (t *Table) Type() BlockType    { return BlockTypeTable }
func (t *Table) Bounds() Rect       { return t.Frame }
func (t *Table) ZIndex() int        { return t.ZOrder }
func (t *Table) Category() Category { return CategoryText }
func (t *Table) isBlock()           {}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of grid columns
func (t *Table) ColCount() int {
	return len(t.ColumnWidths)
}

// Cell returns the cell covering the grid slot (row, col), following spans.
// Returns nil when no cell covers the slot.
func (t *Table) Cell(row, col int) *TableCell {
	for _, r := range t.Rows {
		for _, c := range r.Cells {
			if row >= c.Row && row < c.Row+c.RowSpan && col >= c.Col && col < c.Col+c.ColSpan {
				return c
			}
		}
	}
	return nil
}

// Cells returns all cells in row-major order.
func (t *Table) Cells() []*TableCell {
	var out []*TableCell
	for _, r := range t.Rows {
		out = append(out, r.Cells...)
	}
	return out
}

// PlainText returns tab-separated cell text, one line per row.
func (t *Table) PlainText() string {
	var sb strings.Builder
	for i, r := range t.Rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for j, c := range r.Cells {
			if j > 0 {
				sb.WriteByte('\t')
			}
			sb.WriteString(strings.ReplaceAll(c.PlainText(), "\n", " "))
		}
	}
	return sb.String()
}
