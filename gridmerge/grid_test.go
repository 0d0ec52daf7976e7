package gridmerge

import (
	"testing"

	"github.com/tsawler/idmlhwpx/ast"
)

func frame(id string, x, y, w, h int64, z int) *ast.TextFrameBlock {
	p := &ast.Paragraph{}
	p.AddItem(&ast.TextRun{Text: id})
	return &ast.TextFrameBlock{
		SourceID:   id,
		Frame:      ast.Rect{X: x, Y: y, Width: w, Height: h},
		ZOrder:     z,
		Paragraphs: []*ast.Paragraph{p},
	}
}

func equalLines(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ============================================================================
// Grid construction
// ============================================================================

func TestMerge_OverlappingPair(t *testing.T) {
	low := frame("A", 0, 0, 100, 50, 1)
	high := frame("B", 50, 0, 100, 50, 2)

	res := NewMerger().Merge([]*ast.TextFrameBlock{low, high})
	if res == nil {
		t.Fatal("Merge returned nil")
	}

	if !equalLines(res.Grid.XLines, []int64{0, 50, 100, 150}) {
		t.Errorf("XLines = %v", res.Grid.XLines)
	}
	if !equalLines(res.Grid.YLines, []int64{0, 50}) {
		t.Errorf("YLines = %v", res.Grid.YLines)
	}

	if got := res.Extents[high]; got != (Extent{Row: 0, Col: 1, RowSpan: 1, ColSpan: 2}) {
		t.Errorf("high extent = %+v", got)
	}
	if got := res.Extents[low]; got != (Extent{Row: 0, Col: 0, RowSpan: 1, ColSpan: 1}) {
		t.Errorf("low extent = %+v", got)
	}

	tbl := res.Table
	if tbl.RowCount() != 1 || tbl.ColCount() != 3 {
		t.Fatalf("table is %dx%d", tbl.RowCount(), tbl.ColCount())
	}
	cells := tbl.Rows[0].Cells
	if len(cells) != 2 {
		t.Fatalf("got %d cells, want 2", len(cells))
	}
	if cells[0].PlainText() != "A" || cells[0].Width != 50 {
		t.Errorf("first cell = %q width %d", cells[0].PlainText(), cells[0].Width)
	}
	if cells[1].PlainText() != "B" || cells[1].ColSpan != 2 || cells[1].Width != 100 {
		t.Errorf("second cell = %q span %d width %d", cells[1].PlainText(), cells[1].ColSpan, cells[1].Width)
	}
	if tbl.Frame != (ast.Rect{X: 0, Y: 0, Width: 150, Height: 50}) {
		t.Errorf("table frame = %+v", tbl.Frame)
	}
	if tbl.ZOrder != 2 || !tbl.FromFrames {
		t.Errorf("z = %d fromFrames = %v", tbl.ZOrder, tbl.FromFrames)
	}
}

func TestMerge_DisjointFrames(t *testing.T) {
	a := frame("A", 0, 0, 100, 50, 1)
	b := frame("B", 200, 100, 100, 50, 1)

	res := NewMerger().Merge([]*ast.TextFrameBlock{a, b})
	tbl := res.Table

	var nonEmpty []*ast.TableCell
	for _, c := range tbl.Cells() {
		if !c.IsEmpty() {
			nonEmpty = append(nonEmpty, c)
		}
	}
	if len(nonEmpty) != 2 {
		t.Fatalf("got %d non-empty cells, want 2", len(nonEmpty))
	}
	for _, c := range nonEmpty {
		if c.RowSpan != 1 || c.ColSpan != 1 {
			t.Errorf("cell %s spans %dx%d", c.SourceID, c.RowSpan, c.ColSpan)
		}
	}

	// row 0: A + empty(2); row 1: empty(3); row 2: empty(2) + B
	wantCells := []int{2, 1, 2}
	for r, want := range wantCells {
		if got := len(tbl.Rows[r].Cells); got != want {
			t.Errorf("row %d has %d cells, want %d", r, got, want)
		}
	}
	if span := tbl.Rows[1].Cells[0].ColSpan; span != 3 {
		t.Errorf("merged empty cell span = %d, want 3", span)
	}
	if tbl.Cell(2, 2).SourceID != "B" {
		t.Errorf("cell (2,2) = %q, want B", tbl.Cell(2, 2).SourceID)
	}
}

func TestMerge_ContainedFrame(t *testing.T) {
	outer := frame("outer", 0, 0, 300, 300, 1)
	inner := frame("inner", 100, 100, 100, 100, 2)

	res := NewMerger().Merge([]*ast.TextFrameBlock{outer, inner})

	if got := res.Extents[inner]; got != (Extent{Row: 1, Col: 1, RowSpan: 1, ColSpan: 1}) {
		t.Errorf("inner extent = %+v", got)
	}
	ext := res.Extents[outer]
	if ext != (Extent{Row: 0, Col: 0, RowSpan: 1, ColSpan: 3}) {
		t.Errorf("outer extent = %+v, want the top row", ext)
	}
	if res.Table.Cell(1, 1).SourceID != "inner" {
		t.Error("inner frame cell missing")
	}
	for _, rc := range [][2]int{{1, 0}, {1, 2}, {2, 0}, {2, 1}} {
		if c := res.Table.Cell(rc[0], rc[1]); c == nil || !c.IsEmpty() {
			t.Errorf("cell %v should be empty", rc)
		}
	}
}

func TestMerge_HiddenFrame(t *testing.T) {
	under := frame("under", 10, 10, 20, 20, 1)
	over := frame("over", 0, 0, 100, 100, 5)

	res := NewMerger().Merge([]*ast.TextFrameBlock{under, over})
	if len(res.Hidden) != 1 || res.Hidden[0] != under {
		t.Fatalf("Hidden = %v", res.Hidden)
	}
	if _, ok := res.Extents[under]; ok {
		t.Error("hidden frame should have no extent")
	}
}

func TestMerge_DegenerateFrames(t *testing.T) {
	m := NewMerger()

	if res := m.Merge(nil); res != nil {
		t.Error("expected nil for no frames")
	}
	if res := m.Merge([]*ast.TextFrameBlock{frame("z", 0, 0, 0, 10, 1), frame("n", 0, 0, 10, -1, 1)}); res != nil {
		t.Error("expected nil when every frame is degenerate")
	}

	res := m.Merge([]*ast.TextFrameBlock{frame("ok", 10, 20, 30, 40, 1), frame("z", 0, 0, 0, 10, 1)})
	if res == nil {
		t.Fatal("expected a table")
	}
	if res.Table.RowCount() != 1 || res.Table.ColCount() != 1 {
		t.Errorf("single frame should give 1x1, got %dx%d", res.Table.RowCount(), res.Table.ColCount())
	}
	if res.Table.Frame != (ast.Rect{X: 10, Y: 20, Width: 30, Height: 40}) {
		t.Errorf("frame = %+v", res.Table.Frame)
	}
}

func TestMerge_NegativeEdgesClamped(t *testing.T) {
	res := NewMerger().Merge([]*ast.TextFrameBlock{frame("a", -20, -10, 100, 60, 1)})
	if res.Grid.XLines[0] != 0 || res.Grid.YLines[0] != 0 {
		t.Errorf("lines = %v / %v", res.Grid.XLines, res.Grid.YLines)
	}
	if res.Table.Frame.Width != 80 || res.Table.Frame.Height != 50 {
		t.Errorf("frame = %+v", res.Table.Frame)
	}
}

func TestMerge_EdgeTolerance(t *testing.T) {
	m := NewMerger()
	m.EdgeTolerance = 2

	res := m.Merge([]*ast.TextFrameBlock{frame("a", 0, 0, 100, 50, 1), frame("b", 101, 0, 100, 50, 1)})
	if !equalLines(res.Grid.XLines, []int64{0, 100, 201}) {
		t.Errorf("XLines = %v", res.Grid.XLines)
	}
	if len(res.Table.Rows[0].Cells) != 2 {
		t.Errorf("got %d cells, want 2", len(res.Table.Rows[0].Cells))
	}
}

// ============================================================================
// Cell content
// ============================================================================

func TestFrameCellDecoration(t *testing.T) {
	f := frame("a", 0, 0, 100, 100, 1)
	f.FillColor = "#FFEEDD"
	f.StrokeColor = "#000000"
	f.StrokeWeight = 100
	f.Inset = ast.Insets{Top: 10, Left: 20, Bottom: 30, Right: 40}
	f.VerticalAlign = ast.VAlignBottom

	cell := NewMerger().Merge([]*ast.TextFrameBlock{f}).Table.Rows[0].Cells[0]
	if cell.FillColor != "#FFEEDD" {
		t.Errorf("fill = %q", cell.FillColor)
	}
	for _, b := range []ast.CellBorder{cell.Top, cell.Left, cell.Bottom, cell.Right} {
		if !b.Visible() || b.Weight != 100 || b.Type != "Solid" {
			t.Errorf("border = %+v", b)
		}
	}
	if cell.Margins != f.Inset {
		t.Errorf("margins = %+v", cell.Margins)
	}
	if cell.VerticalAlign != ast.VAlignBottom {
		t.Errorf("vertical align = %v", cell.VerticalAlign)
	}

	plain := frame("b", 0, 0, 10, 10, 1)
	plain.StrokeColor = "#000000"
	c := NewMerger().Merge([]*ast.TextFrameBlock{plain}).Table.Rows[0].Cells[0]
	if c.Top.Visible() {
		t.Error("zero-weight stroke must not produce a border")
	}
}
