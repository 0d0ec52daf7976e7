package gridmerge

import (
	"sort"

	"github.com/tsawler/idmlhwpx/ast"
)

// Merger merges text frames into a table.
type Merger struct {
	// EdgeTolerance collapses grid lines closer than this distance
	// (HWPUNIT). Zero keeps every distinct edge.
	EdgeTolerance int64
}

// NewMerger creates a merger with exact edge matching.
func NewMerger() *Merger {
	return &Merger{}
}

// Grid is the claim map built from a set of frames.
type Grid struct {
	// XLines and YLines are the sorted grid line positions.
	XLines []int64
	YLines []int64

	// Owner maps [row][col] to an index into Frames, or -1.
	Owner [][]int

	// Frames are the frames that took part, in input order.
	Frames []*ast.TextFrameBlock
}

// Rows returns the number of grid rows.
func (g *Grid) Rows() int { return len(g.YLines) - 1 }

// Cols returns the number of grid columns.
func (g *Grid) Cols() int { return len(g.XLines) - 1 }

// Extent is a rectangle of grid cells: rows [Row, Row+RowSpan) and columns
// [Col, Col+ColSpan).
type Extent struct {
	Row, Col         int
	RowSpan, ColSpan int
}

// Empty reports whether the extent covers no cells.
func (e Extent) Empty() bool { return e.RowSpan <= 0 || e.ColSpan <= 0 }

// Result is the outcome of a merge.
type Result struct {
	Table *ast.Table
	Grid  *Grid

	// Extents holds the final extent of each frame, keyed by frame.
	Extents map[*ast.TextFrameBlock]Extent

	// Hidden lists frames that own no cells.
	Hidden []*ast.TextFrameBlock
}

// Merge merges frames into one table. It returns nil when no frame has a
// positive size.
func (m *Merger) Merge(frames []*ast.TextFrameBlock) *Result {
	g := m.Build(frames)
	if g == nil {
		return nil
	}

	res := &Result{Grid: g, Extents: make(map[*ast.TextFrameBlock]Extent)}
	covered := make([][]bool, g.Rows())
	for r := range covered {
		covered[r] = make([]bool, g.Cols())
	}

	var placed []placedFrame
	for i, f := range g.Frames {
		ext := g.largestExtent(i)
		if ext.Empty() {
			res.Hidden = append(res.Hidden, f)
			continue
		}
		res.Extents[f] = ext
		for r := ext.Row; r < ext.Row+ext.RowSpan; r++ {
			for c := ext.Col; c < ext.Col+ext.ColSpan; c++ {
				covered[r][c] = true
			}
		}
		placed = append(placed, placedFrame{frame: f, ext: ext})
	}

	res.Table = g.table(placed, covered)
	return res
}

// Build collects grid lines and resolves cell ownership. It returns nil
// when no frame has a positive size.
func (m *Merger) Build(frames []*ast.TextFrameBlock) *Grid {
	g := &Grid{}
	for _, f := range frames {
		if f == nil || f.Frame.Width <= 0 || f.Frame.Height <= 0 {
			continue
		}
		g.Frames = append(g.Frames, f)
	}
	if len(g.Frames) == 0 {
		return nil
	}

	var xs, ys []int64
	for _, f := range g.Frames {
		x0, y0, x1, y1 := clampedEdges(f.Frame)
		xs = append(xs, x0, x1)
		ys = append(ys, y0, y1)
	}
	g.XLines = m.gridLines(xs)
	g.YLines = m.gridLines(ys)

	g.Owner = make([][]int, g.Rows())
	for r := range g.Owner {
		g.Owner[r] = make([]int, g.Cols())
		for c := range g.Owner[r] {
			g.Owner[r][c] = -1
		}
	}

	// Highest z claims first; equal z keeps input order.
	order := make([]int, len(g.Frames))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return g.Frames[order[a]].ZOrder > g.Frames[order[b]].ZOrder
	})

	for _, idx := range order {
		nominal := g.nominalExtent(idx)
		for r := nominal.Row; r < nominal.Row+nominal.RowSpan; r++ {
			for c := nominal.Col; c < nominal.Col+nominal.ColSpan; c++ {
				if g.Owner[r][c] < 0 {
					g.Owner[r][c] = idx
				}
			}
		}
	}
	return g
}

func clampedEdges(r ast.Rect) (x0, y0, x1, y1 int64) {
	return max(r.X, 0), max(r.Y, 0), max(r.Right(), 0), max(r.Bottom(), 0)
}

// gridLines sorts and de-duplicates positions, collapsing runs of lines
// within EdgeTolerance onto the first of the run.
func (m *Merger) gridLines(pos []int64) []int64 {
	sort.Slice(pos, func(i, j int) bool { return pos[i] < pos[j] })
	lines := make([]int64, 0, len(pos))
	for _, p := range pos {
		if len(lines) > 0 && p-lines[len(lines)-1] <= m.EdgeTolerance {
			continue
		}
		lines = append(lines, p)
	}
	return lines
}

// lineIndex returns the index of the grid line nearest to v.
func lineIndex(lines []int64, v int64) int {
	i := sort.Search(len(lines), func(i int) bool { return lines[i] >= v })
	if i == len(lines) {
		return len(lines) - 1
	}
	if i > 0 && v-lines[i-1] < lines[i]-v {
		return i - 1
	}
	return i
}

// nominalExtent is the cell range covered by the frame's own bounds.
func (g *Grid) nominalExtent(idx int) Extent {
	x0, y0, x1, y1 := clampedEdges(g.Frames[idx].Frame)
	c0, c1 := lineIndex(g.XLines, x0), lineIndex(g.XLines, x1)
	r0, r1 := lineIndex(g.YLines, y0), lineIndex(g.YLines, y1)
	return Extent{Row: r0, Col: c0, RowSpan: r1 - r0, ColSpan: c1 - c0}
}

// largestExtent finds the largest-area rectangle of cells owned by frame
// idx. Candidate rectangles are visited top to bottom, left to right, and
// only a strictly larger area replaces the current best.
func (g *Grid) largestExtent(idx int) Extent {
	n := g.nominalExtent(idx)
	var best Extent
	var bestArea int64 = -1

	for top := n.Row; top < n.Row+n.RowSpan; top++ {
		for left := n.Col; left < n.Col+n.ColSpan; left++ {
			if g.Owner[top][left] != idx {
				continue
			}
			// widest run of owned cells per bottom row, shrinking as it grows
			maxCol := n.Col + n.ColSpan
			for bottom := top; bottom < n.Row+n.RowSpan; bottom++ {
				right := left
				for right < maxCol && g.Owner[bottom][right] == idx {
					right++
				}
				maxCol = right
				if maxCol == left {
					break
				}
				area := (g.YLines[bottom+1] - g.YLines[top]) * (g.XLines[maxCol] - g.XLines[left])
				if area > bestArea {
					bestArea = area
					best = Extent{Row: top, Col: left, RowSpan: bottom - top + 1, ColSpan: maxCol - left}
				}
			}
		}
	}
	return best
}
