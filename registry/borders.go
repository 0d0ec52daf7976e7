package registry

import (
	"fmt"
	"math"
	"strings"

	"github.com/tsawler/idmlhwpx/ast"
	"github.com/tsawler/idmlhwpx/hwpx"
)

// lineWidths are the border widths OWPML accepts, in millimetres.
var lineWidths = []float64{0.1, 0.12, 0.15, 0.2, 0.25, 0.3, 0.4, 0.5, 0.6, 0.7, 1.0, 1.5, 2.0, 3.0, 4.0, 5.0}

// LineWidth converts a weight in HWPUNIT to the nearest accepted border
// width string, e.g. "0.12 mm".
func LineWidth(weight int64) string {
	mm := float64(weight) / 7200 * 25.4
	best := lineWidths[0]
	for _, w := range lineWidths {
		if math.Abs(w-mm) < math.Abs(best-mm) {
			best = w
		}
	}
	return trimFloat(best) + " mm"
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s
}

// StrokeType maps a source stroke type name to an OWPML line type.
// Unknown and empty names are SOLID.
func StrokeType(name string) string {
	n := strings.ToLower(name)
	n = n[strings.LastIndex(n, "/")+1:]
	switch {
	case n == "none":
		return "NONE"
	case strings.Contains(n, "dot"):
		return "DOT"
	case strings.Contains(n, "dash"):
		return "DASH"
	default:
		return "SOLID"
	}
}

func border(b ast.CellBorder) hwpx.Border {
	if !b.Visible() {
		return hwpx.Border{Type: "NONE", Width: "0.1 mm", Color: "#000000"}
	}
	return hwpx.Border{Type: StrokeType(b.Type), Width: LineWidth(b.Weight), Color: b.Color}
}

// BorderFillFor returns a border fill with the given edges and background,
// creating it on first use. An empty fill means no background.
func (r *StyleRegistry) BorderFillFor(top, left, bottom, right ast.CellBorder, fill string) string {
	bf := hwpx.NewBorderFill()
	bf.TopBorder = border(top)
	bf.LeftBorder = border(left)
	bf.BottomBorder = border(bottom)
	bf.RightBorder = border(right)
	if fill != "" {
		bf.FillBrush = &hwpx.FillBrush{WinBrush: hwpx.WinBrush{FaceColor: fill, HatchColor: "#000000"}}
	}

	sig := fmt.Sprintf("%v|%v|%v|%v|%s", bf.TopBorder, bf.LeftBorder, bf.BottomBorder, bf.RightBorder, fill)
	if id, ok := r.borderBySig[sig]; ok {
		return id
	}
	id := r.header.AddBorderFill(bf)
	r.borderBySig[sig] = id
	return id
}

// UniformBorderFill returns a border fill with the same edge on all sides.
func (r *StyleRegistry) UniformBorderFill(edge ast.CellBorder, fill string) string {
	return r.BorderFillFor(edge, edge, edge, edge, fill)
}

// CellBorderFill returns the border fill for a table cell.
func (r *StyleRegistry) CellBorderFill(c *ast.TableCell) string {
	return r.BorderFillFor(c.Top, c.Left, c.Bottom, c.Right, c.FillColor)
}

// BorderFillCount returns the number of border fills in the header.
func (r *StyleRegistry) BorderFillCount() int {
	return len(r.header.RefList.BorderFills.Items)
}
