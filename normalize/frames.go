package normalize

import (
	"math"
	"strings"

	"github.com/tsawler/idmlhwpx/ast"
	"github.com/tsawler/idmlhwpx/colors"
	"github.com/tsawler/idmlhwpx/geometry"
	"github.com/tsawler/idmlhwpx/gridmerge"
	"github.com/tsawler/idmlhwpx/idml"
)

// noteObjectStyle marks instructor-note frames, which float above the body.
const noteObjectStyle = "교사용프레임"

// visibleFrames returns the canvas's text frames that are not on a hidden
// layer, without duplicates.
func (n *Normalizer) visibleFrames(c *canvas) []*idml.TextFrame {
	var kept []*idml.TextFrame
	for _, f := range c.spread.TextFrames {
		if n.doc.IsLayerHidden(f.LayerRef) || !c.contains(&f.Item) {
			continue
		}
		if n.isDuplicate(f, kept) {
			n.logger().Debug("skipping duplicate text frame", "frame", f.ID)
			continue
		}
		kept = append(kept, f)
	}
	return kept
}

// isDuplicate reports whether f repeats a frame already kept: the same
// placed position and the same size within tolerance.
func (n *Normalizer) isDuplicate(f *idml.TextFrame, kept []*idml.TextFrame) bool {
	tol := n.cfg.Tolerances
	r := geometry.TransformedRect(f.Bounds, f.Transform)
	for _, k := range kept {
		kr := geometry.TransformedRect(k.Bounds, k.Transform)
		if math.Abs(r.X-kr.X) < tol.Position && math.Abs(r.Y-kr.Y) < tol.Position &&
			math.Abs(r.Width-kr.Width) < tol.Size && math.Abs(r.Height-kr.Height) < tol.Size {
			return true
		}
	}
	return false
}

func isDeferred(f *idml.TextFrame) bool {
	return strings.Contains(f.ObjectStyle, noteObjectStyle) || f.AnchoredPosition == "Anchored"
}

// textBlocks adds one block per story started on the canvas. Body frames
// are merged into a table when enabled; notes and anchored frames are
// placed above everything else.
func (n *Normalizer) textBlocks(c *canvas, sec *ast.Section) {
	frames := n.visibleFrames(c)

	maxZ := 0
	for _, f := range frames {
		maxZ = max(maxZ, f.ZOrder)
	}

	seen := make(map[string]bool)
	var body, deferred []*ast.TextFrameBlock
	for _, f := range frames {
		if !f.IsChainHead() || seen[f.StoryID] {
			continue
		}
		story, ok := n.doc.Story(f.StoryID)
		if !ok {
			n.warn(PhaseParsing, f.ID, "story %q not found", f.StoryID)
			continue
		}
		if story.IsEmpty() {
			continue
		}
		seen[f.StoryID] = true

		blk := n.frameBlock(c, f, story)
		if isDeferred(f) {
			deferred = append(deferred, blk)
		} else {
			body = append(body, blk)
		}
	}

	for i, b := range deferred {
		b.ZOrder = maxZ + 1 + i
	}

	if n.cfg.MergeTextFrames && len(body) >= 2 {
		body = n.merge(body, sec)
	}
	for _, b := range body {
		sec.AddBlock(b)
	}
	for _, b := range deferred {
		sec.AddBlock(b)
	}
}

// merge replaces the sized frames of body with one table and returns the
// frames that could not take part.
func (n *Normalizer) merge(body []*ast.TextFrameBlock, sec *ast.Section) []*ast.TextFrameBlock {
	var sized, rest []*ast.TextFrameBlock
	for _, b := range body {
		if b.Frame.Width > 0 && b.Frame.Height > 0 {
			sized = append(sized, b)
		} else {
			rest = append(rest, b)
		}
	}
	if len(sized) < 2 {
		return body
	}

	m := gridmerge.NewMerger()
	m.EdgeTolerance = geometry.PointsToHwpunits(n.cfg.GridTolerance)
	res := m.Merge(sized)
	if res == nil {
		return body
	}
	for _, h := range res.Hidden {
		n.warn(PhaseCoordinate, h.SourceID, "text frame fully covered by other frames; dropped from merged table")
	}
	sec.AddBlock(res.Table)
	n.logger().Debug("merged text frames", "frames", len(sized), "rows", res.Grid.Rows(), "cols", res.Grid.Cols())
	return rest
}

func (n *Normalizer) frameBlock(c *canvas, f *idml.TextFrame, story *idml.Story) *ast.TextFrameBlock {
	blk := &ast.TextFrameBlock{
		SourceID:      f.ID,
		Frame:         c.rect(f.Bounds, f.Transform),
		ZOrder:        f.ZOrder,
		ColumnCount:   max(f.ColumnCount, 1),
		ColumnGutter:  geometry.PointsToHwpunits(f.ColumnGutter),
		VerticalAlign: ast.ParseVerticalAlign(f.VerticalJustification),
		Inset:         insets(f.Inset),
		FillColor:     n.paint(f.FillColor, f.FillTint),
		StrokeType:    f.StrokeType,
		FillTint:      f.FillTint,
		StrokeTint:    f.StrokeTint,
		CornerRadius:  geometry.PointsToHwpunits(f.CornerRadius),
		FromGroup:     f.ParentGroup != "",
	}
	if f.StrokeWeight > 0 {
		blk.StrokeColor = n.paint(f.StrokeColor, f.StrokeTint)
		if blk.StrokeColor != "" {
			blk.StrokeWeight = geometry.PointsToHwpunits(f.StrokeWeight)
		}
	}
	blk.Paragraphs = n.paragraphs(story.Paragraphs, map[string]bool{story.ID: true})
	return blk
}

func insets(in [4]float64) ast.Insets {
	return ast.Insets{
		Top:    geometry.PointsToHwpunits(in[0]),
		Left:   geometry.PointsToHwpunits(in[1]),
		Bottom: geometry.PointsToHwpunits(in[2]),
		Right:  geometry.PointsToHwpunits(in[3]),
	}
}

// paint resolves a fill or stroke swatch with its tint applied. Unknown
// swatches resolve to no colour.
func (n *Normalizer) paint(ref string, tint float64) string {
	if ref == "" || strings.Contains(ref, "None") {
		return ""
	}
	hex, ok := n.colors.ResolveExact(ref)
	if !ok {
		n.logger().Debug("unknown colour swatch", "ref", ref)
		return ""
	}
	return colors.ApplyTint(hex, tint)
}
