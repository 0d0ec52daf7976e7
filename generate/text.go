package generate

import (
	"strings"

	"github.com/tsawler/idmlhwpx/ast"
	"github.com/tsawler/idmlhwpx/hwpx"
)

// paragraphs converts a paragraph list. A non-zero fixedLine forces a
// fixed line height and makes empty paragraphs use the 1pt character shape
// so that short table rows keep their height. The result is never empty.
func (g *Generator) paragraphs(ps []*ast.Paragraph, fixedLine int64) []*hwpx.Paragraph {
	out := make([]*hwpx.Paragraph, 0, len(ps))
	for _, p := range ps {
		out = append(out, g.paragraph(p, fixedLine))
	}
	if len(out) == 0 {
		out = append(out, g.paragraph(&ast.Paragraph{}, fixedLine))
	}
	return out
}

func (g *Generator) paragraph(p *ast.Paragraph, fixedLine int64) *hwpx.Paragraph {
	styleID := hwpx.DefaultStyleID
	paraPrID := hwpx.DefaultParaPrID
	charPrID := hwpx.DefaultCharPrID
	if p.StyleRef != "" {
		if id, ok := g.styles.StyleID(p.StyleRef); ok {
			styleID = id
		}
		if id, ok := g.styles.ParaPrID(p.StyleRef); ok {
			paraPrID = id
		}
		if id, ok := g.styles.CharPrID(p.StyleRef); ok {
			charPrID = id
		}
	}
	if p.HasOverrides() {
		paraPrID = g.styles.ParaPrFor(p.StyleRef, p)
	}
	if fixedLine > 0 {
		paraPrID = g.styles.FixedLineParaPr(fixedLine)
		if len(p.Items) == 0 {
			charPrID = g.styles.TinyCharPr()
		}
	}

	hp := g.doc.NewParagraph(paraPrID, styleID)
	w := runWriter{para: hp, base: charPrID}
	for _, item := range p.Items {
		switch v := item.(type) {
		case *ast.TextRun:
			g.textRun(&w, p.StyleRef, v)
		case *ast.Break:
			// Boxes and cells do not flow across columns or pages.
			w.run(w.base).AddText("\n")
		case *ast.Equation:
			g.equation(&w, v)
		case *ast.InlineObject:
			g.inlineObject(&w, v)
		}
	}
	if len(hp.Runs) == 0 {
		hp.AddRun(charPrID).AddText("")
	}
	return hp
}

// runWriter appends items to a paragraph, reusing the last run while the
// character shape stays the same.
type runWriter struct {
	para *hwpx.Paragraph
	base string
	last *hwpx.Run
}

func (w *runWriter) run(charPrID string) *hwpx.Run {
	if w.last == nil || w.last.CharPrIDRef != charPrID {
		w.last = w.para.AddRun(charPrID)
	}
	return w.last
}

func (g *Generator) textRun(w *runWriter, styleRef string, r *ast.TextRun) {
	if r.Text == "" {
		return
	}
	charPrID := w.base
	if r.HasOverrides() || r.CharStyleRef != "" {
		charPrID = g.styles.CharPrFor(styleRef, r)
	}
	w.run(charPrID).AddText(r.Text)
}

// equation writes an hp:equation. When no builder is configured or the
// build fails the source is kept as literal text.
func (g *Generator) equation(w *runWriter, eq *ast.Equation) {
	g.stats.Equations++
	if g.cfg.Equations != nil {
		built, err := g.cfg.Equations.Build(g.doc.NextShapeID(), eq)
		if err == nil {
			w.run(w.base).Add(built)
			return
		}
		g.warn(PhaseEquation, eq.Source, "equation conversion failed: %v", err)
	}
	w.run(w.base).AddText(literalEquation(eq))
}

func literalEquation(eq *ast.Equation) string {
	src := eq.Source
	if strings.TrimSpace(src) == "" {
		src = eq.Script
	}
	return "[" + src + "]"
}

// inlineObject writes an object that flows with the text as a character.
func (g *Generator) inlineObject(w *runWriter, obj *ast.InlineObject) {
	width, height := size(obj.Width), size(obj.Height)
	placement := hwpx.InlinePlacement(width, height)

	switch obj.Kind {
	case ast.InlineImage, ast.InlineRenderedGroup:
		if len(obj.ImageData) == 0 {
			g.warn(PhaseImage, obj.SourceID, "inline %s has no image data; skipped", strings.ToLower(obj.Kind.String()))
			return
		}
		w.run(w.base).Add(g.picture(obj.ImageData, obj.ImageFormat, obj.PixelWidth, obj.PixelHeight, width, height, 0, placement))
	case ast.InlineTextFrame:
		w.run(w.base).Add(g.textBox(box{
			name:        obj.SourceID,
			width:       width,
			height:      height,
			inset:       obj.Inset,
			fill:        obj.FillColor,
			stroke:      obj.StrokeColor,
			strokeWidth: minStrokeWidth,
			paragraphs:  obj.Paragraphs,
		}, 0, placement))
	case ast.InlineTable:
		if tbl := g.table(obj.Table, 0, placement); tbl != nil {
			w.run(w.base).Add(tbl)
		}
	default:
		g.warn(PhaseTarget, obj.SourceID, "unsupported inline object %s", obj.Kind)
	}
}
