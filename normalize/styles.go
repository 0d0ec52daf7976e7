package normalize

import (
	"math"
	"sort"

	"github.com/tsawler/idmlhwpx/ast"
	"github.com/tsawler/idmlhwpx/geometry"
	"github.com/tsawler/idmlhwpx/idml"
)

// fonts lists the document's font families in name order.
func (n *Normalizer) fonts() []ast.FontDef {
	out := make([]ast.FontDef, 0, len(n.doc.Fonts))
	for family, f := range n.doc.Fonts {
		out = append(out, ast.FontDef{Family: family, Style: f.StyleName, Type: f.FontType})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Family < out[j].Family })
	return out
}

// styles flattens and converts style definitions. The idml reference
// becomes the style ID so that paragraphs and runs can refer to it.
func (n *Normalizer) styles(defs []*idml.StyleDef, resolver *idml.StyleResolver) []*ast.StyleDef {
	out := make([]*ast.StyleDef, 0, len(defs))
	for _, d := range defs {
		resolved, ok := resolver.Resolve(d.Ref)
		if !ok {
			resolved = d
		}
		out = append(out, n.styleDef(resolved))
	}
	return out
}

func (n *Normalizer) styleDef(d *idml.StyleDef) *ast.StyleDef {
	sd := &ast.StyleDef{
		ID:              d.Ref,
		Name:            d.Name,
		BasedOn:         d.BasedOn,
		FontFamily:      d.FontFamily,
		FontStyle:       d.FontStyle,
		Alignment:       ast.ParseAlignment(d.Justification),
		FirstLineIndent: hwp(d.FirstLineIndent),
		LeftMargin:      hwp(d.LeftIndent),
		RightMargin:     hwp(d.RightIndent),
		SpaceBefore:     hwp(d.SpaceBefore),
		SpaceAfter:      hwp(d.SpaceAfter),
	}
	if d.PointSize != nil {
		sd.FontSize = geometry.FontSizeToHwpunits(*d.PointSize)
	}
	if d.FillColor != "" {
		sd.TextColor, _ = n.colors.Resolve(d.FillColor)
	}

	switch {
	case d.Leading != nil:
		sd.LineSpacing = int(geometry.PointsToHwpunits(*d.Leading))
		sd.LineSpacingType = ast.LineSpacingFixed
	case d.AutoLeading != nil:
		sd.LineSpacing = int(math.Round(*d.AutoLeading))
		sd.LineSpacingType = ast.LineSpacingPercent
	}
	if d.Tracking != nil {
		sd.LetterSpacing = letterSpacing(*d.Tracking)
	}

	for _, t := range d.TabStops {
		sd.TabStops = append(sd.TabStops, ast.TabStop{
			Position: geometry.PointsToHwpunits(t.Position),
			Type:     t.Alignment,
			Leader:   t.Leader,
		})
	}
	return sd
}
