package normalize

import (
	"math"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/idmlhwpx/ast"
	"github.com/tsawler/idmlhwpx/geometry"
	"github.com/tsawler/idmlhwpx/idml"
)

const (
	defaultPointSize = 10.0

	minLinePercent = 100
	maxLinePercent = 300

	maxLetterSpacing = 50

	// tableCellMargin is the inner margin of story tables.
	tableCellMargin = 141
)

var (
	blankLines   = regexp.MustCompile(`\n{2,}`)
	inlineMathRe = regexp.MustCompile(`\$([^$]+)\$`)

	tableBorder = ast.CellBorder{Color: "#000000", Weight: 50, Type: "Solid"}
)

// paragraphs converts ps. Stories of anchored and note frames found in ps
// follow the converted paragraphs instead of sitting inline.
func (n *Normalizer) paragraphs(ps []*idml.Paragraph, visiting map[string]bool) []*ast.Paragraph {
	out := make([]*ast.Paragraph, 0, len(ps))
	var deferred []*idml.TextFrame
	for _, p := range ps {
		ap, d := n.paragraph(p, visiting)
		out = append(out, ap)
		deferred = append(deferred, d...)
	}
	for _, f := range deferred {
		if story, nested, ok := n.anchoredStory(f, visiting); ok {
			out = append(out, n.paragraphs(story.Paragraphs, nested)...)
		}
	}
	return out
}

// paragraph converts p and returns the deferred frames anchored in it.
func (n *Normalizer) paragraph(p *idml.Paragraph, visiting map[string]bool) (*ast.Paragraph, []*idml.TextFrame) {
	style, known := n.paraStyles.Resolve(p.StyleRef)
	if p.StyleRef != "" && !known && !strings.Contains(p.StyleRef, "[No ") {
		n.warnOnce("pstyle:"+p.StyleRef, PhaseStyleMapping, p.StyleRef, "unknown paragraph style")
	}

	ap := &ast.Paragraph{
		Alignment:       ast.ParseAlignment(p.Justification),
		FirstLineIndent: hwp(p.FirstLineIndent),
		LeftMargin:      hwp(p.LeftIndent),
		RightMargin:     hwp(p.RightIndent),
		SpaceBefore:     hwp(p.SpaceBefore),
		SpaceAfter:      hwp(p.SpaceAfter),
		ShadingColor:    n.paint(p.ShadingColor, idml.Unset),
	}
	if n.cfg.IncludeStyles && known {
		ap.StyleRef = style.Ref
	}
	if p.Leading != nil {
		ap.LineSpacing = linePercent(*p.Leading, dominantSize(p, style))
		ap.LineSpacingType = ast.LineSpacingPercent
	}

	var deferred []*idml.TextFrame
	for _, r := range p.Runs {
		deferred = append(deferred, n.runItems(ap, r, p.Tracking, visiting)...)
	}
	trimBreaks(ap)
	return ap, deferred
}

// trimBreaks merges line breaks that meet at a run boundary and drops the
// paragraph's trailing line breaks.
func trimBreaks(p *ast.Paragraph) {
	items := p.Items[:0]
	for _, item := range p.Items {
		if isLineBreak(item) && len(items) > 0 && isLineBreak(items[len(items)-1]) {
			continue
		}
		items = append(items, item)
	}
	for len(items) > 0 && isLineBreak(items[len(items)-1]) {
		items = items[:len(items)-1]
	}
	p.Items = items
}

func isLineBreak(item ast.InlineItem) bool {
	b, ok := item.(*ast.Break)
	return ok && b.Kind == ast.BreakLine
}

// dominantSize is the largest explicit run size, else the style size.
func dominantSize(p *idml.Paragraph, style *idml.StyleDef) float64 {
	size := 0.0
	for _, r := range p.Runs {
		if r.PointSize != nil {
			size = math.Max(size, *r.PointSize)
		}
	}
	if size > 0 {
		return size
	}
	if style != nil && style.PointSize != nil && *style.PointSize > 0 {
		return *style.PointSize
	}
	return defaultPointSize
}

// linePercent expresses fixed leading as a percentage of the font size.
func linePercent(leading, size float64) int {
	if size <= 0 {
		size = defaultPointSize
	}
	pct := int(math.Round(leading / size * 100))
	return min(max(pct, minLinePercent), maxLinePercent)
}

// letterSpacing converts tracking (1/1000 em) to percent of em.
func letterSpacing(tracking float64) int {
	ls := int(math.Round(tracking / 10))
	return min(max(ls, -maxLetterSpacing), maxLetterSpacing)
}

func hwp(v *float64) int64 {
	if v == nil {
		return 0
	}
	return geometry.PointsToHwpunits(*v)
}

// runFormat is the effective character formatting of one run.
type runFormat struct {
	styleRef    string
	family      string
	fontStyle   string
	size        int64
	color       string
	spacing     *int
	superscript bool
	subscript   bool
}

func (n *Normalizer) runFormat(r *idml.CharacterRun, paraTracking *float64) runFormat {
	f := runFormat{
		family:      r.FontFamily,
		fontStyle:   r.FontStyle,
		superscript: r.IsSuperscript(),
		subscript:   r.IsSubscript(),
	}
	size, color, tracking := r.PointSize, r.FillColor, r.Tracking

	if ref := r.CharStyleRef; ref != "" && !strings.Contains(ref, "[No ") {
		def, ok := n.charStyles.Resolve(ref)
		if !ok {
			n.warnOnce("cstyle:"+ref, PhaseStyleMapping, ref, "unknown character style")
		} else {
			if n.cfg.IncludeStyles {
				f.styleRef = def.Ref
			}
			f.family = orDefault(f.family, def.FontFamily)
			f.fontStyle = orDefault(f.fontStyle, def.FontStyle)
			color = orDefault(color, def.FillColor)
			if size == nil {
				size = def.PointSize
			}
			if tracking == nil {
				tracking = def.Tracking
			}
			if r.Position == "" {
				f.superscript = strings.Contains(def.Position, "Superscript")
				f.subscript = strings.Contains(def.Position, "Subscript")
			}
		}
	}
	if tracking == nil {
		tracking = paraTracking
	}

	if size != nil {
		f.size = geometry.FontSizeToHwpunits(*size)
	}
	if color != "" {
		if hex, ok := n.colors.Resolve(color); ok {
			f.color = hex
		} else {
			n.logger().Debug("unknown colour swatch", "ref", color)
		}
	}
	if tracking != nil {
		ls := letterSpacing(*tracking)
		f.spacing = &ls
	}
	return f
}

func orDefault(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func (f runFormat) run(text string) *ast.TextRun {
	return &ast.TextRun{
		CharStyleRef:  f.styleRef,
		Text:          text,
		FontFamily:    f.family,
		FontStyle:     f.fontStyle,
		Size:          f.size,
		Color:         f.color,
		LetterSpacing: f.spacing,
		Superscript:   f.superscript,
		Subscript:     f.subscript,
	}
}

// cleanText composes a run's content to NFC and folds runs of line breaks
// into one.
func cleanText(s string) string {
	s = norm.NFC.String(s)
	return blankLines.ReplaceAllString(s, "\n")
}

// runItems appends the items of one run to p: text split at forced
// breaks, inline equations and then the run's inline objects. Anchored
// and note frames are returned instead of placed.
func (n *Normalizer) runItems(p *ast.Paragraph, r *idml.CharacterRun, paraTracking *float64, visiting map[string]bool) []*idml.TextFrame {
	f := n.runFormat(r, paraTracking)
	text := cleanText(r.Content)

	if n.cfg.IncludeEquations {
		last := 0
		for _, m := range inlineMathRe.FindAllStringSubmatchIndex(text, -1) {
			addLines(p, f, text[last:m[0]])
			p.AddItem(&ast.Equation{Source: text[m[2]:m[3]], Size: f.size, Color: f.color})
			last = m[1]
		}
		text = text[last:]
	}
	addLines(p, f, text)

	var deferred []*idml.TextFrame
	for _, fr := range r.InlineFrames {
		if isDeferred(fr) {
			deferred = append(deferred, fr)
			continue
		}
		if obj := n.inlineFrame(fr, visiting); obj != nil {
			p.AddItem(obj)
		}
	}
	if n.cfg.IncludeImages {
		for _, g := range r.InlineGraphics {
			if obj := n.inlineImage(g); obj != nil {
				p.AddItem(obj)
			}
		}
	}
	for _, t := range r.InlineTables {
		tbl := n.table(t, visiting)
		p.AddItem(&ast.InlineObject{
			Kind:     ast.InlineTable,
			SourceID: t.ID,
			Width:    tbl.Frame.Width,
			Height:   tbl.Frame.Height,
			Table:    tbl,
		})
	}
	return deferred
}

func addLines(p *ast.Paragraph, f runFormat, text string) {
	if text == "" {
		return
	}
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			p.AddItem(&ast.Break{Kind: ast.BreakLine})
		}
		if line != "" {
			p.AddItem(f.run(line))
		}
	}
}

// anchoredStory looks up the story of a frame anchored in text, with the
// visiting set extended by it. Missing and self-anchoring stories warn.
func (n *Normalizer) anchoredStory(f *idml.TextFrame, visiting map[string]bool) (*idml.Story, map[string]bool, bool) {
	story, ok := n.doc.Story(f.StoryID)
	if !ok {
		n.warn(PhaseParsing, f.ID, "story %q not found", f.StoryID)
		return nil, nil, false
	}
	if visiting[story.ID] {
		n.warn(PhaseParsing, f.ID, "story %q anchors itself", story.ID)
		return nil, nil, false
	}

	nested := make(map[string]bool, len(visiting)+1)
	for k := range visiting {
		nested[k] = true
	}
	nested[story.ID] = true
	return story, nested, true
}

func (n *Normalizer) inlineFrame(f *idml.TextFrame, visiting map[string]bool) *ast.InlineObject {
	story, nested, ok := n.anchoredStory(f, visiting)
	if !ok {
		return nil
	}

	w, h := geometry.TransformedSize(f.Bounds, f.Transform)
	obj := &ast.InlineObject{
		Kind:       ast.InlineTextFrame,
		SourceID:   f.ID,
		Width:      geometry.PointsToHwpunits(w),
		Height:     geometry.PointsToHwpunits(h),
		Inset:      insets(f.Inset),
		FillColor:  n.paint(f.FillColor, f.FillTint),
		Paragraphs: n.paragraphs(story.Paragraphs, nested),
	}
	if f.StrokeWeight > 0 {
		obj.StrokeColor = n.paint(f.StrokeColor, f.StrokeTint)
	}
	return obj
}

func (n *Normalizer) inlineImage(g *idml.ImageFrame) *ast.InlineObject {
	w, h := geometry.TransformedSize(g.Bounds, g.Transform)
	img, ok := n.loadImage(g, w, h)
	if !ok {
		return nil
	}
	return &ast.InlineObject{
		Kind:        ast.InlineImage,
		SourceID:    g.ID,
		Width:       geometry.PointsToHwpunits(w),
		Height:      geometry.PointsToHwpunits(h),
		ImageFormat: img.Format,
		ImageData:   img.Data,
		PixelWidth:  img.PixelWidth,
		PixelHeight: img.PixelHeight,
	}
}

// table converts a story table. Cells get thin solid borders.
func (n *Normalizer) table(t *idml.Table, visiting map[string]bool) *ast.Table {
	cols := max(t.ColumnCount, len(t.ColumnWidths))
	rows := max(t.RowCount, len(t.RowHeights))

	out := &ast.Table{SourceID: t.ID, ColumnWidths: make([]int64, cols)}
	for i := range out.ColumnWidths {
		if i < len(t.ColumnWidths) {
			out.ColumnWidths[i] = geometry.PointsToHwpunits(t.ColumnWidths[i])
		}
		out.Frame.Width += out.ColumnWidths[i]
	}
	out.Rows = make([]*ast.TableRow, rows)
	for i := range out.Rows {
		out.Rows[i] = &ast.TableRow{}
		if i < len(t.RowHeights) {
			out.Rows[i].Height = geometry.PointsToHwpunits(t.RowHeights[i])
		}
		out.Frame.Height += out.Rows[i].Height
	}

	margins := ast.Insets{Top: tableCellMargin, Left: tableCellMargin, Bottom: tableCellMargin, Right: tableCellMargin}
	for _, c := range t.Cells {
		if c.Row < 0 || c.Row >= rows || c.Column < 0 || c.Column >= cols {
			n.warn(PhaseCoordinate, t.ID, "cell %d:%d outside %dx%d table", c.Column, c.Row, cols, rows)
			continue
		}
		cell := &ast.TableCell{
			Row:        c.Row,
			Col:        c.Column,
			RowSpan:    max(c.RowSpan, 1),
			ColSpan:    max(c.ColumnSpan, 1),
			FillColor:  n.paint(c.FillColor, idml.Unset),
			Top:        tableBorder,
			Left:       tableBorder,
			Bottom:     tableBorder,
			Right:      tableBorder,
			Margins:    margins,
			Paragraphs: n.paragraphs(c.Paragraphs, visiting),
		}
		for i := cell.Col; i < min(cell.Col+cell.ColSpan, cols); i++ {
			cell.Width += out.ColumnWidths[i]
		}
		for i := cell.Row; i < min(cell.Row+cell.RowSpan, rows); i++ {
			cell.Height += out.Rows[i].Height
		}
		out.Rows[c.Row].Cells = append(out.Rows[c.Row].Cells, cell)
	}
	return out
}
