package registry

import (
	"fmt"
	"strings"

	"github.com/tsawler/idmlhwpx/ast"
	"github.com/tsawler/idmlhwpx/hwpx"
)

// DefaultLineSpacing is the percent line spacing used when a style has none.
const DefaultLineSpacing = 130

// Style reference prefixes tried when a bare name is looked up.
const (
	paragraphPrefix = "ParagraphStyle/"
	characterPrefix = "CharacterStyle/"
)

// StyleRegistry creates character, paragraph, tab and style records in an
// HWPX header and remembers which source style produced them.
type StyleRegistry struct {
	header *hwpx.Header
	fonts  *FontRegistry

	// per source style ref
	paraPrIDs map[string]string
	styleIDs  map[string]string
	charPrIDs map[string]string
	paraDefs  map[string]*ast.StyleDef
	charDefs  map[string]*ast.StyleDef

	// per record signature
	charPrBySig map[string]string
	paraPrBySig map[string]string
	tabPrBySig  map[string]string
	borderBySig map[string]string

	paraStyles int
	charStyles int
}

// NewStyleRegistry creates a registry writing into header.
func NewStyleRegistry(header *hwpx.Header, fonts *FontRegistry) *StyleRegistry {
	return &StyleRegistry{
		header:      header,
		fonts:       fonts,
		paraPrIDs:   make(map[string]string),
		styleIDs:    make(map[string]string),
		charPrIDs:   make(map[string]string),
		paraDefs:    make(map[string]*ast.StyleDef),
		charDefs:    make(map[string]*ast.StyleDef),
		charPrBySig: make(map[string]string),
		paraPrBySig: make(map[string]string),
		tabPrBySig:  make(map[string]string),
		borderBySig: make(map[string]string),
	}
}

// RegisterParagraphStyle creates (or reuses) the character shape, tab
// definition, paragraph shape and style record for def and returns the
// style id. Registering the same ref twice returns the first id.
func (r *StyleRegistry) RegisterParagraphStyle(def *ast.StyleDef) string {
	if id, ok := r.styleIDs[def.ID]; ok {
		return id
	}

	charPrID := r.charPr(charSpecFromStyle(def))
	tabPrID := hwpx.DefaultTabPrID
	if len(def.TabStops) > 0 {
		tabPrID = r.tabPr(def.TabStops)
	}
	paraPrID := r.paraPr(paraSpecFromStyle(def), tabPrID)

	name := def.Name
	if name == "" {
		name = def.ID
	}
	st := &hwpx.Style{
		Type:        "PARA",
		Name:        name,
		EngName:     name,
		ParaPrIDRef: paraPrID,
		CharPrIDRef: charPrID,
		LangID:      "1042",
	}
	styleID := r.header.AddStyle(st)
	st.NextStyleIDRef = styleID

	r.paraPrIDs[def.ID] = paraPrID
	r.styleIDs[def.ID] = styleID
	r.charPrIDs[def.ID] = charPrID
	r.paraDefs[def.ID] = def
	r.paraStyles++
	return styleID
}

// RegisterCharacterStyle creates (or reuses) the character shape for def
// and returns its id.
func (r *StyleRegistry) RegisterCharacterStyle(def *ast.StyleDef) string {
	if id, ok := r.charPrIDs[def.ID]; ok {
		if _, isChar := r.charDefs[def.ID]; isChar {
			return id
		}
	}
	id := r.charPr(charSpecFromStyle(def))
	r.charPrIDs[def.ID] = id
	r.charDefs[def.ID] = def
	r.charStyles++
	return id
}

// resolve finds the registered key for ref, retrying with the paragraph
// and character style prefixes.
func (r *StyleRegistry) resolve(ref string, ids map[string]string) (string, bool) {
	if ref == "" {
		return "", false
	}
	for _, k := range []string{ref, paragraphPrefix + ref, characterPrefix + ref} {
		if id, ok := ids[k]; ok {
			return id, true
		}
	}
	return "", false
}

// CharPrID returns the character shape registered for a style ref.
func (r *StyleRegistry) CharPrID(ref string) (string, bool) {
	return r.resolve(ref, r.charPrIDs)
}

// ParaPrID returns the paragraph shape registered for a paragraph style ref.
func (r *StyleRegistry) ParaPrID(ref string) (string, bool) {
	return r.resolve(ref, r.paraPrIDs)
}

// StyleID returns the style record registered for a paragraph style ref.
func (r *StyleRegistry) StyleID(ref string) (string, bool) {
	return r.resolve(ref, r.styleIDs)
}

// ParagraphStyle returns the definition registered for a paragraph style.
func (r *StyleRegistry) ParagraphStyle(ref string) *ast.StyleDef {
	for _, k := range []string{ref, paragraphPrefix + ref} {
		if d, ok := r.paraDefs[k]; ok {
			return d
		}
	}
	return nil
}

// ParagraphStyleCount returns the number of registered paragraph styles.
func (r *StyleRegistry) ParagraphStyleCount() int { return r.paraStyles }

// CharacterStyleCount returns the number of registered character styles.
func (r *StyleRegistry) CharacterStyleCount() int { return r.charStyles }

// TotalStyleCount returns paragraph plus character styles.
func (r *StyleRegistry) TotalStyleCount() int { return r.paraStyles + r.charStyles }

// ============================================================================
// Overrides
// ============================================================================

// CharPrFor returns a character shape for run inside a paragraph of style
// baseRef. Fields the run does not set come from the run's character style
// when registered, then from the paragraph style. Base records are never
// modified; identical results share one id.
func (r *StyleRegistry) CharPrFor(baseRef string, run *ast.TextRun) string {
	spec := charSpec{Height: hwpx.DefaultFontHeight, Color: "#000000"}
	if def := r.ParagraphStyle(baseRef); def != nil {
		spec = charSpecFromStyle(def)
	}
	if def, ok := r.charDefs[run.CharStyleRef]; ok {
		spec = spec.merge(styleOverlay(def))
	}
	spec = spec.merge(charSpecFromRun(run))
	spec.Superscript = run.Superscript
	spec.Subscript = run.Subscript
	return r.charPr(spec)
}

// ParaPrFor returns a paragraph shape for p: the paragraph style baseRef
// with p's explicit settings applied.
func (r *StyleRegistry) ParaPrFor(baseRef string, p *ast.Paragraph) string {
	spec := paraSpec{Alignment: "JUSTIFY", LineSpacingType: "PERCENT", LineSpacing: DefaultLineSpacing}
	tabPrID := hwpx.DefaultTabPrID
	if def := r.ParagraphStyle(baseRef); def != nil {
		spec = paraSpecFromStyle(def)
		if len(def.TabStops) > 0 {
			tabPrID = r.tabPr(def.TabStops)
		}
	}
	if p.Alignment != ast.AlignInherit {
		spec.Alignment = alignment(p.Alignment)
	}
	if p.FirstLineIndent != 0 {
		spec.Indent = p.FirstLineIndent
	}
	if p.LeftMargin != 0 {
		spec.Left = p.LeftMargin
	}
	if p.RightMargin != 0 {
		spec.Right = p.RightMargin
	}
	if p.SpaceBefore != 0 {
		spec.Prev = p.SpaceBefore
	}
	if p.SpaceAfter != 0 {
		spec.Next = p.SpaceAfter
	}
	if p.LineSpacing != 0 {
		spec.LineSpacing = p.LineSpacing
		spec.LineSpacingType = p.LineSpacingType.String()
	}
	return r.paraPr(spec, tabPrID)
}

// FixedLineParaPr returns a paragraph shape with zero margins and a fixed
// line height, used to keep short table rows from growing.
func (r *StyleRegistry) FixedLineParaPr(height int64) string {
	return r.paraPr(paraSpec{Alignment: "JUSTIFY", LineSpacingType: "FIXED", LineSpacing: int(height)}, hwpx.DefaultTabPrID)
}

// TinyCharPr returns a 1pt character shape.
func (r *StyleRegistry) TinyCharPr() string {
	return r.charPr(charSpec{Height: 100, Color: "#000000"})
}

// ============================================================================
// Record construction
// ============================================================================

type charSpec struct {
	FontFamily    string
	Height        int64
	Color         string
	Bold          bool
	Italic        bool
	LetterSpacing int
	Superscript   bool
	Subscript     bool

	hasStyle   bool
	hasSpacing bool
}

// merge returns s with every field o sets.
func (s charSpec) merge(o charSpec) charSpec {
	if o.FontFamily != "" {
		s.FontFamily = o.FontFamily
	}
	if o.Height != 0 {
		s.Height = o.Height
	}
	if o.Color != "" {
		s.Color = o.Color
	}
	if o.hasStyle {
		s.Bold, s.Italic = o.Bold, o.Italic
	}
	if o.hasSpacing {
		s.LetterSpacing = o.LetterSpacing
	}
	return s
}

// styleOverlay holds only the attributes def sets, for merging onto a base.
func styleOverlay(def *ast.StyleDef) charSpec {
	return charSpec{
		FontFamily:    def.FontFamily,
		Height:        def.FontSize,
		Color:         def.TextColor,
		Bold:          IsBold(def.FontStyle),
		Italic:        IsItalic(def.FontStyle),
		LetterSpacing: def.LetterSpacing,
		hasStyle:      def.FontStyle != "",
		hasSpacing:    def.LetterSpacing != 0,
	}
}

// charSpecFromStyle is the complete record for def, with defaults filled in.
func charSpecFromStyle(def *ast.StyleDef) charSpec {
	s := styleOverlay(def)
	if s.Height == 0 {
		s.Height = hwpx.DefaultFontHeight
	}
	if s.Color == "" {
		s.Color = "#000000"
	}
	return s
}

func charSpecFromRun(run *ast.TextRun) charSpec {
	s := charSpec{
		FontFamily: run.FontFamily,
		Height:     run.Size,
		Color:      run.Color,
		Bold:       run.Bold(),
		Italic:     run.Italic(),
		hasStyle:   run.FontStyle != "",
	}
	if run.LetterSpacing != nil {
		s.LetterSpacing = *run.LetterSpacing
		s.hasSpacing = true
	}
	return s
}

func (s charSpec) signature() string {
	return fmt.Sprintf("%s|%d|%s|%t|%t|%d|%t|%t", s.FontFamily, s.Height, s.Color,
		s.Bold, s.Italic, s.LetterSpacing, s.Superscript, s.Subscript)
}

func (r *StyleRegistry) charPr(s charSpec) string {
	sig := s.signature()
	if id, ok := r.charPrBySig[sig]; ok {
		return id
	}
	fontID := r.fonts.ResolveFontID(s.FontFamily)
	cp := hwpx.NewCharPr("", int(s.Height), s.Color, fontID)
	spacing := fmt.Sprintf("%d", s.LetterSpacing)
	cp.Spacing = hwpx.SameLangValues(spacing)
	if s.Bold {
		cp.Bold = &hwpx.Marker{}
	}
	if s.Italic {
		cp.Italic = &hwpx.Marker{}
	}
	if s.Superscript {
		cp.Supscript = &hwpx.Marker{}
	}
	if s.Subscript {
		cp.Subscript = &hwpx.Marker{}
	}
	id := r.header.AddCharPr(cp)
	r.charPrBySig[sig] = id
	return id
}

type paraSpec struct {
	Alignment       string
	Indent          int64
	Left            int64
	Right           int64
	Prev            int64
	Next            int64
	LineSpacing     int
	LineSpacingType string
}

func paraSpecFromStyle(def *ast.StyleDef) paraSpec {
	s := paraSpec{
		Alignment:       alignment(def.Alignment),
		Indent:          def.FirstLineIndent,
		Left:            def.LeftMargin,
		Right:           def.RightMargin,
		Prev:            def.SpaceBefore,
		Next:            def.SpaceAfter,
		LineSpacing:     def.LineSpacing,
		LineSpacingType: def.LineSpacingType.String(),
	}
	if s.LineSpacing == 0 {
		s.LineSpacing = DefaultLineSpacing
		s.LineSpacingType = ast.LineSpacingPercent.String()
	}
	return s
}

func (r *StyleRegistry) paraPr(s paraSpec, tabPrID string) string {
	sig := fmt.Sprintf("%+v|%s", s, tabPrID)
	if id, ok := r.paraPrBySig[sig]; ok {
		return id
	}
	pp := hwpx.NewParaPr("", tabPrID)
	pp.Align.Horizontal = s.Alignment
	pp.Margin = hwpx.ParaMargin{
		Intent: hwpx.HwpUnit(s.Indent),
		Left:   hwpx.HwpUnit(s.Left),
		Right:  hwpx.HwpUnit(s.Right),
		Prev:   hwpx.HwpUnit(s.Prev),
		Next:   hwpx.HwpUnit(s.Next),
	}
	pp.LineSpacing = hwpx.LineSpacing{Type: s.LineSpacingType, Value: s.LineSpacing, Unit: "HWPUNIT"}
	id := r.header.AddParaPr(pp)
	r.paraPrBySig[sig] = id
	return id
}

func (r *StyleRegistry) tabPr(stops []ast.TabStop) string {
	var sb strings.Builder
	for _, ts := range stops {
		fmt.Fprintf(&sb, "%d/%s/%s;", ts.Position, ts.Type, ts.Leader)
	}
	sig := sb.String()
	if id, ok := r.tabPrBySig[sig]; ok {
		return id
	}
	tp := &hwpx.TabPr{}
	for _, ts := range stops {
		tp.Items = append(tp.Items, &hwpx.TabItem{
			Pos:    ts.Position,
			Type:   TabType(ts.Type),
			Leader: TabLeader(ts.Leader),
			Unit:   "HWPUNIT",
		})
	}
	id := r.header.AddTabPr(tp)
	r.tabPrBySig[sig] = id
	return id
}

// ============================================================================
// Value mapping
// ============================================================================

func alignment(a ast.Alignment) string {
	switch a {
	case ast.AlignLeft, ast.AlignCenter, ast.AlignRight, ast.AlignDistribute:
		return a.String()
	default:
		return "JUSTIFY"
	}
}

// TabType maps a tab alignment (left, center, right, decimal) to the
// OWPML tab item type. Unknown values are LEFT.
func TabType(alignment string) string {
	switch strings.ToLower(alignment) {
	case "center", "centeralign":
		return "CENTER"
	case "right", "rightalign":
		return "RIGHT"
	case "decimal", "characteralign":
		return "DECIMAL"
	default:
		return "LEFT"
	}
}

// TabLeader maps a tab leader string to an OWPML line type.
func TabLeader(leader string) string {
	switch strings.TrimSpace(leader) {
	case ".":
		return "DOT"
	case "-", "—":
		return "DASH"
	case "_":
		return "SOLID"
	default:
		return "NONE"
	}
}

// IsBold reports whether a font style name denotes a bold face.
func IsBold(fontStyle string) bool {
	return (&ast.TextRun{FontStyle: fontStyle}).Bold()
}

// IsItalic reports whether a font style name denotes an italic face.
func IsItalic(fontStyle string) bool {
	return (&ast.TextRun{FontStyle: fontStyle}).Italic()
}
