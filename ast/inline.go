package ast

import "strings"

// Alignment is a paragraph alignment. AlignInherit leaves the style value.
type Alignment int

const (
	AlignInherit Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
	AlignJustify
	AlignDistribute
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "LEFT"
	case AlignCenter:
		return "CENTER"
	case AlignRight:
		return "RIGHT"
	case AlignJustify:
		return "JUSTIFY"
	case AlignDistribute:
		return "DISTRIBUTE"
	default:
		return ""
	}
}

// ParseAlignment maps an IDML Justification value.
func ParseAlignment(s string) Alignment {
	switch s {
	case "":
		return AlignInherit
	case "LeftAlign", "LeftJustified", "ToBindingSide":
		return AlignLeft
	case "CenterAlign", "CenterJustified":
		return AlignCenter
	case "RightAlign", "RightJustified", "AwayFromBindingSide":
		return AlignRight
	case "FullyJustified":
		return AlignDistribute
	default:
		return AlignJustify
	}
}

// LineSpacingType says how LineSpacing is interpreted.
type LineSpacingType int

const (
	LineSpacingPercent LineSpacingType = iota
	LineSpacingFixed
)

func (l LineSpacingType) String() string {
	if l == LineSpacingFixed {
		return "FIXED"
	}
	return "PERCENT"
}

// Paragraph is a sequence of inline items. Zero-valued layout fields mean
// the value comes from the paragraph style.
type Paragraph struct {
	StyleRef  string
	Alignment Alignment

	FirstLineIndent int64
	LeftMargin      int64
	RightMargin     int64
	SpaceBefore     int64
	SpaceAfter      int64
	LineSpacing     int
	LineSpacingType LineSpacingType
	ShadingColor    string

	Items []InlineItem
}

// AddItem appends an inline item
func (p *Paragraph) AddItem(item InlineItem) {
	p.Items = append(p.Items, item)
}

// HasOverrides reports whether any layout field differs from the style.
func (p *Paragraph) HasOverrides() bool {
	return p.Alignment != AlignInherit || p.FirstLineIndent != 0 || p.LeftMargin != 0 ||
		p.RightMargin != 0 || p.SpaceBefore != 0 || p.SpaceAfter != 0 || p.LineSpacing != 0
}

// PlainText returns the text of the paragraph. Line breaks become "\n",
// equations are rendered as their script and objects are skipped.
func (p *Paragraph) PlainText() string {
	var sb strings.Builder
	for _, item := range p.Items {
		switch v := item.(type) {
		case *TextRun:
			sb.WriteString(v.Text)
		case *Break:
			sb.WriteByte('\n')
		case *Equation:
			sb.WriteString(v.Script)
		case *InlineObject:
			if v.Kind == InlineTextFrame {
				sb.WriteString(paragraphsText(v.Paragraphs))
			}
		}
	}
	return sb.String()
}

func paragraphsText(ps []*Paragraph) string {
	lines := make([]string, 0, len(ps))
	for _, p := range ps {
		lines = append(lines, p.PlainText())
	}
	return strings.Join(lines, "\n")
}

// InlineItem is an element of a paragraph. Implemented only by *TextRun,
// *InlineObject, *Break and *Equation.
type InlineItem interface {
	isInline()
}

// TextRun is text with uniform character formatting. Empty or zero fields
// inherit from the character and paragraph styles.
type TextRun struct {
	CharStyleRef string
	Text         string
	FontFamily   string
	FontStyle    string
	Size         int64
	Color        string
	// LetterSpacing is percent of em; nil means inherit.
	LetterSpacing *int
	Superscript   bool
	Subscript     bool
}

func (*TextRun) isInline() {}

// HasOverrides reports whether the run carries formatting of its own.
func (r *TextRun) HasOverrides() bool {
	return r.FontFamily != "" || r.FontStyle != "" || r.Size != 0 || r.Color != "" ||
		r.LetterSpacing != nil || r.Superscript || r.Subscript
}

// Bold reports whether the font style names a bold face.
func (r *TextRun) Bold() bool {
	s := strings.ToLower(r.FontStyle)
	return strings.Contains(s, "bold") || strings.Contains(s, "heavy") || strings.Contains(s, "black")
}

// Italic reports whether the font style names an italic face.
func (r *TextRun) Italic() bool {
	s := strings.ToLower(r.FontStyle)
	return strings.Contains(s, "italic") || strings.Contains(s, "oblique")
}

// InlineObjectKind distinguishes anchored objects.
type InlineObjectKind int

const (
	InlineImage InlineObjectKind = iota
	InlineRenderedGroup
	InlineTextFrame
	InlineTable
)

func (k InlineObjectKind) String() string {
	switch k {
	case InlineImage:
		return "IMAGE"
	case InlineRenderedGroup:
		return "RENDERED_GROUP"
	case InlineTextFrame:
		return "INLINE_TEXT_FRAME"
	case InlineTable:
		return "INLINE_TABLE"
	default:
		return "UNKNOWN"
	}
}

// InlineObject is an object that flows with the text.
type InlineObject struct {
	Kind     InlineObjectKind
	SourceID string
	Width    int64
	Height   int64

	ImageFormat string
	ImageData   []byte
	PixelWidth  int
	PixelHeight int

	Inset       Insets
	FillColor   string
	StrokeColor string
	Paragraphs  []*Paragraph
	Table       *Table
}

func (*InlineObject) isInline() {}

// BreakKind is the kind of forced break.
type BreakKind int

const (
	BreakLine BreakKind = iota
	BreakColumn
	BreakPage
)

func (k BreakKind) String() string {
	switch k {
	case BreakColumn:
		return "COLUMN"
	case BreakPage:
		return "PAGE"
	default:
		return "LINE"
	}
}

// Break is a forced break within a paragraph.
type Break struct {
	Kind BreakKind
}

func (*Break) isInline() {}

// Equation is a math expression converted to HWP equation script.
type Equation struct {
	Source string
	Script string
	// Size is the base font height; zero means default.
	Size  int64
	Color string
}

func (*Equation) isInline() {}
