// Package ast defines the format-neutral intermediate document produced by
// the normalizer and consumed by the HWPX generator.
//
// All lengths are HWPUNIT (1/7200 inch) and positions are relative to the
// top-left corner of the owning page (or spread, in spread mode).
//
// Blocks and inline items are closed sum types: only the types in this
// package implement Block and InlineItem, so a type switch over them in a
// consumer can be exhaustive.
package ast

// Document is the root of the intermediate model.
type Document struct {
	Sections    []*Section
	Backgrounds []*PageBackground

	Fonts           []FontDef
	ParagraphStyles []*StyleDef
	CharacterStyles []*StyleDef

	// SpreadMode is set when every section represents a whole spread.
	SpreadMode bool
}

// NewDocument creates an empty document
func NewDocument() *Document {
	return &Document{
		Sections: make([]*Section, 0),
	}
}

// AddSection appends a section
func (d *Document) AddSection(s *Section) {
	d.Sections = append(d.Sections, s)
}

// BlockCount returns the number of blocks over all sections.
func (d *Document) BlockCount() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Blocks)
	}
	return n
}

// Section is one output page (or spread).
type Section struct {
	PageNumber int
	Layout     PageLayout
	Blocks     []Block
}

// AddBlock appends a block to the section
func (s *Section) AddBlock(b Block) {
	s.Blocks = append(s.Blocks, b)
}

// PageLayout is the page geometry of a section.
type PageLayout struct {
	Width        int64
	Height       int64
	MarginTop    int64
	MarginBottom int64
	MarginLeft   int64
	MarginRight  int64
	ColumnCount  int
	ColumnGutter int64
}

// Rect is a page-relative rectangle.
type Rect struct {
	X      int64
	Y      int64
	Width  int64
	Height int64
}

// Right returns X + Width
func (r Rect) Right() int64 { return r.X + r.Width }

// Bottom returns Y + Height
func (r Rect) Bottom() int64 { return r.Y + r.Height }

// Insets are inner margins, in HWPUNIT.
type Insets struct {
	Top    int64
	Left   int64
	Bottom int64
	Right  int64
}

// PageBackground is a pre-rendered image of decorative page content that
// sits behind every block of a page.
type PageBackground struct {
	PageNumber  int
	Width       int64
	Height      int64
	PNG         []byte
	PixelWidth  int
	PixelHeight int
}

// FontDef is a font used by the source document.
type FontDef struct {
	Family string
	Style  string
	Type   string
}

// TabStop is a paragraph tab position.
type TabStop struct {
	Position int64
	Type     string // left, center, right, decimal
	Leader   string
}

// StyleDef is a named paragraph or character style, flattened through its
// inheritance chain. Zero values mean "not set".
type StyleDef struct {
	ID      string
	Name    string
	BasedOn string

	FontFamily string
	FontStyle  string
	FontSize   int64
	TextColor  string

	Alignment       Alignment
	FirstLineIndent int64
	LeftMargin      int64
	RightMargin     int64
	SpaceBefore     int64
	SpaceAfter      int64
	LineSpacing     int
	LineSpacingType LineSpacingType
	LetterSpacing   int

	TabStops []TabStop
}
