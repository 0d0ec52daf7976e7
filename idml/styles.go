package idml

// StyleDef is a paragraph or character style. Pointer fields are nil when
// the style does not set the attribute itself.
type StyleDef struct {
	Ref     string
	Name    string
	BasedOn string

	FontFamily string
	FontStyle  string
	PointSize  *float64
	FillColor  string
	Position   string

	Justification   string
	FirstLineIndent *float64
	LeftIndent      *float64
	RightIndent     *float64
	SpaceBefore     *float64
	SpaceAfter      *float64

	Leading         *float64 // fixed leading in points
	AutoLeading     *float64 // percent of point size
	Tracking        *float64 // 1/1000 em
	HorizontalScale *float64 // percent

	TabStops []TabStop
}

// IsBold reports whether the font style names a bold face.
func (s *StyleDef) IsBold() bool {
	return containsFold(s.FontStyle, "bold")
}

// IsItalic reports whether the font style names an italic face.
func (s *StyleDef) IsItalic() bool {
	return containsFold(s.FontStyle, "italic") || containsFold(s.FontStyle, "oblique")
}

// TabStop is one entry of a paragraph style's tab list.
type TabStop struct {
	Alignment string // LeftAlign, CenterAlign, RightAlign, CharacterAlign
	Position  float64
	Leader    string
}

// FontDef describes one font face from Resources/Fonts.xml.
type FontDef struct {
	Family         string
	StyleName      string
	PostScriptName string
	FontType       string // OpenTypeCFF, OpenTypeTT, TrueType, Type1
}
