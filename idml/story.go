package idml

import (
	"strings"
	"unicode"
)

// Story is an ordered sequence of paragraphs shared by a chain of text frames.
type Story struct {
	ID         string
	Paragraphs []*Paragraph
}

// IsEmpty reports whether the story holds no visible text and no inline objects.
func (s *Story) IsEmpty() bool {
	for _, p := range s.Paragraphs {
		for _, r := range p.Runs {
			if len(r.InlineFrames) > 0 || len(r.InlineGraphics) > 0 || len(r.InlineTables) > 0 {
				return false
			}
			if strings.TrimFunc(r.Content, unicode.IsSpace) != "" {
				return false
			}
		}
	}
	return true
}

// PlainText returns the story text with one line per paragraph.
func (s *Story) PlainText() string {
	var sb strings.Builder
	for i, p := range s.Paragraphs {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, r := range p.Runs {
			sb.WriteString(r.Content)
		}
	}
	return sb.String()
}

// Paragraph is one paragraph of a story. Pointer fields are nil when the
// attribute is inherited from the paragraph style.
type Paragraph struct {
	StyleRef      string
	Justification string

	FirstLineIndent *float64
	LeftIndent      *float64
	RightIndent     *float64
	SpaceBefore     *float64
	SpaceAfter      *float64
	Leading         *float64
	Tracking        *float64

	ShadingColor string

	Runs []*CharacterRun
}

// CharacterRun is a span of text sharing one set of character attributes.
// Forced line breaks inside the run are stored as '\n'.
type CharacterRun struct {
	CharStyleRef string
	FontFamily   string
	FontStyle    string
	PointSize    *float64
	FillColor    string
	Tracking     *float64
	Position     string // Normal, Superscript, Subscript, OTSuperscript, OTSubscript

	Content string

	InlineFrames   []*TextFrame
	InlineGraphics []*ImageFrame
	InlineTables   []*Table
}

// IsSuperscript reports whether the run is raised.
func (r *CharacterRun) IsSuperscript() bool {
	return strings.Contains(r.Position, "Superscript")
}

// IsSubscript reports whether the run is lowered.
func (r *CharacterRun) IsSubscript() bool {
	return strings.Contains(r.Position, "Subscript")
}

// Table is a story-embedded IDML table.
type Table struct {
	ID           string
	RowCount     int
	ColumnCount  int
	RowHeights   []float64
	ColumnWidths []float64
	Cells        []*TableCell
}

// TableCell is one cell of an embedded table. IDML names cells "col:row".
type TableCell struct {
	Row        int
	Column     int
	RowSpan    int
	ColumnSpan int
	FillColor  string
	Paragraphs []*Paragraph
}
