package hwpx

import (
	"encoding/xml"
	"strings"
)

// Section is one Contents/sectionN.xml part.
type Section struct {
	XMLName    xml.Name     `xml:"hs:sec"`
	Attrs      []xml.Attr   `xml:",attr"`
	Paragraphs []*Paragraph `xml:"hp:p"`
}

// AddParagraph appends a paragraph to the section.
func (s *Section) AddParagraph(p *Paragraph) {
	s.Paragraphs = append(s.Paragraphs, p)
}

// Paragraph is an hp:p element.
type Paragraph struct {
	XMLName     xml.Name      `xml:"hp:p"`
	ID          string        `xml:"id,attr"`
	ParaPrIDRef string        `xml:"paraPrIDRef,attr"`
	StyleIDRef  string        `xml:"styleIDRef,attr"`
	PageBreak   Bool          `xml:"pageBreak,attr"`
	ColumnBreak Bool          `xml:"columnBreak,attr"`
	Merged      Bool          `xml:"merged,attr"`
	Runs        []*Run        `xml:"hp:run"`
	LineSegs    *LineSegArray `xml:"hp:linesegarray,omitempty"`
}

// AddRun appends a run with the given character shape and returns it.
func (p *Paragraph) AddRun(charPrID string) *Run {
	r := &Run{CharPrIDRef: charPrID}
	p.Runs = append(p.Runs, r)
	return r
}

// Text returns the plain text of the paragraph, including nested
// sub-lists of tables and text boxes.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		for _, item := range r.Items {
			switch v := item.(type) {
			case *T:
				sb.WriteString(v.String())
			case *Table:
				for _, row := range v.Rows {
					for _, c := range row.Cells {
						sb.WriteString(c.SubList.Text())
					}
				}
			case *Rect:
				if v.DrawText != nil {
					sb.WriteString(v.DrawText.SubList.Text())
				}
			}
		}
	}
	return sb.String()
}

// Run is an hp:run element: a character shape applied to an ordered list
// of items.
type Run struct {
	XMLName     xml.Name  `xml:"hp:run"`
	CharPrIDRef string    `xml:"charPrIDRef,attr"`
	Items       []RunItem `xml:",any"`
}

// RunItem is an element that may appear inside a run.
type RunItem interface {
	runItem()
}

// Add appends item to the run.
func (r *Run) Add(item RunItem) {
	r.Items = append(r.Items, item)
}

// AddText appends a text element. Tabs and newlines become <hp:tab/> and
// <hp:lineBreak/>; other control characters are dropped.
func (r *Run) AddText(s string) *T {
	t := &T{}
	var buf strings.Builder
	flush := func() {
		if buf.Len() > 0 {
			t.Segments = append(t.Segments, TextSegment{Text: buf.String()})
			buf.Reset()
		}
	}
	for _, c := range s {
		switch {
		case c == '\t':
			flush()
			t.Segments = append(t.Segments, TextSegment{Tab: true})
		case c == '\n':
			flush()
			t.Segments = append(t.Segments, TextSegment{LineBreak: true})
		case c < ' ' || c == 0x7f:
		default:
			buf.WriteRune(c)
		}
	}
	flush()
	r.Items = append(r.Items, t)
	return t
}

// TextSegment is one piece of mixed text content.
type TextSegment struct {
	Text      string
	Tab       bool
	LineBreak bool
}

// T is an hp:t element holding text interleaved with tabs and line breaks.
type T struct {
	Segments []TextSegment
}

func (*T) runItem() {}

// String returns the text with tabs and line breaks as characters.
func (t *T) String() string {
	var sb strings.Builder
	for _, seg := range t.Segments {
		switch {
		case seg.Tab:
			sb.WriteByte('\t')
		case seg.LineBreak:
			sb.WriteByte('\n')
		default:
			sb.WriteString(seg.Text)
		}
	}
	return sb.String()
}

// MarshalXML implements xml.Marshaler for mixed content.
func (t *T) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: "hp:t"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, seg := range t.Segments {
		var err error
		switch {
		case seg.Tab:
			err = encodeEmpty(e, "hp:tab")
		case seg.LineBreak:
			err = encodeEmpty(e, "hp:lineBreak")
		default:
			err = e.EncodeToken(xml.CharData(seg.Text))
		}
		if err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

func encodeEmpty(e *xml.Encoder, name string) error {
	start := xml.StartElement{Name: xml.Name{Local: name}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}

// LineSegArray carries cached line layout; writers emit one placeholder
// segment and let the editor reflow.
type LineSegArray struct {
	Segs []LineSeg `xml:"hp:lineseg"`
}

// LineSeg is a cached line layout record.
type LineSeg struct {
	TextPos    int   `xml:"textpos,attr"`
	VertPos    int   `xml:"vertpos,attr"`
	VertSize   int   `xml:"vertsize,attr"`
	TextHeight int   `xml:"textheight,attr"`
	Baseline   int   `xml:"baseline,attr"`
	Spacing    int   `xml:"spacing,attr"`
	HorzPos    int   `xml:"horzpos,attr"`
	HorzSize   int64 `xml:"horzsize,attr"`
	Flags      int   `xml:"flags,attr"`
}

// SubList is the paragraph list inside a cell or text box.
type SubList struct {
	ID                string       `xml:"id,attr"`
	TextDirection     string       `xml:"textDirection,attr"`
	LineWrap          string       `xml:"lineWrap,attr"`
	VertAlign         string       `xml:"vertAlign,attr"`
	LinkListIDRef     string       `xml:"linkListIDRef,attr"`
	LinkListNextIDRef string       `xml:"linkListNextIDRef,attr"`
	TextWidth         int64        `xml:"textWidth,attr"`
	TextHeight        int64        `xml:"textHeight,attr"`
	HasTextRef        Bool         `xml:"hasTextRef,attr"`
	HasNumRef         Bool         `xml:"hasNumRef,attr"`
	Paragraphs        []*Paragraph `xml:"hp:p"`
}

// NewSubList returns a horizontal sub-list with the given vertical
// alignment (TOP, CENTER, BOTTOM).
func NewSubList(vertAlign string) *SubList {
	return &SubList{
		TextDirection:     "HORIZONTAL",
		LineWrap:          "BREAK",
		VertAlign:         vertAlign,
		LinkListIDRef:     "0",
		LinkListNextIDRef: "0",
	}
}

// Text returns the sub-list text, one line per paragraph.
func (s *SubList) Text() string {
	if s == nil {
		return ""
	}
	lines := make([]string, 0, len(s.Paragraphs))
	for _, p := range s.Paragraphs {
		lines = append(lines, p.Text())
	}
	return strings.Join(lines, "\n")
}

// ============================================================================
// Section definition
// ============================================================================

// SecPr is the section definition carried by the first run of a section
// (or of a page-break paragraph that starts a new page setup).
type SecPr struct {
	XMLName        xml.Name          `xml:"hp:secPr"`
	ID             string            `xml:"id,attr"`
	TextDirection  string            `xml:"textDirection,attr"`
	SpaceColumns   int64             `xml:"spaceColumns,attr"`
	TabStop        int               `xml:"tabStop,attr"`
	TabStopVal     int               `xml:"tabStopVal,attr"`
	TabStopUnit    string            `xml:"tabStopUnit,attr"`
	OutlineShapeID string            `xml:"outlineShapeIDRef,attr"`
	MemoShapeID    string            `xml:"memoShapeIDRef,attr"`
	Grid           SecGrid           `xml:"hp:grid"`
	StartNum       SecStartNum       `xml:"hp:startNum"`
	Visibility     SecVisibility     `xml:"hp:visibility"`
	PagePr         PagePr            `xml:"hp:pagePr"`
	PageBorderFill []*PageBorderFill `xml:"hp:pageBorderFill"`
}

func (*SecPr) runItem() {}

// SecGrid is the line/character grid setting.
type SecGrid struct {
	LineGrid       int  `xml:"lineGrid,attr"`
	CharGrid       int  `xml:"charGrid,attr"`
	WonggojiFormat Bool `xml:"wonggojiFormat,attr"`
}

// SecStartNum restarts numbering in the section.
type SecStartNum struct {
	PageStartsOn string `xml:"pageStartsOn,attr"`
	Page         int    `xml:"page,attr"`
	Pic          int    `xml:"pic,attr"`
	Tbl          int    `xml:"tbl,attr"`
	Equation     int    `xml:"equation,attr"`
}

// SecVisibility controls header/footer visibility.
type SecVisibility struct {
	HideFirstHeader     Bool   `xml:"hideFirstHeader,attr"`
	HideFirstFooter     Bool   `xml:"hideFirstFooter,attr"`
	HideFirstMasterPage Bool   `xml:"hideFirstMasterPage,attr"`
	Border              string `xml:"border,attr"`
	Fill                string `xml:"fill,attr"`
	HideFirstPageNum    Bool   `xml:"hideFirstPageNum,attr"`
	HideFirstEmptyLine  Bool   `xml:"hideFirstEmptyLine,attr"`
	ShowLineNumber      Bool   `xml:"showLineNumber,attr"`
}

// PagePr is the paper size and margins.
type PagePr struct {
	Landscape  string     `xml:"landscape,attr"`
	Width      int64      `xml:"width,attr"`
	Height     int64      `xml:"height,attr"`
	GutterType string     `xml:"gutterType,attr"`
	Margin     PageMargin `xml:"hp:margin"`
}

// PageMargin is the paper margins in HWPUNIT.
type PageMargin struct {
	Header int64 `xml:"header,attr"`
	Footer int64 `xml:"footer,attr"`
	Gutter int64 `xml:"gutter,attr"`
	Left   int64 `xml:"left,attr"`
	Right  int64 `xml:"right,attr"`
	Top    int64 `xml:"top,attr"`
	Bottom int64 `xml:"bottom,attr"`
}

// PageBorderFill applies a border fill to the pages of a section.
type PageBorderFill struct {
	Type            string `xml:"type,attr"`
	BorderFillIDRef string `xml:"borderFillIDRef,attr"`
	TextBorder      string `xml:"textBorder,attr"`
	HeaderInside    Bool   `xml:"headerInside,attr"`
	FooterInside    Bool   `xml:"footerInside,attr"`
	FillArea        string `xml:"fillArea,attr"`
	Offset          Margin `xml:"hp:offset"`
}

// Ctrl is a control element holding a column definition.
type Ctrl struct {
	XMLName xml.Name `xml:"hp:ctrl"`
	ColPr   *ColPr   `xml:"hp:colPr,omitempty"`
}

func (*Ctrl) runItem() {}

// ColPr is a multi-column definition.
type ColPr struct {
	ID       string `xml:"id,attr"`
	Type     string `xml:"type,attr"`
	Layout   string `xml:"layout,attr"`
	ColCount int    `xml:"colCount,attr"`
	SameSz   Bool   `xml:"sameSz,attr"`
	SameGap  int64  `xml:"sameGap,attr"`
}
