// Package hwpx models an HWPX (OWPML) package: the header with its
// id-referenced property tables, section bodies, and embedded binary data.
// It can create a blank document, write it as a ZIP package, and inspect a
// written package.
package hwpx

import (
	"fmt"
	"strings"
)

// Starting values of generated paragraph and shape ids.
const (
	ParaIDStart  = 1000000000
	ShapeIDStart = 5000000
)

// Default header record ids present in every blank document.
const (
	DefaultCharPrID   = "0"
	DefaultParaPrID   = "0"
	DefaultStyleID    = "0"
	DefaultTabPrID    = "0"
	PageBorderFillID  = "1"
	CharBorderFillID  = "2"
	DefaultFontHeight = 1000
)

// Default fonts registered by NewBlank, with their ids.
const (
	FontDotum  = "함초롬돋움"
	FontBatang = "함초롬바탕"
)

// Document is an in-memory HWPX document.
type Document struct {
	Header   *Header
	Sections []*Section
	BinData  []*BinItem

	nextParaID  int64
	nextShapeID int64
}

// BinItem is an embedded binary (image) part.
type BinItem struct {
	ID        string
	Format    string
	MediaType string
	Data      []byte
}

// Path returns the package path of the item.
func (b *BinItem) Path() string {
	return "BinData/" + b.ID + "." + b.Format
}

// NewBlank creates a document with one empty section and the default
// header records: fonts 함초롬돋움 ("0") and 함초롬바탕 ("1"), the page and
// character border fills, a 10pt character shape, a justified paragraph
// shape, an empty tab definition and the "바탕글" style.
func NewBlank() *Document {
	h := &Header{Version: "1.4", SecCnt: 1}
	h.BeginNum = BeginNum{Page: 1, Footnote: 1, Endnote: 1, Pic: 1, Tbl: 1, Equation: 1}
	for _, lang := range FontLanguages {
		h.RefList.FontFaces.Faces = append(h.RefList.FontFaces.Faces, &FontFace{Lang: lang})
	}
	h.AddFont(FontDotum)
	h.AddFont(FontBatang)

	h.AddBorderFill(NewBorderFill())
	h.AddBorderFill(NewBorderFill())

	h.AddCharPr(NewCharPr("", DefaultFontHeight, "#000000", "1"))
	h.AddTabPr(&TabPr{})
	h.AddParaPr(NewParaPr("", DefaultTabPrID))
	h.AddStyle(&Style{
		Type:           "PARA",
		Name:           "바탕글",
		EngName:        "Normal",
		ParaPrIDRef:    DefaultParaPrID,
		CharPrIDRef:    DefaultCharPrID,
		NextStyleIDRef: DefaultStyleID,
		LangID:         "1042",
	})

	return &Document{
		Header:      h,
		Sections:    []*Section{{}},
		nextParaID:  ParaIDStart,
		nextShapeID: ShapeIDStart,
	}
}

// NewBorderFill returns a border fill with no visible borders and no fill.
func NewBorderFill() *BorderFill {
	none := Border{Type: "NONE", Width: "0.1 mm", Color: "#000000"}
	return &BorderFill{
		CenterLine:   "NONE",
		Slash:        Slash{Type: "NONE"},
		BackSlash:    Slash{Type: "NONE"},
		LeftBorder:   none,
		RightBorder:  none,
		TopBorder:    none,
		BottomBorder: none,
		Diagonal:     none,
	}
}

// NextParaID returns a fresh paragraph id.
func (d *Document) NextParaID() string {
	d.nextParaID++
	return fmt.Sprintf("%d", d.nextParaID)
}

// NextShapeID returns a fresh shape id.
func (d *Document) NextShapeID() string {
	d.nextShapeID++
	return fmt.Sprintf("%d", d.nextShapeID)
}

// NewParagraph creates a paragraph with a fresh id. It is not attached.
func (d *Document) NewParagraph(paraPrID, styleID string) *Paragraph {
	return &Paragraph{
		ID:          d.NextParaID(),
		ParaPrIDRef: paraPrID,
		StyleIDRef:  styleID,
	}
}

// AddBinData stores image bytes and returns the manifest item id.
func (d *Document) AddBinData(data []byte, format string) string {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	if format == "jpeg" {
		format = "jpg"
	}
	if format == "" {
		format = "png"
	}
	item := &BinItem{
		ID:        fmt.Sprintf("image%d", len(d.BinData)+1),
		Format:    format,
		MediaType: MediaType(format),
		Data:      data,
	}
	d.BinData = append(d.BinData, item)
	return item.ID
}

// MediaType returns the MIME type for an image format.
func MediaType(format string) string {
	switch format {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "bmp":
		return "image/bmp"
	case "tif", "tiff":
		return "image/tiff"
	default:
		return "image/png"
	}
}

// Section0 returns the first section, creating it if needed.
func (d *Document) Section0() *Section {
	if len(d.Sections) == 0 {
		d.Sections = append(d.Sections, &Section{})
	}
	return d.Sections[0]
}

// ParagraphCount returns the number of top-level paragraphs.
func (d *Document) ParagraphCount() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Paragraphs)
	}
	return n
}
