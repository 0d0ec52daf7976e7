package hwpx

import "encoding/xml"

// ShapeObject holds the attributes shared by every floating object.
type ShapeObject struct {
	ID            string `xml:"id,attr"`
	ZOrder        int    `xml:"zOrder,attr"`
	NumberingType string `xml:"numberingType,attr"`
	TextWrap      string `xml:"textWrap,attr"`
	TextFlow      string `xml:"textFlow,attr"`
	Lock          Bool   `xml:"lock,attr"`
	DropcapStyle  string `xml:"dropcapstyle,attr"`
}

// Text wrap modes.
const (
	WrapInFrontOfText = "IN_FRONT_OF_TEXT"
	WrapBehindText    = "BEHIND_TEXT"
	WrapTopAndBottom  = "TOP_AND_BOTTOM"
)

func newShapeObject(id string, z int, numbering, wrap string) ShapeObject {
	return ShapeObject{
		ID:            id,
		ZOrder:        z,
		NumberingType: numbering,
		TextWrap:      wrap,
		TextFlow:      "BOTH_SIDES",
		DropcapStyle:  "None",
	}
}

// XY is a pair of coordinates, used for offsets and sizes.
type XY struct {
	X int64 `xml:"x,attr"`
	Y int64 `xml:"y,attr"`
}

// WH is a width and height pair.
type WH struct {
	Width  int64 `xml:"width,attr"`
	Height int64 `xml:"height,attr"`
}

// Flip is the mirror state of a drawing object.
type Flip struct {
	Horizontal Bool `xml:"horizontal,attr"`
	Vertical   Bool `xml:"vertical,attr"`
}

// RotationInfo is the rotation of a drawing object.
type RotationInfo struct {
	Angle       int   `xml:"angle,attr"`
	CenterX     int64 `xml:"centerX,attr"`
	CenterY     int64 `xml:"centerY,attr"`
	RotateImage Bool  `xml:"rotateimage,attr"`
}

// Matrix is a 2x3 affine matrix in element form.
type Matrix struct {
	E1 float64 `xml:"e1,attr"`
	E2 float64 `xml:"e2,attr"`
	E3 float64 `xml:"e3,attr"`
	E4 float64 `xml:"e4,attr"`
	E5 float64 `xml:"e5,attr"`
	E6 float64 `xml:"e6,attr"`
}

// IdentityMatrix returns the identity matrix.
func IdentityMatrix() Matrix {
	return Matrix{E1: 1, E5: 1}
}

// RenderingInfo is the transform stack of a drawing object.
type RenderingInfo struct {
	TransMatrix Matrix `xml:"hc:transMatrix"`
	ScaMatrix   Matrix `xml:"hc:scaMatrix"`
	RotMatrix   Matrix `xml:"hc:rotMatrix"`
}

// ShapeComponent holds the geometry shared by drawing objects.
type ShapeComponent struct {
	Href          string        `xml:"href,attr"`
	GroupLevel    int           `xml:"groupLevel,attr"`
	InstID        string        `xml:"instid,attr"`
	Offset        XY            `xml:"hp:offset"`
	OrgSz         WH            `xml:"hp:orgSz"`
	CurSz         WH            `xml:"hp:curSz"`
	Flip          Flip          `xml:"hp:flip"`
	RotationInfo  RotationInfo  `xml:"hp:rotationInfo"`
	RenderingInfo RenderingInfo `xml:"hp:renderingInfo"`
}

func newShapeComponent(instID string, w, h int64) ShapeComponent {
	return ShapeComponent{
		InstID:        instID,
		OrgSz:         WH{w, h},
		CurSz:         WH{w, h},
		RotationInfo:  RotationInfo{CenterX: w / 2, CenterY: h / 2, RotateImage: true},
		RenderingInfo: RenderingInfo{IdentityMatrix(), IdentityMatrix(), IdentityMatrix()},
	}
}

// Size is the hp:sz element of a floating object.
type Size struct {
	Width      int64  `xml:"width,attr"`
	WidthRelTo string `xml:"widthRelTo,attr"`
	Height     int64  `xml:"height,attr"`
	HeightRel  string `xml:"heightRelTo,attr"`
	Protect    Bool   `xml:"protect,attr"`
}

// Position is the hp:pos element of a floating object.
type Position struct {
	TreatAsChar     Bool   `xml:"treatAsChar,attr"`
	AffectLSpacing  Bool   `xml:"affectLSpacing,attr"`
	FlowWithText    Bool   `xml:"flowWithText,attr"`
	AllowOverlap    Bool   `xml:"allowOverlap,attr"`
	HoldAnchorAndSO Bool   `xml:"holdAnchorAndSO,attr"`
	VertRelTo       string `xml:"vertRelTo,attr"`
	HorzRelTo       string `xml:"horzRelTo,attr"`
	VertAlign       string `xml:"vertAlign,attr"`
	HorzAlign       string `xml:"horzAlign,attr"`
	VertOffset      int64  `xml:"vertOffset,attr"`
	HorzOffset      int64  `xml:"horzOffset,attr"`
}

// Margin is a four-sided inset.
type Margin struct {
	Left   int64 `xml:"left,attr"`
	Right  int64 `xml:"right,attr"`
	Top    int64 `xml:"top,attr"`
	Bottom int64 `xml:"bottom,attr"`
}

// Placement is the size, position and outer margin of a floating object.
type Placement struct {
	Sz        Size     `xml:"hp:sz"`
	Pos       Position `xml:"hp:pos"`
	OutMargin Margin   `xml:"hp:outMargin"`
}

// PaperPlacement anchors an object at (x, y) relative to the paper.
func PaperPlacement(x, y, w, h int64) Placement {
	return Placement{
		Sz: Size{Width: w, WidthRelTo: "ABSOLUTE", Height: h, HeightRel: "ABSOLUTE"},
		Pos: Position{
			AllowOverlap: true,
			VertRelTo:    "PAPER",
			HorzRelTo:    "PAPER",
			VertAlign:    "TOP",
			HorzAlign:    "LEFT",
			VertOffset:   y,
			HorzOffset:   x,
		},
	}
}

// InlinePlacement treats an object as a character of the paragraph.
func InlinePlacement(w, h int64) Placement {
	return Placement{
		Sz: Size{Width: w, WidthRelTo: "ABSOLUTE", Height: h, HeightRel: "ABSOLUTE"},
		Pos: Position{
			TreatAsChar:    true,
			AffectLSpacing: true,
			FlowWithText:   true,
			VertRelTo:      "PARA",
			HorzRelTo:      "PARA",
			VertAlign:      "BOTTOM",
			HorzAlign:      "LEFT",
		},
	}
}

// ============================================================================
// Rectangle / text box
// ============================================================================

// LineShape is the outline of a drawing object.
type LineShape struct {
	Color        string  `xml:"color,attr"`
	Width        int64   `xml:"width,attr"`
	Style        string  `xml:"style,attr"`
	EndCap       string  `xml:"endCap,attr"`
	HeadStyle    string  `xml:"headStyle,attr"`
	TailStyle    string  `xml:"tailStyle,attr"`
	HeadFill     Bool    `xml:"headfill,attr"`
	TailFill     Bool    `xml:"tailfill,attr"`
	HeadSz       string  `xml:"headSz,attr"`
	TailSz       string  `xml:"tailSz,attr"`
	OutlineStyle string  `xml:"outlineStyle,attr"`
	Alpha        float64 `xml:"alpha,attr"`
}

// NewLineShape returns an outline. A style of NONE hides it.
func NewLineShape(color string, width int64, style string, alpha float64) LineShape {
	return LineShape{
		Color:        color,
		Width:        width,
		Style:        style,
		EndCap:       "FLAT",
		HeadStyle:    "NORMAL",
		TailStyle:    "NORMAL",
		HeadFill:     true,
		TailFill:     true,
		HeadSz:       "SMALL_SMALL",
		TailSz:       "SMALL_SMALL",
		OutlineStyle: "NORMAL",
		Alpha:        alpha,
	}
}

// DrawText is the text content of a drawing object.
type DrawText struct {
	LastWidth  int64    `xml:"lastWidth,attr"`
	Name       string   `xml:"name,attr"`
	Editable   Bool     `xml:"editable,attr"`
	SubList    *SubList `xml:"hp:subList"`
	TextMargin Margin   `xml:"hp:textMargin"`
}

// Rect is an hp:rect drawing object, used here as a positioned text box.
type Rect struct {
	XMLName xml.Name `xml:"hp:rect"`
	ShapeObject
	ShapeComponent
	Ratio     int        `xml:"ratio,attr"`
	LineShape LineShape  `xml:"hp:lineShape"`
	FillBrush *FillBrush `xml:"hc:fillBrush,omitempty"`
	DrawText  *DrawText  `xml:"hp:drawText,omitempty"`
	Pt0       XY         `xml:"hc:pt0"`
	Pt1       XY         `xml:"hc:pt1"`
	Pt2       XY         `xml:"hc:pt2"`
	Pt3       XY         `xml:"hc:pt3"`
	Placement
}

func (*Rect) runItem() {}

// NewRect creates a rectangle of w by h anchored by placement.
func NewRect(id, instID string, z int, w, h int64, placement Placement) *Rect {
	return &Rect{
		ShapeObject:    newShapeObject(id, z, "PICTURE", WrapInFrontOfText),
		ShapeComponent: newShapeComponent(instID, w, h),
		LineShape:      NewLineShape("#000000", 0, "NONE", 0),
		Pt1:            XY{w, 0},
		Pt2:            XY{w, h},
		Pt3:            XY{0, h},
		Placement:      placement,
	}
}

// ============================================================================
// Table
// ============================================================================

// Table is an hp:tbl element.
type Table struct {
	XMLName xml.Name `xml:"hp:tbl"`
	ShapeObject
	PageBreak       string `xml:"pageBreak,attr"`
	RepeatHeader    Bool   `xml:"repeatHeader,attr"`
	RowCnt          int    `xml:"rowCnt,attr"`
	ColCnt          int    `xml:"colCnt,attr"`
	CellSpacing     int    `xml:"cellSpacing,attr"`
	BorderFillIDRef string `xml:"borderFillIDRef,attr"`
	NoAdjust        Bool   `xml:"noAdjust,attr"`
	Placement
	InMargin Margin      `xml:"hp:inMargin"`
	Rows     []*TableRow `xml:"hp:tr"`
}

func (*Table) runItem() {}

// NewTable creates an empty rows x cols table anchored by placement.
func NewTable(id string, z, rows, cols int, placement Placement) *Table {
	return &Table{
		ShapeObject:     newShapeObject(id, z, "TABLE", WrapInFrontOfText),
		PageBreak:       "CELL",
		RowCnt:          rows,
		ColCnt:          cols,
		BorderFillIDRef: "1",
		Placement:       placement,
	}
}

// TableRow is an hp:tr element.
type TableRow struct {
	Cells []*TableCell `xml:"hp:tc"`
}

// TableCell is an hp:tc element.
type TableCell struct {
	Name            string   `xml:"name,attr"`
	Header          Bool     `xml:"header,attr"`
	HasMargin       Bool     `xml:"hasMargin,attr"`
	Protect         Bool     `xml:"protect,attr"`
	Editable        Bool     `xml:"editable,attr"`
	Dirty           Bool     `xml:"dirty,attr"`
	BorderFillIDRef string   `xml:"borderFillIDRef,attr"`
	SubList         *SubList `xml:"hp:subList"`
	CellAddr        CellAddr `xml:"hp:cellAddr"`
	CellSpan        CellSpan `xml:"hp:cellSpan"`
	CellSz          WH       `xml:"hp:cellSz"`
	CellMargin      Margin   `xml:"hp:cellMargin"`
}

// CellAddr is the grid address of a cell.
type CellAddr struct {
	ColAddr int `xml:"colAddr,attr"`
	RowAddr int `xml:"rowAddr,attr"`
}

// CellSpan is the merge extent of a cell.
type CellSpan struct {
	ColSpan int `xml:"colSpan,attr"`
	RowSpan int `xml:"rowSpan,attr"`
}

// ============================================================================
// Picture
// ============================================================================

// ImgRect is the display rectangle of a picture.
type ImgRect struct {
	Pt0 XY `xml:"hc:pt0"`
	Pt1 XY `xml:"hc:pt1"`
	Pt2 XY `xml:"hc:pt2"`
	Pt3 XY `xml:"hc:pt3"`
}

// ImgDim is the original dimension of the image data.
type ImgDim struct {
	DimWidth  int64 `xml:"dimwidth,attr"`
	DimHeight int64 `xml:"dimheight,attr"`
}

// Img references a binary data item.
type Img struct {
	BinaryItemIDRef string  `xml:"binaryItemIDRef,attr"`
	Bright          int     `xml:"bright,attr"`
	Contrast        int     `xml:"contrast,attr"`
	Effect          string  `xml:"effect,attr"`
	Alpha           float64 `xml:"alpha,attr"`
}

// Picture is an hp:pic element.
type Picture struct {
	XMLName xml.Name `xml:"hp:pic"`
	ShapeObject
	ShapeComponent
	Reverse  Bool    `xml:"reverse,attr"`
	ImgRect  ImgRect `xml:"hp:imgRect"`
	ImgClip  Margin  `xml:"hp:imgClip"`
	InMargin Margin  `xml:"hp:inMargin"`
	ImgDim   ImgDim  `xml:"hp:imgDim"`
	Img      Img     `xml:"hc:img"`
	Placement
}

func (*Picture) runItem() {}

// PixelToClip is the number of clip units per source pixel.
const PixelToClip = 75

// NewPicture creates a picture of w by h HWPUNIT showing a pixelW by
// pixelH image stored under binItemID.
func NewPicture(id, instID string, z int, w, h int64, pixelW, pixelH int, binItemID string, placement Placement) *Picture {
	if pixelW <= 0 {
		pixelW = 100
	}
	if pixelH <= 0 {
		pixelH = 100
	}
	clipW := int64(pixelW) * PixelToClip
	clipH := int64(pixelH) * PixelToClip
	return &Picture{
		ShapeObject:    newShapeObject(id, z, "PICTURE", WrapBehindText),
		ShapeComponent: newShapeComponent(instID, w, h),
		ImgRect:        ImgRect{Pt1: XY{w, 0}, Pt2: XY{w, h}, Pt3: XY{0, h}},
		ImgClip:        Margin{Right: clipW, Bottom: clipH},
		ImgDim:         ImgDim{DimWidth: clipW, DimHeight: clipH},
		Img:            Img{BinaryItemIDRef: binItemID, Effect: "REAL_PIC"},
		Placement:      placement,
	}
}

// ============================================================================
// Equation
// ============================================================================

// Equation is an hp:equation element.
type Equation struct {
	XMLName xml.Name `xml:"hp:equation"`
	ShapeObject
	Version   string `xml:"version,attr"`
	BaseLine  int    `xml:"baseLine,attr"`
	TextColor string `xml:"textColor,attr"`
	BaseUnit  int    `xml:"baseUnit,attr"`
	LineMode  string `xml:"lineMode,attr"`
	Font      string `xml:"font,attr"`
	Placement
	Script string `xml:"hp:script"`
}

func (*Equation) runItem() {}

// Equation defaults.
const (
	EquationVersion  = "Equation Version 60"
	EquationFont     = "HYhwpEQ"
	EquationBaseUnit = 1100
)

// NewEquation creates an inline equation of w by h showing script.
func NewEquation(id string, script string, baseUnit int, color string, w, h int64) *Equation {
	if baseUnit <= 0 {
		baseUnit = EquationBaseUnit
	}
	if color == "" {
		color = "#000000"
	}
	return &Equation{
		ShapeObject: newShapeObject(id, 0, "EQUATION", WrapTopAndBottom),
		Version:     EquationVersion,
		BaseLine:    85,
		TextColor:   color,
		BaseUnit:    baseUnit,
		LineMode:    "CHAR",
		Font:        EquationFont,
		Placement:   InlinePlacement(w, h),
		Script:      script,
	}
}
