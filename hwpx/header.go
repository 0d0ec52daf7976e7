package hwpx

import "encoding/xml"

// Font face languages. Every font is registered under all of them with the
// same id.
var FontLanguages = []string{"HANGUL", "LATIN", "HANJA", "JAPANESE", "OTHER", "SYMBOL", "USER"}

// Header is Contents/header.xml.
type Header struct {
	XMLName  xml.Name   `xml:"hh:head"`
	Attrs    []xml.Attr `xml:",attr"`
	Version  string     `xml:"version,attr"`
	SecCnt   int        `xml:"secCnt,attr"`
	BeginNum BeginNum   `xml:"hh:beginNum"`
	RefList  RefList    `xml:"hh:refList"`
}

// BeginNum holds the starting numbers of auto-numbered objects.
type BeginNum struct {
	Page      int `xml:"page,attr"`
	Footnote  int `xml:"footnote,attr"`
	Endnote   int `xml:"endnote,attr"`
	Pic       int `xml:"pic,attr"`
	Tbl       int `xml:"tbl,attr"`
	Equation  int `xml:"equation,attr"`
}

// RefList holds every id-referenced header record.
type RefList struct {
	FontFaces      FontFaces      `xml:"hh:fontfaces"`
	BorderFills    BorderFills    `xml:"hh:borderFills"`
	CharProperties CharProperties `xml:"hh:charProperties"`
	TabProperties  TabProperties  `xml:"hh:tabProperties"`
	ParaProperties ParaProperties `xml:"hh:paraProperties"`
	Styles         Styles         `xml:"hh:styles"`
}

// FontFaces is the per-language font table list.
type FontFaces struct {
	ItemCnt int         `xml:"itemCnt,attr"`
	Faces   []*FontFace `xml:"hh:fontface"`
}

// FontFace is the font table for one language.
type FontFace struct {
	Lang    string  `xml:"lang,attr"`
	FontCnt int     `xml:"fontCnt,attr"`
	Fonts   []*Font `xml:"hh:font"`
}

// Font is one font table entry.
type Font struct {
	ID         string   `xml:"id,attr"`
	Face       string   `xml:"face,attr"`
	Type       string   `xml:"type,attr"`
	IsEmbedded Bool     `xml:"isEmbedded,attr"`
	TypeInfo   TypeInfo `xml:"hh:typeInfo"`
}

// TypeInfo is the PANOSE-like classification of a font.
type TypeInfo struct {
	FamilyType      string `xml:"familyType,attr"`
	Weight          int    `xml:"weight,attr"`
	Proportion      int    `xml:"proportion,attr"`
	Contrast        int    `xml:"contrast,attr"`
	StrokeVariation int    `xml:"strokeVariation,attr"`
	ArmStyle        int    `xml:"armStyle,attr"`
	Letterform      int    `xml:"letterform,attr"`
	Midline         int    `xml:"midline,attr"`
	XHeight         int    `xml:"xHeight,attr"`
}

// BorderFills is the border/fill table.
type BorderFills struct {
	ItemCnt int           `xml:"itemCnt,attr"`
	Items   []*BorderFill `xml:"hh:borderFill"`
}

// BorderFill describes the four borders, diagonals and background of a
// cell, paragraph or page.
type BorderFill struct {
	ID                    string     `xml:"id,attr"`
	ThreeD                Bool       `xml:"threeD,attr"`
	Shadow                Bool       `xml:"shadow,attr"`
	CenterLine            string     `xml:"centerLine,attr"`
	BreakCellSeparateLine Bool       `xml:"breakCellSeparateLine,attr"`
	Slash                 Slash      `xml:"hh:slash"`
	BackSlash             Slash      `xml:"hh:backSlash"`
	LeftBorder            Border     `xml:"hh:leftBorder"`
	RightBorder           Border     `xml:"hh:rightBorder"`
	TopBorder             Border     `xml:"hh:topBorder"`
	BottomBorder          Border     `xml:"hh:bottomBorder"`
	Diagonal              Border     `xml:"hh:diagonal"`
	FillBrush             *FillBrush `xml:"hc:fillBrush,omitempty"`
}

// Slash is a diagonal line setting.
type Slash struct {
	Type      string `xml:"type,attr"`
	Crooked   Bool   `xml:"Crooked,attr"`
	IsCounter Bool   `xml:"isCounter,attr"`
}

// Border is one edge of a border fill.
type Border struct {
	Type  string `xml:"type,attr"`
	Width string `xml:"width,attr"`
	Color string `xml:"color,attr"`
}

// FillBrush is a solid background brush.
type FillBrush struct {
	WinBrush WinBrush `xml:"hc:winBrush"`
}

// WinBrush is a solid colour fill.
type WinBrush struct {
	FaceColor  string  `xml:"faceColor,attr"`
	HatchColor string  `xml:"hatchColor,attr"`
	Alpha      float64 `xml:"alpha,attr"`
}

// CharProperties is the character shape table.
type CharProperties struct {
	ItemCnt int       `xml:"itemCnt,attr"`
	Items   []*CharPr `xml:"hh:charPr"`
}

// LangValues carries one value per font language.
type LangValues struct {
	Hangul   string `xml:"hangul,attr"`
	Latin    string `xml:"latin,attr"`
	Hanja    string `xml:"hanja,attr"`
	Japanese string `xml:"japanese,attr"`
	Other    string `xml:"other,attr"`
	Symbol   string `xml:"symbol,attr"`
	User     string `xml:"user,attr"`
}

// SameLangValues returns LangValues with v for every language.
func SameLangValues(v string) LangValues {
	return LangValues{v, v, v, v, v, v, v}
}

// Marker is an empty flag element such as <hh:bold/>.
type Marker struct{}

// CharPr is a character shape.
type CharPr struct {
	ID              string     `xml:"id,attr"`
	Height          int        `xml:"height,attr"`
	TextColor       string     `xml:"textColor,attr"`
	ShadeColor      string     `xml:"shadeColor,attr"`
	UseFontSpace    Bool       `xml:"useFontSpace,attr"`
	UseKerning      Bool       `xml:"useKerning,attr"`
	SymMark         string     `xml:"symMark,attr"`
	BorderFillIDRef string     `xml:"borderFillIDRef,attr"`
	FontRef         LangValues `xml:"hh:fontRef"`
	Ratio           LangValues `xml:"hh:ratio"`
	Spacing         LangValues `xml:"hh:spacing"`
	RelSz           LangValues `xml:"hh:relSz"`
	Offset          LangValues `xml:"hh:offset"`
	Bold            *Marker    `xml:"hh:bold,omitempty"`
	Italic          *Marker    `xml:"hh:italic,omitempty"`
	Underline       Underline  `xml:"hh:underline"`
	Strikeout       Strikeout  `xml:"hh:strikeout"`
	Outline         Outline    `xml:"hh:outline"`
	Shadow          CharShadow `xml:"hh:shadow"`
	Supscript       *Marker    `xml:"hh:supscript,omitempty"`
	Subscript       *Marker    `xml:"hh:subscript,omitempty"`
}

// Underline setting of a character shape.
type Underline struct {
	Type  string `xml:"type,attr"`
	Shape string `xml:"shape,attr"`
	Color string `xml:"color,attr"`
}

// Strikeout setting of a character shape.
type Strikeout struct {
	Shape string `xml:"shape,attr"`
	Color string `xml:"color,attr"`
}

// Outline setting of a character shape.
type Outline struct {
	Type string `xml:"type,attr"`
}

// CharShadow setting of a character shape.
type CharShadow struct {
	Type    string `xml:"type,attr"`
	Color   string `xml:"color,attr"`
	OffsetX int    `xml:"offsetX,attr"`
	OffsetY int    `xml:"offsetY,attr"`
}

// NewCharPr returns a character shape with the neutral settings every
// record starts from.
func NewCharPr(id string, height int, color, fontID string) *CharPr {
	return &CharPr{
		ID:              id,
		Height:          height,
		TextColor:       color,
		ShadeColor:      "none",
		SymMark:         "NONE",
		BorderFillIDRef: "2",
		FontRef:         SameLangValues(fontID),
		Ratio:           SameLangValues("100"),
		Spacing:         SameLangValues("0"),
		RelSz:           SameLangValues("100"),
		Offset:          SameLangValues("0"),
		Underline:       Underline{Type: "NONE", Shape: "SOLID", Color: "#000000"},
		Strikeout:       Strikeout{Shape: "NONE", Color: "#000000"},
		Outline:         Outline{Type: "NONE"},
		Shadow:          CharShadow{Type: "NONE", Color: "#B2B2B2", OffsetX: 10, OffsetY: 10},
	}
}

// TabProperties is the tab definition table.
type TabProperties struct {
	ItemCnt int      `xml:"itemCnt,attr"`
	Items   []*TabPr `xml:"hh:tabPr"`
}

// TabPr is a set of tab stops.
type TabPr struct {
	ID           string     `xml:"id,attr"`
	AutoTabLeft  Bool       `xml:"autoTabLeft,attr"`
	AutoTabRight Bool       `xml:"autoTabRight,attr"`
	Items        []*TabItem `xml:"hh:tabItem"`
}

// TabItem is one tab stop.
type TabItem struct {
	Pos    int64  `xml:"pos,attr"`
	Type   string `xml:"type,attr"`
	Leader string `xml:"leader,attr"`
	Unit   string `xml:"unit,attr"`
}

// ParaProperties is the paragraph shape table.
type ParaProperties struct {
	ItemCnt int       `xml:"itemCnt,attr"`
	Items   []*ParaPr `xml:"hh:paraPr"`
}

// ParaPr is a paragraph shape.
type ParaPr struct {
	ID                  string       `xml:"id,attr"`
	TabPrIDRef          string       `xml:"tabPrIDRef,attr"`
	Condense            int          `xml:"condense,attr"`
	FontLineHeight      Bool         `xml:"fontLineHeight,attr"`
	SnapToGrid          Bool         `xml:"snapToGrid,attr"`
	SuppressLineNumbers Bool         `xml:"suppressLineNumbers,attr"`
	Checked             Bool         `xml:"checked,attr"`
	Align               ParaAlign    `xml:"hh:align"`
	Heading             Heading      `xml:"hh:heading"`
	BreakSetting        BreakSetting `xml:"hh:breakSetting"`
	AutoSpacing         AutoSpacing  `xml:"hh:autoSpacing"`
	Margin              ParaMargin   `xml:"hh:margin"`
	LineSpacing         LineSpacing  `xml:"hh:lineSpacing"`
	Border              ParaBorder   `xml:"hh:border"`
}

// ParaAlign is the paragraph alignment.
type ParaAlign struct {
	Horizontal string `xml:"horizontal,attr"`
	Vertical   string `xml:"vertical,attr"`
}

// Heading is the outline/numbering heading of a paragraph.
type Heading struct {
	Type  string `xml:"type,attr"`
	IDRef string `xml:"idRef,attr"`
	Level int    `xml:"level,attr"`
}

// BreakSetting controls line and page breaking.
type BreakSetting struct {
	BreakLatinWord    string `xml:"breakLatinWord,attr"`
	BreakNonLatinWord string `xml:"breakNonLatinWord,attr"`
	WidowOrphan       Bool   `xml:"widowOrphan,attr"`
	KeepWithNext      Bool   `xml:"keepWithNext,attr"`
	KeepLines         Bool   `xml:"keepLines,attr"`
	PageBreakBefore   Bool   `xml:"pageBreakBefore,attr"`
	LineWrap          string `xml:"lineWrap,attr"`
}

// AutoSpacing controls automatic spacing between scripts.
type AutoSpacing struct {
	EAsianEng Bool `xml:"eAsianEng,attr"`
	EAsianNum Bool `xml:"eAsianNum,attr"`
}

// UnitValue is a length with its unit.
type UnitValue struct {
	Value int64  `xml:"value,attr"`
	Unit  string `xml:"unit,attr"`
}

// HwpUnit returns a UnitValue in HWPUNIT.
func HwpUnit(v int64) UnitValue {
	return UnitValue{Value: v, Unit: "HWPUNIT"}
}

// ParaMargin holds paragraph indents and spacing.
type ParaMargin struct {
	Intent UnitValue `xml:"hc:intent"`
	Left   UnitValue `xml:"hc:left"`
	Right  UnitValue `xml:"hc:right"`
	Prev   UnitValue `xml:"hc:prev"`
	Next   UnitValue `xml:"hc:next"`
}

// LineSpacing of a paragraph.
type LineSpacing struct {
	Type  string `xml:"type,attr"`
	Value int    `xml:"value,attr"`
	Unit  string `xml:"unit,attr"`
}

// ParaBorder references the paragraph border fill.
type ParaBorder struct {
	BorderFillIDRef string `xml:"borderFillIDRef,attr"`
	OffsetLeft      int    `xml:"offsetLeft,attr"`
	OffsetRight     int    `xml:"offsetRight,attr"`
	OffsetTop       int    `xml:"offsetTop,attr"`
	OffsetBottom    int    `xml:"offsetBottom,attr"`
	Connect         Bool   `xml:"connect,attr"`
	IgnoreMargin    Bool   `xml:"ignoreMargin,attr"`
}

// NewParaPr returns a paragraph shape with the neutral settings every
// record starts from.
func NewParaPr(id, tabPrID string) *ParaPr {
	return &ParaPr{
		ID:         id,
		TabPrIDRef: tabPrID,
		SnapToGrid: true,
		Align:      ParaAlign{Horizontal: "JUSTIFY", Vertical: "BASELINE"},
		Heading:    Heading{Type: "NONE", IDRef: "0"},
		BreakSetting: BreakSetting{
			BreakLatinWord:    "KEEP_WORD",
			BreakNonLatinWord: "KEEP_WORD",
			LineWrap:          "BREAK",
		},
		Margin: ParaMargin{
			Intent: HwpUnit(0), Left: HwpUnit(0), Right: HwpUnit(0),
			Prev: HwpUnit(0), Next: HwpUnit(0),
		},
		LineSpacing: LineSpacing{Type: "PERCENT", Value: 130, Unit: "HWPUNIT"},
		Border:      ParaBorder{BorderFillIDRef: "2"},
	}
}

// Styles is the named style table.
type Styles struct {
	ItemCnt int      `xml:"itemCnt,attr"`
	Items   []*Style `xml:"hh:style"`
}

// Style is a named paragraph or character style.
type Style struct {
	ID             string `xml:"id,attr"`
	Type           string `xml:"type,attr"`
	Name           string `xml:"name,attr"`
	EngName        string `xml:"engName,attr"`
	ParaPrIDRef    string `xml:"paraPrIDRef,attr"`
	CharPrIDRef    string `xml:"charPrIDRef,attr"`
	NextStyleIDRef string `xml:"nextStyleIDRef,attr"`
	LangID         string `xml:"langID,attr"`
	LockForm       Bool   `xml:"lockForm,attr"`
}

// AddFont registers face under every language and returns its id.
func (h *Header) AddFont(face string) string {
	id := ""
	for _, ff := range h.RefList.FontFaces.Faces {
		id = itoa(len(ff.Fonts))
		ff.Fonts = append(ff.Fonts, &Font{
			ID:   id,
			Face: face,
			Type: "TTF",
			TypeInfo: TypeInfo{
				FamilyType: "FCAT_GOTHIC", Weight: 8, Proportion: 4,
				StrokeVariation: 1, ArmStyle: 1, Letterform: 1, Midline: 1, XHeight: 1,
			},
		})
	}
	return id
}

// AddBorderFill appends a border fill, assigning the next id.
func (h *Header) AddBorderFill(bf *BorderFill) string {
	bf.ID = itoa(len(h.RefList.BorderFills.Items) + 1)
	h.RefList.BorderFills.Items = append(h.RefList.BorderFills.Items, bf)
	return bf.ID
}

// AddCharPr appends a character shape, assigning the next id.
func (h *Header) AddCharPr(cp *CharPr) string {
	cp.ID = itoa(len(h.RefList.CharProperties.Items))
	h.RefList.CharProperties.Items = append(h.RefList.CharProperties.Items, cp)
	return cp.ID
}

// AddParaPr appends a paragraph shape, assigning the next id.
func (h *Header) AddParaPr(pp *ParaPr) string {
	pp.ID = itoa(len(h.RefList.ParaProperties.Items))
	h.RefList.ParaProperties.Items = append(h.RefList.ParaProperties.Items, pp)
	return pp.ID
}

// AddTabPr appends a tab definition, assigning the next id.
func (h *Header) AddTabPr(tp *TabPr) string {
	tp.ID = itoa(len(h.RefList.TabProperties.Items))
	h.RefList.TabProperties.Items = append(h.RefList.TabProperties.Items, tp)
	return tp.ID
}

// AddStyle appends a style, assigning the next id.
func (h *Header) AddStyle(s *Style) string {
	s.ID = itoa(len(h.RefList.Styles.Items))
	h.RefList.Styles.Items = append(h.RefList.Styles.Items, s)
	return s.ID
}

// FontID returns the id of face in the HANGUL table.
func (h *Header) FontID(face string) (string, bool) {
	if len(h.RefList.FontFaces.Faces) == 0 {
		return "", false
	}
	for _, f := range h.RefList.FontFaces.Faces[0].Fonts {
		if f.Face == face {
			return f.ID, true
		}
	}
	return "", false
}

// CharPr returns the character shape with the given id.
func (h *Header) CharPr(id string) *CharPr {
	for _, cp := range h.RefList.CharProperties.Items {
		if cp.ID == id {
			return cp
		}
	}
	return nil
}

// ParaPr returns the paragraph shape with the given id.
func (h *Header) ParaPr(id string) *ParaPr {
	for _, pp := range h.RefList.ParaProperties.Items {
		if pp.ID == id {
			return pp
		}
	}
	return nil
}

// finalize fills the item counts before marshalling.
func (h *Header) finalize() {
	rl := &h.RefList
	rl.FontFaces.ItemCnt = len(rl.FontFaces.Faces)
	for _, ff := range rl.FontFaces.Faces {
		ff.FontCnt = len(ff.Fonts)
	}
	rl.BorderFills.ItemCnt = len(rl.BorderFills.Items)
	rl.CharProperties.ItemCnt = len(rl.CharProperties.Items)
	rl.TabProperties.ItemCnt = len(rl.TabProperties.Items)
	rl.ParaProperties.ItemCnt = len(rl.ParaProperties.Items)
	rl.Styles.ItemCnt = len(rl.Styles.Items)
	h.Attrs = nsAttrs("ha", "hp", "hs", "hc", "hh")
}
