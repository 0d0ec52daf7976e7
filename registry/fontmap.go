// Package registry maps source fonts and styles onto HWPX header records.
// Each conversion owns its registries; records are created lazily and
// deduplicated so that one signature maps to exactly one id.
package registry

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/tsawler/idmlhwpx/hwpx"
)

// DefaultFont is the fallback target font.
const DefaultFont = hwpx.FontBatang

type fontRule struct {
	match  string
	target string
}

// koreanFonts is matched by substring, in order: specific names precede
// the vendor prefixes that would otherwise shadow them.
var koreanFonts = []fontRule{
	{"윤명조", hwpx.FontBatang},
	{"윤고딕", hwpx.FontDotum},

	{"Sandoll 명조", hwpx.FontBatang},
	{"Sandoll 고딕", hwpx.FontDotum},
	{"Sandoll 안단테", hwpx.FontBatang},
	{"Sandoll 제비", hwpx.FontDotum},
	{"Sandoll 고고", hwpx.FontDotum},

	{"Rix정고딕", hwpx.FontDotum},
	{"Rix착한아이", hwpx.FontDotum},
	{"Rix개봉박두", hwpx.FontDotum},
	{"Rix", hwpx.FontDotum},

	{"210 나무굴림", hwpx.FontDotum},
	{"210 나무젓가락", hwpx.FontDotum},
	{"210 네모진", hwpx.FontDotum},
	{"210 데이라잇", hwpx.FontDotum},
	{"210 딱지치기", hwpx.FontDotum},
	{"210 밤의해변", hwpx.FontBatang},
	{"210 비밀정원", hwpx.FontBatang},
	{"210 자연공원", hwpx.FontDotum},
	{"210 한반도", hwpx.FontDotum},
	{"210 가장자리", hwpx.FontDotum},
	{"210 공중전화", hwpx.FontDotum},
	{"210 꽃길", hwpx.FontBatang},
	{"210 늘솔길", hwpx.FontBatang},
	{"210 라임", hwpx.FontDotum},
	{"210 리얼러브", hwpx.FontBatang},
	{"210 생활반장", hwpx.FontDotum},
	{"210 잎새바람", hwpx.FontBatang},
	{"210", hwpx.FontDotum},

	{"HU가는펜글씨", hwpx.FontBatang},
	{"HU금요일오후", hwpx.FontBatang},
	{"HU너무자몽다", hwpx.FontDotum},
	{"HU달달한코코아", hwpx.FontBatang},
	{"HU바야흐로꽃", hwpx.FontBatang},
	{"HU", hwpx.FontBatang},

	{"DX바른필기", hwpx.FontBatang},
	{"DX새명조", hwpx.FontBatang},
	{"DX", hwpx.FontBatang},

	{"THE삐끗삐끗", hwpx.FontDotum},
	{"THE수수깡", hwpx.FontDotum},
	{"THE", hwpx.FontDotum},

	{"둘기마요_고딕", "HG꼬딕체"},
	{"둘기마요", "HG꼬딕체"},
	{"마루 부리", hwpx.FontBatang},
	{"양진체", "HG꼬딕체"},
	{"나눔스퀘어", hwpx.FontDotum},
	{"땅스부대찌개", hwpx.FontDotum},
	{"ONE 모바일POP", hwpx.FontDotum},
	{"TT더좋은날에", hwpx.FontBatang},
	{"ViMaru", hwpx.FontBatang},

	{"Adobe 명조", hwpx.FontBatang},
	{"Adobe 고딕", hwpx.FontDotum},
	{"Noto Sans", hwpx.FontDotum},
	{"Noto Serif", hwpx.FontBatang},
	{"본명조", hwpx.FontBatang},
	{"본고딕", hwpx.FontDotum},

	{"나눔명조", hwpx.FontBatang},
	{"나눔고딕", hwpx.FontDotum},
	{"나눔바른", hwpx.FontDotum},
	{"나눔손글씨", hwpx.FontBatang},
	{"나눔", hwpx.FontDotum},

	{"맑은 고딕", hwpx.FontDotum},
	{"바탕", hwpx.FontBatang},
	{"돋움", hwpx.FontDotum},
	{"굴림", hwpx.FontDotum},
	{"궁서", hwpx.FontBatang},
	{"신명조", hwpx.FontBatang},
}

// westernFonts is matched exactly.
var westernFonts = map[string]string{
	"Minion Pro":      hwpx.FontBatang,
	"Times New Roman": hwpx.FontBatang,
	"Georgia":         hwpx.FontBatang,
	"Palatino":        hwpx.FontBatang,
	"Cambria":         hwpx.FontBatang,
	"Book Antiqua":    hwpx.FontBatang,

	"Myriad Pro":            hwpx.FontDotum,
	"Arial":                 hwpx.FontDotum,
	"Arial Rounded MT Bold": hwpx.FontDotum,
	"Helvetica":             hwpx.FontDotum,
	"Calibri":               hwpx.FontDotum,
	"Verdana":               hwpx.FontDotum,
	"Tahoma":                hwpx.FontDotum,
	"Segoe UI":              hwpx.FontDotum,
	"Roboto":                hwpx.FontDotum,
	"DIN":                   hwpx.FontDotum,
}

var (
	serifKeywords = []string{"serif", "roman", "garamond", "minion", "times", "palatino"}
	sansKeywords  = []string{"sans", "gothic", "grotesque", "arial", "helvetica", "myriad", "rounded"}
)

// MapFont maps a source font family to a target font name. The lookup
// order is: Korean substring table, Western exact table, Korean keywords,
// Latin keywords, then DefaultFont.
func MapFont(family string) string {
	if family == "" {
		return DefaultFont
	}

	for _, r := range koreanFonts {
		if strings.Contains(family, r.match) {
			return r.target
		}
	}

	if target, ok := westernFonts[family]; ok {
		return target
	}

	if strings.Contains(family, "명조") || strings.Contains(family, "부리") {
		return hwpx.FontBatang
	}
	if strings.Contains(family, "고딕") || strings.Contains(family, "돋움") {
		return hwpx.FontDotum
	}

	folded := cases.Fold().String(family)
	for _, k := range serifKeywords {
		if strings.Contains(folded, k) {
			return hwpx.FontBatang
		}
	}
	for _, k := range sansKeywords {
		if strings.Contains(folded, k) {
			return hwpx.FontDotum
		}
	}

	return DefaultFont
}

// MapFontType normalizes an IDML FontType to TTF or OTF.
func MapFontType(fontType string) string {
	if strings.Contains(fontType, "OpenType") || strings.Contains(fontType, "OTF") {
		return "OTF"
	}
	return "TTF"
}
