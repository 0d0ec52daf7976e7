package hwpx

import (
	"encoding/xml"
	"strconv"
)

// XML namespaces of the OWPML package parts.
const (
	NSHead      = "http://www.hancom.co.kr/hwpml/2011/head"
	NSParagraph = "http://www.hancom.co.kr/hwpml/2011/paragraph"
	NSSection   = "http://www.hancom.co.kr/hwpml/2011/section"
	NSCore      = "http://www.hancom.co.kr/hwpml/2011/core"
	NSApp       = "http://www.hancom.co.kr/hwpml/2011/app"
	NSVersion   = "http://www.hancom.co.kr/hwpml/2011/version"
	NSOPF       = "http://www.idpf.org/2007/opf/"
	NSContainer = "urn:oasis:names:tc:opendocument:xmlns:container"
	NSHPF       = "http://www.hancom.co.kr/schema/2011/hpf"
)

// Bool marshals as the "0"/"1" attribute values OWPML expects.
type Bool bool

// MarshalXMLAttr implements xml.MarshalerAttr.
func (b Bool) MarshalXMLAttr(name xml.Name) (xml.Attr, error) {
	if b {
		return xml.Attr{Name: name, Value: "1"}, nil
	}
	return xml.Attr{Name: name, Value: "0"}, nil
}

// UnmarshalXMLAttr implements xml.UnmarshalerAttr.
func (b *Bool) UnmarshalXMLAttr(attr xml.Attr) error {
	*b = attr.Value == "1" || attr.Value == "true"
	return nil
}

func nsAttrs(prefixes ...string) []xml.Attr {
	all := map[string]string{
		"hh":  NSHead,
		"hp":  NSParagraph,
		"hs":  NSSection,
		"hc":  NSCore,
		"ha":  NSApp,
		"hv":  NSVersion,
		"opf": NSOPF,
		"ocf": NSContainer,
		"hpf": NSHPF,
	}
	attrs := make([]xml.Attr, 0, len(prefixes))
	for _, p := range prefixes {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "xmlns:" + p}, Value: all[p]})
	}
	return attrs
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
