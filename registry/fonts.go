package registry

import "github.com/tsawler/idmlhwpx/hwpx"

// FontRegistry assigns header font ids to font names.
type FontRegistry struct {
	header *hwpx.Header
	ids    map[string]string
}

// NewFontRegistry creates a registry seeded with the fonts already present
// in header (함초롬돋움 = "0" and 함초롬바탕 = "1" for a blank document).
func NewFontRegistry(header *hwpx.Header) *FontRegistry {
	r := &FontRegistry{
		header: header,
		ids:    make(map[string]string),
	}
	if len(header.RefList.FontFaces.Faces) > 0 {
		for _, f := range header.RefList.FontFaces.Faces[0].Fonts {
			r.ids[f.Face] = f.ID
		}
	}
	return r
}

// ResolveFontID returns the id for a source font family. A name that is
// already registered is returned directly; otherwise the family is mapped
// with MapFont and the target font is registered on first use. It never
// fails: an empty family resolves to the default font.
func (r *FontRegistry) ResolveFontID(family string) string {
	if family != "" {
		if id, ok := r.ids[family]; ok {
			return id
		}
	}
	return r.RegisterDirect(MapFont(family))
}

// RegisterDirect registers name verbatim, bypassing the mapper.
func (r *FontRegistry) RegisterDirect(name string) string {
	if id, ok := r.ids[name]; ok {
		return id
	}
	id := r.header.AddFont(name)
	r.ids[name] = id
	return id
}

// FontID returns the id of a registered font name.
func (r *FontRegistry) FontID(name string) (string, bool) {
	id, ok := r.ids[name]
	return id, ok
}

// Count returns the number of registered fonts.
func (r *FontRegistry) Count() int {
	return len(r.ids)
}
