package idml

import "strings"

func (r *Reader) parseGraphic(src string) error {
	root, err := r.parseXML(src)
	if err != nil {
		return err
	}
	root.walk("Color", func(n *node) {
		self := n.attr("Self")
		value := strings.TrimSpace(n.attr("ColorValue"))
		if self == "" || value == "" {
			return
		}
		space := strings.ToLower(n.attr("Space"))
		if space == "" {
			space = "cmyk"
		}
		r.doc.Colors[self] = space + " " + value
	})
	return nil
}

func (r *Reader) parseFonts(src string) error {
	root, err := r.parseXML(src)
	if err != nil {
		return err
	}
	root.walk("FontFamily", func(fam *node) {
		family := fam.attr("Name")
		for _, f := range fam.Children {
			if f.name() != "Font" {
				continue
			}
			name := f.attr("FontFamily")
			if name == "" {
				name = family
			}
			if _, exists := r.doc.Fonts[name]; exists {
				continue
			}
			r.doc.Fonts[name] = &FontDef{
				Family:         name,
				StyleName:      f.attr("FontStyleName"),
				PostScriptName: f.attr("PostScriptName"),
				FontType:       f.attr("FontType"),
			}
		}
	})
	return nil
}

func (r *Reader) parseStyles(src string) error {
	root, err := r.parseXML(src)
	if err != nil {
		return err
	}
	root.walk("ParagraphStyle", func(n *node) {
		s := parseStyleDef(n)
		r.doc.ParagraphStyles[s.Ref] = s
	})
	root.walk("CharacterStyle", func(n *node) {
		s := parseStyleDef(n)
		r.doc.CharacterStyles[s.Ref] = s
	})
	return nil
}

func parseStyleDef(n *node) *StyleDef {
	s := &StyleDef{
		Ref:           n.attr("Self"),
		Name:          n.attr("Name"),
		BasedOn:       n.property("BasedOn"),
		FontFamily:    n.property("AppliedFont"),
		FontStyle:     n.attr("FontStyle"),
		PointSize:     n.optFloat("PointSize"),
		FillColor:     n.attr("FillColor"),
		Position:      n.attr("Position"),
		Justification: n.attr("Justification"),

		FirstLineIndent: n.optFloat("FirstLineIndent"),
		LeftIndent:      n.optFloat("LeftIndent"),
		RightIndent:     n.optFloat("RightIndent"),
		SpaceBefore:     n.optFloat("SpaceBefore"),
		SpaceAfter:      n.optFloat("SpaceAfter"),
		Tracking:        n.optFloat("Tracking"),
		HorizontalScale: n.optFloat("HorizontalScale"),
	}
	if s.Name == "" {
		s.Name = styleNameFromRef(s.Ref)
	}
	s.Leading, s.AutoLeading = parseLeading(n)
	s.TabStops = parseTabList(n)
	return s
}

// parseLeading returns fixed leading, or auto leading (percent) when the
// Leading value is "Auto".
func parseLeading(n *node) (*float64, *float64) {
	leading := n.property("Leading")
	if leading == "" {
		return nil, nil
	}
	if strings.EqualFold(leading, "Auto") {
		auto := n.floatAttr("AutoLeading", 120)
		return nil, &auto
	}
	if v, ok := parseFloat(leading); ok {
		return &v, nil
	}
	return nil, nil
}

func parseTabList(n *node) []TabStop {
	props := n.child("Properties")
	if props == nil {
		return nil
	}
	list := props.child("TabList")
	if list == nil {
		return nil
	}
	var tabs []TabStop
	for _, item := range list.Children {
		var t TabStop
		for _, f := range item.Children {
			switch f.name() {
			case "Alignment":
				t.Alignment = strings.TrimSpace(f.Text)
			case "Position":
				t.Position, _ = parseFloat(f.Text)
			case "Leader":
				t.Leader = f.Text
			}
		}
		tabs = append(tabs, t)
	}
	return tabs
}

// styleNameFromRef derives a display name from "ParagraphStyle/Body%3aLead".
func styleNameFromRef(ref string) string {
	name := ref
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return strings.ReplaceAll(name, "%3a", ":")
}
