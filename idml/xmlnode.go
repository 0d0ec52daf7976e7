package idml

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/tsawler/idmlhwpx/geometry"
)

// node is a generic XML element. IDML page items and story content are
// heterogeneous and order-sensitive (document order is z-order, Content and
// Br interleave), so they are decoded into a tree rather than typed structs.
type node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []*node    `xml:",any"`
	Text     string     `xml:",chardata"`
}

func (n *node) name() string {
	return n.XMLName.Local
}

func (n *node) attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func (n *node) hasAttr(name string) bool {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return true
		}
	}
	return false
}

// child returns the first direct child named name.
func (n *node) child(name string) *node {
	for _, c := range n.Children {
		if c.name() == name {
			return c
		}
	}
	return nil
}

// find returns the first descendant named name, depth first.
func (n *node) find(name string) *node {
	for _, c := range n.Children {
		if c.name() == name {
			return c
		}
		if d := c.find(name); d != nil {
			return d
		}
	}
	return nil
}

// walk calls fn for every descendant named name, depth first.
func (n *node) walk(name string, fn func(*node)) {
	for _, c := range n.Children {
		if c.name() == name {
			fn(c)
		}
		c.walk(name, fn)
	}
}

// property returns an attribute, falling back to the element of the same
// name under <Properties>. IDML stores complex values there.
func (n *node) property(name string) string {
	if v := n.attr(name); v != "" {
		return v
	}
	if props := n.child("Properties"); props != nil {
		if p := props.child(name); p != nil {
			return strings.TrimSpace(p.Text)
		}
	}
	return ""
}

func (n *node) floatAttr(name string, def float64) float64 {
	v, ok := parseFloat(n.property(name))
	if !ok {
		return def
	}
	return v
}

func (n *node) optFloat(name string) *float64 {
	v, ok := parseFloat(n.property(name))
	if !ok {
		return nil
	}
	return &v
}

func (n *node) intAttr(name string, def int) int {
	v := strings.TrimSpace(n.property(name))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func (n *node) transform() geometry.Matrix {
	m, err := geometry.ParseMatrix(n.attr("ItemTransform"))
	if err != nil {
		return geometry.Identity()
	}
	return m
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parsePoint(s string) geometry.Point {
	f := strings.Fields(s)
	if len(f) != 2 {
		return geometry.Point{}
	}
	x, _ := strconv.ParseFloat(f[0], 64)
	y, _ := strconv.ParseFloat(f[1], 64)
	return geometry.Point{X: x, Y: y}
}

func parseFloatList(s string) []float64 {
	var out []float64
	for _, f := range strings.Fields(s) {
		if v, err := strconv.ParseFloat(f, 64); err == nil {
			out = append(out, v)
		}
	}
	return out
}

// listValues reads a <Properties> list such as InsetSpacing or StrokeDashAndGap.
func (n *node) listValues(name string) []float64 {
	if v := n.attr(name); v != "" {
		return parseFloatList(v)
	}
	props := n.child("Properties")
	if props == nil {
		return nil
	}
	list := props.child(name)
	if list == nil {
		return nil
	}
	if len(list.Children) == 0 {
		return parseFloatList(list.Text)
	}
	var out []float64
	for _, item := range list.Children {
		if v, ok := parseFloat(item.Text); ok {
			out = append(out, v)
		}
	}
	return out
}
