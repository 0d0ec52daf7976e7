// Package preview renders an ast document as a static HTML page.
//
// Every section becomes a page-sized box; blocks are absolutely positioned
// inside it at their HWPUNIT coordinates scaled to CSS pixels, so the
// preview shows the layout the HWPX generator will anchor. It is a
// debugging aid, not a faithful renderer.
package preview

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/idmlhwpx/ast"
	"github.com/tsawler/idmlhwpx/hwpx"
)

// DefaultScale converts HWPUNIT (1/7200 inch) to 96 dpi CSS pixels.
const DefaultScale = 96.0 / 7200.0

// Options controls rendering.
type Options struct {
	Title string
	// Scale multiplies HWPUNIT values into CSS pixels. Zero means
	// DefaultScale.
	Scale float64
	// EmbedImages inlines figure pixels as data URIs. When false figures
	// are drawn as labelled boxes.
	EmbedImages bool
	// Outlines draws the bounds of every block.
	Outlines bool
}

const stylesheet = `body{background:#888;margin:0;padding:16px;font-family:sans-serif}
.page{position:relative;background:#fff;margin:0 auto 16px;overflow:hidden}
.page-label{position:absolute;right:4px;bottom:2px;font-size:10px;color:#999}
.block{position:absolute;box-sizing:border-box}
.outlined{outline:1px dashed #c33}
.figure-box{background:#ddd;color:#555;font-size:10px}
.block p{margin:0}
table{border-collapse:collapse;width:100%;height:100%}
td{vertical-align:top;padding:0}`

// Render writes the HTML preview of doc to w.
func Render(w io.Writer, doc *ast.Document, opts Options) error {
	if doc == nil {
		return fmt.Errorf("preview: no document")
	}
	r := renderer{opts: opts}
	if r.opts.Scale <= 0 {
		r.opts.Scale = DefaultScale
	}
	if r.opts.Title == "" {
		r.opts.Title = "Layout preview"
	}
	if err := html.Render(w, r.document(doc)); err != nil {
		return fmt.Errorf("failed to render preview: %w", err)
	}
	return nil
}

// Bytes returns the HTML preview of doc.
func Bytes(doc *ast.Document, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, doc, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type renderer struct {
	opts Options
}

// ============================================================================
// Node helpers
// ============================================================================

func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		if attrs[i+1] == "" {
			continue
		}
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func appendAll(parent *html.Node, children ...*html.Node) *html.Node {
	for _, c := range children {
		if c != nil {
			parent.AppendChild(c)
		}
	}
	return parent
}

func (r renderer) px(v int64) string {
	return strconv.FormatFloat(float64(v)*r.opts.Scale, 'f', 1, 64) + "px"
}

// box returns the CSS placing a block of rect on its page.
func (r renderer) box(rect ast.Rect, z int) string {
	return fmt.Sprintf("left:%s;top:%s;width:%s;height:%s;z-index:%d",
		r.px(rect.X), r.px(rect.Y), r.px(rect.Width), r.px(rect.Height), z)
}

func (r renderer) blockClass(extra string) string {
	c := "block"
	if r.opts.Outlines {
		c += " outlined"
	}
	if extra != "" {
		c += " " + extra
	}
	return c
}

// ============================================================================
// Document structure
// ============================================================================

func (r renderer) document(doc *ast.Document) *html.Node {
	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	head := appendAll(element(atom.Head),
		element(atom.Meta, "charset", "utf-8"),
		appendAll(element(atom.Title), text(r.opts.Title)),
		appendAll(element(atom.Style), text(stylesheet)),
	)

	backgrounds := make(map[int][]*ast.PageBackground)
	for _, bg := range doc.Backgrounds {
		backgrounds[bg.PageNumber] = append(backgrounds[bg.PageNumber], bg)
	}
	body := element(atom.Body)
	for _, s := range doc.Sections {
		body.AppendChild(r.section(s, backgrounds[s.PageNumber]))
	}

	root.AppendChild(appendAll(element(atom.Html, "lang", "ko"), head, body))
	return root
}

func (r renderer) section(s *ast.Section, backgrounds []*ast.PageBackground) *html.Node {
	page := element(atom.Div,
		"class", "page",
		"data-page", strconv.Itoa(s.PageNumber),
		"style", fmt.Sprintf("width:%s;height:%s", r.px(s.Layout.Width), r.px(s.Layout.Height)),
	)
	for _, bg := range backgrounds {
		if !r.opts.EmbedImages || len(bg.PNG) == 0 {
			continue
		}
		page.AppendChild(element(atom.Img,
			"class", "block background",
			"src", dataURI("png", bg.PNG),
			"style", r.box(ast.Rect{Width: bg.Width, Height: bg.Height}, 0),
		))
	}

	for i, blk := range s.Blocks {
		z := i + 1
		switch b := blk.(type) {
		case *ast.TextFrameBlock:
			page.AppendChild(r.textFrame(b, z))
		case *ast.Table:
			wrap := element(atom.Div, "class", r.blockClass("table"), "data-source", b.SourceID, "style", r.box(b.Frame, z))
			page.AppendChild(appendAll(wrap, r.table(b)))
		case *ast.Figure:
			page.AppendChild(r.figure(b, z))
		}
	}

	label := appendAll(element(atom.Span, "class", "page-label"), text(fmt.Sprintf("page %d", s.PageNumber)))
	page.AppendChild(label)
	return page
}

// ============================================================================
// Blocks
// ============================================================================

func (r renderer) textFrame(b *ast.TextFrameBlock, z int) *html.Node {
	css := []string{r.box(b.Frame, z), r.padding(b.Inset)}
	if b.FillColor != "" {
		css = append(css, "background:"+b.FillColor)
	}
	if b.StrokeColor != "" && b.StrokeWeight > 0 {
		css = append(css, fmt.Sprintf("border:%s solid %s", r.px(max(b.StrokeWeight, 1)), b.StrokeColor))
	}
	if b.CornerRadius > 0 {
		css = append(css, "border-radius:"+r.px(b.CornerRadius))
	}
	if b.ColumnCount > 1 {
		css = append(css, fmt.Sprintf("column-count:%d;column-gap:%s", b.ColumnCount, r.px(b.ColumnGutter)))
	}
	if b.VerticalText {
		css = append(css, "writing-mode:vertical-rl")
	}

	div := element(atom.Div,
		"class", r.blockClass("text-frame"),
		"data-source", b.SourceID,
		"style", strings.Join(css, ";"),
	)
	return appendAll(div, r.paragraphs(b.Paragraphs)...)
}

func (r renderer) padding(in ast.Insets) string {
	return fmt.Sprintf("padding:%s %s %s %s", r.px(in.Top), r.px(in.Right), r.px(in.Bottom), r.px(in.Left))
}

func (r renderer) table(t *ast.Table) *html.Node {
	tbl := element(atom.Table)
	for _, row := range t.Rows {
		tr := element(atom.Tr, "style", "height:"+r.px(row.Height))
		for _, c := range row.Cells {
			css := []string{r.padding(c.Margins), "width:" + r.px(c.Width)}
			if c.FillColor != "" {
				css = append(css, "background:"+c.FillColor)
			}
			for _, e := range []struct {
				side string
				b    ast.CellBorder
			}{{"top", c.Top}, {"left", c.Left}, {"bottom", c.Bottom}, {"right", c.Right}} {
				if e.b.Visible() {
					css = append(css, fmt.Sprintf("border-%s:%s solid %s", e.side, r.px(max(e.b.Weight, 72)), e.b.Color))
				}
			}
			td := element(atom.Td,
				"colspan", span(c.ColSpan),
				"rowspan", span(c.RowSpan),
				"data-source", c.SourceID,
				"style", strings.Join(css, ";"),
			)
			tr.AppendChild(appendAll(td, r.paragraphs(c.Paragraphs)...))
		}
		tbl.AppendChild(tr)
	}
	return tbl
}

func span(n int) string {
	if n <= 1 {
		return ""
	}
	return strconv.Itoa(n)
}

func (r renderer) figure(f *ast.Figure, z int) *html.Node {
	css := r.box(f.Frame, z)
	if f.Rotation != 0 {
		css += fmt.Sprintf(";transform:rotate(%.1fdeg)", f.Rotation)
	}
	if r.opts.EmbedImages && len(f.ImageData) > 0 {
		return element(atom.Img,
			"class", r.blockClass("figure"),
			"data-source", f.SourceID,
			"alt", f.SourceID,
			"src", dataURI(f.ImageFormat, f.ImageData),
			"style", css,
		)
	}
	div := element(atom.Div,
		"class", r.blockClass("figure figure-box"),
		"data-source", f.SourceID,
		"style", css,
	)
	return appendAll(div, text(fmt.Sprintf("%s %s", strings.ToLower(f.Kind.String()), f.Layer)))
}

func dataURI(format string, data []byte) string {
	if format == "" {
		format = "png"
	}
	return "data:" + hwpx.MediaType(strings.ToLower(format)) + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ============================================================================
// Paragraphs
// ============================================================================

func (r renderer) paragraphs(ps []*ast.Paragraph) []*html.Node {
	out := make([]*html.Node, 0, len(ps))
	for _, p := range ps {
		out = append(out, r.paragraph(p))
	}
	return out
}

func (r renderer) paragraph(p *ast.Paragraph) *html.Node {
	var css []string
	if a := textAlign(p.Alignment); a != "" {
		css = append(css, "text-align:"+a)
	}
	if p.FirstLineIndent != 0 {
		css = append(css, "text-indent:"+r.px(p.FirstLineIndent))
	}
	if p.LeftMargin != 0 {
		css = append(css, "margin-left:"+r.px(p.LeftMargin))
	}
	if p.SpaceBefore != 0 {
		css = append(css, "margin-top:"+r.px(p.SpaceBefore))
	}
	if p.SpaceAfter != 0 {
		css = append(css, "margin-bottom:"+r.px(p.SpaceAfter))
	}
	if p.ShadingColor != "" {
		css = append(css, "background:"+p.ShadingColor)
	}
	el := element(atom.P, "data-style", p.StyleRef, "style", strings.Join(css, ";"))

	for _, item := range p.Items {
		switch v := item.(type) {
		case *ast.TextRun:
			el.AppendChild(r.run(v))
		case *ast.Break:
			el.AppendChild(element(atom.Br))
		case *ast.Equation:
			el.AppendChild(appendAll(element(atom.Code, "class", "equation", "title", v.Source), text(equationText(v))))
		case *ast.InlineObject:
			el.AppendChild(r.inline(v))
		}
	}
	if len(p.Items) == 0 {
		el.AppendChild(element(atom.Br))
	}
	return el
}

func equationText(eq *ast.Equation) string {
	if eq.Script != "" {
		return eq.Script
	}
	return eq.Source
}

func (r renderer) run(t *ast.TextRun) *html.Node {
	var css []string
	if t.FontFamily != "" {
		css = append(css, fmt.Sprintf("font-family:%q", t.FontFamily))
	}
	if t.Size > 0 {
		// 1/100 pt
		css = append(css, "font-size:"+strconv.FormatFloat(float64(t.Size)/100, 'f', 1, 64)+"pt")
	}
	if t.Color != "" {
		css = append(css, "color:"+t.Color)
	}
	if t.Bold() {
		css = append(css, "font-weight:bold")
	}
	if t.Italic() {
		css = append(css, "font-style:italic")
	}
	if t.LetterSpacing != nil && *t.LetterSpacing != 0 {
		css = append(css, fmt.Sprintf("letter-spacing:%.2fem", float64(*t.LetterSpacing)/100))
	}

	a := atom.Span
	switch {
	case t.Superscript:
		a = atom.Sup
	case t.Subscript:
		a = atom.Sub
	}
	return appendAll(element(a, "data-style", t.CharStyleRef, "style", strings.Join(css, ";")), text(t.Text))
}

func (r renderer) inline(obj *ast.InlineObject) *html.Node {
	css := fmt.Sprintf("display:inline-block;vertical-align:bottom;width:%s;height:%s", r.px(obj.Width), r.px(obj.Height))
	switch obj.Kind {
	case ast.InlineImage, ast.InlineRenderedGroup:
		if r.opts.EmbedImages && len(obj.ImageData) > 0 {
			return element(atom.Img, "src", dataURI(obj.ImageFormat, obj.ImageData), "alt", obj.SourceID, "style", css)
		}
		return appendAll(element(atom.Span, "class", "figure-box", "style", css), text(strings.ToLower(obj.Kind.String())))
	case ast.InlineTextFrame:
		if obj.StrokeColor != "" {
			css += ";border:1px solid " + obj.StrokeColor
		}
		if obj.FillColor != "" {
			css += ";background:" + obj.FillColor
		}
		span := element(atom.Span, "class", "inline-frame", "data-source", obj.SourceID, "style", css)
		return appendAll(span, r.paragraphs(obj.Paragraphs)...)
	case ast.InlineTable:
		span := element(atom.Span, "class", "inline-table", "data-source", obj.SourceID, "style", css)
		if obj.Table != nil {
			span.AppendChild(r.table(obj.Table))
		}
		return span
	}
	return nil
}

func textAlign(a ast.Alignment) string {
	switch a {
	case ast.AlignLeft:
		return "left"
	case ast.AlignCenter:
		return "center"
	case ast.AlignRight:
		return "right"
	case ast.AlignJustify, ast.AlignDistribute:
		return "justify"
	default:
		return ""
	}
}
