package idml

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tsawler/idmlhwpx/geometry"
)

func (r *Reader) parseStory(src string) error {
	root, err := r.parseXML(src)
	if err != nil {
		return err
	}
	// The package wrapper <idPkg:Story> shares the local name of the
	// <Story> element it holds.
	storyNode := root.child("Story")
	if storyNode == nil && root.attr("Self") != "" {
		storyNode = root
	}
	if storyNode == nil {
		return fmt.Errorf("no <Story> element")
	}

	story := &Story{ID: storyNode.attr("Self")}
	b := &storyBuilder{reader: r}
	b.container(storyNode)
	story.Paragraphs = b.paragraphs
	r.doc.Stories[story.ID] = story
	return nil
}

// storyBuilder turns ParagraphStyleRange/CharacterStyleRange trees into
// paragraphs. A <Br/> ends the current paragraph; the following text
// continues in a new paragraph with the same attributes.
type storyBuilder struct {
	reader     *Reader
	paragraphs []*Paragraph

	template *Paragraph // attributes of the enclosing ParagraphStyleRange
	current  *Paragraph
	run      *CharacterRun
}

func (b *storyBuilder) container(n *node) {
	for _, c := range n.Children {
		switch c.name() {
		case "ParagraphStyleRange":
			b.paragraphRange(c)
		case "CharacterStyleRange":
			b.template = &Paragraph{}
			b.current = nil
			b.characterRange(c)
			b.flushParagraph(false)
		case "XMLElement":
			b.container(c)
		}
	}
}

func (b *storyBuilder) paragraphRange(n *node) {
	b.template = paragraphAttrs(n)
	b.current = nil
	b.run = nil

	b.paragraphContent(n)
	b.flushParagraph(false)
}

func (b *storyBuilder) paragraphContent(n *node) {
	for _, c := range n.Children {
		switch c.name() {
		case "CharacterStyleRange":
			b.characterRange(c)
		case "Content":
			b.run = &CharacterRun{}
			b.text(c.Text)
			b.flushRun()
		case "Br":
			b.flushParagraph(true)
		case "XMLElement", "HyperlinkTextSource":
			b.paragraphContent(c)
		}
	}
}

func (b *storyBuilder) characterRange(n *node) {
	attrs := runAttrs(n)
	b.run = attrs.clone()

	b.runContent(n, attrs)
	b.flushRun()
}

func (b *storyBuilder) runContent(n *node, attrs *CharacterRun) {
	for _, c := range n.Children {
		switch c.name() {
		case "Content":
			b.text(c.Text)
		case "Br":
			b.flushRun()
			b.flushParagraph(true)
			b.run = attrs.clone()
		case "TextFrame":
			b.ensureRun(attrs)
			b.run.InlineFrames = append(b.run.InlineFrames, parseTextFrame(c, geometry.Identity(), 0, ""))
		case "Rectangle", "Polygon", "Oval":
			if img := parseImageFrame(c, geometry.Identity(), 0, ""); img != nil {
				b.ensureRun(attrs)
				b.run.InlineGraphics = append(b.run.InlineGraphics, img)
			}
		case "Table":
			b.ensureRun(attrs)
			b.run.InlineTables = append(b.run.InlineTables, b.table(c))
		case "XMLElement", "HyperlinkTextSource":
			b.runContent(c, attrs)
		}
	}
}

func (b *storyBuilder) ensureRun(attrs *CharacterRun) {
	if b.run == nil {
		b.run = attrs.clone()
	}
}

func (b *storyBuilder) text(s string) {
	if b.run == nil {
		b.run = &CharacterRun{}
	}
	s = strings.ReplaceAll(s, "\u2028", "\n")
	b.run.Content += s
}

func (b *storyBuilder) paragraph() *Paragraph {
	if b.current == nil {
		b.current = b.template.clone()
	}
	return b.current
}

func (b *storyBuilder) flushRun() {
	r := b.run
	b.run = nil
	if r == nil {
		return
	}
	if r.Content == "" && len(r.InlineFrames) == 0 && len(r.InlineGraphics) == 0 && len(r.InlineTables) == 0 {
		return
	}
	p := b.paragraph()
	p.Runs = append(p.Runs, r)
}

// flushParagraph closes the current paragraph. Explicit breaks keep empty
// paragraphs; the implicit close at the end of a range drops them.
func (b *storyBuilder) flushParagraph(explicit bool) {
	if b.run != nil {
		b.flushRun()
	}
	if b.current == nil && explicit {
		b.current = b.template.clone()
	}
	if b.current == nil {
		return
	}
	b.paragraphs = append(b.paragraphs, b.current)
	b.current = nil
}

func (b *storyBuilder) table(n *node) *Table {
	t := &Table{
		ID:          n.attr("Self"),
		ColumnCount: n.intAttr("ColumnCount", 0),
		RowCount:    n.intAttr("HeaderRowCount", 0) + n.intAttr("BodyRowCount", 0) + n.intAttr("FooterRowCount", 0),
	}
	for _, c := range n.Children {
		switch c.name() {
		case "Row":
			t.RowHeights = append(t.RowHeights, c.floatAttr("SingleRowHeight", 0))
		case "Column":
			t.ColumnWidths = append(t.ColumnWidths, c.floatAttr("SingleColumnWidth", 0))
		case "Cell":
			cell := &TableCell{
				RowSpan:    c.intAttr("RowSpan", 1),
				ColumnSpan: c.intAttr("ColumnSpan", 1),
				FillColor:  c.attr("FillColor"),
			}
			cell.Column, cell.Row = parseCellName(c.attr("Name"))
			sub := &storyBuilder{reader: b.reader}
			sub.container(c)
			cell.Paragraphs = sub.paragraphs
			t.Cells = append(t.Cells, cell)
		}
	}
	if t.RowCount == 0 {
		t.RowCount = len(t.RowHeights)
	}
	if t.ColumnCount == 0 {
		t.ColumnCount = len(t.ColumnWidths)
	}
	return t
}

// parseCellName splits an IDML cell name "col:row".
func parseCellName(name string) (int, int) {
	parts := strings.SplitN(name, ":", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	col, _ := strconv.Atoi(parts[0])
	row, _ := strconv.Atoi(parts[1])
	return col, row
}

func paragraphAttrs(n *node) *Paragraph {
	p := &Paragraph{
		StyleRef:        n.attr("AppliedParagraphStyle"),
		Justification:   n.attr("Justification"),
		FirstLineIndent: n.optFloat("FirstLineIndent"),
		LeftIndent:      n.optFloat("LeftIndent"),
		RightIndent:     n.optFloat("RightIndent"),
		SpaceBefore:     n.optFloat("SpaceBefore"),
		SpaceAfter:      n.optFloat("SpaceAfter"),
		Tracking:        n.optFloat("Tracking"),
	}
	if lead, ok := parseFloat(n.property("Leading")); ok {
		p.Leading = &lead
	}
	if n.attr("ParagraphShadingOn") == "true" {
		p.ShadingColor = n.attr("ParagraphShadingColor")
	}
	return p
}

func runAttrs(n *node) *CharacterRun {
	return &CharacterRun{
		CharStyleRef: n.attr("AppliedCharacterStyle"),
		FontFamily:   n.property("AppliedFont"),
		FontStyle:    n.attr("FontStyle"),
		PointSize:    n.optFloat("PointSize"),
		FillColor:    n.attr("FillColor"),
		Tracking:     n.optFloat("Tracking"),
		Position:     n.attr("Position"),
	}
}

func (p *Paragraph) clone() *Paragraph {
	c := *p
	c.Runs = nil
	return &c
}

func (r *CharacterRun) clone() *CharacterRun {
	return &CharacterRun{
		CharStyleRef: r.CharStyleRef,
		FontFamily:   r.FontFamily,
		FontStyle:    r.FontStyle,
		PointSize:    r.PointSize,
		FillColor:    r.FillColor,
		Tracking:     r.Tracking,
		Position:     r.Position,
	}
}
