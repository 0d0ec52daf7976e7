package normalize

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/tsawler/idmlhwpx/ast"
	"github.com/tsawler/idmlhwpx/geometry"
	"github.com/tsawler/idmlhwpx/idml"
	"github.com/tsawler/idmlhwpx/imaging"
	"github.com/tsawler/idmlhwpx/render"
)

// ============================================================================
// Fixtures
// ============================================================================

func fp(v float64) *float64 { return &v }

func letterPage(num int) *idml.Page {
	return &idml.Page{
		ID:          fmt.Sprintf("p%d", num),
		Number:      num,
		Bounds:      geometry.NewBounds(0, 0, 792, 612),
		Transform:   geometry.Identity(),
		Margins:     idml.Margins{Top: 36, Bottom: 36, Left: 36, Right: 36},
		ColumnCount: 1,
	}
}

func textFrame(id, story string, b geometry.Bounds, z int) *idml.TextFrame {
	return &idml.TextFrame{
		Item:       idml.Item{ID: id, Bounds: b, Transform: geometry.Identity(), ZOrder: z},
		StoryID:    story,
		FillTint:   idml.Unset,
		StrokeTint: idml.Unset,
	}
}

func imageFrame(id, link string, b geometry.Bounds, z int) *idml.ImageFrame {
	return &idml.ImageFrame{
		Item:    idml.Item{ID: id, Bounds: b, Transform: geometry.Identity(), ZOrder: z},
		LinkURI: link,
	}
}

func shape(id, group string, z int) *idml.VectorShape {
	return &idml.VectorShape{
		Item: idml.Item{
			ID: id, Bounds: geometry.NewBounds(100, 100, 150, 150),
			Transform: geometry.Identity(), ZOrder: z, ParentGroup: group,
		},
		FillColor: "Color/Black",
		FillTint:  idml.Unset,
	}
}

// textStory builds a story with one single-run paragraph per text.
func textStory(id string, texts ...string) *idml.Story {
	s := &idml.Story{ID: id}
	for _, t := range texts {
		s.Paragraphs = append(s.Paragraphs, &idml.Paragraph{Runs: []*idml.CharacterRun{{Content: t}}})
	}
	return s
}

func newDoc(stories []*idml.Story, spreads ...*idml.Spread) *idml.Document {
	doc := idml.NewDocument()
	doc.Spreads = spreads
	for _, s := range stories {
		doc.Stories[s.ID] = s
	}
	return doc
}

func normalize(t *testing.T, doc *idml.Document, cfg Config) (*ast.Document, []Warning) {
	t.Helper()
	n := New(doc, cfg)
	out, err := n.Normalize(context.Background())
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	return out, n.Warnings()
}

func onlySection(t *testing.T, out *ast.Document) *ast.Section {
	t.Helper()
	if len(out.Sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(out.Sections))
	}
	return out.Sections[0]
}

// describe renders paragraph items compactly: text as-is, breaks as "|",
// equations as [eq:source] and objects as <kind>.
func describe(p *ast.Paragraph) string {
	var sb strings.Builder
	for _, item := range p.Items {
		switch v := item.(type) {
		case *ast.TextRun:
			sb.WriteString(v.Text)
		case *ast.Break:
			sb.WriteByte('|')
		case *ast.Equation:
			sb.WriteString("[eq:" + v.Source + "]")
		case *ast.InlineObject:
			sb.WriteString("<" + v.Kind.String() + ">")
		}
	}
	return sb.String()
}

// ============================================================================
// Sections and text frames
// ============================================================================

func TestSinglePageFrame(t *testing.T) {
	spread := &idml.Spread{
		Pages:      []*idml.Page{letterPage(1)},
		TextFrames: []*idml.TextFrame{textFrame("f1", "u1", geometry.NewBounds(0, 0, 50, 100), 0)},
	}
	out, warnings := normalize(t, newDoc([]*idml.Story{textStory("u1", "Hello")}, spread), DefaultConfig())

	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	sec := onlySection(t, out)
	if sec.PageNumber != 1 {
		t.Errorf("PageNumber = %d, want 1", sec.PageNumber)
	}
	wantLayout := ast.PageLayout{
		Width: 61200, Height: 79200,
		MarginTop: 3600, MarginBottom: 3600, MarginLeft: 3600, MarginRight: 3600,
		ColumnCount: 1,
	}
	if sec.Layout != wantLayout {
		t.Errorf("Layout = %+v, want %+v", sec.Layout, wantLayout)
	}
	if len(sec.Blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(sec.Blocks))
	}
	blk, ok := sec.Blocks[0].(*ast.TextFrameBlock)
	if !ok {
		t.Fatalf("block is %T, want *ast.TextFrameBlock", sec.Blocks[0])
	}
	if want := (ast.Rect{X: 0, Y: 0, Width: 10000, Height: 5000}); blk.Frame != want {
		t.Errorf("Frame = %+v, want %+v", blk.Frame, want)
	}
	if blk.PlainText() != "Hello" {
		t.Errorf("PlainText() = %q, want %q", blk.PlainText(), "Hello")
	}
	if blk.ColumnCount != 1 {
		t.Errorf("ColumnCount = %d, want 1", blk.ColumnCount)
	}
}

func TestEmptyPage(t *testing.T) {
	spread := &idml.Spread{Pages: []*idml.Page{letterPage(1)}}
	out, _ := normalize(t, newDoc(nil, spread), DefaultConfig())

	if sec := onlySection(t, out); len(sec.Blocks) != 0 {
		t.Errorf("got %d blocks, want 0", len(sec.Blocks))
	}
}

func TestMergeFrames(t *testing.T) {
	stories := []*idml.Story{textStory("u1", "A"), textStory("u2", "B")}
	frames := func() []*idml.TextFrame {
		return []*idml.TextFrame{
			textFrame("f1", "u1", geometry.NewBounds(0, 0, 50, 100), 0),
			textFrame("f2", "u2", geometry.NewBounds(0, 100, 50, 200), 1),
		}
	}

	t.Run("merged", func(t *testing.T) {
		spread := &idml.Spread{Pages: []*idml.Page{letterPage(1)}, TextFrames: frames()}
		out, _ := normalize(t, newDoc(stories, spread), DefaultConfig())
		sec := onlySection(t, out)
		if len(sec.Blocks) != 1 {
			t.Fatalf("got %d blocks, want 1", len(sec.Blocks))
		}
		tbl, ok := sec.Blocks[0].(*ast.Table)
		if !ok {
			t.Fatalf("block is %T, want *ast.Table", sec.Blocks[0])
		}
		if !tbl.FromFrames || tbl.RowCount() != 1 || tbl.ColCount() != 2 {
			t.Errorf("table FromFrames=%v dims=%dx%d, want true 1x2", tbl.FromFrames, tbl.RowCount(), tbl.ColCount())
		}
		if got := tbl.PlainText(); got != "A\tB" {
			t.Errorf("PlainText() = %q, want %q", got, "A\tB")
		}
	})

	t.Run("disabled", func(t *testing.T) {
		spread := &idml.Spread{Pages: []*idml.Page{letterPage(1)}, TextFrames: frames()}
		cfg := DefaultConfig()
		cfg.MergeTextFrames = false
		out, _ := normalize(t, newDoc(stories, spread), cfg)
		sec := onlySection(t, out)
		if len(sec.Blocks) != 2 {
			t.Fatalf("got %d blocks, want 2", len(sec.Blocks))
		}
		for i, want := range []string{"f1", "f2"} {
			blk, ok := sec.Blocks[i].(*ast.TextFrameBlock)
			if !ok || blk.SourceID != want {
				t.Errorf("block %d = %#v, want text frame %s", i, sec.Blocks[i], want)
			}
		}
	})

	t.Run("grid tolerance", func(t *testing.T) {
		fs := frames()
		fs[1].Bounds = geometry.NewBounds(0, 101, 50, 200)
		for _, tt := range []struct {
			tolerance float64
			cols      int
		}{{0, 3}, {2, 2}} {
			spread := &idml.Spread{Pages: []*idml.Page{letterPage(1)}, TextFrames: fs}
			cfg := DefaultConfig()
			cfg.GridTolerance = tt.tolerance
			out, _ := normalize(t, newDoc(stories, spread), cfg)
			tbl := onlySection(t, out).Blocks[0].(*ast.Table)
			if tbl.ColCount() != tt.cols {
				t.Errorf("tolerance %v: %d columns, want %d", tt.tolerance, tbl.ColCount(), tt.cols)
			}
		}
	})

	t.Run("covered frame", func(t *testing.T) {
		fs := frames()
		fs[0].ZOrder = 2
		fs = append(fs, textFrame("f3", "u3", geometry.NewBounds(10, 10, 20, 20), 1))
		spread := &idml.Spread{Pages: []*idml.Page{letterPage(1)}, TextFrames: fs}
		out, warnings := normalize(t, newDoc(append(stories, textStory("u3", "C")), spread), DefaultConfig())

		tbl := onlySection(t, out).Blocks[0].(*ast.Table)
		if strings.Contains(tbl.PlainText(), "C") {
			t.Errorf("covered frame text leaked into table: %q", tbl.PlainText())
		}
		if len(warnings) != 1 || warnings[0].Phase != PhaseCoordinate || warnings[0].Element != "f3" {
			t.Errorf("warnings = %v, want one coordinate warning for f3", warnings)
		}
	})
}

func TestDuplicateFrames(t *testing.T) {
	b := geometry.NewBounds(0, 0, 50, 100)
	dup := textFrame("f2", "u2", b, 1)
	dup.Transform = geometry.Translate(1, 1)
	apart := textFrame("f3", "u3", b, 2)
	apart.Transform = geometry.Translate(3, 0)

	spread := &idml.Spread{
		Pages:      []*idml.Page{letterPage(1)},
		TextFrames: []*idml.TextFrame{textFrame("f1", "u1", b, 0), dup, apart},
	}
	stories := []*idml.Story{textStory("u1", "One"), textStory("u2", "Two"), textStory("u3", "Three")}
	cfg := DefaultConfig()
	cfg.MergeTextFrames = false
	out, _ := normalize(t, newDoc(stories, spread), cfg)

	sec := onlySection(t, out)
	var got []string
	for _, blk := range sec.Blocks {
		got = append(got, blk.(*ast.TextFrameBlock).SourceID)
	}
	if strings.Join(got, ",") != "f1,f3" {
		t.Errorf("blocks = %v, want [f1 f3]", got)
	}
}

func TestSkippedFrames(t *testing.T) {
	row := func(i int) geometry.Bounds {
		return geometry.NewBounds(float64(60*i), 0, float64(60*i+50), 100)
	}
	cont := textFrame("f2", "u1", row(1), 1)
	cont.PrevFrame = "f1"
	hidden := textFrame("f6", "u6", row(5), 5)
	hidden.LayerRef = "L2"

	spread := &idml.Spread{
		Pages: []*idml.Page{letterPage(1)},
		TextFrames: []*idml.TextFrame{
			textFrame("f1", "u1", row(0), 0),
			cont,
			textFrame("f3", "u1", row(2), 2),
			textFrame("f4", "missing", row(3), 3),
			textFrame("f5", "u5", row(4), 4),
			hidden,
		},
	}
	doc := newDoc([]*idml.Story{textStory("u1", "A"), textStory("u5", "  "), textStory("u6", "Hidden")}, spread)
	doc.HiddenLayers["L2"] = true

	cfg := DefaultConfig()
	cfg.MergeTextFrames = false
	out, warnings := normalize(t, doc, cfg)

	sec := onlySection(t, out)
	if len(sec.Blocks) != 1 || sec.Blocks[0].(*ast.TextFrameBlock).SourceID != "f1" {
		t.Errorf("blocks = %v, want only f1", sec.Blocks)
	}
	if len(warnings) != 1 || warnings[0].Phase != PhaseParsing || warnings[0].Element != "f4" {
		t.Errorf("warnings = %v, want one parsing warning for f4", warnings)
	}
}

func TestDeferredFrames(t *testing.T) {
	note := textFrame("f2", "u2", geometry.NewBounds(200, 0, 250, 100), 0)
	note.ObjectStyle = "ObjectStyle/교사용프레임"
	spread := &idml.Spread{
		Pages:      []*idml.Page{letterPage(1)},
		TextFrames: []*idml.TextFrame{textFrame("f1", "u1", geometry.NewBounds(0, 0, 50, 100), 4), note},
	}
	out, _ := normalize(t, newDoc([]*idml.Story{textStory("u1", "Body"), textStory("u2", "Note")}, spread), DefaultConfig())

	sec := onlySection(t, out)
	if len(sec.Blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(sec.Blocks))
	}
	last := sec.Blocks[1].(*ast.TextFrameBlock)
	if last.SourceID != "f2" || last.ZOrder != 5 {
		t.Errorf("last block = %s z=%d, want f2 z=5", last.SourceID, last.ZOrder)
	}
}

func TestPageRange(t *testing.T) {
	doc := func() *idml.Document {
		return newDoc(nil,
			&idml.Spread{Pages: []*idml.Page{letterPage(1)}},
			&idml.Spread{Pages: []*idml.Page{letterPage(2)}},
			&idml.Spread{Pages: []*idml.Page{letterPage(3)}},
		)
	}
	tests := []struct {
		name       string
		start, end int
		want       []int
	}{
		{"all", 0, 0, []int{1, 2, 3}},
		{"from 2", 2, 0, []int{2, 3}},
		{"to 1", 0, 1, []int{1}},
		{"middle", 2, 2, []int{2}},
		{"past end", 4, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.StartPage, cfg.EndPage = tt.start, tt.end
			out, _ := normalize(t, doc(), cfg)
			var got []int
			for _, s := range out.Sections {
				got = append(got, s.PageNumber)
			}
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Errorf("pages = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpreadMode(t *testing.T) {
	left := letterPage(1)
	left.Transform = geometry.Translate(-612, 0)
	right := letterPage(2)
	spread := &idml.Spread{
		Pages:      []*idml.Page{left, right},
		TextFrames: []*idml.TextFrame{textFrame("f1", "u1", geometry.NewBounds(10, -600, 60, -500), 0)},
	}
	cfg := DefaultConfig()
	cfg.SpreadMode = true
	out, _ := normalize(t, newDoc([]*idml.Story{textStory("u1", "Left")}, spread), cfg)

	if !out.SpreadMode {
		t.Error("SpreadMode not recorded on document")
	}
	sec := onlySection(t, out)
	if sec.PageNumber != 1 {
		t.Errorf("PageNumber = %d, want 1", sec.PageNumber)
	}
	if sec.Layout.Width != 122400 || sec.Layout.Height != 79200 || sec.Layout.MarginLeft != 0 {
		t.Errorf("Layout = %+v, want 122400x79200 without margins", sec.Layout)
	}
	blk := sec.Blocks[0].(*ast.TextFrameBlock)
	if want := (ast.Rect{X: 1200, Y: 1000, Width: 10000, Height: 5000}); blk.Frame != want {
		t.Errorf("Frame = %+v, want %+v", blk.Frame, want)
	}
}

func TestNormalizeErrors(t *testing.T) {
	if _, err := New(nil, DefaultConfig()).Normalize(context.Background()); !errors.Is(err, ErrNoDocument) {
		t.Errorf("nil document error = %v, want ErrNoDocument", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	doc := newDoc(nil, &idml.Spread{Pages: []*idml.Page{letterPage(1)}})
	if _, err := New(doc, DefaultConfig()).Normalize(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled context error = %v, want context.Canceled", err)
	}
}

// ============================================================================
// Paragraphs and runs
// ============================================================================

func TestTextItems(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		equations bool
		want      string
	}{
		{"plain", "Hello", true, "Hello"},
		{"breaks folded", "a\n\n\nb\n", true, "a|b"},
		{"equation", "x $a^2$ y", true, "x [eq:a^2] y"},
		{"equation only", "$x$", true, "[eq:x]"},
		{"equations off", "x $a^2$ y", false, "x $a^2$ y"},
		{"unpaired dollar", "costs $5", true, "costs $5"},
		{"decomposed hangul", "\u1112\u1161\u11ab", true, "\uD55C"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.IncludeEquations = tt.equations
			n := New(idml.NewDocument(), cfg)
			p, _ := n.paragraph(&idml.Paragraph{Runs: []*idml.CharacterRun{{Content: tt.content}}}, nil)
			if got := describe(p); got != tt.want {
				t.Errorf("items = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEmptyRunDropped(t *testing.T) {
	n := New(idml.NewDocument(), DefaultConfig())
	p, _ := n.paragraph(&idml.Paragraph{Runs: []*idml.CharacterRun{{Content: ""}, {Content: "\n"}}}, nil)
	if len(p.Items) != 0 {
		t.Errorf("got %d items, want 0", len(p.Items))
	}
}

func TestRunBoundaryBreaks(t *testing.T) {
	tests := []struct {
		name string
		runs []string
		want string
	}{
		{"break ends run", []string{"Title\n", "body"}, "Title|body"},
		{"break on both sides", []string{"Title\n", "\nbody"}, "Title|body"},
		{"trailing breaks", []string{"a\n", "b\n", "\n"}, "a|b"},
		{"break only run", []string{"a", "\n", "b"}, "a|b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			para := &idml.Paragraph{}
			for _, r := range tt.runs {
				para.Runs = append(para.Runs, &idml.CharacterRun{Content: r})
			}
			p, _ := New(idml.NewDocument(), DefaultConfig()).paragraph(para, nil)
			if got := describe(p); got != tt.want {
				t.Errorf("items = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLinePercent(t *testing.T) {
	tests := []struct {
		leading, size float64
		want          int
	}{
		{20, 10, 200},
		{12, 10, 120},
		{50, 10, 300},
		{8, 10, 100},
		{14, 0, 140},
	}
	for _, tt := range tests {
		if got := linePercent(tt.leading, tt.size); got != tt.want {
			t.Errorf("linePercent(%v, %v) = %d, want %d", tt.leading, tt.size, got, tt.want)
		}
	}
}

func TestDominantSize(t *testing.T) {
	style := &idml.StyleDef{PointSize: fp(20)}
	tests := []struct {
		name  string
		p     *idml.Paragraph
		style *idml.StyleDef
		want  float64
	}{
		{"largest run", &idml.Paragraph{Runs: []*idml.CharacterRun{{PointSize: fp(9)}, {PointSize: fp(14)}}}, style, 14},
		{"style", &idml.Paragraph{Runs: []*idml.CharacterRun{{}}}, style, 20},
		{"default", &idml.Paragraph{}, nil, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dominantSize(tt.p, tt.style); got != tt.want {
				t.Errorf("dominantSize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLetterSpacing(t *testing.T) {
	tests := []struct {
		tracking float64
		want     int
	}{
		{100, 10},
		{25, 3},
		{-25, -3},
		{1000, 50},
		{-1000, -50},
	}
	for _, tt := range tests {
		if got := letterSpacing(tt.tracking); got != tt.want {
			t.Errorf("letterSpacing(%v) = %d, want %d", tt.tracking, got, tt.want)
		}
	}
}

func TestParagraphFormatting(t *testing.T) {
	n := New(idml.NewDocument(), DefaultConfig())
	p, _ := n.paragraph(&idml.Paragraph{
		Justification: "CenterAlign",
		LeftIndent:    fp(12),
		SpaceAfter:    fp(6),
		Leading:       fp(20),
		Tracking:      fp(100),
		Runs: []*idml.CharacterRun{
			{Content: "a", PointSize: fp(10)},
			{Content: "b", Tracking: fp(200)},
		},
	}, nil)

	if p.Alignment != ast.AlignCenter || p.LeftMargin != 1200 || p.SpaceAfter != 600 {
		t.Errorf("paragraph = %+v", p)
	}
	if p.LineSpacing != 200 || p.LineSpacingType != ast.LineSpacingPercent {
		t.Errorf("line spacing = %d %v, want 200 PERCENT", p.LineSpacing, p.LineSpacingType)
	}
	a, b := p.Items[0].(*ast.TextRun), p.Items[1].(*ast.TextRun)
	if a.Size != 1000 {
		t.Errorf("run a size = %d, want 1000", a.Size)
	}
	if a.LetterSpacing == nil || *a.LetterSpacing != 10 {
		t.Errorf("run a letter spacing = %v, want 10", a.LetterSpacing)
	}
	if b.LetterSpacing == nil || *b.LetterSpacing != 20 {
		t.Errorf("run b letter spacing = %v, want 20", b.LetterSpacing)
	}
}

func TestCharacterStyles(t *testing.T) {
	doc := idml.NewDocument()
	doc.Colors["Color/Red"] = "rgb 255 0 0"
	doc.CharacterStyles["CharacterStyle/Strong"] = &idml.StyleDef{
		Ref:       "CharacterStyle/Strong",
		Name:      "Strong",
		FontStyle: "Bold",
		PointSize: fp(12),
		FillColor: "Color/Red",
	}
	para := &idml.Paragraph{Runs: []*idml.CharacterRun{
		{Content: "a", CharStyleRef: "CharacterStyle/Strong"},
		{Content: "b", CharStyleRef: "CharacterStyle/Missing"},
		{Content: "c", CharStyleRef: "CharacterStyle/Missing"},
		{Content: "d", CharStyleRef: "CharacterStyle/$ID/[No character style]"},
	}}

	t.Run("with styles", func(t *testing.T) {
		n := New(doc, DefaultConfig())
		p, _ := n.paragraph(para, nil)

		strong := p.Items[0].(*ast.TextRun)
		if strong.CharStyleRef != "CharacterStyle/Strong" || strong.FontStyle != "Bold" ||
			strong.Size != 1200 || strong.Color != "#FF0000" {
			t.Errorf("styled run = %+v", strong)
		}
		for _, item := range p.Items[1:] {
			if r := item.(*ast.TextRun); r.CharStyleRef != "" {
				t.Errorf("run %q kept style %q", r.Text, r.CharStyleRef)
			}
		}
		w := n.Warnings()
		if len(w) != 1 || w[0].Phase != PhaseStyleMapping || w[0].Element != "CharacterStyle/Missing" {
			t.Errorf("warnings = %v, want one style-mapping warning", w)
		}
	})

	t.Run("without styles", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.IncludeStyles = false
		p, _ := New(doc, cfg).paragraph(para, nil)
		strong := p.Items[0].(*ast.TextRun)
		if strong.CharStyleRef != "" || strong.FontStyle != "Bold" {
			t.Errorf("run = %+v, want no style ref with Bold baked in", strong)
		}
	})
}

func TestUnknownColourIsSilent(t *testing.T) {
	n := New(idml.NewDocument(), DefaultConfig())
	if got := n.paint("Color/Nowhere", idml.Unset); got != "" {
		t.Errorf("paint() = %q, want no colour", got)
	}
	p, _ := n.paragraph(&idml.Paragraph{Runs: []*idml.CharacterRun{{Content: "a", FillColor: "Color/Nowhere"}}}, nil)
	if r := p.Items[0].(*ast.TextRun); r.Color != "" {
		t.Errorf("run colour = %q, want unset", r.Color)
	}
	if w := n.Warnings(); len(w) != 0 {
		t.Errorf("warnings = %v, want none", w)
	}
}

func TestStylesAndFonts(t *testing.T) {
	doc := idml.NewDocument()
	doc.ParagraphStyles["ParagraphStyle/Body"] = &idml.StyleDef{
		Ref:       "ParagraphStyle/Body",
		Name:      "Body",
		PointSize: fp(10),
		Leading:   fp(14),
		Tracking:  fp(50),
		TabStops:  []idml.TabStop{{Alignment: "CenterAlign", Position: 72, Leader: "."}},
	}
	doc.ParagraphStyles["ParagraphStyle/Auto"] = &idml.StyleDef{
		Ref:         "ParagraphStyle/Auto",
		Name:        "Auto",
		AutoLeading: fp(120),
	}
	doc.Fonts["Minion Pro"] = &idml.FontDef{Family: "Minion Pro", StyleName: "Regular", FontType: "OpenTypeCFF"}
	doc.Fonts["Arial"] = &idml.FontDef{Family: "Arial", StyleName: "Regular", FontType: "TrueType"}

	out, _ := normalize(t, doc, DefaultConfig())

	if len(out.Fonts) != 2 || out.Fonts[0].Family != "Arial" || out.Fonts[1].Type != "OpenTypeCFF" {
		t.Errorf("Fonts = %+v", out.Fonts)
	}

	byID := make(map[string]*ast.StyleDef)
	for _, s := range out.ParagraphStyles {
		byID[s.ID] = s
	}
	body := byID["ParagraphStyle/Body"]
	if body == nil {
		t.Fatal("Body style missing")
	}
	if body.FontSize != 1000 || body.LineSpacing != 1400 || body.LineSpacingType != ast.LineSpacingFixed || body.LetterSpacing != 5 {
		t.Errorf("Body = %+v", body)
	}
	if len(body.TabStops) != 1 || body.TabStops[0] != (ast.TabStop{Position: 7200, Type: "CenterAlign", Leader: "."}) {
		t.Errorf("Body tabs = %+v", body.TabStops)
	}
	auto := byID["ParagraphStyle/Auto"]
	if auto == nil || auto.LineSpacing != 120 || auto.LineSpacingType != ast.LineSpacingPercent {
		t.Errorf("Auto = %+v", auto)
	}

	cfg := DefaultConfig()
	cfg.IncludeStyles = false
	if out, _ := normalize(t, doc, cfg); out.ParagraphStyles != nil {
		t.Errorf("styles emitted with IncludeStyles off: %d", len(out.ParagraphStyles))
	}
}

func TestInlineObjects(t *testing.T) {
	inner := textFrame("x", "u2", geometry.NewBounds(0, 0, 20, 50), 0)
	loop := textFrame("y", "u1", geometry.NewBounds(0, 0, 20, 50), 0)
	outer := &idml.Story{ID: "u1", Paragraphs: []*idml.Paragraph{{Runs: []*idml.CharacterRun{
		{Content: "See", InlineFrames: []*idml.TextFrame{inner}},
	}}}}
	nested := &idml.Story{ID: "u2", Paragraphs: []*idml.Paragraph{{Runs: []*idml.CharacterRun{
		{Content: "Inner", InlineFrames: []*idml.TextFrame{loop}},
	}}}}
	doc := newDoc([]*idml.Story{outer, nested})

	n := New(doc, DefaultConfig())
	p, _ := n.paragraph(outer.Paragraphs[0], map[string]bool{"u1": true})

	if got := describe(p); got != "See<INLINE_TEXT_FRAME>" {
		t.Fatalf("items = %q", got)
	}
	obj := p.Items[1].(*ast.InlineObject)
	if obj.Width != 5000 || obj.Height != 2000 {
		t.Errorf("size = %dx%d, want 5000x2000", obj.Width, obj.Height)
	}
	if len(obj.Paragraphs) != 1 || describe(obj.Paragraphs[0]) != "Inner" {
		t.Errorf("nested paragraphs = %v", obj.Paragraphs)
	}
	w := n.Warnings()
	if len(w) != 1 || w[0].Element != "y" {
		t.Errorf("warnings = %v, want one self-anchoring warning for y", w)
	}
}

func TestAnchoredInlineFrames(t *testing.T) {
	anchored := textFrame("a1", "u2", geometry.NewBounds(0, 0, 20, 50), 0)
	anchored.AnchoredPosition = "Anchored"
	note := textFrame("n1", "u3", geometry.NewBounds(0, 0, 20, 50), 0)
	note.ObjectStyle = "ObjectStyle/교사용프레임"
	host := &idml.Story{ID: "u1", Paragraphs: []*idml.Paragraph{
		{Runs: []*idml.CharacterRun{{Content: "body", InlineFrames: []*idml.TextFrame{anchored, note}}}},
		{Runs: []*idml.CharacterRun{{Content: "more"}}},
	}}
	doc := newDoc([]*idml.Story{host, textStory("u2", "Side"), textStory("u3", "Note")})

	n := New(doc, DefaultConfig())
	ps := n.paragraphs(host.Paragraphs, map[string]bool{"u1": true})

	var got []string
	for _, p := range ps {
		got = append(got, describe(p))
	}
	if want := "body,more,Side,Note"; strings.Join(got, ",") != want {
		t.Errorf("paragraphs = %q, want %q", strings.Join(got, ","), want)
	}
	if w := n.Warnings(); len(w) != 0 {
		t.Errorf("warnings = %v", w)
	}
}

func TestInlineTable(t *testing.T) {
	cell := func(row, col, cs int, text string) *idml.TableCell {
		return &idml.TableCell{
			Row: row, Column: col, RowSpan: 1, ColumnSpan: cs,
			Paragraphs: []*idml.Paragraph{{Runs: []*idml.CharacterRun{{Content: text}}}},
		}
	}
	src := &idml.Table{
		ID: "t1", RowCount: 2, ColumnCount: 2,
		RowHeights:   []float64{20, 20},
		ColumnWidths: []float64{50, 60},
		Cells:        []*idml.TableCell{cell(0, 0, 2, "Head"), cell(1, 0, 1, "a"), cell(1, 1, 1, "b"), cell(5, 0, 1, "lost")},
	}
	n := New(idml.NewDocument(), DefaultConfig())
	tbl := n.table(src, nil)

	if tbl.Frame.Width != 11000 || tbl.Frame.Height != 4000 {
		t.Errorf("frame = %+v, want 11000x4000", tbl.Frame)
	}
	head := tbl.Rows[0].Cells[0]
	if head.Width != 11000 || head.Height != 2000 || head.ColSpan != 2 {
		t.Errorf("head cell = %+v", head)
	}
	if !head.Top.Visible() {
		t.Error("story table cells should have visible borders")
	}
	if got := tbl.PlainText(); got != "Head\na\tb" {
		t.Errorf("PlainText() = %q", got)
	}
	if w := n.Warnings(); len(w) != 1 || w[0].Phase != PhaseCoordinate {
		t.Errorf("warnings = %v, want one coordinate warning", w)
	}
}

// ============================================================================
// Figures
// ============================================================================

type fakeImages struct {
	links []string
}

func (f *fakeImages) Load(link string, w, h float64) (imaging.Image, error) {
	f.links = append(f.links, link)
	if strings.Contains(link, "missing") {
		return imaging.Image{Data: []byte{0}, Format: "png", PixelWidth: 1, PixelHeight: 1, Placeholder: true},
			errors.New("missing.png: linked image not found")
	}
	return imaging.Image{Data: []byte{1, 2}, Format: "png", PixelWidth: 4, PixelHeight: 4}, nil
}

func TestImageFigures(t *testing.T) {
	spread := func() *idml.Spread {
		return &idml.Spread{
			Pages: []*idml.Page{letterPage(1)},
			ImageFrames: []*idml.ImageFrame{
				imageFrame("bg", "file:///x/bg.jpg", geometry.NewBounds(0, 0, 792, 612), 0),
				imageFrame("art", "file:///x/logo.ai", geometry.NewBounds(100, 100, 200, 200), 1),
				imageFrame("photo", "photo.png", geometry.NewBounds(300, 100, 400, 200), 2),
				imageFrame("gone", "missing.png", geometry.NewBounds(500, 100, 600, 200), 3),
			},
		}
	}

	src := &fakeImages{}
	cfg := DefaultConfig()
	cfg.Images = src
	out, warnings := normalize(t, newDoc(nil, spread()), cfg)

	sec := onlySection(t, out)
	want := []struct {
		id    string
		layer ast.Category
	}{
		{"bg", ast.CategoryBackground},
		{"art", ast.CategoryDesignImage},
		{"photo", ast.CategoryRasterImage},
		{"gone", ast.CategoryRasterImage},
	}
	if len(sec.Blocks) != len(want) {
		t.Fatalf("got %d blocks, want %d", len(sec.Blocks), len(want))
	}
	for i, w := range want {
		fig := sec.Blocks[i].(*ast.Figure)
		if fig.SourceID != w.id || fig.Layer != w.layer {
			t.Errorf("block %d = %s/%v, want %s/%v", i, fig.SourceID, fig.Layer, w.id, w.layer)
		}
	}
	if gone := sec.Blocks[3].(*ast.Figure); !gone.Placeholder {
		t.Error("missing image should be a placeholder")
	}
	if len(warnings) != 1 || warnings[0].Phase != PhaseImage || warnings[0].Element != "gone" {
		t.Errorf("warnings = %v, want one image warning for gone", warnings)
	}
	if len(src.links) != 4 {
		t.Errorf("loaded %d links, want 4", len(src.links))
	}

	cfg.IncludeImages = false
	if out, _ := normalize(t, newDoc(nil, spread()), cfg); len(out.Sections[0].Blocks) != 0 {
		t.Error("images emitted with IncludeImages off")
	}
}

func TestRotatedImageFigure(t *testing.T) {
	f := imageFrame("turned", "photo.png", geometry.NewBounds(0, 0, 100, 200), 0)
	f.Transform = geometry.Combine(geometry.Translate(300, 300), geometry.Rotate(math.Pi/2))
	spread := &idml.Spread{Pages: []*idml.Page{letterPage(1)}, ImageFrames: []*idml.ImageFrame{f}}

	cfg := DefaultConfig()
	cfg.Images = &fakeImages{}
	out, _ := normalize(t, newDoc(nil, spread), cfg)

	fig := onlySection(t, out).Blocks[0].(*ast.Figure)
	if math.Round(fig.Rotation) != 90 {
		t.Errorf("Rotation = %v, want 90", fig.Rotation)
	}
	if want := (ast.Rect{X: 15000, Y: 35000, Width: 20000, Height: 10000}); fig.Frame != want {
		t.Errorf("Frame = %+v, want %+v", fig.Frame, want)
	}
}

type fakeRenderer struct {
	calls       [][]string
	backgrounds int
}

func (f *fakeRenderer) RenderShapes(shapes []*idml.VectorShape, vp render.Viewport) (*render.Result, error) {
	var ids []string
	for _, s := range shapes {
		ids = append(ids, s.ID)
	}
	f.calls = append(f.calls, ids)
	if shapes[0].ID == "blank" {
		return nil, render.ErrNothingToDraw
	}
	return &render.Result{
		PNG:        []byte{1},
		Area:       geometry.Rect{X: 10, Y: 20, Width: 30, Height: 40},
		PixelWidth: 30, PixelHeight: 40,
	}, nil
}

func (f *fakeRenderer) RenderBackground(shapes []*idml.VectorShape, vp render.Viewport) (*render.Result, error) {
	f.backgrounds++
	return &render.Result{
		PNG:        []byte{9},
		Area:       geometry.Rect{Width: vp.Bounds.Width(), Height: vp.Bounds.Height()},
		PixelWidth: 612, PixelHeight: 792,
	}, nil
}

func TestShapeFigures(t *testing.T) {
	spread := func() *idml.Spread {
		return &idml.Spread{
			Pages: []*idml.Page{letterPage(1)},
			Shapes: []*idml.VectorShape{
				shape("s1", "", 1),
				shape("g-a", "g1", 5),
				shape("g-b", "g1", 3),
				shape("blank", "", 7),
			},
		}
	}

	t.Run("figures", func(t *testing.T) {
		r := &fakeRenderer{}
		cfg := DefaultConfig()
		cfg.Shapes = r
		out, warnings := normalize(t, newDoc(nil, spread()), cfg)

		sec := onlySection(t, out)
		if len(sec.Blocks) != 2 {
			t.Fatalf("got %d blocks, want 2", len(sec.Blocks))
		}
		s1 := sec.Blocks[0].(*ast.Figure)
		if s1.SourceID != "s1" || s1.Kind != ast.FigureRenderedShape || s1.Layer != ast.CategoryVector {
			t.Errorf("first figure = %s %v %v", s1.SourceID, s1.Kind, s1.Layer)
		}
		if want := (ast.Rect{X: 1000, Y: 2000, Width: 3000, Height: 4000}); s1.Frame != want {
			t.Errorf("Frame = %+v, want %+v", s1.Frame, want)
		}
		g1 := sec.Blocks[1].(*ast.Figure)
		if g1.SourceID != "g1" || g1.Kind != ast.FigureRenderedGroup || g1.ZOrder != 3 {
			t.Errorf("group figure = %s %v z=%d", g1.SourceID, g1.Kind, g1.ZOrder)
		}
		if got := fmt.Sprint(r.calls); got != "[[s1] [blank] [g-a g-b]]" {
			t.Errorf("render calls = %s", got)
		}
		if len(warnings) != 0 {
			t.Errorf("unexpected warnings: %v", warnings)
		}
	})

	t.Run("background", func(t *testing.T) {
		r := &fakeRenderer{}
		cfg := DefaultConfig()
		cfg.Shapes = r
		cfg.RenderBackground = true
		out, _ := normalize(t, newDoc(nil, spread()), cfg)

		if len(out.Sections[0].Blocks) != 0 {
			t.Errorf("got %d blocks, want 0", len(out.Sections[0].Blocks))
		}
		if len(out.Backgrounds) != 1 || r.backgrounds != 1 {
			t.Fatalf("backgrounds = %d (calls %d), want 1", len(out.Backgrounds), r.backgrounds)
		}
		bg := out.Backgrounds[0]
		if bg.PageNumber != 1 || bg.Width != 61200 || bg.Height != 79200 {
			t.Errorf("background = %+v", bg)
		}
	})
}
