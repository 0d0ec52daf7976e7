package idml

import (
	"archive/zip"
	"bytes"
	"errors"
	"math"
	"testing"
)

// buildPackage writes an in-memory IDML package from name -> content pairs.
func buildPackage(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
	return buf.Bytes()
}

const testDesignMap = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Document xmlns:idPkg="http://ns.adobe.com/AdobeInDesign/idml/1.0/packaging" Self="d">
	<Layer Self="ub1" Name="Layer 1" Visible="true"/>
	<Layer Self="ub2" Name="Hidden" Visible="false"/>
	<idPkg:Graphic src="Resources/Graphic.xml"/>
	<idPkg:Fonts src="Resources/Fonts.xml"/>
	<idPkg:Styles src="Resources/Styles.xml"/>
	<idPkg:Spread src="Spreads/Spread_u1.xml"/>
	<idPkg:Story src="Stories/Story_u10.xml"/>
</Document>`

const testGraphic = `<?xml version="1.0" encoding="UTF-8"?>
<idPkg:Graphic xmlns:idPkg="http://ns.adobe.com/AdobeInDesign/idml/1.0/packaging">
	<Color Self="Color/Black" Model="Process" Space="CMYK" ColorValue="0 0 0 100" Name="Black"/>
	<Color Self="Color/Red" Model="Process" Space="RGB" ColorValue="255 0 0" Name="Red"/>
</idPkg:Graphic>`

const testFonts = `<?xml version="1.0" encoding="UTF-8"?>
<idPkg:Fonts xmlns:idPkg="http://ns.adobe.com/AdobeInDesign/idml/1.0/packaging">
	<FontFamily Self="di1" Name="Minion Pro">
		<Font Self="di1f" FontFamily="Minion Pro" Name="Minion Pro Regular" PostScriptName="MinionPro-Regular" FontStyleName="Regular" FontType="OpenTypeCFF"/>
	</FontFamily>
</idPkg:Fonts>`

const testStyles = `<?xml version="1.0" encoding="UTF-8"?>
<idPkg:Styles xmlns:idPkg="http://ns.adobe.com/AdobeInDesign/idml/1.0/packaging">
	<RootCharacterStyleGroup Self="rcs">
		<CharacterStyle Self="CharacterStyle/Emphasis" Name="Emphasis" FontStyle="Bold" FillColor="Color/Red"/>
	</RootCharacterStyleGroup>
	<RootParagraphStyleGroup Self="rps">
		<ParagraphStyle Self="ParagraphStyle/Base" Name="Base" PointSize="10" Justification="LeftAlign" Leading="Auto" AutoLeading="120">
			<Properties><AppliedFont type="string">Minion Pro</AppliedFont></Properties>
		</ParagraphStyle>
		<ParagraphStyleGroup Self="grp" Name="Body">
			<ParagraphStyle Self="ParagraphStyle/Body%3aLead" Name="Body:Lead" PointSize="12" SpaceAfter="6">
				<Properties>
					<BasedOn type="object">ParagraphStyle/Base</BasedOn>
					<Leading type="unit">14</Leading>
					<TabList type="list">
						<ListItem type="record">
							<Alignment type="enumeration">RightAlign</Alignment>
							<Position type="unit">72</Position>
							<Leader type="string">.</Leader>
						</ListItem>
					</TabList>
				</Properties>
			</ParagraphStyle>
		</ParagraphStyleGroup>
	</RootParagraphStyleGroup>
</idPkg:Styles>`

const testSpread = `<?xml version="1.0" encoding="UTF-8"?>
<idPkg:Spread xmlns:idPkg="http://ns.adobe.com/AdobeInDesign/idml/1.0/packaging">
	<Spread Self="u1" ItemTransform="1 0 0 1 0 0">
		<Page Self="u5" Name="1" GeometricBounds="0 0 792 612" ItemTransform="1 0 0 1 0 -396" AppliedMaster="uA">
			<MarginPreference ColumnCount="2" ColumnGutter="18" Top="36" Bottom="48" Left="40" Right="30"/>
		</Page>
		<TextFrame Self="u20" ParentStory="u10" PreviousTextFrame="n" NextTextFrame="n" ItemTransform="1 0 0 1 0 -396" ItemLayer="ub1" FillColor="Swatch/None" StrokeColor="Color/Black" StrokeWeight="1" TopLeftCornerOption="RoundedCorner" TopLeftCornerRadius="6">
			<Properties>
				<PathGeometry>
					<GeometryPathType PathOpen="false">
						<PathPointArray>
							<PathPointType Anchor="36 36" LeftDirection="36 36" RightDirection="36 36"/>
							<PathPointType Anchor="36 136" LeftDirection="36 136" RightDirection="36 136"/>
							<PathPointType Anchor="236 136" LeftDirection="236 136" RightDirection="236 136"/>
							<PathPointType Anchor="236 36" LeftDirection="236 36" RightDirection="236 36"/>
						</PathPointArray>
					</GeometryPathType>
				</PathGeometry>
			</Properties>
			<TextFramePreference TextColumnCount="1" TextColumnGutter="12" VerticalJustification="CenterAlign">
				<Properties>
					<InsetSpacing type="list">
						<ListItem type="unit">4</ListItem>
						<ListItem type="unit">5</ListItem>
						<ListItem type="unit">6</ListItem>
						<ListItem type="unit">7</ListItem>
					</InsetSpacing>
				</Properties>
			</TextFramePreference>
		</TextFrame>
		<Group Self="g1" ItemTransform="1 0 0 1 100 0">
			<Oval Self="o1" ItemTransform="1 0 0 1 0 -396" FillColor="Color/Red" StrokeWeight="0" GeometricBounds="300 0 350 50"/>
			<Rectangle Self="r1" ItemTransform="1 0 0 1 0 -396" GeometricBounds="400 0 500 100">
				<Image Self="i1" ItemTransform="1 0 0 1 0 0">
					<Properties><GraphicBounds Left="0" Top="0" Right="100" Bottom="100"/></Properties>
					<Link Self="l1" LinkResourceURI="file:/Users/me/Links/photo.jpg" LinkResourceFormat="$ID/JPEG"/>
				</Image>
			</Rectangle>
		</Group>
	</Spread>
</idPkg:Spread>`

const testStory = `<?xml version="1.0" encoding="UTF-8"?>
<idPkg:Story xmlns:idPkg="http://ns.adobe.com/AdobeInDesign/idml/1.0/packaging">
	<Story Self="u10">
		<ParagraphStyleRange AppliedParagraphStyle="ParagraphStyle/Body%3aLead" Justification="CenterAlign">
			<CharacterStyleRange AppliedCharacterStyle="CharacterStyle/$ID/[No character style]" PointSize="11">
				<Content>First paragraph</Content>
				<Br/>
				<Content>Second line one` + "\u2028" + `line two</Content>
			</CharacterStyleRange>
			<CharacterStyleRange AppliedCharacterStyle="CharacterStyle/Emphasis" Position="Superscript">
				<Content>2</Content>
			</CharacterStyleRange>
		</ParagraphStyleRange>
	</Story>
</idPkg:Story>`

func testFiles() map[string]string {
	return map[string]string{
		"mimetype":                idmlMimeType,
		"designmap.xml":           testDesignMap,
		"Resources/Graphic.xml":   testGraphic,
		"Resources/Fonts.xml":     testFonts,
		"Resources/Styles.xml":    testStyles,
		"Spreads/Spread_u1.xml":   testSpread,
		"Stories/Story_u10.xml":   testStory,
		"Links/embedded_logo.png": "png",
	}
}

func openTest(t *testing.T) *Reader {
	t.Helper()
	r, err := ReadBytes(buildPackage(t, testFiles()))
	if err != nil {
		t.Fatalf("ReadBytes() error = %v", err)
	}
	return r
}

// ============================================================================
// Package Structure Tests
// ============================================================================

func TestReadBytesRejectsMissingDesignMap(t *testing.T) {
	files := testFiles()
	delete(files, "designmap.xml")
	_, err := ReadBytes(buildPackage(t, files))
	if !errors.Is(err, ErrInvalidPackage) {
		t.Errorf("ReadBytes() error = %v, want ErrInvalidPackage", err)
	}
}

func TestReadBytesRejectsWrongMimetype(t *testing.T) {
	files := testFiles()
	files["mimetype"] = "application/zip"
	_, err := ReadBytes(buildPackage(t, files))
	if !errors.Is(err, ErrInvalidPackage) {
		t.Errorf("ReadBytes() error = %v, want ErrInvalidPackage", err)
	}
}

func TestReadBytesNotZip(t *testing.T) {
	if _, err := ReadBytes([]byte("not a zip")); err == nil {
		t.Error("ReadBytes() expected error for non-ZIP input")
	}
}

func TestMalformedStoryIsWarning(t *testing.T) {
	files := testFiles()
	files["Stories/Story_u10.xml"] = "<Story"
	r, err := ReadBytes(buildPackage(t, files))
	if err != nil {
		t.Fatalf("ReadBytes() error = %v", err)
	}
	if len(r.Warnings()) != 1 {
		t.Errorf("Warnings() = %v, want 1 entry", r.Warnings())
	}
	if _, ok := r.Document().Story("u10"); ok {
		t.Error("malformed story should not be present")
	}
}

func TestLinkedResources(t *testing.T) {
	r := openTest(t)
	got := r.LinkedResources()
	if len(got) != 1 || got[0] != "Links/embedded_logo.png" {
		t.Errorf("LinkedResources() = %v", got)
	}
}

// ============================================================================
// Resource Tests
// ============================================================================

func TestParseResources(t *testing.T) {
	doc := openTest(t).Document()

	if doc.Colors["Color/Black"] != "cmyk 0 0 0 100" {
		t.Errorf("Colors[Black] = %q", doc.Colors["Color/Black"])
	}
	if doc.Colors["Color/Red"] != "rgb 255 0 0" {
		t.Errorf("Colors[Red] = %q", doc.Colors["Color/Red"])
	}
	if f, ok := doc.Fonts["Minion Pro"]; !ok || f.FontType != "OpenTypeCFF" {
		t.Errorf("Fonts[Minion Pro] = %+v", f)
	}
	if !doc.IsLayerHidden("ub2") || doc.IsLayerHidden("ub1") {
		t.Error("layer visibility not parsed")
	}

	lead, ok := doc.ParagraphStyle("ParagraphStyle/Body%3aLead")
	if !ok {
		t.Fatal("Body:Lead style not found")
	}
	if lead.BasedOn != "ParagraphStyle/Base" {
		t.Errorf("BasedOn = %q", lead.BasedOn)
	}
	if lead.Leading == nil || *lead.Leading != 14 {
		t.Errorf("Leading = %v, want 14", lead.Leading)
	}
	if len(lead.TabStops) != 1 || lead.TabStops[0].Alignment != "RightAlign" || lead.TabStops[0].Position != 72 || lead.TabStops[0].Leader != "." {
		t.Errorf("TabStops = %+v", lead.TabStops)
	}

	base, _ := doc.ParagraphStyle("Base")
	if base == nil || base.AutoLeading == nil || *base.AutoLeading != 120 {
		t.Errorf("Base auto leading not parsed: %+v", base)
	}

	if _, ok := doc.CharacterStyle("Emphasis"); !ok {
		t.Error("CharacterStyle(Emphasis) not found by bare name")
	}
}

// ============================================================================
// Spread Tests
// ============================================================================

func TestParseSpread(t *testing.T) {
	doc := openTest(t).Document()

	if len(doc.Spreads) != 1 {
		t.Fatalf("Spreads = %d, want 1", len(doc.Spreads))
	}
	s := doc.Spreads[0]

	if len(s.Pages) != 1 {
		t.Fatalf("Pages = %d, want 1", len(s.Pages))
	}
	p := s.Pages[0]
	if p.Number != 1 || p.Width() != 612 || p.Height() != 792 {
		t.Errorf("page = %+v", p)
	}
	if p.ColumnCount != 2 || p.ColumnGutter != 18 || p.Margins.Bottom != 48 {
		t.Errorf("page margins/columns = %+v", p)
	}

	if len(s.TextFrames) != 1 {
		t.Fatalf("TextFrames = %d, want 1", len(s.TextFrames))
	}
	tf := s.TextFrames[0]
	if tf.StoryID != "u10" || !tf.IsChainHead() {
		t.Errorf("text frame story/chain = %q/%v", tf.StoryID, tf.IsChainHead())
	}
	if tf.Bounds.Width() != 200 || tf.Bounds.Height() != 100 {
		t.Errorf("text frame bounds = %+v", tf.Bounds)
	}
	if tf.Inset != [4]float64{4, 5, 6, 7} {
		t.Errorf("Inset = %v", tf.Inset)
	}
	if tf.VerticalJustification != "CenterAlign" || tf.CornerRadius != 6 {
		t.Errorf("frame prefs = %q / %v", tf.VerticalJustification, tf.CornerRadius)
	}
	if tf.FillTint != Unset {
		t.Errorf("FillTint = %v, want Unset", tf.FillTint)
	}

	if len(s.Shapes) != 1 || s.Shapes[0].Kind != ShapeOval {
		t.Fatalf("Shapes = %+v", s.Shapes)
	}
	oval := s.Shapes[0]
	if oval.ParentGroup != "g1" {
		t.Errorf("oval ParentGroup = %q", oval.ParentGroup)
	}
	// Group translation (100, 0) is folded into the child transform.
	if tx, ty := oval.Transform.Translation(); tx != 100 || ty != -396 {
		t.Errorf("oval translation = (%v, %v), want (100, -396)", tx, ty)
	}

	if len(s.ImageFrames) != 1 {
		t.Fatalf("ImageFrames = %d, want 1", len(s.ImageFrames))
	}
	img := s.ImageFrames[0]
	if img.ImageFormat != "JPEG" || img.LinkURI != "file:/Users/me/Links/photo.jpg" {
		t.Errorf("image link = %q (%s)", img.LinkURI, img.ImageFormat)
	}
	if img.GraphicBounds.Width() != 100 {
		t.Errorf("GraphicBounds = %+v", img.GraphicBounds)
	}

	if len(s.Groups) != 1 || len(s.Groups[0].ShapeIDs) != 1 || len(s.Groups[0].FrameIDs) != 1 {
		t.Errorf("Groups = %+v", s.Groups)
	}

	// Document order is z-order.
	if !(tf.ZOrder < s.Groups[0].ZOrder && s.Groups[0].ZOrder < oval.ZOrder && oval.ZOrder < img.ZOrder) {
		t.Errorf("z-order not in document order: tf=%d group=%d oval=%d img=%d",
			tf.ZOrder, s.Groups[0].ZOrder, oval.ZOrder, img.ZOrder)
	}

	if got := s.TextFramesOnPage(p); len(got) != 1 {
		t.Errorf("TextFramesOnPage() = %d, want 1", len(got))
	}
}

// ============================================================================
// Story Tests
// ============================================================================

func TestParseStory(t *testing.T) {
	doc := openTest(t).Document()
	story, ok := doc.Story("u10")
	if !ok {
		t.Fatal("story u10 missing")
	}
	if len(story.Paragraphs) != 2 {
		t.Fatalf("Paragraphs = %d, want 2", len(story.Paragraphs))
	}

	first := story.Paragraphs[0]
	if first.StyleRef != "ParagraphStyle/Body%3aLead" || first.Justification != "CenterAlign" {
		t.Errorf("first paragraph attrs = %q %q", first.StyleRef, first.Justification)
	}
	if len(first.Runs) != 1 || first.Runs[0].Content != "First paragraph" {
		t.Errorf("first runs = %+v", first.Runs)
	}

	second := story.Paragraphs[1]
	if second.Justification != "CenterAlign" {
		t.Error("second paragraph should inherit range attributes")
	}
	if len(second.Runs) != 2 {
		t.Fatalf("second runs = %d, want 2", len(second.Runs))
	}
	if second.Runs[0].Content != "Second line one\nline two" {
		t.Errorf("forced line break not mapped: %q", second.Runs[0].Content)
	}
	if second.Runs[0].PointSize == nil || math.Abs(*second.Runs[0].PointSize-11) > 0 {
		t.Errorf("PointSize = %v", second.Runs[0].PointSize)
	}
	sup := second.Runs[1]
	if !sup.IsSuperscript() || sup.CharStyleRef != "CharacterStyle/Emphasis" {
		t.Errorf("superscript run = %+v", sup)
	}

	if story.IsEmpty() {
		t.Error("IsEmpty() = true for story with text")
	}
}

func TestStoryIsEmpty(t *testing.T) {
	s := &Story{Paragraphs: []*Paragraph{{Runs: []*CharacterRun{{Content: "  \n\t"}}}}}
	if !s.IsEmpty() {
		t.Error("whitespace-only story should be empty")
	}
	s.Paragraphs[0].Runs[0].InlineGraphics = []*ImageFrame{{}}
	if s.IsEmpty() {
		t.Error("story with inline graphic should not be empty")
	}
}

func TestChainHead(t *testing.T) {
	tests := []struct {
		prev string
		want bool
	}{
		{"", true},
		{"n", true},
		{"null", true},
		{"u99", false},
	}
	for _, tt := range tests {
		f := &TextFrame{PrevFrame: tt.prev}
		if got := f.IsChainHead(); got != tt.want {
			t.Errorf("IsChainHead(prev=%q) = %v, want %v", tt.prev, got, tt.want)
		}
	}
}
