package idmlhwpx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"testing"
)

// ============================================================================
// Fixtures
// ============================================================================

const fixtureMimeType = "application/vnd.adobe.indesign-idml-package"

const fixtureDesignMap = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Document xmlns:idPkg="http://ns.adobe.com/AdobeInDesign/idml/1.0/packaging" Self="d">
	<Layer Self="ub1" Name="Layer 1" Visible="true"/>
	<idPkg:Graphic src="Resources/Graphic.xml"/>
	<idPkg:Spread src="Spreads/Spread_u1.xml"/>
	<idPkg:Spread src="Spreads/Spread_u2.xml"/>
	<idPkg:Story src="Stories/Story_u10.xml"/>
	<idPkg:Story src="Stories/Story_u11.xml"/>
</Document>`

const fixtureGraphic = `<?xml version="1.0" encoding="UTF-8"?>
<idPkg:Graphic xmlns:idPkg="http://ns.adobe.com/AdobeInDesign/idml/1.0/packaging">
	<Color Self="Color/Black" Model="Process" Space="CMYK" ColorValue="0 0 0 100" Name="Black"/>
</idPkg:Graphic>`

// fixtureSpread returns a spread holding one letter page and one text
// frame at 36,36 sized 200×100 points.
func fixtureSpread(spread, frame, story string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<idPkg:Spread xmlns:idPkg="http://ns.adobe.com/AdobeInDesign/idml/1.0/packaging">
	<Spread Self="%[1]s" ItemTransform="1 0 0 1 0 0">
		<Page Self="%[1]sp" Name="1" GeometricBounds="0 0 792 612" ItemTransform="1 0 0 1 0 -396">
			<MarginPreference ColumnCount="1" ColumnGutter="12" Top="36" Bottom="36" Left="36" Right="36"/>
		</Page>
		<TextFrame Self="%[2]s" ParentStory="%[3]s" PreviousTextFrame="n" NextTextFrame="n" ItemTransform="1 0 0 1 0 -396" ItemLayer="ub1" StrokeColor="Color/Black" StrokeWeight="1">
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
		</TextFrame>
	</Spread>
</idPkg:Spread>`, spread, frame, story)
}

func fixtureStory(id, text string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<idPkg:Story xmlns:idPkg="http://ns.adobe.com/AdobeInDesign/idml/1.0/packaging">
	<Story Self="%s">
		<ParagraphStyleRange>
			<CharacterStyleRange PointSize="12">
				<Content>%s</Content>
			</CharacterStyleRange>
		</ParagraphStyleRange>
	</Story>
</idPkg:Story>`, id, text)
}

// fixtureFiles is a two page package, one text frame per page.
func fixtureFiles() map[string]string {
	return map[string]string{
		"mimetype":              fixtureMimeType,
		"designmap.xml":         fixtureDesignMap,
		"Resources/Graphic.xml": fixtureGraphic,
		"Spreads/Spread_u1.xml": fixtureSpread("u1", "f1", "u10"),
		"Spreads/Spread_u2.xml": fixtureSpread("u2", "f2", "u11"),
		"Stories/Story_u10.xml": fixtureStory("u10", "Hello"),
		"Stories/Story_u11.xml": fixtureStory("u11", "World"),
	}
}

// buildPackage writes an in-memory ZIP package, mimetype first.
func buildPackage(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	write := func(name, content string) {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	if mt, ok := files["mimetype"]; ok {
		write("mimetype", mt)
	}
	for name, content := range files {
		if name != "mimetype" {
			write(name, content)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
	return buf.Bytes()
}

func fixturePackage(t *testing.T) []byte {
	t.Helper()
	return buildPackage(t, fixtureFiles())
}
