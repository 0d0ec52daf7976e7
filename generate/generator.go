package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/tsawler/idmlhwpx/ast"
	"github.com/tsawler/idmlhwpx/hwpx"
	"github.com/tsawler/idmlhwpx/registry"
)

// ErrNoDocument is returned when Generate is called without a document.
var ErrNoDocument = errors.New("generate: no document")

// Page setup used when the source supplies none.
const (
	defaultMargin        = 1417 // 5mm
	headerFooterMargin   = 1417
	defaultColumnGap     = 1134
	defaultTabStop       = 8000
	landscapeOrientation = "NARROWLY"
	portraitOrientation  = "WIDELY"
)

// Generator converts one ast document into an hwpx document. A Generator
// may be reused; every call to Generate starts from a blank document with
// fresh registries.
type Generator struct {
	cfg Config

	doc    *hwpx.Document
	fonts  *registry.FontRegistry
	styles *registry.StyleRegistry

	stats    Stats
	warnings []Warning
}

// New creates a generator.
func New(cfg Config) *Generator {
	return &Generator{cfg: cfg}
}

// Stats returns the counters of the last run.
func (g *Generator) Stats() Stats {
	return g.stats
}

// Warnings returns the problems recorded by the last run.
func (g *Generator) Warnings() []Warning {
	return g.warnings
}

func (g *Generator) logger() *log.Logger {
	if g.cfg.Logger == nil {
		return log.New(io.Discard)
	}
	return g.cfg.Logger
}

func (g *Generator) warn(phase, element, format string, args ...any) {
	w := Warning{Phase: phase, Element: element, Message: fmt.Sprintf(format, args...)}
	g.warnings = append(g.warnings, w)
	g.logger().Warn(w.Message, "phase", phase, "element", element)
}

// Generate builds the target document. The context is checked between
// sections.
func (g *Generator) Generate(ctx context.Context, src *ast.Document) (*hwpx.Document, error) {
	if src == nil {
		return nil, ErrNoDocument
	}

	g.doc = hwpx.NewBlank()
	g.fonts = registry.NewFontRegistry(g.doc.Header)
	g.styles = registry.NewStyleRegistry(g.doc.Header, g.fonts)
	g.stats = Stats{}
	g.warnings = nil

	for _, f := range src.Fonts {
		g.fonts.ResolveFontID(f.Family)
	}
	for _, def := range src.ParagraphStyles {
		g.styles.RegisterParagraphStyle(def)
	}
	for _, def := range src.CharacterStyles {
		g.styles.RegisterCharacterStyle(def)
	}

	backgrounds := make(map[int][]*ast.PageBackground)
	for _, bg := range src.Backgrounds {
		backgrounds[bg.PageNumber] = append(backgrounds[bg.PageNumber], bg)
	}

	body := g.doc.Section0()
	for i, s := range src.Sections {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		body.AddParagraph(g.section(i, s, src.SpreadMode, backgrounds[s.PageNumber]))
		delete(backgrounds, s.PageNumber)
		g.logger().Debug("generated page", "page", s.PageNumber, "blocks", len(s.Blocks))
	}
	for _, page := range slices.Sorted(maps.Keys(backgrounds)) {
		g.warn(PhaseTarget, fmt.Sprintf("page %d", page), "background has no matching page; dropped")
	}

	if len(body.Paragraphs) == 0 {
		p := g.doc.NewParagraph(hwpx.DefaultParaPrID, hwpx.DefaultStyleID)
		p.AddRun(hwpx.DefaultCharPrID).AddText("")
		body.AddParagraph(p)
	}

	g.stats.Styles = g.styles.TotalStyleCount()
	g.stats.Fonts = g.fonts.Count()
	g.logger().Info("generated document",
		"pages", g.stats.Pages, "frames", g.stats.Frames(), "images", g.stats.Images, "styles", g.stats.Styles)
	return g.doc, nil
}

// section builds the anchor paragraph of one page.
func (g *Generator) section(index int, s *ast.Section, spread bool, backgrounds []*ast.PageBackground) *hwpx.Paragraph {
	p := g.doc.NewParagraph(hwpx.DefaultParaPrID, hwpx.DefaultStyleID)
	p.PageBreak = index > 0
	run := p.AddRun(hwpx.DefaultCharPrID)
	run.Add(pageDefinition(s.Layout, spread))
	run.Add(columnDefinition(s.Layout))

	z := 0
	for _, bg := range backgrounds {
		if pic := g.background(bg, z); pic != nil {
			run.Add(pic)
			z++
		}
	}

	element := fmt.Sprintf("page %d", s.PageNumber)
	for _, blk := range s.Blocks {
		switch b := blk.(type) {
		case *ast.TextFrameBlock:
			run.Add(g.textFrame(b, z))
			g.stats.TextFrames++
		case *ast.Table:
			if tbl := g.table(b, z, paperPlacement(b.Frame)); tbl != nil {
				run.Add(tbl)
				g.stats.Tables++
			}
		case *ast.Figure:
			if pic := g.figure(b, z); pic != nil {
				run.Add(pic)
				g.stats.Figures++
			}
		default:
			g.warn(PhaseTarget, element, "unsupported block %T", blk)
			continue
		}
		z++
	}

	run.AddText("")
	g.stats.Pages++
	return p
}

// pageDefinition returns the section definition for a page. Margins that
// are not positive fall back to 5mm, except on spreads, which have none.
func pageDefinition(l ast.PageLayout, spread bool) *hwpx.SecPr {
	orientation := portraitOrientation
	if l.Width > l.Height {
		orientation = landscapeOrientation
	}
	margin := marginOr
	if spread {
		margin = func(v int64) int64 { return max(v, 0) }
	}
	return &hwpx.SecPr{
		TextDirection: "HORIZONTAL",
		SpaceColumns:  defaultColumnGap,
		TabStop:       defaultTabStop,
		TabStopVal:    defaultTabStop / 2,
		TabStopUnit:   "HWPUNIT",
		StartNum:      hwpx.SecStartNum{PageStartsOn: "BOTH"},
		Visibility:    hwpx.SecVisibility{Border: "SHOW_ALL", Fill: "SHOW_ALL"},
		PagePr: hwpx.PagePr{
			Landscape:  orientation,
			Width:      l.Width,
			Height:     l.Height,
			GutterType: "LEFT_ONLY",
			Margin: hwpx.PageMargin{
				Header: headerFooterMargin,
				Footer: headerFooterMargin,
				Left:   margin(l.MarginLeft),
				Right:  margin(l.MarginRight),
				Top:    margin(l.MarginTop),
				Bottom: margin(l.MarginBottom),
			},
		},
		PageBorderFill: []*hwpx.PageBorderFill{
			pageBorderFill("BOTH"), pageBorderFill("EVEN"), pageBorderFill("ODD"),
		},
	}
}

func pageBorderFill(kind string) *hwpx.PageBorderFill {
	return &hwpx.PageBorderFill{
		Type:            kind,
		BorderFillIDRef: hwpx.PageBorderFillID,
		TextBorder:      "PAPER",
		FillArea:        "PAPER",
		Offset:          hwpx.Margin{Left: defaultMargin, Right: defaultMargin, Top: defaultMargin, Bottom: defaultMargin},
	}
}

func marginOr(v int64) int64 {
	if v <= 0 {
		return defaultMargin
	}
	return v
}

func columnDefinition(l ast.PageLayout) *hwpx.Ctrl {
	cols := l.ColumnCount
	if cols < 1 {
		cols = 1
	}
	return &hwpx.Ctrl{ColPr: &hwpx.ColPr{
		Type:     "NEWSPAPER",
		Layout:   "LEFT",
		ColCount: cols,
		SameSz:   true,
		SameGap:  l.ColumnGutter,
	}}
}

// paperPlacement anchors r to the paper. Negative offsets are clamped to
// the page edge and empty sizes grow to one unit.
func paperPlacement(r ast.Rect) hwpx.Placement {
	w, h := size(r.Width), size(r.Height)
	return hwpx.PaperPlacement(max(r.X, 0), max(r.Y, 0), w, h)
}

func size(v int64) int64 {
	if v < 1 {
		return 1
	}
	return v
}
