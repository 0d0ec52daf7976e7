package idmlhwpx

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tsawler/idmlhwpx/ast"
	"github.com/tsawler/idmlhwpx/colors"
	"github.com/tsawler/idmlhwpx/generate"
	"github.com/tsawler/idmlhwpx/idml"
	"github.com/tsawler/idmlhwpx/imaging"
	"github.com/tsawler/idmlhwpx/normalize"
	"github.com/tsawler/idmlhwpx/preview"
	"github.com/tsawler/idmlhwpx/render"
)

// Converter provides a fluent interface for converting IDML packages.
// Each configuration method returns a new Converter instance, so a
// configured Converter can be shared and derived from. Terminal operations
// on one instance must not run concurrently.
type Converter struct {
	// Source: a file name, an in-memory package or a parsed document.
	filename string
	data     []byte
	doc      *idml.Document

	reader *idml.Reader

	ownsReader   bool
	readerOpened bool

	options ConvertOptions
	log     *log.Logger

	// Accumulated error (fail-fast)
	err error

	// warnings reported while reading the package
	readerWarnings []Warning
}

// clone creates a shallow copy of the Converter with a copy of options.
func (c *Converter) clone() *Converter {
	return &Converter{
		filename:     c.filename,
		data:         c.data,
		doc:          c.doc,
		reader:       c.reader,
		ownsReader:   c.ownsReader,
		readerOpened: c.readerOpened,
		options:      c.options.clone(),
		log:          c.log,
		err:          c.err,

		readerWarnings: append([]Warning(nil), c.readerWarnings...),
	}
}

// ensureReader opens and parses the package if not already done.
func (c *Converter) ensureReader() error {
	if c.readerOpened {
		return nil
	}

	var (
		r   *idml.Reader
		err error
	)
	switch {
	case c.data != nil:
		r, err = idml.ReadBytes(c.data)
	case c.filename != "":
		r, err = idml.Open(c.filename)
	default:
		return newError(PhaseLoading, "no source specified")
	}
	if err != nil {
		if errors.Is(err, idml.ErrInvalidPackage) {
			return wrapError(PhaseParsing, err, "failed to parse %s", c.sourceName())
		}
		return wrapError(PhaseLoading, err, "failed to open %s", c.sourceName())
	}

	c.reader = r
	c.doc = r.Document()
	c.ownsReader = true
	c.readerOpened = true
	c.readerWarnings = c.readerWarnings[:0]
	for _, w := range r.Warnings() {
		c.readerWarnings = append(c.readerWarnings, Warning{Phase: PhaseParsing, Message: w})
	}
	return nil
}

// Close releases resources associated with the Converter. A later terminal
// operation opens the package again. It is safe to call Close multiple
// times.
func (c *Converter) Close() error {
	if c.ownsReader && c.reader != nil {
		err := c.reader.Close()
		c.reader = nil
		c.doc = nil
		c.ownsReader = false
		c.readerOpened = false
		return err
	}
	return nil
}

func (c *Converter) sourceName() string {
	if c.filename != "" {
		return c.filename
	}
	return "package"
}

func (c *Converter) logger() *log.Logger {
	if c.log == nil {
		return log.New(io.Discard)
	}
	return c.log
}

// ============================================================================
// Configuration Methods (return new Converter instance)
// ============================================================================

// Pages restricts conversion to an inclusive 1-indexed page range. Zero
// leaves a bound open.
//
// Example:
//
//	res, _, err := idmlhwpx.Open("book.idml").Pages(3, 5).Convert()
func (c *Converter) Pages(start, end int) *Converter {
	n := c.clone()
	n.options.StartPage = start
	n.options.EndPage = end
	return n
}

// Images turns placement of linked and embedded images on or off.
func (c *Converter) Images(on bool) *Converter {
	n := c.clone()
	n.options.IncludeImages = on
	return n
}

// Equations turns equation conversion on or off. When off, equation
// markup stays in the text as written.
func (c *Converter) Equations(on bool) *Converter {
	n := c.clone()
	n.options.IncludeEquations = on
	return n
}

// Styles turns named style conversion on or off.
func (c *Converter) Styles(on bool) *Converter {
	n := c.clone()
	n.options.IncludeStyles = on
	return n
}

// SpreadMode emits one page per spread instead of one per page.
//
// Example:
//
//	res, _, err := idmlhwpx.Open("magazine.idml").SpreadMode().Convert()
func (c *Converter) SpreadMode() *Converter {
	n := c.clone()
	n.options.SpreadBasedConversion = true
	return n
}

// LinksDirectory sets the directory searched first for linked images.
func (c *Converter) LinksDirectory(dir string) *Converter {
	n := c.clone()
	n.options.LinksDirectory = dir
	return n
}

// ImageDPI sets the resolution linked images are downsampled to.
func (c *Converter) ImageDPI(dpi int) *Converter {
	n := c.clone()
	n.options.ImageDPI = dpi
	return n
}

// VectorDPI sets the resolution vector shapes are rasterized at.
func (c *Converter) VectorDPI(dpi int) *Converter {
	n := c.clone()
	n.options.VectorDPI = dpi
	return n
}

// MergeTextFrames controls whether a page's body frames are merged into
// one table.
func (c *Converter) MergeTextFrames(on bool) *Converter {
	n := c.clone()
	n.options.MergeTextFrames = on
	return n
}

// RenderBackground flattens each page's vector shapes into one background
// image.
func (c *Converter) RenderBackground() *Converter {
	n := c.clone()
	n.options.RenderBackground = true
	return n
}

// Tolerances sets the position and size tolerances, in points, used to
// detect duplicated text frames.
func (c *Converter) Tolerances(position, size float64) *Converter {
	n := c.clone()
	n.options.PositionTolerance = position
	n.options.SizeTolerance = size
	return n
}

// WithOptions replaces every option at once.
//
// Example:
//
//	opts, err := idmlhwpx.LoadOptions("convert.toml")
//	...
//	res, _, err := idmlhwpx.Open("book.idml").WithOptions(opts).Convert()
func (c *Converter) WithOptions(opts ConvertOptions) *Converter {
	n := c.clone()
	n.options = opts.clone()
	return n
}

// WithLogger sets the logger progress and warnings are reported to.
func (c *Converter) WithLogger(l *log.Logger) *Converter {
	n := c.clone()
	n.log = l
	return n
}

// Options returns the current configuration.
func (c *Converter) Options() ConvertOptions {
	return c.options.clone()
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Document returns the parsed source document without converting it.
// Note: This does NOT close the reader, allowing further operations.
func (c *Converter) Document() (*idml.Document, error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.doc != nil {
		return c.doc, nil
	}
	if err := c.ensureReader(); err != nil {
		return nil, err
	}
	return c.doc, nil
}

// PageCount returns the number of pages in the source document.
// Note: This does NOT close the reader, allowing further operations.
func (c *Converter) PageCount() (int, error) {
	doc, err := c.Document()
	if err != nil {
		return 0, err
	}
	return len(doc.Pages()), nil
}

// Convert runs the whole pipeline and returns the generated document.
// This is a terminal operation that closes the underlying reader.
//
// Example:
//
//	res, warnings, err := idmlhwpx.Open("book.idml").Convert()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", idmlhwpx.FormatWarnings(warnings))
//	}
//	err = res.WriteFile("book.hwpx")
func (c *Converter) Convert() (*Result, []Warning, error) {
	return c.ConvertContext(context.Background())
}

// ConvertContext is Convert with a context, checked between pages.
func (c *Converter) ConvertContext(ctx context.Context) (*Result, []Warning, error) {
	start := time.Now()

	tree, warnings, err := c.normalize(ctx)
	if err != nil {
		return nil, warnings, err
	}
	defer c.Close()

	gen := generate.New(generate.Config{
		Equations: generate.DefaultConfig().Equations,
		Logger:    c.log,
	})
	out, err := gen.Generate(ctx, tree)
	for _, w := range gen.Warnings() {
		warnings = append(warnings, Warning{Phase: Phase(w.Phase), Element: w.Element, Message: w.Message})
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, warnings, err
		}
		return nil, warnings, wrapError(PhaseTargetGeneration, err, "failed to generate document")
	}

	res := &Result{
		Document: out,
		AST:      tree,
		Stats:    gen.Stats(),
		Warnings: warnings,
		Duration: time.Since(start),
	}
	c.logger().Info("converted", "source", c.sourceName(), "pages", res.Stats.Pages,
		"frames", res.Stats.Frames(), "warnings", len(warnings), "elapsed", res.Duration)
	return res, warnings, nil
}

// ConvertToFile converts and writes the result to filename.
// This is a terminal operation that closes the underlying reader.
func (c *Converter) ConvertToFile(ctx context.Context, filename string) (*Result, []Warning, error) {
	res, warnings, err := c.ConvertContext(ctx)
	if err != nil {
		return nil, warnings, err
	}
	if err := res.WriteFile(filename); err != nil {
		return nil, warnings, err
	}
	return res, warnings, nil
}

// AST returns the normalized document without generating output.
// This is a terminal operation that closes the underlying reader.
func (c *Converter) AST() (*ast.Document, []Warning, error) {
	tree, warnings, err := c.normalize(context.Background())
	if err != nil {
		return nil, warnings, err
	}
	c.Close()
	return tree, warnings, nil
}

// Preview writes an HTML page-by-page rendering of the normalized document.
// This is a terminal operation that closes the underlying reader.
func (c *Converter) Preview(w io.Writer, opts preview.Options) ([]Warning, error) {
	tree, warnings, err := c.normalize(context.Background())
	if err != nil {
		return warnings, err
	}
	defer c.Close()

	if opts.Title == "" {
		opts.Title = strings.TrimSuffix(filepath.Base(c.sourceName()), filepath.Ext(c.sourceName()))
	}
	var buf bytes.Buffer
	if err := preview.Render(&buf, tree, opts); err != nil {
		return warnings, wrapError(PhaseTargetGeneration, err, "failed to render preview")
	}
	if _, err := buf.WriteTo(w); err != nil {
		return warnings, wrapError(PhaseTargetGeneration, err, "failed to write preview")
	}
	return warnings, nil
}

// normalize loads the source and builds the intermediate document, with
// the warnings of this run. The reader stays open so linked images can
// still be read from the package.
func (c *Converter) normalize(ctx context.Context) (*ast.Document, []Warning, error) {
	if c.err != nil {
		return nil, nil, c.err
	}
	if err := c.options.Validate(); err != nil {
		return nil, nil, wrapError(PhaseLoading, err, "invalid options")
	}
	if c.doc == nil {
		if err := c.ensureReader(); err != nil {
			return nil, nil, err
		}
	}

	warnings := append([]Warning(nil), c.readerWarnings...)
	n := normalize.New(c.doc, c.normalizeConfig())
	tree, err := n.Normalize(ctx)
	for _, w := range n.Warnings() {
		warnings = append(warnings, Warning{Phase: Phase(w.Phase), Element: w.Element, Message: w.Message})
	}
	if err != nil {
		c.Close()
		if ctx.Err() != nil {
			return nil, warnings, err
		}
		return nil, warnings, wrapError(PhaseParsing, err, "failed to normalize %s", c.sourceName())
	}
	return tree, warnings, nil
}

// normalizeConfig wires the image loader and shape renderer into the
// normalizer configuration. Every run gets its own colour resolver.
func (c *Converter) normalizeConfig() normalize.Config {
	cfg := c.options.normalizeConfig()
	cfg.Logger = c.log

	resolver := colors.NewResolver(c.doc.Colors)
	cfg.Colors = resolver

	loader := imaging.NewLoader(c.options.ImageDPI)
	loader.LinksDir = c.options.LinksDirectory
	if c.filename != "" {
		loader.BaseDir = filepath.Dir(c.filename)
	}
	if c.reader != nil {
		loader.Resources = c.reader
	}
	if c.log != nil {
		loader.Logger = c.log
	}
	cfg.Images = loader

	shapes := render.NewRenderer(c.options.VectorDPI, resolver)
	if c.log != nil {
		shapes.Logger = c.log
	}
	cfg.Shapes = shapes
	return cfg
}
