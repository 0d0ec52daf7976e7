package idml

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
)

// ErrInvalidPackage is returned when the ZIP container lacks the structure
// of an IDML package.
var ErrInvalidPackage = errors.New("not an IDML package")

const idmlMimeType = "application/vnd.adobe.indesign-idml-package"

// Reader provides access to IDML package content.
type Reader struct {
	zipCloser *zip.ReadCloser
	zipReader *zip.Reader
	files     map[string]*zip.File
	doc       *Document
	warnings  []string
}

// Open opens an IDML file and parses it.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r, err := newReader(&zr.Reader)
	if err != nil {
		zr.Close()
		return nil, err
	}
	r.zipCloser = zr
	return r, nil
}

// NewReader parses an IDML package held in memory or any io.ReaderAt.
func NewReader(ra io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	return newReader(zr)
}

// ReadBytes parses an IDML package from a byte slice.
func ReadBytes(data []byte) (*Reader, error) {
	return NewReader(bytes.NewReader(data), int64(len(data)))
}

func newReader(zr *zip.Reader) (*Reader, error) {
	r := &Reader{
		zipReader: zr,
		files:     make(map[string]*zip.File, len(zr.File)),
		doc:       NewDocument(),
	}
	for _, f := range zr.File {
		r.files[f.Name] = f
	}

	if err := r.validate(); err != nil {
		return nil, err
	}
	if err := r.parse(); err != nil {
		return nil, err
	}
	return r, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.zipCloser != nil {
		err := r.zipCloser.Close()
		r.zipCloser = nil
		return err
	}
	return nil
}

// Document returns the parsed document.
func (r *Reader) Document() *Document {
	return r.doc
}

// Warnings returns problems with optional package parts that were skipped.
func (r *Reader) Warnings() []string {
	return r.warnings
}

// validate checks that required IDML files exist.
func (r *Reader) validate() error {
	if _, ok := r.files["designmap.xml"]; !ok {
		return fmt.Errorf("%w: missing designmap.xml", ErrInvalidPackage)
	}
	if mt, ok := r.files["mimetype"]; ok {
		data, err := readZipFile(mt)
		if err == nil && len(bytes.TrimSpace(data)) > 0 && string(bytes.TrimSpace(data)) != idmlMimeType {
			return fmt.Errorf("%w: unexpected mimetype %q", ErrInvalidPackage, bytes.TrimSpace(data))
		}
	}
	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	f, ok := r.files[name]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", name)
	}
	return readZipFile(f)
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (r *Reader) parseXML(name string) (*node, error) {
	data, err := r.getFileContent(name)
	if err != nil {
		return nil, err
	}
	var root node
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	return &root, nil
}

// designMap lists the package parts referenced from designmap.xml.
type designMap struct {
	spreads       []string
	masterSpreads []string
	stories       []string
	styles        []string
	graphics      []string
	fonts         []string
}

func (r *Reader) parse() error {
	root, err := r.parseXML("designmap.xml")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPackage, err)
	}
	if root.name() != "Document" {
		return fmt.Errorf("%w: designmap root is <%s>", ErrInvalidPackage, root.name())
	}

	var dm designMap
	for _, c := range root.Children {
		src := c.attr("src")
		switch c.name() {
		case "Spread":
			dm.spreads = append(dm.spreads, src)
		case "MasterSpread":
			dm.masterSpreads = append(dm.masterSpreads, src)
		case "Story":
			dm.stories = append(dm.stories, src)
		case "Styles":
			dm.styles = append(dm.styles, src)
		case "Graphic":
			dm.graphics = append(dm.graphics, src)
		case "Fonts":
			dm.fonts = append(dm.fonts, src)
		case "Layer":
			if c.attr("Visible") == "false" {
				r.doc.HiddenLayers[c.attr("Self")] = true
			}
		}
	}

	// Resources are optional; a package without them still converts with defaults.
	for _, src := range dm.graphics {
		if err := r.parseGraphic(src); err != nil {
			r.warn("graphic resources %s: %v", src, err)
		}
	}
	for _, src := range dm.fonts {
		if err := r.parseFonts(src); err != nil {
			r.warn("font resources %s: %v", src, err)
		}
	}
	for _, src := range dm.styles {
		if err := r.parseStyles(src); err != nil {
			r.warn("style resources %s: %v", src, err)
		}
	}

	for _, src := range dm.stories {
		if err := r.parseStory(src); err != nil {
			r.warn("story %s: %v", src, err)
		}
	}

	// Spreads define the page structure; losing one would renumber pages.
	pageNumber := 0
	for _, src := range dm.spreads {
		spread, err := r.parseSpread(src, &pageNumber)
		if err != nil {
			return fmt.Errorf("spread %s: %w", src, err)
		}
		r.doc.Spreads = append(r.doc.Spreads, spread)
	}
	for _, src := range dm.masterSpreads {
		var n int
		spread, err := r.parseSpread(src, &n)
		if err != nil {
			r.warn("master spread %s: %v", src, err)
			continue
		}
		r.doc.MasterSpreads = append(r.doc.MasterSpreads, spread)
	}

	return nil
}

func (r *Reader) warn(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

// LinkedResources returns the package-relative names of every file under
// Links/, for packages that embed their images.
func (r *Reader) LinkedResources() []string {
	var out []string
	for name := range r.files {
		if path.Dir(name) == "Links" {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// ReadResource returns the bytes of a package file.
func (r *Reader) ReadResource(name string) ([]byte, error) {
	return r.getFileContent(name)
}
