package hwpx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ErrNotHWPX is returned when a package lacks the HWPX mimetype.
var ErrNotHWPX = errors.New("not an HWPX package")

// PageSize is a section page size in HWPUNIT.
type PageSize struct {
	Width  int64
	Height int64
}

// Summary describes the content of an HWPX package.
type Summary struct {
	Sections   int
	Paragraphs int
	Tables     int
	Cells      int
	Pictures   int
	TextBoxes  int
	Equations  int
	PageSizes  []PageSize

	Fonts      []string
	CharShapes int
	ParaShapes int
	Styles     int
	BinItems   []string

	Text    string
	Scripts []string
}

// InspectFile opens and inspects the HWPX package at filename.
func InspectFile(filename string) (*Summary, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	return Inspect(f, info.Size())
}

// InspectBytes inspects an in-memory HWPX package.
func InspectBytes(data []byte) (*Summary, error) {
	return Inspect(bytes.NewReader(data), int64(len(data)))
}

// Inspect streams the header and section parts of an HWPX package and
// reports what they contain.
func Inspect(r io.ReaderAt, size int64) (*Summary, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
	}

	files := make(map[string]*zip.File, len(zr.File))
	var sections []string
	s := &Summary{}
	for _, f := range zr.File {
		files[f.Name] = f
		switch {
		case strings.HasPrefix(f.Name, "Contents/section") && strings.HasSuffix(f.Name, ".xml"):
			sections = append(sections, f.Name)
		case strings.HasPrefix(f.Name, "BinData/"):
			s.BinItems = append(s.BinItems, strings.TrimPrefix(f.Name, "BinData/"))
		}
	}

	mt, ok := files[pathMimeType]
	if !ok {
		return nil, ErrNotHWPX
	}
	data, err := readZipFile(mt)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(data)) != MimeType {
		return nil, ErrNotHWPX
	}

	if hf, ok := files[pathHeader]; ok {
		if err := inspectHeader(hf, s); err != nil {
			return nil, err
		}
	}

	sort.Strings(sections)
	var text strings.Builder
	for _, name := range sections {
		if err := inspectSection(files[name], s, &text); err != nil {
			return nil, err
		}
		s.Sections++
	}
	s.Text = strings.TrimRight(text.String(), "\n")
	return s, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", f.Name, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func inspectHeader(f *zip.File, s *Summary) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", f.Name, err)
	}
	defer rc.Close()

	dec := xml.NewDecoder(rc)
	lang := ""
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", f.Name, err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "fontface":
			lang = attrValue(se, "lang")
		case "font":
			if lang == "HANGUL" {
				s.Fonts = append(s.Fonts, attrValue(se, "face"))
			}
		case "charPr":
			s.CharShapes++
		case "paraPr":
			s.ParaShapes++
		case "style":
			s.Styles++
		}
	}
}

func inspectSection(f *zip.File, s *Summary, text *strings.Builder) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", f.Name, err)
	}
	defer rc.Close()

	dec := xml.NewDecoder(rc)
	inText, inScript := 0, false
	var script strings.Builder
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", f.Name, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				s.Paragraphs++
			case "tbl":
				s.Tables++
			case "tc":
				s.Cells++
			case "pic":
				s.Pictures++
			case "drawText":
				s.TextBoxes++
			case "equation":
				s.Equations++
			case "script":
				inScript = true
				script.Reset()
			case "pagePr":
				s.PageSizes = append(s.PageSizes, PageSize{
					Width:  parseInt64(attrValue(t, "width")),
					Height: parseInt64(attrValue(t, "height")),
				})
			case "t":
				inText++
			case "lineBreak":
				if inText > 0 {
					text.WriteByte('\n')
				}
			case "tab":
				if inText > 0 {
					text.WriteByte('\t')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText--
			case "script":
				inScript = false
				s.Scripts = append(s.Scripts, script.String())
			case "p":
				if text.Len() > 0 && !strings.HasSuffix(text.String(), "\n") {
					text.WriteByte('\n')
				}
			}
		case xml.CharData:
			switch {
			case inScript:
				script.Write(t)
			case inText > 0:
				text.Write(t)
			}
		}
	}
}

func attrValue(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func parseInt64(s string) int64 {
	var n int64
	fmt.Sscanf(s, "%d", &n)
	return n
}
