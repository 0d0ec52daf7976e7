package hwpx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// MimeType is the content of the package's mimetype entry.
const MimeType = "application/hwp+zip"

// Package part paths.
const (
	pathMimeType  = "mimetype"
	pathVersion   = "version.xml"
	pathHeader    = "Contents/header.xml"
	pathContent   = "Contents/content.hpf"
	pathSettings  = "settings.xml"
	pathContainer = "META-INF/container.xml"
	pathManifest  = "META-INF/manifest.xml"
	pathPreview   = "Preview/PrvText.txt"
)

func sectionPath(i int) string {
	return fmt.Sprintf("Contents/section%d.xml", i)
}

// WriteFile writes doc as an HWPX package to filename.
func WriteFile(filename string, doc *Document) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := Write(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write writes doc as an HWPX package. The mimetype entry is stored first
// and uncompressed.
func Write(w io.Writer, doc *Document) error {
	if doc == nil || doc.Header == nil {
		return fmt.Errorf("nil document")
	}
	zw := zip.NewWriter(w)

	mt, err := zw.CreateHeader(&zip.FileHeader{Name: pathMimeType, Method: zip.Store})
	if err != nil {
		return fmt.Errorf("failed to write mimetype: %w", err)
	}
	if _, err := io.WriteString(mt, MimeType); err != nil {
		return fmt.Errorf("failed to write mimetype: %w", err)
	}

	doc.Header.SecCnt = len(doc.Sections)
	doc.Header.finalize()

	parts := []part{
		{pathVersion, newVersion()},
		{pathHeader, doc.Header},
	}
	for i, s := range doc.Sections {
		s.Attrs = nsAttrs("ha", "hp", "hs", "hc", "hh")
		parts = append(parts, part{sectionPath(i), s})
	}
	parts = append(parts,
		part{pathContent, newContentPackage(doc)},
		part{pathSettings, newSettings()},
		part{pathContainer, newContainer()},
		part{pathManifest, newManifest()},
	)

	for _, p := range parts {
		if err := writeXML(zw, p.path, p.v); err != nil {
			return err
		}
	}

	for _, item := range doc.BinData {
		fw, err := zw.Create(item.Path())
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", item.Path(), err)
		}
		if _, err := fw.Write(item.Data); err != nil {
			return fmt.Errorf("failed to write %s: %w", item.Path(), err)
		}
	}

	pw, err := zw.Create(pathPreview)
	if err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}
	if _, err := io.WriteString(pw, previewText(doc)); err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish package: %w", err)
	}
	return nil
}

// Bytes returns doc as an HWPX package in memory.
func Bytes(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type part struct {
	path string
	v    any
}

func writeXML(zw *zip.Writer, path string, v any) error {
	fw, err := zw.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if _, err := io.WriteString(fw, `<?xml version="1.0" encoding="UTF-8" standalone="yes" ?>`); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	enc := xml.NewEncoder(fw)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return enc.Close()
}

const maxPreviewRunes = 1024

func previewText(doc *Document) string {
	var buf []rune
	for _, s := range doc.Sections {
		for _, p := range s.Paragraphs {
			t := p.Text()
			if t == "" {
				continue
			}
			buf = append(buf, []rune(t+"\r\n")...)
			if len(buf) >= maxPreviewRunes {
				return string(buf[:maxPreviewRunes])
			}
		}
	}
	return string(buf)
}

// ============================================================================
// Package metadata parts
// ============================================================================

type versionPart struct {
	XMLName           xml.Name   `xml:"hv:HCFVersion"`
	Attrs             []xml.Attr `xml:",attr"`
	TargetApplication string     `xml:"tagetApplication,attr"`
	Major             int        `xml:"major,attr"`
	Minor             int        `xml:"minor,attr"`
	Micro             int        `xml:"micro,attr"`
	BuildNumber       int        `xml:"buildNumber,attr"`
	OS                int        `xml:"os,attr"`
	XMLVersion        string     `xml:"xmlVersion,attr"`
	Application       string     `xml:"application,attr"`
	AppVersion        string     `xml:"appVersion,attr"`
}

func newVersion() *versionPart {
	return &versionPart{
		Attrs:             nsAttrs("hv"),
		TargetApplication: "WORDPROCESSOR",
		Major:             5,
		Minor:             1,
		Micro:             1,
		BuildNumber:       0,
		OS:                1,
		XMLVersion:        "1.4",
		Application:       "idmlhwpx",
		AppVersion:        "1.0",
	}
}

type contentPackage struct {
	XMLName  xml.Name     `xml:"opf:package"`
	Attrs    []xml.Attr   `xml:",attr"`
	Version  string       `xml:"version,attr"`
	UniqueID string       `xml:"unique-identifier,attr"`
	ID       string       `xml:"id,attr"`
	Metadata opfMetadata  `xml:"opf:metadata"`
	Manifest []opfItem    `xml:"opf:manifest>opf:item"`
	Spine    []opfItemRef `xml:"opf:spine>opf:itemref"`
}

type opfMetadata struct {
	Title    string `xml:"opf:title"`
	Language string `xml:"opf:language"`
}

type opfItem struct {
	ID         string `xml:"id,attr"`
	Href       string `xml:"href,attr"`
	MediaType  string `xml:"media-type,attr"`
	IsEmbedded string `xml:"isEmbeded,attr,omitempty"`
}

type opfItemRef struct {
	IDRef  string `xml:"idref,attr"`
	Linear string `xml:"linear,attr"`
}

func newContentPackage(doc *Document) *contentPackage {
	p := &contentPackage{
		Attrs:    nsAttrs("opf", "hpf", "hh", "hp", "hc"),
		Metadata: opfMetadata{Language: "ko"},
	}
	p.Manifest = append(p.Manifest, opfItem{ID: "header", Href: pathHeader, MediaType: "application/xml"})
	p.Spine = append(p.Spine, opfItemRef{IDRef: "header", Linear: "yes"})
	for i := range doc.Sections {
		id := fmt.Sprintf("section%d", i)
		p.Manifest = append(p.Manifest, opfItem{ID: id, Href: sectionPath(i), MediaType: "application/xml"})
		p.Spine = append(p.Spine, opfItemRef{IDRef: id, Linear: "yes"})
	}
	for _, item := range doc.BinData {
		p.Manifest = append(p.Manifest, opfItem{ID: item.ID, Href: item.Path(), MediaType: item.MediaType, IsEmbedded: "1"})
	}
	p.Manifest = append(p.Manifest, opfItem{ID: "settings", Href: pathSettings, MediaType: "application/xml"})
	return p
}

type settingsPart struct {
	XMLName xml.Name   `xml:"ha:HWPApplicationSetting"`
	Attrs   []xml.Attr `xml:",attr"`
	Caret   struct {
		ListIDRef string `xml:"listIDRef,attr"`
		ParaIDRef string `xml:"paraIDRef,attr"`
		Pos       int    `xml:"pos,attr"`
	} `xml:"ha:CaretPosition"`
}

func newSettings() *settingsPart {
	s := &settingsPart{Attrs: nsAttrs("ha")}
	s.Caret.ListIDRef = "0"
	s.Caret.ParaIDRef = "0"
	return s
}

type containerPart struct {
	XMLName   xml.Name      `xml:"ocf:container"`
	Attrs     []xml.Attr    `xml:",attr"`
	RootFiles []rootFileRef `xml:"ocf:rootfiles>ocf:rootfile"`
}

type rootFileRef struct {
	FullPath  string `xml:"full-path,attr"`
	MediaType string `xml:"media-type,attr"`
}

func newContainer() *containerPart {
	return &containerPart{
		Attrs: nsAttrs("ocf", "hpf"),
		RootFiles: []rootFileRef{
			{FullPath: pathContent, MediaType: "application/hwpml-package+xml"},
			{FullPath: pathPreview, MediaType: "text/plain"},
		},
	}
}

type manifestPart struct {
	XMLName xml.Name   `xml:"odf:manifest"`
	Attrs   []xml.Attr `xml:",attr"`
}

func newManifest() *manifestPart {
	return &manifestPart{Attrs: []xml.Attr{{
		Name:  xml.Name{Local: "xmlns:odf"},
		Value: "urn:oasis:names:tc:opendocument:xmlns:manifest:1.0",
	}}}
}
