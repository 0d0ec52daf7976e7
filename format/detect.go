// Package format detects the file formats handled by the converter.
package format

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format represents a supported file format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// IDML indicates an InDesign Markup Language package.
	IDML
	// HWPX indicates a Hancom OWPML package.
	HWPX
	// HTML indicates an HTML document, the preview output.
	HTML
)

// Package mimetypes stored uncompressed as the first ZIP entry.
const (
	IDMLMimeType = "application/vnd.adobe.indesign-idml-package"
	HWPXMimeType = "application/hwp+zip"
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case IDML:
		return "IDML"
	case HWPX:
		return "HWPX"
	case HTML:
		return "HTML"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case IDML:
		return ".idml"
	case HWPX:
		return ".hwpx"
	case HTML:
		return ".html"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".idml":
		return IDML
	case ".hwpx":
		return HWPX
	case ".html", ".htm":
		return HTML
	default:
		return Unknown
	}
}

// DetectFromMagic checks leading bytes. ZIP packages cannot be told apart
// from their first bytes alone and return Unknown; use DetectFromReader.
func DetectFromMagic(data []byte) Format {
	if len(data) < 4 {
		return Unknown
	}
	if isZIP(data) {
		return Unknown
	}
	if detectHTMLMagic(data) {
		return HTML
	}
	return Unknown
}

func isZIP(data []byte) bool {
	return len(data) >= 4 && data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return false
	}

	upper := strings.ToUpper(string(data[:min(512, len(data))]))
	return strings.HasPrefix(upper, "<!DOCTYPE HTML") || strings.HasPrefix(upper, "<HTML")
}

// DetectFromReader inspects the content to determine format. It tells the
// ZIP based packages apart by their mimetype entry and, when that is
// missing, by their characteristic parts.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 512)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if isZIP(magic) {
		return detectZIPFormat(r, size)
	}
	if detectHTMLMagic(magic) {
		return HTML, nil
	}
	return Unknown, nil
}

// DetectFile opens filename and detects its format from content, falling
// back to the extension when the content is not recognized.
func DetectFile(filename string) (Format, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Unknown, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Unknown, fmt.Errorf("failed to stat %s: %w", filename, err)
	}
	got, err := DetectFromReader(f, info.Size())
	if err != nil {
		return Unknown, err
	}
	if got == Unknown {
		return Detect(filename), nil
	}
	return got, nil
}

// detectZIPFormat inspects a ZIP archive to determine if it's IDML or HWPX.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	for _, f := range zr.File {
		if f.Name != "mimetype" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			break
		}
		data := make([]byte, 256)
		n, _ := io.ReadFull(rc, data)
		rc.Close()
		switch strings.TrimSpace(string(data[:n])) {
		case IDMLMimeType:
			return IDML, nil
		case HWPXMimeType:
			return HWPX, nil
		}
	}

	for _, f := range zr.File {
		switch {
		case f.Name == "designmap.xml", strings.HasPrefix(f.Name, "Spreads/"), strings.HasPrefix(f.Name, "Stories/"):
			return IDML, nil
		case f.Name == "Contents/header.xml", f.Name == "Contents/content.hpf":
			return HWPX, nil
		}
	}

	return Unknown, nil
}
