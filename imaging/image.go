// Package imaging loads the images placed in an IDML document and prepares
// them for embedding: it finds linked files, decodes the formats HWPX
// cannot embed, downsamples oversized images and substitutes a placeholder
// when a link cannot be resolved.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"path"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Image is image data ready for embedding.
type Image struct {
	Data        []byte
	Format      string // png, jpg, gif, bmp
	PixelWidth  int
	PixelHeight int

	// Placeholder is set when Data is a synthesized stand-in.
	Placeholder bool
}

// embeddable formats are written as-is.
var embeddable = map[string]bool{"png": true, "jpg": true, "gif": true, "bmp": true}

// designFormats cannot be decoded and are only usable through a
// pre-rendered sidecar PNG.
var designFormats = map[string]bool{"ai": true, "eps": true, "pdf": true, "psd": true, "indd": true}

// FormatOf returns the lower-case format of a file name, with "jpeg"
// folded to "jpg" and "tif" to "tiff".
func FormatOf(name string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	switch ext {
	case "jpeg":
		return "jpg"
	case "tif":
		return "tiff"
	}
	return ext
}

// IsDesignFormat reports whether name is a design-application file
// (Illustrator, EPS, PDF, Photoshop, InDesign).
func IsDesignFormat(name string) bool {
	return designFormats[FormatOf(name)]
}

// Decode decodes data in any registered format.
func Decode(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}

// PixelSize reads the pixel dimensions without decoding the whole image.
func PixelSize(data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("read image header: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// FromImage encodes img into an embeddable PNG Image.
func FromImage(img image.Image) (Image, error) {
	data, err := EncodePNG(img)
	if err != nil {
		return Image{}, err
	}
	b := img.Bounds()
	return Image{Data: data, Format: "png", PixelWidth: b.Dx(), PixelHeight: b.Dy()}, nil
}
