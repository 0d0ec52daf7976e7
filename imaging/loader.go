package imaging

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/tsawler/idmlhwpx/geometry"
)

// ErrNotFound is returned when a link resolves to no readable file.
var ErrNotFound = errors.New("linked image not found")

// ErrNoLink is returned for image frames without a link.
var ErrNoLink = errors.New("image frame has no link")

// Resources reads files embedded in the source package.
type Resources interface {
	ReadResource(name string) ([]byte, error)
}

// Request describes one placed image.
type Request struct {
	// Link is the frame's LinkResourceURI.
	Link string

	// Width and Height are the displayed size in points.
	Width, Height float64

	// Clipping data. When ImageTransform is the zero matrix no clipping
	// is applied.
	ImageTransform geometry.Matrix
	FrameBounds    geometry.Bounds
	GraphicBounds  geometry.Bounds
}

// Loader resolves and prepares linked images.
type Loader struct {
	// LinksDir is searched first for the link's file name.
	LinksDir string

	// BaseDir is the directory of the source package.
	BaseDir string

	// Resources serves images embedded in the package under Links/.
	Resources Resources

	// DPI is the resolution images are downsampled to.
	DPI int

	Logger *log.Logger
}

// NewLoader creates a loader rendering at dpi.
func NewLoader(dpi int) *Loader {
	return &Loader{DPI: dpi, Logger: log.New(io.Discard)}
}

// Load loads the image linked by link for a w×h point frame.
func (l *Loader) Load(link string, w, h float64) (Image, error) {
	return l.LoadRequest(Request{Link: link, Width: w, Height: h})
}

// LoadRequest loads one image. The returned Image is always usable: when
// the link cannot be resolved or decoded, a placeholder is returned
// together with the error that caused it.
func (l *Loader) LoadRequest(req Request) (Image, error) {
	if req.Link == "" {
		return l.placeholder(req, ErrNoLink)
	}

	p := StripFileURI(req.Link)
	name := path.Base(filepath.ToSlash(p))
	format := FormatOf(p)

	data, err := l.read(p, name, format)
	if err != nil {
		return l.placeholder(req, fmt.Errorf("%s: %w", name, err))
	}

	img, err := l.prepare(data, format, req)
	if err != nil {
		return l.placeholder(req, fmt.Errorf("%s: %w", name, err))
	}
	return img, nil
}

func (l *Loader) placeholder(req Request, cause error) (Image, error) {
	l.logger().Debug("using placeholder image", "link", req.Link, "err", cause)
	img, err := Placeholder(req.Width, req.Height)
	if err != nil {
		return Image{}, errors.Join(cause, err)
	}
	return img, cause
}

func (l *Loader) logger() *log.Logger {
	if l.Logger == nil {
		return log.New(io.Discard)
	}
	return l.Logger
}

// read finds the file bytes. Design formats are only readable through a
// sibling "<file>.png" rendering.
func (l *Loader) read(p, name, format string) ([]byte, error) {
	if designFormats[format] {
		if data, err := l.readFile(p+".png", name+".png"); err == nil {
			return data, nil
		}
		return nil, fmt.Errorf("%s file has no rendered preview: %w", format, ErrNotFound)
	}
	return l.readFile(p, name)
}

func (l *Loader) readFile(p, name string) ([]byte, error) {
	for _, candidate := range l.candidates(p, name) {
		if data, err := os.ReadFile(candidate); err == nil {
			return data, nil
		}
	}
	if l.Resources != nil {
		for _, res := range []string{"Links/" + name, strings.TrimPrefix(filepath.ToSlash(p), "/")} {
			if data, err := l.Resources.ReadResource(res); err == nil {
				return data, nil
			}
		}
	}
	if l.LinksDir != "" {
		if found := findFold(l.LinksDir, name); found != "" {
			return os.ReadFile(found)
		}
	}
	if l.BaseDir != "" {
		if found := findFold(filepath.Join(l.BaseDir, "Links"), name); found != "" {
			return os.ReadFile(found)
		}
	}
	return nil, ErrNotFound
}

// candidates lists the paths tried for a link, in order: the path itself,
// the links directory, then locations relative to the package.
func (l *Loader) candidates(p, name string) []string {
	out := []string{p}
	if l.LinksDir != "" {
		out = append(out, filepath.Join(l.LinksDir, name))
	}
	if l.BaseDir != "" {
		out = append(out, filepath.Join(l.BaseDir, p))
		if rest, ok := strings.CutPrefix(p, "Links/"); ok {
			out = append(out, filepath.Join(l.BaseDir, rest))
		}
		out = append(out,
			filepath.Join(l.BaseDir, "Links", name),
			filepath.Join(l.BaseDir, name))
	}
	return out
}

// findFold finds name in dir ignoring case.
func findFold(dir, name string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(e.Name(), name) {
			return filepath.Join(dir, e.Name())
		}
	}
	return ""
}

// prepare clips, converts and downsamples image bytes.
func (l *Loader) prepare(data []byte, format string, req Request) (Image, error) {
	if designFormats[format] {
		format = "png"
	}

	pw, ph, err := PixelSize(data)
	if err != nil {
		return Image{}, err
	}
	out := Image{Data: data, Format: format, PixelWidth: pw, PixelHeight: ph}

	var src image.Image
	decoded := func() (image.Image, error) {
		if src != nil {
			return src, nil
		}
		img, _, err := Decode(data)
		src = img
		return img, err
	}

	if req.ImageTransform != (geometry.Matrix{}) {
		img, err := decoded()
		if err != nil {
			return Image{}, err
		}
		if clipped := l.clip(img, req); clipped != nil {
			src = clipped
			b := clipped.Bounds()
			out.PixelWidth, out.PixelHeight, out.Data = b.Dx(), b.Dy(), nil
		}
	}

	tw, th := TargetPixels(req.Width, req.Height, l.DPI)
	if NeedsResize(out.PixelWidth, out.PixelHeight, tw, th) {
		img, err := decoded()
		if err != nil {
			return Image{}, err
		}
		l.logger().Debug("downsampling image", "from", fmt.Sprintf("%dx%d", out.PixelWidth, out.PixelHeight), "to", fmt.Sprintf("%dx%d", tw, th))
		src = Resize(img, tw, th)
		out.PixelWidth, out.PixelHeight, out.Data = tw, th, nil
	}

	if out.Data == nil || !embeddable[out.Format] {
		img, err := decoded()
		if err != nil {
			return Image{}, err
		}
		converted, err := FromImage(img)
		if err != nil {
			return Image{}, err
		}
		return converted, nil
	}
	return out, nil
}

// clip cuts the part of the image visible through the frame and renders
// it at the loader's DPI. It returns nil when the visible area is empty.
func (l *Loader) clip(img image.Image, req Request) image.Image {
	b := img.Bounds()
	m := req.ImageTransform
	sx, sy := m[0], m[3]
	if math.Abs(sx) < 0.001 {
		sx = 1
	}
	if math.Abs(sy) < 0.001 {
		sy = 1
	}
	tx, ty := m[4], m[5]

	g := req.GraphicBounds
	if g.Width() <= 0 || g.Height() <= 0 {
		g = geometry.Bounds{Right: float64(b.Dx()), Bottom: float64(b.Dy())}
	}
	pxPerPtX := float64(b.Dx()) / g.Width()
	pxPerPtY := float64(b.Dy()) / g.Height()

	f := req.FrameBounds
	srcL := (f.Left - tx) / sx * pxPerPtX
	srcT := (f.Top - ty) / sy * pxPerPtY
	srcR := (f.Right - tx) / sx * pxPerPtX
	srcB := (f.Bottom - ty) / sy * pxPerPtY

	x1 := max(0, int(math.Floor(math.Min(srcL, srcR))))
	y1 := max(0, int(math.Floor(math.Min(srcT, srcB))))
	x2 := min(b.Dx(), int(math.Ceil(math.Max(srcL, srcR))))
	y2 := min(b.Dy(), int(math.Ceil(math.Max(srcT, srcB))))
	if x1 >= x2 || y1 >= y2 {
		return nil
	}
	if m[0] < 0 {
		x1, x2 = b.Dx()-x2, b.Dx()-x1
	}
	if m[3] < 0 {
		y1, y2 = b.Dy()-y2, b.Dy()-y1
	}
	if x1 == 0 && y1 == 0 && x2 == b.Dx() && y2 == b.Dy() {
		return nil
	}

	pw := max(minTargetPixels, int(math.Ceil(f.Width()*float64(l.DPI)/72)))
	ph := max(minTargetPixels, int(math.Ceil(f.Height()*float64(l.DPI)/72)))
	r := image.Rect(x1, y1, x2, y2).Add(b.Min)
	return Crop(img, r, pw, ph)
}

// StripFileURI turns a "file:" URI into a local path.
func StripFileURI(link string) string {
	if !strings.HasPrefix(link, "file:") {
		return link
	}
	if u, err := url.Parse(link); err == nil && u.Path != "" {
		p := u.Path
		// file:///C:/x on Windows parses to /C:/x
		if len(p) > 2 && p[0] == '/' && p[2] == ':' {
			p = p[1:]
		}
		return filepath.FromSlash(p)
	}
	return strings.TrimPrefix(strings.TrimPrefix(link, "file:"), "//")
}
