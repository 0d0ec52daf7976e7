package normalize

import (
	"github.com/charmbracelet/log"

	"github.com/tsawler/idmlhwpx/colors"
	"github.com/tsawler/idmlhwpx/idml"
	"github.com/tsawler/idmlhwpx/imaging"
	"github.com/tsawler/idmlhwpx/render"
)

// Tolerances decide when two text frames are the same frame placed twice.
// Both values are in points and compared strictly.
type Tolerances struct {
	Position float64
	Size     float64
}

// DefaultTolerances returns the position (3pt) and size (5pt) tolerances.
func DefaultTolerances() Tolerances {
	return Tolerances{Position: 3, Size: 5}
}

// ImageSource supplies the pixels of linked images. Implementations return
// a usable stand-in together with a non-nil error when the link cannot be
// resolved.
type ImageSource interface {
	Load(link string, w, h float64) (imaging.Image, error)
}

// requestLoader is implemented by sources that can clip to the frame.
type requestLoader interface {
	LoadRequest(req imaging.Request) (imaging.Image, error)
}

// ShapeRenderer rasterizes vector shapes.
type ShapeRenderer interface {
	RenderShapes(shapes []*idml.VectorShape, vp render.Viewport) (*render.Result, error)
	RenderBackground(shapes []*idml.VectorShape, vp render.Viewport) (*render.Result, error)
}

// Config controls a normalization run.
type Config struct {
	// StartPage and EndPage select an inclusive, 1-based page range.
	// Zero leaves the bound open.
	StartPage int
	EndPage   int

	IncludeImages    bool
	IncludeEquations bool
	IncludeStyles    bool

	// SpreadMode emits one section per spread instead of per page.
	SpreadMode bool

	// MergeTextFrames merges two or more body frames of a section into
	// one table.
	MergeTextFrames bool

	// RenderBackground flattens every vector shape of a page into one
	// page-sized background image instead of individual figures.
	RenderBackground bool

	Tolerances Tolerances

	// GridTolerance snaps frame edges closer than this many points onto
	// one grid line when frames are merged. Zero keeps every edge.
	GridTolerance float64

	Images ImageSource
	Shapes ShapeRenderer

	// Colors resolves swatches; nil builds a resolver from the
	// document's colour table.
	Colors *colors.Resolver

	Logger *log.Logger
}

// DefaultConfig returns the configuration used when the caller sets
// nothing: every feature on, per-page sections, merged text frames.
func DefaultConfig() Config {
	return Config{
		IncludeImages:    true,
		IncludeEquations: true,
		IncludeStyles:    true,
		MergeTextFrames:  true,
		Tolerances:       DefaultTolerances(),
	}
}

func (c Config) includes(page int) bool {
	if c.StartPage > 0 && page < c.StartPage {
		return false
	}
	if c.EndPage > 0 && page > c.EndPage {
		return false
	}
	return true
}

// Warning phases.
const (
	PhaseParsing      = "parsing"
	PhaseStyleMapping = "style-mapping"
	PhaseCoordinate   = "coordinate"
	PhaseImage        = "image"
	PhaseEquation     = "equation"
)

// Warning is a recoverable problem with one source element.
type Warning struct {
	Phase   string
	Element string
	Message string
}

func (w Warning) String() string {
	if w.Element == "" {
		return w.Phase + ": " + w.Message
	}
	return w.Phase + ": " + w.Element + ": " + w.Message
}
