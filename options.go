package idmlhwpx

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/tsawler/idmlhwpx/normalize"
)

// ConvertOptions holds configuration for a conversion. The zero value is
// not useful; start from DefaultOptions.
type ConvertOptions struct {
	// Page selection, 1-indexed and inclusive. Zero leaves a bound open.
	StartPage int `toml:"start_page"`
	EndPage   int `toml:"end_page"`

	IncludeImages    bool `toml:"include_images"`
	IncludeEquations bool `toml:"include_equations"`
	IncludeStyles    bool `toml:"include_styles"`

	// ImageDPI is the resolution linked raster images are downsampled to.
	ImageDPI int `toml:"image_dpi"`
	// VectorDPI is the resolution vector shapes are rasterized at.
	VectorDPI int `toml:"vector_dpi"`

	// SpreadBasedConversion emits one page per spread.
	SpreadBasedConversion bool `toml:"spread_based"`

	// LinksDirectory is searched first for linked images.
	LinksDirectory string `toml:"links_directory"`

	MergeTextFrames  bool `toml:"merge_text_frames"`
	RenderBackground bool `toml:"render_background"`

	// Duplicate frame tolerances in points.
	PositionTolerance float64 `toml:"position_tolerance"`
	SizeTolerance     float64 `toml:"size_tolerance"`

	// GridTolerance snaps nearly aligned frame edges together when frames
	// are merged, in points.
	GridTolerance float64 `toml:"grid_tolerance"`
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() ConvertOptions {
	tol := normalize.DefaultTolerances()
	return ConvertOptions{
		IncludeImages:     true,
		IncludeEquations:  true,
		IncludeStyles:     true,
		ImageDPI:          72,
		VectorDPI:         300,
		MergeTextFrames:   true,
		PositionTolerance: tol.Position,
		SizeTolerance:     tol.Size,
	}
}

// clone creates a copy of ConvertOptions.
func (o ConvertOptions) clone() ConvertOptions {
	return o
}

// Validate reports option values that cannot be used.
func (o ConvertOptions) Validate() error {
	switch {
	case o.StartPage < 0 || o.EndPage < 0:
		return fmt.Errorf("page numbers must not be negative")
	case o.StartPage > 0 && o.EndPage > 0 && o.StartPage > o.EndPage:
		return fmt.Errorf("start page %d is after end page %d", o.StartPage, o.EndPage)
	case o.ImageDPI <= 0 || o.VectorDPI <= 0:
		return fmt.Errorf("DPI must be positive (image %d, vector %d)", o.ImageDPI, o.VectorDPI)
	case o.PositionTolerance < 0 || o.SizeTolerance < 0 || o.GridTolerance < 0:
		return fmt.Errorf("tolerances must not be negative")
	}
	return nil
}

// normalizeConfig maps the options onto a normalizer configuration.
func (o ConvertOptions) normalizeConfig() normalize.Config {
	cfg := normalize.DefaultConfig()
	cfg.StartPage = o.StartPage
	cfg.EndPage = o.EndPage
	cfg.IncludeImages = o.IncludeImages
	cfg.IncludeEquations = o.IncludeEquations
	cfg.IncludeStyles = o.IncludeStyles
	cfg.SpreadMode = o.SpreadBasedConversion
	cfg.MergeTextFrames = o.MergeTextFrames
	cfg.RenderBackground = o.RenderBackground
	cfg.Tolerances = normalize.Tolerances{Position: o.PositionTolerance, Size: o.SizeTolerance}
	cfg.GridTolerance = o.GridTolerance
	return cfg
}

// LoadOptions reads options from a TOML file. Keys missing from the file
// keep their DefaultOptions value; unknown keys are an error.
func LoadOptions(path string) (ConvertOptions, error) {
	opts := DefaultOptions()
	md, err := toml.DecodeFile(path, &opts)
	if err != nil {
		return ConvertOptions{}, fmt.Errorf("failed to read options %s: %w", path, err)
	}
	return opts, checkUndecoded(path, md)
}

// ParseOptions reads options from TOML text.
func ParseOptions(data string) (ConvertOptions, error) {
	opts := DefaultOptions()
	md, err := toml.Decode(data, &opts)
	if err != nil {
		return ConvertOptions{}, fmt.Errorf("failed to parse options: %w", err)
	}
	return opts, checkUndecoded("options", md)
}

func checkUndecoded(source string, md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	sort.Strings(names)
	return fmt.Errorf("%s: unknown keys: %s", source, strings.Join(names, ", "))
}
