package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/idmlhwpx"
)

// convertOpts holds the command-line flags shared by convert and preview.
// Flags override values read from --config only when given.
type convertOpts struct {
	config      string
	output      string
	pages       string
	noImages    bool
	noEquations bool
	noStyles    bool
	noMerge     bool
	spread      bool
	background  bool
	links       string
	imageDPI    int
	vectorDPI   int
	posTol      float64
	sizeTol     float64
	gridTol     float64
}

func (o *convertOpts) register(cmd *cobra.Command) {
	def := idmlhwpx.DefaultOptions()
	f := cmd.Flags()
	f.StringVarP(&o.output, "output", "o", "", "output file (default: input name with the new extension)")
	f.StringVar(&o.config, "config", "", "TOML options file")
	f.StringVarP(&o.pages, "pages", "p", "", "page range: 3, 3-5, 3- or -5")
	f.BoolVar(&o.noImages, "no-images", false, "skip images")
	f.BoolVar(&o.noEquations, "no-equations", false, "keep equation markup as text")
	f.BoolVar(&o.noStyles, "no-styles", false, "do not create named styles")
	f.BoolVar(&o.noMerge, "no-merge", false, "keep body text frames separate instead of merging them into a table")
	f.BoolVar(&o.spread, "spread", false, "one output page per spread")
	f.BoolVar(&o.background, "background", false, "flatten vector shapes into one background image per page")
	f.StringVar(&o.links, "links", "", "directory searched first for linked images")
	f.IntVar(&o.imageDPI, "image-dpi", def.ImageDPI, "resolution of placed images")
	f.IntVar(&o.vectorDPI, "vector-dpi", def.VectorDPI, "resolution of rasterized vector shapes")
	f.Float64Var(&o.posTol, "position-tolerance", def.PositionTolerance, "duplicate frame position tolerance in points")
	f.Float64Var(&o.sizeTol, "size-tolerance", def.SizeTolerance, "duplicate frame size tolerance in points")
	f.Float64Var(&o.gridTol, "grid-tolerance", def.GridTolerance, "snap merged frame edges closer than this many points")
}

// options builds the conversion options: defaults, then --config, then
// every flag set on the command line.
func (o *convertOpts) options(cmd *cobra.Command) (idmlhwpx.ConvertOptions, error) {
	opts := idmlhwpx.DefaultOptions()
	if o.config != "" {
		loaded, err := idmlhwpx.LoadOptions(o.config)
		if err != nil {
			return opts, err
		}
		opts = loaded
	}

	changed := cmd.Flags().Changed
	if changed("pages") {
		start, end, err := parsePageRange(o.pages)
		if err != nil {
			return opts, err
		}
		opts.StartPage, opts.EndPage = start, end
	}
	if changed("no-images") {
		opts.IncludeImages = !o.noImages
	}
	if changed("no-equations") {
		opts.IncludeEquations = !o.noEquations
	}
	if changed("no-styles") {
		opts.IncludeStyles = !o.noStyles
	}
	if changed("no-merge") {
		opts.MergeTextFrames = !o.noMerge
	}
	if changed("spread") {
		opts.SpreadBasedConversion = o.spread
	}
	if changed("background") {
		opts.RenderBackground = o.background
	}
	if changed("links") {
		opts.LinksDirectory = o.links
	}
	if changed("image-dpi") {
		opts.ImageDPI = o.imageDPI
	}
	if changed("vector-dpi") {
		opts.VectorDPI = o.vectorDPI
	}
	if changed("position-tolerance") {
		opts.PositionTolerance = o.posTol
	}
	if changed("size-tolerance") {
		opts.SizeTolerance = o.sizeTol
	}
	if changed("grid-tolerance") {
		opts.GridTolerance = o.gridTol
	}
	return opts, opts.Validate()
}

// parsePageRange parses "3", "3-5", "3-" and "-5". Zero leaves a bound open.
func parsePageRange(s string) (int, int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, nil
	}
	bound := func(v string) (int, error) {
		v = strings.TrimSpace(v)
		if v == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return 0, fmt.Errorf("invalid page %q in range %q", v, s)
		}
		return n, nil
	}

	lo, hi, found := strings.Cut(s, "-")
	start, err := bound(lo)
	if err != nil {
		return 0, 0, err
	}
	if !found {
		return start, start, nil
	}
	end, err := bound(hi)
	if err != nil {
		return 0, 0, err
	}
	if start > 0 && end > 0 && start > end {
		return 0, 0, fmt.Errorf("invalid page range %q", s)
	}
	return start, end, nil
}

// outputPath returns explicit, or input with its extension replaced by ext.
func outputPath(input, explicit, ext string) string {
	if explicit != "" {
		return explicit
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ext
}

func (c *CLI) convertCommand() *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   "convert <file.idml>",
		Short: "Convert an IDML package to HWPX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := opts.options(cmd)
			if err != nil {
				return err
			}
			return c.runConvert(cmd.Context(), args[0], outputPath(args[0], opts.output, ".hwpx"), o)
		},
	}
	opts.register(cmd)
	return cmd
}

func (c *CLI) runConvert(ctx context.Context, input, output string, opts idmlhwpx.ConvertOptions) error {
	prog := newProgress(c.Logger)
	c.Logger.Debug("converting", "input", input, "output", output)

	res, warnings, err := idmlhwpx.Open(input).
		WithOptions(opts).
		WithLogger(c.Logger).
		ConvertToFile(ctx, output)
	if err != nil {
		printError(c.Out, "conversion failed")
		printWarnings(c.Out, warnings)
		return err
	}
	prog.done("conversion finished")

	printSuccess(c.Out, "Converted %s", filepath.Base(input))
	printFile(c.Out, output)
	printStats(c.Out,
		stat{"pages", res.Stats.Pages},
		stat{"text frames", res.Stats.TextFrames},
		stat{"tables", res.Stats.Tables},
		stat{"figures", res.Stats.Figures},
		stat{"images", res.Stats.Images},
		stat{"equations", res.Stats.Equations},
		stat{"styles", res.Stats.Styles},
	)
	printWarnings(c.Out, warnings)
	return nil
}
