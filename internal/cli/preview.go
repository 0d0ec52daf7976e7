package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tsawler/idmlhwpx"
	"github.com/tsawler/idmlhwpx/preview"
)

type previewOpts struct {
	convertOpts
	scale    float64
	noImages bool
	outlines bool
}

func (c *CLI) previewCommand() *cobra.Command {
	var opts previewOpts

	cmd := &cobra.Command{
		Use:   "preview <file.idml>",
		Short: "Render the converted layout as HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := opts.options(cmd)
			if err != nil {
				return err
			}
			out := outputPath(args[0], opts.output, ".html")
			popts := preview.Options{
				Scale:       opts.scale * preview.DefaultScale,
				EmbedImages: !opts.noImages,
				Outlines:    opts.outlines,
			}
			return c.runPreview(cmd.Context(), args[0], out, o, popts)
		},
	}

	opts.register(cmd)
	cmd.Flags().Float64Var(&opts.scale, "zoom", 1, "zoom factor, 1 is 96 dpi")
	cmd.Flags().BoolVar(&opts.noImages, "no-embed", false, "draw image placeholders instead of embedding images")
	cmd.Flags().BoolVar(&opts.outlines, "outlines", false, "outline every block")
	return cmd
}

func (c *CLI) runPreview(ctx context.Context, input, output string, opts idmlhwpx.ConvertOptions, popts preview.Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	prog := newProgress(c.Logger)

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	warnings, err := idmlhwpx.Open(input).WithOptions(opts).WithLogger(c.Logger).Preview(f, popts)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(output)
		printError(c.Out, "preview failed")
		return err
	}
	prog.done("preview written")

	printSuccess(c.Out, "Rendered %s", filepath.Base(input))
	printFile(c.Out, output)
	printWarnings(c.Out, warnings)
	return nil
}
