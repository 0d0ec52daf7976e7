package cli

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tsawler/idmlhwpx"
	"github.com/tsawler/idmlhwpx/format"
	"github.com/tsawler/idmlhwpx/geometry"
	"github.com/tsawler/idmlhwpx/hwpx"
	"github.com/tsawler/idmlhwpx/idml"
)

type inspectOpts struct {
	hwpx bool
	text bool
}

func (c *CLI) inspectCommand() *cobra.Command {
	var opts inspectOpts

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Summarize an IDML package or an HWPX document",
		Long:  `inspect lists the pages of an IDML package with their frames, or with --hwpx (or an .hwpx file) the content of a written HWPX document.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := format.HWPX
			if !opts.hwpx {
				var err error
				if kind, err = format.DetectFile(args[0]); err != nil {
					return err
				}
			}
			switch kind {
			case format.IDML:
				return c.inspectIDML(args[0])
			case format.HWPX:
				return c.inspectHWPX(args[0], opts.text)
			default:
				return fmt.Errorf("%s: not an IDML or HWPX package", args[0])
			}
		},
	}

	cmd.Flags().BoolVar(&opts.hwpx, "hwpx", false, "treat the file as an HWPX document")
	cmd.Flags().BoolVar(&opts.text, "text", false, "print the document text (HWPX only)")
	return cmd
}

func (c *CLI) inspectIDML(path string) error {
	conv := idmlhwpx.Open(path).WithLogger(c.Logger)
	defer conv.Close()
	doc, err := conv.Document()
	if err != nil {
		return err
	}

	fmt.Fprintln(c.Out, styleTitle.Render(filepath.Base(path)))
	printKeyValue(c.Out, "Spreads", strconv.Itoa(len(doc.Spreads)))
	printKeyValue(c.Out, "Pages", strconv.Itoa(len(doc.Pages())))
	printKeyValue(c.Out, "Stories", strconv.Itoa(len(doc.Stories)))
	printKeyValue(c.Out, "Styles", fmt.Sprintf("%d paragraph, %d character", len(doc.ParagraphStyles), len(doc.CharacterStyles)))
	printKeyValue(c.Out, "Fonts", strconv.Itoa(len(doc.Fonts)))
	printKeyValue(c.Out, "Swatches", strconv.Itoa(len(doc.Colors)))
	fmt.Fprintln(c.Out, renderTable([]string{"Page", "Size (mm)", "Text", "Images", "Shapes"}, pageRows(doc)))
	return nil
}

// pageRows returns one table row per page of doc.
func pageRows(doc *idml.Document) [][]string {
	var rows [][]string
	for _, s := range doc.Spreads {
		for _, p := range s.Pages {
			rows = append(rows, []string{
				strconv.Itoa(p.Number),
				fmt.Sprintf("%.0f × %.0f", pointsToMM(p.Width()), pointsToMM(p.Height())),
				strconv.Itoa(len(s.TextFramesOnPage(p))),
				strconv.Itoa(len(s.ImageFramesOnPage(p))),
				strconv.Itoa(len(s.ShapesOnPage(p))),
			})
		}
	}
	return rows
}

func (c *CLI) inspectHWPX(path string, withText bool) error {
	sum, err := hwpx.InspectFile(path)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.Out, styleTitle.Render(filepath.Base(path)))
	printKeyValue(c.Out, "Pages", strconv.Itoa(len(sum.PageSizes)))
	printKeyValue(c.Out, "Paragraphs", strconv.Itoa(sum.Paragraphs))
	printStats(c.Out,
		stat{"text boxes", sum.TextBoxes},
		stat{"tables", sum.Tables},
		stat{"cells", sum.Cells},
		stat{"pictures", sum.Pictures},
		stat{"equations", sum.Equations},
	)
	printKeyValue(c.Out, "Fonts", strconv.Itoa(len(sum.Fonts)))
	printKeyValue(c.Out, "Styles", strconv.Itoa(sum.Styles))
	printKeyValue(c.Out, "Images", strconv.Itoa(len(sum.BinItems)))

	rows := make([][]string, len(sum.PageSizes))
	for i, ps := range sum.PageSizes {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%.0f × %.0f", geometry.HwpunitsToMm(ps.Width), geometry.HwpunitsToMm(ps.Height)),
		}
	}
	fmt.Fprintln(c.Out, renderTable([]string{"Page", "Size (mm)"}, rows))

	if withText && sum.Text != "" {
		fmt.Fprintln(c.Out, styleDim.Render(sum.Text))
	}
	return nil
}

func pointsToMM(pt float64) float64 {
	return geometry.HwpunitsToMm(geometry.PointsToHwpunits(pt))
}
