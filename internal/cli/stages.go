package cli

import (
	"fmt"
	"image"

	"github.com/spf13/cobra"

	"github.com/ironsheep/hough-lines/internal/detection"
	"github.com/ironsheep/hough-lines/internal/imaging"
	"github.com/ironsheep/hough-lines/internal/logger"
)

func (a *app) accumulatorCmd() *cobra.Command {
	var scale int
	cmd := &cobra.Command{
		Use:   "accumulator IN OUT",
		Short: "Write the normalized accumulator of IN as a grayscale PNG",
		Long: `Write the normalized accumulator of IN as a grayscale PNG.

The output is angle-bins pixels wide and distance-bins pixels high. The
brightest cell holds the most votes.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, edges, err := a.prepare(args[0])
			if err != nil {
				return err
			}
			res, err := p.Accumulate(edges)
			if err != nil {
				return err
			}
			out := scaled(imaging.GridToGray(res.Grid), scale)
			if err := imaging.SavePNG(out, args[1]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "accumulator %dx%d: max %d votes, %d non-zero cells, %d dropped\n",
				res.AngleBins, res.DistanceBins, res.Stats.MaxVotes, res.Stats.NonZeroCells, res.Stats.Dropped)
			return nil
		},
	}
	cmd.Flags().IntVar(&scale, "scale", 1, "integer magnification of the output")
	return cmd
}

func (a *app) peaksCmd() *cobra.Command {
	var scale int
	cmd := &cobra.Command{
		Use:   "peaks IN OUT",
		Short: "Write the accumulator peaks of IN as a grayscale PNG",
		Long: `Write the accumulator peaks of IN as a grayscale PNG.

Cells that fail the threshold or have a brighter neighbor inside the
suppression window are black; surviving peaks keep their intensity.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, edges, err := a.prepare(args[0])
			if err != nil {
				return err
			}
			res, err := p.Peaks(edges)
			if err != nil {
				return err
			}
			out := scaled(imaging.GridToGray(res.PeakSet.Grid), scale)
			if err := imaging.SavePNG(out, args[1]); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%d peaks\n", res.Count)
			for _, pk := range res.Peaks {
				fmt.Fprintf(w, "  d=%d a=%d value=%d\n", pk.DistanceIndex, pk.AngleIndex, pk.Value)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&scale, "scale", 1, "integer magnification of the output")
	return cmd
}

func (a *app) linesCmd() *cobra.Command {
	var reportPath string
	cmd := &cobra.Command{
		Use:   "lines IN OUT",
		Short: "Draw the lines detected in IN over a copy of IN",
		Long: `Draw the lines detected in IN over a copy of IN.

Each line runs between the two points where it leaves the image and is
drawn in line-color. The normal from the image center to the line is drawn
in normal-color; pass an empty normal-color to skip it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, outPath := args[0], args[1]

			p, edges, err := a.prepare(in)
			if err != nil {
				return err
			}
			res, err := p.DetectLines(edges)
			if err != nil {
				return err
			}

			src, err := a.cache.Load(in)
			if err != nil {
				return err
			}
			style := imaging.OverlayStyle{
				LineColor:   a.cfg.LineColor,
				NormalColor: a.cfg.NormalColor,
				LineWidth:   a.cfg.LineWidth,
			}
			out, err := imaging.Overlay(src, res.Segments, style)
			if err != nil {
				return err
			}
			if err := imaging.SavePNG(out, outPath); err != nil {
				return err
			}

			if reportPath != "" {
				report := &Report{
					Source: in,
					Width:  edges.Width,
					Height: edges.Height,
					Config: a.cfg,
					Result: res,
				}
				if err := WriteReport(report, reportPath); err != nil {
					return err
				}
				logger.WithField("file", reportPath).Info("report written")
			}

			printLines(cmd, res)
			return nil
		},
	}
	cmd.Flags().StringVar(&reportPath, "report", "", "also write the detected lines as YAML to this file")
	cmd.Flags().Int("max-lines", 0, "keep only the strongest N lines (0 = all)")
	a.v.BindPFlag("max_lines", cmd.Flags().Lookup("max-lines"))
	return cmd
}

func (a *app) emptyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "empty IN OUT",
		Short: "Write an all-black image of the accumulator size",
		Long: `Write an all-black image of the accumulator size.

IN is loaded and checked but not transformed. The output is a blank canvas
with the same geometry as the accumulator command would produce.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.cache.Load(args[0]); err != nil {
				return err
			}
			out, err := imaging.Empty(a.cfg.AngleBins, a.cfg.DistanceBins)
			if err != nil {
				return err
			}
			return imaging.SavePNG(out, args[1])
		},
	}
}

func scaled(img *image.Gray, scale int) image.Image {
	if scale <= 1 {
		return img
	}
	b := img.Bounds()
	return imaging.ScaleGray(img, b.Dx()*scale, b.Dy()*scale)
}

func printLines(cmd *cobra.Command, res *detection.LinesResult) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%d lines", res.Count)
	if res.Truncated {
		fmt.Fprint(w, " (truncated)")
	}
	fmt.Fprintln(w)
	for _, l := range res.Lines {
		fmt.Fprintf(w, "  r=%.2f phi=%.1f° (%.2f,%.2f)-(%.2f,%.2f) votes=%d\n",
			l.R, l.AngleDegrees, l.Start.X, l.Start.Y, l.End.X, l.End.Y, l.Votes)
	}
}
