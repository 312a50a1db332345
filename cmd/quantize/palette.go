package main

import (
	"fmt"
	"os"

	"colorquant/internal/colormap"
	"colorquant/internal/imageproc"

	"github.com/spf13/cobra"
)

func newPaletteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "palette COLORMAP",
		Short: "Print the colors of a colormap file with hex, hue and saturation",
		Args:  cobra.ExactArgs(1),
		RunE:  runPalette,
	}
}

func runPalette(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("reading colormap: %w", err)
	}
	defer f.Close()

	centroids, err := colormap.Parse(f)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, s := range imageproc.AnalyzePalette(centroids, nil).Swatches {
		fmt.Fprintf(w, "%4d  %s  %3d %3d %3d  hue=%6.1f sat=%.3f light=%.3f\n",
			s.Index, s.Hex, s.RGB[0], s.RGB[1], s.RGB[2], s.Hue, s.Saturation, s.Lightness)
	}
	return nil
}
