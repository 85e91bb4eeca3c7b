package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sunyuchen88/pdfapi/internal/observability"
	"github.com/sunyuchen88/pdfapi/internal/raster"
)

var rasterizeOut string

var rasterizeCmd = &cobra.Command{
	Use:   "rasterize <file.pdf>",
	Short: "Render each page of a PDF as a PNG image",
	Args:  cobra.ExactArgs(1),
	RunE:  runRasterize,
}

func init() {
	rasterizeCmd.Flags().StringVarP(&rasterizeOut, "out", "o", "png_output", "directory for generated PNG files")
	rootCmd.AddCommand(rasterizeCmd)
}

func runRasterize(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	logger := observability.NopLogger()
	store, err := raster.NewStore(rasterizeOut, "")
	if err != nil {
		return err
	}

	urls, err := raster.NewRasterizer(store, logger).RasterizePDF(data)
	if err != nil {
		return err
	}

	for _, u := range urls {
		fmt.Fprintln(cmd.OutOrStdout(), u)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d page(s) to %s\n", len(urls), rasterizeOut)
	return nil
}
