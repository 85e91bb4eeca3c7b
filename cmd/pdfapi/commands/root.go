// Package commands implements the pdfapi CLI.
package commands

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "pdfapi",
	Short: "PDF parsing and rasterization service",
	Long: `pdfapi extracts text and tables from PDF documents as Markdown and
rasterizes PDF pages to PNG images. It runs as an HTTP service or as a
one-shot command line tool.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
