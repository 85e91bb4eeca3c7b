package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sunyuchen88/pdfapi/internal/observability"
	"github.com/sunyuchen88/pdfapi/internal/parse"
)

var parseJSON bool

var parseCmd = &cobra.Command{
	Use:   "parse <file.pdf|file.zip>",
	Short: "Extract Markdown from a PDF or ZIP of PDFs",
	Long: `Parse extracts text and tables from a PDF document and prints the
result as Markdown. Given a ZIP archive, every PDF entry is parsed and
the results are printed as a JSON array.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "print the result as JSON")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	logger := observability.NopLogger()
	parser := parse.NewParser(logger)

	if strings.HasSuffix(strings.ToLower(args[0]), ".zip") {
		results, err := parser.ParseArchive(data)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	result, err := parser.ParsePDF(data, args[0])
	if err != nil {
		return err
	}

	if parseJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Content)
	return nil
}
