package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/s0up4200/edinet/edinet"
)

var (
	withDocs    bool
	jsonOutput  bool
	showDetails bool
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the documents filed on a date",
	Long: `List the filings submitted to EDINET on a date.

Without --with-docs only the metadata (document count, processing time) is
requested. Filters operate on documents, so --filter and --preset imply
--with-docs.

Example:
  edinet list --date 2023-06-30 --filter 'docType("120") and listed()'`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&dateFlag, "date", "", "filing date YYYY-MM-DD (default today, JST)")
	listCmd.Flags().BoolVar(&withDocs, "with-docs", false, "include the document list")
	listCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	listCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	listCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the response as JSON")
	listCmd.Flags().BoolVar(&showDetails, "details", false, "show codes and dates for each document")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	date, err := parseDateFlag()
	if err != nil {
		return err
	}

	f, err := resolveFilter()
	if err != nil {
		return err
	}

	mode := edinet.ModeMetadataOnly
	if withDocs || f != nil {
		mode = edinet.ModeWithDocuments
	}

	logger.Info().
		Str("date", edinet.FormatDate(date)).
		Stringer("mode", mode).
		Msg("Listing documents")

	resp, err := client.ListDocuments(ctx, date, mode)
	if err != nil {
		return err
	}

	if f != nil {
		resp.Results, err = filters.Apply(ctx, f, resp.Results)
		if err != nil {
			return err
		}
		logger.Debug().Str("filter", f.Expression()).Int("matched", len(resp.Results)).Msg("Applied filter")
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	formatter := NewConsoleFormatter()
	fmt.Print(formatter.FormatMetadata(resp.Metadata))
	if mode == edinet.ModeWithDocuments {
		fmt.Println(formatter.FormatDocumentList(resp.Results, FormatOptions{ShowDetails: showDetails}))
	}

	return nil
}
