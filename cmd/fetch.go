package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/s0up4200/edinet/archive"
	"github.com/s0up4200/edinet/edinet"
	"github.com/s0up4200/edinet/metrics"
)

var outPath string

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch <docID>",
	Short: "Download one document",
	Long: `Download one document in the requested format.

The file is stored in the configured archive under the filing date given
by --date. Use --out to write to a file instead, or --out - for stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVar(&formatFlag, "format", "", "xbrl, pdf, attachments, english or csv (default from config)")
	fetchCmd.Flags().StringVar(&dateFlag, "date", "", "filing date used for the archive key (default today, JST)")
	fetchCmd.Flags().StringVarP(&outPath, "out", "o", "", "write to this file, or - for stdout")
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	docID := args[0]

	format, err := parseFormatFlag()
	if err != nil {
		return err
	}

	logger.Info().Str("doc_id", docID).Stringer("format", format).Msg("Fetching document")

	data, err := client.FetchDocument(ctx, docID, format)
	if err != nil {
		return err
	}

	switch outPath {
	case "-":
		_, err := os.Stdout.Write(data)
		return err
	case "":
	default:
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
		fmt.Fprintf(os.Stderr, "✓ Wrote %d bytes to %s\n", len(data), outPath)
		return nil
	}

	date, err := parseDateFlag()
	if err != nil {
		return err
	}

	store, err := openArchive(ctx)
	if err != nil {
		return err
	}

	key := archive.Key(date, docID, format)
	if err := store.Put(ctx, key, data, format.ContentType()); err != nil {
		return err
	}
	collector.ObserveDocument(format.String(), metrics.ResultDownloaded)

	fmt.Printf("✓ Stored %d bytes at %s\n", len(data), store.Location(key))
	return nil
}

// parseFormatFlag parses --format, falling back to download.format
func parseFormatFlag() (edinet.Format, error) {
	name := formatFlag
	if name == "" {
		name = cfg.Download.Format
	}
	return edinet.ParseFormat(name)
}
