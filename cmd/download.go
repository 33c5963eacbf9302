package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/edinet/archive"
	"github.com/s0up4200/edinet/edinet"
	"github.com/s0up4200/edinet/metrics"
)

var (
	concurrency  int
	skipExisting bool
)

// downloadResult is the outcome for one document
type downloadResult struct {
	DocID   string
	Key     string
	Skipped string
	Err     error
}

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download every matching document filed on a date",
	Long: `List the documents filed on a date, apply a filter and download each match
into the archive.

Documents that do not publish the requested format, withdrawn documents and
(by default) documents already in the archive are skipped. Each document is
fetched with its own request; failures are reported at the end and do not
stop the other downloads.`,
	RunE: runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringVar(&dateFlag, "date", "", "filing date YYYY-MM-DD (default today, JST)")
	downloadCmd.Flags().StringVar(&formatFlag, "format", "", "xbrl, pdf, attachments, english or csv (default from config)")
	downloadCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	downloadCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	downloadCmd.Flags().IntVarP(&concurrency, "concurrency", "c", 0, "parallel downloads (default from config)")
	downloadCmd.Flags().BoolVar(&skipExisting, "skip-existing", true, "skip documents already in the archive")
	downloadCmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "list what would be downloaded")
}

func runDownload(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	date, err := parseDateFlag()
	if err != nil {
		return err
	}
	format, err := parseFormatFlag()
	if err != nil {
		return err
	}
	f, err := resolveFilter()
	if err != nil {
		return err
	}

	if !cmd.Flags().Changed("skip-existing") {
		skipExisting = cfg.Download.SkipExisting
	}
	limit := cfg.Download.Concurrency
	if concurrency > 0 {
		limit = concurrency
	}

	resp, err := client.ListDocuments(ctx, date, edinet.ModeWithDocuments)
	if err != nil {
		return err
	}

	docs, err := filters.Apply(ctx, f, resp.Results)
	if err != nil {
		return err
	}

	logger.Info().
		Str("date", edinet.FormatDate(date)).
		Stringer("format", format).
		Int("filed", len(resp.Results)).
		Int("matched", len(docs)).
		Msg("Downloading documents")

	if len(docs) == 0 {
		fmt.Println("No documents matched.")
		return nil
	}

	if dryRun {
		fmt.Printf("[DRY RUN] Would download %d %s:\n", len(docs), plural(len(docs), "document"))
		for _, doc := range docs {
			note := ""
			if reason := skipReason(doc, format); reason != "" {
				note = " (skip: " + reason + ")"
			}
			fmt.Printf("  - %s%s\n", doc.String(), note)
		}
		return nil
	}

	store, err := openArchive(ctx)
	if err != nil {
		return err
	}

	results := downloadDocuments(ctx, store, docs, date, format, limit)
	fmt.Print(NewConsoleFormatter().FormatDownloadSummary(results))

	if failed := countFailed(results); failed > 0 {
		return fmt.Errorf("%d of %d downloads failed", failed, len(results))
	}
	return nil
}

// downloadDocuments fetches docs with at most limit requests in flight.
// Results keep the order of docs.
func downloadDocuments(ctx context.Context, store archive.Store, docs []edinet.Document, date time.Time, format edinet.Format, limit int) []downloadResult {
	results := make([]downloadResult, len(docs))

	g := new(errgroup.Group)
	g.SetLimit(max(limit, 1))

	for i, doc := range docs {
		results[i] = downloadResult{DocID: doc.DocID, Key: archive.Key(date, doc.DocID, format)}

		if reason := skipReason(doc, format); reason != "" {
			results[i].Skipped = reason
			collector.ObserveDocument(format.String(), metrics.ResultSkipped)
			continue
		}

		g.Go(func() error {
			results[i] = downloadOne(ctx, store, results[i], format)
			return nil
		})
	}

	// Failures are per document; the group never returns an error
	_ = g.Wait()

	return results
}

func downloadOne(ctx context.Context, store archive.Store, r downloadResult, format edinet.Format) downloadResult {
	log := logger.With().Str("doc_id", r.DocID).Logger()

	if skipExisting {
		exists, err := store.Exists(ctx, r.Key)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to check archive, downloading anyway")
		} else if exists {
			r.Skipped = "already archived"
			collector.ObserveDocument(format.String(), metrics.ResultSkipped)
			log.Debug().Str("key", r.Key).Msg("Already archived")
			return r
		}
	}

	data, err := client.FetchDocument(ctx, r.DocID, format)
	if err == nil {
		err = store.Put(ctx, r.Key, data, format.ContentType())
	}
	if err != nil {
		r.Err = redactError(err)
		collector.ObserveDocument(format.String(), metrics.ResultFailed)
		log.Error().Err(r.Err).Msg("Download failed")
		return r
	}

	collector.ObserveDocument(format.String(), metrics.ResultDownloaded)
	log.Info().Int("bytes", len(data)).Str("location", store.Location(r.Key)).Msg("Downloaded")
	return r
}

// skipReason explains why doc cannot be fetched in format, or returns ""
func skipReason(doc edinet.Document, format edinet.Format) string {
	if doc.IsWithdrawn() {
		return "withdrawn"
	}
	if !doc.HasFormat(format) {
		return format.String() + " not available"
	}
	return ""
}

func countFailed(results []downloadResult) int {
	var n int
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
