package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/s0up4200/edinet/archive"
	"github.com/s0up4200/edinet/config"
	"github.com/s0up4200/edinet/edinet"
	"github.com/s0up4200/edinet/filter"
	"github.com/s0up4200/edinet/metrics"
)

var (
	cfgFile   string
	cfg       *config.Config
	logger    zerolog.Logger
	client    edinet.API
	filters   *filter.Manager
	collector *metrics.Collector
	registry  *prometheus.Registry

	// Command flags
	dateFlag   string
	filterExpr string
	preset     string
	formatFlag string
	dryRun     bool
)

// skipInit marks commands that run without configuration
const skipInit = "skip-init"

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "edinet",
	Short: "Browse and download filings from the EDINET disclosure API",
	Long: `edinet lists the documents filed on the Japanese FSA's EDINET system for a
given day and downloads them in any of the published formats (XBRL, PDF,
attachments, English, CSV).

The API key is read from edinet.api_key in the config file or from the
EDINET_API_KEY environment variable.`,
	PersistentPreRunE: initializeApp,
	SilenceErrors:     true,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if werr := writeMetrics(); werr != nil {
		logger.Warn().Err(werr).Msg("Failed to write metrics")
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", redactError(err).Error())
		if errors.Is(err, edinet.ErrInvalidAPIKey) {
			fmt.Fprintln(os.Stderr, "Hint: check edinet.api_key in your config or the EDINET_API_KEY environment variable")
		}
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

// initializeApp loads configuration and creates the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[skipInit] == "true" {
		return nil
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	registry = prometheus.NewRegistry()
	collector, err = metrics.NewCollector(registry)
	if err != nil {
		return err
	}

	client, err = edinet.NewClient(cfg.Edinet.APIKey,
		edinet.WithBaseURL(cfg.Edinet.BaseURL),
		edinet.WithHTTPClient(collector.InstrumentClient(&http.Client{Timeout: cfg.Edinet.Timeout})),
		edinet.WithUserAgent("edinet/"+version),
		edinet.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create EDINET client: %w", err)
	}

	filters = filter.NewManager()
	if err := filters.RegisterFilters(cfg.Filter.Presets); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	logger.Debug().
		Str("base_url", cfg.Edinet.BaseURL).
		Strs("presets", filters.ListFilters()).
		Msg("Initialized")

	return nil
}

// writeMetrics writes the metrics textfile when configured. It runs after
// failed commands too.
func writeMetrics() error {
	if cfg == nil || registry == nil || cfg.Metrics.Textfile == "" {
		return nil
	}
	if err := metrics.WriteTextfile(cfg.Metrics.Textfile, registry); err != nil {
		return err
	}
	logger.Debug().Str("path", cfg.Metrics.Textfile).Msg("Wrote metrics")
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(os.Stderr),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// openArchive creates the configured document store
func openArchive(ctx context.Context) (archive.Store, error) {
	switch cfg.Archive.Backend {
	case "minio":
		return archive.NewMinIO(ctx, cfg.Archive.MinIO)
	default:
		return archive.NewLocal(afero.NewOsFs(), cfg.Archive.Dir)
	}
}

// resolveFilter picks the --filter expression, then --preset, then the
// configured default. A nil filter matches everything.
func resolveFilter() (filter.CompiledFilter, error) {
	expression := filterExpr
	if expression == "" && preset == "" && cfg != nil {
		expression = cfg.Filter.Default
	}

	f, err := filters.Resolve(expression, preset)
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}
	return f, nil
}

// parseDateFlag parses --date, defaulting to today in JST
func parseDateFlag() (time.Time, error) {
	if dateFlag == "" {
		return edinet.ParseDate(edinet.FormatDate(time.Now().In(jst)))
	}
	return edinet.ParseDate(dateFlag)
}

var jst = time.FixedZone("JST", 9*60*60)

// redactedError hides a secret in the message of the wrapped error
type redactedError struct {
	err    error
	secret string
}

func (e *redactedError) Error() string {
	return redactSecret(e.err.Error(), e.secret)
}

func (e *redactedError) Unwrap() error {
	return e.err
}

// redactError hides the configured API key. Transport errors carry the
// request URL, and with it the Subscription-Key parameter.
func redactError(err error) error {
	if err == nil || cfg == nil || cfg.Edinet.APIKey == "" {
		return err
	}
	return &redactedError{err: err, secret: cfg.Edinet.APIKey}
}

func redactSecret(msg, secret string) string {
	if secret == "" {
		return msg
	}
	msg = strings.ReplaceAll(msg, secret, "[REDACTED]")
	if escaped := url.QueryEscape(secret); escaped != secret {
		msg = strings.ReplaceAll(msg, escaped, "[REDACTED]")
	}
	return msg
}
