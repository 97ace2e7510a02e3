package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/pfrederiksen/title-odds/internal/config"
	"github.com/pfrederiksen/title-odds/internal/logger"
	"github.com/pfrederiksen/title-odds/internal/sheets"
	"github.com/pfrederiksen/title-odds/internal/sink"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig    string
	flagVerbose   bool
	flagFormat    string
	flagSheet     bool
	flagPrint     bool
	flagWorksheet string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "title-odds",
		Short: "Collect basketball championship forecasts and betting odds",
		Long: `A CLI tool that collects two small datasets about the basketball championship:
win probabilities scraped from a public forecast page, and outright betting
odds from The Odds API. Results are printed or appended to a Google Sheet.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", config.DefaultPath, "Path to the YAML config file")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(newStandingsCmd(), newOddsCmd())

	return cmd
}

// loadConfig reads settings and installs the logger they describe
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := logger.ParseLevel(cfg.Log.Level)
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, logger.Format(strings.ToLower(cfg.Log.Format)), os.Stderr))

	return cfg, nil
}

// openWorksheet resolves the named worksheet of the configured spreadsheet.
// Tests replace it to avoid talking to Google.
var openWorksheet = func(ctx context.Context, cfg *config.Config, name string) (sink.Appender, error) {
	creds, err := cfg.SheetCredentials()
	if err != nil {
		return nil, err
	}

	client, err := sheets.NewClient(ctx, creds, cfg.Sheets.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("initializing sheets client: %w", err)
	}

	spreadsheet, err := client.Open(ctx, cfg.Sheets.SpreadsheetKey)
	if err != nil {
		return nil, err
	}

	ws, err := spreadsheet.Worksheet(name)
	if err != nil {
		return nil, err
	}
	return ws, nil
}

// newSheetSink opens the worksheet and wraps it as a sink
func newSheetSink(ctx context.Context, cfg *config.Config, name string) (sink.Sink, error) {
	var ws sink.Appender
	err := logger.Time("sheet.open", func() error {
		var err error
		ws, err = openWorksheet(ctx, cfg, name)
		return err
	})
	if err != nil {
		return nil, err
	}
	return sink.NewSheet(ws), nil
}

func logMetrics() {
	logger.Debug("Run metrics", logger.Fields{"metrics": logger.GetMetricsSnapshot()})
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(ExitError)
	}
}
