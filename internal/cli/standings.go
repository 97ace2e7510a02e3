package cli

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/title-odds/internal/config"
	"github.com/pfrederiksen/title-odds/internal/logger"
	"github.com/pfrederiksen/title-odds/internal/sink"
	"github.com/pfrederiksen/title-odds/internal/standings"
	"github.com/spf13/cobra"
)

func newStandingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Scrape championship win probabilities",
		Long: `Fetches the standings page, reads each team's championship win probability
and prints the rows. With --sheet the rows are appended to a worksheet instead.`,
		Args: cobra.NoArgs,
		RunE: runStandings,
	}

	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text, csv, markdown or json")
	cmd.Flags().BoolVar(&flagSheet, "sheet", false, "Append rows to the spreadsheet instead of printing")
	cmd.Flags().StringVar(&flagWorksheet, "worksheet", "", "Worksheet name (defaults to standings.worksheet from config)")

	return cmd
}

func newFetcher(cfg *config.Config) (standings.Fetcher, error) {
	switch strings.ToLower(cfg.Standings.Fetcher) {
	case "", "http":
		return standings.NewHTTPFetcher(cfg.HTTP.UserAgent, cfg.HTTP.Timeout), nil
	case "browser":
		return standings.NewBrowserFetcher(cfg.HTTP.UserAgent, cfg.HTTP.Timeout), nil
	default:
		return nil, fmt.Errorf("invalid standings fetcher: %s (must be 'http' or 'browser')", cfg.Standings.Fetcher)
	}
}

// runStandings is the standings pipeline: fetch, extract, sink
func runStandings(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format, err := sink.ParseFormat(strings.ToLower(flagFormat))
	if err != nil {
		return err
	}

	worksheet := flagWorksheet
	if worksheet == "" {
		worksheet = cfg.Standings.Worksheet
	}
	if flagSheet {
		if err := cfg.ValidateSheet(worksheet); err != nil {
			return err
		}
	}

	fetcher, err := newFetcher(cfg)
	if err != nil {
		return err
	}
	scraper := standings.New(standings.WithURL(cfg.Standings.URL), standings.WithFetcher(fetcher))

	logger.Debug("Fetching standings", logger.Fields{"url": scraper.URL(), "fetcher": cfg.Standings.Fetcher})

	var records []standings.Record
	err = logger.Time("standings.fetch", func() error {
		var err error
		records, err = scraper.FetchStandings(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("fetching standings: %w", err)
	}

	missing := 0
	for _, r := range records {
		if !r.WinProbability.Valid {
			missing++
		}
	}
	logger.Info("Fetched standings", logger.Fields{"teams": len(records), "missing_probabilities": missing})

	var out sink.Sink = sink.NewPrinter(cmd.OutOrStdout(), format)
	if flagSheet {
		out, err = newSheetSink(ctx, cfg, worksheet)
		if err != nil {
			return err
		}
	}

	if err := out.Write(ctx, sink.StandingsTable(records)); err != nil {
		return fmt.Errorf("writing standings: %w", err)
	}

	logMetrics()
	return nil
}
