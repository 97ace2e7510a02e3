package cli

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/title-odds/internal/logger"
	"github.com/pfrederiksen/title-odds/internal/odds"
	"github.com/pfrederiksen/title-odds/internal/sink"
	"github.com/spf13/cobra"
)

func newOddsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "odds",
		Short: "Append the latest championship outright odds to a worksheet",
		Long: `Downloads championship outright odds from The Odds API, keeps the configured
bookmaker's market (FanDuel outrights by default) and appends one row per team
(team, price, probability, updated_at) to the configured worksheet.
With --print the rows are printed instead.`,
		Args: cobra.NoArgs,
		RunE: runOdds,
	}

	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format when printing: text, csv, markdown or json")
	cmd.Flags().BoolVar(&flagPrint, "print", false, "Print rows instead of appending them to the spreadsheet")
	cmd.Flags().StringVar(&flagWorksheet, "worksheet", "", "Worksheet name (defaults to odds.worksheet from config)")

	return cmd
}

// runOdds is the odds pipeline: fetch, extract, sink
func runOdds(cmd *cobra.Command, args []string) error {
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
		worksheet = cfg.Odds.Worksheet
	}

	if err := cfg.ValidateOdds(); err != nil {
		return err
	}
	if !flagPrint {
		if err := cfg.ValidateSheet(worksheet); err != nil {
			return err
		}
	}

	client := odds.NewClient(cfg.Odds.APIKey, cfg.Odds.BaseURL, cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	query := odds.Query{
		Sport:      cfg.Odds.Sport,
		Markets:    cfg.Odds.Markets,
		Bookmakers: cfg.Odds.Bookmakers,
		Bookmaker:  cfg.Odds.Bookmaker,
		Market:     cfg.Odds.Market,
	}

	logger.Debug("Fetching odds", logger.Fields{
		"sport":     query.Sport,
		"bookmaker": query.Bookmaker,
		"market":    query.Market,
	})

	var records []odds.Record
	err = logger.Time("odds.fetch", func() error {
		var err error
		records, err = client.Current(ctx, query)
		return err
	})
	if err != nil {
		return fmt.Errorf("fetching odds: %w", err)
	}

	logger.Info("Fetched odds", logger.Fields{"teams": len(records), "bookmaker": query.Bookmaker})

	var out sink.Sink = sink.NewPrinter(cmd.OutOrStdout(), format)
	if !flagPrint {
		out, err = newSheetSink(ctx, cfg, worksheet)
		if err != nil {
			return err
		}
	}

	if err := out.Write(ctx, sink.OddsTable(records)); err != nil {
		return fmt.Errorf("writing odds: %w", err)
	}

	logMetrics()
	return nil
}
