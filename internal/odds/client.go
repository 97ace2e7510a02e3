package odds

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pfrederiksen/title-odds/internal/logger"
)

const (
	BaseURL = "https://api.the-odds-api.com"

	SportNBAChampionship = "basketball_nba_championship_winner"
	BookmakerFanDuel     = "fanduel"
	MarketOutrights      = "outrights"

	headerRequestsRemaining = "x-requests-remaining"
	headerRequestsUsed      = "x-requests-used"
)

// Query selects what to download and which bookmaker/market to keep
type Query struct {
	Sport      string
	Markets    []string
	Bookmakers []string

	Bookmaker string
	Market    string
}

// ChampionshipQuery is FanDuel's NBA championship outrights
func ChampionshipQuery() Query {
	return Query{
		Sport:      SportNBAChampionship,
		Markets:    []string{MarketOutrights},
		Bookmakers: []string{BookmakerFanDuel},
		Bookmaker:  BookmakerFanDuel,
		Market:     MarketOutrights,
	}
}

// Client is a client for The Odds API
type Client struct {
	apiKey string
	http   *resty.Client
	now    func() time.Time
}

// NewClient creates a new Odds API client. An empty baseURL means BaseURL.
func NewClient(apiKey, baseURL, userAgent string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetLogger(quietLogger{})
	if userAgent != "" {
		rc.SetHeader("User-Agent", userAgent)
	}
	return &Client{
		apiKey: apiKey,
		http:   rc,
		now:    time.Now,
	}
}

// SetClock replaces the source of UpdatedAt timestamps
func (c *Client) SetClock(now func() time.Time) {
	c.now = now
}

// GetOdds downloads the events for q.Sport
func (c *Client) GetOdds(ctx context.Context, q Query) ([]Event, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("sport", q.Sport).
		SetQueryParams(map[string]string{
			"markets":    strings.Join(q.Markets, ","),
			"bookmakers": strings.Join(q.Bookmakers, ","),
			"apiKey":     c.apiKey,
		}).
		Get("/v4/sports/{sport}/odds/")
	if err != nil {
		// url.Error carries the full URL, which includes the API key
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("requesting odds: %w", err)
	}

	logQuota(resp)

	if !resp.IsSuccess() {
		// Don't include response body in error to prevent information leakage
		return nil, fmt.Errorf("odds API error (status %d)", resp.StatusCode())
	}

	var events []Event
	if err := json.Unmarshal(resp.Body(), &events); err != nil {
		return nil, fmt.Errorf("decoding odds response: %w", err)
	}

	return events, nil
}

func logQuota(resp *resty.Response) {
	remaining := resp.Header().Get(headerRequestsRemaining)
	used := resp.Header().Get(headerRequestsUsed)
	if remaining == "" && used == "" {
		return
	}

	if n, err := strconv.ParseFloat(remaining, 64); err == nil {
		logger.SetGauge("odds.requests_remaining", n)
	}
	logger.Debug("Odds API quota", logger.Fields{
		"remaining": remaining,
		"used":      used,
	})
}

// quietLogger drops resty's own error lines, which print the request URL
// (and with it the API key). GetOdds returns those errors to the caller.
type quietLogger struct{}

func (quietLogger) Errorf(string, ...interface{}) {}

func (quietLogger) Warnf(format string, v ...interface{}) {
	logger.Warn(fmt.Sprintf(format, v...), nil)
}

func (quietLogger) Debugf(string, ...interface{}) {}

// Current downloads q and returns the selected market as records stamped
// with a single timestamp.
func (c *Client) Current(ctx context.Context, q Query) ([]Record, error) {
	events, err := c.GetOdds(ctx, q)
	if err != nil {
		return nil, err
	}

	outcomes, err := Outrights(events, q.Bookmaker, q.Market)
	if err != nil {
		return nil, err
	}

	return Records(outcomes, c.now().UTC()), nil
}
