package standings

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	StandingsURL = "https://projects.fivethirtyeight.com/2023-nba-predictions/?ex_cid=rrpromo"
	UserAgent    = "title-odds/1.0 (github.com/pfrederiksen/title-odds)"
	Timeout      = 30 * time.Second
)

// Fetcher retrieves the raw HTML of a page
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher fetches pages with a plain GET
type HTTPFetcher struct {
	client *resty.Client
}

// NewHTTPFetcher creates a fetcher that sends userAgent and gives up after timeout
func NewHTTPFetcher(userAgent string, timeout time.Duration) *HTTPFetcher {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent)
	return &HTTPFetcher{client: client}
}

// Fetch returns the response body of a successful GET
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}
	return resp.Body(), nil
}

// Scraper fetches the standings page and extracts its records
type Scraper struct {
	fetcher Fetcher
	url     string
	now     func() time.Time
}

// Option configures a Scraper
type Option func(*Scraper)

// WithURL points the scraper at a different page
func WithURL(url string) Option {
	return func(s *Scraper) { s.url = url }
}

// WithFetcher replaces the default HTTP fetcher
func WithFetcher(f Fetcher) Option {
	return func(s *Scraper) { s.fetcher = f }
}

// WithClock sets the source of observation timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Scraper) { s.now = now }
}

// New creates a new Scraper instance
func New(opts ...Option) *Scraper {
	s := &Scraper{
		fetcher: NewHTTPFetcher(UserAgent, Timeout),
		url:     StandingsURL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// URL returns the page the scraper reads
func (s *Scraper) URL() string {
	return s.url
}

// FetchStandings fetches the page and parses every team row
func (s *Scraper) FetchStandings(ctx context.Context) ([]Record, error) {
	page, err := s.fetcher.Fetch(ctx, s.url)
	if err != nil {
		return nil, err
	}
	return Parse(bytes.NewReader(page), s.now().UTC())
}
