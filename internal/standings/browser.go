package standings

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// BrowserFetcher renders pages in headless Chrome before returning their HTML.
// It is meant for pages that build the standings table with JavaScript.
type BrowserFetcher struct {
	userAgent string
	timeout   time.Duration
}

// NewBrowserFetcher creates a headless-Chrome fetcher
func NewBrowserFetcher(userAgent string, timeout time.Duration) *BrowserFetcher {
	return &BrowserFetcher{userAgent: userAgent, timeout: timeout}
}

func (f *BrowserFetcher) allocatorOptions() []chromedp.ExecAllocatorOption {
	return append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.UserAgent(f.userAgent),
	)
}

// Fetch navigates to url, waits for the standings table and returns the document HTML
func (f *BrowserFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, f.allocatorOptions()...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancel := context.WithTimeout(browserCtx, f.timeout)
	defer cancel()

	var html string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("#"+TableID, chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("rendering page: %w", err)
	}
	return []byte(html), nil
}
