package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Scopes requested for the service account
var Scopes = []string{
	"https://spreadsheets.google.com/feeds",
	"https://www.googleapis.com/auth/drive",
}

var (
	ErrInvalidCredentials = errors.New("credentials are not valid JSON")
	ErrWorksheetNotFound  = errors.New("worksheet not found")
)

// Client talks to the Sheets API
type Client struct {
	svc *sheetsapi.Service
}

// NewClient authenticates with a service-account JSON key. A non-empty
// endpoint replaces Google's API base URL.
func NewClient(ctx context.Context, credentialsJSON []byte, endpoint string) (*Client, error) {
	if !json.Valid(credentialsJSON) {
		return nil, ErrInvalidCredentials
	}

	opts := []option.ClientOption{
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(Scopes...),
	}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	return newClient(ctx, opts...)
}

func newClient(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// Spreadsheet is an opened spreadsheet and its tab titles
type Spreadsheet struct {
	svc    *sheetsapi.Service
	key    string
	title  string
	titles []string
}

// Open loads the spreadsheet identified by key
func (c *Client) Open(ctx context.Context, key string) (*Spreadsheet, error) {
	ss, err := c.svc.Spreadsheets.Get(key).
		Fields("properties.title", "sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("opening spreadsheet: %w", err)
	}

	titles := make([]string, 0, len(ss.Sheets))
	for _, sh := range ss.Sheets {
		if sh.Properties != nil {
			titles = append(titles, sh.Properties.Title)
		}
	}

	var title string
	if ss.Properties != nil {
		title = ss.Properties.Title
	}

	return &Spreadsheet{svc: c.svc, key: key, title: title, titles: titles}, nil
}

// Title returns the spreadsheet's name
func (s *Spreadsheet) Title() string {
	return s.title
}

// Worksheets returns the tab titles in spreadsheet order
func (s *Spreadsheet) Worksheets() []string {
	return append([]string(nil), s.titles...)
}

// Worksheet returns the tab whose title equals name exactly
func (s *Spreadsheet) Worksheet(name string) (*Worksheet, error) {
	for _, t := range s.titles {
		if t == name {
			return &Worksheet{svc: s.svc, key: s.key, title: t}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrWorksheetNotFound, name)
}

// Worksheet is one tab of a spreadsheet
type Worksheet struct {
	svc   *sheetsapi.Service
	key   string
	title string
}

// Title returns the tab's name
func (w *Worksheet) Title() string {
	return w.title
}

// AppendRows adds rows after the existing content and returns how many rows
// the API reports as written. Cell order within each row is preserved.
func (w *Worksheet) AppendRows(ctx context.Context, rows [][]interface{}) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	vr := &sheetsapi.ValueRange{
		MajorDimension: "ROWS",
		Values:         rows,
	}

	resp, err := w.svc.Spreadsheets.Values.Append(w.key, quoteTitle(w.title), vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("appending rows to %q: %w", w.title, err)
	}

	if resp.Updates == nil {
		return 0, nil
	}
	return int(resp.Updates.UpdatedRows), nil
}

// quoteTitle turns a tab title into an A1 range covering the whole tab
func quoteTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
