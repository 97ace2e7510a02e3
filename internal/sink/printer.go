package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Format specifies the output format
type Format string

const (
	FormatText     Format = "text"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat validates a --format value
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatCSV, FormatMarkdown, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be 'text', 'csv', 'markdown' or 'json')", s)
	}
}

// Printer writes tables to a writer
type Printer struct {
	w      io.Writer
	format Format
}

// NewPrinter creates a printer for w
func NewPrinter(w io.Writer, format Format) *Printer {
	return &Printer{w: w, format: format}
}

// Write renders the whole table first and then writes it in a single call
func (p *Printer) Write(_ context.Context, t Table) error {
	out, err := Render(t, p.format)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(p.w, out); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// Render formats t without writing it anywhere
func Render(t Table, format Format) (string, error) {
	switch format {
	case FormatJSON:
		return renderJSON(t)
	case FormatText, FormatCSV, FormatMarkdown:
		return renderTable(t, format), nil
	default:
		return "", fmt.Errorf("unknown format: %s", format)
	}
}

func renderTable(t Table, format Format) string {
	tw := table.NewWriter()

	header := make(table.Row, 0, len(t.Columns))
	for _, c := range t.Columns {
		header = append(header, c)
	}
	tw.AppendHeader(header)

	for _, row := range t.Rows {
		cells := make(table.Row, 0, len(row))
		for _, v := range row {
			cells = append(cells, cellText(v))
		}
		tw.AppendRow(cells)
	}

	switch format {
	case FormatCSV:
		return tw.RenderCSV() + "\n"
	case FormatMarkdown:
		return tw.RenderMarkdown() + "\n"
	default:
		tw.SetStyle(table.StyleRounded)
		tw.AppendFooter(table.Row{fmt.Sprintf("%d rows", len(t.Rows))})
		return tw.Render() + "\n"
	}
}

func cellText(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

func renderJSON(t Table) (string, error) {
	objects := make([]map[string]interface{}, 0, len(t.Rows))
	for _, row := range t.Rows {
		obj := make(map[string]interface{}, len(t.Columns))
		for i, c := range t.Columns {
			if i < len(row) {
				obj[c] = row[i]
			}
		}
		objects = append(objects, obj)
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(objects); err != nil {
		return "", fmt.Errorf("encoding JSON: %w", err)
	}
	return buf.String(), nil
}
