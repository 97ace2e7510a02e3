package sink

import (
	"context"
	"fmt"
	"math"

	"github.com/pfrederiksen/title-odds/internal/logger"
)

// Appender adds rows to the end of a worksheet
type Appender interface {
	Title() string
	AppendRows(ctx context.Context, rows [][]interface{}) (int, error)
}

// Sheet appends table rows to a worksheet. The header is not written; the
// worksheet is expected to carry one whose columns match the table.
type Sheet struct {
	ws Appender
}

// NewSheet wraps a worksheet
func NewSheet(ws Appender) *Sheet {
	return &Sheet{ws: ws}
}

// Write appends every row of t in one call
func (s *Sheet) Write(ctx context.Context, t Table) error {
	rows := make([][]interface{}, 0, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			if v == nil {
				v = ""
			}
			if f, ok := v.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
				return fmt.Errorf("row %d column %d: value %v cannot be written to a sheet", i, j, f)
			}
			cells[j] = v
		}
		rows = append(rows, cells)
	}

	n, err := s.ws.AppendRows(ctx, rows)
	if err != nil {
		return err
	}

	logger.AddCounter("sheet.rows_appended", int64(n))
	logger.Info("Appended rows", logger.Fields{
		"worksheet": s.ws.Title(),
		"rows":      n,
	})
	return nil
}
