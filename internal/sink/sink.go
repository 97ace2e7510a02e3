package sink

import (
	"context"
	"time"

	"github.com/pfrederiksen/title-odds/internal/odds"
	"github.com/pfrederiksen/title-odds/internal/standings"
)

// Sink receives a finished table
type Sink interface {
	// Write delivers every row of t or fails without partial output
	Write(ctx context.Context, t Table) error
}

// Table is an ordered set of rows sharing one column layout
type Table struct {
	Columns []string
	Rows    [][]interface{}
}

var (
	StandingsColumns = []string{"team", "win_probability", "observed_at"}
	OddsColumns      = []string{"team", "price", "probability", "updated_at"}
)

// epochSeconds renders t as Unix seconds with a fractional part
func epochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

// StandingsTable lays out standings records. A missing probability becomes nil.
func StandingsTable(records []standings.Record) Table {
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		var prob interface{}
		if v, ok := r.WinProbability.Get(); ok {
			prob = v
		}
		rows = append(rows, []interface{}{r.Team, prob, epochSeconds(r.ObservedAt)})
	}
	return Table{Columns: StandingsColumns, Rows: rows}
}

// OddsTable lays out odds records
func OddsTable(records []odds.Record) Table {
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{r.Team, r.Price, r.Probability, epochSeconds(r.UpdatedAt)})
	}
	return Table{Columns: OddsColumns, Rows: rows}
}
