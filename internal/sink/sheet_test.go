package sink

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeWorksheet struct {
	rows  [][]interface{}
	calls int
	err   error
}

func (f *fakeWorksheet) Title() string { return "Betting Odds" }

func (f *fakeWorksheet) AppendRows(_ context.Context, rows [][]interface{}) (int, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	f.rows = append(f.rows, rows...)
	return len(rows), nil
}

func TestSheet_AppendsAfterExisting(t *testing.T) {
	existing := [][]interface{}{
		{"team", "price", "probability", "updated_at"},
		{"Boston Celtics", 3.4, 1 / 3.4, 1677585600.0},
	}
	ws := &fakeWorksheet{rows: append([][]interface{}(nil), existing...)}

	tbl := Table{
		Columns: OddsColumns,
		Rows: [][]interface{}{
			{"Lakers", 5.0, 0.2, 1677672000.5},
			{"Celtics", 3.0, 1 / 3.0, 1677672000.5},
		},
	}

	require.NoError(t, NewSheet(ws).Write(context.Background(), tbl))
	require.Equal(t, 1, ws.calls)
	require.Len(t, ws.rows, len(existing)+len(tbl.Rows))
	require.Equal(t, existing, ws.rows[:len(existing)])
	require.Equal(t, tbl.Rows, ws.rows[len(existing):])
}

func TestSheet_MissingValuesBecomeEmptyCells(t *testing.T) {
	ws := &fakeWorksheet{}
	tbl := Table{
		Columns: StandingsColumns,
		Rows:    [][]interface{}{{"HOU", nil, 1677672000.5}},
	}

	require.NoError(t, NewSheet(ws).Write(context.Background(), tbl))
	require.Equal(t, [][]interface{}{{"HOU", "", 1677672000.5}}, ws.rows)
}

func TestSheet_NonFiniteValueFailsWithoutAppending(t *testing.T) {
	ws := &fakeWorksheet{}
	tbl := Table{
		Columns: OddsColumns,
		Rows: [][]interface{}{
			{"Lakers", 5.0, 0.2, 1677672000.5},
			{"Zero", 0.0, math.Inf(1), 1677672000.5},
		},
	}

	require.Error(t, NewSheet(ws).Write(context.Background(), tbl))
	require.Zero(t, ws.calls)
	require.Empty(t, ws.rows)
}

func TestSheet_AppendErrorPropagates(t *testing.T) {
	wantErr := errors.New("permission denied")
	ws := &fakeWorksheet{err: wantErr}

	err := NewSheet(ws).Write(context.Background(), Table{Columns: OddsColumns, Rows: [][]interface{}{{"Lakers", 5.0, 0.2, 1.0}}})
	require.ErrorIs(t, err, wantErr)
}
