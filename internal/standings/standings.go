package standings

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	TableID       = "standings-table"
	TeamAttr      = "data-team"
	ColumnAttr    = "data-col"
	WinFinalsCol  = "win_finals"
	winCellSelect = `td[` + ColumnAttr + `="` + WinFinalsCol + `"]`
)

var (
	ErrTableNotFound     = errors.New("standings table not found")
	ErrTableBodyNotFound = errors.New("standings table has no body")
	ErrMissingTeam       = errors.New("row has no team attribute")
	ErrMissingCell       = errors.New("row has no win_finals cell")
)

// Parse extracts one Record per body row of the standings table, in document
// order. Every record is stamped with observedAt.
func Parse(r io.Reader, observedAt time.Time) ([]Record, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	table := doc.Find("#" + TableID).First()
	if table.Length() == 0 {
		return nil, ErrTableNotFound
	}

	body := table.Find("tbody").First()
	if body.Length() == 0 {
		return nil, ErrTableBodyNotFound
	}

	rows := body.Find("tr")
	records := make([]Record, 0, rows.Length())

	var rowErr error
	rows.EachWithBreak(func(i int, row *goquery.Selection) bool {
		rec, err := parseRow(row, observedAt)
		if err != nil {
			rowErr = fmt.Errorf("row %d: %w", i, err)
			return false
		}
		records = append(records, rec)
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}

	return records, nil
}

func parseRow(row *goquery.Selection, observedAt time.Time) (Record, error) {
	team, ok := row.Attr(TeamAttr)
	if !ok {
		return Record{}, ErrMissingTeam
	}

	cell := row.Find(winCellSelect).First()
	if cell.Length() == 0 {
		return Record{}, fmt.Errorf("%w (team %q)", ErrMissingCell, team)
	}

	return Record{
		Team:           team,
		WinProbability: ParsePercent(cell.Text()),
		ObservedAt:     observedAt,
	}, nil
}

// ParsePercent converts text such as "42%" into 0.42. Text that is not a
// number once the percent signs are removed yields a missing value.
func ParsePercent(text string) NullFloat {
	s := strings.TrimSpace(strings.ReplaceAll(text, "%", ""))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return None()
	}
	return Some(f / 100)
}
