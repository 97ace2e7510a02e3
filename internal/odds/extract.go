package odds

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNoEvents          = errors.New("odds response has no events")
	ErrBookmakerNotFound = errors.New("bookmaker not found")
	ErrMarketNotFound    = errors.New("market not found")
)

// findFirst returns the first item that matches
func findFirst[T any](items []T, match func(T) bool) (T, bool) {
	for _, item := range items {
		if match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Outrights returns the outcomes of market offered by bookmaker on the first
// event. Keys are compared exactly; the first match wins.
func Outrights(events []Event, bookmaker, market string) ([]Outcome, error) {
	if len(events) == 0 {
		return nil, ErrNoEvents
	}

	book, ok := findFirst(events[0].Bookmakers, func(b Bookmaker) bool {
		return b.Key == bookmaker
	})
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBookmakerNotFound, bookmaker)
	}

	m, ok := findFirst(book.Markets, func(m Market) bool {
		return m.Key == market
	})
	if !ok {
		return nil, fmt.Errorf("%w: %q for bookmaker %q", ErrMarketNotFound, market, bookmaker)
	}

	return m.Outcomes, nil
}

// Records converts outcomes into rows. Every row shares updatedAt, and the
// probability is 1/price with no guard, so a zero price yields +Inf.
func Records(outcomes []Outcome, updatedAt time.Time) []Record {
	records := make([]Record, 0, len(outcomes))
	for _, o := range outcomes {
		records = append(records, Record{
			Team:        o.Name,
			Price:       o.Price,
			Probability: 1 / o.Price,
			UpdatedAt:   updatedAt,
		})
	}
	return records
}
