package odds

import "time"

// Event is one sporting event as returned by the odds endpoint
type Event struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	SportTitle   string      `json:"sport_title"`
	CommenceTime time.Time   `json:"commence_time"`
	HomeTeam     string      `json:"home_team,omitempty"`
	AwayTeam     string      `json:"away_team,omitempty"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

// Bookmaker is one sportsbook's markets for an event
type Bookmaker struct {
	Key        string    `json:"key"`
	Title      string    `json:"title"`
	LastUpdate time.Time `json:"last_update"`
	Markets    []Market  `json:"markets"`
}

// Market is a single betting market such as outrights
type Market struct {
	Key        string    `json:"key"`
	LastUpdate time.Time `json:"last_update"`
	Outcomes   []Outcome `json:"outcomes"`
}

// Outcome is one selectable result with its decimal price
type Outcome struct {
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Description string   `json:"description,omitempty"`
	Point       *float64 `json:"point,omitempty"`
}

// Record is one team's price and implied probability as of UpdatedAt
type Record struct {
	Team        string    `json:"team"`
	Price       float64   `json:"price"`
	Probability float64   `json:"probability"`
	UpdatedAt   time.Time `json:"updated_at"`
}
